package dto

import (
	"encoding/json"
	"testing"

	"github.com/minh261002/Shopee.vn-sub000/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSuccessResponse(t *testing.T) {
	resp := NewSuccessResponse(map[string]string{"code": "WH-1"})

	assert.True(t, resp.Success)
	assert.NotNil(t, resp.Data)
	assert.Nil(t, resp.Error)
}

func TestNewListResponse(t *testing.T) {
	page := shared.NewPaginated([]string{"a", "b"}, 41, 2, 20)
	resp := NewListResponse(page)

	data, ok := resp.Data.(ListData[string])
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, data.Items)
	assert.Equal(t, Pagination{Page: 2, Limit: 20, Total: 41, TotalPages: 3}, data.Pagination)
}

func TestNewListResponse_EmptyItemsEncodeAsArray(t *testing.T) {
	resp := NewListResponse(shared.Paginated[int]{Page: 1, PageSize: 20})

	raw, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"success":true,"data":{"items":[],"pagination":{"page":1,"limit":20,"total":0,"totalPages":0}}}`,
		string(raw))
}
