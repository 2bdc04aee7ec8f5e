package testutil

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestDoJSON(t *testing.T) {
	r := gin.New()
	r.POST("/echo", func(c *gin.Context) {
		var body map[string]int
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": gin.H{"code": "ERR_INVALID_JSON"}})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"success": true, "data": gin.H{"quantity": body["quantity"], "key": c.GetHeader("Idempotency-Key")}})
	})

	w := DoJSON(t, r, http.MethodPost, "/echo", map[string]int{"quantity": 7}, map[string]string{"Idempotency-Key": "k1"})
	data := RequireData[struct {
		Quantity int    `json:"quantity"`
		Key      string `json:"key"`
	}](t, w, http.StatusCreated)
	assert.Equal(t, 7, data.Quantity)
	assert.Equal(t, "k1", data.Key)

	w = DoJSON(t, r, http.MethodPost, "/echo", nil, nil)
	AssertError(t, w, http.StatusBadRequest, "ERR_INVALID_JSON")
}
