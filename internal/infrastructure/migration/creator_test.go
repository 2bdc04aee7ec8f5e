package migration

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/minh261002/Shopee.vn-sub000/migrations"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"add reorder point", "add_reorder_point"},
		{"Add-Reorder-Point", "add_reorder_point"},
		{"ADD__REORDER__POINT", "add_reorder_point"},
		{"   spaces   ", "spaces"},
		{"special!@#$chars", "specialchars"},
		{"_leading and trailing_", "leading_and_trailing"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, sanitizeName(tt.input))
		})
	}
}

func TestCreateMigration(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "migrations")

	mf, err := CreateMigration(dir, "add movement notes", "Free text notes on movements")
	require.NoError(t, err)
	assert.Len(t, mf.Version, 14)
	assert.True(t, strings.HasSuffix(mf.UpPath, "_add_movement_notes.up.sql"))
	assert.True(t, strings.HasSuffix(mf.DownPath, "_add_movement_notes.down.sql"))

	up, err := os.ReadFile(mf.UpPath)
	require.NoError(t, err)
	assert.Contains(t, string(up), "Free text notes on movements")
	down, err := os.ReadFile(mf.DownPath)
	require.NoError(t, err)
	assert.Contains(t, string(down), "Rollback")

	names, err := ListMigrations(os.DirFS(dir))
	require.NoError(t, err)
	assert.Equal(t, []string{mf.Version + "_add_movement_notes"}, names)
}

func TestCreateMigration_RejectsEmptyName(t *testing.T) {
	_, err := CreateMigration(t.TempDir(), "!!!", "")
	assert.Error(t, err)
}

func TestListMigrations(t *testing.T) {
	dir := t.TempDir()
	for _, f := range []string{
		"000002_b.up.sql", "000002_b.down.sql",
		"000001_a.up.sql", "000001_a.down.sql",
		"README.md",
	} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, f), []byte("-- test"), 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "subdir.up.sql"), 0o755))

	names, err := ListMigrations(os.DirFS(dir))
	require.NoError(t, err)
	assert.Equal(t, []string{"000001_a", "000002_b"}, names)

	names, err = ListMigrations(os.DirFS(filepath.Join(dir, "missing")))
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestEmbeddedMigrations_ArePaired(t *testing.T) {
	names, err := ListMigrations(migrations.FS)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"20260301090000_create_inventory_locations",
		"20260301090100_create_inventory_items",
		"20260301090200_create_stock_movements",
	}, names)

	for _, name := range names {
		_, err := fs.Stat(migrations.FS, name+".down.sql")
		assert.NoError(t, err, "%s has no down migration", name)
	}

	up, err := fs.ReadFile(migrations.FS, "20260301090000_create_inventory_locations.up.sql")
	require.NoError(t, err)
	assert.Contains(t, string(up), "WHERE is_default", "one default location per store")
}
