package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadOrdersFromFile(t *testing.T) {
	dir := t.TempDir()

	yamlPath := filepath.Join(dir, "orders.YML")
	require.NoError(t, os.WriteFile(yamlPath, []byte("orders:\n  - symbol: ABC\n    side: buy\n    quantity: 1\n    price: 2\n    status: filled\n    time: 2024-01-01T00:00:00Z\n"), 0o644))
	orders, err := ReadOrdersFromFile(yamlPath)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "ABC", orders[0].Symbol)

	csvPath := filepath.Join(dir, "orders.csv")
	require.NoError(t, WriteOrdersToCSV(orders, csvPath))
	orders, err = ReadOrdersFromFile(csvPath)
	require.NoError(t, err)
	assert.Len(t, orders, 1)

	_, err = ReadOrdersFromFile(filepath.Join(dir, "orders.json"))
	assert.ErrorContains(t, err, "unsupported order file")
}
