package utils

import (
	"fmt"
	"path/filepath"
	"strings"

	"tradeStats/internal/domain"
)

// ReadOrdersFromFile dispatches on the file extension (.csv, .yaml, .yml).
func ReadOrdersFromFile(filename string) ([]*domain.Order, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return ReadOrdersFromCSV(filename)
	case ".yaml", ".yml":
		return ReadOrdersFromYAML(filename)
	default:
		return nil, fmt.Errorf("unsupported order file %s (expected .csv, .yaml or .yml)", filename)
	}
}
