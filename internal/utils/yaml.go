package utils

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"tradeStats/internal/domain"
)

type yamlOrder struct {
	ExternalID     string   `yaml:"external_id"`
	Symbol         string   `yaml:"symbol"`
	Side           string   `yaml:"side"`
	Type           string   `yaml:"type"` // Alias for side
	Quantity       float64  `yaml:"quantity"`
	Price          float64  `yaml:"price"`
	ExecutionPrice *float64 `yaml:"execution_price"`
	Status         string   `yaml:"status"`
	Time           string   `yaml:"time"`
}

type yamlOrderFile struct {
	Orders []yamlOrder `yaml:"orders"`
}

// ReadOrdersFromYAML reads a file of the form:
//
//	orders:
//	  - symbol: ETHUSDT
//	    side: buy
//	    quantity: 1
//	    price: 2000
//	    execution_price: 2001.5
//	    status: filled
//	    time: 2024-03-01T09:00:00Z
func ReadOrdersFromYAML(filename string) ([]*domain.Order, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return parseOrdersYAML(data)
}

func parseOrdersYAML(data []byte) ([]*domain.Order, error) {
	var file yamlOrderFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}

	orders := make([]*domain.Order, 0, len(file.Orders))
	for i, yo := range file.Orders {
		side := yo.Side
		if side == "" {
			side = yo.Type
		}
		execPrice := ""
		if yo.ExecutionPrice != nil {
			execPrice = strconv.FormatFloat(*yo.ExecutionPrice, 'f', -1, 64)
		}
		o, err := parseOrderFields(
			yo.Time, yo.Symbol, side,
			strconv.FormatFloat(yo.Quantity, 'f', -1, 64),
			strconv.FormatFloat(yo.Price, 'f', -1, 64),
			execPrice, yo.Status,
		)
		if err != nil {
			return nil, fmt.Errorf("YAML order %d: %w", i+1, err)
		}
		o.ExternalID = yo.ExternalID
		orders = append(orders, o)
	}
	return orders, nil
}
