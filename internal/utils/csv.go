package utils

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"tradeStats/internal/domain"
)

var csvHeader = []string{"time", "symbol", "side", "quantity", "price", "execution_price", "status", "external_id"}

var requiredColumns = []string{"time", "symbol", "side", "quantity", "price", "status"}

// WriteOrdersToCSV writes orders to filename, one row per order.
// A missing execution price is written as an empty cell.
func WriteOrdersToCSV(orders []*domain.Order, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(csvHeader); err != nil {
		return err
	}

	for _, o := range orders {
		execPrice := ""
		if o.ExecutionPrice != nil {
			execPrice = strconv.FormatFloat(*o.ExecutionPrice, 'f', -1, 64)
		}
		err := writer.Write([]string{
			o.Time.Format(time.RFC3339Nano),
			o.Symbol,
			string(o.Side),
			strconv.FormatFloat(o.Quantity, 'f', -1, 64),
			strconv.FormatFloat(o.Price, 'f', -1, 64),
			execPrice,
			string(o.Status),
			o.ExternalID,
		})
		if err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// ReadOrdersFromCSV reads orders written by WriteOrdersToCSV. Columns are matched
// by header name, so extra or reordered columns are fine.
func ReadOrdersFromCSV(filename string) ([]*domain.Order, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return readOrdersCSV(file)
}

func readOrdersCSV(r io.Reader) ([]*domain.Order, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("empty CSV: missing header")
		}
		return nil, fmt.Errorf("reading CSV header: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, name := range requiredColumns {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("CSV header missing required column %q", name)
		}
	}
	get := func(record []string, name string) string {
		i, ok := cols[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	orders := make([]*domain.Order, 0)
	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading CSV line %d: %w", line, err)
		}

		o, err := parseOrderFields(
			get(record, "time"), get(record, "symbol"), get(record, "side"),
			get(record, "quantity"), get(record, "price"), get(record, "execution_price"),
			get(record, "status"),
		)
		if err != nil {
			return nil, fmt.Errorf("CSV line %d: %w", line, err)
		}
		o.ExternalID = get(record, "external_id")
		orders = append(orders, o)
	}
	return orders, nil
}

// parseOrderFields builds an order from its textual fields. execPrice may be empty.
func parseOrderFields(ts, symbol, side, qty, price, execPrice, status string) (*domain.Order, error) {
	t, err := ParseTime(ts)
	if err != nil {
		return nil, err
	}
	s, err := domain.ParseOrderSide(side)
	if err != nil {
		return nil, err
	}
	q, err := strconv.ParseFloat(qty, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid quantity %q: %w", qty, err)
	}
	p, err := strconv.ParseFloat(price, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid price %q: %w", price, err)
	}
	if symbol == "" {
		return nil, fmt.Errorf("symbol is empty")
	}

	o := &domain.Order{
		Symbol:   symbol,
		Side:     s,
		Quantity: q,
		Price:    p,
		Status:   domain.ParseOrderStatus(status),
		Time:     t,
	}
	if execPrice != "" {
		ep, err := strconv.ParseFloat(execPrice, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid execution price %q: %w", execPrice, err)
		}
		o.ExecutionPrice = domain.Float64(ep)
	}
	return o, nil
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseTime accepts RFC3339 timestamps, a few common variants without zone
// (interpreted as UTC) and Unix milliseconds.
func ParseTime(s string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.UnixMilli(ms).UTC(), nil
	}
	return time.Time{}, fmt.Errorf("invalid time %q", s)
}
