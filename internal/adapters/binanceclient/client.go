package binanceclient

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"tradeStats/internal/domain"
	"tradeStats/internal/ports"

	"github.com/adshao/go-binance/v2/common"
	"github.com/adshao/go-binance/v2/futures"
)

const (
	baseURLProduction = "https://fapi.binance.com"
	baseURLTestnet    = "https://testnet.binancefuture.com"

	// allOrders returns at most 1000 records per call and spans at most 7 days.
	maxOrdersPerPage = 1000
	maxQueryWindow   = 7 * 24 * time.Hour
)

// ordersLister is the slice of the futures client used by Client; tests stub it.
type ordersLister interface {
	listOrders(ctx context.Context, symbol string, start, end time.Time, limit int) ([]*futures.Order, error)
	ping(ctx context.Context) error
}

type futuresLister struct {
	client *futures.Client
}

func (f *futuresLister) listOrders(ctx context.Context, symbol string, start, end time.Time, limit int) ([]*futures.Order, error) {
	return f.client.NewListOrdersService().
		Symbol(symbol).
		StartTime(start.UnixMilli()).
		EndTime(end.UnixMilli()).
		Limit(limit).
		Do(ctx)
}

func (f *futuresLister) ping(ctx context.Context) error {
	return f.client.NewPingService().Do(ctx)
}

// Client implements the ports.OrderSource interface using the go-binance library.
type Client struct {
	api    ordersLister
	logger ports.Logger
}

// Config holds configuration specific to the Binance client adapter.
type Config struct {
	APIKey     string
	SecretKey  string
	UseTestnet bool
	Logger     ports.Logger
}

// New creates a new Binance client adapter.
func New(cfg Config) (*Client, error) {
	if cfg.Logger == nil {
		return nil, fmt.Errorf("logger is required for Binance client")
	}
	if cfg.APIKey == "" || cfg.SecretKey == "" {
		// Order history is a signed endpoint; Ping still works.
		cfg.Logger.Warn(context.Background(), "APIKey or SecretKey is empty. Order history requests will fail authentication.")
	}

	client := futures.NewClient(cfg.APIKey, cfg.SecretKey)
	if cfg.UseTestnet {
		client.BaseURL = baseURLTestnet
	} else {
		client.BaseURL = baseURLProduction
	}
	cfg.Logger.Info(context.Background(), "Binance client configured", map[string]interface{}{"baseURL": client.BaseURL, "testnet": cfg.UseTestnet})

	return &Client{api: &futuresLister{client: client}, logger: cfg.Logger}, nil
}

// handleError translates common Binance API errors into standardized ports errors.
func (c *Client) handleError(ctx context.Context, err error, operation string) error {
	if err == nil {
		return nil
	}

	fields := map[string]interface{}{"operation": operation, "originalError": err.Error()}

	var apiErr *common.APIError
	if errors.As(err, &apiErr) {
		fields["apiErrorCode"] = apiErr.Code
		fields["apiErrorMessage"] = apiErr.Message

		var mappedErr error
		switch apiErr.Code {
		case -1003: // Too many requests
			mappedErr = ports.ErrRateLimited
		case -1001, -1016: // Disconnected / service shutting down
			mappedErr = ports.ErrExchangeUnavailable
		case -1021: // Timestamp outside of recvWindow
			mappedErr = ports.ErrTimeout
		case -1022: // Invalid signature
			mappedErr = ports.ErrAuthenticationFailed
		case -1100, -1101, -1102, -1103, -1104, -1105, -1106, -1121, -1127, -1130: // Parameter errors
			mappedErr = ports.ErrInvalidRequest
		case -2014, -2015: // API-key format invalid / invalid key, IP or permissions
			mappedErr = ports.ErrInvalidAPIKeys
		default:
			mappedErr = ports.ErrUnknown
		}
		finalErr := fmt.Errorf("%s failed: %w: %w", operation, mappedErr, err)
		c.logger.Error(ctx, err, fmt.Sprintf("%s failed with API error", operation), fields)
		return finalErr
	}

	var finalErr error
	if errors.Is(err, context.DeadlineExceeded) {
		finalErr = fmt.Errorf("%s failed: %w: %w", operation, ports.ErrTimeout, err)
	} else if errors.Is(err, context.Canceled) {
		finalErr = fmt.Errorf("%s operation canceled: %w: %w", operation, ports.ErrContextCanceled, err)
	} else if strings.Contains(err.Error(), "connection refused") ||
		strings.Contains(err.Error(), "connection reset by peer") ||
		strings.Contains(err.Error(), "no such host") {
		finalErr = fmt.Errorf("%s failed: %w: %w", operation, ports.ErrConnectionFailed, err)
	} else {
		finalErr = fmt.Errorf("%s failed: %w: %w", operation, ports.ErrUnknown, err)
	}

	c.logger.Error(ctx, err, fmt.Sprintf("%s failed", operation), fields)
	return finalErr
}

// Ping checks the connectivity to the exchange API.
func (c *Client) Ping(ctx context.Context) error {
	op := "Ping"
	if err := c.api.ping(ctx); err != nil {
		return c.handleError(ctx, fmt.Errorf("ping failed: %w", err), op)
	}
	c.logger.Debug(ctx, op+" successful")
	return nil
}

// ListOrders retrieves all orders for symbol between start and end, walking the
// range in 7-day windows and paging inside each window.
func (c *Client) ListOrders(ctx context.Context, symbol string, start, end time.Time) ([]*domain.Order, error) {
	op := "ListOrders"
	if !end.After(start) {
		return nil, fmt.Errorf("%s: end %s must be after start %s: %w", op, end, start, ports.ErrInvalidRequest)
	}

	var result []*domain.Order
	seen := make(map[int64]struct{})

	for windowStart := start; windowStart.Before(end); {
		windowEnd := windowStart.Add(maxQueryWindow)
		if windowEnd.After(end) {
			windowEnd = end
		}

		from := windowStart
		for {
			page, err := c.api.listOrders(ctx, symbol, from, windowEnd, maxOrdersPerPage)
			if err != nil {
				return nil, c.handleError(ctx, err, op)
			}
			for _, bo := range page {
				if _, dup := seen[bo.OrderID]; dup {
					continue
				}
				seen[bo.OrderID] = struct{}{}
				o, err := translateOrder(bo)
				if err != nil {
					return nil, c.handleError(ctx, fmt.Errorf("failed to translate order %d: %w", bo.OrderID, err), op)
				}
				result = append(result, o)
			}
			if len(page) < maxOrdersPerPage {
				break
			}
			// Next page starts at the last order's time; duplicates are filtered via seen.
			next := time.UnixMilli(page[len(page)-1].Time)
			if !next.After(from) {
				next = from.Add(time.Millisecond)
			}
			from = next
		}

		windowStart = windowEnd
	}

	c.logger.Debug(ctx, op+" successful", map[string]interface{}{"symbol": symbol, "count": len(result)})
	return result, nil
}

// --- Translation Helpers ---

func translateOrder(bo *futures.Order) (*domain.Order, error) {
	if bo == nil {
		return nil, errors.New("received nil order")
	}
	side, err := domain.ParseOrderSide(string(bo.Side))
	if err != nil {
		return nil, err
	}
	price, err := parseOptionalFloat(bo.Price)
	if err != nil {
		return nil, fmt.Errorf("parsing price '%s': %w", bo.Price, err)
	}
	avgPrice, err := parseOptionalFloat(bo.AvgPrice)
	if err != nil {
		return nil, fmt.Errorf("parsing avgPrice '%s': %w", bo.AvgPrice, err)
	}
	qty, err := parseOptionalFloat(bo.ExecutedQuantity)
	if err != nil {
		return nil, fmt.Errorf("parsing executedQty '%s': %w", bo.ExecutedQuantity, err)
	}
	executed := qty > 0
	if !executed {
		// Nothing executed yet, report the requested size.
		if qty, err = parseOptionalFloat(bo.OrigQuantity); err != nil {
			return nil, fmt.Errorf("parsing origQty '%s': %w", bo.OrigQuantity, err)
		}
	}

	o := &domain.Order{
		ExternalID: strconv.FormatInt(bo.OrderID, 10),
		Symbol:     bo.Symbol,
		Side:       side,
		Quantity:   qty,
		Price:      price,
		Status:     domain.ParseOrderStatus(string(bo.Status)),
		Time:       time.UnixMilli(bo.UpdateTime).UTC(),
	}
	// A cancelled or expired order keeps whatever part of it was filled.
	if executed && o.Status == domain.StatusCancelled {
		o.Status = domain.StatusFilled
	}
	if bo.UpdateTime == 0 {
		o.Time = time.UnixMilli(bo.Time).UTC()
	}
	if avgPrice > 0 {
		o.ExecutionPrice = domain.Float64(avgPrice)
		// Market orders carry price "0"; the fill is the only meaningful requested price.
		if o.Price == 0 {
			o.Price = avgPrice
		}
	}
	return o, nil
}

func parseOptionalFloat(s string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}
