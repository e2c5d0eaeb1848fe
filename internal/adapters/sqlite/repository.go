package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"tradeStats/internal/domain"
	"tradeStats/internal/ports"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// Repository implements the ports.OrderRepository interface using SQLite.
type Repository struct {
	db     *sql.DB
	logger ports.Logger
}

// Config holds configuration for the SQLite repository.
type Config struct {
	DBPath string
	Logger ports.Logger
}

// NewRepository creates a new SQLite repository instance.
func NewRepository(cfg Config) (*Repository, error) {
	if cfg.Logger == nil {
		return nil, fmt.Errorf("logger is required for SQLite repository")
	}
	dbPath := cfg.DBPath
	if dbPath == "" {
		dbPath = "./data/orders.db"
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		err = fmt.Errorf("failed to create data directory '%s': %w", filepath.Dir(dbPath), err)
		cfg.Logger.Error(context.Background(), err, "SQLite repository initialization failed")
		return nil, err
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		err = fmt.Errorf("failed to open database at '%s': %w: %w", dbPath, ports.ErrDBConnection, err)
		cfg.Logger.Error(context.Background(), err, "SQLite repository initialization failed")
		return nil, err
	}

	if err := db.Ping(); err != nil {
		db.Close()
		err = fmt.Errorf("failed to ping database at '%s': %w: %w", dbPath, ports.ErrDBConnection, err)
		cfg.Logger.Error(context.Background(), err, "SQLite repository initialization failed")
		return nil, err
	}

	// One connection: SQLite serializes writers anyway.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	cfg.Logger.Info(context.Background(), "SQLite database connection established", map[string]interface{}{"path": dbPath})

	repo := &Repository{db: db, logger: cfg.Logger}
	if err := repo.initializeSchema(context.Background()); err != nil {
		db.Close()
		err = fmt.Errorf("failed to initialize database schema: %w", err)
		cfg.Logger.Error(context.Background(), err, "SQLite repository initialization failed")
		return nil, err
	}

	return repo, nil
}

func (r *Repository) initializeSchema(ctx context.Context) error {
	const schema = `
	CREATE TABLE IF NOT EXISTS orders (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		external_id TEXT NULL,
		symbol TEXT NOT NULL,
		side TEXT NOT NULL,
		quantity REAL NOT NULL,
		price REAL NOT NULL,
		execution_price REAL NULL,
		status TEXT NOT NULL,
		order_time TIMESTAMP NOT NULL
	);
	CREATE UNIQUE INDEX IF NOT EXISTS idx_orders_external_id ON orders (external_id) WHERE external_id IS NOT NULL;
	CREATE INDEX IF NOT EXISTS idx_orders_symbol_time ON orders (symbol, order_time);
	CREATE INDEX IF NOT EXISTS idx_orders_time ON orders (order_time);
	`
	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to execute schema initialization: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (r *Repository) Close() error {
	if r.db != nil {
		r.logger.Info(context.Background(), "Closing SQLite database connection")
		return r.db.Close()
	}
	return nil
}

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

const insertOrderQuery = `
	INSERT INTO orders (external_id, symbol, side, quantity, price, execution_price, status, order_time)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

func insertOrder(ctx context.Context, ex execer, o *domain.Order) (int64, error) {
	var externalID sql.NullString
	if o.ExternalID != "" {
		externalID = sql.NullString{String: o.ExternalID, Valid: true}
	}
	var execPrice sql.NullFloat64
	if o.ExecutionPrice != nil {
		execPrice = sql.NullFloat64{Float64: *o.ExecutionPrice, Valid: true}
	}

	result, err := ex.ExecContext(ctx, insertOrderQuery,
		externalID, o.Symbol, string(o.Side), o.Quantity, o.Price, execPrice, string(o.Status), o.Time.UTC())
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("order %s for symbol %s: %w", o.ExternalID, o.Symbol, ports.ErrDuplicateEntry)
		}
		return 0, fmt.Errorf("failed to insert order for symbol %s: %w: %w", o.Symbol, ports.ErrQueryFailed, err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert ID for order %s: %w", o.Symbol, err)
	}
	return id, nil
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// SaveOrder stores a new order and returns its assigned ID.
func (r *Repository) SaveOrder(ctx context.Context, order *domain.Order) (int64, error) {
	id, err := insertOrder(ctx, r.db, order)
	if err != nil {
		return 0, err
	}
	order.ID = id
	r.logger.Debug(ctx, "Order saved", map[string]interface{}{"orderID": id, "symbol": order.Symbol, "side": order.Side})
	return id, nil
}

// SaveOrders stores a batch of orders in a single transaction. Either all are stored or none.
func (r *Repository) SaveOrders(ctx context.Context, orders []*domain.Order) error {
	if len(orders) == 0 {
		return nil
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w: %w", ports.ErrDBConnection, err)
	}

	ids := make([]int64, len(orders))
	for i, o := range orders {
		id, err := insertOrder(ctx, tx, o)
		if err != nil {
			_ = tx.Rollback()
			return err
		}
		ids[i] = id
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit order batch: %w: %w", ports.ErrQueryFailed, err)
	}

	for i, o := range orders {
		o.ID = ids[i]
	}
	r.logger.Debug(ctx, "Order batch saved", map[string]interface{}{"count": len(orders)})
	return nil
}

const selectOrderColumns = `
	SELECT id, external_id, symbol, side, quantity, price, execution_price, status, order_time
	FROM orders`

// FindAll retrieves all orders, ordered by time ascending.
func (r *Repository) FindAll(ctx context.Context) ([]*domain.Order, error) {
	return r.queryOrders(ctx, "FindAll", selectOrderColumns+` ORDER BY order_time ASC, id ASC`)
}

// FindBySymbol retrieves all orders for a symbol, ordered by time ascending.
func (r *Repository) FindBySymbol(ctx context.Context, symbol string) ([]*domain.Order, error) {
	return r.queryOrders(ctx, "FindBySymbol", selectOrderColumns+` WHERE symbol = ? ORDER BY order_time ASC, id ASC`, symbol)
}

// FindSince retrieves orders with time >= since, ordered by time ascending.
func (r *Repository) FindSince(ctx context.Context, since time.Time) ([]*domain.Order, error) {
	return r.queryOrders(ctx, "FindSince", selectOrderColumns+` WHERE order_time >= ? ORDER BY order_time ASC, id ASC`, since.UTC())
}

// ExistsByExternalID reports whether an order with the given exchange ID is stored.
func (r *Repository) ExistsByExternalID(ctx context.Context, externalID string) (bool, error) {
	const query = `SELECT COUNT(*) FROM orders WHERE external_id = ?`
	var count int
	if err := r.db.QueryRowContext(ctx, query, externalID).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to look up order %s: %w: %w", externalID, ports.ErrQueryFailed, err)
	}
	return count > 0, nil
}

func (r *Repository) queryOrders(ctx context.Context, op, query string, args ...interface{}) ([]*domain.Order, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to query orders: %w: %w", op, ports.ErrQueryFailed, err)
	}
	defer rows.Close()

	orders := make([]*domain.Order, 0)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to scan order: %w", op, err)
		}
		orders = append(orders, o)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: error iterating order rows: %w", op, err)
	}
	return orders, nil
}

// scanner defines an interface compatible with *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...interface{}) error
}

// scanOrder scans a row into a domain.Order struct.
func scanOrder(s scanner) (*domain.Order, error) {
	o := &domain.Order{}
	var externalID sql.NullString
	var execPrice sql.NullFloat64
	var side, status string
	err := s.Scan(&o.ID, &externalID, &o.Symbol, &side, &o.Quantity, &o.Price, &execPrice, &status, &o.Time)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	if externalID.Valid {
		o.ExternalID = externalID.String
	}
	if execPrice.Valid {
		o.ExecutionPrice = domain.Float64(execPrice.Float64)
	}
	o.Side = domain.OrderSide(side)
	o.Status = domain.OrderStatus(status)
	return o, nil
}
