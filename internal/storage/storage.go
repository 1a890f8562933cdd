package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"ms-venue/internal/config"
	"ms-venue/internal/models"

	_ "github.com/lib/pq"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Logger interface {
	Info(category, message string)
	Error(category, message string)
}

var tables = []any{
	(*models.Account)(nil),
	(*models.Ticket)(nil),
	(*models.ConcessionSale)(nil),
	(*models.MatchEvent)(nil),
}

// Open connects with the configured driver, retrying the first ping a few times.
func Open(ctx context.Context, cfg config.DatabaseConfig, log Logger) (*bun.DB, error) {
	var (
		sqldb *sql.DB
		err   error
	)
	switch cfg.Driver {
	case DriverSQLite, "":
		sqldb, err = sql.Open(sqliteshim.ShimName, cfg.DSN)
	case DriverPostgres:
		sqldb, err = sql.Open("postgres", cfg.DSN)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.Driver, err)
	}
	if cfg.MaxOpenConns > 0 {
		sqldb.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		sqldb.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.MaxLifetime > 0 {
		sqldb.SetConnMaxLifetime(cfg.MaxLifetime)
	}

	const maxRetries = 5
	for i := 0; i < maxRetries; i++ {
		log.Info("DATABASE", fmt.Sprintf("Attempting to connect to %s (attempt %d/%d)", cfg.Driver, i+1, maxRetries))
		if err = sqldb.PingContext(ctx); err == nil {
			break
		}
		log.Error("DATABASE", fmt.Sprintf("Failed to connect to %s: %v", cfg.Driver, err))
		if i < maxRetries-1 {
			select {
			case <-ctx.Done():
				sqldb.Close()
				return nil, ctx.Err()
			case <-time.After(2 * time.Second):
			}
		}
	}
	if err != nil {
		sqldb.Close()
		return nil, fmt.Errorf("connect to %s after %d attempts: %w", cfg.Driver, maxRetries, err)
	}

	if cfg.Driver == DriverPostgres {
		return bun.NewDB(sqldb, pgdialect.New()), nil
	}
	return bun.NewDB(sqldb, sqlitedialect.New()), nil
}

// CreateSchema creates any missing table.
func CreateSchema(ctx context.Context, db *bun.DB) error {
	for _, model := range tables {
		if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			return fmt.Errorf("create table for %T: %w", model, err)
		}
	}
	return nil
}

type DB struct {
	Bun *bun.DB
}

func (d *DB) CreateAccount(ctx context.Context, a models.Account) error {
	_, err := d.Bun.NewInsert().Model(&a).Exec(ctx)
	return err
}

func (d *DB) GetAccount(ctx context.Context, venueID int64, accountID string) (*models.Account, error) {
	var a models.Account
	err := d.Bun.NewSelect().
		Model(&a).
		Where("venue_id = ?", venueID).
		Where("account_id = ?", accountID).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (d *DB) CreateTicket(ctx context.Context, t models.Ticket) error {
	_, err := d.Bun.NewInsert().Model(&t).Exec(ctx)
	return err
}

func (d *DB) GetTicketByID(ctx context.Context, venueID int64, ticketID string) (*models.Ticket, error) {
	var t models.Ticket
	err := d.Bun.NewSelect().
		Model(&t).
		Where("venue_id = ?", venueID).
		Where("ticket_id = ?", ticketID).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (d *DB) GetTicketsByAccount(ctx context.Context, venueID int64, accountID string) ([]models.Ticket, error) {
	var out []models.Ticket
	err := d.Bun.NewSelect().
		Model(&out).
		Where("venue_id = ?", venueID).
		Where("account_id = ?", accountID).
		Order("issued_at ASC", "ticket_id ASC").
		Scan(ctx)
	return out, err
}

// CreateSales writes all lines of one checkout in a single transaction.
func (d *DB) CreateSales(ctx context.Context, lines []models.ConcessionSale) error {
	if len(lines) == 0 {
		return nil
	}
	return d.Bun.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.NewInsert().Model(&lines).Exec(ctx)
		return err
	})
}

func (d *DB) GetSalesByStand(ctx context.Context, venueID int64, standID int) ([]models.ConcessionSale, error) {
	var out []models.ConcessionSale
	err := d.Bun.NewSelect().
		Model(&out).
		Where("venue_id = ?", venueID).
		Where("stand_id = ?", standID).
		Order("sold_at ASC", "sale_id ASC", "line ASC").
		Scan(ctx)
	return out, err
}

// StandRevenue sums persisted subtotals for a stand.
func (d *DB) StandRevenue(ctx context.Context, venueID int64, standID int) (float64, error) {
	var total sql.NullFloat64
	err := d.Bun.NewSelect().
		Model((*models.ConcessionSale)(nil)).
		ColumnExpr("SUM(subtotal)").
		Where("venue_id = ?", venueID).
		Where("stand_id = ?", standID).
		Scan(ctx, &total)
	if err != nil {
		return 0, err
	}
	return total.Float64, nil
}

func (d *DB) CreateMatchEvent(ctx context.Context, e models.MatchEvent) error {
	_, err := d.Bun.NewInsert().Model(&e).Exec(ctx)
	return err
}

func (d *DB) GetMatchEvents(ctx context.Context, venueID int64, kinds ...string) ([]models.MatchEvent, error) {
	var out []models.MatchEvent
	q := d.Bun.NewSelect().
		Model(&out).
		Where("venue_id = ?", venueID).
		Order("minute ASC", "at ASC")
	if len(kinds) > 0 {
		q = q.Where("kind IN (?)", bun.In(kinds))
	}
	err := q.Scan(ctx)
	return out, err
}
