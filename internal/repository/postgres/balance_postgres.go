package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/maxviazov/wealth-balance-service/internal/model"
	"github.com/maxviazov/wealth-balance-service/internal/pagination"
	"github.com/maxviazov/wealth-balance-service/internal/repository"
)

const (
	countBalancesSQL = `
		SELECT COUNT(DISTINCT asset_id)
		FROM asset_balances
		WHERE balance_as_of <= $1`

	// DISTINCT ON keeps the latest record per asset; the outer ORDER BY asset_id
	// is the stable total order every cursor position refers to. COLLATE "C"
	// orders by bytes, matching the in-memory store on any database locale.
	balancesSQL = `
		SELECT asset_id, balance_as_of, balance_current::text, currency_code, creation_date,
		       deactivate_by, include_in_net_worth, is_active, is_asset, is_favorite,
		       last_update, last_update_attempt, modification_date, nickname,
		       primary_asset_category, wealth_asset_type, wid
		FROM (
			SELECT DISTINCT ON (asset_id COLLATE "C") *
			FROM asset_balances
			WHERE balance_as_of <= $1
			ORDER BY asset_id COLLATE "C", balance_as_of DESC
		) latest
		ORDER BY asset_id COLLATE "C"
		LIMIT $2 OFFSET $3`

	insertBalanceSQL = `
		INSERT INTO asset_balances (
			asset_id, balance_as_of, balance_current, currency_code, creation_date,
			deactivate_by, include_in_net_worth, is_active, is_asset, is_favorite,
			last_update, last_update_attempt, modification_date, nickname,
			primary_asset_category, wealth_asset_type, wid
		) VALUES ($1, $2, $3::numeric, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
)

type balanceRepository struct {
	pool    *pgxpool.Pool
	tx      repository.TxManager
	timeout time.Duration
}

// NewBalanceRepository returns the postgres snapshot store. A positive timeout
// bounds every statement, including the wait for a pooled connection.
func NewBalanceRepository(pool *pgxpool.Pool, tx repository.TxManager, timeout time.Duration) repository.BalanceRepository {
	return &balanceRepository{pool: pool, tx: tx, timeout: timeout}
}

func (r *balanceRepository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, r.timeout)
}

func (r *balanceRepository) Count(ctx context.Context, asOf time.Time) (int, error) {
	if err := ensurePool(r.pool); err != nil {
		return 0, err
	}
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var n int64
	if err := getQ(ctx, r.pool).QueryRow(ctx, countBalancesSQL, asOf.UTC()).Scan(&n); err != nil {
		return 0, repository.MapPgError(err)
	}
	return int(n), nil
}

func (r *balanceRepository) Fetch(ctx context.Context, asOf time.Time, w pagination.Window) ([]model.Asset, error) {
	if err := ensurePool(r.pool); err != nil {
		return nil, err
	}
	out := make([]model.Asset, 0, w.Limit)
	if w.Limit <= 0 {
		return out, nil
	}
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	rows, err := getQ(ctx, r.pool).Query(ctx, balancesSQL, asOf.UTC(), w.Limit, w.Offset)
	if err != nil {
		return nil, repository.MapPgError(err)
	}
	defer rows.Close()

	for rows.Next() {
		a, err := scanAsset(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, repository.MapPgError(err)
	}
	return out, nil
}

func scanAsset(row pgx.Row) (model.Asset, error) {
	var (
		a        model.Asset
		balance  string
		category string
		kind     string
	)
	err := row.Scan(
		&a.AssetID, &a.BalanceAsOf, &balance, &a.CurrencyCode, &a.CreationDate,
		&a.DeactivateBy, &a.IncludeInNetWorth, &a.IsActive, &a.IsAsset, &a.IsFavorite,
		&a.LastUpdate, &a.LastUpdateAttempt, &a.ModificationDate, &a.Nickname,
		&category, &kind, &a.WID,
	)
	if err != nil {
		return model.Asset{}, repository.MapPgError(err)
	}
	a.BalanceCurrent, err = decimal.NewFromString(balance)
	if err != nil {
		return model.Asset{}, fmt.Errorf("failed to parse balance_current for %s: %w", a.AssetID, err)
	}
	a.PrimaryAssetCategory = model.PrimaryAssetCategory(category)
	a.WealthAssetType = model.WealthAssetType(kind)
	return a, nil
}

// Insert queues every row in one batch inside a single transaction.
func (r *balanceRepository) Insert(ctx context.Context, assets []model.Asset) error {
	if err := ensurePool(r.pool); err != nil {
		return err
	}
	if len(assets) == 0 {
		return nil
	}
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	return r.tx.WithinTx(ctx, func(ctx context.Context) error {
		batch := &pgx.Batch{}
		for _, a := range assets {
			batch.Queue(insertBalanceSQL,
				a.AssetID, a.BalanceAsOf.UTC(), a.BalanceCurrent.String(), a.CurrencyCode, a.CreationDate.UTC(),
				a.DeactivateBy, a.IncludeInNetWorth, a.IsActive, a.IsAsset, a.IsFavorite,
				a.LastUpdate.UTC(), a.LastUpdateAttempt.UTC(), a.ModificationDate.UTC(), a.Nickname,
				string(a.PrimaryAssetCategory), string(a.WealthAssetType), a.WID,
			)
		}
		br := getQ(ctx, r.pool).SendBatch(ctx, batch)
		defer br.Close()
		for range assets {
			if _, err := br.Exec(); err != nil {
				return err
			}
		}
		return br.Close()
	})
}

var _ repository.BalanceRepository = (*balanceRepository)(nil)
