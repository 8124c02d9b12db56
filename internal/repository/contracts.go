package repository

import (
	"context"

	"github.com/maxviazov/wealth-balance-service/internal/model"
	"github.com/maxviazov/wealth-balance-service/internal/pagination"
)

// Pinger is the readiness probe of a store.
type Pinger interface {
	Ping(ctx context.Context) error
}

// TxFunc runs with a context that carries the open transaction.
type TxFunc func(ctx context.Context) error

// TxManager runs fn inside one transaction; nested calls join it.
type TxManager interface {
	WithinTx(ctx context.Context, fn TxFunc) error
}

// BalanceRepository stores asset balance records and serves point-in-time snapshots of them.
// A snapshot as of T holds, for every asset, its latest record with BalanceAsOf <= T,
// ordered by AssetID. Count and Fetch must observe the same ordering so positions stay valid.
type BalanceRepository interface {
	pagination.Snapshot[model.Asset]
	// Insert stores all assets or none. A duplicate (AssetID, BalanceAsOf) surfaces ErrAlreadyExists.
	Insert(ctx context.Context, assets []model.Asset) error
}
