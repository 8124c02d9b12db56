// Package memory is an in-process BalanceRepository with the same snapshot
// semantics as the postgres store. It backs tests and local runs without a database.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/maxviazov/wealth-balance-service/internal/model"
	"github.com/maxviazov/wealth-balance-service/internal/pagination"
	"github.com/maxviazov/wealth-balance-service/internal/repository"
)

type key struct {
	assetID string
	asOf    int64
}

type balanceRepository struct {
	mu   sync.RWMutex
	rows map[key]model.Asset
}

func NewBalanceRepository() repository.BalanceRepository {
	return &balanceRepository{rows: make(map[key]model.Asset)}
}

func (r *balanceRepository) Insert(ctx context.Context, assets []model.Asset) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	staged := make(map[key]struct{}, len(assets))
	for _, a := range assets {
		k := key{assetID: a.AssetID, asOf: a.BalanceAsOf.UnixNano()}
		if _, dup := r.rows[k]; dup {
			return repository.ErrAlreadyExists
		}
		if _, dup := staged[k]; dup {
			return repository.ErrAlreadyExists
		}
		staged[k] = struct{}{}
	}
	for _, a := range assets {
		r.rows[key{assetID: a.AssetID, asOf: a.BalanceAsOf.UnixNano()}] = a
	}
	return nil
}

// latest returns the snapshot as of asOf ordered by asset id. Callers hold the read lock.
func (r *balanceRepository) latest(asOf time.Time) []model.Asset {
	byAsset := make(map[string]model.Asset)
	for _, a := range r.rows {
		if a.BalanceAsOf.After(asOf) {
			continue
		}
		if cur, ok := byAsset[a.AssetID]; !ok || a.BalanceAsOf.After(cur.BalanceAsOf) {
			byAsset[a.AssetID] = a
		}
	}
	out := make([]model.Asset, 0, len(byAsset))
	for _, a := range byAsset {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AssetID < out[j].AssetID })
	return out
}

func (r *balanceRepository) Count(ctx context.Context, asOf time.Time) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.latest(asOf)), nil
}

func (r *balanceRepository) Fetch(ctx context.Context, asOf time.Time, w pagination.Window) ([]model.Asset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	snap := r.latest(asOf)
	if w.Offset >= len(snap) || w.Limit <= 0 {
		return []model.Asset{}, nil
	}
	end := min(w.Offset+w.Limit, len(snap))
	return append([]model.Asset(nil), snap[w.Offset:end]...), nil
}

var _ repository.BalanceRepository = (*balanceRepository)(nil)
