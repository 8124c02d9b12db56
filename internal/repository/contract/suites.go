// Package contract holds behaviour suites every repository implementation must pass.
package contract

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/maxviazov/wealth-balance-service/internal/model"
	"github.com/maxviazov/wealth-balance-service/internal/pagination"
	"github.com/maxviazov/wealth-balance-service/internal/repository"
)

// BalanceFactory returns an empty repository and its cleanup.
type BalanceFactory func(t *testing.T) (repository.BalanceRepository, func())

// PingerFactory returns a readiness pinger and its cleanup.
type PingerFactory func(t *testing.T) (repository.Pinger, func())

var base = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// Asset builds a valid asset for seeding.
func Asset(id string, asOf time.Time, balance string) model.Asset {
	return model.Asset{
		AssetID:              id,
		BalanceAsOf:          asOf,
		BalanceCurrent:       decimal.RequireFromString(balance),
		CreationDate:         base,
		IncludeInNetWorth:    true,
		IsActive:             true,
		IsAsset:              true,
		LastUpdate:           asOf,
		LastUpdateAttempt:    asOf,
		ModificationDate:     asOf,
		Nickname:             "nick-" + id,
		PrimaryAssetCategory: model.CategoryInvestment,
		WealthAssetType:      model.TypeBrokerage,
		WID:                  "42",
	}
}

func RunBalanceRepositoryContract(t *testing.T, makeRepo BalanceFactory) {
	t.Helper()

	t.Run("empty_snapshot", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		n, err := repo.Count(ctx, base)
		if err != nil {
			t.Fatalf("count: %v", err)
		}
		if n != 0 {
			t.Fatalf("expected 0, got %d", n)
		}
		rows, err := repo.Fetch(ctx, base, pagination.Window{Limit: 10})
		if err != nil {
			t.Fatalf("fetch: %v", err)
		}
		if len(rows) != 0 {
			t.Fatalf("expected no rows, got %d", len(rows))
		}
	})

	t.Run("latest_record_per_asset", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		seed := []model.Asset{
			Asset("a", base, "10"),
			Asset("a", base.Add(48*time.Hour), "20"),
			Asset("b", base.Add(24*time.Hour), "5.5"),
			Asset("c", base.Add(72*time.Hour), "1"),
		}
		if err := repo.Insert(ctx, seed); err != nil {
			t.Fatalf("seed: %v", err)
		}

		asOf := base.Add(36 * time.Hour)
		n, err := repo.Count(ctx, asOf)
		if err != nil {
			t.Fatalf("count: %v", err)
		}
		if n != 2 {
			t.Fatalf("expected 2 assets visible, got %d", n)
		}
		rows, err := repo.Fetch(ctx, asOf, pagination.Window{Limit: 10})
		if err != nil {
			t.Fatalf("fetch: %v", err)
		}
		if len(rows) != 2 || rows[0].AssetID != "a" || rows[1].AssetID != "b" {
			t.Fatalf("unexpected rows: %+v", rows)
		}
		if !rows[0].BalanceCurrent.Equal(decimal.RequireFromString("10")) {
			t.Fatalf("expected the record as of day 1 for a, got %s", rows[0].BalanceCurrent)
		}

		later := base.Add(96 * time.Hour)
		rows, err = repo.Fetch(ctx, later, pagination.Window{Limit: 10})
		if err != nil {
			t.Fatalf("fetch later: %v", err)
		}
		if len(rows) != 3 || !rows[0].BalanceCurrent.Equal(decimal.RequireFromString("20")) {
			t.Fatalf("unexpected later snapshot: %+v", rows)
		}
	})

	t.Run("window_slices_stable_order", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		var seed []model.Asset
		// Inserted out of order on purpose.
		for i := 9; i >= 0; i-- {
			seed = append(seed, Asset(fmt.Sprintf("asset-%02d", i), base, "1"))
		}
		if err := repo.Insert(ctx, seed); err != nil {
			t.Fatalf("seed: %v", err)
		}
		rows, err := repo.Fetch(ctx, base, pagination.Window{Limit: 3, Offset: 4})
		if err != nil {
			t.Fatalf("fetch: %v", err)
		}
		if len(rows) != 3 {
			t.Fatalf("expected 3 rows, got %d", len(rows))
		}
		for i, r := range rows {
			if want := fmt.Sprintf("asset-%02d", 4+i); r.AssetID != want {
				t.Fatalf("position %d: expected %s, got %s", 4+i, want, r.AssetID)
			}
		}
		rows, err = repo.Fetch(ctx, base, pagination.Window{Limit: 5, Offset: 8})
		if err != nil {
			t.Fatalf("fetch tail: %v", err)
		}
		if len(rows) != 2 {
			t.Fatalf("expected a short tail of 2, got %d", len(rows))
		}
	})

	t.Run("byte_order_for_mixed_case_ids", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		seed := []model.Asset{
			Asset("b-asset", base, "1"),
			Asset("A-asset", base, "1"),
			Asset("a-asset", base, "1"),
			Asset("B-asset", base, "1"),
		}
		if err := repo.Insert(ctx, seed); err != nil {
			t.Fatalf("seed: %v", err)
		}
		rows, err := repo.Fetch(ctx, base, pagination.Window{Limit: 10})
		if err != nil {
			t.Fatalf("fetch: %v", err)
		}
		want := []string{"A-asset", "B-asset", "a-asset", "b-asset"}
		if len(rows) != len(want) {
			t.Fatalf("expected %d rows, got %d", len(want), len(rows))
		}
		for i, r := range rows {
			if r.AssetID != want[i] {
				t.Fatalf("position %d: expected %s, got %s", i, want[i], r.AssetID)
			}
		}
	})

	t.Run("insert_is_all_or_nothing", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		if err := repo.Insert(ctx, []model.Asset{Asset("x", base, "1")}); err != nil {
			t.Fatalf("seed: %v", err)
		}
		err := repo.Insert(ctx, []model.Asset{Asset("y", base, "2"), Asset("x", base, "3")})
		if !errors.Is(err, repository.ErrAlreadyExists) {
			t.Fatalf("expected ErrAlreadyExists, got %v", err)
		}
		n, err := repo.Count(ctx, base)
		if err != nil {
			t.Fatalf("count: %v", err)
		}
		if n != 1 {
			t.Fatalf("expected the failed batch to leave nothing behind, count=%d", n)
		}
	})

	t.Run("pages_cover_snapshot_once", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		var seed []model.Asset
		for i := 0; i < 23; i++ {
			seed = append(seed, Asset(fmt.Sprintf("id-%03d", i), base, "1"))
		}
		if err := repo.Insert(ctx, seed); err != nil {
			t.Fatalf("seed: %v", err)
		}

		first := 5
		seen := map[string]bool{}
		req := pagination.Request{AsOf: base, First: &first}
		for pages := 0; ; pages++ {
			if pages > 10 {
				t.Fatalf("pagination did not terminate")
			}
			page, err := pagination.Query(ctx, repo, req, model.NodeFromAsset)
			if err != nil {
				t.Fatalf("query: %v", err)
			}
			for _, e := range page.Edges {
				if seen[e.Node.AssetID] {
					t.Fatalf("asset %s returned twice", e.Node.AssetID)
				}
				seen[e.Node.AssetID] = true
			}
			if !page.PageInfo.HasNextPage {
				break
			}
			req.After = page.PageInfo.EndCursor
		}
		if len(seen) != 23 {
			t.Fatalf("expected 23 distinct assets, got %d", len(seen))
		}
	})
}

func RunPingerContract(t *testing.T, makePinger PingerFactory) {
	t.Helper()
	p, cleanup := makePinger(t)
	t.Cleanup(cleanup)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := p.Ping(ctx); err != nil {
		t.Fatalf("ping failed: %v", err)
	}
}
