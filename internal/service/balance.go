package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/maxviazov/wealth-balance-service/internal/importer"
	"github.com/maxviazov/wealth-balance-service/internal/model"
	"github.com/maxviazov/wealth-balance-service/internal/pagination"
	"github.com/maxviazov/wealth-balance-service/internal/repository"
)

// balanceService pages snapshots through the pagination core and stores imports.
type balanceService struct {
	repo repository.BalanceRepository
	opts []pagination.Option
	log  zerolog.Logger
}

// NewBalanceService wires the service. opts are forwarded to every pagination.Query call.
func NewBalanceService(repo repository.BalanceRepository, logger zerolog.Logger, opts ...pagination.Option) BalanceService {
	l := logger.With().Str("module", "service").Str("component", "balance").Logger()
	return &balanceService{repo: repo, opts: opts, log: l}
}

func (s *balanceService) ListBalances(ctx context.Context, req pagination.Request) (pagination.Connection[model.BalanceNode], error) {
	start := time.Now()
	conn, err := pagination.Query(ctx, s.repo, req, model.NodeFromAsset, s.opts...)
	if err != nil {
		var argErr *pagination.ArgumentError
		if errors.As(err, &argErr) {
			s.log.Debug().Err(err).Str("arg", argErr.Arg).Msg("balance query rejected")
			return pagination.Connection[model.BalanceNode]{}, newInvalidInput([]FieldError{{Field: argErr.Arg, Message: argumentMessage(argErr)}})
		}
		// Repository surfaces domain-level errors already, do not wrap.
		s.log.Error().Err(err).Time("as_of", req.AsOf).Msg("list balances failed")
		return pagination.Connection[model.BalanceNode]{}, err
	}
	s.log.Debug().
		Dur("took", time.Since(start)).
		Int("edges", len(conn.Edges)).
		Int("total", conn.TotalCount).
		Msg("balances listed")
	return conn, nil
}

func argumentMessage(e *pagination.ArgumentError) string {
	if errors.Is(e, pagination.ErrInvalidCursor) {
		return "is not a valid cursor"
	}
	return "must be >= 0"
}

func (s *balanceService) ImportAssets(ctx context.Context, records []importer.Record) (ImportResult, error) {
	if len(records) == 0 {
		return ImportResult{}, newInvalidInput([]FieldError{{Field: "records", Message: "must not be empty"}})
	}

	assets, bad := importer.Convert(records)
	if len(bad) > 0 {
		rejected := &ImportRejectedError{Errors: bad}
		s.log.Warn().Int("records", len(records)).Int("rejected", len(bad)).Strs("errors", rejected.Messages()).Msg("import rejected")
		return ImportResult{}, rejected
	}

	start := time.Now()
	batch := uuid.New()
	s.logUnknownKinds(batch, assets)
	if err := s.repo.Insert(ctx, assets); err != nil {
		s.log.Error().Err(err).Str("batch_id", batch.String()).Int("records", len(assets)).Msg("import failed")
		return ImportResult{}, err
	}
	s.log.Info().
		Dur("took", time.Since(start)).
		Str("batch_id", batch.String()).
		Int("records", len(assets)).
		Msg("assets imported")
	return ImportResult{BatchID: batch, Count: len(assets)}, nil
}

// logUnknownKinds notes assets whose category or type falls outside the named sets.
// They are stored verbatim either way.
func (s *balanceService) logUnknownKinds(batch uuid.UUID, assets []model.Asset) {
	for _, a := range assets {
		if a.PrimaryAssetCategory.Known() && a.WealthAssetType.Known() {
			continue
		}
		s.log.Debug().
			Str("batch_id", batch.String()).
			Str("asset_id", a.AssetID).
			Str("category", string(a.PrimaryAssetCategory)).
			Str("type", string(a.WealthAssetType)).
			Msg("unknown asset kind kept")
	}
}
