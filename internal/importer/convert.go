package importer

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/maxviazov/wealth-balance-service/internal/model"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// recordValidator reports field names as they appear in the JSON payload.
func recordValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validate
}

// ToAsset validates r and converts it into a domain asset.
func (r Record) ToAsset() (model.Asset, error) {
	var problems []string
	if err := recordValidator().Struct(r); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return model.Asset{}, err
		}
		for _, fe := range verrs {
			problems = append(problems, describe(fe))
		}
	}
	for field, ts := range map[string]bool{
		"balanceAsOf":       r.BalanceAsOf.IsZero(),
		"creationDate":      r.CreationDate.IsZero(),
		"lastUpdate":        r.LastUpdate.IsZero(),
		"lastUpdateAttempt": r.LastUpdateAttempt.IsZero(),
		"modificationDate":  r.ModificationDate.IsZero(),
	} {
		if ts {
			problems = append(problems, field+" is required")
		}
	}
	if len(problems) > 0 {
		// map iteration above is unordered
		slices.Sort(problems)
		return model.Asset{}, errors.New(strings.Join(problems, "; "))
	}

	a := model.Asset{
		AssetID:              strings.TrimSpace(r.AssetID),
		BalanceAsOf:          r.BalanceAsOf.UTC(),
		BalanceCurrent:       r.BalanceCurrent,
		CreationDate:         r.CreationDate.UTC(),
		IncludeInNetWorth:    r.IncludeInNetWorth,
		IsActive:             r.IsActive,
		IsAsset:              r.IsAsset,
		IsFavorite:           r.IsFavorite,
		LastUpdate:           r.LastUpdate.UTC(),
		LastUpdateAttempt:    r.LastUpdateAttempt.UTC(),
		ModificationDate:     r.ModificationDate.UTC(),
		Nickname:             strings.TrimSpace(r.Nickname),
		PrimaryAssetCategory: model.PrimaryAssetCategory(strings.TrimSpace(r.PrimaryAssetCategory)),
		WealthAssetType:      model.WealthAssetType(strings.TrimSpace(r.WealthAssetType)),
		WID:                  r.WID,
	}
	if r.DeactivateBy != nil {
		d := r.DeactivateBy.UTC()
		a.DeactivateBy = &d
	}
	if r.CurrencyCode != nil {
		c := strings.ToUpper(*r.CurrencyCode)
		a.CurrencyCode = &c
	}
	return a, nil
}

func describe(fe validator.FieldError) string {
	field := strings.TrimPrefix(fe.Namespace(), "Record.")
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "numeric":
		return field + " must be numeric"
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "len":
		return fmt.Sprintf("%s must be exactly %s characters", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed on %s", field, fe.Tag())
	}
}

// IndexedError ties a conversion failure to the record position in the payload.
type IndexedError struct {
	Index int
	Err   error
}

func (e IndexedError) Error() string {
	return fmt.Sprintf("failed to convert asset at index %d: %v", e.Index, e.Err)
}

func (e IndexedError) Unwrap() error { return e.Err }

// Convert validates every record. It returns the converted assets when all
// records are valid, otherwise every failure in payload order.
func Convert(records []Record) ([]model.Asset, []IndexedError) {
	assets := make([]model.Asset, 0, len(records))
	var bad []IndexedError
	for i, r := range records {
		a, err := r.ToAsset()
		if err != nil {
			bad = append(bad, IndexedError{Index: i, Err: err})
			continue
		}
		assets = append(assets, a)
	}
	if len(bad) > 0 {
		return nil, bad
	}
	return assets, nil
}
