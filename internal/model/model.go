// Package model contains domain entities and DTOs used across layers.
// Behavior stays small: classification checks and the asset to node mapping.
package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Asset is one balance record of an account asset at BalanceAsOf.
// An asset may have many records; a snapshot picks the latest one per AssetID.
type Asset struct {
	AssetID              string               `json:"assetId"`
	BalanceAsOf          time.Time            `json:"balanceAsOf"`
	BalanceCurrent       decimal.Decimal      `json:"balanceCurrent"`
	CurrencyCode         *string              `json:"currencyCode,omitempty"`
	CreationDate         time.Time            `json:"creationDate"`
	DeactivateBy         *time.Time           `json:"deactivateBy,omitempty"`
	IncludeInNetWorth    bool                 `json:"includeInNetWorth"`
	IsActive             bool                 `json:"isActive"`
	IsAsset              bool                 `json:"isAsset"`
	IsFavorite           bool                 `json:"isFavorite"`
	LastUpdate           time.Time            `json:"lastUpdate"`
	LastUpdateAttempt    time.Time            `json:"lastUpdateAttempt"`
	ModificationDate     time.Time            `json:"modificationDate"`
	Nickname             string               `json:"nickname"`
	PrimaryAssetCategory PrimaryAssetCategory `json:"primaryAssetCategory"`
	WealthAssetType      WealthAssetType      `json:"wealthAssetType"`
	WID                  string               `json:"wid"`
}

// PrimaryAssetCategory classifies an asset. Values outside the known set are kept verbatim.
type PrimaryAssetCategory string

const (
	CategoryCash          PrimaryAssetCategory = "Cash"
	CategoryInvestment    PrimaryAssetCategory = "Investment"
	CategoryRealEstate    PrimaryAssetCategory = "RealEstate"
	CategoryOtherProperty PrimaryAssetCategory = "OtherProperty"
)

// Known reports whether c is one of the named categories.
func (c PrimaryAssetCategory) Known() bool {
	switch c {
	case CategoryCash, CategoryInvestment, CategoryRealEstate, CategoryOtherProperty:
		return true
	}
	return false
}

// WealthAssetType is the vendor-level asset type. Values outside the known set are kept verbatim.
type WealthAssetType string

const (
	TypeBrokerage      WealthAssetType = "Brokerage"
	TypeCash           WealthAssetType = "Cash"
	TypeCryptocurrency WealthAssetType = "Cryptocurrency"
	TypeRealEstate     WealthAssetType = "RealEstate"
	TypeVehicle        WealthAssetType = "Vehicle"
)

// Known reports whether t is one of the named types.
func (t WealthAssetType) Known() bool {
	switch t {
	case TypeBrokerage, TypeCash, TypeCryptocurrency, TypeRealEstate, TypeVehicle:
		return true
	}
	return false
}

// BalanceNode is the API-facing view of an asset balance.
type BalanceNode struct {
	AssetID     string          `json:"assetId"`
	Nickname    string          `json:"nickname"`
	Balance     decimal.Decimal `json:"balance"`
	Currency    string          `json:"currency,omitempty"`
	BalanceAsOf time.Time       `json:"balanceAsOf"`
}

// NodeFromAsset projects a stored asset onto its API shape.
func NodeFromAsset(a Asset) BalanceNode {
	n := BalanceNode{
		AssetID:     a.AssetID,
		Nickname:    a.Nickname,
		Balance:     a.BalanceCurrent,
		BalanceAsOf: a.BalanceAsOf,
	}
	if a.CurrencyCode != nil {
		n.Currency = *a.CurrencyCode
	}
	return n
}
