// Package importer decodes asset records in the Wealth Import API shape and
// converts them into domain assets, validating each record on the way.
package importer

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Record is an asset entry as delivered by the Wealth Import API.
// Many optional fields are null in every known sample; they are typed as
// strings until real data says otherwise.
type Record struct {
	AssetDescription       *string         `json:"assetDescription"`
	AssetID                string          `json:"assetId" validate:"required,max=128"`
	AssetInfo              string          `json:"assetInfo"`
	AssetInfoType          string          `json:"assetInfoType"`
	AssetMask              *string         `json:"assetMask"`
	AssetName              *string         `json:"assetName"`
	AssetOwnerName         *string         `json:"assetOwnerName"`
	BalanceAsOf            time.Time       `json:"balanceAsOf"`
	BalanceCostBasis       decimal.Decimal `json:"balanceCostBasis"`
	BalanceCostFrom        string          `json:"balanceCostFrom"`
	BalanceCurrent         decimal.Decimal `json:"balanceCurrent"`
	BalanceFrom            string          `json:"balanceFrom"`
	BalancePrice           decimal.Decimal `json:"balancePrice"`
	BalancePriceFrom       string          `json:"balancePriceFrom"`
	BalanceQuantityCurrent decimal.Decimal `json:"balanceQuantityCurrent"`
	BeneficiaryComposition *string         `json:"beneficiaryComposition"`
	CognitoID              string          `json:"cognitoId"`
	CreationDate           time.Time       `json:"creationDate"`
	CurrencyCode           *string         `json:"currencyCode" validate:"omitempty,len=3,alpha"`
	DeactivateBy           *time.Time      `json:"deactivateBy"`
	DescriptionEstatePlan  string          `json:"descriptionEstatePlan"`
	HasInvestment          *string         `json:"hasInvestment"`
	Holdings               Holdings        `json:"holdings"`
	IncludeInNetWorth      bool            `json:"includeInNetWorth"`
	InstitutionID          int64           `json:"institutionId"`
	InstitutionName        *string         `json:"institutionName"`
	Integration            *string         `json:"integration"`
	IntegrationAccountID   *string         `json:"integrationAccountId"`
	IsActive               bool            `json:"isActive"`
	IsAsset                bool            `json:"isAsset"`
	IsFavorite             bool            `json:"isFavorite"`
	IsLinkedVendor         *bool           `json:"isLinkedVendor"`
	LastUpdate             time.Time       `json:"lastUpdate"`
	LastUpdateAttempt      time.Time       `json:"lastUpdateAttempt"`
	LogoName               *string         `json:"logoName"`
	ModificationDate       time.Time       `json:"modificationDate"`
	NextUpdate             *time.Time      `json:"nextUpdate"`
	Nickname               string          `json:"nickname" validate:"required,max=256"`
	Note                   *string         `json:"note"`
	NoteDate               *time.Time      `json:"noteDate"`
	Ownership              *string         `json:"ownership"`
	PrimaryAssetCategory   string          `json:"primaryAssetCategory" validate:"required"`
	Status                 string          `json:"status"`
	StatusCode             json.RawMessage `json:"statusCode"` // no documented values yet
	UserInstitutionID      string          `json:"userInstitutionId"`
	VendorAccountType      *string         `json:"vendorAccountType"`
	VendorContainer        *string         `json:"vendorContainer"`
	VendorResponse         *string         `json:"vendorResponse"`
	VendorResponseType     string          `json:"vendorResponseType"`
	WealthAssetType        string          `json:"wealthAssetType" validate:"required"`
	WID                    string          `json:"wid" validate:"required,numeric"`
}

// Holdings breaks an asset down by asset class.
type Holdings struct {
	MajorAssetClasses []MajorAssetClass `json:"majorAssetClasses" validate:"dive"`
}

// MajorAssetClass groups minor classes under a major class such as FixedIncome.
type MajorAssetClass struct {
	AssetClasses []AssetClass `json:"assetClasses" validate:"dive"`
	MajorClass   string       `json:"majorClass" validate:"required"`
}

// AssetClass is the value held in one minor asset class.
type AssetClass struct {
	MinorAssetClass string          `json:"minorAssetClass" validate:"required"`
	Value           decimal.Decimal `json:"value"`
}
