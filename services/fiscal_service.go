package services

import (
	"context"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/fiscalis/dgi-api/apperrors"
	"github.com/fiscalis/dgi-api/helpers"
	"github.com/fiscalis/dgi-api/logger"
	"github.com/fiscalis/dgi-api/store"
	"github.com/fiscalis/dgi-api/types/api/params"
	"github.com/fiscalis/dgi-api/types/api/responses"
	"github.com/fiscalis/dgi-api/types/business"
)

// License-tax (patente) rates in percent per activity sector. Unknown
// sectors take the default commercial rate.
var (
	licenseTaxRateIndustry = decimal.NewFromFloat(2.5)
	licenseTaxRateServices = decimal.NewFromFloat(3.5)
	licenseTaxRateDefault  = decimal.NewFromInt(3)

	// Additional centimes are levied at 10% of the base duty.
	additionalCentimesRate = decimal.NewFromInt(10)
)

// TDL (taxe de développement local) rates in FCFA per square meter by
// municipality zoning.
var (
	tdlRateSemiUrban = decimal.NewFromInt(1500)
	tdlRateUrban     = decimal.NewFromInt(2500)
)

// FiscalService computes stateless tax amounts: the license tax (patente)
// and the local development tax (TDL).
type FiscalService struct {
	store  *store.Store
	logger *zap.Logger
}

// NewFiscalService creates a new fiscal calculator service
func NewFiscalService(st *store.Store) *FiscalService {
	return &FiscalService{
		store:  st,
		logger: logger.Log,
	}
}

// ComputeLicenseTax computes the license tax for a revenue figure and an
// activity sector: 2.5% for INDUSTRIE, 3.5% for PRESTATION_SERVICE, 3%
// otherwise, plus 10% additional centimes on the base duty. Nothing is
// persisted.
func (s *FiscalService) ComputeLicenseTax(ctx context.Context, p params.LicenseTaxParams) (*responses.LicenseTaxResult, error) {
	if p.Revenue == nil {
		return nil, apperrors.Validation("chiffre_affaire est obligatoire")
	}
	revenue, _, err := helpers.CoerceAmount(p.Revenue)
	if err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	rate := licenseTaxRateDefault
	switch p.ActivityType {
	case "INDUSTRIE":
		rate = licenseTaxRateIndustry
	case "PRESTATION_SERVICE":
		rate = licenseTaxRateServices
	}

	hundred := decimal.NewFromInt(100)
	baseDue := revenue.Mul(rate).Div(hundred)
	centimes := baseDue.Mul(additionalCentimesRate).Div(hundred)

	return &responses.LicenseTaxResult{
		Revenue:            revenue,
		AppliedRate:        rate.String() + "%",
		BaseDue:            baseDue,
		AdditionalCentimes: centimes,
		Total:              baseDue.Add(centimes),
	}, nil
}

// ComputeLocalDevelopmentTax computes the TDL for a surface area. The rate
// depends on the municipality's zoning; an unknown or unspecified commune
// takes the urban rate. Nothing is persisted.
func (s *FiscalService) ComputeLocalDevelopmentTax(ctx context.Context, p params.LocalDevelopmentTaxParams) (*responses.LocalDevelopmentTaxResult, error) {
	if p.SurfaceArea == nil {
		return nil, apperrors.Validation("surface_m2 est obligatoire")
	}
	surface, _, err := helpers.CoerceAmount(p.SurfaceArea)
	if err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	rate := tdlRateUrban
	if p.MunicipalityName != "" {
		err = s.store.View(func(tx *store.Tx) error {
			if municipality, ok := tx.MunicipalityByName(p.MunicipalityName); ok {
				if municipality.Type == business.MunicipalityTypeSemiUrban {
					rate = tdlRateSemiUrban
				}
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	return &responses.LocalDevelopmentTaxResult{
		SurfaceArea: surface,
		RatePerM2:   rate,
		Total:       surface.Mul(rate),
	}, nil
}
