package services

import (
	"context"
	"math"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/fiscalis/dgi-api/logger"
	"github.com/fiscalis/dgi-api/store"
	"github.com/fiscalis/dgi-api/types/api/responses"
	"github.com/fiscalis/dgi-api/types/business"
)

// DashboardService computes read-only aggregations over the fiscal data.
type DashboardService struct {
	store  *store.Store
	logger *zap.Logger
}

// NewDashboardService creates a new dashboard aggregation service
func NewDashboardService(st *store.Store) *DashboardService {
	return &DashboardService{
		store:  st,
		logger: logger.Log,
	}
}

// Stats aggregates the fiscal position, globally when taxpayerID is zero,
// otherwise scoped to that taxpayer. Collected revenue only counts EFFECTUE
// payments whose declaration is VALIDEE. The validation rate is a whole
// percentage, zero when there are no declarations.
func (s *DashboardService) Stats(ctx context.Context, taxpayerID int64) (*responses.DashboardStats, error) {
	stats := &responses.DashboardStats{}
	stats.Enforcement.TotalAmount = decimal.Zero
	stats.Revenue.TotalCollected = decimal.Zero

	err := s.store.View(func(tx *store.Tx) error {
		validatedByTaxpayer := map[int64]bool{}

		for _, d := range tx.Declarations() {
			if d.Status == business.DeclarationStatusValidated {
				validatedByTaxpayer[d.ID] = true
			}
			if taxpayerID != 0 && d.TaxpayerID != taxpayerID {
				continue
			}
			stats.Declarations.Total++
			switch d.Status {
			case business.DeclarationStatusValidated:
				stats.Declarations.Validated++
			case business.DeclarationStatusInProgress:
				stats.Declarations.InProgress++
			case business.DeclarationStatusRejected:
				stats.Declarations.Rejected++
			}
		}
		if stats.Declarations.Total > 0 {
			stats.Declarations.ValidationRate = int(math.Round(
				float64(stats.Declarations.Validated) * 100 / float64(stats.Declarations.Total)))
		}

		for _, n := range tx.Notices() {
			if taxpayerID != 0 && n.TaxpayerID != taxpayerID {
				continue
			}
			stats.Notices.Total++
			if n.Status == business.NoticeStatusPaid {
				stats.Notices.Paid++
			} else {
				stats.Notices.Unpaid++
			}
		}

		for _, e := range tx.Enforcements() {
			if taxpayerID != 0 && e.TaxpayerID != taxpayerID {
				continue
			}
			stats.Enforcement.Total++
			if e.Status == business.EnforcementStatusInProgress {
				stats.Enforcement.InProgress++
				stats.Enforcement.TotalAmount = stats.Enforcement.TotalAmount.Add(e.Total)
			}
		}

		for _, p := range tx.Payments() {
			if p.Status != business.PaymentStatusCompleted {
				continue
			}
			declaration, ok := tx.Declaration(p.DeclarationID)
			if !ok || !validatedByTaxpayer[declaration.ID] {
				continue
			}
			if taxpayerID != 0 && declaration.TaxpayerID != taxpayerID {
				continue
			}
			stats.Revenue.TotalCollected = stats.Revenue.TotalCollected.Add(p.AmountPaid)
		}

		for _, n := range tx.Notifications() {
			if taxpayerID != 0 && n.TaxpayerID != taxpayerID {
				continue
			}
			if n.Status == business.NotificationStatusUnread {
				stats.Notifications.Unread++
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}
	return stats, nil
}

// RevenueByMunicipality reports collected revenue and taxpayer headcount per
// commune. Revenue follows the taxpayer's commune of registration; payments
// of taxpayers without a commune are left out.
func (s *DashboardService) RevenueByMunicipality(ctx context.Context) ([]responses.MunicipalityRevenue, error) {
	rows := []responses.MunicipalityRevenue{}

	err := s.store.View(func(tx *store.Tx) error {
		taxpayerMunicipality := map[int64]int64{}
		countByMunicipality := map[int64]int{}
		for _, t := range tx.Taxpayers() {
			if t.MunicipalityID == 0 {
				continue
			}
			taxpayerMunicipality[t.ID] = t.MunicipalityID
			countByMunicipality[t.MunicipalityID]++
		}

		declarationTaxpayer := map[int64]int64{}
		validated := map[int64]bool{}
		for _, d := range tx.Declarations() {
			declarationTaxpayer[d.ID] = d.TaxpayerID
			if d.Status == business.DeclarationStatusValidated {
				validated[d.ID] = true
			}
		}

		revenueByMunicipality := map[int64]decimal.Decimal{}
		for _, p := range tx.Payments() {
			if p.Status != business.PaymentStatusCompleted || !validated[p.DeclarationID] {
				continue
			}
			municipalityID, ok := taxpayerMunicipality[declarationTaxpayer[p.DeclarationID]]
			if !ok {
				continue
			}
			revenueByMunicipality[municipalityID] = revenueByMunicipality[municipalityID].Add(p.AmountPaid)
		}

		for _, m := range tx.Municipalities() {
			revenue, ok := revenueByMunicipality[m.ID]
			if !ok {
				revenue = decimal.Zero
			}
			rows = append(rows, responses.MunicipalityRevenue{
				Municipality:  m.Name,
				Revenue:       revenue,
				TaxpayerCount: countByMunicipality[m.ID],
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// DeclarationsByType reports declaration volume for each of the four fixed
// types, with the amount due summed across the validated ones. Types with no
// declarations still get a zero row.
func (s *DashboardService) DeclarationsByType(ctx context.Context) ([]responses.DeclarationTypeStats, error) {
	rows := []responses.DeclarationTypeStats{}

	err := s.store.View(func(tx *store.Tx) error {
		counts := map[string]int{}
		amounts := map[string]decimal.Decimal{}
		for _, d := range tx.Declarations() {
			counts[d.Type]++
			if d.Status == business.DeclarationStatusValidated {
				amounts[d.Type] = amounts[d.Type].Add(d.AmountDue)
			}
		}

		for _, t := range business.DeclarationTypes {
			amount, ok := amounts[t]
			if !ok {
				amount = decimal.Zero
			}
			rows = append(rows, responses.DeclarationTypeStats{
				Type:        t,
				Count:       counts[t],
				TotalAmount: amount,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}
