package services

import (
	"context"
	"fmt"
	"time"

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

// enforcementSurchargeRate is the fixed surcharge levied on the principal of
// every AMR, in percent.
var enforcementSurchargeRate = decimal.NewFromInt(10)

// EnforcementService issues and tracks enforcement notices (AMR).
type EnforcementService struct {
	store  *store.Store
	logger *zap.Logger
}

// NewEnforcementService creates a new enforcement service
func NewEnforcementService(st *store.Store) *EnforcementService {
	return &EnforcementService{
		store:  st,
		logger: logger.Log,
	}
}

// EnforcementIssue is the outcome of issuing an AMR: the notice and the
// urgent notification emitted with it.
type EnforcementIssue struct {
	Enforcement  business.EnforcementNotice
	Notification business.Notification
}

// Create issues an AMR against a taxpayer. The surcharge is 10% of the
// principal and the total is computed, never supplied. An urgent
// notification is emitted in the same unit.
func (s *EnforcementService) Create(ctx context.Context, p params.CreateEnforcementParams) (*EnforcementIssue, error) {
	if p.TaxpayerID == 0 || p.Reason == "" || p.Principal == nil {
		return nil, apperrors.Validation("id_contribuable, motif et montant_initial sont obligatoires")
	}

	principal, _, err := helpers.CoerceAmount(p.Principal)
	if err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	now := time.Now()

	var result EnforcementIssue
	err = s.store.RunInTransaction(func(tx *store.Tx) error {
		if _, ok := tx.Taxpayer(p.TaxpayerID); !ok {
			return apperrors.NotFound("Contribuable introuvable")
		}

		id := tx.NextID(store.CounterEnforcement)
		surcharge := principal.Mul(enforcementSurchargeRate).Div(decimal.NewFromInt(100))
		total := principal.Add(surcharge)

		enforcement := business.EnforcementNotice{
			ID:         id,
			Number:     helpers.EnforcementNumber(now.Year(), id),
			IssuedAt:   helpers.DateOnly(now),
			Reason:     p.Reason,
			Principal:  principal,
			Surcharge:  surcharge,
			Total:      total,
			Status:     business.EnforcementStatusInProgress,
			TaxpayerID: p.TaxpayerID,
		}
		tx.InsertEnforcement(enforcement)

		notification := business.Notification{
			ID:         tx.NextID(store.CounterNotification),
			Title:      "URGENT — Avis de Mise en Recouvrement",
			Body:       fmt.Sprintf("Un AMR (N° %d) de %s a été émis contre vous.", enforcement.Number, helpers.FormatMoney(total)),
			Status:     business.NotificationStatusUnread,
			TaxpayerID: p.TaxpayerID,
			CreatedAt:  helpers.DateOnly(now),
		}
		tx.InsertNotification(notification)

		result = EnforcementIssue{Enforcement: enforcement, Notification: notification}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Enforcement notice issued",
		zap.Int64("enforcement_id", result.Enforcement.ID),
		zap.Int64("number", result.Enforcement.Number),
		zap.Int64("taxpayer_id", p.TaxpayerID),
		zap.String("total", result.Enforcement.Total.String()))

	return &result, nil
}

// ChangeStatus moves an AMR to a new status after the enum check.
func (s *EnforcementService) ChangeStatus(ctx context.Context, enforcementID int64, newStatus string) (*business.EnforcementNotice, error) {
	var updated business.EnforcementNotice

	err := s.store.RunInTransaction(func(tx *store.Tx) error {
		if _, ok := tx.Enforcement(enforcementID); !ok {
			return apperrors.NotFound("AMR introuvable")
		}
		if !business.IsValidEnforcementStatus(newStatus) {
			return apperrors.Validation("Statut invalide. Valeurs: EN_COURS, APURE, CONTESTE, ANNULE")
		}
		tx.UpdateEnforcement(enforcementID, func(e *business.EnforcementNotice) {
			e.Status = newStatus
			updated = *e
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Enforcement status changed",
		zap.Int64("enforcement_id", enforcementID),
		zap.String("new_status", newStatus))

	return &updated, nil
}

// List returns AMRs matching the filters, paginated.
func (s *EnforcementService) List(ctx context.Context, p params.ListEnforcementsParams) (*helpers.Page[business.EnforcementNotice], error) {
	items := []business.EnforcementNotice{}

	err := s.store.View(func(tx *store.Tx) error {
		for _, e := range tx.Enforcements() {
			if p.Status != "" && e.Status != p.Status {
				continue
			}
			if p.TaxpayerID != 0 && e.TaxpayerID != p.TaxpayerID {
				continue
			}
			items = append(items, e)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	page := helpers.Paginate(items, p.Page, p.Size)
	return &page, nil
}

// Get returns an AMR enriched with its taxpayer.
func (s *EnforcementService) Get(ctx context.Context, enforcementID int64) (*responses.EnforcementDetail, error) {
	var detail responses.EnforcementDetail

	err := s.store.View(func(tx *store.Tx) error {
		enforcement, ok := tx.Enforcement(enforcementID)
		if !ok {
			return apperrors.NotFound("AMR introuvable")
		}
		detail = responses.EnforcementDetail{EnforcementNotice: enforcement}
		if taxpayer, ok := tx.Taxpayer(enforcement.TaxpayerID); ok {
			detail.Taxpayer = &taxpayer
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &detail, nil
}
