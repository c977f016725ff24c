package services

import (
	"context"
	"fmt"
	"strings"
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

// DeclarationService drives the declaration lifecycle: creation, status
// transitions and their cascading fiscal side effects.
type DeclarationService struct {
	store  *store.Store
	logger *zap.Logger
}

// NewDeclarationService creates a new declaration lifecycle service
func NewDeclarationService(st *store.Store) *DeclarationService {
	return &DeclarationService{
		store:  st,
		logger: logger.Log,
	}
}

// DeclarationCreation is the outcome of filing a declaration: the record
// plus the submission notification emitted with it.
type DeclarationCreation struct {
	Declaration  business.Declaration
	Notification business.Notification
}

// StatusChange is the outcome of a status transition: the updated record,
// the prior status, and the side-effect records emitted in the same unit.
type StatusChange struct {
	Declaration  business.Declaration
	PriorStatus  string
	Notification *business.Notification
	Notice       *business.AssessmentNotice
}

// Create files a declaration for a taxpayer. The fiscal year defaults to the
// current year; the amount due and any declared inputs arrive through the
// extension map. A submission notification is emitted in the same unit.
func (s *DeclarationService) Create(ctx context.Context, p params.CreateDeclarationParams) (*DeclarationCreation, error) {
	if p.TaxpayerID == 0 || p.Type == "" {
		return nil, apperrors.Validation("id_contribuable et type_declaration sont obligatoires")
	}
	if err := helpers.ValidateExtraFields(p.Extra); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	amountDue, _, err := helpers.CoerceAmount(p.AmountDue)
	if err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	now := time.Now()
	fiscalYear := p.FiscalYear
	if fiscalYear == 0 {
		fiscalYear = now.Year()
	}

	var result DeclarationCreation
	err = s.store.RunInTransaction(func(tx *store.Tx) error {
		if _, ok := tx.Taxpayer(p.TaxpayerID); !ok {
			return apperrors.NotFound("Contribuable introuvable")
		}

		id := tx.NextID(store.CounterDeclaration)
		declaration := business.Declaration{
			ID:          id,
			TaxpayerID:  p.TaxpayerID,
			Type:        strings.ToUpper(p.Type),
			FiscalYear:  fiscalYear,
			Reference:   helpers.DeclarationReference(fiscalYear, id),
			Status:      business.DeclarationStatusInProgress,
			SubmittedAt: helpers.DateOnly(now),
			AmountDue:   amountDue,
			Extra:       p.Extra,
		}
		tx.InsertDeclaration(declaration)

		notification := business.Notification{
			ID:         tx.NextID(store.CounterNotification),
			Title:      "Déclaration soumise",
			Body:       fmt.Sprintf("Votre déclaration %s a été soumise avec succès.", declaration.Reference),
			Status:     business.NotificationStatusUnread,
			TaxpayerID: p.TaxpayerID,
			CreatedAt:  helpers.DateOnly(now),
		}
		tx.InsertNotification(notification)

		result = DeclarationCreation{Declaration: declaration, Notification: notification}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Declaration created",
		zap.Int64("declaration_id", result.Declaration.ID),
		zap.String("reference", result.Declaration.Reference),
		zap.Int64("taxpayer_id", p.TaxpayerID))

	return &result, nil
}

// ChangeStatus applies a status transition. Any of the four statuses may
// follow any other; the enum check is the only restriction. A status
// notification is emitted for VALIDEE, REJETEE and ANNULEE, and the first
// transition into VALIDEE generates exactly one assessment notice carrying
// the declaration's current amount due. Re-validating never duplicates the
// notice.
func (s *DeclarationService) ChangeStatus(ctx context.Context, p params.ChangeDeclarationStatusParams) (*StatusChange, error) {
	now := time.Now()

	var result StatusChange
	err := s.store.RunInTransaction(func(tx *store.Tx) error {
		declaration, ok := tx.Declaration(p.DeclarationID)
		if !ok {
			return apperrors.NotFound("Déclaration introuvable")
		}
		if !business.IsValidDeclarationStatus(p.NewStatus) {
			return apperrors.Validation("Statut invalide. Valeurs: EN_COURS, VALIDEE, REJETEE, ANNULEE")
		}

		priorStatus := declaration.Status
		tx.UpdateDeclaration(p.DeclarationID, func(d *business.Declaration) {
			d.Status = p.NewStatus
		})
		declaration.Status = p.NewStatus

		result = StatusChange{Declaration: declaration, PriorStatus: priorStatus}

		if body, title := statusNotification(declaration, p.NewStatus, p.RejectionReason); body != "" {
			notification := business.Notification{
				ID:         tx.NextID(store.CounterNotification),
				Title:      title,
				Body:       body,
				Status:     business.NotificationStatusUnread,
				TaxpayerID: declaration.TaxpayerID,
				CreatedAt:  helpers.DateOnly(now),
			}
			tx.InsertNotification(notification)
			result.Notification = &notification
		}

		// First validation generates the assessment notice; re-entering
		// VALIDEE must not create a second one.
		if p.NewStatus == business.DeclarationStatusValidated && priorStatus != business.DeclarationStatusValidated {
			notice := business.AssessmentNotice{
				ID:            tx.NextID(store.CounterNotice),
				Reference:     helpers.NoticeReference(now),
				ReceiverBank:  business.ReceiverBankAccount,
				ReceivedAt:    helpers.DateOnly(now),
				NotifiedAt:    helpers.DateOnly(now),
				Amount:        declaration.AmountDue,
				Status:        business.NoticeStatusUnpaid,
				TaxpayerID:    declaration.TaxpayerID,
				DeclarationID: declaration.ID,
			}
			tx.InsertNotice(notice)
			result.Notice = &notice
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Declaration status changed",
		zap.Int64("declaration_id", p.DeclarationID),
		zap.String("prior_status", result.PriorStatus),
		zap.String("new_status", p.NewStatus),
		zap.Bool("notice_generated", result.Notice != nil))

	return &result, nil
}

// statusNotification builds the notification title and body for a status
// transition. EN_COURS re-entry emits nothing.
func statusNotification(d business.Declaration, newStatus, rejectionReason string) (body, title string) {
	switch newStatus {
	case business.DeclarationStatusValidated:
		return fmt.Sprintf("Votre déclaration %s a été validée.", d.Reference), "Déclaration validée"
	case business.DeclarationStatusRejected:
		if rejectionReason == "" {
			rejectionReason = "Non précisé"
		}
		return fmt.Sprintf("Votre déclaration %s a été rejetée. Motif: %s", d.Reference, rejectionReason), "Déclaration rejetée"
	case business.DeclarationStatusCancelled:
		return fmt.Sprintf("Votre déclaration %s a été annulée.", d.Reference), "Déclaration annulée"
	}
	return "", ""
}

// GetPayments reports the payments recorded against a declaration together
// with the total paid and the remaining balance, floored at zero. The
// remaining balance is null when the declaration does not resolve.
func (s *DeclarationService) GetPayments(ctx context.Context, declarationID int64) (*responses.DeclarationPayments, error) {
	result := &responses.DeclarationPayments{Payments: []business.Payment{}}

	err := s.store.View(func(tx *store.Tx) error {
		result.Payments = append(result.Payments, tx.PaymentsByDeclaration(declarationID)...)

		totalPaid := decimal.Zero
		for _, p := range result.Payments {
			totalPaid = totalPaid.Add(p.AmountPaid)
		}
		result.TotalPaid = totalPaid

		if declaration, ok := tx.Declaration(declarationID); ok {
			remaining := declaration.AmountDue.Sub(totalPaid)
			if remaining.IsNegative() {
				remaining = decimal.Zero
			}
			result.RemainingBalance = &remaining
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// List returns declarations matching the filters, enriched with the
// taxpayer display name, paginated.
func (s *DeclarationService) List(ctx context.Context, p params.ListDeclarationsParams) (*helpers.Page[responses.DeclarationListItem], error) {
	items := []responses.DeclarationListItem{}

	err := s.store.View(func(tx *store.Tx) error {
		for _, d := range tx.Declarations() {
			if p.Status != "" && d.Status != p.Status {
				continue
			}
			if p.Type != "" && d.Type != p.Type {
				continue
			}
			if p.FiscalYear != 0 && d.FiscalYear != p.FiscalYear {
				continue
			}
			if p.TaxpayerID != 0 && d.TaxpayerID != p.TaxpayerID {
				continue
			}

			item := responses.DeclarationListItem{Declaration: d}
			if taxpayer, ok := tx.Taxpayer(d.TaxpayerID); ok {
				name := taxpayer.DisplayName()
				item.TaxpayerName = &name
			}
			items = append(items, item)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	page := helpers.Paginate(items, p.Page, p.Size)
	return &page, nil
}

// Get returns a declaration enriched with its taxpayer, establishment and
// payments.
func (s *DeclarationService) Get(ctx context.Context, declarationID int64) (*responses.DeclarationDetail, error) {
	var detail responses.DeclarationDetail

	err := s.store.View(func(tx *store.Tx) error {
		declaration, ok := tx.Declaration(declarationID)
		if !ok {
			return apperrors.NotFound("Déclaration introuvable")
		}

		detail = responses.DeclarationDetail{
			Declaration: declaration,
			Payments:    []business.Payment{},
		}
		if taxpayer, ok := tx.Taxpayer(declaration.TaxpayerID); ok {
			detail.Taxpayer = &taxpayer
		}
		if establishmentID, ok := extraID(declaration.Extra, "id_etablissement"); ok {
			if establishment, ok := tx.Establishment(establishmentID); ok {
				detail.Establishment = &establishment
			}
		}
		detail.Payments = append(detail.Payments, tx.PaymentsByDeclaration(declarationID)...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &detail, nil
}

// Update merges fields into an existing declaration. The id is immutable
// and the status should normally move through ChangeStatus; a status given
// here is still enum checked.
func (s *DeclarationService) Update(ctx context.Context, p params.UpdateDeclarationParams) (*business.Declaration, error) {
	if p.Status != nil && !business.IsValidDeclarationStatus(*p.Status) {
		return nil, apperrors.Validation("Statut invalide. Valeurs: EN_COURS, VALIDEE, REJETEE, ANNULEE")
	}
	if err := helpers.ValidateExtraFields(p.Extra); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	amountDue, amountGiven, err := helpers.CoerceAmount(p.AmountDue)
	if err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	var updated business.Declaration
	err = s.store.RunInTransaction(func(tx *store.Tx) error {
		ok := tx.UpdateDeclaration(p.DeclarationID, func(d *business.Declaration) {
			if p.Type != nil {
				d.Type = *p.Type
			}
			if p.FiscalYear != nil {
				d.FiscalYear = *p.FiscalYear
			}
			if p.Status != nil {
				d.Status = *p.Status
			}
			if amountGiven {
				d.AmountDue = amountDue
			}
			for key, value := range p.Extra {
				if d.Extra == nil {
					d.Extra = map[string]any{}
				}
				d.Extra[key] = value
			}
			updated = *d
		})
		if !ok {
			return apperrors.NotFound("Déclaration introuvable")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// extraID reads a numeric entity reference out of an extension map.
func extraID(extra map[string]any, key string) (int64, bool) {
	if extra == nil {
		return 0, false
	}
	switch v := extra[key].(type) {
	case float64:
		return int64(v), true
	case int:
		return int64(v), true
	case int64:
		return v, true
	}
	return 0, false
}
