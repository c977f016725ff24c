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

// PaymentService records payments against validated declarations and
// ventilates each one between the commune and the public treasury.
type PaymentService struct {
	store  *store.Store
	logger *zap.Logger
}

// NewPaymentService creates a new payment service
func NewPaymentService(st *store.Store) *PaymentService {
	return &PaymentService{
		store:  st,
		logger: logger.Log,
	}
}

// PaymentRecording is the outcome of recording a payment: the payment, its
// two beneficiary shares and the confirmation notification, all created in
// the same unit.
type PaymentRecording struct {
	Payment       business.Payment
	Beneficiaries []business.Beneficiary
	Notification  business.Notification
}

// RecordPayment records a payment against a declaration. The declaration
// must be VALIDEE; anything else is a precondition failure and nothing is
// written. The amount is split 60% to the commune and 40% to the public
// treasury, the treasury share taken by subtraction so the two always sum
// back to the amount paid exactly.
func (s *PaymentService) RecordPayment(ctx context.Context, p params.RecordPaymentParams) (*PaymentRecording, error) {
	if p.DeclarationID == 0 || p.AmountPaid == nil || p.Mode == "" {
		return nil, apperrors.Validation("id_declaration, montant_paye et mode_paiement sont obligatoires")
	}

	amountPaid, _, err := helpers.CoerceAmount(p.AmountPaid)
	if err != nil {
		return nil, apperrors.Validation(err.Error())
	}
	if !amountPaid.IsPositive() {
		return nil, apperrors.Validation("montant_paye doit être positif")
	}

	now := time.Now()
	hundred := decimal.NewFromInt(100)

	var result PaymentRecording
	err = s.store.RunInTransaction(func(tx *store.Tx) error {
		declaration, ok := tx.Declaration(p.DeclarationID)
		if !ok {
			return apperrors.NotFound("Déclaration introuvable")
		}
		if declaration.Status != business.DeclarationStatusValidated {
			return apperrors.Precondition("Impossible de payer une déclaration non validée")
		}

		id := tx.NextID(store.CounterPayment)
		payment := business.Payment{
			ID:            id,
			DeclarationID: p.DeclarationID,
			AmountPaid:    amountPaid,
			Mode:          p.Mode,
			Reference:     helpers.PaymentReference(now.Year(), id),
			Status:        business.PaymentStatusCompleted,
			PaidAt:        helpers.DateOnly(now),
		}
		tx.InsertPayment(payment)

		municipalityAmount := amountPaid.Mul(business.MunicipalityShare).Div(hundred)
		treasuryAmount := amountPaid.Sub(municipalityAmount)

		beneficiaries := []business.Beneficiary{
			{
				ID:         tx.NextID(store.CounterBeneficiary),
				PaymentID:  id,
				Name:       business.BeneficiaryMunicipality,
				Percentage: business.MunicipalityShare,
				Amount:     municipalityAmount,
			},
			{
				ID:         tx.NextID(store.CounterBeneficiary),
				PaymentID:  id,
				Name:       business.BeneficiaryTreasury,
				Percentage: business.TreasuryShare,
				Amount:     treasuryAmount,
			},
		}
		for _, b := range beneficiaries {
			tx.InsertBeneficiary(b)
		}

		notification := business.Notification{
			ID:         tx.NextID(store.CounterNotification),
			Title:      "Paiement confirmé",
			Body:       fmt.Sprintf("Paiement %s de %s confirmé.", payment.Reference, helpers.FormatMoney(amountPaid)),
			Status:     business.NotificationStatusUnread,
			TaxpayerID: declaration.TaxpayerID,
			CreatedAt:  helpers.DateOnly(now),
		}
		tx.InsertNotification(notification)

		result = PaymentRecording{
			Payment:       payment,
			Beneficiaries: beneficiaries,
			Notification:  notification,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Payment recorded",
		zap.Int64("payment_id", result.Payment.ID),
		zap.String("reference", result.Payment.Reference),
		zap.Int64("declaration_id", p.DeclarationID),
		zap.String("amount", amountPaid.String()))

	return &result, nil
}

// GetBeneficiaries returns the beneficiary shares of a payment.
func (s *PaymentService) GetBeneficiaries(ctx context.Context, paymentID int64) ([]business.Beneficiary, error) {
	beneficiaries := []business.Beneficiary{}
	err := s.store.View(func(tx *store.Tx) error {
		beneficiaries = append(beneficiaries, tx.BeneficiariesByPayment(paymentID)...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return beneficiaries, nil
}

// List returns payments matching the filters, paginated.
func (s *PaymentService) List(ctx context.Context, p params.ListPaymentsParams) (*helpers.Page[business.Payment], error) {
	items := []business.Payment{}

	err := s.store.View(func(tx *store.Tx) error {
		for _, payment := range tx.Payments() {
			if p.DeclarationID != 0 && payment.DeclarationID != p.DeclarationID {
				continue
			}
			if p.Status != "" && payment.Status != p.Status {
				continue
			}
			if p.Mode != "" && payment.Mode != p.Mode {
				continue
			}
			items = append(items, payment)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	page := helpers.Paginate(items, p.Page, p.Size)
	return &page, nil
}

// Get returns a payment enriched with its beneficiary shares and the
// declaration it settles.
func (s *PaymentService) Get(ctx context.Context, paymentID int64) (*responses.PaymentDetail, error) {
	var detail responses.PaymentDetail

	err := s.store.View(func(tx *store.Tx) error {
		payment, ok := tx.Payment(paymentID)
		if !ok {
			return apperrors.NotFound("Paiement introuvable")
		}

		detail = responses.PaymentDetail{
			Payment:       payment,
			Beneficiaries: []business.Beneficiary{},
		}
		detail.Beneficiaries = append(detail.Beneficiaries, tx.BeneficiariesByPayment(paymentID)...)
		if declaration, ok := tx.Declaration(payment.DeclarationID); ok {
			detail.Declaration = &declaration
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &detail, nil
}
