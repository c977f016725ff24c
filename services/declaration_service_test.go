package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fiscalis/dgi-api/apperrors"
	"github.com/fiscalis/dgi-api/logger"
	"github.com/fiscalis/dgi-api/services"
	"github.com/fiscalis/dgi-api/store"
	"github.com/fiscalis/dgi-api/types/api/params"
	"github.com/fiscalis/dgi-api/types/business"
)

func init() {
	logger.InitLogger("test")
}

// newStoreWithTaxpayer builds an empty store holding one registered taxpayer
// and returns its id.
func newStoreWithTaxpayer(t *testing.T) (*store.Store, int64) {
	t.Helper()

	st := store.NewEmpty()
	taxpayerService := services.NewTaxpayerService(st)
	taxpayer, err := taxpayerService.Create(context.Background(), params.CreateTaxpayerParams{
		NIU:       "P000000000001A",
		LastName:  "MBARGA",
		FirstName: "Jean",
		Email:     "jean.mbarga@example.cm",
	})
	require.NoError(t, err)
	return st, taxpayer.ID
}

func TestDeclarationService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("files a declaration with the submission notification", func(t *testing.T) {
		st, taxpayerID := newStoreWithTaxpayer(t)
		service := services.NewDeclarationService(st)

		result, err := service.Create(ctx, params.CreateDeclarationParams{
			TaxpayerID: taxpayerID,
			Type:       business.DeclarationTypePatente,
			FiscalYear: 2024,
			AmountDue:  float64(50000),
		})
		require.NoError(t, err)

		assert.Equal(t, "DEC-2024-00001", result.Declaration.Reference)
		assert.Equal(t, business.DeclarationStatusInProgress, result.Declaration.Status)
		assert.True(t, result.Declaration.AmountDue.Equal(decimal.NewFromInt(50000)))
		assert.Equal(t, taxpayerID, result.Notification.TaxpayerID)
		assert.Equal(t, business.NotificationStatusUnread, result.Notification.Status)
		assert.Contains(t, result.Notification.Body, "DEC-2024-00001")
	})

	t.Run("defaults the fiscal year to the current year", func(t *testing.T) {
		st, taxpayerID := newStoreWithTaxpayer(t)
		service := services.NewDeclarationService(st)

		result, err := service.Create(ctx, params.CreateDeclarationParams{
			TaxpayerID: taxpayerID,
			Type:       business.DeclarationTypeIGS,
		})
		require.NoError(t, err)

		year := time.Now().Year()
		assert.Equal(t, year, result.Declaration.FiscalYear)
		assert.Equal(t, fmt.Sprintf("DEC-%d-00001", year), result.Declaration.Reference)
		assert.True(t, result.Declaration.AmountDue.IsZero())
	})

	t.Run("rejects a missing taxpayer or type", func(t *testing.T) {
		st, _ := newStoreWithTaxpayer(t)
		service := services.NewDeclarationService(st)

		_, err := service.Create(ctx, params.CreateDeclarationParams{Type: business.DeclarationTypeTDL})
		require.Error(t, err)
		assert.True(t, apperrors.IsValidation(err))

		_, err = service.Create(ctx, params.CreateDeclarationParams{TaxpayerID: 1})
		require.Error(t, err)
		assert.True(t, apperrors.IsValidation(err))
	})

	t.Run("rejects an unknown taxpayer without writing anything", func(t *testing.T) {
		st, _ := newStoreWithTaxpayer(t)
		service := services.NewDeclarationService(st)

		_, err := service.Create(ctx, params.CreateDeclarationParams{
			TaxpayerID: 999,
			Type:       business.DeclarationTypePatente,
		})
		require.Error(t, err)
		assert.True(t, apperrors.IsNotFound(err))
		assert.EqualError(t, err, "Contribuable introuvable")

		listing, err := service.List(ctx, params.ListDeclarationsParams{})
		require.NoError(t, err)
		assert.Equal(t, 0, listing.TotalElements)
	})

	t.Run("rejects a non scalar extension field", func(t *testing.T) {
		st, taxpayerID := newStoreWithTaxpayer(t)
		service := services.NewDeclarationService(st)

		_, err := service.Create(ctx, params.CreateDeclarationParams{
			TaxpayerID: taxpayerID,
			Type:       business.DeclarationTypePatente,
			Extra:      map[string]any{"details": map[string]any{"nested": true}},
		})
		require.Error(t, err)
		assert.True(t, apperrors.IsValidation(err))
	})

	t.Run("allocates sequential references", func(t *testing.T) {
		st, taxpayerID := newStoreWithTaxpayer(t)
		service := services.NewDeclarationService(st)

		first, err := service.Create(ctx, params.CreateDeclarationParams{
			TaxpayerID: taxpayerID, Type: business.DeclarationTypePatente, FiscalYear: 2025,
		})
		require.NoError(t, err)
		second, err := service.Create(ctx, params.CreateDeclarationParams{
			TaxpayerID: taxpayerID, Type: business.DeclarationTypeLicence, FiscalYear: 2025,
		})
		require.NoError(t, err)

		assert.Equal(t, "DEC-2025-00001", first.Declaration.Reference)
		assert.Equal(t, "DEC-2025-00002", second.Declaration.Reference)
	})
}

func TestDeclarationService_ChangeStatus(t *testing.T) {
	ctx := context.Background()

	newDeclaration := func(t *testing.T, amount float64) (*store.Store, *services.DeclarationService, int64) {
		t.Helper()
		st, taxpayerID := newStoreWithTaxpayer(t)
		service := services.NewDeclarationService(st)
		result, err := service.Create(ctx, params.CreateDeclarationParams{
			TaxpayerID: taxpayerID,
			Type:       business.DeclarationTypePatente,
			FiscalYear: 2024,
			AmountDue:  amount,
		})
		require.NoError(t, err)
		return st, service, result.Declaration.ID
	}

	t.Run("first validation generates exactly one assessment notice", func(t *testing.T) {
		_, service, declarationID := newDeclaration(t, 75000)

		result, err := service.ChangeStatus(ctx, params.ChangeDeclarationStatusParams{
			DeclarationID: declarationID,
			NewStatus:     business.DeclarationStatusValidated,
		})
		require.NoError(t, err)

		assert.Equal(t, business.DeclarationStatusValidated, result.Declaration.Status)
		assert.Equal(t, business.DeclarationStatusInProgress, result.PriorStatus)
		require.NotNil(t, result.Notice)
		assert.True(t, result.Notice.Amount.Equal(decimal.NewFromInt(75000)))
		assert.Equal(t, business.NoticeStatusUnpaid, result.Notice.Status)
		assert.Equal(t, business.ReceiverBankAccount, result.Notice.ReceiverBank)
		assert.Regexp(t, `^AV-GNR-\d+$`, result.Notice.Reference)
		require.NotNil(t, result.Notification)
		assert.Equal(t, "Déclaration validée", result.Notification.Title)
	})

	t.Run("re-validating never duplicates the notice", func(t *testing.T) {
		st, service, declarationID := newDeclaration(t, 75000)

		_, err := service.ChangeStatus(ctx, params.ChangeDeclarationStatusParams{
			DeclarationID: declarationID, NewStatus: business.DeclarationStatusValidated,
		})
		require.NoError(t, err)

		// Bounce through REJETEE and back.
		_, err = service.ChangeStatus(ctx, params.ChangeDeclarationStatusParams{
			DeclarationID: declarationID, NewStatus: business.DeclarationStatusRejected,
		})
		require.NoError(t, err)
		second, err := service.ChangeStatus(ctx, params.ChangeDeclarationStatusParams{
			DeclarationID: declarationID, NewStatus: business.DeclarationStatusValidated,
		})
		require.NoError(t, err)
		assert.NotNil(t, second.Notice)

		third, err := service.ChangeStatus(ctx, params.ChangeDeclarationStatusParams{
			DeclarationID: declarationID, NewStatus: business.DeclarationStatusValidated,
		})
		require.NoError(t, err)
		assert.Nil(t, third.Notice)

		noticeService := services.NewNoticeService(st)
		notices, err := noticeService.List(ctx, 0, "")
		require.NoError(t, err)
		assert.Len(t, notices, 2)
	})

	t.Run("rejection carries the reason, defaulted when absent", func(t *testing.T) {
		_, service, declarationID := newDeclaration(t, 10000)

		result, err := service.ChangeStatus(ctx, params.ChangeDeclarationStatusParams{
			DeclarationID: declarationID,
			NewStatus:     business.DeclarationStatusRejected,
		})
		require.NoError(t, err)
		require.NotNil(t, result.Notification)
		assert.Equal(t, "Déclaration rejetée", result.Notification.Title)
		assert.Contains(t, result.Notification.Body, "Non précisé")
		assert.Nil(t, result.Notice)
	})

	t.Run("an invalid status changes nothing", func(t *testing.T) {
		_, service, declarationID := newDeclaration(t, 10000)

		_, err := service.ChangeStatus(ctx, params.ChangeDeclarationStatusParams{
			DeclarationID: declarationID,
			NewStatus:     "VALIDATED",
		})
		require.Error(t, err)
		assert.True(t, apperrors.IsValidation(err))
		assert.EqualError(t, err, "Statut invalide. Valeurs: EN_COURS, VALIDEE, REJETEE, ANNULEE")

		detail, err := service.Get(ctx, declarationID)
		require.NoError(t, err)
		assert.Equal(t, business.DeclarationStatusInProgress, detail.Status)
	})

	t.Run("unknown declaration", func(t *testing.T) {
		st, _ := newStoreWithTaxpayer(t)
		service := services.NewDeclarationService(st)

		_, err := service.ChangeStatus(ctx, params.ChangeDeclarationStatusParams{
			DeclarationID: 42,
			NewStatus:     business.DeclarationStatusValidated,
		})
		require.Error(t, err)
		assert.True(t, apperrors.IsNotFound(err))
	})
}

func TestDeclarationService_GetPayments(t *testing.T) {
	ctx := context.Background()

	st, taxpayerID := newStoreWithTaxpayer(t)
	declarationService := services.NewDeclarationService(st)
	paymentService := services.NewPaymentService(st)

	created, err := declarationService.Create(ctx, params.CreateDeclarationParams{
		TaxpayerID: taxpayerID,
		Type:       business.DeclarationTypePatente,
		FiscalYear: 2024,
		AmountDue:  float64(100000),
	})
	require.NoError(t, err)
	declarationID := created.Declaration.ID

	_, err = declarationService.ChangeStatus(ctx, params.ChangeDeclarationStatusParams{
		DeclarationID: declarationID, NewStatus: business.DeclarationStatusValidated,
	})
	require.NoError(t, err)

	t.Run("no payments yet", func(t *testing.T) {
		result, err := declarationService.GetPayments(ctx, declarationID)
		require.NoError(t, err)
		assert.Empty(t, result.Payments)
		assert.True(t, result.TotalPaid.IsZero())
		require.NotNil(t, result.RemainingBalance)
		assert.True(t, result.RemainingBalance.Equal(decimal.NewFromInt(100000)))
	})

	t.Run("totals track recorded payments and floor at zero", func(t *testing.T) {
		_, err := paymentService.RecordPayment(ctx, params.RecordPaymentParams{
			DeclarationID: declarationID, AmountPaid: float64(60000), Mode: "MOBILE_MONEY",
		})
		require.NoError(t, err)
		_, err = paymentService.RecordPayment(ctx, params.RecordPaymentParams{
			DeclarationID: declarationID, AmountPaid: float64(60000), Mode: "VIREMENT",
		})
		require.NoError(t, err)

		result, err := declarationService.GetPayments(ctx, declarationID)
		require.NoError(t, err)
		assert.Len(t, result.Payments, 2)
		assert.True(t, result.TotalPaid.Equal(decimal.NewFromInt(120000)))
		require.NotNil(t, result.RemainingBalance)
		assert.True(t, result.RemainingBalance.IsZero())
	})

	t.Run("unknown declaration yields a null remaining balance", func(t *testing.T) {
		result, err := declarationService.GetPayments(ctx, 999)
		require.NoError(t, err)
		assert.Empty(t, result.Payments)
		assert.Nil(t, result.RemainingBalance)
	})
}

func TestDeclarationService_List(t *testing.T) {
	ctx := context.Background()
	st, taxpayerID := newStoreWithTaxpayer(t)
	service := services.NewDeclarationService(st)

	for _, declarationType := range []string{
		business.DeclarationTypePatente,
		business.DeclarationTypeIGS,
		business.DeclarationTypeTDL,
	} {
		_, err := service.Create(ctx, params.CreateDeclarationParams{
			TaxpayerID: taxpayerID, Type: declarationType, FiscalYear: 2024,
		})
		require.NoError(t, err)
	}
	_, err := service.ChangeStatus(ctx, params.ChangeDeclarationStatusParams{
		DeclarationID: 1, NewStatus: business.DeclarationStatusValidated,
	})
	require.NoError(t, err)

	t.Run("filters by status", func(t *testing.T) {
		page, err := service.List(ctx, params.ListDeclarationsParams{
			Status: business.DeclarationStatusValidated,
		})
		require.NoError(t, err)
		assert.Equal(t, 1, page.TotalElements)
		assert.Equal(t, business.DeclarationTypePatente, page.Content[0].Type)
	})

	t.Run("enriches rows with the taxpayer display name", func(t *testing.T) {
		page, err := service.List(ctx, params.ListDeclarationsParams{})
		require.NoError(t, err)
		require.Equal(t, 3, page.TotalElements)
		require.NotNil(t, page.Content[0].TaxpayerName)
		assert.Equal(t, "Jean MBARGA", *page.Content[0].TaxpayerName)
	})

	t.Run("paginates", func(t *testing.T) {
		page, err := service.List(ctx, params.ListDeclarationsParams{Page: 2, Size: 2})
		require.NoError(t, err)
		assert.Equal(t, 3, page.TotalElements)
		assert.Equal(t, 2, page.TotalPages)
		assert.Len(t, page.Content, 1)
	})
}
