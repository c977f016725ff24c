package services

import (
	"context"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/fiscalis/dgi-api/apperrors"
	"github.com/fiscalis/dgi-api/helpers"
	"github.com/fiscalis/dgi-api/logger"
	"github.com/fiscalis/dgi-api/store"
	"github.com/fiscalis/dgi-api/types/api/params"
	"github.com/fiscalis/dgi-api/types/api/responses"
	"github.com/fiscalis/dgi-api/types/business"
)

// TaxpayerService manages the taxpayer registry and the per-taxpayer views
// over declarations, notices, enforcement actions and notifications.
type TaxpayerService struct {
	store  *store.Store
	logger *zap.Logger
}

// NewTaxpayerService creates a new taxpayer registry service
func NewTaxpayerService(st *store.Store) *TaxpayerService {
	return &TaxpayerService{
		store:  st,
		logger: logger.Log,
	}
}

// Create registers a taxpayer. NIU and email are required, and the NIU must
// not already be registered.
func (s *TaxpayerService) Create(ctx context.Context, p params.CreateTaxpayerParams) (*business.Taxpayer, error) {
	if p.NIU == "" || p.Email == "" {
		return nil, apperrors.Validation("NIU et email sont obligatoires")
	}
	if err := helpers.ValidateExtraFields(p.Extra); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	var created business.Taxpayer
	err := s.store.RunInTransaction(func(tx *store.Tx) error {
		if _, exists := tx.TaxpayerByNIU(p.NIU); exists {
			return apperrors.Conflict("Un contribuable avec ce NIU existe déjà")
		}
		if p.MunicipalityID != 0 {
			if _, ok := tx.Municipality(p.MunicipalityID); !ok {
				return apperrors.NotFound("Commune introuvable")
			}
		}

		created = business.Taxpayer{
			ID:             tx.NextID(store.CounterTaxpayer),
			NIU:            p.NIU,
			LastName:       p.LastName,
			FirstName:      p.FirstName,
			CompanyName:    p.CompanyName,
			Email:          p.Email,
			Phone:          p.Phone,
			MunicipalityID: p.MunicipalityID,
			RegisteredAt:   helpers.DateOnly(time.Now()),
			Status:         business.TaxpayerStatusActive,
			Extra:          p.Extra,
		}
		tx.InsertTaxpayer(created)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Taxpayer registered",
		zap.Int64("taxpayer_id", created.ID),
		zap.String("niu", created.NIU))

	return &created, nil
}

// List returns taxpayers matching the filters, paginated. The name filter
// matches last name, first name and company name case insensitively; the
// NIU filter is a substring match.
func (s *TaxpayerService) List(ctx context.Context, p params.ListTaxpayersParams) (*helpers.Page[business.Taxpayer], error) {
	items := []business.Taxpayer{}

	err := s.store.View(func(tx *store.Tx) error {
		for _, t := range tx.Taxpayers() {
			if p.Status != "" && t.Status != strings.ToUpper(p.Status) {
				continue
			}
			if p.NIU != "" && !strings.Contains(strings.ToLower(t.NIU), strings.ToLower(p.NIU)) {
				continue
			}
			if p.Name != "" && !matchesName(t, p.Name) {
				continue
			}
			items = append(items, t)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	page := helpers.Paginate(items, p.Page, p.Size)
	return &page, nil
}

func matchesName(t business.Taxpayer, name string) bool {
	needle := strings.ToLower(name)
	return strings.Contains(strings.ToLower(t.LastName), needle) ||
		strings.Contains(strings.ToLower(t.FirstName), needle) ||
		strings.Contains(strings.ToLower(t.CompanyName), needle)
}

// Get returns a taxpayer enriched with its commune.
func (s *TaxpayerService) Get(ctx context.Context, taxpayerID int64) (*responses.TaxpayerDetail, error) {
	var detail responses.TaxpayerDetail

	err := s.store.View(func(tx *store.Tx) error {
		taxpayer, ok := tx.Taxpayer(taxpayerID)
		if !ok {
			return apperrors.NotFound("Contribuable introuvable")
		}
		detail = responses.TaxpayerDetail{Taxpayer: taxpayer}
		if municipality, ok := tx.Municipality(taxpayer.MunicipalityID); ok {
			detail.Municipality = &municipality
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &detail, nil
}

// Update merges fields into an existing taxpayer. A changed NIU keeps the
// uniqueness guarantee.
func (s *TaxpayerService) Update(ctx context.Context, p params.UpdateTaxpayerParams) (*business.Taxpayer, error) {
	if err := helpers.ValidateExtraFields(p.Extra); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	var updated business.Taxpayer
	err := s.store.RunInTransaction(func(tx *store.Tx) error {
		if p.NIU != nil {
			if other, exists := tx.TaxpayerByNIU(*p.NIU); exists && other.ID != p.TaxpayerID {
				return apperrors.Conflict("Un contribuable avec ce NIU existe déjà")
			}
		}

		ok := tx.UpdateTaxpayer(p.TaxpayerID, func(t *business.Taxpayer) {
			if p.NIU != nil {
				t.NIU = *p.NIU
			}
			if p.LastName != nil {
				t.LastName = *p.LastName
			}
			if p.FirstName != nil {
				t.FirstName = *p.FirstName
			}
			if p.CompanyName != nil {
				t.CompanyName = *p.CompanyName
			}
			if p.Email != nil {
				t.Email = *p.Email
			}
			if p.Phone != nil {
				t.Phone = *p.Phone
			}
			if p.MunicipalityID != nil {
				t.MunicipalityID = *p.MunicipalityID
			}
			for key, value := range p.Extra {
				if t.Extra == nil {
					t.Extra = map[string]any{}
				}
				t.Extra[key] = value
			}
			updated = *t
		})
		if !ok {
			return apperrors.NotFound("Contribuable introuvable")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// Deactivate flips a taxpayer to SUPPRIME. The record and everything that
// references it stay in place.
func (s *TaxpayerService) Deactivate(ctx context.Context, taxpayerID int64) error {
	err := s.store.RunInTransaction(func(tx *store.Tx) error {
		ok := tx.UpdateTaxpayer(taxpayerID, func(t *business.Taxpayer) {
			t.Status = business.TaxpayerStatusDeleted
		})
		if !ok {
			return apperrors.NotFound("Contribuable introuvable")
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("Taxpayer deactivated", zap.Int64("taxpayer_id", taxpayerID))
	return nil
}

// Declarations returns a taxpayer's declarations. The taxpayer must exist.
func (s *TaxpayerService) Declarations(ctx context.Context, taxpayerID int64) ([]business.Declaration, error) {
	declarations := []business.Declaration{}

	err := s.store.View(func(tx *store.Tx) error {
		if _, ok := tx.Taxpayer(taxpayerID); !ok {
			return apperrors.NotFound("Contribuable introuvable")
		}
		for _, d := range tx.Declarations() {
			if d.TaxpayerID == taxpayerID {
				declarations = append(declarations, d)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return declarations, nil
}

// Notices returns a taxpayer's assessment notices.
func (s *TaxpayerService) Notices(ctx context.Context, taxpayerID int64) ([]business.AssessmentNotice, error) {
	notices := []business.AssessmentNotice{}

	err := s.store.View(func(tx *store.Tx) error {
		for _, n := range tx.Notices() {
			if n.TaxpayerID == taxpayerID {
				notices = append(notices, n)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return notices, nil
}

// Enforcements returns a taxpayer's enforcement notices.
func (s *TaxpayerService) Enforcements(ctx context.Context, taxpayerID int64) ([]business.EnforcementNotice, error) {
	enforcements := []business.EnforcementNotice{}

	err := s.store.View(func(tx *store.Tx) error {
		for _, e := range tx.Enforcements() {
			if e.TaxpayerID == taxpayerID {
				enforcements = append(enforcements, e)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return enforcements, nil
}

// Establishments returns a taxpayer's places of business.
func (s *TaxpayerService) Establishments(ctx context.Context, taxpayerID int64) ([]business.Establishment, error) {
	establishments := []business.Establishment{}

	err := s.store.View(func(tx *store.Tx) error {
		for _, e := range tx.Establishments() {
			if e.TaxpayerID == taxpayerID {
				establishments = append(establishments, e)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return establishments, nil
}

// Notifications returns a taxpayer's notifications, most recent first.
func (s *TaxpayerService) Notifications(ctx context.Context, taxpayerID int64) ([]business.Notification, error) {
	notifications := []business.Notification{}

	err := s.store.View(func(tx *store.Tx) error {
		for _, n := range tx.Notifications() {
			if n.TaxpayerID == taxpayerID {
				notifications = append(notifications, n)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sortNotificationsDesc(notifications)
	return notifications, nil
}

// sortNotificationsDesc orders notifications newest first. Creation dates are
// ISO formatted so the lexicographic order is the chronological one; ids
// break same-day ties.
func sortNotificationsDesc(notifications []business.Notification) {
	sort.SliceStable(notifications, func(i, j int) bool {
		if notifications[i].CreatedAt != notifications[j].CreatedAt {
			return notifications[i].CreatedAt > notifications[j].CreatedAt
		}
		return notifications[i].ID > notifications[j].ID
	})
}
