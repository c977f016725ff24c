package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/fiscalis/dgi-api/apperrors"
	"github.com/fiscalis/dgi-api/helpers"
	"github.com/fiscalis/dgi-api/logger"
	"github.com/fiscalis/dgi-api/store"
	"github.com/fiscalis/dgi-api/types/api/params"
	"github.com/fiscalis/dgi-api/types/business"
)

// EstablishmentService manages taxpayers' places of business.
type EstablishmentService struct {
	store  *store.Store
	logger *zap.Logger
}

// NewEstablishmentService creates a new establishment service
func NewEstablishmentService(st *store.Store) *EstablishmentService {
	return &EstablishmentService{
		store:  st,
		logger: logger.Log,
	}
}

// Create registers a place of business. The taxpayer reference must resolve,
// and so must the commune when one is given.
func (s *EstablishmentService) Create(ctx context.Context, p params.CreateEstablishmentParams) (*business.Establishment, error) {
	if p.TaxpayerID == 0 {
		return nil, apperrors.Validation("id_contribuable est obligatoire")
	}
	if err := helpers.ValidateExtraFields(p.Extra); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	var created business.Establishment
	err := s.store.RunInTransaction(func(tx *store.Tx) error {
		if _, ok := tx.Taxpayer(p.TaxpayerID); !ok {
			return apperrors.NotFound("Contribuable introuvable")
		}
		if p.MunicipalityID != 0 {
			if _, ok := tx.Municipality(p.MunicipalityID); !ok {
				return apperrors.NotFound("Commune introuvable")
			}
		}

		created = business.Establishment{
			ID:             tx.NextID(store.CounterEstablishment),
			TaxpayerID:     p.TaxpayerID,
			MunicipalityID: p.MunicipalityID,
			Name:           p.Name,
			Extra:          p.Extra,
		}
		tx.InsertEstablishment(created)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Establishment registered",
		zap.Int64("establishment_id", created.ID),
		zap.Int64("taxpayer_id", p.TaxpayerID))

	return &created, nil
}

// List returns establishments matching the filters, paginated.
func (s *EstablishmentService) List(ctx context.Context, p params.ListEstablishmentsParams) (*helpers.Page[business.Establishment], error) {
	items := []business.Establishment{}

	err := s.store.View(func(tx *store.Tx) error {
		for _, e := range tx.Establishments() {
			if p.TaxpayerID != 0 && e.TaxpayerID != p.TaxpayerID {
				continue
			}
			if p.MunicipalityID != 0 && e.MunicipalityID != p.MunicipalityID {
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

// Get returns one establishment.
func (s *EstablishmentService) Get(ctx context.Context, establishmentID int64) (*business.Establishment, error) {
	var establishment business.Establishment

	err := s.store.View(func(tx *store.Tx) error {
		e, ok := tx.Establishment(establishmentID)
		if !ok {
			return apperrors.NotFound("Etablissement introuvable")
		}
		establishment = e
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &establishment, nil
}

// Update merges fields into an existing establishment.
func (s *EstablishmentService) Update(ctx context.Context, p params.UpdateEstablishmentParams) (*business.Establishment, error) {
	if err := helpers.ValidateExtraFields(p.Extra); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	var updated business.Establishment
	err := s.store.RunInTransaction(func(tx *store.Tx) error {
		if p.MunicipalityID != nil && *p.MunicipalityID != 0 {
			if _, ok := tx.Municipality(*p.MunicipalityID); !ok {
				return apperrors.NotFound("Commune introuvable")
			}
		}

		ok := tx.UpdateEstablishment(p.EstablishmentID, func(e *business.Establishment) {
			if p.MunicipalityID != nil {
				e.MunicipalityID = *p.MunicipalityID
			}
			if p.Name != nil {
				e.Name = *p.Name
			}
			for key, value := range p.Extra {
				if e.Extra == nil {
					e.Extra = map[string]any{}
				}
				e.Extra[key] = value
			}
			updated = *e
		})
		if !ok {
			return apperrors.NotFound("Etablissement introuvable")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}
