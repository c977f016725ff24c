package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/fiscalis/dgi-api/apperrors"
	"github.com/fiscalis/dgi-api/logger"
	"github.com/fiscalis/dgi-api/store"
	"github.com/fiscalis/dgi-api/types/api/params"
	"github.com/fiscalis/dgi-api/types/business"
)

// MunicipalityService manages the commune registry.
type MunicipalityService struct {
	store  *store.Store
	logger *zap.Logger
}

// NewMunicipalityService creates a new municipality service
func NewMunicipalityService(st *store.Store) *MunicipalityService {
	return &MunicipalityService{
		store:  st,
		logger: logger.Log,
	}
}

// List returns communes, optionally filtered by category.
func (s *MunicipalityService) List(ctx context.Context, municipalityType string) ([]business.Municipality, error) {
	municipalities := []business.Municipality{}

	err := s.store.View(func(tx *store.Tx) error {
		for _, m := range tx.Municipalities() {
			if municipalityType != "" && m.Type != municipalityType {
				continue
			}
			municipalities = append(municipalities, m)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return municipalities, nil
}

// Create registers a commune.
func (s *MunicipalityService) Create(ctx context.Context, p params.CreateMunicipalityParams) (*business.Municipality, error) {
	if p.Name == "" {
		return nil, apperrors.Validation("nom_commune est obligatoire")
	}

	var created business.Municipality
	err := s.store.RunInTransaction(func(tx *store.Tx) error {
		created = business.Municipality{
			ID:   tx.NextID(store.CounterMunicipality),
			Name: p.Name,
			Type: p.Type,
		}
		tx.InsertMunicipality(created)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Municipality registered",
		zap.Int64("municipality_id", created.ID),
		zap.String("name", created.Name))

	return &created, nil
}
