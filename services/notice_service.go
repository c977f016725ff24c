package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/fiscalis/dgi-api/apperrors"
	"github.com/fiscalis/dgi-api/logger"
	"github.com/fiscalis/dgi-api/store"
	"github.com/fiscalis/dgi-api/types/api/responses"
	"github.com/fiscalis/dgi-api/types/business"
)

// NoticeService reads assessment notices. Notices are only ever created by
// the declaration lifecycle, never through this service.
type NoticeService struct {
	store  *store.Store
	logger *zap.Logger
}

// NewNoticeService creates a new assessment notice service
func NewNoticeService(st *store.Store) *NoticeService {
	return &NoticeService{
		store:  st,
		logger: logger.Log,
	}
}

// List returns assessment notices, optionally filtered by taxpayer and paid
// status.
func (s *NoticeService) List(ctx context.Context, taxpayerID int64, status string) ([]business.AssessmentNotice, error) {
	items := []business.AssessmentNotice{}

	err := s.store.View(func(tx *store.Tx) error {
		for _, n := range tx.Notices() {
			if taxpayerID != 0 && n.TaxpayerID != taxpayerID {
				continue
			}
			if status != "" && n.Status != status {
				continue
			}
			items = append(items, n)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}

// Get returns an assessment notice enriched with its declaration and
// taxpayer.
func (s *NoticeService) Get(ctx context.Context, noticeID int64) (*responses.NoticeDetail, error) {
	var detail responses.NoticeDetail

	err := s.store.View(func(tx *store.Tx) error {
		notice, ok := tx.Notice(noticeID)
		if !ok {
			return apperrors.NotFound("Avis d'imposition introuvable")
		}
		detail = responses.NoticeDetail{AssessmentNotice: notice}
		if declaration, ok := tx.Declaration(notice.DeclarationID); ok {
			detail.Declaration = &declaration
		}
		if taxpayer, ok := tx.Taxpayer(notice.TaxpayerID); ok {
			detail.Taxpayer = &taxpayer
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &detail, nil
}
