package services

import (
	"cloudedumatch_backend/internal/models"
	"cloudedumatch_backend/internal/repositories"
	"cloudedumatch_backend/internal/services/dto"
	"cloudedumatch_backend/pkg/apperrors"
)

type PointsService interface {
	Balance(userID string) (*dto.PointsBalanceResponse, error)
	Transactions(userID string, offset, limit int) ([]*dto.PointTxnResponse, error)
	// Record appends a ledger row. Points are signed; the balance is
	// always recomputed from the ledger.
	Record(userID string, txnType models.PointTxnType, title string, points int, meta map[string]interface{}) (*dto.PointTxnResponse, error)
}

type pointsService struct {
	points repositories.PointsRepository
}

func NewPointsService(points repositories.PointsRepository) PointsService {
	return &pointsService{points: points}
}

func (s *pointsService) Balance(userID string) (*dto.PointsBalanceResponse, error) {
	balance, err := s.points.BalanceByUser(userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return &dto.PointsBalanceResponse{UserID: userID, Balance: balance}, nil
}

func (s *pointsService) Transactions(userID string, offset, limit int) ([]*dto.PointTxnResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	items, err := s.points.ListByUser(userID, offset, limit)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	out := make([]*dto.PointTxnResponse, 0, len(items))
	for i := range items {
		out = append(out, dto.NewPointTxnResponse(&items[i]))
	}
	return out, nil
}

func (s *pointsService) Record(userID string, txnType models.PointTxnType, title string, points int, meta map[string]interface{}) (*dto.PointTxnResponse, error) {
	txn := &models.PointTxn{
		UserID: userID,
		Type:   txnType,
		Title:  title,
		Points: points,
		Meta:   encodePayload(meta),
	}
	if err := s.points.Create(txn); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.NewPointTxnResponse(txn), nil
}
