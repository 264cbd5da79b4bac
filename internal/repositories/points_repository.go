package repositories

import (
	"gorm.io/gorm"

	"cloudedumatch_backend/internal/models"
)

type PointsRepository interface {
	Create(txn *models.PointTxn) error
	ListByUser(userID string, offset, limit int) ([]models.PointTxn, error)
	// BalanceByUser sums the ledger; balances are never stored.
	BalanceByUser(userID string) (int64, error)
}

type PointsRepositoryImpl struct {
	db *gorm.DB
}

func NewPointsRepository(db *gorm.DB) PointsRepository {
	return &PointsRepositoryImpl{db: db}
}

func (r *PointsRepositoryImpl) Create(txn *models.PointTxn) error {
	return r.db.Create(txn).Error
}

func (r *PointsRepositoryImpl) ListByUser(userID string, offset, limit int) ([]models.PointTxn, error) {
	var txns []models.PointTxn
	err := r.db.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&txns).Error
	return txns, err
}

func (r *PointsRepositoryImpl) BalanceByUser(userID string) (int64, error) {
	var balance *int64
	err := r.db.Model(&models.PointTxn{}).
		Select("SUM(points)").
		Where("user_id = ?", userID).
		Scan(&balance).Error
	if err != nil {
		return 0, err
	}
	if balance == nil {
		return 0, nil
	}
	return *balance, nil
}
