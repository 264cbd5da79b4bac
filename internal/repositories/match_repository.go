package repositories

import (
	"errors"

	"gorm.io/gorm"

	"cloudedumatch_backend/internal/models"
)

var (
	ErrMatchRequestNotFound = errors.New("match request not found")
	ErrMatchOfferNotFound   = errors.New("match offer not found")
)

type MatchRepository interface {
	CreateRequest(req *models.MatchRequest) error
	FindRequestByID(id string) (*models.MatchRequest, error)
	UpdateRequest(req *models.MatchRequest) error
	ListRequestsByStudent(studentID string) ([]models.MatchRequest, error)

	CreateOffer(offer *models.MatchOffer) error
	FindOfferByID(id string) (*models.MatchOffer, error)
	FindOfferByRequestAndTeacher(requestID, teacherID string) (*models.MatchOffer, error)
	ListOffersByRequest(requestID string) ([]models.MatchOffer, error)
	ListPendingOffersByTeacher(teacherID string, limit int) ([]models.MatchOffer, error)
	UpdateOffer(offer *models.MatchOffer) error
}

type MatchRepositoryImpl struct {
	db *gorm.DB
}

func NewMatchRepository(db *gorm.DB) MatchRepository {
	return &MatchRepositoryImpl{db: db}
}

func (r *MatchRepositoryImpl) CreateRequest(req *models.MatchRequest) error {
	return r.db.Create(req).Error
}

func (r *MatchRepositoryImpl) FindRequestByID(id string) (*models.MatchRequest, error) {
	var req models.MatchRequest
	if err := r.db.First(&req, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMatchRequestNotFound
		}
		return nil, err
	}
	return &req, nil
}

func (r *MatchRepositoryImpl) UpdateRequest(req *models.MatchRequest) error {
	return r.db.Save(req).Error
}

func (r *MatchRepositoryImpl) ListRequestsByStudent(studentID string) ([]models.MatchRequest, error) {
	var reqs []models.MatchRequest
	err := r.db.Where("student_id = ?", studentID).Order("created_at DESC").Find(&reqs).Error
	return reqs, err
}

func (r *MatchRepositoryImpl) CreateOffer(offer *models.MatchOffer) error {
	return r.db.Create(offer).Error
}

func (r *MatchRepositoryImpl) FindOfferByID(id string) (*models.MatchOffer, error) {
	var offer models.MatchOffer
	if err := r.db.First(&offer, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMatchOfferNotFound
		}
		return nil, err
	}
	return &offer, nil
}

func (r *MatchRepositoryImpl) FindOfferByRequestAndTeacher(requestID, teacherID string) (*models.MatchOffer, error) {
	var offer models.MatchOffer
	err := r.db.Where("request_id = ? AND teacher_id = ?", requestID, teacherID).First(&offer).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMatchOfferNotFound
		}
		return nil, err
	}
	return &offer, nil
}

func (r *MatchRepositoryImpl) ListOffersByRequest(requestID string) ([]models.MatchOffer, error) {
	var offers []models.MatchOffer
	err := r.db.Where("request_id = ?", requestID).Order("created_at ASC").Find(&offers).Error
	return offers, err
}

func (r *MatchRepositoryImpl) ListPendingOffersByTeacher(teacherID string, limit int) ([]models.MatchOffer, error) {
	var offers []models.MatchOffer
	err := r.db.
		Where("teacher_id = ? AND status = ?", teacherID, models.OfferStatusPending).
		Order("created_at DESC").
		Limit(limit).
		Find(&offers).Error
	return offers, err
}

func (r *MatchRepositoryImpl) UpdateOffer(offer *models.MatchOffer) error {
	return r.db.Save(offer).Error
}
