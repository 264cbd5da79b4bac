package repositories

import (
	"errors"

	"gorm.io/gorm"

	"cloudedumatch_backend/internal/models"
)

var (
	ErrTaskNotFound    = errors.New("association task not found")
	ErrRuleSetNotFound = errors.New("association rule set not found")
)

type AssociationRepository interface {
	CreateTask(task *models.AssociationTask) error
	FindTaskByID(id string) (*models.AssociationTask, error)
	UpdateTask(task *models.AssociationTask) error
	ListTasks(schoolID string, status models.TaskStatus) ([]models.AssociationTask, error)

	FindRuleSet(schoolID string) (*models.AssociationRuleSet, error)
	SaveRuleSet(rules *models.AssociationRuleSet) error

	CreateHourGrant(grant *models.VolunteerHourGrant) error
	ListHourGrants(schoolID, userID string) ([]models.VolunteerHourGrant, error)
	SumHoursByUser(userID string) (float64, error)
}

type AssociationRepositoryImpl struct {
	db *gorm.DB
}

func NewAssociationRepository(db *gorm.DB) AssociationRepository {
	return &AssociationRepositoryImpl{db: db}
}

func (r *AssociationRepositoryImpl) CreateTask(task *models.AssociationTask) error {
	return r.db.Create(task).Error
}

func (r *AssociationRepositoryImpl) FindTaskByID(id string) (*models.AssociationTask, error) {
	var task models.AssociationTask
	if err := r.db.First(&task, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}
	return &task, nil
}

func (r *AssociationRepositoryImpl) UpdateTask(task *models.AssociationTask) error {
	return r.db.Save(task).Error
}

func (r *AssociationRepositoryImpl) ListTasks(schoolID string, status models.TaskStatus) ([]models.AssociationTask, error) {
	query := r.db.Where("school_id = ?", schoolID)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	var tasks []models.AssociationTask
	err := query.Order("created_at DESC").Find(&tasks).Error
	return tasks, err
}

func (r *AssociationRepositoryImpl) FindRuleSet(schoolID string) (*models.AssociationRuleSet, error) {
	var rules models.AssociationRuleSet
	err := r.db.Where("school_id = ?", schoolID).First(&rules).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRuleSetNotFound
		}
		return nil, err
	}
	return &rules, nil
}

func (r *AssociationRepositoryImpl) SaveRuleSet(rules *models.AssociationRuleSet) error {
	return r.db.Save(rules).Error
}

func (r *AssociationRepositoryImpl) CreateHourGrant(grant *models.VolunteerHourGrant) error {
	return r.db.Create(grant).Error
}

func (r *AssociationRepositoryImpl) ListHourGrants(schoolID, userID string) ([]models.VolunteerHourGrant, error) {
	query := r.db.Model(&models.VolunteerHourGrant{})
	if schoolID != "" {
		query = query.Where("school_id = ?", schoolID)
	}
	if userID != "" {
		query = query.Where("user_id = ?", userID)
	}
	var grants []models.VolunteerHourGrant
	err := query.Order("created_at DESC").Find(&grants).Error
	return grants, err
}

func (r *AssociationRepositoryImpl) SumHoursByUser(userID string) (float64, error) {
	var total *float64
	err := r.db.Model(&models.VolunteerHourGrant{}).
		Select("SUM(amount)").
		Where("user_id = ?", userID).
		Scan(&total).Error
	if err != nil {
		return 0, err
	}
	if total == nil {
		return 0, nil
	}
	return *total, nil
}
