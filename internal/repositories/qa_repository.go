package repositories

import (
	"errors"

	"gorm.io/gorm"

	"cloudedumatch_backend/internal/models"
)

var (
	ErrQuestionNotFound = errors.New("question not found")
	ErrAnswerNotFound   = errors.New("answer not found")
)

type QaRepository interface {
	CreateQuestion(q *models.QaQuestion) error
	FindQuestionByID(id string) (*models.QaQuestion, error)
	UpdateQuestion(q *models.QaQuestion) error
	ListQuestions(subject string, solved *bool, includeHidden bool, offset, limit int) ([]models.QaQuestion, error)
	IncrementQuestionCounter(questionID, column string, delta int) error
	DeleteQuestion(id string) error

	CreateAnswer(a *models.QaAnswer) error
	FindAnswerByID(id string) (*models.QaAnswer, error)
	ListAnswers(questionID string) ([]models.QaAnswer, error)
}

type QaRepositoryImpl struct {
	db *gorm.DB
}

func NewQaRepository(db *gorm.DB) QaRepository {
	return &QaRepositoryImpl{db: db}
}

func (r *QaRepositoryImpl) CreateQuestion(q *models.QaQuestion) error {
	return r.db.Create(q).Error
}

func (r *QaRepositoryImpl) FindQuestionByID(id string) (*models.QaQuestion, error) {
	var q models.QaQuestion
	if err := r.db.First(&q, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuestionNotFound
		}
		return nil, err
	}
	return &q, nil
}

func (r *QaRepositoryImpl) UpdateQuestion(q *models.QaQuestion) error {
	return r.db.Save(q).Error
}

func (r *QaRepositoryImpl) ListQuestions(subject string, solved *bool, includeHidden bool, offset, limit int) ([]models.QaQuestion, error) {
	query := r.db.Model(&models.QaQuestion{})
	if subject != "" {
		query = query.Where("subject = ?", subject)
	}
	if solved != nil {
		query = query.Where("solved = ?", *solved)
	}
	if !includeHidden {
		query = query.Where("hidden = ?", false)
	}
	var questions []models.QaQuestion
	err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&questions).Error
	return questions, err
}

func (r *QaRepositoryImpl) IncrementQuestionCounter(questionID, column string, delta int) error {
	return r.db.Model(&models.QaQuestion{}).
		Where("id = ?", questionID).
		UpdateColumn(column, gorm.Expr(column+" + ?", delta)).Error
}

// DeleteQuestion removes the question and its answers.
func (r *QaRepositoryImpl) DeleteQuestion(id string) error {
	if err := r.db.Delete(&models.QaAnswer{}, "question_id = ?", id).Error; err != nil {
		return err
	}
	return r.db.Delete(&models.QaQuestion{}, "id = ?", id).Error
}

func (r *QaRepositoryImpl) CreateAnswer(a *models.QaAnswer) error {
	return r.db.Create(a).Error
}

func (r *QaRepositoryImpl) FindAnswerByID(id string) (*models.QaAnswer, error) {
	var a models.QaAnswer
	if err := r.db.First(&a, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAnswerNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *QaRepositoryImpl) ListAnswers(questionID string) ([]models.QaAnswer, error) {
	var answers []models.QaAnswer
	err := r.db.Where("question_id = ?", questionID).Order("created_at ASC").Find(&answers).Error
	return answers, err
}
