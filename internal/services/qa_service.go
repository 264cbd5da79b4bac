package services

import (
	"errors"

	"cloudedumatch_backend/internal/authz"
	"cloudedumatch_backend/internal/logger"
	"cloudedumatch_backend/internal/models"
	"cloudedumatch_backend/internal/repositories"
	"cloudedumatch_backend/internal/services/dto"
	"cloudedumatch_backend/pkg/apperrors"
)

type QaService interface {
	CreateQuestion(authorID string, req *dto.CreateQuestionRequest) (*dto.QuestionResponse, error)
	GetQuestion(id string) (*dto.QuestionResponse, error)
	ListQuestions(subject string, solved *bool, offset, limit int) ([]*dto.QuestionResponse, error)

	CreateAnswer(authorID, questionID string, req *dto.CreateAnswerRequest) (*dto.AnswerResponse, error)
	ListAnswers(questionID string) ([]*dto.AnswerResponse, error)
	// AcceptAnswer marks the question solved. Only the question author
	// may accept, and only once.
	AcceptAnswer(callerID, questionID, answerID string) (*dto.QuestionResponse, error)

	DeleteQuestion(callerID, questionID string) error
	SetQuestionHidden(callerID, questionID string, hidden bool) (*dto.QuestionResponse, error)
}

type qaService struct {
	qa       repositories.QaRepository
	users    repositories.UserRepository
	notifier NotificationService
}

func NewQaService(qa repositories.QaRepository, users repositories.UserRepository, notifier NotificationService) QaService {
	return &qaService{qa: qa, users: users, notifier: notifier}
}

func (s *qaService) isModerator(callerID string) (bool, error) {
	caller, err := s.users.FindByIDWithGrants(callerID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return false, apperrors.ErrNotFound(err)
		}
		return false, apperrors.InternalError(err)
	}
	return authz.IsSuperuser(caller) || authz.IsHQ(caller), nil
}

func (s *qaService) CreateQuestion(authorID string, req *dto.CreateQuestionRequest) (*dto.QuestionResponse, error) {
	q := &models.QaQuestion{
		AuthorID:     authorID,
		Subject:      req.Subject,
		Title:        req.Title,
		Content:      req.Content,
		Tags:         models.StringList(req.Tags),
		RewardPoints: req.RewardPoints,
	}
	if err := s.qa.CreateQuestion(q); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.NewQuestionResponse(q), nil
}

func (s *qaService) GetQuestion(id string) (*dto.QuestionResponse, error) {
	q, err := s.findQuestion(id)
	if err != nil {
		return nil, err
	}
	if err := s.qa.IncrementQuestionCounter(q.ID, "views", 1); err != nil {
		logger.WithError(err).Warn("view counter bump failed", "question_id", q.ID)
	} else {
		q.Views++
	}
	return dto.NewQuestionResponse(q), nil
}

func (s *qaService) ListQuestions(subject string, solved *bool, offset, limit int) ([]*dto.QuestionResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	items, err := s.qa.ListQuestions(subject, solved, false, offset, limit)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	out := make([]*dto.QuestionResponse, 0, len(items))
	for i := range items {
		out = append(out, dto.NewQuestionResponse(&items[i]))
	}
	return out, nil
}

func (s *qaService) CreateAnswer(authorID, questionID string, req *dto.CreateAnswerRequest) (*dto.AnswerResponse, error) {
	q, err := s.findQuestion(questionID)
	if err != nil {
		return nil, err
	}

	answer := &models.QaAnswer{
		QuestionID: q.ID,
		AuthorID:   authorID,
		Content:    req.Content,
	}
	if err := s.qa.CreateAnswer(answer); err != nil {
		return nil, apperrors.InternalError(err)
	}
	if err := s.qa.IncrementQuestionCounter(q.ID, "answers_count", 1); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.NewAnswerResponse(answer, false), nil
}

func (s *qaService) ListAnswers(questionID string) ([]*dto.AnswerResponse, error) {
	q, err := s.findQuestion(questionID)
	if err != nil {
		return nil, err
	}
	answers, err := s.qa.ListAnswers(q.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	out := make([]*dto.AnswerResponse, 0, len(answers))
	for i := range answers {
		out = append(out, dto.NewAnswerResponse(&answers[i], answers[i].ID == q.AcceptedAnswerID))
	}
	return out, nil
}

func (s *qaService) AcceptAnswer(callerID, questionID, answerID string) (*dto.QuestionResponse, error) {
	q, err := s.findQuestion(questionID)
	if err != nil {
		return nil, err
	}
	if q.AuthorID != callerID {
		return nil, apperrors.ErrNotContentAuthor
	}
	if q.Solved {
		return nil, apperrors.ErrAnswerAlreadyAccepted
	}

	answer, err := s.qa.FindAnswerByID(answerID)
	if err != nil {
		if errors.Is(err, repositories.ErrAnswerNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	if answer.QuestionID != q.ID {
		return nil, apperrors.NewBadRequestError("answer does not belong to this question")
	}

	q.Solved = true
	q.AcceptedAnswerID = answer.ID
	if err := s.qa.UpdateQuestion(q); err != nil {
		return nil, apperrors.InternalError(err)
	}

	s.notifier.Notify(answer.AuthorID, models.NotifyAnswerAccepted, map[string]interface{}{
		"question_id": q.ID,
		"answer_id":   answer.ID,
	})
	return dto.NewQuestionResponse(q), nil
}

func (s *qaService) DeleteQuestion(callerID, questionID string) error {
	q, err := s.findQuestion(questionID)
	if err != nil {
		return err
	}
	if q.AuthorID != callerID {
		moderator, err := s.isModerator(callerID)
		if err != nil {
			return err
		}
		if !moderator {
			return apperrors.ErrNotContentAuthor
		}
	}
	if err := s.qa.DeleteQuestion(q.ID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *qaService) SetQuestionHidden(callerID, questionID string, hidden bool) (*dto.QuestionResponse, error) {
	moderator, err := s.isModerator(callerID)
	if err != nil {
		return nil, err
	}
	if !moderator {
		return nil, apperrors.ErrInsufficientPermissions
	}
	q, err := s.findQuestion(questionID)
	if err != nil {
		return nil, err
	}
	q.Hidden = hidden
	if err := s.qa.UpdateQuestion(q); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.NewQuestionResponse(q), nil
}

func (s *qaService) findQuestion(id string) (*models.QaQuestion, error) {
	q, err := s.qa.FindQuestionByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrQuestionNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	return q, nil
}
