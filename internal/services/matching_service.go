package services

import (
	"errors"

	"gorm.io/gorm"

	"cloudedumatch_backend/internal/algorithms"
	"cloudedumatch_backend/internal/logger"
	"cloudedumatch_backend/internal/models"
	"cloudedumatch_backend/internal/repositories"
	"cloudedumatch_backend/internal/services/dto"
	"cloudedumatch_backend/pkg/apperrors"
)

// acceptGreeting is the system message the teacher opens the
// conversation with.
const acceptGreeting = "I have accepted your request; we can start talking."

type MatchingService interface {
	CreateRequest(studentID string, req *dto.CreateMatchRequest) (*dto.MatchRequestResponse, error)
	ListMyRequests(studentID string) ([]*dto.MatchRequestResponse, error)
	CancelRequest(studentID, requestID string) (*dto.MatchRequestResponse, error)

	Candidates(callerID, requestID string, limit int) ([]*dto.MatchCandidate, error)

	CreateOffer(callerID, requestID, teacherID string) (*dto.MatchOfferResponse, error)
	Inbox(teacherID string) ([]*dto.OfferInboxItem, error)
	AcceptOffer(teacherID, offerID string) (*dto.AcceptOfferResponse, error)
	DeclineOffer(teacherID, offerID string) (*dto.MatchOfferResponse, error)
}

// MatchTxRunner executes fn with repositories bound to one atomic unit
// of work. Offer acceptance runs through it so that the accept, the
// request transition and the sibling declines commit together.
type MatchTxRunner func(fn func(matches repositories.MatchRepository, conversations repositories.ConversationRepository) error) error

// GormMatchTx wraps fn in a database transaction.
func GormMatchTx(db *gorm.DB) MatchTxRunner {
	return func(fn func(repositories.MatchRepository, repositories.ConversationRepository) error) error {
		return db.Transaction(func(tx *gorm.DB) error {
			return fn(repositories.NewMatchRepository(tx), repositories.NewConversationRepository(tx))
		})
	}
}

type matchingService struct {
	// inTx backs the accept transaction; everything else goes through
	// the repositories.
	inTx MatchTxRunner

	matches       repositories.MatchRepository
	pool          repositories.TeacherPoolRepository
	users         repositories.UserRepository
	organizations repositories.OrganizationRepository
	conversations repositories.ConversationRepository
	notifier      NotificationService
}

func NewMatchingService(
	inTx MatchTxRunner,
	matches repositories.MatchRepository,
	pool repositories.TeacherPoolRepository,
	users repositories.UserRepository,
	organizations repositories.OrganizationRepository,
	conversations repositories.ConversationRepository,
	notifier NotificationService,
) MatchingService {
	return &matchingService{
		inTx:          inTx,
		matches:       matches,
		pool:          pool,
		users:         users,
		organizations: organizations,
		conversations: conversations,
		notifier:      notifier,
	}
}

func (s *matchingService) CreateRequest(studentID string, req *dto.CreateMatchRequest) (*dto.MatchRequestResponse, error) {
	record := &models.MatchRequest{
		StudentID: studentID,
		Tags:      models.StringList(req.Tags),
		Channel:   req.Channel,
		TimeMode:  req.TimeMode,
		TimeSlots: models.StringList(req.TimeSlots),
		Note:      req.Note,
		Status:    models.MatchRequestPending,
	}
	if err := s.matches.CreateRequest(record); err != nil {
		return nil, apperrors.InternalError(err)
	}
	logger.Info("match request created", "request_id", record.ID, "student_id", studentID)
	return dto.NewMatchRequestResponse(record), nil
}

func (s *matchingService) ListMyRequests(studentID string) ([]*dto.MatchRequestResponse, error) {
	items, err := s.matches.ListRequestsByStudent(studentID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	out := make([]*dto.MatchRequestResponse, 0, len(items))
	for i := range items {
		out = append(out, dto.NewMatchRequestResponse(&items[i]))
	}
	return out, nil
}

func (s *matchingService) CancelRequest(studentID, requestID string) (*dto.MatchRequestResponse, error) {
	record, err := s.findOwnedRequest(studentID, requestID)
	if err != nil {
		return nil, err
	}
	if record.Status != models.MatchRequestPending {
		return nil, apperrors.ErrRequestNotOpen
	}
	record.Status = models.MatchRequestCancelled
	if err := s.matches.UpdateRequest(record); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.NewMatchRequestResponse(record), nil
}

func (s *matchingService) Candidates(callerID, requestID string, limit int) ([]*dto.MatchCandidate, error) {
	record, err := s.findOwnedRequest(callerID, requestID)
	if err != nil {
		return nil, err
	}

	want := models.ParseStringList(record.Tags)
	entries, err := s.pool.ListInPool()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	userIDs := make([]string, 0, len(entries))
	for i := range entries {
		userIDs = append(userIDs, entries[i].UserID)
	}
	users, err := s.users.FindByIDs(userIDs)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	byID := make(map[string]*models.User, len(users))
	for i := range users {
		byID[users[i].ID] = &users[i]
	}

	scored := make([]algorithms.ScoredEntry, 0, len(entries))
	for i := range entries {
		owner := byID[entries[i].UserID]
		if !algorithms.EligibleTeacher(owner) {
			continue
		}
		have := models.ParseStringList(entries[i].Tags)
		scored = append(scored, algorithms.ScoredEntry{
			Entry: entries[i],
			Score: algorithms.TagOverlapScore(want, have),
		})
	}
	algorithms.RankEntries(scored)

	limit = algorithms.ClampLimit(limit)
	if len(scored) > limit {
		scored = scored[:limit]
	}

	schoolNames, err := s.schoolDisplayNames(scored)
	if err != nil {
		return nil, err
	}

	out := make([]*dto.MatchCandidate, 0, len(scored))
	for i := range scored {
		entry := &scored[i].Entry
		owner := byID[entry.UserID]
		have := models.ParseStringList(entry.Tags)
		out = append(out, &dto.MatchCandidate{
			UserID:            owner.ID,
			Username:          owner.Username,
			FullName:          owner.FullName,
			SchoolID:          entry.SchoolID,
			SchoolDisplayName: schoolNames[entry.SchoolID],
			Tags:              have,
			TimeSlots:         models.ParseStringList(entry.TimeSlots),
			InPool:            entry.InPool,
			Explain:           algorithms.Explain(algorithms.MatchedTags(want, have)),
		})
	}
	return out, nil
}

func (s *matchingService) CreateOffer(callerID, requestID, teacherID string) (*dto.MatchOfferResponse, error) {
	record, err := s.findOwnedRequest(callerID, requestID)
	if err != nil {
		return nil, err
	}
	if record.Status != models.MatchRequestPending {
		return nil, apperrors.ErrRequestNotOpen
	}

	teacher, err := s.users.FindByID(teacherID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	if !algorithms.EligibleTeacher(teacher) {
		return nil, apperrors.ErrInvalidOperation("matching", "Teacher not eligible")
	}

	// Offers are idempotent per (request, teacher).
	existing, err := s.matches.FindOfferByRequestAndTeacher(requestID, teacherID)
	if err == nil {
		return dto.NewMatchOfferResponse(existing), nil
	}
	if !errors.Is(err, repositories.ErrMatchOfferNotFound) {
		return nil, apperrors.InternalError(err)
	}

	offer := &models.MatchOffer{
		RequestID: record.ID,
		StudentID: record.StudentID,
		TeacherID: teacher.ID,
		Status:    models.OfferStatusPending,
	}
	if err := s.matches.CreateOffer(offer); err != nil {
		return nil, apperrors.InternalError(err)
	}

	s.notifier.Notify(teacher.ID, models.NotifyMatchOffer, map[string]interface{}{
		"request_id": record.ID,
		"offer_id":   offer.ID,
		"student_id": record.StudentID,
	})

	logger.Info("match offer created",
		"offer_id", offer.ID, "request_id", record.ID, "teacher_id", teacher.ID)
	return dto.NewMatchOfferResponse(offer), nil
}

func (s *matchingService) Inbox(teacherID string) ([]*dto.OfferInboxItem, error) {
	teacher, err := s.users.FindByID(teacherID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	if !algorithms.EligibleTeacher(teacher) {
		return nil, apperrors.ErrInsufficientPermissions
	}

	offers, err := s.matches.ListPendingOffersByTeacher(teacherID, algorithms.MaxCandidates)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	studentIDs := make([]string, 0, len(offers))
	for i := range offers {
		studentIDs = append(studentIDs, offers[i].StudentID)
	}
	students, err := s.users.FindByIDs(studentIDs)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	studentByID := make(map[string]*models.User, len(students))
	for i := range students {
		studentByID[students[i].ID] = &students[i]
	}

	out := make([]*dto.OfferInboxItem, 0, len(offers))
	for i := range offers {
		offer := &offers[i]
		item := &dto.OfferInboxItem{MatchOfferResponse: *dto.NewMatchOfferResponse(offer)}
		if req, err := s.matches.FindRequestByID(offer.RequestID); err == nil {
			item.Request = dto.NewMatchRequestResponse(req)
		}
		if student := studentByID[offer.StudentID]; student != nil {
			item.Student = &dto.PeerInfo{
				ID:       student.ID,
				Username: student.Username,
				FullName: student.FullName,
			}
		}
		out = append(out, item)
	}
	return out, nil
}

// AcceptOffer flips the offer, closes the request, declines the sibling
// offers and opens the conversation in one transaction.
func (s *matchingService) AcceptOffer(teacherID, offerID string) (*dto.AcceptOfferResponse, error) {
	var (
		conversationID string
		studentID      string
		requestID      string
	)

	err := s.inTx(func(matches repositories.MatchRepository, conversations repositories.ConversationRepository) error {
		offer, err := matches.FindOfferByID(offerID)
		if err != nil {
			if errors.Is(err, repositories.ErrMatchOfferNotFound) {
				return apperrors.ErrNotFound(err)
			}
			return err
		}
		if offer.TeacherID != teacherID {
			return apperrors.ErrInsufficientPermissions
		}
		if offer.Status != models.OfferStatusPending {
			return apperrors.ErrOfferAlreadyHandled
		}

		request, err := matches.FindRequestByID(offer.RequestID)
		if err != nil {
			if errors.Is(err, repositories.ErrMatchRequestNotFound) {
				return apperrors.ErrNotFound(err)
			}
			return err
		}
		if request.Status != models.MatchRequestPending {
			return apperrors.ErrRequestNotOpen
		}

		offer.Status = models.OfferStatusAccepted
		if err := matches.UpdateOffer(offer); err != nil {
			return err
		}
		request.Status = models.MatchRequestMatched
		if err := matches.UpdateRequest(request); err != nil {
			return err
		}

		siblings, err := matches.ListOffersByRequest(request.ID)
		if err != nil {
			return err
		}
		for i := range siblings {
			sibling := &siblings[i]
			if sibling.ID == offer.ID || sibling.Status != models.OfferStatusPending {
				continue
			}
			sibling.Status = models.OfferStatusDeclined
			if err := matches.UpdateOffer(sibling); err != nil {
				return err
			}
		}

		conv, err := s.pairwiseConversation(conversations, offer.StudentID, offer.TeacherID)
		if err != nil {
			return err
		}
		greeting := &models.Message{
			ConversationID: conv.ID,
			SenderID:       offer.TeacherID,
			Content:        acceptGreeting,
		}
		if err := conversations.CreateMessage(greeting); err != nil {
			return err
		}

		conversationID = conv.ID
		studentID = offer.StudentID
		requestID = request.ID
		return nil
	})
	if err != nil {
		if appErr, ok := apperrors.AsAppError(err); ok {
			return nil, appErr
		}
		return nil, apperrors.InternalError(err)
	}

	payload := map[string]interface{}{
		"request_id":      requestID,
		"offer_id":        offerID,
		"conversation_id": conversationID,
	}
	s.notifier.Notify(studentID, models.NotifyMatchAccepted, payload)
	s.notifier.Notify(teacherID, models.NotifyMatchAccepted, payload)

	logger.Info("match offer accepted",
		"offer_id", offerID, "request_id", requestID, "conversation_id", conversationID)
	return &dto.AcceptOfferResponse{
		Status:         models.OfferStatusAccepted,
		ConversationID: conversationID,
	}, nil
}

func (s *matchingService) DeclineOffer(teacherID, offerID string) (*dto.MatchOfferResponse, error) {
	offer, err := s.matches.FindOfferByID(offerID)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchOfferNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	if offer.TeacherID != teacherID {
		return nil, apperrors.ErrInsufficientPermissions
	}
	if offer.Status != models.OfferStatusPending {
		return nil, apperrors.ErrOfferAlreadyHandled
	}

	offer.Status = models.OfferStatusDeclined
	if err := s.matches.UpdateOffer(offer); err != nil {
		return nil, apperrors.InternalError(err)
	}

	payload := map[string]interface{}{
		"request_id": offer.RequestID,
		"offer_id":   offer.ID,
	}
	s.notifier.Notify(offer.StudentID, models.NotifyMatchOffer, payload)
	s.notifier.Notify(offer.TeacherID, models.NotifyMatchOffer, payload)
	return dto.NewMatchOfferResponse(offer), nil
}

func (s *matchingService) findOwnedRequest(callerID, requestID string) (*models.MatchRequest, error) {
	record, err := s.matches.FindRequestByID(requestID)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchRequestNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	if record.StudentID != callerID {
		return nil, apperrors.ErrNotRequestOwner
	}
	return record, nil
}

func (s *matchingService) pairwiseConversation(conversations repositories.ConversationRepository, userID, peerID string) (*models.Conversation, error) {
	conv, err := conversations.FindPairwise(userID, peerID)
	if err == nil {
		return conv, nil
	}
	if !errors.Is(err, repositories.ErrConversationNotFound) {
		return nil, err
	}

	conv = &models.Conversation{}
	if err := conversations.Create(conv); err != nil {
		return nil, err
	}
	for _, id := range []string{userID, peerID} {
		participant := &models.ConversationParticipant{
			ConversationID: conv.ID,
			UserID:         id,
		}
		if err := conversations.AddParticipant(participant); err != nil {
			return nil, err
		}
	}
	return conv, nil
}

// schoolDisplayNames resolves university display names for the schools
// the scored entries reference.
func (s *matchingService) schoolDisplayNames(scored []algorithms.ScoredEntry) (map[string]string, error) {
	seen := make(map[string]bool)
	ids := make([]string, 0)
	for i := range scored {
		id := scored[i].Entry.SchoolID
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return map[string]string{}, nil
	}

	orgs, err := s.organizations.FindUniversitiesBySchoolIDs(ids)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	names := make(map[string]string, len(orgs))
	for i := range orgs {
		names[orgs[i].SchoolID] = orgs[i].DisplayName
	}
	return names, nil
}
