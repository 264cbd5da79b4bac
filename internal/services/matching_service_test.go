package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cloudedumatch_backend/internal/models"
	"cloudedumatch_backend/internal/repositories"
	"cloudedumatch_backend/internal/services"
	"cloudedumatch_backend/internal/services/dto"
	"cloudedumatch_backend/pkg/apperrors"
)

func verifiedTeacher(id, schoolID string) *models.User {
	return &models.User{
		BaseModel: models.BaseModel{ID: id},
		Username:  "teacher-" + id,
		Role:      models.UserRoleVolunteerTeacher,
		SchoolID:  schoolID,
		IsActive:  true,
		Profile:   []byte(`{"verification":{"teacher":"verified"}}`),
	}
}

func poolEntryFor(pool *fakePoolRepo, userID, schoolID string, tags []string) *models.TeacherPoolEntry {
	return pool.add(&models.TeacherPoolEntry{
		UserID:   userID,
		SchoolID: schoolID,
		Tags:     models.StringList(tags),
		InPool:   true,
	})
}

func newMatchingFixture(users *fakeUserRepo, matches *fakeMatchRepo, pool *fakePoolRepo, orgs *fakeOrgRepo, notifier *fakeNotifier) services.MatchingService {
	return newMatchingFixtureWithConversations(users, matches, pool, orgs, newFakeConversationRepo(), notifier)
}

func newMatchingFixtureWithConversations(users *fakeUserRepo, matches *fakeMatchRepo, pool *fakePoolRepo, orgs *fakeOrgRepo, conversations *fakeConversationRepo, notifier *fakeNotifier) services.MatchingService {
	inTx := func(fn func(repositories.MatchRepository, repositories.ConversationRepository) error) error {
		return fn(matches, conversations)
	}
	return services.NewMatchingService(inTx, matches, pool, users, orgs, conversations, notifier)
}

func TestMatchingCancelRequest(t *testing.T) {
	matches := newFakeMatchRepo()
	svc := newMatchingFixture(newFakeUserRepo(), matches, &fakePoolRepo{}, &fakeOrgRepo{}, &fakeNotifier{})

	created, err := svc.CreateRequest("stu", &dto.CreateMatchRequest{Tags: []string{"math"}})
	require.NoError(t, err)

	resp, err := svc.CancelRequest("stu", created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.MatchRequestCancelled, resp.Status)

	t.Run("cancel twice", func(t *testing.T) {
		_, err := svc.CancelRequest("stu", created.ID)
		assert.ErrorIs(t, err, apperrors.ErrRequestNotOpen)
	})

	t.Run("not the owner", func(t *testing.T) {
		second, err := svc.CreateRequest("stu", &dto.CreateMatchRequest{Tags: []string{"math"}})
		require.NoError(t, err)
		_, err = svc.CancelRequest("intruder", second.ID)
		assert.ErrorIs(t, err, apperrors.ErrNotRequestOwner)
	})
}

func TestMatchingCandidates(t *testing.T) {
	teacherA := verifiedTeacher("tA", "sch-1")
	teacherB := verifiedTeacher("tB", "sch-1")
	stale := verifiedTeacher("tC", "sch-1")
	stale.IsActive = false

	users := newFakeUserRepo(teacherA, teacherB, stale)
	matches := newFakeMatchRepo()
	pool := &fakePoolRepo{}
	poolEntryFor(pool, "tA", "sch-1", []string{"physics"})
	poolEntryFor(pool, "tB", "sch-1", []string{"math", "english"})
	poolEntryFor(pool, "tC", "sch-1", []string{"math", "english"})

	orgs := &fakeOrgRepo{}
	_ = orgs.Create(&models.Organization{
		Type:        models.OrgTypeUniversity,
		SchoolID:    "sch-1",
		DisplayName: "First University",
	})

	svc := newMatchingFixture(users, matches, pool, orgs, &fakeNotifier{})
	created, err := svc.CreateRequest("stu", &dto.CreateMatchRequest{Tags: []string{"math", "english"}})
	require.NoError(t, err)

	candidates, err := svc.Candidates("stu", created.ID, 10)
	require.NoError(t, err)

	// The stale teacher is excluded; the best overlap ranks first, and
	// zero-score eligible teachers still appear at the tail.
	require.Len(t, candidates, 2)
	assert.Equal(t, "tB", candidates[0].UserID)
	assert.Equal(t, "Tag match: math, english", candidates[0].Explain)
	assert.Equal(t, "First University", candidates[0].SchoolDisplayName)
	assert.Equal(t, "tA", candidates[1].UserID)
	assert.Equal(t, "Tag match: none", candidates[1].Explain)

	t.Run("limit truncates", func(t *testing.T) {
		candidates, err := svc.Candidates("stu", created.ID, 1)
		require.NoError(t, err)
		require.Len(t, candidates, 1)
		assert.Equal(t, "tB", candidates[0].UserID)
	})

	t.Run("only the owner sees candidates", func(t *testing.T) {
		_, err := svc.Candidates("intruder", created.ID, 10)
		assert.ErrorIs(t, err, apperrors.ErrNotRequestOwner)
	})
}

func TestMatchingCreateOffer(t *testing.T) {
	teacher := verifiedTeacher("t1", "sch-1")
	users := newFakeUserRepo(teacher)
	matches := newFakeMatchRepo()
	notifier := &fakeNotifier{}

	svc := newMatchingFixture(users, matches, &fakePoolRepo{}, &fakeOrgRepo{}, notifier)
	created, err := svc.CreateRequest("stu", &dto.CreateMatchRequest{Tags: []string{"math"}})
	require.NoError(t, err)

	offer, err := svc.CreateOffer("stu", created.ID, "t1")
	require.NoError(t, err)
	assert.Equal(t, models.OfferStatusPending, offer.Status)

	sent := notifier.sentTo("t1")
	require.Len(t, sent, 1)
	assert.Equal(t, models.NotifyMatchOffer, sent[0].Type)
	assert.Equal(t, created.ID, sent[0].Payload["request_id"])

	t.Run("idempotent per request and teacher", func(t *testing.T) {
		again, err := svc.CreateOffer("stu", created.ID, "t1")
		require.NoError(t, err)
		assert.Equal(t, offer.ID, again.ID)
		assert.Len(t, matches.offers, 1)
	})

	t.Run("ineligible teacher", func(t *testing.T) {
		demoted := verifiedTeacher("t2", "sch-1")
		demoted.Role = models.UserRoleGeneralStudent
		users.users["t2"] = demoted

		_, err := svc.CreateOffer("stu", created.ID, "t2")
		appErr, ok := apperrors.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperrors.CodeInvalidOperation, appErr.Code)
	})
}

func TestMatchingAcceptOffer(t *testing.T) {
	teacherA := verifiedTeacher("t1", "sch-1")
	teacherB := verifiedTeacher("t2", "sch-1")
	users := newFakeUserRepo(teacherA, teacherB)
	matches := newFakeMatchRepo()
	conversations := newFakeConversationRepo()
	notifier := &fakeNotifier{}

	svc := newMatchingFixtureWithConversations(users, matches, &fakePoolRepo{}, &fakeOrgRepo{}, conversations, notifier)
	created, err := svc.CreateRequest("stu", &dto.CreateMatchRequest{Tags: []string{"math"}})
	require.NoError(t, err)
	first, err := svc.CreateOffer("stu", created.ID, "t1")
	require.NoError(t, err)
	second, err := svc.CreateOffer("stu", created.ID, "t2")
	require.NoError(t, err)

	t.Run("only the offer's teacher may accept", func(t *testing.T) {
		_, err := svc.AcceptOffer("t2", first.ID)
		assert.ErrorIs(t, err, apperrors.ErrInsufficientPermissions)
	})

	resp, err := svc.AcceptOffer("t1", first.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OfferStatusAccepted, resp.Status)
	require.NotEmpty(t, resp.ConversationID)

	// The request is closed and the sibling offer declined together.
	assert.Equal(t, models.MatchRequestMatched, matches.requests[created.ID].Status)
	assert.Equal(t, models.OfferStatusDeclined, matches.offers[second.ID].Status)

	// Both parties share a conversation seeded with the greeting.
	assert.ElementsMatch(t, []string{"stu", "t1"}, conversations.participants[resp.ConversationID])
	require.Len(t, conversations.messages, 1)
	assert.Equal(t, "t1", conversations.messages[0].SenderID)
	assert.Equal(t, "I have accepted your request; we can start talking.", conversations.messages[0].Content)

	for _, userID := range []string{"stu", "t1"} {
		sent := notifier.sentTo(userID)
		var accepted []sentNotification
		for _, n := range sent {
			if n.Type == models.NotifyMatchAccepted {
				accepted = append(accepted, n)
			}
		}
		require.Len(t, accepted, 1)
		assert.Equal(t, resp.ConversationID, accepted[0].Payload["conversation_id"])
	}

	t.Run("sibling cannot be accepted afterwards", func(t *testing.T) {
		_, err := svc.AcceptOffer("t2", second.ID)
		assert.ErrorIs(t, err, apperrors.ErrOfferAlreadyHandled)
	})

	t.Run("accept twice", func(t *testing.T) {
		_, err := svc.AcceptOffer("t1", first.ID)
		assert.ErrorIs(t, err, apperrors.ErrOfferAlreadyHandled)
	})
}

func TestMatchingDeclineOffer(t *testing.T) {
	teacher := verifiedTeacher("t1", "sch-1")
	users := newFakeUserRepo(teacher)
	matches := newFakeMatchRepo()
	notifier := &fakeNotifier{}

	svc := newMatchingFixture(users, matches, &fakePoolRepo{}, &fakeOrgRepo{}, notifier)
	created, err := svc.CreateRequest("stu", &dto.CreateMatchRequest{Tags: []string{"math"}})
	require.NoError(t, err)
	offer, err := svc.CreateOffer("stu", created.ID, "t1")
	require.NoError(t, err)

	t.Run("only the offer's teacher may decline", func(t *testing.T) {
		_, err := svc.DeclineOffer("someone-else", offer.ID)
		assert.ErrorIs(t, err, apperrors.ErrInsufficientPermissions)
	})

	declined, err := svc.DeclineOffer("t1", offer.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OfferStatusDeclined, declined.Status)

	t.Run("decline twice", func(t *testing.T) {
		_, err := svc.DeclineOffer("t1", offer.ID)
		assert.ErrorIs(t, err, apperrors.ErrOfferAlreadyHandled)
	})
}

func TestMatchingInbox(t *testing.T) {
	teacher := verifiedTeacher("t1", "sch-1")
	student := &models.User{
		BaseModel: models.BaseModel{ID: "stu"},
		Username:  "student",
		FullName:  "A Student",
		IsActive:  true,
	}
	users := newFakeUserRepo(teacher, student)
	matches := newFakeMatchRepo()

	svc := newMatchingFixture(users, matches, &fakePoolRepo{}, &fakeOrgRepo{}, &fakeNotifier{})
	created, err := svc.CreateRequest("stu", &dto.CreateMatchRequest{Tags: []string{"math"}})
	require.NoError(t, err)
	_, err = svc.CreateOffer("stu", created.ID, "t1")
	require.NoError(t, err)

	items, err := svc.Inbox("t1")
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.NotNil(t, items[0].Request)
	assert.Equal(t, created.ID, items[0].Request.ID)
	require.NotNil(t, items[0].Student)
	assert.Equal(t, "A Student", items[0].Student.FullName)

	t.Run("non-teachers have no inbox", func(t *testing.T) {
		_, err := svc.Inbox("stu")
		assert.ErrorIs(t, err, apperrors.ErrInsufficientPermissions)
	})
}
