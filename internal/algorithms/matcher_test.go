package algorithms_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"cloudedumatch_backend/internal/algorithms"
	"cloudedumatch_backend/internal/models"
)

func teacherUser(profile string) *models.User {
	return &models.User{
		Role:     models.UserRoleVolunteerTeacher,
		IsActive: true,
		Profile:  []byte(profile),
	}
}

func TestEligibleTeacher(t *testing.T) {
	verified := `{"verification":{"teacher":"verified"}}`

	assert.True(t, algorithms.EligibleTeacher(teacherUser(verified)))

	t.Run("nil user", func(t *testing.T) {
		assert.False(t, algorithms.EligibleTeacher(nil))
	})

	t.Run("inactive", func(t *testing.T) {
		u := teacherUser(verified)
		u.IsActive = false
		assert.False(t, algorithms.EligibleTeacher(u))
	})

	t.Run("demoted role", func(t *testing.T) {
		u := teacherUser(verified)
		u.Role = models.UserRoleGeneralStudent
		assert.False(t, algorithms.EligibleTeacher(u))
	})

	t.Run("unverified credential", func(t *testing.T) {
		assert.False(t, algorithms.EligibleTeacher(teacherUser(`{"verification":{"teacher":"none"}}`)))
	})

	t.Run("empty profile blob", func(t *testing.T) {
		u := teacherUser("")
		u.Profile = nil
		assert.False(t, algorithms.EligibleTeacher(u))
	})
}

func TestTagOverlapScore(t *testing.T) {
	assert.Equal(t, 2, algorithms.TagOverlapScore(
		[]string{"math", "physics", "english"},
		[]string{"physics", "math", "chemistry"},
	))

	assert.Equal(t, 0, algorithms.TagOverlapScore(nil, []string{"math"}))
	assert.Equal(t, 0, algorithms.TagOverlapScore([]string{"math"}, nil))

	// Duplicates on either side never inflate the score.
	assert.Equal(t, 1, algorithms.TagOverlapScore(
		[]string{"math", "math", "math"},
		[]string{"math", "math"},
	))
}

func TestMatchedTags(t *testing.T) {
	matched := algorithms.MatchedTags(
		[]string{"english", "math", "english", "art"},
		[]string{"math", "english"},
	)
	// Request order, no duplicates.
	assert.Equal(t, []string{"english", "math"}, matched)

	assert.Empty(t, algorithms.MatchedTags([]string{"art"}, []string{"math"}))
	assert.NotNil(t, algorithms.MatchedTags(nil, nil))
}

func TestRankEntriesStable(t *testing.T) {
	entries := []algorithms.ScoredEntry{
		{Entry: models.TeacherPoolEntry{UserID: "a"}, Score: 1},
		{Entry: models.TeacherPoolEntry{UserID: "b"}, Score: 3},
		{Entry: models.TeacherPoolEntry{UserID: "c"}, Score: 1},
		{Entry: models.TeacherPoolEntry{UserID: "d"}, Score: 3},
	}

	algorithms.RankEntries(entries)

	got := make([]string, len(entries))
	for i, e := range entries {
		got[i] = e.Entry.UserID
	}
	// Ties keep encounter order.
	assert.Equal(t, []string{"b", "d", "a", "c"}, got)
}

func TestClampLimit(t *testing.T) {
	assert.Equal(t, 10, algorithms.ClampLimit(10))
	assert.Equal(t, 1, algorithms.ClampLimit(0))
	assert.Equal(t, 1, algorithms.ClampLimit(-5))
	assert.Equal(t, algorithms.MaxCandidates, algorithms.ClampLimit(9999))
}

func TestExplain(t *testing.T) {
	assert.Equal(t, "Tag match: none", algorithms.Explain(nil))
	assert.Equal(t, "Tag match: math, physics", algorithms.Explain([]string{"math", "physics"}))
}
