package algorithms

import (
	"sort"
	"strings"

	"cloudedumatch_backend/internal/models"
)

// MaxCandidates caps the ranked list regardless of the requested limit.
const MaxCandidates = 50

// EligibleTeacher reports whether a pool entry's linked user still
// qualifies for matching: active, still a volunteer teacher, and with a
// verified teacher credential. Stale entries fail this check and are
// excluded from scoring (and reaped on pool listings).
func EligibleTeacher(user *models.User) bool {
	if user == nil || !user.IsActive {
		return false
	}
	if user.Role != models.UserRoleVolunteerTeacher {
		return false
	}
	verification := models.ParseProfile(user.Profile).Verification
	return verification.Teacher == models.VerificationStateVerified
}

// TagOverlapScore counts distinct requested tags present in the
// candidate's tag set. Duplicates on either side never raise the score.
func TagOverlapScore(want, have []string) int {
	if len(want) == 0 || len(have) == 0 {
		return 0
	}
	haveSet := make(map[string]struct{}, len(have))
	for _, t := range have {
		haveSet[t] = struct{}{}
	}
	seen := make(map[string]struct{}, len(want))
	score := 0
	for _, t := range want {
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		if _, ok := haveSet[t]; ok {
			score++
		}
	}
	return score
}

// MatchedTags returns the requested tags found in the candidate's set,
// in request order, without duplicates.
func MatchedTags(want, have []string) []string {
	haveSet := make(map[string]struct{}, len(have))
	for _, t := range have {
		haveSet[t] = struct{}{}
	}
	matched := []string{}
	seen := make(map[string]struct{}, len(want))
	for _, t := range want {
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		if _, ok := haveSet[t]; ok {
			matched = append(matched, t)
		}
	}
	return matched
}

// ScoredEntry pairs a pool entry with its overlap score.
type ScoredEntry struct {
	Entry models.TeacherPoolEntry
	Score int
}

// RankEntries sorts by score descending. The sort is stable, so ties
// keep their encounter order, which follows entry creation order when
// the caller loads entries that way.
func RankEntries(entries []ScoredEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Score > entries[j].Score
	})
}

// ClampLimit truncates the requested result size to [1, MaxCandidates].
func ClampLimit(limit int) int {
	if limit > MaxCandidates {
		limit = MaxCandidates
	}
	if limit < 1 {
		limit = 1
	}
	return limit
}

// Explain renders the human-readable match reason.
func Explain(matched []string) string {
	if len(matched) == 0 {
		return "Tag match: none"
	}
	return "Tag match: " + strings.Join(matched, ", ")
}
