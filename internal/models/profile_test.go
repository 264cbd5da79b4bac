package models_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cloudedumatch_backend/internal/models"
)

func TestParseProfile(t *testing.T) {
	t.Run("empty blob yields defaults", func(t *testing.T) {
		p := models.ParseProfile(nil)
		assert.Equal(t, models.VerificationStateNone, p.Verification.Student)
		assert.Equal(t, models.VerificationStateNone, p.Verification.Teacher)
		assert.Equal(t, models.VerificationStateNone, p.Verification.Aid)
		assert.Equal(t, models.VerificationStateNone, p.Verification.GeneralBasic)
	})

	t.Run("malformed blob yields defaults", func(t *testing.T) {
		p := models.ParseProfile([]byte("{not json"))
		assert.Equal(t, models.VerificationStateNone, p.Verification.Teacher)
	})

	t.Run("missing keys default to none", func(t *testing.T) {
		p := models.ParseProfile([]byte(`{"verification":{"teacher":"verified"}}`))
		assert.Equal(t, models.VerificationStateVerified, p.Verification.Teacher)
		assert.Equal(t, models.VerificationStateNone, p.Verification.Student)
	})
}

func TestSetProfileVerification(t *testing.T) {
	raw := []byte(`{"bio":"hello","verification":{"student":"verified"},"customKey":42}`)

	out := models.SetProfileVerification(raw, "teacher", models.VerificationStateVerified)

	var obj map[string]interface{}
	require.NoError(t, json.Unmarshal(out, &obj))

	// Unknown keys survive the write.
	assert.Equal(t, "hello", obj["bio"])
	assert.Equal(t, float64(42), obj["customKey"])

	verification := obj["verification"].(map[string]interface{})
	assert.Equal(t, "verified", verification["teacher"])
	assert.Equal(t, "verified", verification["student"])

	t.Run("malformed blob is replaced", func(t *testing.T) {
		out := models.SetProfileVerification([]byte("oops"), "aid", models.VerificationStateVerified)
		p := models.ParseProfile(out)
		assert.Equal(t, models.VerificationStateVerified, p.Verification.Aid)
	})
}

func TestResetProfileVerification(t *testing.T) {
	raw := models.SetProfileVerification(nil, "teacher", models.VerificationStateVerified)
	raw = models.SetProfileVerification(raw, "student", models.VerificationStateVerified)

	out := models.ResetProfileVerification(raw)
	p := models.ParseProfile(out)

	assert.Equal(t, models.VerificationStateNone, p.Verification.Student)
	assert.Equal(t, models.VerificationStateNone, p.Verification.Teacher)
	assert.Equal(t, models.VerificationStateNone, p.Verification.Aid)
	assert.Equal(t, models.VerificationStateNone, p.Verification.GeneralBasic)
}

func TestParseTeacherEvidence(t *testing.T) {
	t.Run("first element is consulted", func(t *testing.T) {
		raw := []byte(`[{"tags":["math","english"],"timeSlots":["sat_am"]},{"tags":["ignored"]}]`)
		ev := models.ParseTeacherEvidence(raw)
		assert.Equal(t, []string{"math", "english"}, ev.Tags)
		assert.Equal(t, []string{"sat_am"}, ev.TimeSlots)
	})

	t.Run("non-array payload yields empty lists", func(t *testing.T) {
		ev := models.ParseTeacherEvidence([]byte(`{"tags":["math"]}`))
		assert.Empty(t, ev.Tags)
		assert.NotNil(t, ev.Tags)
	})

	t.Run("empty payload yields empty lists", func(t *testing.T) {
		ev := models.ParseTeacherEvidence(nil)
		assert.Empty(t, ev.Tags)
		assert.Empty(t, ev.TimeSlots)
	})
}

func TestStringListRoundTrip(t *testing.T) {
	encoded := models.StringList([]string{"a", "b"})
	assert.Equal(t, []string{"a", "b"}, models.ParseStringList(encoded))

	assert.NotNil(t, models.ParseStringList(nil))
	assert.Empty(t, models.ParseStringList([]byte("broken")))
}
