package models

import (
	"encoding/json"

	"gorm.io/datatypes"
)

// VerificationMap mirrors profile.verification. Missing keys default to
// "none".
type VerificationMap struct {
	Student      VerificationState `json:"student"`
	Teacher      VerificationState `json:"teacher"`
	Aid          VerificationState `json:"aid"`
	GeneralBasic VerificationState `json:"generalBasic"`
}

// Profile is the typed view over the user's free-form profile blob.
// Unknown keys are preserved on writes via SetProfileVerification.
type Profile struct {
	Verification VerificationMap `json:"verification"`
	Bio          string          `json:"bio,omitempty"`
	AvatarURL    string          `json:"avatarUrl,omitempty"`
}

func defaultVerificationMap() VerificationMap {
	return VerificationMap{
		Student:      VerificationStateNone,
		Teacher:      VerificationStateNone,
		Aid:          VerificationStateNone,
		GeneralBasic: VerificationStateNone,
	}
}

// ParseProfile decodes the stored profile blob. Malformed or empty input
// yields the default profile, never an error.
func ParseProfile(raw datatypes.JSON) Profile {
	p := Profile{Verification: defaultVerificationMap()}
	if len(raw) == 0 {
		return p
	}
	var decoded Profile
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return p
	}
	if decoded.Verification.Student == "" {
		decoded.Verification.Student = VerificationStateNone
	}
	if decoded.Verification.Teacher == "" {
		decoded.Verification.Teacher = VerificationStateNone
	}
	if decoded.Verification.Aid == "" {
		decoded.Verification.Aid = VerificationStateNone
	}
	if decoded.Verification.GeneralBasic == "" {
		decoded.Verification.GeneralBasic = VerificationStateNone
	}
	return decoded
}

// SetProfileVerification updates one verification field in the profile
// blob while preserving every other key. A malformed blob is replaced by
// a fresh object rather than rejected.
func SetProfileVerification(raw datatypes.JSON, field string, state VerificationState) datatypes.JSON {
	var obj map[string]interface{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &obj); err != nil {
			obj = nil
		}
	}
	if obj == nil {
		obj = map[string]interface{}{}
	}

	verification, _ := obj["verification"].(map[string]interface{})
	if verification == nil {
		verification = map[string]interface{}{}
	}
	verification[field] = string(state)
	obj["verification"] = verification

	out, err := json.Marshal(obj)
	if err != nil {
		return raw
	}
	return out
}

// ResetProfileVerification clears every verification field back to "none".
func ResetProfileVerification(raw datatypes.JSON) datatypes.JSON {
	for _, field := range []string{"student", "teacher", "aid", "generalBasic"} {
		raw = SetProfileVerification(raw, field, VerificationStateNone)
	}
	return raw
}

// TeacherEvidence is the typed view of the first element of a teacher
// verification request's evidence payload.
type TeacherEvidence struct {
	Tags      []string `json:"tags"`
	TimeSlots []string `json:"timeSlots"`
}

// ParseTeacherEvidence extracts tags and time slots from an evidence
// payload. The payload is a JSON array; only the first element is
// consulted, and any parse failure yields empty lists.
func ParseTeacherEvidence(raw datatypes.JSON) TeacherEvidence {
	ev := TeacherEvidence{Tags: []string{}, TimeSlots: []string{}}
	if len(raw) == 0 {
		return ev
	}

	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil || len(elems) == 0 {
		return ev
	}

	var first TeacherEvidence
	if err := json.Unmarshal(elems[0], &first); err != nil {
		return ev
	}
	if first.Tags != nil {
		ev.Tags = first.Tags
	}
	if first.TimeSlots != nil {
		ev.TimeSlots = first.TimeSlots
	}
	return ev
}

// ParseStringList decodes a JSON array of strings, defaulting to empty on
// any failure.
func ParseStringList(raw datatypes.JSON) []string {
	if len(raw) == 0 {
		return []string{}
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err != nil {
		return []string{}
	}
	return list
}

// StringList encodes a slice as a JSON array column value.
func StringList(values []string) datatypes.JSON {
	if values == nil {
		values = []string{}
	}
	out, err := json.Marshal(values)
	if err != nil {
		return datatypes.JSON("[]")
	}
	return out
}
