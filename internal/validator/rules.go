package validator

import (
	"log"

	"github.com/go-playground/validator/v10"

	"cloudedumatch_backend/internal/models"
)

// registerCustomRules wires the platform's enum rules into the validator
// instance.
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	mustRegister("is-org-type", validateOrgType)
	mustRegister("is-verification-type", validateVerificationType)
	mustRegister("is-review-status", validateReviewStatus)
	mustRegister("is-channel", validateChannel)
	mustRegister("is-time-mode", validateTimeMode)
	mustRegister("is-announcement-scope", validateAnnouncementScope)
	mustRegister("is-audience", validateAudience)
}

// Empty values pass every rule below; pair with 'required' when the
// field is mandatory.

func validateOrgType(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return models.ValidOrgType(models.OrgType(value))
}

func validateVerificationType(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch models.VerificationType(value) {
	case models.VerificationGeneralBasic, models.VerificationUniversityStudent,
		models.VerificationVolunteerTeacher, models.VerificationSpecialAid:
		return true
	default:
		return false
	}
}

func validateReviewStatus(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch models.RequestStatus(value) {
	case models.RequestStatusApproved, models.RequestStatusRejected:
		return true
	default:
		return false
	}
}

func validateChannel(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch value {
	case "text", "voice", "video":
		return true
	default:
		return false
	}
}

func validateTimeMode(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch value {
	case "now", "schedule":
		return true
	default:
		return false
	}
}

func validateAnnouncementScope(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch models.AnnouncementScope(value) {
	case models.ScopePublic, models.ScopeCampus, models.ScopeAid:
		return true
	default:
		return false
	}
}

func validateAudience(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch models.Audience(value) {
	case models.AudiencePublicAll, models.AudienceCampusAll,
		models.AudienceAssociationTeachers, models.AudienceAidSchool:
		return true
	default:
		return false
	}
}
