package handlers

import (
	"cloudedumatch_backend/internal/services"
	"cloudedumatch_backend/internal/validator"
)

// AppHandlers bundles all HTTP handlers so route registration has a
// single wiring point.
type AppHandlers struct {
	Health       *HealthHandler
	Auth         *AuthHandler
	Verification *VerificationHandler
	TeacherPool  *TeacherPoolHandler
	Matching     *MatchingHandler
	Points       *PointsHandler
	Organization *OrganizationHandler
	Announcement *AnnouncementHandler
	Admin        *AdminHandler
	Community    *CommunityHandler
	Campus       *CampusHandler
	Qa           *QaHandler
	Conversation *ConversationHandler
	Notification *NotificationHandler
	Aid          *AidHandler
	Association  *AssociationHandler
	File         *FileHandler
}

func NewAppHandlers(services *services.ServiceContainer, v *validator.Validator) *AppHandlers {
	base := NewBaseHandler(v)

	return &AppHandlers{
		Health:       NewHealthHandler(base),
		Auth:         NewAuthHandler(base, services.Auth),
		Verification: NewVerificationHandler(base, services.Verification),
		TeacherPool:  NewTeacherPoolHandler(base, services.TeacherPool),
		Matching:     NewMatchingHandler(base, services.Matching),
		Points:       NewPointsHandler(base, services.Points),
		Organization: NewOrganizationHandler(base, services.Organization),
		Announcement: NewAnnouncementHandler(base, services.Announcement),
		Admin:        NewAdminHandler(base, services.Admin),
		Community:    NewCommunityHandler(base, services.Community),
		Campus:       NewCampusHandler(base, services.Campus),
		Qa:           NewQaHandler(base, services.Qa),
		Conversation: NewConversationHandler(base, services.Conversation),
		Notification: NewNotificationHandler(base, services.Notification),
		Aid:          NewAidHandler(base, services.Aid),
		Association:  NewAssociationHandler(base, services.Association),
		File:         NewFileHandler(base, services.File),
	}
}
