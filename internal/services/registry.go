package services

import (
	"gorm.io/gorm"

	"cloudedumatch_backend/internal/repositories"
	"cloudedumatch_backend/internal/storage"
)

// ServiceContainer wires the repositories into the service layer once,
// at startup.
type ServiceContainer struct {
	Auth          AuthService
	Verification  VerificationService
	TeacherPool   TeacherPoolService
	Matching      MatchingService
	Points        PointsService
	Organization  OrganizationService
	Announcement  AnnouncementService
	Admin         AdminService
	Community     CommunityService
	Campus        CampusService
	Qa            QaService
	Conversation  ConversationService
	Notification  NotificationService
	Aid           AidService
	Association   AssociationService
	File          FileService
}

func NewServiceContainer(db *gorm.DB, store storage.Storage) *ServiceContainer {
	users := repositories.NewUserRepository(db)
	organizations := repositories.NewOrganizationRepository(db)
	verifications := repositories.NewVerificationRepository(db)
	pool := repositories.NewTeacherPoolRepository(db)
	matches := repositories.NewMatchRepository(db)
	points := repositories.NewPointsRepository(db)
	announcements := repositories.NewAnnouncementRepository(db)
	community := repositories.NewCommunityRepository(db)
	campus := repositories.NewCampusRepository(db)
	qa := repositories.NewQaRepository(db)
	conversations := repositories.NewConversationRepository(db)
	notifications := repositories.NewNotificationRepository(db)
	files := repositories.NewFileRepository(db)
	associations := repositories.NewAssociationRepository(db)

	notifier := NewNotificationService(notifications)

	return &ServiceContainer{
		Auth:         NewAuthService(users, verifications),
		Verification: NewVerificationService(verifications, users, organizations, pool, notifier),
		TeacherPool:  NewTeacherPoolService(pool, users),
		Matching:     NewMatchingService(GormMatchTx(db), matches, pool, users, organizations, conversations, notifier),
		Points:       NewPointsService(points),
		Organization: NewOrganizationService(organizations, users),
		Announcement: NewAnnouncementService(announcements, users, notifier),
		Admin:        NewAdminService(db, users, organizations, verifications, notifier),
		Community:    NewCommunityService(community, users),
		Campus:       NewCampusService(campus, users),
		Qa:           NewQaService(qa, users, notifier),
		Conversation: NewConversationService(conversations, users, notifier),
		Notification: notifier,
		Aid:          NewAidService(users, notifier),
		Association:  NewAssociationService(associations, users, notifier),
		File:         NewFileService(files, users, store),
	}
}
