package database

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"cloudedumatch_backend/internal/config"
	"cloudedumatch_backend/internal/logger"
	"cloudedumatch_backend/internal/models"
)

var gormDB *gorm.DB

// ConnectGorm opens (or reuses) the GORM connection from config.
func ConnectGorm() (*gorm.DB, error) {
	if gormDB != nil {
		return gormDB, nil
	}

	cfg := config.AppConfig
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to GORM: %w", err)
	}

	gormDB = db
	return db, nil
}

// AutoMigrate creates or updates the schema for every model.
func AutoMigrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.AdminRole{},
		&models.Organization{},
		&models.Tag{},
		&models.Announcement{},
		&models.VerificationRequest{},
		&models.OnboardingRequest{},
		&models.TeacherPoolEntry{},
		&models.MatchRequest{},
		&models.MatchOffer{},
		&models.PointTxn{},
		&models.CommunityPost{},
		&models.CommunityComment{},
		&models.CampusTopic{},
		&models.CampusPost{},
		&models.CampusPostComment{},
		&models.QaQuestion{},
		&models.QaAnswer{},
		&models.Conversation{},
		&models.ConversationParticipant{},
		&models.Message{},
		&models.Notification{},
		&models.AssociationTask{},
		&models.AssociationRuleSet{},
		&models.VolunteerHourGrant{},
		&models.FileAsset{},
	)
	if err != nil {
		return fmt.Errorf("auto-migration failed: %w", err)
	}

	logger.Info("Schema migration completed")
	return nil
}
