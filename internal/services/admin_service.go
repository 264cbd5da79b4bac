package services

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"cloudedumatch_backend/internal/auth"
	"cloudedumatch_backend/internal/authz"
	"cloudedumatch_backend/internal/logger"
	"cloudedumatch_backend/internal/models"
	"cloudedumatch_backend/internal/repositories"
	"cloudedumatch_backend/internal/services/dto"
	"cloudedumatch_backend/pkg/apperrors"
)

type AdminService interface {
	ListUsers(callerID string, filter repositories.UserFilter) (*dto.UserListResponse, error)
	// ListOrgAdmins aggregates every organization with its board of
	// admin grant holders.
	ListOrgAdmins(callerID string) ([]*dto.OrgBoardResponse, error)
	// DeleteUser removes an account. Soft deletion deactivates it and
	// strips grants; hard deletion cascades through everything the user
	// owns and cleans up schools left without a board.
	DeleteUser(callerID, targetID string, hard bool) (*dto.DeleteUserResponse, error)
	PurgeOrphanSchools(callerID string, dryRun bool) (*dto.PurgeOrphansResponse, error)
	CreateOrgAdmin(callerID string, req *dto.CreateOrgAdminRequest) (*dto.OrgAdminCreatedResponse, error)

	ListOnboarding(callerID string, status string) ([]*dto.OnboardingResponse, error)
	ReviewOnboarding(reviewerID, requestID string, req *dto.ReviewOnboardingRequest) (*dto.OnboardingResponse, error)
}

type adminService struct {
	db *gorm.DB

	users         repositories.UserRepository
	organizations repositories.OrganizationRepository
	verifications repositories.VerificationRepository
	notifier      NotificationService
}

func NewAdminService(
	db *gorm.DB,
	users repositories.UserRepository,
	organizations repositories.OrganizationRepository,
	verifications repositories.VerificationRepository,
	notifier NotificationService,
) AdminService {
	return &adminService{
		db:            db,
		users:         users,
		organizations: organizations,
		verifications: verifications,
		notifier:      notifier,
	}
}

func (s *adminService) requireSuperuser(callerID string) (*models.User, error) {
	caller, err := s.users.FindByIDWithGrants(callerID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	if !authz.IsSuperuser(caller) {
		return nil, apperrors.ErrInsufficientPermissions
	}
	return caller, nil
}

func (s *adminService) ListUsers(callerID string, filter repositories.UserFilter) (*dto.UserListResponse, error) {
	if _, err := s.requireSuperuser(callerID); err != nil {
		return nil, err
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 || filter.PageSize > 100 {
		filter.PageSize = 20
	}

	users, total, err := s.users.List(filter)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	items := make([]*dto.UserResponse, 0, len(users))
	for i := range users {
		items = append(items, dto.NewUserResponse(&users[i]))
	}
	return &dto.UserListResponse{
		Items:    items,
		Total:    total,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}, nil
}

func (s *adminService) DeleteUser(callerID, targetID string, hard bool) (*dto.DeleteUserResponse, error) {
	caller, err := s.requireSuperuser(callerID)
	if err != nil {
		return nil, err
	}
	if caller.ID == targetID {
		return nil, apperrors.ErrCannotModifySelf
	}

	target, err := s.users.FindByIDWithGrants(targetID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	if target.IsSuperuser {
		count, err := s.users.CountSuperusers()
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		if count <= 1 {
			return nil, apperrors.ErrInvalidOperation("admin", "Cannot remove the last superuser")
		}
	}

	if !hard {
		if err := s.users.UpdateFields(target.ID, map[string]interface{}{"is_active": false}); err != nil {
			return nil, apperrors.InternalError(err)
		}
		if err := s.users.DeleteGrantsByUser(target.ID); err != nil {
			return nil, apperrors.InternalError(err)
		}
		logger.Info("user deactivated", "user_id", target.ID, "by", caller.ID)
		return &dto.DeleteUserResponse{UserID: target.ID, Hard: false, OrphanSchools: []string{}}, nil
	}

	orphanSchools, err := s.orphanedSchoolsAfterRemoval(target)
	if err != nil {
		return nil, err
	}

	demotedBySchool := make(map[string][]string)
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.deleteUserOwnedRecords(tx, target.ID); err != nil {
			return err
		}
		for _, schoolID := range orphanSchools {
			ids, err := s.cleanupSchool(tx, schoolID, target.ID)
			if err != nil {
				return err
			}
			demotedBySchool[schoolID] = ids
		}
		if err := tx.Delete(&models.AdminRole{}, "user_id = ?", target.ID).Error; err != nil {
			return err
		}
		return tx.Delete(&models.User{}, "id = ?", target.ID).Error
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	demoted := 0
	for schoolID, ids := range demotedBySchool {
		demoted += len(ids)
		for _, userID := range ids {
			s.notifier.Notify(userID, models.NotifyVerificationRevoked, map[string]interface{}{
				"reason":    "university_board_removed",
				"school_id": schoolID,
			})
		}
	}

	logger.Info("user deleted",
		"user_id", target.ID, "by", caller.ID, "orphan_schools", len(orphanSchools))
	return &dto.DeleteUserResponse{
		UserID:        target.ID,
		Hard:          true,
		OrphanSchools: orphanSchools,
		DemotedUsers:  demoted,
	}, nil
}

// orphanedSchoolsAfterRemoval lists the university schools whose only
// university_admin is the user about to be removed.
func (s *adminService) orphanedSchoolsAfterRemoval(target *models.User) ([]string, error) {
	orphans := make([]string, 0)
	seen := make(map[string]bool)

	for _, g := range target.AdminRoles {
		if g.RoleCode != models.RoleCodeUniversityAdmin || g.Organization == nil {
			continue
		}
		schoolID := g.Organization.SchoolID
		if schoolID == "" || seen[schoolID] {
			continue
		}
		seen[schoolID] = true

		grants, err := s.users.ListGrantsByOrganization(g.OrganizationID)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		hasOther := false
		for _, other := range grants {
			if other.RoleCode == models.RoleCodeUniversityAdmin && other.UserID != target.ID {
				hasOther = true
				break
			}
		}
		if !hasOther {
			orphans = append(orphans, schoolID)
		}
	}
	return orphans, nil
}

func (s *adminService) deleteUserOwnedRecords(tx *gorm.DB, userID string) error {
	deletes := []struct {
		model  interface{}
		clause string
	}{
		{&models.VerificationRequest{}, "applicant_id = ?"},
		{&models.OnboardingRequest{}, "user_id = ?"},
		{&models.TeacherPoolEntry{}, "user_id = ?"},
		{&models.MatchOffer{}, "student_id = ? OR teacher_id = ?"},
		{&models.MatchRequest{}, "student_id = ?"},
		{&models.PointTxn{}, "user_id = ?"},
		{&models.FileAsset{}, "uploader_id = ?"},
		{&models.CommunityComment{}, "author_id = ?"},
		{&models.CommunityPost{}, "author_id = ?"},
		{&models.Notification{}, "user_id = ?"},
	}
	for _, d := range deletes {
		var err error
		if strings.Contains(d.clause, "OR") {
			err = tx.Delete(d.model, d.clause, userID, userID).Error
		} else {
			err = tx.Delete(d.model, d.clause, userID).Error
		}
		if err != nil {
			return err
		}
	}

	// Conversations the user participates in go away entirely, messages
	// included.
	var convIDs []string
	err := tx.Model(&models.ConversationParticipant{}).
		Where("user_id = ?", userID).
		Pluck("conversation_id", &convIDs).Error
	if err != nil {
		return err
	}
	if len(convIDs) > 0 {
		if err := tx.Delete(&models.Message{}, "conversation_id IN ?", convIDs).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.ConversationParticipant{}, "conversation_id IN ?", convIDs).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.Conversation{}, "id IN ?", convIDs).Error; err != nil {
			return err
		}
	}
	return nil
}

// cleanupSchool demotes the school's verified members and removes the
// school-scoped data once its board is gone. Returns the demoted user ids.
func (s *adminService) cleanupSchool(tx *gorm.DB, schoolID, excludeUserID string) ([]string, error) {
	var members []models.User
	err := tx.
		Where("school_id = ? AND id <> ?", schoolID, excludeUserID).
		Where("role IN ?", []models.UserRole{models.UserRoleUniversityStudent, models.UserRoleVolunteerTeacher}).
		Find(&members).Error
	if err != nil {
		return nil, err
	}

	demoted := make([]string, 0, len(members))
	for i := range members {
		member := &members[i]
		member.Profile = models.SetProfileVerification(member.Profile, "student", models.VerificationStateNone)
		member.Profile = models.SetProfileVerification(member.Profile, "teacher", models.VerificationStateNone)
		member.Role = models.UserRoleGeneralStudent
		member.SchoolID = ""
		if err := tx.Save(member).Error; err != nil {
			return nil, err
		}
		demoted = append(demoted, member.ID)
	}

	var postIDs []string
	if err := tx.Model(&models.CampusPost{}).Where("school_id = ?", schoolID).Pluck("id", &postIDs).Error; err != nil {
		return nil, err
	}
	if len(postIDs) > 0 {
		if err := tx.Delete(&models.CampusPostComment{}, "post_id IN ?", postIDs).Error; err != nil {
			return nil, err
		}
	}

	schoolDeletes := []interface{}{
		&models.TeacherPoolEntry{},
		&models.CampusPost{},
		&models.CampusTopic{},
	}
	for _, model := range schoolDeletes {
		if err := tx.Delete(model, "school_id = ?", schoolID).Error; err != nil {
			return nil, err
		}
	}
	if err := tx.Delete(&models.Announcement{}, "scope = ? AND school_id = ?", models.ScopeCampus, schoolID).Error; err != nil {
		return nil, err
	}
	if err := tx.Delete(&models.Organization{}, "school_id = ? AND type IN ?", schoolID,
		[]models.OrgType{models.OrgTypeUniversity, models.OrgTypeAssociation}).Error; err != nil {
		return nil, err
	}
	return demoted, nil
}

func (s *adminService) PurgeOrphanSchools(callerID string, dryRun bool) (*dto.PurgeOrphansResponse, error) {
	if _, err := s.requireSuperuser(callerID); err != nil {
		return nil, err
	}

	universities, err := s.organizations.List(models.OrgTypeUniversity)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	orphans := make([]string, 0)
	for i := range universities {
		org := &universities[i]
		if org.SchoolID == "" {
			continue
		}
		grants, err := s.users.ListGrantsByOrganization(org.ID)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		hasBoard := false
		for _, g := range grants {
			if g.RoleCode == models.RoleCodeUniversityAdmin {
				hasBoard = true
				break
			}
		}
		if !hasBoard {
			orphans = append(orphans, org.SchoolID)
		}
	}

	if dryRun {
		return &dto.PurgeOrphansResponse{DryRun: true, SchoolIDs: orphans}, nil
	}

	var demoted []string
	err = s.db.Transaction(func(tx *gorm.DB) error {
		for _, schoolID := range orphans {
			ids, err := s.cleanupSchool(tx, schoolID, "")
			if err != nil {
				return err
			}
			demoted = append(demoted, ids...)
		}
		return nil
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	for _, userID := range demoted {
		s.notifier.Notify(userID, models.NotifyVerificationRevoked, map[string]interface{}{
			"reason": "university_board_removed",
		})
	}

	logger.Info("orphan schools purged", "count", len(orphans))
	return &dto.PurgeOrphansResponse{DryRun: false, SchoolIDs: orphans, Deleted: true}, nil
}

// deriveSchoolCode builds a stable scope id from the given name, falling
// back to a random suffix when no name was provided.
func deriveSchoolCode(prefix, name string) string {
	trimmed := strings.Join(strings.Fields(name), "")
	if trimmed != "" {
		return trimmed
	}
	return prefix + "_" + uuid.NewString()[:8]
}

func (s *adminService) CreateOrgAdmin(callerID string, req *dto.CreateOrgAdminRequest) (*dto.OrgAdminCreatedResponse, error) {
	if _, err := s.requireSuperuser(callerID); err != nil {
		return nil, err
	}

	roleCode := models.RoleCode(req.RoleCode)
	switch roleCode {
	case models.RoleCodeUniversityAdmin, models.RoleCodeAssociationAdmin,
		models.RoleCodeAidSchoolAdmin, models.RoleCodeAssociationHQ, models.RoleCodeSuperadmin:
	default:
		return nil, apperrors.NewBadRequestError("unknown role code")
	}

	user, created, err := s.findOrCreateAdminUser(req)
	if err != nil {
		return nil, err
	}

	var org *models.Organization
	if roleCode != models.RoleCodeSuperadmin && roleCode != models.RoleCodeAssociationHQ {
		org, err = s.findOrCreateAdminOrg(roleCode, req)
		if err != nil {
			return nil, err
		}
	}

	fields := map[string]interface{}{
		"role":              models.UserRoleGovernance,
		"onboarding_status": models.RequestStatusApproved,
	}
	if roleCode == models.RoleCodeSuperadmin {
		fields["is_superuser"] = true
	}
	if org != nil {
		switch roleCode {
		case models.RoleCodeAidSchoolAdmin:
			fields["school_id"] = org.AidSchoolID
		default:
			fields["school_id"] = org.SchoolID
		}
	}
	if err := s.users.UpdateFields(user.ID, fields); err != nil {
		return nil, apperrors.InternalError(err)
	}

	orgID := ""
	schoolID := ""
	if org != nil {
		orgID = org.ID
		if roleCode == models.RoleCodeAidSchoolAdmin {
			schoolID = org.AidSchoolID
		} else {
			schoolID = org.SchoolID
		}
	}

	if _, err := s.users.FindGrant(user.ID, roleCode, orgID); err != nil {
		if !errors.Is(err, repositories.ErrGrantNotFound) {
			return nil, apperrors.InternalError(err)
		}
		grant := &models.AdminRole{
			UserID:         user.ID,
			RoleCode:       roleCode,
			OrganizationID: orgID,
		}
		if err := s.users.CreateGrant(grant); err != nil {
			return nil, apperrors.InternalError(err)
		}
	}

	logger.Info("org admin provisioned",
		"user_id", user.ID, "role_code", roleCode, "org_id", orgID, "created", created)
	return &dto.OrgAdminCreatedResponse{
		UserID:         user.ID,
		Username:       user.Username,
		RoleCode:       string(roleCode),
		OrganizationID: orgID,
		SchoolID:       schoolID,
		Created:        created,
	}, nil
}

func (s *adminService) findOrCreateAdminUser(req *dto.CreateOrgAdminRequest) (*models.User, bool, error) {
	user, err := s.users.FindByUsername(req.Username)
	if err == nil {
		return user, false, nil
	}
	if !errors.Is(err, repositories.ErrUserNotFound) {
		return nil, false, apperrors.InternalError(err)
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, false, apperrors.InternalError(err)
	}
	user = &models.User{
		Username:         req.Username,
		Email:            req.Username + "@cloudedumatch.local",
		PasswordHash:     hash,
		Role:             models.UserRoleGovernance,
		IsActive:         true,
		OnboardingStatus: models.RequestStatusApproved,
		Profile:          models.ResetProfileVerification(nil),
	}
	if err := s.users.Create(user); err != nil {
		return nil, false, apperrors.InternalError(err)
	}
	return user, true, nil
}

func (s *adminService) findOrCreateAdminOrg(roleCode models.RoleCode, req *dto.CreateOrgAdminRequest) (*models.Organization, error) {
	switch roleCode {
	case models.RoleCodeUniversityAdmin:
		schoolID := deriveSchoolCode("uni", req.SchoolName)
		org, err := s.organizations.FindByTypeAndSchoolID(models.OrgTypeUniversity, schoolID)
		if err == nil {
			return org, nil
		}
		if !errors.Is(err, repositories.ErrOrganizationNotFound) {
			return nil, apperrors.InternalError(err)
		}
		org = &models.Organization{
			Type:        models.OrgTypeUniversity,
			DisplayName: displayNameOrDefault(req.SchoolName, "University"),
			SchoolID:    schoolID,
			Certified:   true,
		}
		if err := s.organizations.Create(org); err != nil {
			return nil, apperrors.InternalError(err)
		}
		return org, nil

	case models.RoleCodeAssociationAdmin:
		// Associations share the school id with their university when one
		// already exists under the same school name.
		schoolID := ""
		if req.SchoolName != "" {
			if uni, err := s.organizations.FindByTypeAndDisplayName(models.OrgTypeUniversity, req.SchoolName); err == nil {
				schoolID = uni.SchoolID
			} else if !errors.Is(err, repositories.ErrOrganizationNotFound) {
				return nil, apperrors.InternalError(err)
			}
		}
		if schoolID == "" {
			schoolID = deriveSchoolCode("uni", req.SchoolName)
		}

		org, err := s.organizations.FindByTypeAndSchoolID(models.OrgTypeAssociation, schoolID)
		if err == nil {
			return org, nil
		}
		if !errors.Is(err, repositories.ErrOrganizationNotFound) {
			return nil, apperrors.InternalError(err)
		}
		org = &models.Organization{
			Type:        models.OrgTypeAssociation,
			DisplayName: displayNameOrDefault(req.AssociationName, "Volunteer Association"),
			SchoolID:    schoolID,
			Certified:   true,
		}
		if err := s.organizations.Create(org); err != nil {
			return nil, apperrors.InternalError(err)
		}
		return org, nil

	case models.RoleCodeAidSchoolAdmin:
		aidSchoolID := deriveSchoolCode("aid", req.AidSchoolName)
		org, err := s.organizations.FindByTypeAndAidSchoolID(models.OrgTypeAidSchool, aidSchoolID)
		if err == nil {
			return org, nil
		}
		if !errors.Is(err, repositories.ErrOrganizationNotFound) {
			return nil, apperrors.InternalError(err)
		}
		org = &models.Organization{
			Type:        models.OrgTypeAidSchool,
			DisplayName: displayNameOrDefault(req.AidSchoolName, "Aid School"),
			AidSchoolID: aidSchoolID,
			Certified:   true,
		}
		if err := s.organizations.Create(org); err != nil {
			return nil, apperrors.InternalError(err)
		}
		return org, nil
	}
	return nil, apperrors.NewBadRequestError("role code does not take an organization")
}

func displayNameOrDefault(name, fallback string) string {
	if strings.TrimSpace(name) != "" {
		return name
	}
	return fallback
}

func (s *adminService) ListOrgAdmins(callerID string) ([]*dto.OrgBoardResponse, error) {
	caller, err := s.users.FindByIDWithGrants(callerID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	if !authz.IsSuperuser(caller) && !authz.IsHQ(caller) {
		return nil, apperrors.ErrInsufficientPermissions
	}

	orgs, err := s.organizations.List("")
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	boards := make([]*dto.OrgBoardResponse, 0, len(orgs))
	for i := range orgs {
		org := &orgs[i]
		grants, err := s.users.ListGrantsByOrganization(org.ID)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		ids := make([]string, 0, len(grants))
		for _, g := range grants {
			ids = append(ids, g.UserID)
		}
		admins := make([]*dto.UserResponse, 0, len(ids))
		if len(ids) > 0 {
			members, err := s.users.FindByIDs(ids)
			if err != nil {
				return nil, apperrors.InternalError(err)
			}
			for j := range members {
				admins = append(admins, dto.NewUserResponse(&members[j]))
			}
		}
		boards = append(boards, &dto.OrgBoardResponse{
			Organization: dto.NewOrganizationResponse(org),
			Admins:       admins,
		})
	}
	return boards, nil
}

func (s *adminService) ListOnboarding(callerID string, status string) ([]*dto.OnboardingResponse, error) {
	caller, err := s.users.FindByIDWithGrants(callerID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	if !authz.CanReviewOnboarding(caller) {
		return nil, apperrors.ErrInsufficientPermissions
	}

	items, err := s.verifications.ListOnboarding(models.RequestStatus(status))
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	out := make([]*dto.OnboardingResponse, 0, len(items))
	for i := range items {
		out = append(out, dto.NewOnboardingResponse(&items[i]))
	}
	return out, nil
}

func (s *adminService) ReviewOnboarding(reviewerID, requestID string, req *dto.ReviewOnboardingRequest) (*dto.OnboardingResponse, error) {
	reviewer, err := s.users.FindByIDWithGrants(reviewerID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	if !authz.CanReviewOnboarding(reviewer) {
		return nil, apperrors.ErrInsufficientPermissions
	}

	record, err := s.verifications.FindOnboardingByID(requestID)
	if err != nil {
		if errors.Is(err, repositories.ErrOnboardingNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	if record.Status != models.RequestStatusPending {
		return nil, apperrors.ErrRequestAlreadyReviewed
	}

	status := models.RequestStatus(req.Status)
	if status == models.RequestStatusApproved {
		if err := s.approveOnboarding(record); err != nil {
			return nil, err
		}
	}

	record.Status = status
	record.ReviewedBy = reviewer.ID
	now := time.Now()
	record.ReviewedAt = &now
	record.RejectedReason = ""
	if status == models.RequestStatusRejected {
		record.RejectedReason = req.RejectedReason
	}
	if err := s.verifications.UpdateOnboarding(record); err != nil {
		return nil, apperrors.InternalError(err)
	}

	// Keep the applicant account's status in step with the review.
	if record.UserID != "" {
		fields := map[string]interface{}{"onboarding_status": status}
		if err := s.users.UpdateFields(record.UserID, fields); err != nil {
			return nil, apperrors.InternalError(err)
		}
	}

	logger.Info("onboarding reviewed",
		"request_id", record.ID, "status", status, "reviewer_id", reviewer.ID)
	return dto.NewOnboardingResponse(record), nil
}

// approveOnboarding materializes the organization the applicant asked
// for and grants them its admin role.
func (s *adminService) approveOnboarding(record *models.OnboardingRequest) error {
	roleCode, ok := models.RoleCodeForOrgType(record.OrgType)
	if !ok {
		return apperrors.NewBadRequestError("unknown organization type on request")
	}

	adminReq := &dto.CreateOrgAdminRequest{
		SchoolName:      record.SchoolName,
		AssociationName: record.AssociationName,
		AidSchoolName:   record.SchoolName,
	}
	org, err := s.findOrCreateAdminOrg(roleCode, adminReq)
	if err != nil {
		return err
	}

	if record.UserID == "" {
		return nil
	}

	schoolID := org.SchoolID
	if record.OrgType == models.OrgTypeAidSchool {
		schoolID = org.AidSchoolID
	}
	fields := map[string]interface{}{
		"role":      models.UserRoleGovernance,
		"school_id": schoolID,
	}
	if err := s.users.UpdateFields(record.UserID, fields); err != nil {
		return apperrors.InternalError(err)
	}

	if _, err := s.users.FindGrant(record.UserID, roleCode, org.ID); err != nil {
		if !errors.Is(err, repositories.ErrGrantNotFound) {
			return apperrors.InternalError(err)
		}
		grant := &models.AdminRole{
			UserID:         record.UserID,
			RoleCode:       roleCode,
			OrganizationID: org.ID,
		}
		if err := s.users.CreateGrant(grant); err != nil {
			return apperrors.InternalError(err)
		}
	}
	return nil
}
