package models

type UserRole string
type RoleCode string
type OrgType string
type VerificationType string
type VerificationState string
type RequestStatus string
type MatchRequestStatus string
type OfferStatus string
type AnnouncementScope string
type Audience string
type TaskStatus string
type PointTxnType string
type Visibility string

const (
	UserRoleGuest             UserRole = "guest"
	UserRoleGeneralStudent    UserRole = "general_student"
	UserRoleUniversityStudent UserRole = "university_student"
	UserRoleVolunteerTeacher  UserRole = "volunteer_teacher"
	UserRoleSpecialAidStudent UserRole = "special_aid_student"
	UserRoleGovernance        UserRole = "governance"

	RoleCodeUniversityAdmin  RoleCode = "university_admin"
	RoleCodeAssociationAdmin RoleCode = "university_association_admin"
	RoleCodeAidSchoolAdmin   RoleCode = "aid_school_admin"
	RoleCodeAssociationHQ    RoleCode = "association_hq"
	RoleCodeSuperadmin       RoleCode = "superadmin"

	OrgTypeUniversity  OrgType = "university"
	OrgTypeAssociation OrgType = "university_association"
	OrgTypeAidSchool   OrgType = "aid_school"

	VerificationGeneralBasic      VerificationType = "general_basic"
	VerificationUniversityStudent VerificationType = "university_student"
	VerificationVolunteerTeacher  VerificationType = "volunteer_teacher"
	VerificationSpecialAid        VerificationType = "special_aid"

	VerificationStateNone     VerificationState = "none"
	VerificationStateVerified VerificationState = "verified"
	VerificationStateRejected VerificationState = "rejected"

	RequestStatusPending  RequestStatus = "pending"
	RequestStatusApproved RequestStatus = "approved"
	RequestStatusRejected RequestStatus = "rejected"

	MatchRequestPending   MatchRequestStatus = "pending"
	MatchRequestMatched   MatchRequestStatus = "matched"
	MatchRequestCancelled MatchRequestStatus = "cancelled"
	MatchRequestCompleted MatchRequestStatus = "completed"

	OfferStatusPending  OfferStatus = "pending"
	OfferStatusAccepted OfferStatus = "accepted"
	OfferStatusDeclined OfferStatus = "declined"

	ScopePublic AnnouncementScope = "public"
	ScopeCampus AnnouncementScope = "campus"
	ScopeAid    AnnouncementScope = "aid"

	AudiencePublicAll           Audience = "public_all"
	AudienceCampusAll           Audience = "campus_all"
	AudienceAssociationTeachers Audience = "association_teachers_only"
	AudienceAidSchool           Audience = "aid_school_only"

	TaskStatusOpen       TaskStatus = "open"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusClosed     TaskStatus = "closed"

	PointTxnRewardIn    PointTxnType = "reward_in"
	PointTxnRewardOut   PointTxnType = "reward_out"
	PointTxnRedeem      PointTxnType = "redeem"
	PointTxnAdminAdjust PointTxnType = "admin_adjust"

	VisibilityVisible Visibility = "visible"
	VisibilityHidden  Visibility = "hidden"
)

// ValidOrgType reports whether t is one of the known organization types.
func ValidOrgType(t OrgType) bool {
	switch t {
	case OrgTypeUniversity, OrgTypeAssociation, OrgTypeAidSchool:
		return true
	}
	return false
}

// RoleCodeForOrgType maps an organization type to the admin role granted
// to that organization's manager.
func RoleCodeForOrgType(t OrgType) (RoleCode, bool) {
	switch t {
	case OrgTypeUniversity:
		return RoleCodeUniversityAdmin, true
	case OrgTypeAssociation:
		return RoleCodeAssociationAdmin, true
	case OrgTypeAidSchool:
		return RoleCodeAidSchoolAdmin, true
	}
	return "", false
}
