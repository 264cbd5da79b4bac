package dto

type CreateOrgAdminRequest struct {
	Username        string `json:"username" validate:"required,min=3"`
	Password        string `json:"password" validate:"required,min=8"`
	RoleCode        string `json:"role_code" validate:"required"`
	SchoolName      string `json:"school_name"`
	AidSchoolName   string `json:"aid_school_name"`
	AssociationName string `json:"association_name"`
}

type OrgAdminCreatedResponse struct {
	UserID         string `json:"user_id"`
	Username       string `json:"username"`
	RoleCode       string `json:"role_code"`
	OrganizationID string `json:"organization_id,omitempty"`
	SchoolID       string `json:"school_id,omitempty"`
	Created        bool   `json:"created"`
}

type DeleteUserResponse struct {
	UserID         string   `json:"user_id"`
	Hard           bool     `json:"hard"`
	OrphanSchools  []string `json:"orphan_schools"`
	DemotedUsers   int      `json:"demoted_users"`
	DeletedRecords int64    `json:"deleted_records"`
}

type OrgBoardResponse struct {
	Organization *OrganizationResponse `json:"organization"`
	Admins       []*UserResponse       `json:"admins"`
}

type PurgeOrphansResponse struct {
	DryRun    bool     `json:"dry_run"`
	SchoolIDs []string `json:"school_ids"`
	Deleted   bool     `json:"deleted"`
}

type UserListQuery struct {
	Role     string `form:"role"`
	SchoolID string `form:"school_id"`
	Search   string `form:"search"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

type UserListResponse struct {
	Items    []*UserResponse `json:"items"`
	Total    int64           `json:"total"`
	Page     int             `json:"page"`
	PageSize int             `json:"page_size"`
}
