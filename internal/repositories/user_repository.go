package repositories

import (
	"errors"

	"gorm.io/gorm"

	"cloudedumatch_backend/internal/models"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
	ErrGrantNotFound     = errors.New("admin grant not found")
)

type UserFilter struct {
	Role     models.UserRole
	SchoolID string
	Search   string
	Page     int
	PageSize int
}

type UserRepository interface {
	FindByID(id string) (*models.User, error)
	// FindByIDWithGrants preloads AdminRoles and their Organizations so
	// the permission predicates can run without further queries.
	FindByIDWithGrants(id string) (*models.User, error)
	FindByUsername(username string) (*models.User, error)
	FindByEmail(email string) (*models.User, error)
	FindByLogin(login string) (*models.User, error)
	FindByIDs(ids []string) ([]models.User, error)
	Create(user *models.User) error
	Update(user *models.User) error
	UpdateFields(userID string, fields map[string]interface{}) error
	Delete(userID string) error
	List(filter UserFilter) ([]models.User, int64, error)
	CountSuperusers() (int64, error)

	// AdminRole grants
	CreateGrant(grant *models.AdminRole) error
	DeleteGrant(id string) error
	DeleteGrantsByUser(userID string) error
	FindGrant(userID string, code models.RoleCode, organizationID string) (*models.AdminRole, error)
	ListGrantsByOrganization(organizationID string) ([]models.AdminRole, error)
	ListGrantsByRole(code models.RoleCode) ([]models.AdminRole, error)
}

type UserRepositoryImpl struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &UserRepositoryImpl{db: db}
}

func (r *UserRepositoryImpl) FindByID(id string) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) FindByIDWithGrants(id string) (*models.User, error) {
	var user models.User
	err := r.db.
		Preload("AdminRoles").
		Preload("AdminRoles.Organization").
		First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) FindByUsername(username string) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "username = ?", username).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) FindByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// FindByLogin accepts either a username or an email address.
func (r *UserRepositoryImpl) FindByLogin(login string) (*models.User, error) {
	var user models.User
	err := r.db.
		Where("username = ? OR email = ?", login, login).
		Preload("AdminRoles").
		Preload("AdminRoles.Organization").
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) FindByIDs(ids []string) ([]models.User, error) {
	var users []models.User
	if len(ids) == 0 {
		return users, nil
	}
	if err := r.db.Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *UserRepositoryImpl) Create(user *models.User) error {
	return r.db.Create(user).Error
}

func (r *UserRepositoryImpl) Update(user *models.User) error {
	return r.db.Save(user).Error
}

func (r *UserRepositoryImpl) UpdateFields(userID string, fields map[string]interface{}) error {
	return r.db.Model(&models.User{}).Where("id = ?", userID).Updates(fields).Error
}

func (r *UserRepositoryImpl) Delete(userID string) error {
	return r.db.Delete(&models.User{}, "id = ?", userID).Error
}

func (r *UserRepositoryImpl) List(filter UserFilter) ([]models.User, int64, error) {
	query := r.db.Model(&models.User{})

	if filter.Role != "" {
		query = query.Where("role = ?", filter.Role)
	}
	if filter.SchoolID != "" {
		query = query.Where("school_id = ?", filter.SchoolID)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("username ILIKE ? OR email ILIKE ? OR full_name ILIKE ?", like, like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		if offset < 0 {
			offset = 0
		}
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	var users []models.User
	if err := query.Preload("AdminRoles").Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

func (r *UserRepositoryImpl) CountSuperusers() (int64, error) {
	var count int64
	err := r.db.Model(&models.User{}).Where("is_superuser = ?", true).Count(&count).Error
	return count, err
}

func (r *UserRepositoryImpl) CreateGrant(grant *models.AdminRole) error {
	return r.db.Create(grant).Error
}

func (r *UserRepositoryImpl) DeleteGrant(id string) error {
	return r.db.Delete(&models.AdminRole{}, "id = ?", id).Error
}

func (r *UserRepositoryImpl) DeleteGrantsByUser(userID string) error {
	return r.db.Delete(&models.AdminRole{}, "user_id = ?", userID).Error
}

func (r *UserRepositoryImpl) FindGrant(userID string, code models.RoleCode, organizationID string) (*models.AdminRole, error) {
	var grant models.AdminRole
	query := r.db.Where("user_id = ? AND role_code = ?", userID, code)
	if organizationID != "" {
		query = query.Where("organization_id = ?", organizationID)
	}
	if err := query.First(&grant).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGrantNotFound
		}
		return nil, err
	}
	return &grant, nil
}

func (r *UserRepositoryImpl) ListGrantsByOrganization(organizationID string) ([]models.AdminRole, error) {
	var grants []models.AdminRole
	err := r.db.Where("organization_id = ?", organizationID).Find(&grants).Error
	return grants, err
}

func (r *UserRepositoryImpl) ListGrantsByRole(code models.RoleCode) ([]models.AdminRole, error) {
	var grants []models.AdminRole
	err := r.db.Where("role_code = ?", code).Find(&grants).Error
	return grants, err
}
