package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/you/authsvc/domain"
)

// UserRepositoryImpl implements domain.UserRepository using GORM
type UserRepositoryImpl struct {
	db *gorm.DB
}

// DBUser represents the database model for User (with GORM tags)
type DBUser struct {
	ID               string         `gorm:"primaryKey;size:36"`
	Email            string         `gorm:"uniqueIndex;size:255"`
	Name             string         `gorm:"size:255"`
	PasswordHash     string         `gorm:"column:password"`
	TwoFactorEnabled bool           `gorm:"index;default:false"`
	TwoFactorSecret  string         `gorm:"size:64"`
	LastLoginAt      *time.Time
	CreatedAt        time.Time      `gorm:"index"`
	UpdatedAt        time.Time      `gorm:"index"`
	DeletedAt        gorm.DeletedAt `gorm:"index"`
}

// TableName returns the table name for GORM
func (DBUser) TableName() string {
	return "users"
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) domain.UserRepository {
	return &UserRepositoryImpl{db: db}
}

// Create implements domain.UserRepository
func (r *UserRepositoryImpl) Create(ctx context.Context, user *domain.User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	dbUser := r.domainToDB(user)
	if err := r.db.WithContext(ctx).Create(dbUser).Error; err != nil {
		return err
	}
	user.CreatedAt = dbUser.CreatedAt
	user.UpdatedAt = dbUser.UpdatedAt
	return nil
}

// FindByEmail implements domain.UserRepository
func (r *UserRepositoryImpl) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var dbUser DBUser
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&dbUser).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbUser), nil
}

// FindByID implements domain.UserRepository
func (r *UserRepositoryImpl) FindByID(ctx context.Context, id string) (*domain.User, error) {
	var dbUser DBUser
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&dbUser).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbUser), nil
}

// UpdateTwoFactorSecret implements domain.UserRepository. A single-column
// update; concurrent enrollment attempts resolve last-write-wins in the
// row itself.
func (r *UserRepositoryImpl) UpdateTwoFactorSecret(ctx context.Context, userID, secret string) error {
	return r.db.WithContext(ctx).Model(&DBUser{}).Where("id = ?", userID).
		Update("two_factor_secret", secret).Error
}

// EnableTwoFactor implements domain.UserRepository
func (r *UserRepositoryImpl) EnableTwoFactor(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).Model(&DBUser{}).Where("id = ?", userID).
		Update("two_factor_enabled", true).Error
}

// DisableTwoFactor implements domain.UserRepository. Clears the flag and
// the stored secret in one update, restoring the no-2FA state.
func (r *UserRepositoryImpl) DisableTwoFactor(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).Model(&DBUser{}).Where("id = ?", userID).
		Updates(map[string]interface{}{
			"two_factor_enabled": false,
			"two_factor_secret":  "",
		}).Error
}

// UpdateLastLogin implements domain.UserRepository
func (r *UserRepositoryImpl) UpdateLastLogin(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).Model(&DBUser{}).Where("id = ?", userID).
		Update("last_login_at", time.Now()).Error
}

// domainToDB converts domain user to database user
func (r *UserRepositoryImpl) domainToDB(user *domain.User) *DBUser {
	return &DBUser{
		ID:               user.ID,
		Email:            user.Email,
		Name:             user.Name,
		PasswordHash:     user.PasswordHash,
		TwoFactorEnabled: user.TwoFactorEnabled,
		TwoFactorSecret:  user.TwoFactorSecret,
		LastLoginAt:      user.LastLoginAt,
	}
}

// dbToDomain converts database user to domain user
func (r *UserRepositoryImpl) dbToDomain(dbUser *DBUser) *domain.User {
	return &domain.User{
		ID:               dbUser.ID,
		Email:            dbUser.Email,
		Name:             dbUser.Name,
		PasswordHash:     dbUser.PasswordHash,
		TwoFactorEnabled: dbUser.TwoFactorEnabled,
		TwoFactorSecret:  dbUser.TwoFactorSecret,
		LastLoginAt:      dbUser.LastLoginAt,
		CreatedAt:        dbUser.CreatedAt,
		UpdatedAt:        dbUser.UpdatedAt,
	}
}
