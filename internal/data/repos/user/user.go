package user

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/edulearn/edulearn-backend/internal/domain"
	"github.com/edulearn/edulearn-backend/internal/platform/logger"
)

type UserRepo interface {
	Create(ctx context.Context, tx *gorm.DB, users []*types.User) ([]*types.User, error)
	GetByID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.User, error)
	GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*types.User, error)
	EmailExists(ctx context.Context, tx *gorm.DB, email string) (bool, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.User, error)
	UpdateProfile(ctx context.Context, tx *gorm.DB, userID uuid.UUID, fields map[string]interface{}) error
	SetActive(ctx context.Context, tx *gorm.DB, userID uuid.UUID, active bool) error
	SetRole(ctx context.Context, tx *gorm.DB, userID uuid.UUID, role types.Role) error
	Delete(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error
	Count(ctx context.Context, tx *gorm.DB) (int64, error)
	MonthlyCounts(ctx context.Context, tx *gorm.DB, since time.Time) ([]MonthCount, error)
}

// MonthCount is one month bucket of a growth rollup.
type MonthCount struct {
	Month string `json:"month"`
	Count int64  `json:"count"`
}

type userRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo {
	return &userRepo{db: db, log: baseLog.With("repo", "UserRepo")}
}

func (ur *userRepo) resolve(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return ur.db
}

func (ur *userRepo) Create(ctx context.Context, tx *gorm.DB, users []*types.User) ([]*types.User, error) {
	if len(users) == 0 {
		return []*types.User{}, nil
	}
	if err := ur.resolve(tx).WithContext(ctx).Create(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (ur *userRepo) GetByID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.User, error) {
	var result types.User
	err := ur.resolve(tx).WithContext(ctx).
		Where("id = ?", userID).
		First(&result).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (ur *userRepo) GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*types.User, error) {
	var result types.User
	err := ur.resolve(tx).WithContext(ctx).
		Where("email = ?", email).
		First(&result).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (ur *userRepo) EmailExists(ctx context.Context, tx *gorm.DB, email string) (bool, error) {
	var count int64
	if err := ur.resolve(tx).WithContext(ctx).
		Model(&types.User{}).
		Where("email = ?", email).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (ur *userRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.User, error) {
	var results []*types.User
	if err := ur.resolve(tx).WithContext(ctx).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (ur *userRepo) UpdateProfile(ctx context.Context, tx *gorm.DB, userID uuid.UUID, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	return ur.resolve(tx).WithContext(ctx).
		Model(&types.User{}).
		Where("id = ?", userID).
		Updates(fields).Error
}

func (ur *userRepo) SetActive(ctx context.Context, tx *gorm.DB, userID uuid.UUID, active bool) error {
	return ur.resolve(tx).WithContext(ctx).
		Model(&types.User{}).
		Where("id = ?", userID).
		Update("is_active", active).Error
}

func (ur *userRepo) SetRole(ctx context.Context, tx *gorm.DB, userID uuid.UUID, role types.Role) error {
	return ur.resolve(tx).WithContext(ctx).
		Model(&types.User{}).
		Where("id = ?", userID).
		Update("role", role).Error
}

func (ur *userRepo) Delete(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error {
	return ur.resolve(tx).WithContext(ctx).
		Where("id = ?", userID).
		Delete(&types.User{}).Error
}

func (ur *userRepo) Count(ctx context.Context, tx *gorm.DB) (int64, error) {
	var count int64
	err := ur.resolve(tx).WithContext(ctx).
		Model(&types.User{}).
		Count(&count).Error
	return count, err
}

func (ur *userRepo) MonthlyCounts(ctx context.Context, tx *gorm.DB, since time.Time) ([]MonthCount, error) {
	var rows []MonthCount
	err := ur.resolve(tx).WithContext(ctx).
		Model(&types.User{}).
		Select("to_char(date_trunc('month', created_at), 'YYYY-MM') AS month, COUNT(*) AS count").
		Where("created_at >= ?", since).
		Group("1").
		Order("1").
		Scan(&rows).Error
	return rows, err
}
