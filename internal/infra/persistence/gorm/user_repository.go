package gormpersistence

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jonielmendes/AlugaLarCorrente/internal/domain"
	"github.com/jonielmendes/AlugaLarCorrente/internal/repository"
)

// GormUserRepository 是 UserRepository 接口的 GORM 实现
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository 创建 GormUserRepository 实例
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	if db == nil {
		panic("database connection cannot be nil for GormUserRepository")
	}
	return &GormUserRepository{db: db}
}

// CreateWithProfile 在一个事务中创建用户和档案
func (r *GormUserRepository) CreateWithProfile(ctx context.Context, user *domain.User, profile *domain.Profile) error {
	if profile == nil {
		profile = domain.NewDefaultProfile()
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Omit 关联，避免 GORM 在这里顺带 upsert Profile
		if err := tx.Omit("Profile").Create(user).Error; err != nil {
			return err
		}
		profile.UserID = user.ID
		if err := tx.Omit("User").Create(profile).Error; err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		if isDuplicateEntryError(err) {
			return repository.ErrDuplicateEntry
		}
		return fmt.Errorf("gorm: create user '%s' with profile: %w", user.Username, err)
	}
	user.Profile = profile
	return nil
}

// FindByUsername 实现根据用户名查找用户
func (r *GormUserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).Preload("Profile").Where("username = ?", username).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}
		return nil, fmt.Errorf("gorm: find user by username '%s': %w", username, err)
	}
	return &user, nil
}

// FindByID 实现根据用户 ID 查找用户
func (r *GormUserRepository) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).Preload("Profile").First(&user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}
		return nil, fmt.Errorf("gorm: find user by id %d: %w", id, err)
	}
	return &user, nil
}

// UpdateAccount 更新用户基本信息与档案
func (r *GormUserRepository) UpdateAccount(ctx context.Context, user *domain.User, profile *domain.Profile) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&domain.User{ID: user.ID}).
			Select("email", "first_name", "last_name", "updated_at").
			Omit(clause.Associations).
			Updates(user)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return repository.ErrUserNotFound
		}
		if profile == nil {
			return nil
		}
		profile.UserID = user.ID
		// 老数据可能缺少档案，这里按 user_id 补建或更新
		var existing domain.Profile
		err := tx.Where("user_id = ?", user.ID).First(&existing).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return tx.Omit("User").Create(profile).Error
		case err != nil:
			return err
		}
		profile.ID = existing.ID
		return tx.Model(&existing).Select("role", "phone").Updates(profile).Error
	})
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return err
		}
		return fmt.Errorf("gorm: update account (user id: %d): %w", user.ID, err)
	}
	return nil
}

// ListProfiles 分页查询档案
func (r *GormUserRepository) ListProfiles(ctx context.Context, filter repository.ProfileFilter) ([]domain.Profile, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Profile{}).
		Joins("JOIN users ON users.id = profiles.user_id")
	if filter.Role != "" {
		q = q.Where("profiles.role = ?", filter.Role)
	}
	if filter.Search != "" {
		p := likePattern(filter.Search)
		q = q.Where("LOWER(users.username) LIKE ? OR LOWER(users.email) LIKE ? OR LOWER(profiles.phone) LIKE ?", p, p, p)
	}

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("gorm: count profiles: %w", err)
	}

	var profiles []domain.Profile
	q = q.Session(&gorm.Session{}).
		Select("profiles.*").
		Preload("User").
		Order("users.username ASC")
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit).Offset(filter.Offset)
	}
	if err := q.Find(&profiles).Error; err != nil {
		return nil, 0, fmt.Errorf("gorm: list profiles: %w", err)
	}
	return profiles, total, nil
}
