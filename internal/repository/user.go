package repository

import (
	"context"

	"github.com/jonielmendes/AlugaLarCorrente/internal/domain"
)

// ProfileFilter 是后台档案列表的筛选条件。
type ProfileFilter struct {
	Role   domain.Role // 为空表示不过滤
	Search string      // 匹配用户名、邮箱、电话
	Limit  int
	Offset int
}

// UserRepository 定义了用户及其档案的存储和检索操作。
type UserRepository interface {
	// CreateWithProfile 在同一个事务中写入 User 与 Profile。
	// 任一写入失败都会回滚，保证不存在没有档案的用户。
	// 用户名冲突时返回 ErrDuplicateEntry。
	CreateWithProfile(ctx context.Context, user *domain.User, profile *domain.Profile) error

	// FindByUsername 根据用户名查找用户 (预加载 Profile)。
	// 如果用户不存在，返回 ErrUserNotFound。
	FindByUsername(ctx context.Context, username string) (*domain.User, error)

	// FindByID 根据用户 ID 查找用户 (预加载 Profile)。
	FindByID(ctx context.Context, id uint) (*domain.User, error)

	// UpdateAccount 在同一个事务中更新用户基本信息与档案。
	UpdateAccount(ctx context.Context, user *domain.User, profile *domain.Profile) error

	// ListProfiles 分页列出档案 (预加载 User)，同时返回满足条件的总数。
	ListProfiles(ctx context.Context, filter ProfileFilter) ([]domain.Profile, int64, error)
}
