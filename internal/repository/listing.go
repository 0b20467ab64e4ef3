package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jonielmendes/AlugaLarCorrente/internal/domain"
)

// SearchScope 决定 ListingFilter.Search 匹配哪些列。
type SearchScope int

const (
	// SearchPublic 匹配标题、描述和街区 code (公开列表)。
	SearchPublic SearchScope = iota
	// SearchAdmin 匹配标题、描述、房东用户名/邮箱和联系电话 (后台)。
	SearchAdmin
)

// ListingFilter 描述房源列表查询。零值字段表示不过滤。
type ListingFilter struct {
	Active       *bool
	OwnerID      uint
	PriceMin     *decimal.Decimal
	PriceMax     *decimal.Decimal
	Neighborhood domain.Neighborhood
	PropertyType domain.PropertyType
	CreatedFrom  time.Time // 含
	CreatedTo    time.Time // 不含
	Search       string
	SearchScope  SearchScope
	// OrderBy 为列名，可带 "-" 前缀表示降序；为空时按 created_at 降序。
	OrderBy string
	Limit   int // 0 表示不限制
	Offset  int
}

// ListingStats 是房源的汇总统计。
type ListingStats struct {
	Total        int64
	Active       int64
	ActiveByType map[domain.PropertyType]int64
}

// ImageRow 是后台图集列表的一行，附带所属房源标题。
type ImageRow struct {
	domain.ListingImage
	ListingTitle string
}

// ListingRepository 定义了房源与图集的存储和检索操作。
type ListingRepository interface {
	// Create 在同一个事务中创建房源及其图集；图片的 Order 按传入顺序从 0 开始编号。
	Create(ctx context.Context, listing *domain.Listing, images []domain.ListingImage) error

	// FindByID 根据 ID 查找房源，预加载房东 (含 Profile) 与按顺序排列的图集。
	// 如果不存在，返回 ErrListingNotFound。
	FindByID(ctx context.Context, id uint) (*domain.Listing, error)

	// Update 写回房源的可编辑字段并刷新 updated_at，然后把 newImages 追加到图集末尾：
	// Order 从当前图片数量开始，已有图片不会重新编号。view_count 不会被覆盖。
	Update(ctx context.Context, listing *domain.Listing, newImages []domain.ListingImage) error

	// Delete 删除房源及其图集。如果不存在，返回 ErrListingNotFound。
	Delete(ctx context.Context, id uint) error

	// IncrementViews 在存储层原子地执行 view_count = view_count + 1。
	IncrementViews(ctx context.Context, id uint) error

	// ToggleActive 原子地翻转 active 标志。
	ToggleActive(ctx context.Context, id uint) error

	// SetActiveMany 批量设置 active，返回受影响的行数。
	SetActiveMany(ctx context.Context, ids []uint, active bool) (int64, error)

	// List 按条件分页查询房源 (预加载房东)，同时返回满足条件的总数。
	List(ctx context.Context, filter ListingFilter) ([]domain.Listing, int64, error)

	// Stats 返回房源总数、上架数以及按类型统计的上架数。
	Stats(ctx context.Context) (*ListingStats, error)

	// ReplaceImages 在同一个事务中把房源图集替换为 images：
	// 带 ID 的更新，不带 ID 的新建，未出现的删除。
	ReplaceImages(ctx context.Context, listingID uint, images []domain.ListingImage) error

	// ListImages 分页列出图集图片；listingID 为 0 时列出全部。
	ListImages(ctx context.Context, listingID uint, limit, offset int) ([]ImageRow, int64, error)
}
