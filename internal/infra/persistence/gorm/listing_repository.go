package gormpersistence

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jonielmendes/AlugaLarCorrente/internal/domain"
	"github.com/jonielmendes/AlugaLarCorrente/internal/repository"
)

// 允许排序的列
var sortableListingColumns = map[string]bool{
	"price":      true,
	"created_at": true,
	"view_count": true,
}

// listingWritableColumns 是 Update 允许写回的列，view_count 不在其中。
var listingWritableColumns = []string{
	"title", "description", "price", "neighborhood", "property_type",
	"owner_id", "contact_phone", "main_photo", "active", "updated_at",
}

// GormListingRepository 是 ListingRepository 接口的 GORM 实现
type GormListingRepository struct {
	db *gorm.DB
}

// NewGormListingRepository 创建 GormListingRepository 实例
func NewGormListingRepository(db *gorm.DB) *GormListingRepository {
	if db == nil {
		panic("database connection cannot be nil for GormListingRepository")
	}
	return &GormListingRepository{db: db}
}

func orderedImages(db *gorm.DB) *gorm.DB {
	return db.Order("sort_order ASC").Order("id ASC")
}

// Create 在事务中创建房源及图集
func (r *GormListingRepository) Create(ctx context.Context, listing *domain.Listing, images []domain.ListingImage) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(listing).Error; err != nil {
			return err
		}
		if len(images) == 0 {
			return nil
		}
		for i := range images {
			images[i].ID = 0
			images[i].ListingID = listing.ID
			images[i].Order = i
		}
		return tx.Create(&images).Error
	})
	if err != nil {
		return fmt.Errorf("gorm: create listing '%s': %w", listing.Title, err)
	}
	listing.Images = images
	return nil
}

// FindByID 查找房源，预加载房东与图集
func (r *GormListingRepository) FindByID(ctx context.Context, id uint) (*domain.Listing, error) {
	var listing domain.Listing
	err := r.db.WithContext(ctx).
		Preload("Owner").
		Preload("Owner.Profile").
		Preload("Images", orderedImages).
		First(&listing, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrListingNotFound
		}
		return nil, fmt.Errorf("gorm: find listing by id %d: %w", id, err)
	}
	return &listing, nil
}

// Update 写回可编辑字段并追加新图片
func (r *GormListingRepository) Update(ctx context.Context, listing *domain.Listing, newImages []domain.ListingImage) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&domain.Listing{ID: listing.ID}).
			Select(listingWritableColumns).
			Omit(clause.Associations).
			Updates(listing)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return repository.ErrListingNotFound
		}
		if len(newImages) == 0 {
			return nil
		}

		// 锁住房源行后再统计现有图片，并发追加时编号不会重复
		var locked domain.Listing
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id").
			First(&locked, listing.ID).Error; err != nil {
			return err
		}
		var count int64
		if err := tx.Model(&domain.ListingImage{}).
			Where("listing_id = ?", listing.ID).
			Count(&count).Error; err != nil {
			return err
		}
		for i := range newImages {
			newImages[i].ID = 0
			newImages[i].ListingID = listing.ID
			newImages[i].Order = int(count) + i
		}
		return tx.Create(&newImages).Error
	})
	if err != nil {
		if errors.Is(err, repository.ErrListingNotFound) {
			return err
		}
		return fmt.Errorf("gorm: update listing %d: %w", listing.ID, err)
	}
	return nil
}

// Delete 删除房源及其图集
func (r *GormListingRepository) Delete(ctx context.Context, id uint) error {
	var affected int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 外键级联在 MySQL/PostgreSQL 上都存在，这里显式删除以兼容未建约束的旧表
		if err := tx.Where("listing_id = ?", id).Delete(&domain.ListingImage{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&domain.Listing{}, id)
		affected = res.RowsAffected
		return res.Error
	})
	if err != nil {
		return fmt.Errorf("gorm: delete listing %d: %w", id, err)
	}
	if affected == 0 {
		return repository.ErrListingNotFound
	}
	return nil
}

// IncrementViews 原子地递增浏览次数
func (r *GormListingRepository) IncrementViews(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Model(&domain.Listing{}).
		Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + ?", 1))
	if res.Error != nil {
		return fmt.Errorf("gorm: increment views of listing %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return repository.ErrListingNotFound
	}
	return nil
}

// ToggleActive 原子地翻转上架状态
func (r *GormListingRepository) ToggleActive(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Model(&domain.Listing{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"active":     gorm.Expr("NOT active"),
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return fmt.Errorf("gorm: toggle listing %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return repository.ErrListingNotFound
	}
	return nil
}

// SetActiveMany 批量上架或下架
func (r *GormListingRepository) SetActiveMany(ctx context.Context, ids []uint, active bool) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res := r.db.WithContext(ctx).Model(&domain.Listing{}).
		Where("id IN ?", ids).
		Update("active", active)
	if res.Error != nil {
		return 0, fmt.Errorf("gorm: set active=%t on %d listings: %w", active, len(ids), res.Error)
	}
	return res.RowsAffected, nil
}

// applyListingFilter 把过滤条件 (不含分页和排序) 应用到查询上
func applyListingFilter(q *gorm.DB, f repository.ListingFilter) *gorm.DB {
	if f.Active != nil {
		q = q.Where("listings.active = ?", *f.Active)
	}
	if f.OwnerID != 0 {
		q = q.Where("listings.owner_id = ?", f.OwnerID)
	}
	if f.PriceMin != nil {
		q = q.Where("listings.price >= ?", *f.PriceMin)
	}
	if f.PriceMax != nil {
		q = q.Where("listings.price <= ?", *f.PriceMax)
	}
	if f.Neighborhood != "" {
		q = q.Where("listings.neighborhood = ?", f.Neighborhood)
	}
	if f.PropertyType != "" {
		q = q.Where("listings.property_type = ?", f.PropertyType)
	}
	if !f.CreatedFrom.IsZero() {
		q = q.Where("listings.created_at >= ?", f.CreatedFrom)
	}
	if !f.CreatedTo.IsZero() {
		q = q.Where("listings.created_at < ?", f.CreatedTo)
	}
	if f.Search != "" {
		p := likePattern(f.Search)
		switch f.SearchScope {
		case repository.SearchAdmin:
			q = q.Joins("LEFT JOIN users owners ON owners.id = listings.owner_id").
				Where("LOWER(listings.title) LIKE ? OR LOWER(listings.description) LIKE ? OR LOWER(owners.username) LIKE ? OR LOWER(owners.email) LIKE ? OR LOWER(listings.contact_phone) LIKE ?",
					p, p, p, p, p)
		default:
			q = q.Where("LOWER(listings.title) LIKE ? OR LOWER(listings.description) LIKE ? OR LOWER(listings.neighborhood) LIKE ?",
				p, p, p)
		}
	}
	return q
}

// listingOrder 解析排序参数，未知列回落到默认排序
func listingOrder(orderBy string) clause.OrderBy {
	desc := strings.HasPrefix(orderBy, "-")
	col := strings.TrimPrefix(orderBy, "-")
	if !sortableListingColumns[col] {
		col, desc = "created_at", true
	}
	return clause.OrderBy{Columns: []clause.OrderByColumn{
		{Column: clause.Column{Table: "listings", Name: col}, Desc: desc},
		{Column: clause.Column{Table: "listings", Name: "id"}, Desc: true},
	}}
}

// List 按条件分页查询房源
func (r *GormListingRepository) List(ctx context.Context, filter repository.ListingFilter) ([]domain.Listing, int64, error) {
	base := applyListingFilter(r.db.WithContext(ctx).Model(&domain.Listing{}), filter)

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("gorm: count listings: %w", err)
	}

	q := base.Session(&gorm.Session{}).
		Select("listings.*").
		Preload("Owner").
		Clauses(listingOrder(filter.OrderBy))
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit).Offset(filter.Offset)
	}
	var listings []domain.Listing
	if err := q.Find(&listings).Error; err != nil {
		return nil, 0, fmt.Errorf("gorm: list listings: %w", err)
	}
	return listings, total, nil
}

// Stats 统计房源数量
func (r *GormListingRepository) Stats(ctx context.Context) (*repository.ListingStats, error) {
	db := r.db.WithContext(ctx)
	stats := &repository.ListingStats{ActiveByType: make(map[domain.PropertyType]int64)}

	if err := db.Model(&domain.Listing{}).Count(&stats.Total).Error; err != nil {
		return nil, fmt.Errorf("gorm: count listings: %w", err)
	}
	if err := db.Model(&domain.Listing{}).Where("active = ?", true).Count(&stats.Active).Error; err != nil {
		return nil, fmt.Errorf("gorm: count active listings: %w", err)
	}

	var rows []struct {
		PropertyType domain.PropertyType
		Total        int64
	}
	err := db.Model(&domain.Listing{}).
		Select("property_type, COUNT(*) AS total").
		Where("active = ?", true).
		Group("property_type").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("gorm: group active listings by type: %w", err)
	}
	for _, pt := range domain.PropertyTypes() {
		stats.ActiveByType[pt] = 0
	}
	for _, row := range rows {
		stats.ActiveByType[row.PropertyType] = row.Total
	}
	return stats, nil
}

// ReplaceImages 用给定集合替换房源图集
func (r *GormListingRepository) ReplaceImages(ctx context.Context, listingID uint, images []domain.ListingImage) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var exists int64
		if err := tx.Model(&domain.Listing{}).Where("id = ?", listingID).Count(&exists).Error; err != nil {
			return err
		}
		if exists == 0 {
			return repository.ErrListingNotFound
		}

		keep := make([]uint, 0, len(images))
		for i := range images {
			images[i].ListingID = listingID
			if images[i].ID == 0 {
				continue
			}
			res := tx.Model(&domain.ListingImage{}).
				Where("id = ? AND listing_id = ?", images[i].ID, listingID).
				Updates(map[string]interface{}{
					"image":      images[i].Image,
					"caption":    images[i].Caption,
					"sort_order": images[i].Order,
				})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return fmt.Errorf("image %d does not belong to listing %d: %w", images[i].ID, listingID, repository.ErrNotFound)
			}
			keep = append(keep, images[i].ID)
		}

		del := tx.Where("listing_id = ?", listingID)
		if len(keep) > 0 {
			del = del.Where("id NOT IN ?", keep)
		}
		if err := del.Delete(&domain.ListingImage{}).Error; err != nil {
			return err
		}

		for i := range images {
			if images[i].ID != 0 {
				continue
			}
			if err := tx.Create(&images[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return err
		}
		return fmt.Errorf("gorm: replace images of listing %d: %w", listingID, err)
	}
	return nil
}

// ListImages 分页列出图集
func (r *GormListingRepository) ListImages(ctx context.Context, listingID uint, limit, offset int) ([]repository.ImageRow, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.ListingImage{}).
		Joins("JOIN listings ON listings.id = listing_images.listing_id")
	if listingID != 0 {
		q = q.Where("listing_images.listing_id = ?", listingID)
	}

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("gorm: count images: %w", err)
	}

	var rows []struct {
		domain.ListingImage
		ListingTitle string
	}
	q = q.Session(&gorm.Session{}).
		Select("listing_images.*, listings.title AS listing_title").
		Order("listing_images.listing_id ASC").
		Order("listing_images.sort_order ASC").
		Order("listing_images.id ASC")
	if limit > 0 {
		q = q.Limit(limit).Offset(offset)
	}
	if err := q.Scan(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("gorm: list images: %w", err)
	}

	out := make([]repository.ImageRow, len(rows))
	for i, row := range rows {
		out[i] = repository.ImageRow{ListingImage: row.ListingImage, ListingTitle: row.ListingTitle}
	}
	return out, total, nil
}
