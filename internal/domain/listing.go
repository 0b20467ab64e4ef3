package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// FeaturedLimit 是首页推荐房源的数量。
const FeaturedLimit = 6

// Listing 表示一条出租房源 (Imovel)。
type Listing struct {
	ID           uint            `gorm:"primaryKey"`
	Title        string          `gorm:"type:varchar(200);not null"`
	Description  string          `gorm:"type:text;not null"`
	Price        decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Neighborhood Neighborhood    `gorm:"type:varchar(50);not null;index"`
	PropertyType PropertyType    `gorm:"type:varchar(20);not null;index"`
	OwnerID      uint            `gorm:"not null;index"`
	ContactPhone string          `gorm:"type:varchar(20);not null"`
	MainPhoto    string          `gorm:"type:varchar(255);not null"`
	Active       bool            `gorm:"not null;index"` // 不能带 default 标签：gorm 创建时会用默认值替换零值 false
	ViewCount    int64           `gorm:"not null;default:0"`
	CreatedAt    time.Time       `gorm:"autoCreateTime;index"`
	UpdatedAt    time.Time       `gorm:"autoUpdateTime"`

	Owner  *User          `gorm:"foreignKey:OwnerID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Images []ListingImage `gorm:"foreignKey:ListingID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

// ListingImage 是房源图集中的一张图片，按 Order 升序排列。
type ListingImage struct {
	ID        uint   `gorm:"primaryKey"`
	ListingID uint   `gorm:"not null;index"`
	Image     string `gorm:"type:varchar(255);not null"`
	Caption   string `gorm:"type:varchar(200)"`
	Order     int    `gorm:"column:sort_order;not null;default:0"`
}

// IsOwnedBy 判断房源是否属于指定用户。
func (l *Listing) IsOwnedBy(userID uint) bool {
	return l != nil && l.OwnerID == userID
}

// WhatsAppLink 返回带预填消息的 WhatsApp 联系链接。
func (l *Listing) WhatsAppLink() string {
	return ContactLink(l.ContactPhone, l.Title)
}

// MediaRefs 返回房源引用的全部图片 (主图 + 图集)，用于删除后清理对象存储。
func (l *Listing) MediaRefs() []string {
	refs := make([]string, 0, len(l.Images)+1)
	if l.MainPhoto != "" {
		refs = append(refs, l.MainPhoto)
	}
	for _, img := range l.Images {
		if img.Image != "" {
			refs = append(refs, img.Image)
		}
	}
	return refs
}
