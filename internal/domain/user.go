// Package domain 定义了 CorrenteLar 的核心数据结构 (数据库模型) 与业务规则。
package domain

import "time"

// User 表示平台上的一个账号。
type User struct {
	ID        uint      `gorm:"primaryKey"`
	Username  string    `gorm:"type:varchar(150);uniqueIndex:idx_username;not null"`
	Password  string    `gorm:"type:varchar(255);not null"` // bcrypt 哈希
	Email     string    `gorm:"type:varchar(191);index:idx_email"`
	FirstName string    `gorm:"type:varchar(150)"`
	LastName  string    `gorm:"type:varchar(150)"`
	IsStaff   bool      `gorm:"not null;default:false"` // 后台运营人员
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`

	Profile *Profile `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

// Profile 是 User 的一对一扩展：身份 (房东/租客) 与联系电话。
type Profile struct {
	ID     uint   `gorm:"primaryKey"`
	UserID uint   `gorm:"uniqueIndex;not null"`
	Role   Role   `gorm:"type:varchar(20);not null;default:'LOCATARIO'"`
	Phone  string `gorm:"type:varchar(20)"`

	User *User `gorm:"foreignKey:UserID"`
}

// NewDefaultProfile 返回新用户自动获得的档案：租客身份，电话为空。
func NewDefaultProfile() *Profile {
	return &Profile{Role: RoleTenant}
}
