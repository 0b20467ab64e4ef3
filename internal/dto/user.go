package dto

import "github.com/jonielmendes/AlugaLarCorrente/internal/domain"

// ProfileOut 表示用户档案
type ProfileOut struct {
	Tipo     string `json:"tipo"`
	Telefone string `json:"telefone"`
}

// UserOut 表示用户及其档案
type UserOut struct {
	ID        uint        `json:"id"`
	Username  string      `json:"username"`
	Email     string      `json:"email"`
	FirstName string      `json:"first_name"`
	LastName  string      `json:"last_name"`
	Perfil    *ProfileOut `json:"perfil"`
}

// RegisterRequest 是注册请求体
type RegisterRequest struct {
	Username  string      `json:"username" binding:"required,max=150"`
	Email     string      `json:"email" binding:"required,email,max=254"`
	Password  string      `json:"password" binding:"required"`
	Password2 string      `json:"password2" binding:"required"`
	FirstName string      `json:"first_name" binding:"max=150"`
	LastName  string      `json:"last_name" binding:"max=150"`
	Tipo      domain.Role `json:"tipo" binding:"required,perfil_tipo"`
	Telefone  string      `json:"telefone" binding:"max=20"`
}

// LoginRequest 是登录请求体
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse 是注册/登录成功后的响应
type AuthResponse struct {
	Token string  `json:"token"`
	User  UserOut `json:"user"`
}

// ProfileWrite 是 /perfil/ 的更新请求体，字段缺省表示不修改
type ProfileWrite struct {
	Email     *string        `json:"email" binding:"omitempty,email,max=254"`
	FirstName *string        `json:"first_name" binding:"omitempty,max=150"`
	LastName  *string        `json:"last_name" binding:"omitempty,max=150"`
	Perfil    *ProfileFields `json:"perfil"`
}

// ProfileFields 是档案中可修改的字段
type ProfileFields struct {
	Tipo     *domain.Role `json:"tipo" binding:"omitempty,perfil_tipo"`
	Telefone *string      `json:"telefone" binding:"omitempty,max=20"`
}

// NewUserOut 转换用户
func NewUserOut(u *domain.User) UserOut {
	out := UserOut{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}
	if u.Profile != nil {
		out.Perfil = &ProfileOut{Tipo: string(u.Profile.Role), Telefone: u.Profile.Phone}
	}
	return out
}
