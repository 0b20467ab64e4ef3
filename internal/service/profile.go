package service

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/jonielmendes/AlugaLarCorrente/internal/domain"
	"github.com/jonielmendes/AlugaLarCorrente/internal/dto"
	"github.com/jonielmendes/AlugaLarCorrente/internal/repository"
)

// ProfileService 负责当前用户资料的读取和修改
type ProfileService struct {
	userRepo repository.UserRepository
}

// NewProfileService 创建 ProfileService 实例
func NewProfileService(userRepo repository.UserRepository) *ProfileService {
	if userRepo == nil {
		panic("UserRepository cannot be nil for ProfileService")
	}
	return &ProfileService{userRepo: userRepo}
}

// Get 返回当前用户及档案
func (s *ProfileService) Get(ctx context.Context, userID uint) (*domain.User, error) {
	return loadUser(ctx, s.userRepo, userID)
}

// Update 修改当前用户的姓名、邮箱和档案。用户名不可修改。
func (s *ProfileService) Update(ctx context.Context, userID uint, in dto.ProfileWrite) (*domain.User, error) {
	logCtx := logrus.WithField("user_id", userID)

	user, err := loadUser(ctx, s.userRepo, userID)
	if err != nil {
		return nil, err
	}

	if in.Email != nil {
		user.Email = *in.Email
	}
	if in.FirstName != nil {
		user.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		user.LastName = *in.LastName
	}

	var profile *domain.Profile
	if in.Perfil != nil {
		profile = user.Profile
		if profile == nil {
			profile = domain.NewDefaultProfile()
		}
		if in.Perfil.Tipo != nil {
			if !in.Perfil.Tipo.Valid() {
				return nil, NewValidationError("perfil.tipo", invalidChoice(string(*in.Perfil.Tipo)))
			}
			profile.Role = *in.Perfil.Tipo
		}
		if in.Perfil.Telefone != nil {
			profile.Phone = *in.Perfil.Telefone
		}
	}

	if err := s.userRepo.UpdateAccount(ctx, user, profile); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		logCtx.WithError(err).Error("ProfileService: failed to update account")
		return nil, ErrInternalServer
	}
	if profile != nil {
		user.Profile = profile
	}
	logCtx.Info("Profile updated")
	return user, nil
}
