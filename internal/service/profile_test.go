package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jonielmendes/AlugaLarCorrente/internal/domain"
	"github.com/jonielmendes/AlugaLarCorrente/internal/dto"
	"github.com/jonielmendes/AlugaLarCorrente/internal/repository"
	"github.com/jonielmendes/AlugaLarCorrente/internal/repository/mocks"
	"github.com/jonielmendes/AlugaLarCorrente/internal/service"
)

func TestProfileService_Update_AccountAndProfile(t *testing.T) {
	userRepo := mocks.NewUserRepository(t)
	svc := service.NewProfileService(userRepo)
	ctx := context.Background()

	userRepo.On("FindByID", ctx, uint(1)).Return(&domain.User{
		ID: 1, Username: "joana", Email: "old@example.com", Password: "hash",
		Profile: &domain.Profile{ID: 3, UserID: 1, Role: domain.RoleTenant},
	}, nil).Once()

	landlord := domain.RoleLandlord
	userRepo.On("UpdateAccount", ctx,
		mock.MatchedBy(func(u *domain.User) bool {
			return u.Username == "joana" && u.Email == "new@example.com" && u.FirstName == ""
		}),
		mock.MatchedBy(func(p *domain.Profile) bool {
			return p.ID == 3 && p.Role == domain.RoleLandlord && p.Phone == "64 3333-0000"
		}),
	).Return(nil).Once()

	user, err := svc.Update(ctx, 1, dto.ProfileWrite{
		Email:  strPtr("new@example.com"),
		Perfil: &dto.ProfileFields{Tipo: &landlord, Telefone: strPtr("64 3333-0000")},
	})

	require.NoError(t, err)
	assert.Empty(t, user.Password)
	assert.Equal(t, domain.RoleLandlord, user.Profile.Role)
}

func TestProfileService_Update_WithoutProfileLeavesItUntouched(t *testing.T) {
	userRepo := mocks.NewUserRepository(t)
	svc := service.NewProfileService(userRepo)
	ctx := context.Background()

	userRepo.On("FindByID", ctx, uint(1)).Return(&domain.User{ID: 1, Username: "joana"}, nil).Once()
	userRepo.On("UpdateAccount", ctx, mock.AnythingOfType("*domain.User"), (*domain.Profile)(nil)).Return(nil).Once()

	user, err := svc.Update(ctx, 1, dto.ProfileWrite{LastName: strPtr("Silva")})
	require.NoError(t, err)
	assert.Equal(t, "Silva", user.LastName)
}

func TestProfileService_Update_InvalidRole(t *testing.T) {
	userRepo := mocks.NewUserRepository(t)
	svc := service.NewProfileService(userRepo)
	ctx := context.Background()

	userRepo.On("FindByID", ctx, uint(1)).Return(&domain.User{ID: 1}, nil).Once()

	bad := domain.Role("ADMIN")
	_, err := svc.Update(ctx, 1, dto.ProfileWrite{Perfil: &dto.ProfileFields{Tipo: &bad}})

	var verr *service.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "perfil.tipo")
}

func TestProfileService_Get_NotFound(t *testing.T) {
	userRepo := mocks.NewUserRepository(t)
	svc := service.NewProfileService(userRepo)
	ctx := context.Background()

	userRepo.On("FindByID", ctx, uint(8)).Return(nil, repository.ErrUserNotFound).Once()

	_, err := svc.Get(ctx, 8)
	assert.ErrorIs(t, err, service.ErrUserNotFound)
}
