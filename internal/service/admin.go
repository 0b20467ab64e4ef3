package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/jonielmendes/AlugaLarCorrente/internal/domain"
	"github.com/jonielmendes/AlugaLarCorrente/internal/dto"
	"github.com/jonielmendes/AlugaLarCorrente/internal/repository"
)

// AdminPageSize 是后台列表每页条数
const AdminPageSize = 20

// AdminListingQuery 是后台房源列表的过滤条件
type AdminListingQuery struct {
	Ativo     *bool
	Bairro    string
	Tipo      string
	CriadoDe  time.Time // 含
	CriadoAte time.Time // 含当天
	Search    string
	Page      int
}

// AdminService 提供后台运营操作，所有读写都走同一套仓库和业务规则
type AdminService struct {
	listingRepo repository.ListingRepository
	userRepo    repository.UserRepository
}

// NewAdminService 创建 AdminService 实例
func NewAdminService(listingRepo repository.ListingRepository, userRepo repository.UserRepository) *AdminService {
	if listingRepo == nil || userRepo == nil {
		panic("repositories cannot be nil for AdminService")
	}
	return &AdminService{listingRepo: listingRepo, userRepo: userRepo}
}

// ListListings 返回后台房源列表的一页
func (s *AdminService) ListListings(ctx context.Context, q AdminListingQuery) ([]domain.Listing, int64, Page, error) {
	page := Page{Number: q.Page, Size: AdminPageSize}.normalize(AdminPageSize)
	filter := repository.ListingFilter{
		Active:      q.Ativo,
		CreatedFrom: q.CriadoDe,
		Search:      strings.TrimSpace(q.Search),
		SearchScope: repository.SearchAdmin,
		OrderBy:     "-created_at",
		Limit:       page.Size,
		Offset:      page.Offset(),
	}
	if !q.CriadoAte.IsZero() {
		filter.CreatedTo = q.CriadoAte.AddDate(0, 0, 1)
	}

	verr := &ValidationError{}
	if q.Bairro != "" {
		if n := domain.Neighborhood(q.Bairro); n.Valid() {
			filter.Neighborhood = n
		} else {
			verr.Add("bairro", invalidChoice(q.Bairro))
		}
	}
	if q.Tipo != "" {
		if pt := domain.PropertyType(q.Tipo); pt.Valid() {
			filter.PropertyType = pt
		} else {
			verr.Add("tipo", invalidChoice(q.Tipo))
		}
	}
	if !verr.Empty() {
		return nil, 0, page, verr
	}

	listings, total, err := s.listingRepo.List(ctx, filter)
	if err != nil {
		logrus.WithError(err).Error("AdminService: failed to list listings")
		return nil, 0, page, ErrInternalServer
	}
	return listings, total, page, nil
}

// GetListing 返回房源详情，不增加浏览次数
func (s *AdminService) GetListing(ctx context.Context, id uint) (*domain.Listing, error) {
	listing, err := s.listingRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrListingNotFound) {
			return nil, ErrListingNotFound
		}
		logrus.WithError(err).WithField("listing_id", id).Error("AdminService: failed to find listing")
		return nil, ErrInternalServer
	}
	return listing, nil
}

// UpdateListing 运营修改任意房源，可以更换房东
func (s *AdminService) UpdateListing(ctx context.Context, id uint, in dto.AdminListingWrite, partial bool) (*domain.Listing, error) {
	logCtx := logrus.WithField("listing_id", id)

	listing, err := s.GetListing(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := applyListingWrite(listing, in.ListingWrite, partial); err != nil {
		return nil, err
	}
	if in.Dono != nil && *in.Dono != listing.OwnerID {
		owner, err := s.userRepo.FindByID(ctx, *in.Dono)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return nil, NewValidationError("dono", fmt.Sprintf("Pk inválido \"%d\" - objeto não existe.", *in.Dono))
			}
			logCtx.WithError(err).Error("AdminService: failed to load new owner")
			return nil, ErrInternalServer
		}
		listing.OwnerID = owner.ID
		listing.Owner = owner
	}

	if err := s.listingRepo.Update(ctx, listing, newImages(in.ImagensUpload)); err != nil {
		if errors.Is(err, repository.ErrListingNotFound) {
			return nil, ErrListingNotFound
		}
		logCtx.WithError(err).Error("AdminService: failed to update listing")
		return nil, ErrInternalServer
	}
	logCtx.Info("Listing updated by operator")
	return s.GetListing(ctx, id)
}

// ReplaceImages 内联编辑图集：带 id 的行更新，不带 id 的新建，未出现的删除
func (s *AdminService) ReplaceImages(ctx context.Context, listingID uint, rows []dto.AdminImageWrite) (*domain.Listing, error) {
	images := make([]domain.ListingImage, len(rows))
	for i, r := range rows {
		images[i] = domain.ListingImage{ID: r.ID, Image: r.Imagem, Caption: r.Descricao, Order: r.Ordem}
	}
	if err := s.listingRepo.ReplaceImages(ctx, listingID, images); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrListingNotFound
		}
		logrus.WithError(err).WithField("listing_id", listingID).Error("AdminService: failed to replace images")
		return nil, ErrInternalServer
	}
	return s.GetListing(ctx, listingID)
}

// ActivateMany 批量上架，返回受影响的数量
func (s *AdminService) ActivateMany(ctx context.Context, ids []uint) (int64, error) {
	return s.setActiveMany(ctx, ids, true)
}

// DeactivateMany 批量下架，返回受影响的数量
func (s *AdminService) DeactivateMany(ctx context.Context, ids []uint) (int64, error) {
	return s.setActiveMany(ctx, ids, false)
}

func (s *AdminService) setActiveMany(ctx context.Context, ids []uint, active bool) (int64, error) {
	n, err := s.listingRepo.SetActiveMany(ctx, ids, active)
	if err != nil {
		logrus.WithError(err).WithField("active", active).Error("AdminService: bulk action failed")
		return 0, ErrInternalServer
	}
	logrus.WithFields(logrus.Fields{"active": active, "requested": len(ids), "updated": n}).Info("Bulk action applied")
	return n, nil
}

// BulkMessage 返回批量操作的提示信息
func BulkMessage(n int64, active bool) string {
	if active {
		return fmt.Sprintf("%d imóvel(is) ativado(s) com sucesso!", n)
	}
	return fmt.Sprintf("%d imóvel(is) desativado(s) com sucesso!", n)
}

// ListProfiles 返回档案列表的一页
func (s *AdminService) ListProfiles(ctx context.Context, tipo, search string, pageNumber int) ([]domain.Profile, int64, Page, error) {
	page := Page{Number: pageNumber, Size: AdminPageSize}.normalize(AdminPageSize)
	filter := repository.ProfileFilter{
		Search: strings.TrimSpace(search),
		Limit:  page.Size,
		Offset: page.Offset(),
	}
	if tipo != "" {
		role := domain.Role(tipo)
		if !role.Valid() {
			return nil, 0, page, NewValidationError("tipo", invalidChoice(tipo))
		}
		filter.Role = role
	}

	profiles, total, err := s.userRepo.ListProfiles(ctx, filter)
	if err != nil {
		logrus.WithError(err).Error("AdminService: failed to list profiles")
		return nil, 0, page, ErrInternalServer
	}
	return profiles, total, page, nil
}

// ListImages 返回图集列表的一页，listingID 为 0 时不过滤
func (s *AdminService) ListImages(ctx context.Context, listingID uint, pageNumber int) ([]repository.ImageRow, int64, Page, error) {
	page := Page{Number: pageNumber, Size: AdminPageSize}.normalize(AdminPageSize)
	rows, total, err := s.listingRepo.ListImages(ctx, listingID, page.Size, page.Offset())
	if err != nil {
		logrus.WithError(err).Error("AdminService: failed to list images")
		return nil, 0, page, ErrInternalServer
	}
	return rows, total, page, nil
}

// CreateStaff 创建运营账号，档案为默认的租客身份
func (s *AdminService) CreateStaff(ctx context.Context, username, email, password string) (*domain.User, error) {
	logCtx := logrus.WithField("username", username)

	verr := &ValidationError{}
	if strings.TrimSpace(username) == "" {
		verr.Add("username", MsgRequired)
	}
	if password == "" {
		verr.Add("password", MsgRequired)
	}
	if !verr.Empty() {
		return nil, verr
	}

	hashed, err := hashPassword(password)
	if err != nil {
		logCtx.WithError(err).Error("AdminService: failed to hash password")
		return nil, ErrInternalServer
	}
	user := &domain.User{Username: username, Email: email, Password: hashed, IsStaff: true}
	profile := domain.NewDefaultProfile()
	if err := s.userRepo.CreateWithProfile(ctx, user, profile); err != nil {
		if errors.Is(err, repository.ErrDuplicateEntry) {
			return nil, NewValidationError("username", MsgUsernameTaken)
		}
		logCtx.WithError(err).Error("AdminService: failed to create staff user")
		return nil, ErrInternalServer
	}
	user.Profile = profile
	user.Password = ""
	logCtx.WithField("user_id", user.ID).Info("Staff user created")
	return user, nil
}
