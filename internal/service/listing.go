package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/hibiken/asynq"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/jonielmendes/AlugaLarCorrente/internal/domain"
	"github.com/jonielmendes/AlugaLarCorrente/internal/dto"
	"github.com/jonielmendes/AlugaLarCorrente/internal/repository"
	"github.com/jonielmendes/AlugaLarCorrente/internal/tasks"
)

// 分页默认值
const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// 公开排序参数到列名的映射
var listingOrdering = map[string]string{
	"preco":         "price",
	"criado_em":     "created_at",
	"visualizacoes": "view_count",
}

// TaskEnqueuer 是 asynq.Client 中服务层用到的部分
type TaskEnqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// Page 描述分页参数，Number 从 1 开始
type Page struct {
	Number int
	Size   int
}

func (p Page) normalize(defaultSize int) Page {
	if p.Number < 1 {
		p.Number = 1
	}
	if p.Size < 1 {
		p.Size = defaultSize
	}
	if p.Size > MaxPageSize {
		p.Size = MaxPageSize
	}
	return p
}

// Offset 返回分页偏移
func (p Page) Offset() int {
	return (p.Number - 1) * p.Size
}

// ListingQuery 是公开房源列表的查询参数
type ListingQuery struct {
	PriceMin *decimal.Decimal
	PriceMax *decimal.Decimal
	Bairro   string
	Tipo     string
	Search   string
	Ordering string
	Page     Page
}

// ListingService 负责房源相关的业务逻辑。
type ListingService struct {
	listingRepo repository.ListingRepository
	enqueuer    TaskEnqueuer
}

// NewListingService 创建 ListingService 实例。enqueuer 可以为 nil，此时删除后不清理图片。
func NewListingService(listingRepo repository.ListingRepository, enqueuer TaskEnqueuer) *ListingService {
	if listingRepo == nil {
		panic("ListingRepository cannot be nil for ListingService")
	}
	return &ListingService{listingRepo: listingRepo, enqueuer: enqueuer}
}

// List 返回上架房源的一页，以及满足条件的总数
func (s *ListingService) List(ctx context.Context, q ListingQuery) ([]domain.Listing, int64, Page, error) {
	page := q.Page.normalize(DefaultPageSize)
	active := true
	filter := repository.ListingFilter{
		Active:      &active,
		PriceMin:    q.PriceMin,
		PriceMax:    q.PriceMax,
		Search:      strings.TrimSpace(q.Search),
		SearchScope: repository.SearchPublic,
		OrderBy:     mapOrdering(q.Ordering),
		Limit:       page.Size,
		Offset:      page.Offset(),
	}

	verr := &ValidationError{}
	if q.Bairro != "" {
		n := domain.Neighborhood(q.Bairro)
		if !n.Valid() {
			verr.Add("bairro", invalidChoice(q.Bairro))
		}
		filter.Neighborhood = n
	}
	if q.Tipo != "" {
		pt := domain.PropertyType(q.Tipo)
		if !pt.Valid() {
			verr.Add("tipo", invalidChoice(q.Tipo))
		}
		filter.PropertyType = pt
	}
	if !verr.Empty() {
		return nil, 0, page, verr
	}

	listings, total, err := s.listingRepo.List(ctx, filter)
	if err != nil {
		logrus.WithError(err).Error("ListingService: failed to list listings")
		return nil, 0, page, ErrInternalServer
	}
	return listings, total, page, nil
}

// Get 返回房源详情并原子地增加浏览次数。
// 下架房源只对房东可见，其他人 (requesterID 为 0 表示匿名) 得到 ErrListingNotFound。
func (s *ListingService) Get(ctx context.Context, id, requesterID uint) (*domain.Listing, error) {
	logCtx := logrus.WithFields(logrus.Fields{"listing_id": id, "requester_id": requesterID})

	listing, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if !listing.Active && (requesterID == 0 || !listing.IsOwnedBy(requesterID)) {
		return nil, ErrListingNotFound
	}

	if err := s.listingRepo.IncrementViews(ctx, id); err != nil {
		if errors.Is(err, repository.ErrListingNotFound) {
			return nil, ErrListingNotFound
		}
		logCtx.WithError(err).Error("ListingService: failed to increment views")
		return nil, ErrInternalServer
	}
	listing.ViewCount++
	return listing, nil
}

// Create 创建房源，房东固定为当前用户
func (s *ListingService) Create(ctx context.Context, ownerID uint, in dto.ListingWrite) (*domain.Listing, error) {
	logCtx := logrus.WithField("owner_id", ownerID)

	listing := &domain.Listing{OwnerID: ownerID, Active: true}
	if err := applyListingWrite(listing, in, false); err != nil {
		return nil, err
	}

	if err := s.listingRepo.Create(ctx, listing, newImages(in.ImagensUpload)); err != nil {
		logCtx.WithError(err).Error("ListingService: failed to create listing")
		return nil, ErrInternalServer
	}
	logCtx.WithField("listing_id", listing.ID).Info("Listing created")
	return s.find(ctx, listing.ID)
}

// Update 修改房源。partial 为 true 时只修改请求中出现的字段 (PATCH)。
func (s *ListingService) Update(ctx context.Context, id, requesterID uint, in dto.ListingWrite, partial bool) (*domain.Listing, error) {
	logCtx := logrus.WithFields(logrus.Fields{"listing_id": id, "requester_id": requesterID})

	listing, err := s.findOwned(ctx, id, requesterID)
	if err != nil {
		return nil, err
	}
	if err := applyListingWrite(listing, in, partial); err != nil {
		return nil, err
	}

	if err := s.listingRepo.Update(ctx, listing, newImages(in.ImagensUpload)); err != nil {
		if errors.Is(err, repository.ErrListingNotFound) {
			return nil, ErrListingNotFound
		}
		logCtx.WithError(err).Error("ListingService: failed to update listing")
		return nil, ErrInternalServer
	}
	logCtx.Info("Listing updated")
	return s.find(ctx, id)
}

// Delete 删除房源及其图集，并异步清理对象存储中的图片
func (s *ListingService) Delete(ctx context.Context, id, requesterID uint) error {
	logCtx := logrus.WithFields(logrus.Fields{"listing_id": id, "requester_id": requesterID})

	listing, err := s.findOwned(ctx, id, requesterID)
	if err != nil {
		return err
	}
	if err := s.listingRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrListingNotFound) {
			return ErrListingNotFound
		}
		logCtx.WithError(err).Error("ListingService: failed to delete listing")
		return ErrInternalServer
	}
	logCtx.Info("Listing deleted")

	s.enqueueMediaCleanup(ctx, listing)
	return nil
}

// MyListings 返回当前用户的全部房源 (不论是否上架)
func (s *ListingService) MyListings(ctx context.Context, ownerID uint) ([]domain.Listing, error) {
	listings, _, err := s.listingRepo.List(ctx, repository.ListingFilter{OwnerID: ownerID})
	if err != nil {
		logrus.WithError(err).WithField("owner_id", ownerID).Error("ListingService: failed to list own listings")
		return nil, ErrInternalServer
	}
	return listings, nil
}

// ToggleActive 翻转上架状态并返回最新的房源
func (s *ListingService) ToggleActive(ctx context.Context, id, requesterID uint) (*domain.Listing, error) {
	logCtx := logrus.WithFields(logrus.Fields{"listing_id": id, "requester_id": requesterID})

	if _, err := s.findOwned(ctx, id, requesterID); err != nil {
		return nil, err
	}
	if err := s.listingRepo.ToggleActive(ctx, id); err != nil {
		if errors.Is(err, repository.ErrListingNotFound) {
			return nil, ErrListingNotFound
		}
		logCtx.WithError(err).Error("ListingService: failed to toggle listing")
		return nil, ErrInternalServer
	}
	return s.find(ctx, id)
}

// Featured 返回最新的几条上架房源
func (s *ListingService) Featured(ctx context.Context) ([]domain.Listing, error) {
	active := true
	listings, _, err := s.listingRepo.List(ctx, repository.ListingFilter{
		Active: &active,
		Limit:  domain.FeaturedLimit,
	})
	if err != nil {
		logrus.WithError(err).Error("ListingService: failed to list featured listings")
		return nil, ErrInternalServer
	}
	return listings, nil
}

// Stats 返回统计数据，按类型统计的 key 为类型的显示名
func (s *ListingService) Stats(ctx context.Context) (*dto.StatsOut, error) {
	stats, err := s.listingRepo.Stats(ctx)
	if err != nil {
		logrus.WithError(err).Error("ListingService: failed to compute stats")
		return nil, ErrInternalServer
	}
	out := &dto.StatsOut{
		Total:   stats.Total,
		Ativos:  stats.Active,
		PorTipo: make(map[string]int64, len(domain.PropertyTypes())),
	}
	for _, pt := range domain.PropertyTypes() {
		out.PorTipo[pt.Label()] = stats.ActiveByType[pt]
	}
	return out, nil
}

// --- 私有辅助函数 ---

func (s *ListingService) find(ctx context.Context, id uint) (*domain.Listing, error) {
	listing, err := s.listingRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrListingNotFound) {
			return nil, ErrListingNotFound
		}
		logrus.WithError(err).WithField("listing_id", id).Error("ListingService: failed to find listing")
		return nil, ErrInternalServer
	}
	return listing, nil
}

// findOwned 查找房源 (不论是否上架) 并检查所有权
func (s *ListingService) findOwned(ctx context.Context, id, requesterID uint) (*domain.Listing, error) {
	listing, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if !listing.IsOwnedBy(requesterID) {
		logrus.WithFields(logrus.Fields{"listing_id": id, "requester_id": requesterID}).
			Warn("ListingService: requester is not the owner")
		return nil, ErrForbidden
	}
	return listing, nil
}

func (s *ListingService) enqueueMediaCleanup(ctx context.Context, listing *domain.Listing) {
	refs := listing.MediaRefs()
	if s.enqueuer == nil || len(refs) == 0 {
		return
	}
	logCtx := logrus.WithField("listing_id", listing.ID)
	task, err := tasks.NewMediaCleanupTask(listing.ID, refs)
	if err != nil {
		logCtx.WithError(err).Error("Failed to create media cleanup task")
		return
	}
	// 入队失败不影响删除结果
	if _, err := s.enqueuer.EnqueueContext(ctx, task); err != nil {
		logCtx.WithError(err).Error("Failed to enqueue media cleanup task")
		return
	}
	logCtx.WithField("objects", len(refs)).Debug("Media cleanup task enqueued")
}

func mapOrdering(ordering string) string {
	ordering = strings.TrimSpace(ordering)
	desc := strings.HasPrefix(ordering, "-")
	col, ok := listingOrdering[strings.TrimPrefix(ordering, "-")]
	if !ok {
		return "-created_at"
	}
	if desc {
		return "-" + col
	}
	return col
}

func invalidChoice(v string) string {
	return fmt.Sprintf("Faça uma escolha válida. %s não é uma das escolhas disponíveis.", v)
}

func newImages(uploads []dto.ImageUpload) []domain.ListingImage {
	if len(uploads) == 0 {
		return nil
	}
	images := make([]domain.ListingImage, len(uploads))
	for i, u := range uploads {
		images[i] = domain.ListingImage{Image: u.Imagem, Caption: u.Descricao}
	}
	return images
}

// applyListingWrite 把请求体写入房源。partial 为 false 时所有必填字段都必须出现。
func applyListingWrite(l *domain.Listing, in dto.ListingWrite, partial bool) error {
	verr := &ValidationError{}

	requireText := func(field string, v *string, dst *string) {
		if v == nil {
			if !partial {
				verr.Add(field, MsgRequired)
			}
			return
		}
		if strings.TrimSpace(*v) == "" {
			verr.Add(field, "Este campo não pode ser em branco.")
			return
		}
		*dst = *v
	}
	requireText("titulo", in.Titulo, &l.Title)
	requireText("descricao", in.Descricao, &l.Description)
	requireText("telefone_contato", in.TelefoneContato, &l.ContactPhone)
	requireText("foto_principal", in.FotoPrincipal, &l.MainPhoto)

	if in.Preco == nil {
		if !partial {
			verr.Add("preco", MsgRequired)
		}
	} else if err := domain.ValidatePrice(*in.Preco); err != nil {
		verr.Add("preco", err.Error())
	} else {
		l.Price = *in.Preco
	}

	switch {
	case in.Bairro == nil:
		if !partial {
			verr.Add("bairro", MsgRequired)
		}
	case !in.Bairro.Valid():
		verr.Add("bairro", fmt.Sprintf("\"%s\" não é um escolha válido.", *in.Bairro))
	default:
		l.Neighborhood = *in.Bairro
	}

	switch {
	case in.Tipo == nil:
		if !partial {
			verr.Add("tipo", MsgRequired)
		}
	case !in.Tipo.Valid():
		verr.Add("tipo", fmt.Sprintf("\"%s\" não é um escolha válido.", *in.Tipo))
	default:
		l.PropertyType = *in.Tipo
	}

	if in.Ativo != nil {
		l.Active = *in.Ativo
	}

	if !verr.Empty() {
		return verr
	}
	return nil
}
