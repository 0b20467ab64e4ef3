package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jonielmendes/AlugaLarCorrente/internal/domain"
)

// ImageOut 表示图集中的一张图片
type ImageOut struct {
	ID        uint   `json:"id"`
	Imagem    string `json:"imagem"`
	Descricao string `json:"descricao"`
	Ordem     int    `json:"ordem"`
}

// ListingListItem 是列表视图 (公开列表、我的房源、推荐)
type ListingListItem struct {
	ID            uint      `json:"id"`
	Titulo        string    `json:"titulo"`
	Preco         string    `json:"preco"`
	Bairro        string    `json:"bairro"`
	BairroDisplay string    `json:"bairro_display"`
	Tipo          string    `json:"tipo"`
	TipoDisplay   string    `json:"tipo_display"`
	FotoPrincipal string    `json:"foto_principal"`
	Ativo         bool      `json:"ativo"`
	DonoNome      string    `json:"dono_nome"`
	Visualizacoes int64     `json:"visualizacoes"`
	CriadoEm      time.Time `json:"criado_em"`
	WhatsappLink  string    `json:"whatsapp_link"`
}

// ListingDetail 是详情视图
type ListingDetail struct {
	ID              uint       `json:"id"`
	Titulo          string     `json:"titulo"`
	Descricao       string     `json:"descricao"`
	Preco           string     `json:"preco"`
	Bairro          string     `json:"bairro"`
	BairroDisplay   string     `json:"bairro_display"`
	Tipo            string     `json:"tipo"`
	TipoDisplay     string     `json:"tipo_display"`
	TelefoneContato string     `json:"telefone_contato"`
	FotoPrincipal   string     `json:"foto_principal"`
	Ativo           bool       `json:"ativo"`
	Visualizacoes   int64      `json:"visualizacoes"`
	CriadoEm        time.Time  `json:"criado_em"`
	AtualizadoEm    time.Time  `json:"atualizado_em"`
	Dono            *UserOut   `json:"dono"`
	Imagens         []ImageOut `json:"imagens"`
	WhatsappLink    string     `json:"whatsapp_link"`
}

// ImageUpload 是写入时附带的一张新图片 (已上传到对象存储的引用)
type ImageUpload struct {
	Imagem    string `json:"imagem" binding:"required,max=255"`
	Descricao string `json:"descricao" binding:"max=200"`
}

// ListingWrite 是创建/更新房源的请求体。
// 字段均为指针：PATCH 只修改出现的字段，POST/PUT 由服务层检查必填项。
type ListingWrite struct {
	Titulo          *string              `json:"titulo" binding:"omitempty,max=200"`
	Descricao       *string              `json:"descricao"`
	Preco           *decimal.Decimal     `json:"preco" binding:"omitempty,preco"`
	Bairro          *domain.Neighborhood `json:"bairro" binding:"omitempty,bairro"`
	Tipo            *domain.PropertyType `json:"tipo" binding:"omitempty,tipo_imovel"`
	TelefoneContato *string              `json:"telefone_contato" binding:"omitempty,max=20"`
	FotoPrincipal   *string              `json:"foto_principal" binding:"omitempty,max=255"`
	Ativo           *bool                `json:"ativo"`
	ImagensUpload   []ImageUpload        `json:"imagens_upload" binding:"omitempty,dive"`
}

// StatsOut 是统计接口的响应
type StatsOut struct {
	Total   int64            `json:"total"`
	Ativos  int64            `json:"ativos"`
	PorTipo map[string]int64 `json:"por_tipo"`
}

// NewImageOut 转换一张图集图片
func NewImageOut(img domain.ListingImage) ImageOut {
	return ImageOut{ID: img.ID, Imagem: img.Image, Descricao: img.Caption, Ordem: img.Order}
}

// NewListingListItem 把房源转换为列表视图
func NewListingListItem(l *domain.Listing) ListingListItem {
	item := ListingListItem{
		ID:            l.ID,
		Titulo:        l.Title,
		Preco:         domain.FormatPrice(l.Price),
		Bairro:        string(l.Neighborhood),
		BairroDisplay: l.Neighborhood.Label(),
		Tipo:          string(l.PropertyType),
		TipoDisplay:   l.PropertyType.Label(),
		FotoPrincipal: l.MainPhoto,
		Ativo:         l.Active,
		Visualizacoes: l.ViewCount,
		CriadoEm:      l.CreatedAt,
		WhatsappLink:  l.WhatsAppLink(),
	}
	if l.Owner != nil {
		item.DonoNome = l.Owner.Username
	}
	return item
}

// NewListingList 批量转换列表视图
func NewListingList(listings []domain.Listing) []ListingListItem {
	out := make([]ListingListItem, len(listings))
	for i := range listings {
		out[i] = NewListingListItem(&listings[i])
	}
	return out
}

// NewListingDetail 把房源转换为详情视图
func NewListingDetail(l *domain.Listing) ListingDetail {
	d := ListingDetail{
		ID:              l.ID,
		Titulo:          l.Title,
		Descricao:       l.Description,
		Preco:           domain.FormatPrice(l.Price),
		Bairro:          string(l.Neighborhood),
		BairroDisplay:   l.Neighborhood.Label(),
		Tipo:            string(l.PropertyType),
		TipoDisplay:     l.PropertyType.Label(),
		TelefoneContato: l.ContactPhone,
		FotoPrincipal:   l.MainPhoto,
		Ativo:           l.Active,
		Visualizacoes:   l.ViewCount,
		CriadoEm:        l.CreatedAt,
		AtualizadoEm:    l.UpdatedAt,
		Imagens:         make([]ImageOut, 0, len(l.Images)),
		WhatsappLink:    l.WhatsAppLink(),
	}
	if l.Owner != nil {
		owner := NewUserOut(l.Owner)
		d.Dono = &owner
	}
	for _, img := range l.Images {
		d.Imagens = append(d.Imagens, NewImageOut(img))
	}
	return d
}
