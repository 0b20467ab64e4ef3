package dto

import (
	"time"

	"github.com/jonielmendes/AlugaLarCorrente/internal/domain"
	"github.com/jonielmendes/AlugaLarCorrente/internal/repository"
)

// NoPhoneLabel 是房源没有联系电话时 link_whatsapp 列的内容
const NoPhoneLabel = "Sem telefone cadastrado"

// AdminListingRow 是后台房源列表的一行
type AdminListingRow struct {
	ID             uint      `json:"id"`
	Titulo         string    `json:"titulo"`
	Preco          string    `json:"preco"`
	PrecoFormatado string    `json:"preco_formatado"`
	Bairro         string    `json:"bairro"`
	BairroDisplay  string    `json:"bairro_display"`
	Tipo           string    `json:"tipo"`
	TipoDisplay    string    `json:"tipo_display"`
	Dono           string    `json:"dono"`
	DonoID         uint      `json:"dono_id"`
	Visualizacoes  int64     `json:"visualizacoes"`
	AtivoStatus    bool      `json:"ativo_status"`
	CriadoEm       time.Time `json:"criado_em"`
	LinkWhatsapp   string    `json:"link_whatsapp"`
	FotoPreview    string    `json:"foto_preview"`
}

// AdminListingWrite 是后台编辑房源的请求体，允许修改房东
type AdminListingWrite struct {
	ListingWrite
	Dono *uint `json:"dono"`
}

// AdminImageWrite 是后台内联编辑图集时的一行；ID 为空表示新建
type AdminImageWrite struct {
	ID        uint   `json:"id"`
	Imagem    string `json:"imagem" binding:"required,max=255"`
	Descricao string `json:"descricao" binding:"max=200"`
	Ordem     int    `json:"ordem" binding:"min=0"`
}

// AdminImagesWrite 是 PUT imoveis/{id}/imagens/ 的请求体
type AdminImagesWrite struct {
	Imagens []AdminImageWrite `json:"imagens" binding:"dive"`
}

// BulkActionRequest 是批量上架/下架的请求体
type BulkActionRequest struct {
	IDs []uint `json:"ids" binding:"required,min=1"`
}

// BulkActionResponse 是批量操作结果
type BulkActionResponse struct {
	Updated int64  `json:"updated"`
	Message string `json:"message"`
}

// AdminProfileRow 是后台档案列表的一行
type AdminProfileRow struct {
	ID          uint   `json:"id"`
	User        string `json:"user"`
	UserID      uint   `json:"user_id"`
	Tipo        string `json:"tipo"`
	TipoDisplay string `json:"tipo_display"`
	Telefone    string `json:"telefone"`
}

// AdminImageRow 是后台图集列表的一行
type AdminImageRow struct {
	ID        uint   `json:"id"`
	Imovel    string `json:"imovel"`
	ImovelID  uint   `json:"imovel_id"`
	Imagem    string `json:"imagem"`
	Descricao string `json:"descricao"`
	Ordem     int    `json:"ordem"`
}

// NewAdminListingRow 计算后台列表的展示列
func NewAdminListingRow(l *domain.Listing) AdminListingRow {
	row := AdminListingRow{
		ID:             l.ID,
		Titulo:         l.Title,
		Preco:          domain.FormatPrice(l.Price),
		PrecoFormatado: domain.FormatBRL(l.Price),
		Bairro:         string(l.Neighborhood),
		BairroDisplay:  l.Neighborhood.Label(),
		Tipo:           string(l.PropertyType),
		TipoDisplay:    l.PropertyType.Label(),
		DonoID:         l.OwnerID,
		Visualizacoes:  l.ViewCount,
		AtivoStatus:    l.Active,
		CriadoEm:       l.CreatedAt,
		LinkWhatsapp:   NoPhoneLabel,
		FotoPreview:    l.MainPhoto,
	}
	if l.Owner != nil {
		row.Dono = l.Owner.Username
	}
	if l.ContactPhone != "" {
		row.LinkWhatsapp = l.WhatsAppLink()
	}
	return row
}

// NewAdminProfileRow 转换档案
func NewAdminProfileRow(p *domain.Profile) AdminProfileRow {
	row := AdminProfileRow{
		ID:          p.ID,
		UserID:      p.UserID,
		Tipo:        string(p.Role),
		TipoDisplay: p.Role.Label(),
		Telefone:    p.Phone,
	}
	if p.User != nil {
		row.User = p.User.Username
	}
	return row
}

// NewAdminImageRow 转换图集行
func NewAdminImageRow(r repository.ImageRow) AdminImageRow {
	return AdminImageRow{
		ID:        r.ID,
		Imovel:    r.ListingTitle,
		ImovelID:  r.ListingID,
		Imagem:    r.Image,
		Descricao: r.Caption,
		Ordem:     r.Order,
	}
}
