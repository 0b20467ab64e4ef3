package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/jonielmendes/AlugaLarCorrente/internal/dto"
	"github.com/jonielmendes/AlugaLarCorrente/internal/middleware"
	"github.com/jonielmendes/AlugaLarCorrente/internal/service"
)

const dateLayout = "2006-01-02"

// AdminHandler 处理 /api/admin/ 下的运营接口，路由需挂在 RequireStaff 之后
type AdminHandler struct {
	adminService *service.AdminService
}

// NewAdminHandler 创建 AdminHandler 实例
func NewAdminHandler(adminService *service.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// ListListings 返回后台房源列表
func (h *AdminHandler) ListListings(c *gin.Context) {
	fields := make(map[string][]string)
	q := service.AdminListingQuery{
		Bairro: c.Query("bairro"),
		Tipo:   c.Query("tipo"),
		Search: c.Query("search"),
	}
	q.Page, _ = strconv.Atoi(c.Query("page"))

	if raw := c.Query("ativo"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			fields["ativo"] = []string{"Informe um valor booleano válido."}
		} else {
			q.Ativo = &v
		}
	}
	for name, dst := range map[string]*time.Time{"criado_de": &q.CriadoDe, "criado_ate": &q.CriadoAte} {
		raw := c.Query(name)
		if raw == "" {
			continue
		}
		t, err := time.ParseInLocation(dateLayout, raw, time.Local)
		if err != nil {
			fields[name] = []string{"Informe uma data válida."}
			continue
		}
		*dst = t
	}
	if len(fields) > 0 {
		ValidationResponse(c, fields)
		return
	}

	listings, total, page, err := h.adminService.ListListings(c.Request.Context(), q)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	rows := make([]dto.AdminListingRow, len(listings))
	for i := range listings {
		rows[i] = dto.NewAdminListingRow(&listings[i])
	}
	writePage(c, rows, total, page)
}

// GetListing 返回房源详情 (不计浏览次数)
func (h *AdminHandler) GetListing(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	listing, err := h.adminService.GetListing(c.Request.Context(), id)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewListingDetail(listing))
}

// UpdateListing 运营修改任意房源，PATCH 为部分更新
func (h *AdminHandler) UpdateListing(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var in dto.AdminListingWrite
	if !bindJSON(c, &in) {
		return
	}

	operatorID, _ := middleware.UserID(c)
	listing, err := h.adminService.UpdateListing(c.Request.Context(), id, in, c.Request.Method == http.MethodPatch)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	logrus.WithFields(logrus.Fields{"listing_id": id, "operator_id": operatorID}).Info("Handler.Admin: Listing edited")
	c.JSON(http.StatusOK, dto.NewListingDetail(listing))
}

// ReplaceImages 用请求中的集合替换房源图集
func (h *AdminHandler) ReplaceImages(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var in dto.AdminImagesWrite
	if !bindJSON(c, &in) {
		return
	}
	listing, err := h.adminService.ReplaceImages(c.Request.Context(), id, in.Imagens)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewListingDetail(listing))
}

// Activate 批量上架
func (h *AdminHandler) Activate(c *gin.Context) {
	h.bulk(c, true)
}

// Deactivate 批量下架
func (h *AdminHandler) Deactivate(c *gin.Context) {
	h.bulk(c, false)
}

func (h *AdminHandler) bulk(c *gin.Context, active bool) {
	var req dto.BulkActionRequest
	if !bindJSON(c, &req) {
		return
	}

	var (
		n   int64
		err error
	)
	if active {
		n, err = h.adminService.ActivateMany(c.Request.Context(), req.IDs)
	} else {
		n, err = h.adminService.DeactivateMany(c.Request.Context(), req.IDs)
	}
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.BulkActionResponse{Updated: n, Message: service.BulkMessage(n, active)})
}

// ListProfiles 返回档案列表
func (h *AdminHandler) ListProfiles(c *gin.Context) {
	pageNumber, _ := strconv.Atoi(c.Query("page"))
	profiles, total, page, err := h.adminService.ListProfiles(c.Request.Context(), c.Query("tipo"), c.Query("search"), pageNumber)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	rows := make([]dto.AdminProfileRow, len(profiles))
	for i := range profiles {
		rows[i] = dto.NewAdminProfileRow(&profiles[i])
	}
	writePage(c, rows, total, page)
}

// ListImages 返回图集列表，可按 imovel 过滤
func (h *AdminHandler) ListImages(c *gin.Context) {
	var listingID uint
	if raw := c.Query("imovel"); raw != "" {
		v, err := strconv.ParseUint(raw, 10, 0)
		if err != nil {
			ValidationResponse(c, map[string][]string{"imovel": {"Faça uma escolha válida."}})
			return
		}
		listingID = uint(v)
	}
	pageNumber, _ := strconv.Atoi(c.Query("page"))

	images, total, page, err := h.adminService.ListImages(c.Request.Context(), listingID, pageNumber)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	rows := make([]dto.AdminImageRow, len(images))
	for i := range images {
		rows[i] = dto.NewAdminImageRow(images[i])
	}
	writePage(c, rows, total, page)
}
