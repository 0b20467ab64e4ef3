package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/jonielmendes/AlugaLarCorrente/internal/dto"
	"github.com/jonielmendes/AlugaLarCorrente/internal/middleware"
	"github.com/jonielmendes/AlugaLarCorrente/internal/service"
)

// ListingHandler 处理 /api/imoveis/ 下的请求
type ListingHandler struct {
	listingService *service.ListingService
}

// NewListingHandler 创建 ListingHandler 实例
func NewListingHandler(listingService *service.ListingService) *ListingHandler {
	return &ListingHandler{listingService: listingService}
}

// decimalQuery 解析可选的十进制查询参数
func decimalQuery(c *gin.Context, name string, fields map[string][]string) *decimal.Decimal {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		fields[name] = append(fields[name], "Informe um número.")
		return nil
	}
	return &d
}

// List 返回上架房源的分页列表
func (h *ListingHandler) List(c *gin.Context) {
	fields := make(map[string][]string)
	q := service.ListingQuery{
		PriceMin: decimalQuery(c, "preco_min", fields),
		PriceMax: decimalQuery(c, "preco_max", fields),
		Bairro:   c.Query("bairro"),
		Tipo:     c.Query("tipo"),
		Search:   c.Query("search"),
		Ordering: c.Query("ordering"),
		Page:     pageParams(c),
	}
	if len(fields) > 0 {
		ValidationResponse(c, fields)
		return
	}

	listings, total, page, err := h.listingService.List(c.Request.Context(), q)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	writePage(c, dto.NewListingList(listings), total, page)
}

// Get 返回房源详情并增加浏览次数
func (h *ListingHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	requesterID, _ := middleware.UserID(c)

	listing, err := h.listingService.Get(c.Request.Context(), id, requesterID)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewListingDetail(listing))
}

// Create 创建房源，房东为当前用户
func (h *ListingHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var in dto.ListingWrite
	if !bindJSON(c, &in) {
		return
	}

	listing, err := h.listingService.Create(c.Request.Context(), userID, in)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewListingDetail(listing))
}

// Update 处理 PUT (完整) 与 PATCH (部分) 更新
func (h *ListingHandler) Update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var in dto.ListingWrite
	if !bindJSON(c, &in) {
		return
	}

	partial := c.Request.Method == http.MethodPatch
	listing, err := h.listingService.Update(c.Request.Context(), id, userID, in, partial)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewListingDetail(listing))
}

// Delete 删除房源
func (h *ListingHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.listingService.Delete(c.Request.Context(), id, userID); err != nil {
		HandleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// MyListings 返回当前用户的全部房源
func (h *ListingHandler) MyListings(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	listings, err := h.listingService.MyListings(c.Request.Context(), userID)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewListingList(listings))
}

// ToggleActive 翻转上架状态
func (h *ListingHandler) ToggleActive(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	listing, err := h.listingService.ToggleActive(c.Request.Context(), id, userID)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewListingDetail(listing))
}

// Featured 返回推荐房源
func (h *ListingHandler) Featured(c *gin.Context) {
	listings, err := h.listingService.Featured(c.Request.Context())
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewListingList(listings))
}

// Stats 返回房源统计
func (h *ListingHandler) Stats(c *gin.Context) {
	stats, err := h.listingService.Stats(c.Request.Context())
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
