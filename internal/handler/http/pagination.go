package http

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jonielmendes/AlugaLarCorrente/internal/dto"
	"github.com/jonielmendes/AlugaLarCorrente/internal/service"
)

// pageParams 读取 page 与 page_size，非法值交给服务层回落到默认值
func pageParams(c *gin.Context) service.Page {
	number, _ := strconv.Atoi(c.Query("page"))
	size, _ := strconv.Atoi(c.Query("page_size"))
	return service.Page{Number: number, Size: size}
}

// pageOutOfRange 判断请求的页码是否超过最后一页 (第一页总是有效)
func pageOutOfRange(page service.Page, total int64) bool {
	return page.Number > 1 && int64(page.Offset()) >= total
}

// writePage 写入分页响应，页码越界时返回 404
func writePage[T any](c *gin.Context, results []T, total int64, page service.Page) {
	if pageOutOfRange(page, total) {
		ErrorResponse(c, http.StatusNotFound, msgInvalidPage)
		return
	}
	if results == nil {
		results = []T{}
	}
	out := dto.Paginated[T]{Count: total, Results: results}
	if int64(page.Number*page.Size) < total {
		out.Next = pageURL(c, page.Number+1)
	}
	if page.Number > 1 {
		out.Previous = pageURL(c, page.Number-1)
	}
	c.JSON(http.StatusOK, out)
}

// pageURL 基于当前请求构造指定页码的绝对 URL，第一页不带 page 参数
func pageURL(c *gin.Context, number int) *string {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	if proto := c.GetHeader("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}

	q := c.Request.URL.Query()
	if number <= 1 {
		q.Del("page")
	} else {
		q.Set("page", strconv.Itoa(number))
	}
	u := url.URL{Scheme: scheme, Host: c.Request.Host, Path: c.Request.URL.Path, RawQuery: q.Encode()}
	s := u.String()
	return &s
}
