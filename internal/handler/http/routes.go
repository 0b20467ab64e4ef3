package http

import "github.com/gin-gonic/gin"

// Handlers 汇总所有 HTTP 处理器
type Handlers struct {
	Auth    *AuthHandler
	Listing *ListingHandler
	Profile *ProfileHandler
	Media   *MediaHandler
	Admin   *AdminHandler
}

// Guards 是路由使用的认证中间件
type Guards struct {
	Auth         gin.HandlerFunc // 必须登录
	OptionalAuth gin.HandlerFunc // 可匿名
	Staff        gin.HandlerFunc // 运营人员，放在 Auth 之后
}

// RegisterRoutes 在 /api 分组下注册全部接口，路径统一以 "/" 结尾
func RegisterRoutes(api *gin.RouterGroup, h Handlers, g Guards) {
	imoveis := api.Group("/imoveis")
	{
		imoveis.GET("/", h.Listing.List)
		imoveis.POST("/", g.Auth, h.Listing.Create)
		imoveis.GET("/meus_imoveis/", g.Auth, h.Listing.MyListings)
		imoveis.GET("/destaques/", h.Listing.Featured)
		imoveis.GET("/estatisticas/", h.Listing.Stats)
		imoveis.GET("/:id/", g.OptionalAuth, h.Listing.Get)
		imoveis.PUT("/:id/", g.Auth, h.Listing.Update)
		imoveis.PATCH("/:id/", g.Auth, h.Listing.Update)
		imoveis.DELETE("/:id/", g.Auth, h.Listing.Delete)
		imoveis.POST("/:id/toggle_ativo/", g.Auth, h.Listing.ToggleActive)
	}

	auth := api.Group("/auth")
	{
		auth.POST("/register/", h.Auth.Register)
		auth.POST("/login/", h.Auth.Login)
		auth.POST("/logout/", g.Auth, h.Auth.Logout)
		auth.GET("/me/", g.Auth, h.Auth.Me)
	}

	api.GET("/perfil/", g.Auth, h.Profile.Get)
	api.PUT("/perfil/", g.Auth, h.Profile.Update)
	api.PATCH("/perfil/", g.Auth, h.Profile.Update)

	api.POST("/media/presign/", g.Auth, h.Media.Presign)

	admin := api.Group("/admin", g.Auth, g.Staff)
	{
		admin.GET("/imoveis/", h.Admin.ListListings)
		admin.POST("/imoveis/ativar/", h.Admin.Activate)
		admin.POST("/imoveis/desativar/", h.Admin.Deactivate)
		admin.GET("/imoveis/:id/", h.Admin.GetListing)
		admin.PUT("/imoveis/:id/", h.Admin.UpdateListing)
		admin.PATCH("/imoveis/:id/", h.Admin.UpdateListing)
		admin.PUT("/imoveis/:id/imagens/", h.Admin.ReplaceImages)
		admin.GET("/perfis/", h.Admin.ListProfiles)
		admin.GET("/imagens/", h.Admin.ListImages)
	}
}
