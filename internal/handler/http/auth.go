package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/jonielmendes/AlugaLarCorrente/internal/dto"
	"github.com/jonielmendes/AlugaLarCorrente/internal/middleware"
	"github.com/jonielmendes/AlugaLarCorrente/internal/service"
)

// AuthHandler 封装了与用户认证相关的 HTTP 处理逻辑
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler 创建 AuthHandler 实例
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register 处理用户注册请求，成功时直接返回 token
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	user, token, err := h.authService.Register(c.Request.Context(), req)
	if err != nil {
		HandleServiceError(c, err)
		return
	}

	logrus.WithField("user_id", user.ID).Info("Handler.Register: User registered successfully")
	c.JSON(http.StatusCreated, dto.AuthResponse{Token: token, User: dto.NewUserOut(user)})
}

// Login 处理用户登录请求
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	token, user, err := h.authService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		logrus.WithField("username", req.Username).WithError(err).Warn("Handler.Login: Login failed")
		HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.AuthResponse{Token: token, User: dto.NewUserOut(user)})
}

// Logout 吊销当前请求使用的 token
func (h *AuthHandler) Logout(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	expiresAt, _ := c.Get(middleware.ContextTokenExpiry)
	exp, _ := expiresAt.(time.Time)

	if err := h.authService.Logout(c.Request.Context(), userID, c.GetString(middleware.ContextTokenID), exp); err != nil {
		HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logout realizado com sucesso"})
}

// Me 返回当前用户及档案
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	user, err := h.authService.Me(c.Request.Context(), userID)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewUserOut(user))
}
