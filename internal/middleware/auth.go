package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/sirupsen/logrus"

	"github.com/jonielmendes/AlugaLarCorrente/internal/repository"
)

// 写入 gin.Context 的键
const (
	ContextUserID      = "user_id"
	ContextTokenID     = "token_id"
	ContextTokenExpiry = "token_exp"
)

// ErrMissingAuthHeader 表示请求没有 Authorization 头
var ErrMissingAuthHeader = errors.New("missing Authorization header")

// errRevoked 表示 token 已通过 logout 吊销
var errRevoked = errors.New("token has been revoked")

// StaffChecker 判断用户是否为后台运营人员
type StaffChecker interface {
	IsStaff(ctx context.Context, userID uint) (bool, error)
}

// identity 是从 token 中解析出的身份
type identity struct {
	userID    uint
	tokenID   string
	expiresAt time.Time
}

// Auth 返回一个 Gin 中间件，要求请求携带有效且未吊销的 JWT。
func Auth(jwtSecret string, tokens repository.TokenStore) gin.HandlerFunc {
	if jwtSecret == "" {
		panic("JWT secret cannot be empty for Auth middleware")
	}
	if tokens == nil {
		panic("TokenStore cannot be nil for Auth middleware")
	}

	return func(c *gin.Context) {
		tokenStr, err := extractToken(c)
		if err != nil {
			if errors.Is(err, ErrMissingAuthHeader) {
				logrus.Debug("Auth middleware: Missing Authorization header")
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "As credenciais de autenticação não foram fornecidas."})
				return
			}
			logrus.WithError(err).Warn("Auth middleware: Malformed Authorization header")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token inválido."})
			return
		}
		if !authenticate(c, tokenStr, jwtSecret, tokens) {
			return
		}
		c.Next()
	}
}

// OptionalAuth 在请求携带 token 时解析身份，没有 token 时按匿名用户继续。
// 携带了无效 token 的请求仍然返回 401。
func OptionalAuth(jwtSecret string, tokens repository.TokenStore) gin.HandlerFunc {
	if jwtSecret == "" {
		panic("JWT secret cannot be empty for OptionalAuth middleware")
	}
	if tokens == nil {
		panic("TokenStore cannot be nil for OptionalAuth middleware")
	}

	return func(c *gin.Context) {
		tokenStr, err := extractToken(c)
		if errors.Is(err, ErrMissingAuthHeader) {
			c.Next()
			return
		}
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token inválido."})
			return
		}
		if !authenticate(c, tokenStr, jwtSecret, tokens) {
			return
		}
		c.Next()
	}
}

// RequireStaff 要求已认证用户是运营人员，必须放在 Auth 之后。
func RequireStaff(checker StaffChecker) gin.HandlerFunc {
	if checker == nil {
		panic("StaffChecker cannot be nil for RequireStaff middleware")
	}
	return func(c *gin.Context) {
		userID, ok := UserID(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "As credenciais de autenticação não foram fornecidas."})
			return
		}
		staff, err := checker.IsStaff(c.Request.Context(), userID)
		if err != nil {
			logrus.WithError(err).WithField("user_id", userID).Error("RequireStaff: failed to load user")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Erro interno do servidor."})
			return
		}
		if !staff {
			logrus.WithField("user_id", userID).Warn("RequireStaff: access denied")
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Você não tem permissão para executar essa ação."})
			return
		}
		c.Next()
	}
}

// UserID 返回已认证用户的 ID
func UserID(c *gin.Context) (uint, bool) {
	v, exists := c.Get(ContextUserID)
	if !exists {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok && id > 0
}

// authenticate 校验 token 并把身份写入上下文；失败时已经写好响应并返回 false
func authenticate(c *gin.Context, tokenStr, secret string, tokens repository.TokenStore) bool {
	id, err := validateToken(tokenStr, secret)
	if err != nil {
		logCtx := logrus.WithError(err)
		var validationError *jwt.ValidationError
		if errors.As(err, &validationError) && validationError.Errors&jwt.ValidationErrorExpired != 0 {
			logCtx.Debug("Auth middleware: Token is expired")
		} else {
			logCtx.Warn("Auth middleware: Invalid token")
		}
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token inválido."})
		return false
	}

	revoked, err := tokens.IsRevoked(c.Request.Context(), id.tokenID)
	if err != nil {
		logrus.WithError(err).Error("Auth middleware: Failed to check token revocation")
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Erro interno do servidor."})
		return false
	}
	if revoked {
		logrus.WithField("user_id", id.userID).WithError(errRevoked).Debug("Auth middleware: Rejected revoked token")
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token inválido."})
		return false
	}

	c.Set(ContextUserID, id.userID)
	c.Set(ContextTokenID, id.tokenID)
	c.Set(ContextTokenExpiry, id.expiresAt)
	logrus.WithField("user_id", id.userID).Debug("Auth middleware: User authenticated via JWT")
	return true
}

// extractToken 从 Authorization 头中提取 Bearer Token
func extractToken(c *gin.Context) (string, error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", ErrMissingAuthHeader
	}
	parts := strings.Fields(authHeader)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", jwt.ErrTokenMalformed
	}
	return parts[1], nil
}

// validateToken 解析并验证 JWT，返回其中的身份
func validateToken(tokenStr string, secret string) (*identity, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("token validation failed: %w", err)
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token or claims type")
	}

	// JWT 数字默认为 float64
	userIDFloat, ok := claims["user_id"].(float64)
	if !ok || userIDFloat <= 0 || userIDFloat != float64(uint(userIDFloat)) {
		return nil, fmt.Errorf("invalid user_id claim: %v", claims["user_id"])
	}
	tokenID, _ := claims["jti"].(string)
	if tokenID == "" {
		return nil, errors.New("missing jti claim")
	}
	exp, ok := claims["exp"].(float64)
	if !ok {
		return nil, errors.New("missing exp claim")
	}

	return &identity{
		userID:    uint(userIDFloat),
		tokenID:   tokenID,
		expiresAt: time.Unix(int64(exp), 0),
	}, nil
}
