package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/jonielmendes/AlugaLarCorrente/internal/domain"
	"github.com/jonielmendes/AlugaLarCorrente/internal/dto"
	"github.com/jonielmendes/AlugaLarCorrente/internal/repository"
)

// AuthService 负责用户认证相关的业务逻辑。
type AuthService struct {
	userRepo  repository.UserRepository
	tokens    repository.TokenStore
	jwtSecret []byte        // 存储密钥的字节形式
	jwtExpiry time.Duration // JWT 过期时间
	now       func() time.Time
}

// NewAuthService 创建 AuthService 实例。
// jwtSecretKey 应从安全配置中获取。
// jwtExpiryHours 定义 token 过期的小时数。
func NewAuthService(userRepo repository.UserRepository, tokens repository.TokenStore, jwtSecretKey string, jwtExpiryHours int) (*AuthService, error) {
	if userRepo == nil {
		panic("UserRepository cannot be nil for AuthService")
	}
	if tokens == nil {
		panic("TokenStore cannot be nil for AuthService")
	}
	if jwtSecretKey == "" {
		return nil, fmt.Errorf("JWT secret key cannot be empty")
	}
	if jwtExpiryHours <= 0 {
		jwtExpiryHours = 24 // 默认 24 小时
	}
	return &AuthService{
		userRepo:  userRepo,
		tokens:    tokens,
		jwtSecret: []byte(jwtSecretKey),
		jwtExpiry: time.Duration(jwtExpiryHours) * time.Hour,
		now:       time.Now,
	}, nil
}

// Register 处理用户注册：校验两次密码一致，在一个事务中创建用户和档案，然后签发 token。
func (s *AuthService) Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, string, error) {
	logCtx := logrus.WithFields(logrus.Fields{"username": req.Username, "email": req.Email})

	if req.Password != req.Password2 {
		return nil, "", NewValidationError("password", MsgPasswordMismatch)
	}
	if !req.Tipo.Valid() {
		return nil, "", NewValidationError("tipo", fmt.Sprintf("\"%s\" não é um escolha válido.", req.Tipo))
	}

	hashedPassword, err := hashPassword(req.Password)
	if err != nil {
		logCtx.WithError(err).Error("Failed to hash password during registration")
		return nil, "", ErrInternalServer
	}

	user := &domain.User{
		Username:  req.Username,
		Password:  hashedPassword,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	}
	profile := &domain.Profile{Role: req.Tipo, Phone: req.Telefone}

	if err := s.userRepo.CreateWithProfile(ctx, user, profile); err != nil {
		if errors.Is(err, repository.ErrDuplicateEntry) {
			logCtx.WithError(err).Warn("Registration failed: username already exists")
			return nil, "", NewValidationError("username", MsgUsernameTaken)
		}
		logCtx.WithError(err).Error("Database error during user creation")
		return nil, "", ErrInternalServer
	}
	user.Profile = profile

	token, err := s.generateJWT(user.ID)
	if err != nil {
		logCtx.WithError(err).Error("Failed to generate JWT token during registration")
		return nil, "", ErrInternalServer
	}

	logCtx.WithField("user_id", user.ID).Info("User registered successfully")
	user.Password = "" // 清除密码哈希再返回
	return user, token, nil
}

// Login 处理用户登录，成功时返回 token 和用户信息。
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	logCtx := logrus.WithField("username", username)

	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			logCtx.WithError(err).Warn("Login attempt failed: User not found")
		} else {
			logCtx.WithError(err).Warn("Login attempt failed: Error finding user")
		}
		return "", nil, ErrAuthenticationFailed // 对客户端统一返回认证失败
	}
	if user == nil {
		logCtx.Warn("Login attempt failed: User not found (repo returned nil user without error)")
		return "", nil, ErrAuthenticationFailed
	}

	if !checkPassword(password, user.Password) {
		logCtx.Warn("Login attempt failed: Invalid password")
		return "", nil, ErrAuthenticationFailed
	}

	token, err := s.generateJWT(user.ID)
	if err != nil {
		logCtx.WithError(err).Error("Failed to generate JWT token during login")
		return "", nil, ErrInternalServer
	}

	logCtx.WithField("user_id", user.ID).Info("User logged in successfully")
	user.Password = ""
	return token, user, nil
}

// Logout 注销当前 token。重复注销视为成功，其余失败只记录日志，对调用方统一返回 ErrLogoutFailed。
func (s *AuthService) Logout(ctx context.Context, userID uint, tokenID string, expiresAt time.Time) error {
	logCtx := logrus.WithFields(logrus.Fields{"user_id": userID, "jti": tokenID})

	if tokenID == "" {
		logCtx.Warn("Logout failed: token has no id")
		return ErrLogoutFailed
	}
	ttl := expiresAt.Sub(s.now())
	if err := s.tokens.Revoke(ctx, tokenID, ttl); err != nil {
		if errors.Is(err, repository.ErrAlreadyRevoked) {
			logCtx.Info("Token was already revoked")
			return nil
		}
		logCtx.WithError(err).Error("Logout failed: could not revoke token")
		return ErrLogoutFailed
	}

	logCtx.Info("User logged out successfully")
	return nil
}

// Me 返回当前用户及其档案
func (s *AuthService) Me(ctx context.Context, userID uint) (*domain.User, error) {
	return loadUser(ctx, s.userRepo, userID)
}

// IsStaff 判断用户是否可以访问后台
func (s *AuthService) IsStaff(ctx context.Context, userID uint) (bool, error) {
	user, err := loadUser(ctx, s.userRepo, userID)
	if err != nil {
		return false, err
	}
	return user.IsStaff, nil
}

// loadUser 查找用户并清除密码哈希
func loadUser(ctx context.Context, repo repository.UserRepository, userID uint) (*domain.User, error) {
	user, err := repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		logrus.WithError(err).WithField("user_id", userID).Error("Failed to load user")
		return nil, ErrInternalServer
	}
	user.Password = ""
	return user, nil
}

// --- 私有辅助函数 ---

// hashPassword 使用 bcrypt 对密码进行哈希处理
func hashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to generate hash from password: %w", err)
	}
	return string(bytes), nil
}

// checkPassword 验证提供的密码是否与存储的哈希匹配
func checkPassword(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// generateJWT 为指定用户 ID 生成 JWT Token，jti 用于注销
func (s *AuthService) generateJWT(userID uint) (string, error) {
	now := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"jti":     uuid.NewString(),
		"exp":     now.Add(s.jwtExpiry).Unix(),
		"iat":     now.Unix(),
	})
	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}
