package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"flexgestor/internal/caching"
	"flexgestor/internal/common"
	"flexgestor/internal/models"
	"flexgestor/internal/repositories"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/gommon/log"
)

// AuthService issues and verifies tenant-scoped bearer tokens
type AuthService interface {
	Login(ctx context.Context, username, password, cnpj, clientIP string) (*models.TokenResponse, error)
	Signup(ctx context.Context, username, password string) (string, error)
	ValidateToken(ctx context.Context, token string) (common.TenantContext, error)
	Logout(ctx context.Context, tc common.TenantContext) error
}

// TokenClaims represents JWT claims
type TokenClaims struct {
	UserID     int64  `json:"userId"`
	Username   string `json:"username"`
	TenantID   int64  `json:"tenantId"`
	TenantName string `json:"tenantName"`
	jwt.RegisteredClaims
}

// LoginLimits throttles login attempts per client address and environment
type LoginLimits struct {
	Attempts int
	Window   time.Duration
}

type authService struct {
	userRepo  repositories.UserRepository
	cacheSvc  caching.CacheService
	jwtSecret []byte
	tokenTTL  time.Duration
	limits    LoginLimits
	now       func() time.Time
}

// NewAuthService creates a new authentication service. cacheSvc may be nil,
// which disables revocation and login throttling.
func NewAuthService(userRepo repositories.UserRepository, cacheSvc caching.CacheService, jwtSecret string, tokenTTL time.Duration, limits LoginLimits) AuthService {
	return &authService{
		userRepo:  userRepo,
		cacheSvc:  cacheSvc,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  tokenTTL,
		limits:    limits,
		now:       time.Now,
	}
}

func (s *authService) Login(ctx context.Context, username, password, cnpj, clientIP string) (*models.TokenResponse, error) {
	if username == "" || password == "" || cnpj == "" {
		return nil, common.ValidationError("Username, password and environment CNPJ are required.")
	}

	limitKey := fmt.Sprintf("login:%s:%s", clientIP, cnpj)
	if s.loginThrottled(ctx, limitKey) {
		return nil, common.NewError(common.KindRateLimited, "Too many login attempts. Try again later.", nil)
	}

	result, err := s.userRepo.Login(ctx, username, password, cnpj)
	if err != nil {
		return nil, common.InternalError("Failed to log in.", err)
	}
	if result == nil {
		return nil, common.NewError(common.KindUnauthenticated, "Invalid credentials or access not allowed for this environment.", nil)
	}

	if s.cacheSvc != nil {
		if err := s.cacheSvc.ResetRateLimit(ctx, limitKey); err != nil {
			log.Warnf("reset login rate limit: %v", err)
		}
	}

	return s.generateToken(result)
}

// loginThrottled fails open: a cache outage never blocks logins
func (s *authService) loginThrottled(ctx context.Context, key string) bool {
	if s.cacheSvc == nil || s.limits.Attempts <= 0 {
		return false
	}
	limited, err := s.cacheSvc.IsRateLimited(ctx, key, s.limits.Attempts, s.limits.Window)
	if err != nil {
		log.Warnf("login rate limit check failed: %v", err)
		return false
	}
	return limited
}

// generateToken signs an HS256 token carrying the user and environment identity
func (s *authService) generateToken(result *models.LoginResult) (*models.TokenResponse, error) {
	now := s.now()
	expiresAt := now.Add(s.tokenTTL)

	claims := TokenClaims{
		UserID:     result.UserID,
		Username:   result.Username,
		TenantID:   result.EnvironmentID,
		TenantName: result.EnvironmentName,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprintf("%d", result.UserID),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return nil, common.InternalError("Failed to sign token.", err)
	}

	return &models.TokenResponse{
		Token:     signed,
		TokenType: "Bearer",
		ExpiresAt: expiresAt,
	}, nil
}

func (s *authService) Signup(ctx context.Context, username, password string) (string, error) {
	if username == "" || password == "" {
		return "", common.ValidationError("Username and password are required.")
	}

	status, err := s.userRepo.Signup(ctx, username, password)
	if err != nil {
		return "", common.InternalError("Failed to sign up.", err)
	}
	if err := requireSuccess(status); err != nil {
		return "", err
	}
	return status.Message, nil
}

// ValidateToken verifies signature, expiry (required), revocation and the
// presence of the tenant claim. Every failure is an InvalidToken error.
func (s *authService) ValidateToken(ctx context.Context, tokenString string) (common.TenantContext, error) {
	claims := &TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now), jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return common.TenantContext{}, common.NewError(common.KindInvalidToken, "Invalid or expired token.", nil)
	}

	if claims.TenantID == 0 {
		return common.TenantContext{}, common.NewError(common.KindInvalidToken, "Token has no environment.", nil)
	}

	if s.cacheSvc != nil && claims.ID != "" {
		revoked, err := s.cacheSvc.IsTokenRevoked(ctx, claims.ID)
		if err != nil {
			log.Warnf("token revocation check failed: %v", err)
		} else if revoked {
			return common.TenantContext{}, common.NewError(common.KindInvalidToken, "Token has been revoked.", nil)
		}
	}

	tc := common.TenantContext{
		UserID:     claims.UserID,
		Username:   claims.Username,
		TenantID:   claims.TenantID,
		TenantName: claims.TenantName,
		TokenID:    claims.ID,
	}
	if claims.ExpiresAt != nil {
		tc.ExpiresAt = claims.ExpiresAt.Time
	}
	return tc, nil
}

// Logout denies the caller's token until it would have expired anyway
func (s *authService) Logout(ctx context.Context, tc common.TenantContext) error {
	if s.cacheSvc == nil {
		return common.InternalError("Token revocation is unavailable.", errors.New("no cache configured"))
	}
	if tc.TokenID == "" {
		return common.NewError(common.KindInvalidToken, "Token cannot be revoked.", nil)
	}
	if err := s.cacheSvc.RevokeToken(ctx, tc.TokenID, tc.ExpiresAt.Sub(s.now())); err != nil {
		return common.InternalError("Failed to revoke token.", err)
	}
	return nil
}
