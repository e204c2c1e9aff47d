package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/m04kA/SMC-SimpleBooking/internal/service/auth/models"
)

const tokenIssuer = "smc-simple-booking"

// Config учетные данные единственного администратора
type Config struct {
	Username     string
	PasswordHash string // bcrypt
	JWTSecret    string
	TokenTTL     time.Duration
}

// Claims содержимое токена администратора
type Claims struct {
	jwt.RegisteredClaims
}

// Service сервис входа администратора и проверки токенов
type Service struct {
	username     string
	passwordHash []byte
	secret       []byte
	ttl          time.Duration
	now          func() time.Time
	logger       Logger
}

// NewService создает новый экземпляр сервиса авторизации
func NewService(cfg Config, logger Logger) (*Service, error) {
	if cfg.Username == "" || cfg.PasswordHash == "" || cfg.JWTSecret == "" {
		return nil, ErrNotConfigured
	}
	if _, err := bcrypt.Cost([]byte(cfg.PasswordHash)); err != nil {
		return nil, fmt.Errorf("%w: password hash is not a bcrypt hash: %v", ErrNotConfigured, err)
	}

	ttl := cfg.TokenTTL
	if ttl <= 0 {
		ttl = time.Hour
	}

	return &Service{
		username:     cfg.Username,
		passwordHash: []byte(cfg.PasswordHash),
		secret:       []byte(cfg.JWTSecret),
		ttl:          ttl,
		now:          time.Now,
		logger:       logger,
	}, nil
}

// Login проверяет логин и пароль и выдает подписанный HS256 токен
func (s *Service) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	s.logger.Info("Login: attempt for user=%s", req.Username)

	// Хеш сверяется всегда, в том числе при неверном логине
	usernameOK := subtle.ConstantTimeCompare([]byte(req.Username), []byte(s.username)) == 1
	passwordErr := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(req.Password))
	if !usernameOK || passwordErr != nil {
		s.logger.Warn("Login: invalid credentials for user=%s", req.Username)
		return nil, ErrInvalidCredentials
	}

	now := s.now()
	expiresAt := now.Add(s.ttl)
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   s.username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		s.logger.Error("Login: failed to sign token: %v", err)
		return nil, fmt.Errorf("%w: failed to sign token: %v", ErrInternal, err)
	}

	s.logger.Info("Login: user=%s logged in, token expires at %s", req.Username, expiresAt.Format(time.RFC3339))
	return &models.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

// ParseToken проверяет подпись, издателя и срок действия токена
func (s *Service) ParseToken(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, ErrInvalidToken
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%w: token expired", ErrInvalidToken)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid || claims.Subject != s.username {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
