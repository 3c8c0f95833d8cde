package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/campus-labs/uni-enroll-api/internal/models"
	"github.com/campus-labs/uni-enroll-api/pkg/config"
	appErrors "github.com/campus-labs/uni-enroll-api/pkg/errors"
)

// AuthConfig defines configuration for authentication flows.
type AuthConfig struct {
	TokenSecret string
	TokenExpiry time.Duration
	Issuer      string
}

// AuthService authenticates students against the roster and admins against
// the fixed accounts from configuration.
type AuthService struct {
	roster    *Roster
	admins    []config.AdminAccount
	sessions  *SessionManager
	validator *validator.Validate
	logger    *zap.Logger
	config    AuthConfig
}

// NewAuthService constructs an AuthService.
func NewAuthService(roster *Roster, admins []config.AdminAccount, sessions *SessionManager, validate *validator.Validate, logger *zap.Logger, cfg AuthConfig) *AuthService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if sessions == nil {
		sessions = NewSessionManager()
	}
	if cfg.TokenExpiry <= 0 {
		cfg.TokenExpiry = 24 * time.Hour
	}
	return &AuthService{roster: roster, admins: admins, sessions: sessions, validator: validate, logger: logger, config: cfg}
}

// Sessions exposes the session manager.
func (s *AuthService) Sessions() *SessionManager {
	return s.sessions
}

// LoginStudent authenticates a student and starts a session.
func (s *AuthService) LoginStudent(ctx context.Context, req models.StudentLoginRequest) (*models.Session, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid login payload")
	}

	student, ok := s.roster.FindByEmail(req.Email)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrAuthentication, "invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(student.PasswordHash), []byte(req.Password)); err != nil {
		return nil, appErrors.Clone(appErrors.ErrAuthentication, "invalid email or password")
	}

	session, err := s.startSession(student.ID, models.RoleStudent, student.Name)
	if err != nil {
		return nil, err
	}
	s.logger.Info("student logged in", zap.String("student_id", student.ID))
	return session, nil
}

// LoginAdmin authenticates one of the fixed admin accounts.
func (s *AuthService) LoginAdmin(ctx context.Context, req models.AdminLoginRequest) (*models.Session, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid login payload")
	}

	for _, admin := range s.admins {
		if admin.ID != req.AdminID {
			continue
		}
		if admin.Password != req.Password {
			break
		}
		session, err := s.startSession(admin.ID, models.RoleAdmin, admin.Name)
		if err != nil {
			return nil, err
		}
		s.logger.Info("admin logged in", zap.String("admin_id", admin.ID))
		return session, nil
	}

	return nil, appErrors.Clone(appErrors.ErrAuthentication, "invalid admin credentials")
}

// Logout ends the active session.
func (s *AuthService) Logout(ctx context.Context) error {
	if !s.sessions.End() {
		return appErrors.Clone(appErrors.ErrUnauthorized, "no active session")
	}
	return nil
}

// ValidateToken parses and validates an access token returning the claims.
func (s *AuthService) ValidateToken(tokenString string) (*models.JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.TokenSecret), nil
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, "invalid token")
	}

	claims, ok := token.Claims.(*models.JWTClaims)
	if !ok || !token.Valid {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid token claims")
	}

	return claims, nil
}

func (s *AuthService) startSession(userID string, role models.UserRole, name string) (*models.Session, error) {
	issuedAt := time.Now().UTC()
	expiresAt := issuedAt.Add(s.config.TokenExpiry)

	claims := &models.JWTClaims{
		UserID: userID,
		Role:   role,
		Name:   name,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.config.Issuer,
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			NotBefore: jwt.NewNumericDate(issuedAt),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.config.TokenSecret))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to sign token")
	}

	session := &models.Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		Role:      role,
		Name:      name,
		Token:     signed,
		IssuedAt:  issuedAt,
		ExpiresAt: expiresAt,
	}
	s.sessions.Start(session)
	return session, nil
}
