package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ayoolabs/storefront-backend/internal/accounts"
	pkgauth "github.com/ayoolabs/storefront-backend/pkg/auth"
	"github.com/ayoolabs/storefront-backend/pkg/auth/session"
	"github.com/ayoolabs/storefront-backend/pkg/config"
	"github.com/ayoolabs/storefront-backend/pkg/db"
	"github.com/ayoolabs/storefront-backend/pkg/db/models"
	pkgerrors "github.com/ayoolabs/storefront-backend/pkg/errors"
	"github.com/ayoolabs/storefront-backend/pkg/logger"
	"github.com/ayoolabs/storefront-backend/pkg/security"
)

const invalidCredentialsMessage = "invalid credentials"

// Service defines the behavior needed by the auth controller.
type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*SessionResponse, error)
	Login(ctx context.Context, req LoginRequest) (*SessionResponse, error)
	Refresh(ctx context.Context, req RefreshRequest) (*SessionResponse, error)
	Logout(ctx context.Context, accessID string) error
	RequestPasswordReset(ctx context.Context, req PasswordResetRequest) error
}

type merchantRepository interface {
	Create(ctx context.Context, dto accounts.CreateMerchantDTO) (*models.Merchant, error)
	FindByEmail(ctx context.Context, email string) (*models.Merchant, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Merchant, error)
	UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
}

type storeResolver interface {
	Resolve(ctx context.Context, merchantID uuid.UUID) (uuid.UUID, bool, error)
}

type sessionManager interface {
	Generate(ctx context.Context, accessID string) (string, error)
	Rotate(ctx context.Context, oldAccessID, provided string) (string, string, error)
	Revoke(ctx context.Context, accessID string) error
}

// ServiceParams bundles the dependencies required to build an auth service.
type ServiceParams struct {
	Merchants      merchantRepository
	Resolver       storeResolver
	SessionManager sessionManager
	JWTConfig      config.JWTConfig
	PasswordConfig config.PasswordConfig
	Logger         *logger.Logger
}

type service struct {
	merchants   merchantRepository
	resolver    storeResolver
	session     sessionManager
	jwtCfg      config.JWTConfig
	passwordCfg config.PasswordConfig
	logg        *logger.Logger
}

// NewService constructs an auth service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Merchants == nil {
		return nil, fmt.Errorf("merchant repository is required")
	}
	if params.Resolver == nil {
		return nil, fmt.Errorf("store resolver is required")
	}
	if params.SessionManager == nil {
		return nil, fmt.Errorf("session manager is required")
	}
	return &service{
		merchants:   params.Merchants,
		resolver:    params.Resolver,
		session:     params.SessionManager,
		jwtCfg:      params.JWTConfig,
		passwordCfg: params.PasswordConfig,
		logg:        params.Logger,
	}, nil
}

// Register opens a merchant account and signs the caller in.
func (s *service) Register(ctx context.Context, req RegisterRequest) (*SessionResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}
	firstName := strings.TrimSpace(req.FirstName)
	if firstName == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "first_name is required")
	}

	if _, err := s.merchants.FindByEmail(ctx, email); err == nil {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check merchant email")
	}

	passwordHash, err := security.HashPassword(req.Password, s.passwordCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	merchant, err := s.merchants.Create(ctx, accounts.CreateMerchantDTO{
		Email:         email,
		PasswordHash:  passwordHash,
		FirstName:     firstName,
		LastName:      strings.TrimSpace(req.LastName),
		ContactNumber: req.ContactNumber,
	})
	if err != nil {
		// Two racing registrations can both pass the email check; the
		// loser trips the unique index instead.
		if db.IsUniqueViolation(err) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create merchant")
	}

	return s.issueSession(ctx, merchant)
}

// Login authenticates the merchant and issues a token pair.
func (s *service) Login(ctx context.Context, req LoginRequest) (*SessionResponse, error) {
	merchant, err := s.authenticate(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if err := s.merchants.UpdateLastLogin(ctx, merchant.ID, now); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update last login")
	}
	merchant.LastLoginAt = &now

	return s.issueSession(ctx, merchant)
}

// Refresh rotates the session tied to the presented token pair. The
// access token may already be expired; only its signature must hold.
func (s *service) Refresh(ctx context.Context, req RefreshRequest) (*SessionResponse, error) {
	claims, err := pkgauth.ParseAccessTokenAllowExpired(s.jwtCfg, req.AccessToken)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid session")
	}

	newAccessID, newRefresh, err := s.session.Rotate(ctx, claims.ID, req.RefreshToken)
	if err != nil {
		if errors.Is(err, session.ErrInvalidRefreshToken) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid session")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "rotate session")
	}

	merchant, err := s.merchants.FindByID(ctx, claims.MerchantID)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid session")
	}
	if !merchant.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid session")
	}

	accessToken, err := pkgauth.MintAccessToken(s.jwtCfg, time.Now().UTC(), pkgauth.AccessTokenPayload{
		MerchantID: merchant.ID,
		Email:      merchant.Email,
		JTI:        newAccessID,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint jwt")
	}

	return s.sessionResponse(ctx, merchant, accessToken, newRefresh)
}

// Logout revokes the refresh session behind the access identifier.
func (s *service) Logout(ctx context.Context, accessID string) error {
	if strings.TrimSpace(accessID) == "" {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid session")
	}
	if err := s.session.Revoke(ctx, accessID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "revoke session")
	}
	return nil
}

// RequestPasswordReset accepts any email without revealing whether an
// account exists behind it.
func (s *service) RequestPasswordReset(ctx context.Context, req PasswordResetRequest) error {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}

	if _, err := s.merchants.FindByEmail(ctx, email); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Same outcome as the happy path.
			return nil
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup merchant")
	}

	if s.logg != nil {
		s.logg.Info(ctx, "password reset requested")
	}
	return nil
}

func (s *service) issueSession(ctx context.Context, merchant *models.Merchant) (*SessionResponse, error) {
	accessID := session.NewAccessID()
	accessToken, err := pkgauth.MintAccessToken(s.jwtCfg, time.Now().UTC(), pkgauth.AccessTokenPayload{
		MerchantID: merchant.ID,
		Email:      merchant.Email,
		JTI:        accessID,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint jwt")
	}

	refreshToken, err := s.session.Generate(ctx, accessID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store refresh token")
	}

	return s.sessionResponse(ctx, merchant, accessToken, refreshToken)
}

func (s *service) sessionResponse(ctx context.Context, merchant *models.Merchant, accessToken, refreshToken string) (*SessionResponse, error) {
	_, onboarded, err := s.resolver.Resolve(ctx, merchant.ID)
	if err != nil {
		return nil, err
	}
	return &SessionResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		Merchant:     accounts.FromModel(merchant),
		Onboarded:    onboarded,
	}, nil
}

func (s *service) authenticate(ctx context.Context, email, password string) (*models.Merchant, error) {
	input := strings.TrimSpace(email)
	if input == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}
	merchant, err := s.merchants.FindByEmail(ctx, strings.ToLower(input))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup merchant")
	}

	valid, err := security.VerifyPassword(password, merchant.PasswordHash)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify password")
	}
	if !valid || !merchant.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}
	return merchant, nil
}
