package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"krilo/internal/core/apperror"
	"krilo/internal/core/tenant"
	"krilo/pkg/logger"
)

const minPasswordLength = 8

// TokenPair is the login/registration result.
type TokenPair struct {
	AccessToken string    `json:"token"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

// Service provides registration and login against the meta database.
type Service struct {
	repo        Repository
	jwt         *JWTService
	provisioner *tenant.Provisioner
}

// NewService creates the auth service.
func NewService(repo Repository, jwtSvc *JWTService, provisioner *tenant.Provisioner) *Service {
	return &Service{
		repo:        repo,
		jwt:         jwtSvc,
		provisioner: provisioner,
	}
}

// Register provisions a tenant partition, creates the account bound to
// it and returns a token so the client is logged in immediately.
// Provisioning happens first: an account is never left pointing at a
// partition that does not exist.
func (s *Service) Register(ctx context.Context, email, password, businessName string) (*TokenPair, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, apperror.NewValidation("email and password are required")
	}
	if len(password) < minPasswordLength {
		return nil, apperror.NewValidation("password must be at least 8 characters").
			WithDetail("field", "password")
	}
	if businessName == "" {
		businessName = email
	}

	taken, err := s.repo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if taken {
		return nil, apperror.NewConflict("email already exists").WithDetail("email", email)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	t, err := s.provisioner.Provision(ctx, tenant.CreateTenantInput{
		Slug:        slugFromEmail(email),
		DisplayName: businessName,
	})
	if err != nil {
		return nil, fmt.Errorf("provision tenant: %w", err)
	}

	user := NewUser(email, string(hash), t.ID)
	if err := user.Validate(ctx); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	logger.Info(ctx, "user registered", "email", email, "tenant_id", t.ID)

	return s.issueToken(user)
}

// Login verifies credentials and returns a token.
func (s *Service) Login(ctx context.Context, email, password string) (*TokenPair, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, apperror.NewValidation("email and password are required")
	}

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewUnauthorized("invalid credentials")
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		logger.Warn(ctx, "login failed", "email", email)
		return nil, apperror.NewUnauthorized("invalid credentials")
	}

	if err := user.CanLogin(); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateLastLogin(ctx, user.ID); err != nil {
		logger.Warn(ctx, "failed to stamp login", "email", email, "error", err)
	}

	logger.Info(ctx, "user logged in", "email", email, "tenant_id", user.TenantID)

	return s.issueToken(user)
}

// CurrentUser resolves the account behind a validated token subject.
func (s *Service) CurrentUser(ctx context.Context, email string) (*User, error) {
	return s.repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
}

func (s *Service) issueToken(user *User) (*TokenPair, error) {
	token, expiresAt, err := s.jwt.GenerateAccessToken(user.ID.String(), user.TenantID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &TokenPair{AccessToken: token, ExpiresAt: expiresAt}, nil
}

// slugFromEmail derives a URL-safe partition slug from the local part
// of the email, suffixed for uniqueness with a timestamp.
func slugFromEmail(email string) string {
	local := email
	if at := strings.IndexByte(email, '@'); at > 0 {
		local = email[:at]
	}
	var b strings.Builder
	for _, r := range local {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '-' || r == '_':
			b.WriteByte('_')
		}
	}
	slug := b.String()
	if slug == "" {
		slug = "biz"
	}
	if len(slug) > 24 {
		slug = slug[:24]
	}
	return fmt.Sprintf("%s_%d", slug, time.Now().Unix())
}
