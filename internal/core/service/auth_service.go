package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/drivehq/drive-api/internal/core/domain"
	"github.com/drivehq/drive-api/internal/core/ports"
	"github.com/drivehq/drive-api/internal/pkg/token"
)

// Provider-token verification policy. Lenient preserves the historical
// behaviour: a provider token that fails verification for any reason other
// than a subject mismatch is logged and ignored. Strict rejects instead.
const (
	ProviderTokenLenient = "lenient"
	ProviderTokenStrict  = "strict"
)

// AuthService implements token exchange, registration and login.
type AuthService struct {
	repo           ports.UserRepository
	jwtSecret      string
	providerSecret string
	tokenTTL       time.Duration
	providerMode   string
	log            zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, jwtSecret, providerSecret string, tokenTTL time.Duration, providerMode string, log zerolog.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 7 * 24 * time.Hour
	}
	if providerMode != ProviderTokenStrict {
		providerMode = ProviderTokenLenient
	}
	return &AuthService{
		repo:           repo,
		jwtSecret:      jwtSecret,
		providerSecret: providerSecret,
		tokenTTL:       tokenTTL,
		providerMode:   providerMode,
		log:            log,
	}
}

// Exchange accepts an identity claim produced by the client's provider
// session, optionally verifies the provider token, upserts the user record
// keyed by email and issues a first-party bearer token.
func (s *AuthService) Exchange(ctx context.Context, in ports.ExchangeInput) (*ports.AuthResult, error) {
	if in.UserID == "" || in.Email == "" {
		return nil, domain.ErrMissingClaimFields
	}

	if in.ProviderToken != "" && s.providerSecret != "" {
		if err := s.verifyProviderToken(in.ProviderToken, in.UserID); err != nil {
			return nil, err
		}
	}

	user, err := s.resolveUser(ctx, in)
	if err != nil {
		return nil, err
	}

	signed, err := s.issueToken(user)
	if err != nil {
		return nil, err
	}

	return &ports.AuthResult{Token: signed, User: user}, nil
}

// verifyProviderToken checks the provider token's signature and expiry and
// that its embedded subject matches the claimed external user ID. A subject
// mismatch always fails; any other verification error fails only in strict
// mode.
func (s *AuthService) verifyProviderToken(raw, userID string) error {
	claims, err := token.NewVerifier(s.providerSecret).Verify(raw)
	if err != nil {
		if s.providerMode == ProviderTokenStrict {
			return domain.ErrInvalidToken
		}
		s.log.Warn().Err(err).Msg("provider token verification failed, continuing")
		return nil
	}

	if token.Subject(claims) != userID {
		return domain.ErrProviderTokenMismatch
	}
	return nil
}

// resolveUser finds the user by email, creating it on first sight and
// applying a last-write-wins profile update when the claim carries changed
// display fields. Re-applying identical values issues no write.
func (s *AuthService) resolveUser(ctx context.Context, in ports.ExchangeInput) (*domain.User, error) {
	user, err := s.repo.FindByEmail(ctx, in.Email)
	switch {
	case err == nil:
		return s.refreshProfile(ctx, user, in)
	case errors.Is(err, domain.ErrUserNotFound):
		// first sight: the external identity supplies the persistent ID
	default:
		return nil, err
	}

	name := in.Name
	if name == "" {
		name = in.Email
	}
	now := time.Now().UTC()
	created, err := s.repo.Create(ctx, &domain.User{
		ID:        in.UserID,
		Email:     in.Email,
		Name:      name,
		Image:     in.Image,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err == nil {
		return created, nil
	}
	if !errors.Is(err, domain.ErrUserExists) {
		return nil, err
	}

	// Lost a concurrent first-sight race; the uniqueness constraint is the
	// backstop. Retry as an update.
	user, err = s.repo.FindByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	return s.refreshProfile(ctx, user, in)
}

func (s *AuthService) refreshProfile(ctx context.Context, user *domain.User, in ports.ExchangeInput) (*domain.User, error) {
	name := user.Name
	if in.Name != "" {
		name = in.Name
	}
	image := user.Image
	if in.Image != "" {
		image = in.Image
	}
	if name == user.Name && image == user.Image {
		return user, nil
	}
	return s.repo.UpdateProfile(ctx, user.ID, name, image)
}

func (s *AuthService) Register(ctx context.Context, name, email, password string) (*ports.AuthResult, error) {
	if name == "" || email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return nil, domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user, err := s.repo.Create(ctx, &domain.User{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, err
	}

	signed, err := s.issueToken(user)
	if err != nil {
		return nil, err
	}
	return &ports.AuthResult{Token: signed, User: user}, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	signed, err := s.issueToken(user)
	if err != nil {
		return nil, err
	}
	return &ports.AuthResult{Token: signed, User: user}, nil
}

func (s *AuthService) Me(ctx context.Context, id string) (*domain.User, error) {
	return s.repo.FindByID(ctx, id)
}

// issueToken signs a bearer token with the first-party secret, falling back
// to the provider secret. Absence of both is a configuration fault.
func (s *AuthService) issueToken(user *domain.User) (string, error) {
	secret := s.jwtSecret
	if secret == "" {
		secret = s.providerSecret
	}
	if secret == "" {
		return "", domain.ErrNoSigningSecret
	}
	return token.Sign(user.ID, user.Email, user.Name, user.Image, []byte(secret), s.tokenTTL)
}
