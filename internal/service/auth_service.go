package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"digiplot/internal/domain"
	"digiplot/internal/repository"
	"digiplot/internal/store"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Demo credentials. There is no real credential store.
const (
	DemoTenantEmail   = "tenant@digiplot.co.ke"
	DemoLandlordEmail = "landlord@digiplot.co.ke"
	DemoPassword      = "password123"

	sessionKeyPrefix  = "session:"
	DefaultSessionTTL = 24 * time.Hour
)

// ErrInvalidCredentials is returned by Login for an unknown email/password pair.
var ErrInvalidCredentials = errors.New("invalid email or password")

// AuthService is the session pseudo-auth: hardcoded demo users, sessions in a KV.
type AuthService interface {
	Login(ctx context.Context, email, password string) (*domain.Session, error)
	// Session returns nil when the token is unknown or expired.
	Session(ctx context.Context, token string) (*domain.Session, error)
	Logout(ctx context.Context, token string) error
}

type authService struct {
	store  *repository.Store
	kv     store.KV
	ttl    time.Duration
	logger *zap.Logger
}

func NewAuthService(st *repository.Store, kv store.KV, ttl time.Duration, logger *zap.Logger) AuthService {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &authService{store: st, kv: kv, ttl: ttl, logger: logger}
}

func (s *authService) Login(ctx context.Context, email, password string) (*domain.Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, invalidf("email and password are required")
	}
	if password != DemoPassword {
		return nil, ErrInvalidCredentials
	}

	var sess *domain.Session
	switch email {
	case DemoLandlordEmail:
		l, err := s.store.Landlords.GetLandlordByEmail(ctx, email)
		if err != nil {
			return nil, s.profileErr(email, err)
		}
		sess = &domain.Session{ID: l.ID, Name: l.Name, Email: l.Email, PhoneNumber: l.PhoneNumber, UserType: domain.UserLandlord}
	case DemoTenantEmail:
		t, err := s.store.Tenants.GetTenantByEmail(ctx, email)
		if err != nil {
			return nil, s.profileErr(email, err)
		}
		sess = &domain.Session{ID: t.ID, Name: t.Name, Email: t.Email, PhoneNumber: t.PhoneNumber, UserType: domain.UserTenant}
	default:
		return nil, ErrInvalidCredentials
	}

	sess.Token = uuid.NewString()
	b, err := json.Marshal(sess)
	if err != nil {
		return nil, fmt.Errorf("failed to encode session: %w", err)
	}
	if err := s.kv.Set(ctx, sessionKeyPrefix+sess.Token, string(b), s.ttl); err != nil {
		s.logger.Error("Store session failed", zap.String("email", email), zap.Error(err))
		return nil, fmt.Errorf("failed to store session: %w", err)
	}
	s.logger.Info("User logged in", zap.String("user_type", string(sess.UserType)), zap.Int64("user_id", sess.ID))
	return sess, nil
}

func (s *authService) profileErr(email string, err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		s.logger.Warn("Demo profile missing", zap.String("email", email))
		return ErrInvalidCredentials
	}
	return fmt.Errorf("failed to load profile: %w", err)
}

func (s *authService) Session(ctx context.Context, token string) (*domain.Session, error) {
	if token == "" {
		return nil, nil
	}
	raw, err := s.kv.Get(ctx, sessionKeyPrefix+token)
	if errors.Is(err, store.ErrMiss) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session: %w", err)
	}
	var sess domain.Session
	if err := json.Unmarshal([]byte(raw), &sess); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}
	return &sess, nil
}

func (s *authService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.kv.Delete(ctx, sessionKeyPrefix+token); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// CanAccess is the route allow-list: /landlord... needs a landlord,
// /tenant... needs a tenant, everything else is open.
func CanAccess(userType domain.UserType, path string) bool {
	switch {
	case hasSegmentPrefix(path, "/landlord"):
		return userType == domain.UserLandlord
	case hasSegmentPrefix(path, "/tenant"):
		return userType == domain.UserTenant
	}
	return true
}

func hasSegmentPrefix(path, prefix string) bool {
	if !strings.HasPrefix(path, prefix) {
		return false
	}
	rest := path[len(prefix):]
	return rest == "" || rest[0] == '/'
}
