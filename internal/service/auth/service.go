// Package auth signs users in with a one-time code sent to their phone and
// resolves bearer tokens back to users.
package auth

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"fashion-storefront/internal/domain"
	"fashion-storefront/internal/logging"
	otprepo "fashion-storefront/internal/repository/otp"
	tokenrepo "fashion-storefront/internal/repository/token"
	userrepo "fashion-storefront/internal/repository/user"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrInvalidCode covers wrong, expired and exhausted codes alike.
	ErrInvalidCode = errors.New("invalid or expired code")
	// ErrInvalidToken indicates the provided token could not be validated.
	ErrInvalidToken = errors.New("invalid token")
)

const (
	codeDigits  = 6
	maxAttempts = 5
)

type Service struct {
	users     userrepo.Repository
	codes     otprepo.Repository
	tokens    *tokenManager
	sender    CodeSender
	admins    map[string]struct{}
	codeTTL   time.Duration
	accessTTL time.Duration
	logger    *zap.Logger
}

func New(users userrepo.Repository, codes otprepo.Repository, tokens tokenrepo.Repository, sender CodeSender, adminPhones []string, codeTTL time.Duration, logger *zap.Logger) *Service {
	admins := make(map[string]struct{}, len(adminPhones))
	for _, p := range adminPhones {
		if n, err := NormalizePhone(p); err == nil {
			admins[n] = struct{}{}
		}
	}
	return &Service{
		users:     users,
		codes:     codes,
		tokens:    newTokenManager(tokens),
		sender:    sender,
		admins:    admins,
		codeTTL:   codeTTL,
		accessTTL: 30 * 24 * time.Hour,
		logger:    logging.OrNop(logger),
	}
}

// NormalizePhone strips spaces and dashes and checks for an optional leading
// plus followed by 10 to 15 digits.
func NormalizePhone(phone string) (string, error) {
	p := strings.NewReplacer(" ", "", "-", "", "(", "", ")", "").Replace(strings.TrimSpace(phone))
	digits := strings.TrimPrefix(p, "+")
	if len(digits) < 10 || len(digits) > 15 {
		return "", domain.Invalid("phone", "must have 10 to 15 digits")
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return "", domain.Invalid("phone", "must contain digits only")
		}
	}
	return p, nil
}

// RequestCode issues a fresh code for phone, replacing any pending one.
func (s *Service) RequestCode(ctx context.Context, phone string) error {
	phone, err := NormalizePhone(phone)
	if err != nil {
		return err
	}
	code, err := randomCode()
	if err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := s.codes.Put(ctx, otprepo.Code{Phone: phone, CodeHash: string(hash), ExpiresAt: time.Now().Add(s.codeTTL)}); err != nil {
		return fmt.Errorf("store code: %w", err)
	}
	if err := s.sender.Send(ctx, phone, code); err != nil {
		return fmt.Errorf("send code: %w", err)
	}
	return nil
}

// VerifyCode consumes a valid code, creating the user on first sign-in, and
// returns an access token.
func (s *Service) VerifyCode(ctx context.Context, phone, code string) (*domain.User, string, time.Time, error) {
	phone, err := NormalizePhone(phone)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	code = strings.TrimSpace(code)
	if len(code) != codeDigits {
		return nil, "", time.Time{}, ErrInvalidCode
	}

	pending, err := s.codes.Get(ctx, phone)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, "", time.Time{}, ErrInvalidCode
		}
		return nil, "", time.Time{}, err
	}
	if time.Now().After(pending.ExpiresAt) || pending.Attempts >= maxAttempts {
		_ = s.codes.Delete(ctx, phone)
		return nil, "", time.Time{}, ErrInvalidCode
	}
	if err := bcrypt.CompareHashAndPassword([]byte(pending.CodeHash), []byte(code)); err != nil {
		if err := s.codes.IncrementAttempts(ctx, phone); err != nil {
			s.logger.Warn("auth: count failed attempt", zap.String("phone", phone), zap.Error(err))
		}
		return nil, "", time.Time{}, ErrInvalidCode
	}
	if err := s.codes.Delete(ctx, phone); err != nil {
		s.logger.Warn("auth: delete used code", zap.String("phone", phone), zap.Error(err))
	}

	_, admin := s.admins[phone]
	user, err := s.users.GetOrCreateByPhone(ctx, phone, admin)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	token, expiresAt, err := s.tokens.Issue(ctx, user.ID, s.accessTTL)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	s.logger.Info("auth: signed in", zap.String("user_id", user.ID), zap.Bool("admin", user.IsAdmin))
	return user, token, expiresAt, nil
}

// LookupByToken resolves a bearer token to its user.
func (s *Service) LookupByToken(ctx context.Context, token string) (*domain.User, error) {
	userID, ok := s.tokens.Validate(ctx, token)
	if !ok {
		return nil, ErrInvalidToken
	}
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	return user, nil
}

func (s *Service) SignOut(ctx context.Context, token string) error {
	if err := s.tokens.Revoke(ctx, token); err != nil && !errors.Is(err, domain.ErrNotFound) {
		return err
	}
	return nil
}

func randomCode() (string, error) {
	max := big.NewInt(1_000_000)
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
