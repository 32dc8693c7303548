package auth

import (
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	pkgauth "github.com/smartshoplabs/smartshop-backend/pkg/auth"
	"github.com/smartshoplabs/smartshop-backend/pkg/config"
	pkgerrors "github.com/smartshoplabs/smartshop-backend/pkg/errors"
)

// Session is the result of a successful login.
type Session struct {
	Email       string    `json:"email"`
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// Service validates the single demo credential pair and mints access
// tokens. The plaintext password from config is hashed once at startup
// so login always goes through the bcrypt comparison.
type Service struct {
	email        string
	passwordHash []byte
	jwtCfg       config.JWTConfig
	now          func() time.Time
}

func NewService(authCfg config.AuthConfig, jwtCfg config.JWTConfig) (*Service, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(authCfg.DemoPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash demo password")
	}
	return &Service{
		email:        strings.ToLower(strings.TrimSpace(authCfg.DemoEmail)),
		passwordHash: hash,
		jwtCfg:       jwtCfg,
		now:          time.Now,
	}, nil
}

// Login checks the credentials against the configured demo account and
// returns a signed session token.
func (s *Service) Login(email, password string) (Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email != s.email {
		return Session{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password)); err != nil {
		return Session{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid email or password")
	}

	now := s.now()
	token, err := pkgauth.MintAccessToken(s.jwtCfg, now, email)
	if err != nil {
		return Session{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint access token")
	}
	return Session{
		Email:       email,
		AccessToken: token,
		ExpiresAt:   now.Add(s.jwtCfg.Expiration()).UTC(),
	}, nil
}
