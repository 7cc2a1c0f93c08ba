package authController

import (
	"context"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"strings"
	"time"

	"speedballhub/config"
	"speedballhub/internal/database"
	"speedballhub/internal/logger"
	. "speedballhub/internal/models"

	"golang.org/x/crypto/bcrypt"
)

const (
	SESSION_EXPIRY = 24 * time.Hour

	SessionCookieName = "speedball_session"
)

// AuthController validates the single admin account against a bcrypt hash and
// manages server-side sessions keyed by the cookie token. Tokens are HMAC
// signed with the session secret so forged cookies are rejected without a
// session lookup.
type AuthController struct {
	db           database.DB
	config       config.Config
	passwordHash []byte
	secret       []byte
	log          logger.Logger
}

func New(db database.DB, config config.Config) (*AuthController, error) {
	log := logger.New("AuthController")

	hash, err := bcrypt.GenerateFromPassword([]byte(config.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, log.Err("failed to hash admin password", err)
	}

	return &AuthController{
		db:           db,
		config:       config,
		passwordHash: hash,
		secret:       []byte(config.SessionSecret),
		log:          log,
	}, nil
}

func (ac *AuthController) Login(ctx context.Context, request *LoginRequest) (*Session, error) {
	log := ac.log.Function("Login")

	if request.Email == "" || request.Password == "" {
		return nil, NewValidationError("email and password are required", nil)
	}

	if request.Email != ac.config.AdminEmail {
		return nil, NewAuthenticationError("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword(ac.passwordHash, []byte(request.Password)); err != nil {
		return nil, NewAuthenticationError("invalid credentials")
	}

	raw, err := generateToken()
	if err != nil {
		return nil, log.Err("failed to generate session token", err)
	}
	token := ac.signToken(raw)

	session := &Session{
		Token: token,
		User:  AuthUser{Email: ac.config.AdminEmail},
	}

	if err := database.NewCacheBuilder(ac.db.Cache.Session, sessionKey(token)).
		WithStruct(session).
		WithTTL(SESSION_EXPIRY).
		WithContext(ctx).
		Set(); err != nil {
		return nil, log.Err("failed to store session", err)
	}

	log.Info("Admin logged in", "email", ac.config.AdminEmail)
	return session, nil
}

func (ac *AuthController) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}

	if err := database.NewCacheBuilder(ac.db.Cache.Session, sessionKey(token)).
		WithContext(ctx).
		Delete(); err != nil {
		return ac.log.Function("Logout").Err("failed to destroy session", err)
	}

	return nil
}

// Verify resolves a cookie token to its session, reporting whether the
// request is authenticated. Tokens that fail the signature check never reach
// the session store.
func (ac *AuthController) Verify(ctx context.Context, token string) (*AuthUser, bool) {
	if token == "" || !ac.validToken(token) {
		return nil, false
	}

	var session Session
	found, err := database.NewCacheBuilder(ac.db.Cache.Session, sessionKey(token)).
		WithContext(ctx).
		Get(&session)
	if err != nil {
		ac.log.Function("Verify").Warn("failed to read session", "error", err)
		return nil, false
	}
	if !found {
		return nil, false
	}

	return &session.User, true
}

func sessionKey(token string) string {
	return "session:" + token
}

// signToken appends the base64 HMAC-SHA256 of the random token so the cookie
// value is self-authenticating.
func (ac *AuthController) signToken(raw string) string {
	mac := hmac.New(sha256.New, ac.secret)
	mac.Write([]byte(raw))
	return raw + "." + base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

func (ac *AuthController) validToken(token string) bool {
	raw, sig, found := strings.Cut(token, ".")
	if !found {
		return false
	}

	mac := hmac.New(sha256.New, ac.secret)
	mac.Write([]byte(raw))
	expected := base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(sig), []byte(expected))
}

func generateToken() (string, error) {
	b := make([]byte, 24)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return strings.TrimRight(base64.URLEncoding.EncodeToString(b), "="), nil
}
