// ABOUTME: Mock login session carried in a signed cookie
// ABOUTME: Holds display data only; no credential is ever checked

package session

import (
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// CookieName is the cookie that stores the signed-in user.
const CookieName = "tymexai-user"

// Session errors
var (
	ErrNoSession          = errors.New("no session")
	ErrInvalidSession     = errors.New("invalid session")
	ErrInvalidCredentials = errors.New("email is required")
)

// Login methods, used as metric labels.
const (
	MethodPassword  = "password"
	MethodMicrosoft = "microsoft"
)

// User is the display data for the signed-in user.
type User struct {
	ID     string
	Name   string
	Email  string
	Avatar string
}

// Manager issues and reads session cookies.
type Manager struct {
	secret []byte
	ttl    time.Duration
	secure bool
	now    func() time.Time
	logger *slog.Logger
}

// NewManager creates a Manager. An empty secret is replaced with a random
// one, so sessions do not survive a restart.
func NewManager(secret string, ttl time.Duration, secure bool) (*Manager, error) {
	logger := slog.Default().With("component", "session")

	key := []byte(secret)
	if len(key) == 0 {
		key = make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			return nil, fmt.Errorf("generating session secret: %w", err)
		}
		logger.Warn("no session secret configured, generated an ephemeral one")
	}

	return &Manager{
		secret: key,
		ttl:    ttl,
		secure: secure,
		now:    time.Now,
		logger: logger,
	}, nil
}

// Login accepts any non-blank email. The password is ignored.
func (m *Manager) Login(email, _ string) (User, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return User{}, ErrInvalidCredentials
	}
	return User{
		ID:    uuid.NewString(),
		Name:  "John Doe",
		Email: email,
	}, nil
}

// LoginWithMicrosoft returns the fixed Microsoft account.
func (m *Manager) LoginWithMicrosoft() User {
	return User{
		ID:    uuid.NewString(),
		Name:  "John Smith",
		Email: "john.smith@company.com",
	}
}

// Issue writes the session cookie for u.
func (m *Manager) Issue(w http.ResponseWriter, u User) error {
	token, err := m.sign(u)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(m.ttl.Seconds()),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
	m.logger.Info("session issued", "email", u.Email)
	return nil
}

// Clear removes the session cookie.
func (m *Manager) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// FromRequest reads the user from the session cookie.
func (m *Manager) FromRequest(r *http.Request) (User, error) {
	c, err := r.Cookie(CookieName)
	if err != nil || c.Value == "" {
		return User{}, ErrNoSession
	}
	return m.verify(c.Value)
}

func (m *Manager) sign(u User) (string, error) {
	now := m.now()
	claims := jwt.MapClaims{
		"sub":    u.ID,
		"name":   u.Name,
		"email":  u.Email,
		"avatar": u.Avatar,
		"iat":    now.Unix(),
		"exp":    now.Add(m.ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("signing session: %w", err)
	}
	return signed, nil
}

func (m *Manager) verify(tokenString string) (User, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(m.now))
	if err != nil {
		return User{}, fmt.Errorf("%w: %v", ErrInvalidSession, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return User{}, ErrInvalidSession
	}

	u := User{}
	u.ID, _ = claims["sub"].(string)
	u.Name, _ = claims["name"].(string)
	u.Email, _ = claims["email"].(string)
	u.Avatar, _ = claims["avatar"].(string)
	if u.Email == "" {
		return User{}, fmt.Errorf("%w: missing email", ErrInvalidSession)
	}
	return u, nil
}
