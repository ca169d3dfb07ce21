package session

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tradevista/admin-console/internal/models"
	"github.com/tradevista/admin-console/pkg/config"
)

// Manager issues and resolves session cookies. The cookie is a signed JWT
// carrying identity claims only; the token pair lives in the Store. Login and
// logout are the only writers of session state.
type Manager struct {
	store  Store
	cfg    config.SessionConfig
	logger *zap.Logger
}

// NewManager constructs a session manager.
func NewManager(store Store, cfg config.SessionConfig, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{store: store, cfg: cfg, logger: logger}
}

// Issue creates a session record for a freshly authenticated user and sets
// the signed cookie on the response.
func (m *Manager) Issue(c *gin.Context, sess *models.Session) error {
	if sess.SID == "" {
		sess.SID = uuid.NewString()
	}
	sess.CreatedAt = time.Now().UTC()

	if err := m.store.Save(c.Request.Context(), sess, m.cfg.TTL); err != nil {
		return err
	}

	claims := models.SessionClaims{
		SID:    sess.SID,
		UserID: sess.UserID,
		Name:   sess.Name,
		Role:   sess.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(sess.CreatedAt),
			ExpiresAt: jwt.NewNumericDate(sess.CreatedAt.Add(m.cfg.TTL)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(m.cfg.Secret))
	if err != nil {
		return err
	}

	m.setCookie(c, signed, int(m.cfg.TTL.Seconds()))
	return nil
}

// Current resolves the session for the incoming request, verifying the cookie
// signature and loading the server-side record.
func (m *Manager) Current(c *gin.Context) (*models.Session, error) {
	raw, err := c.Cookie(m.cfg.CookieName)
	if err != nil || raw == "" {
		return nil, ErrNoSession
	}

	claims := &models.SessionClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(m.cfg.Secret), nil
	})
	if err != nil || !token.Valid || claims.SID == "" {
		return nil, ErrNoSession
	}

	sess, err := m.store.Find(c.Request.Context(), claims.SID)
	if err != nil {
		return nil, err
	}
	if sess.UserID != claims.UserID {
		return nil, ErrNoSession
	}
	return sess, nil
}

// Clear destroys the current session and expires the cookie.
func (m *Manager) Clear(c *gin.Context) {
	if sess, err := m.Current(c); err == nil {
		if err := m.store.Delete(c.Request.Context(), sess.SID); err != nil {
			m.logger.Warn("failed to delete session record", zap.String("sid", sess.SID), zap.Error(err))
		}
	}
	m.setCookie(c, "", -1)
}

// Flash queues a toast for the session's next rendered page.
func (m *Manager) Flash(c *gin.Context, sid, level, message string) {
	if sid == "" {
		return
	}
	if err := m.store.PushFlash(c.Request.Context(), sid, models.Flash{Level: level, Message: message}); err != nil {
		m.logger.Warn("failed to queue flash", zap.String("sid", sid), zap.Error(err))
	}
}

// TakeFlashes drains queued toasts for rendering.
func (m *Manager) TakeFlashes(c *gin.Context, sid string) []models.Flash {
	if sid == "" {
		return nil
	}
	flashes, err := m.store.PopFlashes(c.Request.Context(), sid)
	if err != nil {
		m.logger.Warn("failed to read flashes", zap.String("sid", sid), zap.Error(err))
		return nil
	}
	return flashes
}

func (m *Manager) setCookie(c *gin.Context, value string, maxAge int) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     m.cfg.CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		Secure:   m.cfg.Secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
