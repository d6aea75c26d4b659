package web

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/amiyamandal-dev/bizbrief/internal/config"
	"github.com/amiyamandal-dev/bizbrief/internal/session"
	"github.com/amiyamandal-dev/bizbrief/pkg/logger"
)

const (
	ContextSessionKey  = "web_session"
	contextRedirectKey = "web_auth_redirect"

	// AuthPath is where the browser is sent to log in
	AuthPath = "/auth"
)

// cookieStore keeps the credential in the browser cookie of one request
type cookieStore struct {
	c      *gin.Context
	name   string
	maxAge int
	secure bool
}

func (s *cookieStore) Load() (string, error) {
	token, err := s.c.Cookie(s.name)
	if err == http.ErrNoCookie {
		return "", nil
	}
	return token, err
}

func (s *cookieStore) Store(token string) error {
	if token == "" {
		return s.Clear()
	}
	s.c.SetSameSite(http.SameSiteLaxMode)
	s.c.SetCookie(s.name, token, s.maxAge, "/", "", s.secure, true)
	return nil
}

func (s *cookieStore) Clear() error {
	s.c.SetSameSite(http.SameSiteLaxMode)
	s.c.SetCookie(s.name, "", -1, "/", "", s.secure, true)
	return nil
}

// SessionMiddleware gives every request its own session over the cookie.
// A missing or rejected credential marks the request for a redirect to
// the auth page.
func SessionMiddleware(cfg config.SessionConfig, log *logger.Logger) gin.HandlerFunc {
	maxAge := int(cfg.CookieMaxAge / time.Second)

	return func(c *gin.Context) {
		store := &cookieStore{
			c:      c,
			name:   cfg.CookieName,
			maxAge: maxAge,
			secure: cfg.CookieSecure,
		}

		sess := session.New(store, log)
		markRedirect := func() { c.Set(contextRedirectKey, true) }
		sess.OnInvalidate(markRedirect)
		sess.OnAuthRequired(markRedirect)

		c.Set(ContextSessionKey, sess)
		c.Next()
	}
}

// GetSession returns the session of the request
func GetSession(c *gin.Context) *session.Session {
	sess, exists := c.Get(ContextSessionKey)
	if !exists {
		return session.New(session.NewMemoryStore(""), nil)
	}
	return sess.(*session.Session)
}

// authRedirected reports whether something in this request asked for the
// auth page, and sends the browser there if so
func authRedirected(c *gin.Context) bool {
	if !c.GetBool(contextRedirectKey) {
		return false
	}
	c.Redirect(http.StatusSeeOther, AuthPath)
	return true
}
