// Package session keeps per-client state in a signed session cookie.
// Values travel with the client, so the server holds nothing between requests.
package session

import (
	"encoding/gob"
	"fmt"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"

	"github.com/kelsos/makerspace-demo/internal/models"
)

func init() {
	// session values are gob encoded into the cookie
	gob.Register([]models.Task{})
}

// State is the key/value view of one client's session
type State interface {
	Get(key string) (interface{}, bool)
	Set(key string, value interface{}) error
}

// NewStore creates the cookie backend signed with secret
func NewStore(secret string) sessions.Store {
	store := cookie.NewStore([]byte(secret))
	store.Options(sessions.Options{
		Path:     "/",
		HttpOnly: true,
	})
	return store
}

// Middleware attaches a session named name to every request
func Middleware(name string, store sessions.Store) gin.HandlerFunc {
	return sessions.Sessions(name, store)
}

// FromContext returns the session state of the current request
func FromContext(c *gin.Context) State {
	return &ginState{session: sessions.Default(c)}
}

type ginState struct {
	session sessions.Session
}

func (s *ginState) Get(key string) (interface{}, bool) {
	value := s.session.Get(key)
	return value, value != nil
}

func (s *ginState) Set(key string, value interface{}) error {
	s.session.Set(key, value)
	if err := s.session.Save(); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}
