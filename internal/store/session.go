package store

import (
	"encoding/json"

	"tableside/internal/domain"
)

// Keys under which client state persists. They match what the web
// client stored so a kiosk can be pointed at an existing state file.
const (
	KeyToken      = "token"
	KeyUser       = "user"
	KeyTable      = "current_table"
	KeyGuestMode  = "guest_mode"
	KeyCart       = "cart"
	KeyRestaurant = "current_restaurant"
)

// SessionStore is the single owner of session-scoped state. Views get
// it injected; nothing reads the KV directly. Malformed stored JSON is
// treated as absent.
type SessionStore struct {
	kv KV
}

func NewSessionStore(kv KV) *SessionStore {
	return &SessionStore{kv: kv}
}

func (s *SessionStore) Token() string {
	var token string
	s.getJSON(KeyToken, &token)
	return token
}

func (s *SessionStore) SetToken(token string) error {
	return s.setJSON(KeyToken, token)
}

func (s *SessionStore) User() (domain.User, bool) {
	var u domain.User
	if !s.getJSON(KeyUser, &u) || u.ID == 0 {
		return domain.User{}, false
	}
	return u, true
}

func (s *SessionStore) SetUser(u domain.User) error {
	return s.setJSON(KeyUser, u)
}

// Role resolves the effective role for navigation: the stored user's
// role when a session exists, otherwise guest.
func (s *SessionStore) Role() domain.Role {
	if u, ok := s.User(); ok && s.Token() != "" {
		if r, ok := domain.ParseRole(string(u.Role)); ok {
			return r
		}
	}
	return domain.RoleGuest
}

func (s *SessionStore) Table() (domain.TableContext, bool) {
	var t domain.TableContext
	if !s.getJSON(KeyTable, &t) || t.TableID == 0 {
		return domain.TableContext{}, false
	}
	return t, true
}

// SetTable replaces the current table context. Scanning a different
// table is the only thing that changes it.
func (s *SessionStore) SetTable(t domain.TableContext) error {
	return s.setJSON(KeyTable, t)
}

func (s *SessionStore) Restaurant() (domain.Restaurant, bool) {
	var r domain.Restaurant
	if !s.getJSON(KeyRestaurant, &r) || r.ID == 0 {
		return domain.Restaurant{}, false
	}
	return r, true
}

func (s *SessionStore) SetRestaurant(r domain.Restaurant) error {
	return s.setJSON(KeyRestaurant, r)
}

func (s *SessionStore) GuestMode() bool {
	var mode string
	s.getJSON(KeyGuestMode, &mode)
	return mode == "true"
}

func (s *SessionStore) SetGuestMode(on bool) error {
	if !on {
		return s.kv.Remove(KeyGuestMode)
	}
	return s.setJSON(KeyGuestMode, "true")
}

func (s *SessionStore) GetJSON(key string, out interface{}) bool {
	return s.getJSON(key, out)
}

func (s *SessionStore) SetJSON(key string, v interface{}) error {
	return s.setJSON(key, v)
}

// ClearAuth drops the session on logout or forced 401 logout. The
// table context stays: the guest is still sitting at the table.
func (s *SessionStore) ClearAuth() error {
	if err := s.kv.Remove(KeyToken); err != nil {
		return err
	}
	if err := s.kv.Remove(KeyUser); err != nil {
		return err
	}
	return s.kv.Remove(KeyGuestMode)
}

// Clear wipes every session-scoped key.
func (s *SessionStore) Clear() error {
	return s.kv.Clear()
}

func (s *SessionStore) getJSON(key string, out interface{}) bool {
	raw, ok := s.kv.Get(key)
	if !ok || len(raw) == 0 {
		return false
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return false
	}
	return true
}

func (s *SessionStore) setJSON(key string, v interface{}) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.kv.Set(key, raw)
}
