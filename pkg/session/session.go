package session

import (
	"encoding/json"

	"github.com/google/uuid"
	"github.com/workbitai/oopsworld/pkg/events"
	"github.com/workbitai/oopsworld/pkg/log"
	"github.com/workbitai/oopsworld/pkg/prefs"
	"github.com/workbitai/oopsworld/pkg/wallet"
)

const (
	UserIDKey      = "USER_ID"
	UsernameKey    = "USERNAME"
	AvatarIndexKey = "AVATAR_INDEX"
	IsGuestKey     = "IS_GUEST"
	AuthTokenKey   = "AUTH_TOKEN"
	DeviceIDKey    = "DEVICE_ID"
)

var _ wallet.UserResolver = &Session{}

// Session holds the current user's profile in memory and mirrors it into
// the store. The store stays the source of truth across restarts.
type Session struct {
	store          prefs.Store
	profileKeys    ProfileKeys
	profile        Profile
	profileChanged *events.Emitter[Profile]
}

type NewSessionOptions struct {
	Store prefs.Store
	// ProfileKeys defaults to DefaultProfileKeys.
	ProfileKeys *ProfileKeys
}

func New(opts NewSessionOptions) *Session {
	keys := DefaultProfileKeys
	if opts.ProfileKeys != nil {
		keys = *opts.ProfileKeys
	}
	return &Session{
		store:          opts.Store,
		profileKeys:    keys,
		profileChanged: events.NewEmitter[Profile]("ProfileChanged"),
	}
}

// ProfileChanged fires after every LoadFromPrefs and Apply.
func (s *Session) ProfileChanged() *events.Emitter[Profile] {
	return s.profileChanged
}

// Profile returns a copy of the in-memory profile.
func (s *Session) Profile() Profile {
	return s.profile
}

// LoadFromPrefs repopulates the profile from the store.
func (s *Session) LoadFromPrefs() {
	s.profile = Profile{
		UserID:      s.store.GetString(UserIDKey, ""),
		Username:    s.store.GetString(UsernameKey, ""),
		AvatarIndex: max(0, s.store.GetInt(AvatarIndexKey, 0)),
		IsGuest:     s.store.GetInt(IsGuestKey, 0) == 1,
		Coins:       max(0, s.store.GetInt(wallet.CoinsKey, 0)),
		Diamonds:    max(0, s.store.GetInt(wallet.DiamondsKey, 0)),
		AuthToken:   s.store.GetString(AuthTokenKey, ""),
	}
	log.Debug("Session loaded for user %q", s.profile.UserID)
	s.profileChanged.Emit(s.profile)
}

// ResolveUserID re-derives the current user id from the store, which may
// have been changed by another session instance since this one last loaded.
func (s *Session) ResolveUserID() string {
	return s.store.GetString(UserIDKey, "")
}

// TryApplyLoginResponse applies a raw login payload. It returns false and
// leaves all state untouched if the payload is malformed, unsuccessful or
// has no data.
func (s *Session) TryApplyLoginResponse(raw []byte) bool {
	resp := &LoginResponse{}
	if err := json.Unmarshal(raw, resp); err != nil {
		log.Warn("Rejected login response: %v", err)
		return false
	}
	if !resp.Success {
		log.Warn("Rejected login response: success=false")
		return false
	}
	if resp.Data == nil {
		log.Warn("Rejected login response: missing data")
		return false
	}

	data := resp.Data
	s.Apply(ApplyFields{
		UserID:      &data.UserID,
		Username:    &data.Username,
		AvatarIndex: max(0, data.Avatar-1),
		IsGuest:     data.IsGuest,
		Coins:       max(0, data.Coins),
		Diamonds:    max(0, data.Diamonds),
		AuthToken:   data.JWTToken,
	}, true)
	return true
}

// Apply replaces the in-memory profile. With saveToPrefs it also writes the
// session keys, the wallet's coin and diamond keys and the game manager's
// display keys, so every component agrees on the new user.
func (s *Session) Apply(fields ApplyFields, saveToPrefs bool) {
	s.profile = Profile{
		UserID:      deref(fields.UserID),
		Username:    deref(fields.Username),
		AvatarIndex: max(0, fields.AvatarIndex),
		IsGuest:     fields.IsGuest,
		Coins:       max(0, fields.Coins),
		Diamonds:    max(0, fields.Diamonds),
		AuthToken:   deref(fields.AuthToken),
	}

	if saveToPrefs {
		p := s.profile
		s.store.SetString(UserIDKey, p.UserID)
		s.store.SetString(UsernameKey, p.Username)
		s.store.SetInt(AvatarIndexKey, p.AvatarIndex)
		s.store.SetInt(IsGuestKey, boolToInt(p.IsGuest))
		s.store.SetString(AuthTokenKey, p.AuthToken)

		s.store.SetInt(wallet.CoinsKey, p.Coins)
		s.store.SetInt(wallet.DiamondsKey, p.Diamonds)

		s.store.SetString(s.profileKeys.NameKey, p.Username)
		s.store.SetInt(s.profileKeys.AvatarIndexKey, p.AvatarIndex)

		if err := s.store.Save(); err != nil {
			log.Error("Failed to save session: %v", err)
		}
	}

	log.Info("Session applied for user %q (guest=%t)", s.profile.UserID, s.profile.IsGuest)
	s.profileChanged.Emit(s.profile)
}

// DeviceID returns this install's identifier, creating it on first use.
func (s *Session) DeviceID() string {
	if id := s.store.GetString(DeviceIDKey, ""); id != "" {
		return id
	}
	id := uuid.New().String()
	s.store.SetString(DeviceIDKey, id)
	if err := s.store.Save(); err != nil {
		log.Error("Failed to save device id: %v", err)
	}
	return id
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
