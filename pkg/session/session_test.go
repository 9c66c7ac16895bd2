package session

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/workbitai/oopsworld/pkg/prefs"
	"github.com/workbitai/oopsworld/pkg/wallet"
)

const validPayload = `{
	"success": true,
	"data": {
		"username": "ada",
		"user_id": "u1",
		"avatar": 3,
		"isGuest": false,
		"coins": 250,
		"diamonds": 12,
		"jwtToken": "token-abc"
	}
}`

func TestSession_TryApplyLoginResponseRoundTrip(t *testing.T) {
	store := prefs.NewInMemoryStore()
	s := New(NewSessionOptions{Store: store})
	w := wallet.New(wallet.NewWalletOptions{Store: store, Users: s})

	var notified []Profile
	s.ProfileChanged().Subscribe(func(p Profile) { notified = append(notified, p) })

	require.True(t, s.TryApplyLoginResponse([]byte(validPayload)))

	want := Profile{
		UserID:      "u1",
		Username:    "ada",
		AvatarIndex: 2,
		IsGuest:     false,
		Coins:       250,
		Diamonds:    12,
		AuthToken:   "token-abc",
	}
	assert.Equal(t, want, s.Profile())
	assert.Equal(t, 250, w.Coins())
	assert.Equal(t, 12, w.Diamonds())
	assert.Equal(t, "ada", store.GetString("PLAYER_NAME", ""))
	assert.Equal(t, 2, store.GetInt("PLAYER_AVATAR_INDEX", -1))
	require.Len(t, notified, 1)
	assert.Equal(t, want, notified[0])

	reloaded := New(NewSessionOptions{Store: store})
	reloaded.LoadFromPrefs()
	assert.Equal(t, want, reloaded.Profile())
	assert.Equal(t, "u1", reloaded.ResolveUserID())
}

func TestSession_TryApplyLoginResponseFailsClosed(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{name: "malformed json", payload: `{"success": true, "data": `},
		{name: "not an object", payload: `[1, 2, 3]`},
		{name: "success false", payload: `{"success": false, "data": {"user_id": "u2", "coins": 5}}`},
		{name: "missing data", payload: `{"success": true}`},
		{name: "null data", payload: `{"success": true, "data": null}`},
		{name: "wrong field type", payload: `{"success": true, "data": {"coins": "lots"}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := prefs.NewInMemoryStore()
			s := New(NewSessionOptions{Store: store})
			require.True(t, s.TryApplyLoginResponse([]byte(validPayload)))
			before := store.Entries()
			profile := s.Profile()

			calls := 0
			s.ProfileChanged().Subscribe(func(p Profile) { calls++ })

			assert.False(t, s.TryApplyLoginResponse([]byte(tt.payload)))
			assert.Equal(t, before, store.Entries())
			assert.Equal(t, profile, s.Profile())
			assert.Equal(t, 0, calls)
		})
	}
}

func TestSession_TryApplyLoginResponseNormalizes(t *testing.T) {
	store := prefs.NewInMemoryStore()
	s := New(NewSessionOptions{Store: store})

	payload := `{"success": true, "data": {"user_id": "g7", "avatar": 0, "isGuest": true, "coins": -5, "diamonds": -1, "jwtToken": null}}`
	require.True(t, s.TryApplyLoginResponse([]byte(payload)))

	p := s.Profile()
	assert.Equal(t, 0, p.AvatarIndex)
	assert.Equal(t, 0, p.Coins)
	assert.Equal(t, 0, p.Diamonds)
	assert.Equal(t, "", p.AuthToken)
	assert.Equal(t, "", p.Username)
	assert.True(t, p.IsGuest)
	assert.Equal(t, 1, store.GetInt(IsGuestKey, 0))
}

func TestSession_ApplyWithoutSave(t *testing.T) {
	store := prefs.NewInMemoryStore()
	s := New(NewSessionOptions{Store: store})

	name := "bob"
	s.Apply(ApplyFields{Username: &name, AvatarIndex: -2, Coins: 40}, false)

	assert.Equal(t, Profile{Username: "bob", Coins: 40}, s.Profile())
	assert.Empty(t, store.Entries())
}

func TestSession_CustomProfileKeys(t *testing.T) {
	store := prefs.NewInMemoryStore()
	s := New(NewSessionOptions{
		Store:       store,
		ProfileKeys: &ProfileKeys{NameKey: "GM_NAME", AvatarIndexKey: "GM_AVATAR"},
	})
	require.True(t, s.TryApplyLoginResponse([]byte(validPayload)))

	assert.Equal(t, "ada", store.GetString("GM_NAME", ""))
	assert.Equal(t, 2, store.GetInt("GM_AVATAR", -1))
	assert.False(t, store.HasKey("PLAYER_NAME"))
}

func TestSession_OfflineStarsFollowLoggedInUser(t *testing.T) {
	store := prefs.NewInMemoryStore()
	store.SetInt(wallet.OfflineStarsKey, 42)
	s := New(NewSessionOptions{Store: store})
	w := wallet.New(wallet.NewWalletOptions{Store: store, Users: s})

	assert.Equal(t, 42, w.OfflineStars())
	assert.False(t, store.HasKey(wallet.OfflineStarsUserKey("u1")))

	require.True(t, s.TryApplyLoginResponse([]byte(validPayload)))
	w.AddOfflineStars(1)
	assert.Equal(t, 43, store.GetInt(wallet.OfflineStarsUserKey("u1"), 0))
	assert.Equal(t, 42, store.GetInt(wallet.OfflineStarsKey, 0))
}

func TestSession_DeviceIDStable(t *testing.T) {
	store := prefs.NewInMemoryStore()
	s := New(NewSessionOptions{Store: store})

	id := s.DeviceID()
	_, err := uuid.Parse(id)
	require.NoError(t, err)
	assert.Equal(t, id, s.DeviceID())
	assert.Equal(t, id, New(NewSessionOptions{Store: store}).DeviceID())
}
