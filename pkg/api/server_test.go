package api

import (
	"bytes"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/workbitai/oopsworld/pkg/api/handlers"
	"github.com/workbitai/oopsworld/pkg/clock"
	"github.com/workbitai/oopsworld/pkg/prefs"
	"github.com/workbitai/oopsworld/pkg/session"
	"github.com/workbitai/oopsworld/pkg/state"
	"github.com/workbitai/oopsworld/pkg/tasks"
	"github.com/workbitai/oopsworld/pkg/wallet"
)

func newTestServer(t *testing.T, token string) (*httptest.Server, *prefs.PlayerPrefs) {
	t.Helper()
	store := prefs.NewInMemoryStore()
	m := state.NewManager(state.NewManagerOptions{
		Store: store,
		Clock: clock.NewFixed(time.Date(2024, time.May, 1, 12, 0, 0, 0, time.UTC)),
	})
	srv := httptest.NewServer(NewRouter(NewAPIServerOptions{
		Manager: m,
		Store:   store,
		Token:   token,
	}))
	t.Cleanup(srv.Close)
	return srv, store
}

func postForm(t *testing.T, srv *httptest.Server, path string, form url.Values) *http.Response {
	t.Helper()
	resp, err := http.PostForm(srv.URL+path, form)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestWalletRoutes(t *testing.T) {
	srv, store := newTestServer(t, "")

	resp := postForm(t, srv, "/wallet/coins/add", url.Values{"amount": {"50"}})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body handlers.WalletResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, 50, body.Coins)
	assert.Equal(t, 50, store.GetInt(wallet.CoinsKey, 0))

	resp = postForm(t, srv, "/wallet/coins/spend", url.Values{"amount": {"80"}})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, 50, store.GetInt(wallet.CoinsKey, 0))

	resp = postForm(t, srv, "/wallet/coins/spend", url.Values{"amount": {"20"}})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 30, store.GetInt(wallet.CoinsKey, 0))

	resp = postForm(t, srv, "/wallet/gold/add", url.Values{"amount": {"1"}})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = postForm(t, srv, "/wallet/diamonds/set", url.Values{"amount": {"many"}})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = postForm(t, srv, "/wallet/noads", url.Values{"enabled": {"true"}})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, store.GetInt(wallet.NoAdsKey, 0))
}

func TestTaskRoutes(t *testing.T) {
	srv, _ := newTestServer(t, "")

	resp := postForm(t, srv, "/tasks/Win3Times/progress", url.Values{"progress": {"3"}, "target": {"3"}})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body handlers.TasksResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "20240501", body.Day)
	for _, rec := range body.Tasks {
		if rec.ID == tasks.Win3Times {
			assert.Equal(t, 3, rec.Progress)
			assert.True(t, rec.Completed)
		}
	}

	resp = postForm(t, srv, "/tasks/Nope/complete", url.Values{"target": {"1"}})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestSessionLogin(t *testing.T) {
	srv, store := newTestServer(t, "")

	payload := `{"success":true,"data":{"username":"Ann","user_id":"u9","avatar":2,"isGuest":false,"coins":40,"diamonds":5,"jwtToken":"tok"}}`
	resp, err := http.Post(srv.URL+"/session/login", "application/json", strings.NewReader(payload))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var profile session.Profile
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&profile))
	assert.Equal(t, "u9", profile.UserID)
	assert.Equal(t, 1, profile.AvatarIndex)
	assert.Equal(t, 40, store.GetInt(wallet.CoinsKey, 0))

	bad, err := http.Post(srv.URL+"/session/login", "application/json", strings.NewReader(`{"success":false}`))
	require.NoError(t, err)
	defer bad.Body.Close()
	assert.Equal(t, http.StatusUnprocessableEntity, bad.StatusCode)
}

func TestSnapshotRoundTrip(t *testing.T) {
	srv, store := newTestServer(t, "")
	store.SetInt(wallet.DiamondsKey, 12)

	resp, err := http.Get(srv.URL + "/snapshot")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	buf := &bytes.Buffer{}
	_, err = buf.ReadFrom(resp.Body)
	require.NoError(t, err)

	store.SetInt(wallet.DiamondsKey, 0)

	req, err := http.NewRequest(http.MethodPut, srv.URL+"/snapshot", bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	put, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer put.Body.Close()
	assert.Equal(t, http.StatusNoContent, put.StatusCode)
	assert.Equal(t, 12, store.GetInt(wallet.DiamondsKey, 0))

	req, err = http.NewRequest(http.MethodPut, srv.URL+"/snapshot", strings.NewReader("garbage"))
	require.NoError(t, err)
	garbage, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer garbage.Body.Close()
	assert.Equal(t, http.StatusBadRequest, garbage.StatusCode)
}

func TestTokenRequired(t *testing.T) {
	srv, _ := newTestServer(t, "secret")

	health, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer health.Body.Close()
	assert.Equal(t, http.StatusOK, health.StatusCode)

	denied, err := http.Get(srv.URL + "/wallet")
	require.NoError(t, err)
	defer denied.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, denied.StatusCode)

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/wallet", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer secret")
	allowed, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer allowed.Body.Close()
	assert.Equal(t, http.StatusOK, allowed.StatusCode)
}

func TestWalletAddSaturates(t *testing.T) {
	srv, store := newTestServer(t, "")
	store.SetInt(wallet.CoinsKey, 100)

	resp := postForm(t, srv, "/wallet/coins/add", url.Values{"amount": {strconv.Itoa(math.MaxInt)}})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body handlers.WalletResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, math.MaxInt, body.Coins)
	assert.Equal(t, math.MaxInt, store.GetInt(wallet.CoinsKey, 0))
}

func TestSessionLoginTooLarge(t *testing.T) {
	srv, store := newTestServer(t, "")

	body := bytes.Repeat([]byte(" "), handlers.MaxLoginPayload+1)
	resp, err := http.Post(srv.URL+"/session/login", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusRequestEntityTooLarge, resp.StatusCode)
	assert.False(t, store.HasKey(session.UserIDKey))
}
