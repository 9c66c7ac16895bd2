package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"sync"

	"github.com/gorilla/mux"
	"github.com/workbitai/oopsworld/pkg/log"
	"github.com/workbitai/oopsworld/pkg/prefs"
	"github.com/workbitai/oopsworld/pkg/state"
	"github.com/workbitai/oopsworld/pkg/tasks"
)

// MaxLoginPayload is the largest login body accepted, in bytes.
const MaxLoginPayload = 1 << 16

// WalletResponse is the body of the wallet endpoints.
type WalletResponse struct {
	Coins        int  `json:"coins"`
	Diamonds     int  `json:"diamonds"`
	OfflineStars int  `json:"offlineStars"`
	NoAds        bool `json:"noAds"`
}

// TasksResponse is the body of the tasks endpoints.
type TasksResponse struct {
	Day          string         `json:"day"`
	SpendSeconds float64        `json:"spendSeconds"`
	Tasks        []tasks.Record `json:"tasks"`
}

func walletResponse(m *state.Manager) WalletResponse {
	w := m.Wallet()
	return WalletResponse{
		Coins:        w.Coins(),
		Diamonds:     w.Diamonds(),
		OfflineStars: w.OfflineStars(),
		NoAds:        w.NoAds(),
	}
}

func tasksResponse(m *state.Manager) TasksResponse {
	t := m.Tasks()
	day := t.EnsureDay()
	return TasksResponse{
		Day:          day,
		SpendSeconds: t.GetSpendSeconds(),
		Tasks:        t.Records(),
	}
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("failed to encode response: %v", err)
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

func formInt(r *http.Request, name string) (int, bool) {
	v, err := strconv.Atoi(r.FormValue(name))
	if err != nil {
		return 0, false
	}
	return v, true
}

func HandleGetWallet(m *state.Manager, lock sync.Locker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lock.Lock()
		resp := walletResponse(m)
		lock.Unlock()
		writeJSON(w, resp)
	}
}

// HandleWalletOp applies add, set or spend to one currency.
func HandleWalletOp(m *state.Manager, lock sync.Locker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		amount, ok := formInt(r, "amount")
		if !ok {
			http.Error(w, "amount must be an integer", http.StatusBadRequest)
			return
		}

		lock.Lock()
		defer lock.Unlock()

		wal := m.Wallet()
		var add, set func(int)
		var spend func(int) bool
		switch vars["currency"] {
		case "coins":
			add, set, spend = wal.AddCoins, wal.SetCoins, wal.TrySpendCoins
		case "diamonds":
			add, set, spend = wal.AddDiamonds, wal.SetDiamonds, wal.TrySpendDiamonds
		case "offlinestars":
			add, set, spend = wal.AddOfflineStars, wal.SetOfflineStars, wal.TrySpendOfflineStars
		default:
			http.Error(w, "unknown currency", http.StatusNotFound)
			return
		}

		switch vars["op"] {
		case "add":
			add(amount)
		case "set":
			set(amount)
		case "spend":
			if !spend(amount) {
				http.Error(w, "insufficient balance", http.StatusConflict)
				return
			}
		default:
			http.Error(w, "unknown operation", http.StatusNotFound)
			return
		}
		writeJSON(w, walletResponse(m))
	}
}

func HandleSetNoAds(m *state.Manager, lock sync.Locker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		enabled, err := strconv.ParseBool(r.FormValue("enabled"))
		if err != nil {
			http.Error(w, "enabled must be a boolean", http.StatusBadRequest)
			return
		}
		lock.Lock()
		defer lock.Unlock()
		m.Wallet().SetNoAds(enabled)
		writeJSON(w, walletResponse(m))
	}
}

func HandleGetTasks(m *state.Manager, lock sync.Locker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lock.Lock()
		resp := tasksResponse(m)
		lock.Unlock()
		writeJSON(w, resp)
	}
}

// HandleTaskOp sets progress on, or completes, one task. Both take a form target.
func HandleTaskOp(m *state.Manager, lock sync.Locker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		id, err := tasks.ParseTaskID(vars["task"])
		if err != nil {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		target, ok := formInt(r, "target")
		if !ok {
			http.Error(w, "target must be an integer", http.StatusBadRequest)
			return
		}

		lock.Lock()
		defer lock.Unlock()

		switch vars["op"] {
		case "progress":
			progress, ok := formInt(r, "progress")
			if !ok {
				http.Error(w, "progress must be an integer", http.StatusBadRequest)
				return
			}
			m.Tasks().SetProgress(id, progress, target)
		case "complete":
			m.Tasks().Complete(id, target)
		default:
			http.Error(w, "unknown operation", http.StatusNotFound)
			return
		}
		writeJSON(w, tasksResponse(m))
	}
}

func HandleGetSession(m *state.Manager, lock sync.Locker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lock.Lock()
		profile := m.Session().Profile()
		lock.Unlock()
		writeJSON(w, profile)
	}
}

// HandleLogin feeds the request body to the session as a backend login payload.
func HandleLogin(m *state.Manager, lock sync.Locker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw, err := io.ReadAll(io.LimitReader(r.Body, MaxLoginPayload+1))
		if err != nil {
			http.Error(w, "Failed to read body", http.StatusBadRequest)
			return
		}
		if len(raw) > MaxLoginPayload {
			http.Error(w, "login payload too large", http.StatusRequestEntityTooLarge)
			return
		}

		lock.Lock()
		defer lock.Unlock()
		if !m.Session().TryApplyLoginResponse(raw) {
			http.Error(w, "login payload rejected", http.StatusUnprocessableEntity)
			return
		}
		writeJSON(w, m.Session().Profile())
	}
}

func HandleGetSnapshot(store prefs.SnapshotStore, lock sync.Locker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lock.Lock()
		entries := store.Entries()
		lock.Unlock()

		buf := bytes.NewBuffer(nil)
		if err := prefs.WriteSnapshot(buf, entries); err != nil {
			log.Error("failed to write snapshot: %v", err)
			http.Error(w, "Failed to write snapshot", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/zstd")
		if _, err := w.Write(buf.Bytes()); err != nil {
			log.Error("failed to send snapshot: %v", err)
		}
	}
}

// HandlePutSnapshot replaces the store with an uploaded snapshot and reloads the session.
func HandlePutSnapshot(m *state.Manager, store prefs.SnapshotStore, lock sync.Locker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entries, err := prefs.ReadSnapshot(r.Body)
		if err != nil {
			log.Warn("rejected snapshot: %v", err)
			http.Error(w, "Invalid snapshot", http.StatusBadRequest)
			return
		}

		lock.Lock()
		defer lock.Unlock()
		store.Restore(entries)
		if err := store.Save(); err != nil {
			log.Error("failed to save restored snapshot: %v", err)
			http.Error(w, "Failed to save snapshot", http.StatusInternalServerError)
			return
		}
		m.Session().LoadFromPrefs()
		m.Tasks().EnsureDay()
		w.WriteHeader(http.StatusNoContent)
	}
}
