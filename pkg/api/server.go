package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/gorilla/mux"
	"github.com/workbitai/oopsworld/pkg/api/handlers"
	"github.com/workbitai/oopsworld/pkg/api/middleware"
	"github.com/workbitai/oopsworld/pkg/log"
	"github.com/workbitai/oopsworld/pkg/prefs"
	"github.com/workbitai/oopsworld/pkg/state"
)

type APIServer struct {
	server *http.Server
	tls    *TLSConfig
}

type TLSConfig struct {
	CertFile string
	KeyFile  string
}

type NewAPIServerOptions struct {
	Port    int
	TLS     *TLSConfig
	Manager *state.Manager
	Store   prefs.SnapshotStore
	// Lock serialises every handler with the other writers of the store.
	// A private mutex is used when nil.
	Lock sync.Locker
	// Token is the bearer token required on every route but /health.
	Token string
}

// NewAPIServer creates a new http.Server that inspects and edits the player state
func NewAPIServer(opts NewAPIServerOptions) *APIServer {
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", opts.Port),
		Handler: NewRouter(opts),
	}
	return &APIServer{
		server: server,
		tls:    opts.TLS,
	}
}

// NewRouter builds the inspector routes.
func NewRouter(opts NewAPIServerOptions) *mux.Router {
	lock := opts.Lock
	if lock == nil {
		lock = &sync.Mutex{}
	}
	m := opts.Manager

	r := mux.NewRouter()
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if _, err := fmt.Fprintln(w, "OK"); err != nil {
			log.Error("failed to write health response: %v", err)
		}
	}).Methods(http.MethodGet)

	api := r.NewRoute().Subrouter()
	api.Use(middleware.NewTokenMiddleware(opts.Token))
	api.HandleFunc("/wallet", handlers.HandleGetWallet(m, lock)).Methods(http.MethodGet)
	api.HandleFunc("/wallet/noads", handlers.HandleSetNoAds(m, lock)).Methods(http.MethodPost)
	api.HandleFunc("/wallet/{currency}/{op}", handlers.HandleWalletOp(m, lock)).Methods(http.MethodPost)
	api.HandleFunc("/tasks", handlers.HandleGetTasks(m, lock)).Methods(http.MethodGet)
	api.HandleFunc("/tasks/{task}/{op}", handlers.HandleTaskOp(m, lock)).Methods(http.MethodPost)
	api.HandleFunc("/session", handlers.HandleGetSession(m, lock)).Methods(http.MethodGet)
	api.HandleFunc("/session/login", handlers.HandleLogin(m, lock)).Methods(http.MethodPost)
	api.HandleFunc("/snapshot", handlers.HandleGetSnapshot(opts.Store, lock)).Methods(http.MethodGet)
	api.HandleFunc("/snapshot", handlers.HandlePutSnapshot(m, opts.Store, lock)).Methods(http.MethodPut)
	return r
}

// Start starts the APIServer
func (s *APIServer) Start() {
	var listenAndServe func() error
	if s.tls != nil {
		log.Info("Inspector listening on %s with TLS", s.server.Addr)
		listenAndServe = func() error {
			return s.server.ListenAndServeTLS(s.tls.CertFile, s.tls.KeyFile)
		}
	} else {
		log.Info("Inspector listening on %s", s.server.Addr)
		listenAndServe = s.server.ListenAndServe
	}
	if err := listenAndServe(); err != nil {
		if errors.Is(err, http.ErrServerClosed) {
			log.Info("Inspector closed")
			return
		}
		log.Error("Inspector error: %v", err)
	}
}

// Stop stops the APIServer
func (s *APIServer) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
