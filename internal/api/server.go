package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/khushi-labs/marketwallet/internal/config"
	"github.com/khushi-labs/marketwallet/internal/ens"
	"github.com/khushi-labs/marketwallet/internal/market"
	"github.com/khushi-labs/marketwallet/internal/scanner"
	"github.com/khushi-labs/marketwallet/internal/session"
	"github.com/khushi-labs/marketwallet/internal/storage"
	"github.com/khushi-labs/marketwallet/internal/ui"
	"github.com/khushi-labs/marketwallet/internal/wallet"
	"github.com/khushi-labs/marketwallet/pkg/models"
)

// Deps are the capability boundaries the facade hosts.
type Deps struct {
	Provider  wallet.Provider // nil when no wallet is configured
	Resolver  ens.Resolver
	SessionKV storage.KV
	DurableKV storage.KV
	Prompter  ui.Prompter
	Clock     scanner.Clock // nil for the real clock
}

// Server exposes every page-callable entry point as a JSON API under /api/v1.
type Server struct {
	cfg      config.Config
	router   *mux.Router
	http     *http.Server
	sessions *session.Manager
	items    *market.Store
	checkout *market.Checkout
	scanner  *scanner.Scanner
	resolver ens.Resolver
	status   *statusControl
	modal    *modalView
	logger   *slog.Logger
}

func NewServer(cfg config.Config, deps Deps) *Server {
	status := newStatusControl()
	modal := &modalView{}

	s := &Server{
		cfg:      cfg,
		sessions: session.NewManager(deps.Provider, deps.Resolver, deps.SessionKV, deps.Prompter, status, cfg.DefaultDisplayName),
		items:    market.NewStore(deps.DurableKV),
		checkout: market.NewCheckout(deps.Prompter),
		scanner:  scanner.New(modal, deps.Resolver, deps.Clock, cfg.ScanDelay),
		resolver: deps.Resolver,
		status:   status,
		modal:    modal,
		logger:   slog.Default().With("component", "api"),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	router := mux.NewRouter()
	v1 := router.PathPrefix("/api/v1").Subrouter()

	v1.HandleFunc("/items", s.handleListItems).Methods("GET")
	v1.HandleFunc("/items", s.handleAddItem).Methods("POST")
	v1.HandleFunc("/items/{id}", s.handleUpdateItem).Methods("PATCH")
	v1.HandleFunc("/items/{id}", s.handleDeleteItem).Methods("DELETE")

	v1.HandleFunc("/resolve/{address}", s.handleResolve).Methods("GET")
	v1.HandleFunc("/buy", s.handleBuy).Methods("POST")

	v1.HandleFunc("/scan", s.handleScanStatus).Methods("GET")
	v1.HandleFunc("/scan", s.handleOpenScan).Methods("POST")
	v1.HandleFunc("/scan/close", s.handleCloseScan).Methods("POST")

	v1.HandleFunc("/session", s.handleSession).Methods("GET")
	v1.HandleFunc("/session/connect", s.handleConnect).Methods("POST")
	v1.HandleFunc("/session/disconnect", s.handleDisconnect).Methods("POST")
	v1.HandleFunc("/session/click", s.handleClick).Methods("POST")

	s.router = router
}

// Router exposes the handler, mainly for tests.
func (s *Server) Router() http.Handler { return s.router }

// Start runs the HTTP server until it fails or Shutdown is called.
func (s *Server) Start() error {
	s.http = &http.Server{Addr: s.cfg.ListenAddr, Handler: s.router}
	s.logger.Info("http facade listening", "addr", s.cfg.ListenAddr)
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// Shutdown drains the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	return s.http.Shutdown(ctx)
}

// ----- items -----

func (s *Server) handleListItems(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.items.List())
}

func (s *Server) handleAddItem(w http.ResponseWriter, r *http.Request) {
	var item models.Item
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		http.Error(w, fmt.Sprintf("invalid item: %v", err), http.StatusBadRequest)
		return
	}
	stored, err := s.items.Add(item)
	if err != nil {
		http.Error(w, fmt.Sprintf("add item: %v", err), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, stored)
}

func (s *Server) handleUpdateItem(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var fields map[string]any
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		http.Error(w, fmt.Sprintf("invalid fields: %v", err), http.StatusBadRequest)
		return
	}
	if err := s.items.UpdateByID(id, fields); err != nil {
		http.Error(w, fmt.Sprintf("update item: %v", err), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleDeleteItem(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := s.items.DeleteByID(id); err != nil {
		http.Error(w, fmt.Sprintf("delete item: %v", err), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ----- resolver / buy -----

func (s *Server) handleResolve(w http.ResponseWriter, r *http.Request) {
	address := mux.Vars(r)["address"]
	name := s.resolver.ResolveName(r.Context(), address)
	writeJSON(w, http.StatusOK, map[string]string{
		"address": address,
		"name":    name,
	})
}

func (s *Server) handleBuy(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name  string `json:"name"`
		Price any    `json:"price"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("invalid request: %v", err), http.StatusBadRequest)
		return
	}
	s.checkout.BuyItem(req.Name, fmt.Sprintf("%v", req.Price))
	writeJSON(w, http.StatusOK, map[string]string{"status": "simulated"})
}

// ----- scan -----

func (s *Server) handleOpenScan(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Owner string `json:"owner"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("invalid request: %v", err), http.StatusBadRequest)
		return
	}
	// The scan's delayed resolution outlives this request.
	s.scanner.Open(context.Background(), req.Owner)
	writeJSON(w, http.StatusAccepted, s.modal.snapshot())
}

func (s *Server) handleScanStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.modal.snapshot())
}

func (s *Server) handleCloseScan(w http.ResponseWriter, r *http.Request) {
	s.scanner.Close()
	writeJSON(w, http.StatusOK, s.modal.snapshot())
}

// ----- session -----

type sessionResponse struct {
	Session models.Session `json:"session"`
	Label   string         `json:"label"`
}

func (s *Server) sessionResponse() sessionResponse {
	return sessionResponse{Session: s.sessions.Session(), Label: s.status.Text()}
}

func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.sessionResponse())
}

func (s *Server) handleConnect(w http.ResponseWriter, r *http.Request) {
	if err := s.sessions.Connect(r.Context()); err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, wallet.ErrProviderUnavailable) {
			code = http.StatusServiceUnavailable
		}
		http.Error(w, err.Error(), code)
		return
	}
	writeJSON(w, http.StatusOK, s.sessionResponse())
}

func (s *Server) handleDisconnect(w http.ResponseWriter, r *http.Request) {
	confirmed := s.sessions.Disconnect()
	writeJSON(w, http.StatusOK, map[string]any{
		"disconnected": confirmed,
		"label":        s.status.Text(),
	})
}

func (s *Server) handleClick(w http.ResponseWriter, r *http.Request) {
	s.sessions.HandleClick(r.Context())
	writeJSON(w, http.StatusOK, s.sessionResponse())
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
