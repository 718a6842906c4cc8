package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	log "github.com/sirupsen/logrus"

	"github.com/rosettapad/rosettapad/internal/bluetooth"
	"github.com/rosettapad/rosettapad/internal/lightbar"
	"github.com/rosettapad/rosettapad/internal/profile"
)

// Deps carries everything the HTTP layer serves. Hub is optional; when nil
// the server creates its own.
type Deps struct {
	Addr      string
	Engine    *lightbar.Engine
	Registry  *lightbar.Registry
	Profiles  *profile.Store
	Bluetooth bluetooth.Manager
	Hub       *Hub
	Version   string
}

// Server is the panel's HTTP API.
type Server struct {
	engine   *lightbar.Engine
	registry *lightbar.Registry
	profiles *profile.Store
	bt       bluetooth.Manager
	hub      *Hub
	version  string

	httpServer *http.Server
}

func New(deps Deps) *Server {
	s := &Server{
		engine:   deps.Engine,
		registry: deps.Registry,
		profiles: deps.Profiles,
		bt:       deps.Bluetooth,
		hub:      deps.Hub,
		version:  deps.Version,
	}
	if s.hub == nil {
		s.hub = NewHub()
	}

	s.httpServer = &http.Server{
		Addr:              deps.Addr,
		Handler:           s.routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// Hub returns the websocket hub so it can be wired into the engine's sink.
func (s *Server) Hub() *Hub {
	return s.hub
}

// Start serves until Shutdown is called.
func (s *Server) Start() error {
	log.Infof("API listening on %s", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests and disconnects preview clients.
func (s *Server) Shutdown(ctx context.Context) error {
	s.hub.Close()
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(requestLogger)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Get("/status", s.handleBluetoothStatus)

		r.Route("/lightbar", func(r chi.Router) {
			r.Get("/", s.handleLightbarState)
			r.Put("/config", s.handleLightbarConfig)
			r.Put("/battery", s.handleLightbarBattery)
			r.Post("/stop", s.handleLightbarStop)
			r.Get("/live", s.hub.handleLive)

			r.Route("/animations", func(r chi.Router) {
				r.Get("/", s.handleAnimationList)
				r.Post("/", s.handleAnimationCreate)
				r.Get("/{id}", s.handleAnimationGet)
				r.Patch("/{id}", s.handleAnimationUpdate)
				r.Delete("/{id}", s.handleAnimationDelete)
			})
		})

		r.Route("/profiles", func(r chi.Router) {
			r.Get("/", s.handleProfileList)
			r.Post("/", s.handleProfileCreate)

			r.Route("/{profileID}", func(r chi.Router) {
				r.Get("/", s.handleProfileGet)
				r.Put("/", s.handleProfileUpdate)
				r.Delete("/", s.handleProfileDelete)
				r.Post("/duplicate", s.handleProfileDuplicate)
				r.Post("/activate", s.handleProfileActivate)

				r.Route("/macros", func(r chi.Router) {
					r.Post("/", s.handleMacroCreate)
					r.Put("/{macroID}", s.handleMacroUpdate)
					r.Delete("/{macroID}", s.handleMacroDelete)
				})
				r.Route("/remaps", func(r chi.Router) {
					r.Post("/", s.handleRemapCreate)
					r.Put("/{remapID}", s.handleRemapUpdate)
					r.Delete("/{remapID}", s.handleRemapDelete)
				})
			})
		})

		r.Post("/scan/start", s.handleScanStart)
		r.Post("/scan/stop", s.handleScanStop)
		r.Post("/pair", s.handlePair)
		r.Post("/connect", s.handleConnect)
		r.Post("/disconnect", s.handleDisconnect)
		r.Post("/forget", s.handleForget)
		r.Post("/rename", s.handleRename)
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": s.version,
	})
}

// requestLogger traces every request at debug level.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Debugf("%s %s (%s)", r.Method, r.URL.Path, time.Since(start))
	})
}
