package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rosettapad/rosettapad/internal/lightbar"
)

func (s *Server) handleLightbarState(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.engine.State())
}

// handleLightbarConfig replaces the whole lightbar configuration. Fields
// absent from the request body keep their default value, so clients only
// send what the selected mode needs.
func (s *Server) handleLightbarConfig(w http.ResponseWriter, r *http.Request) {
	cfg := lightbar.DefaultConfig()
	if err := decodeBody(r, &cfg); err != nil {
		writeBadRequest(w, "invalid config body: "+err.Error())
		return
	}

	if err := s.engine.Apply(cfg); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.engine.State())
}

func (s *Server) handleLightbarBattery(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Level int `json:"level"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeBadRequest(w, "invalid battery body: "+err.Error())
		return
	}

	s.engine.SetBattery(body.Level)
	writeJSON(w, http.StatusOK, s.engine.State())
}

func (s *Server) handleLightbarStop(w http.ResponseWriter, _ *http.Request) {
	s.engine.Stop()
	writeJSON(w, http.StatusOK, s.engine.State())
}

func (s *Server) handleAnimationList(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"animations": s.registry.List(),
	})
}

func (s *Server) handleAnimationCreate(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name       string              `json:"name"`
		Keyframes  []lightbar.Keyframe `json:"keyframes"`
		DurationMS int                 `json:"duration_ms"`
		Loop       bool                `json:"loop"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeBadRequest(w, "invalid animation body: "+err.Error())
		return
	}

	anim, err := s.registry.Create(body.Name, body.Keyframes, body.DurationMS, body.Loop)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, anim)
}

func (s *Server) handleAnimationGet(w http.ResponseWriter, r *http.Request) {
	anim, err := s.registry.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, anim)
}

func (s *Server) handleAnimationUpdate(w http.ResponseWriter, r *http.Request) {
	var patch lightbar.Patch
	if err := decodeBody(r, &patch); err != nil {
		writeBadRequest(w, "invalid patch body: "+err.Error())
		return
	}

	anim, err := s.registry.Update(chi.URLParam(r, "id"), patch)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, anim)
}

func (s *Server) handleAnimationDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.registry.Delete(chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
