package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rosettapad/rosettapad/internal/profile"
)

func (s *Server) handleProfileList(w http.ResponseWriter, r *http.Request) {
	profiles, err := s.profiles.List(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	activeID, err := s.profiles.ActiveID(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"profiles":          profiles,
		"active_profile_id": activeID,
	})
}

func (s *Server) handleProfileCreate(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeBadRequest(w, "invalid profile body: "+err.Error())
		return
	}
	if body.Name == "" {
		writeBadRequest(w, "profile name is required")
		return
	}

	p, err := s.profiles.Create(r.Context(), body.Name, body.Description)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (s *Server) handleProfileGet(w http.ResponseWriter, r *http.Request) {
	p, err := s.profiles.Get(r.Context(), chi.URLParam(r, "profileID"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleProfileUpdate(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeBadRequest(w, "invalid profile body: "+err.Error())
		return
	}

	p, err := s.profiles.Update(r.Context(), chi.URLParam(r, "profileID"), body.Name, body.Description)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleProfileDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.profiles.Delete(r.Context(), chi.URLParam(r, "profileID")); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (s *Server) handleProfileDuplicate(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name string `json:"name"`
	}
	// An empty body means "name it for me".
	decodeBody(r, &body)

	p, err := s.profiles.Duplicate(r.Context(), chi.URLParam(r, "profileID"), body.Name)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (s *Server) handleProfileActivate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "profileID")
	if err := s.profiles.Activate(r.Context(), id); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":           true,
		"active_profile_id": id,
	})
}

func (s *Server) handleMacroCreate(w http.ResponseWriter, r *http.Request) {
	var m profile.Macro
	if err := decodeBody(r, &m); err != nil {
		writeBadRequest(w, "invalid macro body: "+err.Error())
		return
	}

	created, err := s.profiles.AddMacro(r.Context(), chi.URLParam(r, "profileID"), m)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleMacroUpdate(w http.ResponseWriter, r *http.Request) {
	var m profile.Macro
	if err := decodeBody(r, &m); err != nil {
		writeBadRequest(w, "invalid macro body: "+err.Error())
		return
	}

	profileID := chi.URLParam(r, "profileID")
	macroID := chi.URLParam(r, "macroID")
	if err := s.profiles.UpdateMacro(r.Context(), profileID, macroID, m); err != nil {
		writeDomainError(w, err)
		return
	}
	m.ID = macroID
	writeJSON(w, http.StatusOK, m)
}

func (s *Server) handleMacroDelete(w http.ResponseWriter, r *http.Request) {
	err := s.profiles.RemoveMacro(r.Context(),
		chi.URLParam(r, "profileID"), chi.URLParam(r, "macroID"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// validRemap rejects remaps that would be a no-op or incomplete.
func validRemap(r profile.ButtonRemap) string {
	switch {
	case r.FromButton == "" || r.ToButton == "":
		return "both from_button and to_button are required"
	case r.FromButton == r.ToButton:
		return "from_button and to_button must differ"
	}
	return ""
}

func (s *Server) handleRemapCreate(w http.ResponseWriter, r *http.Request) {
	var remap profile.ButtonRemap
	if err := decodeBody(r, &remap); err != nil {
		writeBadRequest(w, "invalid remap body: "+err.Error())
		return
	}
	if msg := validRemap(remap); msg != "" {
		writeBadRequest(w, msg)
		return
	}

	created, err := s.profiles.AddRemap(r.Context(), chi.URLParam(r, "profileID"), remap)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleRemapUpdate(w http.ResponseWriter, r *http.Request) {
	var remap profile.ButtonRemap
	if err := decodeBody(r, &remap); err != nil {
		writeBadRequest(w, "invalid remap body: "+err.Error())
		return
	}
	if msg := validRemap(remap); msg != "" {
		writeBadRequest(w, msg)
		return
	}

	profileID := chi.URLParam(r, "profileID")
	remapID := chi.URLParam(r, "remapID")
	if err := s.profiles.UpdateRemap(r.Context(), profileID, remapID, remap); err != nil {
		writeDomainError(w, err)
		return
	}
	remap.ID = remapID
	writeJSON(w, http.StatusOK, remap)
}

func (s *Server) handleRemapDelete(w http.ResponseWriter, r *http.Request) {
	err := s.profiles.RemoveRemap(r.Context(),
		chi.URLParam(r, "profileID"), chi.URLParam(r, "remapID"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
