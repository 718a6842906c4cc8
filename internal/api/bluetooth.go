package api

import (
	"net/http"
)

func (s *Server) handleBluetoothStatus(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.bt.Status())
}

// addressBody is the shape shared by every bluetooth action endpoint.
type addressBody struct {
	Address string `json:"address"`
	Name    string `json:"name"`
}

func decodeAddress(w http.ResponseWriter, r *http.Request) (addressBody, bool) {
	var body addressBody
	if err := decodeBody(r, &body); err != nil {
		writeBadRequest(w, "invalid request body: "+err.Error())
		return body, false
	}
	if body.Address == "" {
		writeBadRequest(w, "address is required")
		return body, false
	}
	return body, true
}

func (s *Server) handleScanStart(w http.ResponseWriter, r *http.Request) {
	if err := s.bt.StartScan(r.Context()); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.bt.Status())
}

func (s *Server) handleScanStop(w http.ResponseWriter, r *http.Request) {
	if err := s.bt.StopScan(r.Context()); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.bt.Status())
}

func (s *Server) handlePair(w http.ResponseWriter, r *http.Request) {
	body, ok := decodeAddress(w, r)
	if !ok {
		return
	}
	if err := s.bt.Pair(r.Context(), body.Address); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.bt.Status())
}

func (s *Server) handleConnect(w http.ResponseWriter, r *http.Request) {
	body, ok := decodeAddress(w, r)
	if !ok {
		return
	}
	if err := s.bt.Connect(r.Context(), body.Address); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.bt.Status())
}

func (s *Server) handleDisconnect(w http.ResponseWriter, r *http.Request) {
	body, ok := decodeAddress(w, r)
	if !ok {
		return
	}
	if err := s.bt.Disconnect(r.Context(), body.Address); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.bt.Status())
}

func (s *Server) handleForget(w http.ResponseWriter, r *http.Request) {
	body, ok := decodeAddress(w, r)
	if !ok {
		return
	}
	if err := s.bt.Forget(r.Context(), body.Address); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.bt.Status())
}

func (s *Server) handleRename(w http.ResponseWriter, r *http.Request) {
	body, ok := decodeAddress(w, r)
	if !ok {
		return
	}
	if body.Name == "" {
		writeBadRequest(w, "name is required")
		return
	}
	if err := s.bt.Rename(body.Address, body.Name); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.bt.Status())
}
