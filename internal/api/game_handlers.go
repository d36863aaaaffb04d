package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vytor/pricepulse/internal/errors"
	"github.com/vytor/pricepulse/internal/logger"
	"github.com/vytor/pricepulse/internal/services"
)

const maxBodyBytes = 64 << 10

type flipRequest struct {
	CardID string `json:"cardId"`
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return errors.NewBadRequestError("invalid JSON body: " + err.Error())
	}
	return nil
}

func (s *Server) handleCreateGame(w http.ResponseWriter, r *http.Request) {
	var req services.CreateRequest
	if err := decodeBody(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	snap, err := s.GameService.Create(r.Context(), req)
	if err != nil {
		handleError(w, r, err)
		return
	}
	w.Header().Set("Location", "/games/"+snap.ID)
	writeJSON(w, r, http.StatusCreated, snap)
}

func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	snap, err := s.GameService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, snap)
}

func (s *Server) handleDeleteGame(w http.ResponseWriter, r *http.Request) {
	if err := s.GameService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleStartGame(w http.ResponseWriter, r *http.Request) {
	snap, err := s.GameService.Start(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, snap)
}

func (s *Server) handleAnswer(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var answer services.Answer
	if err := decodeBody(w, r, &answer); err != nil {
		handleError(w, r, err)
		return
	}

	logger.FromContext(r.Context()).Debug("answer received: game_id=%s", id)
	snap, err := s.GameService.Submit(r.Context(), id, answer)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, snap)
}

func (s *Server) handleNextRound(w http.ResponseWriter, r *http.Request) {
	snap, err := s.GameService.Next(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, snap)
}

func (s *Server) handleResetGame(w http.ResponseWriter, r *http.Request) {
	snap, err := s.GameService.Reset(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, snap)
}

func (s *Server) handleFlip(w http.ResponseWriter, r *http.Request) {
	var req flipRequest
	if err := decodeBody(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	snap, err := s.GameService.Flip(r.Context(), chi.URLParam(r, "id"), req.CardID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, snap)
}
