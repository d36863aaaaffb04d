package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vytor/pricepulse/internal/errors"
	"github.com/vytor/pricepulse/internal/models"
)

type catalogResponse struct {
	Variant    models.Variant    `json:"variant"`
	Difficulty models.Difficulty `json:"difficulty"`
	Label      string            `json:"label"`
	Items      any               `json:"items"`
}

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	variant, err := models.ParseVariant(chi.URLParam(r, "variant"))
	if err != nil {
		handleError(w, r, errors.NewNotFoundError("catalog", chi.URLParam(r, "variant")))
		return
	}
	difficulty, err := models.ParseDifficulty(r.URL.Query().Get("difficulty"))
	if err != nil {
		handleError(w, r, errors.NewValidationError("difficulty", err.Error()))
		return
	}

	items, err := s.GameService.Catalog().ByVariant(variant, difficulty)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, catalogResponse{
		Variant:    variant,
		Difficulty: difficulty,
		Label:      difficulty.Label(),
		Items:      items,
	})
}
