package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/vytor/pricepulse/internal/logger"
	"github.com/vytor/pricepulse/internal/services"
)

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Server struct {
	GameService    services.GameService
	Store          Pinger // nil when the catalog is served without a store
	CORSOrigins    []string
	RequestTimeout time.Duration
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.FromContext(r.Context()).Error("failed to encode response: %v", err)
	}
}
