package httpapi

import (
	"database/sql"
	"net/http"
	"time"

	"neighborfit-engine/internal/events"
)

type HealthHandler struct {
	DB        *sql.DB
	Hub       *events.Hub
	StartedAt time.Time
}

func (h HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	dbOK := h.DB.PingContext(r.Context()) == nil
	writeJSON(w, map[string]any{
		"ok":          dbOK,
		"db":          dbOK,
		"sse_clients": h.Hub.ClientCount(),
		"uptime_s":    int(time.Since(h.StartedAt).Seconds()),
	})
}
