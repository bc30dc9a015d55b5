package httpapi

import (
	"database/sql"
	"sync/atomic"
	"time"

	"neighborfit-engine/internal/config"
	"neighborfit-engine/internal/events"
)

type Deps struct {
	DB *sql.DB

	Hub *events.Hub

	// Atomic stores
	CfgVal       *atomic.Value // stores config.Config
	SearchStatus *atomic.Value // stores httpapi.SearchStatus

	// Config persistence
	UserCfgPath string
	LoadCfg     func() (config.Config, error)

	// Token signing
	JWTSecret []byte
	TokenTTL  time.Duration

	StartedAt time.Time
}
