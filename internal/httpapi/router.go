package httpapi

import "net/http"

// NewMux returns the raw mux so main() can still attach /shutdown (needs srv+token).
func NewMux(d Deps) *http.ServeMux {
	mux := http.NewServeMux()

	// Search
	srh := SearchHandler{DB: d.DB, Hub: d.Hub, CfgVal: d.CfgVal, Status: d.SearchStatus}
	mux.HandleFunc("/api/search", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: srh.Search,
	}))
	mux.HandleFunc("/api/search/stats", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: srh.Stats,
	}))

	// Listings
	lh := ListingsHandler{DB: d.DB, Hub: d.Hub}
	mux.HandleFunc("/api/pgs", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: lh.List,
	}))
	mux.HandleFunc("/api/pgs/areas", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: lh.Areas,
	}))
	mux.HandleFunc("/api/pgs/", methodMux(map[string]http.HandlerFunc{
		http.MethodGet:    lh.GetByPath,    // expects /api/pgs/{id}
		http.MethodDelete: lh.DeleteByPath, // expects /api/pgs/{id}
	}))
	mux.HandleFunc("/seed", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: lh.Seed,
	}))

	// Auth
	ah := AuthHandler{DB: d.DB, Secret: d.JWTSecret, TokenTTL: d.TokenTTL}
	mux.HandleFunc("/api/auth/register", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: ah.Register,
	}))
	mux.HandleFunc("/api/auth/login", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: ah.Login,
	}))
	mux.HandleFunc("/api/auth/me", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ah.Me,
	}))
	mux.HandleFunc("/api/auth/preferences", methodMux(map[string]http.HandlerFunc{
		http.MethodPut: ah.UpdatePreferences,
	}))
	mux.HandleFunc("/api/auth/favorites", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: ah.AddFavorite,
	}))
	mux.HandleFunc("/api/auth/favorites/", methodMux(map[string]http.HandlerFunc{
		http.MethodDelete: ah.RemoveFavoriteByPath, // expects /api/auth/favorites/{id}
	}))

	// Config
	ch := ConfigHandler{
		CfgVal:      d.CfgVal,
		UserCfgPath: d.UserCfgPath,
		LoadCfg:     d.LoadCfg,
		Hub:         d.Hub,
	}
	mux.HandleFunc("/config", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Get,
		http.MethodPut: ch.Put,
	}))
	mux.HandleFunc("/config/path", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Path,
	}))
	mux.HandleFunc("/config/validate", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Validate,
	}))

	// SSE events
	eh := EventsHandler{Hub: d.Hub}
	mux.HandleFunc("/events", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: eh.ServeSSE,
	}))

	// Health
	hh := HealthHandler{DB: d.DB, Hub: d.Hub, StartedAt: d.StartedAt}
	mux.HandleFunc("/health", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: hh.Health,
	}))

	return mux
}
