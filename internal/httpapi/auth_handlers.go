package httpapi

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"neighborfit-engine/internal/auth"
	"neighborfit-engine/internal/store"
)

type AuthHandler struct {
	DB       *sql.DB
	Secret   []byte
	TokenTTL time.Duration
}

type registerRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	Phone      string `json:"phone"`
	Profession string `json:"profession"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_json", "invalid JSON: "+err.Error())
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Name == "" || req.Email == "" || len(req.Password) < 6 {
		WriteError(w, r, http.StatusBadRequest, "invalid_input",
			"name, email and a password of at least 6 characters are required")
		return
	}

	if _, exists, err := store.GetUserByEmail(r.Context(), h.DB, req.Email); err != nil {
		WriteError(w, r, http.StatusInternalServerError, "db_error", err.Error())
		return
	} else if exists {
		WriteError(w, r, http.StatusConflict, "email_taken", "an account with this email already exists")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "hash_error", err.Error())
		return
	}

	u := store.User{
		ID:           "user-" + uuid.NewString(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Phone:        req.Phone,
		Profession:   req.Profession,
	}
	if err := store.CreateUser(r.Context(), h.DB, u); err != nil {
		WriteError(w, r, http.StatusInternalServerError, "db_error", err.Error())
		return
	}

	tok, err := auth.NewToken(h.Secret, u.ID, h.TokenTTL)
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "token_error", err.Error())
		return
	}
	WriteJSON(w, http.StatusCreated, map[string]any{"success": true, "token": tok, "user": publicUser(u)})
}

func (h AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_json", "invalid JSON: "+err.Error())
		return
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	u, ok, err := store.GetUserByEmail(r.Context(), h.DB, req.Email)
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "db_error", err.Error())
		return
	}
	if !ok || !auth.CheckPassword(u.PasswordHash, req.Password) {
		WriteError(w, r, http.StatusUnauthorized, "bad_credentials", "invalid email or password")
		return
	}

	_ = store.TouchLastLogin(r.Context(), h.DB, u.ID)

	tok, err := auth.NewToken(h.Secret, u.ID, h.TokenTTL)
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "token_error", err.Error())
		return
	}
	writeJSON(w, map[string]any{"success": true, "token": tok, "user": publicUser(u)})
}

// userFromRequest authenticates the bearer token and loads the account.
func (h AuthHandler) userFromRequest(w http.ResponseWriter, r *http.Request) (store.User, bool) {
	raw := strings.TrimSpace(r.Header.Get("Authorization"))
	const prefix = "Bearer "
	if !strings.HasPrefix(raw, prefix) {
		WriteError(w, r, http.StatusUnauthorized, "missing_token", "bearer token required")
		return store.User{}, false
	}

	uid, err := auth.ParseToken(h.Secret, strings.TrimSpace(raw[len(prefix):]))
	if err != nil {
		WriteError(w, r, http.StatusUnauthorized, "invalid_token", "invalid or expired token")
		return store.User{}, false
	}

	u, ok, err := store.GetUserByID(r.Context(), h.DB, uid)
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "db_error", err.Error())
		return store.User{}, false
	}
	if !ok {
		WriteError(w, r, http.StatusUnauthorized, "unknown_user", "account no longer exists")
		return store.User{}, false
	}
	return u, true
}

func (h AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	u, ok := h.userFromRequest(w, r)
	if !ok {
		return
	}
	writeJSON(w, map[string]any{"success": true, "user": publicUser(u)})
}

func (h AuthHandler) UpdatePreferences(w http.ResponseWriter, r *http.Request) {
	u, ok := h.userFromRequest(w, r)
	if !ok {
		return
	}

	var incoming json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&incoming); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_json", "invalid JSON: "+err.Error())
		return
	}

	merged, err := store.UpdateUserPreferences(r.Context(), h.DB, u.ID, incoming)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteError(w, r, http.StatusNotFound, "unknown_user", "account no longer exists")
			return
		}
		WriteError(w, r, http.StatusBadRequest, "invalid_preferences", err.Error())
		return
	}
	writeJSON(w, map[string]any{"success": true, "preferences": merged})
}

type favoriteRequest struct {
	PGID string `json:"pgId"`
}

func (h AuthHandler) AddFavorite(w http.ResponseWriter, r *http.Request) {
	u, ok := h.userFromRequest(w, r)
	if !ok {
		return
	}

	var req favoriteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.PGID == "" {
		WriteError(w, r, http.StatusBadRequest, "invalid_input", "pgId is required")
		return
	}
	h.writeFavorites(w, r, store.AddFavorite, u.ID, req.PGID)
}

func (h AuthHandler) RemoveFavoriteByPath(w http.ResponseWriter, r *http.Request) {
	u, ok := h.userFromRequest(w, r)
	if !ok {
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/api/auth/favorites/")
	if id == "" || strings.Contains(id, "/") {
		WriteError(w, r, http.StatusBadRequest, "invalid_id", "invalid listing id")
		return
	}
	h.writeFavorites(w, r, store.RemoveFavorite, u.ID, id)
}

func (h AuthHandler) writeFavorites(w http.ResponseWriter, r *http.Request,
	op func(ctx context.Context, db *sql.DB, userID, listingID string) ([]string, error),
	userID, listingID string) {
	favs, err := op(r.Context(), h.DB, userID, listingID)
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "db_error", err.Error())
		return
	}
	if favs == nil {
		favs = []string{}
	}
	writeJSON(w, map[string]any{"success": true, "favorites": favs})
}

// publicUser strips fields that must not leave the server.
func publicUser(u store.User) store.User {
	u.PasswordHash = ""
	return u
}
