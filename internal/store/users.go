package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

type User struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Email        string          `json:"email"`
	PasswordHash string          `json:"-"`
	Phone        string          `json:"phone,omitempty"`
	Profession   string          `json:"profession,omitempty"`
	Preferences  json.RawMessage `json:"preferences"`
	Favorites    []string        `json:"favorites"`
	IsVerified   bool            `json:"isVerified"`
	CreatedAt    string          `json:"createdAt"`
	LastLogin    string          `json:"lastLogin,omitempty"`
}

func CreateUser(ctx context.Context, db *sql.DB, u User) error {
	if u.Preferences == nil {
		u.Preferences = json.RawMessage(`{}`)
	}
	favs, _ := json.Marshal(emptyIfNil(u.Favorites))
	_, err := db.ExecContext(ctx, `
INSERT INTO users (id, name, email, password_hash, phone, profession, preferences, favorites, is_verified, created_at, last_login)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, '');`,
		u.ID, u.Name, u.Email, u.PasswordHash, u.Phone, u.Profession,
		string(u.Preferences), string(favs), boolToInt(u.IsVerified),
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func scanUser(row interface{ Scan(...any) error }) (User, error) {
	var u User
	var prefs, favs string
	var verified int
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Phone,
		&u.Profession, &prefs, &favs, &verified, &u.CreatedAt, &u.LastLogin)
	if err != nil {
		return User{}, err
	}
	u.Preferences = json.RawMessage(prefs)
	_ = json.Unmarshal([]byte(favs), &u.Favorites)
	u.IsVerified = verified != 0
	return u, nil
}

const userColumns = `id, name, email, password_hash, phone, profession, preferences, favorites, is_verified, created_at, last_login`

func GetUserByEmail(ctx context.Context, db *sql.DB, email string) (User, bool, error) {
	row := db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = ?;`, email)
	u, err := scanUser(row)
	if err == sql.ErrNoRows {
		return User{}, false, nil
	}
	if err != nil {
		return User{}, false, err
	}
	return u, true, nil
}

func GetUserByID(ctx context.Context, db *sql.DB, id string) (User, bool, error) {
	row := db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?;`, id)
	u, err := scanUser(row)
	if err == sql.ErrNoRows {
		return User{}, false, nil
	}
	if err != nil {
		return User{}, false, err
	}
	return u, true, nil
}

func TouchLastLogin(ctx context.Context, db *sql.DB, id string) error {
	_, err := db.ExecContext(ctx, `UPDATE users SET last_login = ? WHERE id = ?;`,
		time.Now().UTC().Format(time.RFC3339), id)
	return err
}

// UpdateUserPreferences merges the incoming object over the stored one, same
// shallow merge the original service did.
func UpdateUserPreferences(ctx context.Context, db *sql.DB, id string, incoming json.RawMessage) (json.RawMessage, error) {
	u, ok, err := GetUserByID(ctx, db, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, sql.ErrNoRows
	}

	merged := map[string]any{}
	_ = json.Unmarshal(u.Preferences, &merged)
	var in map[string]any
	if err := json.Unmarshal(incoming, &in); err != nil {
		return nil, fmt.Errorf("preferences must be an object: %w", err)
	}
	for k, v := range in {
		merged[k] = v
	}

	out, _ := json.Marshal(merged)
	if _, err := db.ExecContext(ctx, `UPDATE users SET preferences = ? WHERE id = ?;`, string(out), id); err != nil {
		return nil, err
	}
	return out, nil
}

func AddFavorite(ctx context.Context, db *sql.DB, userID, listingID string) ([]string, error) {
	u, ok, err := GetUserByID(ctx, db, userID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, sql.ErrNoRows
	}
	for _, f := range u.Favorites {
		if f == listingID {
			return u.Favorites, nil
		}
	}
	favs := append(u.Favorites, listingID)
	b, _ := json.Marshal(favs)
	if _, err := db.ExecContext(ctx, `UPDATE users SET favorites = ? WHERE id = ?;`, string(b), userID); err != nil {
		return nil, err
	}
	return favs, nil
}

func RemoveFavorite(ctx context.Context, db *sql.DB, userID, listingID string) ([]string, error) {
	u, ok, err := GetUserByID(ctx, db, userID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, sql.ErrNoRows
	}
	favs := make([]string, 0, len(u.Favorites))
	for _, f := range u.Favorites {
		if f != listingID {
			favs = append(favs, f)
		}
	}
	b, _ := json.Marshal(favs)
	if _, err := db.ExecContext(ctx, `UPDATE users SET favorites = ? WHERE id = ?;`, string(b), userID); err != nil {
		return nil, err
	}
	return favs, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
