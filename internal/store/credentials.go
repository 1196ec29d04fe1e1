package store

import (
	"database/sql"
	"fmt"

	"github.com/abhisek/quizdeck/internal/auth"
)

// Storage keys for the persisted credential. Absence of the token key
// means unauthenticated.
const (
	keyToken  = "token"
	keyUserID = "user_id"
)

// CredentialRepo persists the bearer credential in the credentials
// table. It implements auth.CredentialStore.
type CredentialRepo struct {
	db *sql.DB
}

var _ auth.CredentialStore = (*CredentialRepo)(nil)

func (r *CredentialRepo) Load() (auth.Credential, error) {
	token, err := r.get(keyToken)
	if err != nil {
		return auth.Credential{}, err
	}
	userID, err := r.get(keyUserID)
	if err != nil {
		return auth.Credential{}, err
	}
	return auth.Credential{Token: token, UserID: userID}, nil
}

func (r *CredentialRepo) SaveToken(token string) error {
	return r.set(keyToken, token)
}

func (r *CredentialRepo) SaveUserID(userID string) error {
	return r.set(keyUserID, userID)
}

func (r *CredentialRepo) Clear() error {
	if _, err := r.db.Exec(`DELETE FROM credentials WHERE key IN (?, ?)`, keyToken, keyUserID); err != nil {
		return fmt.Errorf("clear credentials: %w", err)
	}
	return nil
}

func (r *CredentialRepo) get(key string) (string, error) {
	var value string
	err := r.db.QueryRow(`SELECT value FROM credentials WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("load %s: %w", key, err)
	}
	return value, nil
}

func (r *CredentialRepo) set(key, value string) error {
	_, err := r.db.Exec(
		`INSERT INTO credentials (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}
