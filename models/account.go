package models

import (
	"time"
)

// Provider identifies the identity source backing an account.
type Provider string

const (
	ProviderGoogle Provider = "GOOGLE"
	ProviderEmail  Provider = "EMAIL"
)

// Account binds a user to one external or local credential.
// The (provider, provider_id) pair is unique across the table.
type Account struct {
	ID         string    `db:"id"          json:"id"`
	Provider   Provider  `db:"provider"    json:"provider"`
	ProviderID string    `db:"provider_id" json:"provider_id"`
	UserID     string    `db:"user_id"     json:"user_id"`
	CreatedAt  time.Time `db:"created_at"  json:"created_at"`
}
