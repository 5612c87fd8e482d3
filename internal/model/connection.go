package model

import (
	"time"
)

// Connection is one respondent's link to an external provider account,
// holding the OAuth tokens the provider client needs.
type Connection struct {
	CreatedAt    time.Time
	UpdatedAt    time.Time
	TokenExpiry  time.Time
	ID           string
	Provider     string
	Label        string
	AccessToken  string
	RefreshToken string
}
