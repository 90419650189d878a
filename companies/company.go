package companies

import (
	"errors"
	"time"
)

// ErrNotFound is returned when a requested company does not exist.
var ErrNotFound = errors.New("company not found")

// Company is the persisted record for a Genuka company that has installed
// the application. ID and Handle both come from the platform; either one
// identifies the row during an upsert.
type Company struct {
	ID                string    `json:"id"`
	Handle            string    `json:"handle"`
	Name              string    `json:"name"`
	Description       string    `json:"description,omitempty"`
	AuthorizationCode string    `json:"authorization_code,omitempty"`
	AccessToken       string    `json:"access_token,omitempty"`
	LogoURL           string    `json:"logo_url,omitempty"`
	Phone             string    `json:"phone,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}
