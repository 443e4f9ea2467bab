// Package accounts owns the durable registry of user accounts and the
// single active-session pointer.
package accounts

import "time"

// Account is the persisted registry entry. Salt and Verifier are the
// credential material and never leave this package: every account handed to
// a caller or written into the session pointer goes through Profile first.
type Account struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Salt      []byte    `json:"salt"`
	Verifier  []byte    `json:"verifier"`
	CreatedAt time.Time `json:"createdAt"`
}

// Profile is the sanitized view of an Account, safe to expose to callers
// and to persist as the current session.
type Profile struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// Profile strips credential material from the account.
func (a *Account) Profile() *Profile {
	return &Profile{
		ID:        a.ID,
		Name:      a.Name,
		Email:     a.Email,
		CreatedAt: a.CreatedAt,
	}
}
