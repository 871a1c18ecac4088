package model

import "time"

// User is the authenticated account as the backend reports it. The session
// store replaces it wholesale on login and profile updates and clears it on
// logout.
type User struct {
	ID        string    `json:"_id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Profile   *Profile  `json:"profile,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Profile holds the optional profile sub-record.
type Profile struct {
	Phone     string `json:"phone,omitempty"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
}
