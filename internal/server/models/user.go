// Package models defines the row types stored in the relational schema.
package models

import "time"

// User is an account row. UID identifies the user globally (distinct from
// the row's primary key); SID is the server-side session correlation token
// cross-checked against the caller-presented session. Password only ever
// holds a bcrypt hash, and is blanked before a row leaves the persistence
// layer.
type User struct {
	ID         int64
	Username   string
	Password   string
	Email      string
	Membership string
	UID        string
	SID        string
	CreatedAt  time.Time
}

// ScrubPassword blanks the password hash so the row can be handed to
// callers outside the credential store.
func (u *User) ScrubPassword() {
	u.Password = ""
}
