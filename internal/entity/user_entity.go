package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the public profile we keep for authors. Credentials never live
// here, the identity provider owns them.
type User struct {
	Id        uuid.UUID
	Username  string
	Nickname  *string
	AvatarURL *string
	Bio       *string
	Email     *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// DisplayName prefers the nickname and falls back to the username.
func (u *User) DisplayName() string {
	if u.Nickname != nil && *u.Nickname != "" {
		return *u.Nickname
	}
	return u.Username
}
