package models

import (
	"strings"
	"time"
)

// User is an identity record as served by the Sentinel API. The ID is
// assigned by the server and immutable once set; an empty ID means "no
// authenticated user" on this side of the wire.
type User struct {
	ID                    string    `json:"id"`
	Username              string    `json:"username"`
	FirstName             string    `json:"first_name"`
	LastName              string    `json:"last_name"`
	Email                 string    `json:"email"`
	PhoneNumber           string    `json:"phone_number"`
	Gender                string    `json:"gender"`
	Birthday              string    `json:"birthday"`
	GraduateLevel         string    `json:"graduate_level"`
	GraduationYear        int       `json:"graduation_year"`
	Major                 string    `json:"major"`
	ShirtSize             string    `json:"shirt_size"`
	JacketSize            string    `json:"jacket_size"`
	SAERegistrationNumber string    `json:"sae_registration_number"`
	AvatarURL             string    `json:"avatar_url"`
	Verified              bool      `json:"verified"`
	Subteams              []Subteam `json:"subteams"`
	Roles                 []string  `json:"roles"`
	UpdatedAt             time.Time `json:"updated_at"`
	CreatedAt             time.Time `json:"created_at"`
}

// Subteam is a team subdivision a user can belong to. Memberships arrive
// embedded on the User; subteams are never fetched independently here.
type Subteam struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// InitUser is the empty-ID value the session store holds before a
// credential check populates it and after logout resets it.
func InitUser() User {
	return User{Subteams: []Subteam{}, Roles: []string{}}
}

// FullName joins the name fields for display.
func (u User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// HasRole reports whether the user carries the given role tag.
// Discord-sourced roles arrive prefixed with "d_".
func (u User) HasRole(role string) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// IsAdmin reports whether the user holds the Discord-sourced admin role.
// Client-side role checks only toggle UI affordances; the API re-enforces
// every privileged operation server-side.
func (u User) IsAdmin() bool {
	return u.HasRole("d_admin")
}

func (u User) String() string {
	return "(" + u.ID + ") " + u.FullName() + " [" + u.Email + "]"
}
