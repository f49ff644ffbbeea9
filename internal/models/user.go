package models

import (
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// User as returned by the remote auth endpoints.
type User struct {
	ID         ID      `json:"id" validate:"required"`
	Name       string  `json:"name"`
	Email      string  `json:"email"`
	Phone      string  `json:"phone,omitempty"`
	Segment    string  `json:"segment,omitempty"`
	Orders     int     `json:"orders,omitempty"`
	TotalSpent Amount  `json:"totalSpent,omitempty"`
	Rating     float64 `json:"rating,omitempty"`
	LastOrder  string  `json:"lastOrder,omitempty"`
	Status     string  `json:"status,omitempty"`
}

// Customer is a user row formatted for the admin customers table.
type Customer struct {
	ID         ID      `json:"id"`
	Name       string  `json:"name"`
	Email      string  `json:"email"`
	Phone      string  `json:"phone"`
	Segment    string  `json:"segment"`
	Orders     int     `json:"orders"`
	TotalSpent string  `json:"totalSpent"`
	Rating     float64 `json:"rating"`
	LastOrder  string  `json:"lastOrder"`
	Status     string  `json:"status"`
}

// SessionRequest records a login performed against the remote auth API.
type SessionRequest struct {
	User  User   `json:"user" validate:"required"`
	Token string `json:"token,omitempty"`
}

type EmailCheckResponse struct {
	Exists bool `json:"exists"`
}

type AccountHint struct {
	Exists bool   `json:"exists"`
	Next   string `json:"next"`
}

// Claims carried by tokens issued by the remote auth API.
type Claims struct {
	UserID ID     `json:"id"`
	Email  string `json:"email"`
	Name   string `json:"name,omitempty"`
	Role   string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// IsAdmin reports whether the token grants dashboard access.
func (c *Claims) IsAdmin() bool {
	if c == nil {
		return false
	}

	switch strings.ToLower(c.Role) {
	case "admin", "administrator":
		return true
	default:
		return false
	}
}

type WishlistEntry struct {
	UserID     ID `json:"userId" validate:"required"`
	TemplateID ID `json:"templateId" validate:"required"`
}

// IsWishlisted reports whether entries hold the (userID, templateID) pair.
func IsWishlisted(entries []WishlistEntry, userID, templateID ID) bool {
	for _, entry := range entries {
		if entry.UserID == userID && entry.TemplateID == templateID {
			return true
		}
	}

	return false
}

type WishlistStatus struct {
	TemplateID ID   `json:"templateId"`
	Liked      bool `json:"liked"`
}
