package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Session is the server-side record for a logged-in admin. The backend token
// pair never leaves the session store; the cookie only carries identity claims.
type Session struct {
	SID          string    `json:"sid"`
	UserID       string    `json:"user_id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	CreatedAt    time.Time `json:"created_at"`
}

// SessionClaims is the JWT payload signed into the session cookie.
type SessionClaims struct {
	SID    string `json:"sid"`
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// Flash levels understood by the toast partial.
const (
	FlashSuccess = "success"
	FlashError   = "error"
)

// Flash is a one-shot message surfaced on the next rendered page.
type Flash struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}
