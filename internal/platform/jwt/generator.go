// Package jwtmw issues and verifies HS256 access tokens.
package jwtmw

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"jobboard/internal/feature/identity/domain/entity"
)

// TTLs holds the token lifetime per role.
type TTLs struct {
	JobSeeker time.Duration
	Employer  time.Duration
	Admin     time.Duration
}

// DefaultTTLs: one hour for job seekers and admins, two for employers.
var DefaultTTLs = TTLs{JobSeeker: time.Hour, Employer: 2 * time.Hour, Admin: time.Hour}

// Generator defines the interface for JWT token generation.
type Generator interface {
	// GenerateToken creates a signed token and reports its lifetime.
	GenerateToken(userID uint, email string, role entity.Role) (string, time.Duration, error)
}

type generator struct {
	secret []byte
	ttls   TTLs
	now    func() time.Time
}

// NewGenerator creates a generator. Zero TTLs fall back to DefaultTTLs.
func NewGenerator(secret string, ttls TTLs) Generator {
	if ttls.JobSeeker <= 0 {
		ttls.JobSeeker = DefaultTTLs.JobSeeker
	}
	if ttls.Employer <= 0 {
		ttls.Employer = DefaultTTLs.Employer
	}
	if ttls.Admin <= 0 {
		ttls.Admin = DefaultTTLs.Admin
	}
	return &generator{secret: []byte(secret), ttls: ttls, now: time.Now}
}

func (g *generator) ttlFor(role entity.Role) (time.Duration, error) {
	switch role {
	case entity.RoleJobSeeker:
		return g.ttls.JobSeeker, nil
	case entity.RoleEmployer:
		return g.ttls.Employer, nil
	case entity.RoleAdmin:
		return g.ttls.Admin, nil
	}
	return 0, fmt.Errorf("no token lifetime for role %q", role)
}

// GenerateToken signs sub, email, role, iat and exp claims.
func (g *generator) GenerateToken(userID uint, email string, role entity.Role) (string, time.Duration, error) {
	if len(g.secret) == 0 {
		return "", 0, errors.New("jwt secret is empty")
	}
	ttl, err := g.ttlFor(role)
	if err != nil {
		return "", 0, err
	}

	now := g.now()
	claims := jwt.MapClaims{
		"sub":   userID,
		"email": email,
		"role":  string(role),
		"iat":   now.Unix(),
		"exp":   now.Add(ttl).Unix(),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(g.secret)
	if err != nil {
		return "", 0, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, ttl, nil
}
