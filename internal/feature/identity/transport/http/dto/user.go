// Package dto defines the request and response bodies of the identity feature.
package dto

import (
	"strings"
	"time"

	"jobboard/internal/feature/identity/domain/entity"
)

// SignupReq is the body of every sign-up endpoint. The job seeker form sends
// "username", the recruiter and admin forms send "name".
type SignupReq struct {
	Username string `json:"username" binding:"max=255"`
	Name     string `json:"name" binding:"required_without=Username,max=255"`
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,min=8,max=72"`
}

// DisplayName prefers name over username.
func (r SignupReq) DisplayName() string {
	if n := strings.TrimSpace(r.Name); n != "" {
		return n
	}
	return strings.TrimSpace(r.Username)
}

// LoginReq is the body of every login endpoint.
type LoginReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UserRes is the public view of a user. The password hash is never included.
type UserRes struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	ResumeURL string    `json:"resumeUrl,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

func NewUserRes(u *entity.User) UserRes {
	return UserRes{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      string(u.Role),
		ResumeURL: u.ResumeURL,
		CreatedAt: u.CreatedAt,
	}
}

func NewUserList(users []entity.User) []UserRes {
	out := make([]UserRes, 0, len(users))
	for i := range users {
		out = append(out, NewUserRes(&users[i]))
	}
	return out
}

// SignupRes is returned by a successful sign-up.
type SignupRes struct {
	Message string  `json:"message"`
	User    UserRes `json:"user"`
}

// LoginRes is returned by a successful login. ExpiresIn is in seconds.
type LoginRes struct {
	Message   string  `json:"message"`
	Token     string  `json:"token"`
	ExpiresIn int64   `json:"expiresIn"`
	User      UserRes `json:"user"`
	Redirect  string  `json:"redirect"`
}

// ProfileRes wraps the caller's profile.
type ProfileRes struct {
	User UserRes `json:"user"`
}
