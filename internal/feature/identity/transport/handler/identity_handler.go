// Package handler provides the sign-up, login and profile endpoints.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"jobboard/internal/api"
	"jobboard/internal/feature/identity/domain/entity"
	"jobboard/internal/feature/identity/transport/http/dto"
	"jobboard/internal/feature/identity/usecase"
	jwtmw "jobboard/internal/platform/jwt"
)

// IdentityUsecase defines account operations. Defined by the consumer.
type IdentityUsecase interface {
	Signup(ctx context.Context, role entity.Role, name, email, password string) (*entity.User, error)
	Login(ctx context.Context, role entity.Role, email, password string) (*usecase.LoginResult, error)
	Profile(ctx context.Context, id uint) (*entity.User, error)
}

// IdentityHandler serves the account endpoints of every role.
type IdentityHandler struct {
	identity IdentityUsecase
}

func NewIdentityHandler(identity IdentityUsecase) *IdentityHandler {
	return &IdentityHandler{identity: identity}
}

// roleText holds the per-role wording of the account endpoints.
type roleText struct {
	created  string
	loggedIn string
	denied   string
	redirect string
}

func textFor(role entity.Role) roleText {
	switch role {
	case entity.RoleJobSeeker:
		return roleText{
			created:  "User created successfully.",
			loggedIn: "User logged in successfully.",
			denied:   "Invalid credentials or not a job seeker account",
			redirect: "/views/dashboard.html",
		}
	case entity.RoleEmployer:
		return roleText{
			created:  "User created Successfully.",
			loggedIn: "Login successful",
			denied:   "Invalid credentials or not an employer account",
			redirect: "/views/recruiterDashboard.html",
		}
	case entity.RoleAdmin:
		return roleText{
			created:  "Admin user created successfully.",
			loggedIn: "Login successful",
			denied:   "Admin not found or invalid credentials.",
			redirect: "/views/adminDashboard.html",
		}
	}
	return roleText{created: "Created.", loggedIn: "Login successful", denied: "Invalid credentials."}
}

// Signup returns the sign-up endpoint for role.
func (h *IdentityHandler) Signup(role entity.Role) gin.HandlerFunc {
	text := textFor(role)
	return func(c *gin.Context) {
		var req dto.SignupReq
		if err := c.ShouldBindJSON(&req); err != nil {
			slog.Warn("signup validation failed", "error", err, "role", role, "remote_addr", c.ClientIP())
			api.Fail(c, http.StatusBadRequest, api.BindMessage(err))
			return
		}

		user, err := h.identity.Signup(c.Request.Context(), role, req.DisplayName(), req.Email, req.Password)
		if err != nil {
			switch {
			case errors.Is(err, usecase.ErrEmailAlreadyExists):
				slog.Warn("signup rejected", "error", err, "role", role, "remote_addr", c.ClientIP())
				api.Fail(c, http.StatusConflict, "Email already exists")
			case errors.Is(err, usecase.ErrMissingField), errors.Is(err, usecase.ErrWeakPassword), errors.Is(err, usecase.ErrInvalidRole):
				api.Fail(c, http.StatusBadRequest, err.Error())
			default:
				slog.Error("signup failed", "error", err, "role", role, "remote_addr", c.ClientIP())
				api.Fail(c, http.StatusInternalServerError, "Server error during sign-up.")
			}
			return
		}
		slog.Info("user signup successful", "user_id", user.ID, "role", role, "remote_addr", c.ClientIP())
		c.JSON(http.StatusCreated, dto.SignupRes{Message: text.created, User: dto.NewUserRes(user)})
	}
}

// Login returns the login endpoint for role.
func (h *IdentityHandler) Login(role entity.Role) gin.HandlerFunc {
	text := textFor(role)
	return func(c *gin.Context) {
		var req dto.LoginReq
		if err := c.ShouldBindJSON(&req); err != nil {
			slog.Warn("login validation failed", "error", err, "role", role, "remote_addr", c.ClientIP())
			api.Fail(c, http.StatusBadRequest, api.BindMessage(err))
			return
		}

		res, err := h.identity.Login(c.Request.Context(), role, req.Email, req.Password)
		if err != nil {
			if errors.Is(err, usecase.ErrInvalidCredentials) {
				// the message never reveals whether the email exists
				slog.Warn("login failed", "role", role, "remote_addr", c.ClientIP())
				api.Fail(c, http.StatusUnauthorized, text.denied)
				return
			}
			slog.Error("login error", "error", err, "role", role, "remote_addr", c.ClientIP())
			api.Fail(c, http.StatusInternalServerError, "Server error during login.")
			return
		}
		slog.Info("user login successful", "user_id", res.User.ID, "role", role, "remote_addr", c.ClientIP())
		c.JSON(http.StatusOK, dto.LoginRes{
			Message:   text.loggedIn,
			Token:     res.Token,
			ExpiresIn: int64(res.ExpiresIn.Seconds()),
			User:      dto.NewUserRes(res.User),
			Redirect:  text.redirect,
		})
	}
}

// Profile handles GET /user/profile and GET /recruiter/profile.
func (h *IdentityHandler) Profile(c *gin.Context) {
	id, ok := jwtmw.UserID(c)
	if !ok {
		api.Fail(c, http.StatusUnauthorized, "No token provided, authorization denied.")
		return
	}
	user, err := h.identity.Profile(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, usecase.ErrUserNotFound) {
			api.Fail(c, http.StatusNotFound, "User profile not found.")
			return
		}
		slog.Error("profile lookup failed", "error", err, "user_id", id)
		api.Fail(c, http.StatusInternalServerError, "Server error while fetching user profile.")
		return
	}
	c.JSON(http.StatusOK, dto.ProfileRes{User: dto.NewUserRes(user)})
}
