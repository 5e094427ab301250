// Package dto defines the response bodies of the admin dashboard.
package dto

import (
	"jobboard/internal/feature/admin/usecase"
	identitydto "jobboard/internal/feature/identity/transport/http/dto"
)

// StatsRes is the body of GET /admin/stats.
type StatsRes struct {
	UserCount        int64 `json:"userCount"`
	JobCount         int64 `json:"jobCount"`
	ApplicationCount int64 `json:"applicationCount"`
}

func NewStatsRes(s *usecase.Stats) StatsRes {
	return StatsRes{UserCount: s.Users, JobCount: s.Jobs, ApplicationCount: s.Applications}
}

// UsersRes is the body of GET /admin/users.
type UsersRes struct {
	Users []identitydto.UserRes `json:"users"`
}
