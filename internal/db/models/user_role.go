package models

import (
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type UserRoleName string

const (
	UserRoleAdmin  UserRoleName = "admin"
	UserRoleUser   UserRoleName = "user"
	UserRoleViewer UserRoleName = "viewer"
)

func (r UserRoleName) String() string {
	return string(r)
}

func (r UserRoleName) CapitalizedString() string {
	return cases.Title(language.English).String(r.String())
}

func (r UserRoleName) IsValid() bool {
	switch r {
	case UserRoleAdmin, UserRoleUser, UserRoleViewer:
		return true
	}
	return false
}

type UserRole struct {
	ID         int64        `json:"id" pg:",pk"`
	TeamID     string       `json:"team_id" pg:",notnull"`
	UserID     string       `json:"user_id" pg:",notnull"`
	Role       UserRoleName `json:"role" pg:",notnull,default:'user'"`
	AssignedBy string       `json:"assigned_by"`
	AssignedAt time.Time    `json:"assigned_at" pg:",notnull,default:now()"`
}
