package models

import (
	"time"

	"github.com/uptrace/bun"
)

type AdminRole string

const (
	AdminRoleModerator  AdminRole = "moderator"
	AdminRoleSuperadmin AdminRole = "superadmin"
)

type Admin struct {
	bun.BaseModel `bun:"table:admin"`
	ID            int64      `bun:"id,pk" json:"id"`
	Role          AdminRole  `bun:"role" json:"role"`
	LastLoginAt   *time.Time `bun:"last_login_at" json:"last_login_at"`
	CreatedAt     time.Time  `bun:"created_at,default:current_timestamp" json:"created_at"`
}

func (a *Admin) IsSuper() bool {
	return a != nil && a.Role == AdminRoleSuperadmin
}
