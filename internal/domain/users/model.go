package users

import (
	"time"

	"startup-marketplace/internal/domain/access"
)

type User struct {
	ID                 uint   `gorm:"primaryKey" json:"id"`
	Email              string `gorm:"not null;uniqueIndex:idx_users_email" json:"email"`
	FirebaseUID        string `gorm:"column:firebase_uid;not null;uniqueIndex:idx_users_firebase_uid" json:"firebase_uid"`
	AuthProvider       string `gorm:"type:varchar(20);not null;default:'google'" json:"auth_provider"`
	Role               string `gorm:"type:varchar(20);not null" json:"role"`
	CurrentPricingPlan string `gorm:"type:varchar(20);not null;default:'free'" json:"current_pricing_plan"`

	CreatedAt time.Time `json:"created_at"`
}

// Identity is what the authorization layer sees of u.
func (u *User) Identity() *access.Identity {
	return &access.Identity{ID: u.ID, Role: u.Role, PlanTier: u.CurrentPricingPlan}
}

// Auth providers accepted on first sight.
var providers = map[string]bool{"google": true, "facebook": true, "github": true, "apple": true}

func normalizeProvider(p string) string {
	if providers[p] {
		return p
	}
	return "google"
}

func ValidRole(r string) bool {
	return r == access.RoleStartupOwner || r == access.RoleInvestor
}
