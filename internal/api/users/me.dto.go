package users

import (
	"time"

	"startup-marketplace/internal/domain/access"
	"startup-marketplace/internal/domain/users"
)

type MeResponse struct {
	User   UserDTO     `json:"user"`
	Stats  users.Stats `json:"stats"`
	Access AccessDTO   `json:"access"`
}

/* ---------- USER ---------- */

type UserDTO struct {
	ID                 uint      `json:"id"`
	Email              string    `json:"email"`
	Role               string    `json:"role"`
	AuthProvider       string    `json:"auth_provider"`
	CurrentPricingPlan string    `json:"current_pricing_plan"` // legacy display flag
	CreatedAt          time.Time `json:"created_at"`
}

/* ---------- ACCESS ---------- */

type AccessDTO struct {
	AllowedFields []access.Token    `json:"allowed_fields"`
	Subscriptions []SubscriptionDTO `json:"subscriptions"`
}

type SubscriptionDTO struct {
	PlanID    uint       `json:"plan_id"`
	PlanName  string     `json:"plan_name"`
	PlanFor   string     `json:"plan_for"`
	StartedAt time.Time  `json:"started_at"`
	ExpiresAt *time.Time `json:"expires_at"`
}

type UpdateMeRequest struct {
	Email *string `json:"email" binding:"omitempty,email"`
	Role  *string `json:"role" binding:"omitempty,oneof=startup_owner investor"`
}

type UpdatePlanRequest struct {
	Plan string `json:"plan" binding:"required,oneof=free premium"`
}
