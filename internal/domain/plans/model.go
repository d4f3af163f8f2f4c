package plans

import (
	"time"

	"startup-marketplace/internal/domain/access"

	"gorm.io/datatypes"
)

type Plan struct {
	ID            uint                              `gorm:"primaryKey" json:"id"`
	Name          string                            `gorm:"not null" json:"name"`
	PlanFor       string                            `gorm:"type:varchar(20);not null;index" json:"plan_for"`
	AllowedFields datatypes.JSONSlice[access.Token] `json:"allowed_fields"`
	Price         float64                           `gorm:"not null" json:"price"`
	Description   *string                           `json:"description"`
	StripePriceID *string                           `gorm:"column:stripe_price_id;uniqueIndex:idx_plans_stripe_price_id" json:"stripe_price_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Subscription links a user to a plan. Rows are deactivated, never deleted, on unsubscribe.
type Subscription struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"not null;uniqueIndex:idx_user_plans_user_plan" json:"user_id"`
	PlanID    uint       `gorm:"not null;uniqueIndex:idx_user_plans_user_plan" json:"plan_id"`
	Plan      *Plan      `gorm:"constraint:OnDelete:CASCADE;" json:"plan,omitempty"`
	IsActive  bool       `gorm:"not null;index" json:"is_active"`
	StartedAt time.Time  `gorm:"not null" json:"started_at"`
	ExpiresAt *time.Time `json:"expires_at"`
}

func (Subscription) TableName() string { return "user_plans" }
