package users

import (
	"startup-marketplace/internal/domain/plans"
	"startup-marketplace/internal/domain/users"
)

func BuildUserDTO(u *users.User) UserDTO {
	return UserDTO{
		ID:                 u.ID,
		Email:              u.Email,
		Role:               u.Role,
		AuthProvider:       u.AuthProvider,
		CurrentPricingPlan: u.CurrentPricingPlan,
		CreatedAt:          u.CreatedAt,
	}
}

func BuildSubscriptionDTOs(subs []plans.Subscription) []SubscriptionDTO {
	out := make([]SubscriptionDTO, 0, len(subs))
	for _, s := range subs {
		dto := SubscriptionDTO{PlanID: s.PlanID, StartedAt: s.StartedAt, ExpiresAt: s.ExpiresAt}
		if s.Plan != nil {
			dto.PlanName = s.Plan.Name
			dto.PlanFor = s.Plan.PlanFor
		}
		out = append(out, dto)
	}
	return out
}
