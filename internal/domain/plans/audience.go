package plans

import "strings"

// Audiences a plan can be sold to.
const (
	ForInvestor     = "investor"
	ForStartupOwner = "startup_owner"
)

// Legacy pricing flag on users. Display only, never consulted for access.
const (
	PricingFree    = "free"
	PricingPremium = "premium"
)

// NormalizeAudience returns the canonical audience or "" when s names none.
func NormalizeAudience(s string) string {
	switch a := strings.ToLower(strings.TrimSpace(s)); a {
	case ForInvestor, ForStartupOwner:
		return a
	}
	return ""
}

func ValidPricing(s string) bool {
	return s == PricingFree || s == PricingPremium
}
