package access

import (
	"strings"

	"startup-marketplace/internal/domain/startups"
	"startup-marketplace/internal/errs"
)

// sectionTokens maps each section token to the section it unlocks.
var sectionTokens = map[Token]startups.Section{
	TokenStartup:        startups.SectionCore,
	TokenFinancials:     startups.SectionFinancials,
	TokenTraction:       startups.SectionTraction,
	TokenSalesMarketing: startups.SectionSalesMarketing,
	TokenOperational:    startups.SectionOperational,
	TokenLegal:          startups.SectionLegal,
	TokenAssets:         startups.SectionAssets,
	TokenContacts:       startups.SectionContacts,
}

type fieldGroup struct {
	token   Token
	section startups.Section
	attrs   []string
}

// fieldGroups is ordered; the filter applies groups in this order.
var fieldGroups = []fieldGroup{
	{TokenStartupRevenue, startups.SectionFinancials, []string{"monthly_revenue", "annual_revenue"}},
	{TokenStartupProfit, startups.SectionFinancials, []string{"monthly_profit_loss", "gross_margin"}},
	{TokenStartupValuation, startups.SectionFinancials, []string{"valuation_expectation", "funding_raised"}},
	{TokenStartupCustomers, startups.SectionTraction, []string{"total_customers", "monthly_active_customers", "major_clients"}},
	{TokenStartupGrowth, startups.SectionTraction, []string{"customer_growth_yoy", "customer_retention_rate", "churn_rate"}},
	{TokenStartupMarketing, startups.SectionSalesMarketing, []string{"marketing_platforms", "cac", "ltv", "conversion_rate"}},
}

// Vocabulary returns every valid token, section tokens first.
func Vocabulary() []Token {
	out := []Token{
		TokenStartup, TokenFinancials, TokenTraction, TokenSalesMarketing,
		TokenOperational, TokenLegal, TokenAssets, TokenContacts,
	}
	for _, g := range fieldGroups {
		out = append(out, g.token)
	}
	return out
}

func (t Token) Valid() bool {
	if _, ok := sectionTokens[t]; ok {
		return true
	}
	for _, g := range fieldGroups {
		if g.token == t {
			return true
		}
	}
	return false
}

// ParseTokens validates raw strings against the vocabulary, keeping order and dropping duplicates.
func ParseTokens(raw []string) ([]Token, error) {
	out := make([]Token, 0, len(raw))
	seen := make(map[Token]struct{}, len(raw))
	var unknown []string
	for _, r := range raw {
		t := Token(strings.TrimSpace(r))
		if !t.Valid() {
			unknown = append(unknown, r)
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	if len(unknown) > 0 {
		return nil, errs.Validation("Unknown allowed field tokens", map[string]any{"unknown": unknown, "allowed": Vocabulary()})
	}
	return out, nil
}
