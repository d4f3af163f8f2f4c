package startups

import (
	"encoding/json"
	"sort"
	"time"

	"startup-marketplace/internal/domain/startups"
)

type CoreInput struct {
	Name                string   `json:"name" binding:"required"`
	Industry            string   `json:"industry" binding:"required"`
	YearFounded         int      `json:"year_founded" binding:"required,min=1900"`
	Description         string   `json:"description" binding:"required"`
	WebsiteLink         *string  `json:"website_link" binding:"omitempty,url"`
	FounderBackground   string   `json:"founder_background" binding:"required"`
	TeamSize            int      `json:"team_size" binding:"required,min=1"`
	SellEquity          *bool    `json:"sell_equity" binding:"required"`
	SellBusiness        *bool    `json:"sell_business" binding:"required"`
	ReasonForSelling    string   `json:"reason_for_selling" binding:"required"`
	DesiredBuyerProfile string   `json:"desired_buyer_profile" binding:"required"`
	AskingPrice         *float64 `json:"asking_price" binding:"omitempty,gt=0"`
}

type CoreUpdate struct {
	Name                *string  `json:"name" binding:"omitempty,min=1"`
	Industry            *string  `json:"industry" binding:"omitempty,min=1"`
	YearFounded         *int     `json:"year_founded" binding:"omitempty,min=1900"`
	Description         *string  `json:"description" binding:"omitempty,min=1"`
	WebsiteLink         *string  `json:"website_link" binding:"omitempty,url"`
	FounderBackground   *string  `json:"founder_background" binding:"omitempty,min=1"`
	TeamSize            *int     `json:"team_size" binding:"omitempty,min=1"`
	SellEquity          *bool    `json:"sell_equity"`
	SellBusiness        *bool    `json:"sell_business"`
	ReasonForSelling    *string  `json:"reason_for_selling" binding:"omitempty,min=1"`
	DesiredBuyerProfile *string  `json:"desired_buyer_profile" binding:"omitempty,min=1"`
	AskingPrice         *float64 `json:"asking_price" binding:"omitempty,gt=0"`
}

// Sections carries the optional section payloads shared by create and update.
type Sections struct {
	Financials     *startups.Financials     `json:"financials"`
	Traction       *startups.Traction       `json:"traction"`
	SalesMarketing *startups.SalesMarketing `json:"sales_marketing"`
	Operational    *startups.Operational    `json:"operational"`
	Legal          *startups.Legal          `json:"legal"`
	Assets         *startups.Assets         `json:"assets"`
	Contacts       *startups.Contacts       `json:"contacts"`
}

type CreateStartupRequest struct {
	Startup *CoreInput `json:"startup" binding:"required"`
	Sections
}

type UpdateStartupRequest struct {
	Startup *CoreUpdate `json:"startup"`
	Sections
}

func (r *CreateStartupRequest) toModel() *startups.Startup {
	in := r.Startup
	return &startups.Startup{
		Name:                in.Name,
		Industry:            in.Industry,
		YearFounded:         in.YearFounded,
		Description:         in.Description,
		WebsiteLink:         in.WebsiteLink,
		FounderBackground:   in.FounderBackground,
		TeamSize:            in.TeamSize,
		SellEquity:          *in.SellEquity,
		SellBusiness:        *in.SellBusiness,
		ReasonForSelling:    in.ReasonForSelling,
		DesiredBuyerProfile: in.DesiredBuyerProfile,
		AskingPrice:         in.AskingPrice,
		Financials:          r.Financials,
		Traction:            r.Traction,
		SalesMarketing:      r.SalesMarketing,
		Operational:         r.Operational,
		Legal:               r.Legal,
		Assets:              r.Assets,
		Contacts:            r.Contacts,
	}
}

// toPatch builds the domain patch. sent holds the raw request objects by key, so attributes
// explicitly set to null are cleared instead of skipped.
func (r *UpdateStartupRequest) toPatch(sent map[string]map[string]json.RawMessage) startups.Patch {
	p := startups.Patch{
		Core:           map[string]any{},
		Fields:         sentFields(sent),
		Financials:     r.Financials,
		Traction:       r.Traction,
		SalesMarketing: r.SalesMarketing,
		Operational:    r.Operational,
		Legal:          r.Legal,
		Assets:         r.Assets,
		Contacts:       r.Contacts,
	}
	u := r.Startup
	if u == nil {
		return p
	}
	set := func(col string, ok bool, v any) {
		if ok {
			p.Core[col] = v
		}
	}
	set("name", u.Name != nil, deref(u.Name))
	set("industry", u.Industry != nil, deref(u.Industry))
	set("year_founded", u.YearFounded != nil, deref(u.YearFounded))
	set("description", u.Description != nil, deref(u.Description))
	set("website_link", u.WebsiteLink != nil, u.WebsiteLink)
	set("founder_background", u.FounderBackground != nil, deref(u.FounderBackground))
	set("team_size", u.TeamSize != nil, deref(u.TeamSize))
	set("sell_equity", u.SellEquity != nil, deref(u.SellEquity))
	set("sell_business", u.SellBusiness != nil, deref(u.SellBusiness))
	set("reason_for_selling", u.ReasonForSelling != nil, deref(u.ReasonForSelling))
	set("desired_buyer_profile", u.DesiredBuyerProfile != nil, deref(u.DesiredBuyerProfile))
	set("asking_price", u.AskingPrice != nil, u.AskingPrice)
	return p
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}

func yearInFuture(y int) bool {
	return y > time.Now().Year()
}

func sentFields(sent map[string]map[string]json.RawMessage) map[startups.Section][]string {
	out := map[startups.Section][]string{}
	for _, sec := range startups.OptionalSections {
		obj, ok := sent[string(sec)]
		if !ok || obj == nil {
			continue
		}
		keys := make([]string, 0, len(obj))
		for k := range obj {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		out[sec] = keys
	}
	return out
}
