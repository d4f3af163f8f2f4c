package startups

import "time"

// Section names a grouping of a profile as it appears in JSON output.
type Section string

const (
	SectionCore           Section = "startup"
	SectionFinancials     Section = "financials"
	SectionTraction       Section = "traction"
	SectionSalesMarketing Section = "sales_marketing"
	SectionOperational    Section = "operational"
	SectionLegal          Section = "legal"
	SectionAssets         Section = "assets"
	SectionContacts       Section = "contacts"
)

// OptionalSections lists the seven nullable sections in output order.
var OptionalSections = []Section{
	SectionFinancials,
	SectionTraction,
	SectionSalesMarketing,
	SectionOperational,
	SectionLegal,
	SectionAssets,
	SectionContacts,
}

// Details is the fully loaded profile aggregate. ViewCount is only set for the owner.
type Details struct {
	Startup
	ViewCount *int64 `json:"view_count,omitempty"`
}

// SectionAttributes returns the attributes of an optional section, or false when it is absent.
func (d *Details) SectionAttributes(s Section) (map[string]any, bool) {
	switch s {
	case SectionFinancials:
		if d.Financials != nil {
			return d.Financials.Attributes(), true
		}
	case SectionTraction:
		if d.Traction != nil {
			return d.Traction.Attributes(), true
		}
	case SectionSalesMarketing:
		if d.SalesMarketing != nil {
			return d.SalesMarketing.Attributes(), true
		}
	case SectionOperational:
		if d.Operational != nil {
			return d.Operational.Attributes(), true
		}
	case SectionLegal:
		if d.Legal != nil {
			return d.Legal.Attributes(), true
		}
	case SectionAssets:
		if d.Assets != nil {
			return d.Assets.Attributes(), true
		}
	case SectionContacts:
		if d.Contacts != nil {
			return d.Contacts.Attributes(), true
		}
	}
	return nil, false
}

// Summary is the always-public listing shape: core attributes only.
type Summary struct {
	ID                  uint      `json:"id"`
	Name                string    `json:"name"`
	Industry            string    `json:"industry"`
	YearFounded         int       `json:"year_founded"`
	Description         string    `json:"description"`
	WebsiteLink         *string   `json:"website_link"`
	FounderBackground   string    `json:"founder_background"`
	TeamSize            int       `json:"team_size"`
	SellEquity          bool      `json:"sell_equity"`
	SellBusiness        bool      `json:"sell_business"`
	ReasonForSelling    string    `json:"reason_for_selling"`
	DesiredBuyerProfile string    `json:"desired_buyer_profile"`
	AskingPrice         *float64  `json:"asking_price"`
	CreatedAt           time.Time `json:"created_at"`
}

// Filters narrows the public listing. Nil fields are ignored.
type Filters struct {
	Industry     string
	MinTeamSize  *int
	MaxTeamSize  *int
	SellEquity   *bool
	SellBusiness *bool
}
