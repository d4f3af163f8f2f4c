package startups

import (
	"time"

	"gorm.io/datatypes"
)

// Startup is the core section of a profile. UserID is the owner and never changes.
type Startup struct {
	ID                  uint      `gorm:"primaryKey" json:"id"`
	UserID              uint      `gorm:"not null;index" json:"user_id"`
	Name                string    `gorm:"not null" json:"name"`
	Industry            string    `gorm:"not null;index" json:"industry"`
	YearFounded         int       `gorm:"not null" json:"year_founded"`
	Description         string    `gorm:"not null" json:"description"`
	WebsiteLink         *string   `json:"website_link"`
	FounderBackground   string    `gorm:"not null" json:"founder_background"`
	TeamSize            int       `gorm:"not null" json:"team_size"`
	SellEquity          bool      `gorm:"not null" json:"sell_equity"`
	SellBusiness        bool      `gorm:"not null" json:"sell_business"`
	ReasonForSelling    string    `gorm:"not null" json:"reason_for_selling"`
	DesiredBuyerProfile string    `gorm:"not null" json:"desired_buyer_profile"`
	AskingPrice         *float64  `json:"asking_price"`
	CreatedAt           time.Time `json:"created_at"`

	Financials     *Financials     `gorm:"foreignKey:StartupID;constraint:OnDelete:CASCADE;" json:"financials"`
	Traction       *Traction       `gorm:"foreignKey:StartupID;constraint:OnDelete:CASCADE;" json:"traction"`
	SalesMarketing *SalesMarketing `gorm:"foreignKey:StartupID;constraint:OnDelete:CASCADE;" json:"sales_marketing"`
	Operational    *Operational    `gorm:"foreignKey:StartupID;constraint:OnDelete:CASCADE;" json:"operational"`
	Legal          *Legal          `gorm:"foreignKey:StartupID;constraint:OnDelete:CASCADE;" json:"legal"`
	Assets         *Assets         `gorm:"foreignKey:StartupID;constraint:OnDelete:CASCADE;" json:"assets"`
	Contacts       *Contacts       `gorm:"foreignKey:StartupID;constraint:OnDelete:CASCADE;" json:"contacts"`
}

// CoreAttributes returns the core section keyed by its JSON names. The owner id is left out.
func (s *Startup) CoreAttributes() map[string]any {
	return map[string]any{
		"id":                    s.ID,
		"name":                  s.Name,
		"industry":              s.Industry,
		"year_founded":          s.YearFounded,
		"description":           s.Description,
		"website_link":          s.WebsiteLink,
		"founder_background":    s.FounderBackground,
		"team_size":             s.TeamSize,
		"sell_equity":           s.SellEquity,
		"sell_business":         s.SellBusiness,
		"reason_for_selling":    s.ReasonForSelling,
		"desired_buyer_profile": s.DesiredBuyerProfile,
		"asking_price":          s.AskingPrice,
		"created_at":            s.CreatedAt,
	}
}

type Financials struct {
	ID                   uint              `gorm:"primaryKey" json:"id"`
	StartupID            uint              `gorm:"not null;uniqueIndex" json:"startup_id"`
	MonthlyRevenue       datatypes.JSONMap `json:"monthly_revenue"`
	AnnualRevenue        datatypes.JSONMap `json:"annual_revenue"`
	MonthlyProfitLoss    *float64          `json:"monthly_profit_loss"`
	GrossMargin          *float64          `json:"gross_margin" binding:"omitempty,min=0,max=100"`
	OperationalExpense   *float64          `json:"operational_expense"`
	CashRunway           *float64          `json:"cash_runway"`
	FundingRaised        *float64          `json:"funding_raised"`
	ValuationExpectation *float64          `json:"valuation_expectation"`
}

func (Financials) TableName() string { return "startup_financials" }

func (f *Financials) Attributes() map[string]any {
	return map[string]any{
		"id":                    f.ID,
		"startup_id":            f.StartupID,
		"monthly_revenue":       f.MonthlyRevenue,
		"annual_revenue":        f.AnnualRevenue,
		"monthly_profit_loss":   f.MonthlyProfitLoss,
		"gross_margin":          f.GrossMargin,
		"operational_expense":   f.OperationalExpense,
		"cash_runway":           f.CashRunway,
		"funding_raised":        f.FundingRaised,
		"valuation_expectation": f.ValuationExpectation,
	}
}

type Traction struct {
	ID                     uint     `gorm:"primaryKey" json:"id"`
	StartupID              uint     `gorm:"not null;uniqueIndex" json:"startup_id"`
	TotalCustomers         *int     `json:"total_customers"`
	MonthlyActiveCustomers *int     `json:"monthly_active_customers"`
	CustomerGrowthYoy      *float64 `json:"customer_growth_yoy"`
	CustomerRetentionRate  *float64 `json:"customer_retention_rate" binding:"omitempty,min=0,max=100"`
	ChurnRate              *float64 `json:"churn_rate" binding:"omitempty,min=0,max=100"`
	MajorClients           *string  `json:"major_clients"`
	CompletedOrders        *int     `json:"completed_orders"`
}

func (Traction) TableName() string { return "startup_traction" }

func (t *Traction) Attributes() map[string]any {
	return map[string]any{
		"id":                       t.ID,
		"startup_id":               t.StartupID,
		"total_customers":          t.TotalCustomers,
		"monthly_active_customers": t.MonthlyActiveCustomers,
		"customer_growth_yoy":      t.CustomerGrowthYoy,
		"customer_retention_rate":  t.CustomerRetentionRate,
		"churn_rate":               t.ChurnRate,
		"major_clients":            t.MajorClients,
		"completed_orders":         t.CompletedOrders,
	}
}

type SalesMarketing struct {
	ID                 uint     `gorm:"primaryKey" json:"id"`
	StartupID          uint     `gorm:"not null;uniqueIndex" json:"startup_id"`
	SalesChannels      *string  `json:"sales_channels"`
	CAC                *float64 `gorm:"column:cac" json:"cac"`
	LTV                *float64 `gorm:"column:ltv" json:"ltv"`
	MarketingPlatforms *string  `json:"marketing_platforms"`
	ConversionRate     *float64 `json:"conversion_rate" binding:"omitempty,min=0,max=100"`
}

func (SalesMarketing) TableName() string { return "startup_sales_marketing" }

func (s *SalesMarketing) Attributes() map[string]any {
	return map[string]any{
		"id":                  s.ID,
		"startup_id":          s.StartupID,
		"sales_channels":      s.SalesChannels,
		"cac":                 s.CAC,
		"ltv":                 s.LTV,
		"marketing_platforms": s.MarketingPlatforms,
		"conversion_rate":     s.ConversionRate,
	}
}

type Operational struct {
	ID                  uint     `gorm:"primaryKey" json:"id"`
	StartupID           uint     `gorm:"not null;uniqueIndex" json:"startup_id"`
	SupplyChainModel    *string  `json:"supply_chain_model"`
	COGS                *float64 `gorm:"column:cogs" json:"cogs"`
	AverageDeliveryTime *string  `json:"average_delivery_time"`
	InventoryData       *string  `json:"inventory_data"`
}

func (Operational) TableName() string { return "startup_operational" }

func (o *Operational) Attributes() map[string]any {
	return map[string]any{
		"id":                    o.ID,
		"startup_id":            o.StartupID,
		"supply_chain_model":    o.SupplyChainModel,
		"cogs":                  o.COGS,
		"average_delivery_time": o.AverageDeliveryTime,
		"inventory_data":        o.InventoryData,
	}
}

type Legal struct {
	ID                     uint    `gorm:"primaryKey" json:"id"`
	StartupID              uint    `gorm:"not null;uniqueIndex" json:"startup_id"`
	TradeLicenseNumber     *string `json:"trade_license_number"`
	TaxID                  *string `gorm:"column:tax_id" json:"tax_id"`
	VerifiedPhone          *string `json:"verified_phone"`
	VerifiedEmail          *string `json:"verified_email" binding:"omitempty,email"`
	OwnershipDocumentsLink *string `json:"ownership_documents_link"`
	NDAFinancialsLink      *string `gorm:"column:nda_financials_link" json:"nda_financials_link"`
}

func (Legal) TableName() string { return "startup_legal" }

func (l *Legal) Attributes() map[string]any {
	return map[string]any{
		"id":                       l.ID,
		"startup_id":               l.StartupID,
		"trade_license_number":     l.TradeLicenseNumber,
		"tax_id":                   l.TaxID,
		"verified_phone":           l.VerifiedPhone,
		"verified_email":           l.VerifiedEmail,
		"ownership_documents_link": l.OwnershipDocumentsLink,
		"nda_financials_link":      l.NDAFinancialsLink,
	}
}

type Assets struct {
	ID                     uint    `gorm:"primaryKey" json:"id"`
	StartupID              uint    `gorm:"not null;uniqueIndex" json:"startup_id"`
	DomainOwnership        *string `json:"domain_ownership"`
	PatentsOrCopyrights    *string `json:"patents_or_copyrights"`
	SourceCodeLink         *string `json:"source_code_link"`
	SoftwareInfrastructure *string `json:"software_infrastructure"`
	SocialMediaHandles     *string `json:"social_media_handles"`
}

func (Assets) TableName() string { return "startup_assets" }

func (a *Assets) Attributes() map[string]any {
	return map[string]any{
		"id":                      a.ID,
		"startup_id":              a.StartupID,
		"domain_ownership":        a.DomainOwnership,
		"patents_or_copyrights":   a.PatentsOrCopyrights,
		"source_code_link":        a.SourceCodeLink,
		"software_infrastructure": a.SoftwareInfrastructure,
		"social_media_handles":    a.SocialMediaHandles,
	}
}

type Contacts struct {
	ID           uint    `gorm:"primaryKey" json:"id"`
	StartupID    uint    `gorm:"not null;uniqueIndex" json:"startup_id"`
	ContactEmail *string `json:"contact_email" binding:"omitempty,email"`
	ContactPhone *string `json:"contact_phone"`
}

func (Contacts) TableName() string { return "startup_contacts" }

func (c *Contacts) Attributes() map[string]any {
	return map[string]any{
		"id":            c.ID,
		"startup_id":    c.StartupID,
		"contact_email": c.ContactEmail,
		"contact_phone": c.ContactPhone,
	}
}

// View is one recorded read of a startup by a non-owner.
type View struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"not null;index"`
	StartupID uint      `gorm:"not null;index"`
	CreatedAt time.Time `gorm:"not null"`
}

func (View) TableName() string { return "startup_views" }
