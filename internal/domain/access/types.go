package access

// Token is an allowed-field permission unit carried by a plan.
type Token string

// Section tokens grant an entire section.
const (
	TokenStartup        Token = "startup"
	TokenFinancials     Token = "financials"
	TokenTraction       Token = "traction"
	TokenSalesMarketing Token = "salesMarketing"
	TokenOperational    Token = "operational"
	TokenLegal          Token = "legal"
	TokenAssets         Token = "assets"
	TokenContacts       Token = "contacts"
)

// Field-group tokens grant specific attributes inside one section.
const (
	TokenStartupRevenue   Token = "startupRevenue"
	TokenStartupProfit    Token = "startupProfit"
	TokenStartupValuation Token = "startupValuation"
	TokenStartupCustomers Token = "startupCustomers"
	TokenStartupGrowth    Token = "startupGrowth"
	TokenStartupMarketing Token = "startupMarketing"
)

// Mode is the outcome of a read authorization.
type Mode string

const (
	ModeFull     Mode = "full"
	ModeFiltered Mode = "filtered"
	ModeDenied   Mode = "denied"
)

// Identity is the authenticated requester as handed over by the auth layer.
type Identity struct {
	ID       uint
	Role     string
	PlanTier string
}

const (
	RoleStartupOwner = "startup_owner"
	RoleInvestor     = "investor"
	RoleAdmin        = "admin"
)
