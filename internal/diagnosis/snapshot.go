package diagnosis

// ActivityLevel is how active the owner has been over roughly the last three months.
type ActivityLevel string

const (
	ActivityWeekly    ActivityLevel = "ACTIVE_WEEKLY"
	ActivitySometimes ActivityLevel = "ACTIVE_SOMETIMES"
	ActivityPaused    ActivityLevel = "PAUSED"
)

// BusinessType selects the 14-day plan.
type BusinessType string

const (
	BusinessPhysicalProduct BusinessType = "PHYSICAL_PRODUCT"
	BusinessService         BusinessType = "SERVICE"
	BusinessDigitalProduct  BusinessType = "DIGITAL_PRODUCT"
	BusinessSaaS            BusinessType = "SAAS"
)

// SaleFlow describes how a sale normally closes.
type SaleFlow string

const (
	SaleFlowDirectWeb       SaleFlow = "DIRECT_WEB_PURCHASE"
	SaleFlowTalkBeforeClose SaleFlow = "TALK_BEFORE_CLOSE"
	SaleFlowDepends         SaleFlow = "DEPENDS"
)

// OutboundLevel is the bucketed volume of conversations the owner starts per month.
type OutboundLevel string

const (
	OutboundNone   OutboundLevel = "NONE"   // 0
	OutboundLow    OutboundLevel = "LOW"    // 1-5
	OutboundMedium OutboundLevel = "MEDIUM" // 6-15
	OutboundHigh   OutboundLevel = "HIGH"   // more than 15
)

// Snapshot is the validated input of a single analysis.
// Callers are responsible for enumeration membership, DaysActive > 0 and
// non-negative counters; the engine does not re-validate.
type Snapshot struct {
	// DaysActive is the tenure in days since the business was created
	DaysActive int `json:"days_active"`

	ActivityLevel ActivityLevel `json:"activity_level"`

	// Recent counters: sales over 90 days, everything else over 30 days
	Sales90d         int `json:"sales_90d"`
	Visits30d        int `json:"visits_30d"`
	Conversations30d int `json:"conversations_30d"`
	Offers30d        int `json:"offers_30d"`

	BusinessType  BusinessType  `json:"business_type"`
	SaleFlow      SaleFlow      `json:"sale_flow"`
	OutboundLevel OutboundLevel `json:"outbound_level"`
}

// ActivityLevels lists the accepted activity levels in display order.
var ActivityLevels = []ActivityLevel{ActivityWeekly, ActivitySometimes, ActivityPaused}

// BusinessTypes lists the accepted business types in display order.
var BusinessTypes = []BusinessType{BusinessPhysicalProduct, BusinessService, BusinessDigitalProduct, BusinessSaaS}

// SaleFlows lists the accepted sale flows in display order.
var SaleFlows = []SaleFlow{SaleFlowDirectWeb, SaleFlowTalkBeforeClose, SaleFlowDepends}

// OutboundLevels lists the accepted outbound levels in display order.
var OutboundLevels = []OutboundLevel{OutboundNone, OutboundLow, OutboundMedium, OutboundHigh}
