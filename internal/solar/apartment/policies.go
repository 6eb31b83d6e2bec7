package apartment

// Status is the shared-solar policy status of a state.
type Status string

const (
	StatusSupported           Status = "supported"
	StatusLimited             Status = "limited"
	StatusCurrentlyNotAllowed Status = "currently_not_supported"
	StatusUnknown             Status = "unknown"
)

type Display struct {
	Label   string `json:"label"`
	Color   string `json:"color"`
	Icon    string `json:"icon"`
	Message string `json:"message"`
}

var displays = map[Status]Display{
	StatusSupported: {
		Label:   "✅ Supported",
		Color:   "#27ae60",
		Icon:    "✅",
		Message: "State policy explicitly allows shared solar benefits.",
	},
	StatusLimited: {
		Label:   "⚠️ Limited Support",
		Color:   "#f39c12",
		Icon:    "⚠️",
		Message: "Solar is allowed for common areas, but individual flat benefits are restricted.",
	},
	StatusCurrentlyNotAllowed: {
		Label:   "🚫 Currently Not Supported",
		Color:   "#c0392b",
		Icon:    "🚫",
		Message: "Policies for individual shared solar are not yet notified or clear.",
	},
	StatusUnknown: {
		Label:   "❓ Verify Locally",
		Color:   "#7f8c8d",
		Icon:    "❓",
		Message: "Policy is unclear or pilot-based. Check with your local DISCOM.",
	},
}

func (s Status) Display() Display {
	if d, ok := displays[s]; ok {
		return d
	}
	return displays[StatusUnknown]
}

// Policy is what a state allows for housing societies.
type Policy struct {
	Status      Status   `json:"status"`
	StateName   string   `json:"stateName"`
	PolicyName  string   `json:"policyName"`
	Description string   `json:"description"`
	Conditions  []string `json:"conditions"`
	WhatWorks   []string `json:"whatWorks"`
}

// DefaultKey is the policy and rules entry used for states without their own.
const DefaultKey = "default"

var policies = map[string]Policy{
	"maharashtra": {
		Status:      StatusSupported,
		StateName:   "Maharashtra",
		PolicyName:  "Virtual Net Metering (VNM)",
		Description: "Maharashtra MERC regulations allow Virtual Net Metering. This means a single solar plant on the society rooftop can credit energy to individual flat electricity bills.",
		Conditions: []string{
			"Requires society-level consensus.",
			"Subject to technical feasibility approval by MSEDCL/Adani/Tata Power.",
			"Meters must be compatible (smart meters preferred).",
		},
		WhatWorks: []string{
			"✅ Solar for Common Areas: Lifts, pumps, & corridor lighting (High Savings).",
			"✅ Individual Flat Solar: Possible via VNM (Requires paperwork).",
		},
	},
	"delhi": {
		Status:      StatusSupported,
		StateName:   "Delhi NCR",
		PolicyName:  "Group Net Metering (GNM) / VNM",
		Description: "Delhi's solar policy is one of the most progressive, allowing Group Net Metering and Virtual Net Metering for housing societies (CGHS/RWAs).",
		Conditions: []string{
			"Applicable for BSES Rajdhani, BSES Yamuna, and TP-DDL consumers.",
			"Group Net Metering allows surplus energy adjustment across meters.",
			"Virtual Net Metering allows crediting generation to participating consumers.",
		},
		WhatWorks: []string{
			"✅ Common Area Solar: 100% allowed and encouraged.",
			"✅ Group Metering: Surplus form common area can set off individual bills.",
		},
	},
	"karnataka": {
		Status:      StatusLimited,
		StateName:   "Karnataka",
		PolicyName:  "Common Area Net Metering",
		Description: "Current BESCOM/policy framework primarily supports Net Metering for the society's common meter only. Individual billing credits (VNM) are not widely implemented.",
		Conditions: []string{
			"Solar plant connects to the Common Service Meter.",
			"Savings reduce the society's maintenance bill.",
			"Individual flat bill adjustment is generally NOT supported yet.",
		},
		WhatWorks: []string{
			"✅ Solar for Common Areas: Highly recommended to reduce maintenance charges.",
			"❌ Individual Flat Solar: Currently difficult/not supported.",
		},
	},
	"gujarat": {
		Status:      StatusLimited,
		StateName:   "Gujarat",
		PolicyName:  "Common Service Connection",
		Description: "Gujarat's policy focuses on residential rooftop solar (Surya Gujarat) for individual houses. For societies, the focus is on powering common amenities.",
		Conditions: []string{
			"Subsidy available for common facility connections (GJD/GEDA rules apply).",
			"Virtual Net Metering for individual flats is not standard practice.",
		},
		WhatWorks: []string{
			"✅ Common Area Solar: Eligible for Central/State subsidy (check current limits).",
			"❌ Individual Flat Solar: Not standard.",
		},
	},
	DefaultKey: {
		Status:      StatusUnknown,
		StateName:   "Your State",
		PolicyName:  "Consult Local DISCOM",
		Description: "We don't have verified policy data for your specific state yet. Many states allow solar for common areas by default, but individual sharing rules vary.",
		Conditions: []string{
			"Check if your state regulator (SERC) has notified 'Virtual Net Metering'.",
			"Ask your RWA if they allow rooftop access.",
		},
		WhatWorks: []string{
			"✅ Common Area Solar: Usually allowed everywhere (reduces maintenance bill).",
			"❓ Individual Benefits: Requires specific VNM policy.",
		},
	},
}

// InsiderNote is a local rule installers tend not to mention.
type InsiderNote struct {
	Type    string `json:"type"`
	Title   string `json:"title"`
	Message string `json:"message"`
}

type Rules struct {
	StateName string        `json:"stateName"`
	Notes     []InsiderNote `json:"insiderNotes"`
}

var regulations = map[string]Rules{
	"maharashtra": {StateName: "Maharashtra", Notes: []InsiderNote{
		{"fee", "Processing Fees", "MSEDCL typically charges a processing fee (approx. ₹500-₹2000) for net metering applications, which is often excluded from installer quotes."},
		{"tariff", "Sanctioned Load Check", "Solar capacity cannot exceed your sanctioned load. Upgrading your load may move you to a higher fixed-charge slab."},
	}},
	"delhi": {StateName: "Delhi", Notes: []InsiderNote{
		{"policy", "Virtual Net Metering", "Delhi is one of the few places where 'Virtual Net Metering' is active, allowing you to buy a share in a community plant if you lack roof space."},
		{"fee", "Meter Testing", "DISCOMs may charge a meter testing fee if you opt to procure your own bidirectional meter instead of theirs."},
	}},
	"karnataka": {StateName: "Karnataka", Notes: []InsiderNote{
		{"policy", "Gross vs Net Metering", "For commercial consumers, BESCOM often mandates Gross Metering (lower returns) over Net Metering. Check your tariff category carefully."},
		{"grid", "Grid Availability", "In rural areas with frequent power cuts, a Hybrid Inverter is strongly recommended as On-Grid systems shut down during outages."},
	}},
	"gujarat": {StateName: "Gujarat", Notes: []InsiderNote{
		{"subsidy", "Surya Gujarat Subsidy", "Gujarat has the simplified 'Surya Gujarat' portal. Subsidy is credited directly to the consumer, usually faster than the national average."},
		{"capacity", "Capacity Limit", "Residential installations are typically capped at 100% of the sanctioned load."},
	}},
	DefaultKey: {StateName: "General", Notes: []InsiderNote{
		{"general", "Sanctioned Load", "Ensure your solar system size does not exceed your sanctioned load. Increasing load takes 1-2 weeks."},
		{"general", "Shadow Analysis", "A 'shadow-free' area is critical. Even a small shadow from a tank or tree can reduce generation by 30%."},
	}},
}
