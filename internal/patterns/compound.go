package patterns

// CompoundPattern fires when several related topics are simultaneously
// active, surfacing escalation that no single topic shows on its own.
//
// Content invariant (enforced by tests, not the engine): the five
// narrative-text slices each hold exactly 3 non-empty entries.
type CompoundPattern struct {
	ID          string
	Name        string
	Topics      []string // Topic IDs, 2+
	MinTopics   int      // How many of Topics must be active to fire
	BoostFactor float64  // Multiplier on the combined weighted score
	Prediction  string

	KeyJudgments        []string
	Indicators          []string
	ConfirmationSignals []string
	Assumptions         []string
	ChangeTriggers      []string
}

// CompoundPatterns is the cross-topic escalation table.
var CompoundPatterns = []CompoundPattern{
	{
		ID:          "economic-storm",
		Name:        "Economic Storm Convergence",
		Topics:      []string{"tariffs", "inflation", "market-selloff", "fed-policy"},
		MinTopics:   3,
		BoostFactor: 2.0,
		Prediction:  "Broad risk-off move likely within days; expect volatility spikes and defensive rotation.",
		KeyJudgments: []string{
			"Simultaneous trade, price, and market stress historically precedes sharp repricing events.",
			"Central bank reaction speed is the main variable separating correction from crisis.",
			"Retail sentiment lags the signal by one to three news cycles.",
		},
		Indicators: []string{
			"Tariff announcements paired with same-day market coverage",
			"Inflation prints cited in selloff headlines",
			"Fed officials making unscheduled statements",
		},
		ConfirmationSignals: []string{
			"VIX-style volatility language entering wire coverage",
			"Three or more sources linking trade policy to market moves",
			"Flight-to-safety assets named in headlines",
		},
		Assumptions: []string{
			"Feed coverage reflects actual market conditions with minimal lag",
			"Topic matching captures the relevant policy vocabulary",
			"No single-source distortion in the weighted counts",
		},
		ChangeTriggers: []string{
			"Central bank emergency action announced",
			"Tariff measures suspended or reversed",
			"Market coverage decouples from policy coverage",
		},
	},
	{
		ID:          "regional-escalation",
		Name:        "Multi-Theater Escalation",
		Topics:      []string{"russia-ukraine", "middle-east", "iran-tensions", "taiwan-strait", "north-korea"},
		MinTopics:   3,
		BoostFactor: 2.5,
		Prediction:  "Parallel escalation across theaters; watch for coordinated timing and alliance statements.",
		KeyJudgments: []string{
			"Simultaneous activity in three or more theaters exceeds normal background correlation.",
			"Adversary coordination is plausible but coincidental clustering is the base case.",
			"Western alliance bandwidth becomes the binding constraint under parallel crises.",
		},
		Indicators: []string{
			"Military movement language in multiple theater topics",
			"Emergency consultations between allied governments",
			"Same-day escalatory statements from separate capitals",
		},
		ConfirmationSignals: []string{
			"Defense ministry briefings in two or more theaters",
			"Wire services running parallel escalation leads",
			"Cross-references between theaters inside single articles",
		},
		Assumptions: []string{
			"Theater topics are independent under normal conditions",
			"Escalation vocabulary is consistent across outlets",
			"Coverage volume tracks event severity",
		},
		ChangeTriggers: []string{
			"De-escalation talks announced in any theater",
			"One theater resolving reduces correlated coverage",
			"Coverage driven by an anniversary or summit, not events",
		},
	},
	{
		ID:          "financial-contagion",
		Name:        "Financial Contagion Watch",
		Topics:      []string{"banking-stress", "market-selloff", "fed-policy"},
		MinTopics:   2,
		BoostFactor: 2.2,
		Prediction:  "Bank stress coverage plus market stress suggests contagion framing is taking hold.",
		KeyJudgments: []string{
			"Named-institution stress coverage is the strongest early contagion marker.",
			"Regulator silence amplifies the narrative more than regulator statements.",
			"Deposit-flight language spreads between outlets within hours once started.",
		},
		Indicators: []string{
			"Specific institutions named in stress coverage",
			"Interbank or liquidity vocabulary in general news",
			"Regulators quoted or notably declining comment",
		},
		ConfirmationSignals: []string{
			"Emergency lending facilities referenced",
			"Cross-border institutions entering the coverage",
			"Historical crisis comparisons appearing in wires",
		},
		Assumptions: []string{
			"Financial press coverage leads general press by hours",
			"Institution names are correctly captured by the patterns",
			"Weighted counts are not dominated by one outlet's campaign",
		},
		ChangeTriggers: []string{
			"Capital injection or acquisition announced",
			"Stress coverage narrows to a single institution",
			"Regulatory backstop statement breaks the narrative",
		},
	},
	{
		ID:          "infrastructure-threat",
		Name:        "Critical Infrastructure Threat",
		Topics:      []string{"cyber-attack", "oil-energy", "supply-chain"},
		MinTopics:   2,
		BoostFactor: 1.8,
		Prediction:  "Combined cyber and physical-infrastructure coverage points at capability demonstration or coordinated disruption.",
		KeyJudgments: []string{
			"Cyber incidents co-occurring with energy or logistics disruption exceed chance at this volume.",
			"Attribution claims in early coverage are unreliable and mostly noise.",
			"Operator statements lag the actual incident timeline significantly.",
		},
		Indicators: []string{
			"Infrastructure operators confirming incidents",
			"Ransomware and outage stories sharing a sector",
			"Government cyber agencies issuing advisories",
		},
		ConfirmationSignals: []string{
			"Multiple operators in one sector reporting issues",
			"National-level incident response activated",
			"Physical disruption attributed to cyber causes",
		},
		Assumptions: []string{
			"Operators disclose incidents within the analysis window",
			"Sector vocabulary distinguishes cyber from mechanical failure",
			"Advisory volume correlates with real threat level",
		},
		ChangeTriggers: []string{
			"Incidents attributed to unrelated technical faults",
			"Advisory withdrawn or downgraded",
			"Coverage consolidates onto a single contained incident",
		},
	},
	{
		ID:          "institutional-crisis",
		Name:        "Institutional Legitimacy Crisis",
		Topics:      []string{"election-integrity", "mass-protest", "government-shutdown"},
		MinTopics:   2,
		BoostFactor: 1.6,
		Prediction:  "Simultaneous legitimacy and governance stress coverage; watch for narrative convergence across outlets.",
		KeyJudgments: []string{
			"Protest coverage combined with institutional-failure framing compounds faster than either alone.",
			"Shutdown mechanics coverage is routine; its pairing with legitimacy framing is not.",
			"Fringe amplification typically precedes the mainstream pairing by a day or more.",
		},
		Indicators: []string{
			"Protest and election stories citing each other",
			"Governance failure vocabulary in wire leads",
			"Officials questioning process legitimacy on record",
		},
		ConfirmationSignals: []string{
			"Three or more mainstream outlets using crisis framing",
			"International coverage of domestic institutional stress",
			"Market coverage referencing political instability",
		},
		Assumptions: []string{
			"Legitimacy vocabulary is distinguishable from routine politics",
			"Protest coverage volume reflects street-level scale",
			"Outlet framing choices are independent",
		},
		ChangeTriggers: []string{
			"Shutdown or dispute resolved through normal process",
			"Protest coverage localizes to a single grievance",
			"Legitimacy framing retracted or walked back",
		},
	},
}

// CompoundByID returns the compound pattern with the given id, or nil.
func CompoundByID(id string) *CompoundPattern {
	for i := range CompoundPatterns {
		if CompoundPatterns[i].ID == id {
			return &CompoundPatterns[i]
		}
	}
	return nil
}
