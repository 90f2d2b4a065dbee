package diagnosis

// LongTenureDays is the tenure (18 months) from which the override pass applies.
const LongTenureDays = 18 * 30

// facts is a snapshot plus the values derived from it before rule evaluation.
type facts struct {
	Snapshot
	months     int
	longTenure bool
	wasActive  bool
	outbound   int
}

func deriveFacts(s Snapshot) facts {
	return facts{
		Snapshot:   s,
		months:     MonthsActive(s.DaysActive),
		longTenure: s.DaysActive >= LongTenureDays,
		wasActive:  s.ActivityLevel != ActivityPaused,
		outbound:   OutboundCount(s.OutboundLevel),
	}
}

// rule assigns code when match holds.
type rule struct {
	name  string
	code  Code
	match func(f facts) bool
}

// primaryRules are evaluated top to bottom; the first match wins.
// NO_PROOF is the fallback when nothing matches.
var primaryRules = []rule{
	{
		name:  "paused",
		code:  CodePaused,
		match: func(f facts) bool { return f.ActivityLevel == ActivityPaused },
	},
	{
		name:  "repeat sales",
		code:  CodeSignals,
		match: func(f facts) bool { return f.Sales90d >= 2 },
	},
	{
		name: "interest without payment",
		code: CodeInterestNoPayment,
		match: func(f facts) bool {
			return f.Sales90d == 0 && f.Conversations30d >= 10 && f.Offers30d >= 10
		},
	},
}

// overrideRules run after the primary pass and replace its code on the
// first match. Both require long tenure, recent activity and zero sales,
// so they can never replace PAUSED or SIGNALS.
var overrideRules = []rule{
	{
		name: "sustained pressure, no sales",
		code: CodeStrongReconsider,
		match: func(f facts) bool {
			return f.longTenure && f.wasActive && f.Sales90d == 0 &&
				f.Offers30d >= 10 && f.Conversations30d >= 10
		},
	},
	{
		name: "long tenure, little pressure",
		code: CodeLongTimeLowPressure,
		match: func(f facts) bool {
			return f.longTenure && f.wasActive && f.Sales90d == 0 && f.Offers30d < 5
		},
	},
}

// firstMatch returns the code of the first matching rule.
func firstMatch(rules []rule, f facts) (Code, bool) {
	for _, r := range rules {
		if r.match(f) {
			return r.code, true
		}
	}
	return "", false
}

func classifyFacts(f facts) Code {
	code, ok := firstMatch(primaryRules, f)
	if !ok {
		code = CodeNoProof
	}
	if override, ok := firstMatch(overrideRules, f); ok {
		code = override
	}
	return code
}

// ClassifyCode returns the final diagnostic code for a snapshot: the primary
// pass followed by the override pass.
func ClassifyCode(s Snapshot) Code {
	return classifyFacts(deriveFacts(s))
}

// needsConversation reports whether the sales model normally closes through
// direct conversation.
func needsConversation(f facts) bool {
	return f.BusinessType == BusinessService || f.SaleFlow == SaleFlowTalkBeforeClose
}

// Classify derives the code, headline, explanation, secondary note and
// decision for a snapshot. Plan and avoid lists are attached by ClassifyAndPlan.
func Classify(s Snapshot) Diagnosis {
	f := deriveFacts(s)
	code := classifyFacts(f)

	c := codeCopy(code)
	d := decisionFor(code)

	var note *string
	if needsConversation(f) && f.outbound == 0 {
		n := secondaryNoteText
		note = &n
	}

	return Diagnosis{
		Code:                code,
		Headline:            c.headline,
		Explanation:         c.explain(f),
		SecondaryNote:       note,
		Decision:            d.label,
		DecisionExplanation: d.explanation,
		MonthsActive:        f.months,
	}
}

// ClassifyAndPlan runs the full analysis of one snapshot: classification,
// business-type plan, avoid list and the code-derived preview.
// It holds no state and is safe for concurrent use.
func ClassifyAndPlan(s Snapshot) Result {
	full := Classify(s)
	full.Plan = PlanFor(s.BusinessType)
	full.Avoid = AvoidList()
	return Result{
		Preview: PreviewFor(full.Code),
		Full:    full,
	}
}
