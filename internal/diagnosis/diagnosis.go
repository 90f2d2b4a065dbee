package diagnosis

// Code identifies the diagnostic category of an analysis.
type Code string

const (
	CodePaused              Code = "PAUSED"
	CodeSignals             Code = "SIGNALS"
	CodeInterestNoPayment   Code = "INTEREST_NO_PAYMENT"
	CodeNoProof             Code = "NO_PROOF"
	CodeStrongReconsider    Code = "STRONG_RECONSIDER"
	CodeLongTimeLowPressure Code = "LONG_TIME_LOW_PRESSURE"
)

// Codes lists every diagnostic code.
var Codes = []Code{
	CodePaused,
	CodeSignals,
	CodeInterestNoPayment,
	CodeNoProof,
	CodeStrongReconsider,
	CodeLongTimeLowPressure,
}

// Diagnosis is the full result of one analysis.
type Diagnosis struct {
	Code        Code     `json:"code"`
	Headline    string   `json:"headline"`
	Explanation string   `json:"explanation"`
	Plan        []string `json:"plan"`
	Avoid       []string `json:"avoid"`

	// SecondaryNote is set only when the sales model depends on conversation
	// and the owner starts none.
	SecondaryNote *string `json:"secondary_note,omitempty"`

	Decision            string `json:"decision"`
	DecisionExplanation string `json:"decision_explanation"`
	MonthsActive        int    `json:"months_active"`
}

// Preview is the teaser shown before the full analysis is unlocked.
// It is derived from the code alone.
type Preview struct {
	Title  string `json:"title"`
	Teaser string `json:"teaser"`
}

// Result pairs the teaser with the full diagnosis of the same snapshot.
type Result struct {
	Preview Preview   `json:"preview"`
	Full    Diagnosis `json:"full"`
}
