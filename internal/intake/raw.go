package intake

import (
	"github.com/hpungsan/nexascope/internal/diagnosis"
	"github.com/hpungsan/nexascope/internal/errors"
)

// RawInput is a questionnaire answer set as the caller collected it:
// tenure as free text, categorical answers as labels.
type RawInput struct {
	// Tenure is free text such as "6 meses" or "2 años".
	Tenure string `json:"tenure,omitempty" yaml:"tenure"`

	// DaysActive, when set, takes precedence over Tenure.
	DaysActive *int `json:"days_active,omitempty" yaml:"days_active"`

	ActivityLevel string `json:"activity_level" yaml:"activity_level"`

	Sales90d         int `json:"sales_90d" yaml:"sales_90d"`
	Visits30d        int `json:"visits_30d" yaml:"visits_30d"`
	Conversations30d int `json:"conversations_30d" yaml:"conversations_30d"`
	Offers30d        int `json:"offers_30d" yaml:"offers_30d"`

	BusinessType  string `json:"business_type" yaml:"business_type"`
	SaleFlow      string `json:"sale_flow" yaml:"sale_flow"`
	OutboundLevel string `json:"outbound_level" yaml:"outbound_level"`
}

// Build validates a raw answer set and turns it into a Snapshot.
// An unreadable tenure is reported as INVALID_DURATION; every other
// problem is INVALID_REQUEST naming the field.
func Build(raw RawInput) (diagnosis.Snapshot, error) {
	days, err := resolveDays(raw)
	if err != nil {
		return diagnosis.Snapshot{}, err
	}

	activity, err := ParseActivityLevel(raw.ActivityLevel)
	if err != nil {
		return diagnosis.Snapshot{}, err
	}
	business, err := ParseBusinessType(raw.BusinessType)
	if err != nil {
		return diagnosis.Snapshot{}, err
	}
	flow, err := ParseSaleFlow(raw.SaleFlow)
	if err != nil {
		return diagnosis.Snapshot{}, err
	}
	outbound, err := ParseOutboundLevel(raw.OutboundLevel)
	if err != nil {
		return diagnosis.Snapshot{}, err
	}

	counters := []struct {
		field string
		value int
	}{
		{"sales_90d", raw.Sales90d},
		{"visits_30d", raw.Visits30d},
		{"conversations_30d", raw.Conversations30d},
		{"offers_30d", raw.Offers30d},
	}
	for _, c := range counters {
		if c.value < 0 {
			return diagnosis.Snapshot{}, errors.NewInvalidField(c.field, c.value, "must not be negative")
		}
	}

	return diagnosis.Snapshot{
		DaysActive:       days,
		ActivityLevel:    activity,
		Sales90d:         raw.Sales90d,
		Visits30d:        raw.Visits30d,
		Conversations30d: raw.Conversations30d,
		Offers30d:        raw.Offers30d,
		BusinessType:     business,
		SaleFlow:         flow,
		OutboundLevel:    outbound,
	}, nil
}

// resolveDays returns the tenure in days, preferring an explicit day count.
func resolveDays(raw RawInput) (int, error) {
	if raw.DaysActive != nil {
		if *raw.DaysActive <= 0 {
			return 0, errors.NewInvalidField("days_active", *raw.DaysActive, "must be positive")
		}
		return *raw.DaysActive, nil
	}

	days, ok := diagnosis.NormalizeDays(raw.Tenure)
	if !ok || days <= 0 {
		return 0, errors.NewInvalidDuration(raw.Tenure)
	}
	return days, nil
}
