package ops

import (
	"context"
	"strings"

	"github.com/hpungsan/nexascope/internal/diagnosis"
	"github.com/hpungsan/nexascope/internal/errors"
	"github.com/hpungsan/nexascope/internal/intake"
)

// AnalyzeInput contains parameters for the Analyze operation.
type AnalyzeInput struct {
	Raw intake.RawInput
}

// AnalyzeOutput contains the result of the Analyze operation.
type AnalyzeOutput struct {
	AnalysisID string              `json:"analysis_id"`
	Snapshot   diagnosis.Snapshot  `json:"snapshot"`
	Preview    diagnosis.Preview   `json:"preview"`
	Full       diagnosis.Diagnosis `json:"full"`
}

// Analyze validates a raw questionnaire answer set and returns the preview
// and full diagnosis. Nothing is stored.
func Analyze(ctx context.Context, input AnalyzeInput) (*AnalyzeOutput, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.NewInternal(err)
	}

	snap, err := intake.Build(input.Raw)
	if err != nil {
		return nil, err
	}

	id, err := generateULID()
	if err != nil {
		return nil, errors.NewInternal(err)
	}

	res := diagnosis.ClassifyAndPlan(snap)
	return &AnalyzeOutput{
		AnalysisID: id,
		Snapshot:   snap,
		Preview:    res.Preview,
		Full:       res.Full,
	}, nil
}

// NormalizeTenureInput contains parameters for the NormalizeTenure operation.
type NormalizeTenureInput struct {
	Text string
}

// NormalizeTenureOutput contains the result of the NormalizeTenure operation.
type NormalizeTenureOutput struct {
	Text         string `json:"text"`
	Days         int    `json:"days"`
	MonthsActive int    `json:"months_active"`
}

// NormalizeTenure converts a free-text tenure expression into days.
func NormalizeTenure(ctx context.Context, input NormalizeTenureInput) (*NormalizeTenureOutput, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.NewInternal(err)
	}
	if strings.TrimSpace(input.Text) == "" {
		return nil, errors.NewInvalidRequest("text is required")
	}

	days, ok := diagnosis.NormalizeDays(input.Text)
	if !ok || days <= 0 {
		return nil, errors.NewInvalidDuration(input.Text)
	}

	return &NormalizeTenureOutput{
		Text:         input.Text,
		Days:         days,
		MonthsActive: diagnosis.MonthsActive(days),
	}, nil
}

// PlanInput contains parameters for the Plan operation.
type PlanInput struct {
	BusinessType string
}

// PlanOutput contains the result of the Plan operation.
type PlanOutput struct {
	BusinessType diagnosis.BusinessType `json:"business_type"`
	Plan         []string               `json:"plan"`
	Avoid        []string               `json:"avoid"`
}

// Plan returns the action plan and avoid list for a business type.
// The label may be a canonical code or a questionnaire label.
func Plan(ctx context.Context, input PlanInput) (*PlanOutput, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.NewInternal(err)
	}

	bt, err := intake.ParseBusinessType(input.BusinessType)
	if err != nil {
		return nil, err
	}

	return &PlanOutput{
		BusinessType: bt,
		Plan:         diagnosis.PlanFor(bt),
		Avoid:        diagnosis.AvoidList(),
	}, nil
}
