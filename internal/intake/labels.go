package intake

import (
	"strings"

	"github.com/hpungsan/nexascope/internal/diagnosis"
	"github.com/hpungsan/nexascope/internal/errors"
)

// Questionnaire labels as shown to the user. Either the label or the
// canonical code is accepted when parsing.
var (
	activityLabels = map[diagnosis.ActivityLevel]string{
		diagnosis.ActivityWeekly:    "He estado activo casi todas las semanas",
		diagnosis.ActivitySometimes: "He estado activo a ratos",
		diagnosis.ActivityPaused:    "He estado prácticamente en pausa",
	}

	businessLabels = map[diagnosis.BusinessType]string{
		diagnosis.BusinessPhysicalProduct: "Producto físico",
		diagnosis.BusinessService:         "Servicio",
		diagnosis.BusinessDigitalProduct:  "Producto digital",
		diagnosis.BusinessSaaS:            "SaaS",
	}

	saleFlowLabels = map[diagnosis.SaleFlow]string{
		diagnosis.SaleFlowDirectWeb:       "Compra directa en la web",
		diagnosis.SaleFlowTalkBeforeClose: "Hablo antes de cerrar",
		diagnosis.SaleFlowDepends:         "Depende",
	}

	outboundLabels = map[diagnosis.OutboundLevel]string{
		diagnosis.OutboundNone:   "Ninguna",
		diagnosis.OutboundLow:    "1–5",
		diagnosis.OutboundMedium: "6–15",
		diagnosis.OutboundHigh:   "Más de 15",
	}
)

// Choice is one selectable answer of a questionnaire field.
type Choice struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// ActivityChoices returns the activity answers in display order.
func ActivityChoices() []Choice { return choices(diagnosis.ActivityLevels, activityLabels) }

// BusinessChoices returns the business type answers in display order.
func BusinessChoices() []Choice { return choices(diagnosis.BusinessTypes, businessLabels) }

// SaleFlowChoices returns the sale flow answers in display order.
func SaleFlowChoices() []Choice { return choices(diagnosis.SaleFlows, saleFlowLabels) }

// OutboundChoices returns the outbound answers in display order.
func OutboundChoices() []Choice { return choices(diagnosis.OutboundLevels, outboundLabels) }

func choices[T ~string](values []T, labels map[T]string) []Choice {
	out := make([]Choice, 0, len(values))
	for _, v := range values {
		out = append(out, Choice{Value: string(v), Label: labels[v]})
	}
	return out
}

// ParseActivityLevel accepts a canonical code or its questionnaire label.
func ParseActivityLevel(s string) (diagnosis.ActivityLevel, error) {
	return parseLabel("activity_level", s, diagnosis.ActivityLevels, activityLabels)
}

// ParseBusinessType accepts a canonical code or its questionnaire label.
func ParseBusinessType(s string) (diagnosis.BusinessType, error) {
	return parseLabel("business_type", s, diagnosis.BusinessTypes, businessLabels)
}

// ParseSaleFlow accepts a canonical code or its questionnaire label.
func ParseSaleFlow(s string) (diagnosis.SaleFlow, error) {
	return parseLabel("sale_flow", s, diagnosis.SaleFlows, saleFlowLabels)
}

// ParseOutboundLevel accepts a canonical code or its questionnaire label.
func ParseOutboundLevel(s string) (diagnosis.OutboundLevel, error) {
	return parseLabel("outbound_level", s, diagnosis.OutboundLevels, outboundLabels)
}

func parseLabel[T ~string](field, raw string, values []T, labels map[T]string) (T, error) {
	key := labelKey(raw)
	if key == "" {
		var zero T
		return zero, errors.NewInvalidField(field, raw, "is required")
	}
	for _, v := range values {
		if key == labelKey(string(v)) || key == labelKey(labels[v]) {
			return v, nil
		}
	}
	var zero T
	return zero, errors.NewInvalidField(field, raw, "unknown value")
}

// labelKey folds case, whitespace runs and dash variants so "1-5", "1–5"
// and " 1 – 5" compare equal.
func labelKey(s string) string {
	s = strings.ToLower(s)
	s = strings.NewReplacer("–", "-", "—", "-").Replace(s)
	s = strings.Join(strings.Fields(s), " ")
	return strings.ReplaceAll(s, " - ", "-")
}
