package diagnosis

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	// digitsRegex matches a bare day count
	digitsRegex = regexp.MustCompile(`^\d+$`)

	// firstIntRegex finds the first integer in a duration expression
	firstIntRegex = regexp.MustCompile(`\d+`)
)

// tenureUnit maps unit keywords to a day multiplier.
type tenureUnit struct {
	keywords []string
	days     int
}

// tenureUnits is checked in order; the first unit with a matching keyword wins.
var tenureUnits = []tenureUnit{
	{keywords: []string{"mes"}, days: 30},
	{keywords: []string{"año", "ano"}, days: 365},
	{keywords: []string{"sem"}, days: 7},
	{keywords: []string{"día", "dia"}, days: 1},
}

// NormalizeDays converts a free-text duration such as "6 meses" or "2 años"
// into a day count. A bare number is read as days. Text with a number but
// no recognized unit is rejected instead of being guessed as days.
func NormalizeDays(raw string) (int, bool) {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return 0, false
	}

	if digitsRegex.MatchString(s) {
		n, err := strconv.Atoi(s)
		if err != nil {
			return 0, false
		}
		return n, true
	}

	m := firstIntRegex.FindString(s)
	if m == "" {
		return 0, false
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return 0, false
	}

	for _, u := range tenureUnits {
		for _, kw := range u.keywords {
			if strings.Contains(s, kw) {
				if n > math.MaxInt/u.days {
					return 0, false
				}
				return n * u.days, true
			}
		}
	}
	return 0, false
}

// MonthsActive converts a day count into whole months, never less than one.
// Halves round to even.
func MonthsActive(days int) int {
	months := int(math.RoundToEven(float64(days) / 30))
	return max(1, months)
}
