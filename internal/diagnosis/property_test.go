package diagnosis

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// genSnapshot draws snapshots across the whole input space, including
// tenures on both sides of the override threshold.
func genSnapshot() gopter.Gen {
	return gopter.CombineGens(
		gen.IntRange(1, 3000),
		gen.IntRange(0, len(ActivityLevels)-1),
		gen.IntRange(0, 15),
		gen.IntRange(0, 500),
		gen.IntRange(0, 40),
		gen.IntRange(0, 40),
		gen.IntRange(0, len(BusinessTypes)-1),
		gen.IntRange(0, len(SaleFlows)-1),
		gen.IntRange(0, len(OutboundLevels)-1),
	).Map(func(v []interface{}) Snapshot {
		return Snapshot{
			DaysActive:       v[0].(int),
			ActivityLevel:    ActivityLevels[v[1].(int)],
			Sales90d:         v[2].(int),
			Visits30d:        v[3].(int),
			Conversations30d: v[4].(int),
			Offers30d:        v[5].(int),
			BusinessType:     BusinessTypes[v[6].(int)],
			SaleFlow:         SaleFlows[v[7].(int)],
			OutboundLevel:    OutboundLevels[v[8].(int)],
		}
	})
}

func TestClassificationProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 500
	properties := gopter.NewProperties(parameters)

	properties.Property("months active is at least one", prop.ForAll(
		func(days int) bool {
			return MonthsActive(days) >= 1
		},
		gen.IntRange(1, 100000),
	))

	properties.Property("paused never yields signals or an override code", prop.ForAll(
		func(s Snapshot) bool {
			s.ActivityLevel = ActivityPaused
			code := ClassifyCode(s)
			return code != CodeSignals && code != CodeStrongReconsider && code != CodeLongTimeLowPressure
		},
		genSnapshot(),
	))

	properties.Property("two or more sales always yield signals", prop.ForAll(
		func(s Snapshot, extra int) bool {
			s.Sales90d = 2 + extra
			s.ActivityLevel = ActivityWeekly
			return ClassifyCode(s) == CodeSignals
		},
		genSnapshot(),
		gen.IntRange(0, 100),
	))

	properties.Property("exactly one known code per analysis", prop.ForAll(
		func(s Snapshot) bool {
			code := ClassifyAndPlan(s).Full.Code
			for _, c := range Codes {
				if c == code {
					return true
				}
			}
			return false
		},
		genSnapshot(),
	))

	properties.Property("preview depends only on the code", prop.ForAll(
		func(s Snapshot) bool {
			res := ClassifyAndPlan(s)
			return res.Preview == PreviewFor(res.Full.Code)
		},
		genSnapshot(),
	))

	properties.Property("override codes imply long tenure and zero sales", prop.ForAll(
		func(s Snapshot) bool {
			code := ClassifyCode(s)
			if code != CodeStrongReconsider && code != CodeLongTimeLowPressure {
				return true
			}
			return s.DaysActive >= LongTenureDays && s.Sales90d == 0 && s.ActivityLevel != ActivityPaused
		},
		genSnapshot(),
	))

	properties.Property("plan has three or four steps", prop.ForAll(
		func(s Snapshot) bool {
			n := len(ClassifyAndPlan(s).Full.Plan)
			return n >= 3 && n <= 4
		},
		genSnapshot(),
	))

	properties.TestingRun(t)
}
