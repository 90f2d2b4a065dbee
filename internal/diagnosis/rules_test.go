package diagnosis

import (
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/goleak"
)

// baseSnapshot is an active, short-tenure business with no recent activity.
func baseSnapshot() Snapshot {
	return Snapshot{
		DaysActive:    90,
		ActivityLevel: ActivityWeekly,
		BusinessType:  BusinessSaaS,
		SaleFlow:      SaleFlowDirectWeb,
		OutboundLevel: OutboundLow,
	}
}

func TestClassifyCode(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(s *Snapshot)
		want   Code
	}{
		{
			name:   "paused wins over sales",
			mutate: func(s *Snapshot) { s.ActivityLevel = ActivityPaused; s.Sales90d = 5 },
			want:   CodePaused,
		},
		{
			name:   "two sales are signals",
			mutate: func(s *Snapshot) { s.Sales90d = 2 },
			want:   CodeSignals,
		},
		{
			name:   "one sale is not enough",
			mutate: func(s *Snapshot) { s.Sales90d = 1; s.Conversations30d = 20; s.Offers30d = 20 },
			want:   CodeNoProof,
		},
		{
			name:   "interest without payment",
			mutate: func(s *Snapshot) { s.Conversations30d = 10; s.Offers30d = 10 },
			want:   CodeInterestNoPayment,
		},
		{
			name:   "conversations below threshold",
			mutate: func(s *Snapshot) { s.Conversations30d = 9; s.Offers30d = 10 },
			want:   CodeNoProof,
		},
		{
			name:   "fallback",
			mutate: func(s *Snapshot) {},
			want:   CodeNoProof,
		},
		{
			name: "long tenure overrides interest without payment",
			mutate: func(s *Snapshot) {
				s.DaysActive = LongTenureDays
				s.Conversations30d = 10
				s.Offers30d = 10
			},
			want: CodeStrongReconsider,
		},
		{
			name:   "long tenure with few offers",
			mutate: func(s *Snapshot) { s.DaysActive = 730; s.Offers30d = 4; s.Conversations30d = 30 },
			want:   CodeLongTimeLowPressure,
		},
		{
			name:   "long tenure with moderate offers keeps primary code",
			mutate: func(s *Snapshot) { s.DaysActive = 730; s.Offers30d = 7 },
			want:   CodeNoProof,
		},
		{
			name:   "one day short of long tenure",
			mutate: func(s *Snapshot) { s.DaysActive = LongTenureDays - 1; s.Offers30d = 0 },
			want:   CodeNoProof,
		},
		{
			name:   "paused long tenure is never overridden",
			mutate: func(s *Snapshot) { s.ActivityLevel = ActivityPaused; s.DaysActive = 1000 },
			want:   CodePaused,
		},
		{
			name:   "long tenure with one sale and few offers",
			mutate: func(s *Snapshot) { s.DaysActive = 1000; s.Sales90d = 1 },
			want:   CodeNoProof,
		},
		{
			name:   "occasional activity counts as active",
			mutate: func(s *Snapshot) { s.ActivityLevel = ActivitySometimes; s.DaysActive = 600 },
			want:   CodeLongTimeLowPressure,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := baseSnapshot()
			tt.mutate(&s)
			if got := ClassifyCode(s); got != tt.want {
				t.Errorf("ClassifyCode() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestClassifyAndPlan_StrongReconsiderScenario(t *testing.T) {
	s := Snapshot{
		DaysActive:       730,
		ActivityLevel:    ActivityWeekly,
		Sales90d:         0,
		Conversations30d: 12,
		Offers30d:        15,
		BusinessType:     BusinessService,
		SaleFlow:         SaleFlowTalkBeforeClose,
		OutboundLevel:    OutboundNone,
	}

	res := ClassifyAndPlan(s)

	if res.Full.Code != CodeStrongReconsider {
		t.Fatalf("Code = %s, want %s", res.Full.Code, CodeStrongReconsider)
	}
	if res.Full.Decision != "🟠 Replantear fuerte (cambio estructural)" {
		t.Errorf("Decision = %q", res.Full.Decision)
	}
	if res.Full.SecondaryNote == nil {
		t.Fatal("expected secondary note for conversation-driven model without outbound")
	}
	if res.Full.MonthsActive != 24 {
		t.Errorf("MonthsActive = %d, want 24", res.Full.MonthsActive)
	}
	for _, want := range []string{"24 meses", "12 conversaciones", "15 ofertas"} {
		if !strings.Contains(res.Full.Explanation, want) {
			t.Errorf("Explanation missing %q: %s", want, res.Full.Explanation)
		}
	}
	if diff := cmp.Diff(PlanFor(BusinessService), res.Full.Plan); diff != "" {
		t.Errorf("Plan mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(PreviewFor(CodeStrongReconsider), res.Preview); diff != "" {
		t.Errorf("Preview mismatch (-want +got):\n%s", diff)
	}
}

func TestClassifyAndPlan_LongTimeLowPressureScenario(t *testing.T) {
	s := Snapshot{
		DaysActive:       730,
		ActivityLevel:    ActivityWeekly,
		Conversations30d: 2,
		Offers30d:        2,
		BusinessType:     BusinessSaaS,
		SaleFlow:         SaleFlowDirectWeb,
		OutboundLevel:    OutboundNone,
	}

	res := ClassifyAndPlan(s)

	if res.Full.Code != CodeLongTimeLowPressure {
		t.Fatalf("Code = %s, want %s", res.Full.Code, CodeLongTimeLowPressure)
	}
	if res.Full.SecondaryNote != nil {
		t.Errorf("unexpected secondary note: %q", *res.Full.SecondaryNote)
	}
}

func TestClassify_SignalsRegardlessOfOtherFields(t *testing.T) {
	s := Snapshot{DaysActive: 60, Sales90d: 3}

	d := Classify(s)

	if d.Code != CodeSignals {
		t.Fatalf("Code = %s, want %s", d.Code, CodeSignals)
	}
	if !strings.Contains(d.Explanation, "3 ventas") {
		t.Errorf("Explanation should mention the sales count: %s", d.Explanation)
	}
	if d.Decision != "✅ Continuar" {
		t.Errorf("Decision = %q", d.Decision)
	}
}

func TestClassify_SecondaryNote(t *testing.T) {
	tests := []struct {
		name     string
		business BusinessType
		flow     SaleFlow
		outbound OutboundLevel
		wantNote bool
	}{
		{"service without outbound", BusinessService, SaleFlowDirectWeb, OutboundNone, true},
		{"talk before close without outbound", BusinessSaaS, SaleFlowTalkBeforeClose, OutboundNone, true},
		{"service with outbound", BusinessService, SaleFlowTalkBeforeClose, OutboundLow, false},
		{"web sale without outbound", BusinessPhysicalProduct, SaleFlowDirectWeb, OutboundNone, false},
		{"depends without outbound", BusinessDigitalProduct, SaleFlowDepends, OutboundNone, false},
		{"service with unknown outbound label", BusinessService, SaleFlowDepends, OutboundLevel("??"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := baseSnapshot()
			s.BusinessType = tt.business
			s.SaleFlow = tt.flow
			s.OutboundLevel = tt.outbound

			d := Classify(s)
			if got := d.SecondaryNote != nil; got != tt.wantNote {
				t.Errorf("has secondary note = %v, want %v", got, tt.wantNote)
			}
		})
	}
}

func TestClassify_DecisionPerCode(t *testing.T) {
	seen := make(map[string]Code)
	for _, code := range Codes {
		d := decisionFor(code)
		if d.label == "" || d.explanation == "" {
			t.Errorf("decision for %s is incomplete", code)
		}
		if other, ok := seen[d.label]; ok {
			t.Errorf("decision label %q shared by %s and %s", d.label, other, code)
		}
		seen[d.label] = code
	}
}

func TestClassify_CopyForEveryCode(t *testing.T) {
	for _, code := range Codes {
		c, ok := codeCopies[code]
		if !ok {
			t.Fatalf("no copy for %s", code)
		}
		if c.headline == "" {
			t.Errorf("empty headline for %s", code)
		}
		if c.explain(deriveFacts(baseSnapshot())) == "" {
			t.Errorf("empty explanation for %s", code)
		}
	}
}

func TestRuleNamesUnique(t *testing.T) {
	names := make(map[string]bool)
	for _, r := range append(append([]rule{}, primaryRules...), overrideRules...) {
		if names[r.name] {
			t.Errorf("duplicate rule name %q", r.name)
		}
		names[r.name] = true
	}
}

func TestClassifyAndPlan_ConcurrentCalls(t *testing.T) {
	defer goleak.VerifyNone(t)

	s := baseSnapshot()
	s.Sales90d = 4
	want := ClassifyAndPlan(s)

	var wg sync.WaitGroup
	results := make([]Result, 32)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = ClassifyAndPlan(s)
		}(i)
	}
	wg.Wait()

	for i, got := range results {
		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("result %d differs (-want +got):\n%s", i, diff)
		}
	}
}

func TestClassifyAndPlan_ResultsDoNotShareSlices(t *testing.T) {
	s := baseSnapshot()
	first := ClassifyAndPlan(s)
	first.Full.Plan[0] = "mutated"
	first.Full.Avoid[0] = "mutated"

	second := ClassifyAndPlan(s)
	if second.Full.Plan[0] == "mutated" || second.Full.Avoid[0] == "mutated" {
		t.Error("mutating one result leaked into the next")
	}
}
