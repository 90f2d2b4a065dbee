package diagnosis

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestPlanFor(t *testing.T) {
	tests := []struct {
		business  BusinessType
		wantLen   int
		wantFirst string
	}{
		{BusinessPhysicalProduct, 4, "Elige UN producto principal"},
		{BusinessService, 3, "Genera conversaciones reales"},
		{BusinessDigitalProduct, 3, "Enfoca todo en UNA oferta"},
		{BusinessSaaS, 3, "Consigue usuarios reales"},
	}

	for _, tt := range tests {
		t.Run(string(tt.business), func(t *testing.T) {
			plan := PlanFor(tt.business)
			if len(plan) != tt.wantLen {
				t.Fatalf("len(plan) = %d, want %d", len(plan), tt.wantLen)
			}
			if !strings.HasPrefix(plan[0], tt.wantFirst) {
				t.Errorf("plan[0] = %q, want prefix %q", plan[0], tt.wantFirst)
			}
		})
	}
}

func TestPlanFor_UnknownFallsBackToSaaS(t *testing.T) {
	if diff := cmp.Diff(PlanFor(BusinessSaaS), PlanFor(BusinessType("FOOD_TRUCK"))); diff != "" {
		t.Errorf("unknown business type plan mismatch (-saas +got):\n%s", diff)
	}
}

func TestAvoidList_ConstantAcrossInputs(t *testing.T) {
	want := AvoidList()
	if len(want) != 2 {
		t.Fatalf("len(AvoidList()) = %d, want 2", len(want))
	}

	for _, bt := range BusinessTypes {
		for _, level := range ActivityLevels {
			for _, sales := range []int{0, 1, 2, 10} {
				s := Snapshot{
					DaysActive:       800,
					ActivityLevel:    level,
					Sales90d:         sales,
					Conversations30d: 12,
					Offers30d:        12,
					BusinessType:     bt,
					SaleFlow:         SaleFlowDepends,
					OutboundLevel:    OutboundMedium,
				}
				got := ClassifyAndPlan(s).Full.Avoid
				if diff := cmp.Diff(want, got); diff != "" {
					t.Fatalf("avoid list differs for %s/%s/%d (-want +got):\n%s", bt, level, sales, diff)
				}
			}
		}
	}
}
