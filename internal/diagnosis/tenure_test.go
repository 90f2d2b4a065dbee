package diagnosis

import "testing"

func TestNormalizeDays(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   int
		wantOK bool
	}{
		{name: "empty", input: "", wantOK: false},
		{name: "only whitespace", input: "   \t ", wantOK: false},
		{name: "bare digits are days", input: "12", want: 12, wantOK: true},
		{name: "bare digits with padding", input: "  45  ", want: 45, wantOK: true},
		{name: "months", input: "6 meses", want: 180, wantOK: true},
		{name: "single month", input: "1 mes", want: 30, wantOK: true},
		{name: "years with tilde", input: "2 años", want: 730, wantOK: true},
		{name: "years without tilde", input: "3 anos", want: 1095, wantOK: true},
		{name: "uppercase years", input: "2 AÑOS", want: 730, wantOK: true},
		{name: "weeks", input: "3 semanas", want: 21, wantOK: true},
		{name: "days with accent", input: "10 días", want: 10, wantOK: true},
		{name: "days without accent", input: "10 dias", want: 10, wantOK: true},
		{name: "first integer wins", input: "6 meses y 2 semanas", want: 180, wantOK: true},
		{name: "number without unit", input: "lots of stuff 5", wantOK: false},
		{name: "no digits", input: "lots of stuff", wantOK: false},
		{name: "unit without number", input: "meses", wantOK: false},
		{name: "number glued to unit", input: "18meses", want: 540, wantOK: true},
		{name: "overflowing digits", input: "99999999999999999999999", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NormalizeDays(tt.input)
			if ok != tt.wantOK {
				t.Fatalf("NormalizeDays(%q) ok = %v, want %v", tt.input, ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("NormalizeDays(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeDays_MonthKeywordTakesPrecedence(t *testing.T) {
	// "mes" is checked before "año", so a mixed expression reads as months.
	got, ok := NormalizeDays("2 años y 3 meses")
	if !ok {
		t.Fatal("expected a value")
	}
	if got != 60 {
		t.Errorf("got %d, want 60", got)
	}
}

func TestMonthsActive(t *testing.T) {
	tests := []struct {
		days int
		want int
	}{
		{days: 1, want: 1},
		{days: 14, want: 1},
		{days: 30, want: 1},
		{days: 45, want: 2},
		{days: 75, want: 2},
		{days: 180, want: 6},
		{days: 540, want: 18},
		{days: 730, want: 24},
	}

	for _, tt := range tests {
		if got := MonthsActive(tt.days); got != tt.want {
			t.Errorf("MonthsActive(%d) = %d, want %d", tt.days, got, tt.want)
		}
	}
}

func TestOutboundCount(t *testing.T) {
	tests := []struct {
		level OutboundLevel
		want  int
	}{
		{OutboundNone, 0},
		{OutboundLow, 3},
		{OutboundMedium, 10},
		{OutboundHigh, 20},
		{OutboundLevel("LOTS"), 0},
		{OutboundLevel(""), 0},
	}

	for _, tt := range tests {
		if got := OutboundCount(tt.level); got != tt.want {
			t.Errorf("OutboundCount(%q) = %d, want %d", tt.level, got, tt.want)
		}
	}
}
