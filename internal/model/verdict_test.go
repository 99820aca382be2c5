package model

import "testing"

func TestParseVerdict(t *testing.T) {
	tests := []struct {
		input string
		want  Verdict
	}{
		{"TRUE", VerdictTrue},
		{"true", VerdictTrue},
		{" False ", VerdictFalse},
		{"Misleading", VerdictMisleading},
		{"UNVERIFIABLE", VerdictUnverifiable},
		{"UNCERTAIN", VerdictUncertain},
		{"garbage", VerdictUncertain},
		{"", VerdictUncertain},
	}

	for _, tt := range tests {
		if got := ParseVerdict(tt.input); got != tt.want {
			t.Errorf("ParseVerdict(%q) = %s, want %s", tt.input, got, tt.want)
		}
	}
}

func TestParseStrategy(t *testing.T) {
	tests := []struct {
		input string
		want  Strategy
	}{
		{"local", StrategyLocal},
		{"LOCAL", StrategyLocal},
		{"cloud", StrategyCloud},
		{"hybrid", StrategyHybrid},
		{"", StrategyHybrid},
		{"anything else", StrategyHybrid},
	}

	for _, tt := range tests {
		if got := ParseStrategy(tt.input); got != tt.want {
			t.Errorf("ParseStrategy(%q) = %s, want %s", tt.input, got, tt.want)
		}
	}
}
