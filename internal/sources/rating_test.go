package sources

import (
	"testing"

	"github.com/ppiankov/verity/internal/model"
)

func TestNormalizeRating(t *testing.T) {
	tests := []struct {
		raw  string
		want Rating
	}{
		{"True", RatingTrue},
		{"TRUE", RatingTrue},
		{"Correct", RatingTrue},
		{"Accurate", RatingTrue},
		{"Mostly True", RatingMostlyTrue},
		{"Mostly true", RatingMostlyTrue},
		{"False", RatingFalse},
		{"Pants on Fire!", RatingFalse},
		{"Incorrect", RatingFalse},
		{"Inaccurate", RatingFalse},
		{"Mostly False", RatingMostlyFalse},
		{"Mostly Inaccurate", RatingMostlyFalse},
		{"Half True", RatingMixed},
		{"Misleading", RatingMixed},
		{"Mixture", RatingMixed},
		{"Unproven", RatingUnverifiable},
		{"Unverifiable", RatingUnverifiable},
		{"Unverified", RatingUnverifiable},
		{"Some novel rating", RatingUncertain},
		{"", RatingUncertain},
	}

	for _, tt := range tests {
		if got := NormalizeRating(tt.raw); got != tt.want {
			t.Errorf("NormalizeRating(%q) = %s, want %s", tt.raw, got, tt.want)
		}
	}
}

func TestRatingVerdict(t *testing.T) {
	tests := []struct {
		rating Rating
		want   model.Verdict
	}{
		{RatingTrue, model.VerdictTrue},
		{RatingMostlyTrue, model.VerdictTrue},
		{RatingMixed, model.VerdictMisleading},
		{RatingMostlyFalse, model.VerdictMisleading},
		{RatingFalse, model.VerdictFalse},
		{RatingUnverifiable, model.VerdictUnverifiable},
		{RatingUncertain, model.VerdictUncertain},
	}

	for _, tt := range tests {
		if got := tt.rating.Verdict(); got != tt.want {
			t.Errorf("%s.Verdict() = %s, want %s", tt.rating, got, tt.want)
		}
	}
}
