package aggregate

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ppiankov/verity/internal/model"
	"github.com/ppiankov/verity/internal/sources"
)

// fakeSource is a scriptable Source
type fakeSource struct {
	name       string
	configured bool
	response   *model.SourceResponse
	err        error
	delay      time.Duration
}

func (f *fakeSource) Name() string     { return f.name }
func (f *fakeSource) Configured() bool { return f.configured }

func (f *fakeSource) Query(ctx context.Context, claim string) (*model.SourceResponse, error) {
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return f.response, f.err
}

func resp(name string, verdict model.Verdict, confidence float64) *model.SourceResponse {
	return &model.SourceResponse{
		SourceName: name,
		Verdict:    verdict,
		Confidence: confidence,
		Citations:  []string{name + " publisher"},
	}
}

func TestAggregate_WeightedMajority(t *testing.T) {
	// Two agreeing moderately-confident sources outweigh one confident outlier
	result := Aggregate([]model.SourceResponse{
		*resp("A", model.VerdictFalse, 90),
		*resp("B", model.VerdictFalse, 85),
		*resp("C", model.VerdictTrue, 95),
	})

	if result.Verdict != model.VerdictFalse {
		t.Errorf("verdict = %s, want FALSE", result.Verdict)
	}
	// (90+85)/3
	want := 175.0 / 3
	if diff := result.Confidence - want; diff > 0.01 || diff < -0.01 {
		t.Errorf("confidence = %v, want %v", result.Confidence, want)
	}
	if result.StrategyUsed != model.TierCloudAggregate {
		t.Errorf("tier = %s, want %s", result.StrategyUsed, model.TierCloudAggregate)
	}
}

func TestAggregate_Unanimous(t *testing.T) {
	result := Aggregate([]model.SourceResponse{
		*resp("A", model.VerdictFalse, 90),
		*resp("B", model.VerdictFalse, 80),
	})

	if result.Verdict != model.VerdictFalse {
		t.Errorf("verdict = %s, want FALSE", result.Verdict)
	}
	if result.Confidence != 85 {
		t.Errorf("confidence = %v, want 85", result.Confidence)
	}
}

func TestAggregate_ZeroResponders(t *testing.T) {
	result := Aggregate(nil)

	if result.Verdict != model.VerdictUncertain {
		t.Errorf("verdict = %s, want UNCERTAIN", result.Verdict)
	}
	if result.Confidence != 40 {
		t.Errorf("confidence = %v, want 40", result.Confidence)
	}
	if result.Explanation == "" {
		t.Error("expected an explanation for the empty quorum")
	}
}

func TestAggregate_EvidenceOrderedByWeight(t *testing.T) {
	result := Aggregate([]model.SourceResponse{
		*resp("minority", model.VerdictTrue, 60),
		*resp("majority1", model.VerdictFalse, 90),
		*resp("majority2", model.VerdictFalse, 85),
	})

	if len(result.Sources) != 3 {
		t.Fatalf("sources = %v, want 3 entries", result.Sources)
	}
	// Winning group's sources come first
	if result.Sources[0] != "majority1" || result.Sources[1] != "majority2" {
		t.Errorf("sources = %v, want winning group first", result.Sources)
	}
	if result.Sources[2] != "minority" {
		t.Errorf("sources = %v, want minority last", result.Sources)
	}
}

func TestVerify_FanOut(t *testing.T) {
	agg := New([]sources.Source{
		&fakeSource{name: "A", configured: true, response: resp("A", model.VerdictFalse, 90)},
		&fakeSource{name: "B", configured: true, response: resp("B", model.VerdictFalse, 80)},
		&fakeSource{name: "skipped", configured: false, response: resp("skipped", model.VerdictTrue, 99)},
		&fakeSource{name: "erroring", configured: true, err: errors.New("boom")},
		&fakeSource{name: "empty", configured: true}, // responded with no fact-checks
	}, time.Second)

	result := agg.Verify(context.Background(), "the earth is flat")

	if result.Verdict != model.VerdictFalse {
		t.Errorf("verdict = %s, want FALSE", result.Verdict)
	}
	if result.Confidence != 85 {
		t.Errorf("confidence = %v, want 85 (two responders)", result.Confidence)
	}
}

func TestVerify_TimeoutExcludesSlowSource(t *testing.T) {
	agg := New([]sources.Source{
		&fakeSource{name: "fast", configured: true, response: resp("fast", model.VerdictTrue, 90)},
		&fakeSource{name: "slow", configured: true, delay: 5 * time.Second,
			response: resp("slow", model.VerdictFalse, 99)},
	}, 50*time.Millisecond)

	start := time.Now()
	result := agg.Verify(context.Background(), "water boils at 100 degrees celsius")

	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Fatalf("aggregation blocked on slow source: %v", elapsed)
	}
	if result.Verdict != model.VerdictTrue {
		t.Errorf("verdict = %s, want TRUE from the fast source", result.Verdict)
	}
}

func TestVerify_AllUnconfigured(t *testing.T) {
	agg := New([]sources.Source{
		&fakeSource{name: "A", configured: false},
	}, time.Second)

	if n := agg.ConfiguredCount(); n != 0 {
		t.Errorf("ConfiguredCount = %d, want 0", n)
	}

	result := agg.Verify(context.Background(), "anything")
	if result.Verdict != model.VerdictUncertain {
		t.Errorf("verdict = %s, want UNCERTAIN", result.Verdict)
	}
}
