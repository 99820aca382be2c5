package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/ppiankov/verity/internal/model"
)

// Verifier is the subset of the engine batch processing needs
type Verifier interface {
	Verify(ctx context.Context, req model.VerificationRequest) (*model.VerificationResult, error)
}

// VerifyJob verifies one claim
type VerifyJob struct {
	Text     string
	Strategy model.Strategy
	Verifier Verifier
}

// Execute runs the verification
func (j *VerifyJob) Execute(ctx context.Context) Result {
	result, err := j.Verifier.Verify(ctx, model.VerificationRequest{
		Text:     j.Text,
		Strategy: j.Strategy,
	})
	return &VerifyResult{
		Text:   j.Text,
		Result: result,
		Error:  err,
	}
}

// VerifyResult pairs a claim with its verification outcome
type VerifyResult struct {
	Text   string
	Result *model.VerificationResult
	Error  error
}

// GetError returns the error from the verification
func (r *VerifyResult) GetError() error {
	return r.Error
}

// BatchProcessor verifies many claims concurrently
type BatchProcessor struct {
	verifier    Verifier
	strategy    model.Strategy
	concurrency int
}

// NewBatchProcessor creates a new batch processor
func NewBatchProcessor(verifier Verifier, strategy model.Strategy, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		verifier:    verifier,
		strategy:    strategy,
		concurrency: concurrency,
	}
}

// ProcessClaims verifies the given claims concurrently. Cancelling ctx
// abandons queued and in-flight verifications; only completed results
// are returned.
func (b *BatchProcessor) ProcessClaims(ctx context.Context, claims []string) []*VerifyResult {
	if len(claims) == 0 {
		return []*VerifyResult{}
	}

	pool := NewPool(ctx, b.concurrency)
	pool.Start()

	for _, text := range claims {
		pool.Submit(&VerifyJob{
			Text:     text,
			Strategy: b.strategy,
			Verifier: b.verifier,
		})
	}

	results := pool.Wait()

	verifyResults := make([]*VerifyResult, len(results))
	for i, result := range results {
		verifyResults[i] = result.(*VerifyResult)
	}

	return verifyResults
}

// ProcessFile reads claims from a file and verifies them concurrently
func (b *BatchProcessor) ProcessFile(ctx context.Context, filePath string) ([]*VerifyResult, error) {
	claims, err := ReadClaimsFromFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read claims: %w", err)
	}

	return b.ProcessClaims(ctx, claims), nil
}

// ReadClaimsFromFile reads claims from a file (one per line).
// Empty lines and #-comments are skipped; duplicates are dropped.
func ReadClaimsFromFile(filePath string) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var claims []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if !seen[line] {
			seen[line] = true
			claims = append(claims, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return claims, nil
}
