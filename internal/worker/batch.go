package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/claimlens/claimlens/internal/model"
)

// ClaimVerifier defines the interface for verifying a single claim
type ClaimVerifier interface {
	Verify(ctx context.Context, claim string, journals []string) (*model.VerificationResult, error)
}

// VerifyJob represents a single claim verification job
type VerifyJob struct {
	Claim    string
	Journals []string
	Verifier ClaimVerifier
}

// Execute executes the verification job
func (j *VerifyJob) Execute(ctx context.Context) Result {
	result, err := j.Verifier.Verify(ctx, j.Claim, j.Journals)
	return &VerifyResult{
		Claim:  j.Claim,
		Result: result,
		Error:  err,
	}
}

// VerifyResult represents the outcome of a verification job
type VerifyResult struct {
	Claim  string
	Result *model.VerificationResult
	Error  error
}

// GetError returns the error from the verification result
func (r *VerifyResult) GetError() error {
	return r.Error
}

// BatchProcessor verifies multiple claims concurrently. All claims in a
// batch share one journal set.
type BatchProcessor struct {
	verifier    ClaimVerifier
	journals    []string
	concurrency int
}

// NewBatchProcessor creates a new batch processor
func NewBatchProcessor(verifier ClaimVerifier, journals []string, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		verifier:    verifier,
		journals:    journals,
		concurrency: concurrency,
	}
}

// ProcessClaims verifies multiple claims concurrently. Submission runs in
// its own goroutine so results are drained while jobs are still queued;
// the pool's channels are bounded and fill up on batches larger than the
// worker count otherwise.
func (b *BatchProcessor) ProcessClaims(ctx context.Context, claims []string) []*VerifyResult {
	if len(claims) == 0 {
		return []*VerifyResult{}
	}

	pool := NewPool(b.concurrency)
	pool.Start()

	go func() {
		for _, claim := range claims {
			pool.Submit(&VerifyJob{
				Claim:    claim,
				Journals: b.journals,
				Verifier: b.verifier,
			})
		}
		pool.Close()
	}()

	results := make([]*VerifyResult, 0, len(claims))
	for r := range pool.Results() {
		if vr, ok := r.(*VerifyResult); ok {
			results = append(results, vr)
		}
	}

	return results
}

// ProcessFile reads claims from a file (one per line, # starts a comment)
// and verifies them concurrently.
func (b *BatchProcessor) ProcessFile(ctx context.Context, path string) ([]*VerifyResult, error) {
	claims, err := ReadClaimsFile(path)
	if err != nil {
		return nil, err
	}

	return b.ProcessClaims(ctx, claims), nil
}

// ReadClaimsFile reads claims from a file, one per line. Blank lines and
// lines starting with # are skipped.
func ReadClaimsFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open claims file: %w", err)
	}
	defer f.Close()

	var claims []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		claims = append(claims, line)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan claims file: %w", err)
	}

	return claims, nil
}
