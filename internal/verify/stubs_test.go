package verify

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/claimlens/claimlens/internal/model"
)

// stubOracle routes prompts to canned replies by stage and counts calls
type stubOracle struct {
	mu             sync.Mutex
	calls          int
	delay          time.Duration
	decomposeReply string
	evidenceReply  string
	consensusReply string
	err            error
}

func (s *stubOracle) Name() string { return "stub" }

func (s *stubOracle) IsAvailable(ctx context.Context) bool { return true }

func (s *stubOracle) Query(ctx context.Context, prompt string) (string, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()

	if s.delay > 0 {
		time.Sleep(s.delay)
	}
	if s.err != nil {
		return "", s.err
	}

	switch {
	case strings.Contains(prompt, "Break down this health claim"):
		return s.decomposeReply, nil
	case strings.Contains(prompt, "Analyze these scientific studies"):
		return s.evidenceReply, nil
	case strings.Contains(prompt, "scientific consensus"):
		return s.consensusReply, nil
	}
	return "", errors.New("stub oracle: unrecognized prompt")
}

func (s *stubOracle) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

// stubSearch returns canned articles or a canned error and counts calls
type stubSearch struct {
	mu       sync.Mutex
	calls    int
	articles []model.Article
	err      error
}

func (s *stubSearch) Search(ctx context.Context, query string, maxResults int) ([]model.Article, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()

	if s.err != nil {
		return nil, s.err
	}
	return s.articles, nil
}

func (s *stubSearch) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

// stubCache is an in-memory cache that ignores TTL and counts writes
type stubCache struct {
	mu      sync.Mutex
	entries map[string][]byte
	sets    int
}

func newStubCache() *stubCache {
	return &stubCache{entries: make(map[string][]byte)}
}

func (c *stubCache) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	val, ok := c.entries[key]
	return val, ok
}

func (c *stubCache) Set(key string, value []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = value
	c.sets++
	return nil
}

func (c *stubCache) Delete(key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
	return nil
}

func (c *stubCache) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string][]byte)
	return nil
}

func (c *stubCache) setCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sets
}

// Canned stage replies used across tests

const decomposeReply = `{
	"main_claim": "Intermittent fasting increases metabolism",
	"sub_claims": ["Fasting alters metabolic rate", "The effect size is 15%"],
	"measurable_outcomes": ["resting metabolic rate"],
	"timeframe": "",
	"keywords": ["intermittent fasting", "metabolism"]
}`

const evidenceReply = `{
	"supporting_studies": ["38111111"],
	"conflicting_studies": ["38222222"],
	"methodology_scores": {"38111111": 82, "38222222": 74},
	"sample_sizes": {"38111111": 150, "38222222": 93},
	"references": ["Smith J et al. Nat Metab. 2023.", "Doe A et al. JAMA. 2022."]
}`

const emptyEvidenceReply = `{
	"supporting_studies": [],
	"conflicting_studies": [],
	"methodology_scores": {},
	"sample_sizes": {},
	"references": []
}`

const consensusReply = `{
	"overall_status": "Questionable",
	"confidence_score": 55,
	"consensus_strength": "moderate",
	"limitations": ["small sample sizes"],
	"recommendations": ["larger randomized trials"]
}`

func workingOracle() *stubOracle {
	return &stubOracle{
		decomposeReply: decomposeReply,
		evidenceReply:  evidenceReply,
		consensusReply: consensusReply,
	}
}
