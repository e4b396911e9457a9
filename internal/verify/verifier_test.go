package verify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/claimlens/claimlens/internal/cache"
	"github.com/claimlens/claimlens/internal/model"
)

var testArticles = []model.Article{
	{
		ID:              "38111111",
		Title:           "Effects of intermittent fasting on resting metabolic rate",
		Journal:         "Nature Metabolism",
		PublicationDate: "2023 Mar",
		Authors:         []string{"Smith J"},
	},
	{
		ID:              "38222222",
		Title:           "Time-restricted eating and energy expenditure",
		Journal:         "JAMA",
		PublicationDate: "2022 Nov",
		Authors:         []string{"Doe A"},
	},
}

func TestVerifier_EndToEnd(t *testing.T) {
	o := workingOracle()
	sc := &stubSearch{articles: testArticles}
	store := newStubCache()
	v := NewVerifier(o, sc, store, nil)

	claim := "Intermittent fasting increases metabolism by 15%"
	journals := []string{"Nature", "PubMed Central"}

	result, err := v.Verify(context.Background(), claim, journals)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}

	if result.Claim != claim {
		t.Errorf("Unexpected claim: %s", result.Claim)
	}
	if result.Status != model.StatusQuestionable {
		t.Errorf("Expected status from consensus reply, got %s", result.Status)
	}
	if result.ConfidenceScore < 0 || result.ConfidenceScore > 100 {
		t.Errorf("Confidence score out of range: %v", result.ConfidenceScore)
	}
	if len(result.References) != 2 {
		t.Errorf("Expected 2 references, got %d", len(result.References))
	}
	if result.Analysis.EvidenceQuality.ConsensusStrength != model.StrengthModerate {
		t.Errorf("Unexpected strength: %s", result.Analysis.EvidenceQuality.ConsensusStrength)
	}
	if o.callCount() != 3 {
		t.Errorf("Expected 3 oracle calls, got %d", o.callCount())
	}
	if sc.callCount() != 1 {
		t.Errorf("Expected 1 search call, got %d", sc.callCount())
	}
	if store.setCount() != 1 {
		t.Errorf("Expected exactly one cache write, got %d", store.setCount())
	}
}

func TestVerifier_CacheShortCircuit(t *testing.T) {
	claim := "Vitamin C cures the common cold"
	journals := []string{"The Lancet", "Nature"}

	stored := &model.VerificationResult{
		Claim:           claim,
		Status:          model.StatusDebunked,
		ConfidenceScore: 88,
		References:      []string{"Pauling L, revisited."},
	}
	data, _ := json.Marshal(stored)

	store := newStubCache()
	// Journal order intentionally differs from the lookup below
	_ = store.Set(cache.Key(claim, []string{"Nature", "The Lancet"}), data, time.Hour)

	o := workingOracle()
	sc := &stubSearch{articles: testArticles}
	v := NewVerifier(o, sc, store, nil)

	result, err := v.Verify(context.Background(), claim, journals)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}

	if result.Status != model.StatusDebunked || result.ConfidenceScore != 88 {
		t.Errorf("Expected the stored result, got %+v", result)
	}
	if o.callCount() != 0 {
		t.Errorf("Cache hit must not invoke the oracle, got %d calls", o.callCount())
	}
	if sc.callCount() != 0 {
		t.Errorf("Cache hit must not invoke search, got %d calls", sc.callCount())
	}
	if store.setCount() != 1 {
		t.Errorf("Cache hit must not write, got %d writes", store.setCount())
	}
}

func TestVerifier_Idempotence(t *testing.T) {
	o := workingOracle()
	sc := &stubSearch{articles: testArticles}
	store := newStubCache()
	v := NewVerifier(o, sc, store, nil)

	claim := "Green tea boosts fat oxidation"

	first, err := v.Verify(context.Background(), claim, []string{"Nature"})
	if err != nil {
		t.Fatalf("First Verify failed: %v", err)
	}
	second, err := v.Verify(context.Background(), claim, []string{"Nature"})
	if err != nil {
		t.Fatalf("Second Verify failed: %v", err)
	}

	firstJSON, _ := json.Marshal(first)
	secondJSON, _ := json.Marshal(second)
	if !bytes.Equal(firstJSON, secondJSON) {
		t.Errorf("Results differ:\n%s\n%s", firstJSON, secondJSON)
	}

	if o.callCount() != 3 {
		t.Errorf("Second call must come from cache; oracle calls = %d", o.callCount())
	}
}

func TestVerifier_DegradedEvidencePath(t *testing.T) {
	tests := []struct {
		name   string
		search *stubSearch
	}{
		{"search error", &stubSearch{err: errors.New("entrez unreachable")}},
		{"no results", &stubSearch{articles: []model.Article{}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := workingOracle()
			o.evidenceReply = emptyEvidenceReply
			v := NewVerifier(o, tt.search, newStubCache(), nil)

			result, err := v.Verify(context.Background(), "Celery juice detoxifies the liver", nil)
			if err != nil {
				t.Fatalf("Degraded path must still complete: %v", err)
			}

			eq := result.Analysis.EvidenceQuality
			if eq.SupportingStudies == nil || len(eq.SupportingStudies) != 0 {
				t.Errorf("Expected explicit empty supporting list, got %v", eq.SupportingStudies)
			}
			if eq.ConflictingStudies == nil || len(eq.ConflictingStudies) != 0 {
				t.Errorf("Expected explicit empty conflicting list, got %v", eq.ConflictingStudies)
			}
		})
	}
}

func TestVerifier_DecompositionFailureNotCached(t *testing.T) {
	tests := []struct {
		name  string
		reply string
	}{
		{"non-JSON", "I could not parse that claim, sorry!"},
		{"trailing free text", decomposeReply + "\nHope that helps!"},
		{"missing main_claim", `{"sub_claims": [], "keywords": []}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := workingOracle()
			o.decomposeReply = tt.reply
			store := newStubCache()
			v := NewVerifier(o, &stubSearch{}, store, nil)

			_, err := v.Verify(context.Background(), "Garlic lowers blood pressure", nil)
			if !errors.Is(err, ErrDecomposition) {
				t.Fatalf("Expected ErrDecomposition, got %v", err)
			}
			if store.setCount() != 0 {
				t.Errorf("Aborted run must not write cache, got %d writes", store.setCount())
			}
		})
	}
}

func TestVerifier_ConsensusFailureNotCached(t *testing.T) {
	o := workingOracle()
	o.consensusReply = `{"overall_status": "Plausible", "confidence_score": 50, "consensus_strength": "weak", "limitations": [], "recommendations": []}`
	store := newStubCache()
	v := NewVerifier(o, &stubSearch{articles: testArticles}, store, nil)

	_, err := v.Verify(context.Background(), "Honey is better than sugar", nil)
	if !errors.Is(err, ErrConsensus) {
		t.Fatalf("Expected ErrConsensus, got %v", err)
	}
	if store.setCount() != 0 {
		t.Errorf("Aborted run must not write cache, got %d writes", store.setCount())
	}
}

func TestVerifier_UpstreamError(t *testing.T) {
	o := &stubOracle{err: errors.New("connection refused")}
	v := NewVerifier(o, &stubSearch{}, newStubCache(), nil)

	_, err := v.Verify(context.Background(), "Kale prevents cancer", nil)
	if !errors.Is(err, ErrUpstream) {
		t.Fatalf("Expected ErrUpstream, got %v", err)
	}
}

func TestVerifier_InvalidInput(t *testing.T) {
	v := NewVerifier(workingOracle(), &stubSearch{}, newStubCache(), nil)

	for _, claim := range []string{"", "   ", "\t\n"} {
		if _, err := v.Verify(context.Background(), claim, nil); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("Verify(%q): expected ErrInvalidInput, got %v", claim, err)
		}
	}
}

func TestVerifier_ExpiredEntryRecomputes(t *testing.T) {
	dir := t.TempDir()
	store := cache.NewDiskCache(dir, time.Hour)

	claim := "Turmeric reduces inflammation"
	key := cache.Key(claim, nil)

	stale := &model.VerificationResult{Claim: claim, Status: model.StatusVerified, ConfidenceScore: 99}
	data, _ := json.Marshal(stale)
	// Already-expired entry at the key the verifier will derive
	if err := store.Set(key, data, -time.Second); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	o := workingOracle()
	v := NewVerifier(o, &stubSearch{articles: testArticles}, store, nil)

	result, err := v.Verify(context.Background(), claim, nil)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}

	if o.callCount() != 3 {
		t.Errorf("Expired entry must trigger full recomputation, oracle calls = %d", o.callCount())
	}
	if result.Status != model.StatusQuestionable {
		t.Errorf("Expected fresh result, got stale status %s", result.Status)
	}

	// The fresh result must have superseded the expired entry
	if cached, found := store.Get(key); !found {
		t.Error("Expected fresh entry at the same key")
	} else {
		var fresh model.VerificationResult
		if err := json.Unmarshal(cached, &fresh); err != nil || fresh.Status != model.StatusQuestionable {
			t.Errorf("Expected fresh cached result, got %s (err %v)", cached, err)
		}
	}
}

func TestVerifier_ConcurrentSameKeyCollapses(t *testing.T) {
	o := workingOracle()
	o.delay = 20 * time.Millisecond
	v := NewVerifier(o, &stubSearch{articles: testArticles}, newStubCache(), nil)

	const callers = 8
	var wg sync.WaitGroup
	errs := make([]error, callers)

	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = v.Verify(context.Background(), "Cold showers improve immunity", nil)
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Fatalf("caller %d failed: %v", i, err)
		}
	}

	// All callers share one pipeline run: three stage calls total
	if o.callCount() != 3 {
		t.Errorf("Expected concurrent callers to collapse into one run, oracle calls = %d", o.callCount())
	}
}

func TestVerifier_StarterDeadlineDoesNotFailCollapsedCallers(t *testing.T) {
	o := workingOracle()
	o.delay = 50 * time.Millisecond
	v := NewVerifier(o, &stubSearch{articles: testArticles}, newStubCache(), nil)

	claim := "Dark chocolate lowers blood pressure"

	// The starter's deadline fires mid-pipeline
	ctx, cancel := context.WithTimeout(context.Background(), 25*time.Millisecond)
	defer cancel()

	var wg sync.WaitGroup
	var starterErr error
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, starterErr = v.Verify(ctx, claim, nil)
	}()

	// Join the in-flight run with an unbounded context
	time.Sleep(10 * time.Millisecond)
	result, err := v.Verify(context.Background(), claim, nil)
	if err != nil {
		t.Fatalf("Collapsed caller must not inherit the starter's deadline: %v", err)
	}
	if result.Status != model.StatusQuestionable {
		t.Errorf("Unexpected status: %s", result.Status)
	}

	wg.Wait()
	if !errors.Is(starterErr, context.DeadlineExceeded) {
		t.Errorf("Starter should fail with its own deadline, got %v", starterErr)
	}
}
