package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/claimlens/claimlens/internal/model"
	"github.com/claimlens/claimlens/internal/oracle"
)

// Extractor pulls health claims out of raw content text via the reasoning
// oracle. Extracted claims are candidates for verification.
type Extractor struct {
	oracle oracle.Oracle
}

// NewExtractor creates a new claim extractor
func NewExtractor(o oracle.Oracle) *Extractor {
	return &Extractor{oracle: o}
}

// Extract asks the oracle to identify claims in the content. When dedupe is
// set, near-identical claims are collapsed after extraction as well, since
// models are unreliable at removing their own duplicates.
func (e *Extractor) Extract(ctx context.Context, content string, dedupe bool) ([]model.Claim, error) {
	prompt := buildExtractPrompt(content, dedupe)

	reply, err := e.oracle.Query(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("query reasoning oracle: %w", err)
	}

	claims, err := parseClaims(reply)
	if err != nil {
		return nil, fmt.Errorf("parse extraction reply: %w", err)
	}

	if dedupe {
		claims = dedupeClaims(claims)
	}

	return claims, nil
}

func buildExtractPrompt(content string, dedupe bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Extract health-related claims from this content: %s\n", content)
	if dedupe {
		b.WriteString("Remove duplicate claims. ")
	}
	b.WriteString("Return as a JSON array of claim objects with text and context fields. Return only the JSON array, no other text.")
	return b.String()
}

// parseClaims parses the reply as exactly one JSON array of claims
func parseClaims(reply string) ([]model.Claim, error) {
	dec := json.NewDecoder(strings.NewReader(reply))

	var claims []model.Claim
	if err := dec.Decode(&claims); err != nil {
		return nil, err
	}
	if err := dec.Decode(new(json.RawMessage)); err != io.EOF {
		return nil, fmt.Errorf("trailing content after JSON array")
	}

	out := make([]model.Claim, 0, len(claims))
	for _, c := range claims {
		c.Text = strings.TrimSpace(c.Text)
		if c.Text == "" {
			continue
		}
		out = append(out, c)
	}

	return out, nil
}

var nonAlnum = regexp.MustCompile(`[^a-z0-9 ]+`)

// dedupeClaims drops claims whose normalized text already appeared
func dedupeClaims(claims []model.Claim) []model.Claim {
	seen := make(map[string]struct{}, len(claims))
	out := make([]model.Claim, 0, len(claims))

	for _, c := range claims {
		key := normalizeClaim(c.Text)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, c)
	}

	return out
}

// normalizeClaim lowercases, strips punctuation, and collapses whitespace
func normalizeClaim(text string) string {
	text = strings.ToLower(text)
	text = nonAlnum.ReplaceAllString(text, "")
	return strings.Join(strings.Fields(text), " ")
}
