package verify

import (
	"context"
	"errors"
	"testing"
)

func TestDecomposer_Success(t *testing.T) {
	d := NewDecomposer(workingOracle())

	components, err := d.Decompose(context.Background(), "Intermittent fasting increases metabolism by 15%")
	if err != nil {
		t.Fatalf("Decompose failed: %v", err)
	}

	if components.MainClaim != "Intermittent fasting increases metabolism" {
		t.Errorf("Unexpected main claim: %s", components.MainClaim)
	}
	if len(components.SubClaims) != 2 {
		t.Errorf("Expected 2 sub-claims, got %d", len(components.SubClaims))
	}
	if len(components.Keywords) != 2 {
		t.Errorf("Expected 2 keywords, got %d", len(components.Keywords))
	}
}

func TestDecomposer_MalformedReply(t *testing.T) {
	tests := []struct {
		name  string
		reply string
	}{
		{"free text", "The claim says fasting boosts metabolism."},
		{"json then prose", `{"main_claim": "x", "sub_claims": [], "measurable_outcomes": [], "keywords": []} As requested.`},
		{"empty main claim", `{"main_claim": "", "sub_claims": [], "measurable_outcomes": [], "keywords": []}`},
		{"empty object", `{}`},
		{"main claim only", `{"main_claim": "Fasting boosts metabolism"}`},
		{"missing keywords", `{"main_claim": "x", "sub_claims": [], "measurable_outcomes": []}`},
		{"empty reply", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := workingOracle()
			o.decomposeReply = tt.reply
			d := NewDecomposer(o)

			_, err := d.Decompose(context.Background(), "some claim")
			if !errors.Is(err, ErrDecomposition) {
				t.Fatalf("Expected ErrDecomposition, got %v", err)
			}
		})
	}
}

func TestDecomposer_OracleError(t *testing.T) {
	d := NewDecomposer(&stubOracle{err: errors.New("timeout")})

	_, err := d.Decompose(context.Background(), "some claim")
	if !errors.Is(err, ErrUpstream) {
		t.Fatalf("Expected ErrUpstream, got %v", err)
	}
}
