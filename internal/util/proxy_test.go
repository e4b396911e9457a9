package util

import (
	"net/http/httptest"
	"testing"
)

func TestNewProxyFunc_ExplicitProxies(t *testing.T) {
	proxy := NewProxyFunc("http://proxy:3128", "http://secure-proxy:3128", "")

	req := httptest.NewRequest("GET", "https://api.perplexity.ai/chat/completions", nil)
	u, err := proxy(req)
	if err != nil {
		t.Fatalf("proxy func failed: %v", err)
	}
	if u == nil || u.Host != "secure-proxy:3128" {
		t.Errorf("Expected https proxy for https request, got %v", u)
	}

	req = httptest.NewRequest("GET", "http://localhost:11434/api/generate", nil)
	u, err = proxy(req)
	if err != nil {
		t.Fatalf("proxy func failed: %v", err)
	}
	if u == nil || u.Host != "proxy:3128" {
		t.Errorf("Expected http proxy for http request, got %v", u)
	}
}

func TestNewProxyFunc_NoProxyBypass(t *testing.T) {
	proxy := NewProxyFunc("http://proxy:3128", "", "localhost,.nih.gov")

	for _, target := range []string{
		"https://eutils.ncbi.nlm.nih.gov/entrez/eutils/esearch.fcgi",
		"http://localhost:11434/api/tags",
	} {
		req := httptest.NewRequest("GET", target, nil)
		u, err := proxy(req)
		if err != nil {
			t.Fatalf("proxy func failed for %s: %v", target, err)
		}
		if u != nil {
			t.Errorf("Expected direct connection for %s, got proxy %v", target, u)
		}
	}
}

func TestHostExcluded(t *testing.T) {
	tests := []struct {
		host    string
		noProxy string
		want    bool
	}{
		{"localhost", "localhost", true},
		{"eutils.ncbi.nlm.nih.gov", ".nih.gov", true},
		{"eutils.ncbi.nlm.nih.gov", "nih.gov", true},
		{"api.perplexity.ai", "localhost,.nih.gov", false},
		{"nih.gov.evil.example", ".nih.gov", false},
		{"anything", "", false},
	}

	for _, tt := range tests {
		if got := hostExcluded(tt.host, tt.noProxy); got != tt.want {
			t.Errorf("hostExcluded(%q, %q) = %v, want %v", tt.host, tt.noProxy, got, tt.want)
		}
	}
}
