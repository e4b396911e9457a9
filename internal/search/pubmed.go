package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/claimlens/claimlens/internal/model"
	"github.com/claimlens/claimlens/internal/worker"
)

// PubMedClient queries the NCBI E-utilities API (esearch + esummary).
// It paces requests through a per-host rate limiter; NCBI allows 3 req/s
// without an API key and 10 req/s with one.
type PubMedClient struct {
	baseURL    string
	apiKey     string
	email      string
	httpClient *http.Client
	limiter    *worker.Limiter
}

// Config holds PubMed client configuration
type Config struct {
	BaseURL string
	APIKey  string
	Email   string
	Timeout int // seconds
}

// NewPubMedClient creates a new PubMed search client
func NewPubMedClient(config Config, limiter *worker.Limiter) *PubMedClient {
	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils"
	}

	timeout := time.Duration(config.Timeout) * time.Second
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	return &PubMedClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  config.APIKey,
		email:   config.Email,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		limiter: limiter,
	}
}

// esearch response shape (retmode=json)
type esearchResponse struct {
	ESearchResult struct {
		Count  string   `json:"count"`
		IDList []string `json:"idlist"`
	} `json:"esearchresult"`
}

// esummary per-article shape (retmode=json)
type esummaryDoc struct {
	UID             string `json:"uid"`
	Title           string `json:"title"`
	FullJournalName string `json:"fulljournalname"`
	Source          string `json:"source"`
	PubDate         string `json:"pubdate"`
	Authors         []struct {
		Name string `json:"name"`
	} `json:"authors"`
}

// Search queries PubMed and returns up to maxResults articles sorted by
// relevance. No matches returns an empty list, not an error.
func (c *PubMedClient) Search(ctx context.Context, query string, maxResults int) ([]model.Article, error) {
	if maxResults <= 0 {
		maxResults = 10
	}

	ids, err := c.esearch(ctx, query, maxResults)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []model.Article{}, nil
	}

	return c.esummary(ctx, ids)
}

// esearch resolves a query to a list of PubMed IDs
func (c *PubMedClient) esearch(ctx context.Context, query string, maxResults int) ([]string, error) {
	params := url.Values{}
	params.Set("db", "pubmed")
	params.Set("term", query)
	params.Set("retmax", fmt.Sprintf("%d", maxResults))
	params.Set("sort", "relevance")
	params.Set("retmode", "json")

	var resp esearchResponse
	if err := c.get(ctx, "esearch.fcgi", params, &resp); err != nil {
		return nil, fmt.Errorf("esearch: %w", err)
	}

	return resp.ESearchResult.IDList, nil
}

// esummary fetches article metadata for the given IDs, preserving order
func (c *PubMedClient) esummary(ctx context.Context, ids []string) ([]model.Article, error) {
	params := url.Values{}
	params.Set("db", "pubmed")
	params.Set("id", strings.Join(ids, ","))
	params.Set("retmode", "json")

	// The esummary result object maps each UID to its document, plus a
	// "uids" list that carries the order.
	var resp struct {
		Result map[string]json.RawMessage `json:"result"`
	}
	if err := c.get(ctx, "esummary.fcgi", params, &resp); err != nil {
		return nil, fmt.Errorf("esummary: %w", err)
	}

	var order []string
	if raw, ok := resp.Result["uids"]; ok {
		if err := json.Unmarshal(raw, &order); err != nil {
			return nil, fmt.Errorf("esummary: parse uids: %w", err)
		}
	} else {
		order = ids
	}

	articles := make([]model.Article, 0, len(order))
	for _, uid := range order {
		raw, ok := resp.Result[uid]
		if !ok {
			continue
		}
		var doc esummaryDoc
		if err := json.Unmarshal(raw, &doc); err != nil {
			continue // Skip documents with unexpected shapes
		}

		journal := doc.FullJournalName
		if journal == "" {
			journal = doc.Source
		}

		authors := make([]string, 0, len(doc.Authors))
		for _, a := range doc.Authors {
			authors = append(authors, a.Name)
		}

		articles = append(articles, model.Article{
			ID:              uid,
			Title:           doc.Title,
			Journal:         journal,
			PublicationDate: doc.PubDate,
			Authors:         authors,
			// Abstracts are not part of esummary records; the oracle
			// classifies on title/journal/date metadata.
		})
	}

	return articles, nil
}

// get performs a rate-limited GET against an E-utilities endpoint
func (c *PubMedClient) get(ctx context.Context, endpoint string, params url.Values, out any) error {
	if c.apiKey != "" {
		params.Set("api_key", c.apiKey)
	}
	if c.email != "" {
		params.Set("email", c.email)
		params.Set("tool", "claimlens")
	}

	reqURL := fmt.Sprintf("%s/%s?%s", c.baseURL, endpoint, params.Encode())

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx, reqURL); err != nil {
			return fmt.Errorf("rate limit wait: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(body))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}

	return nil
}
