package search

import (
	"context"

	"github.com/claimlens/claimlens/internal/model"
)

// Client defines the interface to a bibliographic search backend. Zero hits
// is a successful empty result; an error means transport or auth failure.
type Client interface {
	Search(ctx context.Context, query string, maxResults int) ([]model.Article, error)
}
