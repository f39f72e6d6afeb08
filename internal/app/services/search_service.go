package services

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/ctecscope/ctecscope/internal/app/search"
)

// SearchService defines the interface for incremental lookup operations
type SearchService interface {
	// Suggest returns merged course/instructor suggestions for a query.
	// Queries shorter than the configured minimum return an empty list
	// without touching the store.
	Suggest(ctx context.Context, query string, limit int) ([]search.Result, error)
}

// searchServiceImpl implements the SearchService interface
type searchServiceImpl struct {
	store           search.Store
	minQueryLength  int
	suggestionLimit int
}

// NewSearchService creates a new search service instance
func NewSearchService(store search.Store, minQueryLength, suggestionLimit int) SearchService {
	if minQueryLength < 1 {
		minQueryLength = 2
	}
	if suggestionLimit < 1 {
		suggestionLimit = 5
	}
	return &searchServiceImpl{
		store:           store,
		minQueryLength:  minQueryLength,
		suggestionLimit: suggestionLimit,
	}
}

// Suggest implements SearchService
func (s *searchServiceImpl) Suggest(ctx context.Context, query string, limit int) ([]search.Result, error) {
	query = strings.TrimSpace(query)
	if utf8.RuneCountInString(query) < s.minQueryLength {
		return []search.Result{}, nil
	}

	if limit < 1 || limit > s.suggestionLimit {
		limit = s.suggestionLimit
	}
	return search.Lookup(ctx, s.store, query, limit)
}
