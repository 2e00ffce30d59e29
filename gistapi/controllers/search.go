package controllers

import (
	"context"
	"errors"
	"fmt"

	"gistapi/gistapi/services/gists"
	"gistapi/gistapi/utils/logging"
	"gistapi/gistapi/utils/types"
)

// ErrInvalidPattern marks a search pattern that does not compile. The routes
// layer turns it into a 400 before any upstream call is made.
var ErrInvalidPattern = errors.New("invalid pattern")

// SearchController drives one gist search end to end: compile the pattern,
// page through the user's gists and collect the URLs of those that match.
type SearchController struct {
	gists *gists.Service
}

func NewSearchController(svc *gists.Service) *SearchController {
	return &SearchController{gists: svc}
}

// Search returns the matching gist URLs in discovery order: page order,
// then within-page order. The response echoes the caller's pattern text
// unmodified. Errors carry the gists package taxonomy.
func (c *SearchController) Search(ctx context.Context, req types.SearchRequest) (*types.SearchResponse, error) {
	re, err := gists.CompileAnchored(req.Pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPattern, err)
	}
	defer logging.LogDuration(ctx, "SearchController.Search")()

	matches := []string{}
	pager := c.gists.Pages(req.Username)
	for {
		page, err := pager.Next(ctx)
		if err != nil {
			return nil, err
		}
		if page == nil {
			break
		}
		for _, gist := range page {
			if c.gists.GistMatches(ctx, gist, re) {
				matches = append(matches, gist.HTMLURL)
			}
		}
	}

	return &types.SearchResponse{
		Status:   "success",
		Username: req.Username,
		Pattern:  req.Pattern,
		Matches:  matches,
	}, nil
}
