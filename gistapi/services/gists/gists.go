package gists

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	httputils "gistapi/gistapi/utils/http"
	"gistapi/gistapi/utils/types"
)

// maxPages bounds how much of a user's gist history one search pulls.
// Iteration past the ceiling stops silently; callers must not assume the
// listing was complete.
const maxPages = 5

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrMalformedResponse = errors.New("malformed gist list response")
)

// StatusError reports an upstream response with a status this service has no
// specific handling for. Rate-limit 403s land here; they are not told apart
// for now.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status code %d", e.Code)
}

// Service fetches gist metadata and raw file content from the GitHub API.
type Service struct {
	client  *httputils.Client
	baseURL string
}

func NewService(client *httputils.Client, baseURL string) *Service {
	return &Service{client: client, baseURL: strings.TrimRight(baseURL, "/")}
}

// Pages returns a pager over username's public gists.
func (s *Service) Pages(username string) *Pager {
	return &Pager{svc: s, username: username}
}

// Pager walks the paginated gist list for one user, one page per Next call.
// It is forward-only and not safe for concurrent use.
type Pager struct {
	svc      *Service
	username string
	page     int
	done     bool
}

// Next fetches the next page of gists. It returns (nil, nil) once the page
// ceiling is hit or the API returns an empty page.
func (p *Pager) Next(ctx context.Context) ([]types.Gist, error) {
	if p.done || p.page >= maxPages {
		return nil, nil
	}
	p.page++

	listURL := fmt.Sprintf("%s/users/%s/gists", p.svc.baseURL, url.PathEscape(p.username))
	resp, err := p.svc.client.Get(ctx, listURL, url.Values{"page": []string{strconv.Itoa(p.page)}})
	if err != nil {
		return nil, fmt.Errorf("list gists page %d: %w", p.page, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrUserNotFound
	case resp.StatusCode != http.StatusOK:
		return nil, &StatusError{Code: resp.StatusCode}
	}

	var page []types.Gist
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	for _, g := range page {
		if g.HTMLURL == "" {
			return nil, fmt.Errorf("%w: gist entry missing html_url", ErrMalformedResponse)
		}
		for name, f := range g.Files {
			if f.RawURL == "" {
				return nil, fmt.Errorf("%w: file %q missing raw_url", ErrMalformedResponse, name)
			}
		}
	}
	if len(page) == 0 {
		p.done = true
		return nil, nil
	}
	return page, nil
}
