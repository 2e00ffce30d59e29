package gists

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	httputils "gistapi/gistapi/utils/http"
)

func newTestService(t *testing.T, handler http.HandlerFunc) *Service {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewService(httputils.New(time.Second, 0, time.Millisecond), srv.URL)
}

func TestPagerRequestsUserPath(t *testing.T) {
	var gotPath string
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`[]`))
	})

	if _, err := svc.Pages("alice").Next(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotPath != "/users/alice/gists" {
		t.Errorf("expected path /users/alice/gists, got %q", gotPath)
	}
}

func TestPagerUserNotFound(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := svc.Pages("ghost").Next(context.Background())
	if !errors.Is(err, ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

func TestPagerForbiddenIsStatusError(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})

	_, err := svc.Pages("alice").Next(context.Background())
	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("expected StatusError, got %v", err)
	}
	if se.Code != http.StatusForbidden {
		t.Errorf("expected code 403, got %d", se.Code)
	}
}

func TestPagerMalformedJSON(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"not":"a list"`))
	})

	_, err := svc.Pages("alice").Next(context.Background())
	if !errors.Is(err, ErrMalformedResponse) {
		t.Errorf("expected ErrMalformedResponse, got %v", err)
	}
}

func TestPagerMissingHTMLURLIsMalformed(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"files":{}}]`))
	})

	_, err := svc.Pages("alice").Next(context.Background())
	if !errors.Is(err, ErrMalformedResponse) {
		t.Errorf("expected ErrMalformedResponse, got %v", err)
	}
}

func TestPagerEmptyPageEndsIteration(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page") == "1" {
			w.Write([]byte(`[{"html_url":"https://gist.github.com/1","files":{}}]`))
			return
		}
		w.Write([]byte(`[]`))
	})

	pager := svc.Pages("alice")
	page, err := pager.Next(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(page) != 1 {
		t.Fatalf("expected 1 gist on page 1, got %d", len(page))
	}

	page, err = pager.Next(context.Background())
	if err != nil || page != nil {
		t.Fatalf("expected iteration end, got page=%v err=%v", page, err)
	}
	// the pager stays exhausted
	page, err = pager.Next(context.Background())
	if err != nil || page != nil {
		t.Fatalf("expected iteration to stay ended, got page=%v err=%v", page, err)
	}
}

func TestPagerStopsAtCeiling(t *testing.T) {
	var pages []string
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		pages = append(pages, r.URL.Query().Get("page"))
		w.Write([]byte(`[{"html_url":"https://gist.github.com/1","files":{}}]`))
	})

	pager := svc.Pages("alice")
	seen := 0
	for {
		page, err := pager.Next(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if page == nil {
			break
		}
		seen++
		if seen > 10 {
			t.Fatal("pager never terminated")
		}
	}

	if seen != 5 {
		t.Errorf("expected 5 pages, got %d", seen)
	}
	want := []string{"1", "2", "3", "4", "5"}
	if len(pages) != len(want) {
		t.Fatalf("expected %d upstream calls, got %d", len(want), len(pages))
	}
	for i := range want {
		if pages[i] != want[i] {
			t.Errorf("call %d: expected page %s, got %s", i, want[i], pages[i])
		}
	}
}
