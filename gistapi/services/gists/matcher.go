package gists

import (
	"bufio"
	"context"
	"net/http"
	"regexp"

	"go.uber.org/zap"

	"gistapi/gistapi/utils/logging"
	"gistapi/gistapi/utils/types"
)

// maxLineBytes caps a single scanned line. Gists above GitHub's raw-content
// truncation ceiling are out of scope; a line this long is not worth matching.
const maxLineBytes = 1 << 20

// CompileAnchored compiles pattern so it counts as a hit only when it
// matches at the start of a line, not merely somewhere inside it.
func CompileAnchored(pattern string) (*regexp.Regexp, error) {
	return regexp.Compile(`\A(?:` + pattern + `)`)
}

// GistMatches reports whether any line of any file in gist matches re at
// line start, stopping at the first hit. A file whose content cannot be
// retrieved is logged and skipped; one bad file never fails the search.
func (s *Service) GistMatches(ctx context.Context, gist types.Gist, re *regexp.Regexp) bool {
	for name, file := range gist.Files {
		ok, err := s.fileMatches(ctx, file.RawURL, re)
		if err != nil {
			logging.ErrorLogger.Error("gist file fetch failed",
				zap.String("gist", gist.HTMLURL),
				zap.String("file", name),
				zap.Error(err))
			continue
		}
		if ok {
			return true
		}
	}
	return false
}

func (s *Service) fileMatches(ctx context.Context, rawURL string, re *regexp.Regexp) (bool, error) {
	resp, err := s.client.Get(ctx, rawURL, nil)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return false, &StatusError{Code: resp.StatusCode}
	}

	sc := bufio.NewScanner(resp.Body)
	sc.Buffer(make([]byte, 64*1024), maxLineBytes)
	for sc.Scan() {
		if re.MatchString(sc.Text()) {
			return true, nil
		}
	}
	return false, sc.Err()
}
