package types

// Gist is one element of the GitHub gist-list payload. Files maps filename
// to file metadata and may be empty.
type Gist struct {
	HTMLURL string              `json:"html_url"`
	Files   map[string]GistFile `json:"files"`
}

type GistFile struct {
	RawURL string `json:"raw_url"`
}
