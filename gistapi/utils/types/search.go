package types

// SearchRequest is the POST /api/v1/search body.
type SearchRequest struct {
	Username string `json:"username"`
	Pattern  string `json:"pattern"`
}

// SearchResponse is the success envelope. Matches holds the html_url of
// every matching gist, in discovery order.
type SearchResponse struct {
	Status   string   `json:"status"`
	Username string   `json:"username"`
	Pattern  string   `json:"pattern"`
	Matches  []string `json:"matches"`
}

type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}
