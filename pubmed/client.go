package pubmed

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/Mateusinhoo/pubmed-blogger-automation/httpclient"
)

// DefaultBaseURL is the NCBI E-utilities endpoint.
const DefaultBaseURL = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils"

// ErrNoResults is returned by TopPaperID when the search window yields no
// identifiers.
var ErrNoResults = errors.New("pubmed: no recent papers found")

// ErrPaperNotFound is returned by PaperDetails when the efetch response is
// not a success or carries no Article node.
var ErrPaperNotFound = errors.New("pubmed: paper not found")

// Client talks to the PubMed esearch and efetch operations. The E-utilities
// endpoints need no authentication.
type Client struct {
	base       *httpclient.BaseClient
	maxResults int
}

// NewClient builds a Client against the public NCBI endpoint.
func NewClient(maxResults int) *Client {
	return NewClientWith(nil, DefaultBaseURL, maxResults)
}

// NewClientWith builds a Client with an explicit http.Client and base URL,
// so tests can point it at an httptest server.
func NewClientWith(hc *http.Client, baseURL string, maxResults int) *Client {
	if maxResults <= 0 {
		maxResults = 10
	}
	return &Client{
		base:       httpclient.NewBaseClientWithClient(hc, baseURL),
		maxResults: maxResults,
	}
}

// PaperURL derives the canonical PubMed page for an identifier.
func PaperURL(id string) string {
	return fmt.Sprintf("https://pubmed.ncbi.nlm.nih.gov/%s/", id)
}
