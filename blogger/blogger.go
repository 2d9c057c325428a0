package blogger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/Mateusinhoo/pubmed-blogger-automation/config"
	"github.com/Mateusinhoo/pubmed-blogger-automation/httpclient"
	"github.com/Mateusinhoo/pubmed-blogger-automation/internal/logger"
	"github.com/Mateusinhoo/pubmed-blogger-automation/models"
)

// DefaultBaseURL is the Blogger v3 REST endpoint.
const DefaultBaseURL = "https://www.googleapis.com/blogger/v3"

const postTitlePrefix = "Medical Research Today: "

// ErrMissingCredentials is returned when the API key or blog ID is absent.
// The publish is not attempted and no request is dispatched.
var ErrMissingCredentials = errors.New("blogger: missing Blogger API credentials")

// Publisher submits posts to the Blogger API using a developer key.
type Publisher struct {
	base  *httpclient.BaseClient
	creds config.Credentials
}

// NewPublisher builds a Publisher from injected credentials.
func NewPublisher(creds config.Credentials) *Publisher {
	return NewPublisherWith(nil, DefaultBaseURL, creds)
}

// NewPublisherWith builds a Publisher with an explicit http.Client and base
// URL for tests.
func NewPublisherWith(hc *http.Client, baseURL string, creds config.Credentials) *Publisher {
	return &Publisher{
		base:  httpclient.NewBaseClientWithClient(hc, baseURL),
		creds: creds,
	}
}

type insertPostRequest struct {
	Kind    string `json:"kind"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

type insertPostResponse struct {
	URL string `json:"url"`
}

// Publish submits the rendered post as a new Blogger post and returns its
// URL. Missing credentials short-circuit with ErrMissingCredentials before
// any request is built.
func (p *Publisher) Publish(ctx context.Context, post string, paper *models.Paper) (string, error) {
	if !p.creds.HasBloggerCredentials() {
		return "", ErrMissingCredentials
	}

	postTitle := postTitlePrefix + strings.TrimSpace(strings.SplitN(paper.Title, ":", 2)[0])

	body := insertPostRequest{
		Kind:  "blogger#post",
		Title: postTitle,
		// Blogger renders HTML; convert the markdown line breaks.
		Content: strings.ReplaceAll(post, "\n", "<br>"),
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("encoding post body: %w", err)
	}

	query := url.Values{"key": {p.creds.BloggerAPIKey}}
	relPath := fmt.Sprintf("/blogs/%s/posts", url.PathEscape(p.creds.BloggerBlogID))
	req, err := p.base.NewRequest(ctx, http.MethodPost, relPath, query, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.base.Do(req)
	if err != nil {
		return "", fmt.Errorf("blogger insert request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("blogger insert returned HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	var created insertPostResponse
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return "", fmt.Errorf("parsing blogger response: %w", err)
	}

	logger.InfoWithFields("blog post published", logger.Fields{
		"paper_id": paper.ID,
		"post_url": created.URL,
	})
	return created.URL, nil
}
