package blogger_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mateusinhoo/pubmed-blogger-automation/blogger"
	"github.com/Mateusinhoo/pubmed-blogger-automation/config"
	"github.com/Mateusinhoo/pubmed-blogger-automation/models"
)

func testPaper() *models.Paper {
	return &models.Paper{
		ID:        "12345",
		Title:     "Drug X Reduces Risk: A Trial",
		PubMedURL: "https://pubmed.ncbi.nlm.nih.gov/12345/",
	}
}

func TestPublishMissingCredentialsDispatchesNoRequest(t *testing.T) {
	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))
	defer srv.Close()

	cases := []config.Credentials{
		{},
		{BloggerAPIKey: "key"},
		{BloggerBlogID: "blog-1"},
	}
	for _, creds := range cases {
		p := blogger.NewPublisherWith(srv.Client(), srv.URL, creds)
		_, err := p.Publish(context.Background(), "body", testPaper())
		assert.ErrorIs(t, err, blogger.ErrMissingCredentials)
	}
	assert.Equal(t, 0, requests)
}

func TestPublishInsertsPost(t *testing.T) {
	var gotPath, gotKey string
	var gotBody map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.URL.Query().Get("key")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Write([]byte(`{"url":"https://example.blogspot.com/2024/03/drug-x.html"}`))
	}))
	defer srv.Close()

	creds := config.Credentials{BloggerAPIKey: "dev-key", BloggerBlogID: "blog-1"}
	p := blogger.NewPublisherWith(srv.Client(), srv.URL, creds)

	url, err := p.Publish(context.Background(), "line one\nline two", testPaper())
	require.NoError(t, err)

	assert.Equal(t, "https://example.blogspot.com/2024/03/drug-x.html", url)
	assert.Equal(t, "/blogs/blog-1/posts", gotPath)
	assert.Equal(t, "dev-key", gotKey)
	assert.Equal(t, "blogger#post", gotBody["kind"])
	assert.Equal(t, "Medical Research Today: Drug X Reduces Risk", gotBody["title"])
	assert.Equal(t, "line one<br>line two", gotBody["content"])
}

func TestPublishAPIFailureReturnsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error":{"message":"keyInvalid"}}`))
	}))
	defer srv.Close()

	creds := config.Credentials{BloggerAPIKey: "bad", BloggerBlogID: "blog-1"}
	p := blogger.NewPublisherWith(srv.Client(), srv.URL, creds)

	_, err := p.Publish(context.Background(), "body", testPaper())
	require.Error(t, err)
	assert.ErrorContains(t, err, "HTTP 403")
}
