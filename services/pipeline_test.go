package services_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mateusinhoo/pubmed-blogger-automation/archive"
	"github.com/Mateusinhoo/pubmed-blogger-automation/blogger"
	"github.com/Mateusinhoo/pubmed-blogger-automation/models"
	"github.com/Mateusinhoo/pubmed-blogger-automation/pubmed"
	"github.com/Mateusinhoo/pubmed-blogger-automation/services"
)

// --- stage stubs ---

type stubSearcher struct {
	id  string
	err error
}

func (s stubSearcher) TopPaperID(_ context.Context, _ int) (string, error) {
	return s.id, s.err
}

type stubFetcher struct {
	paper *models.Paper
	err   error
	calls int
}

func (f *stubFetcher) PaperDetails(_ context.Context, _ string) (*models.Paper, error) {
	f.calls++
	return f.paper, f.err
}

type stubSummarizer struct {
	text string
	err  error
}

func (s stubSummarizer) Summarize(_ context.Context, _ *models.Paper) (string, error) {
	return s.text, s.err
}

type stubPublisher struct {
	url   string
	err   error
	calls int
}

func (p *stubPublisher) Publish(_ context.Context, _ string, _ *models.Paper) (string, error) {
	p.calls++
	return p.url, p.err
}

func testPaper() *models.Paper {
	return &models.Paper{
		ID:        "12345",
		Title:     "Drug X Reduces Risk: A Trial",
		Abstract:  "Patients improved.",
		Journal:   "J Med",
		PubDate:   "2024 Jan",
		Authors:   pubmed.UnknownAuthors,
		PubMedURL: "https://pubmed.ncbi.nlm.nih.gov/12345/",
	}
}

func fixedClock() time.Time {
	return time.Date(2024, time.March, 5, 8, 0, 0, 0, time.UTC)
}

func newPipeline(t *testing.T, pub services.Publisher) (*services.Pipeline, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "latest_blog_post.md")
	p := services.NewPipeline(
		stubSearcher{id: "12345"},
		&stubFetcher{paper: testPaper()},
		stubSummarizer{text: "Patients improved across the board."},
		pub,
		archive.New(path),
	).WithClock(fixedClock)
	return p, path
}

func TestRunSuccess(t *testing.T) {
	pub := &stubPublisher{url: "https://example.blogspot.com/2024/03/post.html"}
	p, path := newPipeline(t, pub)

	result, err := p.Run(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, services.StatusSuccess, result.Status)
	assert.Equal(t, "12345", result.PaperID)
	assert.Equal(t, pub.url, result.PostURL)
	assert.Equal(t, 1, pub.calls)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "PMID: 12345")
	assert.Contains(t, string(data), "https://pubmed.ncbi.nlm.nih.gov/12345/")
	assert.Contains(t, string(data), "# Today's Medical Research: Drug X Reduces Risk\n")
}

func TestRunArchivesDespitePublishFailure(t *testing.T) {
	okPub := &stubPublisher{url: "https://example.blogspot.com/p"}
	okPipeline, okPath := newPipeline(t, okPub)
	_, err := okPipeline.Run(context.Background(), 1)
	require.NoError(t, err)
	want, err := os.ReadFile(okPath)
	require.NoError(t, err)

	failPub := &stubPublisher{err: errors.New("blogger insert returned HTTP 500")}
	failPipeline, failPath := newPipeline(t, failPub)
	result, err := failPipeline.Run(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, services.StatusCompletedWithErrors, result.Status)
	got, err := os.ReadFile(failPath)
	require.NoError(t, err)
	assert.Equal(t, string(want), string(got))
}

func TestRunMissingCredentialsIsSoftFailure(t *testing.T) {
	pub := &stubPublisher{err: blogger.ErrMissingCredentials}
	p, path := newPipeline(t, pub)

	result, err := p.Run(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, services.StatusCompletedWithErrors, result.Status)
	_, statErr := os.Stat(path)
	assert.NoError(t, statErr, "post must still be archived")
}

func TestRunNoResultsEndsBeforeFetch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "latest_blog_post.md")
	fetch := &stubFetcher{paper: testPaper()}
	pub := &stubPublisher{}
	p := services.NewPipeline(
		stubSearcher{err: pubmed.ErrNoResults},
		fetch,
		stubSummarizer{text: "unused"},
		pub,
		archive.New(path),
	)

	result, err := p.Run(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, services.StatusNoPapers, result.Status)
	assert.Equal(t, 0, fetch.calls)
	assert.Equal(t, 0, pub.calls)
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "no file may be written")
}

func TestRunSearchTransportFaultIsFatal(t *testing.T) {
	p := services.NewPipeline(
		stubSearcher{err: errors.New("pubmed esearch returned HTTP 502")},
		&stubFetcher{},
		stubSummarizer{},
		&stubPublisher{},
		archive.New(filepath.Join(t.TempDir(), "out.md")),
	)

	_, err := p.Run(context.Background(), 1)
	assert.Error(t, err)
}

func TestRunPaperNotFoundEndsRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "latest_blog_post.md")
	pub := &stubPublisher{}
	p := services.NewPipeline(
		stubSearcher{id: "99999"},
		&stubFetcher{err: pubmed.ErrPaperNotFound},
		stubSummarizer{text: "unused"},
		pub,
		archive.New(path),
	)

	result, err := p.Run(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, services.StatusFetchFailed, result.Status)
	assert.Equal(t, "99999", result.PaperID)
	assert.Equal(t, 0, pub.calls)
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestRunSummaryFailureEndsRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "latest_blog_post.md")
	pub := &stubPublisher{}
	p := services.NewPipeline(
		stubSearcher{id: "12345"},
		&stubFetcher{paper: testPaper()},
		stubSummarizer{err: errors.New("summarizer: generate content: quota exceeded")},
		pub,
		archive.New(path),
	)

	result, err := p.Run(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, services.StatusSummaryFailed, result.Status)
	assert.Equal(t, 0, pub.calls)
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}
