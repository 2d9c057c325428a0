package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Mateusinhoo/pubmed-blogger-automation/blogger"
	"github.com/Mateusinhoo/pubmed-blogger-automation/internal/logger"
	"github.com/Mateusinhoo/pubmed-blogger-automation/models"
	"github.com/Mateusinhoo/pubmed-blogger-automation/pubmed"
	"github.com/Mateusinhoo/pubmed-blogger-automation/renderer"
)

// Stage interfaces. pubmed.Client implements Searcher and Fetcher; the
// interfaces exist so tests can mock each stage independently.
type Searcher interface {
	TopPaperID(ctx context.Context, daysBack int) (string, error)
}

type Fetcher interface {
	PaperDetails(ctx context.Context, id string) (*models.Paper, error)
}

type Summarizer interface {
	Summarize(ctx context.Context, paper *models.Paper) (string, error)
}

type Publisher interface {
	Publish(ctx context.Context, post string, paper *models.Paper) (string, error)
}

type Archiver interface {
	Save(post string) error
}

// Status classifies the outcome of a run.
type Status string

const (
	// StatusSuccess: every stage completed, post published and archived.
	StatusSuccess Status = "success"
	// StatusNoPapers: the search window yielded nothing; run ends early.
	StatusNoPapers Status = "no_papers"
	// StatusFetchFailed: the paper record could not be retrieved.
	StatusFetchFailed Status = "fetch_failed"
	// StatusSummaryFailed: summary generation failed; no post produced.
	StatusSummaryFailed Status = "summary_failed"
	// StatusCompletedWithErrors: publishing failed or was skipped for
	// missing credentials, but the post was archived locally.
	StatusCompletedWithErrors Status = "completed_with_errors"
)

// Result describes a finished run.
type Result struct {
	Status  Status
	PaperID string
	PostURL string
}

// Pipeline wires the six stages together and runs them strictly in order:
// search, fetch, summarize, render, publish, archive. The archive write
// happens whenever a post was rendered, independent of the publish outcome.
type Pipeline struct {
	search     Searcher
	fetch      Fetcher
	summarizer Summarizer
	publisher  Publisher
	archiver   Archiver

	// now is injectable so tests get a deterministic date stamp.
	now func() time.Time
}

func NewPipeline(search Searcher, fetch Fetcher, s Summarizer, p Publisher, a Archiver) *Pipeline {
	return &Pipeline{
		search:     search,
		fetch:      fetch,
		summarizer: s,
		publisher:  p,
		archiver:   a,
		now:        time.Now,
	}
}

// WithClock overrides the pipeline clock.
func (p *Pipeline) WithClock(now func() time.Time) *Pipeline {
	p.now = now
	return p
}

// Run executes one end-to-end pass. Soft outcomes (no papers, fetch miss,
// generation failure, publish failure) come back as a Result with a nil
// error; transport faults in search/fetch and archive write faults are
// returned as errors and abort the run.
func (p *Pipeline) Run(ctx context.Context, daysBack int) (Result, error) {
	runID := uuid.NewString()
	log := logger.Fields{"run_id": runID}

	id, err := p.search.TopPaperID(ctx, daysBack)
	if errors.Is(err, pubmed.ErrNoResults) {
		logger.InfoWithFields("no recent papers found", log)
		return Result{Status: StatusNoPapers}, nil
	}
	if err != nil {
		return Result{}, err
	}
	log["paper_id"] = id

	paper, err := p.fetch.PaperDetails(ctx, id)
	if errors.Is(err, pubmed.ErrPaperNotFound) {
		logger.ErrorWithFields("could not retrieve paper details", log)
		return Result{Status: StatusFetchFailed, PaperID: id}, nil
	}
	if err != nil {
		return Result{PaperID: id}, err
	}

	summary, err := p.summarizer.Summarize(ctx, paper)
	if err != nil {
		// Every generation fault is a single collapsed outcome; the cause
		// is only logged.
		log["error"] = err.Error()
		logger.ErrorWithFields("failed to generate summary", log)
		return Result{Status: StatusSummaryFailed, PaperID: id}, nil
	}

	post := renderer.RenderPost(paper, summary, p.now())

	published := true
	postURL := ""
	if postURL, err = p.publisher.Publish(ctx, post, paper); err != nil {
		published = false
		if errors.Is(err, blogger.ErrMissingCredentials) {
			logger.WarnWithFields("missing Blogger API credentials, skipping publish", log)
		} else {
			log["error"] = err.Error()
			logger.ErrorWithFields("error posting to Blogger", log)
		}
	}

	// Local copy is kept regardless of the publish outcome.
	if err := p.archiver.Save(post); err != nil {
		return Result{PaperID: id}, fmt.Errorf("saving local archive: %w", err)
	}

	if !published {
		return Result{Status: StatusCompletedWithErrors, PaperID: id}, nil
	}
	logger.InfoWithFields("run completed", logger.Fields{"run_id": runID, "paper_id": id, "post_url": postURL})
	return Result{Status: StatusSuccess, PaperID: id, PostURL: postURL}, nil
}
