package summarizer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/Mateusinhoo/pubmed-blogger-automation/internal/logger"
	"github.com/Mateusinhoo/pubmed-blogger-automation/models"
)

const systemInstruction = "You are a skilled medical writer who explains complex research in simple terms."

const maxOutputTokens = 1000
const temperature = float32(0.7)

// Error is the single failure outcome for summary generation. Transport
// faults, quota errors and malformed responses all collapse into this one
// variant; the cause is carried for logging only and is never distinguished
// programmatically.
type Error struct {
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("summarizer: %s: %v", e.Message, e.Cause)
	}
	return "summarizer: " + e.Message
}

func (e *Error) Unwrap() error { return e.Cause }

func newError(msg string, cause error) *Error {
	return &Error{Message: msg, Cause: cause}
}

// Summarizer generates lay summaries of papers with the Gemini API. The API
// key and model name are injected at construction; nothing is read from the
// environment here.
type Summarizer struct {
	apiKey string
	model  string
}

func New(apiKey, model string) *Summarizer {
	return &Summarizer{apiKey: apiKey, model: model}
}

// BuildPrompt renders the fixed instructional prompt for a paper.
func BuildPrompt(paper *models.Paper) string {
	return fmt.Sprintf(`Please create a clear, engaging summary of this medical research paper for a general audience.
Avoid technical jargon and use simple language. Format the summary in paragraphs, not bullet points.

Title: %s
Authors: %s
Journal: %s
Publication Date: %s

Abstract:
%s

Your summary should:
1. Explain why this research matters in everyday terms
2. Describe what the researchers did
3. Explain the key findings and what they mean
4. Discuss potential implications for healthcare or patients
`, paper.Title, paper.Authors, paper.Journal, paper.PubDate, paper.Abstract)
}

// Summarize produces the general-audience summary for the paper. Any fault
// is returned as a *Error.
func (s *Summarizer) Summarize(ctx context.Context, paper *models.Paper) (string, error) {
	startTime := time.Now()

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: s.apiKey,
	})
	if err != nil {
		return "", newError("creating gemini client", err)
	}

	result, err := client.Models.GenerateContent(
		ctx,
		s.model,
		genai.Text(BuildPrompt(paper)),
		&genai.GenerateContentConfig{
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: systemInstruction}}},
			MaxOutputTokens:   maxOutputTokens,
			Temperature:       genai.Ptr(temperature),
		},
	)
	if err != nil {
		return "", newError("generate content", err)
	}

	text := strings.TrimSpace(result.Text())
	if text == "" {
		return "", newError("model returned an empty response", nil)
	}

	fields := logger.Fields{
		"paper_id":   paper.ID,
		"model_name": s.model,
		"latency_ms": time.Since(startTime).Milliseconds(),
	}
	if result.UsageMetadata != nil {
		fields["input_tokens"] = result.UsageMetadata.PromptTokenCount
		fields["output_tokens"] = result.UsageMetadata.CandidatesTokenCount
		fields["total_tokens"] = result.UsageMetadata.TotalTokenCount
	}
	if result.ModelVersion != "" {
		fields["model_version"] = result.ModelVersion
	}
	logger.InfoWithFields("summary generated", fields)

	return text, nil
}
