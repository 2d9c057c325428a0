package pubmed

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/Mateusinhoo/pubmed-blogger-automation/internal/logger"
)

// highImpactFilter restricts the search to high-evidentiary study types.
const highImpactFilter = `("Clinical Trial"[Publication Type] OR ` +
	`"Meta-Analysis"[Publication Type] OR ` +
	`"Systematic Review"[Publication Type] OR ` +
	`"Randomized Controlled Trial"[Publication Type] OR ` +
	`"Cohort Studies"[MeSH Terms])`

type esearchResponse struct {
	ESearchResult struct {
		IDList []string `json:"idlist"`
	} `json:"esearchresult"`
}

// TopPaperID searches PubMed for recent high-impact papers published in the
// last daysBack days and returns the most relevant identifier. Returns
// ErrNoResults when the identifier list is empty. A body that is not valid
// JSON is a hard error, not a no-results outcome.
func (c *Client) TopPaperID(ctx context.Context, daysBack int) (string, error) {
	if daysBack <= 0 {
		daysBack = 1
	}
	today := time.Now()
	startDate := today.AddDate(0, 0, -daysBack).Format("2006/01/02")
	endDate := today.Format("2006/01/02")

	term := fmt.Sprintf(`%s AND ("%s"[Date - Publication] : "%s"[Date - Publication])`,
		highImpactFilter, startDate, endDate)

	query := url.Values{
		"db":      {"pubmed"},
		"term":    {term},
		"retmax":  {fmt.Sprintf("%d", c.maxResults)},
		"sort":    {"relevance"},
		"retmode": {"json"},
	}

	req, err := c.base.NewRequest(ctx, http.MethodGet, "/esearch.fcgi", query, nil)
	if err != nil {
		return "", err
	}
	resp, err := c.base.Do(req)
	if err != nil {
		return "", fmt.Errorf("pubmed esearch request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("pubmed esearch returned HTTP %d", resp.StatusCode)
	}

	var result esearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("parsing esearch response: %w", err)
	}

	ids := result.ESearchResult.IDList
	if len(ids) == 0 {
		return "", ErrNoResults
	}

	logger.DebugWithFields("pubmed search completed", logger.Fields{
		"result_count": len(ids),
		"top_id":       ids[0],
	})
	return ids[0], nil
}
