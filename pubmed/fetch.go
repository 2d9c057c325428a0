package pubmed

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/Mateusinhoo/pubmed-blogger-automation/models"
)

// Sentinel values substituted when a field is structurally absent from the
// efetch document. PubDate has no sentinel and may resolve to "".
const (
	NoTitle        = "No title available"
	NoAbstract     = "No abstract available"
	UnknownJournal = "Unknown Journal"
	UnknownAuthors = "Unknown Authors"
)

// efetch XML structures. Only the fields the pipeline consumes are mapped.
type efetchDocument struct {
	XMLName  xml.Name        `xml:"PubmedArticleSet"`
	Articles []efetchArticle `xml:"PubmedArticle>MedlineCitation>Article"`
}

type efetchArticle struct {
	Title         string         `xml:"ArticleTitle"`
	AbstractTexts []string       `xml:"Abstract>AbstractText"`
	JournalTitle  string         `xml:"Journal>Title"`
	PubDate       efetchPubDate  `xml:"Journal>JournalIssue>PubDate"`
	Authors       []efetchAuthor `xml:"AuthorList>Author"`
}

// efetchPubDate captures every child element of PubDate in document order.
// Depending on the record this is Year/Month/Day or a single MedlineDate.
type efetchPubDate struct {
	Parts []efetchPubDatePart `xml:",any"`
}

type efetchPubDatePart struct {
	Text string `xml:",chardata"`
}

type efetchAuthor struct {
	LastName string `xml:"LastName"`
	ForeName string `xml:"ForeName"`
}

// PaperDetails fetches the full record for an identifier and extracts the
// fields the pipeline needs. Returns ErrPaperNotFound when the response is
// not a success or the Article container is missing.
func (c *Client) PaperDetails(ctx context.Context, id string) (*models.Paper, error) {
	query := url.Values{
		"db":      {"pubmed"},
		"id":      {id},
		"retmode": {"xml"},
	}

	req, err := c.base.NewRequest(ctx, http.MethodGet, "/efetch.fcgi", query, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.base.Do(req)
	if err != nil {
		return nil, fmt.Errorf("pubmed efetch request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, ErrPaperNotFound
	}

	var doc efetchDocument
	if err := xml.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("parsing efetch response: %w", err)
	}

	if len(doc.Articles) == 0 {
		return nil, ErrPaperNotFound
	}
	article := doc.Articles[0]

	return &models.Paper{
		ID:        id,
		Title:     textOrDefault(article.Title, NoTitle),
		Abstract:  joinOrDefault(article.AbstractTexts, NoAbstract),
		Journal:   textOrDefault(article.JournalTitle, UnknownJournal),
		PubDate:   joinPubDate(article.PubDate),
		Authors:   joinAuthors(article.Authors, UnknownAuthors),
		PubMedURL: PaperURL(id),
	}, nil
}

// textOrDefault substitutes the sentinel when the extracted text is empty.
func textOrDefault(s, fallback string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return fallback
	}
	return s
}

// joinOrDefault space-joins the non-empty segments, falling back to the
// sentinel when nothing remains.
func joinOrDefault(parts []string, fallback string) string {
	var kept []string
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			kept = append(kept, p)
		}
	}
	if len(kept) == 0 {
		return fallback
	}
	return strings.Join(kept, " ")
}

// joinPubDate space-joins the PubDate children in document order. Unlike
// the other fields this may yield an empty string; there is no sentinel.
func joinPubDate(d efetchPubDate) string {
	var kept []string
	for _, p := range d.Parts {
		t := strings.TrimSpace(p.Text)
		if t != "" {
			kept = append(kept, t)
		}
	}
	return strings.Join(kept, " ")
}

// joinAuthors renders "ForeName LastName" per author, falling back to the
// surname alone when the given name is missing. Authors without a surname
// are skipped. Order follows the document.
func joinAuthors(authors []efetchAuthor, fallback string) string {
	var names []string
	for _, a := range authors {
		last := strings.TrimSpace(a.LastName)
		fore := strings.TrimSpace(a.ForeName)
		switch {
		case last != "" && fore != "":
			names = append(names, fore+" "+last)
		case last != "":
			names = append(names, last)
		}
	}
	if len(names) == 0 {
		return fallback
	}
	return strings.Join(names, ", ")
}
