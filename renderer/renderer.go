package renderer

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/Mateusinhoo/pubmed-blogger-automation/models"
)

const shortTitleMax = 70

// ShortTitle derives the headline from a full article title: the segment
// before the first colon, trimmed, hard-truncated to 67 characters plus
// "..." when still over 70. Lengths are counted in runes; PubMed titles
// carry multibyte characters like Greek letters.
func ShortTitle(title string) string {
	short := strings.TrimSpace(strings.SplitN(title, ":", 2)[0])
	if utf8.RuneCountInString(short) > shortTitleMax {
		short = string([]rune(short)[:67]) + "..."
	}
	return short
}

// RenderPost assembles the blog post document from the paper and its
// summary. Pure function; now supplies the date stamp.
func RenderPost(paper *models.Paper, summary string, now time.Time) string {
	today := now.Format("January 2, 2006")

	return fmt.Sprintf(`# Today's Medical Research: %s

**Date:** %s

## %s

%s

**Source:** [%s (PMID: %s)](%s)
`, ShortTitle(paper.Title), today, paper.Title, summary, paper.Title, paper.ID, paper.PubMedURL)
}
