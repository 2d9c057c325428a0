package models

// Paper is the metadata record extracted from a PubMed efetch document.
// Every field is always a populated string: extraction substitutes sentinel
// values where the source is missing data, except PubDate which may be
// empty. Downstream code relies on that.
type Paper struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Abstract  string `json:"abstract"`
	Journal   string `json:"journal"`
	PubDate   string `json:"pub_date"`
	Authors   string `json:"authors"`
	PubMedURL string `json:"pubmed_url"`
}
