package model

// Article is a bibliographic record fetched from a literature database.
// Read-only once fetched. PublicationDate is free-form because source
// metadata is not uniformly structured.
type Article struct {
	ID              string   `json:"pmid"`
	Title           string   `json:"title"`
	Journal         string   `json:"journal"`
	PublicationDate string   `json:"publication_date"`
	Abstract        string   `json:"abstract,omitempty"`
	Authors         []string `json:"authors"`
}
