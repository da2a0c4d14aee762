package dto

// BookRequest payload for catalog add/update.
type BookRequest struct {
	BookID     string   `json:"bookId"`
	BookName   string   `json:"bookName"`
	AltTitle   *string  `json:"altTitle"`
	AuthorName string   `json:"authorName"`
	Language   *string  `json:"language"`
	Publisher  *string  `json:"publisher"`
	Copies     *int     `json:"copies"`
	Category   string   `json:"category"`
	Categories []string `json:"categories"`
}

// BookSummary is the catalog listing projection.
type BookSummary struct {
	ID         string `json:"_id"`
	BookID     string `json:"bookId"`
	BookName   string `json:"bookName"`
	AuthorName string `json:"authorName"`
	Copies     int    `json:"copies"`
}

// BookResponse is the full catalog entry.
type BookResponse struct {
	ID         string   `json:"_id"`
	BookID     string   `json:"bookId"`
	BookName   string   `json:"bookName"`
	AltTitle   *string  `json:"altTitle,omitempty"`
	AuthorName string   `json:"authorName"`
	Language   *string  `json:"language,omitempty"`
	Publisher  *string  `json:"publisher,omitempty"`
	Copies     int      `json:"copies"`
	Categories []string `json:"categories"`
}

// BookDetailsResponse pairs a book with its active borrowers.
type BookDetailsResponse struct {
	Book         BookSummary           `json:"book"`
	Transactions []TransactionResponse `json:"transactions"`
}

// CategoryResponse is a category label.
type CategoryResponse struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}
