package domain

// Book is a catalog entry. BookID is the externally assigned identity
// (shelf code, accession number); ID is the internal row identity.
// Copies is the total number of physical copies owned; availability is
// derived by counting active issued transactions against the book.
type Book struct {
	ID         string
	BookID     string
	BookName   string
	AltTitle   *string
	AuthorName string
	Language   *string
	Publisher  *string
	Copies     int
	Categories []string
}
