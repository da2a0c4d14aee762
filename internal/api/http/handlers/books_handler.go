package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/library-service/internal/api/dto"
	"github.com/spec-kit/library-service/internal/domain"
	"github.com/spec-kit/library-service/internal/service"
	apperrors "github.com/spec-kit/library-service/pkg/util/errorutil"
)

// BooksHandler manages catalog endpoints.
type BooksHandler struct {
	catalog *service.CatalogService
}

// NewBooksHandler constructs handler.
func NewBooksHandler(catalog *service.CatalogService) *BooksHandler {
	return &BooksHandler{catalog: catalog}
}

// List GET /api/books.
func (h *BooksHandler) List(c *fiber.Ctx) error {
	books, err := h.catalog.ListBooks(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.BookSummary, 0, len(books))
	for i := range books {
		items = append(items, bookSummary(&books[i]))
	}
	return c.JSON(items)
}

// Details GET /api/books/:bookId/details.
func (h *BooksHandler) Details(c *fiber.Ctx) error {
	details, err := h.catalog.GetBookDetails(c.UserContext(), c.Params("bookId"))
	if err != nil {
		return err
	}
	txns := make([]dto.TransactionResponse, 0, len(details.ActiveTransactions))
	for i := range details.ActiveTransactions {
		txns = append(txns, transactionResponse(&details.ActiveTransactions[i]))
	}
	return c.JSON(dto.BookDetailsResponse{
		Book:         bookSummary(details.Book),
		Transactions: txns,
	})
}

// Add POST /api/books/add.
func (h *BooksHandler) Add(c *fiber.Ctx) error {
	var req dto.BookRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	book, err := h.catalog.AddBook(c.UserContext(), bookInput(req))
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message": "Book added successfully!",
		"book":    bookResponse(book),
	})
}

// Update PUT /api/books/:bookId.
func (h *BooksHandler) Update(c *fiber.Ctx) error {
	var req dto.BookRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	book, err := h.catalog.UpdateBook(c.UserContext(), c.Params("bookId"), bookInput(req))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message": "Book updated successfully",
		"book":    bookResponse(book),
	})
}

// Delete DELETE /api/books/:bookId.
func (h *BooksHandler) Delete(c *fiber.Ctx) error {
	if err := h.catalog.DeleteBook(c.UserContext(), c.Params("bookId")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Book deleted successfully"})
}

// Categories GET /api/categories.
func (h *BooksHandler) Categories(c *fiber.Ctx) error {
	categories, err := h.catalog.ListCategories(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.CategoryResponse, 0, len(categories))
	for _, category := range categories {
		items = append(items, dto.CategoryResponse{ID: category.ID, Name: category.Name})
	}
	return c.JSON(items)
}

func bookInput(req dto.BookRequest) service.BookInput {
	input := service.BookInput{
		BookID:     req.BookID,
		BookName:   req.BookName,
		AltTitle:   req.AltTitle,
		AuthorName: req.AuthorName,
		Language:   req.Language,
		Publisher:  req.Publisher,
		Categories: req.Categories,
	}
	if req.Copies != nil {
		input.Copies = *req.Copies
		input.CopiesSet = true
	}
	if len(input.Categories) == 0 && req.Category != "" {
		input.Categories = []string{req.Category}
	}
	return input
}

func bookSummary(book *domain.Book) dto.BookSummary {
	return dto.BookSummary{
		ID:         book.ID,
		BookID:     book.BookID,
		BookName:   book.BookName,
		AuthorName: book.AuthorName,
		Copies:     book.Copies,
	}
}

func bookResponse(book *domain.Book) dto.BookResponse {
	return dto.BookResponse{
		ID:         book.ID,
		BookID:     book.BookID,
		BookName:   book.BookName,
		AltTitle:   book.AltTitle,
		AuthorName: book.AuthorName,
		Language:   book.Language,
		Publisher:  book.Publisher,
		Copies:     book.Copies,
		Categories: book.Categories,
	}
}
