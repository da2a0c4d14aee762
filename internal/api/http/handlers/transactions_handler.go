package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/library-service/internal/api/dto"
	"github.com/spec-kit/library-service/internal/domain"
	"github.com/spec-kit/library-service/internal/service"
	apperrors "github.com/spec-kit/library-service/pkg/util/errorutil"
)

// TransactionsHandler manages the borrow/reserve ledger endpoints.
type TransactionsHandler struct {
	lending *service.LendingService
}

// NewTransactionsHandler constructs handler.
func NewTransactionsHandler(lending *service.LendingService) *TransactionsHandler {
	return &TransactionsHandler{lending: lending}
}

// List GET /api/transactions.
func (h *TransactionsHandler) List(c *fiber.Ctx) error {
	txns, err := h.lending.ListTransactions(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.TransactionResponse, 0, len(txns))
	for i := range txns {
		items = append(items, transactionResponse(&txns[i]))
	}
	return c.JSON(items)
}

// Add POST /api/transactions/add.
func (h *TransactionsHandler) Add(c *fiber.Ctx) error {
	var req dto.CreateTransactionRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	txn, err := h.lending.CreateLoan(c.UserContext(), service.LoanInput{
		BookID:          req.BookID,
		BorrowerName:    req.BorrowerName,
		MemberID:        req.MemberID,
		TransactionType: domain.TransactionType(req.TransactionType),
		FromDate:        req.FromDate,
		ToDate:          req.ToDate,
	})
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message":     "Transaction added successfully",
		"transaction": transactionResponse(txn),
	})
}

// Update PUT /api/transactions/:id.
func (h *TransactionsHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateTransactionRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	patch := service.TransactionPatch{
		BookID:       req.BookID,
		BookName:     req.BookName,
		BorrowerName: req.BorrowerName,
		FromDate:     req.FromDate,
		ToDate:       req.ToDate,
		ReturnDate:   req.ReturnDate,
	}
	if req.TransactionType != nil {
		t := domain.TransactionType(*req.TransactionType)
		patch.TransactionType = &t
	}
	if req.TransactionStatus != nil {
		s := domain.TransactionStatus(*req.TransactionStatus)
		patch.TransactionStatus = &s
	}

	txn, err := h.lending.UpdateTransaction(c.UserContext(), c.Params("id"), patch)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message":     "Transaction updated successfully",
		"transaction": transactionResponse(txn),
	})
}

func transactionResponse(txn *domain.Transaction) dto.TransactionResponse {
	return dto.TransactionResponse{
		ID:                txn.ID,
		BookID:            txn.BookID,
		BookName:          txn.BookName,
		MemberID:          txn.MemberID,
		BorrowerName:      txn.BorrowerName,
		TransactionType:   txn.TransactionType,
		TransactionStatus: txn.TransactionStatus,
		FromDate:          txn.FromDate,
		ToDate:            txn.ToDate,
		ReturnDate:        txn.ReturnDate,
		CreatedAt:         txn.CreatedAt,
		UpdatedAt:         txn.UpdatedAt,
	}
}
