package handlers

import (
	"fraudscope/internal/models"
	"fraudscope/internal/services/transaction"
	"fraudscope/internal/utils/pagination"
	"fraudscope/internal/utils/response"
	"fraudscope/internal/validation"

	"github.com/gofiber/fiber/v2"
)

type TransactionHandler struct {
	transactionService transaction.Service
}

func NewTransactionHandler(transactionService transaction.Service) *TransactionHandler {
	return &TransactionHandler{
		transactionService: transactionService,
	}
}

// CreateTransaction scores and stores one transaction.
// Errors are rendered by middleware.ErrorHandler.
func (h *TransactionHandler) CreateTransaction(c *fiber.Ctx) error {
	req := models.NewCreateTransactionRequest()
	if err := c.BodyParser(&req); err != nil {
		return &transaction.ValidationError{
			Fields: []validation.FieldError{{Field: "body", Message: "invalid JSON body"}},
		}
	}

	result, err := h.transactionService.Create(c.Context(), &req)
	if err != nil {
		return err
	}

	return response.Success(c, result)
}

func (h *TransactionHandler) ListTransactions(c *fiber.Ctx) error {
	txs, err := h.transactionService.ListTransactions(c.Context(), pagination.ParseLimit(c))
	if err != nil {
		return err
	}
	return response.Success(c, pagination.Response(txs))
}
