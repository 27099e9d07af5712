package handlers

import (
	"fraudscope/internal/services/transaction"
	"fraudscope/internal/utils/pagination"
	"fraudscope/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type AlertHandler struct {
	transactionService transaction.Service
}

func NewAlertHandler(transactionService transaction.Service) *AlertHandler {
	return &AlertHandler{
		transactionService: transactionService,
	}
}

func (h *AlertHandler) ListAlerts(c *fiber.Ctx) error {
	alerts, err := h.transactionService.ListAlerts(c.Context(), pagination.ParseLimit(c))
	if err != nil {
		return err
	}
	return response.Success(c, pagination.Response(alerts))
}
