package handler

import (
	"errors"
	"log/slog"
	"time"

	"github.com/fintrack-ledger/internal/api/service"
	"github.com/fintrack-ledger/internal/domain/transaction"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TransferHandler handles HTTP requests for transfers between accounts
type TransferHandler struct {
	transferService service.TransferService
	logger          *slog.Logger
}

// NewTransferHandler creates a new transfer handler
func NewTransferHandler(logger *slog.Logger, transferService service.TransferService) *TransferHandler {
	return &TransferHandler{
		transferService: transferService,
		logger:          logger,
	}
}

// Create executes a transfer and returns the recorded transfer transaction.
// An omitted date defaults to now.
func (h *TransferHandler) Create(c *gin.Context) {
	var req TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	sourceID, err := uuid.Parse(req.SourceAccountID)
	if err != nil {
		RespondBadRequest(c, "Invalid source_account_id")
		return
	}
	targetID, err := uuid.Parse(req.TargetAccountID)
	if err != nil {
		RespondBadRequest(c, "Invalid target_account_id")
		return
	}

	date := time.Now()
	if req.Date != "" {
		parsed, err := parseDate(req.Date)
		if err != nil {
			RespondBadRequest(c, "Invalid date")
			return
		}
		date = parsed
	}

	leg, err := h.transferService.Transfer(c.Request.Context(), service.TransferInput{
		SourceAccountID: sourceID,
		TargetAccountID: targetID,
		Amount:          req.Amount,
		Date:            date,
	})
	if err != nil {
		if errors.Is(err, transaction.ErrNegativeAmount) {
			RespondBadRequest(c, err.Error())
			return
		}
		h.logger.Error("Failed to execute transfer", "error", err)
		RespondInternalError(c)
		return
	}

	RespondCreated(c, mapTransactionToResponse(leg))
}
