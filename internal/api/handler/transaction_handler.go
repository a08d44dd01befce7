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

// TransactionHandler handles HTTP requests for transaction operations
type TransactionHandler struct {
	transactionService service.TransactionService
	logger             *slog.Logger
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(logger *slog.Logger, transactionService service.TransactionService) *TransactionHandler {
	return &TransactionHandler{
		transactionService: transactionService,
		logger:             logger,
	}
}

// Create records a new income or expense transaction
func (h *TransactionHandler) Create(c *gin.Context) {
	var req TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	input, err := mapRequestToInput(&req)
	if err != nil {
		RespondBadRequest(c, err.Error())
		return
	}

	tr, err := h.transactionService.CreateTransaction(c.Request.Context(), *input)
	if err != nil {
		if errors.Is(err, transaction.ErrInvalidTransactionType) || errors.Is(err, transaction.ErrNegativeAmount) {
			RespondBadRequest(c, err.Error())
			return
		}
		h.logger.Error("Failed to create transaction", "error", err)
		RespondInternalError(c)
		return
	}

	RespondCreated(c, mapTransactionToResponse(tr))
}

// GetByID retrieves a transaction by its ID, returning 404 if not found
func (h *TransactionHandler) GetByID(c *gin.Context) {
	idParam := c.Param("id")
	id, err := uuid.Parse(idParam)
	if err != nil {
		h.logger.Error("Invalid transaction ID", "id", idParam, "error", err)
		RespondBadRequest(c, "Invalid transaction ID")
		return
	}

	tr, err := h.transactionService.GetTransactionByID(c.Request.Context(), id)
	if err != nil {
		var notFound transaction.ErrTransactionNotFound
		if errors.As(err, &notFound) {
			RespondNotFound(c, "Transaction not found")
			return
		}
		h.logger.Error("Failed to get transaction", "id", idParam, "error", err)
		RespondInternalError(c)
		return
	}

	RespondOK(c, mapTransactionToResponse(tr))
}

// Update overwrites a transaction, returning 409 for transfer rows
func (h *TransactionHandler) Update(c *gin.Context) {
	idParam := c.Param("id")
	id, err := uuid.Parse(idParam)
	if err != nil {
		h.logger.Error("Invalid transaction ID", "id", idParam, "error", err)
		RespondBadRequest(c, "Invalid transaction ID")
		return
	}

	var req TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	input, err := mapRequestToInput(&req)
	if err != nil {
		RespondBadRequest(c, err.Error())
		return
	}

	tr, err := h.transactionService.UpdateTransaction(c.Request.Context(), id, *input)
	if err != nil {
		h.respondTransactionError(c, err, idParam)
		return
	}

	RespondOK(c, mapTransactionToResponse(tr))
}

// Delete removes a transaction, returning 409 for transfer rows
func (h *TransactionHandler) Delete(c *gin.Context) {
	idParam := c.Param("id")
	id, err := uuid.Parse(idParam)
	if err != nil {
		h.logger.Error("Invalid transaction ID", "id", idParam, "error", err)
		RespondBadRequest(c, "Invalid transaction ID")
		return
	}

	if err := h.transactionService.DeleteTransaction(c.Request.Context(), id); err != nil {
		h.respondTransactionError(c, err, idParam)
		return
	}

	RespondNoContent(c)
}

// List retrieves transactions filtered by an optional date range
func (h *TransactionHandler) List(c *gin.Context) {
	var params ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		RespondBadRequest(c, "Invalid query parameters: "+err.Error())
		return
	}

	start, err := parseOptionalDate(params.StartDate)
	if err != nil {
		RespondBadRequest(c, "Invalid start_date")
		return
	}
	end, err := parseOptionalDate(params.EndDate)
	if err != nil {
		RespondBadRequest(c, "Invalid end_date")
		return
	}

	transactions, err := h.transactionService.ListTransactions(c.Request.Context(), transaction.ListFilter{
		Start:  start,
		End:    end,
		Offset: params.Offset,
		Limit:  params.Limit,
	})
	if err != nil {
		h.logger.Error("Failed to list transactions", "error", err)
		RespondInternalError(c)
		return
	}

	responses := make([]TransactionResponse, 0, len(transactions))
	for _, tr := range transactions {
		responses = append(responses, mapTransactionToResponse(tr))
	}
	RespondOK(c, responses)
}

func (h *TransactionHandler) respondTransactionError(c *gin.Context, err error, idParam string) {
	var notFound transaction.ErrTransactionNotFound
	if errors.As(err, &notFound) {
		RespondNotFound(c, "Transaction not found")
		return
	}
	var immutable transaction.ErrTransferImmutable
	if errors.As(err, &immutable) {
		RespondConflict(c, "Transfer transactions cannot be updated or deleted")
		return
	}
	if errors.Is(err, transaction.ErrInvalidTransactionType) || errors.Is(err, transaction.ErrNegativeAmount) {
		RespondBadRequest(c, err.Error())
		return
	}
	h.logger.Error("Transaction operation failed", "id", idParam, "error", err)
	RespondInternalError(c)
}

// mapRequestToInput converts a transaction request DTO to a service input
func mapRequestToInput(req *TransactionRequest) (*service.TransactionInput, error) {
	accountID, err := uuid.Parse(req.AccountID)
	if err != nil {
		return nil, errors.New("invalid account_id")
	}

	var categoryID *uuid.UUID
	if req.CategoryID != nil {
		id, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			return nil, errors.New("invalid category_id")
		}
		categoryID = &id
	}

	date, err := parseDate(req.Date)
	if err != nil {
		return nil, errors.New("invalid date")
	}

	return &service.TransactionInput{
		AccountID:  accountID,
		CategoryID: categoryID,
		Amount:     req.Amount,
		Type:       transaction.Type(req.Type),
		Date:       date,
		Note:       req.Note,
	}, nil
}

// mapTransactionToResponse maps a transaction entity to a response DTO
func mapTransactionToResponse(tr *transaction.Transaction) TransactionResponse {
	var categoryID *string
	if tr.CategoryID != nil {
		s := tr.CategoryID.String()
		categoryID = &s
	}

	return TransactionResponse{
		ID:         tr.ID.String(),
		AccountID:  tr.AccountID.String(),
		CategoryID: categoryID,
		Amount:     tr.Amount,
		Type:       string(tr.Type),
		Date:       tr.Date.Format(time.RFC3339),
		Note:       tr.Note,
		CreatedAt:  tr.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  tr.UpdatedAt.Format(time.RFC3339),
	}
}
