package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"iprights/internal/application/transfer/dto"
	"iprights/internal/application/transfer/usecases"
	"iprights/internal/interfaces/http/middleware"
	"iprights/internal/shared/logger"
	"iprights/internal/shared/utils"
)

// TransferHandler handles HTTP requests for ownership transfers
type TransferHandler struct {
	requestUC     *usecases.RequestTransferUseCase
	acceptUC      *usecases.AcceptTransferUseCase
	cancelUC      *usecases.CancelTransferUseCase
	listPendingUC *usecases.ListPendingTransfersUseCase
	logger        logger.Interface
}

// NewTransferHandler creates a new transfer handler
func NewTransferHandler(
	requestUC *usecases.RequestTransferUseCase,
	acceptUC *usecases.AcceptTransferUseCase,
	cancelUC *usecases.CancelTransferUseCase,
	listPendingUC *usecases.ListPendingTransfersUseCase,
	logger logger.Interface,
) *TransferHandler {
	return &TransferHandler{
		requestUC:     requestUC,
		acceptUC:      acceptUC,
		cancelUC:      cancelUC,
		listPendingUC: listPendingUC,
		logger:        logger,
	}
}

// Request handles POST /transfers
func (h *TransferHandler) Request(c *gin.Context) {
	var request dto.RequestTransferRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	request.Caller = middleware.CallerFrom(c)

	result, err := h.requestUC.Execute(c.Request.Context(), request)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.CreatedResponse(c, result)
}

// Accept handles POST /transfers/:id/accept
func (h *TransferHandler) Accept(c *gin.Context) {
	request := dto.FinalizeTransferRequest{
		TransferID: c.Param("id"),
		Caller:     middleware.CallerFrom(c),
	}
	result, err := h.acceptUC.Execute(c.Request.Context(), request)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "transfer accepted", result)
}

// Cancel handles POST /transfers/:id/cancel
func (h *TransferHandler) Cancel(c *gin.Context) {
	request := dto.FinalizeTransferRequest{
		TransferID: c.Param("id"),
		Caller:     middleware.CallerFrom(c),
	}
	result, err := h.cancelUC.Execute(c.Request.Context(), request)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "transfer canceled", result)
}

// ListPending handles GET /transfers/pending
func (h *TransferHandler) ListPending(c *gin.Context) {
	who := c.Query("actor")
	if who == "" {
		who = middleware.CallerFrom(c)
	}

	result, err := h.listPendingUC.Execute(c.Request.Context(), who)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", result)
}
