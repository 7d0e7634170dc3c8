package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"iprights/internal/application/license/dto"
	"iprights/internal/application/license/usecases"
	"iprights/internal/interfaces/http/middleware"
	"iprights/internal/shared/logger"
	"iprights/internal/shared/utils"
)

// LicenseHandler handles HTTP requests for license grants
type LicenseHandler struct {
	createUC    *usecases.CreateLicenseUseCase
	terminateUC *usecases.TerminateLicenseUseCase
	payUC       *usecases.PayRoyaltyUseCase
	validateUC  *usecases.ValidateLicenseUseCase
	listUC      *usecases.ListLicensesUseCase
	previewUC   *usecases.PreviewTermsUseCase
	logger      logger.Interface
}

// NewLicenseHandler creates a new license handler
func NewLicenseHandler(
	createUC *usecases.CreateLicenseUseCase,
	terminateUC *usecases.TerminateLicenseUseCase,
	payUC *usecases.PayRoyaltyUseCase,
	validateUC *usecases.ValidateLicenseUseCase,
	listUC *usecases.ListLicensesUseCase,
	previewUC *usecases.PreviewTermsUseCase,
	logger logger.Interface,
) *LicenseHandler {
	return &LicenseHandler{
		createUC:    createUC,
		terminateUC: terminateUC,
		payUC:       payUC,
		validateUC:  validateUC,
		listUC:      listUC,
		previewUC:   previewUC,
		logger:      logger,
	}
}

// Create handles POST /licenses
func (h *LicenseHandler) Create(c *gin.Context) {
	var request dto.CreateLicenseRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	request.Caller = middleware.CallerFrom(c)

	result, err := h.createUC.Execute(c.Request.Context(), request)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.CreatedResponse(c, result)
}

// Terminate handles POST /licenses/:id/terminate
func (h *LicenseHandler) Terminate(c *gin.Context) {
	request := dto.TerminateLicenseRequest{
		LicenseID: c.Param("id"),
		Caller:    middleware.CallerFrom(c),
	}
	if err := h.terminateUC.Execute(c.Request.Context(), request); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "license terminated", nil)
}

// PayRoyalty handles POST /licenses/:id/royalties
func (h *LicenseHandler) PayRoyalty(c *gin.Context) {
	var request dto.PayRoyaltyRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	request.LicenseID = c.Param("id")
	request.Caller = middleware.CallerFrom(c)

	result, err := h.payUC.Execute(c.Request.Context(), request)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "royalty recorded", result)
}

// PreviewTerms handles POST /terms/preview
func (h *LicenseHandler) PreviewTerms(c *gin.Context) {
	var request dto.PreviewTermsRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	result, err := h.previewUC.Execute(c.Request.Context(), request)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// Validity handles GET /licenses/:id/validity
func (h *LicenseHandler) Validity(c *gin.Context) {
	result, err := h.validateUC.Execute(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// List handles GET /licenses?actor=<actor>&side=<licensor|licensee>
func (h *LicenseHandler) List(c *gin.Context) {
	request := dto.ListLicensesRequest{
		Actor: c.Query("actor"),
		Side:  c.Query("side"),
	}
	if request.Actor == "" {
		request.Actor = middleware.CallerFrom(c)
	}

	result, err := h.listUC.Execute(c.Request.Context(), request)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", result)
}
