package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"iprights/internal/application/asset/dto"
	"iprights/internal/application/asset/usecases"
	"iprights/internal/interfaces/http/middleware"
	"iprights/internal/shared/logger"
	"iprights/internal/shared/utils"
)

// AssetHandler handles HTTP requests for the asset registry
type AssetHandler struct {
	registerUC   *usecases.RegisterAssetUseCase
	getUC        *usecases.GetAssetUseCase
	statusUC     *usecases.AssetStatusUseCase
	deactivateUC *usecases.DeactivateAssetUseCase
	reactivateUC *usecases.ReactivateAssetUseCase
	listOwnedUC  *usecases.ListOwnedAssetsUseCase
	logger       logger.Interface
}

// NewAssetHandler creates a new asset handler
func NewAssetHandler(
	registerUC *usecases.RegisterAssetUseCase,
	getUC *usecases.GetAssetUseCase,
	statusUC *usecases.AssetStatusUseCase,
	deactivateUC *usecases.DeactivateAssetUseCase,
	reactivateUC *usecases.ReactivateAssetUseCase,
	listOwnedUC *usecases.ListOwnedAssetsUseCase,
	logger logger.Interface,
) *AssetHandler {
	return &AssetHandler{
		registerUC:   registerUC,
		getUC:        getUC,
		statusUC:     statusUC,
		deactivateUC: deactivateUC,
		reactivateUC: reactivateUC,
		listOwnedUC:  listOwnedUC,
		logger:       logger,
	}
}

// Register handles POST /assets
func (h *AssetHandler) Register(c *gin.Context) {
	var request dto.RegisterAssetRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	request.Caller = middleware.CallerFrom(c)

	result, err := h.registerUC.Execute(c.Request.Context(), request)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.CreatedResponse(c, result)
}

// Get handles GET /assets/:id
func (h *AssetHandler) Get(c *gin.Context) {
	result, err := h.getUC.Execute(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// Status handles GET /assets/:id/status
func (h *AssetHandler) Status(c *gin.Context) {
	result, err := h.statusUC.Execute(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// Deactivate handles POST /assets/:id/deactivate
func (h *AssetHandler) Deactivate(c *gin.Context) {
	request := dto.ActivationRequest{
		AssetID: c.Param("id"),
		Caller:  middleware.CallerFrom(c),
	}
	if err := h.deactivateUC.Execute(c.Request.Context(), request); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "asset deactivated", nil)
}

// Reactivate handles POST /assets/:id/reactivate
func (h *AssetHandler) Reactivate(c *gin.Context) {
	request := dto.ActivationRequest{
		AssetID: c.Param("id"),
		Caller:  middleware.CallerFrom(c),
	}
	if err := h.reactivateUC.Execute(c.Request.Context(), request); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "asset reactivated", nil)
}

// ListOwned handles GET /assets?owner=<actor>
func (h *AssetHandler) ListOwned(c *gin.Context) {
	owner := c.Query("owner")
	if owner == "" {
		owner = middleware.CallerFrom(c)
	}

	result, err := h.listOwnedUC.Execute(c.Request.Context(), owner)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", result)
}
