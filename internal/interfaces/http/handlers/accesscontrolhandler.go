package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"iprights/internal/application/accesscontrol/dto"
	"iprights/internal/application/accesscontrol/usecases"
	"iprights/internal/interfaces/http/middleware"
	"iprights/internal/shared/logger"
	"iprights/internal/shared/utils"
)

// AccessControlHandler handles HTTP requests for roles, controllership and
// logical deletion
type AccessControlHandler struct {
	grantUC      *usecases.GrantRoleUseCase
	revokeUC     *usecases.RevokeRoleUseCase
	checkUC      *usecases.CheckRoleUseCase
	registerUC   *usecases.RegisterSubjectUseCase
	reassignUC   *usecases.ReassignControllerUseCase
	reqDeleteUC  *usecases.RequestLogicalDeletionUseCase
	revtDeleteUC *usecases.RevertLogicalDeletionUseCase
	logger       logger.Interface
}

// NewAccessControlHandler creates a new access control handler
func NewAccessControlHandler(
	grantUC *usecases.GrantRoleUseCase,
	revokeUC *usecases.RevokeRoleUseCase,
	checkUC *usecases.CheckRoleUseCase,
	registerUC *usecases.RegisterSubjectUseCase,
	reassignUC *usecases.ReassignControllerUseCase,
	reqDeleteUC *usecases.RequestLogicalDeletionUseCase,
	revtDeleteUC *usecases.RevertLogicalDeletionUseCase,
	logger logger.Interface,
) *AccessControlHandler {
	return &AccessControlHandler{
		grantUC:      grantUC,
		revokeUC:     revokeUC,
		checkUC:      checkUC,
		registerUC:   registerUC,
		reassignUC:   reassignUC,
		reqDeleteUC:  reqDeleteUC,
		revtDeleteUC: revtDeleteUC,
		logger:       logger,
	}
}

// GrantRole handles POST /roles/grant
func (h *AccessControlHandler) GrantRole(c *gin.Context) {
	var request dto.GrantRoleRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	request.Caller = middleware.CallerFrom(c)

	if err := h.grantUC.Execute(c.Request.Context(), request); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "role granted", nil)
}

// RevokeRole handles POST /roles/revoke
func (h *AccessControlHandler) RevokeRole(c *gin.Context) {
	var request dto.RevokeRoleRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	request.Caller = middleware.CallerFrom(c)

	if err := h.revokeUC.Execute(c.Request.Context(), request); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "role revoked", nil)
}

// CheckRole handles GET /roles/check?actor=<actor>&role=<role>
func (h *AccessControlHandler) CheckRole(c *gin.Context) {
	request := dto.CheckRoleRequest{
		Actor: c.Query("actor"),
		Role:  c.Query("role"),
	}

	result, err := h.checkUC.Execute(c.Request.Context(), request)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// RegisterSubject handles POST /subjects
func (h *AccessControlHandler) RegisterSubject(c *gin.Context) {
	var request dto.RegisterSubjectRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	request.Caller = middleware.CallerFrom(c)

	if err := h.registerUC.Execute(c.Request.Context(), request); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "subject registered", nil)
}

// ReassignController handles POST /assets/:id/controller
func (h *AccessControlHandler) ReassignController(c *gin.Context) {
	var request dto.ReassignControllerRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	request.AssetID = c.Param("id")
	request.Caller = middleware.CallerFrom(c)

	if err := h.reassignUC.Execute(c.Request.Context(), request); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "controller reassigned", nil)
}

// RequestDeletion handles POST /assets/:id/deletion
func (h *AccessControlHandler) RequestDeletion(c *gin.Context) {
	request := dto.LogicalDeletionRequest{
		AssetID: c.Param("id"),
		Caller:  middleware.CallerFrom(c),
	}
	if err := h.reqDeleteUC.Execute(c.Request.Context(), request); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "deletion requested", nil)
}

// RevertDeletion handles POST /assets/:id/deletion/revert
func (h *AccessControlHandler) RevertDeletion(c *gin.Context) {
	request := dto.LogicalDeletionRequest{
		AssetID: c.Param("id"),
		Caller:  middleware.CallerFrom(c),
	}
	if err := h.revtDeleteUC.Execute(c.Request.Context(), request); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "deletion reverted", nil)
}
