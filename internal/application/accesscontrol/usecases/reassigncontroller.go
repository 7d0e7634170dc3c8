package usecases

import (
	"context"
	"errors"
	"fmt"

	appaccess "iprights/internal/application/accesscontrol"
	"iprights/internal/application/accesscontrol/dto"
	"iprights/internal/domain/accesscontrol"
	"iprights/internal/domain/shared/actor"
	"iprights/internal/shared/db"
	apperrors "iprights/internal/shared/errors"
	"iprights/internal/shared/logger"
)

// ReassignControllerUseCase moves data-protection accountability for an asset
// to a new actor. Authorized for the current controller or an administrator.
type ReassignControllerUseCase struct {
	repo    accesscontrol.Repository
	service *appaccess.Service
	tx      db.Runner
	logger  logger.Interface
}

// NewReassignControllerUseCase creates a new reassign controller use case
func NewReassignControllerUseCase(
	repo accesscontrol.Repository,
	service *appaccess.Service,
	tx db.Runner,
	log logger.Interface,
) *ReassignControllerUseCase {
	return &ReassignControllerUseCase{
		repo:    repo,
		service: service,
		tx:      tx,
		logger:  log,
	}
}

// Execute executes the reassign controller use case
func (uc *ReassignControllerUseCase) Execute(ctx context.Context, request dto.ReassignControllerRequest) error {
	newController := actor.ID(request.NewController)
	if newController.IsZero() {
		return apperrors.NewValidationError("new controller is required")
	}
	caller := actor.ID(request.Caller)

	return uc.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		control, err := uc.repo.GetByAssetID(ctx, request.AssetID)
		if errors.Is(err, accesscontrol.ErrControlNotFound) {
			return apperrors.NewNotFoundError("asset control record not found")
		}
		if err != nil {
			return fmt.Errorf("failed to load control record: %w", err)
		}

		isAdmin, err := uc.service.IsAdministrator(ctx, caller)
		if err != nil {
			return fmt.Errorf("failed to check administrative role: %w", err)
		}
		if !control.IsControlledBy(caller) && !isAdmin {
			uc.logger.Warnw("controller reassignment denied",
				"asset_id", request.AssetID,
				"caller", caller,
			)
			return apperrors.NewForbiddenError("caller is neither the controller nor an administrator")
		}

		return uc.service.ReassignController(ctx, request.AssetID, newController)
	})
}
