package usecases

import (
	"context"
	"fmt"

	"iprights/internal/application/accesscontrol/dto"
	"iprights/internal/domain/accesscontrol"
	"iprights/internal/domain/shared/actor"
	"iprights/internal/domain/shared/events"
	"iprights/internal/shared/db"
	"iprights/internal/shared/errors"
	"iprights/internal/shared/logger"
)

// GrantRoleUseCase assigns a named role to an actor. Only holders of the
// administrative data-controller role may grant roles.
type GrantRoleUseCase struct {
	roles  accesscontrol.RoleStore
	events events.Recorder
	tx     db.Runner
	logger logger.Interface
}

// NewGrantRoleUseCase creates a new grant role use case
func NewGrantRoleUseCase(
	roles accesscontrol.RoleStore,
	recorder events.Recorder,
	tx db.Runner,
	log logger.Interface,
) *GrantRoleUseCase {
	return &GrantRoleUseCase{
		roles:  roles,
		events: recorder,
		tx:     tx,
		logger: log,
	}
}

// Execute executes the grant role use case
func (uc *GrantRoleUseCase) Execute(ctx context.Context, request dto.GrantRoleRequest) error {
	role := accesscontrol.Role(request.Role)
	if !role.IsValid() {
		uc.logger.Warnw("invalid role", "role", request.Role)
		return errors.NewValidationError(fmt.Sprintf("invalid role: %s", request.Role))
	}
	target := actor.ID(request.Actor)
	if target.IsZero() {
		return errors.NewValidationError("actor is required")
	}
	caller := actor.ID(request.Caller)

	return uc.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		isAdmin, err := uc.roles.Has(ctx, caller, accesscontrol.RoleController)
		if err != nil {
			return fmt.Errorf("failed to check administrative role: %w", err)
		}
		if !isAdmin {
			uc.logger.Warnw("role grant denied", "caller", caller, "actor", target, "role", role)
			return errors.NewForbiddenError("only data-controller role holders may grant roles")
		}

		if err := uc.roles.Grant(ctx, target, role); err != nil {
			return fmt.Errorf("failed to grant role: %w", err)
		}

		rec := events.New(events.TypeRoleGranted, target.String(), caller.String(), target.String()).
			WithDetail("role", role.String())
		if err := uc.events.Append(ctx, rec); err != nil {
			return fmt.Errorf("failed to record role grant: %w", err)
		}

		uc.logger.Infow("role granted", "actor", target, "role", role, "caller", caller)
		return nil
	})
}
