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

// RevokeRoleUseCase removes a named role from an actor. Administrative
// callers only, mirroring GrantRoleUseCase.
type RevokeRoleUseCase struct {
	roles  accesscontrol.RoleStore
	events events.Recorder
	tx     db.Runner
	logger logger.Interface
}

// NewRevokeRoleUseCase creates a new revoke role use case
func NewRevokeRoleUseCase(
	roles accesscontrol.RoleStore,
	recorder events.Recorder,
	tx db.Runner,
	log logger.Interface,
) *RevokeRoleUseCase {
	return &RevokeRoleUseCase{
		roles:  roles,
		events: recorder,
		tx:     tx,
		logger: log,
	}
}

// Execute executes the revoke role use case
func (uc *RevokeRoleUseCase) Execute(ctx context.Context, request dto.RevokeRoleRequest) error {
	role := accesscontrol.Role(request.Role)
	if !role.IsValid() {
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
			uc.logger.Warnw("role revoke denied", "caller", caller, "actor", target, "role", role)
			return errors.NewForbiddenError("only data-controller role holders may revoke roles")
		}

		if err := uc.roles.Revoke(ctx, target, role); err != nil {
			return fmt.Errorf("failed to revoke role: %w", err)
		}

		rec := events.New(events.TypeRoleRevoked, target.String(), caller.String(), target.String()).
			WithDetail("role", role.String())
		if err := uc.events.Append(ctx, rec); err != nil {
			return fmt.Errorf("failed to record role revocation: %w", err)
		}

		uc.logger.Infow("role revoked", "actor", target, "role", role, "caller", caller)
		return nil
	})
}
