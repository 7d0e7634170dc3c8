package usecases

import (
	"context"
	"fmt"

	"iprights/internal/application/accesscontrol/dto"
	"iprights/internal/domain/accesscontrol"
	"iprights/internal/domain/shared/actor"
	"iprights/internal/shared/logger"
)

// CheckRoleUseCase reports whether an actor holds a role. Never fails on an
// unknown actor or role; those simply read as false.
type CheckRoleUseCase struct {
	roles  accesscontrol.RoleStore
	logger logger.Interface
}

// NewCheckRoleUseCase creates a new check role use case
func NewCheckRoleUseCase(roles accesscontrol.RoleStore, log logger.Interface) *CheckRoleUseCase {
	return &CheckRoleUseCase{roles: roles, logger: log}
}

// Execute executes the check role use case
func (uc *CheckRoleUseCase) Execute(ctx context.Context, request dto.CheckRoleRequest) (*dto.CheckRoleResponse, error) {
	role := accesscontrol.Role(request.Role)
	response := &dto.CheckRoleResponse{Actor: request.Actor, Role: request.Role}

	if !role.IsValid() || actor.ID(request.Actor).IsZero() {
		return response, nil
	}

	has, err := uc.roles.Has(ctx, actor.ID(request.Actor), role)
	if err != nil {
		return nil, fmt.Errorf("failed to check role: %w", err)
	}
	response.HasRole = has
	return response, nil
}
