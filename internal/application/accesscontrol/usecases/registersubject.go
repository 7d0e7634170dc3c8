package usecases

import (
	"context"

	appaccess "iprights/internal/application/accesscontrol"
	"iprights/internal/application/accesscontrol/dto"
	"iprights/internal/domain/shared/actor"
	"iprights/internal/shared/db"
	"iprights/internal/shared/errors"
	"iprights/internal/shared/logger"
)

// RegisterSubjectUseCase is the guarded public entry to subject registration.
// Only callers on the trusted allowlist (the Asset Registry's system actor
// plus any operators configured in) may invoke it; the unguarded path is the
// internal Service used by the Registry itself.
type RegisterSubjectUseCase struct {
	service        *appaccess.Service
	trustedCallers map[actor.ID]bool
	tx             db.Runner
	logger         logger.Interface
}

// NewRegisterSubjectUseCase creates a new register subject use case
func NewRegisterSubjectUseCase(
	service *appaccess.Service,
	trustedCallers []actor.ID,
	tx db.Runner,
	log logger.Interface,
) *RegisterSubjectUseCase {
	trusted := make(map[actor.ID]bool, len(trustedCallers)+1)
	trusted[actor.Registry] = true
	for _, c := range trustedCallers {
		trusted[c] = true
	}
	return &RegisterSubjectUseCase{
		service:        service,
		trustedCallers: trusted,
		tx:             tx,
		logger:         log,
	}
}

// Execute executes the register subject use case
func (uc *RegisterSubjectUseCase) Execute(ctx context.Context, request dto.RegisterSubjectRequest) error {
	caller := actor.ID(request.Caller)
	if !uc.trustedCallers[caller] {
		uc.logger.Warnw("subject registration denied", "caller", caller, "subject", request.Subject)
		return errors.NewForbiddenError("caller is not a trusted subject registrar")
	}

	subject := actor.ID(request.Subject)
	if subject.IsZero() {
		return errors.NewValidationError("subject is required")
	}
	if request.AssetID == "" {
		return errors.NewValidationError("asset id is required")
	}

	return uc.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		return uc.service.RegisterSubject(ctx, subject, request.AssetID)
	})
}
