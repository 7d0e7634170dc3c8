package accesscontrol

import (
	"context"
	"errors"
	"fmt"
	"time"

	"iprights/internal/domain/accesscontrol"
	"iprights/internal/domain/shared/actor"
	"iprights/internal/domain/shared/events"
	"iprights/internal/shared/logger"
)

// Service is the trusted internal surface of the access-control module. The
// Asset Registry and Transfer Manager call it directly; no caller checks
// happen here because these paths are only reachable from inside the ledger.
// The public operations with caller authorization live under usecases.
type Service struct {
	repo   accesscontrol.Repository
	roles  accesscontrol.RoleStore
	events events.Recorder
	logger logger.Interface
}

// NewService creates the internal access-control service.
func NewService(
	repo accesscontrol.Repository,
	roles accesscontrol.RoleStore,
	recorder events.Recorder,
	log logger.Interface,
) *Service {
	return &Service{
		repo:   repo,
		roles:  roles,
		events: recorder,
		logger: log,
	}
}

// RegisterSubject appends the asset to the subject's index and, when the
// asset has no control record yet, makes the subject its initial controller.
// Idempotent: repeated registration of the same pair is a no-op.
func (s *Service) RegisterSubject(ctx context.Context, subject actor.ID, assetID string) error {
	if subject.IsZero() {
		return accesscontrol.ErrControllerRequired
	}

	if err := s.repo.AppendSubjectAsset(ctx, subject, assetID); err != nil {
		return fmt.Errorf("failed to index subject asset: %w", err)
	}

	_, err := s.repo.GetByAssetID(ctx, assetID)
	if errors.Is(err, accesscontrol.ErrControlNotFound) {
		control, cerr := accesscontrol.NewAssetControl(assetID, subject, time.Now())
		if cerr != nil {
			return cerr
		}
		if err := s.repo.Save(ctx, control); err != nil {
			return fmt.Errorf("failed to save control record: %w", err)
		}
		s.logger.Debugw("initial controller set", "asset_id", assetID, "controller", subject)
		return nil
	}
	return err
}

// ReassignController hands data-protection accountability for the asset to a
// new actor, in lock-step with ownership changes.
func (s *Service) ReassignController(ctx context.Context, assetID string, newController actor.ID) error {
	control, err := s.repo.GetByAssetID(ctx, assetID)
	if err != nil {
		return err
	}

	previous := control.Controller()
	if err := control.Reassign(newController, time.Now()); err != nil {
		return err
	}
	if err := s.repo.Save(ctx, control); err != nil {
		return fmt.Errorf("failed to save control record: %w", err)
	}

	rec := events.New(events.TypeControllerReassigned, assetID, previous.String(), newController.String()).
		WithDetail("previous_controller", previous.String())
	if err := s.events.Append(ctx, rec); err != nil {
		return fmt.Errorf("failed to record controller reassignment: %w", err)
	}

	s.logger.Infow("controller reassigned",
		"asset_id", assetID,
		"previous", previous,
		"controller", newController,
	)
	return nil
}

// GrantProcessor records a data-processing relationship for the actor,
// typically at license creation.
func (s *Service) GrantProcessor(ctx context.Context, who actor.ID, assetID string) error {
	if err := s.roles.Grant(ctx, who, accesscontrol.RoleProcessor); err != nil {
		return fmt.Errorf("failed to grant processor role: %w", err)
	}

	rec := events.New(events.TypeRoleGranted, who.String(), who.String()).
		WithDetail("role", accesscontrol.RoleProcessor.String()).
		WithDetail("asset_id", assetID)
	if err := s.events.Append(ctx, rec); err != nil {
		return fmt.Errorf("failed to record role grant: %w", err)
	}
	return nil
}

// IsController reports whether the actor currently controls the asset.
// A missing control record reads as not-controlling.
func (s *Service) IsController(ctx context.Context, assetID string, who actor.ID) (bool, error) {
	control, err := s.repo.GetByAssetID(ctx, assetID)
	if errors.Is(err, accesscontrol.ErrControlNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return control.IsControlledBy(who), nil
}

// IsAdministrator reports whether the actor holds the data-controller role.
func (s *Service) IsAdministrator(ctx context.Context, who actor.ID) (bool, error) {
	return s.roles.Has(ctx, who, accesscontrol.RoleController)
}
