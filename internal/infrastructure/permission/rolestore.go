package permission

import (
	"context"
	"fmt"
	"sync"

	"github.com/casbin/casbin/v2"
	gormadapter "github.com/casbin/gorm-adapter/v3"
	"gorm.io/gorm"

	"iprights/internal/domain/accesscontrol"
	"iprights/internal/domain/shared/actor"
	"iprights/internal/shared/logger"
)

var _ accesscontrol.RoleStore = (*RoleStore)(nil)

// RoleStore backs the (actor, role) assignment set with a casbin enforcer
// persisted through the gorm adapter. Roles map onto casbin grouping
// policies, so the assignments survive restarts alongside the rest of the
// ledger state.
type RoleStore struct {
	enforcer *casbin.Enforcer
	mu       sync.RWMutex
	logger   logger.Interface
}

// NewRoleStore creates a casbin-backed role store
func NewRoleStore(db *gorm.DB, modelPath string, log logger.Interface) (*RoleStore, error) {
	adapter, err := gormadapter.NewAdapterByDB(db)
	if err != nil {
		return nil, fmt.Errorf("failed to create casbin adapter: %w", err)
	}

	enforcer, err := casbin.NewEnforcer(modelPath, adapter)
	if err != nil {
		return nil, fmt.Errorf("failed to create casbin enforcer: %w", err)
	}

	if err := enforcer.LoadPolicy(); err != nil {
		return nil, fmt.Errorf("failed to load policy: %w", err)
	}

	return &RoleStore{
		enforcer: enforcer,
		logger:   log,
	}, nil
}

// Grant assigns the role to the actor
func (s *RoleStore) Grant(ctx context.Context, a actor.ID, role accesscontrol.Role) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.enforcer.AddRoleForUser(a.String(), role.String())
	if err != nil {
		s.logger.Errorw("failed to grant role", "actor", a, "role", role, "error", err)
		return fmt.Errorf("failed to grant role: %w", err)
	}

	return s.enforcer.SavePolicy()
}

// Revoke removes the role from the actor
func (s *RoleStore) Revoke(ctx context.Context, a actor.ID, role accesscontrol.Role) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.enforcer.DeleteRoleForUser(a.String(), role.String())
	if err != nil {
		s.logger.Errorw("failed to revoke role", "actor", a, "role", role, "error", err)
		return fmt.Errorf("failed to revoke role: %w", err)
	}

	return s.enforcer.SavePolicy()
}

// Has reports whether the actor holds the role
func (s *RoleStore) Has(ctx context.Context, a actor.ID, role accesscontrol.Role) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	has, err := s.enforcer.HasRoleForUser(a.String(), role.String())
	if err != nil {
		s.logger.Errorw("role check failed", "actor", a, "role", role, "error", err)
		return false, fmt.Errorf("role check failed: %w", err)
	}
	return has, nil
}
