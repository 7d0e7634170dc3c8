// Package testutil provides in-memory implementations of the ledger's
// repository and collaborator interfaces for testing the application layer.
package testutil

import (
	"context"
	"sync"

	"iprights/internal/domain/accesscontrol"
	"iprights/internal/domain/asset"
	"iprights/internal/domain/license"
	"iprights/internal/domain/shared/actor"
	"iprights/internal/domain/transfer"
	"iprights/internal/shared/logger"
)

// MockLogger records log calls and otherwise discards them.
type MockLogger struct {
	mu      sync.RWMutex
	entries []LogEntry
}

// LogEntry records a log call.
type LogEntry struct {
	Level   string
	Message string
}

// NewMockLogger creates a new mock logger.
func NewMockLogger() *MockLogger {
	return &MockLogger{}
}

func (m *MockLogger) log(level, msg string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, LogEntry{Level: level, Message: msg})
}

func (m *MockLogger) Debug(msg string, args ...any) { m.log("DEBUG", msg) }
func (m *MockLogger) Info(msg string, args ...any)  { m.log("INFO", msg) }
func (m *MockLogger) Warn(msg string, args ...any)  { m.log("WARN", msg) }
func (m *MockLogger) Error(msg string, args ...any) { m.log("ERROR", msg) }

func (m *MockLogger) With(args ...any) logger.Interface  { return m }
func (m *MockLogger) Named(name string) logger.Interface { return m }

func (m *MockLogger) Debugw(msg string, keysAndValues ...interface{}) { m.log("DEBUG", msg) }
func (m *MockLogger) Infow(msg string, keysAndValues ...interface{})  { m.log("INFO", msg) }
func (m *MockLogger) Warnw(msg string, keysAndValues ...interface{})  { m.log("WARN", msg) }
func (m *MockLogger) Errorw(msg string, keysAndValues ...interface{}) { m.log("ERROR", msg) }

// Entries returns a snapshot of recorded log calls.
func (m *MockLogger) Entries() []LogEntry {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]LogEntry(nil), m.entries...)
}

// PassthroughRunner satisfies db.Runner without a database: the function runs
// directly. Single-writer ordering is the caller's concern in tests.
type PassthroughRunner struct{}

func (PassthroughRunner) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// MockAssetRepository is an in-memory asset.Repository. The owner index is
// live: Update recomputes list membership from the stored records.
type MockAssetRepository struct {
	mu     sync.RWMutex
	assets map[string]*asset.Asset
	order  []string
}

// NewMockAssetRepository creates a new mock asset repository.
func NewMockAssetRepository() *MockAssetRepository {
	return &MockAssetRepository{assets: make(map[string]*asset.Asset)}
}

func (m *MockAssetRepository) Create(ctx context.Context, a *asset.Asset) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.assets[a.ID()]; ok {
		return asset.ErrAlreadyRegistered
	}
	m.assets[a.ID()] = a
	m.order = append(m.order, a.ID())
	return nil
}

func (m *MockAssetRepository) Update(ctx context.Context, a *asset.Asset) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.assets[a.ID()]; !ok {
		return asset.ErrAssetNotFound
	}
	m.assets[a.ID()] = a
	return nil
}

func (m *MockAssetRepository) GetByID(ctx context.Context, id string) (*asset.Asset, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	a, ok := m.assets[id]
	if !ok {
		return nil, asset.ErrAssetNotFound
	}
	return a, nil
}

func (m *MockAssetRepository) Exists(ctx context.Context, id string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.assets[id]
	return ok, nil
}

func (m *MockAssetRepository) ListIDsByOwner(ctx context.Context, owner actor.ID) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var ids []string
	for _, id := range m.order {
		if m.assets[id].Owner() == owner {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// MockTransferRepository is an in-memory transfer.Repository.
type MockTransferRepository struct {
	mu       sync.RWMutex
	requests map[string]*transfer.Request
	order    []string
}

// NewMockTransferRepository creates a new mock transfer repository.
func NewMockTransferRepository() *MockTransferRepository {
	return &MockTransferRepository{requests: make(map[string]*transfer.Request)}
}

func (m *MockTransferRepository) Create(ctx context.Context, r *transfer.Request) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests[r.ID()] = r
	m.order = append(m.order, r.ID())
	return nil
}

func (m *MockTransferRepository) Update(ctx context.Context, r *transfer.Request) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.requests[r.ID()]; !ok {
		return transfer.ErrTransferNotFound
	}
	m.requests[r.ID()] = r
	return nil
}

func (m *MockTransferRepository) GetByID(ctx context.Context, id string) (*transfer.Request, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.requests[id]
	if !ok {
		return nil, transfer.ErrTransferNotFound
	}
	return r, nil
}

func (m *MockTransferRepository) ListByRecipient(ctx context.Context, to actor.ID) ([]*transfer.Request, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*transfer.Request
	for _, id := range m.order {
		if m.requests[id].To() == to {
			out = append(out, m.requests[id])
		}
	}
	return out, nil
}

// MockLicenseRepository is an in-memory license.Repository.
type MockLicenseRepository struct {
	mu     sync.RWMutex
	grants map[string]*license.Grant
	order  []string
}

// NewMockLicenseRepository creates a new mock license repository.
func NewMockLicenseRepository() *MockLicenseRepository {
	return &MockLicenseRepository{grants: make(map[string]*license.Grant)}
}

func (m *MockLicenseRepository) Create(ctx context.Context, g *license.Grant) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.grants[g.ID()] = g
	m.order = append(m.order, g.ID())
	return nil
}

func (m *MockLicenseRepository) Update(ctx context.Context, g *license.Grant) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.grants[g.ID()]; !ok {
		return license.ErrLicenseNotFound
	}
	m.grants[g.ID()] = g
	return nil
}

func (m *MockLicenseRepository) GetByID(ctx context.Context, id string) (*license.Grant, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	g, ok := m.grants[id]
	if !ok {
		return nil, license.ErrLicenseNotFound
	}
	return g, nil
}

func (m *MockLicenseRepository) ListIDsByLicensor(ctx context.Context, licensor actor.ID) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var ids []string
	for _, id := range m.order {
		if m.grants[id].Licensor() == licensor {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (m *MockLicenseRepository) ListIDsByLicensee(ctx context.Context, licensee actor.ID) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var ids []string
	for _, id := range m.order {
		if m.grants[id].Licensee() == licensee {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// MockAccessRepository is an in-memory accesscontrol.Repository.
type MockAccessRepository struct {
	mu       sync.RWMutex
	controls map[string]*accesscontrol.AssetControl
	subjects map[actor.ID][]string
}

// NewMockAccessRepository creates a new mock access-control repository.
func NewMockAccessRepository() *MockAccessRepository {
	return &MockAccessRepository{
		controls: make(map[string]*accesscontrol.AssetControl),
		subjects: make(map[actor.ID][]string),
	}
}

func (m *MockAccessRepository) Save(ctx context.Context, c *accesscontrol.AssetControl) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.controls[c.AssetID()] = c
	return nil
}

func (m *MockAccessRepository) GetByAssetID(ctx context.Context, assetID string) (*accesscontrol.AssetControl, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.controls[assetID]
	if !ok {
		return nil, accesscontrol.ErrControlNotFound
	}
	return c, nil
}

func (m *MockAccessRepository) AppendSubjectAsset(ctx context.Context, subject actor.ID, assetID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, id := range m.subjects[subject] {
		if id == assetID {
			return nil
		}
	}
	m.subjects[subject] = append(m.subjects[subject], assetID)
	return nil
}

func (m *MockAccessRepository) ListSubjectAssets(ctx context.Context, subject actor.ID) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]string(nil), m.subjects[subject]...), nil
}

// MockRoleStore is an in-memory accesscontrol.RoleStore.
type MockRoleStore struct {
	mu    sync.RWMutex
	roles map[actor.ID]map[accesscontrol.Role]bool
}

// NewMockRoleStore creates a new mock role store, optionally pre-seeding
// administrators with the data-controller role.
func NewMockRoleStore(admins ...actor.ID) *MockRoleStore {
	s := &MockRoleStore{roles: make(map[actor.ID]map[accesscontrol.Role]bool)}
	for _, a := range admins {
		s.grant(a, accesscontrol.RoleController)
	}
	return s
}

func (m *MockRoleStore) grant(a actor.ID, role accesscontrol.Role) {
	if m.roles[a] == nil {
		m.roles[a] = make(map[accesscontrol.Role]bool)
	}
	m.roles[a][role] = true
}

func (m *MockRoleStore) Grant(ctx context.Context, a actor.ID, role accesscontrol.Role) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.grant(a, role)
	return nil
}

func (m *MockRoleStore) Revoke(ctx context.Context, a actor.ID, role accesscontrol.Role) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.roles[a] != nil {
		delete(m.roles[a], role)
	}
	return nil
}

func (m *MockRoleStore) Has(ctx context.Context, a actor.ID, role accesscontrol.Role) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.roles[a][role], nil
}

// Payment records one value transfer seen by the mock gateway.
type Payment struct {
	From      actor.ID
	To        actor.ID
	Amount    uint64
	LicenseID string
}

// MockPaymentGateway records value transfers instead of performing them.
type MockPaymentGateway struct {
	mu       sync.Mutex
	Payments []Payment
	Err      error
}

// NewMockPaymentGateway creates a new mock payment gateway.
func NewMockPaymentGateway() *MockPaymentGateway {
	return &MockPaymentGateway{}
}

func (m *MockPaymentGateway) Transfer(ctx context.Context, from, to actor.ID, amount uint64, licenseID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.Payments = append(m.Payments, Payment{From: from, To: to, Amount: amount, LicenseID: licenseID})
	return nil
}

// RecordingNotifier captures transfer notifications.
type RecordingNotifier struct {
	mu       sync.Mutex
	Notified []string
}

func (n *RecordingNotifier) TransferRequested(ctx context.Context, r *transfer.Request) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Notified = append(n.Notified, r.ID())
	return nil
}
