// Package identity manages the anonymous per-install device id used to
// key votes and chat authorship. The id is minted once, persisted, and
// reused for the lifetime of the install.
package identity

import (
	"errors"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/statiq/gridiron-sync/internal/logging"
	"github.com/statiq/gridiron-sync/internal/storage"
)

// IdentityStore is the persistence surface the manager needs.
type IdentityStore interface {
	DeviceID() (string, error)
	SaveDeviceID(id string) error
}

// Manager hands out the device id, creating it on first use.
type Manager struct {
	store  IdentityStore
	logger *slog.Logger

	mu sync.Mutex
	id string
}

// NewManager creates a manager backed by the given store.
func NewManager(store IdentityStore, logger *slog.Logger) *Manager {
	return &Manager{store: store, logger: logger}
}

// DeviceID returns the stable device id. On first call it loads the
// persisted id or mints a new one. Concurrent first calls observe the
// same id. If persistence fails the minted id is still returned and
// kept for this process, so voting and chat stay usable; it will be
// re-minted on the next launch.
func (m *Manager) DeviceID() string {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.id != "" {
		return m.id
	}

	if id, err := m.store.DeviceID(); err == nil {
		m.id = id
		return m.id
	} else if !errors.Is(err, storage.ErrNoDeviceID) {
		logging.Warn(m.logger, "failed to load device id, minting ephemeral identity",
			logging.FieldError, err)
		m.id = uuid.NewString()
		return m.id
	}

	minted := uuid.NewString()
	if err := m.store.SaveDeviceID(minted); err != nil {
		logging.Warn(m.logger, "failed to persist device id, using ephemeral identity",
			logging.FieldError, err)
		m.id = minted
		return m.id
	}

	// Another writer may have won the first-write race; re-read so every
	// caller converges on the stored id.
	if id, err := m.store.DeviceID(); err == nil {
		m.id = id
	} else {
		m.id = minted
	}
	return m.id
}
