// pkg/storage/mirrored_store.go

package storage

import (
	"context"

	"go.uber.org/zap"
)

// MirroredStore saves to a primary store and then copies to every mirror.
// Only the primary decides whether a save succeeded; mirror failures are
// logged.
type MirroredStore struct {
	primary Store
	mirrors []Store
	log     *zap.Logger
}

// NewMirroredStore creates a MirroredStore. It returns the concrete type so
// AddMirror can be called after construction.
func NewMirroredStore(primary Store, log *zap.Logger, mirrors ...Store) *MirroredStore {
	if log == nil {
		log = zap.NewNop()
	}
	return &MirroredStore{primary: primary, mirrors: mirrors, log: log}
}

// AddMirror appends a mirror.
func (m *MirroredStore) AddMirror(s Store) {
	if s != nil {
		m.mirrors = append(m.mirrors, s)
	}
}

// Save stores data in the primary store first. The returned location is the
// primary's.
func (m *MirroredStore) Save(ctx context.Context, name string, data []byte) (string, error) {
	location, err := m.primary.Save(ctx, name, data)
	if err != nil {
		return "", err
	}
	for _, mirror := range m.mirrors {
		copyLoc, err := mirror.Save(ctx, name, data)
		if err != nil {
			m.log.Warn("mirror save failed", zap.String("file", name), zap.Error(err))
			continue
		}
		m.log.Debug("mirrored invoice", zap.String("file", name), zap.String("location", copyLoc))
	}
	return location, nil
}
