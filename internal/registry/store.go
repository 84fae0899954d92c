package registry

import (
	"fmt"
	"sync/atomic"

	"github.com/NikitaCOEUR/pipecomplete/internal/derrors"
	"github.com/NikitaCOEUR/pipecomplete/internal/logger"
)

// Store publishes the current catalog snapshot.
// Readers always get a complete snapshot; refreshes replace it in one atomic swap.
type Store struct {
	source  Source
	current atomic.Pointer[Snapshot]
	log     *logger.Logger
}

// NewStore creates a store and performs the initial load from source.
// An unavailable or invalid source leaves the store with an empty catalog.
func NewStore(source Source, log *logger.Logger) *Store {
	if log == nil {
		log = logger.Nop()
	}
	s := &Store{
		source: source,
		log:    log.WithComponent("registry"),
	}
	s.current.Store(EmptySnapshot())

	if err := s.Refresh(); err != nil {
		s.log.Warn().Err(err).Msg("Stage catalog unavailable, continuing with an empty catalog")
	}
	return s
}

// Current returns the snapshot in effect; never nil
func (s *Store) Current() *Snapshot {
	return s.current.Load()
}

// Publish swaps in an already built snapshot
func (s *Store) Publish(snap *Snapshot) {
	if snap == nil {
		snap = EmptySnapshot()
	}
	s.current.Store(snap)
}

// Refresh lists the source again and publishes the result.
// On failure the previous snapshot stays in effect.
func (s *Store) Refresh() error {
	if s.source == nil {
		return derrors.NewRegistryError("none", "no stage catalog source configured", nil)
	}

	kinds, err := s.source.ListStageKinds()
	if err != nil {
		return derrors.NewRegistryError(sourceName(s.source), "failed to list stage kinds", err)
	}

	snap, err := NewSnapshot(kinds)
	if err != nil {
		return derrors.NewRegistryError(sourceName(s.source), "invalid stage catalog", err)
	}

	s.current.Store(snap)
	s.log.Debug().
		Str("source", sourceName(s.source)).
		Int("stages", snap.Len()).
		Msg("Stage catalog published")
	return nil
}

func sourceName(src Source) string {
	switch v := src.(type) {
	case FileSource:
		return v.Path
	case *FileSource:
		return v.Path
	case EmbeddedSource, *EmbeddedSource:
		return "embedded"
	case StaticSource:
		return "static"
	default:
		return fmt.Sprintf("%T", src)
	}
}
