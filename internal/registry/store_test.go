package registry

import (
	"bytes"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NikitaCOEUR/pipecomplete/internal/derrors"
	"github.com/NikitaCOEUR/pipecomplete/internal/logger"
)

type failingSource struct{}

func (failingSource) ListStageKinds() ([]StageKind, error) {
	return nil, errors.New("registry service unreachable")
}

// switchSource returns whatever kinds it currently holds
type switchSource struct {
	mu    sync.Mutex
	kinds []StageKind
}

func (s *switchSource) set(kinds []StageKind) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.kinds = kinds
}

func (s *switchSource) ListStageKinds() ([]StageKind, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return StaticSource(s.kinds).ListStageKinds()
}

func TestNewStore_LoadsSource(t *testing.T) {
	store := NewStore(StaticSource(sampleKinds()), nil)

	snap := store.Current()
	require.NotNil(t, snap)
	assert.Equal(t, 3, snap.Len())
}

func TestNewStore_UnavailableSourceIsEmpty(t *testing.T) {
	buf := &bytes.Buffer{}
	store := NewStore(failingSource{}, logger.New("warn", buf))

	require.NotNil(t, store.Current())
	assert.Equal(t, 0, store.Current().Len())
	assert.Contains(t, buf.String(), "registry service unreachable")
}

func TestNewStore_NilSource(t *testing.T) {
	store := NewStore(nil, logger.Nop())
	assert.Equal(t, 0, store.Current().Len())

	err := store.Refresh()
	require.Error(t, err)
	assert.True(t, derrors.HasCode(err, "REGISTRY_ERROR"))
}

func TestStore_RefreshKeepsPreviousOnError(t *testing.T) {
	src := &switchSource{kinds: sampleKinds()}
	store := NewStore(src, logger.Nop())
	before := store.Current()

	src.set([]StageKind{{Name: "dup"}, {Name: "dup"}})
	err := store.Refresh()
	require.Error(t, err)
	assert.True(t, derrors.HasCode(err, "ALREADY_EXISTS"))
	assert.Same(t, before, store.Current())

	src.set([]StageKind{{Name: "only"}})
	require.NoError(t, store.Refresh())
	assert.Equal(t, []string{"only"}, store.Current().Names())
}

func TestStore_Publish(t *testing.T) {
	store := NewStore(StaticSource(nil), logger.Nop())

	snap, err := NewSnapshot([]StageKind{{Name: "x"}})
	require.NoError(t, err)
	store.Publish(snap)
	assert.Same(t, snap, store.Current())

	store.Publish(nil)
	require.NotNil(t, store.Current())
	assert.Equal(t, 0, store.Current().Len())
}

func TestStore_ConcurrentReadersSeeWholeSnapshots(t *testing.T) {
	small := []StageKind{{Name: "a"}}
	large := []StageKind{{Name: "a"}, {Name: "b"}, {Name: "c"}}
	src := &switchSource{kinds: small}
	store := NewStore(src, logger.Nop())

	var wg sync.WaitGroup
	stop := make(chan struct{})

	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
				}
				n := store.Current().Len()
				if n != 1 && n != 3 {
					t.Errorf("observed partial catalog with %d stages", n)
					return
				}
			}
		}()
	}

	for i := 0; i < 200; i++ {
		if i%2 == 0 {
			src.set(large)
		} else {
			src.set(small)
		}
		require.NoError(t, store.Refresh())
	}
	close(stop)
	wg.Wait()
}

func TestSourceName(t *testing.T) {
	assert.Equal(t, "/tmp/c.yml", sourceName(FileSource{Path: "/tmp/c.yml"}))
	assert.Equal(t, "embedded", sourceName(EmbeddedSource{}))
	assert.Equal(t, "static", sourceName(StaticSource(nil)))
	assert.Equal(t, "registry.failingSource", sourceName(failingSource{}))
}
