package checkpoint

import (
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// storeFactories builds every Store implementation for compliance tests.
func storeFactories(t *testing.T) map[string]func() Store {
	t.Helper()
	return map[string]func() Store{
		"memory": func() Store { return NewMemoryStore() },
		"sqlite": func() Store {
			s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "checkpoints.db"))
			require.NoError(t, err)
			return s
		},
	}
}

func TestStore_SaveLoadRoundTrip(t *testing.T) {
	for name, factory := range storeFactories(t) {
		t.Run(name, func(t *testing.T) {
			store := factory()
			defer store.Close()

			data := []byte(`{"memo_text":"hello"}`)
			require.NoError(t, store.Save("thread-1", data))

			loaded, err := store.Load("thread-1")
			require.NoError(t, err)
			assert.Equal(t, data, loaded)
		})
	}
}

func TestStore_SaveOverwritesLatest(t *testing.T) {
	for name, factory := range storeFactories(t) {
		t.Run(name, func(t *testing.T) {
			store := factory()
			defer store.Close()

			require.NoError(t, store.Save("thread-1", []byte("first")))
			require.NoError(t, store.Save("thread-1", []byte("second")))

			loaded, err := store.Load("thread-1")
			require.NoError(t, err)
			assert.Equal(t, []byte("second"), loaded)
		})
	}
}

func TestStore_LoadUnknownThread(t *testing.T) {
	for name, factory := range storeFactories(t) {
		t.Run(name, func(t *testing.T) {
			store := factory()
			defer store.Close()

			_, err := store.Load("missing")
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestStore_DeleteIsIdempotent(t *testing.T) {
	for name, factory := range storeFactories(t) {
		t.Run(name, func(t *testing.T) {
			store := factory()
			defer store.Close()

			require.NoError(t, store.Save("thread-1", []byte("data")))
			require.NoError(t, store.Delete("thread-1"))
			require.NoError(t, store.Delete("thread-1"))

			_, err := store.Load("thread-1")
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestStore_ThreadsListsSavedIDs(t *testing.T) {
	for name, factory := range storeFactories(t) {
		t.Run(name, func(t *testing.T) {
			store := factory()
			defer store.Close()

			require.NoError(t, store.Save("b", []byte("1")))
			require.NoError(t, store.Save("a", []byte("2")))

			threads, err := store.Threads()
			require.NoError(t, err)
			assert.Equal(t, []string{"a", "b"}, threads)
		})
	}
}

func TestStore_ClosedStoreRejectsOperations(t *testing.T) {
	for name, factory := range storeFactories(t) {
		t.Run(name, func(t *testing.T) {
			store := factory()
			require.NoError(t, store.Close())

			assert.ErrorIs(t, store.Save("t", []byte("x")), ErrStoreClosed)
			_, err := store.Load("t")
			assert.ErrorIs(t, err, ErrStoreClosed)
		})
	}
}

func TestStore_ConcurrentDistinctThreads(t *testing.T) {
	for name, factory := range storeFactories(t) {
		t.Run(name, func(t *testing.T) {
			store := factory()
			defer store.Close()

			var wg sync.WaitGroup
			for i := 0; i < 16; i++ {
				wg.Add(1)
				go func(n int) {
					defer wg.Done()
					id := string(rune('a' + n%8))
					_ = store.Save(id, []byte{byte(n)})
					_, _ = store.Load(id)
				}(i)
			}
			wg.Wait()

			threads, err := store.Threads()
			require.NoError(t, err)
			assert.Len(t, threads, 8)
		})
	}
}

func TestMemoryStore_Len(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()

	require.NoError(t, store.Save("a", []byte("1")))
	require.NoError(t, store.Save("a", []byte("2")))
	require.NoError(t, store.Save("b", []byte("3")))

	assert.Equal(t, 2, store.Len())
}
