package checkpoint_test

import (
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skawahara/memoflow/pkg/memoflow/checkpoint"
)

func TestSQLiteStorePersistence(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "threads.db")

	store1, err := checkpoint.NewSQLiteStore(dbPath)
	require.NoError(t, err)
	require.NoError(t, store1.Save("memo-thread", []byte("persistent")))
	require.NoError(t, store1.Close())

	// Reopen the same database.
	store2, err := checkpoint.NewSQLiteStore(dbPath)
	require.NoError(t, err)
	defer store2.Close()

	data, err := store2.Load("memo-thread")
	require.NoError(t, err)
	assert.Equal(t, []byte("persistent"), data)
}

func TestSQLiteStoreUpsertKeepsOneRow(t *testing.T) {
	store, err := checkpoint.NewSQLiteStore(":memory:")
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.Save("t1", []byte("first")))
	require.NoError(t, store.Save("t1", []byte("second")))

	data, err := store.Load("t1")
	require.NoError(t, err)
	assert.Equal(t, []byte("second"), data)

	threads, err := store.Threads()
	require.NoError(t, err)
	assert.Equal(t, []string{"t1"}, threads)
}

func TestSQLiteStoreMissingThread(t *testing.T) {
	store, err := checkpoint.NewSQLiteStore(":memory:")
	require.NoError(t, err)
	defer store.Close()

	_, err = store.Load("never-saved")
	assert.ErrorIs(t, err, checkpoint.ErrNotFound)
}

func TestSQLiteStoreDelete(t *testing.T) {
	store, err := checkpoint.NewSQLiteStore(":memory:")
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.Save("t1", []byte("x")))
	require.NoError(t, store.Delete("t1"))

	_, err = store.Load("t1")
	assert.ErrorIs(t, err, checkpoint.ErrNotFound)

	// Deleting an absent thread is not an error.
	assert.NoError(t, store.Delete("t1"))
}

func TestSQLiteStoreThreadsSorted(t *testing.T) {
	store, err := checkpoint.NewSQLiteStore(":memory:")
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.Save("charlie", []byte("c")))
	require.NoError(t, store.Save("alpha", []byte("a")))
	require.NoError(t, store.Save("bravo", []byte("b")))

	threads, err := store.Threads()
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "bravo", "charlie"}, threads)
}

func TestSQLiteStoreInvalidPath(t *testing.T) {
	_, err := checkpoint.NewSQLiteStore("/nonexistent/path/db.sqlite")
	assert.Error(t, err)
}

func TestSQLiteStoreCloseIdempotent(t *testing.T) {
	store, err := checkpoint.NewSQLiteStore(":memory:")
	require.NoError(t, err)

	assert.NoError(t, store.Close())
	assert.NoError(t, store.Close())
}

func TestSQLiteStoreClosedErrors(t *testing.T) {
	store, err := checkpoint.NewSQLiteStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, store.Close())

	assert.ErrorIs(t, store.Save("t1", []byte("x")), checkpoint.ErrStoreClosed)
	_, err = store.Load("t1")
	assert.ErrorIs(t, err, checkpoint.ErrStoreClosed)
	_, err = store.Threads()
	assert.ErrorIs(t, err, checkpoint.ErrStoreClosed)
}

func TestSQLiteStoreConcurrent(t *testing.T) {
	store, err := checkpoint.NewSQLiteStore(":memory:")
	require.NoError(t, err)
	defer store.Close()

	const goroutines = 50
	const ops = 20

	var wg sync.WaitGroup
	wg.Add(goroutines)

	for i := 0; i < goroutines; i++ {
		go func(id int) {
			defer wg.Done()

			threadID := "thread-" + string(rune('a'+id%26))
			for j := 0; j < ops; j++ {
				switch j % 4 {
				case 0, 1:
					_ = store.Save(threadID, []byte("data"))
				case 2:
					_, _ = store.Load(threadID)
				case 3:
					_, _ = store.Threads()
				}
			}
		}(i)
	}

	wg.Wait()
}

// Distinct threads write through pooled connections without the store
// serializing them; SQLite's busy handling absorbs writer contention.
func TestSQLiteStoreParallelWriters(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "parallel.db")
	store, err := checkpoint.NewSQLiteStore(dbPath)
	require.NoError(t, err)
	defer store.Close()

	const writers = 16

	var wg sync.WaitGroup
	wg.Add(writers)

	errs := make(chan error, writers)
	for i := 0; i < writers; i++ {
		go func(id int) {
			defer wg.Done()
			threadID := fmt.Sprintf("writer-%d", id)
			for j := 0; j < 10; j++ {
				if err := store.Save(threadID, []byte(fmt.Sprintf("rev-%d", j))); err != nil {
					errs <- err
					return
				}
			}
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	threads, err := store.Threads()
	require.NoError(t, err)
	assert.Len(t, threads, writers)

	data, err := store.Load("writer-0")
	require.NoError(t, err)
	assert.Equal(t, []byte("rev-9"), data)
}

func TestSQLiteStoreLargeSnapshot(t *testing.T) {
	store, err := checkpoint.NewSQLiteStore(":memory:")
	require.NoError(t, err)
	defer store.Close()

	// 1MB snapshot.
	large := make([]byte, 1024*1024)
	for i := range large {
		large[i] = byte(i % 256)
	}

	require.NoError(t, store.Save("t1", large))

	loaded, err := store.Load("t1")
	require.NoError(t, err)
	assert.Equal(t, large, loaded)
}
