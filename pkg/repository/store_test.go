package repository_test

import (
	"context"
	"errors"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/notework-lab/notework/pkg/domain/interfaces"
	"github.com/notework-lab/notework/pkg/repository/local"
	"github.com/notework-lab/notework/pkg/repository/memory"
)

// newTestStores returns one instance of every backend so each case runs
// against all of them
func newTestStores(t *testing.T) map[string]interfaces.Store {
	t.Helper()

	localStore, err := local.New(t.TempDir())
	gt.NoError(t, err).Required()

	return map[string]interfaces.Store{
		"memory": memory.New(),
		"local":  localStore,
	}
}

func isNotFound(err error) bool {
	return errors.Is(err, memory.ErrNotFound) || errors.Is(err, local.ErrNotFound)
}

type testValue struct {
	Name  string   `json:"name"`
	Count int      `json:"count"`
	Tags  []string `json:"tags"`
}

func TestStorePutGet(t *testing.T) {
	for name, store := range newTestStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			in := testValue{Name: "session", Count: 3, Tags: []string{"a", "b"}}

			gt.NoError(t, store.Put(ctx, "test-key", in)).Required()

			var out testValue
			gt.NoError(t, store.Get(ctx, "test-key", &out)).Required()
			gt.Value(t, out).Equal(in)
		})
	}
}

func TestStoreGetMissing(t *testing.T) {
	for name, store := range newTestStores(t) {
		t.Run(name, func(t *testing.T) {
			var out testValue
			err := store.Get(context.Background(), "absent", &out)
			gt.Error(t, err)
			gt.Bool(t, isNotFound(err)).True()
		})
	}
}

func TestStoreOverwrite(t *testing.T) {
	for name, store := range newTestStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			gt.NoError(t, store.Put(ctx, "k", testValue{Name: "first"}))
			gt.NoError(t, store.Put(ctx, "k", testValue{Name: "second"}))

			var out testValue
			gt.NoError(t, store.Get(ctx, "k", &out)).Required()
			gt.Value(t, out.Name).Equal("second")
		})
	}
}

func TestStoreDelete(t *testing.T) {
	for name, store := range newTestStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			gt.NoError(t, store.Put(ctx, "k", testValue{Name: "v"}))
			gt.NoError(t, store.Delete(ctx, "k"))

			var out testValue
			gt.Bool(t, isNotFound(store.Get(ctx, "k", &out))).True()

			// Deleting again is not an error
			gt.NoError(t, store.Delete(ctx, "k"))
		})
	}
}

func TestLocalStoreSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	first, err := local.New(dir)
	gt.NoError(t, err).Required()
	gt.NoError(t, first.Put(ctx, "session", testValue{Name: "persisted"}))
	gt.NoError(t, first.Close())

	second, err := local.New(dir)
	gt.NoError(t, err).Required()

	var out testValue
	gt.NoError(t, second.Get(ctx, "session", &out)).Required()
	gt.Value(t, out.Name).Equal("persisted")
}

func TestLocalStoreRejectsBadKey(t *testing.T) {
	store, err := local.New(t.TempDir())
	gt.NoError(t, err).Required()

	gt.Error(t, store.Put(context.Background(), "../escape", testValue{}))
	gt.Error(t, store.Put(context.Background(), "", testValue{}))
}
