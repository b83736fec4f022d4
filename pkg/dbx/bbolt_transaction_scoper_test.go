package dbx

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"go.etcd.io/bbolt"
)

func openTestDB(t *testing.T) *bbolt.DB {
	t.Helper()
	db, err := bbolt.Open(filepath.Join(t.TempDir(), "test.db"), 0600, nil)
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})
	return db
}

func put(ctx context.Context, db *bbolt.DB, key string) error {
	return InBBoltTransactionScope(ctx, db, func(ctx context.Context, tx *bbolt.Tx) error {
		bucket, err := tx.CreateBucketIfNotExists([]byte("test"))
		if err != nil {
			return err
		}
		return bucket.Put([]byte(key), []byte("value"))
	})
}

func exists(t *testing.T, db *bbolt.DB, key string) bool {
	t.Helper()
	found, err := InBBoltReadScope(context.Background(), db, func(tx *bbolt.Tx) (bool, error) {
		bucket := tx.Bucket([]byte("test"))
		return bucket != nil && bucket.Get([]byte(key)) != nil, nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return found
}

func TestAfterCommitRunsOnceOuterScopeCommits(t *testing.T) {
	db := openTestDB(t)
	scoper := NewBBoltTransactionScoper(db)

	var hooks []string
	err := scoper.InTransactionScope(context.Background(), func(ctx context.Context) error {
		if err := put(ctx, db, "a"); err != nil {
			return err
		}
		AfterCommit(ctx, func() { hooks = append(hooks, "first") })

		return scoper.InTransactionScope(ctx, func(ctx context.Context) error {
			AfterCommit(ctx, func() { hooks = append(hooks, "nested") })
			if len(hooks) != 0 {
				t.Errorf("expected hooks to be deferred until commit")
			}
			return put(ctx, db, "b")
		})
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(hooks) != 2 || hooks[0] != "first" || hooks[1] != "nested" {
		t.Fatalf("expected hooks in registration order, got %v", hooks)
	}
	if !exists(t, db, "a") || !exists(t, db, "b") {
		t.Fatalf("expected both writes to be committed")
	}
}

func TestAfterCommitIsDroppedOnRollback(t *testing.T) {
	db := openTestDB(t)
	scoper := NewBBoltTransactionScoper(db)
	scopeErr := errors.New("scope failed")

	var called bool
	err := scoper.InTransactionScope(context.Background(), func(ctx context.Context) error {
		if err := put(ctx, db, "a"); err != nil {
			return err
		}
		AfterCommit(ctx, func() { called = true })
		return scopeErr
	})
	if !errors.Is(err, scopeErr) {
		t.Fatalf("expected %v, got %v", scopeErr, err)
	}
	if called {
		t.Fatalf("expected hook of a rolled back transaction to be dropped")
	}
	if exists(t, db, "a") {
		t.Fatalf("expected write to be rolled back")
	}
}

func TestAfterCommitWithoutTransactionRunsImmediately(t *testing.T) {
	var called bool
	AfterCommit(context.Background(), func() { called = true })
	if !called {
		t.Fatalf("expected hook to run immediately")
	}
}

func TestPanickingScopeRollsBack(t *testing.T) {
	db := openTestDB(t)
	scoper := NewBBoltTransactionScoper(db)

	func() {
		defer func() {
			if recover() == nil {
				t.Fatalf("expected the panic to be re-raised")
			}
		}()
		_ = scoper.InTransactionScope(context.Background(), func(ctx context.Context) error {
			if err := put(ctx, db, "a"); err != nil {
				return err
			}
			panic("boom")
		})
	}()

	if exists(t, db, "a") {
		t.Fatalf("expected write of a panicking scope to be rolled back")
	}
}

func TestInTransactionScopeWithResult(t *testing.T) {
	db := openTestDB(t)
	scoper := NewBBoltTransactionScoper(db)

	result, err := InTransactionScopeWithResult(context.Background(), scoper, func(ctx context.Context) (string, error) {
		return "done", put(ctx, db, "a")
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != "done" {
		t.Fatalf("unexpected result %q", result)
	}
}
