package dbx

import (
	"context"
	"errors"

	"go.etcd.io/bbolt"
)

type contextKey struct{ name string }

var bboltTxKey = contextKey{name: "bboltTxKey"}

// rolls back a transaction whose scope panicked, the panic itself is re-raised
var errPanicked = errors.New("transaction scope panicked")

type bboltScope struct {
	tx          *bbolt.Tx
	afterCommit []func()
}

type bboltTransactionScoper struct {
	db *bbolt.DB
}

func NewBBoltTransactionScoper(db *bbolt.DB) TransactionScoper {
	return &bboltTransactionScoper{
		db: db,
	}
}

func (bts *bboltTransactionScoper) InTransactionScope(ctx context.Context, transactionScope func(ctx context.Context) error) (err error) {
	return InBBoltTransactionScope(ctx, bts.db, func(ctx context.Context, tx *bbolt.Tx) error {
		return transactionScope(ctx)
	})
}

func InBBoltTransactionScope(ctx context.Context, db *bbolt.DB, transactionScope func(ctx context.Context, tx *bbolt.Tx) error) (retErr error) {
	ctx, scope, transactionCloser, err := useOrStartBBoltTransaction(ctx, db)
	if err != nil {
		return err
	}

	defer func() {
		if r := recover(); r != nil {
			_ = transactionCloser(errPanicked)
			panic(r)
		}
		retErr = transactionCloser(retErr)
	}()

	return transactionScope(ctx, scope.tx)
}

func InBBoltTransactionScopeWithResult[T any](ctx context.Context, db *bbolt.DB, transactionScope func(ctx context.Context, tx *bbolt.Tx) (T, error)) (result T, err error) {
	ctx, scope, transactionCloser, err := useOrStartBBoltTransaction(ctx, db)
	if err != nil {
		return result, err
	}

	defer func() {
		if r := recover(); r != nil {
			_ = transactionCloser(errPanicked)
			panic(r)
		}
		err = transactionCloser(err)
	}()

	return transactionScope(ctx, scope.tx)
}

// InBBoltReadScope reuses the transaction of ctx when there is one, otherwise it runs callback in a
// read-only transaction. Batched reads go through here so they never wait on the writer lock.
func InBBoltReadScope[T any](ctx context.Context, db *bbolt.DB, callback func(tx *bbolt.Tx) (T, error)) (result T, err error) {
	if scope, ok := ctx.Value(bboltTxKey).(*bboltScope); ok {
		return callback(scope.tx)
	}

	err = db.View(func(tx *bbolt.Tx) error {
		result, err = callback(tx)
		return err
	})
	return result, err
}

func useOrStartBBoltTransaction(ctx context.Context, db *bbolt.DB) (context.Context, *bboltScope, func(err error) error, error) {
	if scope, ok := ctx.Value(bboltTxKey).(*bboltScope); ok {
		transactionCloser := func(err error) error {
			return err
		}
		return ctx, scope, transactionCloser, nil
	}

	tx, err := db.Begin(true)
	if err != nil {
		return nil, nil, nil, err
	}

	scope := &bboltScope{tx: tx}
	transactionCloser := func(err error) error {
		if err != nil {
			if txErr := tx.Rollback(); txErr != nil {
				err = errors.Join(err, txErr)
			}
			return err
		}

		if txErr := tx.Commit(); txErr != nil {
			return txErr
		}

		for _, hook := range scope.afterCommit {
			hook()
		}
		return nil
	}

	return context.WithValue(ctx, bboltTxKey, scope), scope, transactionCloser, nil
}
