package dbx

import (
	"context"
)

type TransactionScoper interface {
	InTransactionScope(ctx context.Context, transactionScope func(ctx context.Context) error) error
}

func InTransactionScopeWithResult[T any](ctx context.Context, transactionScoper TransactionScoper, transactionScope func(ctx context.Context) (T, error)) (result T, err error) {
	err = transactionScoper.InTransactionScope(ctx, func(ctx context.Context) error {
		result, err = transactionScope(ctx)
		return err
	})
	return result, err
}

// AfterCommit runs hook once the outermost transaction of ctx commits. Hooks of a rolled back
// transaction are dropped. Without a transaction in ctx the hook runs immediately.
func AfterCommit(ctx context.Context, hook func()) {
	scope, ok := ctx.Value(bboltTxKey).(*bboltScope)
	if !ok {
		hook()
		return
	}
	scope.afterCommit = append(scope.afterCommit, hook)
}
