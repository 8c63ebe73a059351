package db

import (
	"context"
	"fmt"
	"log"
	"runtime/debug"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

// WithTx runs fn inside a transaction and commits only when fn returns nil.
// An error or a panic in fn rolls the whole article write back, and the panic
// comes back as an error.
func WithTx(ctx context.Context, reason string, fn func(tx *sqlx.Tx) error) (err error) {
	tx, err := Conn.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrapf(err, "error starting transaction (%s)", reason)
	}

	defer func() {
		if panicErr := recover(); panicErr != nil {
			log.Printf("panic in transaction (%s): %v\n%s", reason, panicErr, debug.Stack())
			err = fmt.Errorf("panic in transaction (%s): %v", reason, panicErr)
		}
		if err == nil {
			return
		}

		if rbErr := tx.Rollback(); rbErr != nil {
			log.Printf("error rolling back transaction (%s): %v", reason, rbErr)
			return
		}
		log.Printf("rolled back transaction (%s): %v", reason, err)
	}()

	if err = fn(tx); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return errors.Wrapf(err, "error committing transaction (%s)", reason)
	}

	return nil
}
