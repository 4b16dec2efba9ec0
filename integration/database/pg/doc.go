// Package pg opens pgx connection pools with retry and health checking.
//
//	var cfg pg.Config
//	config.MustLoad(&cfg)
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer pool.Close()
//
// Connect applies the pool limits from Config and pings the server, retrying with
// exponential backoff. Healthcheck returns a ping function for readiness endpoints.
//
// WithTx and TxFromContext carry a pgx.Tx through a context, so stores can join a
// transaction started by the caller:
//
//	tx, _ := pool.Begin(ctx)
//	ctx = pg.WithTx(ctx, tx)
//	_ = store.Save(ctx, sess) // runs inside tx
//	_ = tx.Commit(ctx)
//
// IsNotFoundError and IsDuplicateKeyError classify common pgx errors.
package pg
