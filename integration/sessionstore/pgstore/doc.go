// Package pgstore implements session.Store on PostgreSQL with pgx.
//
// Sessions are stored as JSONB rows keyed by ID. Store also implements
// session.ExpiredCleaner, so session.Manager.Cleanup removes expired rows:
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	if _, err := pool.Exec(ctx, pgstore.Schema); err != nil {
//		return err
//	}
//	store, err := pgstore.New(pool)
//	if err != nil {
//		return err
//	}
//	mgr := session.NewManager(store)
//
// Schema creates the default "sessions" table. Use WithTable for another name and
// create the table yourself with the same columns.
package pgstore
