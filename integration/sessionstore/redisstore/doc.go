// Package redisstore implements session.Store on Redis.
//
// Sessions are stored as encoded blobs under "<prefix><session id>" with a key TTL equal
// to the time left until the session expires. Expired sessions disappear on their own,
// so Store does not implement session.ExpiredCleaner.
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	mgr := session.NewManager(redisstore.New(client, redisstore.WithPrefix("app:sess:")))
package redisstore
