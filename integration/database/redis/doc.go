// Package redis opens go-redis clients with connection verification and health checking.
//
// Connect validates the redis:// or rediss:// URL, creates the client and pings it,
// retrying with exponential backoff until the server answers or the attempts run out:
//
//	var cfg redis.Config
//	config.MustLoad(&cfg)
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
//	store := redisstore.New(client)
//
// Configuration is read from the environment:
//
//	REDIS_URL              redis://localhost:6379/0
//	REDIS_RETRY_ATTEMPTS   3
//	REDIS_RETRY_INTERVAL   5s
//	REDIS_CONNECT_TIMEOUT  30s
//
// Healthcheck returns a ping function for readiness endpoints.
//
// # Errors
//
//   - ErrEmptyConnectionURL: no URL configured
//   - ErrFailedToParseRedisConnString: malformed URL or unsupported scheme
//   - ErrRedisNotReady: every ping attempt failed
//   - ErrHealthcheckFailed: the health ping failed
//
// The underlying go-redis error is joined to each of them.
package redis
