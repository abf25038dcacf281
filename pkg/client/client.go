package client

import (
	"context"
	"time"

	"futsal/pkg/logger"

	"github.com/cenkalti/backoff/v4"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Client holds the connections shared by every component of a process.
// Redis is nil when it is not configured.
type Client struct {
	Mongo *mongo.Client
	Redis *redis.Client
}

func NewClient() *Client {
	return &Client{}
}

// retryPolicy keeps retrying a failed dial for a few connect timeouts so the
// service survives a database that is still starting up.
func retryPolicy(ctx context.Context, connTimeout time.Duration) backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 500 * time.Millisecond
	b.MaxInterval = 5 * time.Second
	b.MaxElapsedTime = 3 * connTimeout
	return backoff.WithContext(b, ctx)
}

func (c *Client) SetMongo(log *logger.Logger, mongoURI string, mongoConnTimeout time.Duration) {
	client, err := ConnectMongo(context.Background(), log, mongoURI, mongoConnTimeout)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB", "error", err)
	}
	c.Mongo = client
}

func ConnectMongo(ctx context.Context, log *logger.Logger, mongoURI string, connTimeout time.Duration) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().
		ApplyURI(mongoURI).
		SetConnectTimeout(connTimeout).
		SetServerSelectionTimeout(connTimeout))
	if err != nil {
		return nil, backoff.Permanent(err)
	}

	ping := func() error {
		pingCtx, cancel := context.WithTimeout(ctx, connTimeout)
		defer cancel()
		return client.Ping(pingCtx, nil)
	}
	notify := func(err error, wait time.Duration) {
		log.Warn("MongoDB not reachable yet, retrying", "error", err, "retry_in", wait)
	}

	if err := backoff.RetryNotify(ping, retryPolicy(ctx, connTimeout), notify); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	log.Info("Successfully connected to MongoDB")
	return client, nil
}

func (c *Client) SetRedis(log *logger.Logger, addr, password string, db int, connTimeout time.Duration) {
	client, err := ConnectRedis(context.Background(), log, &redis.Options{
		Addr:        addr,
		Password:    password,
		DB:          db,
		DialTimeout: connTimeout,
	}, connTimeout)
	if err != nil {
		log.Fatal("Failed to connect to Redis", "error", err, "addr", addr)
	}
	c.Redis = client
}

func ConnectRedis(ctx context.Context, log *logger.Logger, opts *redis.Options, connTimeout time.Duration) (*redis.Client, error) {
	client := redis.NewClient(opts)

	ping := func() error {
		pingCtx, cancel := context.WithTimeout(ctx, connTimeout)
		defer cancel()
		return client.Ping(pingCtx).Err()
	}
	notify := func(err error, wait time.Duration) {
		log.Warn("Redis not reachable yet, retrying", "error", err, "retry_in", wait)
	}

	if err := backoff.RetryNotify(ping, retryPolicy(ctx, connTimeout), notify); err != nil {
		_ = client.Close()
		return nil, err
	}

	log.Info("Successfully connected to Redis", "addr", opts.Addr)
	return client, nil
}

func (c *Client) GracefulShutdown(log *logger.Logger, timeout time.Duration) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			log.Error("Failed to close Redis connection", "error", err)
		} else {
			log.Info("Redis connection closed")
		}
	}

	if c.Mongo != nil {
		if err := c.Mongo.Disconnect(ctx); err != nil {
			log.Error("Failed to disconnect from MongoDB", "error", err)
		} else {
			log.Info("MongoDB connection closed")
		}
	}
}
