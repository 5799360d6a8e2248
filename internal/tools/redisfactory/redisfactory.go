package redisfactory

import (
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

// Sessions and the responses cache live on separate connections so the
// cache can be flushed or resized without touching live sessions.

type Factory struct {
	sessions       *redis.Client
	responsesCache *redis.Client
}

func New() *Factory {
	opt, err := redis.ParseURL(os.Getenv("SESSIONS_REDIS_URI"))
	if err != nil {
		panic(err)
	}

	opt.DialTimeout = 4 * time.Second
	opt.ReadTimeout = 3 * time.Second
	opt.WriteTimeout = 3 * time.Second

	sessions := redis.NewClient(opt)

	opt, err = redis.ParseURL(os.Getenv("RESPONSES_CACHE_REDIS_URI"))
	if err != nil {
		panic(err)
	}

	opt.DialTimeout = 4 * time.Second
	opt.ReadTimeout = 3 * time.Second
	opt.WriteTimeout = 3 * time.Second

	responsesCache := redis.NewClient(opt)

	return &Factory{
		sessions:       sessions,
		responsesCache: responsesCache,
	}
}

func (f *Factory) SessionsClient() *redis.Client {
	return f.sessions
}

func (f *Factory) ResponsesCacheClient() *redis.Client {
	return f.responsesCache
}
