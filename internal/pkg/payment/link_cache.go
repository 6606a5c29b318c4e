package payment

import (
	"time"

	"github.com/ManuelReschke/CartFox/internal/pkg/cache"
)

const checkoutLinkTTL = time.Hour

// LinkStore caches checkout URLs per payment reference so a client retrying
// an interrupted checkout gets the same redirect without a new gateway call.
type LinkStore interface {
	Set(key string, value string, expiration time.Duration) error
	Get(key string) (string, error)
	Delete(key string) error
}

// redisLinkStore backs LinkStore with the shared cache connection.
type redisLinkStore struct{}

// NewLinkStore returns the cache-backed checkout link store.
func NewLinkStore() LinkStore {
	return redisLinkStore{}
}

func (redisLinkStore) Set(key, value string, expiration time.Duration) error {
	return cache.Set(key, value, expiration)
}

func (redisLinkStore) Get(key string) (string, error) {
	return cache.Get(key)
}

func (redisLinkStore) Delete(key string) error {
	return cache.Delete(key)
}

func checkoutLinkKey(reference string) string {
	return "paystack:checkout:" + reference
}
