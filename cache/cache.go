package cache

import (
	"encoding/json"
	"time"

	"github.com/ctrl-sk/qr-gen-pro/models"

	"github.com/allegro/bigcache"
)

// RecordCache caches QR code records keyed by short code so the resolver
// can skip the lookup query on hot links. Scan writes always go to the
// database regardless of cache hits.
type RecordCache interface {
	Set(key string, value models.QRCode) error
	Get(key string) (models.QRCode, error)
	Delete(key string) error
	Close() error
}

// BigCacheStore is an in-process RecordCache on BigCache. It is the default
// when no Redis address is configured, and what the tests run against.
type BigCacheStore struct {
	cache *bigcache.BigCache
}

// NewBigCacheStore initializes a new BigCacheStore.
func NewBigCacheStore() (*BigCacheStore, error) {
	config := bigcache.Config{
		Shards:           1024,
		LifeWindow:       10 * time.Minute,
		CleanWindow:      5 * time.Minute,
		MaxEntrySize:     500,
		HardMaxCacheSize: 8192,
		Verbose:          false,
	}
	bc, err := bigcache.NewBigCache(config)
	if err != nil {
		return nil, err
	}
	return &BigCacheStore{cache: bc}, nil
}

// Set stores a record in the cache.
func (b *BigCacheStore) Set(key string, value models.QRCode) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return b.cache.Set(key, data)
}

// Get retrieves a record from the cache.
func (b *BigCacheStore) Get(key string) (models.QRCode, error) {
	data, err := b.cache.Get(key)
	if err != nil {
		return models.QRCode{}, err
	}
	var value models.QRCode
	if err := json.Unmarshal(data, &value); err != nil {
		return models.QRCode{}, err
	}
	return value, nil
}

// Delete removes a record from the cache.
func (b *BigCacheStore) Delete(key string) error {
	return b.cache.Delete(key)
}

// Close stops the cache (BigCache doesn't need explicit closing).
func (b *BigCacheStore) Close() error {
	return nil
}
