package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.etcd.io/bbolt"
)

var (
	refreshBucket   = []byte("RefreshTokens")
	blacklistBucket = []byte("AccessBlacklist")
)

// BoltTokenStore keeps tokens in an embedded bbolt file. It is used when no
// redis is configured so that sessions survive restarts of a single node.
type BoltTokenStore struct {
	db  *bbolt.DB
	now func() time.Time
}

var _ TokenStoreInterface = (*BoltTokenStore)(nil)

// OpenBoltTokenStore opens (or creates) the token database at path.
func OpenBoltTokenStore(path string) (*BoltTokenStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create token db dir: %w", err)
	}
	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open token db: %w", err)
	}
	err = db.Update(func(tx *bbolt.Tx) error {
		for _, b := range [][]byte{refreshBucket, blacklistBucket} {
			if _, err := tx.CreateBucketIfNotExists(b); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create token buckets: %w", err)
	}
	return &BoltTokenStore{db: db, now: time.Now}, nil
}

// Close closes the database file.
func (s *BoltTokenStore) Close() error {
	return s.db.Close()
}

func (s *BoltTokenStore) put(bucket []byte, key string, data refreshTokenData) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal token data: %w", err)
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucket).Put([]byte(key), payload)
	})
}

func (s *BoltTokenStore) get(bucket []byte, key string) (*refreshTokenData, error) {
	var data *refreshTokenData
	err := s.db.View(func(tx *bbolt.Tx) error {
		v := tx.Bucket(bucket).Get([]byte(key))
		if v == nil {
			return nil
		}
		var d refreshTokenData
		if err := json.Unmarshal(v, &d); err != nil {
			return fmt.Errorf("unmarshal token data: %w", err)
		}
		data = &d
		return nil
	})
	if err != nil {
		return nil, err
	}
	if data == nil || !data.ExpiresAt.After(s.now()) {
		return nil, nil
	}
	return data, nil
}

// StoreRefreshToken implements TokenStoreInterface.
func (s *BoltTokenStore) StoreRefreshToken(_ context.Context, tokenID, username string, ttl time.Duration) error {
	return s.put(refreshBucket, tokenID, refreshTokenData{Username: username, ExpiresAt: s.now().Add(ttl)})
}

// GetRefreshToken implements TokenStoreInterface.
func (s *BoltTokenStore) GetRefreshToken(_ context.Context, tokenID string) (string, error) {
	data, err := s.get(refreshBucket, tokenID)
	if err != nil {
		return "", err
	}
	if data == nil {
		return "", ErrTokenNotFound
	}
	return data.Username, nil
}

// DeleteRefreshToken implements TokenStoreInterface.
func (s *BoltTokenStore) DeleteRefreshToken(_ context.Context, tokenID string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(refreshBucket).Delete([]byte(tokenID))
	})
}

// BlacklistAccessToken implements TokenStoreInterface.
func (s *BoltTokenStore) BlacklistAccessToken(_ context.Context, tokenID string, ttl time.Duration) error {
	return s.put(blacklistBucket, tokenID, refreshTokenData{ExpiresAt: s.now().Add(ttl)})
}

// IsAccessTokenBlacklisted implements TokenStoreInterface.
func (s *BoltTokenStore) IsAccessTokenBlacklisted(_ context.Context, tokenID string) (bool, error) {
	data, err := s.get(blacklistBucket, tokenID)
	if err != nil {
		return false, nil
	}
	return data != nil, nil
}

// Purge drops expired entries from both buckets and returns how many were removed.
func (s *BoltTokenStore) Purge(_ context.Context) (int, error) {
	now := s.now()
	var removed int
	err := s.db.Update(func(tx *bbolt.Tx) error {
		for _, name := range [][]byte{refreshBucket, blacklistBucket} {
			b := tx.Bucket(name)
			var stale [][]byte
			err := b.ForEach(func(k, v []byte) error {
				var d refreshTokenData
				if json.Unmarshal(v, &d) != nil || !d.ExpiresAt.After(now) {
					stale = append(stale, append([]byte(nil), k...))
				}
				return nil
			})
			if err != nil {
				return err
			}
			for _, k := range stale {
				if err := b.Delete(k); err != nil {
					return err
				}
				removed++
			}
		}
		return nil
	})
	return removed, err
}
