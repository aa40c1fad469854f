package repository

import (
	"context"
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.etcd.io/bbolt"
)

var (
	bucketPayloads  = []byte("payloads")
	bucketCreatedAt = []byte("payloads_created_at")
)

// boltRepository keeps all payloads in a single bbolt file, one bucket
// keyed by id plus a creation-time index for pruning. Still a flat
// file on disk, just one file instead of one per entry.
type boltRepository struct {
	db *bbolt.DB
}

// NewBoltRepository opens or creates the bbolt database at dbPath. The
// parent directory is created if it does not exist.
func NewBoltRepository(dbPath string) (PayloadRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create payload db dir: %w", err)
	}
	db, err := bbolt.Open(dbPath, 0o600, nil)
	if err != nil {
		return nil, fmt.Errorf("open payload db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		for _, name := range [][]byte{bucketPayloads, bucketCreatedAt} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return fmt.Errorf("create bucket %q: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create payload buckets: %w", err)
	}

	return &boltRepository{db: db}, nil
}

func (r *boltRepository) Put(ctx context.Context, body []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	id := NewPayloadID()
	err := r.db.Update(func(tx *bbolt.Tx) error {
		if err := tx.Bucket(bucketPayloads).Put([]byte(id), body); err != nil {
			return err
		}
		return tx.Bucket(bucketCreatedAt).Put([]byte(id), timeKey(time.Now()))
	})
	if err != nil {
		return "", fmt.Errorf("store payload %s: %w", id, err)
	}
	return id, nil
}

func (r *boltRepository) Get(ctx context.Context, id string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !ValidPayloadID(id) {
		return nil, ErrNotFound
	}

	var body []byte
	err := r.db.View(func(tx *bbolt.Tx) error {
		v := tx.Bucket(bucketPayloads).Get([]byte(id))
		if v == nil {
			return ErrNotFound
		}
		body = make([]byte, len(v))
		copy(body, v)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return body, nil
}

func (r *boltRepository) Prune(ctx context.Context, before time.Time) (int, error) {
	cutoff := timeKey(before)
	removed := 0

	err := r.db.Update(func(tx *bbolt.Tx) error {
		payloads := tx.Bucket(bucketPayloads)
		created := tx.Bucket(bucketCreatedAt)

		c := created.Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			if len(v) != 8 || string(v) >= string(cutoff) {
				continue
			}
			if err := payloads.Delete(k); err != nil {
				return err
			}
			if err := c.Delete(); err != nil {
				return err
			}
			removed++
		}
		return nil
	})
	return removed, err
}

func (r *boltRepository) Close() error { return r.db.Close() }

// timeKey encodes a timestamp as 8 big-endian bytes so byte order
// matches chronological order.
func timeKey(t time.Time) []byte {
	k := make([]byte, 8)
	binary.BigEndian.PutUint64(k, uint64(t.UnixNano()))
	return k
}
