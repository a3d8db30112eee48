package inheritance

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.etcd.io/bbolt"
)

var (
	bucketPlans    = []byte("plans")
	bucketActivity = []byte("activity")
)

// Store persists inheritance plans keyed by wallet address.
type Store interface {
	Get(address string) (*Plan, error)
	Put(address string, plan *Plan) error
	Delete(address string) error
	TouchActivity(address string, at time.Time) error
	LastActivity(address string) (time.Time, error)
}

// BoltStore is a bbolt-backed Store.
type BoltStore struct {
	db *bbolt.DB
}

// Compile-time interface check.
var _ Store = (*BoltStore)(nil)

// OpenBoltStore opens or creates the bbolt database at dbPath.
// The parent directory is created if it does not exist.
func OpenBoltStore(dbPath string) (*BoltStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0700); err != nil {
		return nil, fmt.Errorf("inheritance: create directory: %w", err)
	}
	db, err := bbolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("inheritance: open bolt db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		for _, name := range [][]byte{bucketPlans, bucketActivity} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return fmt.Errorf("create bucket %q: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("inheritance: create buckets: %w", err)
	}

	return &BoltStore{db: db}, nil
}

// Close closes the underlying database.
func (s *BoltStore) Close() error { return s.db.Close() }

// Get retrieves the plan for address.
func (s *BoltStore) Get(address string) (*Plan, error) {
	var plan Plan
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketPlans).Get([]byte(address))
		if data == nil {
			return ErrPlanNotFound
		}
		if err := json.Unmarshal(data, &plan); err != nil {
			return fmt.Errorf("inheritance: decode plan: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

// Put stores the plan for address, overwriting any existing one.
func (s *BoltStore) Put(address string, plan *Plan) error {
	if plan == nil {
		return ErrNilPlan
	}
	data, err := json.Marshal(plan)
	if err != nil {
		return fmt.Errorf("inheritance: encode plan: %w", err)
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		if err := tx.Bucket(bucketPlans).Put([]byte(address), data); err != nil {
			return fmt.Errorf("inheritance: put plan: %w", err)
		}
		return nil
	})
}

// Delete removes the plan for address. Returns ErrPlanNotFound if none
// exists.
func (s *BoltStore) Delete(address string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketPlans)
		if b.Get([]byte(address)) == nil {
			return ErrPlanNotFound
		}
		if err := b.Delete([]byte(address)); err != nil {
			return fmt.Errorf("inheritance: delete plan: %w", err)
		}
		return nil
	})
}

// TouchActivity records at as the last wallet activity for address.
func (s *BoltStore) TouchActivity(address string, at time.Time) error {
	data, err := at.UTC().MarshalBinary()
	if err != nil {
		return fmt.Errorf("inheritance: encode activity time: %w", err)
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		if err := tx.Bucket(bucketActivity).Put([]byte(address), data); err != nil {
			return fmt.Errorf("inheritance: put activity: %w", err)
		}
		return nil
	})
}

// LastActivity returns the last recorded activity for address, or the zero
// time if none has been recorded.
func (s *BoltStore) LastActivity(address string) (time.Time, error) {
	var at time.Time
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketActivity).Get([]byte(address))
		if data == nil {
			return nil
		}
		if err := at.UnmarshalBinary(data); err != nil {
			return fmt.Errorf("inheritance: decode activity time: %w", err)
		}
		return nil
	})
	return at, err
}
