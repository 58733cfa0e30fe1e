// Package store persists royalty contract snapshots and purchase
// receipts in a bbolt database. Values are gob-encoded; receipts are
// journaled under composite tag+sequence keys so one database can hold
// any number of contracts side by side.
package store

import (
	"bytes"
	"encoding/binary"
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"

	"go.etcd.io/bbolt"

	"github.com/TaleDAO/ContractRoyalty/royalty"
)

var (
	bucketSnapshots = []byte("snapshots")
	bucketReceipts  = []byte("receipts")
)

// BoltStore wraps a bbolt database holding contract state.
type BoltStore struct {
	db *bbolt.DB
}

// Open opens or creates the bbolt database at dbPath. The parent
// directory is created if it does not exist.
func Open(dbPath string) (*BoltStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0700); err != nil {
		return nil, fmt.Errorf("store: create directory: %w", err)
	}
	db, err := bbolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("store: open bolt db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		for _, name := range [][]byte{bucketSnapshots, bucketReceipts} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return fmt.Errorf("store: create bucket %q: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("store: create buckets: %w", err)
	}

	return &BoltStore{db: db}, nil
}

// Close closes the underlying database.
func (s *BoltStore) Close() error { return s.db.Close() }

// SaveSnapshot stores snap under the contract tag, overwriting any
// previous snapshot for that tag.
func (s *BoltStore) SaveSnapshot(tag string, snap *royalty.Snapshot) error {
	if snap == nil {
		return fmt.Errorf("%w: snapshot", ErrNilParam)
	}
	if tag == "" {
		return ErrEmptyTag
	}

	data, err := encodeGob(snap)
	if err != nil {
		return fmt.Errorf("store: encode snapshot: %w", err)
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		if err := tx.Bucket(bucketSnapshots).Put([]byte(tag), data); err != nil {
			return fmt.Errorf("store: put snapshot: %w", err)
		}
		return nil
	})
}

// LoadSnapshot retrieves the snapshot stored under the contract tag.
func (s *BoltStore) LoadSnapshot(tag string) (*royalty.Snapshot, error) {
	if tag == "" {
		return nil, ErrEmptyTag
	}

	var snap royalty.Snapshot
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketSnapshots).Get([]byte(tag))
		if data == nil {
			return ErrSnapshotNotFound
		}
		if err := decodeGob(data, &snap); err != nil {
			return fmt.Errorf("store: decode snapshot: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &snap, nil
}

// AppendReceipt journals one purchase receipt for the contract tag.
func (s *BoltStore) AppendReceipt(tag string, rec royalty.PurchaseRecord) error {
	if tag == "" {
		return ErrEmptyTag
	}

	data, err := encodeGob(&rec)
	if err != nil {
		return fmt.Errorf("store: encode receipt: %w", err)
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketReceipts)
		seq, err := b.NextSequence()
		if err != nil {
			return fmt.Errorf("store: receipt sequence: %w", err)
		}
		if err := b.Put(receiptKey(tag, seq), data); err != nil {
			return fmt.Errorf("store: put receipt: %w", err)
		}
		return nil
	})
}

// Receipts returns all journaled receipts for the contract tag, oldest
// first.
func (s *BoltStore) Receipts(tag string) ([]royalty.PurchaseRecord, error) {
	if tag == "" {
		return nil, ErrEmptyTag
	}

	prefix := receiptPrefix(tag)
	var recs []royalty.PurchaseRecord
	err := s.db.View(func(tx *bbolt.Tx) error {
		c := tx.Bucket(bucketReceipts).Cursor()
		for k, v := c.Seek(prefix); k != nil && bytes.HasPrefix(k, prefix); k, v = c.Next() {
			var rec royalty.PurchaseRecord
			if err := decodeGob(v, &rec); err != nil {
				return fmt.Errorf("store: decode receipt: %w", err)
			}
			recs = append(recs, rec)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return recs, nil
}

// receiptPrefix builds the key prefix for a contract's receipt journal.
// The separator keeps one tag from matching another tag's prefix.
func receiptPrefix(tag string) []byte {
	return append([]byte(tag), 0x00)
}

// receiptKey appends a big-endian sequence number so a cursor walks
// receipts in insertion order.
func receiptKey(tag string, seq uint64) []byte {
	k := receiptPrefix(tag)
	k = binary.BigEndian.AppendUint64(k, seq)
	return k
}

// encodeGob serializes a value using gob encoding.
func encodeGob(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// decodeGob deserializes gob-encoded data into a value.
func decodeGob(data []byte, v interface{}) error {
	return gob.NewDecoder(bytes.NewReader(data)).Decode(v)
}
