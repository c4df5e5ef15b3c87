package badger

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/dgraph-io/badger/v2"

	"github.com/donlabs/feedverify/model/feed"
	"github.com/donlabs/feedverify/storage"
)

// key prefix for configuration records
const codeConfig = 1

// Configs is the badger-backed store of configuration records, keyed by
// config digest.
type Configs struct {
	db *badger.DB
}

var _ storage.Configs = (*Configs)(nil)

func NewConfigs(db *badger.DB) *Configs {
	return &Configs{db: db}
}

// storedOracle is one entry of the persisted oracle mapping: a signer key
// and its ordinal index within the set. The index only fixes the stable
// iteration order used during signature matching.
type storedOracle struct {
	Key   []byte
	Index uint8
}

// storedConfig is the persisted layout of a configuration record.
type storedConfig struct {
	Digest      []byte
	Oracles     []storedOracle
	F           uint8
	Active      bool
	LastUpdated time.Time
}

func toStored(record *feed.ConfigRecord) *storedConfig {
	oracles := make([]storedOracle, len(record.Oracles))
	for i, key := range record.Oracles {
		oracles[i] = storedOracle{
			Key:   append([]byte(nil), key[:]...),
			Index: uint8(i),
		}
	}
	return &storedConfig{
		Digest:      append([]byte(nil), record.Digest[:]...),
		Oracles:     oracles,
		F:           record.F,
		Active:      record.Active,
		LastUpdated: record.LastUpdated,
	}
}

func fromStored(stored *storedConfig) (*feed.ConfigRecord, error) {
	if len(stored.Digest) != feed.DigestLen {
		return nil, fmt.Errorf("stored digest has invalid length %d", len(stored.Digest))
	}
	oracles := append([]storedOracle(nil), stored.Oracles...)
	sort.Slice(oracles, func(i, j int) bool { return oracles[i].Index < oracles[j].Index })
	keys := make([]feed.OracleKey, len(oracles))
	for i, entry := range oracles {
		if len(entry.Key) != feed.PublicKeyLen {
			return nil, fmt.Errorf("stored oracle key %d has invalid length %d", i, len(entry.Key))
		}
		copy(keys[i][:], entry.Key)
	}
	record := &feed.ConfigRecord{
		Oracles:     keys,
		F:           stored.F,
		Active:      stored.Active,
		LastUpdated: stored.LastUpdated,
	}
	copy(record.Digest[:], stored.Digest)
	return record, nil
}

func makeKey(digest feed.ConfigDigest) []byte {
	key := make([]byte, 1+feed.DigestLen)
	key[0] = codeConfig
	copy(key[1:], digest[:])
	return key
}

// Store inserts the record, replacing any record already held under the
// same digest.
func (c *Configs) Store(record *feed.ConfigRecord) error {
	val, err := encodeEntity(toStored(record))
	if err != nil {
		return err
	}
	err = c.db.Update(func(tx *badger.Txn) error {
		return tx.Set(makeKey(record.Digest), val)
	})
	if err != nil {
		return fmt.Errorf("could not store config %s: %w", record.Digest, err)
	}
	return nil
}

// ByDigest returns the record for the given digest, or storage.ErrNotFound.
func (c *Configs) ByDigest(digest feed.ConfigDigest) (*feed.ConfigRecord, error) {
	var record *feed.ConfigRecord
	err := c.db.View(func(tx *badger.Txn) error {
		item, err := tx.Get(makeKey(digest))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return storage.ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("could not load config: %w", err)
		}
		return item.Value(func(val []byte) error {
			var stored storedConfig
			if err := decodeValue(val, &stored); err != nil {
				return err
			}
			record, err = fromStored(&stored)
			return err
		})
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}

// All returns every stored record.
func (c *Configs) All() ([]*feed.ConfigRecord, error) {
	var records []*feed.ConfigRecord
	err := c.db.View(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte{codeConfig}
		it := tx.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				var stored storedConfig
				if err := decodeValue(val, &stored); err != nil {
					return err
				}
				record, err := fromStored(&stored)
				if err != nil {
					return err
				}
				records = append(records, record)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("could not load configs: %w", err)
	}
	return records, nil
}
