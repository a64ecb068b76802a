// This code is available on the terms of the project LICENSE.md file,
// also available online at https://blueoakcouncil.org/license/1.0.0.

// Package bolt implements db.DB on a bbolt key-value file.
package bolt

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/cypherstack/cs-monero/cs"
	"github.com/cypherstack/cs-monero/db"
	bbolt "go.etcd.io/bbolt"
)

var walletsBucket = []byte("wallets")

// DB is a bbolt-backed wallet metadata store.
type DB struct {
	*bbolt.DB
	log cs.Logger
}

var _ db.DB = (*DB)(nil)

// NewDB opens or creates the metadata database at path.
func NewDB(path string, logger cs.Logger) (*DB, error) {
	bdb, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("error opening metadata DB at %s: %w", path, err)
	}
	err = bdb.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(walletsBucket)
		return err
	})
	if err != nil {
		bdb.Close()
		return nil, err
	}
	return &DB{DB: bdb, log: logger}, nil
}

func (d *DB) StoreWalletMeta(meta *db.WalletMeta) error {
	if meta.Name == "" {
		return cs.NewError(cs.ErrBadArguments, "empty wallet name")
	}
	b, err := json.Marshal(meta)
	if err != nil {
		return err
	}
	return d.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(walletsBucket).Put([]byte(meta.Name), b)
	})
}

func (d *DB) WalletMeta(name string) (*db.WalletMeta, error) {
	var meta *db.WalletMeta
	err := d.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(walletsBucket).Get([]byte(name))
		if b == nil {
			return cs.NewError(db.ErrNoWallet, name)
		}
		meta = new(db.WalletMeta)
		return json.Unmarshal(b, meta)
	})
	if err != nil {
		return nil, err
	}
	return meta, nil
}

func (d *DB) SetLastOpened(name string, when time.Time) error {
	return d.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(walletsBucket)
		b := bucket.Get([]byte(name))
		if b == nil {
			return nil
		}
		meta := new(db.WalletMeta)
		if err := json.Unmarshal(b, meta); err != nil {
			return err
		}
		meta.LastOpened = when
		b, err := json.Marshal(meta)
		if err != nil {
			return err
		}
		return bucket.Put([]byte(name), b)
	})
}

func (d *DB) Wallets() ([]*db.WalletMeta, error) {
	var metas []*db.WalletMeta
	err := d.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(walletsBucket).ForEach(func(_, v []byte) error {
			meta := new(db.WalletMeta)
			if err := json.Unmarshal(v, meta); err != nil {
				return err
			}
			metas = append(metas, meta)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return metas, nil
}

func (d *DB) DeleteWalletMeta(name string) error {
	return d.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(walletsBucket).Delete([]byte(name))
	})
}
