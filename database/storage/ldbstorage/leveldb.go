// Package ldbstorage registers goleveldb drivers with package storage.
package ldbstorage

import (
	"github.com/dmitryelj/SHA256-Benchmark/database/storage"
	"github.com/dmitryelj/SHA256-Benchmark/logging"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/filter"
	"github.com/syndtr/goleveldb/leveldb/iterator"
	"github.com/syndtr/goleveldb/leveldb/opt"
	ldbstorage "github.com/syndtr/goleveldb/leveldb/storage"
	"github.com/syndtr/goleveldb/leveldb/util"
)

const (
	// TypeLevelDB keeps data in a directory on disk.
	TypeLevelDB = "leveldb"
	// TypeMemLevelDB keeps data in memory; the path is ignored.
	TypeMemLevelDB = "memleveldb"
)

func init() {
	storage.RegisterDriver(storage.Driver{DbType: TypeLevelDB, Open: OpenDB})
	storage.RegisterDriver(storage.Driver{DbType: TypeMemLevelDB, Open: OpenMemDB})
}

// Reports are small and few, so the caches stay modest.
func options() *opt.Options {
	return &opt.Options{
		Filter:             filter.NewBloomFilter(10),
		WriteBuffer:        1 * opt.MiB,
		BlockCacheCapacity: 2 * opt.MiB,
	}
}

// OpenDB opens or creates a leveldb database in path.
func OpenDB(path string) (storage.Storage, error) {
	db, err := leveldb.OpenFile(path, options())
	if err != nil {
		logging.CPrint(logging.ERROR, "open leveldb failed", logging.LogFormat{
			"path": path,
			"err":  err,
		})
		return nil, err
	}
	logging.VPrint(logging.DEBUG, "leveldb opened", logging.LogFormat{"path": path})
	return &levelDB{db: db}, nil
}

// OpenMemDB opens a leveldb database backed by memory.
func OpenMemDB(string) (storage.Storage, error) {
	db, err := leveldb.Open(ldbstorage.NewMemStorage(), options())
	if err != nil {
		return nil, err
	}
	return &levelDB{db: db}, nil
}

type levelDB struct {
	db *leveldb.DB
}

func (l *levelDB) Get(key []byte) ([]byte, error) {
	value, err := l.db.Get(key, nil)
	if err == leveldb.ErrNotFound {
		return nil, storage.ErrNotFound
	}
	return value, err
}

func (l *levelDB) Put(key, value []byte) error {
	if len(key) == 0 {
		return storage.ErrInvalidKey
	}
	return l.db.Put(key, value, nil)
}

func (l *levelDB) NewBatch() storage.Batch {
	return &levelBatch{new(leveldb.Batch)}
}

func (l *levelDB) Write(batch storage.Batch) error {
	lb, ok := batch.(*levelBatch)
	if !ok {
		return storage.ErrInvalidBatch
	}
	return l.db.Write(lb.Batch, nil)
}

func (l *levelDB) NewIterator(r *storage.Range) storage.Iterator {
	var slice *util.Range
	if r != nil {
		slice = &util.Range{Start: r.Start, Limit: r.Limit}
	}
	return &levelIterator{l.db.NewIterator(slice, nil)}
}

func (l *levelDB) Close() error {
	return l.db.Close()
}

// levelBatch rejects empty keys, which leveldb would otherwise accept.
type levelBatch struct {
	*leveldb.Batch
}

func (b *levelBatch) Put(key, value []byte) error {
	if len(key) == 0 {
		return storage.ErrInvalidKey
	}
	b.Batch.Put(key, value)
	return nil
}

func (b *levelBatch) Delete(key []byte) error {
	if len(key) == 0 {
		return storage.ErrInvalidKey
	}
	b.Batch.Delete(key)
	return nil
}

type levelIterator struct {
	iterator.Iterator
}

func (it *levelIterator) Key() []byte {
	return append([]byte(nil), it.Iterator.Key()...)
}

func (it *levelIterator) Value() []byte {
	return append([]byte(nil), it.Iterator.Value()...)
}
