// Package storage is a small key-value abstraction with pluggable
// drivers. A driver registers itself under a type name from its init
// function; callers pick it by name through OpenStorage.
package storage

import (
	"errors"
)

var (
	ErrDbUnknownType   = errors.New("non-existent database type")
	ErrInvalidKey      = errors.New("invalid key")
	ErrInvalidBatch    = errors.New("invalid batch")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrNotFound        = errors.New("not found")
)

// Range selects keys k with Start <= k < Limit. A nil Limit is unbounded.
type Range struct {
	Start []byte
	Limit []byte
}

// BytesPrefix returns the key range of every key starting with prefix.
func BytesPrefix(prefix []byte) *Range {
	var limit []byte
	for i := len(prefix) - 1; i >= 0; i-- {
		if c := prefix[i]; c < 0xff {
			limit = make([]byte, i+1)
			copy(limit, prefix)
			limit[i] = c + 1
			break
		}
	}
	return &Range{Start: prefix, Limit: limit}
}

// Iterator walks a key range in either direction. Key and Value return
// copies that stay valid after the iterator moves.
type Iterator interface {
	First() bool
	Last() bool
	Next() bool
	Prev() bool
	Key() []byte
	Value() []byte
	Error() error
	Release()
}

// Batch collects writes applied atomically by Storage.Write.
type Batch interface {
	Put(key, value []byte) error
	Delete(key []byte) error
	Len() int
	Reset()
}

type Storage interface {
	// Get returns ErrNotFound if key does not exist.
	Get(key []byte) ([]byte, error)
	Put(key, value []byte) error
	NewBatch() Batch
	Write(batch Batch) error
	NewIterator(r *Range) Iterator
	Close() error
}

// Driver opens storages of one type.
type Driver struct {
	DbType string
	Open   func(path string) (Storage, error)
}

var drivers = make(map[string]Driver)

// RegisterDriver makes a driver available to OpenStorage. The first
// registration of a type wins.
func RegisterDriver(drv Driver) {
	if _, ok := drivers[drv.DbType]; !ok {
		drivers[drv.DbType] = drv
	}
}

// OpenStorage opens the storage of type dbtype at path, creating it if
// missing.
func OpenStorage(dbtype, path string) (Storage, error) {
	drv, ok := drivers[dbtype]
	if !ok {
		return nil, ErrDbUnknownType
	}
	return drv.Open(path)
}

// RegisteredDbTypes returns the registered type names in no particular
// order.
func RegisteredDbTypes() []string {
	types := make([]string, 0, len(drivers))
	for tp := range drivers {
		types = append(types, tp)
	}
	return types
}
