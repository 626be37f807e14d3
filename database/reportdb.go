// Package database stores benchmark reports in a key-value storage.
package database

import (
	"encoding/binary"
	"encoding/json"
	"time"

	"github.com/dmitryelj/SHA256-Benchmark/database/storage"
	_ "github.com/dmitryelj/SHA256-Benchmark/database/storage/ldbstorage"
	"github.com/pkg/errors"
)

var reportPrefix = []byte("report/")

// ReportDB keeps reports keyed by the time they were taken.
type ReportDB struct {
	stor storage.Storage
}

// OpenReportDB opens, creating if needed, a report database of the given
// storage type at path.
func OpenReportDB(dbtype, path string) (*ReportDB, error) {
	stor, err := storage.OpenStorage(dbtype, path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s storage at %s", dbtype, path)
	}
	return &ReportDB{stor: stor}, nil
}

func (db *ReportDB) Close() error {
	return db.stor.Close()
}

func reportKey(at time.Time) []byte {
	key := make([]byte, len(reportPrefix)+8)
	copy(key, reportPrefix)
	binary.BigEndian.PutUint64(key[len(reportPrefix):], uint64(at.UnixNano()))
	return key
}

// Put stores v as JSON under at. A report already stored under the same
// instant is replaced.
func (db *ReportDB) Put(at time.Time, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return errors.Wrap(err, "encode report")
	}
	return db.stor.Put(reportKey(at), data)
}

// Get decodes the report stored under at into v.
func (db *ReportDB) Get(at time.Time, v interface{}) error {
	data, err := db.stor.Get(reportKey(at))
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

// List calls fn with up to limit reports, newest first. A limit of zero
// or less means all of them. Iteration stops at the first error from fn.
func (db *ReportDB) List(limit int, fn func(at time.Time, data []byte) error) error {
	it := db.stor.NewIterator(storage.BytesPrefix(reportPrefix))
	defer it.Release()

	n := 0
	for ok := it.Last(); ok; ok = it.Prev() {
		if limit > 0 && n >= limit {
			break
		}
		key := it.Key()
		if len(key) != len(reportPrefix)+8 {
			return storage.ErrInvalidKey
		}
		at := time.Unix(0, int64(binary.BigEndian.Uint64(key[len(reportPrefix):])))
		if err := fn(at, it.Value()); err != nil {
			return err
		}
		n++
	}
	return it.Error()
}

// Count returns the number of stored reports.
func (db *ReportDB) Count() (int, error) {
	n := 0
	err := db.List(0, func(time.Time, []byte) error {
		n++
		return nil
	})
	return n, err
}

// Prune deletes all but the newest keep reports in one batch and returns
// how many were deleted.
func (db *ReportDB) Prune(keep int) (int, error) {
	if keep < 0 {
		return 0, storage.ErrInvalidArgument
	}
	it := db.stor.NewIterator(storage.BytesPrefix(reportPrefix))
	defer it.Release()

	batch := db.stor.NewBatch()
	n := 0
	for ok := it.Last(); ok; ok = it.Prev() {
		n++
		if n <= keep {
			continue
		}
		if err := batch.Delete(it.Key()); err != nil {
			return 0, err
		}
	}
	if err := it.Error(); err != nil {
		return 0, err
	}
	if batch.Len() == 0 {
		return 0, nil
	}
	if err := db.stor.Write(batch); err != nil {
		return 0, errors.Wrap(err, "delete reports")
	}
	return batch.Len(), nil
}
