package storage

import (
	"fmt"

	"github.com/syndtr/goleveldb/leveldb"
	leveldbIterator "github.com/syndtr/goleveldb/leveldb/iterator"
	leveldbOpt "github.com/syndtr/goleveldb/leveldb/opt"
	leveldbStorage "github.com/syndtr/goleveldb/leveldb/storage"
	leveldbUtil "github.com/syndtr/goleveldb/leveldb/util"

	"quadvote.io/quadvote/lib/common"
	"quadvote.io/quadvote/lib/errors"
)

type LevelDBCore interface {
	Has([]byte, *leveldbOpt.ReadOptions) (bool, error)
	Get([]byte, *leveldbOpt.ReadOptions) ([]byte, error)
	NewIterator(*leveldbUtil.Range, *leveldbOpt.ReadOptions) leveldbIterator.Iterator
	Put([]byte, []byte, *leveldbOpt.WriteOptions) error
	Write(*leveldb.Batch, *leveldbOpt.WriteOptions) error
	Delete([]byte, *leveldbOpt.WriteOptions) error
}

type LevelDBBackend struct {
	DB *leveldb.DB

	Core LevelDBCore
}

func NewStorage(config *Config) (st *LevelDBBackend, err error) {
	st = &LevelDBBackend{}
	if err = st.Init(config); err != nil {
		return nil, err
	}

	return
}

func setLevelDBCoreError(err error) error {
	if err == nil {
		return nil
	}

	return errors.New(
		errors.StorageCoreError.Code,
		fmt.Sprintf("%s: %s", errors.StorageCoreError.Message, err.Error()),
	)
}

func (st *LevelDBBackend) Init(config *Config) (err error) {
	var db *leveldb.DB

	switch config.Scheme {
	case "file":
		if db, err = leveldb.OpenFile(config.Path, nil); err != nil {
			err = setLevelDBCoreError(err)
			return
		}
	case "memory":
		sto := leveldbStorage.NewMemStorage()
		if db, err = leveldb.Open(sto, nil); err != nil {
			err = setLevelDBCoreError(err)
			return
		}
	default:
		err = fmt.Errorf("unsupported storage scheme, '%s'", config.Scheme)
		return
	}

	st.DB = db
	st.Core = db

	return
}

func (st *LevelDBBackend) Close() error {
	return st.DB.Close()
}

// OpenTransaction returns a new backend whose writes are staged until
// `Commit`; `Discard` drops them. Every voting engine operation runs inside
// one, so either all of its mutations land or none do.
func (st *LevelDBBackend) OpenTransaction() (*LevelDBBackend, error) {
	if _, ok := st.Core.(*leveldb.Transaction); ok {
		return nil, setLevelDBCoreError(fmt.Errorf("this is already *leveldb.Transaction"))
	}

	transaction, err := st.Core.(*leveldb.DB).OpenTransaction()
	if err != nil {
		return nil, setLevelDBCoreError(err)
	}

	return &LevelDBBackend{
		DB:   st.DB,
		Core: transaction,
	}, nil
}

func (st *LevelDBBackend) Discard() error {
	ts, ok := st.Core.(*leveldb.Transaction)
	if !ok {
		return setLevelDBCoreError(fmt.Errorf("this is not *leveldb.Transaction"))
	}

	ts.Discard()
	return nil
}

func (st *LevelDBBackend) Commit() error {
	ts, ok := st.Core.(*leveldb.Transaction)
	if !ok {
		return setLevelDBCoreError(fmt.Errorf("this is not *leveldb.Transaction"))
	}

	return setLevelDBCoreError(ts.Commit())
}

func (st *LevelDBBackend) makeKey(key string) []byte {
	return []byte(key)
}

func encodeValue(v interface{}) ([]byte, error) {
	if serializable, ok := v.(common.Serializable); ok {
		return serializable.Serialize()
	}

	return common.EncodeJSONValue(v)
}

func (st *LevelDBBackend) Has(k string) (bool, error) {
	ok, err := st.Core.Has(st.makeKey(k), nil)
	if err != nil {
		if err == leveldb.ErrNotFound {
			return false, nil
		}
		return false, setLevelDBCoreError(err)
	}

	return ok, nil
}

func (st *LevelDBBackend) GetRaw(k string) (b []byte, err error) {
	var exists bool
	if exists, err = st.Has(k); err != nil || !exists {
		if !exists {
			err = errors.StorageRecordDoesNotExist
		}
		return
	}

	b, err = st.Core.Get(st.makeKey(k), nil)
	err = setLevelDBCoreError(err)

	return
}

func (st *LevelDBBackend) Get(k string, i interface{}) (err error) {
	var b []byte
	if b, err = st.GetRaw(k); err != nil {
		return
	}

	if err = common.DecodeJSONValue(b, i); err != nil {
		err = setLevelDBCoreError(err)
		return
	}

	return
}

func (st *LevelDBBackend) New(k string, v interface{}) (err error) {
	var encoded []byte
	if encoded, err = encodeValue(v); err != nil {
		err = setLevelDBCoreError(err)
		return
	}

	var exists bool
	if exists, err = st.Has(k); exists || err != nil {
		if exists {
			err = errors.StorageRecordAlreadyExists
		}
		return
	}

	err = setLevelDBCoreError(st.Core.Put(st.makeKey(k), encoded, nil))

	return
}

func (st *LevelDBBackend) News(vs ...Item) (err error) {
	if len(vs) < 1 {
		err = setLevelDBCoreError(fmt.Errorf("empty values"))
		return
	}

	var exists bool
	for _, v := range vs {
		if exists, err = st.Has(v.Key); exists || err != nil {
			if exists {
				err = errors.StorageRecordAlreadyExists
			}
			return
		}
	}

	batch := new(leveldb.Batch)
	for _, v := range vs {
		var encoded []byte
		if encoded, err = encodeValue(v.Value); err != nil {
			err = setLevelDBCoreError(err)
			return
		}

		batch.Put(st.makeKey(v.Key), encoded)
	}

	err = setLevelDBCoreError(st.Core.Write(batch, nil))

	return
}

func (st *LevelDBBackend) Set(k string, v interface{}) (err error) {
	var encoded []byte
	if encoded, err = encodeValue(v); err != nil {
		err = setLevelDBCoreError(err)
		return
	}

	var exists bool
	if exists, err = st.Has(k); !exists || err != nil {
		if !exists {
			err = errors.StorageRecordDoesNotExist
		}
		return
	}

	err = setLevelDBCoreError(st.Core.Put(st.makeKey(k), encoded, nil))

	return
}

func (st *LevelDBBackend) Sets(vs ...Item) (err error) {
	if len(vs) < 1 {
		err = setLevelDBCoreError(fmt.Errorf("empty values"))
		return
	}

	var exists bool
	for _, v := range vs {
		if exists, err = st.Has(v.Key); !exists || err != nil {
			if !exists {
				err = errors.StorageRecordDoesNotExist
			}
			return
		}
	}

	batch := new(leveldb.Batch)
	for _, v := range vs {
		var encoded []byte
		if encoded, err = encodeValue(v.Value); err != nil {
			err = setLevelDBCoreError(err)
			return
		}

		batch.Put(st.makeKey(v.Key), encoded)
	}

	err = setLevelDBCoreError(st.Core.Write(batch, nil))

	return
}

func (st *LevelDBBackend) Remove(k string) (err error) {
	var exists bool
	if exists, err = st.Has(k); !exists || err != nil {
		if !exists {
			err = errors.StorageRecordDoesNotExist
		}
		return
	}

	err = setLevelDBCoreError(st.Core.Delete(st.makeKey(k), nil))

	return
}

func (st *LevelDBBackend) GetIterator(prefix string, option ListOptions) (func() (IterItem, bool), func()) {
	var reverse = false
	var cursor []byte
	var limit uint64 = 0
	if option != nil {
		reverse = option.Reverse()
		cursor = option.Cursor()
		limit = option.Limit()
	}

	var dbRange *leveldbUtil.Range
	if len(prefix) > 0 {
		dbRange = leveldbUtil.BytesPrefix(st.makeKey(prefix))
	}

	iter := st.Core.NewIterator(dbRange, nil)

	var funcNext func() bool
	if reverse {
		if len(cursor) > 0 {
			iter.Seek(cursor)
			funcNext = iter.Prev
		} else {
			funcNext = func() bool { return iter.Last() }
		}
	} else {
		if len(cursor) > 0 {
			iter.Seek(cursor)
			funcNext = iter.Next
		} else {
			funcNext = func() bool { return iter.First() }
		}
	}

	var n int64
	return func() (IterItem, bool) {
			if !funcNext() {
				return IterItem{}, false
			}
			if limit != 0 && uint64(n) >= limit {
				return IterItem{}, false
			}

			key := make([]byte, len(iter.Key()))
			copy(key, iter.Key())
			value := make([]byte, len(iter.Value()))
			copy(value, iter.Value())

			item := IterItem{N: n, Key: key, Value: value}
			n++

			if reverse {
				funcNext = iter.Prev
			} else {
				funcNext = iter.Next
			}

			return item, true
		}, func() {
			iter.Release()
		}
}
