package storage

import (
	"fmt"
	"io/ioutil"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"quadvote.io/quadvote/lib/common"
	"quadvote.io/quadvote/lib/errors"
)

func TestLevelDBBackendInitFileStorage(t *testing.T) {
	path, _ := ioutil.TempDir("", "quadvote")
	defer CleanDB(path)

	st := &LevelDBBackend{}
	defer st.Close()

	config, err := NewConfigFromString(fmt.Sprintf("file://%s", path))
	require.Nil(t, err)
	require.Nil(t, st.Init(config))
}

func TestLevelDBBackendInitMemStorage(t *testing.T) {
	st, err := NewTestMemoryLevelDBBackend()
	require.Nil(t, err)
	defer st.Close()
}

func TestLevelDBBackendNewGetSetRemove(t *testing.T) {
	st, _ := NewTestMemoryLevelDBBackend()
	defer st.Close()

	key := uuid.New().String()
	input := map[string]string{"showme": "99"}

	require.Nil(t, st.New(key, input))
	require.Equal(t, errors.StorageRecordAlreadyExists, st.New(key, input))

	var fetched map[string]string
	require.Nil(t, st.Get(key, &fetched))
	require.Equal(t, input, fetched)

	input["showme"] = "91"
	require.Nil(t, st.Set(key, input))
	require.Nil(t, st.Get(key, &fetched))
	require.Equal(t, "91", fetched["showme"])

	require.Nil(t, st.Remove(key))
	exists, err := st.Has(key)
	require.Nil(t, err)
	require.False(t, exists)

	require.Equal(t, errors.StorageRecordDoesNotExist, st.Remove(key))
	require.Equal(t, errors.StorageRecordDoesNotExist, st.Set(key, input))
}

func TestLevelDBBackendIterator(t *testing.T) {
	st, _ := NewTestMemoryLevelDBBackend()
	defer st.Close()

	var keys []string
	for i := 0; i < 10; i++ {
		key := fmt.Sprintf("iter-%03d", i)
		require.Nil(t, st.New(key, i))
		keys = append(keys, key)
	}
	require.Nil(t, st.New("other-000", 99))

	var fetched []string
	iterFunc, closeFunc := st.GetIterator("iter-", nil)
	for {
		item, hasNext := iterFunc()
		if !hasNext {
			break
		}
		fetched = append(fetched, string(item.Key))
	}
	closeFunc()

	require.Equal(t, keys, fetched)
}

func TestLevelDBBackendIteratorReverseAndLimit(t *testing.T) {
	st, _ := NewTestMemoryLevelDBBackend()
	defer st.Close()

	for i := 0; i < 10; i++ {
		require.Nil(t, st.New(fmt.Sprintf("iter-%03d", i), i))
	}

	options := NewDefaultListOptions(true, nil, 3)
	var fetched []string
	iterFunc, closeFunc := st.GetIterator("iter-", options)
	for {
		item, hasNext := iterFunc()
		if !hasNext {
			break
		}
		fetched = append(fetched, string(item.Key))
	}
	closeFunc()

	require.Equal(t, []string{"iter-009", "iter-008", "iter-007"}, fetched)
}

func TestLevelDBBackendTransaction(t *testing.T) {
	st, _ := NewTestMemoryLevelDBBackend()
	defer st.Close()

	ts, err := st.OpenTransaction()
	require.Nil(t, err)
	require.Nil(t, ts.New("tx-commit", "ok"))
	require.Nil(t, ts.Commit())

	exists, _ := st.Has("tx-commit")
	require.True(t, exists)

	ts, err = st.OpenTransaction()
	require.Nil(t, err)
	require.Nil(t, ts.New("tx-discard", "dropped"))
	require.Nil(t, ts.Discard())

	exists, _ = st.Has("tx-discard")
	require.False(t, exists)
}

type saveRecord struct {
	Name  string `json:"name"`
	Value uint64 `json:"value"`
}

func (r *saveRecord) Serialize() ([]byte, error) {
	return common.EncodeJSONValue(r)
}

// records serialize themselves through common.EncodeJSONValue; the backend
// must resolve the Serializable dispatch itself so the delegation terminates.
func TestLevelDBBackendSerializableValue(t *testing.T) {
	st, _ := NewTestMemoryLevelDBBackend()
	defer st.Close()

	rec := &saveRecord{Name: "showme", Value: 99}
	require.Nil(t, st.New("rec-showme", rec))
	require.Nil(t, st.Set("rec-showme", rec))

	var fetched saveRecord
	require.Nil(t, st.Get("rec-showme", &fetched))
	require.Equal(t, *rec, fetched)

	require.Nil(t, st.News(Item{Key: "rec-batch", Value: rec}))
	require.Nil(t, st.Sets(Item{Key: "rec-batch", Value: rec}))
}
