package storage

type IterItem struct {
	N     int64
	Key   []byte
	Value []byte
}

type Item struct {
	Key   string
	Value interface{}
}

type DBBackend interface {
	Has(string) (bool, error)
	Get(string, interface{}) error
	New(string, interface{}) error
	Set(string, interface{}) error
	Remove(string) error

	GetIterator(prefix string, option ListOptions) (func() (IterItem, bool), func())

	News(...Item) error
	Sets(...Item) error
}
