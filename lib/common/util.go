package common

import (
	"bytes"
	"encoding/json"
	"os"

	uuid "github.com/satori/go.uuid"
)

type Serializable interface {
	Serialize() ([]byte, error)
}

// GetUniqueIDFromUUID returns a time-ordered unique id; records indexed by it
// iterate in creation order.
func GetUniqueIDFromUUID() string {
	return uuid.Must(uuid.NewV1(), nil).String()
}

func GenerateUUID() string {
	return uuid.Must(uuid.NewV4(), nil).String()
}

func GetENVValue(key, defaultValue string) (v string) {
	var found bool
	if v, found = os.LookupEnv(key); !found {
		return defaultValue
	}

	return
}

func EncodeJSONValue(v interface{}) (b []byte, err error) {
	return json.Marshal(v)
}

func DecodeJSONValue(b []byte, v interface{}) (err error) {
	return json.Unmarshal(b, v)
}

func MustJSONMarshal(o interface{}) []byte {
	b, err := json.Marshal(o)
	if err != nil {
		panic(err)
	}
	return b
}

func JSONMarshalWithoutEscapeHTML(o interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(o); err != nil {
		return nil, err
	}

	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
