package voting

import (
	"fmt"

	"quadvote.io/quadvote/lib/storage"
)

// Voter registry. membership is a presence-only fact,
// 	- key: `vr-address-<address>`: value: `address`

const VoterPrefixAddress string = "vr-address-"

func GetVoterKey(address string) string {
	return fmt.Sprintf("%s%s", VoterPrefixAddress, address)
}

func ExistVoter(st *storage.LevelDBBackend, address string) (bool, error) {
	return st.Has(GetVoterKey(address))
}

func InsertVoter(st *storage.LevelDBBackend, address string) error {
	return st.New(GetVoterKey(address), address)
}

func RemoveVoter(st *storage.LevelDBBackend, address string) error {
	return st.Remove(GetVoterKey(address))
}
