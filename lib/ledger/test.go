package ledger

import (
	"github.com/stellar/go/keypair"

	"quadvote.io/quadvote/lib/common"
)

func TestMakeAccount(balance common.Amount) *Account {
	kp, _ := keypair.Random()
	return NewAccount(kp.Address(), balance)
}
