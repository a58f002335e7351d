package ledger

import (
	logging "github.com/inconshreveable/log15"

	"quadvote.io/quadvote/lib/common"
	"quadvote.io/quadvote/lib/errors"
	"quadvote.io/quadvote/lib/storage"
)

var log logging.Logger = logging.New("module", "ledger")

func SetLogging(level logging.Lvl, handler logging.Handler) {
	common.SetLogging(log, level, handler)
}

// LevelDBLedger exposes the narrow freeze/unfreeze/inspect contract over
// `Account` records. Holds are absolute: `SetHold` replaces the whole held
// amount, it does not apply a delta.
type LevelDBLedger struct {
}

func NewLevelDBLedger() *LevelDBLedger {
	return &LevelDBLedger{}
}

func (l *LevelDBLedger) ReducibleBalance(st *storage.LevelDBBackend, address string) (common.Amount, error) {
	a, err := GetAccount(st, address)
	if err != nil {
		return common.Amount(0), err
	}

	return a.Spendable(), nil
}

func (l *LevelDBLedger) BalanceHeld(st *storage.LevelDBBackend, address string) (common.Amount, error) {
	a, err := GetAccount(st, address)
	if err != nil {
		return common.Amount(0), err
	}

	return a.Held, nil
}

// SetHold replaces the account's held amount. It fails with
// `InsufficientBalance` and no effect when the requested hold exceeds the
// account's balance.
func (l *LevelDBLedger) SetHold(st *storage.LevelDBBackend, address string, amount common.Amount) (err error) {
	var a *Account
	if a, err = GetAccount(st, address); err != nil {
		return
	}

	if amount > a.Balance {
		err = errors.InsufficientBalance
		return
	}

	a.Held = amount
	if err = a.Save(st); err != nil {
		return
	}

	log.Debug("hold updated", "address", address, "held", amount)

	return
}
