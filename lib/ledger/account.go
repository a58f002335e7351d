package ledger

import (
	"encoding/json"
	"fmt"

	"quadvote.io/quadvote/lib/common"
	"quadvote.io/quadvote/lib/common/observer"
	"quadvote.io/quadvote/lib/errors"
	"quadvote.io/quadvote/lib/storage"
)

// Account is the native-balance record backing voters. the storage supports,
//  * find by `Address`:
// 	- key: `la-address-<Account.Address>`: value: `Account`
//  * get list by created order:
// 	- key: `la-created-<sequential uuid1>`: value: `Account.Address`
//
// `Held` is the aggregate hold locked by open votes; it never exceeds
// `Balance` and the difference is the spendable amount.

const AccountPrefixAddress string = "la-address-"
const AccountPrefixCreated string = "la-created-"

type Account struct {
	Address string        `json:"address"`
	Balance common.Amount `json:"balance"`
	Held    common.Amount `json:"held"`
}

func NewAccount(address string, balance common.Amount) *Account {
	return &Account{
		Address: address,
		Balance: balance,
	}
}

func (a *Account) String() string {
	return string(common.MustJSONMarshal(a))
}

func (a *Account) Serialize() (encoded []byte, err error) {
	encoded, err = common.EncodeJSONValue(a)
	return
}

func (a *Account) Deserialize(encoded []byte) (err error) {
	return common.DecodeJSONValue(encoded, a)
}

// Spendable is the reducible portion of the balance, `Balance - Held`.
func (a *Account) Spendable() common.Amount {
	return a.Balance.SaturatingSub(a.Held)
}

func (a *Account) Deposit(fund common.Amount) error {
	if val, err := a.Balance.Add(fund); err != nil {
		return err
	} else {
		a.Balance = val
	}
	return nil
}

func (a *Account) Withdraw(fund common.Amount) error {
	if fund > a.Spendable() {
		return errors.InsufficientBalance
	}
	if val, err := a.Balance.Sub(fund); err != nil {
		return err
	} else {
		a.Balance = val
	}
	return nil
}

func (a *Account) Save(st *storage.LevelDBBackend) (err error) {
	key := GetAccountKey(a.Address)

	var exists bool
	if exists, err = st.Has(key); err != nil {
		return
	}

	if exists {
		err = st.Set(key, a)
	} else {
		createdKey := GetAccountCreatedKey(common.GetUniqueIDFromUUID())
		err = st.News(
			storage.Item{Key: key, Value: a},
			storage.Item{Key: createdKey, Value: a.Address},
		)
	}
	if err == nil {
		observer.LedgerObserver.Trigger(
			observer.NewEvent(observer.ResourceAccount, observer.ConditionAddress, a.Address).String(), a)
	}

	return
}

func GetAccountKey(address string) string {
	return fmt.Sprintf("%s%s", AccountPrefixAddress, address)
}

func GetAccountCreatedKey(created string) string {
	return fmt.Sprintf("%s%s", AccountPrefixCreated, created)
}

func ExistAccount(st *storage.LevelDBBackend, address string) (exists bool, err error) {
	return st.Has(GetAccountKey(address))
}

func GetAccount(st *storage.LevelDBBackend, address string) (a *Account, err error) {
	if err = st.Get(GetAccountKey(address), &a); err != nil {
		if err == errors.StorageRecordDoesNotExist {
			err = errors.AccountDoesNotExist
		}
		return
	}

	return
}

func GetAccountAddressesByCreated(st *storage.LevelDBBackend, options storage.ListOptions) (func() (string, bool), func()) {
	iterFunc, closeFunc := st.GetIterator(AccountPrefixCreated, options)

	return (func() (string, bool) {
			item, hasNext := iterFunc()
			if !hasNext {
				return "", false
			}

			var address string
			json.Unmarshal(item.Value, &address)
			return address, hasNext
		}), (func() {
			closeFunc()
		})
}

func GetAccountsByCreated(st *storage.LevelDBBackend, options storage.ListOptions) (func() (*Account, bool), func()) {
	iterFunc, closeFunc := GetAccountAddressesByCreated(st, options)

	return (func() (*Account, bool) {
			address, hasNext := iterFunc()
			if !hasNext {
				return nil, false
			}

			a, err := GetAccount(st, address)
			if err != nil {
				return nil, false
			}

			return a, hasNext
		}), (func() {
			closeFunc()
		})
}
