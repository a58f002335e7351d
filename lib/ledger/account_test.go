package ledger

import (
	"testing"

	"github.com/stretchr/testify/require"

	"quadvote.io/quadvote/lib/common"
	"quadvote.io/quadvote/lib/errors"
	"quadvote.io/quadvote/lib/storage"
)

func TestSaveNewAccount(t *testing.T) {
	st, _ := storage.NewTestMemoryLevelDBBackend()
	defer st.Close()

	a := TestMakeAccount(common.Amount(1000))
	require.Nil(t, a.Save(st))

	exists, err := ExistAccount(st, a.Address)
	require.Nil(t, err)
	require.True(t, exists)
}

func TestSaveExistingAccount(t *testing.T) {
	st, _ := storage.NewTestMemoryLevelDBBackend()
	defer st.Close()

	a := TestMakeAccount(common.Amount(1000))
	require.Nil(t, a.Save(st))

	require.Nil(t, a.Deposit(common.Amount(100)))
	require.Nil(t, a.Save(st))

	fetched, err := GetAccount(st, a.Address)
	require.Nil(t, err)
	require.Equal(t, common.Amount(1100), fetched.Balance)
}

func TestAccountWithdrawRespectsHeld(t *testing.T) {
	st, _ := storage.NewTestMemoryLevelDBBackend()
	defer st.Close()

	a := TestMakeAccount(common.Amount(100))
	a.Held = common.Amount(80)
	require.Nil(t, a.Save(st))

	require.Equal(t, common.Amount(20), a.Spendable())
	require.Equal(t, errors.InsufficientBalance, a.Withdraw(common.Amount(30)))
	require.Nil(t, a.Withdraw(common.Amount(20)))
	require.Equal(t, common.Amount(80), a.Balance)
}

func TestGetAccountDoesNotExist(t *testing.T) {
	st, _ := storage.NewTestMemoryLevelDBBackend()
	defer st.Close()

	_, err := GetAccount(st, "GNOTEXIST")
	require.Equal(t, errors.AccountDoesNotExist, err)
}

func TestAccountsByCreatedOrder(t *testing.T) {
	st, _ := storage.NewTestMemoryLevelDBBackend()
	defer st.Close()

	var createdOrder []string
	for i := 0; i < 10; i++ {
		a := TestMakeAccount(common.Amount(10))
		require.Nil(t, a.Save(st))
		createdOrder = append(createdOrder, a.Address)
	}

	var saved []string
	iterFunc, closeFunc := GetAccountAddressesByCreated(st, nil)
	for {
		address, hasNext := iterFunc()
		if !hasNext {
			break
		}
		saved = append(saved, address)
	}
	closeFunc()

	require.Equal(t, createdOrder, saved)
}
