package voting

import (
	"testing"

	"github.com/stellar/go/keypair"
	"github.com/stretchr/testify/require"

	"quadvote.io/quadvote/lib/common"
	"quadvote.io/quadvote/lib/storage"
)

func TestVoteInfoCost(t *testing.T) {
	v := NewVoteInfo("GABC", ProposalId(0), true, common.Amount(7))
	require.Equal(t, common.Amount(49), v.Cost())

	v.Power = common.Amount(0)
	require.Equal(t, common.Amount(0), v.Cost())
}

func TestVoteInfoSaveAndRemove(t *testing.T) {
	st, err := storage.NewTestMemoryLevelDBBackend()
	require.Nil(t, err)

	kp, _ := keypair.Random()
	v := NewVoteInfo(kp.Address(), ProposalId(1), true, common.Amount(3))
	require.Nil(t, v.Save(st))

	fetched, err := GetVoteInfo(st, kp.Address(), ProposalId(1))
	require.Nil(t, err)
	require.Equal(t, v.Power, fetched.Power)
	require.True(t, fetched.Aye)

	// saving again updates in place without duplicating the index
	v.Power = common.Amount(5)
	v.Aye = false
	require.Nil(t, v.Save(st))

	fetched, err = GetVoteInfo(st, kp.Address(), ProposalId(1))
	require.Nil(t, err)
	require.Equal(t, common.Amount(5), fetched.Power)
	require.False(t, fetched.Aye)

	require.Nil(t, RemoveVoteInfo(st, kp.Address(), ProposalId(1)))
	exists, _ := ExistVoteInfo(st, kp.Address(), ProposalId(1))
	require.False(t, exists)
}

func TestGetVotesByVoter(t *testing.T) {
	st, err := storage.NewTestMemoryLevelDBBackend()
	require.Nil(t, err)

	kp, _ := keypair.Random()
	for _, id := range []ProposalId{2, 0, 7} {
		require.Nil(t, NewVoteInfo(kp.Address(), id, true, common.Amount(1)).Save(st))
	}

	var seen []ProposalId
	iterFunc, closeFunc := GetVotesByVoter(st, kp.Address(), nil)
	for {
		v, hasNext, _ := iterFunc()
		if !hasNext {
			break
		}
		seen = append(seen, v.ProposalId)
	}
	closeFunc()

	require.Equal(t, []ProposalId{0, 2, 7}, seen)
}

func TestGetVotesByProposal(t *testing.T) {
	st, err := storage.NewTestMemoryLevelDBBackend()
	require.Nil(t, err)

	var voters []string
	for i := 0; i < 3; i++ {
		kp, _ := keypair.Random()
		voters = append(voters, kp.Address())
		require.Nil(t, NewVoteInfo(kp.Address(), ProposalId(4), i%2 == 0, common.Amount(2)).Save(st))
	}

	// a vote on another proposal must not leak into the listing
	require.Nil(t, NewVoteInfo(voters[0], ProposalId(5), true, common.Amount(2)).Save(st))

	var count int
	iterFunc, closeFunc := GetVotesByProposal(st, ProposalId(4), nil)
	for {
		v, hasNext, _ := iterFunc()
		if !hasNext {
			break
		}
		require.Equal(t, ProposalId(4), v.ProposalId)
		count++
	}
	closeFunc()

	require.Equal(t, 3, count)
}

func TestTotalHold(t *testing.T) {
	st, err := storage.NewTestMemoryLevelDBBackend()
	require.Nil(t, err)

	kp, _ := keypair.Random()

	total, err := TotalHold(st, kp.Address())
	require.Nil(t, err)
	require.Equal(t, common.Amount(0), total)

	require.Nil(t, NewVoteInfo(kp.Address(), ProposalId(0), true, common.Amount(3)).Save(st))
	require.Nil(t, NewVoteInfo(kp.Address(), ProposalId(1), false, common.Amount(4)).Save(st))

	total, err = TotalHold(st, kp.Address())
	require.Nil(t, err)
	require.Equal(t, common.Amount(25), total)
}
