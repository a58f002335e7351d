package voting

import (
	"encoding/json"
	"fmt"

	"quadvote.io/quadvote/lib/common"
	"quadvote.io/quadvote/lib/errors"
	"quadvote.io/quadvote/lib/storage"
)

// VoteInfo is an active vote, keyed by (voter, proposal). the storage
// supports,
//  * find by `(Voter, ProposalId)`:
// 	- key: `vt-address-<Voter>-<zero padded ProposalId>`: value: `VoteInfo`
//  * list by proposal:
// 	- key: `vt-proposal-<zero padded ProposalId>-<Voter>`: value: `Voter`
//
// A record exists only while the vote has non-zero power; retraction, claim
// and voter deregistration all delete it.

const VotePrefixAddress string = "vt-address-"
const VotePrefixProposal string = "vt-proposal-"

type VoteInfo struct {
	Voter      string        `json:"voter"`
	ProposalId ProposalId    `json:"proposal_id"`
	Aye        bool          `json:"aye"`
	Power      common.Amount `json:"power"`
}

func NewVoteInfo(voter string, proposalId ProposalId, aye bool, power common.Amount) *VoteInfo {
	return &VoteInfo{
		Voter:      voter,
		ProposalId: proposalId,
		Aye:        aye,
		Power:      power,
	}
}

func (v *VoteInfo) String() string {
	return string(common.MustJSONMarshal(v))
}

func (v *VoteInfo) Serialize() (encoded []byte, err error) {
	encoded, err = common.EncodeJSONValue(v)
	return
}

// Cost is the quadratic cost of this vote, `Power * Power`.
func (v *VoteInfo) Cost() common.Amount {
	return v.Power.Square()
}

func GetVoteKey(voter string, id ProposalId) string {
	return fmt.Sprintf("%s%s-%010d", VotePrefixAddress, voter, id)
}

func GetVoteVoterPrefix(voter string) string {
	return fmt.Sprintf("%s%s-", VotePrefixAddress, voter)
}

func GetVoteProposalKey(voter string, id ProposalId) string {
	return fmt.Sprintf("%s%010d-%s", VotePrefixProposal, id, voter)
}

func GetVoteProposalPrefix(id ProposalId) string {
	return fmt.Sprintf("%s%010d-", VotePrefixProposal, id)
}

func (v *VoteInfo) Save(st *storage.LevelDBBackend) (err error) {
	key := GetVoteKey(v.Voter, v.ProposalId)

	var exists bool
	if exists, err = st.Has(key); err != nil {
		return
	}

	if exists {
		err = st.Set(key, v)
	} else {
		err = st.News(
			storage.Item{Key: key, Value: v},
			storage.Item{Key: GetVoteProposalKey(v.Voter, v.ProposalId), Value: v.Voter},
		)
	}

	return
}

func RemoveVoteInfo(st *storage.LevelDBBackend, voter string, id ProposalId) (err error) {
	if err = st.Remove(GetVoteKey(voter, id)); err != nil {
		return
	}

	return st.Remove(GetVoteProposalKey(voter, id))
}

func ExistVoteInfo(st *storage.LevelDBBackend, voter string, id ProposalId) (bool, error) {
	return st.Has(GetVoteKey(voter, id))
}

func GetVoteInfo(st *storage.LevelDBBackend, voter string, id ProposalId) (v *VoteInfo, err error) {
	if err = st.Get(GetVoteKey(voter, id), &v); err != nil {
		return
	}

	return
}

// GetVotesByVoter iterates every active vote owned by `voter`.
func GetVotesByVoter(st *storage.LevelDBBackend, voter string, options storage.ListOptions) (func() (*VoteInfo, bool, []byte), func()) {
	iterFunc, closeFunc := st.GetIterator(GetVoteVoterPrefix(voter), options)

	return (func() (*VoteInfo, bool, []byte) {
			item, hasNext := iterFunc()
			if !hasNext {
				return nil, false, item.Key
			}

			var v VoteInfo
			if err := json.Unmarshal(item.Value, &v); err != nil {
				return nil, false, item.Key
			}
			return &v, hasNext, item.Key
		}), (func() {
			closeFunc()
		})
}

// GetVotesByProposal iterates every active vote on a proposal, in voter
// address order.
func GetVotesByProposal(st *storage.LevelDBBackend, id ProposalId, options storage.ListOptions) (func() (*VoteInfo, bool, []byte), func()) {
	iterFunc, closeFunc := st.GetIterator(GetVoteProposalPrefix(id), options)

	return (func() (*VoteInfo, bool, []byte) {
			item, hasNext := iterFunc()
			if !hasNext {
				return nil, false, item.Key
			}

			var voter string
			if err := json.Unmarshal(item.Value, &voter); err != nil {
				return nil, false, item.Key
			}

			v, err := GetVoteInfo(st, voter, id)
			if err != nil {
				return nil, false, item.Key
			}
			return v, hasNext, item.Key
		}), (func() {
			closeFunc()
		})
}

// TotalHold recomputes the aggregate hold of a voter from their active vote
// records; at any quiescent point it equals the held balance on the ledger.
func TotalHold(st *storage.LevelDBBackend, voter string) (total common.Amount, err error) {
	iterFunc, closeFunc := GetVotesByVoter(st, voter, nil)
	defer closeFunc()

	for {
		v, hasNext, _ := iterFunc()
		if !hasNext {
			break
		}
		var n common.Amount
		if n, err = total.Add(v.Cost()); err != nil {
			err = errors.AmountOverflow
			return
		}
		total = n
	}

	return
}
