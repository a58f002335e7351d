package voting

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"quadvote.io/quadvote/lib/common"
	"quadvote.io/quadvote/lib/storage"
)

// Proposal is the time-windowed subject of a quadratic vote. the storage
// supports,
//  * find by `Id`:
// 	- key: `vp-proposal-<zero padded Id>`: value: `Proposal`
// ids are monotonic so iterating the prefix yields creation order.
//
// `NextProposalId` is a single counter under `vp-nextid`; ids are never
// reused, even across cancellations.

const ProposalPrefixId string = "vp-proposal-"
const ProposalNextIdKey string = "vp-nextid"

type ProposalId uint32

func (i ProposalId) String() string {
	return strconv.FormatUint(uint64(i), 10)
}

// ProposalKind decides how `AccountList` is read: a ban-list for public
// proposals, an allow-list for private ones.
type ProposalKind string

const (
	KindPublic  ProposalKind = "public"
	KindPrivate ProposalKind = "private"
)

func (k ProposalKind) IsValid() bool {
	return k == KindPublic || k == KindPrivate
}

// Ratio is the running tally; `Aye` accumulates the quadratic cost behind
// 'aye' votes and `Total` the cost behind every vote.
type Ratio struct {
	Aye   common.Amount `json:"aye"`
	Total common.Amount `json:"total"`
}

func (r Ratio) Add(aye bool, weight common.Amount) Ratio {
	if aye {
		return Ratio{Aye: r.Aye.SaturatingAdd(weight), Total: r.Total.SaturatingAdd(weight)}
	}
	return Ratio{Aye: r.Aye, Total: r.Total.SaturatingAdd(weight)}
}

func (r Ratio) Remove(aye bool, weight common.Amount) Ratio {
	if aye {
		return Ratio{Aye: r.Aye.SaturatingSub(weight), Total: r.Total.SaturatingSub(weight)}
	}
	return Ratio{Aye: r.Aye, Total: r.Total.SaturatingSub(weight)}
}

// HasMajority reports a simple majority read, `Aye * 2 > Total`.
func (r Ratio) HasMajority() bool {
	return r.Aye > r.Total.SaturatingSub(r.Aye)
}

type Proposal struct {
	Id           ProposalId   `json:"id"`
	OffchainData []byte       `json:"offchain_data"`
	Kind         ProposalKind `json:"kind"`
	Creator      string       `json:"creator"`
	AccountList  []string     `json:"account_list"`
	Start        uint64       `json:"start"`
	End          uint64       `json:"end"`
	Ratio        Ratio        `json:"ratio"`
}

func NewProposal(id ProposalId, offchainData []byte, kind ProposalKind, creator string, accountList []string, start, end uint64) *Proposal {
	return &Proposal{
		Id:           id,
		OffchainData: offchainData,
		Kind:         kind,
		Creator:      creator,
		AccountList:  accountList,
		Start:        start,
		End:          end,
	}
}

func (p *Proposal) String() string {
	return string(common.MustJSONMarshal(p))
}

func (p *Proposal) Serialize() (encoded []byte, err error) {
	encoded, err = common.EncodeJSONValue(p)
	return
}

func (p *Proposal) IsCreator(who string) bool {
	return p.Creator == who
}

func (p *Proposal) HasStarted(tick uint64) bool {
	return p.Start <= tick
}

func (p *Proposal) HasEnded(tick uint64) bool {
	return p.End <= tick
}

func (p *Proposal) IsOpen(tick uint64) bool {
	return p.HasStarted(tick) && !p.HasEnded(tick)
}

// CanVote checks account-list admission. Without a list everyone may vote; a
// public proposal bans the listed accounts, a private one admits only them.
func (p *Proposal) CanVote(who string) bool {
	if p.AccountList == nil {
		return true
	}

	var listed bool
	for _, a := range p.AccountList {
		if a == who {
			listed = true
			break
		}
	}

	if p.Kind == KindPrivate {
		return listed
	}
	return !listed
}

func (p *Proposal) AddRatio(aye bool, weight common.Amount) {
	p.Ratio = p.Ratio.Add(aye, weight)
}

func (p *Proposal) RemoveRatio(aye bool, weight common.Amount) {
	p.Ratio = p.Ratio.Remove(aye, weight)
}

func GetProposalKey(id ProposalId) string {
	return fmt.Sprintf("%s%010d", ProposalPrefixId, id)
}

func (p *Proposal) Save(st *storage.LevelDBBackend) (err error) {
	key := GetProposalKey(p.Id)

	var exists bool
	if exists, err = st.Has(key); err != nil {
		return
	}

	if exists {
		err = st.Set(key, p)
	} else {
		err = st.New(key, p)
	}

	return
}

func ExistProposal(st *storage.LevelDBBackend, id ProposalId) (bool, error) {
	return st.Has(GetProposalKey(id))
}

func GetProposal(st *storage.LevelDBBackend, id ProposalId) (p *Proposal, err error) {
	if err = st.Get(GetProposalKey(id), &p); err != nil {
		return
	}

	return
}

func RemoveProposal(st *storage.LevelDBBackend, id ProposalId) error {
	return st.Remove(GetProposalKey(id))
}

func GetProposalsByCreated(st *storage.LevelDBBackend, options storage.ListOptions) (func() (*Proposal, bool, []byte), func()) {
	iterFunc, closeFunc := st.GetIterator(ProposalPrefixId, options)

	return (func() (*Proposal, bool, []byte) {
			item, hasNext := iterFunc()
			if !hasNext {
				return nil, false, item.Key
			}

			var p Proposal
			if err := json.Unmarshal(item.Value, &p); err != nil {
				return nil, false, item.Key
			}
			return &p, hasNext, item.Key
		}), (func() {
			closeFunc()
		})
}

// nextProposalId allocates the next id with a checked increment. Exhaustion
// of the id space indicates systemic misuse of the counter and is fatal.
func nextProposalId(st *storage.LevelDBBackend) (id ProposalId, err error) {
	var exists bool
	if exists, err = st.Has(ProposalNextIdKey); err != nil {
		return
	}

	var current uint32
	if exists {
		if err = st.Get(ProposalNextIdKey, &current); err != nil {
			return
		}
	}

	if current == math.MaxUint32 {
		panic(fmt.Errorf("proposal id space exhausted"))
	}

	if exists {
		err = st.Set(ProposalNextIdKey, current+1)
	} else {
		err = st.New(ProposalNextIdKey, current+1)
	}
	if err != nil {
		return
	}

	id = ProposalId(current)

	return
}
