package voting

import (
	logging "github.com/inconshreveable/log15"

	"quadvote.io/quadvote/lib/common"
	"quadvote.io/quadvote/lib/common/observer"
	"quadvote.io/quadvote/lib/errors"
	"quadvote.io/quadvote/lib/metrics"
	"quadvote.io/quadvote/lib/storage"
)

var log logging.Logger = logging.New("module", "voting")

func SetLogging(level logging.Lvl, handler logging.Handler) {
	common.SetLogging(log, level, handler)
}

// Event names triggered on `observer.VotingObserver` after an operation
// commits. Conditioned resource events (`proposal-id=3`, `vote-address=G...`)
// fire alongside these for API streaming.
const (
	EventVoterRegistered   = "voter-registered"
	EventVoterUnregistered = "voter-unregistered"
	EventProposalCreated   = "proposal-created"
	EventProposalCancelled = "proposal-cancelled"
	EventAccountListSet    = "account-list-set"
	EventVoteCompleted     = "vote-completed"
	EventVoteAdded         = "vote-added"
	EventVoteDropped       = "vote-dropped"
	EventBalanceClaimed    = "balance-claimed"
)

type VoteCompletedEvent struct {
	ProposalId ProposalId `json:"proposal_id"`
	Ratio      Ratio      `json:"ratio"`
}

type BalanceClaimedEvent struct {
	Voter      string        `json:"voter"`
	ProposalId ProposalId    `json:"proposal_id"`
	Amount     common.Amount `json:"amount"`
}

// Ledger is the freeze/unfreeze/inspect contract of the host account system.
// Holds are absolute amounts; the engine computes the new total and issues
// one `SetHold` per affected voter per operation.
type Ledger interface {
	ReducibleBalance(st *storage.LevelDBBackend, address string) (common.Amount, error)
	BalanceHeld(st *storage.LevelDBBackend, address string) (common.Amount, error)
	SetHold(st *storage.LevelDBBackend, address string, amount common.Amount) error
}

// Engine executes the caller-facing operations as single storage
// transactions: either every mutation and event of an operation commits, or
// none do.
type Engine struct {
	st     *storage.LevelDBBackend
	ledger Ledger
	clock  Clock
	policy Policy
}

type event struct {
	name    string
	payload interface{}
}

func NewEngine(st *storage.LevelDBBackend, ledger Ledger, clock Clock, policy Policy) *Engine {
	return &Engine{
		st:     st,
		ledger: ledger,
		clock:  clock,
		policy: policy,
	}
}

func (e *Engine) Policy() Policy {
	return e.policy
}

func (e *Engine) trigger(events []event) {
	for _, ev := range events {
		observer.VotingObserver.Trigger(ev.name, ev.payload)
	}
}

func proposalEvents(name string, p *Proposal) []event {
	return []event{
		{name, p},
		{observer.NewEvent(observer.ResourceProposal, observer.ConditionAll, "").String(), p},
		{observer.NewEvent(observer.ResourceProposal, observer.ConditionID, p.Id.String()).String(), p},
	}
}

func voteEvents(name string, v *VoteInfo) []event {
	return []event{
		{name, v},
		{observer.NewEvent(observer.ResourceVote, observer.ConditionAddress, v.Voter).String(), v},
	}
}

// RegisterVoter inserts `who` into the registry. Administrative only;
// idempotent on state but the event is always emitted.
func (e *Engine) RegisterVoter(origin Origin, who string) (err error) {
	if !origin.IsRoot() {
		err = errors.NoPermission
		return
	}

	ts, err := e.st.OpenTransaction()
	if err != nil {
		return
	}

	var exists bool
	if exists, err = ExistVoter(ts, who); err != nil {
		ts.Discard()
		return
	}

	if !exists {
		if err = InsertVoter(ts, who); err != nil {
			ts.Discard()
			return
		}
	}

	if err = ts.Commit(); err != nil {
		ts.Discard()
		return
	}

	e.trigger([]event{
		{EventVoterRegistered, who},
		{observer.NewEvent(observer.ResourceVoter, observer.ConditionAddress, who).String(), who},
	})
	if !exists {
		metrics.Voting.RegisteredVoters.Add(1)
	}
	log.Debug("voter registered", "address", who)

	return
}

// UnregisterVoter removes `who` from the registry, first cascading over every
// active vote: the hold is released, each proposal's ratio loses the voter's
// contribution and the vote records are deleted.
func (e *Engine) UnregisterVoter(origin Origin, who string) (err error) {
	if !origin.IsRoot() {
		var signer string
		if signer, err = origin.Signer(); err != nil {
			return
		}
		if signer != who {
			err = errors.NoPermission
			return
		}
	}

	ts, err := e.st.OpenTransaction()
	if err != nil {
		return
	}

	events, err := e.dropAllVotes(ts, who)
	if err != nil {
		ts.Discard()
		return
	}

	var exists bool
	if exists, err = ExistVoter(ts, who); err != nil {
		ts.Discard()
		return
	}
	if exists {
		if err = RemoveVoter(ts, who); err != nil {
			ts.Discard()
			return
		}
	}

	if err = ts.Commit(); err != nil {
		ts.Discard()
		return
	}

	events = append(events,
		event{EventVoterUnregistered, who},
		event{observer.NewEvent(observer.ResourceVoter, observer.ConditionAddress, who).String(), who},
	)
	e.trigger(events)
	if exists {
		metrics.Voting.RegisteredVoters.Add(-1)
	}
	log.Debug("voter unregistered", "address", who)

	return
}

// dropAllVotes deletes every active vote of `who`, reversing ratio
// contributions on the proposals that still exist and zeroing the hold.
func (e *Engine) dropAllVotes(ts *storage.LevelDBBackend, who string) (events []event, err error) {
	var votes []*VoteInfo
	iterFunc, closeFunc := GetVotesByVoter(ts, who, nil)
	for {
		v, hasNext, _ := iterFunc()
		if !hasNext {
			break
		}
		votes = append(votes, v)
	}
	closeFunc()

	if len(votes) < 1 {
		return
	}

	for _, v := range votes {
		var exists bool
		if exists, err = ExistProposal(ts, v.ProposalId); err != nil {
			return
		}
		if exists {
			var p *Proposal
			if p, err = GetProposal(ts, v.ProposalId); err != nil {
				return
			}
			p.RemoveRatio(v.Aye, v.Cost())
			if err = p.Save(ts); err != nil {
				return
			}
			events = append(events,
				event{observer.NewEvent(observer.ResourceProposal, observer.ConditionAll, "").String(), p},
				event{observer.NewEvent(observer.ResourceProposal, observer.ConditionID, p.Id.String()).String(), p},
			)
		}

		if err = RemoveVoteInfo(ts, who, v.ProposalId); err != nil {
			return
		}
		events = append(events, voteEvents(EventVoteDropped, v)...)
	}

	if err = e.ledger.SetHold(ts, who, common.Amount(0)); err != nil {
		return
	}

	return
}

// CreateProposal validates the window against the policy and stores a new
// proposal with a zero ratio, returning its id.
func (e *Engine) CreateProposal(origin Origin, offchainData []byte, kind ProposalKind, accountList []string, start, end uint64) (id ProposalId, err error) {
	var creator string
	if creator, err = origin.Signer(); err != nil {
		return
	}

	var registered bool
	if registered, err = ExistVoter(e.st, creator); err != nil {
		return
	}
	if !registered {
		err = errors.VoterNotRegistered
		return
	}

	if !kind.IsValid() {
		err = errors.BadRequestParameter
		return
	}
	if uint64(len(offchainData)) > e.policy.OffchainDataLimit {
		err = errors.OffchainDataTooLong
		return
	}
	if accountList != nil && uint64(len(accountList)) > e.policy.AccountListLimit {
		err = errors.AccountListTooLong
		return
	}

	now := e.clock.Now()
	if start < now {
		err = errors.CannotStartInPast
		return
	}
	if start >= end {
		err = errors.CannotFinishBeforeStart
		return
	}
	if start-now > e.policy.DelayLimit {
		err = errors.StartTooFarAway
		return
	}

	duration := end - start
	if duration < e.policy.MinimumDuration {
		err = errors.DurationTooShort
		return
	}
	if duration > e.policy.MaximumDuration {
		err = errors.DurationTooLong
		return
	}

	ts, err := e.st.OpenTransaction()
	if err != nil {
		return
	}

	if id, err = nextProposalId(ts); err != nil {
		ts.Discard()
		return
	}

	p := NewProposal(id, offchainData, kind, creator, accountList, start, end)
	if err = p.Save(ts); err != nil {
		ts.Discard()
		return
	}

	if err = ts.Commit(); err != nil {
		ts.Discard()
		return
	}

	e.trigger(proposalEvents(EventProposalCreated, p))
	metrics.Voting.ProposalsCreated.Add(1)
	log.Info("proposal created", "id", id, "creator", creator, "start", start, "end", end)

	return
}

// CancelProposal removes a proposal before it opens. Only the creator or an
// administrator may cancel; no votes can exist yet.
func (e *Engine) CancelProposal(origin Origin, id ProposalId) (err error) {
	var p *Proposal
	if p, err = e.getProposal(id); err != nil {
		return
	}

	if err = e.ensureCreatorOrRoot(origin, p); err != nil {
		return
	}

	if p.HasStarted(e.clock.Now()) {
		err = errors.AlreadyStarted
		return
	}

	ts, err := e.st.OpenTransaction()
	if err != nil {
		return
	}

	if err = RemoveProposal(ts, id); err != nil {
		ts.Discard()
		return
	}

	if err = ts.Commit(); err != nil {
		ts.Discard()
		return
	}

	e.trigger(proposalEvents(EventProposalCancelled, p))
	metrics.Voting.ProposalsCancelled.Add(1)
	log.Info("proposal cancelled", "id", id)

	return
}

// SetAccountList replaces the account list atomically. Same permission and
// timing constraints as cancellation; a nil list clears it.
func (e *Engine) SetAccountList(origin Origin, id ProposalId, accountList []string) (err error) {
	var p *Proposal
	if p, err = e.getProposal(id); err != nil {
		return
	}

	if err = e.ensureCreatorOrRoot(origin, p); err != nil {
		return
	}

	if p.HasStarted(e.clock.Now()) {
		err = errors.AlreadyStarted
		return
	}

	if accountList != nil && uint64(len(accountList)) > e.policy.AccountListLimit {
		err = errors.AccountListTooLong
		return
	}

	ts, err := e.st.OpenTransaction()
	if err != nil {
		return
	}

	p.AccountList = accountList
	if err = p.Save(ts); err != nil {
		ts.Discard()
		return
	}

	if err = ts.Commit(); err != nil {
		ts.Discard()
		return
	}

	e.trigger(proposalEvents(EventAccountListSet, p))
	log.Debug("account list set", "id", id, "entries", len(accountList))

	return
}

// CloseProposal removes an ended proposal from the store and reports its
// final ratio. Vote records and holds are untouched; voters settle them
// individually through `Claim`.
func (e *Engine) CloseProposal(origin Origin, id ProposalId) (ratio Ratio, err error) {
	var signer string
	if signer, err = origin.Signer(); err != nil {
		return
	}

	var registered bool
	if registered, err = ExistVoter(e.st, signer); err != nil {
		return
	}
	if !registered {
		err = errors.VoterNotRegistered
		return
	}

	var p *Proposal
	if p, err = e.getProposal(id); err != nil {
		return
	}

	if !p.HasEnded(e.clock.Now()) {
		err = errors.NotEndedYet
		return
	}

	ts, err := e.st.OpenTransaction()
	if err != nil {
		return
	}

	if err = RemoveProposal(ts, id); err != nil {
		ts.Discard()
		return
	}

	if err = ts.Commit(); err != nil {
		ts.Discard()
		return
	}

	ratio = p.Ratio
	e.trigger([]event{
		{EventVoteCompleted, &VoteCompletedEvent{ProposalId: id, Ratio: ratio}},
		{observer.NewEvent(observer.ResourceProposal, observer.ConditionAll, "").String(), p},
		{observer.NewEvent(observer.ResourceProposal, observer.ConditionID, id.String()).String(), p},
	})
	metrics.Voting.ProposalsClosed.Add(1)
	log.Info("proposal closed", "id", id, "aye", ratio.Aye, "total", ratio.Total)

	return
}

// Vote casts, changes or retracts a quadratic vote. The hold moves by the
// difference between the old and new quadratic cost; a `power` of zero is a
// full retraction.
func (e *Engine) Vote(origin Origin, id ProposalId, aye bool, power common.Amount) (err error) {
	var voter string
	if voter, err = origin.Signer(); err != nil {
		return
	}

	var registered bool
	if registered, err = ExistVoter(e.st, voter); err != nil {
		return
	}
	if !registered {
		err = errors.VoterNotRegistered
		return
	}

	ts, err := e.st.OpenTransaction()
	if err != nil {
		return
	}

	events, err := e.voteIn(ts, voter, id, aye, power)
	if err != nil {
		ts.Discard()
		return
	}

	if err = ts.Commit(); err != nil {
		ts.Discard()
		return
	}

	e.trigger(events)

	return
}

func (e *Engine) voteIn(ts *storage.LevelDBBackend, voter string, id ProposalId, aye bool, power common.Amount) (events []event, err error) {
	var p *Proposal
	if p, err = e.getProposalFrom(ts, id); err != nil {
		return
	}

	now := e.clock.Now()
	if !p.HasStarted(now) {
		err = errors.NotStartedYet
		return
	}
	if p.HasEnded(now) {
		err = errors.AlreadyEnded
		return
	}

	if !p.CanVote(voter) {
		err = errors.NoPermission
		return
	}

	var prev *VoteInfo
	var exists bool
	if exists, err = ExistVoteInfo(ts, voter, id); err != nil {
		return
	}
	if exists {
		if prev, err = GetVoteInfo(ts, voter, id); err != nil {
			return
		}
		if prev.Aye == aye && prev.Power == power {
			err = errors.IdenticalVote
			return
		}
	} else if power == 0 {
		// retracting a vote that was never cast; succeeds with no effect
		return
	}

	var prevCost common.Amount
	if prev != nil {
		prevCost = prev.Cost()
	}
	newCost := power.Square()

	if err = e.adjustHold(ts, voter, prevCost, newCost); err != nil {
		return
	}

	if prev != nil {
		p.RemoveRatio(prev.Aye, prevCost)
	}
	if power > 0 {
		p.AddRatio(aye, newCost)
	}
	if err = p.Save(ts); err != nil {
		return
	}

	if power == 0 {
		if err = RemoveVoteInfo(ts, voter, id); err != nil {
			return
		}
		events = append(events, voteEvents(EventVoteDropped, prev)...)
		metrics.Voting.VotesDropped.Add(1)
		log.Debug("vote dropped", "id", id, "voter", voter)
	} else {
		v := NewVoteInfo(voter, id, aye, power)
		if err = v.Save(ts); err != nil {
			return
		}
		events = append(events, voteEvents(EventVoteAdded, v)...)
		metrics.Voting.VotesCast.Add(1)
		log.Debug("vote added", "id", id, "voter", voter, "aye", aye, "power", power)
	}

	events = append(events,
		event{observer.NewEvent(observer.ResourceProposal, observer.ConditionAll, "").String(), p},
		event{observer.NewEvent(observer.ResourceProposal, observer.ConditionID, id.String()).String(), p},
	)

	return
}

// adjustHold moves the voter's aggregate hold by the cost difference, through
// one absolute `SetHold` call. Increases are checked against the spendable
// balance first.
func (e *Engine) adjustHold(ts *storage.LevelDBBackend, voter string, prevCost, newCost common.Amount) (err error) {
	if prevCost == newCost {
		return
	}

	if newCost > prevCost {
		diff := newCost.MustSub(prevCost)

		var spendable common.Amount
		if spendable, err = e.ledger.ReducibleBalance(ts, voter); err != nil {
			if err == errors.AccountDoesNotExist {
				err = errors.InsufficientBalance
			}
			return
		}
		if spendable < diff {
			err = errors.InsufficientBalance
			return
		}

		var held common.Amount
		if held, err = e.ledger.BalanceHeld(ts, voter); err != nil {
			return
		}
		return e.ledger.SetHold(ts, voter, held.MustAdd(diff))
	}

	diff := prevCost.MustSub(newCost)

	var held common.Amount
	if held, err = e.ledger.BalanceHeld(ts, voter); err != nil {
		return
	}
	return e.ledger.SetHold(ts, voter, held.SaturatingSub(diff))
}

// Claim releases the hold backing the voter's vote on a closed proposal and
// deletes the vote record, returning the released amount.
func (e *Engine) Claim(origin Origin, id ProposalId) (amount common.Amount, err error) {
	var voter string
	if voter, err = origin.Signer(); err != nil {
		return
	}

	var registered bool
	if registered, err = ExistVoter(e.st, voter); err != nil {
		return
	}
	if !registered {
		err = errors.VoterNotRegistered
		return
	}

	ts, err := e.st.OpenTransaction()
	if err != nil {
		return
	}

	var exists bool
	if exists, err = ExistVoteInfo(ts, voter, id); err != nil {
		ts.Discard()
		return
	}
	if !exists {
		ts.Discard()
		err = errors.ClaimDoesNotExist
		return
	}

	var open bool
	if open, err = ExistProposal(ts, id); err != nil {
		ts.Discard()
		return
	}
	if open {
		ts.Discard()
		err = errors.ProposalNotClosed
		return
	}

	var v *VoteInfo
	if v, err = GetVoteInfo(ts, voter, id); err != nil {
		ts.Discard()
		return
	}

	amount = v.Cost()

	var held common.Amount
	if held, err = e.ledger.BalanceHeld(ts, voter); err != nil {
		ts.Discard()
		return
	}
	if err = e.ledger.SetHold(ts, voter, held.SaturatingSub(amount)); err != nil {
		ts.Discard()
		return
	}

	if err = RemoveVoteInfo(ts, voter, id); err != nil {
		ts.Discard()
		return
	}

	if err = ts.Commit(); err != nil {
		ts.Discard()
		return
	}

	e.trigger([]event{
		{EventBalanceClaimed, &BalanceClaimedEvent{Voter: voter, ProposalId: id, Amount: amount}},
		{observer.NewEvent(observer.ResourceVote, observer.ConditionAddress, voter).String(), v},
	})
	metrics.Voting.Claims.Add(1)
	log.Debug("balance claimed", "id", id, "voter", voter, "amount", amount)

	return
}

func (e *Engine) getProposal(id ProposalId) (*Proposal, error) {
	return e.getProposalFrom(e.st, id)
}

func (e *Engine) getProposalFrom(st *storage.LevelDBBackend, id ProposalId) (p *Proposal, err error) {
	if p, err = GetProposal(st, id); err != nil {
		if err == errors.StorageRecordDoesNotExist {
			err = errors.ProposalDoesNotExist
		}
		return
	}

	return
}

func (e *Engine) ensureCreatorOrRoot(origin Origin, p *Proposal) error {
	if origin.IsRoot() {
		return nil
	}

	signer, err := origin.Signer()
	if err != nil {
		return err
	}
	if !p.IsCreator(signer) {
		return errors.NoPermission
	}

	return nil
}
