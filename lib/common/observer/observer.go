package observer

import (
	"github.com/GianlucaGuarini/go-observable"
)

// VotingObserver carries every committed voting engine event; LedgerObserver
// carries ledger account updates. Triggers fire only after the enclosing
// storage transaction has committed.
var VotingObserver = observable.New()
var LedgerObserver = observable.New()

const (
	ResourceProposal = "proposal"
	ResourceVote     = "vote"
	ResourceVoter    = "voter"
	ResourceAccount  = "account"

	ConditionAll     = "*"
	ConditionID      = "id"
	ConditionAddress = "address"
)

type Event struct {
	Resource  string `json:"resource"`
	Condition string `json:"condition"`
	Id        string `json:"id"`
}

func NewEvent(resource, condition, id string) Event {
	return Event{
		Resource:  resource,
		Condition: condition,
		Id:        id,
	}
}

func (e Event) String() string {
	toStr := e.Resource + "-"
	if e.Condition == ConditionAll {
		toStr += e.Condition
	} else {
		toStr += e.Condition + "="
		toStr += e.Id
	}
	return toStr
}
