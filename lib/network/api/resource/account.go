package resource

import (
	"strings"

	"github.com/nvellon/hal"

	"quadvote.io/quadvote/lib/ledger"
)

type Account struct {
	a *ledger.Account
}

func NewAccount(a *ledger.Account) *Account {
	return &Account{
		a: a,
	}
}

func (a Account) GetMap() hal.Entry {
	return hal.Entry{
		"address":   a.a.Address,
		"balance":   a.a.Balance,
		"held":      a.a.Held,
		"spendable": a.a.Spendable(),
	}
}

func (a Account) Resource() *hal.Resource {
	r := hal.NewResource(a, a.LinkSelf())
	r.AddLink("votes", hal.NewLink(strings.Replace(URLVoterVotes, "{address}", a.a.Address, -1)+"{?cursor,limit,reverse}", hal.LinkAttr{"templated": true}))
	return r
}

func (a Account) LinkSelf() string {
	return strings.Replace(URLAccount, "{address}", a.a.Address, -1)
}
