package resource

import (
	"strings"

	"github.com/nvellon/hal"
)

type Voter struct {
	address string
}

func NewVoter(address string) *Voter {
	return &Voter{
		address: address,
	}
}

func (v Voter) GetMap() hal.Entry {
	return hal.Entry{
		"address":    v.address,
		"registered": true,
	}
}

func (v Voter) Resource() *hal.Resource {
	r := hal.NewResource(v, v.LinkSelf())
	r.AddLink("votes", hal.NewLink(strings.Replace(URLVoterVotes, "{address}", v.address, -1)+"{?cursor,limit,reverse}", hal.LinkAttr{"templated": true}))
	r.AddLink("account", hal.NewLink(strings.Replace(URLAccount, "{address}", v.address, -1)))
	return r
}

func (v Voter) LinkSelf() string {
	return strings.Replace(URLVoter, "{address}", v.address, -1)
}
