package resource

import (
	"strings"

	"github.com/nvellon/hal"

	"quadvote.io/quadvote/lib/voting"
)

type Proposal struct {
	p *voting.Proposal
}

func NewProposal(p *voting.Proposal) *Proposal {
	return &Proposal{
		p: p,
	}
}

func (p Proposal) GetMap() hal.Entry {
	return hal.Entry{
		"id":            p.p.Id,
		"offchain_data": string(p.p.OffchainData),
		"kind":          p.p.Kind,
		"creator":       p.p.Creator,
		"account_list":  p.p.AccountList,
		"start":         p.p.Start,
		"end":           p.p.End,
		"aye":           p.p.Ratio.Aye,
		"total":         p.p.Ratio.Total,
	}
}

func (p Proposal) Resource() *hal.Resource {
	r := hal.NewResource(p, p.LinkSelf())
	r.AddLink("votes", hal.NewLink(p.LinkSelf()+"/votes{?cursor,limit,reverse}", hal.LinkAttr{"templated": true}))
	r.AddLink("creator", hal.NewLink(strings.Replace(URLVoter, "{address}", p.p.Creator, -1)))
	return r
}

func (p Proposal) LinkSelf() string {
	return strings.Replace(URLProposal, "{id}", p.p.Id.String(), -1)
}
