package resource

import (
	"strings"

	"github.com/nvellon/hal"

	"quadvote.io/quadvote/lib/voting"
)

type Vote struct {
	v *voting.VoteInfo
}

func NewVote(v *voting.VoteInfo) *Vote {
	return &Vote{
		v: v,
	}
}

func (v Vote) GetMap() hal.Entry {
	return hal.Entry{
		"voter":       v.v.Voter,
		"proposal_id": v.v.ProposalId,
		"aye":         v.v.Aye,
		"power":       v.v.Power,
		"cost":        v.v.Cost(),
	}
}

func (v Vote) Resource() *hal.Resource {
	r := hal.NewResource(v, v.LinkSelf())
	r.AddLink("proposal", hal.NewLink(strings.Replace(URLProposal, "{id}", v.v.ProposalId.String(), -1)))
	r.AddLink("voter", hal.NewLink(strings.Replace(URLVoter, "{address}", v.v.Voter, -1)))
	return r
}

func (v Vote) LinkSelf() string {
	return strings.Replace(URLVoterVotes, "{address}", v.v.Voter, -1)
}
