package resource

const (
	APIVersionV1 = "/v1"

	URLProposals     = APIVersionV1 + "/proposals"
	URLProposal      = APIVersionV1 + "/proposals/{id}"
	URLProposalVotes = APIVersionV1 + "/proposals/{id}/votes"
	URLVoterVotes    = APIVersionV1 + "/votes/{address}"
	URLVoter         = APIVersionV1 + "/voters/{address}"
	URLAccount       = APIVersionV1 + "/accounts/{address}"
)
