package metrics

var (
	Voting = NopVotingMetrics()
	API    = NopAPIMetrics()
)
