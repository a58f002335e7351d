package metrics

const (
	Namespace       = "quadvote"
	VotingSubsystem = "voting"
	APISubsystem    = "api"
)
