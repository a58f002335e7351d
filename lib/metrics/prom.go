package metrics

func InitPrometheusMetrics() {
	Voting = PromVotingMetrics()
	API = PromAPIMetrics()
}
