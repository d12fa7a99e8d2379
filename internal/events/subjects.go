package events

const (
	StreamName   = "HOMERANK"
	StreamMaxAge = "720h" // 30 days
)

func SubjectSessionCreated(sessionID string) string {
	return "homerank.session." + sessionID + ".created"
}

func SubjectSessionArchived(sessionID string) string {
	return "homerank.session." + sessionID + ".archived"
}

func SubjectRankingComputed(sessionID string) string {
	return "homerank.session." + sessionID + ".ranked"
}
