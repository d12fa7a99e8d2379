package events

type SessionCreatedEvent struct {
	SessionID string `json:"session_id"`
	ClientID  string `json:"client_id"`
	Name      string `json:"name"`
}

type SessionArchivedEvent struct {
	SessionID string `json:"session_id"`
}

type RankingComputedEvent struct {
	SessionID        string  `json:"session_id"`
	ResultID         string  `json:"result_id"`
	Method           string  `json:"method"`
	PropertyCount    int     `json:"property_count"`
	ConsistencyRatio float64 `json:"consistency_ratio"`
	IsConsistent     bool    `json:"is_consistent"`
	TopPropertyID    string  `json:"top_property_id,omitempty"`
}
