package locqa

// Action is a classifier decision category.
type Action string

// Classifier actions. Document mode uses ActionSearch and ActionDirect;
// code mode uses ActionSearchCode, ActionUseMemory, and ActionDirect.
const (
	ActionSearch     Action = "SEARCH"
	ActionDirect     Action = "DIRECT"
	ActionSearchCode Action = "SEARCH_CODE"
	ActionUseMemory  Action = "USE_MEMORY"
)

// Decision is a classifier output: an action plus a free-text reason.
// Decisions are produced and consumed within one loop turn and never
// persisted.
type Decision struct {
	Action Action `json:"action"`
	Reason string `json:"reason"`
}

// Confidence is the self-assessed sufficiency of an answer given the
// context actually gathered.
type Confidence string

// Confidence levels.
const (
	ConfidenceHigh   Confidence = "HIGH"
	ConfidenceMedium Confidence = "MEDIUM"
	ConfidenceLow    Confidence = "LOW"
)

// Assessment is a confidence assessor output. FollowUp, when non-empty,
// is an advisory refined query; the loop controller decides whether to
// act on it.
type Assessment struct {
	Confidence Confidence `json:"confidence"`
	Reason     string     `json:"reason"`
	FollowUp   string     `json:"follow_up_query"`
}

// FileSelection is the directed-selection strategy's model output:
// up to a handful of new paths to load, plus a flag meaning "already
// analyzed files answer the query".
type FileSelection struct {
	Files      []string `json:"files"`
	Reasoning  string   `json:"reasoning"`
	Sufficient bool     `json:"sufficient"`
}
