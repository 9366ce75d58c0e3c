package entity

// Contact is an external customer entry keyed by account identifier.
// Lists are supplied wholesale per matching run, never incrementally.
type Contact struct {
	AccountID string `json:"account_id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
}

// MatchPair joins one artifact with the contact that owns its account.
type MatchPair struct {
	Artifact Artifact `json:"artifact"`
	Contact  Contact  `json:"contact"`
}

// MatchStats summarizes one matching run.
type MatchStats struct {
	Total     int `json:"total"`
	Matched   int `json:"matched"`
	Unmatched int `json:"unmatched"`
}

// MatchResult is the matched/unmatched partition of one matching run.
// Recomputed fully on every invocation; no hidden state.
type MatchResult struct {
	Matched   []MatchPair `json:"matched"`
	Unmatched []MatchPair `json:"unmatched"` // contact is a placeholder with empty email
	Stats     MatchStats  `json:"stats"`
}
