package dto

// AllowanceResult is the consumption decision payload. Field names are a
// client contract and must not change: allowed, used, limit, remaining,
// is_premium. limit and remaining are -1 for premium (unlimited).
type AllowanceResult struct {
	Allowed   bool `json:"allowed"`
	Used      int  `json:"used"`
	Limit     int  `json:"limit"`
	Remaining int  `json:"remaining"`
	IsPremium bool `json:"is_premium"`
}

// AllowanceSnapshot is the read-only usage overview for the profile screen.
type AllowanceSnapshot struct {
	Date         string `json:"date"`
	ChatUsed     int    `json:"chat_used"`
	ChatLimit    int    `json:"chat_limit"`
	JournalUsed  int    `json:"journal_used"`
	JournalLimit int    `json:"journal_limit"`
	IsPremium    bool   `json:"is_premium"`
}
