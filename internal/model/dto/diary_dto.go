package dto

// CreateDiaryEntryRequest diary save payload
type CreateDiaryEntryRequest struct {
	Content string `json:"content" binding:"required,max=10000"`
	Emotion string `json:"emotion" binding:"omitempty,max=30"`
}

// CreateDiaryEntryResponse diary save result with allowance bookkeeping
type CreateDiaryEntryResponse struct {
	EntryID   int64 `json:"entry_id"`
	Used      int   `json:"used"`
	Limit     int   `json:"limit"`
	Remaining int   `json:"remaining"`
	IsPremium bool  `json:"is_premium"`
}
