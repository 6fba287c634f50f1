package dto

// CreateMoodRequest mood check-in payload
type CreateMoodRequest struct {
	Score int    `json:"score" binding:"required,min=1,max=5"`
	Note  string `json:"note" binding:"omitempty,max=500"`
}
