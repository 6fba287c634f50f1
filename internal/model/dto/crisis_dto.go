package dto

// CreateCrisisSessionRequest crisis tool completion payload
type CreateCrisisSessionRequest struct {
	Tool string `json:"tool" binding:"required,oneof=breathe grounding plan"`
}

// CreateCrisisSessionResponse crisis tool completion result
type CreateCrisisSessionResponse struct {
	SessionID int64 `json:"session_id"`
}
