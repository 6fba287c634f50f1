package dto

// ChatMessage is one turn of the conversation.
type ChatMessage struct {
	Role    string `json:"role" binding:"required,oneof=user assistant"`
	Content string `json:"content" binding:"required"`
}

// SendMessageRequest chat payload
type SendMessageRequest struct {
	Message string `json:"message" binding:"required,max=4000"`
}

// SendMessageResponse carries the companion reply plus the updated
// allowance fields so the client can render the remaining counter.
type SendMessageResponse struct {
	Reply     string `json:"reply"`
	Used      int    `json:"used"`
	Limit     int    `json:"limit"`
	Remaining int    `json:"remaining"`
	IsPremium bool   `json:"is_premium"`
}
