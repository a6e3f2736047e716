package dto

import (
	"time"
)

type SendChatRequest struct {
	Chat string `json:"chat" validate:"required,max=2000"`
}

type ChatTurnDTO struct {
	Role      string    `json:"role"`
	Chat      string    `json:"chat"`
	Source    string    `json:"source,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type SendChatResponse struct {
	SessionId string       `json:"session_id"`
	Sent      *ChatTurnDTO `json:"sent"`
	Reply     *ChatTurnDTO `json:"reply"`
	Source    string       `json:"source"`             // "faq" | "ai" | "help"
	Question  string       `json:"question,omitempty"` // matched FAQ question
	Score     float64      `json:"score,omitempty"`
	Outcome   string       `json:"outcome,omitempty"` // generation outcome when source is "ai"
	Language  string       `json:"language,omitempty"`
}

type GetChatHistoryResponse struct {
	SessionId string         `json:"session_id"`
	Turns     []*ChatTurnDTO `json:"turns"`
}

type ResetSessionResponse struct {
	SessionId  string `json:"session_id"`
	Configured bool   `json:"configured"`
	Message    string `json:"message,omitempty"`
}
