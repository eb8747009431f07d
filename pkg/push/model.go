package push

type SendRequest struct {
	EventID   string      `json:"event_id"`
	Platform  string      `json:"platform"`
	UserID    string      `json:"user_id"`
	Type      string      `json:"type"`
	ChannelID *int64      `json:"channel_id,omitempty"`
	Data      interface{} `json:"data"`
}

type SendResponse struct {
	Success   bool   `json:"success"`
	MessageID string `json:"message_id,omitempty"`
	Error     string `json:"error,omitempty"`
}
