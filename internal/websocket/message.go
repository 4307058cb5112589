package websocket

// Message defines the structure for websocket feed messages.
type Message struct {
	Action  string      `json:"action"`
	Payload interface{} `json:"payload"`
}
