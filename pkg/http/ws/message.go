package ws

import "encoding/json"

// MessageType constants for WebSocket protocol.
const (
	// Client -> Server
	TypeChooseVariant = "choose_variant"
	TypeUpdateAnswer  = "update_answer"
	TypeSubmit        = "submit"
	TypeSkip          = "skip"
	TypeNext          = "next"
	TypeReset         = "reset"
	TypePing          = "ping"

	// Server -> Client
	TypeSnapshot = "snapshot"
	TypeError    = "error"
	TypePong     = "pong"
)

// Message wraps all WebSocket payloads with type and optional request ID.
type Message struct {
	Type      string          `json:"type"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	RequestID string          `json:"request_id,omitempty"`
}

// NewMessage marshals payload into a message of the given type. A nil
// payload leaves Payload empty.
func NewMessage(typ string, payload interface{}) (Message, error) {
	msg := Message{Type: typ}
	if payload == nil {
		return msg, nil
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return Message{}, err
	}
	msg.Payload = raw
	return msg, nil
}

// Client Messages (incoming)

type ChooseVariantPayload struct {
	Variant string `json:"variant"`
}

type UpdateAnswerPayload struct {
	Answer string `json:"answer"`
}

// Server Messages (outgoing)

type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
