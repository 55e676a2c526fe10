package chat

import (
	"errors"
	"fmt"
)

// ErrMalformedReply is returned when a decoded reply has no answer at
// choices[0].message.content.
var ErrMalformedReply = errors.New("malformed reply")

// Completion is the subset of a chat-completion reply the loop relies on.
// Pointer fields distinguish an absent value from an empty one.
type Completion struct {
	ID      string   `json:"id,omitempty"`
	Model   string   `json:"model,omitempty"`
	Choices []Choice `json:"choices"`
}

// Choice is one element of the reply list.
type Choice struct {
	Index   int      `json:"index"`
	Message *Message `json:"message"`
}

// Message holds the assistant text of a choice.
type Message struct {
	Role    string  `json:"role"`
	Content *string `json:"content"`
}

// Answer returns the text of the first choice.
func (c Completion) Answer() (string, error) {
	if len(c.Choices) == 0 {
		return "", fmt.Errorf("%w: empty completion choices", ErrMalformedReply)
	}
	msg := c.Choices[0].Message
	if msg == nil {
		return "", fmt.Errorf("%w: first choice has no message", ErrMalformedReply)
	}
	if msg.Content == nil {
		return "", fmt.Errorf("%w: first choice message has no content", ErrMalformedReply)
	}
	return *msg.Content, nil
}

// TransportError reports a request that never produced a decodable reply:
// a connection failure, a non-success status, or a body that is not JSON.
type TransportError struct {
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("chat request failed with status %d: %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("chat request failed: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }
