package question

import (
	"fmt"
	"strings"
)

const (
	sentenceTerminator = "."
	questionMark       = "?"
)

// Answerer is a reply that may carry answer text.
type Answerer interface {
	Answer() (string, error)
}

// Extract turns an answer into the next question: the second-to-last
// sentence when there are several, otherwise the only one, trimmed and
// suffixed with a question mark. The result can be meaningless (even "?").
func Extract(answer string) string {
	segments := strings.Split(answer, sentenceTerminator)
	picked := segments[0]
	if len(segments) > 1 {
		picked = segments[len(segments)-2]
	}
	return strings.TrimSpace(picked) + questionMark
}

// FromReply extracts the next question from a chat reply.
func FromReply(reply Answerer) (string, error) {
	answer, err := reply.Answer()
	if err != nil {
		return "", fmt.Errorf("extract question: %w", err)
	}
	return Extract(answer), nil
}
