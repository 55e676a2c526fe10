package chat

import (
	"encoding/json"
	"errors"
	"testing"
)

func decodeCompletion(t *testing.T, body string) Completion {
	t.Helper()
	var c Completion
	if err := json.Unmarshal([]byte(body), &c); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	return c
}

func TestAnswerMissingPaths(t *testing.T) {
	cases := map[string]string{
		"no choices":    `{}`,
		"empty choices": `{"choices":[]}`,
		"no message":    `{"choices":[{"index":0}]}`,
		"no content":    `{"choices":[{"message":{"role":"assistant"}}]}`,
		"null content":  `{"choices":[{"message":{"role":"assistant","content":null}}]}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := decodeCompletion(t, body).Answer()
			if !errors.Is(err, ErrMalformedReply) {
				t.Fatalf("expected ErrMalformedReply, got %v", err)
			}
		})
	}
}

func TestAnswerEmptyContentIsValid(t *testing.T) {
	answer, err := decodeCompletion(t, `{"choices":[{"message":{"content":""}}]}`).Answer()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if answer != "" {
		t.Fatalf("expected empty answer, got %q", answer)
	}
}

func TestTransportErrorMessage(t *testing.T) {
	err := &TransportError{StatusCode: 502, Err: errors.New("bad gateway")}
	if err.Error() != "chat request failed with status 502: bad gateway" {
		t.Fatalf("unexpected message %q", err.Error())
	}
	if !errors.Is(err, err.Err) {
		t.Fatal("expected Unwrap to expose the cause")
	}
}
