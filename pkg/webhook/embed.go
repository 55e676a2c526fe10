package webhook

// Embed colors, in decimal as the webhook expects.
const (
	ColorDefault  = 3447003  // blue
	ColorStart    = 15844367 // gold
	ColorAnswer   = 3066993  // green
	ColorQuestion = 15105570 // orange
	ColorFailure  = 15158332 // red
)

// Notification is one progress message. It is sent once and never stored.
type Notification struct {
	Title       string
	Description string
	Color       int
	Footer      string
}

type payload struct {
	Embeds []embed `json:"embeds"`
}

type embed struct {
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Color       int          `json:"color"`
	Timestamp   string       `json:"timestamp"`
	Footer      *embedFooter `json:"footer,omitempty"`
}

type embedFooter struct {
	Text string `json:"text"`
}

func (n Notification) toPayload(timestamp string) payload {
	e := embed{
		Title:       n.Title,
		Description: n.Description,
		Color:       n.Color,
		Timestamp:   timestamp,
	}
	if e.Color == 0 {
		e.Color = ColorDefault
	}
	if n.Footer != "" {
		e.Footer = &embedFooter{Text: n.Footer}
	}
	return payload{Embeds: []embed{e}}
}
