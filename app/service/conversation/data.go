package conversation

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Turn is one entry of a chat transcript. Content is a string for plain
// text turns; tool-call records and other host artifacts carry structured
// content and are skipped by consumers that only understand text.
type Turn struct {
	Role     string
	Content  any
	Metadata map[string]string
}

func (t Turn) Text() (string, bool) {
	text, ok := t.Content.(string)
	return text, ok
}
