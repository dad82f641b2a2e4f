// internal/signal/signal.go
package signal

import "strings"

// StopToken is the reserved control sequence. A participant emitting it
// anywhere in a response ends the conversation.
const StopToken = "^C^C"

// Index returns the byte offset of the first stop token in content, or -1.
func Index(content string) int {
	return strings.Index(content, StopToken)
}

// Contains reports whether content carries the stop token.
func Contains(content string) bool {
	return Index(content) >= 0
}

// Excerpt returns a short single-line quote of the text surrounding the
// first stop token, for use in the system notice. Empty if no token.
func Excerpt(content string) string {
	idx := Index(content)
	if idx < 0 {
		return ""
	}

	start := idx - 40
	if start < 0 {
		start = 0
	}
	end := idx + len(StopToken) + 40
	if end > len(content) {
		end = len(content)
	}

	excerpt := content[start:end]
	excerpt = strings.Join(strings.Fields(excerpt), " ")
	if start > 0 {
		excerpt = "..." + excerpt
	}
	if end < len(content) {
		excerpt += "..."
	}
	return excerpt
}
