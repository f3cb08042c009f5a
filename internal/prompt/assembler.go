// Package prompt assembles the system and user prompts sent to the
// completion provider. Assembly is a pure function of its inputs.
package prompt

import "strings"

// contextTurns is the number of trailing conversation turns rendered into
// the system prompt. A safety bound independent of the caller's own cap.
const contextTurns = 6

// Role tags the author of a conversation turn.
type Role string

// Role constants for conversation turns.
const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one message in a conversation, tagged with its author role.
type Turn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Prompt is the assembled model input.
type Prompt struct {
	System string
	User   string
}

// Assemble builds the model input from the user message, the conversation
// history, and an optional search snippet. The message passes through to the
// user prompt unmodified; persona rules, the trailing turns of history, and
// the search snippet are concatenated into the system prompt. History and
// search sections are omitted when empty.
func Assemble(message string, history []Turn, searchText string) Prompt {
	var b strings.Builder
	b.WriteString(personaSpec)
	b.WriteString("\n")

	if ctx := renderHistory(history); ctx != "" {
		b.WriteString(historyHeader)
		b.WriteString("\n")
		b.WriteString(ctx)
		b.WriteString("\n")
	}

	if searchText != "" {
		b.WriteString(searchLabel)
		b.WriteString(searchText)
		b.WriteString("\n")
	}

	return Prompt{
		System: b.String(),
		User:   message,
	}
}

// renderHistory formats the trailing contextTurns turns as labeled lines.
func renderHistory(history []Turn) string {
	if len(history) == 0 {
		return ""
	}
	if len(history) > contextTurns {
		history = history[len(history)-contextTurns:]
	}

	lines := make([]string, len(history))
	for i, turn := range history {
		label := assistantLabel
		if turn.Role == RoleUser {
			label = userLabel
		}
		lines[i] = label + turn.Content
	}
	return strings.Join(lines, "\n")
}
