package tui

import (
	"fmt"
	"strings"

	"github.com/runhub/runhub/internal/chat"
)

// renderChat renders the assistant transcript with the input line below.
// Assistant messages pass through glamour so markdown in replies reads well.
func (m Model) renderChat() string {
	var b strings.Builder

	for _, msg := range m.chat.Messages() {
		switch msg.Role {
		case chat.RoleUser:
			b.WriteString("  " + chatUserStyle.Render("you") + " " + msg.Content + "\n")
		case chat.RoleAssistant:
			b.WriteString("  " + chatAssistantStyle.Render("coach") + m.renderMarkdown(msg.Content) + "\n")
		}
	}

	if m.chat.Busy() {
		b.WriteString("  " + m.spinner.View() + subtleStyle.Render(" thinking...") + "\n")
	}

	b.WriteString("\n")
	switch {
	case m.chat.Full():
		b.WriteString("  " + warnStyle.Render("Conversation limit reached. Press ctrl+l to start over.") + "\n")
	case m.chat.NearLimit():
		b.WriteString("  " + warnStyle.Render(fmt.Sprintf(
			"Getting close to the limit — %s left.", plural(m.chat.Remaining(), "message"))) + "\n")
	}

	b.WriteString("  " + m.input.View())
	return b.String()
}

// renderMarkdown renders assistant markdown, falling back to plain text when
// no renderer is available yet (before the first WindowSizeMsg).
func (m Model) renderMarkdown(content string) string {
	if m.renderer == nil {
		return " " + content
	}
	out, err := m.renderer.Render(content)
	if err != nil {
		return " " + content
	}
	return "\n" + strings.TrimRight(out, "\n") + "\n"
}
