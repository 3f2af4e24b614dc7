package mailer

import (
	"fmt"
	"html"
	"strings"

	"portfolio/internal/models"
)

// renderSubject builds the notification subject line. The prefix is
// operator-configured and may be empty.
func renderSubject(prefix string, msg *models.ContactMessage) string {
	subject := fmt.Sprintf("New message from %s", msg.Name)
	if prefix != "" {
		return prefix + " " + subject
	}
	return subject
}

// renderText builds the plain-text body. Fields were sanitized before
// persistence, so no further escaping is needed here.
func renderText(msg *models.ContactMessage) string {
	var b strings.Builder
	fmt.Fprintf(&b, "New contact message from %s <%s>\n\n", msg.Name, msg.Email)
	b.WriteString(msg.Message)
	b.WriteString("\n")
	return b.String()
}

// renderHTML builds the HTML alternative. Escaping happens here because the
// sanitizer preserves literal angle brackets in plain text.
func renderHTML(msg *models.ContactMessage) string {
	body := strings.ReplaceAll(html.EscapeString(msg.Message), "\n", "<br>\n")
	return fmt.Sprintf(
		"<p>New contact message from <strong>%s</strong> &lt;%s&gt;</p>\n<p>%s</p>\n",
		html.EscapeString(msg.Name),
		html.EscapeString(msg.Email),
		body,
	)
}
