package mail

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageCarriesTextAndHTMLParts(t *testing.T) {
	m := NewSendgridMailer("key", "noreply@farmstand.test", "https://farmstand.test")

	link := "https://farmstand.test/api/v1/auth/verify-email?token=tok"
	text := fmt.Sprintf("Welcome to Farmstand! Please verify your email by opening %s", link)
	html := fmt.Sprintf(`Please verify your email by clicking <a href="%s">here</a>.`, link)

	message := m.message("buyer@example.com", "Verify your email", text, html)
	require.Len(t, message.Content, 2)

	byType := map[string]string{}
	for _, c := range message.Content {
		byType[c.Type] = c.Value
	}

	// The plain part must be a real text rendering, not the HTML reused.
	plain, ok := byType["text/plain"]
	require.True(t, ok)
	assert.Contains(t, plain, link)
	assert.NotContains(t, plain, "<a href")

	rich, ok := byType["text/html"]
	require.True(t, ok)
	assert.Contains(t, rich, "<a href")
}
