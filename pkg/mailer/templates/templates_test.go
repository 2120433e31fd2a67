package templates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-ddd-user-registration/config"
)

func TestRender_Welcome(t *testing.T) {
	cfg := &config.Config{AppName: "Acme", CompanyName: "Acme Inc", SupportURL: "https://acme.test/help"}
	data := NewWelcomeData(cfg, "new@example.com", WithTime(time.Date(2026, 3, 4, 5, 6, 0, 0, time.UTC)))

	subject, text, html, err := Render(Welcome, data)
	require.NoError(t, err)

	assert.Equal(t, "Welcome to Acme", subject)
	assert.Contains(t, text, "Hi new@example.com")
	assert.Contains(t, text, "04 March 2026, 05:06")
	assert.Contains(t, text, "https://acme.test/help")
	assert.Contains(t, html, `href="https://acme.test/help"`)
	assert.Contains(t, html, "Acme Inc")
}

func TestRender_WelcomeDefaults(t *testing.T) {
	subject, text, _, err := Render(Welcome, NewWelcomeData(nil, "new@example.com"))
	require.NoError(t, err)

	assert.Equal(t, "Welcome to our service", subject)
	assert.Contains(t, text, "The team")
	assert.NotContains(t, text, "Questions?")
}

func TestRender_UnknownTemplate(t *testing.T) {
	_, _, _, err := Render("missing", map[string]any{})
	assert.Error(t, err)
}

func TestNewWelcomeData_SupportURLFromConfig(t *testing.T) {
	data := NewWelcomeData(&config.Config{SupportURL: "https://a.test"}, "x@example.com")
	assert.Equal(t, "https://a.test", data["SupportURL"])
	assert.Equal(t, Welcome, data["Type"])

	data = NewWelcomeData(nil, "x@example.com")
	assert.Empty(t, data["SupportURL"])
}
