package analyzer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func techNames(result TechResult) []string {
	names := make([]string, len(result.Technologies))
	for i, tech := range result.Technologies {
		names[i] = tech.Name
	}
	return names
}

func TestTechFingerprint(t *testing.T) {
	body := `<html><head>
		<meta name="generator" content="WordPress 6.4">
		<script src="/wp-content/themes/x/app.js"></script>
		<script src="https://code.jquery.com/jquery-3.7.1.min.js"></script>
	</head><body></body></html>`

	target := newTarget(t, "https://acme.com/", body)
	target.Headers.Set("Server", "nginx/1.25")
	target.Headers.Set("X-Powered-By", "PHP/8.2")

	out, err := NewTech().Analyze(context.Background(), target)
	require.NoError(t, err)

	result := out.(TechResult)
	names := techNames(result)
	assert.Contains(t, names, "WordPress 6.4")
	assert.Contains(t, names, "WordPress")
	assert.Contains(t, names, "jQuery")
	assert.Contains(t, names, "Nginx")
	assert.Contains(t, names, "PHP")
}

func TestTechDeduplicates(t *testing.T) {
	body := `<html><head>
		<script src="/wp-content/a.js"></script>
		<script src="/wp-includes/b.js"></script>
	</head><body></body></html>`

	out, err := NewTech().Analyze(context.Background(), newTarget(t, "https://acme.com/", body))
	require.NoError(t, err)

	result := out.(TechResult)
	assert.Equal(t, []string{"WordPress"}, techNames(result))
}

func TestTechLoginFormDetection(t *testing.T) {
	body := `<html><body><form action="/login">
		<input type="text" name="user">
		<input type="password" name="pass">
	</form></body></html>`

	out, err := NewTech().Analyze(context.Background(), newTarget(t, "https://acme.com/login", body))
	require.NoError(t, err)
	assert.True(t, out.(TechResult).HasLoginForm)

	out, err = NewTech().Analyze(context.Background(), newTarget(t, "https://acme.com/", "<html><body></body></html>"))
	require.NoError(t, err)
	assert.False(t, out.(TechResult).HasLoginForm)
}
