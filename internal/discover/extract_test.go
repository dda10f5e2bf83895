package discover

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractSlug(t *testing.T) {
	const host = "jobs.example.com"

	tests := []struct {
		name string
		url  string
		want string
		ok   bool
	}{
		{"plain", "https://jobs.example.com/acme-co", "acme-co", true},
		{"query and fragment stripped", "https://jobs.example.com/acme-co?utm=x#section", "acme-co", true},
		{"deep path keeps first segment", "https://jobs.example.com/acme-co/1b2c3d4e/application", "acme-co", true},
		{"uppercase normalized", "https://JOBS.EXAMPLE.COM/Acme-Co", "acme-co", true},
		{"trailing slash", "https://jobs.example.com/acme-co/", "acme-co", true},
		{"unrelated host", "https://careers.other.com/acme-co", "", false},
		{"suffix-only host match rejected", "https://evil-jobs.example.com.attacker.io/x", "", false},
		{"root path", "https://jobs.example.com/", "", false},
		{"empty", "", "", false},
		{"garbage", "::not a url::", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractSlug(tt.url, host)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractSlugSubdomain(t *testing.T) {
	slug, ok := ExtractSlug("https://eu.jobs.example.com/acme-co", "jobs.example.com")
	assert.True(t, ok)
	assert.Equal(t, "acme-co", slug)
}
