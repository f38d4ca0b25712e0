package checker

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/behummble/link-alive/internal/models"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name      string
		link      string
		effective string
		headers   map[string]string
	}{
		{
			name:      "dead mirror",
			link:      "https://driveindex.ga/0:/Movies/film.mkv",
			effective: "https://hashhackers.com/0:/Movies/film.mkv",
			headers:   map[string]string{"referer": "hashhackers.com"},
		},
		{
			name:      "only first occurrence",
			link:      "https://driveindex.ga/get?from=driveindex.ga/x",
			effective: "https://hashhackers.com/get?from=driveindex.ga/x",
			headers:   map[string]string{"referer": "hashhackers.com"},
		},
		{
			name:      "match inside query",
			link:      "https://example.com/?mirror=driveindex.ga/a",
			effective: "https://example.com/?mirror=hashhackers.com/a",
			headers:   map[string]string{"referer": "hashhackers.com"},
		},
		{
			name:      "no trailing slash",
			link:      "https://driveindex.ga",
			effective: "https://driveindex.ga",
			headers:   map[string]string{},
		},
		{
			name:      "unrelated",
			link:      "https://example.com/file.zip",
			effective: "https://example.com/file.zip",
			headers:   map[string]string{},
		},
		{
			name:      "not a url",
			link:      "::not a url::",
			effective: "::not a url::",
			headers:   map[string]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolved := Resolve(models.LinkRequest{OriginalURL: tt.link})

			assert.Equal(t, tt.link, resolved.OriginalURL)
			assert.Equal(t, tt.effective, resolved.EffectiveURL)
			assert.Equal(t, tt.headers, resolved.ExtraHeaders)
		})
	}
}

func TestResolve_RulesNotShared(t *testing.T) {
	first := Resolve(models.LinkRequest{OriginalURL: "https://driveindex.ga/a"})
	first.ExtraHeaders["referer"] = "changed"

	second := Resolve(models.LinkRequest{OriginalURL: "https://driveindex.ga/b"})
	assert.Equal(t, "hashhackers.com", second.ExtraHeaders["referer"])
}
