package checker

import (
	"strings"

	"github.com/behummble/link-alive/internal/models"
)

type rewriteRule struct {
	match       string
	replacement string
	headers     map[string]string
}

// Mirrors that stopped answering on their own host but still serve through a
// sibling domain as long as the referer points at it.
var rewriteRules = []rewriteRule{
	{
		match:       "driveindex.ga/",
		replacement: "hashhackers.com/",
		headers:     map[string]string{"referer": "hashhackers.com"},
	},
}

// Resolve maps a submitted URL to the URL that is actually checked. Matching
// is a plain substring test and only the first occurrence is replaced.
func Resolve(request models.LinkRequest) models.ResolvedLink {
	link := request.OriginalURL
	resolved := models.ResolvedLink{
		OriginalURL:  link,
		EffectiveURL: link,
		ExtraHeaders: map[string]string{},
	}

	for _, rule := range rewriteRules {
		if !strings.Contains(link, rule.match) {
			continue
		}
		resolved.EffectiveURL = strings.Replace(link, rule.match, rule.replacement, 1)
		for key, value := range rule.headers {
			resolved.ExtraHeaders[key] = value
		}
		break
	}

	return resolved
}
