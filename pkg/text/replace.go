package text

import (
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gitlab.com/tozd/go/errors"
)

// ReplacementRule rewrites FromText to ToText in values whose path matches
// PathGlob. Paths are slash separated ("forms/main/buttons/0/text") and
// PathGlob uses doublestar syntax. An empty PathGlob matches every path.
type ReplacementRule struct {
	FromText string
	ToText   string
	PathGlob string
}

// ReplacementResult describes what a replacement pass changed
type ReplacementResult struct {
	WasModified      bool
	ReplacementCount int
	OriginalContent  string
	ModifiedContent  string
}

// Replacer implements plain substring replacement scoped by path globs
type Replacer struct{}

// NewReplacer creates a new Replacer
func NewReplacer() *Replacer {
	return &Replacer{}
}

// Replace applies every rule matching path to content, in order
func (r *Replacer) Replace(path, content string, rules []ReplacementRule) (*ReplacementResult, error) {
	result := &ReplacementResult{
		OriginalContent: content,
		ModifiedContent: content,
	}

	current := content
	for i, rule := range rules {
		// Skip empty rules
		if rule.FromText == "" {
			continue
		}

		if rule.PathGlob != "" {
			ok, err := doublestar.Match(rule.PathGlob, path)
			if err != nil {
				return nil, errors.Errorf("rule %d: matching %q: %w", i, rule.PathGlob, err)
			}
			if !ok {
				continue
			}
		}

		if n := strings.Count(current, rule.FromText); n > 0 {
			current = strings.ReplaceAll(current, rule.FromText, rule.ToText)
			result.WasModified = true
			result.ReplacementCount += n
		}
	}

	result.ModifiedContent = current
	return result, nil
}

// ValidateRules checks that every rule has search text and a well-formed glob
func (r *Replacer) ValidateRules(rules []ReplacementRule) error {
	for i, rule := range rules {
		if rule.FromText == "" {
			return errors.Errorf("rule %d: from_text is required", i)
		}
		if rule.PathGlob != "" && !doublestar.ValidatePattern(rule.PathGlob) {
			return errors.Errorf("rule %d: invalid path glob %q", i, rule.PathGlob)
		}
	}
	return nil
}
