package classify

import (
	"log/slog"
	"strings"

	"gopkg.in/yaml.v3"

	"jdisco/internal/walker"
)

// Classifier evaluates files against the pattern vocabulary.
type Classifier struct {
	vocab  *Vocabulary
	logger *slog.Logger
}

// NewClassifier creates a classifier over the given vocabulary.
// A nil vocabulary means the builtin one.
func NewClassifier(vocab *Vocabulary, logger *slog.Logger) *Classifier {
	if vocab == nil {
		vocab = DefaultVocabulary()
	}
	return &Classifier{
		vocab:  vocab,
		logger: logger,
	}
}

// NeedsContent reports whether classification of this file requires its
// content. JSF pages classify by extension alone.
func (c *Classifier) NeedsContent(rec walker.FileRecord) bool {
	if rec.Extension == ".java" {
		return true
	}
	return containsString(c.vocab.ConfigExtensions, rec.Extension)
}

// Classify returns the set of categories the file belongs to. The content
// argument may be nil when NeedsContent is false. Binary content is never
// classified; it is skipped with a warning.
func (c *Classifier) Classify(rec walker.FileRecord, content []byte) []Match {
	var matches []Match

	if containsString(c.vocab.JSFExtensions, rec.Extension) {
		matches = append(matches, Match{Category: CategoryJSFPage})
	}

	if rec.Extension == ".java" && content != nil {
		if IsBinary(content) {
			c.logger.Warn("Skipping binary file", "file", rec.RelativePath)
			return matches
		}
		matches = append(matches, c.classifyJava(content)...)
	}

	if containsString(c.vocab.ConfigExtensions, rec.Extension) && content != nil {
		if IsBinary(content) {
			c.logger.Warn("Skipping binary file", "file", rec.RelativePath)
			return matches
		}
		if m, ok := c.classifyDBConfig(rec, content); ok {
			matches = append(matches, m)
		}
	}

	return matches
}

// classifyJava runs the annotation vocabulary over Java source text and
// groups hits per category. A class annotated both @Entity and @Named gets
// both memberships.
func (c *Classifier) classifyJava(content []byte) []Match {
	text := string(content)

	perCategory := make(map[Category]*Match)
	order := make([]Category, 0, 2)

	for i := range c.vocab.Patterns {
		p := &c.vocab.Patterns[i]
		if !p.Regex.MatchString(text) {
			continue
		}
		m, ok := perCategory[p.Category]
		if !ok {
			m = &Match{Category: p.Category}
			perCategory[p.Category] = m
			order = append(order, p.Category)
		}
		m.Patterns = append(m.Patterns, p.Token)
		if p.Role != RoleNone && !containsRole(m.Roles, p.Role) {
			m.Roles = append(m.Roles, p.Role)
		}
	}

	matches := make([]Match, 0, len(order))
	for _, cat := range order {
		matches = append(matches, *perCategory[cat])
	}
	return matches
}

// classifyDBConfig qualifies a configuration candidate by keyword presence.
// YAML candidates are additionally checked structurally: keywords are matched
// against the flattened key paths, so a datasource block is found even when
// comments or values would mislead a raw text scan.
func (c *Classifier) classifyDBConfig(rec walker.FileRecord, content []byte) (Match, bool) {
	haystacks := []string{strings.ToLower(string(content))}

	if rec.Extension == ".yml" || rec.Extension == ".yaml" {
		if keys, ok := yamlKeyPaths(content); ok {
			haystacks = append(haystacks, strings.ToLower(strings.Join(keys, "\n")))
		}
	}

	var found []string
	for _, kw := range c.vocab.DBKeywords {
		needle := strings.ToLower(kw)
		for _, hay := range haystacks {
			if strings.Contains(hay, needle) {
				found = append(found, kw)
				break
			}
		}
	}

	if len(found) == 0 {
		return Match{}, false
	}
	return Match{Category: CategoryDBConfig, Patterns: found}, true
}

// yamlKeyPaths flattens a YAML document into dotted key paths
// (e.g. "spring.datasource.url"). Returns ok=false for invalid YAML.
func yamlKeyPaths(content []byte) ([]string, bool) {
	var doc map[string]interface{}
	if err := yaml.Unmarshal(content, &doc); err != nil {
		return nil, false
	}

	var keys []string
	var flatten func(prefix string, node interface{})
	flatten = func(prefix string, node interface{}) {
		m, ok := node.(map[string]interface{})
		if !ok {
			return
		}
		for k, v := range m {
			path := k
			if prefix != "" {
				path = prefix + "." + k
			}
			keys = append(keys, path)
			flatten(path, v)
		}
	}
	flatten("", doc)
	return keys, true
}

// IsBinary reports whether content looks like a binary file (null byte in
// the first 512 bytes).
func IsBinary(content []byte) bool {
	n := len(content)
	if n > 512 {
		n = 512
	}
	for _, b := range content[:n] {
		if b == 0 {
			return true
		}
	}
	return false
}

func containsString(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}

func containsRole(slice []Role, item Role) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
