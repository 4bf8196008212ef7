package config

import (
	"fmt"
	"os"
	"regexp"

	toml "github.com/pelletier/go-toml/v2"

	"jdisco/internal/classify"
)

// vocabularyFile is the on-disk shape of a TOML pattern override.
//
//	db_keywords = ["mongodb.uri"]
//
//	[[patterns]]
//	name = "ejb_stateless"
//	category = "business-component"
//	role = "service"
//	token = "@Stateless"
type vocabularyFile struct {
	DBKeywords []string       `toml:"db_keywords"`
	Patterns   []patternEntry `toml:"patterns"`
}

type patternEntry struct {
	Name        string `toml:"name"`
	Category    string `toml:"category"`
	Role        string `toml:"role"`
	Token       string `toml:"token"`
	Regex       string `toml:"regex"`
	Description string `toml:"description"`
}

// LoadVocabulary returns the builtin vocabulary extended with the TOML
// override at path. An empty path returns the builtin vocabulary unchanged.
func LoadVocabulary(path string) (*classify.Vocabulary, error) {
	vocab := classify.DefaultVocabulary()
	if path == "" {
		return vocab, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read patterns file: %w", err)
	}

	var file vocabularyFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse patterns file: %w", err)
	}

	patterns := make([]classify.Pattern, 0, len(file.Patterns))
	for _, e := range file.Patterns {
		p, err := e.compile()
		if err != nil {
			return nil, err
		}
		patterns = append(patterns, p)
	}

	vocab.Extend(patterns, file.DBKeywords)
	return vocab, nil
}

func (e patternEntry) compile() (classify.Pattern, error) {
	var category classify.Category
	switch e.Category {
	case string(classify.CategoryEntity):
		category = classify.CategoryEntity
	case string(classify.CategoryBusinessComponent):
		category = classify.CategoryBusinessComponent
	default:
		return classify.Pattern{}, fmt.Errorf("pattern %q: unknown category %q", e.Name, e.Category)
	}

	var role classify.Role
	switch e.Role {
	case "":
		role = classify.RoleNone
	case string(classify.RoleController):
		role = classify.RoleController
	case string(classify.RoleService):
		role = classify.RoleService
	default:
		return classify.Pattern{}, fmt.Errorf("pattern %q: unknown role %q", e.Name, e.Role)
	}

	if e.Token == "" {
		return classify.Pattern{}, fmt.Errorf("pattern %q: token is required", e.Name)
	}

	expr := e.Regex
	if expr == "" {
		expr = regexp.QuoteMeta(e.Token) + `\b`
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return classify.Pattern{}, fmt.Errorf("pattern %q: invalid regex: %w", e.Name, err)
	}

	return classify.Pattern{
		Name:        e.Name,
		Category:    category,
		Role:        role,
		Token:       e.Token,
		Regex:       re,
		Description: e.Description,
	}, nil
}
