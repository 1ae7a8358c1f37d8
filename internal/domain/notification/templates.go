package notification

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v2"
)

//go:embed templates.yaml
var defaultTemplates []byte

var ErrUnknownType = errors.New("unknown notification type")

// Template holds the title and message patterns of one notification type.
// Placeholders are written as {name}.
type Template struct {
	Title   string `yaml:"title"`
	Message string `yaml:"message"`
}

type Templates map[Type]Template

func LoadTemplates(data []byte) (Templates, error) {
	raw := map[string]Template{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse notification templates: %w", err)
	}
	out := make(Templates, len(raw))
	for key, tpl := range raw {
		t := Type(key)
		if !t.Valid() {
			return nil, fmt.Errorf("%w: %q", ErrUnknownType, key)
		}
		out[t] = tpl
	}
	return out, nil
}

// DefaultTemplates returns the embedded template set.
func DefaultTemplates() Templates {
	t, err := LoadTemplates(defaultTemplates)
	if err != nil {
		panic(err)
	}
	return t
}

// Render fills the template for typ. Placeholders without a value are left
// as written.
func (t Templates) Render(typ Type, vars map[string]string) (title, message string, err error) {
	tpl, ok := t[typ]
	if !ok {
		return "", "", fmt.Errorf("%w: %q", ErrUnknownType, typ)
	}
	pairs := make([]string, 0, len(vars)*2)
	for k, v := range vars {
		pairs = append(pairs, "{"+k+"}", v)
	}
	r := strings.NewReplacer(pairs...)
	return r.Replace(tpl.Title), r.Replace(tpl.Message), nil
}
