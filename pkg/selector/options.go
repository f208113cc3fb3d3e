package selector

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/xeipuuv/gojsonschema"
)

// OptionSet is a loaded option list plus the presentation defaults a
// choices file can carry alongside it.
type OptionSet struct {
	Options   []string
	Default   string
	Highlight string // r, b or a; empty means unset
}

// ParseList splits a comma-separated option list. Empty fields are kept
// so indices reported by a session stay aligned with the list as given.
func ParseList(s string) []string {
	return strings.Split(s, ",")
}

// choicesSchema validates the object form of a choices file.
const choicesSchema = `{
	"type": "object",
	"required": ["options"],
	"properties": {
		"options": {
			"type": "array",
			"minItems": 1,
			"items": {"type": "string"}
		},
		"default": {"type": "string"},
		"highlight": {
			"enum": ["r", "b", "a", "reverse", "bracket", "arrow"]
		}
	}
}`

// LoadOptions reads a select option list from a file. JSON content is
// either a bare array of strings or a choices object with optional
// default and highlight keys; anything else is plain text with one
// option per line, blank lines skipped.
func LoadOptions(path string) (*OptionSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read file '%s': %w", path, err)
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && (trimmed[0] == '[' || trimmed[0] == '{') && gjson.ValidBytes(trimmed) {
		return parseChoices(trimmed)
	}

	set := &OptionSet{}
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSuffix(line, "\r")
		if line != "" {
			set.Options = append(set.Options, line)
		}
	}
	return set, nil
}

func parseChoices(data []byte) (*OptionSet, error) {
	doc := gjson.ParseBytes(data)
	if doc.IsArray() {
		set := &OptionSet{}
		for _, v := range doc.Array() {
			set.Options = append(set.Options, v.String())
		}
		return set, nil
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(choicesSchema),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to validate choices file: %w", err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return nil, fmt.Errorf("invalid choices file: %s", strings.Join(msgs, "; "))
	}

	set := &OptionSet{Default: doc.Get("default").String()}
	for _, v := range doc.Get("options").Array() {
		set.Options = append(set.Options, v.String())
	}
	switch doc.Get("highlight").String() {
	case "r", "reverse":
		set.Highlight = "r"
	case "b", "bracket":
		set.Highlight = "b"
	case "a", "arrow":
		set.Highlight = "a"
	}
	return set, nil
}
