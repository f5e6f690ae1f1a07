package config

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/magiconair/properties"
	"gopkg.in/yaml.v3"
)

// Format selects an export serialisation.
type Format string

// Export formats.
const (
	FormatYAML       Format = "yaml"
	FormatJSON       Format = "json"
	FormatProperties Format = "properties"
)

// ParseFormat converts a flag value into a Format.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatYAML, FormatJSON, FormatProperties:
		return f, nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown format %q (want yaml, json or properties)", s)
	}
}

// report is the serialised shape of a Result.
type report struct {
	RunID       string            `json:"run_id" yaml:"run_id"`
	Environment string            `json:"environment" yaml:"environment"`
	Properties  map[string]Value  `json:"properties" yaml:"properties"`
	Tokens      TokenMap          `json:"filter_tokens" yaml:"filter_tokens"`
	Loaded      []string          `json:"loaded_files,omitempty" yaml:"loaded_files,omitempty"`
	Promoted    map[string]string `json:"system_properties,omitempty" yaml:"system_properties,omitempty"`
}

func newReport(res *Result) report {
	props := make(map[string]Value, res.Namespace.Len())
	for _, v := range res.Namespace.Values() {
		props[v.Key] = v
	}
	loaded := make([]string, 0, len(res.Loaded))
	for _, d := range res.Loaded {
		loaded = append(loaded, d.Path)
	}
	return report{
		RunID:       res.RunID,
		Environment: res.EnvName,
		Properties:  props,
		Tokens:      res.Tokens(),
		Loaded:      loaded,
		Promoted:    res.Promoted,
	}
}

// Write serialises res to w in the given format.
func Write(w io.Writer, res *Result, format Format) error {
	switch format {
	case FormatYAML:
		return WriteYAML(w, res)
	case FormatJSON:
		return WriteJSON(w, res)
	case FormatProperties:
		return WriteProperties(w, res)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

// WriteYAML writes the resolved properties, their provenance and the filter
// token map as YAML.
func WriteYAML(w io.Writer, res *Result) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(newReport(res)); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return enc.Close()
}

// WriteJSON writes the same report as WriteYAML in JSON.
func WriteJSON(w io.Writer, res *Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(newReport(res)); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

// WriteProperties writes the resolved properties as a property file, each
// entry commented with the layer it came from.
func WriteProperties(w io.Writer, res *Result) error {
	p := properties.NewProperties()
	p.DisableExpansion = true
	for _, v := range res.Namespace.Values() {
		if _, _, err := p.Set(v.Key, v.Value); err != nil {
			return fmt.Errorf("set %s: %w", v.Key, err)
		}
		comment := string(v.Source)
		if v.Path != "" {
			comment += " " + v.Path
		}
		p.SetComment(v.Key, comment)
	}
	if _, err := p.WriteComment(w, "# ", properties.UTF8); err != nil {
		return fmt.Errorf("write properties: %w", err)
	}
	return nil
}

// WriteTokens writes the filter token map as a sorted property file.
func WriteTokens(w io.Writer, tokens TokenMap) error {
	p := properties.NewProperties()
	p.DisableExpansion = true
	for _, k := range sortedKeys(tokens) {
		if _, _, err := p.Set(k, tokens[k]); err != nil {
			return fmt.Errorf("set %s: %w", k, err)
		}
	}
	if _, err := p.Write(w, properties.UTF8); err != nil {
		return fmt.Errorf("write tokens: %w", err)
	}
	return nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
