// Package frontmatter detects and parses leading YAML/TOML frontmatter
// fences (spec.md §4.2). Only flat top-level scalar mappings are
// interpreted. A non-scalar YAML value is re-serialized to YAML text and
// stored under its key. The TOML scanner reads single-line "key = value"
// pairs only: table headers and other lines without "=" are skipped, so
// keys under a [table] are stored at the top level, and of a value spread
// over several lines only its first line is read.
package frontmatter

import (
	"bytes"
	"strings"

	"github.com/bukvar/bukvar/pkg/span"
	"gopkg.in/yaml.v3"
)

// Format identifies which fence style introduced the frontmatter.
type Format string

const (
	FormatNone Format = ""
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// Result holds the outcome of attempting to parse frontmatter at the
// start of a buffer.
type Result struct {
	// Present reports whether a well-formed frontmatter block was found.
	Present bool
	Format  Format
	// Span covers the opening fence through the closing fence inclusive,
	// so callers can skip straight past it to resume block parsing.
	Span span.Span
	// Keys preserves first-encounter order for deterministic output.
	Keys   []string
	Values map[string]string
}

var (
	yamlOpen  = []byte("---\n")
	tomlOpen  = []byte("+++\n")
	yamlOpenR = []byte("---\r\n")
	tomlOpenR = []byte("+++\r\n")
)

// Parse detects and parses frontmatter at the start of content. If no
// opening fence is recognized, or no matching closing fence is found
// before EOF, it returns a zero Result with Present=false and the
// scanner should resume at offset 0 (spec.md §4.2: "failure to find a
// closing fence reverts the scanner to offset 0").
func Parse(content []byte) Result {
	format, fenceLen := detectOpen(content)
	if format == FormatNone {
		return Result{}
	}

	bodyStart := fenceLen
	closeFence := []byte("---")
	if format == FormatTOML {
		closeFence = []byte("+++")
	}

	closeOffset, closeEnd := findClosingFence(content, bodyStart, closeFence)
	if closeOffset < 0 {
		return Result{}
	}

	body := content[bodyStart:closeOffset]
	var keys []string
	var values map[string]string
	switch format {
	case FormatYAML:
		keys, values = parseYAML(body)
	case FormatTOML:
		keys, values = parseTOML(body)
	}

	return Result{
		Present: true,
		Format:  format,
		Span:    span.Span{Start: 0, End: closeEnd},
		Keys:    keys,
		Values:  values,
	}
}

func detectOpen(content []byte) (Format, int) {
	switch {
	case bytes.HasPrefix(content, yamlOpen):
		return FormatYAML, len(yamlOpen)
	case bytes.HasPrefix(content, yamlOpenR):
		return FormatYAML, len(yamlOpenR)
	case bytes.HasPrefix(content, tomlOpen):
		return FormatTOML, len(tomlOpen)
	case bytes.HasPrefix(content, tomlOpenR):
		return FormatTOML, len(tomlOpenR)
	default:
		return FormatNone, 0
	}
}

// findClosingFence scans line by line from bodyStart for a line whose
// trimmed content is exactly fence ("---" or "+++"). Returns the offset
// of that line's start and the offset just past its terminator, or
// (-1, -1) if none is found before EOF.
func findClosingFence(content []byte, bodyStart int, fence []byte) (int, int) {
	offset := bodyStart
	for offset < len(content) {
		lineStart := offset
		nl := bytes.IndexByte(content[offset:], '\n')
		var lineEnd, next int
		if nl < 0 {
			lineEnd = len(content)
			next = len(content)
		} else {
			lineEnd = offset + nl
			next = lineEnd + 1
		}
		line := content[lineStart:lineEnd]
		trimmed := bytes.TrimRight(line, "\r")
		if bytes.Equal(bytes.TrimSpace(trimmed), fence) {
			return lineStart, next
		}
		offset = next
	}
	return -1, -1
}

// parseYAML interprets the frontmatter body as a YAML mapping. Scalar
// values are stored as their literal text; non-scalar values (nested
// maps/sequences) are re-marshaled to a raw YAML string so no data is
// dropped, per spec.md §4.2.
func parseYAML(body []byte) ([]string, map[string]string) {
	var node yaml.Node
	if err := yaml.Unmarshal(body, &node); err != nil || len(node.Content) == 0 {
		return nil, map[string]string{}
	}
	doc := node.Content[0]
	if doc.Kind != yaml.MappingNode {
		return nil, map[string]string{}
	}

	keys := make([]string, 0, len(doc.Content)/2)
	values := make(map[string]string, len(doc.Content)/2)
	for i := 0; i+1 < len(doc.Content); i += 2 {
		keyNode, valNode := doc.Content[i], doc.Content[i+1]
		key := keyNode.Value
		var value string
		if valNode.Kind == yaml.ScalarNode {
			value = valNode.Value
		} else {
			raw, err := yaml.Marshal(valNode)
			if err != nil {
				continue
			}
			value = strings.TrimRight(string(raw), "\n")
		}
		keys = append(keys, key)
		values[key] = value
	}
	return keys, values
}

// parseTOML interprets the frontmatter body as a flat "key = value" TOML
// mapping. No third-party TOML library exists anywhere in the retrieved
// corpus (see DESIGN.md), so this mirrors parseYAML's flat-scalar
// contract with a small hand-rolled line scanner rather than fabricating
// a dependency.
func parseTOML(body []byte) ([]string, map[string]string) {
	var keys []string
	values := make(map[string]string)

	for _, line := range strings.Split(string(body), "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		eq := strings.IndexByte(trimmed, '=')
		if eq < 0 {
			continue
		}
		key := strings.TrimSpace(trimmed[:eq])
		value := strings.TrimSpace(trimmed[eq+1:])
		value = unquoteTOML(value)
		if key == "" {
			continue
		}
		if _, exists := values[key]; !exists {
			keys = append(keys, key)
		}
		values[key] = value
	}
	return keys, values
}

func unquoteTOML(v string) string {
	if len(v) >= 2 {
		if (v[0] == '"' && v[len(v)-1] == '"') || (v[0] == '\'' && v[len(v)-1] == '\'') {
			return v[1 : len(v)-1]
		}
	}
	return v
}
