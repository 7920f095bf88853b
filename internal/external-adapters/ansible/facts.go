package ansible

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// Header line of one host result, e.g. "web1 | SUCCESS => {"
var factsHeaderPattern = regexp.MustCompile(`^(\S+) \| ([A-Z]+)!? => (\{.*)$`)

// HostFacts holds the parsed setup-module payload for one host
type HostFacts struct {
	Host   string                 `json:"host"`
	Status string                 `json:"status"`
	Facts  map[string]interface{} `json:"facts,omitempty"`
	Raw    string                 `json:"-"`
}

// ParseFactsOutput parses the stdout of `ansible <pattern> -m setup`.
// The output interleaves per-host blocks of the form
//
//	host | SUCCESS => { ...multi-line JSON... }
//	host | UNREACHABLE! => { ... }
//
// Blocks with unparseable JSON keep the raw text and an empty fact map.
func ParseFactsOutput(output string) (map[string]HostFacts, error) {
	results := make(map[string]HostFacts)

	lines := strings.Split(output, "\n")
	for i := 0; i < len(lines); i++ {
		m := factsHeaderPattern.FindStringSubmatch(lines[i])
		if m == nil {
			continue
		}

		host, status, first := m[1], m[2], m[3]

		// Accumulate lines until the braces balance
		var block strings.Builder
		block.WriteString(first)
		depth := braceDelta(first)
		for depth > 0 && i+1 < len(lines) {
			i++
			block.WriteString("\n")
			block.WriteString(lines[i])
			depth += braceDelta(lines[i])
		}

		hf := HostFacts{
			Host:   host,
			Status: status,
			Raw:    block.String(),
		}

		var payload map[string]interface{}
		if err := json.Unmarshal([]byte(hf.Raw), &payload); err == nil {
			if facts, ok := payload["ansible_facts"].(map[string]interface{}); ok {
				hf.Facts = facts
			} else {
				hf.Facts = payload
			}
		}

		results[host] = hf
	}

	if len(results) == 0 {
		return nil, fmt.Errorf("no host results found in output")
	}

	return results, nil
}

// braceDelta counts opening minus closing braces outside of strings.
// Ansible pretty-prints its JSON one token per line, so a plain count
// over quoted-string-stripped text is sufficient.
func braceDelta(line string) int {
	depth := 0
	inString := false
	escaped := false
	for _, r := range line {
		switch {
		case escaped:
			escaped = false
		case r == '\\':
			escaped = true
		case r == '"':
			inString = !inString
		case !inString && r == '{':
			depth++
		case !inString && r == '}':
			depth--
		}
	}
	return depth
}
