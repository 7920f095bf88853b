package yaml

import (
	"fmt"
	"os"

	"github.com/tmakino/opskit/internal/domain/entities"
	"gopkg.in/yaml.v3"
)

// Task keywords that are never module names
var reservedTaskKeys = map[string]bool{
	"name":          true,
	"when":          true,
	"register":      true,
	"become":        true,
	"become_user":   true,
	"loop":          true,
	"with_items":    true,
	"tags":          true,
	"vars":          true,
	"notify":        true,
	"ignore_errors": true,
	"delegate_to":   true,
	"environment":   true,
}

// yamlPlay represents one raw play document entry
type yamlPlay struct {
	Name   string                   `yaml:"name"`
	Hosts  string                   `yaml:"hosts"`
	Become bool                     `yaml:"become"`
	Tasks  []map[string]interface{} `yaml:"tasks"`
}

// PlaybookParser parses YAML playbook files
type PlaybookParser struct{}

// NewPlaybookParser creates a new YAML playbook parser
func NewPlaybookParser() *PlaybookParser {
	return &PlaybookParser{}
}

// ParseFile parses a YAML playbook file into a Playbook entity
func (p *PlaybookParser) ParseFile(filePath string) (*entities.Playbook, error) {
	//nolint:gosec // G304: filePath is the user-provided playbook path
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filePath, err)
	}

	pb, err := p.Parse(data)
	if err != nil {
		return nil, err
	}
	pb.Source = filePath
	return pb, nil
}

// Parse parses YAML bytes into a Playbook entity
func (p *PlaybookParser) Parse(data []byte) (*entities.Playbook, error) {
	var rawPlays []yamlPlay
	if err := yaml.Unmarshal(data, &rawPlays); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if len(rawPlays) == 0 {
		return nil, fmt.Errorf("playbook has no plays")
	}

	pb := &entities.Playbook{
		Plays: make([]entities.Play, 0, len(rawPlays)),
	}

	for i, raw := range rawPlays {
		if raw.Hosts == "" {
			return nil, fmt.Errorf("play %d has no hosts pattern", i+1)
		}

		play := entities.Play{
			Name:   raw.Name,
			Hosts:  raw.Hosts,
			Become: raw.Become,
			Tasks:  make([]entities.Task, 0, len(raw.Tasks)),
		}

		for _, rawTask := range raw.Tasks {
			play.Tasks = append(play.Tasks, convertTask(rawTask))
		}

		pb.Plays = append(pb.Plays, play)
	}

	return pb, nil
}

// convertTask extracts the task name and its module. The module is the
// first key that is not a task keyword; order within a YAML map is not
// guaranteed but real tasks carry exactly one module key.
func convertTask(raw map[string]interface{}) entities.Task {
	task := entities.Task{}

	if name, ok := raw["name"]; ok {
		task.Name = fmt.Sprint(name)
	}

	for key := range raw {
		if !reservedTaskKeys[key] {
			task.Module = key
			break
		}
	}

	return task
}
