// Package yaml provides YAML-based inventory and playbook parsing.
package yaml

import (
	"fmt"
	"os"
	"strconv"

	"github.com/tmakino/opskit/internal/domain/entities"
	"gopkg.in/yaml.v3"
)

// yamlGroup represents one group node in a YAML inventory. Host values
// are free-form variable maps; a bare hostname maps to nil.
type yamlGroup struct {
	Hosts    map[string]map[string]interface{} `yaml:"hosts"`
	Children map[string]yamlGroup              `yaml:"children"`
	Vars     map[string]interface{}            `yaml:"vars"`
}

// InventoryParser parses YAML inventory files
type InventoryParser struct{}

// NewInventoryParser creates a new YAML inventory parser
func NewInventoryParser() *InventoryParser {
	return &InventoryParser{}
}

// ParseFile parses a YAML inventory file into an Inventory entity
func (p *InventoryParser) ParseFile(filePath string) (*entities.Inventory, error) {
	//nolint:gosec // G304: filePath is the user-provided inventory path
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filePath, err)
	}

	inv, err := p.Parse(data)
	if err != nil {
		return nil, err
	}
	inv.Source = filePath
	return inv, nil
}

// Parse parses YAML bytes into an Inventory entity. The expected shape is
// the conventional one: top-level groups, each with hosts, vars, and
// nested children groups.
func (p *InventoryParser) Parse(data []byte) (*entities.Inventory, error) {
	var raw map[string]yamlGroup
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if len(raw) == 0 {
		return nil, fmt.Errorf("inventory has no groups")
	}

	inv := &entities.Inventory{
		Groups: make(map[string]entities.Group),
	}
	for name, group := range raw {
		collectGroups(inv, name, group)
	}

	return inv, nil
}

// collectGroups flattens a group and its children into the inventory
func collectGroups(inv *entities.Inventory, name string, group yamlGroup) {
	g := entities.Group{
		Name:  name,
		Hosts: make([]entities.Host, 0, len(group.Hosts)),
		Vars:  stringifyVars(group.Vars),
	}

	for hostName, hostVars := range group.Hosts {
		g.Hosts = append(g.Hosts, convertHost(hostName, hostVars))
	}

	inv.Groups[name] = g

	for childName, child := range group.Children {
		collectGroups(inv, childName, child)
	}
}

// convertHost maps the well-known connection variables onto Host fields
// and keeps everything else in Vars
func convertHost(name string, rawVars map[string]interface{}) entities.Host {
	host := entities.Host{
		Name: name,
		Vars: make(map[string]string),
	}

	for key, value := range rawVars {
		switch key {
		case "ansible_host":
			host.Address = fmt.Sprint(value)
		case "ansible_port":
			if port, err := strconv.Atoi(fmt.Sprint(value)); err == nil {
				host.Port = port
			}
		case "ansible_user":
			host.User = fmt.Sprint(value)
		default:
			host.Vars[key] = fmt.Sprint(value)
		}
	}

	return host
}

func stringifyVars(raw map[string]interface{}) map[string]string {
	vars := make(map[string]string, len(raw))
	for k, v := range raw {
		vars[k] = fmt.Sprint(v)
	}
	return vars
}
