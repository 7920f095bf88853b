package entities

import (
	"fmt"
	"sort"
)

// Host represents a single managed host from an inventory
type Host struct {
	Name    string
	Address string // connection address, defaults to Name
	Port    int    // SSH port, defaults to 22
	User    string
	Vars    map[string]string
}

// DialAddr returns the host:port string used to open a connection
func (h *Host) DialAddr() string {
	addr := h.Address
	if addr == "" {
		addr = h.Name
	}
	port := h.Port
	if port == 0 {
		port = 22
	}
	return fmt.Sprintf("%s:%d", addr, port)
}

// Group represents a named set of hosts with shared variables
type Group struct {
	Name  string
	Hosts []Host
	Vars  map[string]string
}

// Inventory represents a parsed host inventory
type Inventory struct {
	Source string // file the inventory was loaded from
	Groups map[string]Group
}

// AllHosts returns every host across all groups, deduplicated by name
// and sorted for stable output
func (inv *Inventory) AllHosts() []Host {
	seen := make(map[string]Host)
	for _, g := range inv.Groups {
		for _, h := range g.Hosts {
			if _, ok := seen[h.Name]; !ok {
				seen[h.Name] = h
			}
		}
	}

	hosts := make([]Host, 0, len(seen))
	for _, h := range seen {
		hosts = append(hosts, h)
	}
	sort.Slice(hosts, func(i, j int) bool { return hosts[i].Name < hosts[j].Name })
	return hosts
}

// HostsInGroup returns the hosts of a single group
func (inv *Inventory) HostsInGroup(name string) ([]Host, error) {
	g, ok := inv.Groups[name]
	if !ok {
		return nil, fmt.Errorf("group not found: %s", name)
	}
	return g.Hosts, nil
}
