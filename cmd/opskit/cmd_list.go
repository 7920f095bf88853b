package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/tmakino/opskit/internal/domain/entities"
	"github.com/tmakino/opskit/internal/external-adapters/yaml"
)

func runList(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	var (
		inventory = fs.String("inventory", "", "Inventory file to list hosts from")
		playbook  = fs.String("playbook", "", "Playbook file to list plays and tasks from")
		group     = fs.String("group", "", "Only list hosts in this group")
	)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: opskit list [options]

List hosts from a YAML inventory or plays and tasks from a playbook.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  opskit list --inventory hosts.yml
  opskit list --inventory hosts.yml --group web
  opskit list --playbook site.yml
`)
	}

	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing flags: %v\n", err)
		os.Exit(1)
	}

	switch {
	case *inventory != "" && *playbook != "":
		fmt.Fprintf(os.Stderr, "Error: --inventory and --playbook are mutually exclusive\n\n")
		fs.Usage()
		os.Exit(1)
	case *inventory != "":
		listInventory(ctx, *inventory, *group)
	case *playbook != "":
		listPlaybook(*playbook)
	default:
		fmt.Fprintf(os.Stderr, "Error: --inventory or --playbook is required\n\n")
		fs.Usage()
		os.Exit(1)
	}
}

func listInventory(ctx context.Context, path, group string) {
	repo := yaml.NewInventoryRepository()
	inv, err := repo.GetInventory(ctx, path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading inventory: %v\n", err)
		os.Exit(1)
	}

	var hosts []entities.Host
	if group != "" {
		hosts, err = inv.HostsInGroup(group)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Hosts in group %s (%d total):\n\n", group, len(hosts))
	} else {
		hosts = inv.AllHosts()
		fmt.Printf("Hosts in %s (%d total, %d groups):\n\n", path, len(hosts), len(inv.Groups))
	}

	for _, h := range hosts {
		fmt.Printf("  %-24s %s", h.Name, h.DialAddr())
		if h.User != "" {
			fmt.Printf("  user=%s", h.User)
		}
		fmt.Println()
	}

	if group == "" && len(inv.Groups) > 0 {
		names := make([]string, 0, len(inv.Groups))
		for name := range inv.Groups {
			names = append(names, name)
		}
		sort.Strings(names)

		fmt.Println("\nGroups:")
		for _, name := range names {
			fmt.Printf("  %-24s %d hosts\n", name, len(inv.Groups[name].Hosts))
		}
	}
}

func listPlaybook(path string) {
	parser := yaml.NewPlaybookParser()
	pb, err := parser.ParseFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading playbook: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Playbook %s (%d plays, %d tasks):\n\n", path, len(pb.Plays), pb.TaskCount())

	for _, play := range pb.Plays {
		name := play.Name
		if name == "" {
			name = "(unnamed play)"
		}
		fmt.Printf("  ▶ %s  hosts=%s", name, play.Hosts)
		if play.Become {
			fmt.Print("  become=true")
		}
		fmt.Println()

		for _, task := range play.Tasks {
			taskName := task.Name
			if taskName == "" {
				taskName = "(unnamed task)"
			}
			fmt.Printf("      %-40s [%s]\n", taskName, task.Module)
		}
		fmt.Println()
	}
}
