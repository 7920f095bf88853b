package entities

// Playbook represents a parsed automation playbook
type Playbook struct {
	Source string // file the playbook was loaded from
	Plays  []Play
}

// Play represents one play targeting a host pattern
type Play struct {
	Name   string
	Hosts  string
	Become bool
	Tasks  []Task
}

// Task represents a single task within a play
type Task struct {
	Name   string
	Module string // module invoked by the task, e.g. "apt", "copy"
}

// TaskCount returns the total number of tasks across all plays
func (p *Playbook) TaskCount() int {
	n := 0
	for _, play := range p.Plays {
		n += len(play.Tasks)
	}
	return n
}
