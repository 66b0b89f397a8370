package taskmanager

import (
	"fmt"
	"sort"
)

// DAG is the dependency graph of a workflow's tasks.
type DAG struct {
	nodes      map[string]bool
	edges      map[string][]string // node -> nodes it depends on
	dependents map[string][]string // node -> nodes that depend on it
	inDegree   map[string]int      // node -> number of unmet dependencies
}

// NewDAG creates a new empty DAG.
func NewDAG() *DAG {
	return &DAG{
		nodes:      make(map[string]bool),
		edges:      make(map[string][]string),
		dependents: make(map[string][]string),
		inDegree:   make(map[string]int),
	}
}

// AddNode adds a node to the DAG.
func (d *DAG) AddNode(id string) {
	if !d.nodes[id] {
		d.nodes[id] = true
		d.inDegree[id] = 0
	}
}

// AddEdge records that 'from' depends on 'to'. Duplicate edges are ignored.
func (d *DAG) AddEdge(from, to string) {
	d.AddNode(from)
	d.AddNode(to)

	for _, existing := range d.edges[from] {
		if existing == to {
			return
		}
	}
	d.edges[from] = append(d.edges[from], to)
	d.dependents[to] = append(d.dependents[to], from)
	d.inDegree[from]++
}

// TopologicalSort returns the nodes in execution order. Among nodes that are
// ready at the same time the lexically smallest ID goes first, so the order
// is stable across runs. Returns an error if a cycle is detected.
func (d *DAG) TopologicalSort() ([]string, error) {
	inDegree := make(map[string]int, len(d.inDegree))
	for node, degree := range d.inDegree {
		inDegree[node] = degree
	}

	var ready []string
	for node, degree := range inDegree {
		if degree == 0 {
			ready = append(ready, node)
		}
	}
	sort.Strings(ready)

	result := make([]string, 0, len(d.nodes))
	for len(ready) > 0 {
		current := ready[0]
		ready = ready[1:]
		result = append(result, current)

		released := false
		for _, node := range d.dependents[current] {
			inDegree[node]--
			if inDegree[node] == 0 {
				ready = append(ready, node)
				released = true
			}
		}
		if released {
			sort.Strings(ready)
		}
	}

	if len(result) != len(d.nodes) {
		var stuck []string
		for node, degree := range inDegree {
			if degree > 0 {
				stuck = append(stuck, node)
			}
		}
		sort.Strings(stuck)
		return nil, fmt.Errorf("circular dependency detected in DAG among %v", stuck)
	}

	return result, nil
}
