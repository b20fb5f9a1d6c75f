// SPDX-License-Identifier: MIT

// Package bnet holds the structure learned from Markov Blankets: an
// undirected simple graph whose vertices are dataset variables.
//
// The graph is thread-safe: a single sync.RWMutex guards the node catalog
// and the adjacency sets. Enumerations are deterministic: Nodes() keeps
// insertion order (normally dataset column order), Neighbors() and Edges()
// are sorted lexicographically.
//
// Errors:
//
//	ErrEmptyNodeName  - node name is the empty string.
//	ErrNodeNotFound   - an edge or query referenced a missing node.
//	ErrLoopNotAllowed - an edge from a node to itself.
//	ErrEdgeNotFound   - RemoveEdge on a missing edge.
package bnet

import (
	"errors"
	"sort"
	"sync"
)

// Sentinel errors for graph operations.
var (
	// ErrEmptyNodeName indicates an empty node name.
	ErrEmptyNodeName = errors.New("bnet: node name is empty")

	// ErrNodeNotFound indicates an operation referenced a non-existent node.
	ErrNodeNotFound = errors.New("bnet: node not found")

	// ErrLoopNotAllowed indicates an edge from a node to itself.
	ErrLoopNotAllowed = errors.New("bnet: self-loop not allowed")

	// ErrEdgeNotFound indicates RemoveEdge on a missing edge.
	ErrEdgeNotFound = errors.New("bnet: edge not found")
)

// Node is one variable of the model.
type Node struct {
	// Name is the variable (dataset column) name.
	Name string

	// States lists the variable's state names, possibly empty.
	States []string
}

// Edge is an undirected edge; From < To lexicographically.
type Edge struct {
	From string
	To   string
}

// Graph is an undirected simple graph of named variables.
type Graph struct {
	mu    sync.RWMutex
	order []string                       // insertion order of nodes
	nodes map[string]*Node               // name → Node
	adj   map[string]map[string]struct{} // name → neighbor set
	edges int
}

// NewGraph returns an empty graph.
func NewGraph() *Graph {
	return &Graph{
		nodes: make(map[string]*Node),
		adj:   make(map[string]map[string]struct{}),
	}
}

// AddNode inserts a node if missing (idempotent). When the node already
// exists and states is non-empty, its states are replaced.
func (g *Graph) AddNode(name string, states ...string) error {
	if name == "" {
		return ErrEmptyNodeName
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if n, ok := g.nodes[name]; ok {
		if len(states) > 0 {
			n.States = append([]string(nil), states...)
		}
		return nil
	}
	g.nodes[name] = &Node{Name: name, States: append([]string(nil), states...)}
	g.adj[name] = make(map[string]struct{})
	g.order = append(g.order, name)

	return nil
}

// HasNode reports whether name is a node.
func (g *Graph) HasNode(name string) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	_, ok := g.nodes[name]

	return ok
}

// Node returns a copy of the named node.
func (g *Graph) Node(name string) (Node, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	n, ok := g.nodes[name]
	if !ok {
		return Node{}, ErrNodeNotFound
	}

	return Node{Name: n.Name, States: append([]string(nil), n.States...)}, nil
}

// Nodes returns node names in insertion order.
func (g *Graph) Nodes() []string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return append([]string(nil), g.order...)
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return len(g.order)
}

// AddEdge connects u and v. Both must exist; adding an existing edge is a no-op.
func (g *Graph) AddEdge(u, v string) error {
	if u == v {
		return ErrLoopNotAllowed
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.nodes[u]; !ok {
		return ErrNodeNotFound
	}
	if _, ok := g.nodes[v]; !ok {
		return ErrNodeNotFound
	}
	if _, ok := g.adj[u][v]; ok {
		return nil
	}
	g.adj[u][v] = struct{}{}
	g.adj[v][u] = struct{}{}
	g.edges++

	return nil
}

// RemoveEdge disconnects u and v.
func (g *Graph) RemoveEdge(u, v string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.adj[u][v]; !ok {
		return ErrEdgeNotFound
	}
	delete(g.adj[u], v)
	delete(g.adj[v], u)
	g.edges--

	return nil
}

// HasEdge reports whether u and v are adjacent.
func (g *Graph) HasEdge(u, v string) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	_, ok := g.adj[u][v]

	return ok
}

// EdgeCount returns the number of undirected edges.
func (g *Graph) EdgeCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.edges
}

// Neighbors returns the sorted neighbor names of name.
func (g *Graph) Neighbors(name string) ([]string, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	set, ok := g.adj[name]
	if !ok {
		return nil, ErrNodeNotFound
	}
	out := make([]string, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	sort.Strings(out)

	return out, nil
}

// Degree returns the number of neighbors of name.
func (g *Graph) Degree(name string) (int, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	set, ok := g.adj[name]
	if !ok {
		return 0, ErrNodeNotFound
	}

	return len(set), nil
}

// Edges returns every edge once, with From < To, sorted by (From, To).
func (g *Graph) Edges() []Edge {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := make([]Edge, 0, g.edges)
	for u, set := range g.adj {
		for v := range set {
			if u < v {
				out = append(out, Edge{From: u, To: v})
			}
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].From != out[j].From {
			return out[i].From < out[j].From
		}
		return out[i].To < out[j].To
	})

	return out
}

// AdjacencyList returns name → sorted neighbors for every node.
func (g *Graph) AdjacencyList() map[string][]string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := make(map[string][]string, len(g.adj))
	for u, set := range g.adj {
		nbs := make([]string, 0, len(set))
		for v := range set {
			nbs = append(nbs, v)
		}
		sort.Strings(nbs)
		out[u] = nbs
	}

	return out
}
