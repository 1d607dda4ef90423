package tree

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/weekplan/internal/domain"
)

// PathSeparator joins task texts in FullText.
const PathSeparator = " - "

// Path addresses a task by 1-based sibling positions from the top level,
// written as "2.1.3".
type Path []int

// ParsePath parses a dotted 1-based path.
func ParsePath(s string) (Path, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("empty task path")
	}
	parts := strings.Split(s, ".")
	p := make(Path, 0, len(parts))
	for _, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("invalid task path %q: segments must be positive integers", s)
		}
		p = append(p, n)
	}
	return p, nil
}

func (p Path) String() string {
	parts := make([]string, len(p))
	for i, n := range p {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ".")
}

// Resolve returns the task at p.
func (t *Tree) Resolve(p Path) (*domain.Task, bool) {
	if len(p) == 0 {
		return nil, false
	}
	cur := t.root
	for _, n := range p {
		if n < 1 || n > len(cur.Children) {
			return nil, false
		}
		cur = cur.Children[n-1]
	}
	return cur, true
}

// PathOf returns the path of node, or nil when node is not in the tree.
func (t *Tree) PathOf(node *domain.Task) Path {
	chain := t.ancestry(node)
	if chain == nil {
		return nil
	}
	p := make(Path, len(chain))
	parent := t.root
	for i, c := range chain {
		p[i] = parent.IndexOf(c) + 1
		parent = c
	}
	return p
}

// FullText joins the texts from node's top-level ancestor down to node,
// e.g. "Sprint 1 - Backend - Write tests".
func (t *Tree) FullText(node *domain.Task) string {
	chain := t.ancestry(node)
	parts := make([]string, len(chain))
	for i, c := range chain {
		parts[i] = c.Text
	}
	return strings.Join(parts, PathSeparator)
}
