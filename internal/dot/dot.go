// Package dot renders pipeline plans (core.Step trees) as Graphviz DOT.
package dot

import (
	"fmt"
	"strconv"

	"github.com/awalterschulze/gographviz"
	"github.com/hupe1980/autogen/core"
)

const graphName = "pipeline"

type renderer struct {
	g    *gographviz.Graph
	next int
}

// Render converts plan into a directed DOT graph. Sequential steps are
// linked by "next" edges, loop bodies hang off their while node with a
// dashed "repeat" edge back, and catch nodes point at the agent they guard.
func Render(plan core.Step) (string, error) {
	g := gographviz.NewGraph()
	if err := g.SetName(graphName); err != nil {
		return "", err
	}
	if err := g.SetDir(true); err != nil {
		return "", err
	}
	if err := g.AddAttr(graphName, "rankdir", "TB"); err != nil {
		return "", err
	}

	r := &renderer{g: g}
	if _, _, err := r.sequence(plan.Children); err != nil {
		return "", fmt.Errorf("render %s: %w", plan.Name, err)
	}
	return g.String(), nil
}

// sequence renders steps in order and returns the ids of the first and
// last rendered nodes.
func (r *renderer) sequence(steps []core.Step) (string, string, error) {
	var first, prev string
	for _, s := range steps {
		id, err := r.step(s)
		if err != nil {
			return "", "", err
		}
		if first == "" {
			first = id
		}
		if prev != "" {
			if err := r.edge(prev, id, "next", ""); err != nil {
				return "", "", err
			}
		}
		prev = id
	}
	return first, prev, nil
}

func (r *renderer) step(s core.Step) (string, error) {
	id := "n" + strconv.Itoa(r.next)
	r.next++

	shape := "box"
	switch s.Kind {
	case "while":
		shape = "diamond"
	case "catch":
		shape = "hexagon"
	}
	if err := r.g.AddNode(graphName, id, map[string]string{
		"label": strconv.Quote(s.Name),
		"shape": shape,
	}); err != nil {
		return "", err
	}

	switch s.Kind {
	case "while", "sequence":
		first, last, err := r.sequence(s.Children)
		if err != nil {
			return "", err
		}
		if first == "" {
			return id, nil
		}
		if err := r.edge(id, first, "body", ""); err != nil {
			return "", err
		}
		if s.Kind == "while" {
			if err := r.edge(last, id, "repeat", "dashed"); err != nil {
				return "", err
			}
		}
	case "catch":
		for _, c := range s.Children {
			child, err := r.step(c)
			if err != nil {
				return "", err
			}
			if err := r.edge(id, child, "try", ""); err != nil {
				return "", err
			}
		}
	}
	return id, nil
}

func (r *renderer) edge(src, dst, label, style string) error {
	attrs := map[string]string{"label": strconv.Quote(label)}
	if style != "" {
		attrs["style"] = style
	}
	return r.g.AddEdge(src, dst, true, attrs)
}
