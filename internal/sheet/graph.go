package sheet

import (
	"sort"

	"go.uber.org/zap"
)

// TopoSort resolves cells in dependency order using Kahn's algorithm. A cell
// that references a missing name keeps a pending edge that is never
// removed, so it ends up unresolved exactly like a member of a cycle.
type TopoSort struct {
	logger *zap.Logger
}

// Resolve implements Resolver
func (r *TopoSort) Resolve(s *Sheet) error {
	pending := s.unresolved()

	// indegree counts the distinct references of each cell that are not yet
	// available; dependents is the reverse edge list.
	indegree := make(map[string]int, len(pending))
	dependents := make(map[string][]string)
	for _, name := range pending {
		c := s.cells[name]
		for _, ref := range c.References() {
			target, ok := s.cells[ref]
			if ok && target.resolved {
				continue
			}
			indegree[name]++
			if ok {
				dependents[ref] = append(dependents[ref], name)
			}
		}
	}

	var ready []string
	for _, name := range pending {
		if indegree[name] == 0 {
			ready = append(ready, name)
		}
	}

	evaluated := 0
	for len(ready) > 0 {
		name := ready[0]
		ready = ready[1:]

		c := s.cells[name]
		terms, ok, err := s.substitute(c)
		if err != nil {
			return &MalformedFormulaError{Cell: name, Err: err}
		}
		if !ok {
			// Unreachable with a correct indegree count.
			continue
		}
		v, err := Evaluate(terms)
		if err != nil {
			return &MalformedFormulaError{Cell: name, Err: err}
		}
		c.setValue(v)
		evaluated++

		var next []string
		for _, dep := range dependents[name] {
			indegree[dep]--
			if indegree[dep] == 0 {
				next = append(next, dep)
			}
		}
		sort.Strings(next)
		ready = append(ready, next...)
	}

	r.logger.Debug("topological resolution complete",
		zap.Int("evaluated", evaluated),
		zap.Int("pending", len(pending)),
	)

	if evaluated < len(pending) {
		unresolved := s.unresolved()
		r.logger.Warn("unresolvable cells",
			zap.Strings("cells", unresolved),
		)
		return &CircularDependencyError{Names: unresolved}
	}
	return nil
}
