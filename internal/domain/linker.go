package domain

import (
	"sort"

	m "chisel.dev/pkg/chisel/internal/model"
)

// depEdge is one (producer, consumer) include-order constraint between two
// headers. Edges are derived only from Mapping references; self-edges are
// never recorded and duplicates are coalesced.
type depEdge struct {
	producer m.HeaderID
	consumer m.HeaderID
}

// Finalize runs once after every declaration has been processed. It wraps
// each header with guard/linkage boilerplate, orders the headers by their
// dependencies and emits the umbrella header.
//
// A dependency cycle is fatal for the whole run: include order is a global
// property, so no partial umbrella header is produced.
func (s *Session) Finalize() (m.Outputs, error) {
	finalized := make(m.Outputs, len(s.outputs)+1)
	for id, body := range s.outputs {
		finalized[id] = wrapHeader(id, body)
	}

	sorted, err := s.sortedHeaders()
	if err != nil {
		return nil, err
	}

	var umbrella string
	for _, id := range sorted {
		umbrella += "#include \"" + string(id) + "\"\n"
	}

	// Each per-header file self-guards, so the umbrella needs no wrapping.
	finalized[m.HeaderID(s.libName+headerSuffix)] = umbrella

	return finalized, nil
}

// sortedHeaders topologically sorts the headers present in the output set.
// The node set is exactly the keys of the outputs; edges come from pending
// dependency facts resolved through the type registry. Ties break in
// lexical order so output is deterministic.
func (s *Session) sortedHeaders() ([]m.HeaderID, error) {
	nodes := s.outputs.Headers()

	edges := make(map[depEdge]bool)
	for consumer, names := range s.pendingDeps {
		// The node set is exactly the outputs keys; a consumer with no
		// emitted text contributes no edges.
		if _, ok := s.outputs[consumer]; !ok {
			continue
		}

		for _, name := range names {
			producer, ok := s.typeRegistry[name]
			if !ok {
				// Trusted to be defined outside the generated set.
				continue
			}

			if producer == consumer {
				continue
			}

			edges[depEdge{producer: producer, consumer: consumer}] = true
		}
	}

	indegree := make(map[m.HeaderID]int, len(nodes))
	for _, id := range nodes {
		indegree[id] = 0
	}

	successors := make(map[m.HeaderID][]m.HeaderID)
	for edge := range edges {
		successors[edge.producer] = append(successors[edge.producer], edge.consumer)
		indegree[edge.consumer]++
	}

	ready := make([]m.HeaderID, 0, len(nodes))
	for _, id := range nodes {
		if indegree[id] == 0 {
			ready = append(ready, id)
		}
	}

	sorted := make([]m.HeaderID, 0, len(nodes))

	for len(ready) > 0 {
		sort.Slice(ready, func(i, j int) bool { return ready[i] < ready[j] })

		next := ready[0]
		ready = ready[1:]
		sorted = append(sorted, next)

		for _, succ := range successors[next] {
			indegree[succ]--
			if indegree[succ] == 0 {
				ready = append(ready, succ)
			}
		}
	}

	if len(sorted) != len(nodes) {
		remaining := make([]string, 0, len(nodes)-len(sorted))

		for _, id := range nodes {
			if indegree[id] > 0 {
				remaining = append(remaining, string(id))
			}
		}

		sort.Strings(remaining)

		return nil, m.Reject(m.DependencyCycle, m.Position{},
			"no linear include order exists for the headers %v", remaining)
	}

	return sorted, nil
}
