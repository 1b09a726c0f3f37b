package model

// Path represents a file system path.
type Path string

// HeaderID identifies one target header file, e.g. `shapes/geometry.h`.
// It is a pure function of (module path, library name): identical inputs
// always yield the identical HeaderID regardless of processing order.
type HeaderID string

// Outputs maps each header to its accumulated text. It is append-only
// during emission; at link time its key set is exactly the node set of the
// dependency graph.
type Outputs map[HeaderID]string

// Append adds text to the buffer of the given header.
func (o Outputs) Append(id HeaderID, text string) {
	o[id] = o[id] + text
}

// Headers returns the header identifiers present in the output set, in
// unspecified order.
func (o Outputs) Headers() []HeaderID {
	ids := make([]HeaderID, 0, len(o))
	for id := range o {
		ids = append(ids, id)
	}

	return ids
}
