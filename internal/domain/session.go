package domain

import (
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	m "chisel.dev/pkg/chisel/internal/model"
)

// DefaultLibName is used when no library name is configured.
const DefaultLibName = "backend"

// headerCacheSize bounds the memoized headerOf results. Real projects have
// far fewer distinct module paths than this.
const headerCacheSize = 512

// Session owns the mutable state of one generation run: the accumulated
// header text, the exported-name registry and the pending dependency facts.
// It is constructed per run and discarded afterwards, so concurrent or
// repeated generations never share state. There is exactly one writer.
type Session struct {
	libName string

	// outputs accumulates header text; append-only during emission.
	outputs m.Outputs
	// typeRegistry maps each exported alias/struct name to the header it
	// was emitted into. Entries are never overwritten or removed.
	typeRegistry map[string]m.HeaderID
	// pendingDeps records, per consuming header, the foreign names its
	// declarations reference. Resolved against typeRegistry at link time.
	pendingDeps map[m.HeaderID][]string
	// declCounts tracks how many declarations were emitted per header,
	// for reporting only.
	declCounts map[m.HeaderID]int

	// headerOf is referentially transparent, so its results are safe to
	// memoize across declarations.
	headerCache *lru.Cache[string, m.HeaderID]
}

// NewSession creates a generation-run context for the given library name.
// An empty name falls back to DefaultLibName.
func NewSession(libName string) *Session {
	if libName == "" {
		libName = DefaultLibName
	}

	// Only errors on a non-positive size.
	cache, _ := lru.New[string, m.HeaderID](headerCacheSize)

	return &Session{
		libName:      libName,
		outputs:      make(m.Outputs),
		typeRegistry: make(map[string]m.HeaderID),
		pendingDeps:  make(map[m.HeaderID][]string),
		declCounts:   make(map[m.HeaderID]int),
		headerCache:  cache,
	}
}

// LibName returns the configured library short name.
func (s *Session) LibName() string { return s.libName }

// headerFor resolves the header a module path's declarations land in.
func (s *Session) headerFor(module []string) (m.HeaderID, error) {
	key := strings.Join(module, "\x00")
	if id, ok := s.headerCache.Get(key); ok {
		return id, nil
	}

	id, err := headerOf(module, s.libName)
	if err != nil {
		return "", err
	}

	s.headerCache.Add(key, id)

	return id, nil
}

// appendOutput adds one rendered declaration to a header's buffer.
func (s *Session) appendOutput(id m.HeaderID, text string) {
	s.outputs.Append(id, text)
	s.declCounts[id]++
}

// registerType records which header an exported type name was emitted
// into. The first registration wins; entries are never overwritten.
func (s *Session) registerType(name string, id m.HeaderID) {
	if _, ok := s.typeRegistry[name]; ok {
		return
	}

	s.typeRegistry[name] = id
}

// addDependencies records the Mapping references of a mapped type as
// pending dependency facts of the consuming header.
func (s *Session) addDependencies(consumer m.HeaderID, cty m.CType) {
	deps := m.Dependencies(cty)
	if len(deps) == 0 {
		return
	}

	s.pendingDeps[consumer] = append(s.pendingDeps[consumer], deps...)
}
