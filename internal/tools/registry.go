package tools

import (
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/baalimago/go_away_boilerplate/pkg/misc"
)

// registry is a threadsafe storage for LLMTools. It also tracks tools which
// failed to load, keyed by name with the load error, so that the planner can
// schedule their repair.
type registry struct {
	mu          sync.RWMutex
	tools       map[string]LLMTool
	badTools    map[string]string
	debug       bool
	hasBeenInit bool
}

// NewRegistry returns an empty tools registry.
func NewRegistry() *registry {
	return &registry{
		tools:    make(map[string]LLMTool),
		badTools: make(map[string]string),
		debug:    misc.Truthy(os.Getenv("DEBUG")),
	}
}

// Get returns the tool registered under name.
func (r *registry) Get(name string) (LLMTool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tools[name]
	return t, ok
}

// WildcardGet returns all tools whose name matches pattern. Supports * at
// start, end, or both.
func (r *registry) WildcardGet(pattern string) []LLMTool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matches []LLMTool
	for name, tool := range r.tools {
		if wildcardMatch(pattern, name) {
			matches = append(matches, tool)
		}
	}
	return matches
}

func wildcardMatch(pattern, name string) bool {
	if pattern == "*" {
		return true
	}

	if strings.HasPrefix(pattern, "*") && strings.HasSuffix(pattern, "*") {
		substr := pattern[1 : len(pattern)-1]
		return strings.Contains(name, substr)
	} else if strings.HasPrefix(pattern, "*") {
		suffix := pattern[1:]
		return strings.HasSuffix(name, suffix)
	} else if strings.HasSuffix(pattern, "*") {
		prefix := pattern[:len(pattern)-1]
		return strings.HasPrefix(name, prefix)
	}

	return pattern == name
}

// Set registers tool under the provided name. A tool previously marked bad
// becomes good again.
func (r *registry) Set(name string, t LLMTool) {
	r.mu.Lock()
	if r.debug {
		ancli.Okf("adding tool to registry, name: %v\n", t.Specification().Name)
	}
	r.tools[name] = t
	delete(r.badTools, name)
	r.mu.Unlock()
	InvalidateSchema(name)
}

// SetBad marks name as a tool which exists in the sandbox but failed to
// load, remembering why. The tool is removed from the callable set.
func (r *registry) SetBad(name, loadErr string) {
	r.mu.Lock()
	delete(r.tools, name)
	r.badTools[name] = loadErr
	r.mu.Unlock()
}

// Bad returns a copy of the bad tool name -> error map.
func (r *registry) Bad() map[string]string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cp := make(map[string]string, len(r.badTools))
	for k, v := range r.badTools {
		cp[k] = v
	}
	return cp
}

// All returns a copy of all registered tools keyed by name.
func (r *registry) All() map[string]LLMTool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cp := make(map[string]LLMTool, len(r.tools))
	for k, v := range r.tools {
		cp[k] = v
	}
	return cp
}

// Names returns all registered tool names, sorted.
func (r *registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.tools))
	for k := range r.tools {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Reset removes all registered tools. Primarily used for tests.
func (r *registry) Reset() {
	r.mu.Lock()
	r.tools = make(map[string]LLMTool)
	r.badTools = make(map[string]string)
	r.hasBeenInit = false
	r.mu.Unlock()
	ResetSchemaCache()
}
