package driver

import (
	"fmt"
	"sort"
	"sync"

	"xcrt/internal/rt"
)

// Case is one recorded invocation of a program with its expected outcome,
// used by selftest.
type Case struct {
	Name  string
	Args  []string
	Stdin string

	// Stdout is the exact expected output.
	Stdout string
	// ExitCode is the expected process status.
	ExitCode int
	// Fatal is the expected error code when the run must fail, 0 otherwise.
	Fatal rt.Code
}

// Program is a generated xc program linked against the runtime.
type Program struct {
	Name  string
	Doc   string
	Main  func(env *rt.Env)
	Cases []Case
}

var (
	registryMu sync.RWMutex
	registry   = make(map[string]*Program)
)

// Register makes a program available by name. It panics on a duplicate or
// incomplete registration; generated packages call it from init.
func Register(p *Program) {
	if p == nil || p.Name == "" || p.Main == nil {
		panic("driver: Register of incomplete program")
	}
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, dup := registry[p.Name]; dup {
		panic(fmt.Sprintf("driver: Register called twice for program %q", p.Name))
	}
	registry[p.Name] = p
}

// Lookup returns the program registered under name.
func Lookup(name string) (*Program, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	p, ok := registry[name]
	return p, ok
}

// Programs returns every registered program sorted by name.
func Programs() []*Program {
	registryMu.RLock()
	defer registryMu.RUnlock()
	out := make([]*Program, 0, len(registry))
	for _, p := range registry {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
