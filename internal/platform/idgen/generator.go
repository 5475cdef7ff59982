// Package idgen generates entity identifiers: a formatted, monotonically
// increasing sequence for kinds that require one, an opaque unique token
// otherwise.
package idgen

import (
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Generator is the identifier collaborator consumed by the ledger core.
type Generator interface {
	Generate(kind string) string
}

// Memory is an in-process Generator. Sequences restart on boot; production
// deployments back the sequence kinds with a database sequence instead.
type Memory struct {
	mu     sync.Mutex
	values map[string]int64
}

var _ Generator = (*Memory)(nil)

// NewMemory returns an empty in-process generator.
func NewMemory() *Memory {
	return &Memory{values: make(map[string]int64)}
}

// Generate returns the next identifier for the entity kind.
func (g *Memory) Generate(kind string) string {
	switch kind {
	case "CashInOut":
		return fmt.Sprintf("CIO%d", g.next(kind))
	default:
		return strings.ReplaceAll(uuid.NewString(), "-", "")
	}
}

func (g *Memory) next(kind string) int64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.values[kind]++
	return g.values[kind]
}
