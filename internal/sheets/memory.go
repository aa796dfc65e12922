package sheets

import (
	"context"
	"sync"
)

// MemoryTable is an in-process Table used when no spreadsheet is configured.
type MemoryTable struct {
	mu   sync.RWMutex
	rows [][]string
}

var _ Table = (*MemoryTable)(nil)

// NewMemoryTable creates a table whose first row is header (if any).
func NewMemoryTable(header ...string) *MemoryTable {
	t := &MemoryTable{}
	if len(header) > 0 {
		t.rows = append(t.rows, append([]string(nil), header...))
	}
	return t
}

func (t *MemoryTable) Append(_ context.Context, row []string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.rows = append(t.rows, append([]string(nil), row...))
	return nil
}

func (t *MemoryTable) ReadAll(_ context.Context) ([][]string, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([][]string, len(t.rows))
	for i, row := range t.rows {
		out[i] = append([]string(nil), row...)
	}
	return out, nil
}
