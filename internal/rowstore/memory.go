package rowstore

import (
	"context"
	"fmt"
	"sync"

	pkgerrors "github.com/migueldelacruz-dev/vapetrack-backend/pkg/errors"
)

// Memory is an in-process Store used by tests and by the
// VAPETRACK_USE_MEMORY_STORE dev flag. It mimics the sheet model: a header
// row plus append-ordered data rows, addressed by A1 coordinates.
type Memory struct {
	mu     sync.Mutex
	tables map[string]*memoryTable
}

type memoryTable struct {
	header []string
	rows   [][]string
}

func NewMemory() *Memory {
	return &Memory{tables: map[string]*memoryTable{}}
}

func (m *Memory) EnsureTable(_ context.Context, name string, header []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.tables[name]; exists {
		return nil
	}
	m.tables[name] = &memoryTable{header: append([]string(nil), header...)}
	return nil
}

func (m *Memory) ReadAll(_ context.Context, name string) ([]string, [][]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	table, err := m.table(name)
	if err != nil {
		return nil, nil, err
	}
	header := append([]string(nil), table.header...)
	rows := make([][]string, len(table.rows))
	for i, row := range table.rows {
		rows[i] = append([]string(nil), row...)
	}
	return header, rows, nil
}

func (m *Memory) AppendRow(_ context.Context, name string, row []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	table, err := m.table(name)
	if err != nil {
		return err
	}
	table.rows = append(table.rows, append([]string(nil), row...))
	return nil
}

func (m *Memory) WriteRange(_ context.Context, name string, address string, rows [][]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	table, err := m.table(name)
	if err != nil {
		return err
	}
	start, end, err := parseAddress(address)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "write range rejected")
	}
	if len(rows) != end.row-start.row+1 {
		return pkgerrors.New(pkgerrors.CodeDependency, fmt.Sprintf("range %s expects %d row(s), got %d", address, end.row-start.row+1, len(rows)))
	}
	for offset, values := range rows {
		sheetRow := start.row + offset
		if sheetRow == 0 {
			return pkgerrors.New(pkgerrors.CodeDependency, "header row is not writable")
		}
		dataIndex := sheetRow - 1
		if dataIndex >= len(table.rows) {
			return pkgerrors.New(pkgerrors.CodeDependency, fmt.Sprintf("row %d beyond table bounds", sheetRow+1))
		}
		if len(values) != end.col-start.col+1 {
			return pkgerrors.New(pkgerrors.CodeDependency, fmt.Sprintf("range %s expects %d column(s), got %d", address, end.col-start.col+1, len(values)))
		}
		row := table.rows[dataIndex]
		for len(row) <= end.col {
			row = append(row, "")
		}
		for i, value := range values {
			row[start.col+i] = value
		}
		table.rows[dataIndex] = row
	}
	return nil
}

// Ping satisfies the health-check surface; the memory store is always up.
func (m *Memory) Ping(context.Context) error {
	return nil
}

func (m *Memory) table(name string) (*memoryTable, error) {
	table, ok := m.tables[name]
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, fmt.Sprintf("table %s does not exist", name))
	}
	return table, nil
}
