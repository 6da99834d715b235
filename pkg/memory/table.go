package memory

import (
	"fmt"
	"sync"

	"heapdb/pkg/primitives"
	"heapdb/pkg/storage/page"
	"heapdb/pkg/tuple"
)

// TableManager is the catalog collaborator: it maps table ids to their
// DbFiles and schemas. Table ids are path hashes and therefore not
// collision-free, so duplicate registrations are refused.
type TableManager struct {
	mutex  sync.RWMutex
	tables map[primitives.TableID]page.DbFile
	names  map[string]primitives.TableID
}

func NewTableManager() *TableManager {
	return &TableManager{
		tables: make(map[primitives.TableID]page.DbFile),
		names:  make(map[string]primitives.TableID),
	}
}

// AddTable registers a file under the given name. A table id or name that
// is already registered is an error.
func (tm *TableManager) AddTable(file page.DbFile, name string) error {
	if file == nil {
		return fmt.Errorf("db file cannot be nil")
	}
	if name == "" {
		return fmt.Errorf("table name cannot be empty")
	}

	tm.mutex.Lock()
	defer tm.mutex.Unlock()

	tableID := file.GetID()
	if _, exists := tm.tables[tableID]; exists {
		return fmt.Errorf("table with id %d already registered", tableID)
	}
	if _, exists := tm.names[name]; exists {
		return fmt.Errorf("table named %q already registered", name)
	}

	tm.tables[tableID] = file
	tm.names[name] = tableID
	return nil
}

// GetDbFile returns the file backing the given table.
func (tm *TableManager) GetDbFile(tableID primitives.TableID) (page.DbFile, error) {
	tm.mutex.RLock()
	defer tm.mutex.RUnlock()

	file, exists := tm.tables[tableID]
	if !exists {
		return nil, fmt.Errorf("table with id %d not found", tableID)
	}
	return file, nil
}

// GetTupleDesc returns the schema of the given table.
func (tm *TableManager) GetTupleDesc(tableID primitives.TableID) (*tuple.TupleDescription, error) {
	file, err := tm.GetDbFile(tableID)
	if err != nil {
		return nil, err
	}
	return file.GetTupleDesc(), nil
}

// GetTableID resolves a table name to its id.
func (tm *TableManager) GetTableID(name string) (primitives.TableID, error) {
	tm.mutex.RLock()
	defer tm.mutex.RUnlock()

	tableID, exists := tm.names[name]
	if !exists {
		return primitives.InvalidTableID, fmt.Errorf("table named %q not found", name)
	}
	return tableID, nil
}
