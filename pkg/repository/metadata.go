package repository

import (
	"fmt"
	"reflect"
	"strings"
	"sync"
)

// TableNamer is implemented by entity types to declare their table name.
type TableNamer interface {
	TableName() string
}

// column maps a database column to a struct field index.
type column struct {
	name  string
	index int
}

// tableMeta holds the parsed mapping between an entity struct and its table.
type tableMeta struct {
	name    string
	columns []column
	byName  map[string]int
}

// columnNames returns the column list in struct declaration order.
func (m *tableMeta) columnNames() []string {
	names := make([]string, len(m.columns))
	for i, c := range m.columns {
		names[i] = c.name
	}
	return names
}

// hasColumn reports whether the entity declares the given column. Qualified
// names (table.column) are matched against this table's own columns only.
func (m *tableMeta) hasColumn(name string) bool {
	if rest, ok := strings.CutPrefix(name, m.name+"."); ok {
		name = rest
	}
	_, ok := m.byName[name]
	return ok
}

// metaCache caches parsed metadata per entity type.
var metaCache sync.Map // reflect.Type -> *tableMeta

// metaFor parses (or retrieves from cache) the table metadata for a model.
// The model must be a struct implementing TableNamer; columns come from
// `db:"column"` struct tags, fields tagged "-" or untagged are skipped.
func metaFor(model any) (*tableMeta, error) {
	modelType := reflect.TypeOf(model)
	for modelType.Kind() == reflect.Pointer {
		modelType = modelType.Elem()
	}

	if cached, ok := metaCache.Load(modelType); ok {
		return cached.(*tableMeta), nil
	}

	if modelType.Kind() != reflect.Struct {
		return nil, fmt.Errorf("model must be a struct, got %s", modelType.Kind())
	}

	namer, ok := reflect.New(modelType).Elem().Interface().(TableNamer)
	if !ok {
		return nil, fmt.Errorf("model %s does not implement TableName()", modelType.Name())
	}

	meta := &tableMeta{
		name:   namer.TableName(),
		byName: make(map[string]int),
	}

	for i := 0; i < modelType.NumField(); i++ {
		field := modelType.Field(i)
		if !field.IsExported() {
			continue
		}

		tag := field.Tag.Get("db")
		if tag == "" || tag == "-" {
			continue
		}

		// Tag options after the first comma are not used here.
		name, _, _ := strings.Cut(tag, ",")
		meta.columns = append(meta.columns, column{name: name, index: i})
		meta.byName[name] = i
	}

	if len(meta.columns) == 0 {
		return nil, fmt.Errorf("model %s declares no db-tagged columns", modelType.Name())
	}

	metaCache.Store(modelType, meta)
	return meta, nil
}
