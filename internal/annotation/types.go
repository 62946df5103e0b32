// Package annotation scrapes documentation annotations out of source files.
// It extracts @tag values from JSDoc-style block comments and field catalogs
// from exported Zod object schemas. Everything here is regex-based on
// purpose: the input convention is stable and a full TypeScript parser would
// buy nothing.
package annotation

// Tag is a single "@name value" annotation inside a doc comment.
type Tag struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Block is one scraped /** ... */ comment: its free-text description and
// all tags it carries.
type Block struct {
	File        string `json:"file"`
	Line        int    `json:"line"`
	Description string `json:"description,omitempty"`
	Tags        []Tag  `json:"tags"`
}

// First returns the value of the first tag with the given name and whether
// it was present.
func (b Block) First(name string) (string, bool) {
	for _, t := range b.Tags {
		if t.Name == name {
			return t.Value, true
		}
	}
	return "", false
}

// All returns the values of every tag with the given name, in order.
func (b Block) All(name string) []string {
	var values []string
	for _, t := range b.Tags {
		if t.Name == name {
			values = append(values, t.Value)
		}
	}
	return values
}

// SchemaField is a single field of a scraped Zod object schema.
type SchemaField struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Optional bool   `json:"optional,omitempty"`
}

// TableDef is a table/record shape inferred from an exported Zod schema.
type TableDef struct {
	Name   string        `json:"name"`
	File   string        `json:"file"`
	Line   int           `json:"line"`
	Fields []SchemaField `json:"fields"`
}

// ScanResult aggregates everything one scan pass found.
type ScanResult struct {
	Root         string     `json:"root"`
	FilesScanned int        `json:"files_scanned"`
	Blocks       []Block    `json:"blocks"`
	Tables       []TableDef `json:"tables"`
}
