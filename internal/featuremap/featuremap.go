// Package featuremap turns scraped annotations into the feature map
// artifact: a catalog of screens, components, actions, and tables.
package featuremap

import (
	"fmt"
	"sort"
	"time"

	"github.com/shirokuma-tools/shirokuma-docs/internal/annotation"
)

// Screen is a user-facing screen, annotated with @screen.
type Screen struct {
	Name        string   `json:"name"`
	Route       string   `json:"route,omitempty"`
	File        string   `json:"file"`
	Description string   `json:"description,omitempty"`
	Uses        []string `json:"uses,omitempty"`
}

// Component is a reusable UI component, annotated with @component.
type Component struct {
	Name        string   `json:"name"`
	File        string   `json:"file"`
	Description string   `json:"description,omitempty"`
	Uses        []string `json:"uses,omitempty"`
}

// Action is a user- or system-triggered operation, annotated with @action.
type Action struct {
	Name        string `json:"name"`
	File        string `json:"file"`
	Description string `json:"description,omitempty"`
	Table       string `json:"table,omitempty"`
}

// Table is a record shape scraped from a Zod schema.
type Table struct {
	Name   string                   `json:"name"`
	File   string                   `json:"file"`
	Fields []annotation.SchemaField `json:"fields"`
}

// Map is the complete feature map artifact.
type Map struct {
	GeneratedAt time.Time   `json:"generated_at"`
	Screens     []Screen    `json:"screens"`
	Components  []Component `json:"components"`
	Actions     []Action    `json:"actions"`
	Tables      []Table     `json:"tables"`
}

// Build assembles a feature map from one scan result. Duplicate names are
// kept out of the map and reported as warnings; the first occurrence in
// file order wins.
func Build(result *annotation.ScanResult, now time.Time) (*Map, []string) {
	m := &Map{GeneratedAt: now.UTC()}
	var warnings []string

	seen := map[string]string{} // "kind/name" -> file

	for _, block := range result.Blocks {
		switch {
		case has(block, "screen"):
			name, _ := block.First("screen")
			if dup := remember(seen, "screen", name, block.File); dup != "" {
				warnings = append(warnings, dup)
				continue
			}
			route, _ := block.First("route")
			m.Screens = append(m.Screens, Screen{
				Name:        name,
				Route:       route,
				File:        block.File,
				Description: block.Description,
				Uses:        block.All("uses"),
			})
		case has(block, "component"):
			name, _ := block.First("component")
			if dup := remember(seen, "component", name, block.File); dup != "" {
				warnings = append(warnings, dup)
				continue
			}
			m.Components = append(m.Components, Component{
				Name:        name,
				File:        block.File,
				Description: block.Description,
				Uses:        block.All("uses"),
			})
		case has(block, "action"):
			name, _ := block.First("action")
			if dup := remember(seen, "action", name, block.File); dup != "" {
				warnings = append(warnings, dup)
				continue
			}
			table, _ := block.First("table")
			m.Actions = append(m.Actions, Action{
				Name:        name,
				File:        block.File,
				Description: block.Description,
				Table:       table,
			})
		}
	}

	for _, t := range result.Tables {
		if dup := remember(seen, "table", t.Name, t.File); dup != "" {
			warnings = append(warnings, dup)
			continue
		}
		m.Tables = append(m.Tables, Table{Name: t.Name, File: t.File, Fields: t.Fields})
	}

	sort.Slice(m.Screens, func(i, j int) bool { return m.Screens[i].Name < m.Screens[j].Name })
	sort.Slice(m.Components, func(i, j int) bool { return m.Components[i].Name < m.Components[j].Name })
	sort.Slice(m.Actions, func(i, j int) bool { return m.Actions[i].Name < m.Actions[j].Name })
	sort.Slice(m.Tables, func(i, j int) bool { return m.Tables[i].Name < m.Tables[j].Name })

	warnings = append(warnings, checkDanglingUses(m)...)
	return m, warnings
}

func has(b annotation.Block, tag string) bool {
	_, ok := b.First(tag)
	return ok
}

// remember records kind/name and returns a warning string on duplicates.
func remember(seen map[string]string, kind, name, file string) string {
	key := kind + "/" + name
	if prev, ok := seen[key]; ok {
		return fmt.Sprintf("duplicate %s %q in %s (first defined in %s)", kind, name, file, prev)
	}
	seen[key] = file
	return ""
}

// checkDanglingUses warns about @uses references that name no known
// component.
func checkDanglingUses(m *Map) []string {
	known := make(map[string]bool, len(m.Components))
	for _, c := range m.Components {
		known[c.Name] = true
	}

	var warnings []string
	check := func(owner, file string, uses []string) {
		for _, u := range uses {
			if !known[u] {
				warnings = append(warnings, fmt.Sprintf("%s references unknown component %q (%s)", owner, u, file))
			}
		}
	}
	for _, s := range m.Screens {
		check("screen "+s.Name, s.File, s.Uses)
	}
	for _, c := range m.Components {
		check("component "+c.Name, c.File, c.Uses)
	}
	return warnings
}
