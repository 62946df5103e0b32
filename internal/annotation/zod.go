package annotation

import (
	"regexp"
	"strings"
)

var (
	zodSchemaRegex = regexp.MustCompile(`export\s+const\s+(\w+?)(?:Schema)?\s*=\s*z\.object\(\s*\{`)
	zodFieldRegex  = regexp.MustCompile(`^\s*(\w+)\s*:\s*z\.(\w+)`)
)

// ScrapeZodSchemas extracts table definitions from exported Zod object
// schemas of the form:
//
//	export const UserSchema = z.object({
//	  id: z.string(),
//	  age: z.number().optional(),
//	})
//
// Nested objects are flattened out of scope: only the top-level fields make
// it into the catalog, which is what the generated table pages show.
func ScrapeZodSchemas(file string, source []byte) []TableDef {
	var tables []TableDef
	text := string(source)

	for _, loc := range zodSchemaRegex.FindAllStringSubmatchIndex(text, -1) {
		name := text[loc[2]:loc[3]]
		line := 1 + strings.Count(text[:loc[0]], "\n")

		body, ok := balancedBraces(text[loc[1]-1:])
		if !ok {
			continue
		}

		table := TableDef{Name: name, File: file, Line: line}
		depth := 0
		for _, fieldLine := range strings.Split(body, "\n") {
			// Only top-level fields count; nested z.object bodies are skipped.
			if depth == 0 {
				if m := zodFieldRegex.FindStringSubmatch(fieldLine); m != nil {
					table.Fields = append(table.Fields, SchemaField{
						Name:     m[1],
						Type:     m[2],
						Optional: strings.Contains(fieldLine, ".optional()"),
					})
				}
			}
			depth += strings.Count(fieldLine, "{") - strings.Count(fieldLine, "}")
			if depth < 0 {
				depth = 0
			}
		}
		tables = append(tables, table)
	}
	return tables
}

// balancedBraces returns the content between the opening brace at text[0]
// and its matching closing brace.
func balancedBraces(text string) (string, bool) {
	if len(text) == 0 || text[0] != '{' {
		return "", false
	}
	depth := 0
	for i, r := range text {
		switch r {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return text[1:i], true
			}
		}
	}
	return "", false
}
