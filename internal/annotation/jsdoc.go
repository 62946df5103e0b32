package annotation

import (
	"regexp"
	"strings"
)

var (
	blockCommentRegex = regexp.MustCompile(`(?s)/\*\*(.*?)\*/`)
	tagLineRegex      = regexp.MustCompile(`^@([A-Za-z][\w-]*)\s*(.*)$`)
)

// ScrapeJSDoc extracts all annotated /** ... */ blocks from source.
// Blocks that carry no @tags are skipped; a feature map is built from
// annotations, not from prose.
func ScrapeJSDoc(file string, source []byte) []Block {
	var blocks []Block

	for _, loc := range blockCommentRegex.FindAllSubmatchIndex(source, -1) {
		body := string(source[loc[2]:loc[3]])
		line := 1 + strings.Count(string(source[:loc[0]]), "\n")

		block := parseBlock(file, line, body)
		if len(block.Tags) == 0 {
			continue
		}
		blocks = append(blocks, block)
	}
	return blocks
}

// parseBlock splits a comment body into a leading description and its tags.
// A tag's value continues across following plain lines until the next tag,
// matching how JSDoc itself folds multi-line values.
func parseBlock(file string, line int, body string) Block {
	block := Block{File: file, Line: line}

	var description []string
	var current *Tag

	for _, raw := range strings.Split(body, "\n") {
		text := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(raw), "*"))
		text = strings.TrimSpace(text)

		if m := tagLineRegex.FindStringSubmatch(text); m != nil {
			block.Tags = append(block.Tags, Tag{Name: m[1], Value: m[2]})
			current = &block.Tags[len(block.Tags)-1]
			continue
		}
		if text == "" {
			current = nil
			continue
		}
		if current != nil {
			if current.Value == "" {
				current.Value = text
			} else {
				current.Value += " " + text
			}
			continue
		}
		description = append(description, text)
	}

	block.Description = strings.Join(description, " ")
	for i := range block.Tags {
		block.Tags[i].Value = strings.TrimSpace(block.Tags[i].Value)
	}
	return block
}
