package validate

import (
	"encoding/json"
	"strconv"
)

// BlockType identifies one kind of editor block.
type BlockType string

// The closed set of block types accepted in a content document.
const (
	BlockHeader    BlockType = "header"
	BlockParagraph BlockType = "paragraph"
	BlockList      BlockType = "list"
	BlockImage     BlockType = "image"
	BlockVideo     BlockType = "video"
	BlockQuote     BlockType = "quote"
	BlockTable     BlockType = "table"
	BlockCode      BlockType = "code"
	BlockDelimiter BlockType = "delimiter"
	BlockWarning   BlockType = "warning"
	BlockEmbed     BlockType = "embed"
	BlockChecklist BlockType = "checklist"
	BlockAttaches  BlockType = "attaches"
)

var knownBlockTypes = map[BlockType]struct{}{
	BlockHeader:    {},
	BlockParagraph: {},
	BlockList:      {},
	BlockImage:     {},
	BlockVideo:     {},
	BlockQuote:     {},
	BlockTable:     {},
	BlockCode:      {},
	BlockDelimiter: {},
	BlockWarning:   {},
	BlockEmbed:     {},
	BlockChecklist: {},
	BlockAttaches:  {},
}

// Block is a single editor block. Data is an open-ended payload whose shape
// depends on the block type and is not validated here.
type Block struct {
	ID   string          `json:"id"`
	Type BlockType       `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// Document is the structured body of a content submission.
type Document struct {
	Version string  `json:"version"`
	Blocks  []Block `json:"blocks"`
}

// Blocks checks a document: a version must be present and every block needs
// an id and a type from the closed set. Violations are indexed under the
// given field name so the caller can attach them to its form.
func Blocks(field string, doc Document) Violations {
	v := Violations{}
	if doc.Version == "" {
		v.Add(field, "document version is required")
	}
	if len(doc.Blocks) == 0 {
		v.Add(field, "document must contain at least one block")
	}
	for i, b := range doc.Blocks {
		pos := strconv.Itoa(i)
		if b.ID == "" {
			v.Add(field, "block "+pos+" is missing an id")
		}
		if _, ok := knownBlockTypes[b.Type]; !ok {
			v.Add(field, "block "+pos+" has unknown type "+strconv.Quote(string(b.Type)))
		}
	}
	if v.Empty() {
		return nil
	}
	return v
}

// ParseBlocks decodes a raw JSON document and validates it.
func ParseBlocks(field, raw string) (Document, Violations) {
	var doc Document
	if raw == "" {
		return doc, Violations{field: {"is required"}}
	}
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return doc, Violations{field: {"must be a valid block document"}}
	}
	return doc, Blocks(field, doc)
}
