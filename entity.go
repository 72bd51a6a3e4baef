package htmllite

import (
	"sort"
	"unicode/utf8"

	"github.com/riverfjs/htmllite-go/internal/buffer"
)

// Entity marks a run of the flattened text that sits inside one tag.
// Offset and Length are in UTF-16 code units.
type Entity struct {
	Type   string `json:"type"`
	Offset int    `json:"offset"`
	Length int    `json:"length"`
}

// ToDict converts the entity to a map
func (e Entity) ToDict() map[string]interface{} {
	return map[string]interface{}{
		"type":   e.Type,
		"offset": e.Offset,
		"length": e.Length,
	}
}

// UTF16Len returns the length of text measured in UTF-16 code units.
//
// Characters outside the BMP (codepoint > 0xFFFF) take 2 UTF-16 code units
// (a surrogate pair); all others take 1.
func UTF16Len(text string) int {
	return buffer.UTF16Len(text)
}

// openEntity is an entity whose end has not been seen yet.
type openEntity struct {
	tag   string
	start int
}

// Flatten concatenates span text and turns tag nesting into entities.
//
// A tag at the same depth with the same name in consecutive spans continues
// one entity, so adjacent sibling tags of the same name merge. Entities are
// ordered by start offset, outer before inner; empty runs are dropped.
func Flatten(sections Sections) (string, []Entity) {
	buf := buffer.New()
	entities := make([]Entity, 0)
	var stack []openEntity

	closeFrom := func(depth int) {
		for i := len(stack) - 1; i >= depth; i-- {
			length := buf.UTF16Offset() - stack[i].start
			if length > 0 {
				entities = append(entities, Entity{Type: stack[i].tag, Offset: stack[i].start, Length: length})
			}
		}
		stack = stack[:depth]
	}

	for _, s := range sections {
		common := 0
		for common < len(stack) && common < len(s.Tags) && stack[common].tag == s.Tags[common] {
			common++
		}
		closeFrom(common)
		for _, tag := range s.Tags[common:] {
			stack = append(stack, openEntity{tag: tag, start: buf.UTF16Offset()})
		}
		buf.Write(s.Text)
	}
	closeFrom(0)

	sortEntities(entities)
	return buf.String(), entities
}

// sortEntities orders by offset, longer (outer) first on ties. Equal
// entities keep their emission order.
func sortEntities(entities []Entity) {
	sort.SliceStable(entities, func(i, j int) bool {
		return entityLess(entities[i], entities[j])
	})
}

func entityLess(a, b Entity) bool {
	if a.Offset != b.Offset {
		return a.Offset < b.Offset
	}
	return a.Length > b.Length
}

// TextChunk represents a chunk of text with its entities.
type TextChunk struct {
	Text     string
	Entities []Entity
}

// findNewlinePositions returns the byte index right after each newline.
func findNewlinePositions(text string) []int {
	var points []int
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			points = append(points, i+1)
		}
	}
	return points
}

// buildUTF16OffsetTable builds a cumulative UTF-16 offset table for each byte position.
// Returns a slice where result[i] is the UTF-16 offset at byte position i.
// Bytes inside a multi-byte rune carry the offset of that rune.
func buildUTF16OffsetTable(text string) []int {
	offsets := make([]int, len(text)+1)
	cum := 0
	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		for j := 0; j < size; j++ {
			offsets[i+j] = cum
		}
		if r > 0xFFFF {
			cum += 2
		} else {
			cum++
		}
		i += size
	}
	offsets[len(text)] = cum
	return offsets
}

// isRuneStart reports whether byte position i starts a rune in text.
func isRuneStart(text string, i int) bool {
	return i >= len(text) || utf8.RuneStart(text[i])
}

// SplitEntities splits (text, entities) into chunks not exceeding maxUTF16Len UTF-16 code units.
//
// Tries to split at newline boundaries. Entities that span a split boundary
// are clipped into both chunks.
func SplitEntities(text string, entities []Entity, maxUTF16Len int) []TextChunk {
	total := UTF16Len(text)
	if total <= maxUTF16Len || maxUTF16Len <= 0 {
		return []TextChunk{{Text: text, Entities: entities}}
	}

	offsets := buildUTF16OffsetTable(text)
	splitPoints := findNewlinePositions(text)

	// Determine actual split positions using greedy packing
	var chunkRanges [][2]int // [byteStart, byteEnd]
	byteStart := 0

	for byteStart < len(text) {
		utf16Budget := offsets[byteStart] + maxUTF16Len

		if offsets[len(text)] <= utf16Budget {
			chunkRanges = append(chunkRanges, [2]int{byteStart, len(text)})
			break
		}

		// Find the last split point that fits within budget
		bestSplit := -1
		for _, sp := range splitPoints {
			if sp <= byteStart {
				continue
			}
			if offsets[sp] <= utf16Budget {
				bestSplit = sp
			} else {
				break
			}
		}

		if bestSplit == -1 {
			// No newline split fits -- hard split on a rune boundary
			bestSplit = byteStart
			for i := byteStart + 1; i <= len(text); i++ {
				if !isRuneStart(text, i) {
					continue
				}
				if offsets[i] > utf16Budget {
					break
				}
				bestSplit = i
			}
			if bestSplit == byteStart {
				// Force progress by one rune
				bestSplit++
				for !isRuneStart(text, bestSplit) {
					bestSplit++
				}
			}
		}

		chunkRanges = append(chunkRanges, [2]int{byteStart, bestSplit})
		byteStart = bestSplit
	}

	// Assign entities to chunks, clipping as needed
	result := make([]TextChunk, 0, len(chunkRanges))
	for _, chunkRange := range chunkRanges {
		chunkUTF16Start := offsets[chunkRange[0]]
		chunkUTF16End := offsets[chunkRange[1]]
		chunkEntities := make([]Entity, 0)

		for _, ent := range entities {
			clippedStart := max(ent.Offset, chunkUTF16Start)
			clippedEnd := min(ent.Offset+ent.Length, chunkUTF16End)
			if clippedEnd <= clippedStart {
				continue
			}
			chunkEntities = append(chunkEntities, Entity{
				Type:   ent.Type,
				Offset: clippedStart - chunkUTF16Start,
				Length: clippedEnd - clippedStart,
			})
		}

		result = append(result, TextChunk{
			Text:     text[chunkRange[0]:chunkRange[1]],
			Entities: chunkEntities,
		})
	}

	return result
}
