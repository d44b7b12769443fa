// Package colors assigns visual colors to event owners. The mapping is a
// pure function of the owner identifier and the fixed palette; the cache is
// an optimization only and never the source of truth.
package colors

import (
	"strconv"
	"strings"
	"sync"
	"unicode/utf16"
)

// Triple is one palette entry: background, border and text hex colors.
type Triple struct {
	Background string `json:"background"`
	Border     string `json:"border"`
	Text       string `json:"text"`
}

// palette holds the Material triples used for owner distinction. Order
// matters: index assignment is ownerID mod len(palette).
var palette = []Triple{
	{Background: "#E3F2FD", Border: "#2196F3", Text: "#0D47A1"}, // blue
	{Background: "#F3E5F5", Border: "#9C27B0", Text: "#4A148C"}, // purple
	{Background: "#E8F5E8", Border: "#4CAF50", Text: "#1B5E20"}, // green
	{Background: "#FFF3E0", Border: "#FF9800", Text: "#E65100"}, // orange
	{Background: "#FCE4EC", Border: "#E91E63", Text: "#880E4F"}, // pink
	{Background: "#E0F2F1", Border: "#009688", Text: "#004D40"}, // teal
	{Background: "#F1F8E9", Border: "#8BC34A", Text: "#33691E"}, // light green
	{Background: "#FFF8E1", Border: "#FFC107", Text: "#FF6F00"}, // amber
	{Background: "#EFEBE9", Border: "#795548", Text: "#3E2723"}, // brown
	{Background: "#FAFAFA", Border: "#607D8B", Text: "#263238"}, // blue grey
	{Background: "#E8EAF6", Border: "#3F51B5", Text: "#1A237E"}, // indigo
	{Background: "#F9FBE7", Border: "#CDDC39", Text: "#827717"}, // lime
}

// PaletteSize returns the number of palette entries.
func PaletteSize() int {
	return len(palette)
}

// IndexFor maps an owner identifier to a palette index. Negative
// identifiers are treated as the sentinel 0.
func IndexFor(ownerID int64) int {
	if ownerID < 0 {
		ownerID = 0
	}
	return int(ownerID % int64(len(palette)))
}

// LabelIndex derives a palette index from a display label using a rolling
// hash (h = h*31 + codeUnit over UTF-16 code units, truncated to int32,
// absolute value, mod palette size). The exact arithmetic is fixed so the
// same label maps to the same index across runs and implementations.
func LabelIndex(label string) int {
	if label == "" {
		return 0
	}
	var h int32
	for _, unit := range utf16.Encode([]rune(label)) {
		h = h*31 + int32(unit)
	}
	// Widen before negating: -MinInt32 overflows in 32 bits and would
	// leave the index negative.
	v := int64(h)
	if v < 0 {
		v = -v
	}
	return int(v % int64(len(palette)))
}

// Assigner caches owner color lookups for the process lifetime.
type Assigner struct {
	mu   sync.RWMutex
	byID map[int64]Triple
}

// NewAssigner builds an empty assigner.
func NewAssigner() *Assigner {
	return &Assigner{byID: make(map[int64]Triple)}
}

// ColorFor returns the palette triple for an owner identifier.
func (a *Assigner) ColorFor(ownerID int64) Triple {
	a.mu.RLock()
	if c, ok := a.byID[ownerID]; ok {
		a.mu.RUnlock()
		return c
	}
	a.mu.RUnlock()

	c := palette[IndexFor(ownerID)]

	a.mu.Lock()
	a.byID[ownerID] = c
	a.mu.Unlock()
	return c
}

// ColorForLabel returns the palette triple for a display label. Used where
// only a name is available.
func (a *Assigner) ColorForLabel(label string) Triple {
	return palette[LabelIndex(label)]
}

// ClearCache drops all cached assignments. Mappings are unaffected.
func (a *Assigner) ClearCache() {
	a.mu.Lock()
	a.byID = make(map[int64]Triple)
	a.mu.Unlock()
}

// ContrastColor picks black or white text for the given background hex
// color using a simple luminance threshold.
func ContrastColor(backgroundHex string) string {
	hex := strings.TrimPrefix(backgroundHex, "#")
	if len(hex) != 6 {
		return "#000000"
	}
	r, errR := strconv.ParseInt(hex[0:2], 16, 32)
	g, errG := strconv.ParseInt(hex[2:4], 16, 32)
	b, errB := strconv.ParseInt(hex[4:6], 16, 32)
	if errR != nil || errG != nil || errB != nil {
		return "#000000"
	}
	luminance := (0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b)) / 255
	if luminance > 0.5 {
		return "#000000"
	}
	return "#FFFFFF"
}
