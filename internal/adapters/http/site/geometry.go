package site

import (
	"fmt"
	"html/template"

	"github.com/okian/festgrid/internal/domain/model"
)

// Text size classes for event boxes.
const (
	TextXS   = "xs"
	TextSM   = "sm"
	TextBase = "base"
)

// Box is the absolute placement of an event inside its grid cell.
type Box struct {
	Top      float64 // px from the top of the start cell
	Height   float64 // px
	LeftPct  float64 // % of the cell width
	WidthPct float64 // % of the cell width
	Text     string
}

// Place computes the box of pe for rows rowHeight px tall.
func Place(pe model.PositionedEvent, rowHeight float64) Box {
	lanes := pe.TotalLanes
	if lanes < 1 {
		lanes = 1
	}
	height := float64(pe.Duration) / 60 * rowHeight
	return Box{
		Top:      float64(pe.MinuteOffset) / 60 * rowHeight,
		Height:   height,
		LeftPct:  float64(pe.Lane) * 100 / float64(lanes),
		WidthPct: 100 / float64(lanes),
		Text:     TextSize(height, lanes),
	}
}

// TextSize picks the text class for a box of heightPx split into totalLanes.
func TextSize(heightPx float64, totalLanes int) string {
	switch {
	case heightPx < 30 || totalLanes >= 3:
		return TextXS
	case heightPx < 60 || totalLanes == 2:
		return TextSM
	default:
		return TextBase
	}
}

// Style renders the box as an inline style.
func (b Box) Style() template.CSS {
	return template.CSS(fmt.Sprintf("top:%.2fpx;height:%.2fpx;left:%.4f%%;width:%.4f%%",
		b.Top, b.Height, b.LeftPct, b.WidthPct))
}

// typeColors maps event types onto background colours.
var typeColors = map[model.EventType]string{
	model.TypeDJ:          "#7c3aed",
	model.TypeLive:        "#db2777",
	model.TypePerformance: "#ea580c",
	model.TypeWorkshop:    "#0891b2",
	model.TypeInteractive: "#16a34a",
}

// TypeColor returns the colour of an event type.
func TypeColor(t model.EventType) string {
	if c, ok := typeColors[t]; ok {
		return c
	}
	return "#475569"
}
