package render

import (
	"fmt"
	"regexp"
	"strings"
)

// StrokeWidths sets the line width per series kind.
type StrokeWidths struct {
	Borrow    float64 `yaml:"borrow"`
	Lend      float64 `yaml:"lend"`
	BorrowFee float64 `yaml:"borrow_fee"`
}

// Presentation captures everything that differs between chart variants.
// The curve math is shared; only these options change.
type Presentation struct {
	Palette          []string     `yaml:"palette"`            // One color per curve slot, reused cyclically
	StrokeWidths     StrokeWidths `yaml:"stroke_widths"`      //
	ShowMarkers      bool         `yaml:"show_markers"`       // Overlay current utilization markers
	SmallLayout      bool         `yaml:"small_layout"`       // Compact legend, thinner lines
	ApplyProtocolFee bool         `yaml:"apply_protocol_fee"` // Add a fee-adjusted borrow series
	MarkerColor      string       `yaml:"marker_color"`       // Empty uses the slot color
	LegendThickness  float64      `yaml:"legend_thickness"`   // Relative legend font weight, (0, 1]
}

// DefaultPresentation is the two-slot blue/green chart.
func DefaultPresentation() Presentation {
	return Presentation{
		Palette:         []string{"#0000FF", "#008000"},
		StrokeWidths:    StrokeWidths{Borrow: 2.5, Lend: 1.5, BorrowFee: 2},
		LegendThickness: 0.75,
	}
}

const (
	smallLayoutScale = 0.6
	maxFontWeight    = 800
)

var hexColor = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// Normalize fills unset fields from DefaultPresentation.
func (p *Presentation) Normalize() {
	def := DefaultPresentation()
	palette := p.Palette[:0:0]
	for _, c := range p.Palette {
		if c = strings.TrimSpace(c); c != "" {
			palette = append(palette, c)
		}
	}
	if len(palette) == 0 {
		palette = def.Palette
	}
	p.Palette = palette
	if p.StrokeWidths.Borrow == 0 {
		p.StrokeWidths.Borrow = def.StrokeWidths.Borrow
	}
	if p.StrokeWidths.Lend == 0 {
		p.StrokeWidths.Lend = def.StrokeWidths.Lend
	}
	if p.StrokeWidths.BorrowFee == 0 {
		p.StrokeWidths.BorrowFee = def.StrokeWidths.BorrowFee
	}
	if p.LegendThickness == 0 {
		p.LegendThickness = def.LegendThickness
	}
	p.MarkerColor = strings.TrimSpace(p.MarkerColor)
}

// Validate reports the first invalid option.
func (p Presentation) Validate() error {
	for i, c := range p.Palette {
		if !hexColor.MatchString(c) {
			return fmt.Errorf("palette[%d]: %q is not a hex color", i, c)
		}
	}
	if p.MarkerColor != "" && !hexColor.MatchString(p.MarkerColor) {
		return fmt.Errorf("marker_color: %q is not a hex color", p.MarkerColor)
	}
	w := p.StrokeWidths
	if w.Borrow < 0 || w.Lend < 0 || w.BorrowFee < 0 {
		return fmt.Errorf("stroke widths must not be negative")
	}
	if p.LegendThickness < 0 || p.LegendThickness > 1 {
		return fmt.Errorf("legend_thickness %g must be within (0, 1]", p.LegendThickness)
	}
	return nil
}

// ColorFor returns the palette color of a curve slot.
func (p Presentation) ColorFor(slot int) string {
	if len(p.Palette) == 0 {
		return ""
	}
	return p.Palette[slot%len(p.Palette)]
}

// Legend describes how the chart legend is laid out.
type Legend struct {
	Columns    int `json:"columns"`
	FontWeight int `json:"font_weight"`
}

// Legend derives the legend layout.
func (p Presentation) Legend() Legend {
	l := Legend{Columns: 2, FontWeight: int(p.LegendThickness * maxFontWeight)}
	if p.SmallLayout {
		l.Columns = 1
	}
	return l
}

func (p Presentation) width(w float64) float64 {
	if p.SmallLayout {
		return w * smallLayoutScale
	}
	return w
}
