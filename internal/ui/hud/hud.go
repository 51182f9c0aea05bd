// Package hud provides the heads-up display for the cab: the floor
// indicator, the score and the speech bubbles of passengers.
package hud

import (
	"fmt"
	"image/color"
	"math"

	"chosenoffset.com/elevator/internal/content"
	"chosenoffset.com/elevator/internal/render"
)

// HUDConfig defines where and how the panel is drawn
type HUDConfig struct {
	Position string  // "top-left", "top-right", "bottom-left", "bottom-right"
	Opacity  float64 // Background opacity (0-1)
}

// DefaultConfig returns a sensible default HUD configuration
func DefaultConfig() *HUDConfig {
	return &HUDConfig{
		Position: "top-left",
		Opacity:  0.7,
	}
}

// FormatFloor renders a floor level the way the indicator shows it:
// levels at or below zero are basements.
func FormatFloor(level int) string {
	if level <= 0 {
		return fmt.Sprintf("BF%d", -level)
	}
	return fmt.Sprintf("F%d", level)
}

// HUD keeps the status the elevator reports and draws it. It implements
// elevator.Status.
type HUD struct {
	config       *HUDConfig
	screenWidth  int
	screenHeight int

	floorIndex int
	floorName  string
	flavor     string
	display    float64
	score      int
	outage     bool

	panelWidth int
}

// New creates a new HUD with the given configuration
func New(config *HUDConfig, screenWidth, screenHeight int) *HUD {
	if config == nil {
		config = DefaultConfig()
	}
	return &HUD{
		config:       config,
		screenWidth:  screenWidth,
		screenHeight: screenHeight,
		panelWidth:   150,
	}
}

// FloorChanged implements elevator.Status
func (h *HUD) FloorChanged(index int, floor content.Floor) {
	h.floorIndex = index
	h.floorName = floor.Name
	h.flavor = floor.Flavor
	h.display = float64(floor.Level)
}

// ScoreIncremented implements elevator.Status
func (h *HUD) ScoreIncremented(total int) {
	h.score = total
}

// OutageBegan implements elevator.Status
func (h *HUD) OutageBegan() { h.outage = true }

// OutageEnded implements elevator.Status
func (h *HUD) OutageEnded() { h.outage = false }

// SetDisplayFloor updates the indicator between stops
func (h *HUD) SetDisplayFloor(level float64) {
	h.display = level
}

// FloorLabel returns the indicator text, e.g. "F3" or "BF1"
func (h *HUD) FloorLabel() string {
	return FormatFloor(int(math.Floor(h.display)))
}

func (h *HUD) Score() int { return h.score }
func (h *HUD) Outage() bool { return h.outage }
func (h *HUD) FloorIndex() int { return h.floorIndex }

// Lines returns the text rows of the panel, top to bottom
func (h *HUD) Lines() []string {
	lines := []string{h.FloorLabel()}
	if h.floorName != "" {
		lines[0] += " " + h.floorName
	}
	lines = append(lines, fmt.Sprintf("Score: %d", h.score))
	if h.outage {
		lines = append(lines, "POWER OUT")
	}
	return lines
}

// Draw renders the HUD panel
func (h *HUD) Draw(r render.Renderer, screen render.Image) {
	lines := h.Lines()
	height := 16 + len(lines)*16
	x, y := h.calculatePosition(height)

	alpha := uint8(h.config.Opacity * 255)
	r.FillRect(screen, float32(x), float32(y), float32(h.panelWidth), float32(height), color.RGBA{20, 20, 30, alpha})
	r.StrokeRect(screen, float32(x), float32(y), float32(h.panelWidth), float32(height), 1, color.RGBA{60, 60, 80, alpha})

	currentY := y + 8
	for i, line := range lines {
		r.DrawText(screen, line, x+8, currentY)
		currentY += 16
		if i == 0 {
			// Divider under the floor indicator
			r.FillRect(screen, float32(x+4), float32(currentY-2), float32(h.panelWidth-8), 1, color.RGBA{80, 80, 100, 200})
		}
	}
}

// calculatePosition returns the top-left corner of the HUD panel
func (h *HUD) calculatePosition(panelHeight int) (int, int) {
	padding := 10

	switch h.config.Position {
	case "top-right":
		return h.screenWidth - h.panelWidth - padding, padding
	case "bottom-left":
		return padding, h.screenHeight - panelHeight - padding
	case "bottom-right":
		return h.screenWidth - h.panelWidth - padding, h.screenHeight - panelHeight - padding
	default: // "top-left"
		return padding, padding
	}
}
