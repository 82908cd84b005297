package logspeed

import (
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// Report column widths, in terminal cells.
const (
	LabelWidth       = 28
	ElapsedWidth     = 15
	TotalWidth       = 17
	HeaderTotalWidth = 15
	FooterLabelWidth = 44
	SeparatorWidth   = 60
)

const (
	horizontal  = "─"
	vertical    = "│"
	topLeft     = "┌"
	topRight    = "┐"
	teeLeft     = "├"
	teeRight    = "┤"
	bottomLeft  = "└"
	bottomRight = "┘"
)

// Columns configures the widths used to lay out report rows.
type Columns struct {
	Label       int
	Elapsed     int
	Total       int
	HeaderTotal int
	FooterLabel int
}

// DefaultColumns is the fixed layout every report uses.
var DefaultColumns = Columns{
	Label:       LabelWidth,
	Elapsed:     ElapsedWidth,
	Total:       TotalWidth,
	HeaderTotal: HeaderTotalWidth,
	FooterLabel: FooterLabelWidth,
}

// Millis formats d as milliseconds with exactly two fractional digits.
func Millis(d time.Duration) string {
	return strconv.FormatFloat(float64(d)/float64(time.Millisecond), 'f', 2, 64)
}

// PadRight appends spaces to s until it is width cells wide.
// Strings already at or past width are returned unchanged.
func PadRight(s string, width int) string {
	w := lipgloss.Width(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}

func border(left, right string) string {
	return left + strings.Repeat(horizontal, SeparatorWidth) + right
}

// TopBorder, Separator and BottomBorder return the horizontal table rules.
func TopBorder() string    { return border(topLeft, topRight) }
func Separator() string    { return border(teeLeft, teeRight) }
func BottomBorder() string { return border(bottomLeft, bottomRight) }

// FormatHeader returns the report title line for a session name.
func FormatHeader(name string) string {
	return " Performance Report (" + name + ")"
}

// FormatCheckpointLine returns the line emitted when a checkpoint is recorded.
func FormatCheckpointLine(label string, elapsed, total time.Duration) string {
	return "Checkpoint " + label + " - " + Millis(elapsed) + " ms (Total: " + Millis(total) + " ms)"
}

// Titles returns the column header row.
func (c Columns) Titles() string {
	return PadRight(" Checkpoint", c.Label) +
		PadRight("Elapsed (ms)", c.Elapsed) +
		PadRight("Total (ms)", c.HeaderTotal)
}

// Row returns one bordered report row. Labels wider than the label column
// are kept whole and push the remaining columns right.
func (c Columns) Row(label string, elapsed, total time.Duration) string {
	return vertical +
		PadRight(label, c.Label) +
		PadRight(Millis(elapsed), c.Elapsed) +
		PadRight(Millis(total), c.Total) +
		vertical
}

// Footer returns the total-time row.
func (c Columns) Footer(total time.Duration) string {
	return PadRight(" Total time taken:", c.FooterLabel) + Millis(total) + PadRight(" ms", c.Total)
}
