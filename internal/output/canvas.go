package output

import (
	"strings"
)

// BoxStyle defines the character set for drawing boxes
type BoxStyle struct {
	TopLeft     rune
	TopRight    rune
	BottomLeft  rune
	BottomRight rune
	Horizontal  rune
	Vertical    rune
}

var (
	// ASCIIStyle uses simple ASCII characters for box drawing
	ASCIIStyle = BoxStyle{
		TopLeft:     '+',
		TopRight:    '+',
		BottomLeft:  '+',
		BottomRight: '+',
		Horizontal:  '-',
		Vertical:    '|',
	}

	// ASCIIFocusStyle marks the focused window in ASCII mode
	ASCIIFocusStyle = BoxStyle{
		TopLeft:     '#',
		TopRight:    '#',
		BottomLeft:  '#',
		BottomRight: '#',
		Horizontal:  '=',
		Vertical:    '#',
	}

	// UnicodeStyle uses Unicode box drawing characters
	UnicodeStyle = BoxStyle{
		TopLeft:     '┌',
		TopRight:    '┐',
		BottomLeft:  '└',
		BottomRight: '┘',
		Horizontal:  '─',
		Vertical:    '│',
	}

	// UnicodeFocusStyle marks the focused window with heavy lines
	UnicodeFocusStyle = BoxStyle{
		TopLeft:     '┏',
		TopRight:    '┓',
		BottomLeft:  '┗',
		BottomRight: '┛',
		Horizontal:  '━',
		Vertical:    '┃',
	}
)

// Canvas is a 2D character buffer, row 0 at the top.
type Canvas struct {
	Width  int
	Height int
	buffer [][]rune
}

// NewCanvas creates a blank canvas with the specified dimensions
func NewCanvas(width, height int) *Canvas {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}

	buffer := make([][]rune, height)
	for i := range buffer {
		buffer[i] = []rune(strings.Repeat(" ", width))
	}

	return &Canvas{
		Width:  width,
		Height: height,
		buffer: buffer,
	}
}

// SetCell sets a character at the specified position; out of range is ignored.
func (c *Canvas) SetCell(x, y int, r rune) {
	if x >= 0 && x < c.Width && y >= 0 && y < c.Height {
		c.buffer[y][x] = r
	}
}

// GetCell returns the character at the specified position
func (c *Canvas) GetCell(x, y int) rune {
	if x >= 0 && x < c.Width && y >= 0 && y < c.Height {
		return c.buffer[y][x]
	}
	return ' '
}

// DrawBox draws a box outline in the given style.
func (c *Canvas) DrawBox(x, y, width, height int, style BoxStyle) {
	if width < 2 || height < 2 {
		return
	}

	c.SetCell(x, y, style.TopLeft)
	c.SetCell(x+width-1, y, style.TopRight)
	c.SetCell(x, y+height-1, style.BottomLeft)
	c.SetCell(x+width-1, y+height-1, style.BottomRight)

	for i := 1; i < width-1; i++ {
		c.SetCell(x+i, y, style.Horizontal)
		c.SetCell(x+i, y+height-1, style.Horizontal)
	}
	for i := 1; i < height-1; i++ {
		c.SetCell(x, y+i, style.Vertical)
		c.SetCell(x+width-1, y+i, style.Vertical)
	}
}

// ClearRect blanks the inside of a box so windows drawn later hide the
// ones beneath them.
func (c *Canvas) ClearRect(x, y, width, height int) {
	for dy := 0; dy < height; dy++ {
		for dx := 0; dx < width; dx++ {
			c.SetCell(x+dx, y+dy, ' ')
		}
	}
}

// DrawText writes text at the specified position, clipped to maxLen runes.
func (c *Canvas) DrawText(x, y int, text string, maxLen int) {
	runes := []rune(text)
	if maxLen >= 0 && len(runes) > maxLen {
		runes = runes[:maxLen]
	}
	for i, r := range runes {
		c.SetCell(x+i, y, r)
	}
}

// String renders the canvas with trailing spaces trimmed from each row.
func (c *Canvas) String() string {
	lines := make([]string, len(c.buffer))
	for i, row := range c.buffer {
		lines[i] = strings.TrimRight(string(row), " ")
	}
	return strings.Join(lines, "\n")
}
