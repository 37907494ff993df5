package draw

import (
	"io"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/muesli/termenv"

	"github.com/tomz197/pong/internal/physics"
)

// Canvas is a color drawing buffer with 2x vertical resolution using half-block characters.
// Supports scaling from logical coordinates to actual terminal pixels.
type Canvas struct {
	termWidth      int     // Actual terminal columns
	termHeight     int     // Actual terminal rows
	subPixelHeight int     // termHeight * 2
	pixels         []Color // Flat slice: [y * termWidth + x]

	// Scaling from logical to pixel coordinates
	logicalWidth  float64
	logicalHeight float64
	scaleX        float64 // termWidth / logicalWidth
	scaleY        float64 // (termHeight*2) / logicalHeight

	// Offset for centering the render area when terminal is larger than max resolution.
	// These are 0-based terminal offsets (columns/rows to skip).
	offsetCol int
	offsetRow int

	labels []label // Text drawn over the pixels, in terminal cells

	// Frame diffing: only cells that changed since the last Render are emitted.
	frame     []cell
	prev      []cell
	prevValid bool

	// Color output is downsampled to what the terminal supports
	profile  termenv.Profile
	sgrCache map[sgrKey]string

	renderBuf strings.Builder
	numBuf    [20]byte
}

// sgrKey identifies a cached color sequence.
type sgrKey struct {
	color Color
	bg    bool
}

// label is a run of text placed on terminal cells (0-based).
type label struct {
	col, row int
	text     string
	color    Color
	bold     bool
}

// cell is one composed terminal cell.
type cell struct {
	ch   rune
	fg   Color
	bg   Color
	bold bool
}

// Ensure Canvas satisfies Surface.
var _ Surface = (*Canvas)(nil)

// NewScaledCanvas creates a canvas that scales from logical coordinates to terminal pixels.
// logicalWidth/Height define the coordinate space used by the game.
// termWidth/Height are the actual terminal dimensions.
// profile selects the color escape sequences (true color, 256, 16 or none).
func NewScaledCanvas(termWidth, termHeight int, logicalWidth, logicalHeight float64, profile termenv.Profile) *Canvas {
	c := &Canvas{
		logicalWidth:  logicalWidth,
		logicalHeight: logicalHeight,
		profile:       profile,
		sgrCache:      make(map[sgrKey]string),
	}
	c.Resize(termWidth, termHeight)
	return c
}

// Resize updates the canvas for new terminal dimensions while keeping logical size.
func (c *Canvas) Resize(termWidth, termHeight int) {
	if termWidth < 1 {
		termWidth = 1
	}
	if termHeight < 1 {
		termHeight = 1
	}
	subPixelHeight := termHeight * 2

	// Reallocate if size changed
	if termWidth != c.termWidth || termHeight != c.termHeight {
		c.pixels = make([]Color, subPixelHeight*termWidth)
		c.frame = make([]cell, termHeight*termWidth)
		c.prev = make([]cell, termHeight*termWidth)
		c.prevValid = false
		c.termWidth = termWidth
		c.termHeight = termHeight
		c.subPixelHeight = subPixelHeight
	}

	c.scaleX = float64(termWidth) / c.logicalWidth
	c.scaleY = float64(subPixelHeight) / c.logicalHeight
}

// SetOffset sets the column and row offset for centering the canvas.
// Offsets are 0-based terminal positions: the canvas starts at (offsetCol+1, offsetRow+1).
func (c *Canvas) SetOffset(col, row int) {
	if col != c.offsetCol || row != c.offsetRow {
		c.prevValid = false
	}
	c.offsetCol = col
	c.offsetRow = row
}

// OffsetCol returns the column offset used for centering.
func (c *Canvas) OffsetCol() int {
	return c.offsetCol
}

// OffsetRow returns the row offset used for centering.
func (c *Canvas) OffsetRow() int {
	return c.offsetRow
}

// ForceRedraw makes the next Render emit every cell, e.g. after the terminal was cleared.
func (c *Canvas) ForceRedraw() {
	c.prevValid = false
}

// Clear fills every pixel with col and drops any text.
func (c *Canvas) Clear(col Color) {
	for i := range c.pixels {
		c.pixels[i] = col
	}
	c.labels = c.labels[:0]
}

// setPixel sets a pixel at actual terminal coordinates (no scaling).
func (c *Canvas) setPixel(x, y int, col Color) {
	if x >= 0 && x < c.termWidth && y >= 0 && y < c.subPixelHeight {
		c.pixels[y*c.termWidth+x] = col
	}
}

// At returns the pixel color at actual pixel coordinates.
func (c *Canvas) At(x, y int) Color {
	if x < 0 || x >= c.termWidth || y < 0 || y >= c.subPixelHeight {
		return Color{}
	}
	return c.pixels[y*c.termWidth+x]
}

// pixelSpan converts a logical interval to an inclusive pixel range.
// Every non-empty interval covers at least one pixel.
func pixelSpan(start, length, scale float64) (int, int) {
	p0 := int(math.Round(start * scale))
	p1 := int(math.Round((start+length)*scale)) - 1
	if p1 < p0 {
		p1 = p0
	}
	return p0, p1
}

// FillRect fills a rectangle given in logical coordinates.
func (c *Canvas) FillRect(x, y, w, h float64, col Color) {
	if w <= 0 || h <= 0 {
		return
	}
	x0, x1 := pixelSpan(x, w, c.scaleX)
	y0, y1 := pixelSpan(y, h, c.scaleY)
	for py := y0; py <= y1; py++ {
		for px := x0; px <= x1; px++ {
			c.setPixel(px, py, col)
		}
	}
}

// FillCircle fills a circle given in logical coordinates.
// Pixels whose centers fall inside the circle are set; the center pixel is always set.
func (c *Canvas) FillCircle(cx, cy, r float64, col Color) {
	if r <= 0 {
		return
	}
	x0 := int(math.Floor((cx - r) * c.scaleX))
	x1 := int(math.Ceil((cx + r) * c.scaleX))
	y0 := int(math.Floor((cy - r) * c.scaleY))
	y1 := int(math.Ceil((cy + r) * c.scaleY))

	for py := y0; py <= y1; py++ {
		ly := (float64(py) + 0.5) / c.scaleY
		for px := x0; px <= x1; px++ {
			lx := (float64(px) + 0.5) / c.scaleX
			if physics.PointInCircle(lx, ly, cx, cy, r) {
				c.setPixel(px, py, col)
			}
		}
	}
	c.setPixel(int(cx*c.scaleX), int(cy*c.scaleY), col)
}

// Line draws a line on the canvas using Bresenham's algorithm.
// Coordinates and dash lengths are in logical space.
func (c *Canvas) Line(lx1, ly1, lx2, ly2 float64, col Color, dash []float64) {
	x1 := int(math.Round(lx1 * c.scaleX))
	y1 := int(math.Round(ly1 * c.scaleY))
	x2 := int(math.Round(lx2 * c.scaleX))
	y2 := int(math.Round(ly2 * c.scaleY))

	dx := abs(x2 - x1)
	dy := abs(y2 - y1)

	sx := 1
	if x1 > x2 {
		sx = -1
	}
	sy := 1
	if y1 > y2 {
		sy = -1
	}

	// Dash phase advances with logical distance along the line
	steps := max(dx, dy)
	length := physics.Distance(lx1, ly1, lx2, ly2)
	pattern := dashPattern(dash)

	err := dx - dy
	for i := 0; ; i++ {
		d := 0.0
		if steps > 0 {
			d = float64(i) * length / float64(steps)
		}
		if dashOn(pattern, d) {
			c.setPixel(x1, y1, col)
		}

		if x1 == x2 && y1 == y2 {
			break
		}

		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

// dashPattern normalizes a dash list: odd-length lists repeat to even length,
// and patterns with no positive total length draw solid.
func dashPattern(dash []float64) []float64 {
	total := 0.0
	for _, d := range dash {
		if d < 0 {
			return nil
		}
		total += d
	}
	if total <= 0 {
		return nil
	}
	if len(dash)%2 == 1 {
		return append(append([]float64{}, dash...), dash...)
	}
	return dash
}

// dashOn reports whether distance d along a line falls in an "on" segment.
func dashOn(pattern []float64, d float64) bool {
	if len(pattern) == 0 {
		return true
	}
	period := 0.0
	for _, p := range pattern {
		period += p
	}
	d = math.Mod(d, period)
	for i, p := range pattern {
		if d < p {
			return i%2 == 0
		}
		d -= p
	}
	return true
}

// Text places text on the terminal cell containing logical point (x, y).
// Alignment is applied in cells; glyphs are one cell wide.
func (c *Canvas) Text(s string, x, y float64, font Font, align Align, col Color) {
	if s == "" {
		return
	}
	cellCol := int(math.Round(x * c.scaleX))
	cellRow := int(math.Round(y*c.scaleY)) / 2

	n := utf8.RuneCountInString(s)
	switch align {
	case AlignCenter:
		cellCol -= n / 2
	case AlignRight:
		cellCol -= n
	}

	c.labels = append(c.labels, label{
		col:   cellCol,
		row:   cellRow,
		text:  s,
		color: col,
		bold:  font.Bold,
	})
}

// compose builds the cell grid from pixels and labels.
func (c *Canvas) compose() {
	for row := 0; row < c.termHeight; row++ {
		topOffset := row * 2 * c.termWidth
		bottomOffset := (row*2 + 1) * c.termWidth
		for col := 0; col < c.termWidth; col++ {
			c.frame[row*c.termWidth+col] = cell{
				ch: BlockUpperHalf,
				fg: c.pixels[topOffset+col],
				bg: c.pixels[bottomOffset+col],
			}
		}
	}

	for _, l := range c.labels {
		if l.row < 0 || l.row >= c.termHeight {
			continue
		}
		col := l.col
		for _, r := range l.text {
			if col >= 0 && col < c.termWidth {
				i := l.row*c.termWidth + col
				// Text sits on the cell's upper color so it blends with the scene
				c.frame[i] = cell{ch: r, fg: l.color, bg: c.frame[i].fg, bold: l.bold}
			}
			col++
		}
	}
}

// maxChunkSize is the maximum bytes to write at once for optimal network flow.
// 1500 bytes matches typical MTU size for smooth SSH/network transmission.
const maxChunkSize = 1400

// Render outputs the canvas to the writer using colored half-block characters.
// Only cells that changed since the previous Render are written.
func (c *Canvas) Render(w io.Writer) error {
	c.compose()

	c.renderBuf.Reset()

	var attrs cell
	haveAttrs := false
	cursorCol, cursorRow := -1, -1

	for row := 0; row < c.termHeight; row++ {
		for col := 0; col < c.termWidth; col++ {
			i := row*c.termWidth + col
			cur := c.frame[i]
			if c.prevValid && cur == c.prev[i] {
				continue
			}

			if col != cursorCol || row != cursorRow {
				c.moveCursor(col+1+c.offsetCol, row+1+c.offsetRow)
			}
			if !haveAttrs || cur.fg != attrs.fg || cur.bg != attrs.bg || cur.bold != attrs.bold {
				c.writeSGR(cur)
				attrs = cur
				haveAttrs = true
			}
			c.renderBuf.WriteRune(cur.ch)
			cursorCol, cursorRow = col+1, row
		}
	}
	if haveAttrs {
		c.renderBuf.WriteString("\033[0m")
	}

	copy(c.prev, c.frame)
	c.prevValid = true

	return writeChunked(w, c.renderBuf.String())
}

// moveCursor appends an ANSI cursor position sequence (1-based).
func (c *Canvas) moveCursor(col, row int) {
	c.renderBuf.WriteString("\033[")
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(row), 10))
	c.renderBuf.WriteByte(';')
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(col), 10))
	c.renderBuf.WriteByte('H')
}

// writeSGR appends the attribute sequence for the cell in the canvas profile.
func (c *Canvas) writeSGR(cl cell) {
	c.renderBuf.WriteString("\033[0")
	if cl.bold {
		c.renderBuf.WriteString(";1")
	}
	c.writeColor(cl.fg, false)
	c.writeColor(cl.bg, true)
	c.renderBuf.WriteByte('m')
}

func (c *Canvas) writeColor(col Color, bg bool) {
	key := sgrKey{color: col, bg: bg}
	seq, ok := c.sgrCache[key]
	if !ok {
		seq = c.profile.Convert(termenv.RGBColor(col.Hex())).Sequence(bg)
		c.sgrCache[key] = seq
	}
	if seq != "" {
		c.renderBuf.WriteByte(';')
		c.renderBuf.WriteString(seq)
	}
}

// writeChunked writes data in maxChunkSize pieces.
func writeChunked(w io.Writer, data string) error {
	for len(data) > 0 {
		chunk := data
		if len(chunk) > maxChunkSize {
			chunk = data[:maxChunkSize]
		}
		if _, err := io.WriteString(w, chunk); err != nil {
			return err
		}
		data = data[len(chunk):]
	}
	return nil
}

// RenderBorder draws a box border around the canvas area when the terminal
// exceeds the max render resolution on either axis.
// Draws horizontal borders when there is vertical offset, vertical borders
// when there is horizontal offset, and corners when both are present.
func (c *Canvas) RenderBorder(w io.Writer) error {
	hasH := c.offsetCol >= 1 // Room for left/right vertical bars
	hasV := c.offsetRow >= 1 // Room for top/bottom horizontal bars

	// Border positions (1-based terminal coordinates)
	left := c.offsetCol
	right := c.offsetCol + c.termWidth + 1
	top := c.offsetRow
	bottom := c.offsetRow + c.termHeight + 1

	var buf strings.Builder
	bar := strings.Repeat("─", c.termWidth)

	if hasV {
		if hasH {
			buf.WriteString(cursorTo(left, top) + "┌" + bar + "┐")
			buf.WriteString(cursorTo(left, bottom) + "└" + bar + "┘")
		} else {
			buf.WriteString(cursorTo(c.offsetCol+1, top) + bar)
			buf.WriteString(cursorTo(c.offsetCol+1, bottom) + bar)
		}
	}

	if hasH {
		startRow := top + 1
		endRow := bottom
		if !hasV {
			// No horizontal borders, side bars span full canvas height
			startRow = c.offsetRow + 1
			endRow = c.offsetRow + c.termHeight + 1
		}
		for row := startRow; row < endRow; row++ {
			buf.WriteString(cursorTo(left, row) + "│" + cursorTo(right, row) + "│")
		}
	}

	_, err := io.WriteString(w, buf.String())
	return err
}

func cursorTo(col, row int) string {
	return "\033[" + strconv.Itoa(row) + ";" + strconv.Itoa(col) + "H"
}

// TerminalWidth returns the actual terminal column count.
func (c *Canvas) TerminalWidth() int {
	return c.termWidth
}

// TerminalHeight returns the actual terminal row count.
func (c *Canvas) TerminalHeight() int {
	return c.termHeight
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
