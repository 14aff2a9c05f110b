package exporter

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"

	"github.com/badele/mulscan/internal/types"
)

var (
	StyleActive   = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	StyleInactive = tcell.StyleDefault.Foreground(tcell.ColorMaroon).Dim(true)
	StyleDo       = tcell.StyleDefault.Foreground(tcell.ColorAqua).Bold(true)
	StyleDont     = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
)

// HighlightBuffer lays the input out on a simulated screen, one cell per
// rune and two columns for wide runes, with each token painted in its style.
type HighlightBuffer struct {
	screen tcell.SimulationScreen
	width  int
	lines  [][]cell
}

type cell struct {
	x, y int
	r    rune
	pos  int
}

func NewHighlightBuffer(width int) (*HighlightBuffer, error) {
	if width <= 0 {
		return nil, fmt.Errorf("invalid width %d", width)
	}

	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("error initializing screen: %w", err)
	}

	return &HighlightBuffer{
		screen: screen,
		width:  width,
	}, nil
}

// Render replaces the screen content with input styled by tokens.
func (hb *HighlightBuffer) Render(input string, tokens []types.Token) {
	styles := make([]tcell.Style, len(input))
	for i := range styles {
		styles[i] = tcell.StyleDefault
	}
	for _, token := range tokens {
		style := tokenStyle(token)
		for pos := token.Pos; pos < token.End() && pos < len(styles); pos++ {
			styles[pos] = style
		}
	}

	hb.lines = hb.layout(input)

	hb.screen.SetSize(hb.width, len(hb.lines))
	hb.screen.Clear()
	for _, line := range hb.lines {
		for _, c := range line {
			hb.screen.SetContent(c.x, c.y, c.r, nil, styles[c.pos])
		}
	}
	hb.screen.Show()
}

// layout places each rune at the column it occupies on a terminal. A rune
// wider than the space left on the line moves to the next one.
func (hb *HighlightBuffer) layout(input string) [][]cell {
	lines := [][]cell{nil}
	x, y := 0, 0

	for pos, r := range input {
		switch {
		case r == '\n':
			x = 0
			y++
			lines = append(lines, nil)
			continue
		case r == '\r':
			continue
		case r < 0x20 || r == 0x7f:
			r = ' '
		}

		w := uniseg.StringWidth(string(r))
		if w < 1 {
			w = 1
		}

		if x > 0 && x+w > hb.width {
			x = 0
			y++
			lines = append(lines, nil)
		}

		lines[y] = append(lines[y], cell{x: x, y: y, r: r, pos: pos})
		x += w
	}

	return lines
}

func tokenStyle(token types.Token) tcell.Style {
	switch token.Type {
	case types.TokenMul:
		if token.Enabled {
			return StyleActive
		}
		return StyleInactive
	case types.TokenDo:
		return StyleDo
	case types.TokenDont:
		return StyleDont
	default:
		return tcell.StyleDefault
	}
}

// ExportANSI serialises the screen back to text with SGR sequences, emitting
// a sequence only when the style changes and resetting at each line end.
func (hb *HighlightBuffer) ExportANSI() string {
	var sb strings.Builder

	for y, line := range hb.lines {
		current := tcell.StyleDefault
		for _, c := range line {
			mainc, _, style, _ := hb.screen.GetContent(c.x, c.y)
			if style != current {
				sb.WriteString(styleToSGR(style))
				current = style
			}
			sb.WriteRune(mainc)
		}
		if current != tcell.StyleDefault {
			sb.WriteString(styleToSGR(tcell.StyleDefault))
		}
		if y < len(hb.lines)-1 {
			sb.WriteByte('\n')
		}
	}

	return sb.String()
}

func (hb *HighlightBuffer) Close() {
	hb.screen.Fini()
}

// ExportHighlighted writes input wrapped at width with tokens colored.
func ExportHighlighted(input string, tokens []types.Token, width int, writer io.Writer) error {
	buffer, err := NewHighlightBuffer(width)
	if err != nil {
		return fmt.Errorf("error creating buffer: %w", err)
	}
	defer buffer.Close()

	buffer.Render(input, tokens)

	_, err = fmt.Fprintln(writer, buffer.ExportANSI())
	return err
}

func styleToSGR(style tcell.Style) string {
	fg, bg, attrs := style.Decompose()
	codes := []string{"0"}

	if attrs&tcell.AttrBold != 0 {
		codes = append(codes, "1")
	}
	if attrs&tcell.AttrDim != 0 {
		codes = append(codes, "2")
	}
	if attrs&tcell.AttrReverse != 0 {
		codes = append(codes, "7")
	}
	if fg != tcell.ColorDefault {
		codes = append(codes, colorToSGR(fg, false))
	}
	if bg != tcell.ColorDefault {
		codes = append(codes, colorToSGR(bg, true))
	}

	return "\x1b[" + strings.Join(codes, ";") + "m"
}

var foregroundCodes = map[tcell.Color]int{
	tcell.ColorBlack:   30,
	tcell.ColorMaroon:  31,
	tcell.ColorGreen:   32,
	tcell.ColorOlive:   33,
	tcell.ColorNavy:    34,
	tcell.ColorPurple:  35,
	tcell.ColorTeal:    36,
	tcell.ColorSilver:  37,
	tcell.ColorGray:    90,
	tcell.ColorRed:     91,
	tcell.ColorLime:    92,
	tcell.ColorYellow:  93,
	tcell.ColorBlue:    94,
	tcell.ColorFuchsia: 95,
	tcell.ColorAqua:    96,
	tcell.ColorWhite:   97,
}

func colorToSGR(color tcell.Color, background bool) string {
	if code, ok := foregroundCodes[color]; ok {
		if background {
			code += 10
		}
		return strconv.Itoa(code)
	}

	// For 256 colors or RGB, use a 24-bit sequence
	r, g, b := color.RGB()
	prefix := "38"
	if background {
		prefix = "48"
	}
	return fmt.Sprintf("%s;2;%d;%d;%d", prefix, r, g, b)
}
