package printer

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Control bytes of the ESC/POS command set
const (
	ESC byte = 0x1B
	GS  byte = 0x1D
	LF  byte = 0x0A
)

// Align selects the justification of the lines that follow
type Align byte

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// Size is the GS ! magnification byte. The high nibble widens, the low nibble heightens.
type Size byte

const (
	FontNormal Size = 0x00
	FontTall   Size = 0x01
	FontWide   Size = 0x10
	FontDouble      = FontWide | FontTall
)

// 58mm rolls print 32 columns, 80mm rolls 48
const defaultColumns = 32

// Document accumulates a ticket as ESC/POS bytes. Layout helpers measure text
// in printed columns, so a wide glyph takes two.
type Document struct {
	out     bytes.Buffer
	columns int
}

// NewDocument starts a ticket for paper that fits columns characters per line.
func NewDocument(columns int) *Document {
	if columns <= 0 {
		columns = defaultColumns
	}
	d := &Document{columns: columns}
	return d.Init()
}

func (d *Document) command(seq ...byte) *Document {
	d.out.Write(seq)
	return d
}

func (d *Document) line(s string) *Document {
	d.out.WriteString(s)
	d.out.WriteByte(LF)
	return d
}

// Init resets the printer to its power-on modes.
func (d *Document) Init() *Document {
	return d.command(ESC, '@')
}

func (d *Document) LineFeed() *Document {
	return d.command(LF)
}

// FeedLines advances the paper n lines.
func (d *Document) FeedLines(n int) *Document {
	if n > 0 {
		d.out.Write(bytes.Repeat([]byte{LF}, n))
	}
	return d
}

func (d *Document) SetAlign(a Align) *Document {
	return d.command(ESC, 'a', byte(a))
}

func (d *Document) SetBold(on bool) *Document {
	var flag byte
	if on {
		flag = 1
	}
	return d.command(ESC, 'E', flag)
}

func (d *Document) SetFontSize(s Size) *Document {
	return d.command(GS, '!', byte(s))
}

// Text prints s on its own line without wrapping.
func (d *Document) Text(s string) *Document {
	return d.line(s)
}

func (d *Document) TextF(format string, args ...any) *Document {
	return d.line(fmt.Sprintf(format, args...))
}

// Separator rules a full line with ch.
func (d *Document) Separator(ch byte) *Document {
	return d.line(strings.Repeat(string(ch), d.columns))
}

// KeyValue prints label flush left and value flush right on one line.
func (d *Document) KeyValue(label, value string) *Document {
	return d.line(spread(label, value, d.columns))
}

// ItemLine prints "<units>x <name>" against its total. A long name is cut so
// the total keeps its column.
func (d *Document) ItemLine(units int, name, total string) *Document {
	label := strconv.Itoa(units) + "x " + name
	if room := d.columns - runewidth.StringWidth(total) - 1; room > 0 {
		label = runewidth.Truncate(label, room, "")
	}
	return d.KeyValue(label, total)
}

// Wrap prints s across as many lines as the paper needs, breaking on spaces.
func (d *Document) Wrap(s string) *Document {
	for _, l := range wrapColumns(s, d.columns) {
		d.line(l)
	}
	return d
}

func (d *Document) Width() int {
	return d.columns
}

// PartialCut leaves a hinge of paper so the ticket does not fall.
func (d *Document) PartialCut() *Document {
	return d.command(GS, 'V', 0x01)
}

// Bytes returns the ticket built so far.
func (d *Document) Bytes() []byte {
	return d.out.Bytes()
}

// spread joins left and right with enough spaces to fill columns, keeping at least one.
func spread(left, right string, columns int) string {
	gap := columns - runewidth.StringWidth(left) - runewidth.StringWidth(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}

// wrapColumns greedily packs the words of s into lines of at most columns.
// A word longer than a line is split across lines.
func wrapColumns(s string, columns int) []string {
	var (
		lines []string
		cur   string
	)
	for _, word := range strings.Fields(s) {
		switch {
		case cur == "":
			cur = word
		case runewidth.StringWidth(cur)+1+runewidth.StringWidth(word) <= columns:
			cur += " " + word
		default:
			lines = append(lines, cur)
			cur = word
		}
		for runewidth.StringWidth(cur) > columns {
			head := runewidth.Truncate(cur, columns, "")
			if head == "" {
				// a single glyph wider than the paper
				head = string([]rune(cur)[:1])
			}
			lines = append(lines, head)
			cur = cur[len(head):]
		}
	}
	if cur != "" {
		lines = append(lines, cur)
	}
	return lines
}
