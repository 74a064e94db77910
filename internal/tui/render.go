package tui

import (
	"fmt"
	"strings"

	"github.com/otuschhoff/dskusage/internal/format"
	"github.com/otuschhoff/dskusage/internal/mark"
	"github.com/otuschhoff/dskusage/internal/nav"
	"github.com/otuschhoff/dskusage/internal/tree"
	"github.com/rivo/uniseg"
)

// Focus selects which pane the key dispatcher sends input to.
type Focus int

const (
	FocusMain Focus = iota
	FocusMark
)

// Draw renders one frame as a plain string: a breadcrumb header, the
// current directory's children with size bars, and the mark pane when it
// has content. It is a pure function of its inputs so it can be tested
// without a terminal.
func Draw(t *tree.Tree, n *nav.State, m *mark.Set, focus Focus, f *format.Formatter, width int) string {
	if width <= 0 {
		width = 80
	}

	var b strings.Builder

	header := t.Node(n.Current()).Path
	if n.Current() == tree.Root {
		header = "(all roots)"
	}
	fmt.Fprintf(&b, "%s  (%s)\n\n", header, f.Format(t.Node(n.Current()).TotalBytes))

	children := n.Children()
	selected := n.SelectedIndex()
	var maxBytes int64
	for _, h := range children {
		if v := t.Node(h).TotalBytes; v > maxBytes {
			maxBytes = v
		}
	}

	for i, h := range children {
		node := t.Node(h)
		marker := "  "
		if i == selected && focus == FocusMain {
			marker = "> "
		}
		name := node.Name
		if node.IsDir {
			name += "/"
		}
		name = truncatePath(name, width-30)

		bar := sizeBar(node.TotalBytes, maxBytes, 20)
		fmt.Fprintf(&b, "%s%*s %s %s\n", marker, f.ColumnWidth(), f.Format(node.TotalBytes), bar, name)
	}

	if m.Len() > 0 {
		b.WriteString("\n")
		fmt.Fprintf(&b, "Marked %d items (%s) \n", m.Len(), f.Format(m.Total()))
		for i, e := range m.Entries() {
			marker := "  "
			if sel, ok := m.Selected(); ok && focus == FocusMark && sel.Handle == e.Handle {
				marker = "> "
				_ = i
			}
			fmt.Fprintf(&b, "%s%*s %s\n", marker, f.ColumnWidth(), f.Format(e.Size), truncatePath(e.Path, width-30))
		}
	}

	return b.String()
}

// truncatePath fits s within maxWidth grapheme clusters (not display
// columns: a double-width cluster still counts as one) by
// eliding the middle of the string, following dua-cli's
// fit_string_graphemes_with_ellipsis (mark.rs) which uses
// unicode_segmentation for the same purpose.
func truncatePath(s string, maxWidth int) string {
	if maxWidth <= 1 {
		return s
	}

	count := uniseg.GraphemeClusterCount(s)
	if count <= maxWidth {
		return s
	}

	const ellipsis = "…"
	keep := maxWidth - 1
	head := keep / 2
	tail := keep - head

	gr := uniseg.NewGraphemes(s)
	var headRunes, tailBuf []string
	var all []string
	for gr.Next() {
		all = append(all, gr.Str())
	}
	if head > 0 {
		headRunes = all[:head]
	}
	if tail > 0 {
		tailBuf = all[len(all)-tail:]
	}
	return strings.Join(headRunes, "") + ellipsis + strings.Join(tailBuf, "")
}

func sizeBar(value, max int64, width int) string {
	if max <= 0 || width <= 0 {
		return ""
	}
	filled := int(float64(value) / float64(max) * float64(width))
	if filled > width {
		filled = width
	}
	return "[" + strings.Repeat("#", filled) + strings.Repeat(".", width-filled) + "]"
}
