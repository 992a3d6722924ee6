package ui

import (
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"

	"github.com/henri123lemoine/layoutgen/internal/canvas"
	"github.com/henri123lemoine/layoutgen/internal/scene"
)

const placeholderPrefix = "Unsupported: "

// TreeLines renders the screens and connectors of a page snapshot as an
// indented tree. Library components on the page are summarized in one line.
// At most maxLines lines are returned when maxLines is positive.
func TreeLines(page scene.Snapshot, maxLines int) []string {
	var lines []string
	names := make(map[string]string)
	components := 0
	for _, c := range page.Children {
		names[c.ID] = c.Name
		if c.Type == canvas.TypeComponent {
			components++
		}
	}

	var roots []scene.Snapshot
	for _, c := range page.Children {
		if c.Type != canvas.TypeComponent {
			roots = append(roots, c)
		}
	}
	for i, r := range roots {
		lines = appendTree(lines, r, "", i == len(roots)-1, names)
	}
	if components > 0 {
		lines = append(lines, PathStyle.Render(fmt.Sprintf("%s %d library component(s)", SymbolComponent, components)))
	}

	if maxLines > 0 && len(lines) > maxLines {
		hidden := len(lines) - maxLines + 1
		lines = append(lines[:maxLines-1], PathStyle.Render(fmt.Sprintf("  ↓ %d more lines", hidden)))
	}
	return lines
}

func appendTree(lines []string, s scene.Snapshot, prefix string, last bool, names map[string]string) []string {
	branch, next := SymbolBranch, SymbolPipe
	if last {
		branch, next = SymbolLast, "   "
	}
	lines = append(lines, DividerStyle.Render(prefix+branch)+nodeLabel(s, names))
	for i, c := range s.Children {
		lines = appendTree(lines, c, prefix+next, i == len(s.Children)-1, names)
	}
	return lines
}

func nodeLabel(s scene.Snapshot, names map[string]string) string {
	size := PathStyle.Render(fmt.Sprintf("%gx%g", round(s.Box.W), round(s.Box.H)))
	switch s.Type {
	case canvas.TypeText:
		return TextNodeStyle.Render(fmt.Sprintf("%s %q", SymbolText, truncate(s.Characters, 40))) + " " +
			PathStyle.Render(fmt.Sprintf("%gpt", s.FontSize))
	case canvas.TypeInstance:
		return InstanceStyle.Render(SymbolInstance+" "+s.Name) + " " +
			PathStyle.Render(SymbolArrow+" "+s.MainComponent) + " " + size
	case canvas.TypeConnector:
		label := names[s.Start] + " " + SymbolArrow + " " + names[s.End]
		if s.Label != "" {
			label += fmt.Sprintf(" (%s)", s.Label)
		}
		return ConnectorStyle.Render(label)
	}
	if strings.HasPrefix(s.Name, placeholderPrefix) {
		return PlaceholderStyle.Render(SymbolNotice + " " + s.Name)
	}
	mode := ""
	if s.AutoLayout != nil {
		mode = " " + PathStyle.Render(strings.ToLower(string(s.AutoLayout.Mode)))
	}
	return ContainerStyle.Render(SymbolContainer+" "+s.Name) + " " + size + mode
}

// HighlightJSON colors src for a 256-color terminal using the named chroma
// style. src is returned unchanged if it cannot be highlighted.
func HighlightJSON(src, style string) string {
	lexer := lexers.Get("json")
	if lexer == nil {
		return src
	}
	lexer = chroma.Coalesce(lexer)

	iterator, err := lexer.Tokenise(nil, src)
	if err != nil {
		return src
	}
	formatter := formatters.Get("terminal256")
	if formatter == nil {
		return src
	}
	var b strings.Builder
	if err := formatter.Format(&b, styles.Get(style), iterator); err != nil {
		return src
	}
	return b.String()
}

func round(v float64) float64 {
	if v < 0 {
		return -round(-v)
	}
	return float64(int64(v + 0.5))
}

func truncate(s string, n int) string {
	r := []rune(strings.ReplaceAll(s, "\n", " "))
	if len(r) <= n {
		return string(r)
	}
	return string(r[:n-1]) + "…"
}
