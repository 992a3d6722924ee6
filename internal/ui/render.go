package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/henri123lemoine/layoutgen/internal/render"
	"github.com/henri123lemoine/layoutgen/internal/scene"
)

// State constants (matching app.State)
const (
	StatePrompt = iota
	StateGenerating
	StateResult
	StateComponents
	StateHelp
)

// Prompt form fields, in tab order.
const (
	FieldPrompt = iota
	FieldTokens
	FieldImage
	FieldCount
)

// HelpBinding represents a keybinding for help display.
type HelpBinding struct {
	Keys string
	Desc string
}

// HelpSection represents a section of help bindings.
type HelpSection struct {
	Title    string
	Bindings []HelpBinding
}

// RenderParams contains all parameters needed for rendering.
type RenderParams struct {
	State  int
	Width  int
	Height int
	Err    error
	Status string

	// Prompt form
	PromptInput string
	TokensInput string
	ImageInput  string
	Focus       int

	// Generating
	SpinnerFrame string
	Stage        string

	// Result
	Source         string
	Page           *scene.Snapshot
	Result         *render.Result
	Raw            string
	ShowRaw        bool
	HighlightStyle string
	Saved          []string

	// Components
	Components      []string
	ComponentCursor int
	FilterInput     string
	FilterValue     string

	HelpSections []HelpSection
}

// MinWidth is the absolute minimum terminal width we try to support.
const MinWidth = 30

// MinHeight is the absolute minimum terminal height we try to support.
const MinHeight = 8

// Render renders the full UI.
func Render(p RenderParams) string {
	if p.Width < MinWidth {
		p.Width = MinWidth
	}
	if p.Height < MinHeight {
		p.Height = MinHeight
	}

	switch p.State {
	case StateGenerating:
		return renderGenerating(p)
	case StateResult:
		return renderResult(p)
	case StateComponents:
		return renderComponents(p)
	case StateHelp:
		return renderHelp(p)
	default:
		return renderPrompt(p)
	}
}

// renderPrompt renders the generation form.
func renderPrompt(p RenderParams) string {
	var b strings.Builder
	contentWidth := p.Width - 4

	b.WriteString(HeaderStyle.Render("NEW LAYOUT") + "\n")
	b.WriteString(divider(contentWidth) + "\n\n")

	if p.Err != nil {
		b.WriteString(ErrorStyle.Render("Error: "+p.Err.Error()) + "\n\n")
	}

	fields := []struct {
		label string
		view  string
	}{
		{"Describe the screen", p.PromptInput},
		{"Design tokens (optional)", p.TokensInput},
		{"Reference image path (optional)", p.ImageInput},
	}
	for i, f := range fields {
		style := InputStyle
		label := PathStyle.Render(f.label)
		if i == p.Focus {
			style = FocusedInputStyle
			label = SelectedStyle.Render(SymbolCursor + " " + f.label)
		}
		b.WriteString(label + "\n")
		b.WriteString(style.Width(max(contentWidth-4, 10)).Render(f.view) + "\n")
	}

	b.WriteString("\n" + divider(contentWidth) + "\n")
	b.WriteString(HelpStyle.Render(compactHelp(
		"ctrl+g generate • tab next field • ctrl+c quit",
		"ctrl+g•tab•ctrl+c",
		p.Width,
	)))

	return wrapInBox(b.String(), p.Width, p.Height)
}

// renderGenerating renders the loading view.
func renderGenerating(p RenderParams) string {
	var b strings.Builder
	contentWidth := p.Width - 4

	b.WriteString(HeaderStyle.Render("WORKING") + "\n")
	b.WriteString(divider(contentWidth) + "\n\n")

	stage := p.Stage
	if stage == "" {
		stage = "Generating layout"
	}
	b.WriteString(p.SpinnerFrame + " " + stage + "...\n")

	b.WriteString("\n" + divider(contentWidth) + "\n")
	b.WriteString(HelpStyle.Render("esc cancel"))

	return wrapInBox(b.String(), p.Width, p.Height)
}

// renderResult renders the rendered tree with notices and stats.
func renderResult(p RenderParams) string {
	var b strings.Builder
	contentWidth := p.Width - 4

	header := HeaderStyle.Render("RESULT")
	if p.Source != "" {
		header += "  " + PathStyle.Render(p.Source)
	}
	b.WriteString(header + "\n")
	b.WriteString(divider(contentWidth) + "\n")

	if p.Err != nil {
		b.WriteString(ErrorStyle.Render("Error: "+p.Err.Error()) + "\n")
	}
	if p.Status != "" {
		b.WriteString(SuccessStyle.Render(p.Status) + "\n")
	}
	if p.Result != nil {
		b.WriteString(PathStyle.Render(formatStats(p.Result)) + "\n")
	}
	b.WriteString("\n")

	// Leave room for header, notices and footer
	budget := p.Height - 12
	if p.Result != nil {
		budget -= min(len(p.Result.Notices), 5)
	}
	budget = max(budget, 3)

	if p.ShowRaw {
		lines := strings.Split(HighlightJSON(p.Raw, p.HighlightStyle), "\n")
		if len(lines) > budget {
			lines = append(lines[:budget-1], PathStyle.Render(fmt.Sprintf("  ↓ %d more lines", len(lines)-budget+1)))
		}
		b.WriteString(strings.Join(lines, "\n") + "\n")
	} else if p.Page != nil {
		b.WriteString(strings.Join(TreeLines(*p.Page, budget), "\n") + "\n")
	}

	if p.Result != nil && len(p.Result.Notices) > 0 {
		b.WriteString("\n")
		for i, n := range p.Result.Notices {
			if i == 5 {
				b.WriteString(PathStyle.Render(fmt.Sprintf("  %d more notices", len(p.Result.Notices)-i)) + "\n")
				break
			}
			b.WriteString(NoticeStyle.Render(SymbolNotice+" "+n.String()) + "\n")
		}
	}

	for _, path := range p.Saved {
		b.WriteString(SuccessStyle.Render(SymbolSaved) + " " + PathStyle.Render(path) + "\n")
	}

	b.WriteString("\n" + divider(contentWidth) + "\n")
	b.WriteString(HelpStyle.Render(compactHelp(
		"s save • o open preview • c components • r raw json • esc new • ? help • q quit",
		"s•o•c•r•esc•?•q",
		p.Width,
	)))

	return wrapInBox(b.String(), p.Width, p.Height)
}

func formatStats(r *render.Result) string {
	parts := []string{
		fmt.Sprintf("%d nodes", r.Nodes),
		fmt.Sprintf("%d screen(s)", len(r.Roots)),
	}
	if len(r.Connectors) > 0 {
		parts = append(parts, fmt.Sprintf("%d connector(s)", len(r.Connectors)))
	}
	if r.Synthesized > 0 {
		parts = append(parts, fmt.Sprintf("%d synthesized", r.Synthesized))
	}
	if r.Placeholders > 0 {
		parts = append(parts, fmt.Sprintf("%d unsupported", r.Placeholders))
	}
	parts = append(parts, r.Duration.Round(time.Millisecond).String())
	return strings.Join(parts, " • ")
}

// renderComponents renders the fuzzy-filtered component library.
func renderComponents(p RenderParams) string {
	var b strings.Builder
	contentWidth := p.Width - 4

	b.WriteString(HeaderStyle.Render("COMPONENTS") + "\n")
	b.WriteString(divider(contentWidth) + "\n\n")

	b.WriteString(p.FilterInput + "\n\n")

	if len(p.Components) == 0 {
		msg := "No components on the page."
		if p.FilterValue != "" {
			msg = "No components match."
		}
		b.WriteString(PathStyle.Render(msg) + "\n")
	}

	visible := max(p.Height-12, 3)
	start := 0
	if p.ComponentCursor >= visible {
		start = p.ComponentCursor - visible + 1
	}
	end := min(start+visible, len(p.Components))
	if start > 0 {
		b.WriteString(PathStyle.Render(fmt.Sprintf("  ↑ %d more above", start)) + "\n")
	}
	for i := start; i < end; i++ {
		if i == p.ComponentCursor {
			b.WriteString(SelectedStyle.Render(SymbolCursor+" "+p.Components[i]) + "\n")
		} else {
			b.WriteString("  " + NormalStyle.Render(p.Components[i]) + "\n")
		}
	}
	if end < len(p.Components) {
		b.WriteString(PathStyle.Render(fmt.Sprintf("  ↓ %d more below", len(p.Components)-end)) + "\n")
	}

	b.WriteString("\n" + divider(contentWidth) + "\n")
	b.WriteString(HelpStyle.Render("type to filter • ↑/↓ move • esc back"))

	return wrapInBox(b.String(), p.Width, p.Height)
}

// renderHelp renders the help overlay.
func renderHelp(p RenderParams) string {
	var b strings.Builder
	contentWidth := p.Width - 4

	b.WriteString(HeaderStyle.Render("HELP") + "\n")
	b.WriteString(divider(contentWidth) + "\n\n")

	for i, section := range p.HelpSections {
		b.WriteString(NormalStyle.Render(section.Title) + "\n")
		b.WriteString(DividerStyle.Render(strings.Repeat(SymbolDivider, 40)) + "\n")
		for _, binding := range section.Bindings {
			// Pad keys to 10 chars for alignment
			keys := binding.Keys
			if len(keys) < 10 {
				keys = keys + strings.Repeat(" ", 10-len(keys))
			}
			b.WriteString(PathStyle.Render("  "+keys) + " " + binding.Desc + "\n")
		}
		if i < len(p.HelpSections)-1 {
			b.WriteString("\n")
		}
	}

	b.WriteString("\n" + divider(contentWidth) + "\n")
	b.WriteString(HelpStyle.Render("Press any key to close"))

	return wrapInBox(b.String(), p.Width, p.Height)
}

func divider(width int) string {
	return DividerStyle.Render(strings.Repeat(SymbolDivider, max(width, 1)))
}

func wrapInBox(content string, width, height int) string {
	boxWidth := width - 2
	if boxWidth < MinWidth-2 {
		boxWidth = MinWidth - 2
	}

	// Don't force height - let content determine size
	return BoxStyle.Width(boxWidth).Render(content)
}

// compactHelp returns a shortened help string for small terminals.
func compactHelp(full, compact string, width int) string {
	if width >= 80 {
		return full
	}
	return compact
}
