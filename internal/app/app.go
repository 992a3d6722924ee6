package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"

	"github.com/henri123lemoine/layoutgen/internal/config"
	"github.com/henri123lemoine/layoutgen/internal/debug"
	"github.com/henri123lemoine/layoutgen/internal/exec"
	"github.com/henri123lemoine/layoutgen/internal/export"
	"github.com/henri123lemoine/layoutgen/internal/generator"
	"github.com/henri123lemoine/layoutgen/internal/render"
	"github.com/henri123lemoine/layoutgen/internal/scene"
	"github.com/henri123lemoine/layoutgen/internal/ui"
)

// State represents the current UI state.
type State int

const (
	StatePrompt State = iota
	StateGenerating
	StateResult
	StateComponents
	StateHelp
)

// Output paths used when the config doesn't name any.
const (
	DefaultSnapshotPath = "layoutgen-snapshot.json"
	DefaultPNGPath      = "layoutgen-preview.png"
)

// Model is the main application model.
type Model struct {
	// Configuration
	config *config.Config
	gen    generator.Generator

	// State
	state     State
	prevState State
	err       error
	status    string

	// Prompt form
	inputs [ui.FieldCount]textinput.Model
	focus  int

	// Running generation; run identifies it so late replies can be dropped
	spinner spinner.Model
	stage   string
	run     int
	ctx     context.Context
	cancel  context.CancelFunc

	// Result
	source  string
	raw     string
	doc     *scene.Document
	page    *scene.Snapshot
	result  *render.Result
	showRaw bool
	saved   *SavedMsg
	busy    bool

	// Component browser
	components  []string
	filtered    []string
	cursor      int
	filterInput textinput.Model

	// UI
	width  int
	height int
	keys   KeyMap

	shouldQuit bool
}

// New creates a new Model generating layouts with gen.
func New(cfg *config.Config, gen generator.Generator) Model {
	var inputs [ui.FieldCount]textinput.Model

	inputs[ui.FieldPrompt] = textinput.New()
	inputs[ui.FieldPrompt].Placeholder = "a login screen with email, password and a sign in button"
	inputs[ui.FieldPrompt].CharLimit = 2000

	inputs[ui.FieldTokens] = textinput.New()
	inputs[ui.FieldTokens].Placeholder = "primary: #0B5FFF, radius: 8"
	inputs[ui.FieldTokens].CharLimit = 2000

	inputs[ui.FieldImage] = textinput.New()
	inputs[ui.FieldImage].Placeholder = "~/Pictures/reference.png"
	inputs[ui.FieldImage].CharLimit = 500

	inputs[ui.FieldPrompt].Focus()

	filterInput := textinput.New()
	filterInput.Placeholder = "filter..."
	filterInput.CharLimit = 50

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = ui.TitleStyle

	return Model{
		config:      cfg,
		gen:         gen,
		keys:        KeyMapFromConfig(&cfg.Keys),
		inputs:      inputs,
		filterInput: filterInput,
		spinner:     sp,
		showRaw:     cfg.UI.ShowRaw,
		state:       StatePrompt,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		// ctrl+c always quits, even while typing
		if msg.Type == tea.KeyCtrlC {
			if m.cancel != nil {
				m.cancel()
			}
			m.shouldQuit = true
			return m, tea.Quit
		}
		if key.Matches(msg, m.keys.Quit) && m.state == StateResult {
			m.shouldQuit = true
			return m, tea.Quit
		}
		return m.handleKeyPress(msg)

	case spinner.TickMsg:
		if m.state != StateGenerating {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case GeneratedMsg:
		if msg.Run != m.run || m.state != StateGenerating {
			return m, nil
		}
		if msg.Err != nil {
			m.finishRun()
			m.state = StatePrompt
			m.err = msg.Err
			return m, nil
		}
		m.raw = msg.Result.Raw
		m.stage = "Rendering"
		return m, renderLayout(m.ctx, m.config, m.run, msg.Result)

	case RenderedMsg:
		if msg.Run != m.run || m.state != StateGenerating {
			return m, nil
		}
		m.finishRun()
		if msg.Err != nil {
			m.state = StatePrompt
			m.err = msg.Err
			return m, nil
		}
		page := msg.Doc.Snapshot()
		m.doc = msg.Doc
		m.page = &page
		m.result = msg.Result
		m.saved = nil
		m.err = nil
		m.status = ""
		m.state = StateResult
		m.components = ComponentNames(msg.Doc)
		m.applyFilter()
		return m, nil

	case SavedMsg:
		m.busy = false
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.saved = &msg
		m.err = nil
		m.status = "Saved"
		return m, nil

	case PreviewOpenedMsg:
		m.busy = false
		if msg.Saved != nil && msg.Saved.Err == nil {
			m.saved = msg.Saved
		}
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.err = nil
		m.status = "Opened preview"
		return m, nil
	}

	if m.state == StatePrompt {
		return m.updateInputs(msg)
	}
	return m, nil
}

// handleKeyPress handles key presses based on current state.
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.state {
	case StatePrompt:
		return m.handlePromptKeys(msg)
	case StateGenerating:
		return m.handleGeneratingKeys(msg)
	case StateResult:
		return m.handleResultKeys(msg)
	case StateComponents:
		return m.handleComponentKeys(msg)
	case StateHelp:
		return m.handleHelpKeys(msg)
	}
	return m, nil
}

// handlePromptKeys handles key presses in the prompt form.
func (m Model) handlePromptKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Generate):
		return m.startGeneration()
	case key.Matches(msg, m.keys.NextField):
		return m.setFocus((m.focus + 1) % ui.FieldCount)
	case key.Matches(msg, m.keys.PrevField):
		return m.setFocus((m.focus + ui.FieldCount - 1) % ui.FieldCount)
	case key.Matches(msg, m.keys.Back):
		if m.result != nil {
			m.state = StateResult
			return m, nil
		}
		return m, nil
	}
	if msg.Type == tea.KeyEnter {
		if m.focus == ui.FieldCount-1 {
			return m.startGeneration()
		}
		return m.setFocus(m.focus + 1)
	}
	return m.updateInputs(msg)
}

func (m Model) setFocus(field int) (tea.Model, tea.Cmd) {
	m.inputs[m.focus].Blur()
	m.focus = field
	cmd := m.inputs[m.focus].Focus()
	return m, cmd
}

func (m Model) updateInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

// startGeneration validates the form and kicks off generation.
func (m Model) startGeneration() (tea.Model, tea.Cmd) {
	prompt := strings.TrimSpace(m.inputs[ui.FieldPrompt].Value())
	if prompt == "" {
		m.err = errors.New("describe the screen first")
		return m, nil
	}

	req := generator.Request{
		Prompt: prompt,
		Tokens: strings.TrimSpace(m.inputs[ui.FieldTokens].Value()),
	}
	imagePath := strings.TrimSpace(m.inputs[ui.FieldImage].Value())

	m.run++
	m.ctx, m.cancel = context.WithCancel(context.Background())
	m.state = StateGenerating
	m.stage = "Generating layout"
	m.err = nil
	m.status = ""
	m.source = truncatePrompt(prompt)
	debug.Log("generation %d started", m.run)

	return m, tea.Batch(m.spinner.Tick, generate(m.ctx, m.gen, m.run, req, imagePath))
}

func (m *Model) finishRun() {
	if m.cancel != nil {
		m.cancel()
	}
	m.ctx, m.cancel = nil, nil
}

// handleGeneratingKeys handles key presses while generating.
func (m Model) handleGeneratingKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Back) {
		m.finishRun()
		m.state = StatePrompt
		m.err = context.Canceled
		return m, nil
	}
	return m, nil
}

// handleResultKeys handles key presses in the result view.
func (m Model) handleResultKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Save):
		if m.busy || m.doc == nil {
			return m, nil
		}
		m.busy = true
		return m, saveResult(m.config, m.source, m.doc, m.result)
	case key.Matches(msg, m.keys.Open):
		if m.busy || m.doc == nil {
			return m, nil
		}
		m.busy = true
		return m, openPreview(m.config, m.source, m.doc, m.result, m.saved)
	case key.Matches(msg, m.keys.Components):
		m.state = StateComponents
		m.filterInput.Focus()
		return m, textinput.Blink
	case key.Matches(msg, m.keys.Raw):
		m.showRaw = !m.showRaw
		return m, nil
	case key.Matches(msg, m.keys.Back):
		m.state = StatePrompt
		m.status = ""
		m.err = nil
		cmd := m.inputs[m.focus].Focus()
		return m, cmd
	case key.Matches(msg, m.keys.Help):
		m.prevState = m.state
		m.state = StateHelp
		return m, nil
	}
	return m, nil
}

// handleComponentKeys handles key presses in the component browser.
func (m Model) handleComponentKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.state = StateResult
		m.filterInput.Blur()
		m.filterInput.Reset()
		m.applyFilter()
		return m, nil
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.filtered)-1 {
			m.cursor++
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	m.applyFilter()
	return m, cmd
}

// handleHelpKeys handles key presses in the help view.
func (m Model) handleHelpKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Any key closes help
	m.state = m.prevState
	return m, nil
}

// applyFilter filters component names using fuzzy matching.
func (m *Model) applyFilter() {
	filter := m.filterInput.Value()
	if filter == "" {
		m.filtered = m.components
	} else {
		m.filtered = nil
		for _, match := range fuzzy.Find(filter, m.components) {
			m.filtered = append(m.filtered, match.Str)
		}
	}

	// Ensure cursor is in bounds
	if m.cursor >= len(m.filtered) {
		m.cursor = len(m.filtered) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// helpSections returns the bindings shown in the help view.
func (m Model) helpSections() []ui.HelpSection {
	binding := func(b key.Binding) ui.HelpBinding {
		h := b.Help()
		return ui.HelpBinding{Keys: h.Key, Desc: h.Desc}
	}
	return []ui.HelpSection{
		{Title: "Prompt", Bindings: []ui.HelpBinding{
			binding(m.keys.Generate),
			binding(m.keys.NextField),
			binding(m.keys.PrevField),
		}},
		{Title: "Result", Bindings: []ui.HelpBinding{
			binding(m.keys.Save),
			binding(m.keys.Open),
			binding(m.keys.Components),
			binding(m.keys.Raw),
			binding(m.keys.Back),
		}},
		{Title: "General", Bindings: []ui.HelpBinding{
			binding(m.keys.Help),
			binding(m.keys.Quit),
		}},
	}
}

// View renders the UI.
func (m Model) View() string {
	var saved []string
	if m.saved != nil {
		saved = []string{m.saved.Snapshot, m.saved.PNG}
	}
	return ui.Render(ui.RenderParams{
		State:           int(m.state),
		Width:           m.width,
		Height:          m.height,
		Err:             m.err,
		Status:          m.status,
		PromptInput:     m.inputs[ui.FieldPrompt].View(),
		TokensInput:     m.inputs[ui.FieldTokens].View(),
		ImageInput:      m.inputs[ui.FieldImage].View(),
		Focus:           m.focus,
		SpinnerFrame:    m.spinner.View(),
		Stage:           m.stage,
		Source:          m.source,
		Page:            m.page,
		Result:          m.result,
		Raw:             m.raw,
		ShowRaw:         m.showRaw,
		HighlightStyle:  m.config.UI.HighlightStyle,
		Saved:           saved,
		Components:      m.filtered,
		ComponentCursor: m.cursor,
		FilterInput:     m.filterInput.View(),
		FilterValue:     m.filterInput.Value(),
		HelpSections:    m.helpSections(),
	})
}

// ShouldQuit returns true if the app should quit.
func (m Model) ShouldQuit() bool {
	return m.shouldQuit
}

// Commands

func generate(ctx context.Context, gen generator.Generator, run int, req generator.Request, imagePath string) tea.Cmd {
	return func() tea.Msg {
		if imagePath != "" {
			path := config.ExpandPath(imagePath)
			data, err := os.ReadFile(path)
			if err != nil {
				return GeneratedMsg{Run: run, Err: fmt.Errorf("reference image: %w", err)}
			}
			req.Image = data
			req.ImageName = filepath.Base(path)
		}
		res, err := gen.Generate(ctx, req)
		return GeneratedMsg{Run: run, Result: res, Err: err}
	}
}

func renderLayout(ctx context.Context, cfg *config.Config, run int, gen *generator.Result) tea.Cmd {
	return func() tea.Msg {
		doc, res, err := RenderLayout(ctx, cfg, gen.Doc)
		return RenderedMsg{Run: run, Doc: doc, Result: res, Err: err}
	}
}

// outputPaths returns where the snapshot and preview are written.
func outputPaths(cfg *config.Config) (snapshot, png string) {
	snapshot, png = cfg.Output.Snapshot, cfg.Output.PNG
	if snapshot == "" {
		snapshot = DefaultSnapshotPath
	}
	if png == "" {
		png = DefaultPNGPath
	}
	return config.ExpandPath(snapshot), config.ExpandPath(png)
}

func save(cfg *config.Config, source string, doc *scene.Document, res *render.Result) SavedMsg {
	snapshot, png := outputPaths(cfg)
	if err := export.SaveRecord(snapshot, export.NewRecord(source, doc, res)); err != nil {
		return SavedMsg{Err: fmt.Errorf("save snapshot: %w", err)}
	}
	if err := export.SavePNG(png, doc, cfg.RasterOptions()); err != nil {
		return SavedMsg{Snapshot: snapshot, Err: fmt.Errorf("save preview: %w", err)}
	}
	return SavedMsg{Snapshot: snapshot, PNG: png}
}

func saveResult(cfg *config.Config, source string, doc *scene.Document, res *render.Result) tea.Cmd {
	return func() tea.Msg {
		return save(cfg, source, doc, res)
	}
}

// openPreview saves first unless a preview was already written.
func openPreview(cfg *config.Config, source string, doc *scene.Document, res *render.Result, saved *SavedMsg) tea.Cmd {
	return func() tea.Msg {
		if saved == nil {
			s := save(cfg, source, doc, res)
			if s.Err != nil {
				return PreviewOpenedMsg{Err: s.Err}
			}
			saved = &s
		}
		err := exec.OpenDetached(cfg.Output.OpenCommand, exec.Target{
			Source:   source,
			Snapshot: saved.Snapshot,
			PNG:      saved.PNG,
		})
		return PreviewOpenedMsg{Saved: saved, Err: err}
	}
}

// truncatePrompt shortens a prompt for display as the result source.
func truncatePrompt(prompt string) string {
	prompt = strings.Join(strings.Fields(prompt), " ")
	if r := []rune(prompt); len(r) > 60 {
		return string(r[:59]) + "…"
	}
	return prompt
}
