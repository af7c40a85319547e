package repl

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/tmpl/log"
	"github.com/ardnew/tmpl/tmpl"
)

// editContextMsg is sent when context editing completes successfully.
type editContextMsg struct{ value tmpl.Value }

// editCancelledMsg is sent when the user cleared the editor content.
type editCancelledMsg struct{}

// editDeclinedMsg is sent when the user declined to re-edit after a decode
// error.
type editDeclinedMsg struct{}

// editErrorMsg is sent when the edit process encounters any other error.
type editErrorMsg struct{ err error }

const (
	evalPrompt = "➜ "
	ctrlPrompt = " :"
)

const helpMessage = `
: Commands (press Esc to toggle mode):

  help               Print this text
  list [PATH]        List context members with previews
  get PATH           Print the argument at PATH
  set PATH=EXPR      Set PATH to the result of an expression
  unset PATH         Delete PATH from the context
  meta               Inject the default true, false and meta arguments
  render             Render the loaded template
  edit               Edit the context as YAML in $EDITOR
  clear              Clear screen
  quit               Exit REPL

Usage:
  Type template source to render it against the context, e.g.
    "Hello, " user.name
    foreach h : hosts ( h.name " " )
  Completions appear automatically as you type
  Press Tab / Shift-Tab to cycle through candidates
  Press Space to accept the current candidate
  Use Up/Down arrows for history navigation (mode switches automatically)
  Use Shift+Up/Shift+Down for history navigation within current mode only
  Press Ctrl+C on empty line or Ctrl+D to exit`

// inputMode represents the current input mode.
type inputMode int

const (
	modeEval inputMode = iota
	modeCtrl
)

// Styles.
var (
	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6")).
			Bold(true)
	ctrlPromptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("5")).
			Bold(true)
	inputStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	resultStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	hintStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	suggestionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	matchStyle      = suggestionStyle.Bold(true)
	selectedStyle   = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("4"))
	selectedMatchStyle = selectedStyle.Bold(true)
)

// echo formats the input line as it is echoed above the output.
func echo(mode inputMode, input string) string {
	if mode == modeCtrl {
		return ctrlPromptStyle.Render(ctrlPrompt) + inputStyle.Render(input)
	}

	return promptStyle.Render(evalPrompt) + inputStyle.Render(input)
}

// model is the Bubble Tea model for the REPL.
type model struct {
	ctxFunc      func() context.Context
	input        textinput.Model
	tmpl         *tmpl.Template
	opts         []tmpl.Option
	logger       log.Logger
	history      *History
	historyIdx   int
	matches      fuzzy.Matches // current fuzzy match results
	candidates   []string      // backing candidate list
	wordStart    int           // byte offset of current word start
	wordEnd      int           // byte offset of current word end
	suggIdx      int           // selected candidate index
	tabActive    bool          // whether user is tab-cycling
	preTabText   string        // input text before tab-cycling began
	preTabCursor int           // cursor position before tab-cycling began
	width        int           // terminal width for ellipsization
	quitting     bool
	mode         inputMode
	evalText     string
	evalCursor   int
	ctrlText     string
	ctrlCursor   int
}

// Run starts the REPL over t. Snippets entered in eval mode are parsed with
// opts and rendered against t's context; control commands modify that
// context. History is kept in cacheDir.
func Run(
	ctx context.Context,
	t *tmpl.Template,
	opts []tmpl.Option,
	cacheDir string,
	logger log.Logger,
) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	logger.TraceContext(
		ctx,
		"repl start",
		slog.String("cache_dir", cacheDir),
		slog.Bool("has_template", t.Element() != nil),
	)

	history := NewHistory(filepath.Join(cacheDir, baseHistory))
	if err := history.Load(); err != nil {
		logger.WarnContext(ctx, "could not load history",
			slog.String("file", history.path),
			slog.Any("error", err))
	}

	logger.TraceContext(
		ctx,
		"repl history loaded",
		slog.Int("entry_count", history.Len()),
	)

	p := tea.NewProgram(
		newModel(ctx, t, opts, history, logger),
		tea.WithContext(ctx),
	)
	_, err = p.Run()

	return err
}

const defaultWidth = 80

func newModel(
	ctx context.Context,
	t *tmpl.Template,
	opts []tmpl.Option,
	history *History,
	logger log.Logger,
) model {
	ti := textinput.New()
	ti.Prompt = promptStyle.Render(evalPrompt)
	ti.Focus()
	ti.CharLimit = 4096
	ti.Width = defaultWidth

	return model{
		ctxFunc:    func() context.Context { return ctx },
		input:      ti,
		tmpl:       t,
		opts:       opts,
		logger:     logger,
		history:    history,
		historyIdx: history.Len(),
		suggIdx:    -1,
		width:      defaultWidth,
		mode:       modeEval,
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = msg.Width - len(evalPrompt) - 2

		return m, nil

	case editContextMsg:
		m.tmpl.SetContext(msg.value)
		m.logger.TraceContext(
			m.ctxFunc(),
			"repl edit complete",
			slog.String("kind", msg.value.ValueKind().String()),
		)

		return m, tea.Println(resultStyle.Render("✔ context updated"))

	case editCancelledMsg:
		return m, tea.Println(hintStyle.Render("🗴 edit cancelled"))

	case editDeclinedMsg:
		m.quitting = true

		return m, tea.Quit

	case editErrorMsg:
		return m, tea.Println(errorStyle.Render("🗴 error: " + msg.err.Error()))
	}

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(m.input.View())
	b.WriteString("\n")

	input := m.input.Value()

	switch {
	case m.historyIdx < m.history.Len():
		hint := fmt.Sprintf("%s/%d",
			lipgloss.NewStyle().Bold(true).Render(strconv.Itoa(m.historyIdx+1)),
			m.history.Len())
		b.WriteString(hintStyle.Render(hint))

	case strings.TrimSpace(input) == "":
		hint := "Type template source or press Esc for commands"
		if m.mode == modeCtrl {
			hint = "Type: " + strings.Join(ctrlCommands, ", ") +
				" (press Esc to return)"
		}

		b.WriteString(hintStyle.Render(hint))

	case len(m.matches) > 0:
		b.WriteString(renderCandidateBar(
			m.matches, m.suggIdx, m.tabActive, m.width,
		))
	}

	b.WriteString("\n")

	return b.String()
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	m.logger.TraceContext(
		m.ctxFunc(),
		"repl keypress",
		slog.String("key", msg.String()),
		slog.Int("type", int(msg.Type)),
	)

	switch msg.Type {
	case tea.KeyCtrlC:
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		m.input.SetValue("")
		m.tabActive = false
		m.historyIdx = m.history.Len()
		refreshMatches(&m, false)

		return m, nil

	case tea.KeyCtrlD:
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		return m, nil

	case tea.KeyEnter:
		if !m.tabActive || len(m.matches) == 0 {
			return m.executeInput()
		}
		// Lock in the current tab candidate without executing.
		m.tabActive = false
		refreshMatches(&m, true)

		return m, nil

	case tea.KeyTab:
		return m.cycle(+1), nil

	case tea.KeyShiftTab:
		return m.cycle(-1), nil

	case tea.KeyUp:
		return m.recall(-1, false), nil

	case tea.KeyDown:
		return m.recall(+1, false), nil

	case tea.KeyShiftUp:
		return m.recall(-1, true), nil

	case tea.KeyShiftDown:
		return m.recall(+1, true), nil

	case tea.KeyEsc:
		if m.tabActive {
			m.tabActive = false
			m.input.SetValue(m.preTabText)
			m.input.SetCursor(m.preTabCursor)
			refreshMatches(&m, false)

			return m, nil
		}

		if m.mode == modeEval {
			return m.switchToMode(modeCtrl), nil
		}

		return m.switchToMode(modeEval), nil

	case tea.KeyRunes, tea.KeySpace:
		// Space accepts the candidate being cycled.
		if m.tabActive && msg.String() == " " {
			m.tabActive = false
		}

		var cmd tea.Cmd

		m.historyIdx = m.history.Len()
		m.input, cmd = m.input.Update(msg)
		refreshMatches(&m, true)

		return m, cmd
	}

	// Any other key (backspace, delete, arrows, etc.) edits or moves
	// without auto-confirming a completion.
	var cmd tea.Cmd

	m.tabActive = false
	m.historyIdx = m.history.Len()
	m.input, cmd = m.input.Update(msg)
	refreshMatches(&m, false)

	return m, cmd
}

// cycle moves the tab selection by step, wrapping around. A single
// candidate is completed and confirmed immediately.
func (m model) cycle(step int) model {
	n := len(m.matches)
	if n == 0 {
		return m
	}

	if n == 1 {
		replaceCurrentWord(&m, m.matches[0].Str)
		m.tabActive = false
		m.suggIdx = -1
		m.matches = nil

		return m
	}

	switch {
	case m.tabActive:
		m.suggIdx = (m.suggIdx + step + n) % n

	case step > 0:
		m.tabActive = true
		m.preTabText = m.input.Value()
		m.preTabCursor = m.input.Position()
		m.suggIdx = 0

	default:
		m.tabActive = true
		m.preTabText = m.input.Value()
		m.preTabCursor = m.input.Position()
		m.suggIdx = n - 1
	}

	replaceCurrentWord(&m, m.matches[m.suggIdx].Str)

	return m
}

// replaceCurrentWord replaces the current word boundaries in the input with
// the given replacement text and repositions the cursor.
func replaceCurrentWord(m *model, replacement string) {
	input := m.input.Value()
	newInput := input[:m.wordStart] + replacement + input[m.wordEnd:]
	newCursor := m.wordStart + len(replacement)

	m.input.SetValue(newInput)
	m.input.SetCursor(newCursor)

	m.wordEnd = newCursor
}

// refreshMatches recomputes fuzzy matches for the current input state.
// When autoConfirm is true it also confirms the completion when exactly
// one candidate remains and the typed word already equals it. Deletions and
// cursor movement pass false so editing never completes unexpectedly.
func refreshMatches(m *model, autoConfirm bool) {
	m.matches, m.candidates, m.wordStart, m.wordEnd = m.computeMatches()

	if !m.tabActive {
		m.suggIdx = -1
	}

	if !autoConfirm || len(m.matches) != 1 {
		return
	}

	candidate := m.matches[0].Str
	if m.input.Value()[m.wordStart:m.wordEnd] == candidate {
		m.tabActive = false
		m.suggIdx = -1
		m.matches = nil
	}
}

// recall moves through history by step. Unless sameMode is set, the input
// mode follows the recalled entry. Moving past the newest entry clears
// the input.
func (m model) recall(step int, sameMode bool) model {
	mode := m.mode

	i := m.history.Find(m.historyIdx+step, step, func(e HistoryEntry) bool {
		return !sameMode || e.Mode == mode
	})

	if i < 0 {
		if step > 0 && m.historyIdx < m.history.Len() {
			m.historyIdx = m.history.Len()
			m.input.SetValue("")
			refreshMatches(&m, false)
		}

		return m
	}

	entry, err := m.history.Entry(i)
	if err != nil {
		return m
	}

	if entry.Mode != m.mode {
		m = m.switchToMode(entry.Mode)
	}

	m.historyIdx = i
	m.input.SetValue(entry.Line)
	m.input.SetCursor(len(entry.Line))
	refreshMatches(&m, false)

	return m
}

// switchToMode switches to the specified mode, preserving the input of the
// mode being left.
func (m model) switchToMode(mode inputMode) model {
	if m.mode == modeEval {
		m.evalText, m.evalCursor = m.input.Value(), m.input.Position()
	} else {
		m.ctrlText, m.ctrlCursor = m.input.Value(), m.input.Position()
	}

	m.mode = mode
	if mode == modeEval {
		m.input.Prompt = promptStyle.Render(evalPrompt)
		m.input.SetValue(m.evalText)
		m.input.SetCursor(m.evalCursor)
	} else {
		m.input.Prompt = ctrlPromptStyle.Render(ctrlPrompt)
		m.input.SetValue(m.ctrlText)
		m.input.SetCursor(m.ctrlCursor)
	}

	refreshMatches(&m, false)

	return m
}

func (m model) executeInput() (model, tea.Cmd) {
	input := strings.TrimSpace(m.input.Value())
	if input == "" {
		return m, nil
	}

	m.evalText, m.evalCursor = "", 0
	m.ctrlText, m.ctrlCursor = "", 0
	m.input.SetValue("")
	m.matches = nil

	if err := m.history.Write(input, m.mode); err != nil {
		m.logger.DebugContext(m.ctxFunc(), "history write failed",
			slog.Any("error", err))
	}

	m.historyIdx = m.history.Len()

	echoCmd := tea.Println(echo(m.mode, input))

	if m.mode == modeCtrl {
		var cmd tea.Cmd

		m, cmd = m.executeCommand(input)

		return m, tea.Sequence(echoCmd, cmd)
	}

	out, err := m.render(input)

	return m, tea.Sequence(echoCmd, tea.Println(result(out, err)))
}

// result formats command output or an error for printing.
func result(out string, err error) string {
	if err != nil {
		return errorStyle.Render("error: " + err.Error())
	}

	if out == "" {
		return hintStyle.Render("(empty)")
	}

	return resultStyle.Render(out)
}

// render parses source as a template and renders it against the current
// context.
func (m model) render(source string) (string, error) {
	ctx := m.ctxFunc()

	root, err := tmpl.Parse(ctx, source, m.opts...)
	if err != nil {
		return "", err
	}

	snippet := tmpl.New(m.opts...)
	snippet.SetContext(m.tmpl.Context())
	snippet.SetTemplate(root)

	out, err := snippet.Generate(ctx)

	m.logger.TraceContext(ctx, "repl render",
		slog.Int("output_bytes", len(out)),
		slog.Bool("failed", err != nil))

	return out, err
}

// executeCommand runs a control command. The returned command prints its
// result.
func (m model) executeCommand(input string) (model, tea.Cmd) {
	name, arg, _ := strings.Cut(input, " ")
	arg = strings.TrimSpace(arg)

	m.logger.TraceContext(
		m.ctxFunc(),
		"repl command",
		slog.String("command", name),
		slog.String("arg", arg),
	)

	switch name {
	case "q", "quit", "exit":
		m.quitting = true

		return m, tea.Quit

	case "h", "help":
		return m, tea.Println(helpMessage)

	case "l", "list":
		out, err := m.list(arg)

		return m, tea.Println(result(out, err))

	case "g", "get":
		out, err := m.get(arg)

		return m, tea.Println(result(out, err))

	case "s", "set":
		out, err := m.set(arg)

		return m, tea.Println(result(out, err))

	case "u", "unset":
		out, err := m.unset(arg)

		return m, tea.Println(result(out, err))

	case "meta":
		m.tmpl.OverrideArguments()

		return m, tea.Println(resultStyle.Render("✔ default arguments injected"))

	case "r", "render":
		if m.tmpl.Element() == nil {
			return m, tea.Println(result("", ErrNoTemplate))
		}

		out, err := m.tmpl.Generate(m.ctxFunc())

		return m, tea.Println(result(out, err))

	case "c", "clear":
		return m, tea.ClearScreen

	case "e", "edit":
		return m, m.edit()

	default:
		return m, tea.Println(
			errorStyle.Render("Unknown command: " + name + " (try 'help')"),
		)
	}
}

// list previews the members of the container at path, or of the whole
// context if path is empty.
func (m model) list(path string) (string, error) {
	node := m.tmpl.Context()

	if path != "" {
		p, err := tmpl.ParsePath(path)
		if err != nil {
			return "", err
		}

		v, ok := tmpl.Lookup(node, p)
		if !ok {
			return "", fmt.Errorf("%s: %w", path, errUndefined)
		}

		node = v
	}

	var b strings.Builder

	for _, name := range childNames(node) {
		v, _ := tmpl.Lookup(node, tmpl.Path{name})
		fmt.Fprintf(&b, "  %s %s\n", name, hintStyle.Render(formatPreview(v)))
	}

	return strings.TrimSuffix(b.String(), "\n"), nil
}

func (m model) get(path string) (string, error) {
	p, err := tmpl.ParsePath(path)
	if err != nil {
		return "", err
	}

	s, ok := m.tmpl.GetArgument(p)
	if !ok {
		return "", fmt.Errorf("%s: %w", path, errUndefined)
	}

	return s, nil
}

func (m model) set(assignment string) (string, error) {
	p, expression, err := tmpl.ParseAssignment(assignment)
	if err != nil {
		return "", err
	}

	if _, err := m.tmpl.Assign(m.ctxFunc(), p, expression); err != nil {
		return "", err
	}

	return "✔ " + p.String(), nil
}

func (m model) unset(path string) (string, error) {
	p, err := tmpl.ParsePath(path)
	if err != nil {
		return "", err
	}

	if !m.tmpl.SetArgument(p, nil) {
		return "", fmt.Errorf("%s: %w", path, errUndefined)
	}

	return "✔ " + p.String() + " removed", nil
}

// errUndefined reports a path with no value.
var errUndefined = errors.New("undefined")

func (m model) edit() tea.Cmd {
	cmd := &editContextCommand{
		value:   m.tmpl.Context(),
		ctxFunc: m.ctxFunc,
		logger:  m.logger,
	}

	return tea.Exec(cmd, func(err error) tea.Msg {
		if errors.Is(err, ErrEditDeclined) {
			return editDeclinedMsg{}
		}

		if err != nil {
			return editErrorMsg{err: err}
		}

		if cmd.edited == nil {
			return editCancelledMsg{}
		}

		return editContextMsg{value: cmd.edited}
	})
}
