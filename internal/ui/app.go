package ui

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"github.com/five82/shelf/internal/catalog"
	"github.com/five82/shelf/internal/export"
	"github.com/five82/shelf/internal/logtail"
	"github.com/five82/shelf/internal/prefs"
	"github.com/five82/shelf/internal/state"
	"github.com/five82/shelf/internal/view"
)

// DefaultSettleDelay is how long an outcome stays on screen before its
// dialog closes.
const DefaultSettleDelay = 1500 * time.Millisecond

// mode is the current input mode.
type mode int

const (
	modeBrowse mode = iota
	modeSearch
	modeForm
	modeConfirmReset
)

// tone colors the banner.
type tone int

const (
	toneSuccess tone = iota
	toneWarning
	toneInfo
	toneDanger
)

type banner struct {
	text string
	tone tone
}

// Options configures the UI.
type Options struct {
	Context     context.Context
	Store       *state.Store
	SettleDelay time.Duration
	ThemeName   string
	PrefsPath   string
	ExportDir   string // empty uses the working directory
	LogFile     string // shown by the log overlay
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx         context.Context
	store       *state.Store
	settleDelay time.Duration
	prefsPath   string
	exportDir   string
	logFile     string
	now         func() time.Time

	// UI state
	theme    Theme
	keys     keyMap
	help     help.Model
	width    int
	height   int
	ready    bool
	showHelp bool
	showLog  bool
	mode     mode

	// Data state
	snapshot   state.Snapshot
	slice      view.Slice
	links      []view.PageLink
	indicators map[view.Column]view.Indicator

	table   table.Model
	search  textinput.Model
	form    form
	logTail []string

	// busy is set while a mutation, reset or export runs.
	busy bool
	// banner is cleared by the settle timer whose seq matches bannerSeq.
	banner    banner
	bannerSeq int
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	settle := opts.SettleDelay
	if settle <= 0 {
		settle = DefaultSettleDelay
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = "Dracula"
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	theme := GetTheme(themeName)

	search := textinput.New()
	search.Prompt = "/ "
	search.Placeholder = "Search by title"
	search.CharLimit = 100

	m := Model{
		ctx:         ctx,
		store:       opts.Store,
		settleDelay: settle,
		prefsPath:   prefsPath,
		exportDir:   opts.ExportDir,
		logFile:     opts.LogFile,
		now:         time.Now,
		theme:       theme,
		keys:        DefaultKeyMap(),
		help:        help.New(),
		table:       newTable(theme),
		search:      search,
	}
	m.refresh()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.ready = true
		m.refresh()
		return m, nil

	case outcomeMsg:
		return m.handleOutcome(state.Outcome(msg))

	case settledMsg:
		if msg.seq != m.bannerSeq {
			return m, nil
		}
		m.banner = banner{}
		if m.mode == modeForm {
			m.mode = modeBrowse
		}
		return m, nil

	case exportedMsg:
		m.busy = false
		if msg.err != nil {
			log.Error().Err(msg.err).Msg("export failed")
			cmd := m.showBanner(fmt.Sprintf("Export failed: %v", msg.err), toneDanger)
			return m, cmd
		}
		log.Info().Str("path", msg.path).Msg("exported page")
		cmd := m.showBanner("Exported "+msg.path, toneSuccess)
		return m, cmd

	case resetMsg:
		m.busy = false
		m.search.SetValue("")
		m.refresh()
		text, t := "Data reloaded from the API.", toneSuccess
		if msg.err != nil {
			text, t = "Reload failed; local data was cleared.", toneDanger
		}
		cmd := m.showBanner(text, t)
		return m, cmd
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelp()
	}

	if m.showLog {
		return m.renderLog()
	}

	switch m.mode {
	case modeForm:
		return m.renderForm()
	case modeConfirmReset:
		return m.renderConfirmReset()
	}

	return m.renderMain()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.showHelp || m.showLog {
		// Any key closes overlays
		m.showHelp = false
		m.showLog = false
		return m, nil
	}

	switch m.mode {
	case modeSearch:
		return m.handleSearchKey(msg)
	case modeForm:
		return m.handleFormKey(msg)
	case modeConfirmReset:
		return m.handleConfirmKey(msg)
	}

	if m.busy {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.ShowLog):
		m.openLog()
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.table.SetStyles(tableStyles(m.theme))
		m.savePrefs()
		return m, nil

	case key.Matches(msg, m.keys.Search):
		m.mode = modeSearch
		cmd := m.search.Focus()
		return m, cmd

	case key.Matches(msg, m.keys.SortName):
		m.setSort(view.ColumnTitle)
		return m, nil

	case key.Matches(msg, m.keys.SortCost):
		m.setSort(view.ColumnPrice)
		return m, nil

	case key.Matches(msg, m.keys.PageSize):
		m.cyclePageSize()
		return m, nil

	case key.Matches(msg, m.keys.PrevPage):
		m.gotoPage(m.slice.PageInfo.Page - 1)
		return m, nil

	case key.Matches(msg, m.keys.NextPage):
		m.gotoPage(m.slice.PageInfo.Page + 1)
		return m, nil

	case key.Matches(msg, m.keys.First):
		m.gotoPage(1)
		return m, nil

	case key.Matches(msg, m.keys.Last):
		m.gotoPage(m.slice.PageInfo.TotalPages)
		return m, nil

	case key.Matches(msg, m.keys.Edit):
		id, ok := m.selectedID()
		if !ok {
			return m, nil
		}
		p, ok := m.store.Product(id)
		if !ok {
			return m, nil
		}
		m.openForm(newEditForm(p))
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Create):
		m.openForm(newCreateForm())
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Export):
		m.busy = true
		return m, exportCmd(m.store.ExportRows(), m.exportPath())

	case key.Matches(msg, m.keys.Reset):
		m.mode = modeConfirmReset
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// handleSearchKey feeds the search input and refilters on every keystroke.
func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.search.SetValue("")
		m.search.Blur()
		m.mode = modeBrowse
		m.store.SetFilter("")
		m.refresh()
		return m, nil

	case key.Matches(msg, m.keys.Confirm):
		m.search.Blur()
		m.mode = modeBrowse
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() != m.snapshot.Filter {
		m.store.SetFilter(m.search.Value())
		m.refresh()
	}
	return m, cmd
}

// handleFormKey handles the edit and create dialogs.
func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.busy {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Escape):
		m.mode = modeBrowse
		m.banner = banner{}
		return m, nil

	case key.Matches(msg, m.keys.Tab), msg.String() == "down":
		m.form.move(1)
		return m, nil

	case key.Matches(msg, m.keys.ShiftTab), msg.String() == "up":
		m.form.move(-1)
		return m, nil

	case key.Matches(msg, m.keys.Confirm):
		return m.submitForm()
	}

	var cmd tea.Cmd
	m.form, cmd = m.form.update(msg)
	return m, cmd
}

func (m Model) submitForm() (tea.Model, tea.Cmd) {
	switch m.form.kind {
	case formEdit:
		patch, err := m.form.patch()
		if err != nil {
			m.banner = banner{text: "Price must be a non-negative number.", tone: toneDanger}
			return m, nil
		}
		m.busy = true
		m.banner = banner{}
		return m, updateCmd(m.ctx, m.store, m.form.id, patch)
	default:
		m.busy = true
		m.banner = banner{}
		return m, createCmd(m.ctx, m.store, m.form.draft())
	}
}

func (m Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Yes) {
		m.mode = modeBrowse
		m.busy = true
		return m, resetCmd(m.ctx, m.store)
	}
	m.mode = modeBrowse
	return m, nil
}

// handleOutcome shows the result of a mutation. Validation failures keep
// the dialog open; anything else closes it once the settle delay passes.
func (m Model) handleOutcome(out state.Outcome) (tea.Model, tea.Cmd) {
	m.busy = false
	m.refresh()

	if out.Kind == state.ValidationFailed {
		text := out.Message()
		if fields := validationFields(out.Err); fields != "" {
			text += " (" + fields + ")"
		}
		m.bannerSeq++
		m.banner = banner{text: text, tone: toneDanger}
		return m, nil
	}
	cmd := m.showBanner(out.Message(), toneFor(out.Kind))
	return m, cmd
}

// showBanner displays text until the settle delay elapses.
func (m *Model) showBanner(text string, t tone) tea.Cmd {
	m.bannerSeq++
	m.banner = banner{text: text, tone: t}
	return settleCmd(m.settleDelay, m.bannerSeq)
}

func (m *Model) openForm(f form) {
	m.form = f
	m.mode = modeForm
	m.banner = banner{}
}

// openLog loads the tail of the log file for the overlay.
func (m *Model) openLog() {
	m.showLog = true
	m.logTail = nil
	if m.logFile == "" {
		return
	}
	lines, err := logtail.Read(m.logFile, max(m.height-6, 10))
	if err != nil {
		m.logTail = []string{err.Error()}
		return
	}
	for _, line := range lines {
		m.logTail = append(m.logTail, logtail.Parse(line).String())
	}
}

func (m *Model) setSort(column view.Column) {
	if err := m.store.SetSort(column); err != nil {
		log.Warn().Err(err).Msg("sort")
		return
	}
	m.refresh()
}

func (m *Model) cyclePageSize() {
	size := nextPageSize(m.snapshot.PageSize)
	if err := m.store.SetPageSize(size); err != nil {
		log.Warn().Err(err).Msg("page size")
		return
	}
	m.refresh()
	m.savePrefs()
}

func (m *Model) gotoPage(page int) {
	if m.store.SetPage(page) {
		m.table.SetCursor(0)
		m.refresh()
	}
}

func (m *Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	p := prefs.Prefs{Theme: m.theme.Name, PageSize: m.snapshot.PageSize}
	if err := prefs.Save(m.prefsPath, p); err != nil {
		log.Warn().Err(err).Msg("save prefs")
	}
}

// refresh copies the store's current view into the model.
func (m *Model) refresh() {
	if m.store == nil {
		return
	}
	m.snapshot = m.store.Snapshot()
	m.slice = m.store.VisibleSlice()
	m.links = m.store.PageWindow()
	m.indicators = map[view.Column]view.Indicator{
		view.ColumnTitle: m.store.SortIndicator(view.ColumnTitle),
		view.ColumnPrice: m.store.SortIndicator(view.ColumnPrice),
	}

	m.table.SetColumns(m.columns())
	m.table.SetRows(productRows(m.slice.Rows))
	m.table.SetHeight(m.tableHeight())
	if n := len(m.slice.Rows); n > 0 && m.table.Cursor() >= n {
		m.table.SetCursor(n - 1)
	}
}

func (m Model) tableHeight() int {
	// header, search, summary, pager, banner, footer
	return max(m.height-6, 4)
}

func (m Model) exportPath() string {
	name := export.FileName(m.slice.PageInfo.Page, m.now())
	if m.exportDir == "" {
		return name
	}
	return filepath.Join(m.exportDir, name)
}

func toneFor(kind state.Kind) tone {
	switch kind {
	case state.RemoteApplied:
		return toneSuccess
	case state.RemoteFailedLocalApplied:
		return toneWarning
	case state.NetworkExceptionLocalApplied:
		return toneInfo
	default:
		return toneDanger
	}
}

// Messages

type outcomeMsg state.Outcome

type settledMsg struct{ seq int }

type exportedMsg struct {
	path string
	err  error
}

type resetMsg struct{ err error }

// Commands

func updateCmd(ctx context.Context, store *state.Store, id int64, patch catalog.Patch) tea.Cmd {
	return func() tea.Msg {
		return outcomeMsg(store.UpdateProduct(ctx, id, patch))
	}
}

func createCmd(ctx context.Context, store *state.Store, draft catalog.Draft) tea.Cmd {
	return func() tea.Msg {
		return outcomeMsg(store.CreateProduct(ctx, draft))
	}
}

func resetCmd(ctx context.Context, store *state.Store) tea.Cmd {
	return func() tea.Msg {
		return resetMsg{err: store.Reset(ctx)}
	}
}

func settleCmd(d time.Duration, seq int) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return settledMsg{seq: seq}
	})
}

func exportCmd(rows []catalog.Product, path string) tea.Cmd {
	return func() tea.Msg {
		return exportedMsg{path: path, err: export.WriteFile(path, rows)}
	}
}

// validationFields lists the rejected draft fields, if err names any.
func validationFields(err error) string {
	var verr *catalog.ValidationError
	if errors.As(err, &verr) {
		return strings.Join(verr.Fields, ", ")
	}
	return ""
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	return nil
}
