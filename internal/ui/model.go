package ui

import (
	"fmt"
	"log"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"selex/internal/config"
	"selex/internal/domain"
	"selex/internal/eventbus"
	"selex/internal/tree"
	"selex/internal/ui/services/events"
	"selex/internal/ui/services/filter"
	"selex/internal/ui/services/navigation"
	"selex/internal/ui/services/query"
	"selex/internal/ui/services/selection"
	"selex/internal/ui/state"
	"selex/internal/ui/views"
)

// headerLines is the number of screen lines above the first row
const headerLines = 3

type uiMode int

const (
	modeNormal uiMode = iota
	modeFilter
)

// Model is the bubbletea model hosting one selection-capable tree
// component. It implements selection.ViewBinding: the engine talks to the
// rendered rows exclusively through it.
type Model struct {
	cfg      *config.Config
	store    *tree.Store
	bus      eventbus.EventBus
	notifier events.EventBus

	engine    *selection.Service
	nav       *navigation.Service
	query     *query.Service
	filterSvc *filter.Service

	viewState    *state.ViewState
	styles       *views.Styles
	filterInput  textinput.Model
	helpRenderer *HelpRenderer
	helpOps      *HelpOps
	program      *tea.Program

	mode     uiMode
	width    int
	height   int
	status   string
	quitting bool
}

// NewModel creates the UI model and wires the selection engine to the
// attached tree. restoredIDs/restoredPrimary come from the offline
// mirror and are applied on top of the configured auto-select mode.
func NewModel(cfg *config.Config, store *tree.Store, bus eventbus.EventBus, notifier events.EventBus, restoredIDs []string, restoredPrimary string) *Model {
	if notifier == nil {
		notifier = events.NewBus()
	}

	m := &Model{
		cfg:          cfg,
		store:        store,
		bus:          bus,
		notifier:     notifier,
		viewState:    state.NewViewState(),
		styles:       views.NewStyles(),
		helpRenderer: NewHelpRenderer(),
	}

	m.query = query.NewService(store, notifier)
	m.query.Rebuild()

	m.nav = navigation.NewService(notifier)
	m.nav.SetQueryFunction(func() int { return m.query.Len() - 1 })

	m.filterSvc = filter.NewService(store, notifier)

	ti := textinput.New()
	ti.Placeholder = "filter"
	ti.CharLimit = 64
	m.filterInput = ti

	m.engine = selection.NewService(notifier, m, cfg.Selection.Options())

	// Keep the cursor on whatever carries the indicator
	notifier.Subscribe(selection.EventIndicate, func(e events.Event) bool {
		if ev, ok := e.(selection.IndicateEvent); ok && ev.Node != nil {
			if idx := m.query.IndexOf(ev.Node); idx >= 0 {
				m.nav.MoveToIndex(idx)
			}
		}
		return true
	})
	notifier.Subscribe(selection.EventAfterSelect, func(e events.Event) bool {
		if ev, ok := e.(selection.AfterSelectEvent); ok {
			m.status = fmt.Sprintf("%d selected", len(ev.Items))
		}
		return true
	})
	notifier.Subscribe(selection.EventAfterDeselect, func(e events.Event) bool {
		m.status = "selection cleared"
		return true
	})
	notifier.Subscribe(selection.EventAfterChoose, func(e events.Event) bool {
		if ev, ok := e.(selection.AfterChooseEvent); ok && ev.Node != nil {
			m.status = fmt.Sprintf("chose %s", ev.Node.Title)
		}
		return true
	})

	m.engine.AttachRoot(store)

	if len(restoredIDs) > 0 {
		targets := make([]interface{}, len(restoredIDs))
		for i, id := range restoredIDs {
			targets[i] = id
		}
		preferred := store.ResolveID(restoredPrimary)
		if _, err := m.engine.SelectList(targets, true, preferred); err != nil {
			log.Printf("restoring mirrored selection failed: %v", err)
		}
	}

	return m
}

// SetProgram hands the model its running program so it can release the
// terminal for the pager and route deferred engine work back onto the
// update loop
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
	m.helpOps = NewHelpOps(p)
	m.engine.SetScheduler(func(d time.Duration, fn func()) func() {
		t := time.AfterFunc(d, func() {
			p.Send(deferredMsg{fn: fn})
		})
		return func() { t.Stop() }
	})
}

// Engine exposes the selection engine for wiring in main
func (m *Model) Engine() *selection.Service {
	return m.engine
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.nav.SetViewportHeight(msg.Height)

	case deferredMsg:
		msg.fn()

	case helpPagerMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("help pager failed: %v", msg.err)
		}

	case EventMsg:
		m.handleDomainEvent(msg.Event)

	case tea.MouseMsg:
		m.handleMouse(msg)

	case tea.KeyMsg:
		if m.mode == modeFilter {
			return m.updateFilterMode(msg)
		}
		return m.updateNormalMode(msg)
	}
	return m, nil
}

func (m *Model) handleDomainEvent(event eventbus.DomainEvent) {
	switch e := event.(type) {
	case eventbus.NodesChangedEvent:
		m.query.Rebuild()
		m.engine.CheckSelection(e.Hint)
		if len(e.Removed) > 0 {
			for _, n := range e.Removed {
				m.viewState.Drop(n)
			}
			m.status = fmt.Sprintf("%d item(s) removed", len(e.Removed))
		}
	case eventbus.TreeLoadedEvent:
		m.query.Rebuild()
		m.status = fmt.Sprintf("%d items loaded", e.Stats.NodeCount)
	case eventbus.SelectionMirroredEvent:
		m.status = fmt.Sprintf("selection mirrored (%d items)", e.Count)
	case eventbus.ErrorEvent:
		m.status = e.Message
	}
}

func (m *Model) updateNormalMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		m.engine.Close()
		m.quitting = true
		return m, tea.Quit

	case "up", "k":
		m.nav.Navigate(navigation.DirectionUp)
		m.indicateCursor()
	case "down", "j":
		m.nav.Navigate(navigation.DirectionDown)
		m.indicateCursor()
	case "pgup":
		m.nav.Navigate(navigation.DirectionPageUp)
		m.indicateCursor()
	case "pgdown":
		m.nav.Navigate(navigation.DirectionPageDown)
		m.indicateCursor()
	case "home":
		m.nav.Navigate(navigation.DirectionHome)
		m.indicateCursor()
	case "end":
		m.nav.Navigate(navigation.DirectionEnd)
		m.indicateCursor()

	case "left", "h":
		if n := m.cursorNode(); n != nil && n.IsContainer() && m.query.IsExpanded(n) {
			m.query.ToggleExpanded(n)
		}
	case "right", "l":
		if n := m.cursorNode(); n != nil && n.IsContainer() && !m.query.IsExpanded(n) {
			m.query.ToggleExpanded(n)
		}

	case "enter":
		n := m.cursorNode()
		if n == nil {
			break
		}
		if n.IsContainer() {
			m.query.ToggleExpanded(n)
			break
		}
		if _, err := m.engine.Choose(n); err != nil {
			m.status = err.Error()
		}

	case " ":
		if n := m.cursorNode(); n != nil && !n.IsContainer() {
			if _, err := m.engine.Select(n, selection.Request{Ctrl: true}); err != nil {
				m.status = err.Error()
			}
		}
	case "v":
		if n := m.cursorNode(); n != nil && !n.IsContainer() {
			if _, err := m.engine.Select(n, selection.Request{Shift: true}); err != nil {
				m.status = err.Error()
			}
		}
	case "a":
		if _, err := m.engine.SelectAll(); err != nil {
			m.status = err.Error()
		}
	case "esc":
		m.engine.ClearSelection(false, false)

	case "d":
		if n := m.cursorNode(); n != nil {
			m.store.Remove(n)
		}

	case "/":
		m.mode = modeFilter
		m.filterInput.SetValue(m.filterSvc.Query())
		m.filterInput.Focus()
		return m, textinput.Blink

	case "?":
		return m, m.showHelpCmd()
	}
	return m, nil
}

func (m *Model) updateFilterMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeNormal
		m.filterInput.Blur()
		m.filterSvc.Clear()
		m.applyFilter()
		return m, nil
	case "enter":
		m.mode = modeNormal
		m.filterInput.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	m.filterSvc.Apply(m.filterInput.Value())
	m.applyFilter()
	return m, cmd
}

// applyFilter re-derives the visible rows and repairs the selection so it
// never references filtered-out items
func (m *Model) applyFilter() {
	m.query.Rebuild()
	m.engine.CheckSelection(nil)
	m.nav.MoveToIndex(m.nav.GetCursor())
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return
		}
		idx := m.nav.IndexAtScreenLine(msg.Y - headerLines)
		if idx < 0 {
			return
		}
		m.nav.MoveToIndex(idx)
		n := m.query.NodeAt(idx)
		if n == nil {
			return
		}
		if n.IsContainer() {
			m.query.ToggleExpanded(n)
			return
		}
		if _, err := m.engine.SetTempSelected(n, msg.Ctrl, msg.Shift); err != nil {
			m.status = err.Error()
		}
	case tea.MouseActionRelease:
		// Pointer-up commits a pending dwell selection
		m.engine.SelectTemp()
	}
}

func (m *Model) cursorNode() *domain.Node {
	return m.query.NodeAt(m.nav.GetCursor())
}

func (m *Model) indicateCursor() {
	if n := m.cursorNode(); n != nil {
		m.engine.SetIndicator(n)
	}
}

func (m *Model) showHelpCmd() tea.Cmd {
	return func() tea.Msg {
		if m.helpOps == nil {
			return helpPagerMsg{err: fmt.Errorf("pager not available")}
		}
		err := m.helpOps.ShowHelpInPager(m.helpRenderer.RenderHelpContent())
		return helpPagerMsg{err: err}
	}
}

// View implements tea.Model
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	title := m.styles.Title.Render("selex")

	var filterLine string
	if m.mode == modeFilter {
		filterLine = "Filter: " + m.filterInput.View()
	} else if m.filterSvc.IsActive() {
		filterLine = m.styles.Filter.Render("Filter: " + m.filterSvc.Query())
	} else {
		filterLine = m.styles.Dim.Render("Press / to filter, ? for help")
	}

	rows := m.query.Rows()
	rowData := make([]views.RowData, len(rows))
	for i, r := range rows {
		rv := m.viewState.Lookup(r.Node)
		rowData[i] = views.RowData{
			Title:       r.Node.Title,
			Depth:       r.Depth,
			IsContainer: r.Node.IsContainer(),
			Expanded:    m.query.IsExpanded(r.Node),
			Selected:    rv != nil && rv.Selected,
			Indicated:   rv != nil && rv.Indicated,
			Tentative:   m.engine.IsTentative(r.Node),
		}
	}
	body := views.RenderRows(rowData, m.nav.GetCursor(), m.nav.GetViewportOffset(), m.nav.GetViewportHeight(), m.styles)

	var statusLine string
	if m.cfg.UISettings.ShowStatusBar {
		primary := "none"
		if sel := m.engine.Selected(); sel != nil {
			primary = sel.Title
		}
		statusLine = m.styles.Status.Render(fmt.Sprintf("%d selected · primary: %s · %s", m.engine.Count(), primary, m.status))
	}

	return m.styles.Main.Render(title + "\n" + filterLine + "\n\n" + body + statusLine)
}
