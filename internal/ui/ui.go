package ui

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/desertthunder/shelf/internal/lending"
	"github.com/desertthunder/shelf/internal/models"
	"github.com/desertthunder/shelf/internal/shared"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	CatalogView ViewState = iota
	HeldView
)

// Model represents the TUI application state.
type Model struct {
	ledger    *lending.Ledger
	member    string
	logger    *log.Logger
	view      ViewState
	width     int
	height    int
	list      list.Model
	status    string
	statusErr bool
	statusSeq int
	dirty     bool
	err       error
	help      help.Model
	keys      keyMap
}

// NewModel creates a lending desk for the named member.
//
// The member must already be registered with the ledger.
func NewModel(ledger *lending.Ledger, member string, logger *log.Logger) (*Model, error) {
	if _, ok := ledger.Member(member); !ok {
		return nil, fmt.Errorf("%w: %s", shared.ErrMemberNotFound, member)
	}
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	m := &Model{
		ledger: ledger,
		member: member,
		logger: shared.WithLogger(logger, "component", "tui"),
		view:   CatalogView,
		width:  80,
		height: 24,
		help:   help.New(),
		keys:   newKeyMap(),
	}
	m.list = list.New(nil, list.NewDefaultDelegate(), m.width-4, m.height-8)
	m.list.SetShowHelp(false)
	m.refresh()
	return m, nil
}

// Dirty reports whether any borrow or return succeeded.
func (m *Model) Dirty() bool { return m.dirty }

// ViewState returns the active view.
func (m *Model) ViewState() ViewState { return m.view }

// Init implements [tea.Model]; the catalog is already loaded.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(msg.Width-4, msg.Height-8)
		return m, nil

	case Msg:
		if msg.kind == MsgClearStatus {
			if seq, ok := msg.data.(int); ok && seq == m.statusSeq {
				m.status = ""
			}
		}
		return m, nil

	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch {
		case key.Matches(msg, m.keys.quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.toggle):
			if m.view == CatalogView {
				m.view = HeldView
			} else {
				m.view = CatalogView
			}
			m.refresh()
			return m, nil
		case key.Matches(msg, m.keys.borrow):
			return m, m.borrowSelected()
		case key.Matches(msg, m.keys.ret):
			return m, m.returnSelected()
		case key.Matches(msg, m.keys.oldest):
			return m, m.returnOldest()
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.err != nil {
		return styles.err.Render(fmt.Sprintf("Error: %v\n\nPress q to quit", m.err))
	}

	status := ""
	if m.status != "" {
		if m.statusErr {
			status = styles.err.Render("✗ " + m.status)
		} else {
			status = styles.ok.Render("✓ " + m.status)
		}
	}

	return fmt.Sprintf("%s\n%s\n%s\n\n%s", m.list.View(), status, styles.help.Render(m.policyHint()), m.help.ShortHelpView(m.keys.ShortHelp()))
}

func (m *Model) policyHint() string {
	if m.ledger.Policy() == lending.ReturnOldest {
		return "Returns are oldest-first: press o."
	}
	return "Returns are explicit: select an item and press r."
}

// refresh rebuilds the list for the active view.
func (m *Model) refresh() {
	var items []list.Item

	switch m.view {
	case HeldView:
		member, ok := m.ledger.Member(m.member)
		if ok {
			for _, item := range member.Held() {
				items = append(items, catalogItem{item: item, holder: member.Name})
			}
		}
		m.list.Title = fmt.Sprintf("Held by %s", m.member)
	default:
		for _, item := range m.ledger.Registry().All() {
			row := catalogItem{item: item}
			if holder, ok := m.ledger.Holder(item.ID); ok {
				row.holder = holder.Name
			}
			items = append(items, row)
		}
		m.list.Title = fmt.Sprintf("Catalog (%s)", m.member)
	}

	m.list.SetItems(items)
	if idx := m.list.Index(); idx >= len(items) && len(items) > 0 {
		m.list.Select(len(items) - 1)
	}
}

func (m *Model) selected() *models.Item {
	if row, ok := m.list.SelectedItem().(catalogItem); ok {
		return row.item
	}
	return nil
}

func (m *Model) borrowSelected() tea.Cmd {
	item := m.selected()
	if item == nil {
		return m.setStatus("nothing selected", true)
	}
	if err := m.ledger.Borrow(m.member, item.ID); err != nil {
		return m.fail("borrow", err)
	}
	m.logger.Info("borrowed", "member", m.member, "id", item.ID)
	return m.succeed(fmt.Sprintf("%s borrowed %s", m.member, item.Title()))
}

func (m *Model) returnSelected() tea.Cmd {
	item := m.selected()
	if item == nil {
		return m.setStatus("nothing selected", true)
	}
	if err := m.ledger.Return(m.member, item.ID); err != nil {
		return m.fail("return", err)
	}
	m.logger.Info("returned", "member", m.member, "id", item.ID)
	return m.succeed(fmt.Sprintf("%s returned %s", m.member, item.Title()))
}

func (m *Model) returnOldest() tea.Cmd {
	item, err := m.ledger.ReturnOldest(m.member)
	if err != nil {
		return m.fail("return oldest", err)
	}
	m.logger.Info("returned", "member", m.member, "id", item.ID)
	return m.succeed(fmt.Sprintf("%s returned %s", m.member, item.Title()))
}

func (m *Model) succeed(status string) tea.Cmd {
	m.dirty = true
	m.refresh()
	return m.setStatus(status, false)
}

// fail shows lending errors in the status line; anything else ends the session.
func (m *Model) fail(action string, err error) tea.Cmd {
	if !shared.IsLendingError(err) && !errors.Is(err, shared.ErrInvalidInput) {
		m.err = err
		return nil
	}
	m.logger.Warn(action+" refused", "member", m.member, "err", err)
	return m.setStatus(err.Error(), true)
}

func (m *Model) setStatus(status string, isErr bool) tea.Cmd {
	m.statusSeq++
	m.status = status
	m.statusErr = isErr
	return clearStatusAfter(m.statusSeq, statusTimeout)
}

// Run starts the TUI and returns the final model once the user quits.
func Run(ledger *lending.Ledger, member string, logger *log.Logger) (*Model, error) {
	model, err := NewModel(ledger, member, logger)
	if err != nil {
		return nil, err
	}

	final, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
	if err != nil {
		return nil, fmt.Errorf("TUI error: %w", err)
	}
	if fm, ok := final.(*Model); ok {
		return fm, fm.err
	}
	return model, nil
}
