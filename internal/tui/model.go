package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/humidor/internal/membership"
	"github.com/julianstephens/humidor/internal/recommend"
	"github.com/julianstephens/humidor/internal/storage"
	"github.com/julianstephens/humidor/internal/summary"
	"github.com/julianstephens/humidor/internal/tui/components/records"
)

type SessionState int

// The first five states are the tabs, in display order.
const (
	StateHome SessionState = iota
	StateHumidor
	StateJournal
	StateDiscover
	StateProfile
	StateEditCigar
	StateEditJournal
	StateConfirm
)

const tabCount = 5

var tabTitles = []string{"Home", "Humidor", "Journal", "Discover", "Profile"}

const (
	kindCigars  = "cigars"
	kindJournal = "journal"
)

type CigarFormModel struct {
	Brand  string
	Name   string
	Size   string
	Origin string
	Rating string
	Image  string
}

type JournalFormModel struct {
	CigarName string
	Rating    string
	Notes     string
	Flavors   string
	Pairing   string
}

// confirmation is a pending action awaiting y/n.
type confirmation struct {
	prompt string
	action func() error
	done   string
}

// Option configures a Model.
type Option func(*Model)

// WithBeforeClear runs fn before the clear-all action wipes the store, e.g. to take a backup.
func WithBeforeClear(fn func()) Option {
	return func(m *Model) { m.beforeClear = fn }
}

type Model struct {
	ctx        context.Context
	store      *storage.Store
	membership *membership.Service
	recommend  *recommend.Service

	state    SessionState
	returnTo SessionState
	keys     KeyMap
	help     help.Model

	cigarList   records.Model
	journalList records.Model
	summary     summary.Summary
	status      membership.Status
	discoverIdx int

	form        *huh.Form
	cigarForm   *CigarFormModel
	journalForm *JournalFormModel
	editingID   string
	formError   string

	confirm     *confirmation
	beforeClear func()

	message  string
	isError  bool
	quitting bool
	width    int
	height   int
}

func NewModel(ctx context.Context, store *storage.Store, opts ...Option) Model {
	m := Model{
		ctx:         ctx,
		store:       store,
		membership:  membership.New(store),
		recommend:   recommend.New(store),
		state:       StateHome,
		keys:        DefaultKeyMap(),
		help:        help.New(),
		cigarList:   records.New(kindCigars, "\n  Your humidor is empty.\n  Press 'a' to add a cigar.", nil, 0, 0),
		journalList: records.New(kindJournal, "\n  No journal entries yet.\n  Press 'a' to log a smoke.", nil, 0, 0),
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.refresh()
	return m
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	switch m.state {
	case StateHumidor, StateJournal:
		keys = append(keys, m.keys.Add, m.keys.Edit, m.keys.Delete)
	case StateDiscover:
		keys = append(keys, m.keys.Enter)
	case StateProfile:
		keys = append(keys, m.keys.Premium, m.keys.Claim, m.keys.Clear)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help}
	navigation := []key.Binding{m.keys.Up, m.keys.Down, m.keys.Left, m.keys.Right, m.keys.Enter}

	var actions []key.Binding
	switch m.state {
	case StateHumidor, StateJournal:
		actions = []key.Binding{m.keys.Add, m.keys.Edit, m.keys.Delete}
	case StateProfile:
		actions = []key.Binding{m.keys.Premium, m.keys.Claim, m.keys.Clear}
	}

	return [][]key.Binding{global, navigation, actions}
}

func (m Model) Init() tea.Cmd {
	return nil
}
