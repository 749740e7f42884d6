package tui

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/humidor/internal/cli"
	"github.com/julianstephens/humidor/internal/logger"
	"github.com/julianstephens/humidor/internal/membership"
	"github.com/julianstephens/humidor/internal/recommend"
	"github.com/julianstephens/humidor/internal/summary"
	"github.com/julianstephens/humidor/internal/tui/components/records"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.cigarList.SetSize(msg.Width-4, msg.Height-6)
		m.journalList.SetSize(msg.Width-4, msg.Height-6)
		return m, nil
	}

	switch m.state {
	case StateEditCigar, StateEditJournal:
		return m.updateForm(msg)
	case StateConfirm:
		return m.updateConfirm(msg)
	}

	switch msg := msg.(type) {
	case records.AddMsg:
		return m.openForm(msg.Kind, "")

	case records.EditMsg:
		return m.openForm(msg.Kind, msg.ID)

	case records.DeleteMsg:
		m.askDelete(msg.Kind, msg.ID)
		return m, nil

	case tea.KeyMsg:
		if m.listFiltering() {
			break
		}
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Tab), key.Matches(msg, m.keys.Right):
			m.setTab((m.state + 1) % tabCount)
			return m, nil
		case key.Matches(msg, m.keys.ShiftTab), key.Matches(msg, m.keys.Left):
			m.setTab((m.state - 1 + tabCount) % tabCount)
			return m, nil
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		}

		switch m.state {
		case StateDiscover:
			m.updateDiscover(msg)
			return m, nil
		case StateProfile:
			m.updateProfile(msg)
			return m, nil
		}
	}

	var cmd tea.Cmd
	switch m.state {
	case StateHumidor:
		m.cigarList, cmd = m.cigarList.Update(msg)
	case StateJournal:
		m.journalList, cmd = m.journalList.Update(msg)
	}
	return m, cmd
}

func (m *Model) setTab(s SessionState) {
	m.state = s
	m.message = ""
}

func (m Model) listFiltering() bool {
	switch m.state {
	case StateHumidor:
		return m.cigarList.Filtering()
	case StateJournal:
		return m.journalList.Filtering()
	}
	return false
}

func (m *Model) setMessage(msg string, isError bool) {
	m.message = msg
	m.isError = isError
}

func (m *Model) fail(action string, err error) {
	logger.Warn("TUI action failed", "action", action, "error", err)
	m.setMessage(fmt.Sprintf("Failed to %s: %v", action, err), true)
}

// refresh reloads every view from the store.
func (m *Model) refresh() {
	cigars := m.store.ListCigars(m.ctx)
	items := make([]records.Item, len(cigars))
	for i, c := range cigars {
		items[i] = records.Item{
			ID:    c.ID,
			Kind:  kindCigars,
			Head:  c.DisplayName(),
			Desc:  fmt.Sprintf("%s | %s | %s", cli.OrDash(c.Size), cli.OrDash(c.Origin), cli.FormatRating(c.Rating)),
			Extra: c.Origin,
		}
	}
	m.cigarList.SetItems(items)

	entries := m.store.ListJournalEntries(m.ctx)
	items = make([]records.Item, len(entries))
	for i, e := range entries {
		items[i] = records.Item{
			ID:    e.ID,
			Kind:  kindJournal,
			Head:  e.CigarName,
			Desc:  fmt.Sprintf("%s | %s | %s", cli.FormatDate(e.Date), cli.FormatRating(e.Rating), cli.OrDash(e.Flavors)),
			Extra: e.Notes,
		}
	}
	m.journalList.SetItems(items)

	m.summary = summary.Build(m.ctx, m.store)
	m.status = m.membership.Status(m.ctx)
}

func (m Model) openForm(kind, id string) (tea.Model, tea.Cmd) {
	m.editingID = id
	m.formError = ""
	m.returnTo = m.state

	switch kind {
	case kindCigars:
		title := "Add cigar"
		m.cigarForm = &CigarFormModel{}
		if id != "" {
			c, err := m.store.GetCigar(m.ctx, id)
			if err != nil {
				m.fail("open cigar", err)
				return m, nil
			}
			title = "Edit cigar"
			m.cigarForm = cigarFormFrom(c)
		}
		m.form = NewCigarForm(title, m.cigarForm)
		m.state = StateEditCigar
	case kindJournal:
		title := "New journal entry"
		m.journalForm = &JournalFormModel{}
		if id != "" {
			e, err := m.store.GetJournalEntry(m.ctx, id)
			if err != nil {
				m.fail("open journal entry", err)
				return m, nil
			}
			title = "Edit journal entry"
			m.journalForm = journalFormFrom(e)
		}
		m.form = NewJournalForm(title, m.journalForm)
		m.state = StateEditJournal
	default:
		return m, nil
	}
	return m, m.form.Init()
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.formError = ""
		m.state = m.returnTo
		return m, nil
	}

	var cmds []tea.Cmd
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}
	cmds = append(cmds, cmd)

	switch m.form.State {
	case huh.StateCompleted:
		if err := m.submitForm(); err != nil {
			// Stay in the form so the user can correct it or press esc
			m.formError = err.Error()
			m.form.State = huh.StateNormal
			return m, tea.Batch(cmds...)
		}
	case huh.StateAborted:
		m.formError = ""
		m.state = m.returnTo
	}
	return m, tea.Batch(cmds...)
}

// submitForm saves the open form and returns to the list on success.
func (m *Model) submitForm() error {
	var err error
	what := "cigar"
	if m.state == StateEditJournal {
		what = "journal entry"
		err = m.saveJournal()
	} else {
		err = m.saveCigar()
	}
	if err != nil {
		return err
	}

	verb := "Added"
	if m.editingID != "" {
		verb = "Updated"
	}
	m.refresh()
	m.formError = ""
	m.editingID = ""
	m.state = m.returnTo
	m.setMessage(fmt.Sprintf("%s %s", verb, what), false)
	return nil
}

func (m *Model) askDelete(kind, id string) {
	store, ctx := m.store, m.ctx
	c := &confirmation{}
	switch kind {
	case kindCigars:
		cigar, err := m.store.GetCigar(m.ctx, id)
		if err != nil {
			m.fail("remove cigar", err)
			return
		}
		c.prompt = fmt.Sprintf("Remove %s from your humidor?", cigar.DisplayName())
		c.done = "Removed " + cigar.DisplayName()
		c.action = func() error {
			_, err := store.RemoveCigar(ctx, id)
			return err
		}
	case kindJournal:
		entry, err := m.store.GetJournalEntry(m.ctx, id)
		if err != nil {
			m.fail("remove journal entry", err)
			return
		}
		c.prompt = fmt.Sprintf("Delete the %s entry from %s?", entry.CigarName, cli.FormatDate(entry.Date))
		c.done = "Journal entry deleted"
		c.action = func() error {
			_, err := store.RemoveJournalEntry(ctx, id)
			return err
		}
	default:
		return
	}
	m.confirm = c
	m.returnTo = m.state
	m.state = StateConfirm
}

func (m Model) updateConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch keyMsg.String() {
	case "y", "Y":
		if m.confirm != nil {
			if err := m.confirm.action(); err != nil {
				m.fail("save changes", err)
			} else {
				m.setMessage(m.confirm.done, false)
			}
			m.refresh()
		}
		m.confirm = nil
		m.state = m.returnTo
	case "n", "N", "esc":
		m.confirm = nil
		m.state = m.returnTo
	}
	return m, nil
}

func (m *Model) updateDiscover(msg tea.KeyMsg) {
	if !m.status.Premium {
		return
	}
	catalog := recommend.Catalog()
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.discoverIdx > 0 {
			m.discoverIdx--
		}
	case key.Matches(msg, m.keys.Down):
		if m.discoverIdx < len(catalog)-1 {
			m.discoverIdx++
		}
	case key.Matches(msg, m.keys.Enter):
		rec := catalog[m.discoverIdx]
		svc, ctx := m.recommend, m.ctx
		name := rec.Brand + " " + rec.Name
		m.confirm = &confirmation{
			prompt: fmt.Sprintf("Would you like to add %s to your humidor?", name),
			done:   fmt.Sprintf("Added %s to your humidor", name),
			action: func() error {
				_, err := svc.AddToHumidor(ctx, rec.ID)
				return err
			},
		}
		m.returnTo = m.state
		m.state = StateConfirm
	}
}

func (m *Model) updateProfile(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, m.keys.Premium):
		on := !m.status.Premium
		if err := m.membership.SetPremium(m.ctx, on); err != nil {
			m.fail("update premium mode", err)
			return
		}
		m.refresh()
		if on {
			m.setMessage("Welcome to Humidor Premium!", false)
		} else {
			m.setMessage("Premium disabled", false)
		}

	case key.Matches(msg, m.keys.Claim):
		err := m.membership.ClaimHumidifier(m.ctx)
		switch {
		case errors.Is(err, membership.ErrPremiumRequired):
			m.setMessage("Upgrade to premium to claim your free humidifier", true)
		case errors.Is(err, membership.ErrAlreadyClaimed):
			m.setMessage("Your free humidifier was already claimed", false)
		case err != nil:
			m.fail("claim humidifier", err)
		default:
			m.refresh()
			m.setMessage("Free humidifier claimed! It will ship within 5-7 business days.", false)
		}

	case key.Matches(msg, m.keys.Clear):
		store, ctx, beforeClear := m.store, m.ctx, m.beforeClear
		m.confirm = &confirmation{
			prompt: "Delete every cigar, journal entry and membership setting?",
			done:   "All data cleared",
			action: func() error {
				if beforeClear != nil {
					beforeClear()
				}
				return store.ClearAll(ctx)
			},
		}
		m.returnTo = m.state
		m.state = StateConfirm
	}
}
