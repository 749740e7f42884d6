package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/humidor/internal/cli"
	"github.com/julianstephens/humidor/internal/membership"
	"github.com/julianstephens/humidor/internal/recommend"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string

	switch m.state {
	case StateHome:
		content = m.viewHome()
	case StateHumidor:
		content = docStyle.Render(m.cigarList.View())
	case StateJournal:
		content = docStyle.Render(m.journalList.View())
	case StateDiscover:
		content = m.viewDiscover()
	case StateProfile:
		content = m.viewProfile()
	case StateEditCigar, StateEditJournal:
		content = m.viewForm()
	case StateConfirm:
		content = m.viewConfirm()
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		content,
		m.viewMessage(),
		m.help.View(m),
	)
}

func (m Model) viewTabs() string {
	active := m.state
	if active >= tabCount {
		active = m.returnTo
	}
	var tabs []string
	for i, title := range tabTitles {
		if active == SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewMessage() string {
	if m.message == "" {
		return ""
	}
	if m.isError {
		return dangerStyle.Render(m.message)
	}
	return successStyle.Render(m.message)
}

func (m Model) viewHome() string {
	s := m.summary
	var b strings.Builder

	title := titleStyle.Render("Your Humidor")
	if s.Premium {
		title += " " + premiumStyle.Render("★ Premium")
	}
	b.WriteString(title + "\n\n")

	fmt.Fprintf(&b, "Cigars          %d\n", s.CigarCount)
	fmt.Fprintf(&b, "Journal entries %d\n", s.JournalCount)
	if s.AverageRating != nil {
		fmt.Fprintf(&b, "Average rating  %.1f/5 (%d rated)\n", *s.AverageRating, s.RatedCount)
	} else {
		b.WriteString("Average rating  -\n")
	}

	if len(s.Origins) > 0 {
		b.WriteString("\n" + titleStyle.Render("Origins") + "\n")
		for _, o := range s.Origins {
			fmt.Fprintf(&b, "  %-20s %d\n", o.Origin, o.Count)
		}
	}

	if e := s.LatestEntry; e != nil {
		b.WriteString("\n" + titleStyle.Render("Last smoked") + "\n")
		fmt.Fprintf(&b, "  %s, %s  %s\n", e.CigarName, cli.FormatDate(e.Date), cli.FormatRating(e.Rating))
	}

	if s.CigarCount == 0 && s.JournalCount == 0 {
		b.WriteString("\n" + mutedStyle.Render("Start by adding a cigar on the Humidor tab."))
	}
	return docStyle.Render(b.String())
}

func (m Model) viewDiscover() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Recommended for you") + "\n\n")

	if !m.status.Premium {
		b.WriteString(premiumStyle.Render("Premium feature") + "\n")
		b.WriteString("Upgrade on the Profile tab to unlock recommendations.\n")
		return docStyle.Render(b.String())
	}

	for i, r := range recommend.Catalog() {
		cursor := "  "
		if i == m.discoverIdx {
			cursor = premiumStyle.Render("> ")
		}
		fmt.Fprintf(&b, "%s%s %s  %.1f/5  %s\n", cursor, r.Brand, r.Name, r.Rating, r.Price)
		b.WriteString(mutedStyle.Render(fmt.Sprintf("    %s | %s | %s", r.Origin, r.Strength, r.FlavorProfile)) + "\n")
		b.WriteString(mutedStyle.Render("    "+r.Reason) + "\n\n")
	}
	return docStyle.Render(b.String())
}

func (m Model) viewProfile() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Membership") + "\n\n")

	if m.status.Premium {
		b.WriteString(premiumStyle.Render("★ Premium member") + "\n\n")
		if m.status.HumidifierClaimed {
			b.WriteString("Free humidifier: claimed\n")
		} else {
			b.WriteString("Free humidifier: available, press 'c' to claim\n")
		}
	} else {
		b.WriteString("Free plan. Press 'p' to upgrade and unlock:\n")
		for _, benefit := range membership.Benefits {
			b.WriteString("  • " + benefit + "\n")
		}
	}

	b.WriteString("\n" + mutedStyle.Render("Press 'X' to clear all data."))
	return docStyle.Render(b.String())
}

func (m Model) viewForm() string {
	view := m.form.View()
	if m.formError != "" {
		view = lipgloss.JoinVertical(lipgloss.Left, view, dangerStyle.Render(m.formError))
	}
	return docStyle.Render(view)
}

func (m Model) viewConfirm() string {
	prompt := ""
	if m.confirm != nil {
		prompt = m.confirm.prompt
	}
	return lipgloss.Place(m.width, max(m.height-4, 5),
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			dangerStyle.Render(prompt),
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}
