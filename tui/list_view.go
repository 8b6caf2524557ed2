// ABOUTME: Home page listing contacts with search, sort and delete
// ABOUTME: Renders the contactlist state machine and maps keys onto its operations
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/harperreed/rolodex/contactlist"
	"github.com/harperreed/rolodex/models"
	"github.com/harperreed/rolodex/toast"
)

type homePage struct {
	list    *contactlist.List
	nav     Navigator
	search  textinput.Model
	spinner spinner.Model
	logger  *zap.Logger

	searching bool
	cursor    int
}

func newHomePage(svc Services, notifier toast.Notifier, nav Navigator, logger *zap.Logger, order models.SortOrder) *homePage {
	search := textinput.New()
	search.Placeholder = "Search contact by name..."
	search.Prompt = "/ "
	search.Width = 40

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return &homePage{
		list:    contactlist.New(svc, notifier, contactlist.WithOrder(order), contactlist.WithLogger(logger)),
		nav:     nav,
		search:  search,
		spinner: sp,
		logger:  logger,
	}
}

func (p *homePage) Init() tea.Cmd {
	return tea.Batch(p.list.Load(), p.spinner.Tick)
}

func (p *homePage) Unmount() {
	p.list.Unmount()
}

func (p *homePage) Update(msg tea.Msg) tea.Cmd {
	if p.list.Update(msg) {
		p.clampCursor()
		return nil
	}

	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		p.spinner, cmd = p.spinner.Update(msg)
		return cmd
	case tea.KeyMsg:
		if p.list.DeleteState() != contactlist.DeleteIdle {
			return p.handleModalKeys(msg)
		}
		if p.searching {
			return p.handleSearchKeys(msg)
		}
		return p.handleListKeys(msg)
	}
	return nil
}

func (p *homePage) handleListKeys(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "q":
		p.Unmount()
		return tea.Quit
	case "/":
		p.searching = true
		return p.search.Focus()
	case "esc":
		if p.list.SearchTerm() != "" {
			p.search.SetValue("")
			p.list.SetSearchTerm("")
			p.clampCursor()
		}
	case "up", "k":
		if p.cursor > 0 {
			p.cursor--
		}
	case "down", "j":
		if p.cursor < len(p.list.Filtered())-1 {
			p.cursor++
		}
	case "o":
		return p.list.ToggleSortOrder()
	case "r":
		if p.list.Status() == contactlist.StatusErrored {
			return p.list.Retry()
		}
	case "n":
		return p.nav.NavigateTo(PathNew)
	case "e", "enter":
		if c, ok := p.selected(); ok {
			return p.nav.NavigateTo(EditPath(c.ID))
		}
	case "d":
		if c, ok := p.selected(); ok {
			if err := p.list.RequestDelete(c); err != nil {
				p.logger.Debug("delete request rejected", zap.String("id", c.ID), zap.Error(err))
			}
		}
	}
	return nil
}

func (p *homePage) handleSearchKeys(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc", "enter", "down":
		p.searching = false
		p.search.Blur()
		return nil
	}

	var cmd tea.Cmd
	p.search, cmd = p.search.Update(msg)
	p.list.SetSearchTerm(p.search.Value())
	p.clampCursor()
	return cmd
}

// handleModalKeys blocks everything but the confirm dialog's own keys.
func (p *homePage) handleModalKeys(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "y", "Y", "enter":
		return p.list.ConfirmDelete()
	case "n", "N", "esc":
		p.list.CancelDelete()
	}
	return nil
}

func (p *homePage) selected() (models.Contact, bool) {
	filtered := p.list.Filtered()
	if p.cursor < 0 || p.cursor >= len(filtered) {
		return models.Contact{}, false
	}
	return filtered[p.cursor], true
}

func (p *homePage) clampCursor() {
	n := len(p.list.Filtered())
	if p.cursor >= n {
		p.cursor = n - 1
	}
	if p.cursor < 0 {
		p.cursor = 0
	}
}

func (p *homePage) View() string {
	var s strings.Builder

	if p.list.Loading() {
		s.WriteString(p.spinner.View() + " Loading...\n\n")
	}

	if len(p.list.Contacts()) > 0 || p.searching {
		s.WriteString(p.search.View())
		s.WriteString("\n\n")
	}

	s.WriteString(p.renderHeader())
	s.WriteString("\n")

	switch p.list.Display() {
	case contactlist.DisplayError:
		s.WriteString(errorStyle.Render("An error occurred while fetching your contacts!"))
		s.WriteString("\n")
		s.WriteString(mutedStyle.Render("press r to try again"))
		s.WriteString("\n")
	case contactlist.DisplayPending:
	case contactlist.DisplayEmpty:
		s.WriteString(mutedStyle.Render("You don't have any contacts yet! Press n to add your first one."))
		s.WriteString("\n")
	case contactlist.DisplayNoMatches:
		s.WriteString(mutedStyle.Render(fmt.Sprintf("No results found for %q.", p.list.SearchTerm())))
		s.WriteString("\n")
	case contactlist.DisplayContacts:
		s.WriteString(p.renderRows())
	}

	if pending := p.list.PendingDelete(); pending != nil {
		s.WriteString("\n")
		s.WriteString(renderConfirmDelete(*pending, p.list.DeleteState() == contactlist.Deleting))
		s.WriteString("\n")
	}

	s.WriteString(helpStyle.Render(p.help()))
	return s.String()
}

func (p *homePage) renderHeader() string {
	n := len(p.list.Filtered())
	noun := "contacts"
	if n == 1 {
		noun = "contact"
	}
	arrow := "↑"
	if p.list.Order() == models.SortDesc {
		arrow = "↓"
	}

	if p.list.Display() != contactlist.DisplayContacts {
		return titleStyle.Render("Contacts")
	}
	return titleStyle.Render(fmt.Sprintf("%d %s", n, noun)) + "\n" + mutedStyle.Render("Name "+arrow)
}

func (p *homePage) renderRows() string {
	var s strings.Builder
	for i, c := range p.list.Filtered() {
		line := c.Name
		if cat := c.Category(); cat != "" {
			line += " " + badgeStyle.Render(cat)
		}
		details := []string{}
		if c.Email != "" {
			details = append(details, c.Email)
		}
		if c.Phone != "" {
			details = append(details, c.Phone)
		}

		if i == p.cursor {
			s.WriteString(selectedStyle.Render("> " + line))
		} else {
			s.WriteString("  " + line)
		}
		s.WriteString("\n")
		if len(details) > 0 {
			s.WriteString("    " + mutedStyle.Render(strings.Join(details, "  ")) + "\n")
		}
	}
	return s.String()
}

func (p *homePage) help() string {
	switch {
	case p.list.DeleteState() != contactlist.DeleteIdle:
		return "y: confirm • n/esc: cancel"
	case p.searching:
		return "type to filter • enter/esc: done"
	case p.list.Status() == contactlist.StatusErrored:
		return "r: retry • n: new • q: quit"
	}
	return "/: search • o: sort • n: new • e: edit • d: delete • q: quit"
}
