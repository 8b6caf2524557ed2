// ABOUTME: Contact form component for the create and edit pages
// ABOUTME: Captures name, e-mail, phone and category with inline validation
package contactform

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/harperreed/rolodex/models"
)

// Field identifies a focusable element of the form.
type Field int

const (
	FieldName Field = iota
	FieldEmail
	FieldPhone
	FieldCategory
	FieldSubmit
	fieldCount
)

// SubmitMsg is emitted when the user submits a valid form.
type SubmitMsg struct {
	Data models.ContactFormData
}

var (
	labelStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	focusStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("170")).Bold(true)
	buttonStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Background(lipgloss.Color("62")).Padding(0, 2)
	buttonOffStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Background(lipgloss.Color("237")).Padding(0, 2)
)

// Form is the contact form. Initial values are passed in at construction;
// there is no way to push values into a live form other than Reset.
type Form struct {
	inputs      [3]textinput.Model
	buttonLabel string
	initial     models.ContactFormData

	categories        []models.Category
	categoriesLoading bool
	categoryIdx       int
	// categoryTouched is set once the user picks a category. Until then an
	// initial category missing from the options is submitted unchanged.
	categoryTouched bool

	focus      Field
	errors     map[Field]string
	submitting bool
}

// New builds a form seeded with initial.
func New(buttonLabel string, initial models.ContactFormData) *Form {
	f := &Form{
		buttonLabel:       buttonLabel,
		initial:           initial,
		categoriesLoading: true,
		categoryIdx:       -1,
		errors:            map[Field]string{},
	}

	placeholders := [3]string{"Name *", "E-mail", "Phone"}
	limits := [3]int{100, 100, 15}
	for i := range f.inputs {
		in := textinput.New()
		in.Placeholder = placeholders[i]
		in.CharLimit = limits[i]
		in.Width = 40
		f.inputs[i] = in
	}
	f.fill(initial)
	f.updateFocus()
	return f
}

func (f *Form) fill(data models.ContactFormData) {
	f.inputs[FieldName].SetValue(data.Name)
	f.inputs[FieldEmail].SetValue(data.Email)
	f.inputs[FieldPhone].SetValue(FormatPhone(data.Phone))
	f.categoryIdx = f.indexOfCategory(data.CategoryID)
	f.categoryTouched = false
}

// Focus returns the cursor blink command for the focused input.
func (f *Form) Focus() tea.Cmd {
	return textinput.Blink
}

// SetCategories installs the category options and reselects the initial one.
func (f *Form) SetCategories(categories []models.Category) {
	f.categories = categories
	f.categoriesLoading = false
	f.categoryIdx = f.indexOfCategory(f.initial.CategoryID)
}

// SetCategoriesLoading toggles the category loading indicator.
func (f *Form) SetCategoriesLoading(loading bool) {
	f.categoriesLoading = loading
}

func (f *Form) indexOfCategory(id string) int {
	if id == "" {
		return -1
	}
	for i, c := range f.categories {
		if c.ID == id {
			return i
		}
	}
	return -1
}

// SetSubmitting marks a submit as in flight; further submits are ignored.
func (f *Form) SetSubmitting(submitting bool) {
	f.submitting = submitting
}

func (f *Form) Submitting() bool { return f.submitting }

// Reset restores the initial values and clears errors.
func (f *Form) Reset() {
	f.fill(f.initial)
	f.errors = map[Field]string{}
	f.focus = FieldName
	f.updateFocus()
}

// Clear empties every field, for forms that start over after a successful create.
func (f *Form) Clear() {
	f.initial = models.ContactFormData{}
	f.Reset()
}

// Values returns the current field values.
func (f *Form) Values() models.ContactFormData {
	data := models.ContactFormData{
		Name:  f.inputs[FieldName].Value(),
		Email: f.inputs[FieldEmail].Value(),
		Phone: f.inputs[FieldPhone].Value(),
	}
	switch {
	case f.categoryIdx >= 0 && f.categoryIdx < len(f.categories):
		data.CategoryID = f.categories[f.categoryIdx].ID
	case !f.categoryTouched:
		data.CategoryID = f.initial.CategoryID
	}
	return data
}

// keepsUnlistedCategory reports whether the initial category is kept
// although it is not among the options.
func (f *Form) keepsUnlistedCategory() bool {
	return !f.categoryTouched && f.categoryIdx < 0 && f.initial.CategoryID != ""
}

// Errors returns the current validation errors by field.
func (f *Form) Errors() map[Field]string {
	out := make(map[Field]string, len(f.errors))
	for k, v := range f.errors {
		out[k] = v
	}
	return out
}

// Valid reports whether the current values would be accepted.
func (f *Form) Valid() bool {
	return validateName(f.inputs[FieldName].Value()) == "" &&
		validateEmail(f.inputs[FieldEmail].Value()) == ""
}

// FocusedField returns the element that has focus.
func (f *Form) FocusedField() Field { return f.focus }

// Update handles keys for the form.
func (f *Form) Update(msg tea.Msg) tea.Cmd {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		if f.focus < FieldCategory {
			var cmd tea.Cmd
			f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
			return cmd
		}
		return nil
	}

	switch key.String() {
	case "tab", "down":
		f.focus = (f.focus + 1) % fieldCount
		f.updateFocus()
		return nil
	case "shift+tab", "up":
		f.focus = (f.focus + fieldCount - 1) % fieldCount
		f.updateFocus()
		return nil
	case "enter":
		return f.submit()
	}

	if f.focus == FieldCategory {
		switch key.String() {
		case "left", "h":
			f.cycleCategory(-1)
		case "right", "l", " ":
			f.cycleCategory(1)
		}
		return nil
	}
	if f.focus == FieldSubmit {
		return nil
	}

	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(key)
	f.afterChange(f.focus)
	return cmd
}

func (f *Form) afterChange(field Field) {
	switch field {
	case FieldName:
		f.setError(FieldName, validateName(f.inputs[FieldName].Value()))
	case FieldEmail:
		f.setError(FieldEmail, validateEmail(f.inputs[FieldEmail].Value()))
	case FieldPhone:
		v := f.inputs[FieldPhone].Value()
		if masked := FormatPhone(v); masked != v {
			f.inputs[FieldPhone].SetValue(masked)
			f.inputs[FieldPhone].CursorEnd()
		}
	}
}

func (f *Form) setError(field Field, msg string) {
	if msg == "" {
		delete(f.errors, field)
		return
	}
	f.errors[field] = msg
}

// cycleCategory steps through "no category" (-1) and each category.
func (f *Form) cycleCategory(step int) {
	if f.categoriesLoading {
		return
	}
	n := len(f.categories) + 1
	pos := (f.categoryIdx + 1 + step + n) % n
	f.categoryIdx = pos - 1
	f.categoryTouched = true
}

func (f *Form) submit() tea.Cmd {
	if f.submitting {
		return nil
	}
	f.setError(FieldName, validateName(f.inputs[FieldName].Value()))
	f.setError(FieldEmail, validateEmail(f.inputs[FieldEmail].Value()))
	if len(f.errors) > 0 {
		return nil
	}

	data := f.Values()
	return func() tea.Msg { return SubmitMsg{Data: data} }
}

func (f *Form) updateFocus() {
	for i := range f.inputs {
		if Field(i) == f.focus {
			f.inputs[i].Focus()
		} else {
			f.inputs[i].Blur()
		}
	}
}

// View renders the form.
func (f *Form) View() string {
	var s strings.Builder

	for i := range f.inputs {
		field := Field(i)
		s.WriteString(f.cursor(field))
		s.WriteString(f.inputs[i].View())
		s.WriteString("\n")
		if msg, ok := f.errors[field]; ok {
			s.WriteString("  " + errorStyle.Render(msg) + "\n")
		}
	}

	s.WriteString(f.cursor(FieldCategory))
	s.WriteString(labelStyle.Render("Category: "))
	s.WriteString(f.categoryLabel())
	s.WriteString("\n\n")

	s.WriteString(f.cursor(FieldSubmit))
	label := f.buttonLabel
	if f.submitting {
		label = "Saving..."
	}
	if f.Valid() && !f.submitting {
		s.WriteString(buttonStyle.Render(label))
	} else {
		s.WriteString(buttonOffStyle.Render(label))
	}
	s.WriteString("\n")

	return s.String()
}

func (f *Form) categoryLabel() string {
	if f.categoriesLoading {
		return labelStyle.Render("loading...")
	}
	name := "No category"
	switch {
	case f.categoryIdx >= 0 && f.categoryIdx < len(f.categories):
		name = f.categories[f.categoryIdx].Name
	case f.keepsUnlistedCategory():
		name = "Unchanged"
	}
	if f.focus == FieldCategory {
		return focusStyle.Render("‹ " + name + " ›")
	}
	return name
}

func (f *Form) cursor(field Field) string {
	if f.focus == field {
		return focusStyle.Render("> ")
	}
	return "  "
}
