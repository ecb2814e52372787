package itemform

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/workdesk/internal/model"
	"github.com/nhle/workdesk/internal/theme"
	"github.com/nhle/workdesk/internal/ui"
	"github.com/nhle/workdesk/internal/ui/itemlist"
	"github.com/nhle/workdesk/internal/workitem"
)

// dateLayout is the layout typed into the date field.
const dateLayout = "2006-01-02"

// CreateMsg is dispatched when the create form is submitted.
type CreateMsg struct {
	Input workitem.SaveInput
}

// UpdateMsg is dispatched when the edit form is submitted. Original is the
// item as it was when editing started.
type UpdateMsg struct {
	Original model.WorkItem
	Input    workitem.SaveInput
}

// CancelMsg is dispatched when the user cancels the form.
type CancelMsg struct{}

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	date           string
	workBy         string
	workOfType     string
	status         string
	customerName   string
	passportNumber string
	trackingNumber string
	mobileNumber   string
	salesPrice     string
	advance        string
}

// Model is the Bubble Tea model for the work item create/edit form.
type Model struct {
	form     *huh.Form
	fb       *formBindings
	editMode bool
	original model.WorkItem
	options  model.Options
	width    int
	height   int
}

// New creates a new item form model.
func New(width, height int) Model {
	return Model{
		fb:     &formBindings{},
		width:  width,
		height: height,
	}
}

// SetOptions sets the values offered by the selectors and suggestions.
func (m *Model) SetOptions(opts model.Options) {
	m.options = opts
}

// StartCreate initializes the form for a new item dated today.
func (m *Model) StartCreate(today time.Time) tea.Cmd {
	m.editMode = false
	m.original = model.WorkItem{}
	*m.fb = formBindings{
		date:   today.Format(dateLayout),
		status: model.StatusUnderProcessing,
	}
	if len(m.options.WorkBy) > 0 {
		m.fb.workBy = m.options.WorkBy[0]
	}
	m.form = m.buildForm()
	return m.form.Init()
}

// StartEdit initializes the form with the fields of w.
func (m *Model) StartEdit(w model.WorkItem) tea.Cmd {
	m.editMode = true
	m.original = w
	*m.fb = formBindings{
		workBy:         w.WorkBy,
		workOfType:     w.WorkOfType,
		status:         w.Status,
		customerName:   w.CustomerName,
		passportNumber: w.PassportNumber,
		trackingNumber: w.TrackingNumber,
		mobileNumber:   w.MobileWhatsappNumber,
		salesPrice:     amountText(w.SalesPrice),
		advance:        amountText(w.Advance),
	}
	if w.HasDate() {
		m.fb.date = w.DateOfWork.Format(dateLayout)
	}
	m.form = m.buildForm()
	return m.form.Init()
}

// Update handles messages for the item form.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.form = nil
		return m, m.handleSubmit()
	}
	if m.form.State == huh.StateAborted {
		m.form = nil
		return m, func() tea.Msg { return CancelMsg{} }
	}

	return m, cmd
}

// View renders the item form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	titleText := "New Work Item"
	if m.editMode {
		titleText = "Edit Work Item"
	}

	due := theme.DimmedStyle.Render("Due: " + m.dueText())
	content := lipgloss.JoinVertical(lipgloss.Left,
		theme.TitleStyle.Render(titleText),
		due,
		"",
		m.form.View(),
	)

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(content)
}

// dueText previews sales price minus advance while typing.
func (m Model) dueText() string {
	sales, err1 := model.ParseAmount(m.fb.salesPrice)
	advance, err2 := model.ParseAmount(m.fb.advance)
	if err1 != nil || err2 != nil {
		return "-"
	}
	return itemlist.FormatMoney(model.ComputeDue(sales, advance))
}

// SetSize updates the form dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *Model) buildForm() *huh.Form {
	details := huh.NewGroup(
		huh.NewInput().
			Title("Date of Work").
			Placeholder("YYYY-MM-DD").
			Value(&m.fb.date).
			Validate(validateDate),
		huh.NewInput().
			Title("Work By").
			Suggestions(m.options.WorkBy).
			Value(&m.fb.workBy),
		huh.NewInput().
			Title("Type of Work").
			Suggestions(m.options.WorkTypes).
			Value(&m.fb.workOfType).
			Validate(validateRequired("Type of work")),
		m.statusField(),
	)

	customer := huh.NewGroup(
		huh.NewInput().
			Title("Customer Name").
			Value(&m.fb.customerName).
			Validate(validateRequired("Customer name")),
		huh.NewInput().
			Title("Passport Number").
			Value(&m.fb.passportNumber),
		huh.NewInput().
			Title("Tracking Number").
			Value(&m.fb.trackingNumber),
		huh.NewInput().
			Title("Mobile / WhatsApp").
			Value(&m.fb.mobileNumber),
	)

	money := huh.NewGroup(
		huh.NewInput().
			Title("Sales Price").
			Placeholder("0").
			Value(&m.fb.salesPrice).
			Validate(validateAmount),
		huh.NewInput().
			Title("Advance").
			Placeholder("0").
			Value(&m.fb.advance).
			Validate(validateAmount),
	)

	return huh.NewForm(details, customer, money).
		WithWidth(m.formWidth()).
		WithHeight(m.formHeight()).
		WithKeyMap(ui.FormKeyMap())
}

// statusField offers every registered status. A stored status missing
// from the registry is kept as an option so editing does not lose it.
func (m *Model) statusField() huh.Field {
	statuses := model.UnionStrings(m.options.Statuses, []string{m.fb.status})
	opts := make([]huh.Option[string], 0, len(statuses))
	for _, s := range statuses {
		if s == "" {
			continue
		}
		opts = append(opts, huh.NewOption(s, s))
	}
	return huh.NewSelect[string]().
		Title("Status").
		Options(opts...).
		Value(&m.fb.status)
}

func (m Model) handleSubmit() tea.Cmd {
	in := m.input()
	if m.editMode {
		original := m.original
		return func() tea.Msg { return UpdateMsg{Original: original, Input: in} }
	}
	return func() tea.Msg { return CreateMsg{Input: in} }
}

// input converts the bound strings. Fields were validated by the form.
func (m Model) input() workitem.SaveInput {
	in := workitem.SaveInput{
		WorkBy:               m.fb.workBy,
		WorkOfType:           m.fb.workOfType,
		Status:               m.fb.status,
		CustomerName:         m.fb.customerName,
		PassportNumber:       m.fb.passportNumber,
		TrackingNumber:       m.fb.trackingNumber,
		MobileWhatsappNumber: m.fb.mobileNumber,
	}
	if t, err := time.ParseInLocation(dateLayout, strings.TrimSpace(m.fb.date), time.Local); err == nil {
		in.DateOfWork = t
	}
	in.SalesPrice, _ = model.ParseAmount(m.fb.salesPrice)
	in.Advance, _ = model.ParseAmount(m.fb.advance)
	return in
}

func (m Model) formWidth() int {
	return min(max(m.width-4, 40), 100)
}

func (m Model) formHeight() int {
	return max(m.height-6, 10)
}

func amountText(v float64) string {
	if v == 0 {
		return ""
	}
	return fmt.Sprintf("%g", v)
}

func validateRequired(fieldName string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", fieldName)
		}
		return nil
	}
}

func validateDate(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return fmt.Errorf("date of work is required")
	}
	if _, err := time.Parse(dateLayout, s); err != nil {
		return fmt.Errorf("invalid date format, use YYYY-MM-DD")
	}
	return nil
}

func validateAmount(s string) error {
	if _, err := model.ParseAmount(s); err != nil {
		return fmt.Errorf("enter a number")
	}
	return nil
}
