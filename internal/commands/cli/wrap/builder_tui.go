package wrap

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/andrei-cloud/go_keywrap/internal/cli"
)

const (
	fieldTypeRadio = iota
	fieldTypeHex
)

// Field names; the header field only appears for belt-kwp.
const (
	fieldOperation = "Operation"
	fieldAlgorithm = "Algorithm"
	fieldKEK       = "KEK"
	fieldHeader    = "Header"
	fieldData      = "Data"
)

type option struct {
	value       string
	description string
}

type fieldConfig struct {
	name        string
	description string
	fieldType   int
	options     []option // For radio fields.
	selected    int      // For radio fields.
	textValue   string   // For hex fields.
}

type builderModel struct {
	currentField int
	fields       []fieldConfig
	errMsg       string
	done         bool
	cancelled    bool
}

// newBuilderModel creates a new TUI model for assembling a wrap operation.
func newBuilderModel() builderModel {
	fields := []fieldConfig{
		{
			name:        fieldOperation,
			description: "Direction of the operation",
			fieldType:   fieldTypeRadio,
			options: []option{
				{opWrap, "Protect key data under the KEK"},
				{opUnwrap, "Recover key data from a wrapped value"},
			},
			selected: 0, // Default to wrap.
		},
		{
			name:        fieldAlgorithm,
			description: "Wrap algorithm",
			fieldType:   fieldTypeRadio,
			options: []option{
				{cli.AlgAESKW, "AES Key Wrap (RFC 3394)"},
				{cli.AlgAESKWP, "AES Key Wrap with Padding (RFC 5649)"},
				{cli.AlgBeltKWP, "BelT key wrap (STB 34.101.31-2020)"},
			},
			selected: 0, // Default to AES-KW.
		},
		{
			name:        fieldKEK,
			description: "Key-Encrypting-Key in hex (32, 48 or 64 characters)",
			fieldType:   fieldTypeHex,
		},
		{
			name:        fieldHeader,
			description: "BelT public header in hex (32 characters)",
			fieldType:   fieldTypeHex,
		},
		{
			name:        fieldData,
			description: "Key data (wrap) or wrapped value (unwrap) in hex",
			fieldType:   fieldTypeHex,
		},
	}

	return builderModel{
		currentField: 0,
		fields:       fields,
	}
}

// Init initializes the model.
func (m builderModel) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model state.
func (m builderModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		currentField := &m.fields[m.currentField]
		m.errMsg = ""

		switch msg.String() {
		case "ctrl+c", "esc":
			m.cancelled = true

			return m, tea.Quit
		case "enter":
			if err := m.validateCurrent(); err != "" {
				m.errMsg = err

				return m, nil
			}
			if m.isLastField() {
				m.done = true

				return m, tea.Quit
			}
			m.advanceField()
		case "tab":
			// Move to next field without validation.
			m.advanceField()
		case "shift+tab":
			m.retreatField()
		case "up", "k":
			if currentField.fieldType == fieldTypeRadio && currentField.selected > 0 {
				currentField.selected--
			}
		case "down", "j":
			if currentField.fieldType == fieldTypeRadio &&
				currentField.selected < len(currentField.options)-1 {
				currentField.selected++
			}
		case "backspace":
			if currentField.fieldType == fieldTypeHex {
				m.handleBackspace()
			}
		default:
			// Handle hex character input for hex fields.
			if currentField.fieldType == fieldTypeHex && len(msg.String()) == 1 {
				m.handleHexInput(msg.String()[0])
			}
		}
	}

	return m, nil
}

// headerNeeded reports whether the header field applies to the selected
// algorithm.
func (m *builderModel) headerNeeded() bool {
	return m.algorithm() == cli.AlgBeltKWP
}

// algorithm returns the currently selected algorithm identifier.
func (m *builderModel) algorithm() string {
	for _, f := range m.fields {
		if f.name == fieldAlgorithm {
			return f.options[f.selected].value
		}
	}

	return ""
}

// visibleFields returns the indexes of the fields the operator walks
// through for the current selection.
func (m *builderModel) visibleFields() []int {
	visible := make([]int, 0, len(m.fields))
	for i, f := range m.fields {
		if f.name == fieldHeader && !m.headerNeeded() {
			continue
		}
		visible = append(visible, i)
	}

	return visible
}

// isLastField reports whether the current field is the final visible one.
func (m *builderModel) isLastField() bool {
	visible := m.visibleFields()

	return m.currentField == visible[len(visible)-1]
}

// advanceField moves to the next visible field.
func (m *builderModel) advanceField() {
	visible := m.visibleFields()
	for _, idx := range visible {
		if idx > m.currentField {
			m.currentField = idx

			return
		}
	}
}

// retreatField moves to the previous visible field.
func (m *builderModel) retreatField() {
	visible := m.visibleFields()
	for i := len(visible) - 1; i >= 0; i-- {
		if visible[i] < m.currentField {
			m.currentField = visible[i]

			return
		}
	}
}

// handleHexInput appends a hex digit to the current field, normalized to
// uppercase. Non-hex characters are ignored.
func (m *builderModel) handleHexInput(char byte) {
	currentField := &m.fields[m.currentField]
	if currentField.fieldType != fieldTypeHex {
		return
	}

	switch {
	case char >= '0' && char <= '9':
	case char >= 'A' && char <= 'F':
	case char >= 'a' && char <= 'f':
		char -= 'a' - 'A'
	default:
		return
	}

	currentField.textValue += string(char)
}

// handleBackspace removes the last character from the hex input.
func (m *builderModel) handleBackspace() {
	currentField := &m.fields[m.currentField]
	if currentField.fieldType != fieldTypeHex {
		return
	}

	if n := len(currentField.textValue); n > 0 {
		currentField.textValue = currentField.textValue[:n-1]
	}
}

// validateCurrent checks the current field before advancing and returns a
// message describing the first violation, or empty when the field is
// acceptable.
func (m *builderModel) validateCurrent() string {
	currentField := &m.fields[m.currentField]

	switch currentField.name {
	case fieldKEK:
		switch len(currentField.textValue) {
		case 32, 48, 64:
		default:
			return "KEK must be 32, 48 or 64 hex characters"
		}
		if m.algorithm() == cli.AlgBeltKWP && len(currentField.textValue) != 64 {
			return "belt-kwp requires a 64-character KEK"
		}
	case fieldHeader:
		if len(currentField.textValue) != 32 {
			return "header must be exactly 32 hex characters"
		}
	case fieldData:
		if len(currentField.textValue) == 0 || len(currentField.textValue)%2 != 0 {
			return "data must be a non-empty, even-length hex string"
		}
	}

	return ""
}

// buildRequest assembles the wrapRequest from the field state.
func (m *builderModel) buildRequest() wrapRequest {
	var req wrapRequest
	for _, field := range m.fields {
		switch field.name {
		case fieldOperation:
			req.operation = field.options[field.selected].value
		case fieldAlgorithm:
			req.algorithm = field.options[field.selected].value
		case fieldKEK:
			req.kekHex = field.textValue
		case fieldHeader:
			if m.headerNeeded() {
				req.headerHex = field.textValue
			}
		case fieldData:
			req.dataHex = field.textValue
		}
	}

	return req
}

// View renders the current state of the model.
func (m builderModel) View() string {
	if m.done {
		return "Wrap operation assembled successfully!\n"
	}

	if m.cancelled {
		return "Operation cancelled.\n"
	}

	s := "Build Wrap Operation\n"
	s += strings.Repeat("=", 50) + "\n\n"

	// Show progress across the fields that apply to the selection.
	visible := m.visibleFields()
	position := 1
	for i, idx := range visible {
		if idx == m.currentField {
			position = i + 1

			break
		}
	}
	s += fmt.Sprintf("Field %d of %d\n\n", position, len(visible))

	// Show current field.
	currentField := m.fields[m.currentField]
	s += fmt.Sprintf("▶ %s: %s\n\n", currentField.name, currentField.description)

	if currentField.fieldType == fieldTypeRadio {
		// Show radio options for current field only.
		for j, option := range currentField.options {
			selector := "  ○ "
			if j == currentField.selected {
				selector = "  ● "
			}
			s += fmt.Sprintf("%s%s - %s\n", selector, option.value, option.description)
		}
	} else {
		// Show hex input.
		s += fmt.Sprintf(
			"  [ %s_ ] (%d characters)\n",
			currentField.textValue,
			len(currentField.textValue),
		)
		s += "  Type hex digits, Backspace to delete\n"
	}

	if m.errMsg != "" {
		s += fmt.Sprintf("\n  ! %s\n", m.errMsg)
	}

	s += "\n"

	// Show summary of completed fields.
	if position > 1 {
		s += "Completed fields:\n"
		for _, idx := range visible {
			if idx >= m.currentField {
				break
			}
			field := m.fields[idx]
			if field.fieldType == fieldTypeRadio {
				s += fmt.Sprintf("  %s: %s\n", field.name, field.options[field.selected].value)
			} else {
				s += fmt.Sprintf("  %s: %s\n", field.name, field.textValue)
			}
		}
		s += "\n"
	}

	s += "Navigation:\n"
	s += "  ↑/↓ or j/k: Select option\n"
	s += "  Tab/Shift+Tab: Next/Previous field\n"
	s += "  Enter: Confirm and continue\n"
	if currentField.fieldType == fieldTypeHex {
		s += "  0-9, a-f: Hex input\n"
		s += "  Backspace: Delete character\n"
	}
	s += "  Esc or Ctrl+C: Quit\n"

	return s
}

// runBuilderTUI starts the interactive builder and returns the assembled
// request. ok is false when the operator cancelled before completing every
// field.
func runBuilderTUI() (wrapRequest, bool, error) {
	model := newBuilderModel()

	p := tea.NewProgram(model)
	finalModel, err := p.Run()
	if err != nil {
		return wrapRequest{}, false, err
	}

	m := finalModel.(builderModel)

	return m.buildRequest(), m.done && !m.cancelled, nil
}
