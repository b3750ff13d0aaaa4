package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/akyairhashvil/crewboard/internal/config"
	"github.com/akyairhashvil/crewboard/internal/models"
	"github.com/akyairhashvil/crewboard/internal/timeline"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const dateLayout = "2006-01-02"

const (
	fieldTitle = iota
	fieldProject
	fieldEnd
	fieldDifficulty
	fieldDescription
	fieldCount
)

var fieldLabels = [fieldCount]string{"Title", "Project", "Ends", "Difficulty", "Notes"}

// AddTaskState is the add-task form, prefilled with the clicked row and day.
type AddTaskState struct {
	RowID    string
	Employee string
	Date     time.Time

	inputs [fieldCount]textinput.Model
	focus  int
	err    error
}

func (s *AddTaskState) Type() ModalType { return ModalAddTask }

func newAddTaskState(rowID, employee string, date time.Time) *AddTaskState {
	s := &AddTaskState{RowID: rowID, Employee: employee, Date: timeline.Midnight(date)}
	for i := range s.inputs {
		ti := textinput.New()
		ti.Width = 40
		s.inputs[i] = ti
	}
	s.inputs[fieldTitle].Placeholder = "New task..."
	s.inputs[fieldTitle].CharLimit = config.MaxTitleLength
	s.inputs[fieldProject].Placeholder = "Project (optional)"
	s.inputs[fieldEnd].Placeholder = dateLayout
	s.inputs[fieldEnd].CharLimit = len(dateLayout)
	s.inputs[fieldEnd].SetValue(s.Date.Format(dateLayout))
	s.inputs[fieldDifficulty].Placeholder = "easy | medium | hard"
	s.inputs[fieldDifficulty].SetValue(string(models.DifficultyMedium))
	s.inputs[fieldDescription].Placeholder = "Description (optional)"
	s.inputs[fieldDescription].CharLimit = config.MaxDescriptionLength
	s.inputs[fieldTitle].Focus()
	return s
}

// Focused is the index of the focused field.
func (s *AddTaskState) Focused() int { return s.focus }

// Value returns the raw text of a field.
func (s *AddTaskState) Value(field int) string { return s.inputs[field].Value() }

// SetValue replaces the text of a field.
func (s *AddTaskState) SetValue(field int, v string) { s.inputs[field].SetValue(v) }

func (s *AddTaskState) Err() error { return s.err }

func (s *AddTaskState) moveFocus(step int) {
	s.inputs[s.focus].Blur()
	s.focus = (s.focus + step + fieldCount) % fieldCount
	s.inputs[s.focus].Focus()
}

// Update feeds a key to the form. It reports whether the user submitted or
// dismissed it.
func (s *AddTaskState) Update(msg tea.KeyMsg) (submit, cancel bool, cmd tea.Cmd) {
	switch msg.String() {
	case "esc":
		return false, true, nil
	case "enter":
		return true, false, nil
	case "tab", "down":
		s.moveFocus(1)
		return false, false, nil
	case "shift+tab", "up":
		s.moveFocus(-1)
		return false, false, nil
	}
	s.inputs[s.focus], cmd = s.inputs[s.focus].Update(msg)
	return false, false, cmd
}

// Draft validates the form. The task starts on the clicked day.
func (s *AddTaskState) Draft() (timeline.TaskDraft, error) {
	title := strings.TrimSpace(s.Value(fieldTitle))
	if title == "" {
		return timeline.TaskDraft{}, timeline.ErrEmptyTitle
	}
	end := s.Date
	if raw := strings.TrimSpace(s.Value(fieldEnd)); raw != "" {
		parsed, err := time.ParseInLocation(dateLayout, raw, s.Date.Location())
		if err != nil {
			return timeline.TaskDraft{}, fmt.Errorf("end date must look like %s", dateLayout)
		}
		if timeline.DiffDays(s.Date, parsed) < 0 {
			return timeline.TaskDraft{}, fmt.Errorf("end date is before %s", s.Date.Format(dateLayout))
		}
		end = parsed
	}
	difficulty, err := parseDifficulty(s.Value(fieldDifficulty))
	if err != nil {
		return timeline.TaskDraft{}, err
	}
	return timeline.TaskDraft{
		Title:       title,
		Description: strings.TrimSpace(s.Value(fieldDescription)),
		ProjectRef:  strings.TrimSpace(s.Value(fieldProject)),
		Difficulty:  difficulty,
		Start:       s.Date,
		End:         end,
	}, nil
}

func parseDifficulty(raw string) (models.Difficulty, error) {
	switch d := models.Difficulty(strings.ToLower(strings.TrimSpace(raw))); d {
	case "":
		return models.DifficultyMedium, nil
	case models.DifficultyEasy, models.DifficultyMedium, models.DifficultyHard:
		return d, nil
	}
	return "", fmt.Errorf("unknown difficulty %q", raw)
}

func (s *AddTaskState) View(theme Theme) string {
	var b strings.Builder
	b.WriteString(theme.Header.Render(fmt.Sprintf("New task for %s on %s", s.Employee, s.Date.Format("Mon Jan 2"))))
	b.WriteString("\n\n")
	for i := range s.inputs {
		label := fmt.Sprintf("%-11s", fieldLabels[i])
		if i == s.focus {
			label = theme.Focused.Render(label)
		} else {
			label = theme.Dim.Render(label)
		}
		b.WriteString(label + s.inputs[i].View() + "\n")
	}
	if s.err != nil {
		b.WriteString("\n" + theme.Error.Render(s.err.Error()) + "\n")
	}
	b.WriteString("\n" + theme.Dim.Render("[tab] next  [enter] save  [esc] cancel"))
	return theme.Input.Width(64).Render(b.String())
}
