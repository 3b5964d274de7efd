package ui

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"casex/internal/domain"
	"casex/internal/storage"
)

// maxTraceLines caps the locations shown for one failure
const maxTraceLines = 10

// ErrorViewer displays case failures in an interactive TUI. Toggling a
// failure's resolved flag is written back through the store.
type ErrorViewer struct {
	storage storage.Storage
}

// NewErrorViewer creates a new ErrorViewer
func NewErrorViewer(st storage.Storage) *ErrorViewer {
	return &ErrorViewer{storage: st}
}

// View displays case failures in an interactive TUI
func (ev *ErrorViewer) View(results *domain.TestResultsOutput) error {
	if len(results.Details) == 0 {
		color.Green("✓ No case failures found!")
		return nil
	}

	app := tview.NewApplication()
	s := &failureScreen{results: results, store: ev.storage}
	s.build(app)

	if err := app.SetRoot(s.layout, true).SetFocus(s.list).Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return s.saveErr
}

// failureScreen holds the widgets and state of one viewer session
type failureScreen struct {
	results *domain.TestResultsOutput
	store   storage.Storage
	saveErr error

	list    *tview.List
	header  *tview.TextView
	stats   *tview.TextView
	details *tview.TextView
	layout  *tview.Flex
}

func (s *failureScreen) build(app *tview.Application) {
	s.list = tview.NewList().
		ShowSecondaryText(false).
		SetHighlightFullLine(true)
	for i := range s.results.Details {
		s.list.AddItem(listItemText(s.results.Details[i], i), "", 0, nil)
	}
	s.list.SetMainTextColor(tview.Styles.PrimaryTextColor).
		SetSelectedTextColor(tcell.ColorWhite).
		SetSelectedBackgroundColor(tcell.ColorDarkCyan)

	s.header = tview.NewTextView().
		SetTextAlign(tview.AlignCenter).
		SetDynamicColors(true)
	s.stats = tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(false)
	s.details = tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(true).
		SetWordWrap(true)

	detailsContainer := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(s.details, 0, 1, false).
		AddItem(tview.NewBox(), 2, 0, false)
	rightSide := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(s.stats, 3, 0, false).
		AddItem(detailsContainer, 0, 1, false)
	body := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(s.list, 0, 1, true).
		AddItem(rightSide, 0, 2, false)
	s.layout = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(s.header, 1, 0, false).
		AddItem(tview.NewBox(), 1, 0, false).
		AddItem(body, 0, 1, true)

	s.list.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyEnter, tcell.KeyRight:
			app.SetFocus(s.details)
			return nil
		case tcell.KeyCtrlC:
			app.Stop()
			return nil
		case tcell.KeyRune:
			if event.Rune() == 'r' || event.Rune() == 'R' {
				s.toggle(s.list.GetCurrentItem())
				return nil
			}
			if event.Rune() == 'q' {
				app.Stop()
				return nil
			}
		}
		return event
	})
	s.details.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyLeft, tcell.KeyEsc:
			app.SetFocus(s.list)
			return nil
		case tcell.KeyCtrlC:
			app.Stop()
			return nil
		}
		return event
	})
	s.list.SetChangedFunc(func(int, string, string, rune) {
		s.refresh()
	})

	s.refresh()
}

// toggle flips the resolved flag of failure i and persists the results.
func (s *failureScreen) toggle(i int) {
	if i < 0 || i >= len(s.results.Details) {
		return
	}
	s.results.Details[i].Resolved = !s.results.Details[i].Resolved
	if s.store != nil {
		s.saveErr = s.store.SaveOutput(s.results)
	}
	if s.list != nil {
		s.list.SetItemText(i, listItemText(s.results.Details[i], i), "")
		s.refresh()
	}
}

func (s *failureScreen) unresolved() int {
	count := 0
	for _, failure := range s.results.Details {
		if !failure.Resolved {
			count++
		}
	}
	return count
}

func (s *failureScreen) refresh() {
	text := fmt.Sprintf(" Case Failures (%d total, %d unresolved) | ↑↓ navigate, [yellow]R[white] mark resolved, → details, ← back, q quit ",
		len(s.results.Details), s.unresolved())
	if s.saveErr != nil {
		text += "[red]| save failed: " + tview.Escape(s.saveErr.Error()) + "[white]"
	}
	s.header.SetText(text)

	i := s.list.GetCurrentItem()
	if i < 0 || i >= len(s.results.Details) {
		return
	}
	failure := s.results.Details[i]
	s.stats.SetText(formatFailureStats(failure))
	s.details.SetText(formatFailureDetails(failure))
}

func listItemText(failure domain.TestFailure, i int) string {
	name := tview.Escape(failure.TestName)
	if failure.Resolved {
		return fmt.Sprintf("[gray]✓ [yellow]%d.[gray] %s[white]", i+1, name)
	}
	return fmt.Sprintf("[yellow]%d.[white] %s", i+1, name)
}

// formatFailureDetails formats a failure using tview color tags
func formatFailureDetails(failure domain.TestFailure) string {
	var b strings.Builder

	label := "✗ Failed"
	if failure.Outcome == domain.OutcomeErrored {
		label = "! Errored"
	}
	fmt.Fprintf(&b, "[red]%s: %s[white]\n\n", label, tview.Escape(failure.TestName))

	fmt.Fprintf(&b, "[cyan]Fixture: %s[white]\n", tview.Escape(failure.FilePath))
	fmt.Fprintf(&b, "[cyan]Method: %s, set %d[white]\n", tview.Escape(failure.Method), failure.SetIndex)
	if failure.File != "" && failure.Line > 0 {
		fmt.Fprintf(&b, "[yellow]Location: %s:%d[white]\n", tview.Escape(failure.File), failure.Line)
	}
	b.WriteString("\n")

	if failure.Message != "" {
		fmt.Fprintf(&b, "[yellow]Message:[white]\n%s\n\n", tview.Escape(failure.Message))
	}
	if failure.ErrorDetails != "" {
		fmt.Fprintf(&b, "[yellow]Parameters:[white]\n%s\n\n", tview.Escape(failure.ErrorDetails))
	}

	if len(failure.StackTrace) > 0 {
		b.WriteString("[yellow]Assertions:[white]\n")
		for i, loc := range failure.StackTrace {
			if i == maxTraceLines {
				fmt.Fprintf(&b, "  [gray]... and %d more[white]\n", len(failure.StackTrace)-maxTraceLines)
				break
			}
			fmt.Fprintf(&b, "  %s\n", tview.Escape(loc))
		}
	}
	return b.String()
}

func formatFailureStats(failure domain.TestFailure) string {
	path := failure.FilePath
	if path == "" {
		path = "in-process"
	}
	return fmt.Sprintf("[cyan]case:[white] [yellow]%s[white]::[yellow]%s[white]\n", tview.Escape(path), tview.Escape(failure.TestName))
}
