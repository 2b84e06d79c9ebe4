package components

import (
	"fmt"
	"strings"
	"time"

	"filescout/internal/tui/styles"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/dustin/go-humanize"
)

// StatusBar is the bottom line: selection details on the left, running
// jobs and the last notice in the middle, the last error on the right.
type StatusBar struct {
	spinner spinner.Model
	theme   styles.Theme

	permission string
	size       int64
	modTime    time.Time
	isFile     bool
	jobs       int
	notice     string
	err        error
}

func NewStatusBar() *StatusBar {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.Help

	return &StatusBar{spinner: s}
}

// SetTheme applies the current palette.
func (s *StatusBar) SetTheme(theme styles.Theme) {
	s.theme = theme
}

// SetSelection describes the selected entry. Size and age are shown for
// files only.
func (s *StatusBar) SetSelection(permission string, size int64, modTime time.Time, isFile bool) {
	s.permission = permission
	s.size = size
	s.modTime = modTime
	s.isFile = isFile
}

// SetJobs sets the number of jobs in flight; the spinner shows while it is
// positive.
func (s *StatusBar) SetJobs(n int) {
	s.jobs = n
}

func (s *StatusBar) SetNotice(text string) {
	s.notice = text
}

func (s *StatusBar) SetError(err error) {
	s.err = err
}

// Tick starts the spinner animation.
func (s *StatusBar) Tick() tea.Cmd {
	return s.spinner.Tick
}

// Update advances the spinner while jobs are running.
func (s *StatusBar) Update(msg tea.Msg) tea.Cmd {
	if s.jobs <= 0 {
		return nil
	}
	var cmd tea.Cmd
	s.spinner, cmd = s.spinner.Update(msg)
	return cmd
}

func (s *StatusBar) View(width int) string {
	var left []string
	if s.permission != "" {
		left = append(left, s.theme.Badge.Render(s.permission))
	}
	if s.isFile {
		left = append(left, humanize.Bytes(uint64(s.size)))
		if !s.modTime.IsZero() {
			left = append(left, humanize.Time(s.modTime))
		}
	}
	if s.jobs > 0 {
		label := "job"
		if s.jobs > 1 {
			label = "jobs"
		}
		left = append(left, styles.Help.Render(fmt.Sprintf("%s %d %s running", s.spinner.View(), s.jobs, label)))
	}
	if s.notice != "" {
		left = append(left, styles.Notice.Render(s.notice))
	}
	line := strings.Join(left, "  ")

	if s.err != nil {
		right := styles.Error.Render(s.err.Error())
		gap := width - ansi.StringWidth(line) - ansi.StringWidth(right)
		if gap < 1 {
			gap = 1
		}
		line += strings.Repeat(" ", gap) + right
	}
	return ansi.Truncate(line, width, "…")
}
