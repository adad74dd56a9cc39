package cli

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/dmitrijs2005/locator/internal/client/client"
	"github.com/dmitrijs2005/locator/internal/client/forms"
)

var (
	colorBorder = lipgloss.Color("#45475a")
	colorTitle  = lipgloss.Color("#74c7ec")
	colorMuted  = lipgloss.Color("#a6adc8")
	colorOK     = lipgloss.Color("#a6e3a1")
	colorError  = lipgloss.Color("#f38ba8")
	colorWarn   = lipgloss.Color("#fab387")

	titleStyle  = lipgloss.NewStyle().Foreground(colorTitle).Bold(true)
	mutedStyle  = lipgloss.NewStyle().Foreground(colorMuted)
	okStyle     = lipgloss.NewStyle().Foreground(colorOK)
	errorStyle  = lipgloss.NewStyle().Foreground(colorError).Bold(true)
	warnStyle   = lipgloss.NewStyle().Foreground(colorWarn)
	borderStyle = lipgloss.NewStyle().Foreground(colorBorder)
)

func renderTable(headers []string, rows [][]string) string {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		Headers(headers...).
		Rows(rows...).
		String()
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

func (a *App) title(s string) {
	a.println(titleStyle.Render(s))
}

func (a *App) hint(format string, args ...any) {
	a.println(mutedStyle.Render(fmt.Sprintf(format, args...)))
}

func (a *App) success(format string, args ...any) {
	a.println(okStyle.Render(fmt.Sprintf(format, args...)))
}

func (a *App) warn(format string, args ...any) {
	a.println(warnStyle.Render(fmt.Sprintf(format, args...)))
}

// alert prints a notification. Nothing the user does is fatal; the view
// stays usable after it.
func (a *App) alert(msg string) {
	a.println(errorStyle.Render(msg))
}

// fail reports err. Validation errors are listed per field; anything else
// shows the server's message, or fallback.
func (a *App) fail(ctx context.Context, err error, fallback string) {
	var verrs forms.ValidationErrors
	if errors.As(err, &verrs) {
		a.alert("Please correct the form:")
		fields := make([]string, 0, len(verrs))
		for f := range verrs {
			fields = append(fields, f)
		}
		sort.Strings(fields)
		for _, f := range fields {
			a.println("  - " + verrs[f])
		}
		return
	}
	a.log.Debug(ctx, "command failed", "error", err)
	a.alert(client.Message(err, fallback))
}
