package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"stock_frame/internal/feature/challenge/domain/entity"
	symbolentity "stock_frame/internal/feature/symbollist/domain/entity"
)

var (
	titleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#7C3AED"))

	passStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#10B981")).
		Bold(true)

	failStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#EF4444")).
		Bold(true)

	hintStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#F59E0B"))

	mutedStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#6B7280"))
)

// renderReport writes one line per check followed by a summary line.
func renderReport(w io.Writer, rep entity.Report) {
	fmt.Fprintln(w, titleStyle.Render("challenge "+rep.Challenge))
	for _, c := range rep.Cases {
		if c.Passed {
			fmt.Fprintf(w, "  %s %s\n", passStyle.Render("PASS"), c.Name)
			continue
		}
		fmt.Fprintf(w, "  %s %s\n", failStyle.Render("FAIL"), c.Name)
		if c.Message != "" {
			fmt.Fprintf(w, "       %s\n", hintStyle.Render(c.Message))
		}
	}
	total := len(rep.Cases)
	if rep.Passed() {
		fmt.Fprintln(w, passStyle.Render(fmt.Sprintf("%d/%d checks passed", total, total)))
		return
	}
	fmt.Fprintln(w, failStyle.Render(fmt.Sprintf("%d/%d checks failed", rep.Failed(), total)))
}

// renderResult writes the stored shape of a prepared frame.
func renderResult(w io.Writer, r entity.Result) {
	fmt.Fprintln(w, titleStyle.Render("saved "+r.Challenge))
	fmt.Fprintf(w, "  index   %s %s\n", r.IndexName, mutedStyle.Render("("+r.IndexType.String()+")"))
	fmt.Fprintf(w, "  columns %s\n", strings.Join(r.Columns, ", "))
	fmt.Fprintf(w, "  rows    %d\n", r.Rows)
}

// renderSymbols writes the active catalogue in preparation order.
func renderSymbols(w io.Writer, list []symbolentity.Symbol) {
	if len(list) == 0 {
		fmt.Fprintln(w, mutedStyle.Render("no active symbols"))
		return
	}
	for _, s := range list {
		fmt.Fprintf(w, "  %-8s %s %s\n", titleStyle.Render(s.Code), s.Name, mutedStyle.Render(s.Exchange))
	}
}
