package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/michalchudziak/NaukaLiluka-sub000/internal/domain"
	"github.com/michalchudziak/NaukaLiluka-sub000/internal/platform/logger"
	"github.com/michalchudziak/NaukaLiluka-sub000/internal/service/books"
	"github.com/michalchudziak/NaukaLiluka-sub000/internal/service/norep"
	"github.com/michalchudziak/NaukaLiluka-sub000/internal/service/routine"
)

func newTodayCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "today",
		Short: "Print today's schedule and progress for every track",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			// Logs go to stderr so the summary stays readable.
			log := logger.New(os.Stderr, cfg.Server.LogLevel)

			app, err := newApplication(cmd.Context(), cfg, log)
			if err != nil {
				return err
			}
			defer app.cleanup()

			if err := app.hydrate(cmd.Context()); err != nil {
				return err
			}
			summary, err := app.today(cmd.Context())
			if err != nil {
				return err
			}
			renderToday(cmd.OutOrStdout(), summary)
			return nil
		},
	}
}

// todaySummary is the state of every track for the current day.
type todaySummary struct {
	Numbers         domain.NumbersDailyData
	NumbersStatus   routine.Status
	Equations       domain.EquationsDailyData
	EquationsStatus routine.Status
	Reading         norep.Status
	Book            domain.BookDailyData
	BookFlags       books.DayFlags
}

func (app *application) today(ctx context.Context) (todaySummary, error) {
	var (
		s   todaySummary
		err error
	)
	if s.Numbers, s.NumbersStatus, err = app.numbers.Today(ctx); err != nil {
		return s, fmt.Errorf("numbers: %w", err)
	}
	if s.Equations, s.EquationsStatus, err = app.equations.Today(ctx); err != nil {
		return s, fmt.Errorf("equations: %w", err)
	}
	s.Reading = app.norep.Status(ctx)
	if s.Book, s.BookFlags, err = app.books.Today(ctx); err != nil {
		return s, fmt.Errorf("books: %w", err)
	}
	return s, nil
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	boxStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 1)
	doneStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	pendingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

func mark(done bool) string {
	if done {
		return doneStyle.Render("done")
	}
	return pendingStyle.Render("pending")
}

func renderToday(w io.Writer, s todaySummary) {
	blocks := []string{
		renderRoutine("Numbers", s.NumbersStatus, numbersLine(s.Numbers)),
		renderRoutine("Equations", s.EquationsStatus,
			fmt.Sprintf("%s, %d equations per session", s.Equations.Category, len(s.Equations.Equations))),
		renderReading(s.Reading),
		renderBook(s.Book, s.BookFlags),
	}
	fmt.Fprintln(w, lipgloss.JoinVertical(lipgloss.Left, blocks...))
}

func numbersLine(d domain.NumbersDailyData) string {
	if len(d.Numbers) == 0 {
		return "no numbers today"
	}
	parts := make([]string, len(d.Numbers))
	for i, n := range d.Numbers {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, " ")
}

func renderRoutine(name string, st routine.Status, detail string) string {
	lines := []string{
		titleStyle.Render(fmt.Sprintf("%s, day %d", name, st.Day)),
		detail,
	}
	for _, sess := range st.Sessions {
		lines = append(lines, fmt.Sprintf("  %-8s %s", sess.Key, mark(sess.Completed)))
	}
	lines = append(lines, "day: "+mark(st.DayCompleted))
	return boxStyle.Render(strings.Join(lines, "\n"))
}

func renderReading(st norep.Status) string {
	lines := []string{
		titleStyle.Render("Reading"),
		"words:     " + mark(st.WordsCompletedToday),
		"sentences: " + mark(st.SentencesCompletedToday),
	}
	for _, cs := range st.Stats {
		lines = append(lines, fmt.Sprintf("  %-9s %d/%d shown, %d left", cs.Corpus, cs.Displayed, cs.Total, cs.Remaining))
	}
	return boxStyle.Render(strings.Join(lines, "\n"))
}

func renderBook(d domain.BookDailyData, flags books.DayFlags) string {
	if d.Placeholder {
		return boxStyle.Render(titleStyle.Render("Books") + "\nevery book is finished")
	}
	lines := []string{titleStyle.Render("Books: " + d.Title)}
	for _, sf := range flags.Sessions {
		lines = append(lines, fmt.Sprintf("  session %d %s", sf.Session, mark(sf.Completed)))
	}
	lines = append(lines, "day: "+mark(flags.DayCompleted))
	return boxStyle.Render(strings.Join(lines, "\n"))
}
