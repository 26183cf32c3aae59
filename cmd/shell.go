package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/pable/go-cricket-metrics/internal/dataset"
	"github.com/pable/go-cricket-metrics/internal/model"
	"github.com/pable/go-cricket-metrics/internal/report"
)

var (
	cPrompt   = color.New(color.FgCyan, color.Bold)
	cMuted    = color.New(color.Faint)
	cError    = color.New(color.FgRed, color.Bold)
	cWarn     = color.New(color.FgYellow)
	cCmd      = color.New(color.FgYellow, color.Bold)
	cGreeting = color.New(color.Bold)
)

var shellCmd = &cobra.Command{
	Use:   "shell <file|dataset-id-prefix>",
	Short: "Start an interactive filter session on one dataset",
	Long: `Load a dataset once, then adjust the season and phase selection and
re-run the stats tables without re-reading the file. Type 'help' for commands.`,
	Args: cobra.ExactArgs(1),
	RunE: runShell,
}

func runShell(_ *cobra.Command, args []string) error {
	ds, err := loadDataset(args[0])
	if err != nil {
		return err
	}
	s := newShellSession(ds, os.Stdout, os.Stderr)
	s.top = cfg.Top

	cGreeting.Printf("cricmetrics shell: %s (%d deliveries, seasons %s)\n",
		ds.Source, len(ds.Deliveries), strings.Join(ds.Seasons(), ", "))
	cMuted.Println("type 'help' or 'exit'")
	fmt.Println()
	return s.run(os.Stdin)
}

// shellSession holds the dataset and the current selection across commands.
type shellSession struct {
	ds      *dataset.Dataset
	out     io.Writer
	errOut  io.Writer
	seasons []string
	phases  []model.Phase
	dims    []model.Dimension
	top     int
}

func newShellSession(ds *dataset.Dataset, out, errOut io.Writer) *shellSession {
	s := &shellSession{ds: ds, out: out, errOut: errOut}
	s.reset()
	return s
}

func (s *shellSession) reset() {
	s.seasons = s.ds.Seasons()
	s.phases = model.AllPhases
	s.dims = model.AllDimensions
}

func (s *shellSession) filter() model.Filter {
	return model.NewFilter(s.seasons, s.phases)
}

func (s *shellSession) run(in io.Reader) error {
	scanner := bufio.NewScanner(in)
	for {
		cPrompt.Fprint(s.out, "cricmetrics")
		cMuted.Fprint(s.out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(s.out)
			break
		}
		if s.exec(scanner.Text()) {
			return nil
		}
	}
	return scanner.Err()
}

// exec runs one command line and reports whether the session should end.
func (s *shellSession) exec(line string) bool {
	tokens := strings.Fields(line)
	if len(tokens) == 0 {
		return false
	}
	cmd, args := strings.ToLower(tokens[0]), tokens[1:]

	switch cmd {
	case "exit", "quit":
		return true
	case "help":
		s.help()
	case "seasons":
		fmt.Fprintln(s.out, strings.Join(s.ds.Seasons(), " "))
	case "season":
		seasons, err := parseSeasons(s.ds, args)
		if err != nil {
			cError.Fprintf(s.errOut, "error: %v\n", err)
			return false
		}
		s.seasons = seasons
		report.PrintFilterSummary(s.out, s.filter())
	case "phase":
		phases, err := parsePhases(args)
		if err != nil {
			cError.Fprintf(s.errOut, "error: %v\n", err)
			return false
		}
		s.phases = phases
		report.PrintFilterSummary(s.out, s.filter())
	case "dim", "dimension":
		dims, err := parseDimensions(args)
		if err != nil {
			cError.Fprintf(s.errOut, "error: %v\n", err)
			return false
		}
		s.dims = dims
	case "top":
		if len(args) != 1 {
			cError.Fprintln(s.errOut, "usage: top <n>  (0 for all rows)")
			return false
		}
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 0 {
			cError.Fprintf(s.errOut, "invalid row count %q\n", args[0])
			return false
		}
		s.top = n
	case "filter":
		report.PrintFilterSummary(s.out, s.filter())
	case "show":
		dims := s.dims
		if len(args) > 0 {
			var err error
			if dims, err = parseDimensions(args); err != nil {
				cError.Fprintf(s.errOut, "error: %v\n", err)
				return false
			}
		}
		r, err := s.ds.Stats(s.filter(), dims...)
		if err != nil {
			cError.Fprintf(s.errOut, "error: %v\n", err)
			return false
		}
		report.PrintReport(s.out, r, s.top)
	case "reset":
		s.reset()
		report.PrintFilterSummary(s.out, s.filter())
	default:
		cWarn.Fprintf(s.errOut, "unknown command %q, type 'help'\n", cmd)
	}
	return false
}

func (s *shellSession) help() {
	fmt.Fprintln(s.out)
	type entry struct{ cmd, desc string }
	rows := []entry{
		{"seasons", "list the seasons in the dataset"},
		{"season <s> [<s>...] | all | none", "select seasons"},
		{"phase <pp|middle|death>... | all | none", "select match phases"},
		{"dim <striker|bowler|team|venue>...", "choose the tables 'show' prints"},
		{"top <n>", "rows per table, 0 for all"},
		{"filter", "print the current selection"},
		{"show [<dimension>...]", "print the stats tables"},
		{"reset", "select every season and phase again"},
		{"help", "show this message"},
		{"exit / quit", "close the session"},
	}
	for _, r := range rows {
		fmt.Fprint(s.out, "  ")
		cCmd.Fprintf(s.out, "%-42s", r.cmd)
		fmt.Fprintln(s.out, r.desc)
	}
	fmt.Fprintln(s.out)
}
