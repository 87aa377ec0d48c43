package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/fabmenu/pkg/script"
)

// simulateOpts holds the command-line flags for the simulate command.
type simulateOpts struct {
	asJSON  bool
	output  string
	noCache bool
	refresh bool
}

// simulateCommand creates the simulate command for replaying gesture scripts.
func (c *CLI) simulateCommand() *cobra.Command {
	var opts simulateOpts

	cmd := &cobra.Command{
		Use:   "simulate <script>",
		Short: "Replay a gesture script against a menu",
		Long: `Replay a scripted sequence of pointer and menu events against a fresh
menu and print the state after every step.

Scripts are TOML, YAML or JSON with a [menu] config, an item count and an
ordered list of events (down, move, up, cancel, toggle, select, set-open).
Events that arrive out of order are reported as ignored and leave the menu
unchanged.`,
		Example: `  fabmenu simulate drag.toml
  fabmenu simulate tap.yaml --json -o transcript.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runSimulate(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "print the transcript as JSON")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write the JSON transcript to a file")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the transcript cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "replay even when cached")

	return cmd
}

func (c *CLI) runSimulate(ctx context.Context, path string, opts simulateOpts) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	s, err := script.Load(path)
	if err != nil {
		return err
	}
	logger.Debugf("Loaded script %s: %d events", path, len(s.Events))

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	tr, hit, err := runner.Simulate(ctx, s, opts.refresh)
	if err != nil {
		return err
	}
	prog.done("Replayed %d events", len(tr.Steps))

	if opts.output != "" {
		data, err := json.MarshalIndent(tr, "", "  ")
		if err != nil {
			return err
		}
		if err := writeArtifact(opts.output, append(data, '\n')); err != nil {
			return err
		}
	}
	if opts.asJSON {
		return writeTranscriptJSON(os.Stdout, tr)
	}

	fmt.Println(renderTranscript(tr))
	printNewline()
	printTranscriptSummary(tr, hit)
	if opts.output != "" {
		printFile(opts.output)
	}
	return nil
}

func writeTranscriptJSON(w io.Writer, tr *script.Transcript) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(tr)
}

// renderTranscript formats the steps of tr as a table. Ignored steps are
// highlighted.
func renderTranscript(tr *script.Transcript) string {
	rows := make([][]string, len(tr.Steps))
	for i, st := range tr.Steps {
		rows[i] = []string{
			strconv.Itoa(st.Seq),
			describeEvent(st.Event),
			st.Phase,
			openLabel(st.Open),
			formatPoint(st.Anchor.X, st.Anchor.Y),
			describeEmissions(st.Emitted, st.Ignored),
		}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("#", "event", "phase", "menu", "anchor", "emitted").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			base := lipgloss.NewStyle().Padding(0, 1)
			switch {
			case row == table.HeaderRow:
				return base.Inherit(styleHeader)
			case row >= 0 && row < len(tr.Steps) && tr.Steps[row].Ignored != "":
				return base.Foreground(colorRed)
			case col == 0:
				return base.Foreground(colorGray)
			case col == 2 && tr.Steps[row].Dragging:
				return base.Foreground(colorYellow)
			case col == 3 && tr.Steps[row].Open:
				return base.Foreground(colorGreen)
			case col == 5:
				return base.Foreground(colorBlue)
			}
			return base.Foreground(colorWhite)
		})

	title := "transcript"
	if tr.Name != "" {
		title = tr.Name
	}
	return StyleTitle.Render(title) + "\n" + t.Render()
}

func describeEvent(ev script.Event) string {
	switch ev.Kind {
	case script.KindDown, script.KindMove, script.KindUp:
		return fmt.Sprintf("%s %s", ev.Kind, formatPoint(ev.X, ev.Y))
	case script.KindSelect:
		return fmt.Sprintf("select %d", ev.Index)
	case script.KindSetOpen:
		return fmt.Sprintf("set-open %t", ev.Open)
	}
	return string(ev.Kind)
}

func describeEmissions(ems []script.Emission, ignored string) string {
	if ignored != "" {
		return "ignored: " + ignored
	}
	if len(ems) == 0 {
		return "-"
	}
	parts := make([]string, len(ems))
	for i, e := range ems {
		switch e.Kind {
		case script.EmitToggle:
			parts[i] = "toggle " + openLabel(e.Open)
		case script.EmitPosition:
			parts[i] = "position " + formatPoint(e.X, e.Y)
		case script.EmitSelect:
			parts[i] = fmt.Sprintf("select %d", e.Index)
		default:
			parts[i] = e.Kind
		}
	}
	return strings.Join(parts, ", ")
}

func openLabel(open bool) string {
	if open {
		return "open"
	}
	return "closed"
}

func printTranscriptSummary(tr *script.Transcript, cached bool) {
	printKeyValue("Menu", fmt.Sprintf("%s at %s", openLabel(tr.Final.Open), formatPoint(tr.Final.Anchor.X, tr.Final.Anchor.Y)))
	printKeyValue("Toggles", StyleNumber.Render(strconv.Itoa(tr.Toggles)))
	printKeyValue("Positions", StyleNumber.Render(strconv.Itoa(tr.Positions)))
	printKeyValue("Selects", StyleNumber.Render(strconv.Itoa(tr.Selects)))
	if tr.Ignored > 0 {
		printWarning("%d event(s) ignored", tr.Ignored)
	}
	fmt.Println(statsLine([]string{fmt.Sprintf("%d steps", len(tr.Steps)), string(tr.Final.Strategy)}, cached))
}
