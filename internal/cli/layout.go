package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/fabmenu/pkg/layout"
	"github.com/matzehuels/fabmenu/pkg/menu"
)

// layoutRow is one child slot as printed by the layout command.
type layoutRow struct {
	Index    int           `json:"index"`
	Layer    *int          `json:"layer,omitempty"`
	Offset   layout.Offset `json:"offset"`
	Distance float64       `json:"distance"`
}

// layoutCommand creates the layout command for printing child offsets.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		mf      menuFlags
		total   int
		asJSON  bool
		noColor bool
	)

	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Print child item offsets for a layout strategy",
		Long: `Print the offset of every child item relative to the trigger.

Offsets are in pixels with +x pointing right and +y pointing down. Items
expand away from the anchor corner, so a bottom-right menu has children at
negative x and y. The petal strategy also reports the layer of each item.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := mf.load(cmd)
			if err != nil {
				return err
			}
			rows, err := layoutRows(cfg, total)
			if err != nil {
				return err
			}
			if asJSON {
				return writeLayoutJSON(cmd.OutOrStdout(), rows)
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderLayoutTable(cfg, rows, noColor))
			return nil
		},
	}

	mf.register(cmd)
	cmd.Flags().IntVarP(&total, "total", "n", 5, "number of child items")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "disable table colors")

	return cmd
}

// layoutRows computes one row per child item.
func layoutRows(cfg menu.Config, total int) ([]layoutRow, error) {
	engine := layout.NewEngine(layout.WithBaseRadius(cfg.BaseRadiusPx), layout.WithSpacing(cfg.SpacingPx))
	offsets, err := engine.Offsets(total, cfg.Strategy, cfg.Corner)
	if err != nil {
		return nil, err
	}
	rows := make([]layoutRow, len(offsets))
	for i, o := range offsets {
		rows[i] = layoutRow{Index: i, Offset: o, Distance: o.Len()}
		if cfg.Strategy == layout.Petal {
			l, _, _ := layout.PetalSlot(i, total)
			rows[i].Layer = &l
		}
	}
	return rows, nil
}

func writeLayoutJSON(w io.Writer, rows []layoutRow) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rows)
}

// renderLayoutTable formats rows as a rounded lipgloss table.
func renderLayoutTable(cfg menu.Config, rows []layoutRow, noColor bool) string {
	petal := cfg.Strategy == layout.Petal

	headers := []string{"#", "x", "y", "dist"}
	if petal {
		headers = []string{"#", "layer", "x", "y", "dist"}
	}

	data := make([][]string, len(rows))
	for i, r := range rows {
		row := []string{strconv.Itoa(r.Index)}
		if petal {
			row = append(row, strconv.Itoa(*r.Layer))
		}
		row = append(row,
			strconv.FormatFloat(r.Offset.X, 'f', 2, 64),
			strconv.FormatFloat(r.Offset.Y, 'f', 2, 64),
			strconv.FormatFloat(r.Distance, 'f', 2, 64),
		)
		data[i] = row
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...).
		Rows(data...).
		StyleFunc(func(row, col int) lipgloss.Style {
			base := lipgloss.NewStyle().Padding(0, 1)
			if noColor {
				return base
			}
			if row == table.HeaderRow {
				return base.Inherit(styleHeader)
			}
			if col == 0 {
				return base.Foreground(colorGray)
			}
			if petal && col == 1 && row >= 0 && row < len(rows) && *rows[row].Layer%2 == 1 {
				return base.Foreground(colorBlue)
			}
			return base.Foreground(colorWhite)
		})

	title := StyleTitle.Render(fmt.Sprintf("%s · %s · %d items", cfg.Strategy, cfg.Corner, len(rows)))
	if petal {
		title += StyleDim.Render(fmt.Sprintf("  (%d layers, r=%.0f)", layout.PetalLayers(len(rows)), cfg.BaseRadiusPx))
	} else {
		title += StyleDim.Render(fmt.Sprintf("  (spacing %.0f)", cfg.SpacingPx))
	}
	if cfg.Strategy == layout.Grid {
		title += StyleDim.Render(fmt.Sprintf("  %d columns", layout.GridColumns(len(rows))))
	}
	return title + "\n" + t.Render()
}
