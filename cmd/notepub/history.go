package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/eringen/notepub"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	failStyle   = cellStyle.Foreground(lipgloss.Color("1"))
)

func newHistoryCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent publish cycles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := notepub.NewHistoryStore(loadConfig().HistoryPath)
			if err != nil {
				return err
			}
			defer store.Close()

			runs, err := store.Recent(limit)
			if err != nil {
				return err
			}
			return printRuns(cmd.OutOrStdout(), runs)
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "number of cycles to show")
	return cmd
}

const resultCol = 6

func printRuns(w io.Writer, runs []notepub.Run) error {
	if len(runs) == 0 {
		_, err := fmt.Fprintln(w, "No publish cycles recorded yet.")
		return err
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "STARTED", "DURATION", "SCANNED", "PUBLISHED", "SKIPPED", "RESULT").
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == resultCol && !runs[row].OK():
				return failStyle
			default:
				return cellStyle
			}
		})

	for _, r := range runs {
		result := "ok"
		if !r.OK() {
			result = r.Err
		}
		t.Row(
			strconv.FormatInt(r.ID, 10),
			r.Started.Local().Format("2006-01-02 15:04:05"),
			r.Finished.Sub(r.Started).Round(time.Millisecond).String(),
			strconv.Itoa(r.Scanned),
			strconv.Itoa(r.Published),
			strconv.Itoa(r.Skipped),
			strings.ReplaceAll(result, "\n", " "),
		)
	}
	_, err := fmt.Fprintln(w, t.Render())
	return err
}
