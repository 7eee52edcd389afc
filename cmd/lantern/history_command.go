package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"lantern/internal/journal"
)

const timeRounding = time.Millisecond

func newHistoryCommand(cmdCtx *commandContext) *cobra.Command {
	var limit int
	var showEntities bool

	cmd := &cobra.Command{
		Use:   "history [run-id]",
		Short: "Show recent publish runs from the local journal",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cmdCtx.ensureConfig()
			if err != nil {
				return err
			}

			history, err := journal.Open(cfg.JournalPath())
			if err != nil {
				return err
			}
			defer history.Close()

			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			if len(args) == 1 || showEntities {
				runID := ""
				if len(args) == 1 {
					runID = args[0]
				} else {
					runs, err := history.RecentRuns(ctx, 1)
					if err != nil {
						return err
					}
					if len(runs) == 0 {
						fmt.Fprintln(out, "No publish runs recorded yet.")
						return nil
					}
					runID = runs[0].ID
				}
				entities, err := history.RunEntities(ctx, runID)
				if err != nil {
					return err
				}
				if len(entities) == 0 {
					fmt.Fprintf(out, "No entities recorded for run %s.\n", runID)
					return nil
				}
				rows := make([][]string, 0, len(entities))
				for _, entity := range entities {
					rows = append(rows, []string{entity.Kind, entity.Key, entity.Outcome})
				}
				fmt.Fprintln(out, renderTable(
					[]string{"Kind", "Key", "Outcome"},
					rows,
					[]columnAlignment{alignLeft, alignLeft, alignLeft},
				))
				return nil
			}

			runs, err := history.RecentRuns(ctx, limit)
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Fprintln(out, "No publish runs recorded yet.")
				return nil
			}

			rows := make([][]string, 0, len(runs))
			for _, run := range runs {
				rows = append(rows, []string{
					run.ID,
					run.StartedAt.Local().Format("2006-01-02 15:04:05"),
					run.Status,
					yesNo(run.DryRun),
					strconv.Itoa(run.Units),
					strconv.Itoa(run.Episodes),
					strconv.Itoa(run.Activities),
					strconv.Itoa(run.Skipped),
					strconv.Itoa(run.Warnings),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Run", "Started", "Status", "Dry", "Units", "Episodes", "Activities", "Skipped", "Warnings"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignRight, alignRight, alignRight},
			))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Number of runs to show")
	cmd.Flags().BoolVar(&showEntities, "entities", false, "Show per-entity outcomes for the latest run")
	return cmd
}
