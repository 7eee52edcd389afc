package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"lantern/internal/config"
	"lantern/internal/journal"
	"lantern/internal/logging"
	"lantern/internal/publisher"
	"lantern/internal/store/awsauth"
	"lantern/internal/store/dynamostore"
	"lantern/internal/store/s3store"
)

func newPublishCommand(cmdCtx *commandContext) *cobra.Command {
	var rootFlag string
	var prefixFlag string
	var profileFlag string
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Publish the content tree to S3 and DynamoDB",
		Long: `Walk the content tree, store an immutable manifest per activity version,
and refresh live pointer records. Activity live records are written through
a version guard: if an equal or newer version is already live the write is
skipped, which is an expected outcome and does not fail the run.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cmdCtx.ensureConfig()
			if err != nil {
				return err
			}
			if err := applyPublishOverrides(cfg, rootFlag, prefixFlag, profileFlag); err != nil {
				return err
			}

			logger, err := logging.NewFromConfig(cfg)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			awsCfg, err := awsauth.Load(ctx, cfg.AWS.Region, cfg.AWS.Profile)
			if err != nil {
				return err
			}

			objects := s3store.New(awsCfg, cfg.Storage.Bucket, dryRun, logger)
			registry := dynamostore.New(awsCfg, cfg.Registry.Table, dryRun, logger)

			opts := []publisher.Option{}
			if cfg.Journal.Enabled {
				history, err := journal.Open(cfg.JournalPath())
				if err != nil {
					return err
				}
				defer history.Close()
				opts = append(opts, publisher.WithJournal(history))
			}

			if !dryRun {
				lock, err := publisher.AcquireLock(cfg.LockPath())
				if err != nil {
					return err
				}
				defer lock.Unlock()
			}

			result, err := publisher.New(cfg, objects, registry, dryRun, logger, opts...).Run(ctx)
			if err != nil {
				return err
			}

			printPublishResult(cmd, result)
			return nil
		},
	}

	cmd.Flags().StringVar(&rootFlag, "root", "", "Content root directory (overrides config)")
	cmd.Flags().StringVar(&prefixFlag, "prefix", "", "Manifest key prefix (overrides config)")
	cmd.Flags().StringVar(&profileFlag, "profile", "", "AWS credentials profile (overrides config)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Log intended writes without performing them")
	return cmd
}

func applyPublishOverrides(cfg *config.Config, root, prefix, profile string) error {
	if root = strings.TrimSpace(root); root != "" {
		expanded, err := config.ExpandPath(root)
		if err != nil {
			return err
		}
		cfg.Content.RootDir = expanded
	}
	if prefix = strings.TrimSpace(prefix); prefix != "" {
		cfg.Storage.KeyPrefix = strings.Trim(prefix, "/")
	}
	if profile = strings.TrimSpace(profile); profile != "" {
		cfg.AWS.Profile = profile
	}
	return cfg.Validate()
}

func printPublishResult(cmd *cobra.Command, result *publisher.Result) {
	out := cmd.OutOrStdout()

	headers := []string{"Units", "Episodes", "Activities", "Skipped", "Warnings"}
	rows := [][]string{{
		strconv.Itoa(result.Units),
		strconv.Itoa(result.Episodes),
		strconv.Itoa(result.Activities),
		strconv.Itoa(result.Skipped),
		strconv.Itoa(len(result.Warnings)),
	}}
	aligns := []columnAlignment{alignRight, alignRight, alignRight, alignRight, alignRight}
	fmt.Fprintln(out, renderTable(headers, rows, aligns))

	for _, warning := range result.Warnings {
		fmt.Fprintf(out, "warning: %s\n", warning)
	}
	if result.DryRun {
		fmt.Fprintln(out, "Dry run: no writes were performed.")
	}
	fmt.Fprintf(out, "Run %s finished in %s.\n", result.RunID, result.Duration.Round(timeRounding))
}
