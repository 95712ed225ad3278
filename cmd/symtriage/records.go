package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/bisheshoggo/symtriage/internal/check"
	"github.com/bisheshoggo/symtriage/internal/config"
	"github.com/bisheshoggo/symtriage/internal/format"
	"github.com/bisheshoggo/symtriage/internal/reporter"
	"github.com/bisheshoggo/symtriage/internal/store"
	"github.com/bisheshoggo/symtriage/internal/triage"
)

// --- query subcommand ---

var queryCmd = &cobra.Command{
	Use:         "query",
	Short:       "List stored checks",
	Annotations: quiet(),
	RunE: func(cmd *cobra.Command, args []string) error {
		fl := cmd.Flags()
		last, _ := fl.GetString("last")
		levelStr, _ := fl.GetString("level")
		patient, _ := fl.GetString("patient")
		instance, _ := fl.GetString("instance")
		limit, _ := fl.GetInt("limit")
		unsynced, _ := fl.GetBool("unsynced")

		since, err := config.ParseDuration(last)
		if err != nil {
			return fmt.Errorf("invalid --last value %q: %w", last, err)
		}

		filter := store.QueryFilter{
			Since:      time.Now().Add(-since),
			PatientID:  patient,
			InstanceID: instance,
			Unsynced:   unsynced,
			Limit:      limit,
		}
		if levelStr != "" {
			if filter.Level, err = triage.ParseRiskLevel(levelStr); err != nil {
				return err
			}
		}

		db, err := openStore(cfg)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer db.Close()

		checks, err := db.Query(filter)
		if err != nil {
			return fmt.Errorf("query error: %w", err)
		}

		if len(checks) == 0 {
			fmt.Println("No checks found.")
			return nil
		}

		printChecks(os.Stdout, checks)
		return nil
	},
}

func printChecks(w io.Writer, checks []*check.Check) {
	for _, c := range checks {
		ts := c.Timestamp.Local().Format("2006-01-02 15:04:05")
		fmt.Fprintf(w, "%s  [%-9s] %s\n", ts, c.Level(), c.Summary(triage.English))
		if c.PatientID != "" {
			fmt.Fprintf(w, "             Patient: %s\n", c.PatientID)
		}
		if len(c.Result.Reasons) > 0 {
			fmt.Fprintf(w, "             %s\n", c.Result.Reasons[0].Primary)
		}
		var flags string
		if c.Notified {
			flags += " notified"
		}
		if !c.Synced {
			flags += " unsynced"
		}
		if flags != "" {
			fmt.Fprintf(w, "            %s\n", flags)
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintf(w, "Total: %d check(s)\n", len(checks))
}

// --- digest subcommand ---

var digestCmd = &cobra.Command{
	Use:         "digest",
	Short:       "Summarize checks over a period",
	Annotations: quiet(),
	RunE: func(cmd *cobra.Command, args []string) error {
		last, _ := cmd.Flags().GetString("last")
		send, _ := cmd.Flags().GetBool("send")

		duration, err := config.ParseDuration(last)
		if err != nil {
			return fmt.Errorf("invalid --last value: %w", err)
		}

		db, err := openStore(cfg)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer db.Close()

		until := time.Now()
		since := until.Add(-duration)

		checks, err := db.Query(store.QueryFilter{Since: since, Until: until})
		if err != nil {
			return fmt.Errorf("query error: %w", err)
		}

		digest := reporter.BuildDigest(cfg.Instance.ID, checks, since, until)
		body := reporter.FormatDigest(digest)

		if !send {
			fmt.Print(body)
			return nil
		}

		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		title := reporter.FormatDigestTitle(since, until)
		if err := reporter.NewNtfy(cfg).SendDigest(ctx, title, body); err != nil {
			return fmt.Errorf("sending digest: %w", err)
		}
		fmt.Println("Digest sent successfully.")
		return nil
	},
}

// --- status subcommand ---

var statusCmd = &cobra.Command{
	Use:         "status",
	Short:       "Show instance, database and sync state",
	Annotations: quiet(),
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Printf("Instance:     %s\n", cfg.Instance.ID)
		if cfg.Instance.Region != "" {
			fmt.Printf("Region:       %s\n", cfg.Instance.Region)
		}

		db, err := openStore(cfg)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer db.Close()

		last, err := db.Query(store.QueryFilter{Limit: 1})
		if err == nil && len(last) > 0 {
			c := last[0]
			ago := time.Since(c.Timestamp).Truncate(time.Second)
			fmt.Printf("Last check:   %s (%s ago)\n", c.Summary(triage.English), format.Ago(ago))
		} else {
			fmt.Println("Last check:   none")
		}

		recent, _ := db.Query(store.QueryFilter{Since: time.Now().Add(-24 * time.Hour)})
		counts := make(map[triage.RiskLevel]int)
		for _, c := range recent {
			counts[c.Level()]++
		}
		fmt.Printf("Checks (24h): %d emergency, %d high, %d medium, %d low\n",
			counts[triage.RiskEmergency], counts[triage.RiskHigh], counts[triage.RiskMedium], counts[triage.RiskLow])

		total, _ := db.Count()
		pending, _ := db.CountPending()
		fmt.Printf("DB checks:    %d total, %d unsynced\n", total, pending)
		fmt.Printf("DB location:  %s\n", dbLocation(cfg))

		if cfg.Sync.Enabled {
			lastSync, err := db.LastSync()
			switch {
			case err != nil:
				fmt.Printf("Last sync:    unknown (%v)\n", err)
			case lastSync.IsZero():
				fmt.Println("Last sync:    never")
			default:
				fmt.Printf("Last sync:    %s ago\n", format.Ago(time.Since(lastSync).Truncate(time.Second)))
			}
		} else {
			fmt.Println("Sync:         disabled")
		}
		return nil
	},
}

// --- sync subcommand ---

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Upload pending checks to the backend once",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.Sync.Endpoint == "" {
			return fmt.Errorf("sync.endpoint not configured")
		}

		db, err := openStore(cfg)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer db.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		res, err := newSyncer(db, cfg).SyncNow(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("Synced %d of %d check(s), %d failed.\n", res.Synced, res.Attempted, res.Failed)
		return nil
	},
}

// --- test-ntfy subcommand ---

var testNtfyCmd = &cobra.Command{
	Use:   "test-ntfy",
	Short: "Send a test notification",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.Ntfy.URL == "" {
			return fmt.Errorf("ntfy.url not configured")
		}

		rep := reporter.NewNtfy(cfg)
		tc := &reporter.TestCheck{InstanceID: cfg.Instance.ID}

		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		if err := rep.Report(ctx, tc.ToCheck(), 0); err != nil {
			return fmt.Errorf("sending test notification: %w", err)
		}
		fmt.Println("Test notification sent successfully.")
		return nil
	},
}

// --- config subcommand ---

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect configuration",
}

var configShowCmd = &cobra.Command{
	Use:         "show",
	Short:       "Print the effective configuration as YAML",
	Annotations: quiet(),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configPath
		if path == "" {
			path = config.DefaultPath()
		}
		fmt.Fprintf(os.Stderr, "# config file: %s\n", path)

		data, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("marshaling config: %w", err)
		}
		fmt.Print(string(data))
		return nil
	},
}

func init() {
	qf := queryCmd.Flags()
	qf.String("last", "24h", "time window (e.g. 24h, 7d, 30d)")
	qf.String("level", "", "filter by risk level (emergency, high, medium, low)")
	qf.String("patient", "", "filter by patient ID")
	qf.String("instance", "", "filter by instance ID")
	qf.Int("limit", 50, "max checks to show")
	qf.Bool("unsynced", false, "only checks not yet synced")

	digestCmd.Flags().Bool("send", false, "send digest via ntfy (otherwise print to stdout)")
	digestCmd.Flags().String("last", "7d", "time window for digest")

	configCmd.AddCommand(configShowCmd)
	rootCmd.AddCommand(queryCmd, digestCmd, statusCmd, syncCmd, testNtfyCmd, configCmd)
}
