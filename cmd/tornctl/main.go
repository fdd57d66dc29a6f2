// Command tornctl is the one-shot inspection CLI for the Consigliere bot.
//
// Usage:
//
//	tornctl stats
//	tornctl crime [--ai]
//	tornctl awards --limit 5
//	tornctl gym
//	tornctl events --limit 10
//	tornctl company status|enable|disable
//	tornctl ask "should I chain tonight?"
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/tornsuite/consigliere/internal/advisor"
	"github.com/tornsuite/consigliere/internal/ai"
	"github.com/tornsuite/consigliere/internal/config"
	"github.com/tornsuite/consigliere/internal/monitor"
	"github.com/tornsuite/consigliere/internal/state"
	"github.com/tornsuite/consigliere/internal/torn"
)

var logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	root := &cobra.Command{
		Use:   "tornctl",
		Short: "Consigliere inspection CLI",
	}

	root.AddCommand(statsCmd())
	root.AddCommand(crimeCmd())
	root.AddCommand(awardsCmd())
	root.AddCommand(gymCmd())
	root.AddCommand(eventsCmd())
	root.AddCommand(companyCmd())
	root.AddCommand(askCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// run loads config, builds a client, and invokes fn with a bounded context.
func run(fn func(ctx context.Context, cfg *config.Config, client *torn.Client) error) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()
	client := torn.NewClient(cfg.TornBaseURL, cfg.TornAPIKey, cfg.TornRateLimit, cfg.TornTimeout, logger)
	return fn(ctx, cfg, client)
}

// --------------------------------------------------------------------------
// stats command
// --------------------------------------------------------------------------

func statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show current bars, status, and cooldowns",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(func(ctx context.Context, cfg *config.Config, client *torn.Client) error {
				doc, err := client.FetchUser(ctx, "basic,bars,cooldowns,travel,education")
				if err != nil {
					return err
				}
				snap := torn.ParseSnapshot(doc)
				fmt.Printf("%s (level %d) — %s\n\n", snap.Name, snap.Level, snap.Status.Description)
				fmt.Printf("Energy  %d/%d\n", snap.Energy.Current, snap.Energy.Maximum)
				fmt.Printf("Nerve   %d/%d\n", snap.Nerve.Current, snap.Nerve.Maximum)
				fmt.Printf("Happy   %d/%d\n", snap.Happy.Current, snap.Happy.Maximum)
				fmt.Printf("Life    %d/%d\n\n", snap.Life.Current, snap.Life.Maximum)
				fmt.Printf("Cooldowns: drug=%s booster=%s medical=%s\n",
					formatSeconds(snap.Cooldowns.Drug),
					formatSeconds(snap.Cooldowns.Booster),
					formatSeconds(snap.Cooldowns.Medical))
				if snap.Travel.TimeLeft > 0 {
					fmt.Printf("Traveling to %s, lands in %s\n",
						snap.Travel.Destination, formatSeconds(snap.Travel.TimeLeft))
				}
				if snap.Education.TimeLeft > 0 {
					fmt.Printf("Studying, done in %s\n", formatSeconds(snap.Education.TimeLeft))
				}
				return nil
			})
		},
	}
}

// --------------------------------------------------------------------------
// crime command
// --------------------------------------------------------------------------

func crimeCmd() *cobra.Command {
	var withAI bool
	cmd := &cobra.Command{
		Use:   "crime",
		Short: "Crime safety report from Effective Arsons",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(func(ctx context.Context, cfg *config.Config, client *torn.Client) error {
				doc, err := client.FetchUser(ctx, "basic,bars,criminalrecord")
				if err != nil {
					return err
				}
				snap := torn.ParseSnapshot(doc)
				record := torn.ParseCriminalRecord(doc)

				ea := advisor.EffectiveArsons(record)
				level := advisor.LevelFor(ea)
				fmt.Printf("EA %.1f — %s %s\n", ea, level.Icon, level.Name)
				if next, ok := advisor.NextLevel(ea); ok {
					fmt.Printf("Next rung: %s at %.0f EA (%.1f to go)\n\n", next.Name, next.Min, next.Min-ea)
				}

				for _, v := range advisor.SafetyReport(ea) {
					mark := "✓"
					note := ""
					if !v.Safe {
						mark = "✗"
						note = fmt.Sprintf("  (needs %.0f more EA)", v.Shortfall)
					}
					fmt.Printf("%s %-28s%s\n", mark, v.Crime.Display, note)
				}
				best := advisor.BestSafeCrime(ea)
				fmt.Printf("\nBest safe crime: %s\n", best.Display)

				if withAI {
					grok := ai.New(cfg.GroqAPIKey, cfg.GroqBaseURL, cfg.GroqModel)
					advice, err := grok.AdviseOnCrime(ctx, snap.Nerve.Current, snap.Nerve.Maximum, snap.Level)
					if err != nil {
						return fmt.Errorf("ai advice: %w", err)
					}
					fmt.Printf("\n%s\n", advice)
				}
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&withAI, "ai", false, "Also ask the AI advisor")
	return cmd
}

// --------------------------------------------------------------------------
// awards command
// --------------------------------------------------------------------------

func awardsCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "awards",
		Short: "Nearest trackable award targets",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(func(ctx context.Context, cfg *config.Config, client *torn.Client) error {
				doc, err := client.FetchUser(ctx, "personalstats")
				if err != nil {
					return err
				}
				stats := torn.ParsePersonalStats(doc)
				for _, st := range advisor.NearestAwards(stats, limit) {
					fmt.Printf("%-12s %-18s %5.1f%%  (%d/%d, %d to go)\n",
						st.Award.Category, st.Award.Name, st.Progress.Percent,
						st.Progress.Current, st.Progress.Target, st.Progress.Remaining)
				}
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 5, "Number of awards to show")
	return cmd
}

// --------------------------------------------------------------------------
// gym command
// --------------------------------------------------------------------------

func gymCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "gym",
		Short: "Battle-stat balance check",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(func(ctx context.Context, cfg *config.Config, client *torn.Client) error {
				doc, err := client.FetchUser(ctx, "battlestats")
				if err != nil {
					return err
				}
				advice := advisor.AnalyzeGym(torn.ParseBattleStats(doc))
				names := make([]string, 0, len(advice.Shares))
				for name := range advice.Shares {
					names = append(names, name)
				}
				sort.Strings(names)
				for _, name := range names {
					fmt.Printf("%-10s %5.1f%%\n", name, advice.Shares[name]*100)
				}
				fmt.Println()
				fmt.Println(advice.Summary())
				return nil
			})
		},
	}
}

// --------------------------------------------------------------------------
// events command
// --------------------------------------------------------------------------

func eventsCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "events",
		Short: "Show recent events, newest first (does not advance watermarks)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(func(ctx context.Context, cfg *config.Config, client *torn.Client) error {
				doc, err := client.FetchUser(ctx, "events")
				if err != nil {
					return err
				}
				snap := torn.ParseSnapshot(doc)
				events := snap.Events
				sort.Slice(events, func(i, j int) bool { return events[i].Timestamp > events[j].Timestamp })
				if limit < len(events) {
					events = events[:limit]
				}
				for _, e := range events {
					text := monitor.CleanHTML(e.Text)
					rule := monitor.MatchRule(text)
					ts := time.Unix(e.Timestamp, 0).Format("2006-01-02 15:04")
					fmt.Printf("%s  %s %-10s %s\n", ts, rule.Icon, rule.Category, text)
				}
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 10, "Number of events to show")
	return cmd
}

// --------------------------------------------------------------------------
// company command
// --------------------------------------------------------------------------

func companyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "company",
		Short: "Manage the company monitoring flag",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show whether company monitoring is enabled",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(func(store *state.Store) error {
				fmt.Printf("company monitoring enabled: %v\n",
					store.GetBool(monitor.KeyCompanyEnabled, true))
				return nil
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "enable",
		Short: "Re-enable company monitoring after a permission fix",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(func(store *state.Store) error {
				return store.SetBool(monitor.KeyCompanyEnabled, true)
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "disable",
		Short: "Disable company monitoring",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(func(store *state.Store) error {
				return store.SetBool(monitor.KeyCompanyEnabled, false)
			})
		},
	})
	return cmd
}

func withStore(fn func(store *state.Store) error) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	store, err := state.Open(cfg.StatePath)
	if err != nil {
		return err
	}
	defer store.Close()
	return fn(store)
}

// --------------------------------------------------------------------------
// ask command
// --------------------------------------------------------------------------

func askCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ask [question]",
		Short: "Ask the Consigliere a free-text question",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(func(ctx context.Context, cfg *config.Config, client *torn.Client) error {
				grok := ai.New(cfg.GroqAPIKey, cfg.GroqBaseURL, cfg.GroqModel)
				reply, err := grok.Chat(ctx, strings.Join(args, " "))
				if err != nil {
					return err
				}
				fmt.Println(reply)
				return nil
			})
		},
	}
}

func formatSeconds(seconds int) string {
	if seconds <= 0 {
		return "ready"
	}
	d := time.Duration(seconds) * time.Second
	return d.Truncate(time.Second).String()
}
