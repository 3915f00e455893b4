package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/sandeepkv93/questd/internal/bridge"
	"github.com/sandeepkv93/questd/internal/extension"
	"github.com/sandeepkv93/questd/internal/focus"
	"github.com/sandeepkv93/questd/internal/update"
	"github.com/sandeepkv93/questd/internal/views"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "questd failed: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:           "questd",
		Short:         "Focus sessions and daily quests",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&flags.configPath, "config", "", "path to config file")
	root.PersistentFlags().StringVar(&flags.dbPath, "db", "", "path to the SQLite database")

	root.AddCommand(newTUICmd(flags))
	root.AddCommand(newBridgeCmd(flags))
	root.AddCommand(newQuestCmd(flags))
	root.AddCommand(newStatsCmd(flags))
	root.AddCommand(newVersionCmd())
	return root
}

func newTUICmd(flags *globalFlags) *cobra.Command {
	var simulate bool
	var speed float64

	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Run the terminal UI",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			logger, closeLog := setupLogging(cfg, io.Discard)
			defer closeLog()
			a, err := openApp(cfg, logger)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			switch {
			case simulate:
				if !cmd.Flags().Changed("speed") {
					speed = cfg.Simulator.Speed
				}
				sim := extension.NewSimulator(a.hub, extension.Options{Speed: speed, Logger: logger})
				go func() { _ = sim.Run(ctx) }()
			case cfg.Bridge.Enabled:
				srv := bridge.NewServer(a.hub, bridge.Options{Token: cfg.Bridge.Token, Logger: logger})
				go func() {
					if err := srv.ListenAndServe(ctx, cfg.Bridge.Addr); err != nil {
						logger.Error("bridge stopped", "error", err)
					}
				}()
			}

			notifier := update.DesktopNotifier(update.NoopDesktopNotifier{})
			if cfg.Notifications.Desktop {
				notifier = update.ExecDesktopNotifier{}
			}
			model := update.NewModel(update.Deps{
				Sync:     a.sync,
				Ledger:   a.ledger,
				Hub:      a.hub,
				Events:   a.events,
				Notifier: notifier,
			}, update.RuntimeConfigFrom(cfg))
			_, err = tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
			return err
		},
	}
	cmd.Flags().BoolVar(&simulate, "simulate", false, "drive sessions with the built-in extension simulator")
	cmd.Flags().Float64Var(&speed, "speed", 1, "simulated seconds per wall-clock second")
	return cmd
}

func newBridgeCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "bridge",
		Short: "Serve the extension bridge and log completed sessions headlessly",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			logger, closeLog := setupLogging(cfg, os.Stdout)
			defer closeLog()
			a, err := openApp(cfg, logger)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			logger.Info("starting questd bridge", "version", version, "addr", cfg.Bridge.Addr)

			runner := focus.NewRunner(a.sync, a.hub, focus.RunnerConfig{
				PollInterval: cfg.Focus.PollInterval,
				ProbeTimeout: cfg.Focus.ProbeTimeout,
			}, logger)
			runner.OnCompletion(func(c focus.Completion) {
				if c.Logged {
					logger.Info("session logged", "minutes", c.Minutes, "day", c.Day)
				}
			})
			go func() {
				if err := runner.Run(ctx); err != nil {
					logger.Error("runner stopped", "error", err)
				}
			}()

			srv := bridge.NewServer(a.hub, bridge.Options{Token: cfg.Bridge.Token, Logger: logger})
			return srv.ListenAndServe(ctx, cfg.Bridge.Addr)
		},
	}
}

func newQuestCmd(flags *globalFlags) *cobra.Command {
	questCmd := &cobra.Command{Use: "quest", Short: "Inspect and complete today's quests"}

	withApp := func(fn func(a *app, args []string) error) func(*cobra.Command, []string) error {
		return func(_ *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			logger, closeLog := setupLogging(cfg, os.Stderr)
			defer closeLog()
			a, err := openApp(cfg, logger)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()
			return fn(a, args)
		}
	}

	questCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List today's quests",
		Args:  cobra.NoArgs,
		RunE: withApp(func(a *app, _ []string) error {
			items := make([]views.QuestItemData, 0)
			for _, q := range a.ledger.Quests() {
				items = append(items, views.QuestItemData{
					ID:       q.ID,
					Title:    q.Title,
					Points:   q.Points,
					Category: string(q.Category),
					Done:     a.ledger.Completed(q.ID),
				})
			}
			fmt.Println(views.RenderQuestList(items))
			_, earned := a.ledger.EarnedToday()
			fmt.Printf("\npoints: %d | streak: %d | earned today: %d\n", a.ledger.Points(), a.ledger.Streak(), earned)
			return nil
		}),
	})
	questCmd.AddCommand(&cobra.Command{
		Use:   "done <id>",
		Short: "Toggle a quest's completion for today",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(func(a *app, args []string) error {
			completed, ok := a.ledger.ToggleByID(args[0])
			if !ok {
				return fmt.Errorf("unknown quest: %s", args[0])
			}
			state := "undone"
			if completed {
				state = "done"
			}
			fmt.Printf("%s %s (points: %d, streak: %d)\n", args[0], state, a.ledger.Points(), a.ledger.Streak())
			return nil
		}),
	})
	questCmd.AddCommand(&cobra.Command{
		Use:   "add <points> <title...>",
		Short: "Add a custom quest for today",
		Args:  cobra.MinimumNArgs(2),
		RunE: withApp(func(a *app, args []string) error {
			points, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("points must be a number: %w", err)
			}
			cq, ok := a.ledger.AddCustomQuest(strings.Join(args[1:], " "), points)
			if !ok {
				return fmt.Errorf("quest title is required")
			}
			fmt.Printf("added %s %q (+%d)\n", cq.ID, cq.Title, cq.Points)
			return nil
		}),
	})
	questCmd.AddCommand(&cobra.Command{
		Use:   "reset",
		Short: "Clear today's completions and refund their points",
		Args:  cobra.NoArgs,
		RunE: withApp(func(a *app, _ []string) error {
			a.ledger.ResetToday()
			fmt.Printf("today reset (points: %d)\n", a.ledger.Points())
			return nil
		}),
	})
	return questCmd
}

func newStatsCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print points, streak and focus history",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			logger, closeLog := setupLogging(cfg, os.Stderr)
			defer closeLog()
			a, err := openApp(cfg, logger)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			history := a.sync.History()
			today := a.ledger.Today()
			done, _ := a.ledger.EarnedToday()
			data := views.StatsData{
				Today:        today,
				TodayMinutes: history.Day(today),
				TotalMinutes: history.TotalMinutes(),
				Points:       a.ledger.Points(),
				Streak:       a.ledger.Streak(),
				LastActive:   a.ledger.LastActiveDate(),
				QuestsDone:   done,
				QuestsTotal:  len(a.ledger.Quests()),
				ActiveDays:   a.ledger.ActiveDays(),
			}
			for _, e := range history.Recent(14) {
				data.Recent = append(data.Recent, views.HistoryRow{Date: e.Date, Minutes: e.Minutes})
			}
			fmt.Println(views.RenderMarkdown(views.BuildStatsMarkdown(data), 80))
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("questd %s\n", version)
		},
	}
}
