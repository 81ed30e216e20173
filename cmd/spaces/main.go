package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/yourusername/spaces-cli/internal/client"
	"github.com/yourusername/spaces-cli/internal/config"
	"github.com/yourusername/spaces-cli/internal/engine"
	"github.com/yourusername/spaces-cli/internal/logging"
	"github.com/yourusername/spaces-cli/internal/output"
	"github.com/yourusername/spaces-cli/internal/server"
	"github.com/yourusername/spaces-cli/internal/state"
	"github.com/yourusername/spaces-cli/internal/types"
)

var (
	socketPath string
	timeout    time.Duration
	configPath string
	jsonOutput bool
	noColor    bool
	debugMode  bool

	// displays flags
	showVisual  bool
	showASCII   bool
	showUnicode bool
	showWidth   int
	showHeight  int

	// history record flags
	recordWindows int

	// Color functions
	successColor = color.New(color.FgGreen, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
	infoColor    = color.New(color.FgCyan)
	keyColor     = color.New(color.FgYellow)
)

// rootCmd is the base command
var rootCmd = &cobra.Command{
	Use:   "spaces",
	Short: "Workspace-aware focus navigation for macOS",
	Long: `Spaces moves keyboard focus between windows, workspace apps and screens.

It is meant to be bound to hotkeys: every invocation loads the config and the
saved focus history, performs one action through the introspection server,
and saves the history again.`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// pingCmd tests server connectivity
var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Test connection to the introspection server",
	Long:  `Sends a ping request to the server to test connectivity and response time.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c := client.NewClient(socketPath, timeout)
		defer c.Close()

		start := time.Now()
		result, err := c.Ping(context.Background())
		elapsed := time.Since(start)

		if err != nil {
			return fmt.Errorf("ping failed: %w", err)
		}

		if jsonOutput {
			return printJSON(result)
		}

		successColor.Println("✓ Pong received")
		fmt.Printf("Response time: %v\n", elapsed)
		if ts, ok := result["timestamp"].(float64); ok {
			fmt.Printf("Server timestamp: %v\n", time.Unix(int64(ts), 0))
		}

		return nil
	},
}

// MARK: - Actions

// runAction loads everything an action needs, runs it and saves the
// focus history back.
func runAction(name string) error {
	return withEngine(true, func(ctx context.Context, e *engine.Engine, rs *state.RuntimeState) error {
		if err := e.Run(ctx, name); err != nil {
			if errors.Is(err, engine.ErrUnknownAction) {
				return fmt.Errorf("%w (available: %s)", err, strings.Join(e.ActionNames(), ", "))
			}
			return err
		}
		return nil
	})
}

func actionCmd(use, short, action string) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAction(action)
		},
	}
}

// focusCmd moves focus in a direction
var focusCmd = &cobra.Command{
	Use:   "focus <left|right|up|down>",
	Short: "Move focus to the nearest window in a direction",
	Long: `Moves focus to the nearest visible window whose frame extends past the
focused window in the given direction and overlaps it on the other axis.`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"left", "right", "up", "down"},
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, ok := types.ParseDirection(args[0])
		if !ok {
			return fmt.Errorf("invalid direction %q (expected left, right, up or down)", args[0])
		}

		return withEngine(true, func(ctx context.Context, e *engine.Engine, rs *state.RuntimeState) error {
			logging.Debug().Str("direction", dir.String()).Msg("directional focus")
			e.Focus(ctx, dir)
			return nil
		})
	},
}

// appCmd is the parent command for workspace app cycling
var appCmd = &cobra.Command{
	Use:   "app",
	Short: "Cycle through the apps of the active workspace",
}

// windowCmd is the parent command for workspace window cycling
var windowCmd = &cobra.Command{
	Use:   "window",
	Short: "Cycle through the windows of the active workspace",
}

// screenCmd is the parent command for screen switching
var screenCmd = &cobra.Command{
	Use:   "screen",
	Short: "Move focus to another screen",
	Long: `Moves focus to the next or previous screen, ordered left to right.
The app last focused on that screen is preferred.`,
}

// runCmd dispatches an action by name, for hotkey daemons
var runCmd = &cobra.Command{
	Use:   "run <action>",
	Short: "Run an action by name",
	Long: `Runs one of the named actions, for binding from a hotkey daemon.

Actions: focus-left, focus-right, focus-up, focus-down,
next-workspace-app, previous-workspace-app,
next-workspace-window, previous-workspace-window,
focus-next-screen, focus-previous-screen.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAction(args[0])
	},
}

// MARK: - Workspace Commands

// workspaceCmd is the parent command for workspace subcommands
var workspaceCmd = &cobra.Command{
	Use:   "workspace",
	Short: "Inspect workspaces and their displays",
}

// workspaceListCmd lists configured workspaces with resolved displays
var workspaceListCmd = &cobra.Command{
	Use:   "list",
	Short: "List workspaces",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEngine(false, func(ctx context.Context, e *engine.Engine, rs *state.RuntimeState) error {
			repo := e.Workspaces()
			resolver := e.Resolver()

			all := repo.All()
			rows := make([]output.WorkspaceRow, 0, len(all))
			for i := range all {
				ws := &all[i]
				row := output.WorkspaceRow{
					ID:          ws.ID,
					Name:        ws.Name,
					Strategy:    ws.Strategy().String(),
					Apps:        ws.BundleIDs(),
					CanActivate: resolver.CanActivate(ctx, ws),
				}
				for _, d := range resolver.Resolve(ctx, ws) {
					row.Displays = append(row.Displays, d.Name)
				}
				rows = append(rows, row)
			}

			if jsonOutput {
				return printJSON(rows)
			}
			if len(rows) == 0 {
				infoColor.Println("No workspaces configured")
				return nil
			}
			output.PrintWorkspacesTable(os.Stdout, rows)
			return nil
		})
	},
}

// workspaceDisplaysCmd resolves the displays of one workspace
var workspaceDisplaysCmd = &cobra.Command{
	Use:   "displays <id>",
	Short: "Show the displays a workspace resolves to",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEngine(false, func(ctx context.Context, e *engine.Engine, rs *state.RuntimeState) error {
			ws, err := e.Workspaces().Get(args[0])
			if err != nil {
				return err
			}

			displays := e.Resolver().Resolve(ctx, ws)
			if jsonOutput {
				return printJSON(displays)
			}

			keyColor.Printf("Workspace %s (%s):\n", ws.ID, ws.Strategy())
			if len(displays) == 0 {
				infoColor.Println("  no display")
				return nil
			}
			for _, d := range displays {
				fmt.Printf("  %s\n", d.Name)
			}
			if active, ok := e.Resolver().ActiveDisplay(ctx, ws); ok {
				keyColor.Print("Active: ")
				fmt.Println(active.Name)
			}
			return nil
		})
	},
}

// workspaceCanActivateCmd reports whether a workspace has somewhere to go
var workspaceCanActivateCmd = &cobra.Command{
	Use:   "can-activate <id>",
	Short: "Check whether a workspace resolves to a connected display",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEngine(false, func(ctx context.Context, e *engine.Engine, rs *state.RuntimeState) error {
			ws, err := e.Workspaces().Get(args[0])
			if err != nil {
				return err
			}

			ok := e.Resolver().CanActivate(ctx, ws)
			if jsonOutput {
				return printJSON(map[string]interface{}{"workspace": ws.ID, "canActivate": ok})
			}
			if !ok {
				return fmt.Errorf("workspace %s has no connected display", ws.ID)
			}
			successColor.Printf("✓ Workspace %s can be activated\n", ws.ID)
			return nil
		})
	},
}

// workspaceSetActiveCmd records which workspace is active on a display
var workspaceSetActiveCmd = &cobra.Command{
	Use:   "set-active <display> <id>",
	Short: "Mark a workspace as active on a display",
	Long: `Records the workspace shown on a display. Cycling commands use it to
decide which workspace the focused window belongs to.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, id := args[0], args[1]
		return withEngine(true, func(ctx context.Context, e *engine.Engine, rs *state.RuntimeState) error {
			if _, err := e.Workspaces().Get(id); err != nil {
				return err
			}

			// Aliases and unplugged displays are stored under the display
			// they resolve to right now.
			d, ok := e.Resolver().ResolveSingle(ctx, name)
			if !ok {
				return fmt.Errorf("no connected display for %q", name)
			}
			rs.SetActiveWorkspace(d.Name, id)
			successColor.Printf("✓ Workspace %s active on %s\n", id, d.Name)
			return nil
		})
	},
}

// workspaceClearActiveCmd forgets the active workspace of a display
var workspaceClearActiveCmd = &cobra.Command{
	Use:   "clear-active <display>",
	Short: "Forget which workspace is active on a display",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rs, err := state.LoadState()
		if err != nil {
			return fmt.Errorf("failed to load state: %w", err)
		}

		rs.ClearActiveWorkspace(args[0])
		if err := rs.Save(); err != nil {
			return fmt.Errorf("failed to save state: %w", err)
		}

		successColor.Printf("✓ Cleared active workspace on %s\n", args[0])
		return nil
	},
}

// MARK: - Display and Window Commands

// displaysCmd lists connected displays
var displaysCmd = &cobra.Command{
	Use:   "displays",
	Short: "List connected displays",
	Long: `Lists connected displays with the workspace active on each.
With --visual, draws the display arrangement and the visible windows.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rs, err := state.LoadState()
		if err != nil {
			return fmt.Errorf("failed to load state: %w", err)
		}

		return withPort(func(ctx context.Context, port server.Port) error {
			displays, err := port.Displays(ctx)
			if err != nil {
				return fmt.Errorf("failed to list displays: %w", err)
			}

			if showVisual {
				a, err := buildArrangement(ctx, port, displays)
				if err != nil {
					return err
				}
				output.PrintArrangement(os.Stdout, a, getArrangementOptions())
				return nil
			}

			if jsonOutput {
				return printJSON(displays)
			}
			output.PrintDisplaysTable(os.Stdout, displays, rs.ActiveWorkspaces)
			return nil
		})
	},
}

// windowsCmd lists the windows of visible apps
var windowsCmd = &cobra.Command{
	Use:   "windows",
	Short: "List windows of visible apps",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		all, _ := cmd.Flags().GetBool("all")

		return withPort(func(ctx context.Context, port server.Port) error {
			procs, err := port.VisibleProcesses(ctx)
			if err != nil {
				return fmt.Errorf("failed to list apps: %w", err)
			}
			displays, err := port.Displays(ctx)
			if err != nil {
				return fmt.Errorf("failed to list displays: %w", err)
			}

			var windows []server.Window
			if all {
				windows, err = port.AllWindows(ctx, server.PIDs(procs))
			} else {
				windows, err = port.Windows(ctx, server.PIDs(procs))
			}
			if err != nil {
				return fmt.Errorf("failed to list windows: %w", err)
			}

			if jsonOutput {
				return printJSON(windows)
			}

			byPID := make(map[int]server.Process, len(procs))
			for _, p := range procs {
				byPID[p.PID] = p
			}
			output.PrintWindowsTable(os.Stdout, windows, byPID, displays)
			return nil
		})
	},
}

// buildArrangement collects the qualifying windows of visible apps.
func buildArrangement(ctx context.Context, port server.Port, displays []server.Display) (output.Arrangement, error) {
	procs, err := port.VisibleProcesses(ctx)
	if err != nil {
		return output.Arrangement{}, fmt.Errorf("failed to list apps: %w", err)
	}
	windows, err := port.Windows(ctx, server.PIDs(procs))
	if err != nil {
		return output.Arrangement{}, fmt.Errorf("failed to list windows: %w", err)
	}

	byPID := make(map[int]server.Process, len(procs))
	for _, p := range procs {
		byPID[p.PID] = p
	}

	a := output.Arrangement{Displays: displays}
	for _, w := range windows {
		proc, ok := byPID[w.PID]
		if !ok || proc.IsHidden || !w.Qualifies() {
			continue
		}
		a.Windows = append(a.Windows, output.ArrangedWindow{
			Window:  w,
			App:     proc.Name,
			Focused: w.IsFocused && proc.IsFrontmost,
		})
	}
	return a, nil
}

// MARK: - History Commands

// historyCmd is the parent command for focus history subcommands
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Manage the per-display focus history",
}

// historyShowCmd prints the focus history
var historyShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the focus history, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rs, err := state.LoadState()
		if err != nil {
			return fmt.Errorf("failed to load state: %w", err)
		}

		entries := rs.Tracker().Entries()
		if jsonOutput {
			return printJSON(entries)
		}
		if len(entries) == 0 {
			infoColor.Println("Focus history is empty")
			return nil
		}
		output.PrintHistoryTable(os.Stdout, entries)
		return nil
	},
}

// historyRecordCmd records a focus event
var historyRecordCmd = &cobra.Command{
	Use:   "record [<display> <bundleId>]",
	Short: "Record which app holds focus on a display",
	Long: `Records a focus event in the history. Without arguments the focused app
and its display are read from the introspection server. Bind this to the
app-activated event of your hotkey daemon.`,
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) != 0 && len(args) != 2 {
			return fmt.Errorf("accepts 0 or 2 arg(s), received %d", len(args))
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEngine(true, func(ctx context.Context, e *engine.Engine, rs *state.RuntimeState) error {
			if len(args) == 0 {
				e.RecordFocus(ctx)
				return nil
			}
			e.History().Record(args[0], args[1], recordWindows)
			logging.Debug().Str("display", args[0]).Str("app", args[1]).Msg("recorded focus")
			return nil
		})
	},
}

// historyResetCmd forgets the focus history
var historyResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Forget the focus history",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		err := withEngine(true, func(ctx context.Context, e *engine.Engine, rs *state.RuntimeState) error {
			e.ResetHistory()
			return nil
		})
		if err != nil {
			return err
		}

		successColor.Println("✓ Focus history has been reset")
		return nil
	},
}

// MARK: - State Commands

// stateCmd is the parent command for state subcommands
var stateCmd = &cobra.Command{
	Use:   "state",
	Short: "Manage runtime state",
	Long:  `Commands for showing and resetting the saved focus history and active workspaces.`,
}

// stateShowCmd shows runtime state
var stateShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show runtime state",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rs, err := state.LoadState()
		if err != nil {
			return fmt.Errorf("failed to load state: %w", err)
		}

		if jsonOutput {
			return printJSON(rs)
		}

		summary := rs.Summary()
		keyColor.Print("State Version: ")
		fmt.Printf("%v\n", summary["version"])
		keyColor.Print("Last Updated: ")
		fmt.Printf("%v\n", summary["lastUpdated"])
		keyColor.Print("History Entries: ")
		fmt.Printf("%v\n", summary["historyEntries"])

		if len(rs.ActiveWorkspaces) > 0 {
			keyColor.Println("\nActive Workspaces:")
			displays := make([]string, 0, len(rs.ActiveWorkspaces))
			for d := range rs.ActiveWorkspaces {
				displays = append(displays, d)
			}
			sort.Strings(displays)
			for _, d := range displays {
				fmt.Printf("  %s: %s\n", d, rs.ActiveWorkspaces[d])
			}
		}

		return nil
	},
}

// stateResetCmd resets runtime state
var stateResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear all runtime state",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rs, err := state.LoadState()
		if err != nil {
			return fmt.Errorf("failed to load state: %w", err)
		}

		rs.Reset()
		if err := rs.Save(); err != nil {
			return fmt.Errorf("failed to save state: %w", err)
		}

		successColor.Println("✓ State has been reset")
		return nil
	},
}

// MARK: - Config Commands

// configCmd is the parent command for config subcommands
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long:  `Commands for showing and validating the workspace configuration.`,
}

// configShowCmd shows current config
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if jsonOutput {
			return printJSON(cfg)
		}

		enc := yaml.NewEncoder(os.Stdout)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(cfg)
	},
}

// configPathCmd prints the default config location
var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the default configuration file path",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(config.GetConfigPath())
	},
}

// configValidateCmd validates config file
var configValidateCmd = &cobra.Command{
	Use:   "validate [path]",
	Short: "Validate configuration file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configPath
		if len(args) > 0 {
			path = args[0]
		}

		cfg, err := config.LoadConfig(path)
		if err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}

		aliases, _ := cfg.GetDisplayAliases()

		successColor.Println("✓ Configuration is valid")
		fmt.Printf("  Display mode: %s\n", cfg.GetDisplayMode())
		fmt.Printf("  Workspaces: %d %v\n", len(cfg.Workspaces), cfg.GetWorkspaceIDs())
		fmt.Printf("  Floating apps: %d\n", len(cfg.FloatingApps))
		fmt.Printf("  Display aliases: %d\n", len(aliases))

		return nil
	},
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&socketPath, "socket", client.DefaultSocketPath, "Unix socket path")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", client.DefaultTimeout, "Request timeout")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ~/.config/spaces/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(pingCmd)
	rootCmd.AddCommand(runCmd)

	// Focus and cycling actions
	rootCmd.AddCommand(focusCmd)

	rootCmd.AddCommand(appCmd)
	appCmd.AddCommand(actionCmd("next", "Focus the next workspace app", "next-workspace-app"))
	appCmd.AddCommand(actionCmd("prev", "Focus the previous workspace app", "previous-workspace-app"))

	rootCmd.AddCommand(windowCmd)
	windowCmd.AddCommand(actionCmd("next", "Focus the next workspace window", "next-workspace-window"))
	windowCmd.AddCommand(actionCmd("prev", "Focus the previous workspace window", "previous-workspace-window"))

	rootCmd.AddCommand(screenCmd)
	screenCmd.AddCommand(actionCmd("next", "Focus the next screen", "focus-next-screen"))
	screenCmd.AddCommand(actionCmd("prev", "Focus the previous screen", "focus-previous-screen"))

	// Workspaces
	rootCmd.AddCommand(workspaceCmd)
	workspaceCmd.AddCommand(workspaceListCmd)
	workspaceCmd.AddCommand(workspaceDisplaysCmd)
	workspaceCmd.AddCommand(workspaceCanActivateCmd)
	workspaceCmd.AddCommand(workspaceSetActiveCmd)
	workspaceCmd.AddCommand(workspaceClearActiveCmd)

	// Displays and windows
	rootCmd.AddCommand(displaysCmd)
	displaysCmd.Flags().BoolVar(&showVisual, "visual", false, "Draw the display arrangement")
	displaysCmd.Flags().BoolVar(&showASCII, "ascii", false, "Force ASCII mode (no Unicode)")
	displaysCmd.Flags().BoolVar(&showUnicode, "unicode", false, "Force Unicode mode")
	displaysCmd.Flags().IntVar(&showWidth, "width", 0, "Override terminal width")
	displaysCmd.Flags().IntVar(&showHeight, "height", 0, "Override terminal height")

	rootCmd.AddCommand(windowsCmd)
	windowsCmd.Flags().Bool("all", false, "Use the system window list, including full-screen spaces and helper windows")

	// History and state
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyRecordCmd)
	historyCmd.AddCommand(historyResetCmd)
	historyRecordCmd.Flags().IntVar(&recordWindows, "windows", 1, "Number of windows the app has")

	rootCmd.AddCommand(stateCmd)
	stateCmd.AddCommand(stateShowCmd)
	stateCmd.AddCommand(stateResetCmd)

	// Config
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configValidateCmd)
	configCmd.AddCommand(configPathCmd)

	// Disable color if requested
	cobra.OnInitialize(func() {
		if noColor {
			color.NoColor = true
		}
	})

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if err := logging.Init(debugMode); err != nil {
			// Logging is best effort; the command still runs.
			fmt.Fprintf(os.Stderr, "warning: logging disabled: %v\n", err)
		}
		return nil
	}
}

func main() {
	err := rootCmd.Execute()
	logging.Close()

	if err != nil {
		printError(err.Error())
		os.Exit(1)
	}
}

// Helper functions

// loadConfig loads the config file. A missing default config is not an
// error: directional focus and screen switching work without workspaces.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		if configPath == "" && errors.Is(err, config.ErrConfigNotFound) {
			logging.Debug().Msg("no config file, running without workspaces")
			return &config.Config{}, nil
		}
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// withPort runs fn against the introspection server.
func withPort(fn func(ctx context.Context, port server.Port) error) error {
	c := client.NewClient(socketPath, timeout)
	defer c.Close()

	return fn(context.Background(), server.NewRemote(c))
}

// withEngine builds an engine from the config and saved state, runs fn and,
// when save is set, writes the focus history and state back to disk.
func withEngine(save bool, fn func(ctx context.Context, e *engine.Engine, rs *state.RuntimeState) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	rs, err := state.LoadState()
	if err != nil {
		return fmt.Errorf("failed to load state: %w", err)
	}

	return withPort(func(ctx context.Context, port server.Port) error {
		e, err := engine.New(port, cfg, rs)
		if err != nil {
			return fmt.Errorf("failed to start engine: %w", err)
		}

		if err := fn(ctx, e, rs); err != nil {
			return err
		}
		if !save {
			return nil
		}

		e.Flush()
		if err := rs.Save(); err != nil {
			return fmt.Errorf("failed to save state: %w", err)
		}
		return nil
	})
}

// getArrangementOptions builds options from flags
func getArrangementOptions() output.ArrangementOptions {
	opts := output.DefaultArrangementOptions()

	if showASCII {
		opts.UseUnicode = false
	}
	if showUnicode {
		opts.UseUnicode = true
	}
	if showWidth > 0 {
		opts.MaxWidth = showWidth
	}
	if showHeight > 0 {
		opts.MaxHeight = showHeight
	}

	return opts
}

func printJSON(data interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

func printError(msg string) {
	if noColor {
		fmt.Fprintln(os.Stderr, "Error:", msg)
	} else {
		errorColor.Fprint(os.Stderr, "✗ Error: ")
		fmt.Fprintln(os.Stderr, msg)
	}
}
