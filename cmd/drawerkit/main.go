package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ensigniasec/drawerkit/internal/config"
	"github.com/ensigniasec/drawerkit/internal/drawer"
	"github.com/ensigniasec/drawerkit/internal/presentation"
	"github.com/ensigniasec/drawerkit/internal/report"
	"github.com/ensigniasec/drawerkit/internal/tui"
)

const defaultMaxFrames = 10000

//nolint:gochecknoglobals // Cobra requires package-level vars for flag bindings in current structure.
var (
	// Version metadata populated at build time via -ldflags.
	releaseVersion = "dev"
	commit         = "none"
	date           = "unknown"

	// Used for flags.
	configFile = config.DefaultPath
	logFile    string
	verbose    bool
	jsonOutput bool

	containerHeight float64
	collapsedHeight float64
	partialHeight   float64
	fromState       string
	toState         string
	fps             int
	maxFrames       int
	showFormat      string

	rootCmd = &cobra.Command{
		Use:   "drawerkit",
		Short: "A draggable multi-state drawer for the terminal.",
		Long:  `drawerkit presents a bottom drawer that rests collapsed, partially expanded or fully expanded, animates between those states and follows mouse drags. Use it interactively with 'demo', or inspect the drawer geometry and transitions without a terminal UI.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				logrus.SetLevel(logrus.DebugLevel)
			}
		},
	}
)

//nolint:gochecknoinits // Cobra command wiring performed in init in current structure.
func init() {
	// Route logs to stderr to avoid polluting stdout, especially for --json output.
	logrus.SetOutput(os.Stderr)

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable detailed logging output")
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", config.DefaultPath, "Path to a YAML, TOML or JSON drawer config")

	demoCmd.Flags().StringVar(&logFile, "log-file", "", "Optional: write logs to this file while the demo owns the terminal")

	for _, c := range []*cobra.Command{anchorsCmd, simulateCmd} {
		c.Flags().Float64Var(&containerHeight, "height", 40, "Container height in rows")
		c.Flags().Float64Var(&collapsedHeight, "collapsed", -1, "Collapsed drawer height (defaults to the config demo value)")
		c.Flags().Float64Var(&partialHeight, "partial", -1, "Partially expanded drawer height (defaults to the config demo value)")
		c.Flags().BoolVar(&jsonOutput, "json", false, "Output results in JSON format instead of rich text")
	}
	simulateCmd.Flags().StringVar(&fromState, "from", "partial", "State the drawer starts in")
	simulateCmd.Flags().StringVar(&toState, "to", "full", "State the drawer animates to")
	simulateCmd.Flags().IntVar(&fps, "fps", 0, "Frames per second (defaults to the config demo value)")
	simulateCmd.Flags().IntVar(&maxFrames, "max-frames", defaultMaxFrames, "Stop after this many frames")

	configShowCmd.Flags().StringVar(&showFormat, "format", "yaml", "Output format: yaml, toml or json")

	rootCmd.AddCommand(demoCmd)
	rootCmd.AddCommand(anchorsCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(configCmd)

	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)

	// Built-in version flag: set version string and a custom template.
	rootCmd.Version = releaseVersion
	rootCmd.Annotations = map[string]string{"commit": commit, "date": date}
	rootCmd.SetVersionTemplate("{{printf \"%s %s\\ncommit: %s\\ndate: %s\\n\" .DisplayName .Version (index .Annotations \"commit\") (index .Annotations \"date\")}}")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logrus.Fatal(err)
	}
}

func main() {
	Execute()
}

//nolint:gochecknoglobals // Cobra command is defined at package scope in current structure.
var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run the interactive drawer demo",
	Long:  "Open a full-screen demo: drag the drawer with the mouse, click outside to dismiss, or use the keys listed under '?'.",
	Run: func(cmd *cobra.Command, args []string) {
		if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
			logrus.Fatal("demo needs an interactive terminal; try 'drawerkit simulate' instead")
		}
		f := mustLoadConfig()

		var logOut io.Writer
		if logFile != "" {
			out, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
			if err != nil {
				logrus.Fatalf("Unable to open log file: %v", err)
			}
			defer out.Close()
			logOut = out
		}

		if err := tui.Run(cmd.Context(), f, logOut); err != nil {
			logrus.Fatalf("Demo failed: %v", err)
		}
	},
}

//nolint:gochecknoglobals // Cobra command is defined at package scope in current structure.
var anchorsCmd = &cobra.Command{
	Use:   "anchors",
	Short: "Print the resting position of every drawer state",
	Long:  "Compute where the drawer rests in each discrete state for a container of the given height, along with the corner radius, handle and backdrop alpha there.",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		f := mustLoadConfig()
		c := mustController(f)
		if err := report.PrintAnchors(cmd.OutOrStdout(), report.Anchors(c), jsonOutput); err != nil {
			logrus.Fatal(err)
		}
	},
}

//nolint:gochecknoglobals // Cobra command is defined at package scope in current structure.
var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Trace one transition frame by frame",
	Long:  "Place the drawer in --from, animate it to --to with the configured timing curve, and print the drawer surface after every frame.",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		from, err := drawer.ParseState(fromState)
		if err != nil {
			logrus.Fatalf("Invalid --from: %v", err)
		}
		to, err := drawer.ParseState(toState)
		if err != nil {
			logrus.Fatalf("Invalid --to: %v", err)
		}
		f := mustLoadConfig()
		if fps <= 0 {
			fps = f.Demo.FPS
		}

		c := mustController(f)
		c.SetDrawerState(from, false)
		sim := report.Simulate(c, to, fps, maxFrames)
		if err := report.PrintSimulation(cmd.OutOrStdout(), sim, jsonOutput); err != nil {
			logrus.Fatal(err)
		}
	},
}

//nolint:gochecknoglobals // Cobra command is defined at package scope in current structure.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the drawer configuration file",
}

//nolint:gochecknoglobals // Cobra command is defined at package scope in current structure.
var configInitCmd = &cobra.Command{
	Use:   "init [PATH]",
	Short: "Write the default configuration",
	Long:  "Write the default configuration to PATH, or to --config when no path is given. The format follows the file extension. Existing files are left untouched.",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		path := configFile
		if len(args) == 1 {
			path = args[0]
		}
		if _, err := config.FormatFor(path); err != nil {
			logrus.Fatal(err)
		}
		if exists, err := config.Exists(path); err != nil {
			logrus.Fatal(err)
		} else if exists {
			logrus.Fatalf("Refusing to overwrite existing config at %s", path)
		}
		if err := config.Save(path, config.Default()); err != nil {
			logrus.Fatal(err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote default config to %s\n", path)
	},
}

//nolint:gochecknoglobals // Cobra command is defined at package scope in current structure.
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Long:  "Print the configuration loaded from --config, with defaults filled in for anything the file leaves out.",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		format, err := config.ParseFormat(showFormat)
		if err != nil {
			logrus.Fatal(err)
		}
		f := mustLoadConfig()
		data, err := config.Marshal(format, f)
		if err != nil {
			logrus.Fatal(err)
		}
		_, _ = cmd.OutOrStdout().Write(data)
	},
}

func mustLoadConfig() *config.File {
	f, err := config.Load(configFile)
	if err != nil {
		logrus.Fatalf("Unable to load config: %v", err)
	}
	logrus.WithField("path", configFile).Debug("loaded drawer config")
	return f
}

// mustController builds a controller for the geometry flags, falling back to
// the demo heights in f.
func mustController(f *config.File) *presentation.Controller {
	cfg, err := f.ToConfiguration()
	if err != nil {
		logrus.Fatal(err)
	}
	if containerHeight < 0 {
		logrus.Fatalf("Invalid --height %v: must not be negative", containerHeight)
	}
	collapsed, partial := collapsedHeight, partialHeight
	if collapsed < 0 {
		collapsed = f.Demo.CollapsedHeight
	}
	if partial < 0 {
		partial = f.Demo.PartialHeight
	}

	c := presentation.New(cfg, fixedHeights{collapsed: collapsed, partial: partial},
		presentation.WithLogger(logrus.StandardLogger()))
	c.SetContainerBounds(drawer.Rect{Height: containerHeight})
	return c
}

type fixedHeights struct{ collapsed, partial float64 }

func (h fixedHeights) HeightOfCollapsedDrawer() float64         { return h.collapsed }
func (h fixedHeights) HeightOfPartiallyExpandedDrawer() float64 { return h.partial }
