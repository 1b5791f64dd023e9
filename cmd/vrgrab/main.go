package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	_ "vrgrab/assets/scripts"
	"vrgrab/internal/components"
	"vrgrab/internal/config"
	"vrgrab/internal/engine"
	"vrgrab/internal/game"
	"vrgrab/internal/logging"
	"vrgrab/internal/world"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	configFile string
	sceneFile  string
	logLevel   string
	jsonLogs   bool
	logFile    string

	throwOpts = defaultThrowOptions()
	source    string
	power     float64
	noPlot    bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "vrgrab",
		Short:        "grab-and-throw sandbox",
		SilenceUsage: true,
		RunE:         runHarness,
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&sceneFile, "scene", "", "scene file (defaults to the built-in range)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&jsonLogs, "json-logs", false, "log as JSON")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "also write a rotating JSON log to this file")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "open the desktop harness",
		RunE:  runHarness,
	}

	simulateCmd := &cobra.Command{
		Use:   "simulate",
		Short: "run a scripted throw without a window",
		RunE:  runSimulate,
	}
	simulateCmd.Flags().StringVar(&throwOpts.Object, "object", throwOpts.Object, "grabbable to throw")
	simulateCmd.Flags().Float64Var(&throwOpts.FPS, "fps", throwOpts.FPS, "hand sample rate")
	simulateCmd.Flags().Float32Var(&throwOpts.PeakSpeed, "speed", throwOpts.PeakSpeed, "hand speed at release (m/s)")
	simulateCmd.Flags().Float32Var(&throwOpts.Elevation, "angle", throwOpts.Elevation, "release angle above horizontal (deg)")
	simulateCmd.Flags().IntVar(&throwOpts.SwingFrames, "swing", throwOpts.SwingFrames, "frames of acceleration before release")
	simulateCmd.Flags().IntVar(&throwOpts.FlightFrames, "flight", throwOpts.FlightFrames, "max frames to follow the object after release")
	simulateCmd.Flags().StringVar(&source, "source", "", "override velocity source (direct, average, peak)")
	simulateCmd.Flags().Float64Var(&power, "power", -1, "override throw power")
	simulateCmd.Flags().BoolVar(&noPlot, "no-plot", false, "skip the ascii plot")

	scriptsCmd := &cobra.Command{
		Use:   "scripts",
		Short: "list registered scripts",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range engine.RegisteredScripts() {
				fmt.Println(name)
			}
		},
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "manage config files",
	}
	configCmd.AddCommand(&cobra.Command{
		Use:   "init [path]",
		Short: "write the default config",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Save(args[0], config.DefaultConfig()); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", args[0])
			return nil
		},
	})
	configCmd.AddCommand(&cobra.Command{
		Use:   "check [path]",
		Short: "validate a config file",
		Args:  cobra.ExactArgs(1),
		RunE:  checkConfig,
	})

	rootCmd.AddCommand(runCmd, simulateCmd, scriptsCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if jsonLogs {
		cfg.Log.JSON = true
	}
	if logFile != "" {
		cfg.Log.File = logFile
	}
	if sceneFile != "" {
		cfg.Scene = sceneFile
	}
	return cfg, cfg.Validate()
}

// setup builds the logger and a configured world with the scene loaded.
func setup() (*world.World, *zap.Logger, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	logger, err := logging.New(cfg.Log)
	if err != nil {
		return nil, nil, err
	}

	w := world.New(logger)
	w.Configure(cfg)
	if cfg.Scene != "" {
		err = w.LoadScene(cfg.Scene)
	} else {
		err = w.LoadSceneData(world.DefaultScene)
	}
	if err != nil {
		logger.Sync()
		return nil, nil, err
	}
	return w, logger, nil
}

func runHarness(cmd *cobra.Command, args []string) error {
	w, logger, err := setup()
	if err != nil {
		return err
	}
	defer logger.Sync()

	g, err := game.New(w, "Head", logger)
	if err != nil {
		return err
	}
	g.Run()
	return nil
}

func runSimulate(cmd *cobra.Command, args []string) error {
	w, logger, err := setup()
	if err != nil {
		return err
	}
	defer logger.Sync()

	if err := overrideThrow(w); err != nil {
		return err
	}

	res, err := runThrow(w, throwOpts, logger)
	if err != nil {
		return err
	}

	if !noPlot {
		graph := asciigraph.PlotMany([][]float64{res.HandSpeeds, res.Heights},
			asciigraph.Height(12),
			asciigraph.Width(80),
			asciigraph.SeriesColors(asciigraph.Blue, asciigraph.Red),
			asciigraph.Caption(fmt.Sprintf("hand speed m/s (blue), %s height m (red)", throwOpts.Object)),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	v := res.ReleaseVelocity
	fmt.Fprintf(tw, "release velocity\t(%.2f, %.2f, %.2f)\n", v.X, v.Y, v.Z)
	fmt.Fprintf(tw, "landed at\t(%.2f, %.2f, %.2f)\n", res.Landing.X, res.Landing.Y, res.Landing.Z)
	fmt.Fprintf(tw, "score\t%d\n", res.Score)
	return tw.Flush()
}

// overrideThrow applies --source and --power to every grabbable in the scene.
func overrideThrow(w *world.World) error {
	var src components.VelocitySource
	if source != "" {
		parsed, err := components.ParseVelocitySource(source)
		if err != nil {
			return err
		}
		src = parsed
	}
	for _, obj := range w.Scene.GameObjects {
		grab, ok := components.AsGrabbable(obj)
		if !ok {
			continue
		}
		if source != "" {
			grab.VelocitySource = src
		}
		if power >= 0 {
			grab.ThrowPower = float32(power)
		}
	}
	return nil
}

func checkConfig(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(args[0])
	if err != nil {
		return err
	}
	fmt.Printf("%s: ok (%d controllers, fixed dt %.4f)\n", args[0], len(cfg.Controllers), cfg.Physics.FixedDt)
	return nil
}
