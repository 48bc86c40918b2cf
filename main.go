package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"

	"xtouch-bridge/config"
	"xtouch-bridge/debug"
	"xtouch-bridge/keys"
	"xtouch-bridge/midi"
	"xtouch-bridge/router"
	"xtouch-bridge/theme"
	"xtouch-bridge/tui"
)

var (
	Version = "dev"

	// Command-line configuration, overriding the config file
	flags struct {
		configPath string
		surfaceIn  string
		surfaceOut string
		sinkIn     string
		sinkOut    string
		debug      bool
		noKeys     bool
		noStartup  bool
		pick       bool
		save       bool
	}
)

var rootCmd = &cobra.Command{
	Use:   "xtouch-bridge",
	Short: "Drive a Behringer X-Touch and bridge it to a second MIDI device",
	Long: `xtouch-bridge drives a Behringer X-Touch control surface and relays its
MIDI traffic to and from a second device.

Bank, mode, BPM tap, arrow and encoder controls are handled locally:
the segment display shows the bank and tempo, encoder rings follow their
values and the arrow buttons press the matching keys on this machine.
Everything else passes through untouched in both directions.`,
	Version:      Version,
	SilenceUsage: true,
	RunE:         runBridge,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the available MIDI ports",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "",
		"Config file (default ~/.config/xtouch-bridge/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&flags.debug, "debug", "d", false,
		"Log every event and mirror the log to debug.log in the config directory")

	rootCmd.Flags().StringVar(&flags.surfaceIn, "surface-in", "",
		"X-Touch input port (index or name)")
	rootCmd.Flags().StringVar(&flags.surfaceOut, "surface-out", "",
		"X-Touch output port (index or name)")
	rootCmd.Flags().StringVar(&flags.sinkIn, "sink-in", "",
		"Sink device input port (index or name)")
	rootCmd.Flags().StringVar(&flags.sinkOut, "sink-out", "",
		"Sink device output port (index or name)")
	rootCmd.Flags().BoolVar(&flags.noKeys, "no-keys", false,
		"Log arrow buttons instead of pressing keys")
	rootCmd.Flags().BoolVar(&flags.noStartup, "no-startup", false,
		"Skip the startup animation")
	rootCmd.Flags().BoolVarP(&flags.pick, "pick", "p", false,
		"Choose all four ports interactively")
	rootCmd.Flags().BoolVar(&flags.save, "save", false,
		"Save the resolved ports to the config file")

	rootCmd.AddCommand(listCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	var cfg *config.Config
	var err error
	if flags.configPath != "" {
		cfg, err = config.LoadFrom(flags.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}
	applyFlags(cfg, cmd.Flags().Changed)
	return cfg, nil
}

// applyFlags copies explicitly set flags over the config
func applyFlags(cfg *config.Config, changed func(name string) bool) {
	if changed("surface-in") {
		cfg.Surface.In = flags.surfaceIn
	}
	if changed("surface-out") {
		cfg.Surface.Out = flags.surfaceOut
	}
	if changed("sink-in") {
		cfg.Sink.In = flags.sinkIn
	}
	if changed("sink-out") {
		cfg.Sink.Out = flags.sinkOut
	}
	if flags.debug {
		cfg.DebugLog = true
	}
	if flags.noKeys {
		cfg.Keys = false
	}
	if flags.noStartup {
		cfg.StartupAnimation = false
	}
}

func setupLogging(cfg *config.Config) func() {
	if !cfg.DebugLog {
		return func() {}
	}
	path, err := config.LogPath()
	if err == nil {
		err = debug.Enable(path)
	}
	if err != nil {
		debug.Warn("main", "debug log unavailable: %v", err)
		return func() {}
	}
	debug.Info("main", "debug log at %s", path)
	return debug.Disable
}

func runBridge(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	defer setupLogging(cfg)()
	defer midi.CloseDriver()

	ports, err := midi.Scan(midi.ScanTimeout)
	if err != nil {
		return err
	}

	if err := pickPorts(ports, cfg, flags.pick); err != nil {
		return err
	}
	if flags.save {
		if err := saveConfig(cfg); err != nil {
			return err
		}
	}

	dev, err := ports.Open("surface", cfg.Surface.In, cfg.Surface.Out)
	if err != nil {
		return err
	}
	defer dev.Close()

	sink, err := ports.Open("sink", cfg.Sink.In, cfg.Sink.Out)
	if err != nil {
		return err
	}
	defer sink.Close()

	inj := keys.Open(cfg.Keys)
	defer inj.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	r := router.New(router.Config{
		Surface:      dev,
		Sink:         sink,
		Keys:         inj,
		PollInterval: cfg.PollInterval,
		FaderStep:    cfg.FaderStep,
	})

	if cfg.StartupAnimation {
		if err := r.Startup(ctx, cfg.StartupPause); err != nil && !errors.Is(err, context.Canceled) {
			debug.Warn("main", "%v", err)
		}
	} else if err := r.Surface().SetMode("channel"); err != nil {
		debug.Warn("main", "%v", err)
	}

	fmt.Fprintln(os.Stderr, "bridge running, ctrl+c to stop")
	return r.Run(ctx)
}

// pickPorts asks for every port left empty, or for all of them when force
// is set. Choices are stored as port indices.
func pickPorts(ports midi.Ports, cfg *config.Config, force bool) error {
	th := theme.New()
	fields := []struct {
		title string
		value *string
		names []string
	}{
		{"X-Touch input", &cfg.Surface.In, ports.InNames()},
		{"X-Touch output", &cfg.Surface.Out, ports.OutNames()},
		{"Sink device input", &cfg.Sink.In, ports.InNames()},
		{"Sink device output", &cfg.Sink.Out, ports.OutNames()},
	}
	for _, f := range fields {
		if *f.value != "" && !force {
			continue
		}
		idx, err := tui.Pick(f.title, f.names, th)
		if err != nil {
			return fmt.Errorf("%s: %w", f.title, err)
		}
		*f.value = strconv.Itoa(idx)
	}
	return nil
}

func saveConfig(cfg *config.Config) error {
	if flags.configPath != "" {
		return cfg.SaveTo(flags.configPath)
	}
	return cfg.Save()
}

func runList(cmd *cobra.Command, args []string) error {
	defer midi.CloseDriver()

	ports, err := midi.Scan(midi.ScanTimeout)
	if err != nil {
		return err
	}

	inIdx, outIdx := ports.DetectXTouch()
	mark := func(i, want int) string {
		if i == want {
			return theme.Category.Render("  <- X-Touch")
		}
		return ""
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Inputs:")
	for i, name := range ports.InNames() {
		fmt.Fprintf(out, "  %d: %s%s\n", i, name, mark(i, inIdx))
	}
	fmt.Fprintln(out, "Outputs:")
	for i, name := range ports.OutNames() {
		fmt.Fprintf(out, "  %d: %s%s\n", i, name, mark(i, outIdx))
	}
	return nil
}
