package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/molviz/internal/analysis"
	"github.com/san-kum/molviz/internal/config"
	"github.com/san-kum/molviz/internal/export"
	"github.com/san-kum/molviz/internal/gui"
	"github.com/san-kum/molviz/internal/molecule"
	"github.com/san-kum/molviz/internal/scene"
	"github.com/san-kum/molviz/internal/storage"
	"github.com/san-kum/molviz/internal/viz"
)

var errMissingFile = errors.New("missing structure file")

var (
	dataDir    string
	configFile string
	preset     string
	hbScale    float64
	bScale     float64
	pick       bool
	// render
	outPath    string
	frames     int
	renderSize int
	// info
	asJSON bool
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("molviz: ")

	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errMissingFile) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "molviz <file>",
		Short:         "molecule viewer with atom radius and resolution sliders",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runView,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataDir, "data", config.DefaultDataDir, "data directory")
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.Float64Var(&hbScale, "hb-scale", 1.0, "bond distance scale for pairs involving hydrogen")
	pf.Float64Var(&bScale, "b-scale", 1.0, "bond distance scale for heavy atom pairs")
	rootCmd.Flags().BoolVar(&pick, "pick", false, "choose the file with a dialog")

	viewCmd := &cobra.Command{
		Use:   "view <file>",
		Short: "open the structure in a window",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runView,
	}
	viewCmd.Flags().BoolVar(&pick, "pick", false, "choose the file with a dialog")

	tuiCmd := &cobra.Command{
		Use:   "tui [file|dir]",
		Short: "terminal viewer; a directory opens a file picker",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runTUI,
	}

	infoCmd := &cobra.Command{
		Use:   "info <file>",
		Short: "print structure statistics",
		Args:  cobra.ExactArgs(1),
		RunE:  runInfo,
	}
	infoCmd.Flags().BoolVar(&asJSON, "json", false, "print as json")

	renderCmd := &cobra.Command{
		Use:   "render <file>",
		Short: "render a still image or spinning animation",
		Args:  cobra.ExactArgs(1),
		RunE:  runRender,
	}
	renderCmd.Flags().StringVarP(&outPath, "out", "o", "", "output .png or .gif (default: into the data directory)")
	renderCmd.Flags().IntVar(&frames, "frames", config.DefaultFrames, "frames in a full turn")
	renderCmd.Flags().IntVar(&renderSize, "size", config.DefaultRenderSize, "image width and height")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved renders",
		Args:  cobra.NoArgs,
		RunE:  listRenders,
	}

	showCmd := &cobra.Command{
		Use:   "show <render_id>",
		Short: "print render metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  showRender,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tRESOLUTION\tWINDOW\tRENDER\tFRAMES")
			for _, name := range config.ListPresets() {
				c, err := config.GetPreset(name)
				if err != nil {
					return err
				}
				res := "auto"
				if c.Atoms.Resolution > 0 {
					res = fmt.Sprintf("%g", c.Atoms.Resolution)
				}
				fmt.Fprintf(w, "%s\t%s\t%dx%d\t%d\t%d\n", name, res, c.Window.Width, c.Window.Height, c.Render.Size, c.Render.Frames)
			}
			return w.Flush()
		},
	}

	rootCmd.AddCommand(viewCmd, tuiCmd, infoCmd, renderCmd, listCmd, showCmd, presetsCmd)
	return rootCmd
}

// loadConfig resolves the preset, then the config file, then explicit
// flags, each overriding the last.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		p, err := config.GetPreset(preset)
		if err != nil {
			return nil, fmt.Errorf("%w (available: %s)", err, strings.Join(config.ListPresets(), ", "))
		}
		cfg = p
	}
	if configFile != "" {
		c, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = c
	}
	if cmd.Flags().Changed("data") || cfg.DataDir == "" {
		cfg.DataDir = dataDir
	}
	if cmd.Flags().Changed("hb-scale") {
		cfg.Reader.HBScale = hbScale
	}
	if cmd.Flags().Changed("b-scale") {
		cfg.Reader.BScale = bScale
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func readStructure(path string, cfg *config.Config) (*molecule.Structure, error) {
	st, err := molecule.ReadFile(path, cfg.ReaderOptions())
	if err != nil {
		return nil, err
	}
	if st.Title == "" {
		st.Title = filepath.Base(path)
	}
	return st, nil
}

func runView(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	var path string
	switch {
	case len(args) == 1:
		path = args[0]
	case pick:
		path, err = gui.PickFile(".")
		if errors.Is(err, gui.ErrCanceled) {
			return nil
		}
		if err != nil {
			return err
		}
	default:
		fmt.Fprintf(cmd.ErrOrStderr(), "Usage: %s\n", cmd.UseLine())
		return errMissingFile
	}

	sess, err := newSession(path, cfg)
	if err != nil {
		if pick {
			gui.ShowError(cfg.Window.Title, err)
		}
		return err
	}
	return gui.Run(sess.pipeline, sess.ui, cfg)
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	load := func(path string) (viz.Model, error) {
		sess, err := newSession(path, cfg)
		if err != nil {
			return viz.Model{}, err
		}
		return sess.model(cfg), nil
	}

	target := "."
	if len(args) == 1 {
		target = args[0]
	}
	if fi, err := os.Stat(target); err == nil && fi.IsDir() {
		return viz.RunPicker(target, load)
	}

	m, err := load(target)
	if err != nil {
		return err
	}
	return viz.Run(m)
}

func runInfo(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	st, err := readStructure(args[0], cfg)
	if err != nil {
		return err
	}
	sum, err := analysis.Summarize(st)
	if err != nil {
		return err
	}
	if asJSON {
		return storage.ExportJSONStdout(storage.NewExportData(args[0], sum))
	}

	format, _ := molecule.DetectFormat(args[0])
	res, err := scene.InitialResolution(st.NumAtoms())
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "title:\t%s\n", sum.Title)
	fmt.Fprintf(w, "format:\t%s\n", format)
	fmt.Fprintf(w, "atoms:\t%d\n", sum.Atoms)
	fmt.Fprintf(w, "bonds:\t%d\n", sum.Bonds.Count)
	fmt.Fprintf(w, "formula:\t%s\n", sum.Formula)
	if sum.Residues > 0 {
		fmt.Fprintf(w, "chains:\t%d\n", sum.Chains)
		fmt.Fprintf(w, "residues:\t%d\n", sum.Residues)
	}
	fmt.Fprintf(w, "resolution:\t%g\n", res)
	fmt.Fprintf(w, "radius of gyration:\t%.3f Å\n", sum.RadiusOfGyration)
	fmt.Fprintf(w, "bounds:\t(%.2f, %.2f, %.2f) - (%.2f, %.2f, %.2f)\n",
		sum.Min.X, sum.Min.Y, sum.Min.Z, sum.Max.X, sum.Max.Y, sum.Max.Z)
	if sum.Bonds.Count > 0 {
		fmt.Fprintf(w, "bond length:\tmean %.3f  sd %.3f  min %.3f  max %.3f\n",
			sum.Bonds.Mean, sum.Bonds.StdDev, sum.Bonds.Min, sum.Bonds.Max)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if graph := analysis.PlotBondLengths(sum.Bonds.Lengths, 16, 48, 8); graph != "" {
		fmt.Println()
		fmt.Println(graph)
	}
	return nil
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if !cmd.Flags().Changed("frames") {
		frames = cfg.Render.Frames
	}
	if !cmd.Flags().Changed("size") {
		renderSize = cfg.Render.Size
	}
	if renderSize < 1 || frames < 1 {
		return fmt.Errorf("%w: size %d frames %d", config.ErrInvalidConfig, renderSize, frames)
	}

	sess, err := newSession(args[0], cfg)
	if err != nil {
		return err
	}

	store := storage.New(cfg.DataDir)
	if err := store.Init(); err != nil {
		return err
	}
	meta := &storage.RenderMetadata{
		ID:         store.NewID(args[0]),
		Source:     args[0],
		Resolution: sess.pipeline.Resolution,
		Radius:     sess.pipeline.Sphere.Radius(),
		Preset:     preset,
	}

	var targets []string
	if outPath != "" {
		targets = []string{outPath}
	} else {
		dir, err := store.Dir(meta.ID)
		if err != nil {
			return err
		}
		targets = []string{filepath.Join(dir, "still.png")}
		if frames > 1 {
			targets = append(targets, filepath.Join(dir, "spin.gif"))
		}
	}

	r := export.NewRenderer(renderSize, renderSize, sess.pipeline.Extent)
	r.Background = cfg.BackgroundColor()
	actors := sess.pipeline.Actors()

	start := time.Now()
	for _, target := range targets {
		switch strings.ToLower(filepath.Ext(target)) {
		case ".gif":
			err = export.WriteGIF(target, r.Spin(actors, frames), cfg.Render.Delay)
		case ".png":
			err = export.WritePNG(target, r.Render(actors))
		default:
			err = fmt.Errorf("unsupported output %q (want .png or .gif)", target)
		}
		if err != nil {
			return err
		}
		meta.Outputs = append(meta.Outputs, target)
		fmt.Printf("wrote %s\n", target)
	}

	if sum, err := analysis.Summarize(sess.structure); err == nil {
		meta.Stats = map[string]float64{
			"radius_of_gyration": sum.RadiusOfGyration,
			"bond_length_mean":   sum.Bonds.Mean,
		}
	}
	id, err := store.Save(meta, sess.structure)
	if err != nil {
		return err
	}
	fmt.Printf("completed in %v\n", time.Since(start).Round(time.Millisecond))
	fmt.Printf("render id: %s\n", id)
	return nil
}

func listRenders(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	runs, err := storage.New(cfg.DataDir).List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no renders found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSOURCE\tTIME\tATOMS\tBONDS\tRES\tOUTPUTS")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%g\t%d\n",
			run.ID,
			run.Source,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Atoms,
			run.Bonds,
			run.Resolution,
			len(run.Outputs),
		)
	}
	return w.Flush()
}

func showRender(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	meta, err := storage.New(cfg.DataDir).Load(args[0])
	if err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}
