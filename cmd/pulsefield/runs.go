package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/golang/glog"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/pulsefield/internal/analysis"
	"github.com/san-kum/pulsefield/internal/audio"
	"github.com/san-kum/pulsefield/internal/automation"
	"github.com/san-kum/pulsefield/internal/export"
	"github.com/san-kum/pulsefield/internal/metrics"
	"github.com/san-kum/pulsefield/internal/storage"
	"github.com/spf13/cobra"
)

var (
	ticks      int
	sweepParam string
	sweepMin   float64
	sweepMax   float64
	sweepSteps int
	plotColumn string
	scanColumn string
	svgOut     string
	outFile    string
)

func runCommands() []*cobra.Command {
	runCmd := &cobra.Command{
		Use:   "run [scenario.yaml]",
		Short: "replay a scenario headlessly and save the trace",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runScenario,
	}
	runCmd.Flags().IntVar(&ticks, "ticks", 0, "tick budget (overrides the scenario)")
	runCmd.Flags().StringVar(&sweepParam, "sweep", "", "sweep one parameter instead of saving a run")
	runCmd.Flags().Float64Var(&sweepMin, "min", 0, "sweep start value")
	runCmd.Flags().Float64Var(&sweepMax, "max", 1, "sweep end value")
	runCmd.Flags().IntVar(&sweepSteps, "steps", 5, "sweep runs")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot one column of a run trace",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&plotColumn, "column", "mean_y", "trace column (gate, pulse, ripples, mean_y, mean_displacement, peak_displacement)")
	plotCmd.Flags().StringVar(&svgOut, "svg", "", "also write the plot to this svg file")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata and trace as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}
	exportCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run trace to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "heartbeat period and pulse windows of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().StringVar(&scanColumn, "column", "gate", "trace column to analyze (gate gives the heartbeat period)")

	sonifyCmd := &cobra.Command{
		Use:   "sonify [run_id]",
		Short: "render a run trace to a WAV file",
		Args:  cobra.ExactArgs(1),
		RunE:  sonifyRun,
	}
	sonifyCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default <run_id>.wav)")

	return []*cobra.Command{runCmd, listCmd, plotCmd, exportCmd, exportCSVCmd, analyzeCmd, sonifyCmd}
}

func runScenario(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	sc := &automation.Scenario{Name: "idle", Ticks: 600}
	if len(args) > 0 {
		if sc, err = automation.LoadScenario(args[0]); err != nil {
			return err
		}
	}
	if ticks > 0 {
		sc.Ticks = ticks
	}

	ctx, cancel := signalContext()
	defer cancel()

	opt := automation.Options{
		Params:  cfg.FieldParams(),
		Metrics: metrics.Default(),
	}

	if sweepParam != "" {
		return runSweep(cmd, sc, opt)
	}

	fmt.Printf("running scenario %s (%d ticks)...\n", sc.Name, sc.Ticks)
	start := time.Now()
	result, err := automation.Run(ctx, sc, opt)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	st := storage.New(cfg.DataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(storage.RunMetadata{
		Scenario:  sc.Name,
		Preset:    preset,
		Timestamp: time.Now(),
		Seed:      result.Params.Seed,
		Width:     result.Params.Width,
		Height:    result.Params.Height,
		Count:     result.Params.Count,
		Ticks:     len(result.Samples),
		Ripples:   result.Ripples,
		Params:    result.Params.Values(),
		Metrics:   result.Metrics,
	}, result.Samples)
	if err != nil {
		return err
	}
	glog.V(1).Infof("saved %s under %s", runID, st.Dir(runID))

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("ticks: %d  ripples: %d  resizes: %d\n", len(result.Samples), result.Ripples, result.Resizes)
	fmt.Println("\nmetrics:")
	for _, name := range sortedKeys(result.Metrics) {
		fmt.Printf("  %s: %.6f\n", name, result.Metrics[name])
	}
	return nil
}

func runSweep(cmd *cobra.Command, sc *automation.Scenario, opt automation.Options) error {
	ctx, cancel := signalContext()
	defer cancel()

	fmt.Printf("sweeping %s over [%g, %g] in %d runs...\n\n", sweepParam, sweepMin, sweepMax, sweepSteps)
	results, err := automation.RunSweep(ctx, sc, automation.Sweep{
		Param: sweepParam,
		Min:   sweepMin,
		Max:   sweepMax,
		Steps: sweepSteps,
	}, opt)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		return nil
	}

	names := sortedKeys(results[0].Metrics)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprint(w, sweepParam)
	for _, n := range names {
		fmt.Fprintf(w, "\t%s", n)
	}
	fmt.Fprintln(w)
	for _, r := range results {
		fmt.Fprintf(w, "%.4f", r.Value)
		for _, n := range names {
			fmt.Fprintf(w, "\t%.4f", r.Metrics[n])
		}
		fmt.Fprintln(w)
	}
	return w.Flush()
}

func openStore(cmd *cobra.Command) (*storage.Store, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	return storage.New(cfg.DataDir), nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSCENARIO\tPRESET\tTIME\tTICKS\tPOINTS\tRIPPLES")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%d\t%d\n",
			run.ID,
			run.Scenario,
			run.Preset,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Ticks,
			run.Count,
			run.Ripples,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	samples, err := st.LoadTrace(args[0])
	if err != nil {
		return err
	}

	data := analysis.Series(samples, plotColumn)
	if data == nil {
		return fmt.Errorf("unknown column: %s", plotColumn)
	}
	if len(data) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("scenario: %s\n", meta.Scenario)
	fmt.Printf("samples: %d\n\n", len(data))
	fmt.Println(asciigraph.Plot(data,
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.Caption(plotColumn),
	))

	if svgOut != "" {
		svg := export.TraceToSVG(data, 800, 300, "#FF4D00")
		if err := os.WriteFile(svgOut, []byte(svg), 0644); err != nil {
			return err
		}
		fmt.Printf("\nwrote %s\n", svgOut)
	}
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	samples, err := st.LoadTrace(args[0])
	if err != nil {
		return err
	}
	if outFile != "" {
		return storage.ExportJSON(outFile, *meta, samples)
	}
	return storage.WriteJSON(os.Stdout, *meta, samples)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	samples, err := st.LoadTrace(args[0])
	if err != nil {
		return err
	}
	return storage.WriteTrace(os.Stdout, samples)
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	samples, err := st.LoadTrace(args[0])
	if err != nil {
		return err
	}

	data := analysis.Series(samples, scanColumn)
	if data == nil {
		return fmt.Errorf("unknown column: %s", scanColumn)
	}

	fmt.Printf("analysis: %s\n", meta.ID)
	fmt.Printf("scenario: %s\n\n", meta.Scenario)

	ps := analysis.PowerSpectrum(data)
	if len(ps) > 8 {
		fmt.Println(asciigraph.Plot(ps[1:len(ps)/4],
			asciigraph.Height(12),
			asciigraph.Width(80),
			asciigraph.Caption("power spectrum ("+scanColumn+")"),
		))
		fmt.Println()
	}

	period, err := analysis.DominantPeriod(data)
	if err != nil {
		fmt.Printf("dominant period (%s): n/a (%v)\n", scanColumn, err)
	} else {
		fmt.Printf("dominant period (%s): %.2f ticks\n", scanColumn, period)
	}
	if heartbeat, err := analysis.HeartbeatPeriod(samples); err == nil {
		fmt.Printf("heartbeat period: %.2f ticks\n", heartbeat)
	}

	windows := analysis.PulseWindows(samples)
	fmt.Printf("pulse windows: %d\n", len(windows))
	if len(windows) > 1 {
		fmt.Printf("mean spacing: %.2f ticks\n", analysis.MeanSpacing(windows))
	}
	if len(windows) > 0 {
		fmt.Printf("first window: ticks %d-%d (%d)\n", windows[0].Start, windows[0].End, windows[0].Len())
	}
	return nil
}

func sonifyRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	st := storage.New(cfg.DataDir)
	samples, err := st.LoadTrace(args[0])
	if err != nil {
		return err
	}

	path := outFile
	if path == "" {
		path = args[0] + ".wav"
	}
	synth := audio.NewSynth(cfg.Audio.Tone, cfg.Audio.Volume)
	if err := audio.WriteWAV(path, samples, cfg.Render.FPS, synth); err != nil {
		return err
	}
	fmt.Printf("wrote %s (%d ticks)\n", path, len(samples))
	return nil
}
