package cmd

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/samplekit/nrpt/config"
	"github.com/samplekit/nrpt/progress"
)

var monitorAddr string

// runID tags every log line and progress name for one process invocation,
// so output from several concurrent nrpt runs (e.g. under a job scheduler)
// can be told apart.
var runID = uuid.New().String()

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "nrpt",
	Short: "NRPT - a non-reversible parallel tempering sampling driver",
	Long: `nrpt runs MCMC samplers against the NRPT tempering engine.

Subcommands:
  run      single-chain sequential driver run
  parallel several independent chains over threaded/distributed/serial substrates
  nrpt     a full TUNE/SAMPLE/DONE tempering run over a replica ladder
`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if params.cfgFile != "" {
			run, err := config.Load(params.cfgFile)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("seed") {
				params.seed = run.Seed
			}
			if !cmd.Flags().Changed("discard-initial") {
				params.discardInitial = run.DiscardInitial
			}
			if !cmd.Flags().Changed("thinning") {
				params.thinning = run.Thinning
			}
			if !cmd.Flags().Changed("chain-type") {
				params.chainType = run.ChainType
			}
			if !cmd.Flags().Changed("progress") {
				params.progress = run.Progress
			}
		} else if !cmd.Flags().Changed("progress") {
			// No explicit choice either way: default progress reporting on
			// only when stdout is an interactive terminal, not a log file
			// or pipe a scheduler is collecting.
			params.progress = isatty.IsTerminal(os.Stdout.Fd())
		}
		progress.SetDefault(params.progress)
		if params.progress {
			progress.Register(progress.LogSink{})
			progress.Register(progress.NewMetricsSink())
		}
		if params.verbose {
			fmt.Fprintf(os.Stderr, "nrpt: run %s\n", runID)
		}
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately. Called once from main.main().
func Execute() {
	rootCmd.PersistentFlags().StringVarP(&params.cfgFile, "config", "c", "", "YAML config file (default none; flags override its contents)")
	rootCmd.PersistentFlags().BoolVarP(&params.verbose, "verbose", "v", false, "verbose logging")
	rootCmd.PersistentFlags().Int64VarP(&params.seed, "seed", "r", 1, "random seed")
	rootCmd.PersistentFlags().StringVar(&params.chainType, "chain-type", "default", "chain type tag forwarded to bundle")
	rootCmd.PersistentFlags().BoolVar(&params.progress, "progress", false, "enable progress reporting")
	rootCmd.PersistentFlags().StringVar(&monitorAddr, "monitor-addr", "", "if set, serve /metrics and /healthz on this address for the duration of the run")

	rootCmd.PersistentFlags().IntVar(&params.dim, "dim", 1, "dimensionality of the example Gaussian target")
	rootCmd.PersistentFlags().Float64Var(&params.step, "step", 0.5, "random-walk proposal step size")
	rootCmd.PersistentFlags().Float64Var(&params.std, "std", 1.0, "example Gaussian target standard deviation")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func startMonitorIfRequested() *progress.Server {
	if monitorAddr == "" {
		return nil
	}
	srv := &progress.Server{Addr: monitorAddr}
	if err := srv.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "monitor: %v\n", err)
		return nil
	}
	return srv
}
