package cmd

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/samplekit/nrpt/examplesampler"
	"github.com/samplekit/nrpt/rand"
	"github.com/samplekit/nrpt/sampler"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a single sequential-driver chain against the example Gaussian sampler",
	Run: func(cmd *cobra.Command, args []string) {
		logger := log.New(os.Stderr, "nrpt: ", log.LstdFlags)

		srv := startMonitorIfRequested()
		if srv != nil {
			defer srv.Stop()
		}

		rng, err := rand.NewGenerator(params.seed)
		if err != nil {
			logger.Fatalf("building rng: %v", err)
		}

		mean := make([]float64, params.dim)
		model := &examplesampler.GaussianModel{Mean: mean, Std: params.std}
		samp := examplesampler.NewSampler(params.dim, params.step)

		opts := sampler.Options{
			DiscardInitial: params.discardInitial,
			Thinning:       params.thinning,
			ChainType:      params.chainType,
			ProgressName:   "run-" + runID,
		}
		if cmd.Flags().Changed("progress") {
			p := params.progress
			opts.Progress = &p
		}

		chain, err := sampler.Run(rng, model, samp, params.n, opts)
		if err != nil {
			logger.Fatalf("run failed: %v", err)
		}

		c := chain.(*examplesampler.Chain)
		fmt.Printf("samples:     %s\n", humanize.Comma(int64(len(c.Samples))))
		fmt.Printf("acceptance:  %.3f\n", c.AcceptanceRate)
		fmt.Printf("duration:    %s\n", time.Duration(c.Stats.Duration))
	},
}

func init() {
	runCmd.Flags().IntVarP(&params.n, "n", "n", 1000, "number of retained samples")
	runCmd.Flags().IntVar(&params.discardInitial, "discard-initial", 0, "warm-up iterations to discard")
	runCmd.Flags().IntVar(&params.thinning, "thinning", 1, "retain every k-th post-warmup sample")
	rootCmd.AddCommand(runCmd)
}
