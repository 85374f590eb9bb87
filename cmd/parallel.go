package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/samplekit/nrpt/examplesampler"
	"github.com/samplekit/nrpt/parallel"
	"github.com/samplekit/nrpt/rand"
	"github.com/samplekit/nrpt/sampler"
)

var (
	nchains    int
	driverName string
)

var parallelCmd = &cobra.Command{
	Use:   "parallel",
	Short: "Run several independent chains over the threaded, distributed, or serial substrate",
	Run: func(cmd *cobra.Command, args []string) {
		logger := log.New(os.Stderr, "nrpt: ", log.LstdFlags)

		srv := startMonitorIfRequested()
		if srv != nil {
			defer srv.Stop()
		}

		parent, err := rand.NewGenerator(params.seed)
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
			ProgressName:   "parallel-" + runID,
		}

		var chains []sampler.Chain
		switch driverName {
		case "threaded":
			chains, err = parallel.Threaded(parent, model, samp, nchains, params.n, opts, logger)
		case "distributed":
			relay := parallel.NewRelay(nchains)
			go relay.Run()
			chains, err = parallel.Distributed(parent, model, samp, nchains, params.n, opts, relay)
			relay.Close()
		case "serial":
			chains, err = parallel.Serial(parent, model, samp, nchains, params.n, opts)
		default:
			logger.Fatalf("unknown driver %q (want threaded, distributed, or serial)", driverName)
		}
		if err != nil {
			logger.Fatalf("parallel run failed: %v", err)
		}

		total := 0
		for _, c := range chains {
			total += len(c.(*examplesampler.Chain).Samples)
		}
		fmt.Printf("chains:       %d\n", len(chains))
		fmt.Printf("total samples: %s\n", humanize.Comma(int64(total)))
	},
}

func init() {
	parallelCmd.Flags().IntVar(&nchains, "n-chains", 4, "number of independent chains to run")
	parallelCmd.Flags().StringVar(&driverName, "driver", "serial", "substrate: threaded, distributed, or serial")
	parallelCmd.Flags().IntVarP(&params.n, "n", "n", 1000, "number of retained samples per chain")
	parallelCmd.Flags().IntVar(&params.discardInitial, "discard-initial", 0, "warm-up iterations to discard")
	parallelCmd.Flags().IntVar(&params.thinning, "thinning", 1, "retain every k-th post-warmup sample")
	rootCmd.AddCommand(parallelCmd)
}
