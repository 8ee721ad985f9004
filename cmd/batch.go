package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"chartrender/chart"
	"chartrender/logger"
	"chartrender/renderer"

	"github.com/spf13/cobra"
)

var (
	batchOutDir  string
	batchWorkers int
)

func init() {
	batchCmd.Flags().StringVar(&batchOutDir, "out", ".", "output directory")
	batchCmd.Flags().IntVar(&batchWorkers, "workers", 0, "concurrent renders (default batch.workers from config)")
	rootCmd.AddCommand(batchCmd)
}

var batchCmd = &cobra.Command{
	Use:   "batch <difficulty> <songID>...",
	Short: "Render many official charts of one difficulty",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := chart.ParseDifficulty(args[0])
		if err != nil {
			return err
		}
		ids := make([]int, 0, len(args)-1)
		for _, a := range args[1:] {
			id, err := strconv.Atoi(a)
			if err != nil {
				return fmt.Errorf("song id %q: %w", a, err)
			}
			ids = append(ids, id)
		}

		workers := batchWorkers
		if workers <= 0 {
			workers = cfg.Batch.Workers
		}
		if err := os.MkdirAll(batchOutDir, 0o755); err != nil {
			return err
		}

		r, assets, err := newRenderer()
		if err != nil {
			return err
		}
		client, err := newClient(assets)
		if err != nil {
			return err
		}
		return runBatch(cmd.Context(), cmd.OutOrStdout(), r, client, d, ids, batchOutDir, workers)
	},
}

// runBatch renders ids with at most workers renders in flight. One failed
// chart does not stop the others.
func runBatch(ctx context.Context, progress io.Writer, r *renderer.Renderer, f officialFetcher, d chart.Difficulty, ids []int, outDir string, workers int) error {
	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup

	var finished, failed atomic.Uint64
	var startTime = time.Now()

	for _, id := range ids {
		wg.Add(1)
		sem <- struct{}{}
		go func(id int) {
			defer wg.Done()
			out := filepath.Join(outDir, officialFileName(id, d))
			if err := renderOfficial(ctx, r, f, id, d, out); err != nil {
				failed.Add(1)
				logger.GetLogger().Error("render failed", "song", id, "err", err)
			}
			n := finished.Add(1)
			fmt.Fprintf(progress, "Finished charts: %d/%d\tavg time per chart: %.4f\n", n, len(ids), time.Since(startTime).Seconds()/float64(n))
			<-sem
		}(id)
	}

	wg.Wait()

	if n := failed.Load(); n > 0 {
		return fmt.Errorf("%d of %d charts failed", n, len(ids))
	}
	return nil
}
