package main

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/mlb-edge/internal/replay"
)

func newReplayCmd() *cobra.Command {
	var (
		seasons    []int
		exportDir  string
		carry      bool
		noPrefetch bool
	)

	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Replay box scores into point-in-time feature records",
		Long: `Walks each season's games in chronological order, emitting a feature record
for every game both teams have enough history for. A season is committed
atomically; on failure it is rolled back and the remaining seasons are not run.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rc, err := replay.FromConfig(&cfg.Replay)
			if err != nil {
				return err
			}
			if exportDir != "" {
				rc.ExportPath = exportDir
			}
			if cmd.Flags().Changed("carry-rolling") {
				rc.CarryRollingAcrossSeasons = carry
			}
			if noPrefetch {
				rc.Prefetch = false
			}
			if len(seasons) == 0 {
				seasons = cfg.Seasons()
			}

			a, err := newApp(cmd.Context(), cfg, appLog)
			if err != nil {
				return err
			}
			defer a.Close()

			engine, err := a.replayEngine(cmd.Context(), rc)
			if err != nil {
				return err
			}
			engine.KeepFeatures = rc.ExportPath != ""

			results, runErr := engine.Run(cmd.Context(), seasons)
			for _, res := range results {
				appLog.WithFields(logrus.Fields{
					"season":           res.Season,
					"games_processed":  res.GamesProcessed,
					"features_emitted": res.FeaturesEmitted,
					"duration":         res.Duration.String(),
				}).Info("Season replayed")

				if rc.ExportPath == "" {
					continue
				}
				path, err := replay.ExportFeatures(res.Features, res.Season, rc.ExportPath)
				if err != nil {
					return fmt.Errorf("failed to export season %d: %w", res.Season, err)
				}
				appLog.WithField("path", path).Info("Features exported")
			}
			return runErr
		},
	}

	cmd.Flags().IntSliceVar(&seasons, "season", nil, "Season(s) to replay (default: first through current)")
	cmd.Flags().StringVar(&exportDir, "export", "", "Directory to write features_<season>.json files to")
	cmd.Flags().BoolVar(&carry, "carry-rolling", false, "Keep rolling windows across season boundaries")
	cmd.Flags().BoolVar(&noPrefetch, "no-prefetch", false, "Fetch box scores strictly one at a time")

	return cmd
}
