package main

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newIngestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Fetch reference data from the MLB Stats API into storage",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "teams",
		Short: "Upsert the major league clubs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), cfg, appLog)
			if err != nil {
				return err
			}
			defer a.Close()

			m, err := a.ingestion().IngestTeams(cmd.Context())
			if err != nil {
				return err
			}
			appLog.Infof("Teams ingested: %s", m.String())
			return nil
		},
	})

	var seasons []int
	schedule := &cobra.Command{
		Use:   "schedule",
		Short: "Upsert the regular season schedule",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(seasons) == 0 {
				seasons = []int{cfg.Replay.CurrentSeason}
			}

			a, err := newApp(cmd.Context(), cfg, appLog)
			if err != nil {
				return err
			}
			defer a.Close()

			svc := a.ingestion()
			for _, season := range seasons {
				m, err := svc.IngestSchedule(cmd.Context(), season)
				if err != nil {
					return fmt.Errorf("season %d: %w", season, err)
				}
				appLog.WithFields(logrus.Fields{"season": season}).Infof("Schedule ingested: %s", m.String())
			}
			return nil
		},
	}
	schedule.Flags().IntSliceVar(&seasons, "season", nil, "Season(s) to ingest (default: current season)")
	cmd.AddCommand(schedule)

	return cmd
}
