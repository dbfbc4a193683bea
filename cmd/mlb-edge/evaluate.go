package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yourusername/mlb-edge/internal/evaluation"
)

func newEvaluateCmd() *cobra.Command {
	var (
		season      int
		curveOut    string
		simulations int
		seed        int64
	)

	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Settle recommendations over a completed season",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if season == 0 {
				season = cfg.Replay.CurrentSeason
			}

			a, err := newApp(cmd.Context(), cfg, appLog)
			if err != nil {
				return err
			}
			defer a.Close()

			predictor, method, err := a.predictor()
			if err != nil {
				return err
			}

			ev := evaluation.NewEvaluator(a.repos.Game, a.repos.Feature, a.repos.Odds, predictor,
				a.calculator(), method, cfg.Staking.UnitSize, appLog)
			report, ledger, err := ev.Evaluate(cmd.Context(), season)
			if err != nil {
				return err
			}

			if curveOut != "" {
				if err := os.MkdirAll(filepath.Dir(curveOut), 0o755); err != nil {
					return fmt.Errorf("failed to create output directory: %w", err)
				}
				if err := os.WriteFile(curveOut, []byte(ledger.EquityCurve.ToCSV()), 0o644); err != nil {
					return fmt.Errorf("failed to write equity curve: %w", err)
				}
				appLog.WithField("path", curveOut).Info("Equity curve written")
			}

			fmt.Fprintln(cmd.OutOrStdout(), report.ToJSON())

			if simulations > 0 {
				mc, err := evaluation.RunMonteCarlo(cmd.Context(), ledger.Bets, evaluation.MonteCarloConfig{
					Iterations:      simulations,
					Seed:            seed,
					InitialBankroll: cfg.Staking.BankrollUnits,
				})
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), mc.ToJSON())
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&season, "season", 0, "Season to evaluate (default: current season)")
	cmd.Flags().StringVar(&curveOut, "equity-csv", "", "Write the equity curve to this CSV file")
	cmd.Flags().IntVar(&simulations, "simulations", 0, "Monte Carlo iterations over the settled bets (0 disables)")
	cmd.Flags().Int64Var(&seed, "seed", 0, "Monte Carlo seed (default: time based)")
	return cmd
}
