package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/yourusername/mlb-edge/internal/service"
	"github.com/yourusername/mlb-edge/internal/staking"
)

func newPredictCmd() *cobra.Command {
	var (
		date        string
		gamePK      int64
		homeOdds    string
		awayOdds    string
		interactive bool
		asJSON      bool
	)

	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Predict a day's games and size stakes",
		Long: `Predicts every game of a league day that has a feature record. Odds come
from --game with --home-odds/--away-odds, then the odds store, then an
interactive prompt when --interactive is set.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			at := time.Now()
			if date != "" {
				day, err := time.Parse("2006-01-02", date)
				if err != nil {
					return fmt.Errorf("invalid date %q: %w", date, err)
				}
				// midday keeps the instant on the requested league day
				at = day.Add(12 * time.Hour)
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

			var odds service.ChainOdds
			if homeOdds != "" || awayOdds != "" {
				if gamePK == 0 {
					return fmt.Errorf("--home-odds and --away-odds need --game")
				}
				minLen := cfg.Staking.MinOddsLength
				for _, o := range []string{homeOdds, awayOdds} {
					if err := staking.ValidateOddsInput(o, minLen); err != nil {
						return err
					}
				}
				odds = append(odds, service.FixedOdds{GamePK: gamePK, HomeOdds: homeOdds, AwayOdds: awayOdds})
			}
			odds = append(odds, service.StoredOdds{Repo: a.repos.Odds})
			if interactive {
				odds = append(odds, service.NewPromptOdds(os.Stdin, os.Stdout, cfg.Staking.MinOddsLength))
			}

			svc := service.NewPredictionService(a.repos.Game, a.repos.Feature, predictor, a.calculator(), method, appLog)
			preds, err := svc.PredictDay(cmd.Context(), at, odds)
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(preds)
			}
			printPredictions(cmd, preds)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "League day to predict, YYYY-MM-DD (default: today)")
	cmd.Flags().Int64Var(&gamePK, "game", 0, "Game id the odds flags apply to")
	cmd.Flags().StringVar(&homeOdds, "home-odds", "", "Home moneyline, e.g. -150")
	cmd.Flags().StringVar(&awayOdds, "away-odds", "", "Away moneyline, e.g. +130")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Prompt for odds that are not stored")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print predictions as JSON")

	return cmd
}

func printPredictions(cmd *cobra.Command, preds []service.GamePrediction) {
	out := cmd.OutOrStdout()
	if len(preds) == 0 {
		fmt.Fprintln(out, "No games with feature records on this day.")
		return
	}
	for _, p := range preds {
		label := ""
		if p.DoubleHeader {
			label = " (game 2)"
		}
		fmt.Fprintf(out, "%s @ %s%s  p_home=%.3f p_away=%.3f\n",
			p.Game.AwayTeamName, p.Game.HomeTeamName, label, p.Prediction.PHome, p.Prediction.PAway)
		if p.Odds == nil {
			fmt.Fprintln(out, "  no odds")
			continue
		}
		r := p.Recommendation
		if !r.IsBet() {
			fmt.Fprintf(out, "  %s / %s: no bet\n", p.Odds.HomeOdds, p.Odds.AwayOdds)
			continue
		}
		fmt.Fprintf(out, "  %s / %s: bet %s %.3f units, expected ROI %.2f%%\n",
			p.Odds.HomeOdds, p.Odds.AwayOdds, r.SideLabel(), r.Stake, r.ROIPercent)
	}
}
