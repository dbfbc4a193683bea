package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/yourusername/mlb-edge/internal/logger"
	"github.com/yourusername/mlb-edge/internal/staking"
)

func newStakeCmd() *cobra.Command {
	var multiplier float64

	cmd := &cobra.Command{
		Use:     "stake <pHome> <pAway> <homeOdds> <awayOdds>",
		Short:   "Size a bet from win probabilities and moneyline odds",
		Example: `  mlb-edge stake 0.58 0.42 -- -130 +115`,
		Args:    cobra.ExactArgs(4),
		// no config file or database needed
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			appLog = logger.NewLogger("warn", "development")
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			pHome, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("invalid pHome %q: %w", args[0], err)
			}
			pAway, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("invalid pAway %q: %w", args[1], err)
			}

			rec, err := staking.NewCalculator(multiplier, appLog).Calculate(0, pHome, pAway, args[2], args[3])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "home EV %.4f  away EV %.4f\n", rec.HomeEV, rec.AwayEV)
			if !rec.IsBet() {
				fmt.Fprintln(out, "no bet")
				return nil
			}
			fmt.Fprintf(out, "bet %s: %.3f units, expected ROI %.2f%%\n", rec.SideLabel(), rec.Stake, rec.ROIPercent)
			return nil
		},
	}

	cmd.Flags().Float64Var(&multiplier, "multiplier", staking.DefaultUnitMultiplier, "Units staked per unit of ROI")
	return cmd
}
