package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vytor/pricepulse/internal/models"
	"github.com/vytor/pricepulse/internal/scoring"
)

func newScoreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score a single answer",
	}
	cmd.AddCommand(newScoreTrendCmd(), newScoreGuessCmd())
	return cmd
}

func newScoreTrendCmd() *cobra.Command {
	var (
		actual, predicted float64
		confidence, trend string
	)
	cmd := &cobra.Command{
		Use:     "trend",
		Short:   "Score a trend prediction",
		Example: "  pricectl score trend --actual 152 --predicted 150 --confidence high --trend increasing",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c := models.Confidence(confidence)
			if !c.Valid() {
				return fmt.Errorf("confidence must be 'low', 'medium', or 'high'")
			}
			t := models.TrendClass(trend)
			if !t.Valid() {
				return fmt.Errorf("trend must be one of increasing, decreasing, stable, volatile")
			}
			if !(actual > 0) || !(predicted > 0) {
				return fmt.Errorf("prices must be positive")
			}

			pct := scoring.PercentageError(actual, predicted)
			points := scoring.Trend(actual, predicted, c, t)
			fmt.Fprintf(cmd.OutOrStdout(), "actual:    %s\npredicted: %s\nerror:     %.2f%%\npoints:    %d\n",
				scoring.FormatPrice(actual), scoring.FormatPrice(predicted), pct, points)
			return nil
		},
	}
	cmd.Flags().Float64Var(&actual, "actual", 0, "the price that actually followed")
	cmd.Flags().Float64Var(&predicted, "predicted", 0, "the predicted price")
	cmd.Flags().StringVar(&confidence, "confidence", string(models.ConfidenceMedium), "low, medium or high")
	cmd.Flags().StringVar(&trend, "trend", string(models.TrendStable), "trend class of the series")
	_ = cmd.MarkFlagRequired("actual")
	_ = cmd.MarkFlagRequired("predicted")
	return cmd
}

func newScoreGuessCmd() *cobra.Command {
	var actual, guess float64
	cmd := &cobra.Command{
		Use:     "guess",
		Short:   "Score a price guess",
		Example: "  pricectl score guess --actual 180 --guess 170",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !(actual > 0) || !(guess > 0) {
				return fmt.Errorf("prices must be positive")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "actual: %s\nguess:  %s\nerror:  %.2f%%\npoints: %d\n",
				scoring.FormatPrice(actual), scoring.FormatPrice(guess),
				scoring.PercentageError(actual, guess), scoring.PriceGuess(actual, guess))
			return nil
		},
	}
	cmd.Flags().Float64Var(&actual, "actual", 0, "the real price")
	cmd.Flags().Float64Var(&guess, "guess", 0, "the guessed price")
	_ = cmd.MarkFlagRequired("actual")
	_ = cmd.MarkFlagRequired("guess")
	return cmd
}
