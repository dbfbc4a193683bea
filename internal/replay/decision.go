package replay

import (
	"fmt"

	"github.com/yourusername/mlb-edge/internal/models"
	"github.com/yourusername/mlb-edge/internal/stats"
)

// Decision is the outcome of the eligibility check for one game
type Decision int

const (
	// DecisionUpdateOnly folds the game into the accumulators without a feature record
	DecisionUpdateOnly Decision = iota
	// DecisionEmit builds and stores a feature record, then updates the accumulators
	DecisionEmit
	// DecisionFatal aborts the season
	DecisionFatal
)

func (d Decision) String() string {
	switch d {
	case DecisionEmit:
		return "emit"
	case DecisionUpdateOnly:
		return "update_only"
	case DecisionFatal:
		return "fatal"
	default:
		return fmt.Sprintf("decision(%d)", int(d))
	}
}

// Reasons a game emits no feature record
const (
	SkipInsufficientHistory = "insufficient_history"
	SkipTie                 = "tie"
	SkipDuplicate           = "duplicate"
)

// Decide runs the eligibility check. It must see the accumulators as they
// were before the game. A game is emitted only when both teams have played at
// least window games this season and the score is not tied.
func Decide(game models.Game, rec models.BoxScoreRecord, season *stats.SeasonAccumulator, window int) (Decision, string, error) {
	if rec.GamePK != game.GamePK {
		return DecisionFatal, "", fmt.Errorf("%w: record for game %d served for game %d", ErrTeamMismatch, rec.GamePK, game.GamePK)
	}
	if rec.Home.TeamID != game.HomeTeamID || rec.Away.TeamID != game.AwayTeamID {
		return DecisionFatal, "", fmt.Errorf("%w: game %d scheduled %d vs %d, box score has %d vs %d",
			ErrTeamMismatch, game.GamePK, game.HomeTeamID, game.AwayTeamID, rec.Home.TeamID, rec.Away.TeamID)
	}

	if season.GamesPlayed(rec.Home.TeamID) < window || season.GamesPlayed(rec.Away.TeamID) < window {
		return DecisionUpdateOnly, SkipInsufficientHistory, nil
	}
	if rec.IsTie() {
		return DecisionUpdateOnly, SkipTie, nil
	}
	return DecisionEmit, "", nil
}
