package replay

import (
	"errors"
	"fmt"
)

// ErrTeamMismatch means a box score does not belong to the scheduled matchup
var ErrTeamMismatch = errors.New("box score teams do not match schedule")

// SeasonError reports a season whose replay was rolled back
type SeasonError struct {
	Season     int
	LastGamePK int64
	Err        error
}

func (e *SeasonError) Error() string {
	if e.LastGamePK == 0 {
		return fmt.Sprintf("season %d replay failed before the first game: %v", e.Season, e.Err)
	}
	return fmt.Sprintf("season %d replay failed at game %d: %v", e.Season, e.LastGamePK, e.Err)
}

func (e *SeasonError) Unwrap() error {
	return e.Err
}
