package boxscore

import "fmt"

// CacheInconsistencyError is returned when a stored box score cannot be
// rebuilt into a valid payload
type CacheInconsistencyError struct {
	GamePK int64
	Field  string
}

func (e *CacheInconsistencyError) Error() string {
	return fmt.Sprintf("cached box score for game %d is inconsistent: bad %s", e.GamePK, e.Field)
}
