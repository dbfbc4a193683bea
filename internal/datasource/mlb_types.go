package datasource

// scheduleResponse is the subset of /schedule the pipeline reads
type scheduleResponse struct {
	Dates []struct {
		Date  string         `json:"date"`
		Games []scheduleGame `json:"games"`
	} `json:"dates"`
}

type scheduleGame struct {
	GamePK   int64  `json:"gamePk"`
	GameType string `json:"gameType"`
	Season   string `json:"season"`
	GameDate string `json:"gameDate"`
	Status   struct {
		DetailedState string `json:"detailedState"`
	} `json:"status"`
	Teams struct {
		Away scheduleSide `json:"away"`
		Home scheduleSide `json:"home"`
	} `json:"teams"`
	Venue struct {
		ID int `json:"id"`
	} `json:"venue"`
	DayNight string `json:"dayNight"`
}

type scheduleSide struct {
	Score *int `json:"score"`
	Team  struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	} `json:"team"`
}

// teamsResponse is the subset of /teams the pipeline reads
type teamsResponse struct {
	Teams []struct {
		ID           int    `json:"id"`
		Name         string `json:"name"`
		Abbreviation string `json:"abbreviation"`
		ShortName    string `json:"shortName"`
		Sport        struct {
			ID   int    `json:"id"`
			Name string `json:"name"`
		} `json:"sport"`
	} `json:"teams"`
}
