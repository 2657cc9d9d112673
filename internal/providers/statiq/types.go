package statiq

// Wire shapes for the scores backend. Field names follow the REST
// payloads, not the domain model.

type scoresResponse struct {
	LiveGames     []liveGameResponse     `json:"live_games"`
	FinishedGames []finishedGameResponse `json:"finished_games"`
	UpcomingGames []upcomingGameResponse `json:"upcoming_games"`
}

type gameBaseResponse struct {
	ID                  string `json:"id"`
	HomeTeamID          string `json:"home_team_id"`
	AwayTeamID          string `json:"away_team_id"`
	HomeTeamName        string `json:"home_team_name"`
	AwayTeamName        string `json:"away_team_name"`
	HomeTeamMascot      string `json:"home_team_mascot"`
	AwayTeamMascot      string `json:"away_team_mascot"`
	HomePrimaryColor    string `json:"home_primary_color"`
	HomeBackgroundColor string `json:"home_background_color"`
	AwayPrimaryColor    string `json:"away_primary_color"`
	AwayBackgroundColor string `json:"away_background_color"`
	HomeRecord          string `json:"home_record"`
	AwayRecord          string `json:"away_record"`
	District            string `json:"district"`
	Classification      string `json:"classification"`
	Location            string `json:"location"`
	PlayoffRound        string `json:"playoff_round"`
}

type liveGameResponse struct {
	gameBaseResponse
	HomeScore     int    `json:"home_score"`
	AwayScore     int    `json:"away_score"`
	Quarter       string `json:"quarter"`
	TimeRemaining string `json:"time_remaining"`
	StartedAt     string `json:"started_at"`
	Possession    string `json:"possession"`
	Broadcaster   string `json:"broadcaster"`
}

type finishedGameResponse struct {
	gameBaseResponse
	HomeScore   int    `json:"home_score"`
	AwayScore   int    `json:"away_score"`
	FinalStatus string `json:"final_status"`
	Date        string `json:"date"`
	Time        string `json:"time"`
}

type upcomingGameResponse struct {
	gameBaseResponse
	Date string `json:"date"`
	Time string `json:"time"`
	Week int    `json:"week"`
}

type teamResponse struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Mascot          string `json:"mascot"`
	District        string `json:"district"`
	Classification  string `json:"classification"`
	Record          string `json:"record"`
	PrimaryColor    string `json:"primary_color"`
	BackgroundColor string `json:"background_color"`
	StateRank       int    `json:"state_rank"`
	NationalRank    int    `json:"national_rank"`
	LogoURL         string `json:"logo_url"`
}

type voteRequest struct {
	DeviceID        string `json:"device_id"`
	PredictedWinner string `json:"predicted_winner"`
}

type consensusResponse struct {
	HomePercentage float64 `json:"home_percentage"`
	AwayPercentage float64 `json:"away_percentage"`
	TotalVotes     int     `json:"total_votes"`
}

type roomResponse struct {
	ID           int64  `json:"id"`
	RoomType     string `json:"room_type"`
	RoomName     string `json:"room_name"`
	GameID       string `json:"game_id"`
	TeamID       string `json:"team_id"`
	IsActive     bool   `json:"is_active"`
	IsAccessible bool   `json:"is_accessible"`
	MessageCount int    `json:"message_count"`
}

type messageResponse struct {
	ID          int64  `json:"id"`
	RoomID      int64  `json:"room_id"`
	UserID      string `json:"user_id"`
	UserName    string `json:"user_name"`
	MessageText string `json:"message_text"`
	WasCensored bool   `json:"was_censored"`
	CreatedAt   string `json:"created_at"`
}

type sendMessageRequest struct {
	UserID      string `json:"user_id"`
	MessageText string `json:"message_text"`
}

type sendMessageResponse struct {
	Success     bool  `json:"success"`
	MessageID   int64 `json:"message_id"`
	WasCensored bool  `json:"was_censored"`
}

type reportRequest struct {
	Reason string `json:"reason"`
}
