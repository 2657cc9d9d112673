package teams

// Team is the canonical team shape used for display enrichment.
type Team struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Mascot          string `json:"mascot"`
	District        string `json:"district,omitempty"`
	Classification  string `json:"classification,omitempty"`
	Record          string `json:"record,omitempty"`
	PrimaryColor    string `json:"primaryColor,omitempty"`
	BackgroundColor string `json:"backgroundColor,omitempty"`
	StateRank       int    `json:"stateRank,omitempty"`
	NationalRank    int    `json:"nationalRank,omitempty"`
	LogoURL         string `json:"logoUrl,omitempty"`
}

// Ref is the minimal team identity carried on a game.
type Ref struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Mascot          string `json:"mascot,omitempty"`
	PrimaryColor    string `json:"primaryColor,omitempty"`
	BackgroundColor string `json:"backgroundColor,omitempty"`
	Record          string `json:"record,omitempty"`
}
