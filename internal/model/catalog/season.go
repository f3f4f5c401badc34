package catalog

// Season maps a season number to the characters appearing in it.
// CharacterIDs may reference characters that no longer exist.
type Season struct {
	Number       int   `json:"season" yaml:"season" toml:"season"`
	CharacterIDs []int `json:"personagens,omitempty" yaml:"personagens" toml:"personagens"`
}

// SeasonSummary is the listing projection of a season.
type SeasonSummary struct {
	Season int `json:"season"`
}
