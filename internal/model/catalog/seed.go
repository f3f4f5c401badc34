package catalog

// Seed is the catalog content loaded at process start when no seed file is configured.
type Seed struct {
	Characters []Character `json:"personagens" yaml:"personagens" toml:"personagens"`
	Seasons    []Season    `json:"seasons" yaml:"seasons" toml:"seasons"`
}

// DefaultSeed returns the built-in Dexter catalog.
func DefaultSeed() Seed {
	return Seed{
		Characters: []Character{
			{ID: 1, Name: "Dexter Morgan", Status: "VIVO"},
			{ID: 2, Name: "Debra Morgan", Status: "VIVA"},
			{ID: 3, Name: "Sargento Doakes", Status: "VIVO"},
		},
		Seasons: []Season{
			{Number: 1, CharacterIDs: []int{1, 2, 3}},
			{Number: 2, CharacterIDs: []int{1, 2}},
			{Number: 3, CharacterIDs: []int{3}},
			{Number: 4, CharacterIDs: []int{1, 3}},
			{Number: 5, CharacterIDs: []int{2}},
			{Number: 6, CharacterIDs: []int{}},
			{Number: 7, CharacterIDs: []int{1}},
			{Number: 8, CharacterIDs: []int{2, 3}},
		},
	}
}
