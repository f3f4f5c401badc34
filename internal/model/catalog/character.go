package catalog

// Character is a show character record exposed on the /personagens resource.
type Character struct {
	ID     int    `json:"id" yaml:"id" toml:"id"`
	Name   string `json:"nome" yaml:"nome" toml:"nome"`
	Status string `json:"status" yaml:"status" toml:"status"`
}

// CharacterInput carries the caller-supplied fields for create and update.
type CharacterInput struct {
	Name   string
	Status string
}
