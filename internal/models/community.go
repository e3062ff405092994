package models

type Community struct {
	ID      string `json:"id" yaml:"id"`
	Name    string `json:"name" yaml:"name"`
	Members int    `json:"members" yaml:"members"`
	Icon    string `json:"icon" yaml:"icon"` // font-awesome class, e.g. "fa-code"
}
