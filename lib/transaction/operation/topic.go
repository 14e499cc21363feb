package operation

import (
	"strings"

	"boscoin.io/announcer/lib/errors"
)

type AddTopic struct {
	Identifier  string `json:"identifier"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Color       string `json:"color"`
}

func NewAddTopic(identifier, name, description, color string) AddTopic {
	return AddTopic{
		Identifier:  identifier,
		Name:        name,
		Description: description,
		Color:       color,
	}
}

func (o AddTopic) IsWellFormed() error {
	return checkIdentifier(o.Identifier)
}

type RemoveTopic struct {
	Identifier string `json:"identifier"`
}

func NewRemoveTopic(identifier string) RemoveTopic {
	return RemoveTopic{Identifier: identifier}
}

func (o RemoveTopic) IsWellFormed() error {
	return checkIdentifier(o.Identifier)
}

func checkIdentifier(identifier string) error {
	if len(strings.TrimSpace(identifier)) < 1 {
		return errors.InvalidInput.Clone().SetData("reason", "empty topic identifier")
	}

	return nil
}
