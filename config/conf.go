package config

import (
	"context"

	"github.com/fatih/color"

	"github.com/kvesta/mdyml/pkg/model"
)

var (
	Yellow = color.New(color.FgYellow).SprintFunc()
	Red    = color.New(color.FgRed).SprintFunc()
	Green  = color.New(color.FgGreen).SprintFunc()
	Pink   = color.New(color.FgMagenta).SprintFunc()

	Ctx = context.Background()

	// StatusMap ranks statuses from most to least urgent.
	StatusMap = map[model.Status]int{
		model.StatusAffected:    4,
		model.StatusUnknown:     3,
		model.StatusFixed:       2,
		model.StatusNotAffected: 1,
	}
)

// Colorize paints a status the way terminal reports show it.
func Colorize(status model.Status) string {
	switch status {
	case model.StatusAffected:
		return Red(string(status))
	case model.StatusUnknown:
		return Pink(string(status))
	case model.StatusFixed:
		return Yellow(string(status))
	case model.StatusNotAffected:
		return Green(string(status))
	}
	return string(status)
}
