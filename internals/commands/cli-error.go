package commands

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/minepkg/modio/pkg/modio"
)

// CliError is an error that might get displayed to the user
type CliError struct {
	Text        string
	Suggestions []string
	Help        string
	Err         error
}

func (e *CliError) Error() string {
	return e.Text
}

func (e *CliError) Unwrap() error {
	return e.Err
}

// RichError renders the error box with the help text and all suggestions
func (e *CliError) RichError() string {
	rendered := ErrorBox(e.Text, e.Help)
	if len(e.Suggestions) != 0 {
		suggestionText := "Suggestion:\n"
		if len(e.Suggestions) > 1 {
			suggestionText = "Suggestions:\n"
		}
		suggestionText = Emoji("📎 ") + suggestionText
		for _, s := range e.Suggestions {
			suggestionText += " ⦁ " + s + "\n"
		}
		rendered = lipgloss.JoinVertical(lipgloss.Left, rendered, styleHelpBox.Render(suggestionText))
	}
	return rendered
}

// FromAPIError converts well known mod.io errors into a CliError with suggestions.
// Other errors are returned unchanged
func FromAPIError(err error) error {
	if err == nil {
		return nil
	}

	var apiErr *modio.Error
	switch {
	case errors.Is(err, modio.ErrUnauthorized):
		return &CliError{
			Text:        "You are not logged in or your session expired",
			Suggestions: []string{"Run \"modio login\""},
			Err:         err,
		}
	case errors.Is(err, modio.ErrForbidden):
		return &CliError{
			Text:        "You do not have permission to do this",
			Help:        "Only team members of a mod can edit it",
			Err:         err,
		}
	case errors.Is(err, modio.ErrNotFound):
		return &CliError{
			Text:        "Not found",
			Suggestions: []string{"Check the mod id with \"modio mods <search>\"", "Check game_id and environment with \"modio config get\""},
			Err:         err,
		}
	case errors.Is(err, modio.ErrRateLimited):
		return &CliError{
			Text:        "Too many requests",
			Suggestions: []string{"Wait a minute and try again"},
			Err:         err,
		}
	case errors.As(err, &apiErr):
		cliErr := &CliError{Text: apiErr.Message, Err: err}
		for field, msg := range apiErr.Errors {
			cliErr.Suggestions = append(cliErr.Suggestions, fmt.Sprintf("%s: %s", field, msg))
		}
		return cliErr
	}
	return err
}
