package utils

import (
	"errors"

	"github.com/erikgeiser/promptkit/confirmation"
	"github.com/manifoldco/promptui"
)

// ErrAborted is returned when the user cancelled a prompt
var ErrAborted = errors.New("aborted")

// StringPrompt runs the prompt and returns the entered string
func StringPrompt(prompt *promptui.Prompt) (string, error) {
	res, err := prompt.Run()
	if err != nil {
		if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
			return "", ErrAborted
		}
		return "", err
	}
	return res, nil
}

// SelectPrompt runs the select prompt and returns the index of the selected item
func SelectPrompt(prompt *promptui.Select) (int, error) {
	i, _, err := prompt.Run()
	if err != nil {
		if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
			return 0, ErrAborted
		}
		return 0, err
	}
	return i, nil
}

// Confirm asks a yes/no question, defaulting to no
func Confirm(question string) (bool, error) {
	input := confirmation.New(question, confirmation.No)
	ok, err := input.RunPrompt()
	if err != nil {
		return false, ErrAborted
	}
	return ok, nil
}
