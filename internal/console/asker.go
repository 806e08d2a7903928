package console

import (
	"errors"
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
)

// ErrAborted is returned when the operator interrupts a prompt.
var ErrAborted = errors.New("aborted by operator")

// Asker is the prompt surface the console needs. A validate func that
// returns an error makes the question repeat.
type Asker interface {
	Input(message, help, def string, validate func(string) error) (string, error)
	Confirm(message string, def bool) (bool, error)
}

// SurveyAsker prompts on the process terminal.
type SurveyAsker struct {
	Opts []survey.AskOpt
}

func (a SurveyAsker) Input(message, help, def string, validate func(string) error) (string, error) {
	var ans string
	prompt := &survey.Input{Message: message, Help: help, Default: def}

	opts := append([]survey.AskOpt{}, a.Opts...)
	if validate != nil {
		opts = append(opts, survey.WithValidator(func(val interface{}) error {
			str, ok := val.(string)
			if !ok {
				return fmt.Errorf("unexpected answer type %T", val)
			}
			return validate(str)
		}))
	}

	if err := survey.AskOne(prompt, &ans, opts...); err != nil {
		return "", mapInterrupt(err)
	}
	return ans, nil
}

func (a SurveyAsker) Confirm(message string, def bool) (bool, error) {
	var ok bool
	if err := survey.AskOne(&survey.Confirm{Message: message, Default: def}, &ok, a.Opts...); err != nil {
		return false, mapInterrupt(err)
	}
	return ok, nil
}

func mapInterrupt(err error) error {
	if errors.Is(err, terminal.InterruptErr) {
		return ErrAborted
	}
	return err
}
