// Package snake holds the interactive prompts used by the CLI.
package snake

import (
	"fmt"
	"io"
	"strconv"

	"github.com/manifoldco/promptui"
)

// Confirm asks a yes/no question and returns the answer. An empty answer
// takes def.
func Confirm(in io.ReadCloser, out io.WriteCloser, question string, def bool) (bool, error) {
	validInput := "yes/[no]"
	if def {
		validInput = "[yes]/no"
	}

	validate := func(input string) error {
		if input == "" {
			return nil
		}
		_, err := ParseBool(input)
		return err
	}

	templates := &promptui.PromptTemplates{
		Prompt:  question + " {{ . }} : ",
		Valid:   question + " {{ . | green }} : ",
		Invalid: question + " {{ . | red }} : ",
		Success: question + " {{ . | bold }} : ",
	}

	prompt := promptui.Prompt{
		Label:     validInput,
		Templates: templates,
		Validate:  validate,
		Stdin:     in,
		Stdout:    out,
	}

	result, err := prompt.Run()
	if err != nil {
		return false, fmt.Errorf("prompt: %w", err)
	}
	if result == "" {
		return def, nil
	}
	return ParseBool(result)
}

// ParseBool is strconv.ParseBool with the addition of Yes/No parsing.
func ParseBool(str string) (bool, error) {
	switch str {
	case "1", "t", "T", "true", "TRUE", "True", "y", "Y", "yes", "YES", "Yes":
		return true, nil
	case "0", "f", "F", "false", "FALSE", "False", "n", "N", "no", "NO", "No":
		return false, nil
	}
	return false, &strconv.NumError{Func: "ParseBool", Num: str, Err: strconv.ErrSyntax}
}
