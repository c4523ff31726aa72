package snake

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/manifoldco/promptui"
)

// PromptString asks for a line of text. An empty answer takes def; with no
// default an answer is required.
func PromptString(in io.ReadCloser, out io.WriteCloser, label, def string) (string, error) {
	validate := func(input string) error {
		if strings.TrimSpace(input) == "" && def == "" {
			return errors.New("empty")
		}
		return nil
	}

	validInput := label
	if def != "" {
		validInput = fmt.Sprintf(`%s ["%s"]`, label, def)
	}

	templates := &promptui.PromptTemplates{
		Prompt:  "{{ . }} : ",
		Valid:   "{{ . | green }} : ",
		Invalid: "{{ . | red }} : ",
		Success: "{{ . | bold }} : ",
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
		return "", fmt.Errorf("prompt: %w", err)
	}
	result = strings.TrimSpace(result)
	if result == "" {
		result = def
	}
	return result, nil
}
