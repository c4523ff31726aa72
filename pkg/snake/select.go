package snake

import (
	"fmt"
	"io"
	"strings"

	"github.com/manifoldco/promptui"
)

// Choice is one line of a Select prompt.
type Choice struct {
	Name   string
	Short  string
	Detail string
}

// Select shows a searchable list and returns the index picked.
func Select(in io.ReadCloser, out io.WriteCloser, label string, choices []Choice) (int, error) {
	if len(choices) == 0 {
		return -1, fmt.Errorf("prompt: nothing to choose from")
	}

	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}?",
		Active:   "➜  {{ .Name | bold }} {{ .Short | green }}",
		Inactive: "   {{ .Name }} {{ .Short | cyan }}",
		Selected: "{{ .Name | bold }}",
		Details: `
--------- Details ----------
{{ .Detail }}
`,
	}

	searcher := func(input string, index int) bool {
		c := choices[index]
		name := strings.Replace(strings.ToLower(c.Name+c.Short), " ", "", -1)
		input = strings.Replace(strings.ToLower(input), " ", "", -1)

		return strings.Contains(name, input)
	}

	prompt := promptui.Select{
		HideHelp:  true,
		Label:     label,
		Items:     choices,
		Templates: templates,
		Size:      10,
		Searcher:  searcher,
		Stdin:     in,
		Stdout:    out,
	}

	i, _, err := prompt.Run()
	if err != nil {
		return -1, fmt.Errorf("prompt: %w", err)
	}
	return i, nil
}

// NopCloser wraps w so it can be handed to promptui, which closes its output.
func NopCloser(w io.Writer) io.WriteCloser {
	return nopCloser{w}
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }
