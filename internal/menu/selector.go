package menu

import (
	"io"

	"github.com/manifoldco/promptui"
)

const selectorListSizeConstant = 14

// ItemSelector presents a list of labels and reports the chosen one.
type ItemSelector interface {
	Select(label string, items []string) (int, error)
}

// PromptUISelector renders the selection list with promptui.
type PromptUISelector struct {
	Stdin  io.ReadCloser
	Stdout io.WriteCloser
}

// NewPromptUISelector constructs a selector bound to the process terminal.
func NewPromptUISelector() *PromptUISelector {
	return &PromptUISelector{}
}

// Select runs the arrow-key selection list and returns the chosen index.
func (selector *PromptUISelector) Select(label string, items []string) (int, error) {
	selectPrompt := promptui.Select{
		Label:        label,
		Items:        items,
		Size:         selectorListSizeConstant,
		HideSelected: true,
		Stdin:        selector.Stdin,
		Stdout:       selector.Stdout,
	}

	selectedIndex, _, selectError := selectPrompt.Run()
	return selectedIndex, selectError
}

// IsInterrupt reports whether the selection was aborted with an interrupt.
func IsInterrupt(selectError error) bool {
	return selectError == promptui.ErrInterrupt || selectError == promptui.ErrEOF
}
