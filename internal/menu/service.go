package menu

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"
)

const (
	menuLabelConstant           = "Pi-hole administration"
	quitItemLabelConstant       = "Quit"
	itemFailureTemplateConstant = "Error: %v\n"
	itemSeparatorConstant       = "\n"
	itemSelectedMessageConstant = "menu item selected"
	menuFinishedMessageConstant = "menu session finished"
	logFieldItemConstant        = "item"
)

// Item is one dispatchable menu entry.
type Item struct {
	Label  string
	Action func(executionContext context.Context) error
}

// Service runs the interactive select loop until quit or interrupt.
type Service struct {
	selector     ItemSelector
	items        []Item
	outputWriter io.Writer
	logger       *zap.Logger
}

// NewService constructs a Service over the provided selector and items. A
// Quit entry is appended automatically.
func NewService(selector ItemSelector, items []Item, outputWriter io.Writer, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{selector: selector, items: items, outputWriter: outputWriter, logger: logger}
}

// Run loops over selections, dispatching each chosen action. Action failures
// are printed and the loop continues; quit, interrupt, and context
// cancellation all end the session cleanly.
func (service *Service) Run(executionContext context.Context) error {
	itemLabels := make([]string, 0, len(service.items)+1)
	for _, menuItem := range service.items {
		itemLabels = append(itemLabels, menuItem.Label)
	}
	itemLabels = append(itemLabels, quitItemLabelConstant)
	quitIndex := len(itemLabels) - 1

	for {
		if contextError := executionContext.Err(); contextError != nil {
			return nil
		}

		selectedIndex, selectError := service.selector.Select(menuLabelConstant, itemLabels)
		if selectError != nil {
			if IsInterrupt(selectError) {
				service.logger.Info(menuFinishedMessageConstant)
				return nil
			}
			return selectError
		}

		if selectedIndex == quitIndex {
			service.logger.Info(menuFinishedMessageConstant)
			return nil
		}
		if selectedIndex < 0 || selectedIndex >= len(service.items) {
			continue
		}

		selectedItem := service.items[selectedIndex]
		service.logger.Info(itemSelectedMessageConstant, zap.String(logFieldItemConstant, selectedItem.Label))

		if actionError := selectedItem.Action(executionContext); actionError != nil {
			fmt.Fprintf(service.outputWriter, itemFailureTemplateConstant, actionError)
		}
		fmt.Fprint(service.outputWriter, itemSeparatorConstant)
	}
}
