package handlers

import (
	"context"
	"errors"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"
)

// confirmPrompt asks the operator to approve a mutating run.
func confirmPrompt(ctx context.Context, title string) (bool, error) {
	var ok bool
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Description("Changes are applied to Prism Central immediately. Use --test to preview.").
				Affirmative("Apply").
				Negative("Cancel").
				Value(&ok),
		),
	).RunWithContext(ctx)
	if errors.Is(err, huh.ErrUserAborted) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return ok, nil
}

func isInteractiveTTY() bool {
	return isTerminal(os.Stdin.Fd()) && isTerminal(os.Stdout.Fd())
}

func isStyledTTY() bool {
	return isTerminal(os.Stdout.Fd())
}

func isTerminal(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
