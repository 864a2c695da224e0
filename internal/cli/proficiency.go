// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"portfolio/internal/models"
)

// Review answers besides a proficiency level.
const (
	choiceKeep = "keep"
	choiceSave = "save"
	choiceQuit = "quit"
)

// chooser asks what to do with one technology. It returns choiceKeep,
// choiceSave, choiceQuit or a level "1" to "5".
type chooser func(t models.Technology, pos, total int) (string, error)

// reviewProficiency walks techs and collects proficiency changes. save is
// false when the reviewer quit; the changes are then discarded.
func reviewProficiency(techs []models.Technology, choose chooser) (changes map[uuid.UUID]int, save bool, err error) {
	changes = make(map[uuid.UUID]int)
	for i, t := range techs {
		choice, err := choose(t, i+1, len(techs))
		if err != nil {
			return nil, false, err
		}
		switch choice {
		case choiceKeep:
		case choiceSave:
			return changes, true, nil
		case choiceQuit:
			return nil, false, nil
		default:
			level, err := strconv.Atoi(choice)
			if err != nil || level < models.MinProficiency || level > models.MaxProficiency {
				return nil, false, fmt.Errorf("invalid choice %q", choice)
			}
			if level != t.Proficiency {
				changes[t.ID] = level
			} else {
				delete(changes, t.ID)
			}
		}
	}
	return changes, true, nil
}

var reviewChoices = []struct {
	label, value string
}{
	{"Keep", choiceKeep},
	{"1 ★☆☆☆☆", "1"},
	{"2 ★★☆☆☆", "2"},
	{"3 ★★★☆☆", "3"},
	{"4 ★★★★☆", "4"},
	{"5 ★★★★★", "5"},
	{"Save and skip the rest", choiceSave},
	{"Quit without saving", choiceQuit},
}

// promptChooser asks through an interactive terminal menu.
func promptChooser(t models.Technology, pos, total int) (string, error) {
	labels := make([]string, len(reviewChoices))
	for i, c := range reviewChoices {
		labels[i] = c.label
	}
	sel := promptui.Select{
		Label: fmt.Sprintf("[%d/%d] %s (%s) %s %d/5", pos, total, t.Name, t.Category, t.Stars(), t.Proficiency),
		Items: labels,
		Size:  len(labels),
	}
	idx, _, err := sel.Run()
	if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
		return choiceQuit, nil
	}
	if err != nil {
		return "", fmt.Errorf("prompt: %w", err)
	}
	return reviewChoices[idx].value, nil
}

func newProficiencyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "proficiency",
		Short: "Review technology proficiency levels interactively",
		Long: `Shows each technology in turn. Changes are saved together at the
end with a single cache invalidation.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *app) error {
				techs, err := a.techs.List()
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if len(techs) == 0 {
					fmt.Fprintln(out, "No technologies found.")
					return nil
				}

				changes, save, err := reviewProficiency(techs, promptChooser)
				if err != nil {
					return err
				}
				if !save {
					fmt.Fprintln(out, "Quit, nothing saved.")
					return nil
				}
				if err := a.showcase.UpdateProficiency(cmd.Context(), changes); err != nil {
					return err
				}
				fmt.Fprintf(out, "%d technologies updated.\n", len(changes))
				return nil
			})
		},
	}
}
