// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package cli

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio/internal/models"
)

// scripted answers with a fixed sequence of choices.
func scripted(answers ...string) chooser {
	return func(models.Technology, int, int) (string, error) {
		if len(answers) == 0 {
			return "", errors.New("no more answers")
		}
		a := answers[0]
		answers = answers[1:]
		return a, nil
	}
}

func sampleTechs() []models.Technology {
	return []models.Technology{
		{ID: uuid.New(), Name: "Go", Proficiency: 3},
		{ID: uuid.New(), Name: "HTMX", Proficiency: 2},
		{ID: uuid.New(), Name: "Docker", Proficiency: 4},
	}
}

func TestReviewProficiency(t *testing.T) {
	techs := sampleTechs()

	tests := []struct {
		name     string
		answers  []string
		want     map[uuid.UUID]int
		wantSave bool
	}{
		{"all kept", []string{"keep", "keep", "keep"}, map[uuid.UUID]int{}, true},
		{"levels set", []string{"5", "keep", "1"}, map[uuid.UUID]int{techs[0].ID: 5, techs[2].ID: 1}, true},
		{"same level is not a change", []string{"3", "2", "4"}, map[uuid.UUID]int{}, true},
		{"save skips the rest", []string{"4", "save"}, map[uuid.UUID]int{techs[0].ID: 4}, true},
		{"quit discards", []string{"5", "quit"}, nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			changes, save, err := reviewProficiency(techs, scripted(tt.answers...))
			require.NoError(t, err)
			assert.Equal(t, tt.wantSave, save)
			assert.Equal(t, tt.want, changes)
		})
	}
}

func TestReviewProficiencyErrors(t *testing.T) {
	_, _, err := reviewProficiency(sampleTechs(), scripted("9"))
	assert.ErrorContains(t, err, `invalid choice "9"`)

	_, _, err = reviewProficiency(sampleTechs(), scripted("keep"))
	assert.ErrorContains(t, err, "no more answers")
}

func TestReviewChoicesCoverEveryLevel(t *testing.T) {
	values := map[string]bool{}
	for _, c := range reviewChoices {
		values[c.value] = true
	}
	for _, v := range []string{choiceKeep, "1", "2", "3", "4", "5", choiceSave, choiceQuit} {
		assert.True(t, values[v], v)
	}
}
