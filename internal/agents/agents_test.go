// ABOUTME: Tests for the agent directory
// ABOUTME: Covers blank-name handling, ordering, and status colours

package agents

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDirectory_FirstSelectableSkipsBlank(t *testing.T) {
	d := NewDirectory(
		Agent{ID: "0", Name: "   "},
		Agent{ID: "1", Name: "GoTeddy"},
		Agent{ID: "2", Name: "CodeHelper"},
	)

	assert.Equal(t, "GoTeddy", d.FirstSelectable())
	assert.Len(t, d.Selectable(), 2)
	assert.Equal(t, 3, d.Len(), "blank agents stay in the directory")
}

func TestDirectory_FirstSelectableEmpty(t *testing.T) {
	d := NewDirectory(Agent{ID: "0", Name: ""})
	assert.Equal(t, "", d.FirstSelectable())
	assert.Empty(t, d.Selectable())
}

func TestDirectory_AllReturnsCopy(t *testing.T) {
	src := []Agent{{ID: "1", Name: "GoTeddy"}}
	d := NewDirectory(src...)
	src[0].Name = "changed"

	all := d.All()
	assert.Equal(t, "GoTeddy", all[0].Name)

	all[0].Name = "mutated"
	assert.Equal(t, "GoTeddy", d.All()[0].Name)
}

func TestAgent_StatusColorAndIcon(t *testing.T) {
	assert.Equal(t, "green", Agent{Status: StatusActive}.StatusColor())
	assert.Equal(t, "yellow", Agent{Status: StatusInactive}.StatusColor())
	assert.Equal(t, "red", Agent{Status: StatusError}.StatusColor())
	assert.Equal(t, "gray", Agent{Status: "unknown"}.StatusColor())

	assert.Equal(t, "Cpu", Agent{IconName: "Cpu"}.Icon())
	assert.Equal(t, "Bot", Agent{IconName: "Rocket"}.Icon())
}
