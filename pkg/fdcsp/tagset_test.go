package fdcsp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTagSetExactlyOne(t *testing.T) {
	ts := NewTagSet("color", 3)
	rule := ts.EnforceExactlyOne()

	assert.True(t, rule.Satisfied(Assignment{"color_0": 1, "color_1": 0, "color_2": 0}))
	assert.False(t, rule.Satisfied(Assignment{"color_0": 1, "color_1": 1, "color_2": 0}))
	assert.False(t, rule.Satisfied(Assignment{"color_0": 0, "color_1": 0, "color_2": 0}))
}

func TestTagSetAtMost(t *testing.T) {
	ts := NewTagSet("tag", 3)
	rule := ts.EnforceAtMost(1)

	assert.True(t, rule.Satisfied(Assignment{"tag_0": 1, "tag_1": 0, "tag_2": 0}))
	assert.False(t, rule.Satisfied(Assignment{"tag_0": 1, "tag_1": 1, "tag_2": 0}))
}

func TestTagSetAtLeastOne(t *testing.T) {
	ts := NewTagSet("opt", 2)
	rule := ts.EnforceAtLeastOne()

	assert.True(t, rule.Satisfied(Assignment{"opt_0": 1, "opt_1": 0}))
	assert.False(t, rule.Satisfied(Assignment{"opt_0": 0, "opt_1": 0}))
}
