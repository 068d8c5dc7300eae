package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextOrder(t *testing.T) {
	assert.Equal(t, FocusScope, Next(FocusCommands, true))
	assert.Equal(t, FocusTargets, Next(FocusScope, true))
	assert.Equal(t, FocusOutput, Next(FocusTargets, true))
	assert.Equal(t, FocusCommands, Next(FocusOutput, true))

	assert.Equal(t, FocusScope, Next(FocusCommands, false))
	assert.Equal(t, FocusOutput, Next(FocusScope, false))
	assert.Equal(t, FocusCommands, Next(FocusOutput, false))
}

func TestPrevIsExactReverse(t *testing.T) {
	for _, visible := range []bool{true, false} {
		for _, f := range Visible(visible) {
			assert.Equal(t, f, Prev(Next(f, visible), visible), "prev(next(%s)) visible=%v", f, visible)
			assert.Equal(t, f, Next(Prev(f, visible), visible), "next(prev(%s)) visible=%v", f, visible)
		}
	}
	assert.Equal(t, FocusOutput, Prev(FocusCommands, false))
	assert.Equal(t, FocusOutput, Prev(FocusCommands, true))
}

func TestTabCycleReturnsToStart(t *testing.T) {
	for _, visible := range []bool{true, false} {
		panes := Visible(visible)
		for _, start := range panes {
			f := start
			for i := 0; i < len(panes); i++ {
				f = Next(f, visible)
			}
			assert.Equal(t, start, f, "forward cycle from %s visible=%v", start, visible)

			f = start
			for i := 0; i < len(panes); i++ {
				f = Prev(f, visible)
			}
			assert.Equal(t, start, f, "backward cycle from %s visible=%v", start, visible)
		}
	}
	assert.Len(t, Visible(true), 4)
	assert.Len(t, Visible(false), 3)
}

func TestNeverLandsOnHiddenTargets(t *testing.T) {
	for _, f := range []FocusState{FocusCommands, FocusScope, FocusTargets, FocusOutput} {
		assert.NotEqual(t, FocusTargets, Next(f, false))
		assert.NotEqual(t, FocusTargets, Prev(f, false))
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name    string
		in      FocusState
		visible bool
		want    FocusState
	}{
		{"hidden targets redirect to output", FocusTargets, false, FocusOutput},
		{"visible targets stay", FocusTargets, true, FocusTargets},
		{"commands unchanged", FocusCommands, false, FocusCommands},
		{"output unchanged", FocusOutput, true, FocusOutput},
		{"unknown falls back", FocusState(42), true, FocusCommands},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in, tt.visible))
		})
	}
}

func TestFocusString(t *testing.T) {
	assert.Equal(t, "commands", FocusCommands.String())
	assert.Equal(t, "scope", FocusScope.String())
	assert.Equal(t, "targets", FocusTargets.String())
	assert.Equal(t, "output", FocusOutput.String())
	assert.Equal(t, "unknown", FocusState(9).String())
}
