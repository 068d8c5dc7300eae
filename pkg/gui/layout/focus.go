package layout

// FocusState identifies the pane that owns keyboard input.
type FocusState int

const (
	FocusCommands FocusState = iota
	FocusScope
	FocusTargets
	FocusOutput
)

// String returns the string representation of the focus state
func (f FocusState) String() string {
	switch f {
	case FocusCommands:
		return "commands"
	case FocusScope:
		return "scope"
	case FocusTargets:
		return "targets"
	case FocusOutput:
		return "output"
	default:
		return "unknown"
	}
}

var (
	forwardWithTargets  = map[FocusState]FocusState{FocusCommands: FocusScope, FocusScope: FocusTargets, FocusTargets: FocusOutput, FocusOutput: FocusCommands}
	forwardNoTargets    = map[FocusState]FocusState{FocusCommands: FocusScope, FocusScope: FocusOutput, FocusOutput: FocusCommands}
	backwardWithTargets = map[FocusState]FocusState{FocusCommands: FocusOutput, FocusOutput: FocusTargets, FocusTargets: FocusScope, FocusScope: FocusCommands}
	backwardNoTargets   = map[FocusState]FocusState{FocusCommands: FocusOutput, FocusOutput: FocusScope, FocusScope: FocusCommands}
)

// Next returns the pane after f in tab order.
func Next(f FocusState, targetsVisible bool) FocusState {
	f = Normalize(f, targetsVisible)
	table := forwardNoTargets
	if targetsVisible {
		table = forwardWithTargets
	}
	if next, ok := table[f]; ok {
		return next
	}
	return FocusCommands
}

// Prev returns the pane before f in tab order.
func Prev(f FocusState, targetsVisible bool) FocusState {
	f = Normalize(f, targetsVisible)
	table := backwardNoTargets
	if targetsVisible {
		table = backwardWithTargets
	}
	if prev, ok := table[f]; ok {
		return prev
	}
	return FocusCommands
}

// Normalize redirects focus away from a hidden targets pane. Unknown values
// fall back to the command list.
func Normalize(f FocusState, targetsVisible bool) FocusState {
	switch f {
	case FocusCommands, FocusScope, FocusOutput:
		return f
	case FocusTargets:
		if targetsVisible {
			return f
		}
		return FocusOutput
	default:
		return FocusCommands
	}
}

// Visible lists the focusable panes in tab order.
func Visible(targetsVisible bool) []FocusState {
	if targetsVisible {
		return []FocusState{FocusCommands, FocusScope, FocusTargets, FocusOutput}
	}
	return []FocusState{FocusCommands, FocusScope, FocusOutput}
}
