package sim

import "github.com/enetx/fsm"

// State is the session-level state of a match.
type State string

const (
	StateActive State = "active"
	StatePaused State = "paused"
	StateEnded  State = "ended"
)

func (s State) String() string { return string(s) }

const (
	eventTick      fsm.Event = "tick"
	eventPause     fsm.Event = "pause"
	eventResume    fsm.Event = "resume"
	eventQuit      fsm.Event = "quit"
	eventEliminate fsm.Event = "eliminate"
)

// newMatchMachine wires the match transitions:
//
//	active --tick--> active
//	active --pause--> paused --resume--> active
//	active|paused --quit--> ended
//	active --eliminate--> ended
//
// Ended has no outgoing transitions.
func newMatchMachine(onEnd func()) *fsm.FSM {
	active := fsm.State(StateActive)
	paused := fsm.State(StatePaused)
	ended := fsm.State(StateEnded)
	return fsm.New(active).
		Transition(active, eventTick, active).
		Transition(active, eventPause, paused).
		Transition(paused, eventResume, active).
		Transition(active, eventQuit, ended).
		Transition(paused, eventQuit, ended).
		Transition(active, eventEliminate, ended).
		OnEnter(ended, func(*fsm.Context) error {
			if onEnd != nil {
				onEnd()
			}
			return nil
		})
}
