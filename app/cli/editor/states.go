package editor

import "github.com/looplab/fsm"

const (
	StateQueryEntry       = "query_entry"
	StateOutlineEditing   = "outline_editing"
	StateEnrichmentReview = "enrichment_review"
)

const (
	EventGenerate = "generate"
	EventAdvance  = "advance"
	EventBack     = "back"
)

func newWorkflow(initial string) *fsm.FSM {
	return fsm.NewFSM(
		initial,
		fsm.Events{
			{Name: EventGenerate, Src: []string{StateQueryEntry}, Dst: StateOutlineEditing},
			{Name: EventAdvance, Src: []string{StateOutlineEditing}, Dst: StateEnrichmentReview},
			{Name: EventBack, Src: []string{StateEnrichmentReview}, Dst: StateOutlineEditing},
		},
		fsm.Callbacks{},
	)
}
