package state

// validTransitions contains the permitted wizard moves. Back-navigation and
// the review-screen restep actions re-enter earlier steps while keeping the
// other drafted fields.
var validTransitions = map[Step][]Step{
	StepPairSelect: {
		StepHourSelect,
	},
	StepHourSelect: {
		StepMinuteSelect,
		StepPairSelect,
	},
	StepMinuteSelect: {
		StepDirectionSelect,
		StepHourSelect,
	},
	StepDirectionSelect: {
		StepReview,
		StepMinuteSelect,
	},
	StepReview: {
		StepPosted,
		StepPairSelect,
		StepHourSelect,
		StepDirectionSelect,
	},
	StepPosted: {},
}

// IsTransitionAllowed reports whether moving from one step to another is
// valid. Returning to the first step is always permitted: it is how a cancel
// or a completed post resets the wizard.
func IsTransitionAllowed(from, to Step) bool {
	if to == StepPairSelect {
		return true
	}

	for _, step := range validTransitions[from] {
		if step == to {
			return true
		}
	}

	return false
}
