package state

import "testing"

func TestIsTransitionAllowed(t *testing.T) {
	testCases := []struct {
		name     string
		from     Step
		to       Step
		expected bool
	}{
		{name: "pair select to hour select", from: StepPairSelect, to: StepHourSelect, expected: true},
		{name: "hour select to minute select", from: StepHourSelect, to: StepMinuteSelect, expected: true},
		{name: "hour select back to pair select", from: StepHourSelect, to: StepPairSelect, expected: true},
		{name: "minute select to direction select", from: StepMinuteSelect, to: StepDirectionSelect, expected: true},
		{name: "minute select back to hour select", from: StepMinuteSelect, to: StepHourSelect, expected: true},
		{name: "direction select to review", from: StepDirectionSelect, to: StepReview, expected: true},
		{name: "review to posted", from: StepReview, to: StepPosted, expected: true},
		{name: "review restep to hour select", from: StepReview, to: StepHourSelect, expected: true},
		{name: "review restep to direction select", from: StepReview, to: StepDirectionSelect, expected: true},
		{name: "cancel from anywhere", from: StepPosted, to: StepPairSelect, expected: true},
		{name: "pair select cannot skip to review", from: StepPairSelect, to: StepReview, expected: false},
		{name: "hour select cannot skip to posted", from: StepHourSelect, to: StepPosted, expected: false},
		{name: "posted cannot return to review", from: StepPosted, to: StepReview, expected: false},
		{name: "unknown step goes nowhere but start", from: Step("unknown"), to: StepHourSelect, expected: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if actual := IsTransitionAllowed(tc.from, tc.to); actual != tc.expected {
				t.Errorf("IsTransitionAllowed(%s -> %s) = %t, expected %t", tc.from, tc.to, actual, tc.expected)
			}
		})
	}
}

func TestAdvanceNotifiesRegisteredRecorder(t *testing.T) {
	type move struct{ from, to string }

	var seen []move
	RegisterTransitionRecorder(func(from, to string) {
		seen = append(seen, move{from, to})
	})
	defer RegisterTransitionRecorder(nil)

	d := Draft{Step: StepPairSelect}
	if err := d.Advance(StepHourSelect); err != nil {
		t.Fatalf("Advance() = %v", err)
	}
	if err := d.Advance(StepPosted); err == nil {
		t.Fatal("Advance() on a forbidden move should fail")
	}

	expected := []move{{string(StepPairSelect), string(StepHourSelect)}}
	if len(seen) != 1 || seen[0] != expected[0] {
		t.Errorf("recorded moves = %v, expected %v", seen, expected)
	}
}
