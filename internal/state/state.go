// Package state holds the per-admin conversation state: the signal creation
// wizard and the pending result post. State is process-local by design; the
// bot serves a single admin channel with sequential operator use.
package state

import "errors"

// Step is a position in the signal creation wizard.
type Step string

const (
	// StepPairSelect is the wizard entry: picking a currency pair.
	StepPairSelect Step = "pair_select"
	// StepHourSelect asks for the entry hour (0–23).
	StepHourSelect Step = "hour_select"
	// StepMinuteSelect asks for the entry minute in 5-minute increments.
	StepMinuteSelect Step = "minute_select"
	// StepDirectionSelect asks for BUY or SELL.
	StepDirectionSelect Step = "direction_select"
	// StepReview shows the drafted signal for confirmation.
	StepReview Step = "review"
	// StepPosted is terminal for one wizard pass; the draft resets after it.
	StepPosted Step = "posted"
)

// ErrInvalidTransition indicates a wizard move the transitions table forbids.
var ErrInvalidTransition = errors.New("invalid wizard transition")

// Draft accumulates the operator's choices across the wizard. Hour and Minute
// are pointers: confirmation is a no-op until both have been chosen.
type Draft struct {
	Pair      string
	Hour      *int
	Minute    *int
	Direction string
	Step      Step
	// PairPage remembers which catalog page the operator last viewed so
	// back-navigation from the hour grid returns to the same page.
	PairPage int
}

// Advance moves the wizard to the given step if the transition is allowed.
func (d *Draft) Advance(to Step) error {
	if !IsTransitionAllowed(d.Step, to) {
		return ErrInvalidTransition
	}

	transitionRecorder(string(d.Step), string(to))
	d.Step = to
	return nil
}

// TimeChosen reports whether both hour and minute have been picked.
func (d *Draft) TimeChosen() bool {
	return d.Hour != nil && d.Minute != nil
}

// Reset clears every drafted field and returns the wizard to its first step.
func (d *Draft) Reset() {
	*d = Draft{Step: StepPairSelect}
}

// ResultPost tracks the pending outcome-post lifecycle between the outcome
// choice and the channel dispatch.
type ResultPost struct {
	AwaitingImage        bool
	ChosenResult         string
	ImagePath            string
	LastPreviewMessageID int
}

// Chosen reports whether an outcome has been selected and not yet dispatched.
func (r *ResultPost) Chosen() bool {
	return r.ChosenResult != ""
}

// Reset clears all transient result-post state after dispatch or cancel.
func (r *ResultPost) Reset() {
	*r = ResultPost{}
}

// Conversation is everything the bot remembers about one admin's dialogue.
type Conversation struct {
	AdminID int64
	Draft   Draft
	Result  ResultPost
	// LastBotMessageID is the prompt the bot most recently sent to this
	// admin; flows delete-and-replace it to keep the dialogue tidy, and
	// the session close flow zeroes it to disarm a consumed prompt.
	LastBotMessageID int
	// PendingBroadcast holds an announcement awaiting confirmation.
	PendingBroadcast string
}

var transitionRecorder = func(from, to string) {}

// RegisterTransitionRecorder lets external packages observe wizard
// transitions, e.g. for metrics.
func RegisterTransitionRecorder(recorder func(from, to string)) {
	if recorder == nil {
		transitionRecorder = func(string, string) {}
		return
	}

	transitionRecorder = recorder
}
