// Package apartment answers whether a flat owner can benefit from rooftop
// solar under their state's shared metering policy.
package apartment

import (
	"errors"
	"fmt"
)

var ErrInvalidInput = errors.New("invalid input")

// RooftopAccess is how much of the society roof the resident can use.
type RooftopAccess string

const (
	AccessFull    RooftopAccess = "full"
	AccessPartial RooftopAccess = "partial"
	AccessNone    RooftopAccess = "none"
)

const AccessWarning = "Rooftop Access Issue: Even though your state might allow it, you need physical roof space. " +
	"Ask your society if \"Offsite Solar\" (Open Access) is an option, though it's rare for small capacities."

const NextStep = "Check the guide on \"Talking to your society about solar\"."

type Verdict struct {
	State         string  `json:"state"`
	Status        Status  `json:"status"`
	Display       Display `json:"display"`
	Policy        Policy  `json:"policy"`
	AccessWarning string  `json:"accessWarning,omitempty"`
	UsedDefault   bool    `json:"usedDefault"`
	NextStep      string  `json:"nextStep"`
}

// Check returns the feasibility verdict for state. Unknown states get the
// default policy.
func Check(state string, access RooftopAccess) (*Verdict, error) {
	if state == "" {
		return nil, fmt.Errorf("%w: please select your state", ErrInvalidInput)
	}
	switch access {
	case "", AccessFull, AccessPartial, AccessNone:
	default:
		return nil, fmt.Errorf("%w: rooftop access %q", ErrInvalidInput, access)
	}

	policy, ok := policies[state]
	if !ok {
		policy = policies[DefaultKey]
	}

	v := &Verdict{
		State:       state,
		Status:      policy.Status,
		Display:     policy.Status.Display(),
		Policy:      clonePolicy(policy),
		UsedDefault: !ok,
		NextStep:    NextStep,
	}
	if access == AccessNone {
		v.AccessWarning = AccessWarning
	}
	return v, nil
}

// LocalRules returns the insider notes for state, or the general notes.
func LocalRules(state string) Rules {
	r, ok := regulations[state]
	if !ok {
		r = regulations[DefaultKey]
	}
	return Rules{StateName: r.StateName, Notes: append([]InsiderNote(nil), r.Notes...)}
}

func clonePolicy(p Policy) Policy {
	p.Conditions = append([]string(nil), p.Conditions...)
	p.WhatWorks = append([]string(nil), p.WhatWorks...)
	return p
}
