package itinerary

import "fmt"

// ViolationKind names a broken trip invariant.
type ViolationKind string

const (
	NonPositiveDuration ViolationKind = "non_positive_duration"
	NegativeWait        ViolationKind = "negative_wait"
	ChainBreak          ViolationKind = "chain_break"
)

// Violation describes one malformed part of a trip. Index refers to the
// segment (or, for waits and chain breaks, the first segment of the pair).
type Violation struct {
	Kind    ViolationKind `json:"kind"`
	Index   int           `json:"index"`
	Message string        `json:"message"`
}

func (v Violation) Error() string {
	return v.Message
}

// Check reports every invariant the producer was trusted to uphold but did
// not. Rendering never calls it; integrations that want strict guarantees do.
func (t Trip) Check() []Violation {
	var violations []Violation

	if len(t.Segments) == 0 {
		return []Violation{{Kind: NonPositiveDuration, Index: 0, Message: ErrEmptyTrip.Error()}}
	}

	for i, s := range t.Segments {
		if s.Duration() <= 0 {
			violations = append(violations, Violation{
				Kind:    NonPositiveDuration,
				Index:   i,
				Message: fmt.Sprintf("segment %d (%s -> %s) has duration %d", i, s.From, s.To, s.Duration()),
			})
		}

		if i == len(t.Segments)-1 {
			continue
		}

		next := t.Segments[i+1]
		if wait := t.Wait(i); wait < 0 {
			violations = append(violations, Violation{
				Kind:    NegativeWait,
				Index:   i,
				Message: fmt.Sprintf("transfer at %s between segments %d and %d has wait %d", s.To, i, i+1, wait),
			})
		}
		if s.To != next.From {
			violations = append(violations, Violation{
				Kind:    ChainBreak,
				Index:   i,
				Message: fmt.Sprintf("segment %d ends at %q but segment %d starts at %q", i, s.To, i+1, next.From),
			})
		}
	}

	return violations
}
