package chat

import (
	"strings"
	"sync"

	// Packages
	schema "github.com/zxss702/go-openai/pkg/schema"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// accumulator merges streamed deltas into a running result. One
// accumulator is exclusively owned by one in-flight call; the mutex
// makes drains atomic with respect to concurrent delta application,
// for the case where a background poller drains while the network
// reader appends.
type accumulator struct {
	sync.Mutex
	role            string
	phase           string
	text            strings.Builder
	thinking        strings.Builder
	pendingText     strings.Builder
	pendingThinking strings.Builder
	fragments       []schema.ToolCallFragment
	fragmentsDirty  bool
	finishReason    string
	usage           *chatUsage
}

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

func newAccumulator() *accumulator {
	return new(accumulator)
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// apply merges one delta into the accumulated state. Deltas must be
// applied in the order the transport delivers them.
func (a *accumulator) apply(delta chunkDelta) {
	a.Lock()
	defer a.Unlock()

	// Role arrives on the first delta only
	if a.role == "" && delta.Role != "" {
		a.role = delta.Role
	}

	// Append answer text
	if delta.Content != "" {
		a.text.WriteString(delta.Content)
		a.pendingText.WriteString(delta.Content)
		a.phase = schema.PhaseContent
	}

	// Append reasoning text
	if thinking := delta.thinking(); thinking != "" {
		a.thinking.WriteString(thinking)
		a.pendingThinking.WriteString(thinking)
		a.phase = schema.PhaseThinking
	}

	// Merge tool-call fragments
	for _, tc := range delta.ToolCalls {
		a.mergeToolCall(tc)
	}
}

// setFinishReason records the finish reason from a chunk choice.
func (a *accumulator) setFinishReason(reason string) {
	a.Lock()
	defer a.Unlock()
	if reason != "" {
		a.finishReason = reason
	}
}

// setUsage records usage statistics. Only the last-seen value is kept,
// since usage is expected at most once near the end of the stream.
func (a *accumulator) setUsage(usage *chatUsage) {
	a.Lock()
	defer a.Unlock()
	if usage != nil {
		a.usage = usage
	}
}

// hasPending reports whether anything changed since the last drain.
func (a *accumulator) hasPending() bool {
	a.Lock()
	defer a.Unlock()
	return a.pendingText.Len() > 0 || a.pendingThinking.Len() > 0 || a.fragmentsDirty
}

// snapshot produces an immutable view of the current state without
// clearing pending deltas.
func (a *accumulator) snapshot() schema.Snapshot {
	a.Lock()
	defer a.Unlock()
	return a.view()
}

// drain produces the same snapshot and clears pending-delta state.
// Cumulative text and tool-call fragments are never cleared.
func (a *accumulator) drain() schema.Snapshot {
	a.Lock()
	defer a.Unlock()
	snapshot := a.view()
	a.pendingText.Reset()
	a.pendingThinking.Reset()
	a.fragmentsDirty = false
	return snapshot
}

// result returns the final aggregate state after the stream ends.
func (a *accumulator) result() (string, string, []schema.ToolCallFragment, string, *chatUsage) {
	a.Lock()
	defer a.Unlock()
	return a.text.String(), a.thinking.String(), a.copyFragments(), a.finishReason, a.usage
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// view builds a snapshot; callers hold the lock.
func (a *accumulator) view() schema.Snapshot {
	return schema.Snapshot{
		Phase:         a.phase,
		TextDelta:     a.pendingText.String(),
		ThinkingDelta: a.pendingThinking.String(),
		Text:          a.text.String(),
		Thinking:      a.thinking.String(),
		ToolCalls:     a.copyFragments(),
	}
}

// mergeToolCall merges one tool-call delta; callers hold the lock.
// Fragments are matched by the server-assigned index when present, by
// id otherwise, and fall back to the most recent fragment. New indices
// append in first-seen order; id and type are first-non-empty-wins,
// name and arguments concatenate in arrival order.
func (a *accumulator) mergeToolCall(tc chatToolCall) {
	slot := -1
	if tc.Index != nil {
		for i := range a.fragments {
			if a.fragments[i].Index == *tc.Index {
				slot = i
				break
			}
		}
	} else if tc.Id != "" {
		for i := range a.fragments {
			if a.fragments[i].ID == tc.Id {
				slot = i
				break
			}
		}
	} else if len(a.fragments) > 0 {
		slot = len(a.fragments) - 1
	}

	if slot == -1 {
		index := len(a.fragments)
		if tc.Index != nil {
			index = *tc.Index
		}
		a.fragments = append(a.fragments, schema.ToolCallFragment{
			Index:     index,
			ID:        tc.Id,
			Type:      tc.Type,
			Name:      tc.Function.Name,
			Arguments: tc.Function.Arguments,
		})
	} else {
		fragment := &a.fragments[slot]
		if fragment.ID == "" {
			fragment.ID = tc.Id
		}
		if fragment.Type == "" {
			fragment.Type = tc.Type
		}
		fragment.Name += tc.Function.Name
		fragment.Arguments += tc.Function.Arguments
	}
	a.fragmentsDirty = true
}

// copyFragments returns a copy of the fragments; callers hold the lock.
func (a *accumulator) copyFragments() []schema.ToolCallFragment {
	if len(a.fragments) == 0 {
		return nil
	}
	fragments := make([]schema.ToolCallFragment, len(a.fragments))
	copy(fragments, a.fragments)
	return fragments
}
