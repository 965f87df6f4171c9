package logic

import (
	"strings"

	"github.com/case-framework/discovery-builder/pkg/survey/types"
)

type LogicCycle struct {
	// QuestionIDs lists the questions on the cycle; the first one depends on the second and so on,
	// the last one depends on the first.
	QuestionIDs []string `json:"questionIds"`
}

func (c LogicCycle) String() string {
	if len(c.QuestionIDs) == 0 {
		return ""
	}
	return strings.Join(append(append([]string{}, c.QuestionIDs...), c.QuestionIDs[0]), " -> ")
}

const (
	visitNone = iota
	visitActive
	visitDone
)

// DetectLogicCycles builds the dependency graph of enabled display and skip logic conditions and
// returns every cycle found by a depth first walk, self references included. References to
// questions outside the given list are ignored.
func DetectLogicCycles(questions []types.Question) []LogicCycle {
	known := map[string]bool{}
	for _, q := range questions {
		known[q.ID] = true
	}

	edges := map[string][]string{}
	for _, q := range questions {
		conditions := []types.DisplayLogicCondition{}
		if q.DisplayLogic != nil && q.DisplayLogic.Enabled {
			conditions = append(conditions, q.DisplayLogic.Conditions...)
		}
		if q.SkipLogic != nil && q.SkipLogic.Enabled {
			conditions = append(conditions, q.SkipLogic.Conditions...)
		}
		seen := map[string]bool{}
		for _, c := range conditions {
			if c.Source() != types.CONDITION_SOURCE_QUESTION || !known[c.QuestionID] || seen[c.QuestionID] {
				continue
			}
			seen[c.QuestionID] = true
			edges[q.ID] = append(edges[q.ID], c.QuestionID)
		}
	}

	state := map[string]int{}
	stack := []string{}
	cycles := []LogicCycle{}

	var visit func(id string)
	visit = func(id string) {
		state[id] = visitActive
		stack = append(stack, id)
		for _, next := range edges[id] {
			switch state[next] {
			case visitNone:
				visit(next)
			case visitActive:
				start := len(stack) - 1
				for start >= 0 && stack[start] != next {
					start--
				}
				cycles = append(cycles, LogicCycle{QuestionIDs: append([]string{}, stack[start:]...)})
			}
		}
		stack = stack[:len(stack)-1]
		state[id] = visitDone
	}

	for _, q := range questions {
		if state[q.ID] == visitNone {
			visit(q.ID)
		}
	}
	return cycles
}
