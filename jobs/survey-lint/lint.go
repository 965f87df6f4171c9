package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/case-framework/discovery-builder/pkg/survey/logic"
	"github.com/case-framework/discovery-builder/pkg/survey/types"
)

type fileReport struct {
	Path          string                          `json:"path"`
	SurveyID      string                          `json:"surveyId,omitempty"`
	Error         string                          `json:"error,omitempty"`
	Warnings      map[string][]logic.LogicWarning `json:"warnings,omitempty"`
	CircularLogic logic.CircularLogicResult       `json:"circularLogic"`
	Cycles        []logic.LogicCycle              `json:"cycles,omitempty"`
	Summaries     map[string]logic.LogicSummary   `json:"summaries,omitempty"`
}

// HasErrors reports problems that make the survey unusable: unreadable files and logic cycles.
func (r fileReport) HasErrors() bool {
	return r.Error != "" || r.CircularLogic.HasIssue || len(r.Cycles) > 0
}

func (r fileReport) WarningCount() int {
	count := 0
	for _, w := range r.Warnings {
		count += len(w)
	}
	return count
}

// readSurvey accepts a plain survey document or an autosaved draft ({"survey": ..., "savedAt": ...}).
// A draft whose survey cannot be decoded is an error, never an empty survey.
func readSurvey(data []byte) (*types.Survey, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, err
	}

	raw, isDraft := fields["survey"]
	if !isDraft {
		raw = data
	}
	var survey *types.Survey
	if err := json.Unmarshal(raw, &survey); err != nil {
		return nil, err
	}
	if survey == nil {
		return nil, errors.New("draft has no survey")
	}
	return survey, nil
}

func lintSurvey(path string, survey *types.Survey) fileReport {
	questions := survey.AllQuestions()
	return fileReport{
		Path:          path,
		SurveyID:      survey.ID,
		Warnings:      logic.GetSurveyLogicWarnings(survey),
		CircularLogic: logic.DetectCircularLogic(questions),
		Cycles:        logic.DetectLogicCycles(questions),
		Summaries:     logic.GetSurveyLogicSummaries(survey),
	}
}

func lintFile(path string) fileReport {
	data, err := os.ReadFile(path)
	if err != nil {
		return fileReport{Path: path, Error: err.Error()}
	}
	survey, err := readSurvey(data)
	if err != nil {
		return fileReport{Path: path, Error: fmt.Sprintf("invalid survey: %s", err.Error())}
	}
	return lintSurvey(path, survey)
}

func writeJSONReports(w io.Writer, reports []fileReport) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(reports)
}

// writeTextReports prints one section per file. With showLogic the logic summaries of every
// question follow the findings.
func writeTextReports(w io.Writer, reports []fileReport, showLogic bool) {
	for _, r := range reports {
		switch {
		case r.Error != "":
			fmt.Fprintf(w, "%s: ERROR %s\n", r.Path, r.Error)
			continue
		case !r.HasErrors() && r.WarningCount() == 0:
			fmt.Fprintf(w, "%s: ok\n", r.Path)
		default:
			fmt.Fprintf(w, "%s:\n", r.Path)
			if r.CircularLogic.HasIssue {
				fmt.Fprintf(w, "  ERROR %s\n", r.CircularLogic.Details)
			}
			for _, c := range r.Cycles {
				fmt.Fprintf(w, "  ERROR logic cycle %s\n", c.String())
			}
			for _, id := range sortedKeys(r.Warnings) {
				for _, warning := range r.Warnings[id] {
					fmt.Fprintf(w, "  WARN  %s [%s] %s\n", id, strings.ToUpper(string(warning.Type)), warning.Message)
				}
			}
		}

		if !showLogic {
			continue
		}
		for _, id := range sortedKeys(r.Summaries) {
			summary := r.Summaries[id]
			if summary.DisplayLogic != "" {
				fmt.Fprintf(w, "  LOGIC %s display: %s\n", id, summary.DisplayLogic)
			}
			if summary.SkipLogic != "" {
				fmt.Fprintf(w, "  LOGIC %s skip: %s\n", id, summary.SkipLogic)
			}
		}
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
