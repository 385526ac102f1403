package models

import "math"

// Concept is an overlap topic found by the model.
type Concept struct {
	Name              string   `json:"name"`
	Description       string   `json:"description"`
	SourcesFoundIn    []string `json:"sourcesFoundIn"`
	PriorityReasoning string   `json:"priorityReasoning"`
	Tips              string   `json:"tips"`
	OverlapIndex      float64  `json:"overlapIndex"`
}

// FocusScore is the overlap index, or an estimate from the number of sources
// when the model left it out.
func (c Concept) FocusScore() float64 {
	if c.OverlapIndex != 0 {
		return c.OverlapIndex
	}
	return float64(len(c.SourcesFoundIn)*3 + 4)
}

// Reference is an external reading suggestion.
type Reference struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Description string `json:"description"`
}

// StudyGuide is the synthesized overlap guide.
type StudyGuide struct {
	Title              string      `json:"guideTitle"`
	OracleMessage      string      `json:"oracleMessage"`
	Concepts           []Concept   `json:"highPriorityConcepts"`
	StudyPlan          []string    `json:"suggestedStudyPlan"`
	EstimatedStudyTime string      `json:"estimatedStudyTime"`
	References         []Reference `json:"externalReferences,omitempty"`

	completed map[string]bool
}

// ToggleConcept marks a concept as studied, or unmarks it. Unknown names are ignored.
func (g *StudyGuide) ToggleConcept(name string) bool {
	found := false
	for _, c := range g.Concepts {
		if c.Name == name {
			found = true
			break
		}
	}
	if !found {
		return false
	}
	if g.completed == nil {
		g.completed = make(map[string]bool)
	}
	if g.completed[name] {
		delete(g.completed, name)
	} else {
		g.completed[name] = true
	}
	return true
}

// IsCompleted reports whether the concept was marked as studied.
func (g *StudyGuide) IsCompleted(name string) bool {
	return g.completed[name]
}

// Progress is the rounded percentage of concepts marked as studied.
func (g *StudyGuide) Progress() int {
	if len(g.Concepts) == 0 {
		return 0
	}
	return int(math.Round(float64(len(g.completed)) * 100 / float64(len(g.Concepts))))
}

// SimplifiedExplanation restates a concept in plain language.
type SimplifiedExplanation struct {
	ConceptName      string `json:"conceptName"`
	SimpleDefinition string `json:"simpleDefinition"`
	Analogy          string `json:"analogy"`
	RealWorldExample string `json:"realWorldExample"`
}
