package gateway

import "google.golang.org/genai"

func str(desc string) *genai.Schema {
	return &genai.Schema{Type: genai.TypeString, Description: desc}
}

func num(desc string) *genai.Schema {
	return &genai.Schema{Type: genai.TypeNumber, Description: desc}
}

func integer(desc string) *genai.Schema {
	return &genai.Schema{Type: genai.TypeInteger, Description: desc}
}

func arrayOf(items *genai.Schema, desc string) *genai.Schema {
	return &genai.Schema{Type: genai.TypeArray, Items: items, Description: desc}
}

func object(props map[string]*genai.Schema, required ...string) *genai.Schema {
	return &genai.Schema{Type: genai.TypeObject, Properties: props, Required: required}
}

var studyGuideSchema = object(map[string]*genai.Schema{
	"guideTitle":    str(""),
	"oracleMessage": str("A supportive message to reduce anxiety"),
	"highPriorityConcepts": arrayOf(object(map[string]*genai.Schema{
		"name":              str(""),
		"description":       str(""),
		"sourcesFoundIn":    arrayOf(str(""), "Categories where this concept was found (e.g. Syllabus, Lecture Notes)"),
		"priorityReasoning": str("Why this is high priority based on overlaps"),
		"tips":              str("Short mnemonic or study tip"),
		"overlapIndex":      num("Importance score 1-10"),
	}, "name", "description", "sourcesFoundIn", "priorityReasoning"), ""),
	"suggestedStudyPlan": arrayOf(str(""), "Step-by-step study sequence"),
	"estimatedStudyTime": str(""),
	"externalReferences": arrayOf(object(map[string]*genai.Schema{
		"title":       str(""),
		"url":         str(""),
		"description": str(""),
	}, "title", "url"), "Optional further reading"),
}, "guideTitle", "oracleMessage", "highPriorityConcepts", "suggestedStudyPlan", "estimatedStudyTime")

var quizSchema = object(map[string]*genai.Schema{
	"title": str(""),
	"questions": arrayOf(object(map[string]*genai.Schema{
		"question":           str(""),
		"options":            arrayOf(str(""), "Exactly four answer options"),
		"correctOptionIndex": integer("Zero-based index of the correct option"),
		"explanation":        str("Why the correct option is right"),
		"difficulty":         {Type: genai.TypeString, Enum: []string{"easy", "moderate", "difficult"}},
	}, "question", "options", "correctOptionIndex", "explanation", "difficulty"), ""),
}, "title", "questions")

var explanationsSchema = arrayOf(object(map[string]*genai.Schema{
	"conceptName":      str(""),
	"simpleDefinition": str("One or two plain sentences"),
	"analogy":          str("An everyday analogy"),
	"realWorldExample": str(""),
}, "conceptName", "simpleDefinition", "analogy", "realWorldExample"), "")
