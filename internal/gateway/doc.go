// Package gateway talks to the hosted generative model through the Gemini
// SDK (google.golang.org/genai). It turns study sources and a task
// instruction into a multi-part request and decodes the model's JSON
// answer into study guides, quizzes, simplified explanations or chat
// replies.
//
// Every failure wraps ErrGateway; callers distinguish transport trouble
// (ErrUnavailable) from a silent model (ErrEmptyResponse) and from an
// answer of the wrong shape (ErrMalformedResponse). Nothing is retried.
package gateway
