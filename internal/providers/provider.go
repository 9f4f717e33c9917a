package providers

import "context"

// GenParams are the generation knobs forwarded to the external model.
type GenParams struct {
	MaxOutputTokens int
	Temperature     float64
	TopP            float64
}

type SourceName string

const (
	SourceGemini SourceName = "GEMINI"
	SourceOpenAI SourceName = "OPENAI"
	SourceClaude SourceName = "CLAUDE"
)

// Client is an opaque text-generation capability. Implementations are
// treated as unreliable: empty text, truncated JSON and extra prose are
// all expected outcomes the caller has to cope with.
type Client interface {
	Name() SourceName
	Generate(ctx context.Context, prompt string, p GenParams) (string, error)
}

// simulatedQuiz is the canned output used by every client's dry-run mode,
// so the whole pipeline can run locally without API keys.
const simulatedQuiz = `{"questions":[` +
	`{"text":"Which service provides simulated object storage?","options":["Simulated Storage Service","Simulated Compute Service","Simulated Queue Service","Simulated Database Service"],"correct":"A","explanation":"Dry-run fixture answer one."},` +
	`{"text":"Which option enables simulated encryption at rest?","options":["Plain mode","Cipher mode","Token mode","Clear mode"],"correct":"B","explanation":"Dry-run fixture answer two."},` +
	`{"text":"What is the simulated default retention period?","options":["One day","One week","One month","One year"],"correct":"C","explanation":"Dry-run fixture answer three."},` +
	`{"text":"Which tier offers the lowest simulated latency?","options":["Cold tier","Warm tier","Archive tier","Premium tier"],"correct":"D","explanation":"Dry-run fixture answer four."},` +
	`{"text":"Which command lists simulated resources?","options":["list-all","show-all","get-all","dump-all"],"correct":"A","explanation":"Dry-run fixture answer five."}` +
	`]}`
