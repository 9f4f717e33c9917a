package quiz

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

const questionCount = 5

// instruction to make the model reply in strict JSON, no code fence.
const jsonInstruction = `Return ONLY a JSON object with the key "questions": an array of question objects.
Each question object has exactly these keys:
"text": string (the question, must end with a question mark, at most 200 characters),
"options": array of exactly 4 answer strings (each 4-150 characters),
"correct": one of "A","B","C","D",
"explanation": string (at most 200 characters, may be empty).
No Markdown, no code fences, no text outside the JSON object.`

// BuildPrompt asks for a fresh batch of multiple-choice questions for the
// certification. The nonce makes every prompt unique so the model is less
// likely to repeat an earlier batch.
func BuildPrompt(certification, nonce string) string {
	var b strings.Builder
	b.WriteString(jsonInstruction)
	b.WriteString("\n\nGenerate exactly ")
	b.WriteString(strconv.Itoa(questionCount))
	b.WriteString(" NEW multiple-choice exam questions for the \"")
	b.WriteString(certification)
	b.WriteString("\" certification.\n")
	b.WriteString("Questions must be realistic, distinct from each other and not repeat earlier batches.\n")
	b.WriteString("Generation id: ")
	b.WriteString(nonce)
	b.WriteString("\n")
	return b.String()
}

// newNonce builds a per-attempt token: timestamp plus a random suffix.
func newNonce() string {
	return time.Now().UTC().Format("20060102T150405.000Z") + "-" + uuid.NewString()[:8]
}
