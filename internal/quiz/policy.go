package quiz

import "strings"

// Policy captures the per-certification validation rules. Certifications
// with rules that deviate from the default get an entry in the table below
// instead of branching inside the validator.
type Policy struct {
	// MinOptions is the smallest accepted option count after sanitization.
	MinOptions int
	// Placeholder, when non-empty, is appended as a final option to any
	// question that survives with exactly MinOptions options.
	Placeholder string
}

var defaultPolicy = Policy{MinOptions: 4}

var policies = map[string]Policy{
	// CFP questions commonly come in 3-option form, so 3 are accepted and
	// padded with a fixed placeholder to keep the output shape uniform.
	"CFP": {MinOptions: 3, Placeholder: "None of the above"},
}

func PolicyFor(certification string) Policy {
	if p, ok := policies[strings.TrimSpace(certification)]; ok {
		return p
	}
	return defaultPolicy
}
