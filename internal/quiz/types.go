package quiz

// Question is the only shape ever exposed to a caller: text under 200
// characters containing a question mark, 4 options (3 plus a placeholder
// for relaxed certifications) of 4-150 characters each, correct in A-D.
type Question struct {
	Text        string   `json:"text"`
	Options     []string `json:"options"`
	Correct     string   `json:"correct"`
	Explanation string   `json:"explanation"`
}
