package scoring

// Schema is the question-set document stored per category version. It is
// authored once (admin/seed) and read by the scoring engine and the quiz UI.
type Schema struct {
	Title      string      `json:"title"`
	Questions  []Question  `json:"questions"`
	Archetypes []Archetype `json:"archetypes"`
	Scoring    Rules       `json:"scoring"`
}

type Question struct {
	ID      string   `json:"id"`
	Text    string   `json:"text"`
	Options []string `json:"options"`
}

// Archetype declaration order matters: ties and the no-answer fallback both
// resolve to the first-listed archetype.
type Archetype struct {
	Key  string `json:"key"`
	Name string `json:"name"`
}

// Rules maps question id -> choice key -> archetype key.
type Rules struct {
	Map    map[string]map[string]string `json:"map"`
	Method string                       `json:"method"`
}

// Answer is one (question, choice) pair as submitted by the visitor.
type Answer struct {
	ID     string `json:"id"`
	Choice string `json:"choice"`
}
