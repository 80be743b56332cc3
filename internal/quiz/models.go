package quiz

type TestAnswerOption struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	IsCorrect bool   `json:"isCorrect"`
}

// TestQuestion is multi-select: zero, one or several options may be
// marked correct.
type TestQuestion struct {
	ID      string             `json:"id"`
	Text    string             `json:"text"`
	Options []TestAnswerOption `json:"options"`
}

type Test struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	ArticleIDs  []string       `json:"articleIds"`
	Questions   []TestQuestion `json:"questions"`
}

func (t *Test) Key() string      { return t.ID }
func (t *Test) SetKey(id string) { t.ID = id }
