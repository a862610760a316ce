package models

import "strconv"

// QuestionLevel is the difficulty/intimacy tier of a generated question, always in [1, 4].
type QuestionLevel int

// Question levels, from simple fact-checking up to philosophical or emotional questions.
const (
	LevelEasy     QuestionLevel = 1
	LevelNormal   QuestionLevel = 2
	LevelDeep     QuestionLevel = 3
	LevelIntimate QuestionLevel = 4
)

// LevelFromInt clamps a model-provided level into range.
// Out-of-range values fall back to LevelNormal; construction never fails.
func LevelFromInt(v int) QuestionLevel {
	if v < int(LevelEasy) || v > int(LevelIntimate) {
		return LevelNormal
	}

	return QuestionLevel(v)
}

// LevelFromString parses a level from model output. Unparseable input falls
// back to LevelEasy, out-of-range values to LevelNormal.
func LevelFromString(s string) QuestionLevel {
	v, err := strconv.Atoi(s)
	if err != nil {
		return LevelEasy
	}

	return LevelFromInt(v)
}

// Int returns the level as a plain int for callers that serialize it.
func (l QuestionLevel) Int() int {
	return int(l)
}
