package face

import "fmt"

// Level is the ladder rung that produced a face set.
type Level int

const (
	LevelFailed Level = iota
	LevelDirect
	LevelProjected
	LevelRepaired
	LevelTriangulated
)

var levelNames = [...]string{
	LevelFailed:       "failed",
	LevelDirect:       "direct",
	LevelProjected:    "projected",
	LevelRepaired:     "repaired",
	LevelTriangulated: "triangulated",
}

func (l Level) String() string {
	if l < 0 || int(l) >= len(levelNames) {
		return fmt.Sprintf("level(%d)", int(l))
	}
	return levelNames[l]
}
