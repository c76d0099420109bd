package microlog

// Level is a severity rank: higher is more severe. The gaps of 10 leave room
// for intermediate ranks, so any integer is a usable Level; names exist only
// for the defined constants (see LevelName).
type Level int

const (
	NOTSET   Level = 0
	DEBUG    Level = 10
	INFO     Level = 20
	WARNING  Level = 30
	ERROR    Level = 40
	CRITICAL Level = 50
)

// levels is the fixed ascending rank table. Filtering compares raw ranks;
// this table only names them.
var levels = []struct {
	value Level
	name  string
}{
	{NOTSET, "NOTSET"},
	{DEBUG, "DEBUG"},
	{INFO, "INFO"},
	{WARNING, "WARNING"},
	{ERROR, "ERROR"},
	{CRITICAL, "CRITICAL"},
}

// LevelName converts a numeric level to the most appropriate name: an exact
// match returns that rank's name, anything else the name of the greatest
// defined rank below it. Values below NOTSET clamp to NOTSET's name.
// Total and pure; display only, never used for filtering.
func LevelName(value Level) string {
	for i, l := range levels {
		if value == l.value {
			return l.name
		}
		if value < l.value {
			if i == 0 {
				return levels[0].name
			}
			return levels[i-1].name
		}
	}
	return levels[len(levels)-1].name
}

func (l Level) String() string { return LevelName(l) }
