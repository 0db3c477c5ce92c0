package extract

// State is a step of an extraction run.
type State int

const (
	Idle State = iota
	Validating
	Cleaning
	Analyzing
	Closuring
	Expanding
	Syncing
	Reporting
	Done
	Failed
)

var stateNames = [...]string{
	Idle:       "idle",
	Validating: "validating",
	Cleaning:   "cleaning",
	Analyzing:  "analyzing",
	Closuring:  "closuring",
	Expanding:  "expanding",
	Syncing:    "syncing",
	Reporting:  "reporting",
	Done:       "done",
	Failed:     "failed",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}
