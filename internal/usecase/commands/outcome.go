package commands

// StepOutcome records how a non-fatal saga step ended
type StepOutcome int

const (
	StepSkipped StepOutcome = iota
	StepSuccess
	StepFailedNonFatal
)

func (o StepOutcome) String() string {
	switch o {
	case StepSuccess:
		return "success"
	case StepFailedNonFatal:
		return "failed_non_fatal"
	default:
		return "skipped"
	}
}

func (o StepOutcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

func (o *StepOutcome) UnmarshalText(b []byte) error {
	switch string(b) {
	case "success":
		*o = StepSuccess
	case "failed_non_fatal":
		*o = StepFailedNonFatal
	default:
		*o = StepSkipped
	}
	return nil
}
