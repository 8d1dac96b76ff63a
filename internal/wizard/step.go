package wizard

// Step is one state of the four-step wizard. Transitions are linear:
// forward, back, or a full reset to the settings step.
type Step int

const (
	StepSettings Step = iota
	StepUpload
	StepReview
	StepGenerate
)

var stepTitles = [...]string{"Settings", "Upload", "Review", "Generate"}

func (s Step) Title() string {
	if s < StepSettings || s > StepGenerate {
		return "?"
	}
	return stepTitles[s]
}

// Next returns the following step, saturating at Generate.
func (s Step) Next() Step {
	if s >= StepGenerate {
		return StepGenerate
	}
	return s + 1
}

// Back returns the previous step, saturating at Settings.
func (s Step) Back() Step {
	if s <= StepSettings {
		return StepSettings
	}
	return s - 1
}
