package orchestrator

// StepOutcome is the result of one pipeline step for one spot (§4.5/§7).
type StepOutcome struct {
	Layer   string
	Updated bool
	Error   string
}

// SpotOutcome collects every step outcome for one spot's refresh.
type SpotOutcome struct {
	SpotID string
	Steps  []StepOutcome
	Error  string // set when the spot itself could not be refreshed (e.g. unknown spot_id)
}

func (o *SpotOutcome) record(layer string, updated bool, err error) {
	step := StepOutcome{Layer: layer, Updated: updated}
	if err != nil {
		step.Error = err.Error()
	}
	o.Steps = append(o.Steps, step)
}
