package testutil

// PromptAnswer is one scripted reply to a text prompt.
type PromptAnswer struct {
	Value string
	OK    bool // false simulates cancel
}

// ScriptedPrompter replays answers in order and records the prompts it saw.
// Once the script runs out every prompt is canceled.
type ScriptedPrompter struct {
	Answers  []PromptAnswer
	Confirms []bool

	Labels   []string
	Defaults []string
	Notices  []string
}

// RequestText replays the next answer.
func (p *ScriptedPrompter) RequestText(label, defaultValue string) (string, bool) {
	p.Labels = append(p.Labels, label)
	p.Defaults = append(p.Defaults, defaultValue)
	if len(p.Answers) == 0 {
		return "", false
	}
	a := p.Answers[0]
	p.Answers = p.Answers[1:]
	return a.Value, a.OK
}

// Confirm replays the next confirmation, or declines.
func (p *ScriptedPrompter) Confirm(label string) bool {
	p.Labels = append(p.Labels, label)
	if len(p.Confirms) == 0 {
		return false
	}
	c := p.Confirms[0]
	p.Confirms = p.Confirms[1:]
	return c
}

// Notify records a notice.
func (p *ScriptedPrompter) Notify(message string) {
	p.Notices = append(p.Notices, message)
}
