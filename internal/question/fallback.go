package question

var fallbackQuestions = []Question{
	{
		Prompt: "What is a defining trait of an agentic AI?",
		Options: []string{
			"It responds only to direct prompts",
			"It follows pre-written scripts",
			"It autonomously sets and pursues goals",
			"It only processes data in real-time",
		},
		Answer: "It autonomously sets and pursues goals",
	},
	{
		Prompt: "Which ability is MOST aligned with agentic behavior?",
		Options: []string{
			"Predict next word",
			"Store user preferences",
			"Create and follow multi-step plans",
			"Display search results",
		},
		Answer: "Create and follow multi-step plans",
	},
	{
		Prompt:  "True or False: Agentic AI can adapt its actions based on environmental feedback.",
		Options: []string{"True", "False"},
		Answer:  "True",
	},
}

// Fallback returns a fresh copy of the built-in question set.
func Fallback() []Question {
	out := make([]Question, len(fallbackQuestions))
	for i, q := range fallbackQuestions {
		out[i] = q.Clone()
	}
	return out
}
