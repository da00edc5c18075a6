package assessment

// Question is one binary item of the questionnaire.
type Question struct {
	Index   int    `json:"index" yaml:"index"`
	Axis    Axis   `json:"axis" yaml:"axis"`
	Prompt  string `json:"prompt" yaml:"prompt"`
	OptionA string `json:"option_a" yaml:"option_a"`
	OptionB string `json:"option_b" yaml:"option_b"`
}

func defaultQuestions() []Question {
	items := [QuestionCount][3]string{
		{"when starting a new project, you prefer to", "map out the entire system first", "jump in and figure it out as you go"},
		{"your ideal workspace is", "organized with clear zones for everything", "flexible and changes based on the task"},
		{"when solving problems, you tend to", "follow a proven methodology", "improvise based on intuition"},
		{"documentation should be", "comprehensive and detailed upfront", "minimal and evolve as needed"},
		{"you prefer tools that are", "robust with defined workflows", "simple and adaptable"},
		{"your best work happens when you", "collaborate closely with others", "have uninterrupted solo time"},
		{"feedback is most valuable when it's", "frequent and conversational", "consolidated and written"},
		{"ideal meeting frequency is", "daily standups and regular syncs", "only when absolutely necessary"},
		{"decisions are best made", "through group consensus", "by designated individuals"},
		{"knowledge sharing should happen", "continuously through the day", "in structured documentation"},
		{"you're energized by", "seeing the big picture strategy", "perfecting specific details"},
		{"when delegating, you prefer to", "give context and let them figure it out", "provide exact specifications"},
		{"project success means", "achieving the strategic vision", "flawless execution of details"},
		{"you'd rather own", "the entire product roadmap", "a specific feature done perfectly"},
		{"complexity should be handled by", "abstracting to simpler patterns", "addressing each case specifically"},
		{"deadlines should be", "aggressive to maintain momentum", "realistic to ensure quality"},
		{"you prefer to ship", "something good today", "something great next week"},
		{"iteration cycles should be", "rapid with constant adjustments", "thoughtful with deeper changes"},
		{"context switching between tasks", "keeps you energized", "disrupts your flow"},
		{"planning horizons should extend", "a few weeks out maximum", "quarters or years ahead"},
	}

	partition := DefaultPartition()
	questions := make([]Question, 0, QuestionCount)
	for i, item := range items {
		axis, _ := partition.AxisOf(i)
		questions = append(questions, Question{
			Index:   i,
			Axis:    axis,
			Prompt:  item[0],
			OptionA: item[1],
			OptionB: item[2],
		})
	}
	return questions
}
