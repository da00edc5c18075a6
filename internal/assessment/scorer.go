package assessment

// Scorer runs the full pipeline: parse, aggregate, classify, estimate and
// look up recommendations. It holds only read-only tables and is safe for
// concurrent use.
type Scorer struct {
	model   *ScoringModel
	content *ContentLibrary
}

// NewScorer creates a scorer over a validated model. A nil model or library
// selects the built-in one.
func NewScorer(model *ScoringModel, content *ContentLibrary) *Scorer {
	if model == nil {
		model = DefaultModel()
	}
	if content == nil {
		content = NewContentLibrary()
	}
	return &Scorer{model: model, content: content}
}

// NewScorerFromStore loads the named model from dataDir
func NewScorerFromStore(dataDir, modelName string) (*Scorer, error) {
	model, err := NewModelStore(dataDir).LoadModel(modelName)
	if err != nil {
		return nil, err
	}
	return NewScorer(model, NewContentLibrary()), nil
}

func (s *Scorer) Model() *ScoringModel { return s.model }

func (s *Scorer) Content() *ContentLibrary { return s.content }

// Score parses raw responses and scores them.
func (s *Scorer) Score(raw map[string]any, ctx Context) (Profile, error) {
	rv, err := ParseResponses(raw)
	if err != nil {
		return Profile{}, err
	}
	return s.ScoreVector(rv, ctx)
}

// ScoreVector scores an already parsed response vector.
func (s *Scorer) ScoreVector(rv ResponseVector, ctx Context) (Profile, error) {
	axes := AggregateAxes(rv, s.model.Partition)

	classification, err := Classify(axes, s.model)
	if err != nil {
		return Profile{}, err
	}

	estimate := EstimateCost(classification.Primary, ctx, s.model.Cost)

	p := Profile{
		ModelVersion:    s.model.Version,
		Axes:            axes.Rounded(),
		Classification:  classification,
		Mix:             ArchetypeMix(classification.Matches, classification.Primary),
		Tagline:         s.content.Tagline(classification.Primary),
		Estimate:        estimate,
		Recommendations: s.content.Recommend(classification.Primary, estimate.Context.Platform),
	}
	p.Summary = Summarize(p, s.content)

	return p, nil
}
