package assessment

// QuestionCount is the fixed length of a questionnaire response.
const QuestionCount = 20

type Axis string

const (
	AxisStructure     Axis = "structure"
	AxisCollaboration Axis = "collaboration"
	AxisScope         Axis = "scope"
	AxisTempo         Axis = "tempo"
)

// Axes lists the axes in their canonical order.
var Axes = []Axis{AxisStructure, AxisCollaboration, AxisScope, AxisTempo}

type Archetype string

const (
	Architect    Archetype = "architect"
	Conductor    Archetype = "conductor"
	Curator      Archetype = "curator"
	Craftsperson Archetype = "craftsperson"
)

// Archetypes lists the archetypes in declared order. Ranking ties resolve to
// the earlier entry.
var Archetypes = []Archetype{Architect, Conductor, Curator, Craftsperson}

type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// ResponseVector holds one binary answer per question (1 = A, 0 = B).
type ResponseVector [QuestionCount]int

// AxisScores maps each axis to a score in [0,100].
type AxisScores map[Axis]float64

// Match is the closeness of the axis scores to one archetype centroid.
type Match struct {
	Archetype Archetype `json:"archetype"`
	Score     float64   `json:"score"`    // closeness, 0-100
	Distance  float64   `json:"distance"` // raw distance under the model metric
}

type Classification struct {
	Primary    Archetype  `json:"primary"`
	Secondary  Archetype  `json:"secondary"`
	Margin     float64    `json:"margin"`
	Confidence Confidence `json:"confidence"`
	Hybrid     string     `json:"hybrid,omitempty"`
	Matches    []Match    `json:"matches"`
}

// Mix is an archetype percentage split summing to exactly 100.
type Mix map[Archetype]int

type Recommendations struct {
	Strengths []string `json:"strengths"`
	QuickWins []string `json:"quick_wins"`
	ToolStack []string `json:"tool_stack"`
}

// Context carries the optional inputs of the cost estimate.
type Context struct {
	TeamSize    string   `json:"teamSize,omitempty"`
	MeetingLoad string   `json:"meetingLoad,omitempty"`
	HourlyRate  *float64 `json:"hourlyRate,omitempty"` // nil takes the model default
	Platform    string   `json:"platform,omitempty"`
}

// Rate returns a pointer for Context.HourlyRate.
func Rate(v float64) *float64 {
	return &v
}

// ResolvedContext is the context after defaults and band matching.
type ResolvedContext struct {
	TeamSize    TeamSize    `json:"team_size"`
	MeetingLoad MeetingLoad `json:"meeting_load"`
	HourlyRate  float64     `json:"hourly_rate"`
	Platform    string      `json:"platform"`
}

type Estimate struct {
	OverheadBase   float64         `json:"overhead_base"`
	OverheadIndex  float64         `json:"overhead_index"`
	HoursLostPPW   float64         `json:"hours_lost_ppw"`
	TeamMultiplier float64         `json:"team_multiplier"`
	HoursTeam      float64         `json:"hours_team"`
	AnnualCost     float64         `json:"annual_cost"`
	Context        ResolvedContext `json:"context"`
	Degraded       []string        `json:"degraded,omitempty"`
}

// Profile is the assembled, immutable result of one assessment.
type Profile struct {
	ModelVersion    string          `json:"model_version"`
	Axes            AxisScores      `json:"axes"`
	Classification  Classification  `json:"classification"`
	Mix             Mix             `json:"mix"`
	Tagline         string          `json:"tagline"`
	Estimate        Estimate        `json:"estimate"`
	Recommendations Recommendations `json:"recommendations"`
	Summary         string          `json:"summary"`
}
