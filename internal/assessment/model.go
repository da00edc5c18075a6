package assessment

import (
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidModel reports a scoring model that fails validation.
var ErrInvalidModel = errors.New("invalid scoring model")

type Metric string

const (
	MetricEuclidean Metric = "euclidean"
	MetricWeighted  Metric = "weighted"
)

// DefaultModelVersion identifies the built-in model.
const DefaultModelVersion = "2024.1"

// DefaultMaxDistance normalizes euclidean distances into similarities.
// Distances beyond it clamp to a similarity of 0.
const DefaultMaxDistance = 173.2

// Thresholds are the margin cut-offs for the confidence tiers.
type Thresholds struct {
	High   float64 `json:"high" yaml:"high" validate:"gt=0,lte=1"`
	Medium float64 `json:"medium" yaml:"medium" validate:"gt=0,ltfield=High"`
}

// CostModel holds the tables of the productivity-cost estimate.
type CostModel struct {
	MeetingMultipliers   map[MeetingLoad]float64 `json:"meeting_multipliers" yaml:"meeting_multipliers" validate:"required,len=3,dive,gt=0"`
	ArchetypeAdjustments map[Archetype]float64   `json:"archetype_adjustments" yaml:"archetype_adjustments" validate:"required,len=4,dive,gt=0"`
	TeamMultipliers      map[TeamSize]float64    `json:"team_multipliers" yaml:"team_multipliers" validate:"required,len=5,dive,gt=0"`
	HoursPerWeekFactor   float64                 `json:"hours_per_week_factor" yaml:"hours_per_week_factor" validate:"gt=0"`
	WeeksPerYear         float64                 `json:"weeks_per_year" yaml:"weeks_per_year" validate:"gt=0"`
	DefaultHourlyRate    float64                 `json:"default_hourly_rate" yaml:"default_hourly_rate" validate:"gt=0"`
}

// ScoringModel is the versioned configuration of the engine. It is treated as
// read-only once loaded.
type ScoringModel struct {
	Version    string                   `json:"version" yaml:"version" validate:"required"`
	Metric     Metric                   `json:"metric" yaml:"metric" validate:"required,oneof=euclidean weighted"`
	Partition  Partition                `json:"partition" yaml:"partition" validate:"required,len=4,dive,min=1,dive,min=0,max=19"`
	Centroids  map[Archetype]AxisScores `json:"centroids" yaml:"centroids" validate:"required,len=4,dive,len=4,dive,min=0,max=100"`
	Weights    map[Axis]float64         `json:"weights,omitempty" yaml:"weights,omitempty" validate:"omitempty,dive,gte=0,lte=1"`
	Thresholds Thresholds               `json:"thresholds" yaml:"thresholds"`
	Cost       CostModel                `json:"cost" yaml:"cost"`

	// MaxDistance is the euclidean normalization constant. Zero means DefaultMaxDistance.
	MaxDistance float64 `json:"max_distance,omitempty" yaml:"max_distance,omitempty" validate:"gte=0"`
}

// EuclideanScale returns the distance that maps to a similarity of 0.
func (m *ScoringModel) EuclideanScale() float64 {
	if m.MaxDistance > 0 {
		return m.MaxDistance
	}
	return DefaultMaxDistance
}

// DefaultModel returns a fresh copy of the built-in model.
func DefaultModel() *ScoringModel {
	return &ScoringModel{
		Version:   DefaultModelVersion,
		Metric:    MetricEuclidean,
		Partition: DefaultPartition(),
		Centroids: map[Archetype]AxisScores{
			Architect:    {AxisStructure: 85, AxisCollaboration: 35, AxisScope: 70, AxisTempo: 40},
			Conductor:    {AxisStructure: 70, AxisCollaboration: 85, AxisScope: 75, AxisTempo: 60},
			Curator:      {AxisStructure: 40, AxisCollaboration: 75, AxisScope: 30, AxisTempo: 45},
			Craftsperson: {AxisStructure: 80, AxisCollaboration: 30, AxisScope: 80, AxisTempo: 40},
		},
		Weights: map[Axis]float64{
			AxisStructure:     0.45,
			AxisCollaboration: 0.35,
			AxisScope:         0.10,
			AxisTempo:         0.10,
		},
		Thresholds:  Thresholds{High: 0.15, Medium: 0.07},
		MaxDistance: DefaultMaxDistance,
		Cost: CostModel{
			MeetingMultipliers: map[MeetingLoad]float64{
				MeetingLight:    0.6,
				MeetingModerate: 0.8,
				MeetingHeavy:    1.0,
			},
			ArchetypeAdjustments: map[Archetype]float64{
				Architect:    0.9,
				Conductor:    0.85,
				Curator:      1.1,
				Craftsperson: 1.2,
			},
			TeamMultipliers: map[TeamSize]float64{
				TeamSolo:   1,
				TeamSmall:  4,
				TeamMedium: 10,
				TeamLarge:  25,
				TeamXLarge: 55,
			},
			HoursPerWeekFactor: 5.0,
			WeeksPerYear:       52,
			DefaultHourlyRate:  85,
		},
	}
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func modelValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
	})
	return validate
}

// Validate checks field constraints and the structural rules that tags cannot
// express: known keys, a partition covering each question exactly once, and
// weights summing to 1 for the weighted metric.
func (m *ScoringModel) Validate() error {
	if m == nil {
		return fmt.Errorf("%w: model is nil", ErrInvalidModel)
	}
	if err := modelValidator().Struct(m); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidModel, err)
	}

	seen := make(map[int]Axis, QuestionCount)
	for _, axis := range Axes {
		group, ok := m.Partition[axis]
		if !ok {
			return fmt.Errorf("%w: partition is missing axis %q", ErrInvalidModel, axis)
		}
		for _, idx := range group {
			if prev, dup := seen[idx]; dup {
				return fmt.Errorf("%w: question %d assigned to both %q and %q", ErrInvalidModel, idx, prev, axis)
			}
			seen[idx] = axis
		}
	}
	if len(seen) != QuestionCount {
		return fmt.Errorf("%w: partition covers %d of %d questions", ErrInvalidModel, len(seen), QuestionCount)
	}

	for _, a := range Archetypes {
		centroid, ok := m.Centroids[a]
		if !ok {
			return fmt.Errorf("%w: missing centroid for %q", ErrInvalidModel, a)
		}
		for _, axis := range Axes {
			if _, ok := centroid[axis]; !ok {
				return fmt.Errorf("%w: centroid %q is missing axis %q", ErrInvalidModel, a, axis)
			}
		}
		if _, ok := m.Cost.ArchetypeAdjustments[a]; !ok {
			return fmt.Errorf("%w: missing cost adjustment for %q", ErrInvalidModel, a)
		}
	}
	for _, ml := range MeetingLoads {
		if _, ok := m.Cost.MeetingMultipliers[ml]; !ok {
			return fmt.Errorf("%w: missing meeting multiplier for %q", ErrInvalidModel, ml)
		}
	}
	for _, ts := range TeamSizes {
		if _, ok := m.Cost.TeamMultipliers[ts]; !ok {
			return fmt.Errorf("%w: missing team multiplier for %q", ErrInvalidModel, ts)
		}
	}

	if m.Metric == MetricWeighted {
		sum := 0.0
		for _, axis := range Axes {
			w, ok := m.Weights[axis]
			if !ok {
				return fmt.Errorf("%w: missing weight for %q", ErrInvalidModel, axis)
			}
			sum += w
		}
		if math.Abs(sum-1) > 1e-6 {
			return fmt.Errorf("%w: weights sum to %.4f, want 1", ErrInvalidModel, sum)
		}
	}

	return nil
}
