package assessment

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultModelIsValid(t *testing.T) {
	m := DefaultModel()
	require.NoError(t, m.Validate())
	assert.Equal(t, DefaultModelVersion, m.Version)
	assert.Equal(t, MetricEuclidean, m.Metric)
	assert.Equal(t, 173.2, m.MaxDistance)

	w := weightedModel()
	require.NoError(t, w.Validate())
}

func TestDefaultModelReturnsCopies(t *testing.T) {
	a := DefaultModel()
	a.Centroids[Architect][AxisStructure] = 0
	a.Partition[AxisTempo][0] = 3

	b := DefaultModel()
	assert.Equal(t, 85.0, b.Centroids[Architect][AxisStructure])
	assert.Equal(t, 15, b.Partition[AxisTempo][0])
}

func TestScoringModelValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(m *ScoringModel)
		errMsg string
	}{
		{
			name:   "missing version",
			mutate: func(m *ScoringModel) { m.Version = "" },
			errMsg: "Version",
		},
		{
			name:   "unknown metric",
			mutate: func(m *ScoringModel) { m.Metric = "manhattan" },
			errMsg: "Metric",
		},
		{
			name:   "question out of range",
			mutate: func(m *ScoringModel) { m.Partition[AxisTempo] = []int{15, 16, 17, 18, 20} },
			errMsg: "Partition",
		},
		{
			name: "question assigned twice",
			mutate: func(m *ScoringModel) {
				m.Partition[AxisTempo] = []int{15, 16, 17, 18, 0}
			},
			errMsg: "question 0 assigned",
		},
		{
			name:   "centroid out of range",
			mutate: func(m *ScoringModel) { m.Centroids[Curator][AxisScope] = 120 },
			errMsg: "Centroids",
		},
		{
			name: "centroid missing axis",
			mutate: func(m *ScoringModel) {
				m.Centroids[Curator] = AxisScores{AxisStructure: 1, AxisCollaboration: 2, AxisScope: 3, "pace": 4}
			},
			errMsg: `centroid "curator" is missing axis "tempo"`,
		},
		{
			name:   "medium threshold above high",
			mutate: func(m *ScoringModel) { m.Thresholds.Medium = 0.2 },
			errMsg: "Medium",
		},
		{
			name: "weights do not sum to one",
			mutate: func(m *ScoringModel) {
				m.Metric = MetricWeighted
				m.Weights[AxisTempo] = 0.5
			},
			errMsg: "weights sum",
		},
		{
			name:   "negative max distance",
			mutate: func(m *ScoringModel) { m.MaxDistance = -1 },
			errMsg: "MaxDistance",
		},
		{
			name:   "non positive weeks per year",
			mutate: func(m *ScoringModel) { m.Cost.WeeksPerYear = 0 },
			errMsg: "WeeksPerYear",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := DefaultModel()
			tt.mutate(m)
			err := m.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidModel)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestModelStore(t *testing.T) {
	t.Run("falls back to default when no file exists", func(t *testing.T) {
		store := NewModelStore(t.TempDir())
		m, err := store.LoadModel("missing")
		require.NoError(t, err)
		assert.Equal(t, DefaultModelVersion, m.Version)
	})

	t.Run("empty name selects default", func(t *testing.T) {
		m, err := NewModelStore(t.TempDir()).LoadModel("")
		require.NoError(t, err)
		assert.Equal(t, DefaultModel(), m)
	})

	t.Run("round trips yaml", func(t *testing.T) {
		dir := t.TempDir()
		store := NewModelStore(dir)

		m := weightedModel()
		m.Version = "2025.2"
		require.NoError(t, store.SaveModel("calibrated", m))
		assert.FileExists(t, filepath.Join(dir, "calibrated.yaml"))

		loaded, err := store.LoadModel("calibrated")
		require.NoError(t, err)
		assert.Equal(t, m, loaded)
	})

	t.Run("loads json", func(t *testing.T) {
		dir := t.TempDir()
		m := DefaultModel()
		m.Version = "json-1"
		data, err := json.Marshal(m)
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(filepath.Join(dir, "alt.json"), data, 0644))

		loaded, err := NewModelStore(dir).LoadModel("alt")
		require.NoError(t, err)
		assert.Equal(t, "json-1", loaded.Version)
		assert.Equal(t, m.Centroids, loaded.Centroids)
	})

	t.Run("rejects invalid file", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.yml"), []byte("version: x\nmetric: cosine\n"), 0644))

		_, err := NewModelStore(dir).LoadModel("bad")
		assert.ErrorIs(t, err, ErrInvalidModel)
	})

	t.Run("rejects malformed yaml", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.yaml"), []byte("version: [unclosed"), 0644))

		_, err := NewModelStore(dir).LoadModel("broken")
		assert.ErrorIs(t, err, ErrInvalidModel)
	})

	t.Run("save refuses invalid model", func(t *testing.T) {
		m := DefaultModel()
		m.Metric = ""
		assert.ErrorIs(t, NewModelStore(t.TempDir()).SaveModel("x", m), ErrInvalidModel)
	})
}
