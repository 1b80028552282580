package model

import (
	"encoding/json"
	"fmt"
	"os"

	"rank-predictor/internal/features"
)

// Predictor is the narrow capability the pipeline needs from a trained
// classifier: a numeric feature vector in, a rank index out.
type Predictor interface {
	Predict(vector []float64) (int, error)
}

// Artifact is the on-disk JSON form of a trained decision tree, exported
// from the training environment. Nodes are stored flat; children always
// have a higher index than their parent, so a walk terminates.
type Artifact struct {
	Kind     string   `json:"kind"`
	Features []string `json:"features"`
	Nodes    []Node   `json:"nodes"`
}

// Node is one split or leaf. Leaves have Left == -1; for them only Class
// is meaningful. Splits compare vector[Feature] <= Threshold.
type Node struct {
	Feature   int     `json:"feature"`
	Threshold float64 `json:"threshold"`
	Left      int     `json:"left"`
	Right     int     `json:"right"`
	Class     int     `json:"class"`
}

// Tree is a loaded, validated classifier artifact. It is read-only after
// Load and safe to share across concurrent Predict calls.
type Tree struct {
	features []string
	nodes    []Node
}

// Load reads and validates an artifact file.
func Load(path string) (*Tree, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading model artifact: %w", err)
	}

	var artifact Artifact
	if err := json.Unmarshal(data, &artifact); err != nil {
		return nil, fmt.Errorf("parsing model artifact: %w", err)
	}

	return New(artifact)
}

// New validates an artifact and wraps it as a Tree.
func New(artifact Artifact) (*Tree, error) {
	if len(artifact.Features) == 0 {
		return nil, fmt.Errorf("model artifact declares no features")
	}
	if len(artifact.Nodes) == 0 {
		return nil, fmt.Errorf("model artifact has no nodes")
	}

	for i, n := range artifact.Nodes {
		if n.Left == -1 {
			continue // leaf
		}
		if n.Feature < 0 || n.Feature >= len(artifact.Features) {
			return nil, fmt.Errorf("node %d: feature index %d out of range", i, n.Feature)
		}
		// Children must come later in the array or the walk could loop
		if n.Left <= i || n.Left >= len(artifact.Nodes) {
			return nil, fmt.Errorf("node %d: bad left child %d", i, n.Left)
		}
		if n.Right <= i || n.Right >= len(artifact.Nodes) {
			return nil, fmt.Errorf("node %d: bad right child %d", i, n.Right)
		}
	}

	return &Tree{
		features: artifact.Features,
		nodes:    artifact.Nodes,
	}, nil
}

// Features returns the column names the artifact was trained on.
func (t *Tree) Features() []string {
	return t.features
}

// CheckSchema asserts, name by name, that the extractor's column set is
// exactly what the artifact was trained on. Call this once at startup;
// a mismatch here is a usage error, not a recoverable condition.
func (t *Tree) CheckSchema(columns []string) error {
	if len(columns) != len(t.features) {
		return &SchemaError{
			Detail: "column count differs from trained schema",
			Want:   len(t.features),
			Got:    len(columns),
		}
	}
	for i, name := range t.features {
		if columns[i] != name {
			return &SchemaError{
				Detail: fmt.Sprintf("column %d is %q, trained schema has %q", i, columns[i], name),
			}
		}
	}
	return nil
}

// Predict walks the tree and returns the predicted rank index.
func (t *Tree) Predict(vector []float64) (int, error) {
	if len(vector) != len(t.features) {
		return 0, &SchemaError{
			Detail: "feature vector width differs from trained schema",
			Want:   len(t.features),
			Got:    len(vector),
		}
	}

	i := 0
	for t.nodes[i].Left != -1 {
		if vector[t.nodes[i].Feature] <= t.nodes[i].Threshold {
			i = t.nodes[i].Left
		} else {
			i = t.nodes[i].Right
		}
	}

	class := t.nodes[i].Class
	if class < 0 || class >= len(RankLabels) {
		return 0, &SchemaError{
			Detail: "leaf class outside the rank label set",
			Want:   len(RankLabels),
			Got:    class,
		}
	}
	return class, nil
}

// PredictRank runs a feature row through a predictor and maps the result
// to its label. Identifying columns never reach the model: Vector()
// excludes them by construction.
func PredictRank(row features.FeatureRow, p Predictor) (RankLabel, error) {
	index, err := p.Predict(row.Vector())
	if err != nil {
		return "", err
	}
	return Rank(index)
}
