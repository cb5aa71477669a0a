package graph

import (
	"bytes"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalGraph(t *testing.T) {
	tests := []struct {
		name  string
		graph Graph
		want  []string
	}{
		{
			name:  "Empty",
			graph: Graph{},
			want:  []string{`"nodes": []`, `"edges": []`},
		},
		{
			name: "Simple",
			graph: Graph{
				Nodes: []Node{{ID: "1", Label: "Root", Kind: KindInput}, {ID: "2", Label: "Child", Position: Position{X: 10, Y: 86}}},
				Edges: []Edge{{ID: "1-2", Source: "1", Target: "2"}},
			},
			want: []string{`"kind": "input"`, `"source": "1"`, `"y": 86`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := MarshalGraph(tt.graph)
			require.NoError(t, err)
			for _, w := range tt.want {
				assert.Contains(t, string(data), w)
			}
		})
	}
}

func TestReadGraph(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"Valid", `{"nodes":[{"id":"a"},{"id":"b"}],"edges":[{"id":"a-b","source":"a","target":"b"}]}`, false},
		{"Empty", `{"nodes":[],"edges":[]}`, false},
		{"Malformed", `{"nodes":`, true},
		{"UnknownTarget", `{"nodes":[{"id":"a"}],"edges":[{"id":"a-x","source":"a","target":"x"}]}`, true},
		{"DuplicateNode", `{"nodes":[{"id":"a"},{"id":"a"}],"edges":[]}`, true},
		{"EmptyID", `{"nodes":[{"id":""}],"edges":[]}`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadGraph(strings.NewReader(tt.input))
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestGraphFileRoundTrip(t *testing.T) {
	g := Build(sampleForest())
	g.Nodes[3].Position = Position{X: 222, Y: 172}
	path := filepath.Join(t.TempDir(), "tree.json")

	require.NoError(t, WriteGraphFile(g, path))
	got, err := ReadGraphFile(path)
	require.NoError(t, err)

	require.Len(t, got.Nodes, len(g.Nodes))
	require.Len(t, got.Edges, len(g.Edges))
	assert.Equal(t, g.Nodes[3], got.Nodes[3])
}

func TestReadGraphFileMissing(t *testing.T) {
	_, err := ReadGraphFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestWriteGraph(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteGraph(Graph{Nodes: []Node{{ID: "x"}}}, &buf))
	assert.True(t, strings.HasSuffix(buf.String(), "\n"), "output ends with a newline")
}

func TestCloneIsIndependent(t *testing.T) {
	g := Build(sampleForest())
	c := g.Clone()
	c.Nodes[0].Position.X = 99

	assert.Zero(t, g.Nodes[0].Position.X, "clone shares node storage with the original")
}
