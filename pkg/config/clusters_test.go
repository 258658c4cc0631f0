package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadClustersMissingFile(t *testing.T) {
	clusters, err := LoadClustersFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Empty(t, clusters.Clusters)
}

func TestSaveAndLoadClusters(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "clusters.yaml")

	clusters := &Clusters{Default: "prod"}
	require.NoError(t, clusters.Add(Cluster{Name: "prod", MaxMemoryMB: 65536, MaxVcores: 32}))
	require.NoError(t, clusters.Add(Cluster{Name: "dev", MaxMemoryMB: 8192, MaxVcores: 4}))
	require.NoError(t, SaveClustersToFile(clusters, path))

	loaded, err := LoadClustersFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, clusters, loaded)

	cluster, err := loaded.Find("")
	require.NoError(t, err)
	assert.Equal(t, 65536, cluster.MaxMemoryMB)

	cluster, err = loaded.Find("dev")
	require.NoError(t, err)
	assert.Equal(t, 4, cluster.MaxVcores)
}

func TestLoadClustersFromYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clusters.yaml")
	data := []byte(`clusters:
  - name: staging
    max_memory_mb: 16384
    max_vcores: 8
default: staging
`)
	require.NoError(t, os.WriteFile(path, data, 0644))

	clusters, err := LoadClustersFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, []Cluster{{Name: "staging", MaxMemoryMB: 16384, MaxVcores: 8}}, clusters.Clusters)
	assert.Equal(t, "staging", clusters.Default)
}

func TestLoadClustersInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clusters.yaml")
	require.NoError(t, os.WriteFile(path, []byte("clusters: [unterminated"), 0644))

	_, err := LoadClustersFromFile(path)
	assert.ErrorContains(t, err, "failed to parse clusters file")
}

func TestClustersAddValidation(t *testing.T) {
	clusters := &Clusters{}
	require.NoError(t, clusters.Add(Cluster{Name: "a", MaxMemoryMB: 1, MaxVcores: 1}))

	assert.ErrorContains(t, clusters.Add(Cluster{Name: "a", MaxMemoryMB: 1, MaxVcores: 1}), "already exists")
	assert.ErrorContains(t, clusters.Add(Cluster{MaxMemoryMB: 1, MaxVcores: 1}), "name is required")
	assert.ErrorContains(t, clusters.Add(Cluster{Name: "b", MaxMemoryMB: 0, MaxVcores: 1}), "must be positive")
	assert.Len(t, clusters.Clusters, 1)
}

func TestClustersFindAndRemove(t *testing.T) {
	clusters := &Clusters{
		Clusters: []Cluster{{Name: "a", MaxMemoryMB: 1, MaxVcores: 1}, {Name: "b", MaxMemoryMB: 2, MaxVcores: 2}},
		Default:  "a",
	}

	_, err := clusters.Find("c")
	assert.ErrorContains(t, err, "cluster c not found")

	require.NoError(t, clusters.Remove("a"))
	assert.Equal(t, "", clusters.Default)
	assert.Equal(t, []Cluster{{Name: "b", MaxMemoryMB: 2, MaxVcores: 2}}, clusters.Clusters)

	_, err = clusters.Find("")
	assert.ErrorContains(t, err, "no default cluster")

	assert.ErrorContains(t, clusters.Remove("a"), "not found")
}
