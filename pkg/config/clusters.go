package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	configDirName    = ".dyno-launch"
	clustersFileName = "clusters.yaml"
)

// Cluster holds the per-container resource ceilings reported by a cluster
type Cluster struct {
	Name        string `yaml:"name"`
	MaxMemoryMB int    `yaml:"max_memory_mb"`
	MaxVcores   int    `yaml:"max_vcores"`
}

// Clusters holds the known cluster profiles
type Clusters struct {
	Clusters []Cluster `yaml:"clusters"`
	Default  string    `yaml:"default,omitempty"`
}

// Find returns the profile with the given name. An empty name selects the
// default profile, if one is set.
func (c *Clusters) Find(name string) (*Cluster, error) {
	if name == "" {
		name = c.Default
	}
	if name == "" {
		return nil, fmt.Errorf("no cluster selected and no default cluster configured")
	}
	for i := range c.Clusters {
		if c.Clusters[i].Name == name {
			return &c.Clusters[i], nil
		}
	}
	return nil, fmt.Errorf("cluster %s not found", name)
}

// Add appends a profile, rejecting duplicate names and empty ceilings
func (c *Clusters) Add(cluster Cluster) error {
	if cluster.Name == "" {
		return fmt.Errorf("cluster name is required")
	}
	if cluster.MaxMemoryMB <= 0 || cluster.MaxVcores <= 0 {
		return fmt.Errorf("cluster %s: ceilings must be positive (memory %d MB, vcores %d)",
			cluster.Name, cluster.MaxMemoryMB, cluster.MaxVcores)
	}
	for _, existing := range c.Clusters {
		if existing.Name == cluster.Name {
			return fmt.Errorf("cluster %s already exists", cluster.Name)
		}
	}
	c.Clusters = append(c.Clusters, cluster)
	return nil
}

// Remove deletes the named profile and clears the default if it pointed to it
func (c *Clusters) Remove(name string) error {
	kept := make([]Cluster, 0, len(c.Clusters))
	for _, cluster := range c.Clusters {
		if cluster.Name != name {
			kept = append(kept, cluster)
		}
	}
	if len(kept) == len(c.Clusters) {
		return fmt.Errorf("cluster %s not found", name)
	}
	c.Clusters = kept
	if c.Default == name {
		c.Default = ""
	}
	return nil
}

// ClustersPath returns the location of the clusters file in the user's home
func ClustersPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, configDirName, clustersFileName), nil
}

// LoadClusters loads cluster profiles from the default location
func LoadClusters() (*Clusters, error) {
	path, err := ClustersPath()
	if err != nil {
		return nil, err
	}
	return LoadClustersFromFile(path)
}

// LoadClustersFromFile loads cluster profiles from a specific file. A
// missing file yields an empty set.
func LoadClustersFromFile(path string) (*Clusters, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return &Clusters{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read clusters file: %w", err)
	}

	var clusters Clusters
	if err := yaml.Unmarshal(data, &clusters); err != nil {
		return nil, fmt.Errorf("failed to parse clusters file: %w", err)
	}

	return &clusters, nil
}

// SaveClusters saves cluster profiles to the default location
func SaveClusters(clusters *Clusters) error {
	path, err := ClustersPath()
	if err != nil {
		return err
	}
	return SaveClustersToFile(clusters, path)
}

// SaveClustersToFile saves cluster profiles to a specific file
func SaveClustersToFile(clusters *Clusters, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(clusters)
	if err != nil {
		return fmt.Errorf("failed to marshal clusters: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write clusters file: %w", err)
	}

	return nil
}
