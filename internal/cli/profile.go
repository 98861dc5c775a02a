package cli

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Profile describes a workload. Flags given on the command line take
// precedence over profile values.
//
//	participants: 100
//	iterations: 1000
//	locked: false
//	backoff: 10us
type Profile struct {
	Participants int           `yaml:"participants"`
	Iterations   int           `yaml:"iterations"`
	Locked       bool          `yaml:"locked"`
	Backoff      time.Duration `yaml:"backoff"`
}

// LoadProfile reads a YAML profile from path.
func LoadProfile(path string) (Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Profile{}, err
	}

	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Profile{}, fmt.Errorf("parse profile %s: %w", path, err)
	}
	if p.Participants < 0 || p.Iterations < 0 || p.Backoff < 0 {
		return Profile{}, fmt.Errorf("profile %s: values must not be negative", path)
	}
	return p, nil
}
