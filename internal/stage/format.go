package stage

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// yamlStage is the on-disk layout of a stage file.
type yamlStage struct {
	ID        int            `yaml:"id"`
	Name      string         `yaml:"name"`
	Ammo      int            `yaml:"ammo"`
	Map       []string       `yaml:"map"`
	Obstacles []yamlObstacle `yaml:"obstacles,omitempty"`
}

type yamlPoint struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

type yamlObstacle struct {
	Kind   string     `yaml:"kind"`
	X      *int       `yaml:"x,omitempty"`
	Y      *int       `yaml:"y,omitempty"`
	Axis   string     `yaml:"axis,omitempty"`
	Dir    int        `yaml:"dir,omitempty"`
	HP     int        `yaml:"hp,omitempty"`
	Center *yamlPoint `yaml:"center,omitempty"`
	Radius int        `yaml:"radius,omitempty"`
	Sight  int        `yaml:"sight,omitempty"`
}

// extensions lists the stage file extensions the loader reads.
var extensions = []string{".yaml", ".yml"}

func parseYAML(data []byte) (yamlStage, error) {
	var ys yamlStage
	if err := yaml.Unmarshal(data, &ys); err != nil {
		return yamlStage{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	return ys, nil
}
