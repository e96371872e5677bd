// Package content loads the site's profile and section content from YAML.
package content

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultYAML []byte

type Link struct {
	Label string `yaml:"label"`
	URL   string `yaml:"url"`
}

type Profile struct {
	Name     string `yaml:"name"`
	Title    string `yaml:"title"`
	Tagline  string `yaml:"tagline"`
	Email    string `yaml:"email"`
	Phone    string `yaml:"phone"`
	Location string `yaml:"location"`
	Resume   string `yaml:"resume"`
	Links    []Link `yaml:"links"`
}

type Education struct {
	Degree      string   `yaml:"degree"`
	Institution string   `yaml:"institution"`
	Campus      string   `yaml:"campus"`
	Period      string   `yaml:"period"`
	Grade       string   `yaml:"grade"`
	Highlights  []string `yaml:"highlights"`
}

type Skill struct {
	Name  string `yaml:"name"`
	Level int    `yaml:"level"`
}

// Band names the proficiency band of the skill's level.
func (s Skill) Band() string {
	switch {
	case s.Level >= 90:
		return "Expert"
	case s.Level >= 75:
		return "Advanced"
	case s.Level >= 60:
		return "Intermediate"
	}
	return "Beginner"
}

type SkillGroup struct {
	Name   string  `yaml:"name"`
	Skills []Skill `yaml:"skills"`
}

type Job struct {
	Title    string   `yaml:"title"`
	Company  string   `yaml:"company"`
	Period   string   `yaml:"period"`
	Location string   `yaml:"location"`
	Bullets  []string `yaml:"bullets"`
}

type Project struct {
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Tags        []string `yaml:"tags"`
	URL         string   `yaml:"url"`
	Repo        string   `yaml:"repo"`
}

type Certification struct {
	Title  string `yaml:"title"`
	Issuer string `yaml:"issuer"`
}

// Site is everything the home page renders.
type Site struct {
	Profile        Profile         `yaml:"profile"`
	About          []string        `yaml:"about"`
	Education      []Education     `yaml:"education"`
	Skills         []SkillGroup    `yaml:"skills"`
	Experience     []Job           `yaml:"experience"`
	Projects       []Project       `yaml:"projects"`
	Certifications []Certification `yaml:"certifications"`
}

// Default returns the embedded site content.
func Default() (*Site, error) {
	return Parse(defaultYAML)
}

// Load reads site content from path, or the embedded default when path is
// empty.
func Load(path string) (*Site, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read content: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML document.
func Parse(data []byte) (*Site, error) {
	var s Site
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse content: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate reports every problem with the content at once.
func (s *Site) Validate() error {
	var errs []error
	if s.Profile.Name == "" {
		errs = append(errs, errors.New("profile.name is required"))
	}
	for i, e := range s.Education {
		if e.Degree == "" || e.Period == "" {
			errs = append(errs, fmt.Errorf("education[%d]: degree and period are required", i))
		}
	}
	for i, j := range s.Experience {
		if j.Title == "" || j.Period == "" {
			errs = append(errs, fmt.Errorf("experience[%d]: title and period are required", i))
		}
	}
	for _, g := range s.Skills {
		for _, sk := range g.Skills {
			if sk.Level < 0 || sk.Level > 100 {
				errs = append(errs, fmt.Errorf("skill %q: level %d outside 0-100", sk.Name, sk.Level))
			}
		}
	}
	for i, p := range s.Projects {
		if p.Title == "" {
			errs = append(errs, fmt.Errorf("projects[%d]: title is required", i))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid content: %w", errors.Join(errs...))
	}
	return nil
}
