// Package site holds the static content served by the public pages.
package site

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

type Contact struct {
	Email   string `yaml:"email" json:"email"`
	Phone   string `yaml:"phone" json:"phone"`
	Address string `yaml:"address" json:"address"`
}

type About struct {
	TeamSize   string `yaml:"teamSize" json:"team_size"`
	Companies  string `yaml:"companies" json:"companies"`
	Placements string `yaml:"placements" json:"placements"`
}

type Service struct {
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description" json:"description"`
	Icon        string `yaml:"icon" json:"icon"`
	Color       string `yaml:"color" json:"color"`
}

type Settings struct {
	Name     string    `yaml:"name"`
	Contact  Contact   `yaml:"contact"`
	About    About     `yaml:"about"`
	Services []Service `yaml:"services"`
}

// Default is used when no site file exists.
func Default() Settings {
	return Settings{
		Name: "Elevate Workforce Solutions",
		Contact: Contact{
			Email:   "info@elevateworkforce.com",
			Phone:   "+977-1-XXXX-XXXX",
			Address: "Kathmandu, Nepal",
		},
		About: About{TeamSize: "50+", Companies: "500+", Placements: "1000+"},
		Services: []Service{
			{"Job Posting", "Companies can post job openings with detailed job descriptions, requirements, and benefits.", "fa-briefcase", "#3498db"},
			{"Job Search", "Job seekers can search and filter jobs by location, industry, experience level, and salary.", "fa-search", "#2ecc71"},
			{"Application Management", "Track applications, manage candidates, and communicate with job seekers seamlessly.", "fa-file-alt", "#e74c3c"},
			{"Profile Management", "Create and manage professional profiles with resume upload, skills, and work experience.", "fa-user-tie", "#f39c12"},
			{"Secure Authentication", "Advanced security measures to protect user data and ensure safe transactions.", "fa-lock", "#9b59b6"},
			{"Company Dashboard", "Comprehensive analytics and insights for company hiring needs and trends.", "fa-chart-bar", "#1abc9c"},
		},
	}
}

// LoadFromFile reads settings from a YAML file. A missing file yields
// Default; fields absent from the file keep their default values.
func LoadFromFile(path string) (Settings, error) {
	settings := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return settings, nil
	}
	if err != nil {
		return settings, fmt.Errorf("read site config: %w", err)
	}
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return settings, fmt.Errorf("parse site config: %w", err)
	}
	return settings, nil
}
