// Package seed imports résumé data once and lays it out as the initial
// stack of text elements. Edits to the elements never write back.
package seed

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"vitae/internal/element"
)

// ErrNoResume means there is nothing to edit yet: the user has to build or
// import a résumé first.
var ErrNoResume = errors.New("no resume data available")

type PersonalInfo struct {
	FullName string `json:"fullName" yaml:"fullName"`
	Email    string `json:"email" yaml:"email"`
	Phone    string `json:"phone" yaml:"phone"`
	Location string `json:"location" yaml:"location"`
	Summary  string `json:"summary" yaml:"summary"`
}

type Experience struct {
	ID          string `json:"id" yaml:"id"`
	Company     string `json:"company" yaml:"company"`
	Position    string `json:"position" yaml:"position"`
	StartDate   string `json:"startDate" yaml:"startDate"`
	EndDate     string `json:"endDate" yaml:"endDate"`
	Description string `json:"description" yaml:"description"`
}

type Education struct {
	ID          string `json:"id" yaml:"id"`
	Institution string `json:"institution" yaml:"institution"`
	Degree      string `json:"degree" yaml:"degree"`
	Field       string `json:"field" yaml:"field"`
	StartDate   string `json:"startDate" yaml:"startDate"`
	EndDate     string `json:"endDate" yaml:"endDate"`
}

type SkillGroup struct {
	ID       string   `json:"id" yaml:"id"`
	Category string   `json:"category" yaml:"category"`
	Items    []string `json:"items" yaml:"items"`
}

type Resume struct {
	PersonalInfo PersonalInfo `json:"personalInfo" yaml:"personalInfo"`
	Experience   []Experience `json:"experience" yaml:"experience"`
	Education    []Education  `json:"education" yaml:"education"`
	Skills       []SkillGroup `json:"skills" yaml:"skills"`
}

// Load reads a résumé from a JSON or YAML file. A missing or empty file, or a
// résumé without a name, is ErrNoResume.
func Load(path string) (*Resume, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s not found", ErrNoResume, path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read resume: %w", err)
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, fmt.Errorf("%w: %s is empty", ErrNoResume, path)
	}

	var r Resume
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &r)
	default:
		err = json.Unmarshal(data, &r)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse resume %s: %w", path, err)
	}
	if strings.TrimSpace(r.PersonalInfo.FullName) == "" {
		return nil, fmt.Errorf("%w: resume has no name", ErrNoResume)
	}
	return &r, nil
}

const (
	left        = 50
	accent      = "#1DA1F2"
	muted       = "#666666"
	body        = "#333333"
	headerSize  = 18
	bodySize    = 12
	headerWidth = 200
	bodyWidth   = 700
)

// Layout stacks the résumé top to bottom: name, contact line, then summary,
// experience, education and skills sections when present. Every element
// gets zOrder 1.
func Layout(r *Resume) []element.Element {
	if r == nil {
		return nil
	}
	var out []element.Element
	y := 50.0
	add := func(id string, w, h float64, content string, size float64, bold bool, color string) {
		e := element.NewText(id)
		e.X, e.Y, e.Width, e.Height = left, y, w, h
		e.ZOrder = 1
		t, _ := e.Text()
		t.Content = content
		t.FontSizePt = size
		t.ColorHex = color
		if bold {
			t.FontWeight = element.WeightBold
		}
		out = append(out, e)
	}
	header := func(id, title string) {
		add(id, headerWidth, 30, title, headerSize, true, accent)
		y += 40
	}

	p := r.PersonalInfo
	add("header-name", 600, 60, p.FullName, 36, true, accent)
	y += 80
	add("header-contact", 600, 30, p.Email+" | "+p.Phone+" | "+p.Location, 14, false, muted)
	y += 60

	if p.Summary != "" {
		header("summary-title", "Professional Summary")
		add("summary-content", bodyWidth, 80, p.Summary, bodySize, false, body)
		y += 100
	}

	if len(r.Experience) > 0 {
		header("experience-title", "Experience")
		for i, x := range r.Experience {
			content := fmt.Sprintf("%s\n%s | %s - %s\n%s", x.Position, x.Company, x.StartDate, x.EndDate, x.Description)
			add(fmt.Sprintf("experience-%d", i), bodyWidth, 100, content, bodySize, false, body)
			y += 120
		}
	}

	if len(r.Education) > 0 {
		header("education-title", "Education")
		for i, ed := range r.Education {
			content := fmt.Sprintf("%s in %s\n%s | %s - %s", ed.Degree, ed.Field, ed.Institution, ed.StartDate, ed.EndDate)
			add(fmt.Sprintf("education-%d", i), bodyWidth, 60, content, bodySize, false, body)
			y += 80
		}
	}

	if len(r.Skills) > 0 {
		header("skills-title", "Skills")
		for i, s := range r.Skills {
			content := s.Category + ": " + strings.Join(s.Items, ", ")
			add(fmt.Sprintf("skills-%d", i), bodyWidth, 40, content, bodySize, false, body)
			y += 50
		}
	}
	return out
}
