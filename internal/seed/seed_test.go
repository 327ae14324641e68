package seed

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vitae/internal/element"
)

func full() *Resume {
	return &Resume{
		PersonalInfo: PersonalInfo{
			FullName: "Jane Doe",
			Email:    "jane@example.com",
			Phone:    "555-0100",
			Location: "Lisbon",
			Summary:  "Builds things.",
		},
		Experience: []Experience{
			{Company: "Acme", Position: "Engineer", StartDate: "2020", EndDate: "2024", Description: "Shipped."},
			{Company: "Initech", Position: "Intern", StartDate: "2019", EndDate: "2020", Description: "Filed TPS reports."},
		},
		Education: []Education{
			{Institution: "MIT", Degree: "BSc", Field: "Physics", StartDate: "2015", EndDate: "2019"},
		},
		Skills: []SkillGroup{
			{Category: "Languages", Items: []string{"Go", "SQL"}},
		},
	}
}

func TestLayout_Full(t *testing.T) {
	elems := Layout(full())

	var ids []string
	ys := map[string]float64{}
	for _, e := range elems {
		ids = append(ids, e.ID)
		ys[e.ID] = e.Y
		assert.Equal(t, 1, e.ZOrder, e.ID)
		assert.Equal(t, 50.0, e.X, e.ID)
		require.NoError(t, e.Validate())
	}
	assert.Equal(t, []string{
		"header-name", "header-contact",
		"summary-title", "summary-content",
		"experience-title", "experience-0", "experience-1",
		"education-title", "education-0",
		"skills-title", "skills-0",
	}, ids)

	assert.Equal(t, map[string]float64{
		"header-name":      50,
		"header-contact":   130,
		"summary-title":    190,
		"summary-content":  230,
		"experience-title": 330,
		"experience-0":     370,
		"experience-1":     490,
		"education-title":  610,
		"education-0":      650,
		"skills-title":     730,
		"skills-0":         770,
	}, ys)

	name, _ := elems[0].Text()
	assert.Equal(t, "Jane Doe", name.Content)
	assert.Equal(t, 36.0, name.FontSizePt)
	assert.Equal(t, element.WeightBold, name.FontWeight)
	assert.Equal(t, "#1DA1F2", name.ColorHex)

	contact, _ := elems[1].Text()
	assert.Equal(t, "jane@example.com | 555-0100 | Lisbon", contact.Content)
	assert.Equal(t, element.WeightNormal, contact.FontWeight)

	exp, _ := elems[5].Text()
	assert.Equal(t, "Engineer\nAcme | 2020 - 2024\nShipped.", exp.Content)
	edu, _ := elems[8].Text()
	assert.Equal(t, "BSc in Physics\nMIT | 2015 - 2019", edu.Content)
	skills, _ := elems[10].Text()
	assert.Equal(t, "Languages: Go, SQL", skills.Content)
}

func TestLayout_SkipsEmptySections(t *testing.T) {
	elems := Layout(&Resume{PersonalInfo: PersonalInfo{FullName: "Jane Doe"}})
	require.Len(t, elems, 2)
	assert.Equal(t, "header-contact", elems[1].ID)
	assert.Nil(t, Layout(nil))
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.json"))
	assert.ErrorIs(t, err, ErrNoResume)

	empty := filepath.Join(dir, "empty.json")
	require.NoError(t, os.WriteFile(empty, []byte("  \n"), 0o644))
	_, err = Load(empty)
	assert.ErrorIs(t, err, ErrNoResume)

	nameless := filepath.Join(dir, "nameless.json")
	require.NoError(t, os.WriteFile(nameless, []byte(`{"personalInfo":{"email":"a@b.c"}}`), 0o644))
	_, err = Load(nameless)
	assert.ErrorIs(t, err, ErrNoResume)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"personalInfo":`), 0o644))
	_, err = Load(bad)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoResume)

	js := filepath.Join(dir, "resume.json")
	require.NoError(t, os.WriteFile(js, []byte(`{
		"personalInfo": {"fullName": "Jane Doe", "email": "jane@example.com"},
		"skills": [{"id": "s1", "category": "Tools", "items": ["git"]}]
	}`), 0o644))
	r, err := Load(js)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", r.PersonalInfo.FullName)
	require.Len(t, r.Skills, 1)
	assert.Equal(t, []string{"git"}, r.Skills[0].Items)

	yml := filepath.Join(dir, "resume.yaml")
	require.NoError(t, os.WriteFile(yml, []byte("personalInfo:\n  fullName: Jane Doe\neducation:\n  - institution: MIT\n    degree: BSc\n"), 0o644))
	r, err = Load(yml)
	require.NoError(t, err)
	require.Len(t, r.Education, 1)
	assert.Equal(t, "MIT", r.Education[0].Institution)
}
