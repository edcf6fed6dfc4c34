package rendering

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-as-code/internal/types"
)

func sampleResume() *types.Resume {
	return &types.Resume{
		Header: types.Header{
			Name:  "Jane Doe",
			Title: "Staff Engineer",
			Contact: types.ContactInfo{
				Email:  "jane@example.com",
				GitHub: "https://github.com/jane/",
			},
		},
		Summary: types.Summary{Content: "  Builds reliable systems.\n"},
		Experience: types.ProfessionalExperience{Experiences: []types.Experience{
			{Company: "Acme", Title: "Staff Engineer", StartDate: "2023-01-01", Current: true,
				Achievements: []string{"Led the storage migration"}},
			{Company: "Acme", Title: "Senior Engineer", StartDate: "2020-03-01", EndDate: "2022-12-31",
				Achievements: []string{"Cut p99 latency by 40%"}, Technologies: []string{"Go", "Postgres"}},
			{Company: "Initech", Title: "Developer", StartDate: "2017-06-01", EndDate: "2020-02-28"},
		}},
		Skills: types.Skills{Skills: []types.Skill{
			{Name: "Go", Category: "Languages"},
			{Name: "Kubernetes", Category: "Platforms"},
			{Name: "Python", Category: "Languages"},
		}},
		Footer: &types.Footer{Text: "Source on", Link: "https://github.com/jane/resume"},
	}
}

func TestBuildTemplateData_GroupsRoles(t *testing.T) {
	data, err := BuildTemplateData(sampleResume())
	require.NoError(t, err)

	require.Len(t, data.Companies, 2)
	assert.Equal(t, "Acme", data.Companies[0].Company)
	require.Len(t, data.Companies[0].Roles, 2)
	assert.Equal(t, "Jan 2023 - Present", data.Companies[0].Roles[0].Dates)
	assert.Equal(t, "Mar 2020 - Dec 2022", data.Companies[0].Roles[1].Dates)
	assert.Equal(t, "Initech", data.Companies[1].Company)

	assert.Equal(t, "Builds reliable systems.", data.Summary)
	require.Len(t, data.SkillGroups, 2)
	assert.Equal(t, SkillGroup{Category: "Languages", Names: []string{"Go", "Python"}}, data.SkillGroups[0])
	assert.Equal(t, SkillGroup{Category: "Platforms", Names: []string{"Kubernetes"}}, data.SkillGroups[1])
}

func TestBuildTemplateData_NonAdjacentCompaniesStaySeparate(t *testing.T) {
	r := sampleResume()
	r.Experience.Experiences = append(r.Experience.Experiences,
		types.Experience{Company: "acme", Title: "Intern", StartDate: "2016-06-01", EndDate: "2016-09-01"})

	data, err := BuildTemplateData(r)
	require.NoError(t, err)
	assert.Len(t, data.Companies, 3)
}

func TestBuildTemplateData_BadDate(t *testing.T) {
	r := sampleResume()
	r.Experience.Experiences[1].StartDate = "March 2020"

	_, err := BuildTemplateData(r)
	assert.Error(t, err)
}

func TestRenderHTML(t *testing.T) {
	out, err := RenderHTML(sampleResume())
	require.NoError(t, err)

	assert.Contains(t, out, "<h1>Jane Doe</h1>")
	assert.Contains(t, out, "Jan 2023 - Present")
	assert.Contains(t, out, "Led the storage migration")
	assert.Contains(t, out, "Go, Postgres")
	assert.Contains(t, out, "github.com/jane</a>")
	assert.Contains(t, out, "Languages:</span> Go, Python")
	assert.Contains(t, out, "<footer>Source on")
}

func TestRenderHTML_EscapesContent(t *testing.T) {
	r := sampleResume()
	r.Experience.Experiences[0].Achievements = []string{"Shipped <script>alert(1)</script> & more"}

	out, err := RenderHTML(r)
	require.NoError(t, err)
	assert.NotContains(t, out, "<script>alert(1)</script>")
	assert.Contains(t, out, "&lt;script&gt;")
}

func TestRenderHTML_OptionalSections(t *testing.T) {
	r := &types.Resume{Header: types.Header{Name: "Solo", Title: "Engineer"}}

	out, err := RenderHTML(r)
	require.NoError(t, err)
	assert.NotContains(t, out, "<h2>Experience</h2>")
	assert.NotContains(t, out, "<footer>")
}

func TestRenderHTML_Nil(t *testing.T) {
	_, err := RenderHTML(nil)
	var renderErr *RenderError
	assert.ErrorAs(t, err, &renderErr)
}

func TestDisplayURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"https://github.com/jane/", "github.com/jane"},
		{"http://www.example.com", "example.com"},
		{"linkedin.com/in/jane", "linkedin.com/in/jane"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, displayURL(tt.in))
		})
	}
}
