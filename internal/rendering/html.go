// Package rendering turns a loaded resume into HTML and PDF documents.
package rendering

import (
	"embed"
	"fmt"
	"html/template"
	"strings"

	"github.com/jonathan/resume-as-code/internal/types"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

const defaultTemplate = "resume.html.tmpl"

// TemplateData is what the resume template sees.
type TemplateData struct {
	Header      types.Header
	Summary     string
	Companies   []CompanySection
	SkillGroups []SkillGroup
	Footer      *types.Footer
}

// CompanySection groups consecutive roles at one employer.
type CompanySection struct {
	Company  string
	Location string
	Roles    []RoleSection
}

// RoleSection is one position with its formatted date range.
type RoleSection struct {
	Title        string
	Dates        string // e.g. "Mar 2021 - Present"
	Achievements []string
	Technologies []string
}

// SkillGroup lists skill names under a category.
type SkillGroup struct {
	Category string
	Names    []string
}

var funcs = template.FuncMap{
	"join":       strings.Join,
	"displayURL": displayURL,
}

// RenderHTML renders resume with the embedded template.
func RenderHTML(resume *types.Resume) (string, error) {
	if resume == nil {
		return "", &RenderError{Message: "resume is nil"}
	}

	tmpl, err := template.New(defaultTemplate).Funcs(funcs).ParseFS(templateFS, "templates/"+defaultTemplate)
	if err != nil {
		return "", &TemplateError{Message: "failed to parse template", Cause: err}
	}

	data, err := BuildTemplateData(resume)
	if err != nil {
		return "", &RenderError{Message: "failed to build template data", Cause: err}
	}

	var out strings.Builder
	if err := tmpl.Execute(&out, data); err != nil {
		return "", &TemplateError{Message: "failed to execute template", Cause: err}
	}
	return out.String(), nil
}

// BuildTemplateData flattens a resume into template sections.
func BuildTemplateData(resume *types.Resume) (*TemplateData, error) {
	companies, err := groupByCompany(resume.Experience.Experiences)
	if err != nil {
		return nil, err
	}

	var groups []SkillGroup
	for _, category := range resume.Skills.Categories() {
		g := SkillGroup{Category: category}
		for _, s := range resume.Skills.ByCategory(category) {
			g.Names = append(g.Names, s.Name)
		}
		groups = append(groups, g)
	}

	return &TemplateData{
		Header:      resume.Header,
		Summary:     strings.TrimSpace(resume.Summary.Content),
		Companies:   companies,
		SkillGroups: groups,
		Footer:      resume.Footer,
	}, nil
}

// groupByCompany merges adjacent experiences at the same company, keeping file order.
func groupByCompany(experiences []types.Experience) ([]CompanySection, error) {
	var out []CompanySection
	for i := range experiences {
		exp := &experiences[i]
		dates, err := formatDateRange(exp)
		if err != nil {
			return nil, err
		}
		role := RoleSection{
			Title:        exp.Title,
			Dates:        dates,
			Achievements: exp.Achievements,
			Technologies: exp.Technologies,
		}

		if n := len(out); n > 0 && strings.EqualFold(out[n-1].Company, exp.Company) {
			out[n-1].Roles = append(out[n-1].Roles, role)
			continue
		}
		out = append(out, CompanySection{
			Company:  exp.Company,
			Location: exp.Location,
			Roles:    []RoleSection{role},
		})
	}
	return out, nil
}

func formatDateRange(exp *types.Experience) (string, error) {
	start, err := exp.Start()
	if err != nil {
		return "", err
	}
	if exp.IsCurrent() {
		return fmt.Sprintf("%s - Present", start.Format("Jan 2006")), nil
	}
	end, err := exp.End()
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s - %s", start.Format("Jan 2006"), end.Format("Jan 2006")), nil
}

// displayURL strips the scheme and trailing slash for display.
func displayURL(u string) string {
	u = strings.TrimPrefix(u, "https://")
	u = strings.TrimPrefix(u, "http://")
	u = strings.TrimPrefix(u, "www.")
	return strings.TrimSuffix(u, "/")
}
