package cli

import (
	"sort"
	"strings"

	"github.com/alexanderramin/gradpath/internal/app"
	"github.com/alexanderramin/gradpath/internal/cli/formatter"
	"github.com/alexanderramin/gradpath/internal/domain"
	"github.com/alexanderramin/gradpath/internal/gpa"
	"github.com/alexanderramin/gradpath/internal/pathway"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// gradpathHuhTheme returns the huh theme matching the report palette.
func gradpathHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// formValues holds the editable request fields while the form runs.
type formValues struct {
	goal          string
	math          string
	science       string
	english       string
	history       string
	sciLevel      string
	preferSpanish bool
	completed     string
	letter        string
}

func newFormValues(req app.PlanRequest) *formValues {
	return &formValues{
		goal:          req.Goal,
		math:          req.StartingMath,
		science:       req.SciencePathway,
		english:       domain.CoalesceStr(req.CourseLevelPrefs.English, string(domain.LevelRegular)),
		history:       domain.CoalesceStr(req.CourseLevelPrefs.History, string(domain.LevelRegular)),
		sciLevel:      domain.CoalesceStr(req.CourseLevelPrefs.Science, string(domain.LevelRegular)),
		preferSpanish: req.PreferSpanish,
		completed:     strings.Join(req.CompletedCourses, ", "),
		letter:        req.GPA.DefaultLetter,
	}
}

// applyTo writes the form answers back onto req.
func (v *formValues) applyTo(req *app.PlanRequest) {
	req.Goal = v.goal
	req.StartingMath = v.math
	req.SciencePathway = v.science
	req.CourseLevelPrefs = app.LevelPrefs{English: v.english, History: v.history, Science: v.sciLevel}
	req.PreferSpanish = v.preferSpanish
	req.CompletedCourses = splitList(v.completed)
	req.GPA.DefaultLetter = strings.TrimSpace(v.letter)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func stringOptions(values []string) []huh.Option[string] {
	opts := make([]huh.Option[string], len(values))
	for i, v := range values {
		opts[i] = huh.NewOption(v, v)
	}
	return opts
}

func goalOptions() []string {
	out := make([]string, 0, len(domain.ValidGoals))
	for g := range domain.ValidGoals {
		out = append(out, string(g))
	}
	sort.Strings(out)
	return out
}

var levelOptions = []string{string(domain.LevelRegular), string(domain.LevelHonors), string(domain.LevelAP)}

// requestForm builds the interactive generate form over v.
func requestForm(v *formValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().Title("Goal").Options(stringOptions(goalOptions())...).Value(&v.goal),
			huh.NewSelect[string]().Title("Math track").Options(stringOptions(pathway.MathTracks())...).Value(&v.math),
			huh.NewSelect[string]().Title("Science pathway").Options(stringOptions(pathway.SciencePathways())...).Value(&v.science),
		),
		huh.NewGroup(
			huh.NewSelect[string]().Title("English level").Options(stringOptions(levelOptions)...).Value(&v.english),
			huh.NewSelect[string]().Title("History level").Options(stringOptions(levelOptions)...).Value(&v.history),
			huh.NewSelect[string]().Title("Science level").Options(stringOptions(levelOptions)...).Value(&v.sciLevel),
		),
		huh.NewGroup(
			huh.NewConfirm().Title("Continue Spanish for world language?").Value(&v.preferSpanish),
			huh.NewInput().
				Title("Completed courses").
				Description("Comma-separated; close matches are resolved against the catalog").
				Placeholder("Spanish 1, Algebra 1").
				Value(&v.completed),
			huh.NewInput().
				Title("Expected letter grade").
				Placeholder("A").
				Value(&v.letter).
				Validate(validateLetter),
		),
	).WithTheme(gradpathHuhTheme()).WithShowHelp(false)
}

func validateLetter(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	_, err := gpa.Band(s)
	return err
}
