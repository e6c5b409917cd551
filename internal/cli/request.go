package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alexanderramin/gradpath/internal/app"
	"github.com/alexanderramin/gradpath/internal/pathway"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// loadRequest decodes a JSON or YAML request file over the defaults. Keys
// the file omits keep their default values.
func loadRequest(path string) (app.PlanRequest, error) {
	req := app.NewPlanRequest()
	data, err := os.ReadFile(path)
	if err != nil {
		return req, fmt.Errorf("reading request: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &req)
	default:
		err = json.Unmarshal(data, &req)
	}
	if err != nil {
		return req, fmt.Errorf("parsing request %s: %w", path, err)
	}
	return req, nil
}

// requestFlags are the generate flags that override request fields.
type requestFlags struct {
	catalog        string
	goal           string
	startingMath   string
	completedMath  string
	sciencePathway string
	preferSpanish  bool
	completed      []string
	english        string
	history        string
	scienceLevel   string
	letter         string
	overrides      map[string]string
	excludeGrade9  bool
	passes         int
	save           bool
}

func (f *requestFlags) register(fs *pflag.FlagSet) {
	defaults := app.NewPlanRequest()
	fs.StringVar(&f.catalog, "catalog", "", "Catalog CSV path (default from GRADPATH_CATALOG)")
	fs.StringVar(&f.goal, "goal", defaults.Goal, "Goal: cs, pre_med, or biotech")
	fs.StringVar(&f.startingMath, "starting-math", defaults.StartingMath, "Math track: "+strings.Join(pathway.MathTracks(), ", "))
	fs.StringVar(&f.completedMath, "completed-math", "", "Highest math course already completed")
	fs.StringVar(&f.sciencePathway, "science", defaults.SciencePathway, "Science pathway: "+strings.Join(pathway.SciencePathways(), ", "))
	fs.BoolVar(&f.preferSpanish, "prefer-spanish", defaults.PreferSpanish, "Continue the Spanish sequence for world language")
	fs.StringSliceVar(&f.completed, "completed", nil, "Completed course titles (repeatable or comma-separated)")
	fs.StringVar(&f.english, "english", defaults.CourseLevelPrefs.English, "English level: regular, honors, or ap")
	fs.StringVar(&f.history, "history", defaults.CourseLevelPrefs.History, "History level: regular, honors, or ap")
	fs.StringVar(&f.scienceLevel, "science-level", defaults.CourseLevelPrefs.Science, "Science level: regular, honors, or ap")
	fs.StringVar(&f.letter, "letter", defaults.GPA.DefaultLetter, "Default letter grade for GPA projection")
	fs.StringToStringVar(&f.overrides, "grade", nil, "Per-course letter overrides, e.g. --grade 'Chemistry (P)=B'")
	fs.BoolVar(&f.excludeGrade9, "exclude-grade9", false, "Leave grade 9 out of the district GPA")
	fs.IntVar(&f.passes, "passes", defaults.OptimizerPasses, "Gap optimizer passes")
	fs.BoolVar(&f.save, "save", false, "Archive the generated plan")
}

// apply copies every flag the user set onto req.
func (f *requestFlags) apply(fs *pflag.FlagSet, req *app.PlanRequest) {
	if fs.Changed("catalog") {
		req.CatalogPath = f.catalog
	}
	if fs.Changed("goal") {
		req.Goal = f.goal
	}
	if fs.Changed("starting-math") {
		req.StartingMath = f.startingMath
	}
	if fs.Changed("completed-math") {
		req.CompletedMath = f.completedMath
	}
	if fs.Changed("science") {
		req.SciencePathway = f.sciencePathway
	}
	if fs.Changed("prefer-spanish") {
		req.PreferSpanish = f.preferSpanish
	}
	if fs.Changed("completed") {
		req.CompletedCourses = f.completed
	}
	if fs.Changed("english") {
		req.CourseLevelPrefs.English = f.english
	}
	if fs.Changed("history") {
		req.CourseLevelPrefs.History = f.history
	}
	if fs.Changed("science-level") {
		req.CourseLevelPrefs.Science = f.scienceLevel
	}
	if fs.Changed("letter") {
		req.GPA.DefaultLetter = f.letter
	}
	if fs.Changed("grade") {
		if req.GPA.Overrides == nil {
			req.GPA.Overrides = make(map[string]string, len(f.overrides))
		}
		for k, v := range f.overrides {
			req.GPA.Overrides[k] = v
		}
	}
	if fs.Changed("exclude-grade9") {
		include := !f.excludeGrade9
		req.GPA.IncludeGrade9 = &include
	}
	if fs.Changed("passes") {
		req.OptimizerPasses = f.passes
	}
	if fs.Changed("save") {
		req.Save = f.save
	}
}
