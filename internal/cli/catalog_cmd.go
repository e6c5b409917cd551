package cli

import (
	"strings"

	"github.com/alexanderramin/gradpath/internal/catalog"
	"github.com/alexanderramin/gradpath/internal/cli/formatter"
	"github.com/alexanderramin/gradpath/internal/domain"
	"github.com/spf13/cobra"
)

func newCatalogCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect the course catalog",
	}
	cmd.AddCommand(newCatalogListCmd(a))
	return cmd
}

type catalogCourse struct {
	Title   string `json:"title"`
	Grades  []int  `json:"grades"`
	Area    string `json:"area,omitempty"`
	Section string `json:"section,omitempty"`
}

type catalogListing struct {
	Courses []catalogCourse     `json:"courses"`
	Report  *catalog.LoadReport `json:"report,omitempty"`
}

func newCatalogListCmd(a *App) *cobra.Command {
	var (
		out         outputFlags
		catalogPath string
		grade       int
		search      string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List catalog courses with their grades and A-G area",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, report, err := a.Plans.Catalog(cmd.Context(), catalogPath)
			if err != nil {
				return err
			}
			if grade != 0 || search != "" {
				cat = filterCatalog(cat, grade, search)
			}

			listing := catalogListing{Courses: make([]catalogCourse, 0, cat.Len()), Report: report}
			for _, c := range cat.Courses() {
				listing.Courses = append(listing.Courses, catalogCourse{Title: c.Title, Grades: c.Grades, Area: string(c.Area), Section: c.Section})
			}
			return out.emit(cmd, a, "Catalog", listing, func() string { return formatter.FormatCatalog(cat, report) })
		},
	}

	cmd.Flags().StringVar(&catalogPath, "catalog", "", "Catalog CSV path (default from GRADPATH_CATALOG)")
	cmd.Flags().IntVar(&grade, "grade", 0, "Only courses offered in this grade")
	cmd.Flags().StringVarP(&search, "search", "s", "", "Only titles containing this text (case-insensitive)")
	out.register(cmd)

	return cmd
}

func filterCatalog(cat *catalog.Catalog, grade int, search string) *catalog.Catalog {
	search = strings.ToLower(search)
	var kept []domain.Course
	for _, c := range cat.Courses() {
		if grade != 0 && !cat.OfferedIn(c.Title, grade) {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(c.Title), search) {
			continue
		}
		kept = append(kept, c)
	}
	return catalog.New(kept...)
}
