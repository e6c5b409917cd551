package testutil

import (
	"path/filepath"
	"runtime"
	"testing"

	"github.com/alexanderramin/gradpath/internal/catalog"
	"github.com/alexanderramin/gradpath/internal/domain"
)

// SampleCatalogPath returns the absolute path of the shared sample catalog
// CSV, independent of the calling package's working directory.
func SampleCatalogPath() string {
	_, file, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(file), "..", "catalog", "testdata", "sample_catalog.csv")
}

// SampleCatalog loads the sample district catalog.
func SampleCatalog(t testing.TB) *catalog.Catalog {
	t.Helper()
	cat, _, err := catalog.Load(SampleCatalogPath(), catalog.Options{})
	if err != nil {
		t.Fatalf("failed to load sample catalog: %v", err)
	}
	return cat
}

// Course builds a catalog course.
func Course(title string, area domain.Category, grades ...int) domain.Course {
	return domain.NewCourse(title, grades, area, "")
}

// Catalog builds an in-memory catalog in the given order.
func Catalog(courses ...domain.Course) *catalog.Catalog {
	return catalog.New(courses...)
}

// MinimalCatalog holds one English course and one biology course.
func MinimalCatalog() *catalog.Catalog {
	return catalog.New(
		Course("Freshman English (P)", domain.CategoryEnglish, 9),
		Course("Biology (P)", domain.CategoryScience, 9, 10),
	)
}

// AllGrades lists grades 9-12 for course builders.
var AllGrades = []int{9, 10, 11, 12}
