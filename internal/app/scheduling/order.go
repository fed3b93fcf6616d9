package scheduling

import (
	"sort"

	"github.com/yigit/degreeplan/internal/app/models"
)

// OfferingOrder decides which of several matching offerings FindOffering tries first.
// It reports whether a should come before b.
type OfferingOrder func(a, b *models.CourseOffering) bool

// CatalogOrder sorts by course code and then by offering id, which makes first-match
// selection reproducible regardless of how the offerings were read.
func CatalogOrder(a, b *models.CourseOffering) bool {
	if a.Code() != b.Code() {
		return a.Code() < b.Code()
	}
	return a.ID < b.ID
}

// Sorted returns a sorted copy of offerings; the input slice is left untouched
func (o OfferingOrder) Sorted(offerings []*models.CourseOffering) []*models.CourseOffering {
	out := append([]*models.CourseOffering(nil), offerings...)
	sort.SliceStable(out, func(i, j int) bool { return o(out[i], out[j]) })
	return out
}
