// Package catalog holds the degree requirement lists for every academic program.
// The data is declarative: course codes per requirement category, loaded from YAML.
package catalog

import "strings"

// Program kinds select the requirement evaluator variant
const (
	KindComputerScience = "computer-science"
	KindBusiness        = "business"
)

// Catalog is the full requirement catalog
type Catalog struct {
	GenEd    GenEd     `yaml:"genEd"`
	Programs []Program `yaml:"programs"`
}

// GenEd describes the general-education cluster layout shared by all programs
type GenEd struct {
	ClusterSize int      `yaml:"clusterSize"`
	Sectors     []Sector `yaml:"sectors"`
}

// Sector is one cluster category (humanities, social-science, quantitative) and its theme ids
type Sector struct {
	Name   string `yaml:"name"`
	Themes []int  `yaml:"themes"`
}

// PickGroup is a "pick N of M" requirement
type PickGroup struct {
	Pick    int      `yaml:"pick"`
	Courses []string `yaml:"courses"`
}

// Core is the program-specific core: every required course plus one course from each pick-one-of group
type Core struct {
	Required  []string   `yaml:"required"`
	PickOneOf [][]string `yaml:"pickOneOf"`
}

// Track is an area of specialization within a program
type Track struct {
	Name            string   `yaml:"name"`
	Required        []string `yaml:"required"`
	Electives       []string `yaml:"electives"`
	ElectivesNeeded int      `yaml:"electivesNeeded"`
}

// Program holds the requirement lists of one academic program
type Program struct {
	Name              string    `yaml:"name"`
	Kind              string    `yaml:"kind"`
	Departments       []string  `yaml:"departments"`
	Foundation        []string  `yaml:"foundation"`
	PhysicalEducation PickGroup `yaml:"physicalEducation"`
	FirstAid          []string  `yaml:"firstAid"`
	CivilDefense      []string  `yaml:"civilDefense"`
	PeerMentoring     []string  `yaml:"peerMentoring"`
	Core              Core      `yaml:"core"`
	Tracks            []Track   `yaml:"tracks"`
	FreeElective      PickGroup `yaml:"freeElective"`
	Capstone          []string  `yaml:"capstone"`
}

// Pool returns every course code that counts toward the track, required first
func (t Track) Pool() []string {
	pool := make([]string, 0, len(t.Required)+len(t.Electives))
	pool = append(pool, t.Required...)
	return append(pool, t.Electives...)
}

// CoreCodes returns the required core codes followed by every pick-one-of option
func (p *Program) CoreCodes() []string {
	codes := append([]string{}, p.Core.Required...)
	for _, group := range p.Core.PickOneOf {
		codes = append(codes, group...)
	}
	return codes
}

// Track returns the named track
func (p *Program) Track(name string) (Track, bool) {
	for _, t := range p.Tracks {
		if t.Name == name {
			return t, true
		}
	}
	return Track{}, false
}

// ReservedCodes returns the codes claimed by requirements other than the free elective.
// Courses in this set never count as free electives.
func (p *Program) ReservedCodes() map[string]struct{} {
	reserved := make(map[string]struct{})
	add := func(codes []string) {
		for _, c := range codes {
			reserved[c] = struct{}{}
		}
	}
	add(p.Foundation)
	add(p.PhysicalEducation.Courses)
	add(p.FirstAid)
	add(p.CivilDefense)
	add(p.PeerMentoring)
	add(p.CoreCodes())
	for _, t := range p.Tracks {
		add(t.Pool())
	}
	add(p.Capstone)
	return reserved
}

// OwnsDepartment reports whether a department code maps to this program
func (p *Program) OwnsDepartment(code string) bool {
	for _, d := range p.Departments {
		if strings.EqualFold(d, code) {
			return true
		}
	}
	return false
}

// SectorOf returns the sector a theme belongs to
func (g GenEd) SectorOf(theme int) (Sector, bool) {
	for _, s := range g.Sectors {
		for _, t := range s.Themes {
			if t == theme {
				return s, true
			}
		}
	}
	return Sector{}, false
}

// IsGenEdTheme reports whether the theme belongs to any sector
func (g GenEd) IsGenEdTheme(theme int) bool {
	_, ok := g.SectorOf(theme)
	return ok
}
