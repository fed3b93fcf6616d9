package audit

import (
	"fmt"
	"strings"

	"github.com/yigit/degreeplan/internal/app/catalog"
	"github.com/yigit/degreeplan/internal/app/gened"
	"github.com/yigit/degreeplan/internal/pkg/apperrors"
)

// Router maps department codes onto program evaluators. It is built once at startup and is
// read-only afterwards.
type Router struct {
	byDepartment map[string]Evaluator
	programs     []Evaluator
}

// NewRouter builds one evaluator per catalog program. A program kind without an evaluator
// is a configuration error.
func NewRouter(cat *catalog.Catalog, solver *gened.Solver) (*Router, error) {
	r := &Router{byDepartment: make(map[string]Evaluator)}
	for i := range cat.Programs {
		p := &cat.Programs[i]

		var ev Evaluator
		switch p.Kind {
		case catalog.KindComputerScience:
			ev = NewComputerScienceEvaluator(p, solver)
		case catalog.KindBusiness:
			ev = NewBusinessEvaluator(p, solver)
		default:
			return nil, fmt.Errorf("%w: program %q has unsupported kind %q", apperrors.ErrConfiguration, p.Name, p.Kind)
		}

		r.programs = append(r.programs, ev)
		for _, d := range p.Departments {
			r.byDepartment[strings.ToUpper(d)] = ev
		}
	}
	return r, nil
}

// ForDepartment returns the evaluator of the program owning the department.
// There is no fallback program: an unmapped department is a configuration error.
func (r *Router) ForDepartment(code string) (Evaluator, error) {
	ev, ok := r.byDepartment[strings.ToUpper(strings.TrimSpace(code))]
	if !ok {
		return nil, fmt.Errorf("%w: %w %q", apperrors.ErrConfiguration, apperrors.ErrUnknownProgram, code)
	}
	return ev, nil
}

// Programs returns every configured evaluator in catalog order
func (r *Router) Programs() []Evaluator {
	return r.programs
}
