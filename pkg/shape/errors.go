package shape

import "github.com/pkg/errors"

// ConstructionError wraps an invalid-parameter failure reported at
// construction time: non-positive radius, inverted cube or too few CSG
// operands. A singular transform matrix is reported as SingularTransform.
type ConstructionError struct {
	Kind    string
	Message string
}

func (e *ConstructionError) Error() string {
	return e.Kind + ": " + e.Message
}

func newConstructionError(kind, message string) error {
	return NewConstructionError(kind, message)
}

// NewConstructionError builds a ConstructionError for use by collaborator
// packages (e.g. csg, mesh) that validate their own constructors against
// the same error taxonomy as the primitive shapes.
func NewConstructionError(kind, message string) error {
	return errors.WithStack(&ConstructionError{Kind: kind, Message: message})
}

// SingularTransform is reported by NewTransformed, before any inverse is
// taken, for a matrix whose determinant magnitude falls below
// vecmath.SingularThreshold.
type SingularTransform struct {
	Determinant float64
}

func (e *SingularTransform) Error() string {
	return "singular transform matrix"
}

func newSingularTransform(det float64) error {
	return errors.WithStack(&SingularTransform{Determinant: det})
}

// IoError is raised only by external collaborators (SVG/PNG/mesh writers),
// never by the core shape package; it is declared here so those
// collaborator packages share one error taxonomy with the core.
type IoError struct {
	Op  string
	Err error
}

func (e *IoError) Error() string {
	return "io: " + e.Op + ": " + e.Err.Error()
}

func (e *IoError) Unwrap() error {
	return e.Err
}

// NewIoError wraps err with the operation that failed.
func NewIoError(op string, err error) error {
	return errors.WithStack(&IoError{Op: op, Err: err})
}
