package netstat

import "errors"

var (
	// ErrSectionNotFound means the output did not contain the expected section.
	// It points at a tool version mismatch or the wrong command having been run.
	ErrSectionNotFound  = errors.New("no such statistics or table found")
	ErrInvalidParameter = errors.New("invalid command line parameter")
	ErrInvalidPort      = errors.New("invalid port")
	ErrNoFreePort       = errors.New("no free port available")
)

// SectionNotFoundError names the section a parser was looking for.
type SectionNotFoundError struct {
	Section string
}

func (e *SectionNotFoundError) Error() string {
	return "no " + e.Section + " found in the command output"
}

func (e *SectionNotFoundError) Is(target error) bool {
	return target == ErrSectionNotFound
}

func sectionNotFound(section string) error {
	return &SectionNotFoundError{Section: section}
}
