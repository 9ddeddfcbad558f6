package errors

import "fmt"

// ConverterNotFoundError is returned when the spreadsheet converter executable
// cannot be resolved on the search path
type ConverterNotFoundError struct {
	Executable string
	Err        error
}

func (e *ConverterNotFoundError) Error() string {
	return fmt.Sprintf("You need to have a supported version of %q installed\n"+
		"Install it on ubuntu with \"apt-get install catdoc\"", e.Executable)
}

func (e *ConverterNotFoundError) Unwrap() error {
	return e.Err
}

// NewConverterNotFoundError creates a new converter lookup error
func NewConverterNotFoundError(executable string, err error) *ConverterNotFoundError {
	return &ConverterNotFoundError{
		Executable: executable,
		Err:        err,
	}
}

// ResourceDirError represents a missing resource directory
type ResourceDirError struct {
	Path string
}

func (e *ResourceDirError) Error() string {
	return fmt.Sprintf("Error: Could not find a valid resource directory at %s. \n"+
		"Specify one with \"-r\"", e.Path)
}

// NewResourceDirError creates a new resource directory error
func NewResourceDirError(path string) *ResourceDirError {
	return &ResourceDirError{Path: path}
}

// MissingColumnError is returned when converter output lacks a required column
type MissingColumnError struct {
	File   string
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("%s: converter output has no %q column", e.File, e.Column)
}

// NewMissingColumnError creates a new missing column error
func NewMissingColumnError(file, column string) *MissingColumnError {
	return &MissingColumnError{
		File:   file,
		Column: column,
	}
}

// CategoryError represents a table whose preceding anchor does not resolve
// to a category label. Anchor is empty when the table has no named anchor
// before it.
type CategoryError struct {
	File   string
	Anchor string
}

func (e *CategoryError) Error() string {
	if e.Anchor == "" {
		return fmt.Sprintf("%s: table has no named anchor before it", e.File)
	}
	return fmt.Sprintf("%s: no category label for anchor %q", e.File, e.Anchor)
}

// NewCategoryError creates a new category lookup error
func NewCategoryError(file, anchor string) *CategoryError {
	return &CategoryError{
		File:   file,
		Anchor: anchor,
	}
}

// UnknownActionError represents an unrecognized action verb
type UnknownActionError struct {
	Action string
}

func (e *UnknownActionError) Error() string {
	if e.Action == "" {
		return "an action is required"
	}
	return fmt.Sprintf("unknown action %q", e.Action)
}

// NewUnknownActionError creates a new unknown action error
func NewUnknownActionError(action string) *UnknownActionError {
	return &UnknownActionError{Action: action}
}
