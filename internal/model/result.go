package model

// CreateFolderKey is the synthetic path used when the destination folder
// itself could not be created and the batch was aborted.
const CreateFolderKey = "<create-folder>"

// FileError records a per-file failure.
type FileError struct {
	Path    string
	Message string
}

// Move records one relocated file.
type Move struct {
	Source      string
	Destination string
}

// MoveResult is the aggregate outcome of a batch.
type MoveResult struct {
	Errors  []FileError
	Moves   []Move
	Moved   int
	Skipped int
}

// AddError appends a per-file failure.
func (r *MoveResult) AddError(path, message string) {
	r.Errors = append(r.Errors, FileError{Path: path, Message: message})
}

// Merge folds other into r, keeping error and move order.
func (r *MoveResult) Merge(other MoveResult) {
	r.Moved += other.Moved
	r.Skipped += other.Skipped
	r.Errors = append(r.Errors, other.Errors...)
	r.Moves = append(r.Moves, other.Moves...)
}

// ErrorCount returns the number of recorded failures.
func (r MoveResult) ErrorCount() int {
	return len(r.Errors)
}

// FirstErrors returns at most n errors from the front of the list.
func (r MoveResult) FirstErrors(n int) []FileError {
	if n < 0 || n >= len(r.Errors) {
		return r.Errors
	}
	return r.Errors[:n]
}

// Aborted reports whether the batch stopped because its folder could not
// be created.
func (r MoveResult) Aborted() bool {
	return len(r.Errors) == 1 && r.Errors[0].Path == CreateFolderKey && r.Moved == 0 && r.Skipped == 0
}
