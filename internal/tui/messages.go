package tui

import "github.com/Veraticus/shelf/internal/model"

// batchDoneMsg reports the end of a move or auto-tag batch.
type batchDoneMsg struct {
	err    error
	label  string
	result model.MoveResult
}

// rescanDoneMsg reports the end of a manual rescan.
type rescanDoneMsg struct {
	err error
}
