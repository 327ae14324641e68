package main

import (
	"log/slog"

	"vitae/internal/config"
	"vitae/internal/editor"
	"vitae/internal/element"
	"vitae/internal/render"
	"vitae/internal/seed"
	"vitae/internal/storage"
)

type model struct {
	width      int
	height     int
	cursorX    int
	cursorY    int
	mode       Mode
	help       bool
	helpScroll int

	ed       *editor.Editor
	renderer *render.Renderer
	images   render.ImageResolver
	resume   *seed.Resume
	db       *storage.DB
	config   *config.Config
	log      *slog.Logger

	inputOp       InputOperation
	inputText     string
	confirmAction ConfirmAction
	pendingPath   string

	// position of the selection when move mode started, for Esc
	moveOrigin *element.Point
	exporting  bool

	errorMessage   string
	successMessage string

	preview *previewCache
}

// exportDoneMsg reports the end of a background export.
type exportDoneMsg struct {
	path string
	err  error
}
