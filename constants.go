package main

type Mode int

const (
	ModeBlocked Mode = iota
	ModeNormal
	ModeMove
	ModeInput
	ModeConfirm
)

type InputOperation int

const (
	InputProperty InputOperation = iota
	InputImage
)

type ConfirmAction int

const (
	ConfirmDelete ConfirmAction = iota
	ConfirmQuit
	ConfirmOverwriteFile
)

const (
	// Virtual pixels per terminal cell, as the PNG exporter sized its glyphs.
	charWidth  = 8
	charHeight = 16

	nudgeStep  = 20 // page units per move-mode keypress
	fitMargin  = 16 // screen pixels around the page when fitting
	statusRows = 1
)
