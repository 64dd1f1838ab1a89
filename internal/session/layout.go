package session

import (
	"image"
	"image/color"
	"time"

	"dicesim/internal/dice"
)

const (
	// WindowWidth and WindowHeight are the logical surface size.
	WindowWidth  = 1000
	WindowHeight = 600
	// Title is the window title.
	Title = "Dice Simulator"

	// FPS is the main loop frame rate.
	FPS = 60
	// AnimationFPS is the frame rate of the roll animation.
	AnimationFPS = 20
	// AnimationDuration is how long the faces flicker before a result.
	AnimationDuration = 1200 * time.Millisecond

	// HelpText is always shown near the bottom of the window.
	HelpText = "Press SPACE to roll | Press ESC to quit"
)

var (
	Background  = color.RGBA{R: 25, G: 25, B: 30, A: 255}
	TotalColor  = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	HelpColor   = color.RGBA{R: 200, G: 200, B: 200, A: 255}
	RecentColor = color.RGBA{R: 140, G: 140, B: 150, A: 255}

	// Slots are the die centres, left to right. Only the first Count are used.
	Slots = [dice.MaxCount]image.Point{
		{X: 150, Y: 250},
		{X: 350, Y: 250},
		{X: 550, Y: 250},
		{X: 750, Y: 250},
		{X: 950, Y: 250},
	}

	TotalAt  = image.Pt(40, 30)
	RecentAt = image.Pt(40, 110)
	HelpAt   = image.Pt(WindowWidth/2, WindowHeight-40)
)
