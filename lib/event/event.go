package event

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

type Kind int

const (
	Resumed Kind = iota
	Resized
	CloseRequested
	RedrawRequested
	// AboutToWait is delivered once per loop iteration when no redraw is pending
	AboutToWait
	ClearColourChanged
)

var kindNames = map[Kind]string{
	Resumed:            "resumed",
	Resized:            "resized",
	CloseRequested:     "close-requested",
	RedrawRequested:    "redraw-requested",
	AboutToWait:        "about-to-wait",
	ClearColourChanged: "clear-colour-changed",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Event is what the windowing loop hands to the demo driver. Width and Height
// are only meaningful for Resized, Colour only for ClearColourChanged.
type Event struct {
	Kind   Kind
	Width  int
	Height int
	Colour mgl32.Vec4
}

func Resume() Event {
	return Event{Kind: Resumed}
}

func Resize(width, height int) Event {
	return Event{Kind: Resized, Width: width, Height: height}
}

func Close() Event {
	return Event{Kind: CloseRequested}
}

func Redraw() Event {
	return Event{Kind: RedrawRequested}
}

func Idle() Event {
	return Event{Kind: AboutToWait}
}

func Recolour(c mgl32.Vec4) Event {
	return Event{Kind: ClearColourChanged, Colour: c}
}

func (e Event) String() string {
	switch e.Kind {
	case Resized:
		return fmt.Sprintf("%s %dx%d", e.Kind, e.Width, e.Height)
	case ClearColourChanged:
		return fmt.Sprintf("%s (%.2f, %.2f, %.2f, %.2f)", e.Kind, e.Colour[0], e.Colour[1], e.Colour[2], e.Colour[3])
	default:
		return e.Kind.String()
	}
}
