package viomi

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log"
	"math"
	"os"
	"time"
)

// Position is one device-reported path sample. Equality excludes
// Seen: the device re-reports the same pose with fresh timestamps
// while stationary.
type Position struct {
	X       float64
	Y       float64
	Heading float64
	Seen    time.Time
}

// Equal reports whether two samples are the same pose.
func (p Position) Equal(o Position) bool {
	return p.X == o.X && p.Y == o.Y && p.Heading == o.Heading
}

// Positions polls the device's current position list. scale
// multiplies the raw device units, giving sub-unit precision when the
// points are later snapped to pixels; pass 1 for raw units.
func (s *Session) Positions(ctx context.Context, scale float64) ([]Position, error) {
	result, err := s.send(ctx, "get_curpos", nil)
	if err != nil {
		return nil, err
	}
	return parsePositions(result, scale)
}

func parsePositions(result any, scale float64) ([]Position, error) {
	if scale == 0 {
		scale = 1
	}
	list, ok := result.([]any)
	if !ok {
		return nil, fmt.Errorf("get_curpos: unexpected reply %T", result)
	}
	out := make([]Position, 0, len(list))
	for _, item := range list {
		fields, ok := item.([]any)
		if !ok || len(fields) < 3 {
			return nil, fmt.Errorf("get_curpos: unexpected point %v", item)
		}
		x, okX := floatFrom(fields[0])
		y, okY := floatFrom(fields[1])
		heading, okH := floatFrom(fields[2])
		if !okX || !okY || !okH {
			return nil, fmt.Errorf("get_curpos: unexpected point %v", item)
		}
		p := Position{X: x * scale, Y: y * scale, Heading: heading}
		if len(fields) >= 4 {
			if ts, ok := int64From(fields[3]); ok {
				p.Seen = time.Unix(ts, 0)
			}
		}
		out = append(out, p)
	}
	return out, nil
}

const (
	pathCanvasSize     = 2048
	defaultPathMargin  = 10
	defaultPathBackoff = 3 * time.Second
	maxIdlePolls       = 5
)

func pathColor() color.RGBA      { return color.RGBA{240, 70, 70, 255} }
func pathBackground() color.RGBA { return color.RGBA{255, 255, 255, 255} }

// PathTracker accumulates device position reports into a rendered 2D
// path image. The output file is rewritten with the growing path
// after every poll that makes progress, so it is watchable while the
// device cleans.
type PathTracker struct {
	session *Session

	// OutputPath receives the PNG, overwritten in place.
	OutputPath string
	// Scale multiplies raw device coordinates (default 1).
	Scale float64
	// Backoff is the sleep between polls (default 3s).
	Backoff time.Duration
	// Margin is the crop border in pixels around the path's bounding
	// box (default 10).
	Margin int

	origin    Position
	hasOrigin bool
	last      Position
	canvas    *image.RGBA
	points    []image.Point
}

// NewPathTracker renders the path of session's device into the PNG
// at outputPath.
func NewPathTracker(session *Session, outputPath string) *PathTracker {
	return &PathTracker{
		session:    session,
		OutputPath: outputPath,
		Scale:      1,
		Backoff:    defaultPathBackoff,
		Margin:     defaultPathMargin,
	}
}

// Run polls until five consecutive polls yield no new distinct
// position, then returns nil. Transient fetch errors are logged,
// treated as an empty poll, and retried after the backoff; they never
// abort the loop. The sleep itself is not interruptible; ctx is
// checked between polls.
func (t *PathTracker) Run(ctx context.Context) error {
	idle := 0
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		positions, err := t.session.Positions(ctx, t.Scale)
		if err != nil {
			log.Printf("viomi: position fetch failed, retrying: %v", err)
			positions = nil
		}
		progressed := false
		for _, p := range positions {
			if t.extend(p) {
				progressed = true
			}
		}
		if progressed {
			idle = 0
			if err := t.writeSnapshot(); err != nil {
				return err
			}
		} else {
			idle++
			if idle >= maxIdlePolls {
				return nil
			}
		}
		time.Sleep(t.Backoff)
	}
}

// extend retains p if it is distinct from the previous retained point
// and draws the connecting segment. The first retained point fixes
// the origin offset for the whole run.
func (t *PathTracker) extend(p Position) bool {
	if !t.hasOrigin {
		t.origin = p
		t.hasOrigin = true
		t.last = p
		t.canvas = image.NewRGBA(image.Rect(0, 0, pathCanvasSize, pathCanvasSize))
		bg := pathBackground()
		for i := 0; i < len(t.canvas.Pix); i += 4 {
			t.canvas.Pix[i] = bg.R
			t.canvas.Pix[i+1] = bg.G
			t.canvas.Pix[i+2] = bg.B
			t.canvas.Pix[i+3] = bg.A
		}
		pt := t.canvasPoint(p)
		t.canvas.SetRGBA(pt.X, pt.Y, pathColor())
		t.points = append(t.points, pt)
		return true
	}
	if p.Equal(t.last) {
		return false
	}
	from := t.canvasPoint(t.last)
	to := t.canvasPoint(p)
	drawLine(t.canvas, from, to, pathColor())
	t.points = append(t.points, to)
	t.last = p
	return true
}

// canvasPoint maps a device position onto the canvas, origin at the
// center. Points that wander off the canvas clamp to its edge.
func (t *PathTracker) canvasPoint(p Position) image.Point {
	x := pathCanvasSize/2 + int(math.Round(p.X-t.origin.X))
	y := pathCanvasSize/2 + int(math.Round(p.Y-t.origin.Y))
	return image.Point{X: clamp(x, 0, pathCanvasSize-1), Y: clamp(y, 0, pathCanvasSize-1)}
}

// writeSnapshot crops the canvas to the path's bounding box plus
// margin, flips it vertically (the device's Y axis points the other
// way than the image frame's), and overwrites the output file.
func (t *PathTracker) writeSnapshot() error {
	box := t.boundingBox()
	box = image.Rect(
		clamp(box.Min.X-t.Margin, 0, pathCanvasSize),
		clamp(box.Min.Y-t.Margin, 0, pathCanvasSize),
		clamp(box.Max.X+t.Margin, 0, pathCanvasSize),
		clamp(box.Max.Y+t.Margin, 0, pathCanvasSize),
	)
	out := image.NewRGBA(image.Rect(0, 0, box.Dx(), box.Dy()))
	for y := 0; y < box.Dy(); y++ {
		srcY := box.Max.Y - 1 - y
		for x := 0; x < box.Dx(); x++ {
			out.SetRGBA(x, y, t.canvas.RGBAAt(box.Min.X+x, srcY))
		}
	}

	file, err := os.Create(t.OutputPath)
	if err != nil {
		return fmt.Errorf("write path image: %w", err)
	}
	if err := png.Encode(file, out); err != nil {
		file.Close()
		return fmt.Errorf("write path image: %w", err)
	}
	return file.Close()
}

// boundingBox is the tight box over all retained points, exclusive on
// the far side.
func (t *PathTracker) boundingBox() image.Rectangle {
	box := image.Rectangle{Min: t.points[0], Max: t.points[0].Add(image.Point{1, 1})}
	for _, p := range t.points[1:] {
		if p.X < box.Min.X {
			box.Min.X = p.X
		}
		if p.Y < box.Min.Y {
			box.Min.Y = p.Y
		}
		if p.X >= box.Max.X {
			box.Max.X = p.X + 1
		}
		if p.Y >= box.Max.Y {
			box.Max.Y = p.Y + 1
		}
	}
	return box
}

// drawLine draws an integer Bresenham segment.
func drawLine(img *image.RGBA, a, b image.Point, c color.RGBA) {
	dx := abs(b.X - a.X)
	dy := -abs(b.Y - a.Y)
	sx := 1
	if a.X > b.X {
		sx = -1
	}
	sy := 1
	if a.Y > b.Y {
		sy = -1
	}
	err := dx + dy
	x, y := a.X, a.Y
	for {
		img.SetRGBA(x, y, c)
		if x == b.X && y == b.Y {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x += sx
		}
		if e2 <= dx {
			err += dx
			y += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
