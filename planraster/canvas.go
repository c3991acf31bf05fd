package planraster

import (
	"image"
	"image/color"

	"github.com/benoitkugler/roomplanner/plan"
)

// Canvas exposes a plan as a drawing surface, whose
// snapshot is rendered with a Renderer.
type Canvas struct {
	plan *plan.Plan
}

// NewCanvas wraps `p`, which is modified by SetBackground.
func NewCanvas(p *plan.Plan) *Canvas { return &Canvas{plan: p} }

// Valid returns false for a nil canvas or a canvas without plan.
func (c *Canvas) Valid() bool { return c != nil && c.plan != nil }

func (c *Canvas) Size() (width, height int) { return c.plan.Width, c.plan.Height }

func (c *Canvas) SetBackground(col color.Color) { c.plan.Background = col }

func (c *Canvas) Objects() []plan.Object { return c.plan.Objects }

// Snapshot renders the current content of the plan.
func (c *Canvas) Snapshot() (image.Image, error) { return RenderPlan(c.plan) }
