// Package ebitenxr runs a tetraxr.Runtime inside an ebiten game loop: every ebiten update ticks the Runtime,
// and every draw prints the loaded scene hierarchy as a debug overlay.
package ebitenxr

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/solarlune/tetraxr"
	"golang.org/x/image/font/basicfont"
)

// Game implements ebiten.Game over a tetraxr.Runtime.
type Game struct {
	Runtime       *tetraxr.Runtime
	Width, Height int

	DrawDebugText bool
	MoveSpeed     float64 // How far the arrow keys move the playspace each tick, in world units.
	TeleportStep  float64 // How far a teleport (Space) moves the playspace forward, in world units.

	face *text.GoXFace
}

// NewGame creates a new Game of the screen size given. The Runtime should already be initialized.
func NewGame(runtime *tetraxr.Runtime, width, height int) *Game {
	return &Game{
		Runtime:       runtime,
		Width:         width,
		Height:        height,
		DrawDebugText: true,
		MoveSpeed:     0.1,
		TeleportStep:  5,
		face:          text.NewGoXFace(basicfont.Face7x13),
	}
}

// Update handles input and then ticks the Runtime once.
func (g *Game) Update() error {

	if ebiten.IsKeyPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		g.DrawDebugText = !g.DrawDebugText
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyF4) {
		ebiten.SetFullscreen(!ebiten.IsFullscreen())
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Runtime.Reset()
	}

	playspace := g.Runtime.Playspace

	move := tetraxr.NewVectorZero()

	if ebiten.IsKeyPressed(ebiten.KeyLeft) {
		move.X -= g.MoveSpeed
	}

	if ebiten.IsKeyPressed(ebiten.KeyRight) {
		move.X += g.MoveSpeed
	}

	if ebiten.IsKeyPressed(ebiten.KeyUp) {
		move.Z -= g.MoveSpeed
	}

	if ebiten.IsKeyPressed(ebiten.KeyDown) {
		move.Z += g.MoveSpeed
	}

	if !move.IsZero() && !g.Runtime.Teleporter.Busy() {
		playspace.SetPosition(playspace.Position().Add(move))
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		playspace.RotateAround(playspace.Position(), tetraxr.VecY, 0.25)
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyE) {
		playspace.RotateAround(playspace.Position(), tetraxr.VecY, -0.25)
	}

	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		forward := playspace.TransformDirection(tetraxr.NewVector(0, 0, -1))
		g.Runtime.TeleportTo(playspace.Position().Add(forward.Scale(g.TeleportStep)))
	}

	g.Runtime.Tick(1 / float64(ebiten.TPS()))

	return nil

}

// Draw clears the screen and, if DrawDebugText is set, prints the loaded scene hierarchy over it.
func (g *Game) Draw(screen *ebiten.Image) {

	screen.Fill(color.RGBA{20, 25, 30, 255})

	if !g.DrawDebugText {
		return
	}

	txt := "F1: toggle this text  Arrows: move  Q/E: turn  Space: teleport  R: reset  ESC: quit\n"
	txt += "Playspace: " + g.Runtime.Playspace.Position().String()
	if g.Runtime.Teleporter.Busy() {
		txt += " (teleporting)"
	}
	txt += "\n\n" + g.Runtime.HierarchyAsString()

	opts := &text.DrawOptions{}
	opts.GeoM.Translate(8, 8)
	opts.LineSpacing = 16
	opts.ColorScale.ScaleWithColor(color.RGBA{220, 220, 220, 255})
	text.Draw(screen, txt, g.face, opts)

}

// Layout returns the Game's fixed screen size.
func (g *Game) Layout(w, h int) (int, int) {
	return g.Width, g.Height
}
