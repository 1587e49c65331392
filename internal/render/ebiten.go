package render

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Garsondee/agentview/internal/scene"
)

// ScreenCanvas draws onto an ebiten image from a sprite sheet.
type ScreenCanvas struct {
	Screen *ebiten.Image
	Sheet  *ebiten.Image
}

// NewSheet uploads an atlas image to the GPU.
func NewSheet(a *Atlas) *ebiten.Image {
	return ebiten.NewImageFromImage(a.Image)
}

func (c ScreenCanvas) DrawSprite(_ scene.Visual, src, dst image.Rectangle) {
	if src.Empty() || dst.Empty() {
		return
	}
	sub := c.Sheet.SubImage(src).(*ebiten.Image)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(dst.Dx())/float64(src.Dx()), float64(dst.Dy())/float64(src.Dy()))
	op.GeoM.Translate(float64(dst.Min.X), float64(dst.Min.Y))
	c.Screen.DrawImage(sub, op)
}

func (c ScreenCanvas) FillRect(dst image.Rectangle, col color.RGBA) {
	vector.FillRect(c.Screen, float32(dst.Min.X), float32(dst.Min.Y), float32(dst.Dx()), float32(dst.Dy()), col, false)
}
