package viewer

import (
	"image"
	"image/color"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chosenoffset.com/facing/internal/config"
	"chosenoffset.com/facing/internal/core/scene"
	"chosenoffset.com/facing/internal/render"
	"chosenoffset.com/facing/internal/render/plot"
)

type fakeInput struct {
	held    map[render.Key]bool
	pressed map[render.Key]bool
	x, y    int
}

func newInput() *fakeInput {
	return &fakeInput{held: map[render.Key]bool{}, pressed: map[render.Key]bool{}}
}

func (f *fakeInput) IsKeyPressed(key render.Key) bool     { return f.held[key] }
func (f *fakeInput) IsKeyJustPressed(key render.Key) bool { return f.pressed[key] }
func (f *fakeInput) GetCursorPosition() (int, int)        { return f.x, f.y }

// tap presses key for exactly one frame.
func (f *fakeInput) tap(t *testing.T, v *Viewer, key render.Key) error {
	t.Helper()
	f.pressed[key] = true
	defer delete(f.pressed, key)
	return v.Update()
}

type textRenderer struct {
	texts []string
}

type blank struct{}

func (blank) Bounds() image.Rectangle { return image.Rect(0, 0, 800, 600) }
func (blank) Size() (int, int)        { return 800, 600 }
func (blank) Fill(color.Color)        {}
func (blank) Clear()                  {}
func (blank) Dispose()                {}

func (r *textRenderer) NewImage(int, int) render.Image { return blank{} }

func (r *textRenderer) StrokeLine(render.Image, float32, float32, float32, float32, float32, color.Color) {}

func (r *textRenderer) FillCircle(render.Image, float32, float32, float32, color.Color) {}

func (r *textRenderer) StrokeCircle(render.Image, float32, float32, float32, float32, color.Color) {}

func (r *textRenderer) DrawText(_ render.Image, text string, _, _ int, _ color.Color, _ float64) {
	r.texts = append(r.texts, text)
}

func (r *textRenderer) MeasureText(text string, _ float64) (int, int) { return 7 * len(text), 13 }

func newViewer(t *testing.T) (*Viewer, *fakeInput, *textRenderer) {
	logger, _ := test.NewNullLogger()
	report, err := scene.NewAnalyzer(logger).Analyze(scene.Sample())
	require.NoError(t, err)

	in := newInput()
	r := &textRenderer{}
	fig := plot.NewFigure(report, config.DefaultConfig().Plot)
	return New(fig, r, in, logger), in, r
}

func TestViewer_Toggles(t *testing.T) {
	v, in, _ := newViewer(t)
	require.True(t, v.Figure.ShowNormals)
	require.True(t, v.Figure.Grid)

	require.NoError(t, in.tap(t, v, render.KeyN))
	assert.False(t, v.Figure.ShowNormals)
	require.Len(t, v.Messages, 1)
	assert.Equal(t, "Normals hidden", v.Messages[0].Text)

	require.NoError(t, in.tap(t, v, render.KeyN))
	assert.True(t, v.Figure.ShowNormals)

	require.NoError(t, in.tap(t, v, render.KeyG))
	assert.False(t, v.Figure.Grid)
}

func TestViewer_Navigation(t *testing.T) {
	v, in, _ := newViewer(t)
	home := v.Figure.View

	in.held[render.KeyRight] = true
	for i := 0; i < 10; i++ {
		require.NoError(t, v.Update())
	}
	delete(in.held, render.KeyRight)
	assert.InDelta(t, home.XMin+2, v.Figure.View.XMin, 1e-9)

	require.NoError(t, in.tap(t, v, render.KeyMinus))
	assert.InDelta(t, 25, v.Figure.View.XMax-v.Figure.View.XMin, 1e-9)

	require.NoError(t, in.tap(t, v, render.KeyR))
	assert.Equal(t, home, v.Figure.View)
}

func TestViewer_Quit(t *testing.T) {
	v, in, _ := newViewer(t)
	assert.ErrorIs(t, in.tap(t, v, render.KeyEscape), render.ErrQuit)
}

func TestViewer_Messages(t *testing.T) {
	v, _, _ := newViewer(t)
	v.ShowMessage("hello")
	for i := 0; i < 170; i++ {
		require.NoError(t, v.Update())
	}
	assert.Len(t, v.Messages, 1)
	for i := 0; i < 20; i++ {
		require.NoError(t, v.Update())
	}
	assert.Empty(t, v.Messages)
}

func TestViewer_Draw(t *testing.T) {
	v, in, r := newViewer(t)
	in.x, in.y = 400, 300
	v.ShowMessage("hello")

	v.Draw(blank{})
	assert.Contains(t, r.texts, "LINES DO NOT INTERSECT")
	assert.Contains(t, r.texts, "(0.00, 5.00)")
	assert.Equal(t, "hello", r.texts[len(r.texts)-1])

	w, h := v.Layout(1024, 768)
	assert.Equal(t, 800, w)
	assert.Equal(t, 600, h)
}
