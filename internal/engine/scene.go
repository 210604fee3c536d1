package engine

// SceneTree owns the root window and everything attached below it.
type SceneTree struct {
	root *Window
}

// NewSceneTree creates a tree whose root window renders at width x height.
func NewSceneTree(width, height int) *SceneTree {
	return &SceneTree{root: NewWindow(width, height)}
}

// Root returns the root window.
func (t *SceneTree) Root() *Window {
	return t.root
}

// Window is the root node. It owns the main viewport.
type Window struct {
	NodeBase
	viewport *Viewport
}

// NewWindow creates a root window with a viewport of the given size.
func NewWindow(width, height int) *Window {
	w := &Window{viewport: &Viewport{width: width, height: height}}
	w.init(w, "root")
	return w
}

// Viewport returns the window's viewport.
func (w *Window) Viewport() *Viewport {
	return w.viewport
}

// Viewport is a render target. Its texture holds the most recent frame.
type Viewport struct {
	width, height int
	texture       ViewportTexture
}

// Size returns the configured render size.
func (v *Viewport) Size() (width, height int) {
	return v.width, v.height
}

// SetSize changes the render size. The current frame keeps its old size
// until the next render.
func (v *Viewport) SetSize(width, height int) {
	v.width, v.height = width, height
}

// Texture returns the viewport's output texture.
func (v *Viewport) Texture() *ViewportTexture {
	return &v.texture
}

// ViewportTexture exposes the last rendered frame as an Image.
type ViewportTexture struct {
	image *Image
}

// Image returns the last rendered frame, or nil before the first frame.
func (t *ViewportTexture) Image() *Image {
	return t.image
}

// SetImage replaces the rendered frame. Called by the backend after drawing.
func (t *ViewportTexture) SetImage(img *Image) {
	t.image = img
}
