package render

// Camera translates between map cells and screen coordinates. Rooms sit
// on even cells and the corridors between them on odd ones, so room (x, y)
// is cell (2x, 2y). Each cell is 2 terminal columns wide because emoji
// occupy 2 columns.
type Camera struct {
	OffsetX    int
	OffsetY    int
	ViewWidth  int // in terminal columns
	ViewHeight int // in terminal rows
}

// NewCamera creates a camera centered on cell (cx, cy).
func NewCamera(cx, cy, viewW, viewH int) *Camera {
	c := &Camera{ViewWidth: viewW, ViewHeight: viewH}
	c.Center(cx, cy)
	return c
}

// Center repositions the camera so that cell (cx, cy) is in the middle.
func (c *Camera) Center(cx, cy int) {
	c.OffsetX = cx - (c.ViewWidth/2)/2
	c.OffsetY = cy - c.ViewHeight/2
}

// CenterRoom centers on the room at map position (x, y).
func (c *Camera) CenterRoom(x, y int) { c.Center(x*2, y*2) }

// CellToScreen converts cell (cx, cy) to screen (sx, sy).
// visible is false when the result falls outside the viewport.
func (c *Camera) CellToScreen(cx, cy int) (sx, sy int, visible bool) {
	sx = (cx - c.OffsetX) * 2
	sy = cy - c.OffsetY
	visible = sx >= 0 && sx+1 < c.ViewWidth && sy >= 0 && sy < c.ViewHeight
	return
}

// RoomToScreen converts a room's map position to screen coordinates.
func (c *Camera) RoomToScreen(x, y int) (int, int, bool) {
	return c.CellToScreen(x*2, y*2)
}
