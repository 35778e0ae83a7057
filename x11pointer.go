package starvine

import (
	"fmt"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

// X11PointerSource reads the global cursor from the X11 root window. It lets
// the scene follow the pointer when running as a desktop background that
// never receives input events of its own.
type X11PointerSource struct {
	conn *xgb.Conn
	root xproto.Window

	// OriginX and OriginY are the canvas position on the root window.
	OriginX, OriginY int
}

// NewX11PointerSource connects to display. An empty display uses $DISPLAY.
func NewX11PointerSource(display string) (*X11PointerSource, error) {
	conn, err := xgb.NewConnDisplay(display)
	if err != nil {
		return nil, fmt.Errorf("x11 connect: %w", err)
	}
	setup := xproto.Setup(conn)
	return &X11PointerSource{conn: conn, root: setup.DefaultScreen(conn).Root}, nil
}

// Pointer queries the root window cursor and returns it relative to the
// canvas origin. It reports false when the query fails or the cursor is on
// another screen.
func (p *X11PointerSource) Pointer() (x, y float64, ok bool) {
	reply, err := xproto.QueryPointer(p.conn, p.root).Reply()
	if err != nil {
		logger.Debug("x11 query pointer", "err", err)
		return 0, 0, false
	}
	if !reply.SameScreen {
		return 0, 0, false
	}
	return float64(int(reply.RootX) - p.OriginX), float64(int(reply.RootY) - p.OriginY), true
}

// Close releases the X11 connection.
func (p *X11PointerSource) Close() {
	p.conn.Close()
}
