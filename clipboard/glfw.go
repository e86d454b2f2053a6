//go:build cgo

package clipboard

import (
	"fmt"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/iw2rmb/inputkit/editor"
)

var _ editor.Clipboard = GLFW{}

// GLFW is the clipboard of a GLFW window. It must be used from the thread
// that runs the GLFW event loop.
type GLFW struct {
	Window *glfw.Window
}

func (c GLFW) ReadText() (s string, err error) {
	if c.Window == nil {
		return "", ErrUnsupported
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("clipboard: glfw read: %v", r)
		}
	}()
	return c.Window.GetClipboardString(), nil
}

func (c GLFW) WriteText(s string) (err error) {
	if c.Window == nil {
		return ErrUnsupported
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("clipboard: glfw write: %v", r)
		}
	}()
	c.Window.SetClipboardString(s)
	return nil
}
