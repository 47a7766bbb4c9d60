// Package baseview opens native windows suitable for embedding inside a host
// application, such as a plugin editor living inside a host-owned parent
// window.
//
// A window is opened with a handler that receives normalized input events and
// a steady frame tick:
//
//	err := baseview.OpenBlocking(baseview.WindowOpenOptions{
//		Title: "editor",
//		Size:  dpi.NewSize(800, 600),
//		Scale: baseview.SystemScaleFactor(),
//	}, func(w *baseview.Window) baseview.WindowHandler {
//		return &editor{}
//	})
//
// All handler callbacks run on the window's own run loop. OpenParented
// returns a WindowHandle that may close or resize the window from any
// goroutine; the handler side uses the *Window passed to its callbacks.
//
// Closing is a two phase protocol: a close request from either side is
// latched and the teardown runs on the run loop, delivering one final
// WindowWillClose event before native resources are released.
package baseview
