//go:build js && wasm

package canvas

import (
	"context"
	"syscall/js"
)

// AnimationFrame schedules frames with window.requestAnimationFrame. The
// next frame is requested only once the current step has returned.
type AnimationFrame struct {
	window js.Value
}

// NewAnimationFrame returns the browser frame scheduler.
func NewAnimationFrame() *AnimationFrame {
	return &AnimationFrame{window: js.Global()}
}

// Run blocks until ctx is done, leaving the browser event loop free to
// deliver frames and input events in between.
func (a *AnimationFrame) Run(ctx context.Context, step func()) error {
	var cb js.Func
	cb = js.FuncOf(func(this js.Value, args []js.Value) any {
		if ctx.Err() != nil {
			return nil
		}
		step()
		a.window.Call("requestAnimationFrame", cb)
		return nil
	})
	defer cb.Release()

	a.window.Call("requestAnimationFrame", cb)
	<-ctx.Done()
	return ctx.Err()
}
