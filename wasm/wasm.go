//go:build js && wasm

package main

import (
	"context"
	"log"
	"net/url"
	"syscall/js"

	"github.com/esimov/particle-field/config"
	"github.com/esimov/particle-field/loop"
	"github.com/esimov/particle-field/wasm/canvas"
)

func main() {
	tun, err := config.Preset(presetName())
	if err != nil {
		log.Println(err)
		tun, _ = config.Preset("constellation")
	}

	c := canvas.NewCanvas()
	defer c.Release()

	d := loop.NewDriver(tun)
	d.Resize(c.Size())
	c.OnPointer(d.PointerMove, d.PointerLeave)
	c.OnResize(d.Resize)

	sched := canvas.NewAnimationFrame()
	err = sched.Run(context.Background(), func() {
		d.SetTheme(c.Theme())
		if f := d.Step(); f != nil {
			c.Draw(f)
		}
	})
	if err != nil {
		c.Alert(err.Error())
	}
}

// presetName reads the ?preset= query parameter of the page.
func presetName() string {
	href := js.Global().Get("location").Get("href")
	u, err := url.Parse(href.String())
	if err != nil {
		return "constellation"
	}
	if p := u.Query().Get("preset"); p != "" {
		return p
	}
	return "constellation"
}
