// Package scrollfx drives scroll-linked effects on 2D surfaces rendered with
// [Ebitengine].
//
// A [Document] is a tree of rectangular [Surface] values viewed through a
// vertically scrolling [Camera]. An [Engine] tracks one surface: every time
// the document scrolls it books a recomputation for the next frame, maps the
// scroll position to a progress value, and runs the effects attached to it.
//
// # Quick start
//
//	doc := scrollfx.NewDocument(640, 480)
//	doc.SetContentSize(640, 3000)
//
//	banner := scrollfx.NewSurface("banner", 0, 1200, 640, 200)
//	doc.Root().AddChild(banner)
//
//	scrollfx.New(doc, "banner").
//		Use(scrollfx.EffectParallax, scrollfx.ParallaxOptions{Speed: scrollfx.Speed(-0.3)}).
//		Use(scrollfx.EffectToggle, scrollfx.ToggleOptions{0.5: "past-half"})
//
//	scrollfx.Run(doc, scrollfx.RunConfig{Title: "demo", Width: 640, Height: 480})
//
// # Progress
//
// Progress is 0 when the surface's top edge first touches the bottom of the
// viewport and 1 when its bottom edge leaves the top. It is not clamped, so
// effects can extrapolate. Recomputation is skipped entirely while the
// surface is out of view.
//
// # Frames
//
// Scroll notifications are coalesced: however many arrive between two
// frames, the engine recomputes once, with the latest scroll offset. A
// [Document] grants frames from [Document.Update]; any other loop can act as
// a [Host] by implementing [FrameRequester] and friends. See the tcellhost
// package for a terminal host.
//
// # Effects
//
// Effects are plain functions receiving the frame's [Snapshot] and the
// options they were bound with. Named effects live in a [Registry]; names are
// resolved when [Engine.Use] is called, and an unknown name is reported by
// [Engine.Err] as [ErrUnknownEffect].
//
// [Ebitengine]: https://ebitengine.org
package scrollfx
