package scrollfx

// syntheticInput is one queued scroll or resize. Exactly one is consumed per
// Update, so a queue of N inputs plays back over N frames.
type syntheticInput struct {
	resize        bool
	scrollY       float64
	width, height float64
}

// InjectScroll queues a jump to vertical offset y for a later frame.
func (d *Document) InjectScroll(y float64) {
	d.injectQueue = append(d.injectQueue, syntheticInput{scrollY: y})
}

// InjectResize queues a viewport resize for a later frame.
func (d *Document) InjectResize(width, height float64) {
	d.injectQueue = append(d.injectQueue, syntheticInput{
		resize: true,
		width:  width, height: height,
	})
}

// InjectSmoothScroll queues a scroll from fromY to toY spread linearly over
// frames frames. Minimum frames is 1 (a single jump to toY).
func (d *Document) InjectSmoothScroll(fromY, toY float64, frames int) {
	if frames < 1 {
		frames = 1
	}
	for i := 1; i <= frames; i++ {
		t := float64(i) / float64(frames)
		d.InjectScroll(fromY + (toY-fromY)*t)
	}
}

// processInjectedInput pops and applies one queued input. Returns true if an
// input was consumed.
func (d *Document) processInjectedInput() bool {
	if len(d.injectQueue) == 0 {
		return false
	}
	in := d.injectQueue[0]
	copy(d.injectQueue, d.injectQueue[1:])
	d.injectQueue = d.injectQueue[:len(d.injectQueue)-1]

	if in.resize {
		d.Resize(in.width, in.height)
	} else {
		d.ScrollTo(in.scrollY)
	}
	return true
}
