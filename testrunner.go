package scrollfx

import (
	"encoding/json"
	"fmt"
)

// Script actions understood by LoadTestScript.
const (
	actionScroll       = "scroll"       // jump to y
	actionSmoothScroll = "smoothScroll" // fromY to toY over frames
	actionResize       = "resize"       // width x height
	actionWait         = "wait"         // hold for frames
	actionScreenshot   = "screenshot"   // capture with label
)

// scriptStep is one entry of a scroll script. Which fields are read depends
// on Action.
type scriptStep struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	Y      float64 `json:"y,omitempty"`
	FromY  float64 `json:"fromY,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
	Frames int     `json:"frames,omitempty"`
}

func (st scriptStep) validate() error {
	switch st.Action {
	case actionScroll, actionScreenshot:
	case actionSmoothScroll, actionWait:
		if st.Frames < 0 {
			return fmt.Errorf("%s: negative frames %d", st.Action, st.Frames)
		}
	case actionResize:
		if st.Width <= 0 || st.Height <= 0 {
			return fmt.Errorf("resize: invalid size %vx%v", st.Width, st.Height)
		}
	default:
		return fmt.Errorf("unknown action %q", st.Action)
	}
	return nil
}

// apply performs the step against d and returns how many further frames
// the runner must hold before the next step.
func (st scriptStep) apply(d *Document) int {
	switch st.Action {
	case actionScroll:
		d.InjectScroll(st.Y)
	case actionSmoothScroll:
		d.InjectSmoothScroll(st.FromY, st.ToY, st.Frames)
	case actionResize:
		d.InjectResize(st.Width, st.Height)
	case actionScreenshot:
		d.Screenshot(st.Label)
	case actionWait:
		if st.Frames > 1 {
			return st.Frames - 1
		}
	}
	return 0
}

// TestRunner replays a scroll script against a Document, one step per
// frame, so visual regressions of scroll effects can be captured
// unattended. Injected input from a step plays back in full before the
// next step starts.
type TestRunner struct {
	steps []scriptStep
	next  int
	hold  int
	done  bool
}

// LoadTestScript parses a JSON scroll script of the form
//
//	{"steps": [{"action": "scroll", "y": 1200}, {"action": "screenshot", "label": "mid"}]}
//
// Actions: "scroll" (y), "smoothScroll" (fromY, toY, frames), "resize"
// (width, height), "wait" (frames) and "screenshot" (label).
func LoadTestScript(data []byte) (*TestRunner, error) {
	var script struct {
		Steps []scriptStep `json:"steps"`
	}
	if err := json.Unmarshal(data, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: no steps")
	}
	for i, st := range script.Steps {
		if err := st.validate(); err != nil {
			return nil, fmt.Errorf("parse test script: step %d: %w", i, err)
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

// SetTestRunner attaches runner to the document; it advances at the start
// of every Update.
func (d *Document) SetTestRunner(runner *TestRunner) {
	d.testRunner = runner
}

// Done reports whether every step has run and its input has played back.
func (r *TestRunner) Done() bool {
	return r.done
}

// busy consumes this frame when injected input is still playing back or a
// wait is in progress.
func (r *TestRunner) busy(d *Document) bool {
	if len(d.injectQueue) > 0 {
		return true
	}
	if r.hold > 0 {
		r.hold--
		return true
	}
	return false
}

func (r *TestRunner) step(d *Document) {
	if r.done || r.busy(d) {
		return
	}
	if r.next < len(r.steps) {
		r.hold = r.steps[r.next].apply(d)
		r.next++
	}
	r.done = r.next == len(r.steps) && r.hold == 0 && len(d.injectQueue) == 0
}
