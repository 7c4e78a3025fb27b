package scrollfx

import (
	"fmt"
	"sort"

	"github.com/tanema/gween/ease"
)

// Built-in effect names.
const (
	EffectParallax   = "parallax"
	EffectToggle     = "toggle"
	EffectTranslateX = "translateX"
	EffectFade       = "fade"
)

func registerBuiltins(r *Registry) {
	r.Register(EffectParallax, Parallax)
	r.Register(EffectToggle, Toggle)
	r.Register(EffectTranslateX, TranslateX)
	r.Register(EffectFade, Fade)
}

// ParallaxOptions configures Parallax. Speed, when set, scales the absolute
// pixel offset; otherwise Range is the total vertical travel in pixels over
// progress 0..1. The zero value produces no movement.
type ParallaxOptions struct {
	Speed *float64
	Range float64
}

// Speed returns a pointer to v, for ParallaxOptions.Speed.
func Speed(v float64) *float64 { return &v }

// Parallax shifts the surface vertically by a fraction of its scroll travel.
// opts must be a ParallaxOptions or *ParallaxOptions.
func Parallax(s *Snapshot, opts any) {
	var o ParallaxOptions
	switch v := opts.(type) {
	case ParallaxOptions:
		o = v
	case *ParallaxOptions:
		if v != nil {
			o = *v
		}
	default:
		ignoredOptions(EffectParallax, opts)
	}

	var offset float64
	if o.Speed != nil {
		offset = s.Absolute * *o.Speed
	} else {
		offset = s.Progress * o.Range
	}
	s.Surface.SetTranslate(0, offset)
}

// ToggleOptions maps a progress threshold to a class name. The class is
// present while progress is strictly greater than its threshold.
type ToggleOptions map[float64]string

// Toggle adds or removes classes on the surface as progress crosses
// thresholds. Thresholds are applied in ascending order, so when two share a
// class the higher threshold decides. opts may be a ToggleOptions, a
// *ToggleOptions or a plain map[float64]string.
func Toggle(s *Snapshot, opts any) {
	var o ToggleOptions
	switch v := opts.(type) {
	case ToggleOptions:
		o = v
	case *ToggleOptions:
		if v != nil {
			o = *v
		}
	case map[float64]string:
		o = v
	default:
		ignoredOptions(EffectToggle, opts)
	}
	if len(o) == 0 {
		return
	}
	thresholds := make([]float64, 0, len(o))
	for t := range o {
		thresholds = append(thresholds, t)
	}
	sort.Float64s(thresholds)

	for _, t := range thresholds {
		if s.Progress > t {
			s.Surface.AddClass(o[t])
		} else {
			s.Surface.RemoveClass(o[t])
		}
	}
}

// defaultTranslateDistance is the horizontal travel used when
// TranslateXOptions.Distance is zero.
const defaultTranslateDistance = 500

// TranslateXOptions configures TranslateX. Zero fields take the defaults:
// 500 pixels of travel eased with ease.InQuad.
type TranslateXOptions struct {
	Distance float64
	Ease     ease.TweenFunc
}

// TranslateX slides the surface horizontally, easing progress 0..1 onto
// 0..Distance.
func TranslateX(s *Snapshot, opts any) {
	var o TranslateXOptions
	switch v := opts.(type) {
	case TranslateXOptions:
		o = v
	case *TranslateXOptions:
		if v != nil {
			o = *v
		}
	default:
		ignoredOptions(EffectTranslateX, opts)
	}
	if o.Distance == 0 {
		o.Distance = defaultTranslateDistance
	}
	if o.Ease == nil {
		o.Ease = ease.InQuad
	}

	x := o.Ease(float32(s.Progress*100), 0, float32(o.Distance), 100)
	s.Surface.SetTranslate(float64(x), 0)
}

// FadeOptions configures Fade: alpha goes from From at progress 0 to To at
// progress 1, holding the end values outside that range. The zero value
// fades in, from 0 to 1.
type FadeOptions struct {
	From, To float64
}

// Fade interpolates the surface's alpha with progress.
func Fade(s *Snapshot, opts any) {
	var o FadeOptions
	switch v := opts.(type) {
	case FadeOptions:
		o = v
	case *FadeOptions:
		if v != nil {
			o = *v
		}
	default:
		ignoredOptions(EffectFade, opts)
	}
	if o == (FadeOptions{}) {
		o.To = 1
	}
	t := clamp01(s.Progress)
	s.Surface.SetAlpha(o.From + (o.To-o.From)*t)
}

// ignoredOptions reports an options value a built-in effect cannot read. The
// effect then runs with its zero options. nil is the documented way to ask
// for the defaults and is not reported.
func ignoredOptions(effect string, opts any) {
	if opts == nil {
		return
	}
	Logger().Debug("effect options ignored", "effect", effect, "type", fmt.Sprintf("%T", opts))
}
