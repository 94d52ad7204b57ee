//go:build js && wasm

package main

import (
	"context"
	"encoding/binary"
	"math"
	"sync"
	"syscall/js"

	"github.com/cwbudde/algo-fart/fart"
	"github.com/cwbudde/algo-fart/internal/webdemo"
	"github.com/cwbudde/algo-fart/playback"
)

var (
	audioCtx js.Value
	engine   *webdemo.Engine
	player   *playback.Assembler
	funcs    []js.Func
)

func main() {
	api := js.Global().Get("Object").New()

	api.Set("init", export(func(args []js.Value) any {
		ctor := js.Global().Get("AudioContext")
		if ctor.IsUndefined() {
			ctor = js.Global().Get("webkitAudioContext")
		}
		audioCtx = ctor.New()

		var seed int64
		if len(args) > 0 && args[0].Type() == js.TypeNumber {
			seed = int64(args[0].Float())
		}
		e, err := webdemo.NewEngine(audioCtx.Get("sampleRate").Float(), seed)
		if err != nil {
			return err.Error()
		}
		engine = e
		player = playback.NewAssembler(webAudioHost{})
		return js.Null()
	}))

	api.Set("presets", export(func([]js.Value) any {
		kinds := fart.Presets()
		out := make([]any, len(kinds))
		for i, k := range kinds {
			out[i] = string(k)
		}
		return js.ValueOf(out)
	}))

	// play(preset?, params?) schedules one sound now. Returns an error
	// string or null.
	api.Set("play", export(func(args []js.Value) any {
		if engine == nil {
			return "not initialised"
		}
		if audioCtx.Get("state").String() == "suspended" {
			audioCtx.Call("resume")
		}

		ctx := context.Background()
		sound, err := engine.Sound(ctx, request(args), audioCtx.Get("currentTime").Float())
		if err != nil {
			return err.Error()
		}
		if _, err := player.Play(ctx, sound); err != nil {
			return err.Error()
		}
		return js.Null()
	}))

	// render(preset?, params?) returns the offline rendering as a
	// Float32Array.
	api.Set("render", export(func(args []js.Value) any {
		if engine == nil {
			return js.Global().Get("Float32Array").New(0)
		}
		out, err := engine.Render(context.Background(), request(args))
		if err != nil {
			return err.Error()
		}
		return float32Array(out)
	}))

	api.Set("responseCurve", export(func(args []js.Value) any {
		if engine == nil || len(args) < 2 {
			return js.Global().Get("Float32Array").New(0)
		}
		input := args[1]
		freqs := make([]float64, input.Length())
		for i := range freqs {
			freqs[i] = input.Index(i).Float()
		}
		return float32Array(engine.ResponseCurveDB(args[0].Float(), freqs))
	}))

	js.Global().Set("AlgoFart", api)
	select {}
}

func request(args []js.Value) webdemo.Request {
	var req webdemo.Request
	if len(args) > 0 && args[0].Type() == js.TypeString {
		req.Preset = args[0].String()
	}
	if len(args) > 1 && args[1].Type() == js.TypeObject {
		req.Params = map[string]float64{}
		for _, name := range fart.ParamNames() {
			if v := args[1].Get(name); v.Type() == js.TypeNumber {
				req.Params[name] = v.Float()
			}
		}
	}
	return req
}

// webAudioHost plays sounds on the shared AudioContext.
type webAudioHost struct{}

func (webAudioHost) Start(_ context.Context, sound *fart.Sound, onEnded func()) (playback.Handle, error) {
	plan := webdemo.BuildPlan(sound)

	buf := audioCtx.Call("createBuffer", 1, len(sound.Noise), sound.SampleRate)
	copyFloat32(buf.Call("getChannelData", 0), sound.Noise)

	src := audioCtx.Call("createBufferSource")
	src.Set("buffer", buf)

	band := newFilter(plan.Band)
	peak := newFilter(plan.Peak)
	gain := audioCtx.Call("createGain")
	gain.Get("gain").Set("value", 0)

	src.Call("connect", band)
	band.Call("connect", peak)
	peak.Call("connect", gain)
	gain.Call("connect", audioCtx.Get("destination"))

	schedule(gain.Get("gain"), plan.Gain)
	schedule(band.Get("frequency"), plan.Frequency)

	v := &webVoice{nodes: []js.Value{src, band, peak, gain}}
	v.onEnded = js.FuncOf(func(js.Value, []js.Value) any {
		onEnded()
		return nil
	})
	src.Set("onended", v.onEnded)

	src.Call("start", plan.StartAt)
	src.Call("stop", plan.StopAt)
	return v, nil
}

func newFilter(spec webdemo.FilterSpec) js.Value {
	f := audioCtx.Call("createBiquadFilter")
	f.Set("type", spec.Type)
	f.Get("frequency").Set("value", spec.Frequency)
	f.Get("Q").Set("value", spec.Q)
	f.Get("gain").Set("value", spec.GainDB)
	return f
}

func schedule(param js.Value, autos []webdemo.Automation) {
	for _, a := range autos {
		param.Call(a.Method, a.Value, a.Time)
	}
}

type webVoice struct {
	nodes   []js.Value
	onEnded js.Func
	once    sync.Once
}

func (v *webVoice) Release() error {
	v.once.Do(func() {
		v.nodes[0].Set("onended", js.Null())
		for _, n := range v.nodes {
			n.Call("disconnect")
		}
		v.onEnded.Release()
	})
	return nil
}

// copyFloat32 writes samples into a Float32Array through its byte view.
func copyFloat32(dst js.Value, samples []float64) {
	raw := make([]byte, 4*len(samples))
	for i, x := range samples {
		binary.LittleEndian.PutUint32(raw[4*i:], math.Float32bits(float32(x)))
	}
	view := js.Global().Get("Uint8Array").New(dst.Get("buffer"), dst.Get("byteOffset"), dst.Get("byteLength"))
	js.CopyBytesToJS(view, raw)
}

func float32Array(samples []float64) js.Value {
	arr := js.Global().Get("Float32Array").New(len(samples))
	copyFloat32(arr, samples)
	return arr
}

func export(fn func([]js.Value) any) js.Func {
	f := js.FuncOf(func(_ js.Value, args []js.Value) any {
		return fn(args)
	})
	funcs = append(funcs, f)
	return f
}
