package layoutmodel

import (
	"context"
	"fmt"

	ort "github.com/yalue/onnxruntime_go"
)

// ONNXBackend runs the detector through a loaded ONNX Runtime session.
// No working onnxruntime_go call site exists anywhere in this
// project's reference corpus (the dependency appears only in other
// projects' go.mod files, never imported) — this file is written
// directly from the library's published API rather than adapted from
// an example, and is flagged as such rather than implied otherwise.
type ONNXBackend struct {
	session    *ort.AdvancedSession
	input      *ort.Tensor[float32]
	output     *ort.Tensor[float32]
	resolution InputResolution
}

// ONNXBackendConfig names the exported input/output tensors of the
// detector graph and the model file to load.
type ONNXBackendConfig struct {
	ModelPath   string
	InputName   string
	OutputName  string
	Resolution  InputResolution
}

// NewONNXBackend initializes the ONNX Runtime environment (a process-
// wide singleton — safe to call once per process) and loads cfg's
// model into a session bound to a fixed input/output tensor pair
// sized for one CHW-preprocessed page at a time.
func NewONNXBackend(cfg ONNXBackendConfig) (*ONNXBackend, error) {
	if err := ort.InitializeEnvironment(); err != nil {
		return nil, fmt.Errorf("initializing onnxruntime environment: %w", err)
	}

	res := cfg.Resolution
	if res == 0 {
		res = Resolution640
	}
	inputShape := ort.NewShape(1, 3, int64(res), int64(res))
	input, err := ort.NewEmptyTensor[float32](inputShape)
	if err != nil {
		return nil, fmt.Errorf("allocating input tensor: %w", err)
	}

	outputShape := ort.NewShape(1, int64(NumQueries), int64(NumClasses+4))
	output, err := ort.NewEmptyTensor[float32](outputShape)
	if err != nil {
		input.Destroy()
		return nil, fmt.Errorf("allocating output tensor: %w", err)
	}

	session, err := ort.NewAdvancedSession(cfg.ModelPath,
		[]string{cfg.InputName}, []string{cfg.OutputName},
		[]ort.ArbitraryTensor{input}, []ort.ArbitraryTensor{output}, nil)
	if err != nil {
		input.Destroy()
		output.Destroy()
		return nil, fmt.Errorf("creating onnxruntime session: %w", err)
	}

	return &ONNXBackend{session: session, input: input, output: output, resolution: res}, nil
}

func (b *ONNXBackend) Resolution() InputResolution { return b.resolution }

// Close releases the session and its bound tensors.
func (b *ONNXBackend) Close() error {
	var err error
	if b.session != nil {
		err = b.session.Destroy()
	}
	if b.input != nil {
		b.input.Destroy()
	}
	if b.output != nil {
		b.output.Destroy()
	}
	return err
}

// Infer copies tensor into the bound input, runs the graph, and
// unpacks the [NumQueries][NumClasses+4] output into raw Detections
// (first NumClasses entries are per-class logits, last 4 are the
// cx,cy,w,h box, both left for Postprocess to sigmoid/decode).
func (b *ONNXBackend) Infer(ctx context.Context, tensor []float32) ([]Detection, error) {
	copy(b.input.GetData(), tensor)

	if err := b.session.Run(); err != nil {
		return nil, fmt.Errorf("running onnxruntime session: %w", err)
	}

	data := b.output.GetData()
	stride := NumClasses + 4
	out := make([]Detection, 0, NumQueries*NumClasses)
	for q := 0; q < NumQueries; q++ {
		base := q * stride
		if base+stride > len(data) {
			break
		}
		cx, cy, w, h := data[base+NumClasses], data[base+NumClasses+1], data[base+NumClasses+2], data[base+NumClasses+3]
		for c := 0; c < NumClasses; c++ {
			out = append(out, Detection{
				ClassIndex: c,
				Score:      float64(data[base+c]),
				CX:         float64(cx), CY: float64(cy), W: float64(w), H: float64(h),
			})
		}
	}
	return out, nil
}
