package bodypix

import (
	"math"
	"testing"
)

// float32Equal compares floats within epsilon
func float32Equal(a, b, epsilon float32) bool {
	diff := a - b
	return diff <= epsilon && diff >= -epsilon
}

func TestNewTensor(t *testing.T) {
	data := make([]float32, 2*3*4)

	tsr, err := NewTensor(2, 3, 4, data)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if tsr.Height != 2 || tsr.Width != 3 || tsr.Channels != 4 {
		t.Errorf("expected dimensions [2,3,4], got [%d,%d,%d]",
			tsr.Height, tsr.Width, tsr.Channels)
	}

	// short buffer must be rejected
	_, err = NewTensor(2, 3, 4, make([]float32, 23))

	if err == nil {
		t.Error("expected error for short data buffer, got nil")
	}
}

func TestTensorAt(t *testing.T) {
	// 2x2 grid with 3 channels, values encode position as y*100+x*10+c
	data := make([]float32, 2*2*3)

	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			for c := 0; c < 3; c++ {
				data[(y*2+x)*3+c] = float32(y*100 + x*10 + c)
			}
		}
	}

	tsr, err := NewTensor(2, 2, 3, data)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		y, x, c int
		want    float32
	}{
		{0, 0, 0, 0},
		{0, 1, 2, 12},
		{1, 0, 1, 101},
		{1, 1, 2, 112},
	}

	for _, tc := range tests {
		if got := tsr.At(tc.y, tc.x, tc.c); got != tc.want {
			t.Errorf("At(%d,%d,%d) = %v, want %v", tc.y, tc.x, tc.c, got, tc.want)
		}
	}
}

func TestNewMask(t *testing.T) {
	_, err := NewMask(4, 4, make([]uint8, 16))

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = NewMask(4, 4, make([]uint8, 15))

	if err == nil {
		t.Error("expected error for short mask buffer, got nil")
	}
}

func TestSigmoid(t *testing.T) {
	tests := []struct {
		in   float32
		want float32
	}{
		{0, 0.5},
		{10, 0.9999546},
		{-10, 0.0000454},
	}

	for _, tc := range tests {
		if got := Sigmoid(tc.in); !float32Equal(got, tc.want, 1e-5) {
			t.Errorf("Sigmoid(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}

	if got := Sigmoid(float32(math.Inf(-1))); got != 0 {
		t.Errorf("Sigmoid(-Inf) = %v, want 0", got)
	}
}

func TestMaskFromScores(t *testing.T) {
	scores, err := NewTensor(2, 2, 1, []float32{0.2, 0.7, 0.69, 0.71})

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mask, err := MaskFromScores(scores, 0.7)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// at or above the threshold is foreground
	want := []uint8{0, 1, 0, 1}

	for i, v := range want {
		if mask.Data[i] != v {
			t.Errorf("mask pixel %d = %d, want %d", i, mask.Data[i], v)
		}
	}

	// multi channel scores must be rejected
	multi, _ := NewTensor(2, 2, 2, make([]float32, 8))

	if _, err := MaskFromScores(multi, 0.5); err == nil {
		t.Error("expected error for multi channel scores, got nil")
	}
}

// zeroOutputs builds a zero filled output buffer set for a model with the
// given grid size and part count
func zeroOutputs(grid, numKeypoints int) *Outputs {

	tensor := func(c int) Tensor {
		t, _ := NewTensor(grid, grid, c, make([]float32, grid*grid*c))
		return t
	}

	out := &Outputs{
		Heatmap: tensor(numKeypoints),
		Offsets: tensor(2 * numKeypoints),
	}

	if numKeypoints > 1 {
		out.DisplacementsFwd = tensor(2 * (numKeypoints - 1))
		out.DisplacementsBwd = tensor(2 * (numKeypoints - 1))
	}

	return out
}

func TestOutputsValidate(t *testing.T) {
	out := zeroOutputs(33, NumKeypoints)

	if err := out.Validate(NumKeypoints); err != nil {
		t.Errorf("unexpected error for valid outputs: %v", err)
	}

	// wrong offset channel count
	bad := zeroOutputs(33, NumKeypoints)
	bad.Offsets, _ = NewTensor(33, 33, 3, make([]float32, 33*33*3))

	if err := bad.Validate(NumKeypoints); err == nil {
		t.Error("expected error for wrong offset channels, got nil")
	}

	// grid size mismatch against the heatmap
	bad = zeroOutputs(33, NumKeypoints)
	bad.DisplacementsFwd, _ = NewTensor(17, 17, 32, make([]float32, 17*17*32))

	if err := bad.Validate(NumKeypoints); err == nil {
		t.Error("expected error for mismatched displacement grid, got nil")
	}

	// single part model carries no displacement buffers
	single := zeroOutputs(3, 1)

	if err := single.Validate(1); err != nil {
		t.Errorf("unexpected error for single part outputs: %v", err)
	}

	// long offset channels are checked against the model's part count,
	// not the COCO default
	single = zeroOutputs(3, 1)
	single.LongOffsets, _ = NewTensor(3, 3, 2, make([]float32, 3*3*2))

	if err := single.Validate(1); err != nil {
		t.Errorf("unexpected error for single part long offsets: %v", err)
	}

	single.LongOffsets, _ = NewTensor(3, 3, 4, make([]float32, 3*3*4))

	if err := single.Validate(1); err == nil {
		t.Error("expected error for wrong long offset channels, got nil")
	}
}
