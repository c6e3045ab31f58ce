package bodypix

import (
	"encoding/binary"
	"fmt"
	"math"
	"os"
)

// DumpType is the element type of a raw tensor dump file
type DumpType int

const (
	// DumpFloat32 is little-endian IEEE 754 32 bit floats
	DumpFloat32 DumpType = iota
	// DumpFloat16 is little-endian IEEE 754 half precision floats
	DumpFloat16
)

// LoadTensorDump reads a flat binary tensor dump file written by the
// inference runtime and returns the values as float32.  Half precision
// values are converted through the precomputed lookup table.
func LoadTensorDump(file string, typ DumpType) ([]float32, error) {

	raw, err := os.ReadFile(file)

	if err != nil {
		return nil, fmt.Errorf("error reading tensor dump: %w", err)
	}

	switch typ {
	case DumpFloat32:
		if len(raw)%4 != 0 {
			return nil, fmt.Errorf("float32 dump %s has length %d, not a multiple of 4",
				file, len(raw))
		}

		vals := make([]float32, len(raw)/4)

		for i := range vals {
			bits := binary.LittleEndian.Uint32(raw[i*4:])
			vals[i] = math.Float32frombits(bits)
		}

		return vals, nil

	case DumpFloat16:
		if len(raw)%2 != 0 {
			return nil, fmt.Errorf("float16 dump %s has length %d, not a multiple of 2",
				file, len(raw))
		}

		vals := make([]float32, len(raw)/2)

		for i := range vals {
			vals[i] = f16LookupTable[binary.LittleEndian.Uint16(raw[i*2:])]
		}

		return vals, nil

	default:
		return nil, fmt.Errorf("unknown tensor dump type %d", typ)
	}
}
