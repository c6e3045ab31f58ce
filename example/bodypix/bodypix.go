package main

import (
	"flag"
	"log"
	"path/filepath"

	bodypix "github.com/swdee/go-bodypix"
	"github.com/swdee/go-bodypix/postprocess"
	"github.com/swdee/go-bodypix/preprocess"
	"github.com/swdee/go-bodypix/render"
	"gocv.io/x/gocv"
)

func main() {
	// disable logging timestamps
	log.SetFlags(0)

	// read in cli flags
	imgFile := flag.String("i", "../data/people.jpg", "Image file the tensor dumps were inferenced from")
	dumpDir := flag.String("d", "../data/dumps", "Directory containing the raw model output tensor dumps")
	saveFile := flag.String("o", "../data/people-bodypix-out.jpg", "The output JPG of rendered results")
	inputSize := flag.Int("s", 513, "Model input resolution the image was resized to")
	stride := flag.Int("t", 16, "Model output stride")
	fp16 := flag.Bool("fp16", false, "Tensor dumps are in float16 format")

	flag.Parse()

	dumpType := bodypix.DumpFloat32

	if *fp16 {
		dumpType = bodypix.DumpFloat16
	}

	// load image
	img := gocv.IMRead(*imgFile, gocv.IMReadColor)

	if img.Empty() {
		log.Fatal("Error reading image from: ", *imgFile)
	}

	defer img.Close()

	// pad and resize image the same way the inference pipeline did, to
	// recover the padding and scale used when mapping results back
	resizer := preprocess.NewResizer(img.Cols(), img.Rows(),
		*inputSize, *inputSize)
	defer resizer.Close()

	resizedImg := gocv.NewMat()
	defer resizedImg.Close()

	resizer.PadAndResize(img, &resizedImg, render.Black)

	// strided output grid dimensions
	grid := (*inputSize-1)/(*stride) + 1

	outputs, err := loadOutputs(*dumpDir, dumpType, grid, *inputSize)

	if err != nil {
		log.Fatal("Error loading tensor dumps: ", err)
	}

	// decode multiple poses from the output buffers
	poseParams := postprocess.PoseCOCOParams()
	poseParams.Stride = *stride

	decoder := postprocess.NewPoseDecoder(poseParams)

	poses, err := decoder.DecodePoses(outputs)

	if err != nil {
		log.Fatal("Error decoding poses: ", err)
	}

	log.Printf("Decoded %d poses", len(poses))

	// report keypoints in source image coordinates
	srcPoses := postprocess.ScalePoses(poses, resizer.ScaleY(),
		resizer.ScaleX(), resizer.Padding())

	for i, pose := range srcPoses {
		log.Printf("pose %d, score=%.2f", i, pose.Score)

		for _, kp := range pose.Keypoints {
			log.Printf("  %s @ (%.1f, %.1f) %.2f",
				postprocess.CocoSkeleton().PartName(kp.Part),
				kp.Point.X, kp.Point.Y, kp.Score)
		}
	}

	// assign the segmentation mask pixels to pose instances.  poses and
	// mask are both in the model input pixel space so no padding applies
	instParams := postprocess.InstanceCOCOParams()
	instParams.Stride = *stride
	instParams.InputHeight = *inputSize
	instParams.InputWidth = *inputSize

	segmenter := postprocess.NewInstanceSegmenter(instParams)

	masks, err := segmenter.PersonMasks(outputs, poses, bodypix.Padding{})

	if err != nil {
		log.Fatal("Error segmenting person instances: ", err)
	}

	log.Printf("Segmented %d person instances", len(masks))

	// render results onto the model input sized image
	render.InstanceMasks(&resizedImg, masks, 0.5)
	render.Poses(&resizedImg, poses, poseParams.ScoreThreshold, 2)

	err = render.InstanceOutlines(&resizedImg, masks, 8, 400,
		render.DefaultFont(), 2)

	if err != nil {
		log.Fatal("Error rendering instance outlines: ", err)
	}

	if ok := gocv.IMWrite(*saveFile, resizedImg); !ok {
		log.Fatal("Failed to save the result image to: ", *saveFile)
	}

	log.Println("Saved result image to:", *saveFile)
}

// loadOutputs reads the raw tensor dump files from dir and assembles them
// into the decoders output buffer set.  The segmentation dump holds raw
// logits at the model input resolution, all other dumps are on the strided
// output grid.
func loadOutputs(dir string, typ bodypix.DumpType, grid,
	inputSize int) (*bodypix.Outputs, error) {

	load := func(name string, h, w, c int) (bodypix.Tensor, error) {
		vals, err := bodypix.LoadTensorDump(filepath.Join(dir, name), typ)

		if err != nil {
			return bodypix.Tensor{}, err
		}

		return bodypix.NewTensor(h, w, c, vals)
	}

	k := bodypix.NumKeypoints

	heatmap, err := load("heatmap.bin", grid, grid, k)

	if err != nil {
		return nil, err
	}

	offsets, err := load("short_offsets.bin", grid, grid, 2*k)

	if err != nil {
		return nil, err
	}

	dispFwd, err := load("displacements_fwd.bin", grid, grid, 2*(k-1))

	if err != nil {
		return nil, err
	}

	dispBwd, err := load("displacements_bwd.bin", grid, grid, 2*(k-1))

	if err != nil {
		return nil, err
	}

	longOffsets, err := load("long_offsets.bin", grid, grid, 2*k)

	if err != nil {
		return nil, err
	}

	segScores, err := load("segmentation.bin", inputSize, inputSize, 1)

	if err != nil {
		return nil, err
	}

	segmentation, err := bodypix.MaskFromScores(
		bodypix.SigmoidTensor(segScores), 0.7)

	if err != nil {
		return nil, err
	}

	outputs := &bodypix.Outputs{
		Heatmap:          bodypix.SigmoidTensor(heatmap),
		Offsets:          offsets,
		DisplacementsFwd: dispFwd,
		DisplacementsBwd: dispBwd,
		LongOffsets:      longOffsets,
		Segmentation:     segmentation,
	}

	return outputs, nil
}
