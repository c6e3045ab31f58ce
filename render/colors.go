package render

import "image/color"

var (
	// instanceColors is a list of distinct colors used to paint each
	// person instance mask
	instanceColors = []color.RGBA{
		{R: 255, G: 56, B: 56, A: 255},  // #FF3838
		{R: 255, G: 112, B: 31, A: 255}, // #FF701F
		{R: 255, G: 178, B: 29, A: 255}, // #FFB21D
		{R: 207, G: 210, B: 49, A: 255}, // #CFD231
		{R: 72, G: 249, B: 10, A: 255},  // #48F90A
		{R: 26, G: 147, B: 52, A: 255},  // #1A9334
		{R: 0, G: 212, B: 187, A: 255},  // #00D4BB
		{R: 0, G: 194, B: 255, A: 255},  // #00C2FF
		{R: 52, G: 69, B: 147, A: 255},  // #344593
		{R: 100, G: 115, B: 255, A: 255},// #6473FF
		{R: 0, G: 24, B: 236, A: 255},   // #0018EC
		{R: 132, G: 56, B: 255, A: 255}, // #8438FF
		{R: 82, G: 0, B: 133, A: 255},   // #520085
		{R: 255, G: 149, B: 200, A: 255},// #FF95C8
		{R: 255, G: 55, B: 199, A: 255}, // #FF37C7
		{R: 255, G: 157, B: 151, A: 255},// #FF9D97
		{R: 44, G: 153, B: 168, A: 255}, // #2C99A8
		{R: 61, G: 219, B: 134, A: 255}, // #3DDB86
		{R: 203, G: 56, B: 255, A: 255}, // #CB38FF
		{R: 146, G: 204, B: 23, A: 255}, // #92CC17
	}

	// partColors is the palette used to paint the 24 body part regions of
	// a part level mask, light to dark across each limb group
	partColors = []color.RGBA{
		{R: 110, G: 64, B: 170, A: 255}, // leftFace
		{R: 143, G: 61, B: 178, A: 255}, // rightFace
		{R: 178, G: 60, B: 178, A: 255}, // leftUpperArmFront
		{R: 210, G: 62, B: 167, A: 255}, // leftUpperArmBack
		{R: 238, G: 67, B: 149, A: 255}, // rightUpperArmFront
		{R: 255, G: 78, B: 125, A: 255}, // rightUpperArmBack
		{R: 255, G: 94, B: 99, A: 255},  // leftLowerArmFront
		{R: 255, G: 115, B: 75, A: 255}, // leftLowerArmBack
		{R: 255, G: 140, B: 56, A: 255}, // rightLowerArmFront
		{R: 239, G: 167, B: 47, A: 255}, // rightLowerArmBack
		{R: 217, G: 194, B: 49, A: 255}, // leftHand
		{R: 194, G: 219, B: 64, A: 255}, // rightHand
		{R: 175, G: 240, B: 91, A: 255}, // torsoFront
		{R: 135, G: 245, B: 87, A: 255}, // torsoBack
		{R: 96, G: 247, B: 96, A: 255},  // leftUpperLegFront
		{R: 64, G: 243, B: 115, A: 255}, // leftUpperLegBack
		{R: 40, G: 234, B: 141, A: 255}, // rightUpperLegFront
		{R: 28, G: 219, B: 169, A: 255}, // rightUpperLegBack
		{R: 26, G: 199, B: 194, A: 255}, // leftLowerLegFront
		{R: 33, G: 176, B: 213, A: 255}, // leftLowerLegBack
		{R: 47, G: 150, B: 224, A: 255}, // rightLowerLegFront
		{R: 65, G: 125, B: 224, A: 255}, // rightLowerLegBack
		{R: 84, G: 101, B: 214, A: 255}, // leftFoot
		{R: 99, G: 81, B: 195, A: 255},  // rightFoot
	}

	Black  = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	White  = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Yellow = color.RGBA{R: 255, G: 255, B: 50, A: 255}

	// posePalette are the colors used for the skeleton/pose
	posePalette = []color.RGBA{
		{R: 255, G: 128, B: 0, A: 255},
		{R: 255, G: 153, B: 51, A: 255},
		{R: 255, G: 178, B: 102, A: 255},
		{R: 230, G: 230, B: 0, A: 255},
		{R: 255, G: 153, B: 255, A: 255},
		{R: 153, G: 204, B: 255, A: 255},
		{R: 255, G: 102, B: 255, A: 255},
		{R: 255, G: 51, B: 255, A: 255},
		{R: 102, G: 178, B: 255, A: 255},
		{R: 51, G: 153, B: 255, A: 255},
		{R: 255, G: 153, B: 153, A: 255},
		{R: 255, G: 102, B: 102, A: 255},
		{R: 255, G: 51, B: 51, A: 255},
		{R: 153, G: 255, B: 153, A: 255},
		{R: 102, G: 255, B: 102, A: 255},
		{R: 51, G: 255, B: 51, A: 255},
		{R: 0, G: 255, B: 0, A: 255},
		{R: 0, G: 0, B: 255, A: 255},
		{R: 255, G: 0, B: 0, A: 255},
		{R: 255, G: 255, B: 255, A: 255},
	}

	// keyPointColors correspond to the 17 skeleton keypoints and the
	// colors used to render the joint circles
	keyPointColors = []color.RGBA{
		posePalette[16], posePalette[16], posePalette[16], posePalette[16], posePalette[16],
		posePalette[9], posePalette[9], posePalette[9], posePalette[9], posePalette[9],
		posePalette[9], posePalette[0], posePalette[0], posePalette[0], posePalette[0],
		posePalette[0], posePalette[0],
	}

	// limbColors correspond to the 16 skeleton edges in canonical chain
	// order, face edges then the left and right limb chains
	limbColors = []color.RGBA{
		posePalette[16], posePalette[16], posePalette[16], posePalette[16],
		posePalette[9], posePalette[9], posePalette[9], posePalette[9],
		posePalette[0], posePalette[0],
		posePalette[7], posePalette[7], posePalette[7], posePalette[7],
		posePalette[12], posePalette[12],
	}
)
