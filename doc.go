/*
go-bodypix decodes multi-person poses and per-person instance segmentation
masks from the raw output tensors of a BodyPix/PoseNet style model.

The library does not run inference itself.  It consumes the output buffers
produced by whatever runtime executed the model (TFLite, ONNX Runtime, an
NPU SDK) and turns them into discrete poses and instance masks.

The root package holds the raw buffer types and the boundary plumbing used
to hand tensor data over from the inference runtime.  The decoding
algorithms live in the postprocess package, letterbox padding arithmetic in
preprocess and drawing helpers in render.

See example code and usage in the example subdirectory.
*/
package bodypix
