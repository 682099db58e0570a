// Package imgfmt provides render sinks that encode images to files.
//
// [TGA] streams an uncompressed 24-bit Targa file pixel by pixel and never
// holds the image in memory, so it pairs with the streaming renderer. [Image]
// collects pixels into an *image.RGBA and encodes PNG, BMP or TIFF on Flush.
//
//	f, _ := os.Create("mandelbrot.tga")
//	enc, _ := imgfmt.New(f, imgfmt.FormatTGA)
//	err := render.Streaming(render.Config{..., Sink: enc})
//	err = enc.Flush()
package imgfmt
