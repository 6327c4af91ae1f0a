/*
Package vision extracts candidate marker detections from raw video
frames.  Markers are small colored stickers on a black glove, so the
pipeline masks for dark regions, edge detects inside them and filters
the resulting contours down to small near-circular blobs.  The output
feeds the tracker package.
*/
package vision

import (
	"image"
	"image/color"
	"math"

	"github.com/glovevision/markertrack/colorid"
	"github.com/glovevision/markertrack/tracker"
	"gocv.io/x/gocv"
)

// Params holds the detection pipeline tunables
type Params struct {
	// BlurKernelSize is the Gaussian blur kernel edge in pixels
	BlurKernelSize int
	// BlurSigma is the Gaussian blur sigma
	BlurSigma float64
	// ErodeIterations controls how aggressively the dark-region mask is
	// eroded before thresholding
	ErodeIterations int
	// DarkThreshold is the per channel intensity below which a region
	// counts as glove material
	DarkThreshold float32
	// CannyHigh and CannyLow are the Canny edge detection thresholds
	CannyHigh float32
	CannyLow  float32
	// MinArea and MaxArea bound the contour area in pixels
	MinArea float64
	MaxArea float64
	// MinAspect and MaxAspect bound the contour bounding box aspect
	// ratio
	MinAspect float64
	MaxAspect float64
	// MinRadius and MaxRadius bound the minimum enclosing circle radius
	MinRadius float32
	MaxRadius float32
	// MinCircularity is the minimum 4*pi*area/perimeter^2 shape quality
	MinCircularity float64
}

// DefaultParams returns detection tunables suited to 640x480 frames of
// a glove held at arms length from the camera
func DefaultParams() Params {
	return Params{
		BlurKernelSize:  5,
		BlurSigma:       2,
		ErodeIterations: 15,
		DarkThreshold:   40,
		CannyHigh:       100,
		CannyLow:        50,
		MinArea:         30,
		MaxArea:         700,
		MinAspect:       0.25,
		MaxAspect:       1.75,
		MinRadius:       1.5,
		MaxRadius:       25,
		MinCircularity:  0.60,
	}
}

// Detector finds circular marker candidates in video frames.  It
// reuses its intermediate Mats between frames, call Close when done.
// A Detector is not safe for concurrent use, run one per camera.
type Detector struct {
	p Params
	// kernel is the 3x3 structuring element used for erosion
	kernel gocv.Mat
	// intermediate pipeline Mats, reused across frames
	blurred gocv.Mat
	eroded  gocv.Mat
	black   gocv.Mat
	dark    gocv.Mat
	masked  gocv.Mat
	gray    gocv.Mat
	edges   gocv.Mat
}

// NewDetector returns a Detector using the given pipeline parameters
func NewDetector(p Params) *Detector {
	return &Detector{
		p:       p,
		kernel:  gocv.GetStructuringElement(gocv.MorphRect, image.Pt(3, 3)),
		blurred: gocv.NewMat(),
		eroded:  gocv.NewMat(),
		black:   gocv.NewMat(),
		dark:    gocv.NewMat(),
		masked:  gocv.NewMat(),
		gray:    gocv.NewMat(),
		edges:   gocv.NewMat(),
	}
}

// Close frees the Mats held by the detector
func (d *Detector) Close() error {

	for _, m := range []*gocv.Mat{&d.kernel, &d.blurred, &d.eroded,
		&d.black, &d.dark, &d.masked, &d.gray, &d.edges} {

		if err := m.Close(); err != nil {
			return err
		}
	}

	return nil
}

// Detect runs the full pipeline on a BGR frame and returns the
// candidate marker detections found in it
func (d *Detector) Detect(frame gocv.Mat) []tracker.Detection {
	d.Preprocess(frame)
	d.FindEdges()
	return d.FindMarkers()
}

// Preprocess applies a Gaussian blur to knock out sensor noise before
// edge detection
func (d *Detector) Preprocess(frame gocv.Mat) {
	gocv.GaussianBlur(frame, &d.blurred,
		image.Pt(d.p.BlurKernelSize, d.p.BlurKernelSize),
		d.p.BlurSigma, d.p.BlurSigma, gocv.BorderDefault)
}

// FindEdges masks the preprocessed frame down to (largely) dark glove
// regions and runs Canny edge detection inside them
func (d *Detector) FindEdges() {

	// erode so isolated bright dots cannot break up the glove mask
	gocv.ErodeWithParams(d.blurred, &d.eroded, d.kernel, image.Pt(-1, -1),
		d.p.ErodeIterations, int(gocv.BorderConstant))

	gocv.Threshold(d.eroded, &d.black, d.p.DarkThreshold, 255,
		gocv.ThresholdBinaryInv)

	// a pixel is glove only when all three channels are dark
	channels := gocv.Split(d.black)

	gocv.BitwiseAnd(channels[2], channels[1], &d.dark)
	gocv.BitwiseAnd(d.dark, channels[0], &d.dark)

	for _, c := range channels {
		c.Close()
	}

	gocv.BitwiseAndWithMask(d.blurred, d.blurred, &d.masked, d.dark)

	gocv.CvtColor(d.masked, &d.gray, gocv.ColorBGRToGray)
	gocv.Canny(d.gray, &d.edges, d.p.CannyHigh, d.p.CannyLow)
}

// FindMarkers walks the edge contours and keeps the ones shaped like
// marker stickers, reporting centroid, circularity and mean color
func (d *Detector) FindMarkers() []tracker.Detection {

	var dets []tracker.Detection

	contours := gocv.FindContours(d.edges, gocv.RetrievalList,
		gocv.ChainApproxNone)
	defer contours.Close()

	for i := 0; i < contours.Size(); i++ {

		contour := contours.At(i)

		area := gocv.ContourArea(contour)

		if area < d.p.MinArea || area > d.p.MaxArea {
			continue
		}

		rect := gocv.MinAreaRect(contour)

		if rect.Width < 1 || rect.Height < 1 {
			continue
		}

		ratio := float64(rect.Width) / float64(rect.Height)

		if ratio < d.p.MinAspect || ratio > d.p.MaxAspect {
			continue
		}

		x, y, radius := gocv.MinEnclosingCircle(contour)

		if radius < d.p.MinRadius || radius > d.p.MaxRadius {
			continue
		}

		arclen := gocv.ArcLength(contour, true)
		circularity := (4 * math.Pi * area) / (arclen * arclen)

		if circularity < d.p.MinCircularity {
			continue
		}

		hsv := d.meanColor(contours, i)

		dets = append(dets, tracker.NewDetection(
			float64(x), float64(y), circularity,
			[3]float64{hsv[0], hsv[1], hsv[2]},
		))
	}

	return dets
}

// meanColor finds the mean color of the blurred frame within the given
// contour and converts it to normalized HSV
func (d *Detector) meanColor(contours gocv.PointsVector, idx int) colorid.HSV {

	mask := gocv.Zeros(d.blurred.Rows(), d.blurred.Cols(), gocv.MatTypeCV8U)
	defer mask.Close()

	gocv.DrawContours(&mask, contours, idx,
		color.RGBA{R: 255, G: 255, B: 255, A: 255}, -1)

	mean := d.blurred.MeanWithMask(mask)

	return colorid.FromBGR(mean.Val1, mean.Val2, mean.Val3)
}
