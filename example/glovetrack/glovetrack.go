package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"log"
	"time"

	"github.com/glovevision/markertrack/cluster"
	"github.com/glovevision/markertrack/colorid"
	"github.com/glovevision/markertrack/tracker"
	"github.com/glovevision/markertrack/vision"
	"gocv.io/x/gocv"
)

// displayQuality is the minimum point quality drawn and clustered
const displayQuality = 0.25

// Demo runs the marker tracking pipeline over a video file and renders
// the tracked points and clusters to an output video
type Demo struct {
	detector *vision.Detector
	track    *tracker.Tracker
	finder   *cluster.Finder
}

// NewDemo returns a Demo with default pipeline settings
func NewDemo() (*Demo, error) {

	trk, err := tracker.NewTracker(tracker.DefaultConfig())

	if err != nil {
		return nil, fmt.Errorf("error creating tracker: %w", err)
	}

	return &Demo{
		detector: vision.NewDetector(vision.DefaultParams()),
		track:    trk,
		finder:   cluster.NewFinder(75, 3),
	}, nil
}

// Close frees the demo resources
func (d *Demo) Close() {
	d.detector.Close()
}

// ProcessFrame runs detection, tracking and clustering for one frame
// and draws the results onto it
func (d *Demo) ProcessFrame(frame gocv.Mat) error {

	start := time.Now()

	dets := d.detector.Detect(frame)

	points, err := d.track.Update(dets)

	if err != nil {
		return fmt.Errorf("tracking frame %d: %w", d.track.GetFrameCount(), err)
	}

	// only stable points take part in clustering and display
	var acceptable []*tracker.TrackedPoint

	for _, p := range points {
		if p.GetQuality() > displayQuality {
			acceptable = append(acceptable, p)
		}
	}

	clusters := d.finder.Find(acceptable)

	d.draw(frame, acceptable, clusters)

	if d.track.GetFrameCount()%30 == 0 {
		log.Printf("frame %d: %d detections, %d points (%d stable), %d clusters, %s",
			d.track.GetFrameCount(), len(dets), len(points),
			len(acceptable), len(clusters), time.Since(start))
	}

	return nil
}

// draw renders point ids, predicted travel and cluster links onto the
// frame
func (d *Demo) draw(frame gocv.Mat, points []*tracker.TrackedPoint,
	clusters []*cluster.Cluster) {

	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	green := color.RGBA{G: 255, A: 255}

	for _, p := range points {

		pos := p.GetPosition()
		at := image.Pt(int(pos.X), int(pos.Y))

		// line from the current position to the next predicted one
		pred := p.PredictAt(1)
		gocv.Line(&frame, at, image.Pt(int(pred.X), int(pred.Y)), white, 1)

		label := fmt.Sprintf("%d", p.GetID())

		if name, ok := colorid.Best(colorid.HSV(p.GetMeanColor())); ok {
			label = fmt.Sprintf("%d %s", p.GetID(), name)
		}

		gocv.PutText(&frame, label, image.Pt(int(pos.X)+5, int(pos.Y)+10),
			gocv.FontHersheySimplex, 0.3, white, 1)
	}

	for _, c := range clusters {

		center := image.Pt(int(c.Center.X), int(c.Center.Y))
		gocv.Circle(&frame, center, 4, white, 2)

		for _, p := range c.Points {
			pos := p.GetPosition()
			gocv.Line(&frame, image.Pt(int(pos.X), int(pos.Y)), center, green, 1)
		}
	}

	gocv.PutText(&frame, fmt.Sprintf("Frame #%d", d.track.GetFrameCount()),
		image.Pt(10, frame.Rows()-10), gocv.FontHersheySimplex, 0.4, white, 1)
}

func main() {

	vidFile := flag.String("v", "glove.mp4", "Video file to track markers in")
	outFile := flag.String("o", "render.avi", "Rendered output video file")
	flag.Parse()

	demo, err := NewDemo()

	if err != nil {
		log.Fatalf("Error creating demo: %v", err)
	}

	defer demo.Close()

	video, err := gocv.VideoCaptureFile(*vidFile)

	if err != nil {
		log.Fatalf("Error opening video file %s: %v", *vidFile, err)
	}

	defer video.Close()

	frame := gocv.NewMat()
	defer frame.Close()

	var writer *gocv.VideoWriter

	for {
		if ok := video.Read(&frame); !ok {
			log.Printf("reached end of stream")
			break
		}

		if frame.Empty() {
			continue
		}

		if writer == nil {
			writer, err = gocv.VideoWriterFile(*outFile, "MJPG", 30,
				frame.Cols(), frame.Rows(), true)

			if err != nil {
				log.Fatalf("Error opening video writer %s: %v", *outFile, err)
			}

			defer writer.Close()
		}

		if err := demo.ProcessFrame(frame); err != nil {
			log.Fatalf("Error processing frame: %v", err)
		}

		if err := writer.Write(frame); err != nil {
			log.Fatalf("Error writing output frame: %v", err)
		}
	}

	log.Printf("processed %d frames to %s", demo.track.GetFrameCount(), *outFile)
}
