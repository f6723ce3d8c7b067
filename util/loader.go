// Package util - Loaders for recorded preview frames and detection logs used by replays.
package util

import (
	"bufio"
	"bytes"
	"encoding/json"
	"image"
	_ "image/jpeg" // registers the JPEG decoder
	_ "image/png"  // registers the PNG decoder
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/nvr-ai/go-overlay/common"
	"github.com/nvr-ai/go-overlay/tracker"
)

// ImageFile represents an image file.
type ImageFile struct {
	// Path is the path to the image file.
	Path string
	// Data is the raw bytes of the image file.
	Data []byte
	// Frame is the frame number of the image file.
	Frame int
}

// Decode decodes the raw bytes into an image.
func (f ImageFile) Decode() (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(f.Data))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to decode %s", f.Path)
	}
	return img, nil
}

// LoadDirectoryImageFiles reads all image files from a directory.
// Files must be named frame-<n>.<ext>; they are returned in frame order.
//
// Arguments:
// - dir: Directory path containing image files.
//
// Returns:
// - []ImageFile: Slice of ImageFile, each containing the raw bytes of an image file.
// - error: Error if loading fails.
func LoadDirectoryImageFiles(dir string) ([]ImageFile, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read directory %s", dir)
	}

	var images []ImageFile
	for _, file := range files {
		if file.IsDir() {
			continue
		}

		ext := strings.ToLower(filepath.Ext(file.Name()))
		switch ext {
		case ".jpg", ".jpeg", ".png":
			imgPath := filepath.Join(dir, file.Name())
			frame, err := strconv.Atoi(strings.TrimPrefix(strings.TrimSuffix(file.Name(), filepath.Ext(file.Name())), "frame-"))
			if err != nil {
				return nil, errors.Wrapf(err, "unexpected frame file name %s", file.Name())
			}
			data, err := os.ReadFile(imgPath)
			if err != nil {
				return nil, errors.Wrapf(err, "failed to read %s", imgPath)
			}
			images = append(images, ImageFile{
				Path:  imgPath,
				Data:  data,
				Frame: frame,
			})
		}
	}

	sort.Slice(images, func(i, j int) bool {
		return images[i].Frame < images[j].Frame
	})

	return images, nil
}

// Detection kinds found in a detection log.
const (
	KindBox  = "box"
	KindFace = "face"
)

// LogRecord is one line of a detection log. Coordinates are in source pixels.
// An ID of zero means the detector does not track and ids must be associated.
type LogRecord struct {
	Frame int     `json:"frame"`
	Kind  string  `json:"kind"`
	ID    int     `json:"id,omitempty"`
	X1    float32 `json:"x1"`
	Y1    float32 `json:"y1"`
	X2    float32 `json:"x2"`
	Y2    float32 `json:"y2"`
	Label string  `json:"label,omitempty"`
}

// Box returns the record as a bounding box.
func (r LogRecord) Box() common.BoundingBox {
	return common.BoundingBox{Label: r.Label, Confidence: 1, X1: r.X1, Y1: r.Y1, X2: r.X2, Y2: r.Y2}
}

// FrameDetections holds everything detected in one frame, split by kind.
type FrameDetections struct {
	Frame int
	// Boxes without ids, to be passed through an associator.
	Boxes []common.BoundingBox
	// Tracked boxes whose ids came from the detector.
	Tracked []tracker.Detection[common.BoundingBox]
	Faces   []tracker.Detection[common.Face]
}

// LoadDetectionLog parses a JSON lines detection log and groups records by frame.
// Blank lines are skipped. Frames are returned in ascending order; frames with no
// records are absent.
func LoadDetectionLog(r io.Reader) ([]FrameDetections, error) {
	byFrame := make(map[int]*FrameDetections)

	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}

		var rec LogRecord
		if err := json.Unmarshal([]byte(text), &rec); err != nil {
			return nil, errors.Wrapf(err, "line %d", line)
		}
		if rec.Frame < 0 {
			return nil, errors.Errorf("line %d: negative frame %d", line, rec.Frame)
		}

		fd, ok := byFrame[rec.Frame]
		if !ok {
			fd = &FrameDetections{Frame: rec.Frame}
			byFrame[rec.Frame] = fd
		}

		switch rec.Kind {
		case KindBox:
			if rec.ID == 0 {
				fd.Boxes = append(fd.Boxes, rec.Box())
			} else {
				fd.Tracked = append(fd.Tracked, tracker.Detection[common.BoundingBox]{ID: rec.ID, Item: rec.Box()})
			}
		case KindFace:
			if rec.ID == 0 {
				return nil, errors.Errorf("line %d: face records need an id", line)
			}
			fd.Faces = append(fd.Faces, tracker.Detection[common.Face]{ID: rec.ID, Item: common.FaceFromBox(rec.Box())})
		default:
			return nil, errors.Errorf("line %d: unknown kind %q", line, rec.Kind)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to read detection log")
	}

	out := make([]FrameDetections, 0, len(byFrame))
	for _, fd := range byFrame {
		out = append(out, *fd)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Frame < out[j].Frame
	})
	return out, nil
}
