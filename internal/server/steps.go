package server

import (
	"fmt"

	"github.com/ironsheep/image-transform-mcp/internal/canvas"
	"github.com/ironsheep/image-transform-mcp/internal/geometry"
	"github.com/ironsheep/image-transform-mcp/internal/transform"
)

// step is one image_transform operation. Each op reads only the fields it
// documents in the tool schema.
type step struct {
	Op string `json:"op"`

	Width  int `json:"width"`
	Height int `json:"height"`
	Pixels int `json:"pixels"`
	X      int `json:"x"`
	Y      int `json:"y"`

	XPercent      float64 `json:"x_percent"`
	YPercent      float64 `json:"y_percent"`
	WidthPercent  float64 `json:"width_percent"`
	HeightPercent float64 `json:"height_percent"`

	Orientation string `json:"orientation"`
	Color       string `json:"color"`
	Path        string `json:"path"`
	Alpha       *int   `json:"alpha"`
	Operator    string `json:"operator"`

	Threshold *float64 `json:"threshold"`
	Amount    float64  `json:"amount"`
	Radius    float64  `json:"radius"`

	RadiusX int  `json:"radius_x"`
	RadiusY *int `json:"radius_y"`

	Angle      float64 `json:"angle"`
	Background string  `json:"background"`
}

func applyStep(img *transform.Image, st step) error {
	switch st.Op {
	case "resize":
		return img.Resize(st.Width, st.Height)
	case "resize_by_width":
		return img.ResizeByWidth(st.Width)
	case "resize_by_height":
		return img.ResizeByHeight(st.Height)
	case "resize_by_pixel_count":
		return img.ResizeByPixelCount(st.Pixels)
	case "contain":
		return img.Contain(st.Width, st.Height)
	case "cover":
		o, err := geometry.ParseOrientation(st.Orientation)
		if err != nil {
			return err
		}
		return img.Cover(st.Width, st.Height, o)
	case "crop":
		return img.Crop(st.X, st.Y, st.Width, st.Height)
	case "crop_percent":
		return img.CropPercent(st.XPercent, st.YPercent, st.WidthPercent, st.HeightPercent)
	case "frame":
		return img.Frame(st.Width, st.Height)
	case "background_color":
		return img.SetBackgroundColor(st.Color)
	case "background_image":
		return img.SetBackgroundImage(st.Path)
	case "overlay":
		op, err := canvas.ParseOperator(st.Operator)
		if err != nil {
			return err
		}
		alpha := 100
		if st.Alpha != nil {
			alpha = *st.Alpha
		}
		return img.AddOverlay(st.Path, st.X, st.Y, alpha, op)
	case "grayscale":
		return img.Grayscale()
	case "sepia":
		threshold := float64(canvas.DefaultSepiaThreshold)
		if st.Threshold != nil {
			threshold = *st.Threshold
		}
		return img.Sepia(threshold)
	case "unsharp_mask":
		var threshold float64
		if st.Threshold != nil {
			threshold = *st.Threshold
		}
		return img.UnsharpMask(st.Amount, st.Radius, threshold)
	case "apply_mask":
		return img.ApplyMask(st.Path)
	case "round_corners":
		ry := st.RadiusX
		if st.RadiusY != nil {
			ry = *st.RadiusY
		}
		return img.RoundCorners(st.RadiusX, ry)
	case "rotate":
		return img.Rotate(st.Angle, st.Background)
	default:
		return fmt.Errorf("%w: unknown op %q", canvas.ErrInvalidArgument, st.Op)
	}
}
