package imagevariant

import (
	"image"
	"strings"

	"github.com/disintegration/imaging"
)

// Anchor positions the crop window along the trimmed axis.
type Anchor int

const (
	AnchorCenter Anchor = iota
	AnchorLeading
	AnchorTrailing
)

// ParseAnchor - center(기본) / top,left,leading / bottom,right,trailing
// 인식하지 못한 값은 trailing으로 처리
func ParseAnchor(mode string) Anchor {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", "center":
		return AnchorCenter
	case "top", "left", "leading":
		return AnchorLeading
	default:
		return AnchorTrailing
	}
}

// CropRect computes the largest target-ratio window inside a w x h source.
func CropRect(w, h, targetW, targetH int, anchor Anchor) image.Rectangle {
	imgRatio := float64(w) / float64(h)
	targetRatio := float64(targetW) / float64(targetH)

	if imgRatio > targetRatio {
		newWidth := int(float64(h) * targetRatio)
		left := offset(w, newWidth, anchor)
		return image.Rect(left, 0, left+newWidth, h)
	}

	newHeight := int(float64(w) / targetRatio)
	top := offset(h, newHeight, anchor)
	return image.Rect(0, top, w, top+newHeight)
}

func offset(full, window int, anchor Anchor) int {
	switch anchor {
	case AnchorCenter:
		return (full - window) / 2
	case AnchorLeading:
		return 0
	default:
		return full - window
	}
}

// CropAndResize - 비율에 맞춰 crop 후 Lanczos로 정확한 크기로 resize
func CropAndResize(img image.Image, targetW, targetH int, anchor Anchor) *image.NRGBA {
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return imaging.New(targetW, targetH, image.White)
	}

	rect := CropRect(b.Dx(), b.Dy(), targetW, targetH, anchor)
	if rect.Dx() <= 0 || rect.Dy() <= 0 {
		// crop 불가능 - 그대로 resize
		return imaging.Resize(img, targetW, targetH, imaging.Lanczos)
	}

	cropped := imaging.Crop(img, rect.Add(b.Min))
	return imaging.Resize(cropped, targetW, targetH, imaging.Lanczos)
}
