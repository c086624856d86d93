package imagevariant

import (
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
)

// Enhanced variant boosts
const (
	autocontrastCutoff = 1
	enhanceSharpness   = 1.2
	enhanceColor       = 1.1
	softBlurSigma      = 0.5
)

var sepiaMatrix = [3][3]float64{
	{0.393, 0.769, 0.189},
	{0.349, 0.686, 0.168},
	{0.272, 0.534, 0.131},
}

// Normalize - 투명 영역을 흰 배경으로 합성, 불투명 RGB 이미지 반환
func Normalize(img image.Image) *image.NRGBA {
	src := imaging.Clone(img)
	bounds := src.Bounds()
	background := imaging.New(bounds.Dx(), bounds.Dy(), color.White)
	return imaging.Overlay(background, src, image.Pt(0, 0), 1.0)
}

// Enhance - autocontrast(1%) -> sharpness x1.2 -> color x1.1
func Enhance(img *image.NRGBA) *image.NRGBA {
	out := autocontrast(img, autocontrastCutoff)
	out = adjustSharpness(out, enhanceSharpness)
	return adjustColor(out, enhanceColor)
}

// ApplyFilter applies a named preset. Unknown names return the input unchanged.
func ApplyFilter(img *image.NRGBA, name string) *image.NRGBA {
	cfg, ok := LookupFilter(name)
	if !ok {
		return img
	}

	var out *image.NRGBA
	if cfg.Color > 0 {
		out = adjustColor(img, cfg.Color)
	} else {
		out = imaging.Grayscale(img)
	}
	out = adjustContrast(out, cfg.Contrast)
	out = adjustBrightness(out, cfg.Brightness)
	out = adjustSharpness(out, cfg.Sharpness)

	switch name {
	case "vintage":
		out = sepia(out)
	case "soft":
		out = imaging.Blur(out, softBlurSigma)
	}
	return out
}

// luma - ITU-R 601-2 (L = R*299/1000 + G*587/1000 + B*114/1000)
func luma(r, g, b uint8) uint8 {
	return uint8((uint32(r)*19595 + uint32(g)*38470 + uint32(b)*7471 + 0x8000) >> 16)
}

// blend - degenerate + (src - degenerate) * factor, 채널별 clip
func blend(degenerate, src *image.NRGBA, factor float64) *image.NRGBA {
	out := image.NewNRGBA(src.Rect)
	for i := 0; i < len(src.Pix); i += 4 {
		for c := 0; c < 3; c++ {
			d := float64(degenerate.Pix[i+c])
			out.Pix[i+c] = clip(int(d + factor*(float64(src.Pix[i+c])-d)))
		}
		out.Pix[i+3] = src.Pix[i+3]
	}
	return out
}

func clip(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

func adjustColor(img *image.NRGBA, factor float64) *image.NRGBA {
	gray := image.NewNRGBA(img.Rect)
	for i := 0; i < len(img.Pix); i += 4 {
		l := luma(img.Pix[i], img.Pix[i+1], img.Pix[i+2])
		gray.Pix[i], gray.Pix[i+1], gray.Pix[i+2], gray.Pix[i+3] = l, l, l, img.Pix[i+3]
	}
	return blend(gray, img, factor)
}

func adjustContrast(img *image.NRGBA, factor float64) *image.NRGBA {
	var sum float64
	n := len(img.Pix) / 4
	for i := 0; i < len(img.Pix); i += 4 {
		sum += float64(luma(img.Pix[i], img.Pix[i+1], img.Pix[i+2]))
	}
	mean := uint8(0)
	if n > 0 {
		mean = uint8(sum/float64(n) + 0.5)
	}
	solid := imaging.New(img.Rect.Dx(), img.Rect.Dy(), color.NRGBA{mean, mean, mean, 255})
	return blend(solid, img, factor)
}

func adjustBrightness(img *image.NRGBA, factor float64) *image.NRGBA {
	black := imaging.New(img.Rect.Dx(), img.Rect.Dy(), color.NRGBA{0, 0, 0, 255})
	return blend(black, img, factor)
}

func adjustSharpness(img *image.NRGBA, factor float64) *image.NRGBA {
	return blend(smooth(img), img, factor)
}

// smooth - 3x3 SMOOTH 커널 [1 1 1; 1 5 1; 1 1 1]/13, 가장자리 픽셀은 유지
func smooth(img *image.NRGBA) *image.NRGBA {
	out := imaging.Clone(img)
	w, h := img.Rect.Dx(), img.Rect.Dy()
	if w < 3 || h < 3 {
		return out
	}

	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			o := y*img.Stride + x*4
			for c := 0; c < 3; c++ {
				sum := 0
				for dy := -1; dy <= 1; dy++ {
					for dx := -1; dx <= 1; dx++ {
						weight := 1
						if dx == 0 && dy == 0 {
							weight = 5
						}
						sum += weight * int(img.Pix[(y+dy)*img.Stride+(x+dx)*4+c])
					}
				}
				out.Pix[o+c] = clip(int(float64(sum)/13 + 0.5))
			}
		}
	}
	return out
}

// autocontrast - 채널별 히스토그램 양 끝 cutoff% 제거 후 0..255로 늘림
func autocontrast(img *image.NRGBA, cutoff int) *image.NRGBA {
	var luts [3][256]uint8
	for c := 0; c < 3; c++ {
		var hist [256]int
		for i := c; i < len(img.Pix); i += 4 {
			hist[img.Pix[i]]++
		}
		luts[c] = contrastLUT(hist, cutoff)
	}

	out := image.NewNRGBA(img.Rect)
	for i := 0; i < len(img.Pix); i += 4 {
		out.Pix[i] = luts[0][img.Pix[i]]
		out.Pix[i+1] = luts[1][img.Pix[i+1]]
		out.Pix[i+2] = luts[2][img.Pix[i+2]]
		out.Pix[i+3] = img.Pix[i+3]
	}
	return out
}

func contrastLUT(hist [256]int, cutoff int) [256]uint8 {
	n := 0
	for _, v := range hist {
		n += v
	}

	cut := n * cutoff / 100
	for lo := 0; lo < 256 && cut > 0; lo++ {
		if cut > hist[lo] {
			cut -= hist[lo]
			hist[lo] = 0
		} else {
			hist[lo] -= cut
			cut = 0
		}
	}
	cut = n * cutoff / 100
	for hi := 255; hi >= 0 && cut > 0; hi-- {
		if cut > hist[hi] {
			cut -= hist[hi]
			hist[hi] = 0
		} else {
			hist[hi] -= cut
			cut = 0
		}
	}

	lo, hi := 0, 255
	for lo < 256 && hist[lo] == 0 {
		lo++
	}
	for hi >= 0 && hist[hi] == 0 {
		hi--
	}

	var lut [256]uint8
	if hi <= lo {
		for i := range lut {
			lut[i] = uint8(i)
		}
		return lut
	}

	for i := range lut {
		lut[i] = clip((i - lo) * 255 / (hi - lo))
	}
	return lut
}

func sepia(img *image.NRGBA) *image.NRGBA {
	return imaging.AdjustFunc(img, func(c color.NRGBA) color.NRGBA {
		in := [3]float64{float64(c.R), float64(c.G), float64(c.B)}
		var rgb [3]uint8
		for row := 0; row < 3; row++ {
			v := sepiaMatrix[row][0]*in[0] + sepiaMatrix[row][1]*in[1] + sepiaMatrix[row][2]*in[2]
			rgb[row] = clip(int(math.Round(v)))
		}
		return color.NRGBA{R: rgb[0], G: rgb[1], B: rgb[2], A: c.A}
	})
}
