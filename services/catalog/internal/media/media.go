// Package media picks the images and videos that show a variant in a given
// metal.
package media

import (
	"regexp"
	"strings"

	"github.com/utafrali/JewelryGo/services/catalog/internal/domain"
)

// FallbackLimit caps the number of generic images returned when no
// metal-tagged image exists.
const FallbackLimit = 4

// fallbackMarkers identify generic shots that suit any metal.
var fallbackMarkers = []string{"Model", "Details", "Render"}

// metalSuffix matches a metal token and index right before the extension,
// e.g. "ring-W2.jpg".
var metalSuffix = regexp.MustCompile(`-([RWYP])\d+\.[^./]+$`)

func tagOf(path string) string {
	m := metalSuffix.FindStringSubmatch(path)
	if m == nil {
		return ""
	}
	return m[1]
}

// ImagesForMetal returns the images tagged for metal, in input order. When
// none are tagged it falls back to at most FallbackLimit model, detail or
// render shots. The result is never nil.
func ImagesForMetal(images []string, metal domain.MetalType) []string {
	out := tagged(images, metal.ImageToken())
	if len(out) > 0 {
		return out
	}
	for _, img := range images {
		if len(out) == FallbackLimit {
			break
		}
		if isFallback(img) {
			out = append(out, img)
		}
	}
	return out
}

// VideosForMetal returns the videos tagged for metal, or every untagged video
// when none are.
func VideosForMetal(videos []string, metal domain.MetalType) []string {
	out := tagged(videos, metal.ImageToken())
	if len(out) > 0 {
		return out
	}
	for _, v := range videos {
		if tagOf(v) == "" {
			out = append(out, v)
		}
	}
	return out
}

func tagged(paths []string, token string) []string {
	out := make([]string, 0)
	if token == "" {
		return out
	}
	for _, p := range paths {
		if tagOf(p) == token {
			out = append(out, p)
		}
	}
	return out
}

func isFallback(path string) bool {
	for _, marker := range fallbackMarkers {
		if strings.Contains(path, marker) {
			return true
		}
	}
	return false
}

// Selection is the media set for one variant and metal.
type Selection struct {
	MetalType domain.MetalType `json:"metal_type"`
	Images    []string         `json:"images"`
	Videos    []string         `json:"videos"`
	Empty     bool             `json:"empty"`
}

// Select builds the selection for v shown in metal. An empty metal means the
// variant's own metal.
func Select(v domain.ProductVariant, metal domain.MetalType) Selection {
	if metal == "" {
		metal = v.MetalType
	}
	s := Selection{
		MetalType: metal,
		Images:    ImagesForMetal(v.AllImages, metal),
		Videos:    VideosForMetal(v.AllVideos, metal),
	}
	s.Empty = len(s.Images) == 0 && len(s.Videos) == 0
	return s
}

// SelectGroup picks media for a group in metal. Images are taken from the
// first variant, in price order, cast in that metal; the base variant is used
// when no variant matches.
func SelectGroup(g domain.ProductGroup, metal domain.MetalType) Selection {
	if metal == "" {
		return Select(g.BaseVariant, "")
	}
	for _, v := range g.Variants {
		if v.MetalType == metal {
			return Select(v, metal)
		}
	}
	return Select(g.BaseVariant, metal)
}
