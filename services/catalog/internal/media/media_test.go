package media

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/utafrali/JewelryGo/services/catalog/internal/domain"
)

func TestImagesForMetal_SuffixMatch(t *testing.T) {
	assert.Equal(t, []string{"x-W1.jpg"}, ImagesForMetal([]string{"x-R1.jpg", "x-W1.jpg"}, domain.MetalWhiteGold))

	images := []string{
		"/p/eterna-R1.jpg",
		"/p/eterna-Y1.webp",
		"/p/eterna-R12.png",
		"/p/eterna-Render.jpg",
		"/p/WR-R1/eterna.jpg",
		"/p/eterna-r3.jpg",
	}
	assert.Equal(t, []string{"/p/eterna-R1.jpg", "/p/eterna-R12.png"}, ImagesForMetal(images, domain.MetalRoseGold))
	assert.Equal(t, []string{"/p/eterna-Y1.webp"}, ImagesForMetal(images, domain.MetalYellowGold))
}

func TestImagesForMetal_TokenMustPrecedeExtension(t *testing.T) {
	images := []string{"ring-W1-closeup.jpg", "ring-W.jpg", "ringW1.jpg"}
	assert.Empty(t, ImagesForMetal(images, domain.MetalWhiteGold))
}

func TestImagesForMetal_FallbackCappedAtFour(t *testing.T) {
	images := []string{
		"a-Model1.jpg", "b-Details.jpg", "plain.jpg", "c-Render.jpg",
		"d-Model2.jpg", "e-Details2.jpg", "x-R1.jpg",
	}
	got := ImagesForMetal(images, domain.MetalPlatinum)
	assert.Equal(t, []string{"a-Model1.jpg", "b-Details.jpg", "c-Render.jpg", "d-Model2.jpg"}, got)
}

func TestImagesForMetal_EmptyNeverNil(t *testing.T) {
	assert.NotNil(t, ImagesForMetal(nil, domain.MetalRoseGold))
	assert.Empty(t, ImagesForMetal([]string{"plain.jpg"}, domain.MetalRoseGold))
	assert.Empty(t, ImagesForMetal([]string{"x-R1.jpg"}, "Silver"))
}

func TestVideosForMetal(t *testing.T) {
	videos := []string{"spin-R1.mp4", "spin-W1.mp4", "lifestyle.mp4"}
	assert.Equal(t, []string{"spin-W1.mp4"}, VideosForMetal(videos, domain.MetalWhiteGold))
	assert.Equal(t, []string{"lifestyle.mp4"}, VideosForMetal(videos, domain.MetalPlatinum))
	assert.Empty(t, VideosForMetal(nil, domain.MetalPlatinum))
}

func TestSelect(t *testing.T) {
	v := domain.ProductVariant{
		MetalType: domain.MetalRoseGold,
		AllImages: []string{"n-R1.jpg", "n-W1.jpg"},
		AllVideos: []string{"n-R1.mp4"},
	}

	own := Select(v, "")
	assert.Equal(t, domain.MetalRoseGold, own.MetalType)
	assert.Equal(t, []string{"n-R1.jpg"}, own.Images)
	assert.Equal(t, []string{"n-R1.mp4"}, own.Videos)
	assert.False(t, own.Empty)

	none := Select(v, domain.MetalPlatinum)
	assert.True(t, none.Empty)
}

func TestSelectGroup_PrefersVariantInMetal(t *testing.T) {
	g := domain.ProductGroup{
		BaseVariant: domain.ProductVariant{MetalType: domain.MetalRoseGold, AllImages: []string{"base-R1.jpg"}},
		Variants: []domain.ProductVariant{
			{MetalType: domain.MetalRoseGold, AllImages: []string{"base-R1.jpg"}},
			{MetalType: domain.MetalWhiteGold, AllImages: []string{"wg-W1.jpg", "wg-Model.jpg"}},
		},
	}

	assert.Equal(t, []string{"wg-W1.jpg"}, SelectGroup(g, domain.MetalWhiteGold).Images)
	assert.Equal(t, []string{"base-R1.jpg"}, SelectGroup(g, "").Images)
	assert.True(t, SelectGroup(g, domain.MetalYellowGold).Empty)
}
