// Package icons rasterises the step icons from embedded SVG sources.
package icons

import (
	"errors"
	"fmt"
	"image"
	"strings"
	"sync"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"

	"github.com/BrandonKowalski/confirmflow/pkg/confirmflow/constants"
)

// ErrNoIcon is returned for constants.IconNone and unknown icons.
var ErrNoIcon = errors.New("icons: no source for icon")

const svgHeader = `<svg xmlns="http://www.w3.org/2000/svg" width="14" height="14" viewBox="0 0 14 14">`

// Sources are drawn on a 14x14 grid in white so the renderer can tint them.
var sources = map[constants.Icon]string{
	constants.IconEye:         `<path fill="#ffffff" d="M0 7 L4 3 L10 3 L14 7 L10 11 L4 11 Z"/>`,
	constants.IconWarning:     `<path fill="#ffffff" d="M7 0 L14 13 L0 13 Z"/>`,
	constants.IconCrossmark:   `<path fill="#ffffff" d="M1 3 L3 1 L7 5 L11 1 L13 3 L9 7 L13 11 L11 13 L7 9 L3 13 L1 11 L5 7 Z"/>`,
	constants.IconValidate:    `<path fill="#ffffff" d="M0 7 L2 5 L5 8 L12 1 L14 3 L5 12 Z"/>`,
	constants.IconWallet:      `<path fill="#ffffff" d="M0 3 L12 3 L12 5 L14 5 L14 11 L0 11 Z"/>`,
	constants.IconCertificate: `<path fill="#ffffff" d="M2 0 L12 0 L12 14 L7 11 L2 14 Z"/>`,
}

type key struct {
	icon constants.Icon
	size int
}

var (
	cacheMu sync.Mutex
	cache   = map[key]*image.RGBA{}
)

// Rasterize renders icon into a size x size RGBA image. Results are cached;
// callers must not modify the returned image.
func Rasterize(icon constants.Icon, size int) (*image.RGBA, error) {
	body, ok := sources[icon]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoIcon, icon.GetName())
	}

	cacheMu.Lock()
	defer cacheMu.Unlock()

	k := key{icon: icon, size: size}
	if img, ok := cache[k]; ok {
		return img, nil
	}

	svg, err := oksvg.ReadIconStream(strings.NewReader(svgHeader + body + `</svg>`))
	if err != nil {
		return nil, fmt.Errorf("icons: parse %s: %w", icon.GetName(), err)
	}
	svg.SetTarget(0, 0, float64(size), float64(size))

	img := image.NewRGBA(image.Rect(0, 0, size, size))
	scanner := rasterx.NewScannerGV(size, size, img, img.Bounds())
	svg.Draw(rasterx.NewDasher(size, size, scanner), 1.0)

	cache[k] = img
	return img, nil
}
