package render

import (
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"
	"strings"
	"sync"

	_ "golang.org/x/image/webp"
)

// ImageSize 是本地图片的原始尺寸，零值表示未知。
type ImageSize struct {
	Width  int
	Height int
}

// Known 判断宽高是否都已探测到。
func (s ImageSize) Known() bool {
	return s.Width > 0 && s.Height > 0
}

// imageProbe 从静态文件系统读取图片头信息，按路径缓存结果（包括失败）。
type imageProbe struct {
	static fs.FS
	cache  sync.Map
}

func newImageProbe(static fs.FS) *imageProbe {
	return &imageProbe{static: static}
}

const staticPrefix = "/static/"

func (p *imageProbe) Size(src string) ImageSize {
	if p == nil || p.static == nil || !strings.HasPrefix(src, staticPrefix) {
		return ImageSize{}
	}
	if cached, ok := p.cache.Load(src); ok {
		return cached.(ImageSize)
	}

	size := p.decode(strings.TrimPrefix(src, staticPrefix))
	p.cache.Store(src, size)
	return size
}

func (p *imageProbe) decode(name string) ImageSize {
	file, err := p.static.Open(name)
	if err != nil {
		return ImageSize{}
	}
	defer file.Close()

	cfg, _, err := image.DecodeConfig(file)
	if err != nil {
		return ImageSize{}
	}
	return ImageSize{Width: cfg.Width, Height: cfg.Height}
}
