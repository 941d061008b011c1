package notepub

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"
	"io/fs"
	"net/url"
	"path"
	"strings"

	"golang.org/x/image/draw"

	"github.com/eringen/notepub/markdown"
)

const (
	jpegQuality = 80
	imagesDir   = "images"
)

// ProcessImage decodes an image from src, downscales it to maxWidth if it is
// wider, and encodes it as JPEG.
func ProcessImage(src io.Reader, maxWidth int) ([]byte, error) {
	img, _, err := image.Decode(src)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if maxWidth > 0 && w > maxWidth {
		newH := h * maxWidth / w
		if newH < 1 {
			newH = 1
		}
		dst := image.NewRGBA(image.Rect(0, 0, maxWidth, newH))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
		img = dst
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}

// assetSet resolves local image references for one publish cycle. Each source
// image is processed once per cycle no matter how many notes embed it.
type assetSet struct {
	notes    fs.FS
	maxWidth int
	write    func(rel string, data []byte) error
	warn     func(format string, args ...interface{})
	done     map[string]string // source path -> output name
}

// resolver returns an ImageResolver for the note at notePath. Resolved links
// are relative to the articles directory.
func (a *assetSet) resolver(notePath string) markdown.ImageResolver {
	return func(dest string) (string, bool) {
		if !markdown.IsLocal(dest) {
			return "", false
		}
		name, err := a.process(notePath, dest)
		if err != nil {
			a.warn("image %s in %s: %v", dest, notePath, err)
			return "", false
		}
		return "../" + imagesDir + "/" + name, true
	}
}

func (a *assetSet) process(notePath, dest string) (string, error) {
	unescaped, err := url.PathUnescape(dest)
	if err != nil {
		return "", err
	}
	if i := strings.IndexAny(unescaped, "?#"); i >= 0 {
		unescaped = unescaped[:i]
	}
	src := path.Join(path.Dir(notePath), unescaped)
	if !fs.ValidPath(src) {
		return "", fmt.Errorf("outside notes directory")
	}
	if name, ok := a.done[src]; ok {
		return name, nil
	}

	f, err := a.notes.Open(src)
	if err != nil {
		return "", err
	}
	defer f.Close()
	data, err := ProcessImage(f, a.maxWidth)
	if err != nil {
		return "", err
	}
	name := assetName(src)
	if err := a.write(imagesDir+"/"+name, data); err != nil {
		return "", err
	}
	a.done[src] = name
	return name, nil
}

// assetName derives the output file name from the image's path below the
// notes root, so identically named images in different folders stay apart.
func assetName(src string) string {
	base := strings.TrimSuffix(src, path.Ext(src))
	slug := Slugify(base)
	if slug == "" {
		slug = "image"
	}
	return slug + ".jpg"
}
