package scene

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/henri123lemoine/layoutgen/internal/canvas"
)

// ErrFontUnavailable is returned when no data is registered for a font.
var ErrFontUnavailable = errors.New("font unavailable")

// FontLibrary holds font data and the fonts loaded from it.
// Faces are not safe for concurrent use, so every face access holds mu.
type FontLibrary struct {
	mu      sync.Mutex
	sources map[canvas.FontName][]byte
	loaded  map[canvas.FontName]*opentype.Font
	faces   map[faceKey]font.Face
}

type faceKey struct {
	name canvas.FontName
	size float64
}

// NewFontLibrary returns a library with the Go fonts registered under their own
// family and under "Inter", the family generated layouts ask for.
func NewFontLibrary() *FontLibrary {
	l := &FontLibrary{
		sources: make(map[canvas.FontName][]byte),
		loaded:  make(map[canvas.FontName]*opentype.Font),
		faces:   make(map[faceKey]font.Face),
	}
	for _, family := range []string{"Go", "Inter"} {
		l.Register(canvas.FontName{Family: family, Style: "Regular"}, goregular.TTF)
		l.Register(canvas.FontName{Family: family, Style: "Medium"}, gomedium.TTF)
		l.Register(canvas.FontName{Family: family, Style: "Bold"}, gobold.TTF)
		l.Register(canvas.FontName{Family: family, Style: "Italic"}, goitalic.TTF)
		l.Register(canvas.FontName{Family: family, Style: "Bold Italic"}, gobolditalic.TTF)
	}
	return l
}

// Register makes font data available for loading under name.
func (l *FontLibrary) Register(name canvas.FontName, data []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.sources[name] = data
	delete(l.loaded, name)
	for key := range l.faces {
		if key.name == name {
			delete(l.faces, key)
		}
	}
}

// Load parses the font registered under name. Loading is idempotent.
func (l *FontLibrary) Load(ctx context.Context, name canvas.FontName) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.loaded[name]; ok {
		return nil
	}
	data, ok := l.sources[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrFontUnavailable, name)
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return fmt.Errorf("parse font %s: %w", name, err)
	}
	l.loaded[name] = f
	return nil
}

// IsLoaded reports whether name was loaded.
func (l *FontLibrary) IsLoaded(name canvas.FontName) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.loaded[name]
	return ok
}

// Measure returns the width and height of s set in name at size.
// Lines are separated by newlines.
func (l *FontLibrary) Measure(name canvas.FontName, size float64, s string) (float64, float64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	face, err := l.face(name, size)
	if err != nil {
		return 0, 0, err
	}
	lineHeight := fixedToFloat(face.Metrics().Height)
	lines := strings.Split(s, "\n")
	var width float64
	for _, line := range lines {
		if w := fixedToFloat(font.MeasureString(face, line)); w > width {
			width = w
		}
	}
	return width, lineHeight * float64(len(lines)), nil
}

// WithFace runs fn with the face for name at size while holding the library lock.
func (l *FontLibrary) WithFace(name canvas.FontName, size float64, fn func(font.Face)) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	face, err := l.face(name, size)
	if err != nil {
		return err
	}
	fn(face)
	return nil
}

func (l *FontLibrary) face(name canvas.FontName, size float64) (font.Face, error) {
	key := faceKey{name: name, size: size}
	if face, ok := l.faces[key]; ok {
		return face, nil
	}
	f, ok := l.loaded[name]
	if !ok {
		return nil, fmt.Errorf("font %s is not loaded", name)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("create face %s %.1f: %w", name, size, err)
	}
	l.faces[key] = face
	return face, nil
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
