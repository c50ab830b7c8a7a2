package graphics

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
)

//go:embed shaders/*.vert shaders/*.frag
var embedded embed.FS

// Variant names a vertex/fragment pair.
type Variant string

const (
	// VariantTranslate moves the mesh along X through the float uniform "xMove".
	VariantTranslate Variant = "translate"
	// VariantModel transforms the mesh by the mat4 uniform "model".
	VariantModel Variant = "model"
)

// Variants lists the built-in shader pairs.
func Variants() []Variant {
	return []Variant{VariantTranslate, VariantModel}
}

// ShaderSource is the GLSL text of one variant.
type ShaderSource struct {
	Vertex   string
	Fragment string
}

// Files returns the file names holding the variant's stages.
func (v Variant) Files() (vert, frag string) {
	return string(v) + ".vert", string(v) + ".frag"
}

// SourceLoader reads shader sources from the embedded set or, when Dir is
// set, from a directory on disk.
type SourceLoader struct {
	Dir string
}

// Load reads both stages of variant.
func (l SourceLoader) Load(v Variant) (ShaderSource, error) {
	var fsys fs.FS
	var err error
	if l.Dir == "" {
		fsys, err = fs.Sub(embedded, "shaders")
		if err != nil {
			return ShaderSource{}, err
		}
	} else {
		fsys = os.DirFS(l.Dir)
	}

	vert, frag := v.Files()
	vs, err := fs.ReadFile(fsys, path.Clean(vert))
	if err != nil {
		return ShaderSource{}, fmt.Errorf("could not read vertex shader for %q: %w", v, err)
	}
	fsrc, err := fs.ReadFile(fsys, path.Clean(frag))
	if err != nil {
		return ShaderSource{}, fmt.Errorf("could not read fragment shader for %q: %w", v, err)
	}
	return ShaderSource{Vertex: string(vs), Fragment: string(fsrc)}, nil
}

// CompileVariant loads and compiles variant.
func (l SourceLoader) CompileVariant(v Variant) (*ShaderProgram, error) {
	src, err := l.Load(v)
	if err != nil {
		return nil, err
	}
	p, err := Compile(src.Vertex, src.Fragment)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", v, err)
	}
	return p, nil
}
