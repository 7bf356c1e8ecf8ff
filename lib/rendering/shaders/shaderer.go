package shaders

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"text/template"
)

//go:embed *.frag *.vert
var templateDir embed.FS

const (
	VertexName   = "triangle.vert"
	FragmentName = "triangle.frag"
)

type Shaderer struct {
	templates *template.Template
}

// NewShaderer parses the shader templates from dir, or the built-in ones when
// dir is empty
func NewShaderer(dir string) (*Shaderer, error) {
	s := &Shaderer{}

	var fsys fs.FS = templateDir
	if dir != "" {
		fsys = os.DirFS(dir)
	}

	var err error
	s.templates, err = template.ParseFS(fsys, "*.frag", "*.vert")
	if err != nil {
		return nil, fmt.Errorf("could not parse shader templates: %w", err)
	}

	return s, nil
}

// ShaderData contains stuff that gets passed to the shader
type ShaderData struct {
	// Version is the GLSL version directive, without "#version"
	Version string
}

func DefaultShaderData() *ShaderData {
	return &ShaderData{Version: "410 core"}
}

func (s *Shaderer) GetShaderSource(name string, data *ShaderData) (string, error) {
	var b bytes.Buffer
	err := s.templates.ExecuteTemplate(&b, name, data)
	if err != nil {
		return "", fmt.Errorf("error while rendering template %s: %w", name, err)
	}

	return b.String(), nil
}

// Sources renders the vertex and fragment shader for the triangle
func (s *Shaderer) Sources(data *ShaderData) (vertex, fragment string, err error) {
	vertex, err = s.GetShaderSource(VertexName, data)
	if err != nil {
		return "", "", fmt.Errorf("could not get vertex shader: %w", err)
	}

	fragment, err = s.GetShaderSource(FragmentName, data)
	if err != nil {
		return "", "", fmt.Errorf("could not get fragment shader: %w", err)
	}
	return vertex, fragment, nil
}

func (s *Shaderer) TemplateNames() []string {
	var names []string
	for _, t := range s.templates.Templates() {
		names = append(names, t.Name())
	}
	return names
}
