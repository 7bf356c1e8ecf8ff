package rendering

import (
	"github.com/fosdem/triangle/lib/demo"
	"github.com/fosdem/triangle/lib/rendering/shaders"
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// GL implements demo.GL on top of an OpenGL 4.1 core context. All methods
// must be called from the thread the context is current on.
type GL struct {
	// a core profile refuses to draw without a bound VAO, even when no
	// vertex attributes are used
	vao uint32
}

var _ demo.GL = (*GL)(nil)

func New() *GL {
	return &GL{}
}

var stageTypes = map[demo.ShaderStage]uint32{
	demo.VertexStage:   gl.VERTEX_SHADER,
	demo.FragmentStage: gl.FRAGMENT_SHADER,
}

func (g *GL) CompileShader(stage demo.ShaderStage, source string) (uint32, error) {
	return shaders.Compile(stage.String(), source, stageTypes[stage])
}

func (g *GL) LinkProgram(vertex, fragment uint32) (uint32, error) {
	return shaders.Link(vertex, fragment)
}

func (g *GL) DetachShader(program, shader uint32) {
	gl.DetachShader(program, shader)
}

func (g *GL) DeleteShader(shader uint32) {
	gl.DeleteShader(shader)
}

func (g *GL) UseProgram(program uint32) {
	gl.UseProgram(program)
}

func (g *GL) DeleteProgram(program uint32) {
	gl.DeleteProgram(program)
}

func (g *GL) Release() {
	if g.vao != 0 {
		gl.DeleteVertexArrays(1, &g.vao)
		g.vao = 0
	}
}

func (g *GL) ClearColour(c mgl32.Vec4) {
	gl.ClearColor(c[0], c[1], c[2], c[3])
}

func (g *GL) Clear() {
	gl.Clear(gl.COLOR_BUFFER_BIT)
}

func (g *GL) DrawArrays(first, count int32) {
	if g.vao == 0 {
		gl.GenVertexArrays(1, &g.vao)
	}
	gl.BindVertexArray(g.vao)
	gl.DrawArrays(gl.TRIANGLES, first, count)
}

func (g *GL) Viewport(width, height int32) {
	gl.Viewport(0, 0, width, height)
}
