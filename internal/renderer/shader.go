package renderer

import (
	_ "embed"
	"image/color"
	"strings"
)

//go:embed shader.glsl
var defaultShaderSource string

const glslVersion = "#version 330 core\n"

// buildShaderSource prefixes source with the GLSL version and a define
// selecting the stage block.
func buildShaderSource(source, stage string) string {
	var sb strings.Builder
	sb.WriteString(glslVersion)
	sb.WriteString("#define " + stage + "\n")
	sb.WriteString(source)
	return sb.String()
}

func colorToFloat(c color.Color) [4]float32 {
	if c == nil {
		return [4]float32{}
	}
	r, g, b, a := c.RGBA()
	return [4]float32{
		float32(r) / 0xffff,
		float32(g) / 0xffff,
		float32(b) / 0xffff,
		float32(a) / 0xffff,
	}
}
