package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/gogpu/vertex"
	"github.com/gogpu/vertex/shader"
)

// Config is the vertexgen.toml file format.
//
//	wgsl = "shader/shaders/vertex_input.wgsl"
//	metal = "shader/shaders/vertex_types.h"
//	metal_struct = "Vertex"
//	guard = "VERTEX_TYPES_H"
//
// The WGSL and Metal struct names are set separately. WGSLStruct must
// match the type the consuming shader names in its entry point; the
// bundled textured.wgsl reads VertexInput, which is the default.
type Config struct {
	WGSL        string `toml:"wgsl"`
	Metal       string `toml:"metal"`
	WGSLStruct  string `toml:"wgsl_struct"`
	MetalStruct string `toml:"metal_struct"`
	Guard       string `toml:"guard"`
}

// LoadConfig reads a TOML config. Relative output paths are resolved
// against the config file's directory.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}

	dir := filepath.Dir(path)
	cfg.WGSL = resolve(dir, cfg.WGSL)
	cfg.Metal = resolve(dir, cfg.Metal)
	return cfg, nil
}

func resolve(dir, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(dir, p)
}

// override applies non-empty flag values over the config.
func (c *Config) override(wgsl, metal, wgslStruct, metalStruct string) {
	if wgsl != "" {
		c.WGSL = wgsl
	}
	if metal != "" {
		c.Metal = metal
	}
	if wgslStruct != "" {
		c.WGSLStruct = wgslStruct
	}
	if metalStruct != "" {
		c.MetalStruct = metalStruct
	}
}

type output struct {
	path    string
	content string
}

func (c Config) outputs(attrs []vertex.Attribute) []output {
	var outs []output
	if c.WGSL != "" {
		var opts []shader.Option
		if c.WGSLStruct != "" {
			opts = append(opts, shader.WithStructName(c.WGSLStruct))
		}
		outs = append(outs, output{path: c.WGSL, content: shader.VertexInputWGSL(attrs, opts...)})
	}
	if c.Metal != "" {
		var opts []shader.Option
		if c.MetalStruct != "" {
			opts = append(opts, shader.WithStructName(c.MetalStruct))
		}
		if c.Guard != "" {
			opts = append(opts, shader.WithGuard(c.Guard))
		}
		outs = append(outs, output{path: c.Metal, content: shader.MetalHeader(attrs, opts...)})
	}
	return outs
}

// writeIfChanged writes content to path unless the file already holds it.
func writeIfChanged(path, content string) (bool, error) {
	ok, err := upToDate(path, content)
	if err != nil {
		return false, err
	}
	if ok {
		return false, nil
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return false, fmt.Errorf("create %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil { //nolint:gosec // generated source file
		return false, fmt.Errorf("write %s: %w", path, err)
	}
	return true, nil
}

// upToDate reports whether path exists with exactly content.
func upToDate(path, content string) (bool, error) {
	existing, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read %s: %w", path, err)
	}
	return string(existing) == content, nil
}
