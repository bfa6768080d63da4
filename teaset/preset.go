package teaset

import (
	"context"
	"fmt"
	"io/fs"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/npillmayer/cortex"
)

// Preset names a patch set and the winding its source data is recorded in.
type Preset struct {
	Name    string
	Winding Winding
}

// The classic tea set. The teapot data lists patch rows in the opposite
// order from teacup and teaspoon.
var (
	Teapot   = Preset{Name: "teapot", Winding: RowMajorReversed}
	Teacup   = Preset{Name: "teacup", Winding: RowMajor}
	Teaspoon = Preset{Name: "teaspoon", Winding: RowMajor}
)

// Filename is the name of the preset's source file.
func (p Preset) Filename() string {
	return p.Name + ".txt"
}

// LoadPreset reads the source data of a preset from fsys and loads it.
func LoadPreset(fsys fs.FS, p Preset) (*PatchSet, error) {
	f, err := fsys.Open(p.Filename())
	if err != nil {
		tracer().Errorf("preset %s: %v", p.Name, err)
		return nil, fmt.Errorf("preset %s: %w", p.Name, err)
	}
	defer f.Close()
	ps, err := Read(f, p.Winding)
	if err != nil {
		return nil, fmt.Errorf("preset %s: %w", p.Name, err)
	}
	return ps, nil
}

// Build tesselates a patch set into a new mesh, on the grid and with the
// number of workers configured in settings.
func Build(ps *PatchSet, settings cortex.Settings) (*cortex.Mesh3, error) {
	m := cortex.NewMesh[mgl64.Vec3](cortex.Triangles)
	var err error
	if settings.Workers > 1 {
		err = ps.TesselateParallel(context.Background(), settings.UCount, settings.VCount,
			settings.Workers, m)
	} else {
		err = ps.Tesselate(settings.UCount, settings.VCount, m)
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}
