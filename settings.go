package cortex

import (
	"fmt"
	"strconv"

	"github.com/npillmayer/schuko"
)

// Configuration keys read by SettingsFrom.
const (
	KeyUCount          = "tesselation.u"
	KeyVCount          = "tesselation.v"
	KeyTCount          = "tesselation.t"
	KeyWorkers         = "tesselation.workers"
	KeySphereDivisions = "sphere.divisions"
)

// Settings collects the sample counts used when tesselating without explicit
// parameters.
type Settings struct {
	UCount          int // samples in u-direction of a surface, ≥ 2
	VCount          int // samples in v-direction of a surface, ≥ 2
	TCount          int // samples along a curve, ≥ 2
	SphereDivisions int // recursion depth for geodesic spheres, ≥ 0
	Workers         int // parallel workers for patch sets, ≥ 1
}

// DefaultSettings returns the settings used if nothing is configured.
// A 12×12 grid per bicubic patch gives a smooth teapot.
func DefaultSettings() Settings {
	return Settings{
		UCount:          12,
		VCount:          12,
		TCount:          16,
		SphereDivisions: 3,
		Workers:         1,
	}
}

// SettingsFrom reads settings from an application configuration. Keys which
// are not set keep their default value. conf may be nil.
func SettingsFrom(conf schuko.Configuration) (Settings, error) {
	s := DefaultSettings()
	if conf == nil {
		return s, nil
	}
	var err error
	read := func(key string, min int, dest *int) {
		if err != nil || !conf.IsSet(key) {
			return
		}
		str := conf.GetString(key)
		n, e := strconv.Atoi(str)
		if e != nil {
			err = fmt.Errorf("%w: configuration key %q = %q is not an integer", ErrPrecondition, key, str)
			return
		}
		if n < min {
			err = fmt.Errorf("%w: configuration key %q = %d, must be at least %d", ErrPrecondition, key, n, min)
			return
		}
		*dest = n
	}
	read(KeyUCount, 2, &s.UCount)
	read(KeyVCount, 2, &s.VCount)
	read(KeyTCount, 2, &s.TCount)
	read(KeySphereDivisions, 0, &s.SphereDivisions)
	read(KeyWorkers, 1, &s.Workers)
	if err != nil {
		tracer().Errorf("invalid configuration: %v", err)
		return DefaultSettings(), err
	}
	tracer().Debugf("tesselation settings: %+v", s)
	return s, nil
}
