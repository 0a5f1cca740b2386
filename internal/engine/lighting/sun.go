package lighting

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/midgard-sr/pkg/color"
	"github.com/Faultbox/midgard-sr/pkg/math"
)

// SunDirection converts longitude/latitude angles in degrees to a light
// direction. Longitude is rotation around the Y axis (0-360), latitude is
// elevation from the horizon (0-90). The result points towards the sun.
func SunDirection(longitude, latitude float32) math.Vec3 {
	lonSin, lonCos := math32.Sincos(math.Radians(longitude))
	latSin, latCos := math32.Sincos(math.Radians(latitude))

	return math.Vec3{
		X: latCos * lonSin,
		Y: latSin,
		Z: latCos * lonCos,
	}
}

// Sun returns a white directional light at the given angles.
func Sun(longitude, latitude, intensity float32) Light {
	return Directional(SunDirection(longitude, latitude), color.Gray(1), intensity)
}
