package material

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// RefractedDirection bends the incident direction through the surface using
// Snell's law with the material's refractive index. normal is the outward
// surface normal: a ray travelling against it is entering the material, one
// travelling with it is leaving. Total internal reflection returns the mirror
// direction.
func (m *Material) RefractedDirection(incident, normal core.Vec3) core.Vec3 {
	unitDirection := incident.Normalize()
	n := normal.Normalize()

	var refractionRatio float64
	if unitDirection.Dot(n) < 0 {
		refractionRatio = 1.0 / m.refractiveIndex // Entering the material
	} else {
		refractionRatio = m.refractiveIndex // Exiting the material
		n = n.Negate()
	}

	cosTheta := math.Min(-unitDirection.Dot(n), 1.0)
	sinTheta := math.Sqrt(math.Max(0, 1.0-cosTheta*cosTheta))

	if refractionRatio*sinTheta > 1.0 {
		return ReflectedDirection(unitDirection, n)
	}

	return refractVector(unitDirection, n, cosTheta, refractionRatio).Normalize()
}

// ReflectedDirection mirrors the incident direction about the normal: d - 2(d·n)n
func ReflectedDirection(incident, normal core.Vec3) core.Vec3 {
	return incident.Normalize().Reflect(normal.Normalize())
}

// refractVector calculates the refraction of a unit vector using Snell's law
func refractVector(uv, n core.Vec3, cosTheta, etaiOverEtat float64) core.Vec3 {
	rOutPerp := uv.Add(n.Multiply(cosTheta)).Multiply(etaiOverEtat)
	rOutParallel := n.Multiply(-math.Sqrt(math.Abs(1.0 - rOutPerp.LengthSquared())))
	return rOutPerp.Add(rOutParallel)
}

