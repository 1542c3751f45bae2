package terrain

import (
	"github.com/aquilax/go-perlin"
)

const (
	noiseAlpha   = 2.0 // Сглаживание шума
	noiseBeta    = 2.0 // Частота шума
	noiseOctaves = 3
)

// Noise - шум Перлина со своим сидом, значения в диапазоне [0, 1]
type Noise struct {
	perlin *perlin.Perlin
}

// NewNoise создаёт генератор шума с указанным сидом
func NewNoise(seed int64) *Noise {
	return &Noise{perlin: perlin.NewPerlin(noiseAlpha, noiseBeta, noiseOctaves, seed)}
}

// Noise2D возвращает значение шума для указанных координат (от 0 до 1)
func (n *Noise) Noise2D(x, y float64) float64 {
	// Октавы могут выйти за [-1, 1]
	v := (n.perlin.Noise2D(x, y) + 1.0) / 2.0
	return min(max(v, 0), 1)
}
