package terrain

// Material - идентификатор материала, хранится в начале состояния вокселя little-endian
type Material uint32

const (
	Air Material = iota
	Stone
	Dirt
	Grass
	Water
)

func (m Material) String() string {
	switch m {
	case Air:
		return "air"
	case Stone:
		return "stone"
	case Dirt:
		return "dirt"
	case Grass:
		return "grass"
	case Water:
		return "water"
	default:
		return "unknown"
	}
}

// Solid сообщает, перекрывает ли материал соседние грани
func (m Material) Solid() bool {
	return m != Air && m != Water
}

// materialBytes - сколько байт состояния занимает идентификатор
const materialBytes = 4

// EncodeMaterial записывает материал в начало state. Остальные байты обнуляются.
// При state короче 4 байт старшие байты идентификатора отбрасываются.
func EncodeMaterial(state []byte, m Material) {
	for i := range state {
		if i < materialBytes {
			state[i] = byte(m >> (8 * i))
		} else {
			state[i] = 0
		}
	}
}

// MaterialOf читает материал из состояния вокселя
func MaterialOf(state []byte) Material {
	var m Material
	for i := 0; i < len(state) && i < materialBytes; i++ {
		m |= Material(state[i]) << (8 * i)
	}
	return m
}

// IsSolid - предикат заполненности для world.FaceOptions.IsFull
func IsSolid(state []byte) bool {
	return MaterialOf(state).Solid()
}
