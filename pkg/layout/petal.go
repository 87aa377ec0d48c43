package layout

import "math"

// petalBaseCapacity is the population of layer 0. Every further layer holds
// two more items than the one inside it.
const petalBaseCapacity = 3

// PetalCapacity returns how many items layer can hold: 3, 5, 7, ...
func PetalCapacity(layer int) int {
	return petalBaseCapacity + 2*layer
}

// PetalSlot locates child index among total siblings in the petal strategy.
// It returns the zero-based layer, the item's position inside that layer and
// the layer's actual population (the outermost layer may be partial).
//
// The caller must ensure 0 <= index < total.
func PetalSlot(index, total int) (layer, indexInLayer, inLayer int) {
	consumed := 0
	for layer = 0; ; layer++ {
		capacity := PetalCapacity(layer)
		if index < consumed+capacity {
			return layer, index - consumed, min(capacity, total-consumed)
		}
		consumed += capacity
	}
}

// PetalLayers returns the number of layers needed for total items.
func PetalLayers(total int) int {
	if total < 1 {
		return 0
	}
	layer, _, _ := PetalSlot(total-1, total)
	return layer + 1
}

func petalOffset(index, total int, baseRadius float64, c Corner) Offset {
	layer, indexInLayer, inLayer := PetalSlot(index, total)
	radius := baseRadius * float64(layer+1)

	step := (math.Pi / 2) / float64(max(inLayer-1, 1))
	angle := step * float64(indexInLayer)

	return Offset{
		X: c.XSign() * radius * math.Cos(angle),
		Y: c.YSign() * radius * math.Sin(angle),
	}
}
