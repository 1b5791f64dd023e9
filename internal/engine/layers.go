package engine

// MaxLayers is the number of distinct layers a LayerMask can address.
const MaxLayers = 32

// LayerMask selects a set of layers, one bit per layer.
type LayerMask uint32

const (
	LayerNothing    LayerMask = 0
	LayerEverything LayerMask = ^LayerMask(0)
)

// LayerDefault is the layer new GameObjects start on.
const LayerDefault = 0

// MaskOf builds a mask containing the given layers. Out of range layers are ignored.
func MaskOf(layers ...int) LayerMask {
	var m LayerMask
	for _, l := range layers {
		if l < 0 || l >= MaxLayers {
			continue
		}
		m |= 1 << uint(l)
	}
	return m
}

// Contains reports whether layer is selected by the mask.
func (m LayerMask) Contains(layer int) bool {
	if layer < 0 || layer >= MaxLayers {
		return false
	}
	return m&(1<<uint(layer)) != 0
}
