package flight

// Regime is the global motion rule applied to every particle for a frame.
type Regime uint8

const (
	RegimeNormal Regime = iota
	RegimeWormholeRush
)

func (r Regime) String() string {
	switch r {
	case RegimeNormal:
		return "normal"
	case RegimeWormholeRush:
		return "wormhole-rush"
	}
	return "unknown"
}
