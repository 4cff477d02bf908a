package retarget

import "fmt"

// Selector names one of the six difficulty retargeting algorithms a chain
// configures via its "retarget" setting. It is the enum form of the
// source's bare -retarget integer, kept serializable to {1..6} so existing
// configuration files keep working unmodified.
type Selector uint8

const (
	// Classic is the original Bitcoin/Litecoin interval retarget.
	Classic Selector = 1
	// DarkGravityWaveV3 is Dash's DarkGravity Wave v3.
	DarkGravityWaveV3 Selector = 2
	// KimotoGravityWell is Megacoin-style KimotoGravityWell.
	KimotoGravityWell Selector = 3
	// DigiShield is DigiByte's original per-interval retarget.
	DigiShield Selector = 4
	// DualKGW3 is the Limx Dev DUAL_KGW3 fusion of KGW and classical retarget.
	DualKGW3 Selector = 5
	// OrbitcoinSuperShield is Orbitcoin's dual-window damped retarget.
	OrbitcoinSuperShield Selector = 6
)

// Valid reports whether s is one of the six defined algorithms.
func (s Selector) Valid() bool {
	return s >= Classic && s <= OrbitcoinSuperShield
}

func (s Selector) String() string {
	switch s {
	case Classic:
		return "standard bitcoin/litecoin retarget"
	case DarkGravityWaveV3:
		return "darkgravitywave v3 retarget"
	case KimotoGravityWell:
		return "kimotogravitywell retarget"
	case DigiShield:
		return "digishield retarget"
	case DualKGW3:
		return "dualkgw3 retarget"
	case OrbitcoinSuperShield:
		return "orbitcoin retarget"
	default:
		return fmt.Sprintf("unknown retarget algorithm (%d)", uint8(s))
	}
}
