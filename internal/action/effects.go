package action

// EffectClass is the interaction a detective set demands once played.
type EffectClass int

const (
	EffectChoosePlayer EffectClass = iota + 1
	EffectRevealSecret
	EffectHideSecret
)

func (e EffectClass) String() string {
	switch e {
	case EffectChoosePlayer:
		return "choose-player"
	case EffectRevealSecret:
		return "reveal-secret"
	case EffectHideSecret:
		return "hide-secret"
	default:
		return "unknown"
	}
}

var setEffects = map[string]EffectClass{
	"TB":  EffectChoosePlayer,
	"TUB": EffectChoosePlayer,
	"TBB": EffectChoosePlayer,
	"LEB": EffectChoosePlayer,
	"MS":  EffectChoosePlayer,
	"HP":  EffectRevealSecret,
	"MM":  EffectRevealSecret,
	"PP":  EffectHideSecret,
}

// EffectOf maps a set type tag to its effect class.
func EffectOf(tag string) (EffectClass, bool) {
	c, ok := setEffects[tag]
	return c, ok
}

// wantRevealed is the revealed flag of the secrets an effect can target.
func (e EffectClass) wantRevealed() bool {
	return e == EffectHideSecret
}
