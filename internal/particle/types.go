// Package particle defines the closed set of particle types known to the lab.
package particle

import "sort"

// Type identifies a kind of particle. The zero value is not a valid type.
type Type string

// Elementary particles.
const (
	UpQuark              Type = "UP_QUARK"
	DownQuark            Type = "DOWN_QUARK"
	CharmQuark           Type = "CHARM_QUARK"
	StrangeQuark         Type = "STRANGE_QUARK"
	TopQuark             Type = "TOP_QUARK"
	BottomQuark          Type = "BOTTOM_QUARK"
	AntiUpQuark          Type = "ANTI_UP_QUARK"
	AntiDownQuark        Type = "ANTI_DOWN_QUARK"
	AntiCharmQuark       Type = "ANTI_CHARM_QUARK"
	Electron             Type = "ELECTRON"
	ElectronNeutrino     Type = "ELECTRON_NEUTRINO"
	ElectronAntineutrino Type = "ELECTRON_ANTINEUTRINO"
	Photon               Type = "PHOTON"
	Gluon                Type = "GLUON"
	WBoson               Type = "W_BOSON"
	ZBoson               Type = "Z_BOSON"
)

// Hadrons, isotopes and unstable states.
const (
	Proton          Type = "PROTON"
	Neutron         Type = "NEUTRON"
	PionPlus        Type = "PION_PLUS"
	PionMinus       Type = "PION_MINUS"
	LambdaBaryon    Type = "LAMBDA_BARYON"
	JPsiMeson       Type = "J_PSI_MESON"
	ExcitedElectron Type = "EXCITED_ELECTRON"
	DecayingNeutron Type = "DECAYING_NEUTRON"
	Deuterium       Type = "DEUTERIUM"
	Tritium         Type = "TRITIUM"
)

// Atoms.
const (
	Hydrogen   Type = "HYDROGEN"
	Helium     Type = "HELIUM"
	Lithium    Type = "LITHIUM"
	Beryllium  Type = "BERYLLIUM"
	Boron      Type = "BORON"
	Carbon     Type = "CARBON"
	Nitrogen   Type = "NITROGEN"
	Oxygen     Type = "OXYGEN"
	Fluorine   Type = "FLUORINE"
	Neon       Type = "NEON"
	Sodium     Type = "SODIUM"
	Magnesium  Type = "MAGNESIUM"
	Aluminium  Type = "ALUMINIUM"
	Silicon    Type = "SILICON"
	Phosphorus Type = "PHOSPHORUS"
	Sulfur     Type = "SULFUR"
	Chlorine   Type = "CHLORINE"
	Argon      Type = "ARGON"
)

// Molecules.
const (
	Water            Type = "WATER"
	Methane          Type = "METHANE"
	Ammonia          Type = "AMMONIA"
	CarbonDioxide    Type = "CARBON_DIOXIDE"
	CarbonMonoxide   Type = "CARBON_MONOXIDE"
	SodiumChloride   Type = "SODIUM_CHLORIDE"
	HydrochloricAcid Type = "HYDROCHLORIC_ACID"
	HydrogenSulfide  Type = "HYDROGEN_SULFIDE"
	HydrogenPeroxide Type = "HYDROGEN_PEROXIDE"
)

// Family groups types for display and palette ordering.
type Family string

const (
	FamilyQuark     Family = "quark"
	FamilyAntiquark Family = "antiquark"
	FamilyLepton    Family = "lepton"
	FamilyBoson     Family = "boson"
	FamilyHadron    Family = "hadron"
	FamilyUnstable  Family = "unstable"
	FamilyIsotope   Family = "isotope"
	FamilyAtom      Family = "atom"
	FamilyMolecule  Family = "molecule"
)

// Elementary reports whether the family holds particles with no internal structure.
func (f Family) Elementary() bool {
	switch f {
	case FamilyQuark, FamilyAntiquark, FamilyLepton, FamilyBoson:
		return true
	}
	return false
}

// Palette is the ordered list of elementary types offered to the user.
var Palette = []Type{
	UpQuark, DownQuark, CharmQuark, StrangeQuark, TopQuark, BottomQuark,
	AntiUpQuark, AntiDownQuark, AntiCharmQuark,
	Electron, ElectronNeutrino, ElectronAntineutrino,
	Photon, Gluon, WBoson, ZBoson,
}

// Known reports whether t is one of the lab's particle types.
func Known(t Type) bool {
	_, ok := infos[t]
	return ok
}

// All returns every known type sorted by name.
func All() []Type {
	out := make([]Type, 0, len(infos))
	for t := range infos {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Parse resolves a user supplied name ("proton", "Up Quark", "UP_QUARK")
// or canvas symbol ("H2O") to a known type.
func Parse(s string) (Type, bool) {
	// Symbols are case sensitive: "b" is a bottom quark, "B" is boron.
	for t, info := range infos {
		if info.Symbol == s {
			return t, true
		}
	}
	key := normalize(s)
	for t, info := range infos {
		if normalize(string(t)) == key || normalize(info.Name) == key {
			return t, true
		}
	}
	return "", false
}

func normalize(s string) string {
	b := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'A' && c <= 'Z':
			b = append(b, c+'a'-'A')
		case c == ' ' || c == '-' || c == '_':
			b = append(b, '_')
		default:
			b = append(b, c)
		}
	}
	return string(b)
}
