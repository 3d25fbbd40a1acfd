package particle

// Info holds the display data for a particle type.
type Info struct {
	Name         string `yaml:"name" json:"name"`
	Symbol       string `yaml:"symbol" json:"symbol"` // Short label drawn on the canvas
	Family       Family `yaml:"family" json:"family"`
	Mass         string `yaml:"mass,omitempty" json:"mass,omitempty"`
	Charge       string `yaml:"charge,omitempty" json:"charge,omitempty"`
	Spin         string `yaml:"spin,omitempty" json:"spin,omitempty"`
	AtomicNumber int    `yaml:"atomic_number,omitempty" json:"atomic_number,omitempty"`
	Description  string `yaml:"description,omitempty" json:"description,omitempty"`
}

// Lookup returns the display data for t.
func Lookup(t Type) (Info, bool) {
	info, ok := infos[t]
	return info, ok
}

// Name returns the human readable name of t, or the raw tag for unknown types.
func Name(t Type) string {
	if info, ok := infos[t]; ok {
		return info.Name
	}
	return string(t)
}

// Symbol returns the short canvas label of t.
func Symbol(t Type) string {
	if info, ok := infos[t]; ok {
		return info.Symbol
	}
	return "?"
}

// FamilyOf returns the family of t. Unknown types report an empty family.
func FamilyOf(t Type) Family {
	return infos[t].Family
}

// ByAtomicNumber returns the atom type with the given atomic number.
func ByAtomicNumber(z int) (Type, bool) {
	for t, info := range infos {
		if info.Family == FamilyAtom && info.AtomicNumber == z {
			return t, true
		}
	}
	return "", false
}

var infos = map[Type]Info{
	UpQuark: {
		Name: "Up Quark", Symbol: "u", Family: FamilyQuark,
		Mass: "2.2 MeV/c²", Charge: "+2/3 e", Spin: "1/2",
		Description: "One of the fundamental building blocks of matter. Up quarks combine with down quarks to form protons and neutrons.",
	},
	DownQuark: {
		Name: "Down Quark", Symbol: "d", Family: FamilyQuark,
		Mass: "4.7 MeV/c²", Charge: "-1/3 e", Spin: "1/2",
		Description: "Along with the up quark, it is a primary constituent of protons and neutrons.",
	},
	CharmQuark: {
		Name: "Charm Quark", Symbol: "c", Family: FamilyQuark,
		Mass: "1.27 GeV/c²", Charge: "+2/3 e", Spin: "1/2",
		Description: "A heavier type of quark. The J/ψ meson is a famous example of a charmed particle.",
	},
	StrangeQuark: {
		Name: "Strange Quark", Symbol: "s", Family: FamilyQuark,
		Mass: "95 MeV/c²", Charge: "-1/3 e", Spin: "1/2",
		Description: "Particles containing it are called strange because of their unexpectedly long lifetimes. The Lambda baryon is a strange particle.",
	},
	TopQuark: {
		Name: "Top Quark", Symbol: "t", Family: FamilyQuark,
		Mass: "172.7 GeV/c²", Charge: "+2/3 e", Spin: "1/2",
		Description: "The heaviest known elementary particle. It decays before it can form hadrons.",
	},
	BottomQuark: {
		Name: "Bottom Quark", Symbol: "b", Family: FamilyQuark,
		Mass: "4.18 GeV/c²", Charge: "-1/3 e", Spin: "1/2",
		Description: "A third-generation quark found in B mesons.",
	},
	AntiUpQuark: {
		Name: "Anti-Up Quark", Symbol: "~u", Family: FamilyAntiquark,
		Mass: "2.2 MeV/c²", Charge: "-2/3 e", Spin: "1/2",
		Description: "The antimatter counterpart of the up quark.",
	},
	AntiDownQuark: {
		Name: "Anti-Down Quark", Symbol: "~d", Family: FamilyAntiquark,
		Mass: "4.7 MeV/c²", Charge: "+1/3 e", Spin: "1/2",
		Description: "The antimatter counterpart of the down quark. It combines with quarks to form mesons.",
	},
	AntiCharmQuark: {
		Name: "Anti-Charm Quark", Symbol: "~c", Family: FamilyAntiquark,
		Mass: "1.27 GeV/c²", Charge: "-2/3 e", Spin: "1/2",
		Description: "The antimatter counterpart of the charm quark. Paired with a charm quark it forms charmonium.",
	},
	Electron: {
		Name: "Electron", Symbol: "e-", Family: FamilyLepton,
		Mass: "0.511 MeV/c²", Charge: "-1 e", Spin: "1/2",
		Description: "A stable elementary particle that orbits the nucleus of an atom.",
	},
	ElectronNeutrino: {
		Name: "Electron Neutrino", Symbol: "ve", Family: FamilyLepton,
		Mass: "< 1 eV/c²", Charge: "0 e", Spin: "1/2",
		Description: "A nearly massless, neutral lepton that barely interacts with matter.",
	},
	ElectronAntineutrino: {
		Name: "Electron Antineutrino", Symbol: "~ve", Family: FamilyLepton,
		Mass: "< 1 eV/c²", Charge: "0 e", Spin: "1/2",
		Description: "Produced in beta decay when a neutron turns into a proton.",
	},
	Photon: {
		Name: "Photon", Symbol: "γ", Family: FamilyBoson,
		Mass: "0", Charge: "0 e", Spin: "1",
		Description: "The quantum of the electromagnetic field and its force carrier.",
	},
	Gluon: {
		Name: "Gluon", Symbol: "g", Family: FamilyBoson,
		Mass: "0", Charge: "0 e", Spin: "1",
		Description: "The force carrier of the strong nuclear force, which glues quarks together.",
	},
	WBoson: {
		Name: "W Boson", Symbol: "W", Family: FamilyBoson,
		Mass: "80.4 GeV/c²", Charge: "±1 e", Spin: "1",
		Description: "Mediates the weak force and drives beta decay.",
	},
	ZBoson: {
		Name: "Z Boson", Symbol: "Z", Family: FamilyBoson,
		Mass: "91.2 GeV/c²", Charge: "0 e", Spin: "1",
		Description: "A neutral mediator of the weak force.",
	},

	Proton: {
		Name: "Proton", Symbol: "p+", Family: FamilyHadron,
		Mass: "938.3 MeV/c²", Charge: "+1 e", Spin: "1/2",
		Description: "A stable particle found in the nucleus of every atom.",
	},
	Neutron: {
		Name: "Neutron", Symbol: "n0", Family: FamilyHadron,
		Mass: "939.6 MeV/c²", Charge: "0 e", Spin: "1/2",
		Description: "A neutral particle found in the nucleus of most atoms.",
	},
	PionPlus: {
		Name: "Pion+", Symbol: "π+", Family: FamilyHadron,
		Mass: "139.6 MeV/c²", Charge: "+1 e", Spin: "0",
		Description: "The lightest meson, made of a quark and an antiquark.",
	},
	PionMinus: {
		Name: "Pion-", Symbol: "π-", Family: FamilyHadron,
		Mass: "139.6 MeV/c²", Charge: "-1 e", Spin: "0",
		Description: "The antiparticle of the positive pion.",
	},
	LambdaBaryon: {
		Name: "Lambda Baryon", Symbol: "Λ", Family: FamilyHadron,
		Mass: "1115.7 MeV/c²", Charge: "0 e", Spin: "1/2",
		Description: "An uncharged strange baryon, one of the first strange particles discovered.",
	},
	JPsiMeson: {
		Name: "J/ψ Meson", Symbol: "J/ψ", Family: FamilyHadron,
		Mass: "3096.9 MeV/c²", Charge: "0 e", Spin: "1",
		Description: "Its discovery in 1974 proved the existence of the charm quark.",
	},
	ExcitedElectron: {
		Name: "Excited Electron", Symbol: "e*", Family: FamilyUnstable,
		Charge: "-1 e", Spin: "1/2",
		Description: "An electron that absorbed a photon. It quickly decays back by emitting the photon.",
	},
	DecayingNeutron: {
		Name: "Decaying Neutron", Symbol: "n*", Family: FamilyUnstable,
		Charge: "0 e", Spin: "1/2",
		Description: "A neutron hit by a W boson. It undergoes beta decay into a proton, an electron and an electron antineutrino.",
	},
	Deuterium: {
		Name: "Deuterium", Symbol: "D", Family: FamilyIsotope, AtomicNumber: 1,
		Mass: "2.014 u", Charge: "0 e",
		Description: "Heavy hydrogen: one proton and one neutron in the nucleus.",
	},
	Tritium: {
		Name: "Tritium", Symbol: "T", Family: FamilyIsotope, AtomicNumber: 1,
		Mass: "3.016 u", Charge: "0 e",
		Description: "A radioactive isotope of hydrogen with two neutrons.",
	},

	Hydrogen:   atom("Hydrogen", "H", 1, "1.008 u", "The simplest and most abundant element in the universe."),
	Helium:     atom("Helium", "He", 2, "4.0026 u", "A chemically inert noble gas."),
	Lithium:    atom("Lithium", "Li", 3, "6.94 u", "The lightest metal, used in rechargeable batteries."),
	Beryllium:  atom("Beryllium", "Be", 4, "9.012 u", "A light, stiff alkaline earth metal."),
	Boron:      atom("Boron", "B", 5, "10.81 u", "A metalloid used in glass and detergents."),
	Carbon:     atom("Carbon", "C", 6, "12.011 u", "The basis of all known life on Earth."),
	Nitrogen:   atom("Nitrogen", "N", 7, "14.007 u", "About 78% of Earth's atmosphere."),
	Oxygen:     atom("Oxygen", "O", 8, "15.999 u", "A reactive nonmetal essential for respiration."),
	Fluorine:   atom("Fluorine", "F", 9, "18.998 u", "The most electronegative element."),
	Neon:       atom("Neon", "Ne", 10, "20.180 u", "A noble gas that glows reddish orange in discharge tubes."),
	Sodium:     atom("Sodium", "Na", 11, "22.990 u", "A soft, highly reactive alkali metal."),
	Magnesium:  atom("Magnesium", "Mg", 12, "24.305 u", "A light structural metal that burns with a bright white flame."),
	Aluminium:  atom("Aluminium", "Al", 13, "26.982 u", "The most abundant metal in Earth's crust."),
	Silicon:    atom("Silicon", "Si", 14, "28.085 u", "The basis of modern semiconductor technology."),
	Phosphorus: atom("Phosphorus", "P", 15, "30.974 u", "Essential for DNA and cellular energy."),
	Sulfur:     atom("Sulfur", "S", 16, "32.06 u", "A yellow nonmetal found near volcanoes."),
	Chlorine:   atom("Chlorine", "Cl", 17, "35.45 u", "A reactive halogen used to disinfect water."),
	Argon:      atom("Argon", "Ar", 18, "39.948 u", "A noble gas used to provide inert atmospheres."),

	Water:            molecule("Water", "H2O", "18.015 u", "A polar molecule essential for all known life."),
	Methane:          molecule("Methane", "CH4", "16.04 u", "The main component of natural gas."),
	Ammonia:          molecule("Ammonia", "NH3", "17.031 u", "A key component in fertilizers."),
	CarbonDioxide:    molecule("Carbon Dioxide", "CO2", "44.01 u", "A linear greenhouse gas used by plants for photosynthesis."),
	CarbonMonoxide:   molecule("Carbon Monoxide", "CO", "28.01 u", "A colorless, toxic, flammable gas."),
	SodiumChloride:   molecule("Sodium Chloride", "NaCl", "58.44 u", "Table salt, an ionic compound."),
	HydrochloricAcid: molecule("Hydrochloric Acid", "HCl", "36.46 u", "A strong acid found in gastric juice."),
	HydrogenSulfide:  molecule("Hydrogen Sulfide", "H2S", "34.08 u", "A flammable gas with the odor of rotten eggs."),
	HydrogenPeroxide: molecule("Hydrogen Peroxide", "H2O2", "34.01 u", "An oxidizer and antiseptic."),
}

func atom(name, symbol string, z int, mass, desc string) Info {
	return Info{Name: name, Symbol: symbol, Family: FamilyAtom, AtomicNumber: z, Mass: mass, Charge: "0 e", Description: desc}
}

func molecule(name, symbol, mass, desc string) Info {
	return Info{Name: name, Symbol: symbol, Family: FamilyMolecule, Mass: mass, Charge: "0 e", Description: desc}
}
