package question

// BuiltinPoolID identifies the bundled question set.
const BuiltinPoolID = "builtin"

// Builtin returns a fresh copy of the bundled 40-question biology pool.
func Builtin() []Question {
	qs := make([]Question, 0, len(builtinRows))
	for _, r := range builtinRows {
		q, err := New(r.id, r.prompt, r.options, r.answer, r.explanation, r.chapter, splitTags(r.tags))
		if err != nil {
			panic("question: invalid builtin row " + r.id + ": " + err.Error())
		}
		qs = append(qs, q)
	}
	return qs
}

type builtinRow struct {
	id, prompt  string
	options     [NumOptions]string
	answer      string
	explanation string
	chapter     string
	tags        string
}

var builtinRows = []builtinRow{
	{
		id: "1", prompt: "Which interaction MOST directly stabilizes α-helices and β-sheets?",
		options: [NumOptions]string{
			"Hydrogen bonds between backbone groups",
			"Hydrophobic clustering of side chains",
			"Ionic bonds between acidic/basic R groups",
			"Disulfide bridges between cysteines",
		},
		answer: "A", chapter: "3", tags: "proteins,structure",
		explanation: "Secondary structure is stabilized by H-bonds between backbone C=O and N–H.",
	},
	{
		id: "2", prompt: "A single amino acid change most directly changes which protein level first?",
		options: [NumOptions]string{
			"Primary",
			"Secondary",
			"Tertiary",
			"Quaternary",
		},
		answer: "A", chapter: "3", tags: "proteins",
		explanation: "Primary sequence changes first; higher levels may change as a consequence.",
	},
	{
		id: "3", prompt: "Competitive inhibitors affect enzymes by…",
		options: [NumOptions]string{
			"Lowering Vmax only",
			"Raising Km (apparent) by competing at the active site",
			"Lowering Km by binding allosterically",
			"Raising Vmax by increasing catalytic rate",
		},
		answer: "B", chapter: "8", tags: "enzymes,inhibition",
		explanation: "They compete at the active site → need more substrate to reach same rate (↑Km).",
	},
	{
		id: "4", prompt: "DNA strands in the double helix are:",
		options: [NumOptions]string{
			"Parallel and identical",
			"Antiparallel and complementary",
			"Antiparallel and identical",
			"Parallel and complementary",
		},
		answer: "B", chapter: "4", tags: "dna",
		explanation: "They run 5'→3' opposite directions and pair A-T, C-G.",
	},
	{
		id: "5", prompt: "Which feature makes RNA generally less stable than DNA?",
		options: [NumOptions]string{
			"Uracil",
			"2'-OH on ribose",
			"Phosphodiester bond",
			"Single-strandedness only",
		},
		answer: "B", chapter: "4", tags: "rna",
		explanation: "The 2'-OH can participate in hydrolysis, reducing stability.",
	},
	{
		id: "6", prompt: "Cellulose differs from starch primarily by:",
		options: [NumOptions]string{
			"Monomer identity",
			"Type of glycosidic linkage",
			"Presence of branching",
			"Covalent peptide crosslinks",
		},
		answer: "B", chapter: "5", tags: "carbs",
		explanation: "Cellulose is β-1,4; starch is α-1,4 (amylose) with α-1,6 branches (amylopectin).",
	},
	{
		id: "7", prompt: "Glycogen is optimized for:",
		options: [NumOptions]string{
			"Structural rigidity",
			"Rapid glucose release via many branch ends",
			"Water retention in plants",
			"Cell identity signaling",
		},
		answer: "B", chapter: "5", tags: "carbs,glycogen",
		explanation: "Highly branched α-1,6 points → many ends for fast mobilization.",
	},
	{
		id: "8", prompt: "Increasing which factor DECREASES membrane fluidity/permeability?",
		options: [NumOptions]string{
			"Unsaturated tails",
			"Shorter tails",
			"Cholesterol at moderate temperature",
			"Higher temperature",
		},
		answer: "C", chapter: "6", tags: "membrane,lipids",
		explanation: "Cholesterol packs hydrophobic region and reduces fluidity at moderate temps.",
	},
	{
		id: "9", prompt: "A red blood cell placed in a hypertonic solution will:",
		options: [NumOptions]string{
			"Swell and burst",
			"No net change",
			"Shrink (crenate)",
			"Actively pump out ions and swell",
		},
		answer: "C", chapter: "6", tags: "osmosis",
		explanation: "Water leaves the cell toward higher solute outside → cell shrinks.",
	},
	{
		id: "10", prompt: "Which pathway correctly tracks a secreted protein?",
		options: [NumOptions]string{
			"Free ribosome → cytosol → nucleus → plasma membrane",
			"Rough ER → Golgi (cis→trans) → secretory vesicle → exocytosis",
			"Smooth ER → lysosome → nucleus → membrane",
			"Mitochondria → peroxisome → Golgi → secretion",
		},
		answer: "B", chapter: "7", tags: "endomembrane,secretion",
		explanation: "Signal peptide targets RER → processed in Golgi → vesicle → secretion.",
	},
	{
		id: "11", prompt: "Evidence for endosymbiosis of mitochondria includes:",
		options: [NumOptions]string{
			"Presence of histones identical to eukaryotes",
			"Circular DNA and prokaryote-like ribosomes",
			"Location in the nucleus",
			"Ability to fix nitrogen",
		},
		answer: "B", chapter: "7", tags: "endosymbiosis",
		explanation: "Mitochondria have circular DNA and 70S-like ribosomes.",
	},
	{
		id: "12", prompt: "Kinesin generally moves cargo along microtubules toward:",
		options: [NumOptions]string{
			"Minus end (toward centrosome)",
			"Plus end (cell periphery)",
			"Actin filaments",
			"Intermediate filaments",
		},
		answer: "B", chapter: "7", tags: "cytoskeleton",
		explanation: "Kinesin is plus-end directed; dynein is minus-end directed.",
	},
	{
		id: "13", prompt: "An exergonic reaction has:",
		options: [NumOptions]string{
			"ΔG < 0 and can be spontaneous",
			"ΔG > 0 and requires energy input",
			"ΔH > 0 and ΔS < 0 always",
			"No change in free energy",
		},
		answer: "A", chapter: "8", tags: "thermo",
		explanation: "Negative ΔG indicates a thermodynamically favorable process.",
	},
	{
		id: "14", prompt: "ATP hydrolysis drives endergonic reactions mainly by:",
		options: [NumOptions]string{
			"Raising activation energy",
			"Lowering temperature",
			"Phosphorylating substrates/enzymes to increase their reactivity",
			"Supplying electrons to the ETC",
		},
		answer: "C", chapter: "8", tags: "enzymes,atp",
		explanation: "Phosphorylation changes ΔG of coupled steps and conformations.",
	},
	{
		id: "15", prompt: "In a redox pair, the molecule that is oxidized:",
		options: [NumOptions]string{
			"Gains electrons",
			"Loses electrons",
			"Gains protons only",
			"Becomes more reduced",
		},
		answer: "B", chapter: "8", tags: "redox",
		explanation: "Oxidation = loss of electrons.",
	},
	{
		id: "16", prompt: "Final electron acceptor of the mitochondrial ETC is:",
		options: [NumOptions]string{
			"NAD+",
			"FAD",
			"Oxygen",
			"Water",
		},
		answer: "C", chapter: "9", tags: "etc",
		explanation: "O2 accepts electrons to form H2O at Complex IV.",
	},
	{
		id: "17", prompt: "Where does glycolysis occur?",
		options: [NumOptions]string{
			"Mitochondrial matrix",
			"Cytosol",
			"Inner mitochondrial membrane",
			"Intermembrane space",
		},
		answer: "B", chapter: "9", tags: "glycolysis",
		explanation: "Glycolysis is cytosolic.",
	},
	{
		id: "18", prompt: "Per glucose, the citric acid cycle directly produces:",
		options: [NumOptions]string{
			"2 ATP (or GTP), 6 NADH, 2 FADH2, 4 CO2",
			"2 ATP, 2 NADH, 0 FADH2, 2 CO2",
			"4 ATP, 2 NADH, 2 FADH2, 6 CO2",
			"30 ATP only",
		},
		answer: "A", chapter: "9", tags: "tca",
		explanation: "Totals for two turns per glucose.",
	},
	{
		id: "19", prompt: "Phosphofructokinase (PFK-1) is inhibited by high:",
		options: [NumOptions]string{
			"AMP",
			"ATP",
			"Fructose-6-phosphate",
			"Oxygen",
		},
		answer: "B", chapter: "9", tags: "regulation",
		explanation: "High ATP indicates energy sufficiency → slows glycolysis.",
	},
	{
		id: "20", prompt: "Chemiosmosis refers to:",
		options: [NumOptions]string{
			"Passive glucose diffusion",
			"Proton gradient driving ATP synthase",
			"Osmosis across the plasma membrane",
			"CO2 diffusion into mitochondria",
		},
		answer: "B", chapter: "9", tags: "chemiosmosis",
		explanation: "Proton-motive force powers ATP synthase.",
	},
	{
		id: "21", prompt: "Which photosystem splits water to release O2?",
		options: [NumOptions]string{
			"Photosystem I",
			"Photosystem II",
			"Both PSI and PSII",
			"Neither",
		},
		answer: "B", chapter: "10", tags: "photosynthesis,psii",
		explanation: "PSII (P680) performs photolysis of water.",
	},
	{
		id: "22", prompt: "Primary products of the light reactions are:",
		options: [NumOptions]string{
			"CO2 and H2O",
			"RuBP and O2",
			"ATP and NADPH (and O2 by-product)",
			"G3P and glucose",
		},
		answer: "C", chapter: "10", tags: "light-reactions",
		explanation: "ATP + NADPH feed the Calvin cycle; O2 is released.",
	},
	{
		id: "23", prompt: "Carbon fixation in the Calvin cycle is catalyzed by:",
		options: [NumOptions]string{
			"Rubisco",
			"PEP carboxylase",
			"ATP synthase",
			"Ferredoxin-NADP+ reductase",
		},
		answer: "A", chapter: "10", tags: "calvin",
		explanation: "Rubisco adds CO2 to RuBP.",
	},
	{
		id: "24", prompt: "C4 plants reduce photorespiration by:",
		options: [NumOptions]string{
			"Fixing CO2 at night only",
			"Concentrating CO2 in bundle-sheath cells via PEP carboxylase",
			"Opening stomata wider during the day",
			"Using only PSI",
		},
		answer: "B", chapter: "10", tags: "c4",
		explanation: "Spatial separation concentrates CO2 for Rubisco.",
	},
	{
		id: "25", prompt: "The Z-scheme connects:",
		options: [NumOptions]string{
			"Glycolysis to Krebs",
			"PSII to PSI via plastocyanin and ETC",
			"C3 to C4 pathways",
			"Respiration to fermentation",
		},
		answer: "B", chapter: "10", tags: "z-scheme",
		explanation: "Electron flow: PSII → PQ → Cyt → PC → PSI → Fd → NADPH.",
	},
	{
		id: "26", prompt: "Which junction provides a watertight seal between epithelial cells?",
		options: [NumOptions]string{
			"Gap junction",
			"Tight junction",
			"Desmosome",
			"Hemidesmosome",
		},
		answer: "B", chapter: "11", tags: "junctions",
		explanation: "Tight junctions seal to prevent paracellular leakage.",
	},
	{
		id: "27", prompt: "Cadherins are key adhesion molecules in:",
		options: [NumOptions]string{
			"Tight junctions",
			"Desmosomes",
			"Gap junctions",
			"Plasmodesmata",
		},
		answer: "B", chapter: "11", tags: "junctions",
		explanation: "Cadherins mediate cell–cell adhesion in desmosomes.",
	},
	{
		id: "28", prompt: "GPCR signaling often uses second messengers such as:",
		options: [NumOptions]string{
			"DNA polymerase",
			"cAMP or Ca2+",
			"ATP synthase",
			"Rubisco",
		},
		answer: "B", chapter: "11", tags: "gpcr",
		explanation: "Small diffusible molecules amplify the signal.",
	},
	{
		id: "29", prompt: "Enzyme-linked receptors like RTKs first:",
		options: [NumOptions]string{
			"Hydrolyze ATP in the cytosol",
			"Dimerize and autophosphorylate tyrosines",
			"Open ion channels directly",
			"Release steroid hormones",
		},
		answer: "B", chapter: "11", tags: "rtk",
		explanation: "Ligand binding → dimerization → autophosphorylation.",
	},
	{
		id: "30", prompt: "DNA replication occurs during:",
		options: [NumOptions]string{
			"G1",
			"S phase",
			"G2",
			"M phase",
		},
		answer: "B", chapter: "12", tags: "cell-cycle",
		explanation: "S = synthesis of DNA.",
	},
	{
		id: "31", prompt: "Which checkpoint prevents anaphase until all kinetochores attach properly?",
		options: [NumOptions]string{
			"G1",
			"G2/M",
			"M (spindle) checkpoint",
			"Restriction point in G0",
		},
		answer: "C", chapter: "12", tags: "checkpoints",
		explanation: "Spindle checkpoint ensures proper attachment.",
	},
	{
		id: "32", prompt: "MPF consists of:",
		options: [NumOptions]string{
			"Cyclin + Cdk kinase",
			"p53 + DNA ligase",
			"Actin + myosin",
			"Tubulin + kinesin",
		},
		answer: "A", chapter: "12", tags: "mpf",
		explanation: "Cyclin-dependent kinase activated by mitotic cyclin.",
	},
	{
		id: "33", prompt: "During telophase in animal cells:",
		options: [NumOptions]string{
			"Chromosomes condense",
			"Nuclear envelopes reform",
			"Cohesins are cleaved",
			"Spindle attaches to kinetochores",
		},
		answer: "B", chapter: "12", tags: "mitosis",
		explanation: "Chromosomes decondense and nuclei re-form.",
	},
	{
		id: "34", prompt: "Cytokinesis in plants vs animals differs because plants:",
		options: [NumOptions]string{
			"Use a cell plate formed by vesicles; animals use actin–myosin ring",
			"Use actin–myosin; animals use cell plate",
			"Use dynein contraction",
			"Do not divide cytoplasm",
		},
		answer: "A", chapter: "12", tags: "cytokinesis",
		explanation: "Plant cell wall requires a Golgi-derived cell plate.",
	},
	{
		id: "35", prompt: "Loss of which tumor suppressor commonly disables the G1 DNA-damage checkpoint?",
		options: [NumOptions]string{
			"Ras",
			"Cyclin B",
			"p53",
			"Actin",
		},
		answer: "C", chapter: "12", tags: "cancer",
		explanation: "p53 activates repair or apoptosis upon damage.",
	},
	{
		id: "36", prompt: "Which is TRUE of fermentation?",
		options: [NumOptions]string{
			"Generates large ATP by oxidative phosphorylation",
			"Regenerates NAD+ to allow glycolysis to continue",
			"Requires O2",
			"Produces CO2 only in lactic fermentation",
		},
		answer: "B", chapter: "9", tags: "fermentation",
		explanation: "Key role is NAD+ regeneration when O2 is unavailable.",
	},
	{
		id: "37", prompt: "A membrane with long, saturated tails at low temperature will be:",
		options: [NumOptions]string{
			"Highly fluid and permeable",
			"Rigid with low permeability",
			"Unchanged by temperature",
			"Porous to ions",
		},
		answer: "B", chapter: "6", tags: "membrane",
		explanation: "Saturated + long tails + low T → tight packing, low fluidity.",
	},
	{
		id: "38", prompt: "Plasmodesmata in plants connect cells by:",
		options: [NumOptions]string{
			"Protein channels that open with voltage",
			"Membrane-lined pores with shared cytoplasm (symplast)",
			"Desmosomal cadherin bridges",
			"Tight occluding strands",
		},
		answer: "B", chapter: "11", tags: "plasmodesmata",
		explanation: "Plasmodesmata create cytoplasmic continuity.",
	},
	{
		id: "39", prompt: "Photorespiration occurs when rubisco binds:",
		options: [NumOptions]string{
			"CO2, producing 3-PGA",
			"O2, consuming ATP and releasing CO2",
			"RuBP, producing G3P directly",
			"NADPH, producing RuBP",
		},
		answer: "B", chapter: "10", tags: "photorespiration",
		explanation: "O2 addition wastes energy and releases fixed CO2.",
	},
	{
		id: "40", prompt: "Which best defines chemiosmotic ATP formation in chloroplasts?",
		options: [NumOptions]string{
			"Matrix H+ gradient drives ATP synthase",
			"Thylakoid lumen H+ gradient drives ATP synthase to the stroma",
			"Cytosolic H+ gradient drives mitochondrial ATP synthase",
			"No H+ gradient is required",
		},
		answer: "B", chapter: "10", tags: "photophosphorylation",
		explanation: "Protons accumulate in thylakoid lumen; ATP made facing stroma.",
	},
}
