package teco

// Option bits carried by each command-table entry. They drive modifier
// validation, argument rules, and the operand/consumer classification in
// the scanner.
const (
	optA  uint16 = 1 << iota // @ modifier permitted
	optC                     // : modifier permitted
	optD                     // :: modifier permitted
	optM                     // m,n argument pair permitted
	optN                     // n argument permitted
	optQ                     // requires a Q-register name
	optT1                    // consumes one text argument
	optT2                    // consumes two text arguments (implies one)
	optW                     // W suffix permitted (P)
	optF                     // flag command: operand unless an expression precedes
	optO                     // operand/operator: executes during scan, leaves values
	optE                     // ignores m and n even if present
)

// execFn runs a fully scanned command.
type execFn func(*Interpreter, *cmdBlock) error

// cmdEntry is one slot in a dispatch table.
type cmdEntry struct {
	exec execFn
	opts uint16
}

// ASCII control characters used as commands.
const (
	ctrlA = 0x01
	ctrlB = 0x02
	ctrlC = 0x03
	ctrlD = 0x04
	ctrlE = 0x05
	ctrlF = 0x06
	ctrlH = 0x08
	tab   = 0x09
	lf    = 0x0A
	vt    = 0x0B
	ff    = 0x0C
	cr    = 0x0D
	ctrlN = 0x0E
	ctrlO = 0x0F
	ctrlQ = 0x11
	ctrlR = 0x12
	ctrlS = 0x13
	ctrlT = 0x14
	ctrlU = 0x15
	ctrlW = 0x17
	ctrlX = 0x18
	ctrlY = 0x19
	ctrlZ = 0x1A
	esc   = 0x1B
	upDown = 0x1E // ^-equivalent prefix pushing the next character
	ctrlUbar = 0x1F // ^_ one's complement
)

// cmdTable is the primary dispatch table, indexed by command character.
// Letters are entered in upper case; the scanner folds before lookup.
var cmdTable [128]cmdEntry

// cmdETable and cmdFTable dispatch the second letter of E and F commands.
var cmdETable map[byte]cmdEntry
var cmdFTable map[byte]cmdEntry

func init() {
	t := &cmdTable

	// Control-character commands, indexed by their code.
	t[ctrlA] = cmdEntry{(*Interpreter).execCtrlA, optA | optC | optT1}
	t[ctrlB] = cmdEntry{(*Interpreter).execCtrlB, optO}
	t[ctrlC] = cmdEntry{(*Interpreter).execCtrlC, 0}
	t[ctrlD] = cmdEntry{(*Interpreter).execCtrlD, optE}
	t[ctrlE] = cmdEntry{(*Interpreter).execCtrlE, optF | optN}
	t[ctrlF] = cmdEntry{(*Interpreter).execCtrlF, optO}
	t[ctrlH] = cmdEntry{(*Interpreter).execCtrlH, optO}
	t[tab] = cmdEntry{(*Interpreter).execTab, optA | optT1}
	t[ctrlN] = cmdEntry{(*Interpreter).execCtrlN, optO}
	t[ctrlO] = cmdEntry{(*Interpreter).execCtrlO, optE}
	t[ctrlQ] = cmdEntry{(*Interpreter).execCtrlQ, optN}
	t[ctrlR] = cmdEntry{(*Interpreter).execCtrlR, optF | optN}
	t[ctrlS] = cmdEntry{(*Interpreter).execCtrlS, optO}
	t[ctrlT] = cmdEntry{(*Interpreter).execCtrlT, optF | optN | optC}
	t[ctrlU] = cmdEntry{(*Interpreter).execCtrlU, optA | optC | optN | optQ | optT1}
	t[ctrlW] = cmdEntry{(*Interpreter).execCtrlW, 0}
	t[ctrlX] = cmdEntry{(*Interpreter).execCtrlX, optF | optN | optM}
	t[ctrlY] = cmdEntry{(*Interpreter).execCtrlY, optO}
	t[ctrlZ] = cmdEntry{(*Interpreter).execCtrlZ, optO}
	t[esc] = cmdEntry{(*Interpreter).execEscape, optE}
	t[ctrlUbar] = cmdEntry{(*Interpreter).execOnesComp, optO}

	// Operators.
	for _, c := range []byte{'+', '-', '*', '/', '&', '#', '(', ')', ','} {
		t[c] = cmdEntry{(*Interpreter).execOperator, optO}
	}

	// Printing commands.
	t['!'] = cmdEntry{(*Interpreter).execBang, optA | optT1}
	t['"'] = cmdEntry{(*Interpreter).execQuote, optN}
	t['\''] = cmdEntry{(*Interpreter).execApos, 0}
	t[';'] = cmdEntry{(*Interpreter).execSemi, optN | optC}
	t['<'] = cmdEntry{(*Interpreter).execLt, optN}
	t['='] = cmdEntry{(*Interpreter).execEquals, optA | optC | optN | optT1}
	t['>'] = cmdEntry{(*Interpreter).execGt, 0}
	t['?'] = cmdEntry{(*Interpreter).execQuestion, 0}
	t['['] = cmdEntry{(*Interpreter).execLbracket, optQ}
	t['\\'] = cmdEntry{(*Interpreter).execBack, optN}
	t[']'] = cmdEntry{(*Interpreter).execRbracket, optQ}
	t['_'] = cmdEntry{(*Interpreter).execUbar, optC | optN | optT1}
	t['|'] = cmdEntry{(*Interpreter).execVbar, 0}
	t['%'] = cmdEntry{(*Interpreter).execPct, optN | optQ}

	// Letters. E, F and ^ are prefixes resolved by the scanner before the
	// table is consulted.
	t['A'] = cmdEntry{(*Interpreter).execA, optC | optN}
	t['B'] = cmdEntry{(*Interpreter).execB, optO}
	t['C'] = cmdEntry{(*Interpreter).execC, optC | optN}
	t['D'] = cmdEntry{(*Interpreter).execD, optC | optM | optN}
	t['G'] = cmdEntry{(*Interpreter).execG, optC | optQ}
	t['H'] = cmdEntry{(*Interpreter).execH, optO}
	t['I'] = cmdEntry{(*Interpreter).execI, optA | optN | optT1}
	t['J'] = cmdEntry{(*Interpreter).execJ, optC | optN}
	t['K'] = cmdEntry{(*Interpreter).execK, optM | optN}
	t['L'] = cmdEntry{(*Interpreter).execL, optC | optN}
	t['M'] = cmdEntry{(*Interpreter).execM, optC | optM | optN | optQ}
	t['N'] = cmdEntry{(*Interpreter).execN, optA | optC | optN | optT1}
	t['O'] = cmdEntry{(*Interpreter).execO, optA | optN | optT1}
	t['P'] = cmdEntry{(*Interpreter).execP, optC | optM | optN | optW}
	t['Q'] = cmdEntry{(*Interpreter).execQ, optC | optQ}
	t['R'] = cmdEntry{(*Interpreter).execR, optC | optN}
	t['S'] = cmdEntry{(*Interpreter).execS, optA | optC | optD | optM | optN | optT1}
	t['T'] = cmdEntry{(*Interpreter).execT, optC | optM | optN}
	t['U'] = cmdEntry{(*Interpreter).execU, optM | optN | optQ}
	t['V'] = cmdEntry{(*Interpreter).execV, optM | optN}
	t['W'] = cmdEntry{(*Interpreter).execW, optC | optM | optN}
	t['X'] = cmdEntry{(*Interpreter).execX, optC | optM | optN | optQ}
	t['Y'] = cmdEntry{(*Interpreter).execY, optC}
	t['Z'] = cmdEntry{(*Interpreter).execZ, optO}
	t['.'] = cmdEntry{(*Interpreter).execDot, optO}

	cmdETable = map[byte]cmdEntry{
		'A': {(*Interpreter).execEA, 0},
		'B': {(*Interpreter).execEB, optA | optC | optT1},
		'C': {(*Interpreter).execEC, 0},
		'D': {(*Interpreter).execED, optF | optM | optN},
		'E': {(*Interpreter).execEE, optF | optN},
		'F': {(*Interpreter).execEF, 0},
		'H': {(*Interpreter).execEH, optF | optM | optN},
		'I': {(*Interpreter).execEI, optA | optC | optT1},
		'J': {(*Interpreter).execEJ, optF | optN},
		'K': {(*Interpreter).execEK, 0},
		'O': {(*Interpreter).execEO, optF | optN},
		'P': {(*Interpreter).execEP, 0},
		'Q': {(*Interpreter).execEQ, optA | optC | optQ | optT1},
		'R': {(*Interpreter).execER, optA | optC | optT1},
		'S': {(*Interpreter).execES, optF | optN},
		'T': {(*Interpreter).execET, optF | optM | optN},
		'U': {(*Interpreter).execEU, optF | optN},
		'V': {(*Interpreter).execEV, optF | optN},
		'W': {(*Interpreter).execEW, optA | optC | optT1},
		'X': {(*Interpreter).execEX, 0},
		'Y': {(*Interpreter).execEY, optC},
		'1': {(*Interpreter).execE1, optF | optM | optN},
		'2': {(*Interpreter).execE2, optF | optM | optN},
		'%': {(*Interpreter).execEPct, optA | optC | optQ | optT1},
		'_': {(*Interpreter).execEUbar, optA | optN | optT1},
	}

	cmdFTable = map[byte]cmdEntry{
		'B':  {(*Interpreter).execFB, optA | optC | optM | optN | optT1},
		'C':  {(*Interpreter).execFC, optA | optC | optM | optN | optT2 | optT1},
		'D':  {(*Interpreter).execFD, optA | optC | optN | optT1},
		'K':  {(*Interpreter).execFK, optA | optC | optN | optT1},
		'N':  {(*Interpreter).execFN, optA | optC | optN | optT2 | optT1},
		'R':  {(*Interpreter).execFR, optA | optC | optN | optT1},
		'S':  {(*Interpreter).execFS, optA | optC | optD | optM | optN | optT2 | optT1},
		'\'': {(*Interpreter).execFApos, 0},
		'<':  {(*Interpreter).execFLt, 0},
		'>':  {(*Interpreter).execFGt, 0},
		'_':  {(*Interpreter).execFUbar, optA | optC | optN | optT2 | optT1},
		'|':  {(*Interpreter).execFVbar, 0},
	}
}
