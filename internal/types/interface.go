package types

type Scanner interface {
	Tokenize() ([]Token, error)
	Sum(mode Mode) (uint64, error)
}

// Scan with statistics
type ScannerWithStats interface {
	Scanner
	GetStats() (ScanStats, error)
}
