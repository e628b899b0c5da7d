package domain

// CurveKind identifies which derived series a rendered curve carries.
type CurveKind string

const (
	KindBorrow    CurveKind = "borrow"
	KindLend      CurveKind = "lend"
	KindBorrowFee CurveKind = "borrow_fee" // Borrow rate including the protocol fee surcharge
)

// Utilization domain bounds, in percent.
const (
	MinUtilization = 0.0
	MaxUtilization = 100.0
)

// DefaultRange mirrors the window shown when a chart first opens.
var DefaultRange = Range{Lower: 40, Upper: 100}
