package ast

type UnaryOp uint8

const (
	UnaryNeg UnaryOp = iota // -
	UnaryNot                // !
)

func (op UnaryOp) String() string {
	switch op {
	case UnaryNeg:
		return "-"
	case UnaryNot:
		return "!"
	}
	return "?"
}

type BinaryOp uint8

const (
	BinOr BinaryOp = iota
	BinAnd
	BinLt
	BinLtEq
	BinGt
	BinGtEq
	BinEq
	BinNotEq
	BinAdd
	BinSub
	BinMul
	BinDiv
)

var binaryOpText = [...]string{
	BinOr:    "or",
	BinAnd:   "and",
	BinLt:    "<",
	BinLtEq:  "<=",
	BinGt:    ">",
	BinGtEq:  ">=",
	BinEq:    "==",
	BinNotEq: "!=",
	BinAdd:   "+",
	BinSub:   "-",
	BinMul:   "*",
	BinDiv:   "/",
}

func (op BinaryOp) String() string {
	if int(op) < len(binaryOpText) {
		return binaryOpText[op]
	}
	return "?"
}

// Precedence: or=1, and=2, comparison=3, additive=4, multiplicative=5.
func (op BinaryOp) Precedence() int {
	switch op {
	case BinOr:
		return 1
	case BinAnd:
		return 2
	case BinLt, BinLtEq, BinGt, BinGtEq, BinEq, BinNotEq:
		return 3
	case BinAdd, BinSub:
		return 4
	case BinMul, BinDiv:
		return 5
	}
	return 0
}

// IsComparison reports whether op belongs to the non-chaining comparison tier.
func (op BinaryOp) IsComparison() bool {
	return op.Precedence() == 3
}
