package teco

import "testing"

func popOne(t *testing.T, e *estack) int {
	t.Helper()
	v, ok, err := e.popValue()
	if err != nil {
		t.Fatalf("popValue failed: %v", err)
	}
	if !ok {
		t.Fatal("popValue: no operand available")
	}
	return v
}

func TestLeftToRightEvaluation(t *testing.T) {
	var e estack
	e.pushVal(1)
	if err := e.pushOp(opAdd); err != nil {
		t.Fatal(err)
	}
	e.pushVal(2)
	if err := e.pushOp(opMul); err != nil {
		t.Fatal(err)
	}
	e.pushVal(3)
	if v := popOne(t, &e); v != 9 {
		t.Errorf("1+2*3 = %d left-to-right, want 9", v)
	}
}

func TestXoperPrecedence(t *testing.T) {
	e := estack{xoper: true}
	e.pushVal(1)
	if err := e.pushOp(opAdd); err != nil {
		t.Fatal(err)
	}
	e.pushVal(2)
	if err := e.pushOp(opMul); err != nil {
		t.Fatal(err)
	}
	e.pushVal(3)
	if v := popOne(t, &e); v != 7 {
		t.Errorf("1+2*3 = %d with C precedence, want 7", v)
	}
}

func TestDivisionByZero(t *testing.T) {
	var e estack
	e.pushVal(1)
	if err := e.pushOp(opDiv); err != nil {
		t.Fatal(err)
	}
	e.pushVal(0)
	_, _, err := e.popValue()
	if err == nil {
		t.Fatal("expected division-by-zero error")
	}
	te, ok := err.(*Error)
	if !ok || te.Code != ErrDIV {
		t.Errorf("expected ?DIV, got %v", err)
	}
}

func TestUnarySign(t *testing.T) {
	var e estack
	e.pushVal(2)
	if err := e.pushOp(opMul); err != nil {
		t.Fatal(err)
	}
	if err := e.pushOp(opSub); err != nil {
		t.Fatal(err)
	}
	e.pushVal(3) // 2 * -3
	if v := popOne(t, &e); v != -6 {
		t.Errorf("2*-3 = %d, want -6", v)
	}
}

func TestLoneUnaryMinus(t *testing.T) {
	var e estack
	if err := e.pushOp(opSub); err != nil {
		t.Fatal(err)
	}
	if !e.isLoneUnaryMinus() {
		t.Error("expected lone unary minus")
	}
	e.dropLoneMinus()
	if e.depth() != 0 {
		t.Errorf("expected empty stack, depth %d", e.depth())
	}
}

func TestTrailingBinaryMinusIsNotLone(t *testing.T) {
	var e estack
	e.pushVal(2)
	if err := e.pushOp(opSub); err != nil {
		t.Fatal(err)
	}
	if e.isLoneUnaryMinus() {
		t.Error("2- should not read as a lone unary minus")
	}
}

func TestParenthesesGroup(t *testing.T) {
	var e estack
	// 2*(3+4) with strict left-to-right outside the parens.
	e.pushVal(2)
	if err := e.pushOp(opMul); err != nil {
		t.Fatal(err)
	}
	e.pushParen()
	e.pushVal(3)
	if err := e.pushOp(opAdd); err != nil {
		t.Fatal(err)
	}
	e.pushVal(4)
	if err := e.closeParen(); err != nil {
		t.Fatal(err)
	}
	if v := popOne(t, &e); v != 14 {
		t.Errorf("2*(3+4) = %d, want 14", v)
	}
}

func TestEmptyParensHaveNoOperand(t *testing.T) {
	var e estack
	e.pushParen()
	if err := e.closeParen(); err == nil {
		t.Error("expected error closing empty parentheses")
	}
}

func TestResetTo(t *testing.T) {
	var e estack
	e.pushVal(1)
	saved := e.depth()
	e.pushVal(2)
	e.pushVal(3)
	e.resetTo(saved)
	if e.depth() != saved {
		t.Errorf("depth = %d after resetTo, want %d", e.depth(), saved)
	}
	if v := popOne(t, &e); v != 1 {
		t.Errorf("surviving value = %d, want 1", v)
	}
}

func TestTruthEncoding(t *testing.T) {
	e := estack{xoper: true}
	e.pushVal(5)
	if err := e.pushOp(opGT); err != nil {
		t.Fatal(err)
	}
	e.pushVal(3)
	if v := popOne(t, &e); v != -1 {
		t.Errorf("5>3 = %d, want -1 (TECO true)", v)
	}
}
