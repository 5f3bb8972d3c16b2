// This file is part of golisp - https://github.com/db47h/golisp

package lisp

import "math"

// installBuiltins registers the initial population of the root scope
// (spec §4.7), grounded on vm/core.go's root-table registration style and
// asm.go's name/opcodeIndex pair: one named Go function per primitive, all
// wired into a table built once at construction time.
func installBuiltins(interp *Interpreter) {
	table := map[string]BuiltinFunc{
		"+":       biPlus,
		"-":       biMinus,
		"*":       biTimes,
		"/":       biDivide,
		"mod":     biMod,
		"set":     biSet,
		"car":     biCar,
		"cdr":     biCdr,
		"cons":    biCons,
		"eval":    biEval,
		"reverse": biReverse,
		"list":    biList,
		"quote":   biQuote,
		"lambda":  biLambda,
		"cond":    biCond,
		"true?":   biTrueP,
		"false?":  biFalseP,
		"atom?":   biAtomP,
		"cell?":   biCellP,
		"nil?":    biNilP,
		"<":       biLess,
		"<=":      biLessEq,
		">":       biGreater,
		">=":      biGreaterEq,
		"==":      biEq,
		"and":     biAnd,
		"or":      biOr,
		"typeof":  biTypeof,
		"println": biPrintln,
		"prompt":  biPrompt,
	}
	for name, fn := range table {
		interp.Root.Set(name, NewBuiltin(fn, nil, nil))
	}
	interp.Root.Set("#t", interp.sentinel.True)
	interp.Root.Set("#f", interp.sentinel.False)
}

// --- operand helpers -------------------------------------------------

// evalAll evaluates each element of an unevaluated operand list (args is
// borrowed) left to right, returning an owned slice. On error, every
// value already evaluated is released before returning.
func (interp *Interpreter) evalAll(scope *Scope, args *Value) ([]*Value, error) {
	var out []*Value
	for cur := args; IsCell(cur); cur = cur.cdr {
		v, err := interp.evalValue(scope, cur.car)
		if err != nil {
			releaseAll(out)
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func releaseAll(vs []*Value) {
	for _, v := range vs {
		v.Release()
	}
}

func listLen(v *Value) int {
	n := 0
	for cur := v; IsCell(cur); cur = cur.cdr {
		n++
	}
	return n
}

// --- arithmetic --------------------------------------------------------

type numAcc struct {
	isReal bool
	i      int64
	f      float64
}

func (a numAcc) real() float64 {
	if a.isReal {
		return a.f
	}
	return float64(a.i)
}

func (a numAcc) value() *Value {
	if a.isReal {
		return NewReal(a.f)
	}
	return NewInteger(a.i)
}

func numFromValue(v *Value) (numAcc, error) {
	if v == nil {
		return numAcc{}, nil
	}
	switch v.kind {
	case KInteger:
		return numAcc{i: v.i}, nil
	case KReal:
		return numAcc{isReal: true, f: v.f}, nil
	default:
		return numAcc{}, newErrorf(KindBadArgument, "non-numeric operand of kind %s", valueKindNames[v.kind])
	}
}

func addNum(a, b numAcc) numAcc {
	if a.isReal || b.isReal {
		return numAcc{isReal: true, f: a.real() + b.real()}
	}
	return numAcc{i: a.i + b.i}
}

func mulNum(a, b numAcc) numAcc {
	if a.isReal || b.isReal {
		return numAcc{isReal: true, f: a.real() * b.real()}
	}
	return numAcc{i: a.i * b.i}
}

func subNum(a, b numAcc) numAcc {
	if a.isReal || b.isReal {
		return numAcc{isReal: true, f: a.real() - b.real()}
	}
	return numAcc{i: a.i - b.i}
}

func divNum(a, b numAcc) (numAcc, error) {
	if a.isReal || b.isReal {
		if b.real() == 0 {
			return numAcc{}, newError(KindBadArgument, "division by zero")
		}
		return numAcc{isReal: true, f: a.real() / b.real()}, nil
	}
	if b.i == 0 {
		return numAcc{}, newError(KindBadArgument, "division by zero")
	}
	return numAcc{i: a.i / b.i}, nil
}

func modNum(a, b numAcc) (numAcc, error) {
	if a.isReal || b.isReal {
		if b.real() == 0 {
			return numAcc{}, newError(KindBadArgument, "modulo by zero")
		}
		return numAcc{isReal: true, f: math.Mod(a.real(), b.real())}, nil
	}
	if b.i == 0 {
		return numAcc{}, newError(KindBadArgument, "modulo by zero")
	}
	return numAcc{i: a.i % b.i}, nil
}

// evalNums evaluates args and converts each result to a numAcc, releasing
// the Values (spec's arithmetic builtins do not otherwise need the
// evaluated Values once their numeric payload has been extracted).
func (interp *Interpreter) evalNums(scope *Scope, args *Value) ([]numAcc, error) {
	vals, err := interp.evalAll(scope, args)
	if err != nil {
		return nil, err
	}
	nums := make([]numAcc, len(vals))
	for i, v := range vals {
		n, err := numFromValue(v)
		if err != nil {
			releaseAll(vals)
			return nil, err
		}
		nums[i] = n
	}
	releaseAll(vals)
	return nums, nil
}

func biPlus(interp *Interpreter, scope *Scope, args *Value, _ interface{}) (*Value, error) {
	nums, err := interp.evalNums(scope, args)
	if err != nil {
		return nil, err
	}
	acc := numAcc{i: 0}
	for _, n := range nums {
		acc = addNum(acc, n)
	}
	return acc.value(), nil
}

func biTimes(interp *Interpreter, scope *Scope, args *Value, _ interface{}) (*Value, error) {
	nums, err := interp.evalNums(scope, args)
	if err != nil {
		return nil, err
	}
	acc := numAcc{i: 1}
	for _, n := range nums {
		acc = mulNum(acc, n)
	}
	return acc.value(), nil
}

// foldBinaryLike implements spec §4.7's rule shared by -, /, mod: zero
// operands yields 0, one operand is treated as "0 op x", otherwise the
// first operand seeds the accumulator and the rest fold in.
func foldBinaryLike(nums []numAcc, op func(a, b numAcc) (numAcc, error)) (numAcc, error) {
	switch len(nums) {
	case 0:
		return numAcc{i: 0}, nil
	case 1:
		return op(numAcc{i: 0}, nums[0])
	default:
		acc := nums[0]
		for _, n := range nums[1:] {
			var err error
			acc, err = op(acc, n)
			if err != nil {
				return numAcc{}, err
			}
		}
		return acc, nil
	}
}

func biMinus(interp *Interpreter, scope *Scope, args *Value, _ interface{}) (*Value, error) {
	nums, err := interp.evalNums(scope, args)
	if err != nil {
		return nil, err
	}
	acc, err := foldBinaryLike(nums, func(a, b numAcc) (numAcc, error) { return subNum(a, b), nil })
	if err != nil {
		return nil, err
	}
	return acc.value(), nil
}

func biDivide(interp *Interpreter, scope *Scope, args *Value, _ interface{}) (*Value, error) {
	nums, err := interp.evalNums(scope, args)
	if err != nil {
		return nil, err
	}
	acc, err := foldBinaryLike(nums, divNum)
	if err != nil {
		return nil, err
	}
	return acc.value(), nil
}

func biMod(interp *Interpreter, scope *Scope, args *Value, _ interface{}) (*Value, error) {
	nums, err := interp.evalNums(scope, args)
	if err != nil {
		return nil, err
	}
	acc, err := foldBinaryLike(nums, modNum)
	if err != nil {
		return nil, err
	}
	return acc.value(), nil
}

// --- set -----------------------------------------------------------

// biSet implements spec §4.7's set, including its function-definition
// sugar: (set (name . params) . body).
func biSet(interp *Interpreter, scope *Scope, args *Value, _ interface{}) (*Value, error) {
	if !IsCell(args) {
		return nil, newError(KindBadArgument, "set: missing operands")
	}
	first := args.car
	rest := args.cdr

	if first != nil && first.kind == KSymbol {
		if !IsCell(rest) {
			return nil, newError(KindBadArgument, "set: missing value")
		}
		val, err := interp.evalValue(scope, rest.car)
		if err != nil {
			return nil, err
		}
		scope.Set(first.s, val.Retain())
		return val, nil
	}
	if IsCell(first) && first.car != nil && first.car.kind == KSymbol {
		name := first.car.s
		params := first.cdr
		body := rest
		fn := NewFunction(params.Retain(), body.Retain())
		scope.Set(name, fn.Retain())
		return fn, nil
	}
	return nil, newError(KindBadArgument, "set: first operand must be a symbol or (name . params)")
}

// --- list manipulation ------------------------------------------------

func biCar(interp *Interpreter, scope *Scope, args *Value, _ interface{}) (*Value, error) {
	if listLen(args) != 1 {
		return nil, newError(KindBadArgument, "car: expected one operand")
	}
	v, err := interp.evalValue(scope, args.car)
	if err != nil {
		return nil, err
	}
	defer v.Release()
	return Car(v).Retain(), nil
}

func biCdr(interp *Interpreter, scope *Scope, args *Value, _ interface{}) (*Value, error) {
	if listLen(args) != 1 {
		return nil, newError(KindBadArgument, "cdr: expected one operand")
	}
	v, err := interp.evalValue(scope, args.car)
	if err != nil {
		return nil, err
	}
	defer v.Release()
	return Cdr(v).Retain(), nil
}

func biCons(interp *Interpreter, scope *Scope, args *Value, _ interface{}) (*Value, error) {
	if listLen(args) > 2 {
		return nil, newError(KindBadArgument, "cons: expected at most two operands")
	}
	vals, err := interp.evalAll(scope, args)
	if err != nil {
		return nil, err
	}
	defer releaseAll(vals)
	var a, b *Value
	if len(vals) > 0 {
		a = vals[0]
	}
	if len(vals) > 1 {
		b = vals[1]
	}
	return Cons(a, b), nil
}

func biEval(interp *Interpreter, scope *Scope, args *Value, _ interface{}) (*Value, error) {
	if listLen(args) != 1 {
		return nil, newError(KindBadArgument, "eval: expected one operand")
	}
	v, err := interp.evalValue(scope, args.car)
	if err != nil {
		return nil, err
	}
	defer v.Release()
	return interp.evalValue(scope, v)
}

func biReverse(interp *Interpreter, scope *Scope, args *Value, _ interface{}) (*Value, error) {
	if listLen(args) != 1 {
		return nil, newError(KindBadArgument, "reverse: expected one operand")
	}
	v, err := interp.evalValue(scope, args.car)
	if err != nil {
		return nil, err
	}
	defer v.Release()
	return Reverse(v), nil
}

func biList(interp *Interpreter, scope *Scope, args *Value, _ interface{}) (*Value, error) {
	vals, err := interp.evalAll(scope, args)
	if err != nil {
		return nil, err
	}
	result := (*Value)(nil)
	for i := len(vals) - 1; i >= 0; i-- {
		next := Cons(vals[i], result)
		result.Release()
		vals[i].Release()
		result = next
	}
	return result, nil
}

func biQuote(interp *Interpreter, scope *Scope, args *Value, _ interface{}) (*Value, error) {
	if listLen(args) != 1 {
		return nil, newError(KindBadArgument, "quote: expected exactly one operand")
	}
	return args.car.Retain(), nil
}

func biLambda(interp *Interpreter, scope *Scope, args *Value, _ interface{}) (*Value, error) {
	if !IsCell(args) {
		return nil, newError(KindBadArgument, "lambda: missing parameter list")
	}
	params := args.car
	body := args.cdr
	return NewFunction(params.Retain(), body.Retain()), nil
}

func biCond(interp *Interpreter, scope *Scope, args *Value, _ interface{}) (*Value, error) {
	for cur := args; IsCell(cur); cur = cur.cdr {
		clause := cur.car
		if !IsCell(clause) || !IsCell(clause.cdr) {
			return nil, newError(KindBadArgument, "cond: clause must be (test consequent)")
		}
		test, err := interp.evalValue(scope, clause.car)
		if err != nil {
			return nil, err
		}
		truthy := IsTruthy(test)
		test.Release()
		if truthy {
			return interp.evalValue(scope, clause.cdr.car)
		}
	}
	return nil, nil
}

// --- predicates ---------------------------------------------------------

func (interp *Interpreter) onePredicate(scope *Scope, args *Value, pred func(*Value) bool) (*Value, error) {
	if listLen(args) != 1 {
		return nil, newError(KindBadArgument, "expected one operand")
	}
	v, err := interp.evalValue(scope, args.car)
	if err != nil {
		return nil, err
	}
	defer v.Release()
	return interp.sentinel.Bool(pred(v)), nil
}

func biTrueP(interp *Interpreter, scope *Scope, args *Value, _ interface{}) (*Value, error) {
	return interp.onePredicate(scope, args, IsTruthy)
}

func biFalseP(interp *Interpreter, scope *Scope, args *Value, _ interface{}) (*Value, error) {
	return interp.onePredicate(scope, args, func(v *Value) bool { return !IsTruthy(v) })
}

func biAtomP(interp *Interpreter, scope *Scope, args *Value, _ interface{}) (*Value, error) {
	return interp.onePredicate(scope, args, IsAtom)
}

func biCellP(interp *Interpreter, scope *Scope, args *Value, _ interface{}) (*Value, error) {
	return interp.onePredicate(scope, args, IsCell)
}

func biNilP(interp *Interpreter, scope *Scope, args *Value, _ interface{}) (*Value, error) {
	return interp.onePredicate(scope, args, IsNil)
}

// --- comparisons ---------------------------------------------------------

func stringize(v *Value) string {
	if v != nil && v.kind == KString {
		return v.s
	}
	return Repr(v)
}

func compareStrings(op string, a, b string) bool {
	switch op {
	case "<":
		return a < b
	case "<=":
		return a <= b
	case ">":
		return a > b
	case ">=":
		return a >= b
	default: // "=="
		return a == b
	}
}

func compareNums(op string, a, b numAcc) bool {
	if a.isReal || b.isReal {
		x, y := a.real(), b.real()
		switch op {
		case "<":
			return x < y
		case "<=":
			return x <= y
		case ">":
			return x > y
		case ">=":
			return x >= y
		default:
			return x == y
		}
	}
	switch op {
	case "<":
		return a.i < b.i
	case "<=":
		return a.i <= b.i
	case ">":
		return a.i > b.i
	case ">=":
		return a.i >= b.i
	default:
		return a.i == b.i
	}
}

// compare implements spec §4.7's comparison promotion rules: sentinel
// identity short-circuits ==, then String operands force textual
// comparison (rendering the non-String side via the printer), else both
// operands must be numeric (nil coerces to Integer 0).
func (interp *Interpreter) compare(op string, a, b *Value) (*Value, error) {
	if op == "==" && isSameSentinel(a, b) {
		return interp.sentinel.True, nil
	}
	aStr := a != nil && a.kind == KString
	bStr := b != nil && b.kind == KString
	if aStr || bStr {
		return interp.sentinel.Bool(compareStrings(op, stringize(a), stringize(b))), nil
	}
	an, err := numFromValue(a)
	if err != nil {
		return nil, err
	}
	bn, err := numFromValue(b)
	if err != nil {
		return nil, err
	}
	return interp.sentinel.Bool(compareNums(op, an, bn)), nil
}

func (interp *Interpreter) compareBuiltin(op string, scope *Scope, args *Value) (*Value, error) {
	if listLen(args) != 2 {
		return nil, newErrorf(KindBadArgument, "%s: expected exactly two operands", op)
	}
	vals, err := interp.evalAll(scope, args)
	if err != nil {
		return nil, err
	}
	defer releaseAll(vals)
	return interp.compare(op, vals[0], vals[1])
}

func biLess(interp *Interpreter, scope *Scope, args *Value, _ interface{}) (*Value, error) {
	return interp.compareBuiltin("<", scope, args)
}

func biLessEq(interp *Interpreter, scope *Scope, args *Value, _ interface{}) (*Value, error) {
	return interp.compareBuiltin("<=", scope, args)
}

func biGreater(interp *Interpreter, scope *Scope, args *Value, _ interface{}) (*Value, error) {
	return interp.compareBuiltin(">", scope, args)
}

func biGreaterEq(interp *Interpreter, scope *Scope, args *Value, _ interface{}) (*Value, error) {
	return interp.compareBuiltin(">=", scope, args)
}

func biEq(interp *Interpreter, scope *Scope, args *Value, _ interface{}) (*Value, error) {
	return interp.compareBuiltin("==", scope, args)
}

// --- logical --------------------------------------------------------

func biAnd(interp *Interpreter, scope *Scope, args *Value, _ interface{}) (*Value, error) {
	if !IsCell(args) {
		return interp.sentinel.True, nil
	}
	var last *Value
	for cur := args; IsCell(cur); cur = cur.cdr {
		v, err := interp.evalValue(scope, cur.car)
		if err != nil {
			last.Release()
			return nil, err
		}
		if !IsTruthy(v) {
			last.Release()
			v.Release()
			return nil, nil
		}
		last.Release()
		last = v
	}
	return last, nil
}

func biOr(interp *Interpreter, scope *Scope, args *Value, _ interface{}) (*Value, error) {
	for cur := args; IsCell(cur); cur = cur.cdr {
		v, err := interp.evalValue(scope, cur.car)
		if err != nil {
			return nil, err
		}
		if IsTruthy(v) {
			return v, nil
		}
		v.Release()
	}
	return nil, nil
}

// --- type/printing/io -------------------------------------------------

func biTypeof(interp *Interpreter, scope *Scope, args *Value, _ interface{}) (*Value, error) {
	if listLen(args) != 1 {
		return nil, newError(KindBadArgument, "typeof: expected one operand")
	}
	v, err := interp.evalValue(scope, args.car)
	if err != nil {
		return nil, err
	}
	defer v.Release()
	return interp.sentinel.TypeOf(v), nil
}

func biPrintln(interp *Interpreter, scope *Scope, args *Value, _ interface{}) (*Value, error) {
	if listLen(args) != 1 {
		return nil, newError(KindBadArgument, "println: expected one operand")
	}
	v, err := interp.evalValue(scope, args.car)
	if err != nil {
		return nil, err
	}
	defer v.Release()
	if v == nil || v.kind != KString {
		return nil, newError(KindUnsupported, "println: operand is not a string")
	}
	interp.printer.Print(Stdout, v.s+"\n")
	return nil, nil
}

func biPrompt(interp *Interpreter, scope *Scope, args *Value, _ interface{}) (*Value, error) {
	if listLen(args) != 1 {
		return nil, newError(KindBadArgument, "prompt: expected one operand")
	}
	v, err := interp.evalValue(scope, args.car)
	if err != nil {
		return nil, err
	}
	defer v.Release()
	if v == nil || v.kind != KString {
		return nil, newError(KindUnsupported, "prompt: operand is not a string")
	}
	if interp.lines == nil {
		return nil, newError(KindUnsupported, "prompt: no input callback configured")
	}
	interp.printer.Print(Stdout, v.s)
	line, ok := interp.lines.ReadLine()
	if !ok {
		return nil, nil
	}
	return NewString(line), nil
}
