// This file is part of golisp - https://github.com/db47h/golisp

package lisp

// evalValue reduces expr to a result under scope (spec §4.6). It mirrors
// vm.Run's big opcode switch: one case per value shape / operator
// dispatch, except here the "instruction pointer" is recursion depth
// rather than an integer index into a flat image.
//
// expr is borrowed: evalValue never releases it. The returned *Value is a
// fresh reference owned by the caller.
func (interp *Interpreter) evalValue(scope *Scope, expr *Value) (*Value, error) {
	if expr == nil {
		return nil, nil
	}
	if expr.kind != KCell {
		if expr.kind == KSymbol {
			v, ok := scope.Query(expr.s)
			if !ok {
				return nil, newErrorf(KindError, "scope query failed: %s", expr.s)
			}
			return v, nil
		}
		return expr.Retain(), nil
	}
	return interp.apply(scope, expr)
}

// apply implements the "apply form" case of spec §4.6: evaluate the
// operator to obtain its value, then dispatch on that result — not on the
// raw, unevaluated car — exactly as internal_eval does (sclisp.c:865-875:
// "car = internal_eval(s, car); if (!is_atom(car)) ...").
func (interp *Interpreter) apply(scope *Scope, cell *Value) (*Value, error) {
	op, err := interp.evalValue(scope, cell.car)
	if err != nil {
		return nil, err
	}
	if !IsAtom(op) {
		op.Release()
		return nil, newError(KindBadArgument, "non-atomic operator is not executable")
	}
	switch op.kind {
	case KFunction:
		return interp.applyFunction(scope, op, cell.cdr)
	case KBuiltin:
		defer op.Release()
		return op.fn(interp, scope, cell.cdr, op.data)
	default:
		op.Release()
		return nil, newError(KindBadArgument, "atomic operator is not executable")
	}
}

// applyFunction applies a user Function to an unevaluated argument list:
// scope_enter_with evaluates each argument in the caller's scope
// (applicative order) and binds it in a fresh child scope, each body form
// is then evaluated in turn, and the last result is returned (spec §4.6).
func (interp *Interpreter) applyFunction(scope *Scope, fn *Value, argList *Value) (*Value, error) {
	child, err := scope.Enter(interp, fn.params, argList)
	if err != nil {
		fn.Release()
		return nil, err
	}
	var result *Value
	for form := fn.body; IsCell(form); form = form.cdr {
		result.Release()
		result, err = interp.evalValue(child, form.car)
		if err != nil {
			child.Pop()
			fn.Release()
			return nil, err
		}
	}
	child.Pop()
	fn.Release()
	return result, nil
}
