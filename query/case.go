package query

import "github.com/sqlforge/sqlforge/visitor"

type whenClause struct {
	cond, val Expr
}

// Case is `CASE WHEN cond THEN val ...`, built fluently from CaseWhen; Else
// promotes it to a CaseWithElse. Both support an alias on the whole
// expression — a supplemented feature present in the original's case_exp.hpp
// but dropped from the distilled spec's prose.
type Case struct {
	whens []whenClause
	alias string
}

func CaseWhen(cond, val any) Case {
	return Case{whens: []whenClause{{Lift(cond), Lift(val)}}}
}

func (c Case) When(cond, val any) Case {
	whens := make([]whenClause, len(c.whens)+1)
	copy(whens, c.whens)
	whens[len(c.whens)] = whenClause{Lift(cond), Lift(val)}
	c.whens = whens
	return c
}

func (c Case) As(alias string) Case { c.alias = alias; return c }

// Else closes the chain with an ELSE arm, yielding a CaseWithElse.
func (c Case) Else(val any) CaseWithElse {
	return CaseWithElse{whens: c.whens, elseVal: Lift(val)}
}

func (c Case) Accept(v visitor.Visitor) error {
	if err := v.EnterCase(); err != nil {
		return err
	}
	if err := acceptWhens(v, c.whens); err != nil {
		return err
	}
	return v.LeaveCase(c.alias)
}

// CaseWithElse is Case plus a mandatory ELSE arm.
type CaseWithElse struct {
	whens   []whenClause
	elseVal Expr
	alias   string
}

func (c CaseWithElse) As(alias string) CaseWithElse { c.alias = alias; return c }

func (c CaseWithElse) Accept(v visitor.Visitor) error {
	if err := v.EnterCase(); err != nil {
		return err
	}
	if err := acceptWhens(v, c.whens); err != nil {
		return err
	}
	if err := v.EnterElse(); err != nil {
		return err
	}
	if err := c.elseVal.Accept(v); err != nil {
		return err
	}
	if err := v.LeaveElse(); err != nil {
		return err
	}
	return v.LeaveCase(c.alias)
}

func acceptWhens(v visitor.Visitor, whens []whenClause) error {
	for _, w := range whens {
		if err := v.EnterWhen(); err != nil {
			return err
		}
		if err := w.cond.Accept(v); err != nil {
			return err
		}
		if err := v.EmitWhenThen(); err != nil {
			return err
		}
		if err := w.val.Accept(v); err != nil {
			return err
		}
		if err := v.LeaveWhen(); err != nil {
			return err
		}
	}
	return nil
}
