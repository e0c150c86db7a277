package check

import (
	"github.com/hassan/tcompiler/internal/parser/ast"
	"github.com/hassan/tcompiler/internal/symtab"
	"github.com/hassan/tcompiler/internal/types"
)

func (c *Checker) VisitExprStmt(s *ast.ExprStmt) error {
	c.exprType(s.Expression)
	return nil
}

func (c *Checker) VisitBlockStmt(s *ast.BlockStmt) error {
	c.pushScope(symtab.ScopeBlock, func(_ *symtab.Scope) {
		for _, st := range s.Stmts {
			st.Accept(c)
		}
	})
	return nil
}

func (c *Checker) VisitIfStmt(s *ast.IfStmt) error {
	c.checkCondition(s.Cond, "if")
	s.Then.Accept(c)
	if s.Else != nil {
		s.Else.Accept(c)
	}
	return nil
}

func (c *Checker) VisitWhileStmt(s *ast.WhileStmt) error {
	c.checkCondition(s.Cond, "while")
	c.pushScope(symtab.ScopeLoop, func(_ *symtab.Scope) {
		s.Body.Accept(c)
	})
	return nil
}

func (c *Checker) VisitDoWhileStmt(s *ast.DoWhileStmt) error {
	c.pushScope(symtab.ScopeLoop, func(_ *symtab.Scope) {
		s.Body.Accept(c)
	})
	c.checkCondition(s.Cond, "do/while")
	return nil
}

func (c *Checker) VisitForStmt(s *ast.ForStmt) error {
	c.pushScope(symtab.ScopeLoop, func(_ *symtab.Scope) {
		if s.Init != nil {
			s.Init.Accept(c)
		}
		if s.Cond != nil {
			c.checkCondition(s.Cond, "for")
		}
		if s.Post != nil {
			c.exprType(s.Post)
		}
		s.Body.Accept(c)
	})
	return nil
}

func (c *Checker) checkCondition(e ast.Expr, construct string) {
	t := c.exprType(e)
	if !types.ImplicitlyConvertible(t, types.Bool) {
		c.bag.Errorf(e.Pos(), "%s condition must be convertible to bool, got '%s'", construct, t)
	}
}

func (c *Checker) VisitSwitchStmt(s *ast.SwitchStmt) error {
	condType := c.exprType(s.Cond)
	if !types.IsSwitchable(condType) {
		c.bag.Errorf(s.Cond.Pos(), "switch condition must be an integral or enum type, got '%s'", condType)
	}

	c.pushScope(symtab.ScopeSwitch, func(_ *symtab.Scope) {
		seen := map[interface{}]bool{}
		sawDefault := false
		for _, cc := range s.Cases {
			if cc.Value == nil {
				if sawDefault {
					c.bag.Errorf(cc.Pos(), "switch already has a default case")
				}
				sawDefault = true
			} else {
				valType := c.exprType(cc.Value)
				if !types.ImplicitlyConvertible(valType, condType) {
					c.bag.Errorf(cc.Value.Pos(), "case value of type '%s' is not convertible to the switch type '%s'", valType, condType)
				}
				if lit, ok := cc.Value.(*ast.LiteralExpr); ok {
					if n, ok := parseIntLiteral(lit); ok {
						if seen[n] {
							c.bag.Errorf(cc.Value.Pos(), "duplicate case value")
						}
						seen[n] = true
					}
				}
			}
			for _, st := range cc.Stmts {
				st.Accept(c)
			}
		}
	})
	return nil
}

func (c *Checker) VisitReturnStmt(s *ast.ReturnStmt) error {
	if s.Value == nil {
		if c.fnReturnType != nil && !c.fnReturnType.Equals(types.Void) {
			c.bag.Warnf(s.Pos(), VoidReturn, "non-void function returns no value")
		}
		return nil
	}
	valType := c.exprType(s.Value)
	if c.fnReturnType != nil && c.fnReturnType.Equals(types.Void) {
		c.bag.Errorf(s.Pos(), "void function returns a value")
		return nil
	}
	if c.fnReturnType != nil && !types.ImplicitlyConvertible(valType, c.fnReturnType) {
		c.bag.Errorf(s.Value.Pos(), "cannot return a value of type '%s' from a function returning '%s'", valType, c.fnReturnType)
	}
	return nil
}

func (c *Checker) VisitBreakStmt(s *ast.BreakStmt) error {
	if c.scope.FindEnclosingLoopOrSwitch() == nil {
		c.bag.Errorf(s.Pos(), "'break' outside a loop or switch")
	}
	return nil
}

func (c *Checker) VisitContinueStmt(s *ast.ContinueStmt) error {
	if c.scope.FindEnclosingLoop() == nil {
		c.bag.Errorf(s.Pos(), "'continue' outside a loop")
	}
	return nil
}

func (c *Checker) VisitNullStmt(s *ast.NullStmt) error {
	return nil
}

func (c *Checker) VisitAsmStmt(s *ast.AsmStmt) error {
	return nil
}
